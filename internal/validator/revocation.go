package validator

import (
	"context"
	"fmt"
	"time"

	"greenpass/internal/certificate"
	"greenpass/internal/platform/tracer"
	"greenpass/internal/validator/ports"
)

// isRevoked checks every identifier on the credential, full history
// included, against the blacklist rule and then the CRL store. Store errors
// are returned; they are infrastructure failures, not outcomes.
func (s *Service) isRevoked(ctx context.Context, store ports.TrustStore, c *certificate.Certificate, rules []Rule) (bool, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveRevocationCheck(time.Since(start)) }()

	static := blacklist(rules)
	for _, id := range c.Identifiers() {
		if id == "" {
			continue
		}
		if _, listed := static[id]; listed {
			s.logRevoked(ctx, id, "blacklist")
			return true, nil
		}
		revoked, err := store.IsUVCIRevoked(ctx, id)
		if err != nil {
			return false, fmt.Errorf("check revocation list: %w", err)
		}
		if revoked {
			s.logRevoked(ctx, id, "crl")
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) logRevoked(ctx context.Context, id, source string) {
	s.logger.InfoContext(ctx, "certificate identifier revoked",
		"uvci_hash", tracer.HashIdentifier(id),
		"source", source,
	)
}
