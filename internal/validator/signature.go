package validator

import (
	"context"
	"slices"

	"greenpass/internal/certificate"
)

// verifySignature never fails: an unknown kid, missing key or any
// verification error means not verified.
func (s *Service) verifySignature(ctx context.Context, c *certificate.Certificate, kids []string, keys map[string][]byte) bool {
	if c.Kid == "" || !slices.Contains(kids, c.Kid) {
		return false
	}
	key, ok := keys[c.Kid]
	if !ok {
		return false
	}
	verified, err := c.VerifySignature(key)
	if err != nil {
		s.logger.DebugContext(ctx, "signature verification error", "kid", c.Kid, "error", err)
		return false
	}
	return verified
}
