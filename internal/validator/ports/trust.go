package ports

import (
	"context"

	"greenpass/internal/trust/issuer"
)

// Rule is a named, typed policy parameter as stored by the trust store.
type Rule struct {
	Name  string    `json:"name" validate:"required"`
	Type  string    `json:"type" validate:"required"`
	Value RuleValue `json:"value"`
}

// TrustStore is the cache/trust-store collaborator. One validation call opens
// a session with CheckSetUp and closes it with Teardown exactly once.
//
//go:generate mockgen -source=trust.go -destination=../mocks/trust_mock.go -package=mocks TrustStore,IssuerInspector
type TrustStore interface {
	// CheckSetUp fails when the store was never initialised.
	CheckSetUp(ctx context.Context) error
	// IsReady reports whether rules and keys were loaded at least once.
	IsReady(ctx context.Context) (bool, error)
	Rules(ctx context.Context) ([]Rule, error)
	// Signatures maps kid to the signer certificate bytes.
	Signatures(ctx context.Context) (map[string][]byte, error)
	SignatureList(ctx context.Context) ([]string, error)
	IsUVCIRevoked(ctx context.Context, uvci string) (bool, error)
	// Teardown releases per-call resources.
	Teardown(ctx context.Context) error
}

// IssuerInspector extracts issuer country and EKU from signer bytes.
type IssuerInspector interface {
	Inspect(raw []byte) (issuer.Info, error)
}
