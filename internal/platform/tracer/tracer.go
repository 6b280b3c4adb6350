// Package tracer is a small tracing abstraction over OpenTelemetry so the
// validator can emit spans without importing otel everywhere.
//
// Implementations:
//   - NoopTracer: tests and deployments without a collector
//   - OTelTracer: OpenTelemetry adapter
package tracer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, marking it failed when err is non-nil.
	// End must be called exactly once, typically via defer.
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// HashIdentifier returns a short SHA-256 prefix of a certificate identifier
// so traces and logs can be correlated without carrying the UVCI itself.
func HashIdentifier(id string) string {
	if id == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(id))
	return hex.EncodeToString(hash[:8])
}

// Span names used by the validator.
const (
	SpanValidate  = "validator.validate"
	SpanRules     = "validator.rules"
	SpanSignature = "validator.signature"
)

// Attribute keys used by the validator.
const (
	AttrMode      = "mode"
	AttrKind      = "certificate.kind"
	AttrCode      = "result.code"
	AttrVerified  = "signature.verified"
	AttrRevoked   = "revoked"
	AttrKidKnown  = "kid.known"
	AttrRuleCount = "rules.count"
)

// Event names.
const (
	EventRevocationHit = "revocation.hit"
)
