// Package trust holds the validation rules, signer certificates and CRL
// lookups the validator reads on every call.
package trust

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"greenpass/internal/platform/metrics"
	"greenpass/internal/revocation"
	"greenpass/internal/trust/issuer"
	"greenpass/internal/validator"
	"greenpass/internal/validator/ports"
	dErrors "greenpass/pkg/domain-errors"
	"greenpass/pkg/platform/sentinel"
)

// snapshot is replaced wholesale; readers never see a partial update.
type snapshot struct {
	rules      []ports.Rule
	keys       map[string][]byte
	rulesSet   bool
	keysLoaded bool
}

// Manager is the trust store behind the validator.
type Manager struct {
	revocations revocation.Store
	logger      *slog.Logger
	metrics     *metrics.Trust

	mu   sync.RWMutex
	snap snapshot
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMetrics sets trust metrics.
func WithMetrics(mt *metrics.Trust) Option {
	return func(m *Manager) {
		m.metrics = mt
	}
}

// NewManager constructs an empty, not-ready trust store over the given CRL.
func NewManager(revocations revocation.Store, opts ...Option) *Manager {
	m := &Manager{
		revocations: revocations,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var _ ports.TrustStore = (*Manager)(nil)

func (m *Manager) CheckSetUp(_ context.Context) error {
	if m == nil || m.revocations == nil {
		return fmt.Errorf("trust store: %w", sentinel.ErrNotSetUp)
	}
	return nil
}

func (m *Manager) IsReady(_ context.Context) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap.rulesSet && m.snap.keysLoaded, nil
}

func (m *Manager) Rules(_ context.Context) ([]ports.Rule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.snap.rules), nil
}

func (m *Manager) Signatures(_ context.Context) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.snap.keys), nil
}

func (m *Manager) SignatureList(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.snap.keys)), nil
}

func (m *Manager) IsUVCIRevoked(ctx context.Context, uvci string) (bool, error) {
	return m.revocations.IsRevoked(ctx, uvci)
}

// Teardown releases nothing; the manager holds no per-call resources.
func (m *Manager) Teardown(_ context.Context) error {
	return nil
}

// ReplaceRules swaps in a new rule set after checking it covers every rule
// the validator needs.
func (m *Manager) ReplaceRules(ctx context.Context, rules []ports.Rule) error {
	err := checkRules(rules)
	m.metrics.RecordReload("rules", err)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.snap.rules = slices.Clone(rules)
	m.snap.rulesSet = true
	m.publishLocked()
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "validation rules replaced", "rules", len(rules))
	return nil
}

func checkRules(rules []ports.Rule) error {
	type key struct{ name, typ string }
	seen := make(map[key]struct{}, len(rules))
	names := make(map[string]struct{}, len(rules))
	for i, r := range rules {
		if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Type) == "" {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("rule %d: name and type are required", i))
		}
		k := key{r.Name, r.Type}
		if _, dup := seen[k]; dup {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("duplicate rule %s/%s", r.Name, r.Type))
		}
		seen[k] = struct{}{}
		names[r.Name] = struct{}{}
	}

	var missing []string
	for _, name := range validator.RequiredRuleNames() {
		if _, ok := names[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return dErrors.New(dErrors.CodeValidation, "missing rules: "+strings.Join(missing, ", "))
	}
	return nil
}

// ReplaceKeys swaps in a new kid to signer certificate map. Values may be
// PEM, base64 DER or raw DER; they are stored as DER.
func (m *Manager) ReplaceKeys(ctx context.Context, keys map[string][]byte) error {
	parsed, err := parseKeys(keys)
	m.metrics.RecordReload("keys", err)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.snap.keys = parsed
	m.snap.keysLoaded = true
	m.publishLocked()
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "signer certificates replaced", "keys", len(parsed))
	return nil
}

func parseKeys(keys map[string][]byte) (map[string][]byte, error) {
	parsed := make(map[string][]byte, len(keys))
	for kid, raw := range keys {
		if strings.TrimSpace(kid) == "" {
			return nil, dErrors.New(dErrors.CodeValidation, "kid must not be empty")
		}
		cert, err := issuer.ParseCertificate(raw)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("kid %s: invalid signer certificate", kid))
		}
		parsed[kid] = cert.Raw
	}
	return parsed, nil
}

// ApplyCRL forwards a CRL delta to the revocation store.
func (m *Manager) ApplyCRL(ctx context.Context, revoked, deleted []string) error {
	if err := m.revocations.Apply(ctx, revoked, deleted); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "revocation store unavailable")
	}
	m.logger.InfoContext(ctx, "crl delta applied", "revoked", len(revoked), "deleted", len(deleted))
	return nil
}

// CleanCRL empties the revocation store.
func (m *Manager) CleanCRL(ctx context.Context) error {
	if err := m.revocations.Clean(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "revocation store unavailable")
	}
	m.logger.WarnContext(ctx, "crl cleaned")
	return nil
}

// Ready is IsReady without context, for health checks.
func (m *Manager) Ready() bool {
	ready, _ := m.IsReady(context.Background())
	return ready
}

func (m *Manager) publishLocked() {
	m.metrics.SetSnapshot(len(m.snap.rules), len(m.snap.keys), m.snap.rulesSet && m.snap.keysLoaded)
}
