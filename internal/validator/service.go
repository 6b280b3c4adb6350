package validator

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"greenpass/internal/certificate"
	"greenpass/internal/platform/tracer"
	"greenpass/internal/trust/issuer"
	"greenpass/internal/validator/metrics"
	"greenpass/internal/validator/ports"
	dErrors "greenpass/pkg/domain-errors"
	"greenpass/pkg/platform/sentinel"
	"greenpass/pkg/requestcontext"
)

// Service combines revocation, per-kind rules and signature verification
// into one response. It holds no per-call state; concurrent calls only share
// the injected collaborators.
type Service struct {
	store     ports.TrustStore
	inspector ports.IssuerInspector
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    tracer.Tracer
	clock     func() time.Time
}

// Option configures the Service.
type Option func(*Service)

func WithIssuerInspector(i ports.IssuerInspector) Option {
	return func(s *Service) {
		s.inspector = i
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithClock overrides time.Now. A time pinned on the request context by the
// request-time middleware still takes precedence.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// New creates the validator. Panics if the trust store is nil or the rule
// tables are inconsistent - fail fast at startup.
func New(store ports.TrustStore, opts ...Option) *Service {
	if store == nil {
		panic("validator.New: trust store is required")
	}
	if err := CheckRuleTables(); err != nil {
		panic("validator.New: " + err.Error())
	}
	s := &Service{
		store:     store,
		inspector: issuer.Inspector{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:    tracer.NewNoop(),
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) now(ctx context.Context) time.Time {
	if requestcontext.HasTime(ctx) {
		return requestcontext.Now(ctx)
	}
	return s.clock()
}

// Validate runs the signature branch and the rules branch concurrently inside
// one trust-store session and merges them. A failed signature always turns
// the result into NOT_VALID. Errors are infrastructure failures only.
func (s *Service) Validate(ctx context.Context, c *certificate.Certificate, mode Mode) (resp *Response, err error) {
	if c == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "certificate is required")
	}
	if !mode.Valid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown validation mode")
	}

	start := time.Now()
	now := s.now(ctx)
	ctx, span := s.tracer.Start(ctx, tracer.SpanValidate,
		tracer.String(tracer.AttrMode, string(mode)),
		tracer.String(tracer.AttrKind, string(c.Kind())),
	)
	defer func() {
		span.End(err)
		s.metrics.ObserveValidateLatency(time.Since(start))
	}()

	closeSession, err := s.openSession(ctx)
	if err != nil {
		return nil, err
	}
	defer closeSession()

	var (
		verified bool
		rules    Result
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.evaluateSignature(gctx, c)
		verified = v
		return err
	})
	g.Go(func() error {
		r, err := s.evaluateRules(gctx, c, mode, now)
		rules = r
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "validation failed",
			"request_id", requestcontext.RequestID(ctx),
			"mode", mode,
			"error", err,
		)
		return nil, err
	}

	merged := rules
	if !verified {
		merged = newResult(CodeNotValid, "Invalid signature")
	}
	span.SetAttributes(tracer.String(tracer.AttrCode, string(merged.Code)))
	s.metrics.IncrementOutcome(string(merged.Code), string(mode), string(c.Kind()))
	s.logger.InfoContext(ctx, "certificate validated",
		"request_id", requestcontext.RequestID(ctx),
		"mode", mode,
		"kind", c.Kind(),
		"code", merged.Code,
		"rules_code", rules.Code,
		"signature_verified", verified,
	)

	return buildResponse(c, mode, merged, now), nil
}

// CheckRules runs the rules branch alone in its own session.
func (s *Service) CheckRules(ctx context.Context, c *certificate.Certificate, mode Mode) (*Result, error) {
	if c == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "certificate is required")
	}
	if !mode.Valid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown validation mode")
	}
	closeSession, err := s.openSession(ctx)
	if err != nil {
		return nil, err
	}
	defer closeSession()

	r, err := s.evaluateRules(ctx, c, mode, s.now(ctx))
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CheckSignature runs the signature branch alone in its own session.
func (s *Service) CheckSignature(ctx context.Context, c *certificate.Certificate) (bool, error) {
	if c == nil {
		return false, dErrors.New(dErrors.CodeBadRequest, "certificate is required")
	}
	closeSession, err := s.openSession(ctx)
	if err != nil {
		return false, err
	}
	defer closeSession()

	return s.evaluateSignature(ctx, c)
}

// openSession checks the store is set up and ready. The returned func tears
// the session down and must be called exactly once. On error the session has
// already been torn down.
func (s *Service) openSession(ctx context.Context) (func(), error) {
	closeSession := func() {
		if err := s.store.Teardown(context.WithoutCancel(ctx)); err != nil {
			s.logger.WarnContext(ctx, "trust store teardown failed", "error", err)
		}
	}
	if err := s.store.CheckSetUp(ctx); err != nil {
		closeSession()
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "trust store is not set up")
	}

	ready, err := s.store.IsReady(ctx)
	if err != nil {
		closeSession()
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "trust store readiness check failed")
	}
	if !ready {
		closeSession()
		return nil, dErrors.Wrap(sentinel.ErrNotReady, dErrors.CodeUnavailable, "trust store is not ready")
	}
	return closeSession, nil
}

func (s *Service) evaluateRules(ctx context.Context, c *certificate.Certificate, mode Mode, now time.Time) (result Result, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanRules, tracer.String(tracer.AttrKind, string(c.Kind())))
	defer func() { span.End(err) }()

	rules, err := s.store.Rules(ctx)
	if err != nil {
		return Result{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load rules")
	}
	span.SetAttributes(tracer.Int64(tracer.AttrRuleCount, int64(len(rules))))

	revoked, err := s.isRevoked(ctx, s.store, c, rules)
	if err != nil {
		return Result{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to check revocation")
	}
	if revoked {
		span.AddEvent(tracer.EventRevocationHit)
		return newResult(CodeRevoked, "UVCI is in blacklist"), nil
	}

	var out outcome
	switch c.Kind() {
	case certificate.KindVaccination:
		out = checkVaccination(c, rules, mode, now)
	case certificate.KindTest:
		out = checkTest(c, rules, mode, now)
	case certificate.KindRecovery:
		info, err := s.issuerInfo(ctx, c)
		if err != nil {
			return Result{}, err
		}
		out = checkRecovery(c, rules, mode, now, info)
	case certificate.KindExemption:
		out = checkExemption(c, mode, now)
	default:
		out = outcome{CodeNotEUDCC, "No vaccination, test, exemption or recovery statement found in payload"}
	}
	return newResult(out.code, out.message), nil
}

// issuerInfo describes the signer referenced by kid. Unknown or unreadable
// signers yield a zero Info.
func (s *Service) issuerInfo(ctx context.Context, c *certificate.Certificate) (issuer.Info, error) {
	keys, err := s.store.Signatures(ctx)
	if err != nil {
		return issuer.Info{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load signing keys")
	}
	raw, ok := keys[c.Kid]
	if !ok || s.inspector == nil {
		return issuer.Info{}, nil
	}
	info, err := s.inspector.Inspect(raw)
	if err != nil {
		s.logger.DebugContext(ctx, "signer inspection failed", "kid", c.Kid, "error", err)
		return issuer.Info{}, nil
	}
	return info, nil
}

func (s *Service) evaluateSignature(ctx context.Context, c *certificate.Certificate) (verified bool, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanSignature)
	defer func() { span.End(err) }()

	kids, err := s.store.SignatureList(ctx)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load signature list")
	}
	keys, err := s.store.Signatures(ctx)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load signing keys")
	}

	verified = s.verifySignature(ctx, c, kids, keys)
	span.SetAttributes(
		tracer.Bool(tracer.AttrKidKnown, keys[c.Kid] != nil),
		tracer.Bool(tracer.AttrVerified, verified),
	)
	s.metrics.IncrementSignatureCheck(verified)
	return verified, nil
}

func buildResponse(c *certificate.Certificate, mode Mode, r Result, now time.Time) *Response {
	resp := &Response{
		ValidationID: uuid.NewString(),
		Mode:         mode,
		EvaluatedAt:  now,
		Result:       r,
	}
	if c.Person != nil {
		name := c.Person.FullName()
		resp.Person = &name
	}
	if c.DateOfBirth != "" {
		dob := c.DateOfBirth
		resp.DateOfBirth = &dob
	}
	return resp
}
