package trust

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"greenpass/internal/platform/metrics"
	"greenpass/internal/revocation"
	"greenpass/internal/trust/issuer/issuertest"
	"greenpass/internal/validator"
	"greenpass/internal/validator/ports"
	dErrors "greenpass/pkg/domain-errors"
	"greenpass/pkg/platform/sentinel"
)

type ManagerSuite struct {
	suite.Suite
	ctx     context.Context
	store   *revocation.InMemoryStore
	metrics *metrics.Trust
	mgr     *Manager
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = revocation.NewInMemoryStore()
	s.metrics = metrics.NewTrustWithRegisterer(prometheus.NewRegistry())
	s.mgr = NewManager(s.store, WithMetrics(s.metrics))
}

func completeRules() []ports.Rule {
	var rules []ports.Rule
	for _, name := range validator.RequiredRuleNames() {
		rules = append(rules, ports.Rule{Name: name, Type: validator.GenericType, Value: "1"})
	}
	return rules
}

func (s *ManagerSuite) TestReadinessNeedsRulesAndKeys() {
	s.Require().NoError(s.mgr.CheckSetUp(s.ctx))

	ready, err := s.mgr.IsReady(s.ctx)
	s.Require().NoError(err)
	s.False(ready)

	s.Require().NoError(s.mgr.ReplaceRules(s.ctx, completeRules()))
	s.False(s.mgr.Ready())

	signer := issuertest.NewSigner(s.T(), "IT")
	s.Require().NoError(s.mgr.ReplaceKeys(s.ctx, map[string][]byte{"kid-1": signer.PEM}))
	s.True(s.mgr.Ready())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Ready))
}

func (s *ManagerSuite) TestCheckSetUpWithoutRevocationStore() {
	err := NewManager(nil).CheckSetUp(s.ctx)
	s.ErrorIs(err, sentinel.ErrNotSetUp)
}

func (s *ManagerSuite) TestReplaceRules() {
	s.Run("missing required rule is rejected", func() {
		rules := completeRules()[1:]
		err := s.mgr.ReplaceRules(s.ctx, rules)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Contains(err.Error(), "missing rules")
	})

	s.Run("duplicate name and type is rejected", func() {
		rules := append(completeRules(), completeRules()[0])
		err := s.mgr.ReplaceRules(s.ctx, rules)
		s.Require().Error(err)
		s.Contains(err.Error(), "duplicate rule")
	})

	s.Run("same name with another type is allowed", func() {
		rules := append(completeRules(), ports.Rule{Name: "vaccine_end_day_not_complete", Type: validator.VaccineJohnson, Value: "180"})
		s.Require().NoError(s.mgr.ReplaceRules(s.ctx, rules))
	})

	s.Run("returned rules are a copy", func() {
		s.Require().NoError(s.mgr.ReplaceRules(s.ctx, completeRules()))
		got, err := s.mgr.Rules(s.ctx)
		s.Require().NoError(err)
		got[0].Value = "999"
		again, err := s.mgr.Rules(s.ctx)
		s.Require().NoError(err)
		s.Equal(ports.RuleValue("1"), again[0].Value)
	})

	s.Equal(2.0, testutil.ToFloat64(s.metrics.Reloads.WithLabelValues("rules", "error")))
	s.Equal(2.0, testutil.ToFloat64(s.metrics.Reloads.WithLabelValues("rules", "ok")))
}

func (s *ManagerSuite) TestReplaceKeys() {
	it := issuertest.NewSigner(s.T(), "IT")
	de := issuertest.NewSigner(s.T(), "DE")

	s.Require().NoError(s.mgr.ReplaceKeys(s.ctx, map[string][]byte{
		"b-kid": it.PEM,
		"a-kid": []byte(base64.StdEncoding.EncodeToString(de.DER)),
	}))

	list, err := s.mgr.SignatureList(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"a-kid", "b-kid"}, list)

	keys, err := s.mgr.Signatures(s.ctx)
	s.Require().NoError(err)
	s.Equal(it.DER, keys["b-kid"])
	s.Equal(de.DER, keys["a-kid"])

	err = s.mgr.ReplaceKeys(s.ctx, map[string][]byte{"bad": []byte("not a certificate")})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	list, err = s.mgr.SignatureList(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 2, "failed replacement keeps the previous keys")
}

func (s *ManagerSuite) TestCRL() {
	s.Require().NoError(s.mgr.ApplyCRL(s.ctx, []string{"U1", "U2"}, nil))
	revoked, err := s.mgr.IsUVCIRevoked(s.ctx, "U1")
	s.Require().NoError(err)
	s.True(revoked)

	s.Require().NoError(s.mgr.ApplyCRL(s.ctx, nil, []string{"U1"}))
	revoked, err = s.mgr.IsUVCIRevoked(s.ctx, "U1")
	s.Require().NoError(err)
	s.False(revoked)

	s.Require().NoError(s.mgr.CleanCRL(s.ctx))
	s.Zero(s.store.Len())
}

type brokenStore struct{ revocation.Store }

func (brokenStore) Apply(context.Context, []string, []string) error { return errors.New("down") }
func (brokenStore) Clean(context.Context) error                     { return errors.New("down") }

func (s *ManagerSuite) TestCRLStoreFailureIsUnavailable() {
	mgr := NewManager(brokenStore{})
	err := mgr.ApplyCRL(s.ctx, []string{"U1"}, nil)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	err = mgr.CleanCRL(s.ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func (s *ManagerSuite) TestLoadFiles() {
	dir := s.T().TempDir()
	signer := issuertest.NewSigner(s.T(), "IT")

	rulesJSON, err := json.Marshal(completeRules())
	s.Require().NoError(err)
	keysJSON, err := json.Marshal(map[string]string{"kid-1": string(signer.PEM)})
	s.Require().NoError(err)

	rulesPath := filepath.Join(dir, "rules.json")
	keysPath := filepath.Join(dir, "keys.json")
	s.Require().NoError(os.WriteFile(rulesPath, rulesJSON, 0o600))
	s.Require().NoError(os.WriteFile(keysPath, keysJSON, 0o600))

	s.Require().NoError(s.mgr.LoadFiles(s.ctx, rulesPath, keysPath))
	s.True(s.mgr.Ready())

	s.Error(s.mgr.LoadFiles(s.ctx, filepath.Join(dir, "missing.json"), ""))
}
