package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"greenpass/internal/trust/handler/mocks"
	"greenpass/internal/validator/ports"
	dErrors "greenpass/pkg/domain-errors"
	"greenpass/pkg/platform/middleware/adminauth"
	"greenpass/pkg/testutil"
)

type testEnv struct {
	router   http.Handler
	service  *mocks.MockService
	verifier *adminauth.Verifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	svc := mocks.NewMockService(ctrl)
	verifier := adminauth.NewVerifier("test-signing-key", "greenpass-admin")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	New(svc, verifier, logger).Register(r)
	return &testEnv{router: r, service: svc, verifier: verifier}
}

func (e *testEnv) do(t *testing.T, method, path, body, scope string) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.NewRequestWithBody(t, method, path, body)
	if scope != "" {
		token, err := e.verifier.Issue("ops@example.org", scope, time.Minute)
		require.NoError(t, err)
		testutil.WithBearer(req, token)
	}
	return testutil.DoRequest(e.router, req)
}

func TestAdminAuth(t *testing.T) {
	t.Run("401 - no token", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodDelete, "/v1/admin/crl", "", "")
		testutil.AssertStatusAndError(t, rec, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("403 - wrong scope", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodDelete, "/v1/admin/crl", "", "trust:read")
		testutil.AssertStatusAndError(t, rec, http.StatusForbidden, "forbidden")
	})
}

func TestHandleReplaceRules(t *testing.T) {
	t.Run("200 - rules replaced", func(t *testing.T) {
		env := newTestEnv(t)
		env.service.EXPECT().ReplaceRules(gomock.Any(), []ports.Rule{
			{Name: "rapid_test_end_hours", Type: "GENERIC", Value: "48"},
		}).Return(nil)

		rec := env.do(t, http.MethodPut, "/v1/admin/rules",
			`{"rules":[{"name":"rapid_test_end_hours","type":"GENERIC","value":48}]}`, adminauth.ScopeTrustWrite)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"replaced","count":1}`, rec.Body.String())
	})

	t.Run("400 - empty rule list", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodPut, "/v1/admin/rules", `{"rules":[]}`, adminauth.ScopeTrustWrite)
		testutil.AssertStatusAndError(t, rec, http.StatusBadRequest, "validation_error")
	})

	t.Run("400 - rule without type", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodPut, "/v1/admin/rules", `{"rules":[{"name":"x","value":"1"}]}`, adminauth.ScopeTrustWrite)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("400 - incomplete rule set from service", func(t *testing.T) {
		env := newTestEnv(t)
		env.service.EXPECT().ReplaceRules(gomock.Any(), gomock.Any()).
			Return(dErrors.New(dErrors.CodeValidation, "missing rules: rapid_test_start_hours"))

		rec := env.do(t, http.MethodPut, "/v1/admin/rules",
			`{"rules":[{"name":"rapid_test_end_hours","type":"GENERIC","value":"48"}]}`, adminauth.ScopeTrustWrite)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "rapid_test_start_hours")
	})
}

func TestHandleReplaceKeys(t *testing.T) {
	env := newTestEnv(t)
	env.service.EXPECT().ReplaceKeys(gomock.Any(), map[string][]byte{"kid-1": []byte("MIIB")}).Return(nil)

	rec := env.do(t, http.MethodPut, "/v1/admin/keys", `{"keys":{"kid-1":"MIIB"}}`, adminauth.ScopeTrustWrite)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPut, "/v1/admin/keys", `{"keys":{"kid-1":"  "}}`, adminauth.ScopeTrustWrite)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCRL(t *testing.T) {
	t.Run("200 - delta applied", func(t *testing.T) {
		env := newTestEnv(t)
		env.service.EXPECT().ApplyCRL(gomock.Any(), []string{"A"}, []string{"B"}).Return(nil)

		rec := env.do(t, http.MethodPost, "/v1/admin/crl", `{"revoked":["A"],"deleted":["B"]}`, adminauth.ScopeTrustWrite)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"applied","count":2}`, rec.Body.String())
	})

	t.Run("400 - empty delta", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodPost, "/v1/admin/crl", `{}`, adminauth.ScopeTrustWrite)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("503 - store down", func(t *testing.T) {
		env := newTestEnv(t)
		env.service.EXPECT().ApplyCRL(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(dErrors.Wrap(errors.New("dial tcp"), dErrors.CodeUnavailable, "revocation store unavailable"))

		rec := env.do(t, http.MethodPost, "/v1/admin/crl", `{"revoked":["A"]}`, adminauth.ScopeTrustWrite)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("204 - cleaned", func(t *testing.T) {
		env := newTestEnv(t)
		env.service.EXPECT().CleanCRL(gomock.Any()).Return(nil)

		rec := env.do(t, http.MethodDelete, "/v1/admin/crl", "", adminauth.ScopeTrustWrite)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
