package issuer_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenpass/internal/trust/issuer"
	"greenpass/internal/trust/issuer/issuertest"
)

func TestInspect(t *testing.T) {
	t.Run("italian recovery-bis signer from PEM", func(t *testing.T) {
		s := issuertest.NewSigner(t, "IT", issuer.OIDRecovery, "1.3.6.1.4.1.1847.2021.1.1")

		info, err := issuer.Inspector{}.Inspect(s.PEM)
		require.NoError(t, err)
		assert.Equal(t, "IT", info.Country)
		assert.Equal(t, issuer.OIDRecovery, info.FirstExtKeyUsage())
		assert.True(t, info.IsRecoveryBis())
	})

	t.Run("alternate oid from base64 DER", func(t *testing.T) {
		s := issuertest.NewSigner(t, "IT", issuer.OIDAltRecovery)

		info, err := issuer.Inspector{}.Inspect([]byte(base64.StdEncoding.EncodeToString(s.DER)))
		require.NoError(t, err)
		assert.True(t, info.IsRecoveryBis())
	})

	t.Run("foreign signer is never recovery-bis", func(t *testing.T) {
		s := issuertest.NewSigner(t, "FR", issuer.OIDRecovery)

		info, err := issuer.Inspector{}.Inspect(s.DER)
		require.NoError(t, err)
		assert.Equal(t, "FR", info.Country)
		assert.False(t, info.IsRecoveryBis())
	})

	t.Run("no eku", func(t *testing.T) {
		s := issuertest.NewSigner(t, "IT")

		info, err := issuer.Inspector{}.Inspect(s.PEM)
		require.NoError(t, err)
		assert.Empty(t, info.FirstExtKeyUsage())
		assert.False(t, info.IsRecoveryBis())
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Inspector{}.Inspect([]byte("not a certificate"))
		assert.Error(t, err)
	})
}
