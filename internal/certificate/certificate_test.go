package certificate_test

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenpass/internal/certificate"
	"greenpass/internal/trust/issuer/issuertest"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		json string
		want certificate.Kind
	}{
		{"vaccination", `{"vaccinations":[{"medicinalProduct":"EU/1/20/1528"}]}`, certificate.KindVaccination},
		{"empty vaccination list still selects kind", `{"vaccinations":[]}`, certificate.KindVaccination},
		{"test", `{"tests":[{"typeOfTest":"LP6464-4"}]}`, certificate.KindTest},
		{"recovery", `{"recoveryStatements":[{}]}`, certificate.KindRecovery},
		{"exemption", `{"exemptions":[{}]}`, certificate.KindExemption},
		{"none", `{"person":{"givenName":"A","familyName":"B"}}`, certificate.KindNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c certificate.Certificate
			require.NoError(t, json.Unmarshal([]byte(tt.json), &c))
			assert.Equal(t, tt.want, c.Kind())
		})
	}
}

func TestIdentifiersCoverFullHistory(t *testing.T) {
	c := certificate.Certificate{Vaccinations: []certificate.Vaccination{
		{CertificateIdentifier: "URN:UVCI:01:IT:A"},
		{CertificateIdentifier: "URN:UVCI:01:IT:B"},
	}}
	assert.Equal(t, []string{"URN:UVCI:01:IT:A", "URN:UVCI:01:IT:B"}, c.Identifiers())
}

func TestVerifySignature(t *testing.T) {
	signer := issuertest.NewSigner(t, "IT")
	payload := []byte("cose sig_structure bytes")
	digest := sha256.Sum256(payload)

	r, s, err := ecdsa.Sign(rand.Reader, signer.Key, digest[:])
	require.NoError(t, err)
	raw := make([]byte, 64)
	r.FillBytes(raw[:32])
	s.FillBytes(raw[32:])

	asn1Sig, err := ecdsa.SignASN1(rand.Reader, signer.Key, digest[:])
	require.NoError(t, err)

	t.Run("raw r||s", func(t *testing.T) {
		c := certificate.Certificate{Envelope: &certificate.DetachedEnvelope{Alg: certificate.AlgES256, SignedData: payload, Signature: raw}}
		ok, err := c.VerifySignature(signer.PEM)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("asn1", func(t *testing.T) {
		c := certificate.Certificate{Envelope: &certificate.DetachedEnvelope{Alg: certificate.AlgES256, SignedData: payload, Signature: asn1Sig}}
		ok, err := c.VerifySignature(signer.DER)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("tampered payload", func(t *testing.T) {
		c := certificate.Certificate{Envelope: &certificate.DetachedEnvelope{Alg: certificate.AlgES256, SignedData: []byte("other"), Signature: raw}}
		ok, err := c.VerifySignature(signer.PEM)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("wrong key", func(t *testing.T) {
		other := issuertest.NewSigner(t, "FR")
		c := certificate.Certificate{Envelope: &certificate.DetachedEnvelope{Alg: certificate.AlgES256, SignedData: payload, Signature: raw}}
		ok, err := c.VerifySignature(other.PEM)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("algorithm mismatch", func(t *testing.T) {
		c := certificate.Certificate{Envelope: &certificate.DetachedEnvelope{Alg: certificate.AlgPS256, SignedData: payload, Signature: raw}}
		_, err := c.VerifySignature(signer.PEM)
		assert.ErrorIs(t, err, certificate.ErrKeyMismatch)
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		c := certificate.Certificate{Envelope: &certificate.DetachedEnvelope{Alg: "EdDSA", SignedData: payload, Signature: raw}}
		_, err := c.VerifySignature(signer.PEM)
		assert.ErrorIs(t, err, certificate.ErrUnsupportedAlg)
	})

	t.Run("missing envelope", func(t *testing.T) {
		_, err := (&certificate.Certificate{}).VerifySignature(signer.PEM)
		assert.ErrorIs(t, err, certificate.ErrNoEnvelope)
	})
}
