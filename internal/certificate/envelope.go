package certificate

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"

	"greenpass/internal/trust/issuer"
)

const (
	AlgES256 = "ES256"
	AlgPS256 = "PS256"
)

var (
	ErrUnsupportedAlg = errors.New("unsupported signature algorithm")
	ErrKeyMismatch    = errors.New("signer key does not match algorithm")
)

// DetachedEnvelope carries the signed COSE bytes and the detached signature.
// Decoding the COSE structure itself happens upstream.
type DetachedEnvelope struct {
	Alg        string `json:"alg"`
	SignedData []byte `json:"signedData"`
	Signature  []byte `json:"signature"`
}

// Verify validates the signature with the public key of signerCert.
func (e *DetachedEnvelope) Verify(signerCert []byte) (bool, error) {
	cert, err := issuer.ParseCertificate(signerCert)
	if err != nil {
		return false, err
	}
	digest := sha256.Sum256(e.SignedData)

	switch e.Alg {
	case AlgES256:
		pub, ok := cert.PublicKey.(*ecdsa.PublicKey)
		if !ok {
			return false, ErrKeyMismatch
		}
		// COSE uses raw r||s; accept ASN.1 as well.
		if len(e.Signature) == 64 {
			r := new(big.Int).SetBytes(e.Signature[:32])
			s := new(big.Int).SetBytes(e.Signature[32:])
			return ecdsa.Verify(pub, digest[:], r, s), nil
		}
		return ecdsa.VerifyASN1(pub, digest[:], e.Signature), nil
	case AlgPS256:
		pub, ok := cert.PublicKey.(*rsa.PublicKey)
		if !ok {
			return false, ErrKeyMismatch
		}
		if err := rsa.VerifyPSS(pub, crypto.SHA256, digest[:], e.Signature, nil); err != nil {
			return false, nil
		}
		return true, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnsupportedAlg, e.Alg)
	}
}
