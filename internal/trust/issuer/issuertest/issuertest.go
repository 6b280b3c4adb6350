// Package issuertest builds throwaway document signer certificates for tests.
package issuertest

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/pem"
	"math/big"
	"strconv"
	"strings"
	"testing"
	"time"
)

// Signer is a P-256 key and its self-signed certificate in PEM form.
type Signer struct {
	Key *ecdsa.PrivateKey
	PEM []byte
	DER []byte
}

// NewSigner creates a signer issued in country with the given EKU OIDs,
// written in dotted form.
func NewSigner(t testing.TB, country string, ekus ...string) Signer {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject:      pkix.Name{Country: []string{country}, CommonName: "DSC " + country},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
	}
	for _, s := range ekus {
		tmpl.UnknownExtKeyUsage = append(tmpl.UnknownExtKeyUsage, mustOID(t, s))
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	return Signer{
		Key: key,
		DER: der,
		PEM: pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}),
	}
}

func mustOID(t testing.TB, dotted string) asn1.ObjectIdentifier {
	t.Helper()
	var oid asn1.ObjectIdentifier
	for _, part := range strings.Split(dotted, ".") {
		n, err := strconv.Atoi(part)
		if err != nil {
			t.Fatalf("bad oid %q: %v", dotted, err)
		}
		oid = append(oid, n)
	}
	return oid
}
