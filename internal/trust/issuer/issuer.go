// Package issuer extracts the issuer country and extended key usages from a
// document signer certificate.
package issuer

import (
	"crypto/x509"
	"encoding/asn1"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// Recovery-bis markers carried as the first extended key usage of Italian
// recovery signers.
const (
	OIDRecovery    = "1.3.6.1.4.1.1847.2021.1.3"
	OIDAltRecovery = "1.3.6.1.4.1.0.1847.2021.1.3"
)

var oidExtKeyUsage = asn1.ObjectIdentifier{2, 5, 29, 37}

var ErrMalformedEKU = errors.New("malformed extended key usage extension")

// Info is what the validator needs to know about a signer.
type Info struct {
	Country string
	// ExtKeyUsages in certificate order.
	ExtKeyUsages []string
}

// FirstExtKeyUsage returns the first EKU OID or "".
func (i Info) FirstExtKeyUsage() string {
	if len(i.ExtKeyUsages) == 0 {
		return ""
	}
	return i.ExtKeyUsages[0]
}

// IsRecoveryBis reports whether the signer is Italian and marks recovery-bis.
func (i Info) IsRecoveryBis() bool {
	if i.Country != "IT" {
		return false
	}
	oid := i.FirstExtKeyUsage()
	return oid == OIDRecovery || oid == OIDAltRecovery
}

// Inspector implements the validator's issuer inspection port.
type Inspector struct{}

// Inspect parses raw signer bytes and extracts Info.
func (Inspector) Inspect(raw []byte) (Info, error) {
	cert, err := ParseCertificate(raw)
	if err != nil {
		return Info{}, err
	}
	return InfoFromCertificate(cert)
}

// ParseCertificate accepts PEM, base64 DER or raw DER.
func ParseCertificate(raw []byte) (*x509.Certificate, error) {
	if block, _ := pem.Decode(raw); block != nil {
		raw = block.Bytes
	} else if decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(raw))); err == nil {
		raw = decoded
	}
	cert, err := x509.ParseCertificate(raw)
	if err != nil {
		return nil, fmt.Errorf("parse signer certificate: %w", err)
	}
	return cert, nil
}

// InfoFromCertificate reads the issuer country and the EKU list.
// The EKU extension is walked directly so that unknown OIDs keep their
// position relative to the ones crypto/x509 recognises.
func InfoFromCertificate(cert *x509.Certificate) (Info, error) {
	info := Info{}
	if len(cert.Issuer.Country) > 0 {
		info.Country = cert.Issuer.Country[0]
	}
	for _, ext := range cert.Extensions {
		if !ext.Id.Equal(oidExtKeyUsage) {
			continue
		}
		oids, err := parseExtKeyUsage(ext.Value)
		if err != nil {
			return info, err
		}
		info.ExtKeyUsages = oids
		break
	}
	return info, nil
}

func parseExtKeyUsage(der []byte) ([]string, error) {
	input := cryptobyte.String(der)
	var seq cryptobyte.String
	if !input.ReadASN1(&seq, cbasn1.SEQUENCE) || !input.Empty() {
		return nil, ErrMalformedEKU
	}
	var oids []string
	for !seq.Empty() {
		var oid asn1.ObjectIdentifier
		if !seq.ReadASN1ObjectIdentifier(&oid) {
			return nil, ErrMalformedEKU
		}
		oids = append(oids, oid.String())
	}
	return oids, nil
}
