// Package certificate holds the decoded digital COVID certificate as it
// arrives from the decoding collaborator.
package certificate

import "errors"

// Kind names the populated payload of a certificate.
type Kind string

const (
	KindNone        Kind = "none"
	KindVaccination Kind = "vaccination"
	KindTest        Kind = "test"
	KindRecovery    Kind = "recovery"
	KindExemption   Kind = "exemption"
)

var ErrNoEnvelope = errors.New("certificate has no signature envelope")

type Person struct {
	GivenName              string `json:"givenName"`
	FamilyName             string `json:"familyName"`
	StandardisedGivenName  string `json:"standardisedGivenName,omitempty"`
	StandardisedFamilyName string `json:"standardisedFamilyName,omitempty"`
}

// FullName is "<given> <family>".
func (p Person) FullName() string {
	return p.GivenName + " " + p.FamilyName
}

type Vaccination struct {
	DiseaseTargeted       string `json:"diseaseTargeted,omitempty"`
	MedicinalProduct      string `json:"medicinalProduct"`
	Manufacturer          string `json:"manufacturer,omitempty"`
	DoseNumber            int    `json:"doseNumber"`
	TotalSeriesOfDoses    int    `json:"totalSeriesOfDoses"`
	DateOfVaccination     string `json:"dateOfVaccination"`
	CountryOfVaccination  string `json:"countryOfVaccination"`
	CertificateIssuer     string `json:"certificateIssuer,omitempty"`
	CertificateIdentifier string `json:"certificateIdentifier"`
}

type Test struct {
	DiseaseTargeted       string `json:"diseaseTargeted,omitempty"`
	TypeOfTest            string `json:"typeOfTest"`
	TestResult            string `json:"testResult"`
	DateTimeOfCollection  string `json:"dateTimeOfCollection"`
	CountryOfTest         string `json:"countryOfTest,omitempty"`
	CertificateIssuer     string `json:"certificateIssuer,omitempty"`
	CertificateIdentifier string `json:"certificateIdentifier"`
}

type Recovery struct {
	DiseaseTargeted       string `json:"diseaseTargeted,omitempty"`
	DateOfFirstPositive   string `json:"dateOfFirstPositiveTest,omitempty"`
	CountryOfTest         string `json:"countryOfTest,omitempty"`
	CertificateIssuer     string `json:"certificateIssuer,omitempty"`
	CertificateValidFrom  string `json:"certificateValidFrom"`
	CertificateValidUntil string `json:"certificateValidUntil"`
	CertificateIdentifier string `json:"certificateIdentifier"`
}

type Exemption struct {
	DiseaseTargeted       string `json:"diseaseTargeted,omitempty"`
	CountryOfExemption    string `json:"countryOfExemption,omitempty"`
	CertificateIssuer     string `json:"certificateIssuer,omitempty"`
	CertificateValidFrom  string `json:"certificateValidFrom"`
	CertificateValidUntil string `json:"certificateValidUntil,omitempty"`
	CertificateIdentifier string `json:"certificateIdentifier"`
}

// Certificate is a decoded DCC. Exactly one of the entry lists is expected to
// be non-nil; a present but empty list still selects that kind.
type Certificate struct {
	Person             *Person       `json:"person,omitempty"`
	DateOfBirth        string        `json:"dateOfBirth,omitempty"`
	Kid                string        `json:"kid,omitempty"`
	Vaccinations       []Vaccination `json:"vaccinations,omitempty"`
	Tests              []Test        `json:"tests,omitempty"`
	RecoveryStatements []Recovery    `json:"recoveryStatements,omitempty"`
	Exemptions         []Exemption   `json:"exemptions,omitempty"`

	Envelope *DetachedEnvelope `json:"envelope,omitempty"`
}

// Kind picks the populated payload in dispatch order.
func (c *Certificate) Kind() Kind {
	switch {
	case c.Vaccinations != nil:
		return KindVaccination
	case c.Tests != nil:
		return KindTest
	case c.RecoveryStatements != nil:
		return KindRecovery
	case c.Exemptions != nil:
		return KindExemption
	default:
		return KindNone
	}
}

// Identifiers returns every certificate identifier on the credential, full
// history included.
func (c *Certificate) Identifiers() []string {
	var ids []string
	for _, v := range c.Vaccinations {
		ids = append(ids, v.CertificateIdentifier)
	}
	for _, t := range c.Tests {
		ids = append(ids, t.CertificateIdentifier)
	}
	for _, r := range c.RecoveryStatements {
		ids = append(ids, r.CertificateIdentifier)
	}
	for _, e := range c.Exemptions {
		ids = append(ids, e.CertificateIdentifier)
	}
	return ids
}

// VerifySignature checks the envelope against the signer certificate bytes.
func (c *Certificate) VerifySignature(signerCert []byte) (bool, error) {
	if c.Envelope == nil {
		return false, ErrNoEnvelope
	}
	return c.Envelope.Verify(signerCert)
}
