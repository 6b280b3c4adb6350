package validator

import (
	"fmt"
	"time"

	"greenpass/internal/certificate"
)

func checkExemption(c *certificate.Certificate, mode Mode, now time.Time) outcome {
	switch mode.policy() {
	case ModeBooster:
		return outcome{CodeTestNeeded, "Test needed"}
	case ModeEntry:
		return outcome{CodeNotValid, "Exemption is not valid"}
	}

	out, err := evaluateExemption(c, now)
	if err != nil {
		return outcome{CodeNotEUDCC, "Exemption is not present or is not a green pass : " + err.Error()}
	}
	return out
}

// evaluateExemption compares now against the literal validity dates. Both
// bounds are required.
func evaluateExemption(c *certificate.Certificate, now time.Time) (outcome, error) {
	if len(c.Exemptions) == 0 {
		return outcome{}, fmt.Errorf("no exemption entries")
	}
	last := c.Exemptions[len(c.Exemptions)-1]
	validFrom, err := ParseDate(last.CertificateValidFrom)
	if err != nil {
		return outcome{}, err
	}
	validUntil, err := ParseDate(last.CertificateValidUntil)
	if err != nil {
		return outcome{}, err
	}

	switch {
	case validFrom.After(now):
		return outcome{CodeNotValidYet, "Exemption is not valid yet, starts at : " + iso(validFrom)}, nil
	case now.After(validUntil):
		return outcome{CodeNotValid, "Exemption is expired at : " + iso(validUntil)}, nil
	default:
		return outcome{CodeValid, fmt.Sprintf("Exemption is valid [ %s - %s ] ", iso(validFrom), iso(validUntil))}, nil
	}
}
