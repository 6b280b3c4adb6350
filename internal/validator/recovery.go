package validator

import (
	"fmt"
	"time"

	"greenpass/internal/certificate"
	"greenpass/internal/trust/issuer"
)

// checkRecovery evaluates the last recovery statement. info describes the
// signer of the certificate; a zero Info means the signer is unknown.
func checkRecovery(c *certificate.Certificate, rules []Rule, mode Mode, now time.Time, info issuer.Info) outcome {
	out, err := evaluateRecovery(c, rules, mode, now, info)
	if err != nil {
		return outcome{CodeNotEUDCC, "Recovery statement is not present or is not a green pass : " + err.Error()}
	}
	return out
}

func evaluateRecovery(c *certificate.Certificate, rules []Rule, mode Mode, now time.Time, info issuer.Info) (outcome, error) {
	recoveryBis := info.IsRecoveryBis()
	window := recoveryWindows[scopeFor(mode.policy())]
	if recoveryBis {
		window = recoveryBisWindow
	}
	startDays, err := lookupFloat(rules, window.start, GenericType)
	if err != nil {
		return outcome{}, err
	}
	endDays, err := lookupFloat(rules, window.end, GenericType)
	if err != nil {
		return outcome{}, err
	}

	if len(c.RecoveryStatements) == 0 {
		return outcome{}, fmt.Errorf("no recovery statements")
	}
	last := c.RecoveryStatements[len(c.RecoveryStatements)-1]
	validFrom, err := ParseDate(last.CertificateValidFrom)
	if err != nil {
		return outcome{}, err
	}
	validUntil, err := ParseDate(last.CertificateValidUntil)
	if err != nil {
		return outcome{}, err
	}

	// The end offset counts from the shifted start.
	start := AddDays(validFrom, startDays)
	end := AddDays(start, endDays)
	switch {
	case start.After(now):
		return outcome{CodeNotValidYet, "Recovery statement is not valid yet, starts at : " + iso(validFrom)}, nil
	case now.After(end):
		return outcome{CodeNotValid, "Recovery statement is expired at : " + iso(validUntil)}, nil
	case mode.policy() == ModeBooster && !recoveryBis:
		return outcome{CodeTestNeeded, "Test needed"}, nil
	default:
		return outcome{CodeValid, fmt.Sprintf("Recovery statement is valid [ %s - %s ] ", iso(validFrom), iso(validUntil))}, nil
	}
}
