package validator

import (
	"fmt"
	"time"

	"greenpass/internal/certificate"
)

// Test types and results.
const (
	TestMolecular = "LP6464-4"
	TestRapid     = "LP217198-3"
	TestDetected  = "260373001"
)

func checkTest(c *certificate.Certificate, rules []Rule, mode Mode, now time.Time) outcome {
	switch p := mode.policy(); {
	case p == ModeBooster || p == ModeSuper:
		return outcome{CodeNotValid, "Not valid. Super DGP or Booster required."}
	case p == ModeWork && holderOver50(c.DateOfBirth, now):
		return outcome{CodeNotValid, "Not valid for workers with age >= 50 years."}
	}

	out, err := evaluateTest(c, rules, now)
	if err != nil {
		return outcome{CodeNotEUDCC, "Test Result is not present or is not a green pass : " + err.Error()}
	}
	return out
}

func evaluateTest(c *certificate.Certificate, rules []Rule, now time.Time) (outcome, error) {
	if len(c.Tests) == 0 {
		return outcome{}, fmt.Errorf("no test entries")
	}
	last := c.Tests[len(c.Tests)-1]

	window, ok := testWindows[last.TypeOfTest]
	if !ok {
		return outcome{CodeNotValid, "Test type is not valid"}, nil
	}
	startHours, err := lookupFloat(rules, window.start, GenericType)
	if err != nil {
		return outcome{}, err
	}
	endHours, err := lookupFloat(rules, window.end, GenericType)
	if err != nil {
		return outcome{}, err
	}
	if last.TestResult == TestDetected {
		return outcome{CodeNotValid, "Test Result is DETECTED"}, nil
	}
	collected, err := ParseDate(last.DateTimeOfCollection)
	if err != nil {
		return outcome{}, err
	}

	start := AddHours(collected, startHours)
	end := AddHours(collected, endHours)
	switch {
	case start.After(now):
		return outcome{CodeNotValidYet, "Test Result is not valid yet, starts at : " + iso(start)}, nil
	case now.After(end):
		return outcome{CodeNotValid, "Test Result is expired at : " + iso(end)}, nil
	default:
		return outcome{CodeValid, fmt.Sprintf("Test Result is valid [ %s - %s ] ", iso(start), iso(end))}, nil
	}
}
