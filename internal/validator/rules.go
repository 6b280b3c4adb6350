package validator

import (
	"errors"
	"fmt"
	"sort"

	pstrings "greenpass/pkg/platform/strings"
)

// GenericType is the catch-all rule type.
const GenericType = "GENERIC"

var ErrRuleNotFound = errors.New("rule not found")

// Rule names used outside the vaccination tables.
const (
	ruleBlacklist          = "black_list_uvci"
	ruleExtendedEMA        = "vaccine_end_day_complete_extended_EMA"
	ruleMolecularTestStart = "molecular_test_start_hours"
	ruleMolecularTestEnd   = "molecular_test_end_hours"
	ruleRapidTestStart     = "rapid_test_start_hours"
	ruleRapidTestEnd       = "rapid_test_end_hours"
)

// Lookup returns the rule keyed (name, type), falling back to
// (name, GENERIC). An empty type means GENERIC.
func Lookup(rules []Rule, name, typ string) (Rule, error) {
	if typ == "" {
		typ = GenericType
	}
	for _, r := range rules {
		if r.Name == name && r.Type == typ {
			return r, nil
		}
	}
	if typ != GenericType {
		for _, r := range rules {
			if r.Name == name && r.Type == GenericType {
				return r, nil
			}
		}
	}
	return Rule{}, fmt.Errorf("%w: %s (%s)", ErrRuleNotFound, name, typ)
}

// lookupFloat returns the numeric value of a rule.
func lookupFloat(rules []Rule, name, typ string) (float64, error) {
	r, err := Lookup(rules, name, typ)
	if err != nil {
		return 0, err
	}
	return r.Value.Float()
}

// blacklist returns the statically revoked identifiers. A missing rule is an
// empty blacklist.
func blacklist(rules []Rule) map[string]struct{} {
	out := map[string]struct{}{}
	r, err := Lookup(rules, ruleBlacklist, ruleBlacklist)
	if err != nil {
		return out
	}
	for _, id := range pstrings.SplitList(r.Value.String(), ";") {
		out[id] = struct{}{}
	}
	return out
}

// windowRules names the start and end offsets for one window.
// productTyped rules are looked up with the vaccine product as type.
type windowRules struct {
	start, end   string
	productTyped bool
}

type scope int

const (
	scopeDomestic scope = iota
	scopeForeign
)

type vaccineStatus int

const (
	statusNotComplete vaccineStatus = iota
	statusComplete
	statusBooster
)

func (s vaccineStatus) String() string {
	switch s {
	case statusNotComplete:
		return "Not complete"
	case statusComplete:
		return "Complete"
	default:
		return "Booster"
	}
}

var vaccineStatuses = []vaccineStatus{statusNotComplete, statusComplete, statusBooster}

var notCompleteWindow = windowRules{
	start:        "vaccine_start_day_not_complete",
	end:          "vaccine_end_day_not_complete",
	productTyped: true,
}

// vaccinationWindows is keyed by scope then status.
var vaccinationWindows = map[scope]map[vaccineStatus]windowRules{
	scopeDomestic: {
		statusNotComplete: notCompleteWindow,
		statusComplete:    {start: "vaccine_start_day_complete_IT", end: "vaccine_end_day_complete_IT"},
		statusBooster:     {start: "vaccine_start_day_booster_IT", end: "vaccine_end_day_booster_IT"},
	},
	scopeForeign: {
		statusNotComplete: notCompleteWindow,
		statusComplete:    {start: "vaccine_start_day_complete_NOT_IT", end: "vaccine_end_day_complete_NOT_IT"},
		statusBooster:     {start: "vaccine_start_day_booster_NOT_IT", end: "vaccine_end_day_booster_NOT_IT"},
	},
}

// testWindows is keyed by test type.
var testWindows = map[string]windowRules{
	TestMolecular: {start: ruleMolecularTestStart, end: ruleMolecularTestEnd},
	TestRapid:     {start: ruleRapidTestStart, end: ruleRapidTestEnd},
}

// recoveryWindows is keyed by scope; recoveryBisWindow overrides both.
var recoveryWindows = map[scope]windowRules{
	scopeDomestic: {start: "recovery_cert_start_day_IT", end: "recovery_cert_end_day_IT"},
	scopeForeign:  {start: "recovery_cert_start_day_NOT_IT", end: "recovery_cert_end_day_NOT_IT"},
}

var recoveryBisWindow = windowRules{start: "recovery_pv_cert_start_day", end: "recovery_pv_cert_end_day"}

func scopeFor(m Mode) scope {
	if m == ModeEntry {
		return scopeForeign
	}
	return scopeDomestic
}

// CheckRuleTables verifies every mode has a vaccination policy and every
// (scope, status) pair reachable from it names a window. It runs at startup
// so a table gap fails there rather than on a scanned certificate.
func CheckRuleTables() error {
	for _, m := range Modes {
		policy, ok := vaccinationPolicies[m.policy()]
		if !ok {
			return fmt.Errorf("no vaccination policy for mode %s", m)
		}
		windows, ok := vaccinationWindows[policy.scope]
		if !ok {
			return fmt.Errorf("no vaccination windows for mode %s", m)
		}
		for _, st := range vaccineStatuses {
			for _, f := range factCombinations(st) {
				plan := policy.decide(f)
				if plan.reject != "" {
					continue
				}
				w, ok := windows[st]
				if !ok || w.start == "" || w.end == "" {
					return fmt.Errorf("mode %s status %s has no window", m, st)
				}
			}
		}
		if _, ok := recoveryWindows[scopeFor(m.policy())]; !ok {
			return fmt.Errorf("no recovery window for mode %s", m)
		}
	}
	return nil
}

// factCombinations enumerates EMA, Italian and age facts for a status.
func factCombinations(st vaccineStatus) []vaccineFacts {
	var out []vaccineFacts
	for _, ema := range []bool{false, true} {
		for _, italian := range []bool{false, true} {
			for _, over50 := range []bool{false, true} {
				out = append(out, vaccineFacts{status: st, ema: ema, italian: italian, over50: over50})
			}
		}
	}
	return out
}

// RequiredRuleNames lists the GENERIC rules the tables reference. Product
// typed not-complete windows are excluded since they depend on the product.
func RequiredRuleNames() []string {
	seen := map[string]struct{}{ruleExtendedEMA: {}}
	add := func(w windowRules) {
		if w.productTyped {
			return
		}
		seen[w.start] = struct{}{}
		seen[w.end] = struct{}{}
	}
	for _, byStatus := range vaccinationWindows {
		for _, w := range byStatus {
			add(w)
		}
	}
	for _, w := range testWindows {
		add(w)
	}
	for _, w := range recoveryWindows {
		add(w)
	}
	add(recoveryBisWindow)

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
