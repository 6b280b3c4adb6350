package validator

import (
	"fmt"
	"slices"
	"time"

	"greenpass/internal/certificate"
)

// Vaccine products.
const (
	VaccineJohnson            = "EU/1/20/1525"
	VaccineModerna            = "EU/1/20/1507"
	VaccinePfizer             = "EU/1/20/1528"
	VaccineAstraZeneca        = "EU/1/21/1529"
	VaccineCovishield         = "Covishield"
	VaccineRCovi              = "R-COVI"
	VaccineCovid19Recombinant = "Covid-19-recombinant"
	VaccineSputnik            = "Sputnik-V"
)

const (
	countryItaly     = "IT"
	countrySanMarino = "SM"
)

var emaVaccines = []string{
	VaccineJohnson, VaccineModerna, VaccinePfizer, VaccineAstraZeneca,
	VaccineCovishield, VaccineRCovi, VaccineCovid19Recombinant,
}

// IsEMA reports EMA recognition. Sputnik-V counts only when administered in
// San Marino.
func IsEMA(product, country string) bool {
	return slices.Contains(emaVaccines, product) || (product == VaccineSputnik && country == countrySanMarino)
}

func statusOf(v certificate.Vaccination) vaccineStatus {
	if v.DoseNumber < v.TotalSeriesOfDoses {
		return statusNotComplete
	}
	if v.MedicinalProduct == VaccineJohnson && v.DoseNumber >= 2 {
		return statusBooster
	}
	if v.DoseNumber >= 3 {
		return statusBooster
	}
	return statusComplete
}

type vaccineFacts struct {
	status  vaccineStatus
	ema     bool
	italian bool
	over50  bool
}

// vaccinePlan is a policy decision: reject with a message, or evaluate the
// window with optional extension and forced test.
type vaccinePlan struct {
	reject     string
	extended   bool
	testNeeded bool
}

type vaccinePolicy struct {
	scope  scope
	decide func(vaccineFacts) vaccinePlan
}

const msgNotEMA = "Vaccine is not EMA"

var vaccinationPolicies = map[Mode]vaccinePolicy{
	ModeNormal: {scope: scopeDomestic, decide: func(f vaccineFacts) vaccinePlan {
		if !f.ema {
			return vaccinePlan{reject: msgNotEMA}
		}
		return vaccinePlan{}
	}},
	ModeEntry: {scope: scopeForeign, decide: func(f vaccineFacts) vaccinePlan {
		if !f.ema {
			return vaccinePlan{reject: msgNotEMA}
		}
		if f.status == statusNotComplete {
			return vaccinePlan{reject: "Required complete vaccination to travel to Italy"}
		}
		return vaccinePlan{}
	}},
	ModeSuper: {scope: scopeDomestic, decide: func(f vaccineFacts) vaccinePlan {
		switch f.status {
		case statusNotComplete:
			if !f.ema {
				return vaccinePlan{reject: "Vaccine not complete and not EMA"}
			}
			return vaccinePlan{}
		case statusComplete:
			return vaccinePlan{extended: !f.italian || !f.ema, testNeeded: !f.ema}
		default:
			return vaccinePlan{testNeeded: !f.ema}
		}
	}},
	ModeBooster: {scope: scopeDomestic, decide: func(f vaccineFacts) vaccinePlan {
		switch f.status {
		case statusNotComplete:
			return vaccinePlan{reject: "Required complete vaccination"}
		case statusComplete:
			return vaccinePlan{testNeeded: true}
		default:
			return vaccinePlan{testNeeded: !f.ema}
		}
	}},
	ModeWork: {scope: scopeDomestic, decide: func(f vaccineFacts) vaccinePlan {
		if !f.over50 && !f.ema {
			return vaccinePlan{reject: "Not EMA vaccine is not valid for worker with age < 50 years"}
		}
		switch f.status {
		case statusNotComplete:
			if !f.ema {
				return vaccinePlan{reject: "Vaccine not complete and not EMA"}
			}
			return vaccinePlan{}
		case statusComplete:
			return vaccinePlan{
				extended:   f.over50 && (!f.italian || !f.ema),
				testNeeded: f.over50 && !f.ema,
			}
		default:
			return vaccinePlan{}
		}
	}},
}

func checkVaccination(c *certificate.Certificate, rules []Rule, mode Mode, now time.Time) outcome {
	out, err := evaluateVaccination(c, rules, mode, now)
	if err != nil {
		return outcome{CodeNotEUDCC, "Vaccination is not present or is not a green pass : " + err.Error()}
	}
	return out
}

func evaluateVaccination(c *certificate.Certificate, rules []Rule, mode Mode, now time.Time) (outcome, error) {
	if len(c.Vaccinations) == 0 {
		return outcome{}, fmt.Errorf("no vaccination entries")
	}
	last := c.Vaccinations[len(c.Vaccinations)-1]
	product := last.MedicinalProduct

	if product == "" {
		return outcome{CodeNotValid, "Vaccine Type is empty"}, nil
	}
	doses := fmt.Sprintf("Doses %d/%d", last.DoseNumber, last.TotalSeriesOfDoses)
	if last.DoseNumber <= 0 {
		return outcome{CodeNotValid, doses + " - Invalid number of doses"}, nil
	}

	vaccinated, err := ParseDate(last.DateOfVaccination)
	if err != nil {
		return outcome{}, err
	}

	policy := vaccinationPolicies[mode.policy()]
	facts := vaccineFacts{
		status:  statusOf(last),
		ema:     IsEMA(product, last.CountryOfVaccination),
		italian: last.CountryOfVaccination == countryItaly,
		// Workers are judged by their age on the vaccination date.
		over50: holderOver50(c.DateOfBirth, vaccinated),
	}
	plan := policy.decide(facts)
	if plan.reject != "" {
		return outcome{CodeNotValid, plan.reject}, nil
	}

	window := vaccinationWindows[policy.scope][facts.status]
	typ := GenericType
	if window.productTyped {
		typ = product
	}
	startDays, err := lookupFloat(rules, window.start, typ)
	if err != nil {
		return outcome{}, err
	}
	endDays, err := lookupFloat(rules, window.end, typ)
	if err != nil {
		return outcome{}, err
	}
	var extendedDays float64
	if plan.extended {
		if extendedDays, err = lookupFloat(rules, ruleExtendedEMA, GenericType); err != nil {
			return outcome{}, err
		}
	}

	start := AddDays(vaccinated, startDays)
	end := AddDays(vaccinated, endDays)
	startNow, endNow := StartOfDay(now), EndOfDay(now)

	switch {
	case start.After(endNow):
		return outcome{CodeNotValidYet, fmt.Sprintf("%s - Vaccination is not valid yet, starts at : %s", doses, iso(start))}, nil
	case !endNow.After(end):
		if plan.testNeeded {
			return outcome{CodeTestNeeded, "Test needed"}, nil
		}
		return outcome{CodeValid, fmt.Sprintf("%s - Vaccination is valid [ %s - %s ] ", doses, iso(start), iso(end))}, nil
	case plan.extended && endNow.Before(AddDays(end, extendedDays)):
		return outcome{CodeTestNeeded, "Test needed"}, nil
	case startNow.After(end):
		return outcome{CodeNotValid, fmt.Sprintf("%s - Vaccination is expired at : %s", doses, iso(end))}, nil
	default:
		// Reached on the calendar day the window ends.
		return outcome{CodeNotValid, "Vaccination format is invalid"}, nil
	}
}
