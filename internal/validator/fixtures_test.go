package validator

import (
	"strconv"
	"time"

	"greenpass/internal/certificate"
	"greenpass/internal/validator/ports"
)

// fixedNow is the scan instant used across tests.
var fixedNow = time.Date(2022, 3, 1, 12, 0, 0, 0, time.UTC)

func rule(name, typ string, v float64) Rule {
	return Rule{Name: name, Type: typ, Value: ports.RuleValue(strconv.FormatFloat(v, 'f', -1, 64))}
}

func testRules() []Rule {
	return []Rule{
		rule("vaccine_start_day_not_complete", GenericType, 15),
		rule("vaccine_end_day_not_complete", GenericType, 42),
		rule("vaccine_start_day_not_complete", VaccineJohnson, 15),
		rule("vaccine_end_day_not_complete", VaccineJohnson, 180),
		rule("vaccine_start_day_complete_IT", GenericType, 0),
		rule("vaccine_end_day_complete_IT", GenericType, 180),
		rule("vaccine_start_day_booster_IT", GenericType, 0),
		rule("vaccine_end_day_booster_IT", GenericType, 180),
		rule("vaccine_start_day_complete_NOT_IT", GenericType, 0),
		rule("vaccine_end_day_complete_NOT_IT", GenericType, 270),
		rule("vaccine_start_day_booster_NOT_IT", GenericType, 0),
		rule("vaccine_end_day_booster_NOT_IT", GenericType, 270),
		rule("vaccine_end_day_complete_extended_EMA", GenericType, 270),
		rule("molecular_test_start_hours", GenericType, 0),
		rule("molecular_test_end_hours", GenericType, 72),
		rule("rapid_test_start_hours", GenericType, 0),
		rule("rapid_test_end_hours", GenericType, 48),
		rule("recovery_cert_start_day_IT", GenericType, 0),
		rule("recovery_cert_end_day_IT", GenericType, 180),
		rule("recovery_cert_start_day_NOT_IT", GenericType, 0),
		rule("recovery_cert_end_day_NOT_IT", GenericType, 270),
		rule("recovery_pv_cert_start_day", GenericType, 0),
		rule("recovery_pv_cert_end_day", GenericType, 270),
		{Name: "black_list_uvci", Type: "black_list_uvci", Value: "URN:UVCI:01:IT:BLACKLISTED;;URN:UVCI:01:IT:OTHER"},
	}
}

func withoutRule(rules []Rule, name string) []Rule {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Name != name {
			out = append(out, r)
		}
	}
	return out
}

func person() *certificate.Person {
	return &certificate.Person{GivenName: "Mario", FamilyName: "Rossi"}
}

func vaccinationCert(product, country string, dose, total int, date string) *certificate.Certificate {
	return &certificate.Certificate{
		Person:      person(),
		DateOfBirth: "1990-05-10",
		Kid:         "kid-it",
		Vaccinations: []certificate.Vaccination{{
			MedicinalProduct:      product,
			DoseNumber:            dose,
			TotalSeriesOfDoses:    total,
			DateOfVaccination:     date,
			CountryOfVaccination:  country,
			CertificateIdentifier: "URN:UVCI:01:IT:VAX",
		}},
	}
}

func testCert(typ, result, collected string) *certificate.Certificate {
	return &certificate.Certificate{
		Person:      person(),
		DateOfBirth: "1990-05-10",
		Kid:         "kid-it",
		Tests: []certificate.Test{{
			TypeOfTest:            typ,
			TestResult:            result,
			DateTimeOfCollection:  collected,
			CertificateIdentifier: "URN:UVCI:01:IT:TEST",
		}},
	}
}

func recoveryCert(from, until string) *certificate.Certificate {
	return &certificate.Certificate{
		Person:      person(),
		DateOfBirth: "1990-05-10",
		Kid:         "kid-it",
		RecoveryStatements: []certificate.Recovery{{
			CertificateValidFrom:  from,
			CertificateValidUntil: until,
			CertificateIdentifier: "URN:UVCI:01:IT:REC",
		}},
	}
}

func exemptionCert(from, until string) *certificate.Certificate {
	return &certificate.Certificate{
		Person:      person(),
		DateOfBirth: "1990-05-10",
		Kid:         "kid-it",
		Exemptions: []certificate.Exemption{{
			CertificateValidFrom:  from,
			CertificateValidUntil: until,
			CertificateIdentifier: "URN:UVCI:01:IT:EXE",
		}},
	}
}
