package validator

import (
	"fmt"
	"strings"
	"time"

	"greenpass/internal/validator/ports"
)

// Rule is re-exported so callers do not need the ports package.
type Rule = ports.Rule

// Code is the closed set of validation outcomes.
type Code string

const (
	CodeValid       Code = "VALID"
	CodeNotValid    Code = "NOT_VALID"
	CodeNotValidYet Code = "NOT_VALID_YET"
	CodeNotEUDCC    Code = "NOT_EU_DCC"
	CodeRevoked     Code = "REVOKED"
	CodeTestNeeded  Code = "TEST_NEEDED"
)

// Codes lists every outcome code.
var Codes = []Code{CodeValid, CodeNotValid, CodeNotValidYet, CodeNotEUDCC, CodeRevoked, CodeTestNeeded}

// Mode is the regulatory policy requested by the verifier. Values are the
// wire names used by verifier apps.
type Mode string

const (
	ModeNormal  Mode = "3G"
	ModeSuper   Mode = "2G"
	ModeBooster Mode = "BOOSTER"
	ModeVisitor Mode = "VISITORS"
	ModeWork    Mode = "WORK"
	ModeEntry   Mode = "ENTRY_IT"
)

// Modes lists every mode.
var Modes = []Mode{ModeNormal, ModeSuper, ModeBooster, ModeVisitor, ModeWork, ModeEntry}

var modeAliases = map[string]Mode{
	"3G": ModeNormal, "NORMAL": ModeNormal,
	"2G": ModeSuper, "SUPER": ModeSuper,
	"BOOSTER":  ModeBooster,
	"VISITORS": ModeVisitor, "VISITOR": ModeVisitor,
	"WORK":     ModeWork,
	"ENTRY_IT": ModeEntry, "ENTRY": ModeEntry,
}

// ParseMode accepts wire values and enum names, case-insensitively.
// An empty string selects ModeNormal.
func ParseMode(s string) (Mode, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return ModeNormal, nil
	}
	m, ok := modeAliases[s]
	if !ok {
		return "", fmt.Errorf("unknown validation mode %q", s)
	}
	return m, nil
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	_, ok := modeIndex[m]
	return ok
}

var modeIndex = func() map[Mode]struct{} {
	idx := make(map[Mode]struct{}, len(Modes))
	for _, m := range Modes {
		idx[m] = struct{}{}
	}
	return idx
}()

// policy collapses modes that share a policy. Visitor checks in care homes
// apply the booster policy.
func (m Mode) policy() Mode {
	if m == ModeVisitor {
		return ModeBooster
	}
	return m
}

// Result is the outcome of the rules pipeline, or of the merged validation.
type Result struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Valid   bool   `json:"result"`
}

func newResult(code Code, message string) Result {
	return Result{Code: code, Message: message, Valid: code == CodeValid}
}

// Response is returned by Validate.
type Response struct {
	ValidationID string    `json:"validation_id"`
	Person       *string   `json:"person"`
	DateOfBirth  *string   `json:"date_of_birth"`
	Mode         Mode      `json:"mode"`
	EvaluatedAt  time.Time `json:"evaluated_at"`
	Result
}

// outcome is what a per-kind validator decides.
type outcome struct {
	code    Code
	message string
}
