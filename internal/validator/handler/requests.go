package handler

import (
	"greenpass/internal/certificate"
	"greenpass/internal/validator"
	dErrors "greenpass/pkg/domain-errors"
	"greenpass/pkg/validation"
)

// ValidateRequest is the body for the validation endpoints.
type ValidateRequest struct {
	Mode        string                   `json:"mode" validate:"omitempty,max=16"`
	Certificate *certificate.Certificate `json:"certificate" validate:"required"`

	parsedMode validator.Mode
}

// Validate implements httputil.Validatable. An empty mode is resolved later
// to the handler's default.
func (r *ValidateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if err := validation.Validate(r); err != nil {
		return err
	}
	if r.Mode == "" {
		return nil
	}
	mode, err := validator.ParseMode(r.Mode)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	r.parsedMode = mode
	return nil
}

// ModeOr returns the parsed mode, or def when none was sent.
func (r *ValidateRequest) ModeOr(def validator.Mode) validator.Mode {
	if r.parsedMode == "" {
		return def
	}
	return r.parsedMode
}
