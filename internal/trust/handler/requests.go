package handler

import (
	"greenpass/internal/validator/ports"
	dErrors "greenpass/pkg/domain-errors"
	"greenpass/pkg/validation"
)

// ReplaceRulesRequest is the body for PUT /v1/admin/rules.
type ReplaceRulesRequest struct {
	Rules []ports.Rule `json:"rules" validate:"required,min=1,dive"`
}

func (r *ReplaceRulesRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return validation.Validate(r)
}

// ReplaceKeysRequest is the body for PUT /v1/admin/keys. Values are PEM or
// base64 DER signer certificates keyed by kid.
type ReplaceKeysRequest struct {
	Keys map[string]string `json:"keys" validate:"required,min=1,dive,keys,notblank,endkeys,notblank"`
}

func (r *ReplaceKeysRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return validation.Validate(r)
}

func (r *ReplaceKeysRequest) bytes() map[string][]byte {
	out := make(map[string][]byte, len(r.Keys))
	for kid, v := range r.Keys {
		out[kid] = []byte(v)
	}
	return out
}

// ApplyCRLRequest is the body for POST /v1/admin/crl.
type ApplyCRLRequest struct {
	Revoked []string `json:"revoked" validate:"omitempty,dive,max=256"`
	Deleted []string `json:"deleted" validate:"omitempty,dive,max=256"`
}

func (r *ApplyCRLRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Revoked) == 0 && len(r.Deleted) == 0 {
		return dErrors.New(dErrors.CodeValidation, "revoked or deleted is required")
	}
	return validation.Validate(r)
}
