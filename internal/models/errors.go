package models

import (
	"errors"
	"fmt"
)

type (
	MapErrs     map[string]ErrorDetail
	ErrorDetail struct {
		Code         string `json:"code,omitempty"`
		ErrorMessage error  `json:"message,omitempty"`
	}
)

func (e ErrorDetail) Error() string {
	return fmt.Sprintf("code: %s, message: %v", e.Code, e.ErrorMessage)
}

// MapErrors keys are "<field>_<validator tag>"; the validation package looks
// coded messages up here before falling back to the raw tag.
var MapErrors = MapErrs{
	"primaryIdentifier_required": {Code: "PPOB-4001", ErrorMessage: errors.New("identifier is required")},
	"primaryIdentifier_mobile10": {Code: "PPOB-4002", ErrorMessage: errors.New("mobile number must be exactly 10 digits")},
	"primaryIdentifier_numeric":  {Code: "PPOB-4003", ErrorMessage: errors.New("identifier must be numeric")},
	"amount_required":            {Code: "PPOB-4004", ErrorMessage: errors.New("amount is required")},
	"amount_numeric":             {Code: "PPOB-4005", ErrorMessage: errors.New("amount must be numeric")},
	"dateOfBirth_ddmmyyyy":       {Code: "PPOB-4006", ErrorMessage: errors.New("date of birth must be DD/MM/YYYY")},
	"category_required":          {Code: "PPOB-4007", ErrorMessage: errors.New("category is required")},
	"sessionId_required":         {Code: "PPOB-4008", ErrorMessage: errors.New("session id is required")},
}

func GetErrMap(code string, args ...string) ErrorDetail {
	v, ok := MapErrors[code]
	if !ok {
		return ErrorDetail{
			Code:         code,
			ErrorMessage: errors.New("unknown error mapping"),
		}
	}
	if len(args) > 0 {
		v.ErrorMessage = fmt.Errorf("%s caused by %s", v.ErrorMessage, args[0])
	}

	return v
}
