package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"

	"github.com/rupiksha/go-ppob-transaction/internal/models"
)

var validate = validator.New()

func init() {
	registerMobile10()
	registerDigits()
	registerDDMMYYYY()
	registerISO8601DateTime()
	registerDecimalGreaterThanOrEqual()
}

type ErrorValidateResponse struct {
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e ErrorValidateResponse) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateStruct(toValidate interface{}) error {
	// report field names from json tags.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	var errs *multierror.Error
	if err := validate.Struct(toValidate); err != nil {
		if _, ok := err.(*validator.InvalidValidationError); ok {
			errs = multierror.Append(errs, ErrorValidateResponse{
				Message: err.Error(),
			})
			return errs.ErrorOrNil()
		}

		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) {
			for _, valErr := range valErrs {
				key := fmt.Sprintf("%s_%s", valErr.Field(), valErr.Tag())
				if data, found := models.MapErrors[key]; found {
					errs = multierror.Append(errs, ErrorValidateResponse{
						Code:    data.Code,
						Field:   valErr.Field(),
						Message: data.ErrorMessage.Error(),
					})
				} else {
					errs = multierror.Append(errs, ErrorValidateResponse{
						Code:    "UNKNOW",
						Field:   valErr.Field(),
						Message: strings.TrimSpace(fmt.Sprintf("%s %s", valErr.Tag(), valErr.Param())),
					})
				}
			}
		}
	}

	return errs.ErrorOrNil()
}

// IsMobileNumber reports whether s is exactly 10 digits.
func IsMobileNumber(s string) bool {
	return regexp.MustCompile(`^\d{10}$`).MatchString(s)
}

// IsDigits reports whether s is non-empty and numeric only.
func IsDigits(s string) bool {
	return s != "" && regexp.MustCompile(`^\d+$`).MatchString(s)
}

// IsDDMMYYYY reports whether s is a real calendar date in DD/MM/YYYY form.
func IsDDMMYYYY(s string) bool {
	_, err := time.Parse("02/01/2006", s)
	return err == nil
}

func registerMobile10() {
	validate.RegisterValidation("mobile10", func(fl validator.FieldLevel) bool {
		return IsMobileNumber(fl.Field().String())
	})
}

func registerDigits() {
	validate.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || IsDigits(s)
	})
}

func registerDDMMYYYY() {
	validate.RegisterValidation("ddmmyyyy", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || IsDDMMYYYY(s)
	})
}

func registerISO8601DateTime() {
	validate.RegisterValidation("iso8601datetime", func(fl validator.FieldLevel) bool {
		input := fl.Field().String()
		if input != "" {
			_, err := time.Parse(time.RFC3339, input)
			return err == nil
		}

		return true
	})
}

func registerDecimalGreaterThanOrEqual() {
	validate.RegisterValidation("decimalGte", func(fl validator.FieldLevel) bool {
		value, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}

		param, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}

		return value.GreaterThanOrEqual(param)
	})
}
