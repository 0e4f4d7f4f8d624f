package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rupiksha/go-ppob-transaction/internal/common/validation"
	"github.com/rupiksha/go-ppob-transaction/internal/models"
	"github.com/rupiksha/go-ppob-transaction/internal/monitoring"
)

// RequestValidatorService checks a transaction request for a stage and
// returns the full set of findings. Violations are warnings surfaced to the
// caller, never errors: partially filled forms are the normal state while
// the user types.
type RequestValidatorService interface {
	Validate(ctx context.Context, req *models.TransactionRequest, stage models.ValidationStage) []models.FieldViolation
}

type requestValidator service

func (v *requestValidator) Validate(ctx context.Context, req *models.TransactionRequest, stage models.ValidationStage) []models.FieldViolation {
	monitor := monitoring.New(ctx)
	defer monitor.Finish()

	var out []models.FieldViolation
	add := func(field, reason string) {
		out = append(out, models.FieldViolation{Field: field, Reason: reason})
	}

	out = append(out, v.checkPrimaryIdentifier(req)...)

	if label := req.Provider.AuxFieldLabel; label != "" && req.AuxIdentifier == "" {
		add(models.FieldAuxIdentifier, label+" is required")
	}

	if req.Provider.Category.RequiresDateOfBirth() {
		dob := req.Meta(models.FieldDateOfBirth)
		switch {
		case dob == "":
			add(models.FieldDateOfBirth, "date of birth is required")
		case !validation.IsDDMMYYYY(dob):
			add(models.FieldDateOfBirth, "date of birth must be DD/MM/YYYY")
		}
	}

	// The billing gateway requires a contact number on every fetch. Only
	// fetch-capable providers carry the field.
	if req.Provider.SupportsOnlineFetch {
		if contact := req.Meta(models.FieldContactMobile); !validation.IsMobileNumber(contact) {
			add(models.FieldContactMobile, "contact mobile number must be exactly 10 digits")
		}
	}

	if stage == models.StageSubmit {
		out = append(out, v.checkAmount(req)...)
	}

	return out
}

func (v *requestValidator) checkPrimaryIdentifier(req *models.TransactionRequest) []models.FieldViolation {
	id := req.PrimaryIdentifier

	if id == "" {
		return []models.FieldViolation{{Field: models.FieldPrimaryIdentifier, Reason: "identifier is required"}}
	}

	switch req.Provider.Category {
	case models.CategoryMobile:
		if !validation.IsMobileNumber(id) {
			return []models.FieldViolation{{Field: models.FieldPrimaryIdentifier, Reason: "mobile number must be exactly 10 digits"}}
		}
	default:
		if !validation.IsDigits(id) {
			return []models.FieldViolation{{Field: models.FieldPrimaryIdentifier, Reason: "identifier must be numeric"}}
		}
		if minLen := v.srv.conf.Orchestrator.MinConsumerNumberLength; len(id) < minLen {
			return []models.FieldViolation{{Field: models.FieldPrimaryIdentifier, Reason: "identifier is too short"}}
		}
	}

	return nil
}

func (v *requestValidator) checkAmount(req *models.TransactionRequest) []models.FieldViolation {
	if !req.HasAmount() {
		return []models.FieldViolation{{Field: models.FieldAmount, Reason: "amount is required"}}
	}

	amount := req.Amount.Decimal
	if amount.LessThan(v.minAmountFor(req.Provider.Category)) {
		return []models.FieldViolation{{Field: models.FieldAmount, Reason: "amount is below the minimum for this service"}}
	}

	return nil
}

// minAmountFor applies the configured floor per category. Cash operations
// default to 100, everything else to 1.
func (v *requestValidator) minAmountFor(category models.ProviderCategory) decimal.Decimal {
	orch := v.srv.conf.Orchestrator

	if raw, ok := orch.MinAmountByCategory[string(category)]; ok {
		if min, err := decimal.NewFromString(raw); err == nil {
			return min
		}
	}
	if orch.MinAmountDefault != "" {
		if min, err := decimal.NewFromString(orch.MinAmountDefault); err == nil {
			return min
		}
	}

	if category.IsCashLike() {
		return decimal.NewFromInt(100)
	}
	return decimal.NewFromInt(1)
}
