package reconcile

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ResolveRequest identifies a customer by exactly one of PAN or mobile.
type ResolveRequest struct {
	PAN    string `json:"pan" validate:"omitempty,notblank"`
	Mobile string `json:"mobile" validate:"omitempty,min=10"`
}

// EligibilityRequest selects eligibility data by mobile, optionally for a
// single provider.
type EligibilityRequest struct {
	Mobile   string `json:"mobile" validate:"required,min=10"`
	Provider string `json:"provider" validate:"omitempty,oneof=AA MFC"`
}

type loanRequest struct {
	LoanID string `json:"loanId" validate:"required,notblank"`
}

type panRequest struct {
	PAN string `json:"pan" validate:"required,notblank"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		r := sl.Current().Interface().(ResolveRequest)
		switch {
		case r.PAN == "" && r.Mobile == "":
			sl.ReportError(r.PAN, "pan", "PAN", "pan_or_mobile", "")
		case r.PAN != "" && r.Mobile != "":
			sl.ReportError(r.Mobile, "mobile", "Mobile", "pan_xor_mobile", "")
		}
	}, ResolveRequest{})
	return v
}

// validateStruct runs the validator and converts failures into a
// ValidationError carrying one detail per field.
func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Details: []FieldDetail{{Message: "invalid request"}}}
	}
	details := make([]FieldDetail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldDetail{Field: fe.Field(), Message: errorMessage(fe)})
	}
	return &ValidationError{Details: details}
}

func errorMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "pan_or_mobile":
		return "either pan or mobile is required"
	case "pan_xor_mobile":
		return "provide either pan or mobile, not both"
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func (r ResolveRequest) normalized() ResolveRequest {
	return ResolveRequest{PAN: strings.TrimSpace(r.PAN), Mobile: strings.TrimSpace(r.Mobile)}
}

func (r EligibilityRequest) normalized() EligibilityRequest {
	return EligibilityRequest{
		Mobile:   strings.TrimSpace(r.Mobile),
		Provider: strings.ToUpper(strings.TrimSpace(r.Provider)),
	}
}
