package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinema-tickets/api"
	"github.com/metinatakli/cinema-tickets/internal/domain"
)

const (
	ErrRequired          = "is required"
	ErrInvalidTicketType = "must be one of ADULT, CHILD, INFANT"
	ErrInvalid           = "is invalid"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterTagNameFunc(jsonFieldName)
	validator.RegisterValidation("ticket_type", validateTicketType)

	return validator
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}

	return name
}

func validateTicketType(fl validator.FieldLevel) bool {
	ticketType, ok := fl.Field().Interface().(api.TicketType)
	if !ok {
		return false
	}

	return domain.TicketType(ticketType).Valid()
}

// FieldPath returns the JSON path of the failing field without the root struct name,
// e.g. ticketTypeRequests[0].ticketType
func FieldPath(err validator.FieldError) string {
	ns := err.Namespace()

	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}

	return ns
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "ticket_type":
		return ErrInvalidTicketType
	default:
		return ErrInvalid
	}
}
