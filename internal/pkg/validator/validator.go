package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

// Slot labels look like "5:00 - 6:30" (leading zero optional)
var slotPattern = regexp.MustCompile(`^\d{1,2}:\d{2} - \d{1,2}:\d{2}$`)

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Role validation
	validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		validRoles := []string{"customer", "field_owner", "admin"}
		for _, r := range validRoles {
			if role == r {
				return true
			}
		}
		return false
	})

	// Time-slot label validation
	validate.RegisterValidation("slot", func(fl validator.FieldLevel) bool {
		return slotPattern.MatchString(fl.Field().String())
	})

	// Booking status validation
	validate.RegisterValidation("booking_status", func(fl validator.FieldLevel) bool {
		status := fl.Field().String()
		validStatuses := []string{"pending", "confirmed", "cancel"}
		for _, s := range validStatuses {
			if status == s {
				return true
			}
		}
		return false
	})

	// Product version validation
	validate.RegisterValidation("product_version", func(fl validator.FieldLevel) bool {
		version := fl.Field().String()
		validVersions := []string{"digital", "physical", ""}
		for _, v := range validVersions {
			if version == v {
				return true
			}
		}
		return false
	})

	// SubField status validation
	validate.RegisterValidation("subfield_status", func(fl validator.FieldLevel) bool {
		status := fl.Field().String()
		validStatuses := []string{"available", "maintenance", "booked"}
		for _, s := range validStatuses {
			if status == s {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "gt":
			errors[field] = "Value must be greater than " + err.Param()
		case "role":
			errors[field] = "Invalid role. Must be: customer, field_owner, or admin"
		case "slot":
			errors[field] = "Invalid slot label. Expected format: 5:00 - 6:30"
		case "booking_status":
			errors[field] = "Invalid booking status. Must be: pending, confirmed, or cancel"
		case "product_version":
			errors[field] = "Invalid product version. Must be: digital or physical"
		case "subfield_status":
			errors[field] = "Invalid status. Must be: available, maintenance, or booked"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
