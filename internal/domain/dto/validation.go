package dto

import (
	"regexp"
	"strings"

	"github.com/guttosm/clinic-client/internal/domain/model"
)

var (
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidatePatient checks a patient payload before it is sent to the service.
// The returned map is keyed by field name; an empty map means the payload is valid.
func ValidatePatient(p model.Patient) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(p.Name) == "" {
		errs["name"] = "Name is required"
	}
	if p.Age == 0 {
		errs["age"] = "Age is required"
	} else if p.Age < 0 || p.Age > 150 {
		errs["age"] = "Age must be between 0 and 150"
	}
	switch p.Gender {
	case "":
		errs["gender"] = "Gender is required"
	case model.GenderMale, model.GenderFemale, model.GenderOther:
	default:
		errs["gender"] = "Invalid gender selection"
	}
	if strings.TrimSpace(p.Phone) == "" {
		errs["phone"] = "Phone number is required"
	} else if !phonePattern.MatchString(p.Phone) {
		errs["phone"] = "Phone number must be 10 digits"
	}
	if p.Email != "" && !emailPattern.MatchString(p.Email) {
		errs["email"] = "Invalid email format"
	}
	if strings.TrimSpace(p.Address) == "" {
		errs["address"] = "Address is required"
	}

	return errs
}

// ValidateService checks a service catalog payload before it is sent to the service.
func ValidateService(s model.Service) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(s.Name) == "" {
		errs["name"] = "Service name is required"
	}
	if s.Price == 0 {
		errs["price"] = "Price is required"
	} else if s.Price < 0 {
		errs["price"] = "Price cannot be negative"
	}
	if s.Category == "" {
		errs["category"] = "Category is required"
	} else if !s.Category.Valid() {
		errs["category"] = "Invalid category"
	}

	return errs
}
