package auth

import "strings"

// ValidateRegistration checks that all registration fields are present and
// that the email is plausibly an email address.
func ValidateRegistration(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "name is required"}
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if password == "" {
		return &ValidationError{Field: "password", Reason: "password is required"}
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &ValidationError{Field: "email", Reason: "email is required"}
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return &ValidationError{Field: "email", Reason: "invalid email format"}
	}
	return nil
}
