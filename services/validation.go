package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	MinYearsOfExperience = 1
	MaxYearsOfExperience = 60 // exclusive

	nameMaxLength        = 255
	descriptionMaxLength = 255
	usernameMaxLength    = 150
	personNameMaxLength  = 150
	passwordMinLength    = 8

	priceMaxDigits = 5
	pricePlaces    = 2

	msgBelowMinimumHire   = "value below minimum hire threshold"
	msgAbovePlausibleMax  = "value exceeds plausible maximum"
	msgRequired           = "this field is required"
	msgInvalidChoice      = "select a valid choice; that choice is not one of the available choices"
	msgDuplicateDishType  = "dish type with this name already exists"
	msgDuplicateDish      = "dish with this name already exists"
	msgDuplicateUsername  = "a user with that username already exists"
	msgInvalidUsername    = "enter a valid username; it may contain only letters, numbers, and @/./+/-/_ characters"
	msgPasswordMismatch   = "the two password fields didn't match"
	msgPasswordTooShort   = "this password is too short; it must contain at least 8 characters"
	msgPasswordAllNumeric = "this password is entirely numeric"
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}@.+\-_]+$`)

// ValidateYearsOfExperience accepts values in [1, 60) and returns them unchanged.
func ValidateYearsOfExperience(years int) (int, error) {
	if years < MinYearsOfExperience {
		return 0, NewValidationError("years_of_experience", msgBelowMinimumHire)
	}
	if years >= MaxYearsOfExperience {
		return 0, NewValidationError("years_of_experience", msgAbovePlausibleMax)
	}
	return years, nil
}

func checkExperience(errs *ValidationError, years *int) {
	if years == nil {
		errs.Add("years_of_experience", msgRequired)
		return
	}
	if _, err := ValidateYearsOfExperience(*years); err != nil {
		for _, msg := range err.(*ValidationError).Fields["years_of_experience"] {
			errs.Add("years_of_experience", msg)
		}
	}
}

// checkText trims value, enforces presence when required, and the rune-length bound.
func checkText(errs *ValidationError, field, value string, required bool, max int) string {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			errs.Add(field, msgRequired)
		}
		return value
	}
	if n := utf8.RuneCountInString(value); n > max {
		errs.Add(field, fmt.Sprintf("ensure this value has at most %d characters (it has %d)", max, n))
	}
	return value
}

// checkPrice enforces decimal(5,2): at most 2 decimal places and 5 digits overall.
func checkPrice(errs *ValidationError, price *decimal.Decimal) {
	if price == nil {
		errs.Add("price", msgRequired)
		return
	}
	if !price.Equal(price.Round(pricePlaces)) {
		errs.Add("price", "ensure that there are no more than 2 decimal places")
		return
	}
	limit := decimal.New(1, priceMaxDigits-pricePlaces)
	if price.Abs().GreaterThanOrEqual(limit) {
		errs.Add("price", "ensure that there are no more than 5 digits in total")
	}
}

func checkUsername(errs *ValidationError, username string) string {
	username = checkText(errs, "username", username, true, usernameMaxLength)
	if username != "" && !usernamePattern.MatchString(username) {
		errs.Add("username", msgInvalidUsername)
	}
	return username
}

func checkPasswords(errs *ValidationError, password1, password2 string) {
	if password1 == "" {
		errs.Add("password1", msgRequired)
	}
	if password2 == "" {
		errs.Add("password2", msgRequired)
	}
	if password1 == "" || password2 == "" {
		return
	}
	if password1 != password2 {
		errs.Add("password2", msgPasswordMismatch)
		return
	}
	if utf8.RuneCountInString(password1) < passwordMinLength {
		errs.Add("password2", msgPasswordTooShort)
	}
	if isAllDigits(password1) {
		errs.Add("password2", msgPasswordAllNumeric)
	}
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
