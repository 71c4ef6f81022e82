package user

import (
	"regexp"
	"unicode/utf8"

	"marketplace/models"
)

// Password rules, in the order the checklist shows them.
const (
	RuleMinLength = "min_length"
	RuleUppercase = "uppercase"
	RuleLowercase = "lowercase"
	RuleDigit     = "digit"
	RuleSymbol    = "symbol"
)

// MinPasswordLength is the shortest accepted password, in characters.
const MinPasswordLength = 8

var (
	hasUpper  = regexp.MustCompile(`[A-Z]`)
	hasLower  = regexp.MustCompile(`[a-z]`)
	hasNumber = regexp.MustCompile(`[0-9]`)
	hasSymbol = regexp.MustCompile(`[\W_]`)
)

// RuleResult is one line of the password checklist.
type RuleResult struct {
	Rule        string `json:"rule"`
	Description string `json:"description"`
	Met         bool   `json:"met"`
}

// PasswordReport is the outcome of ValidatePassword.
type PasswordReport struct {
	Rules []RuleResult `json:"rules"`
	Valid bool         `json:"valid"`
}

// ValidatePassword checks pw against every complexity rule.
func ValidatePassword(pw string) PasswordReport {
	rules := []RuleResult{
		{RuleMinLength, "at least 8 characters", utf8.RuneCountInString(pw) >= MinPasswordLength},
		{RuleUppercase, "an uppercase letter", hasUpper.MatchString(pw)},
		{RuleLowercase, "a lowercase letter", hasLower.MatchString(pw)},
		{RuleDigit, "a number", hasNumber.MatchString(pw)},
		{RuleSymbol, "a symbol", hasSymbol.MatchString(pw)},
	}
	valid := true
	for _, r := range rules {
		valid = valid && r.Met
	}
	return PasswordReport{Rules: rules, Valid: valid}
}

// Err names the first unmet rule as a validation error on the password field.
func (r PasswordReport) Err() error {
	for _, rule := range r.Rules {
		if !rule.Met {
			verr := &models.ValidationError{}
			verr.Add("password", "must contain "+rule.Description)
			return verr
		}
	}
	return nil
}
