package user

import (
	"errors"
	"testing"

	"marketplace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	cases := []struct {
		pw     string
		unmet  []string
		valid  bool
		detail string
	}{
		{"Str0ng!pass", nil, true, ""},
		{"short1!", []string{RuleMinLength, RuleUppercase}, false, "must contain at least 8 characters"},
		{"alllowercase1!", []string{RuleUppercase}, false, "must contain an uppercase letter"},
		{"ALLUPPER1!", []string{RuleLowercase}, false, "must contain a lowercase letter"},
		{"NoDigits!!", []string{RuleDigit}, false, "must contain a number"},
		{"NoSymbol12", []string{RuleSymbol}, false, "must contain a symbol"},
		{"Under_score1", nil, true, ""},
	}
	for _, tc := range cases {
		t.Run(tc.pw, func(t *testing.T) {
			t.Parallel()
			report := ValidatePassword(tc.pw)
			assert.Equal(t, tc.valid, report.Valid)
			require.Len(t, report.Rules, 5)

			var unmet []string
			for _, r := range report.Rules {
				if !r.Met {
					unmet = append(unmet, r.Rule)
				}
			}
			assert.Equal(t, tc.unmet, unmet)

			err := report.Err()
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "password", verr.Fields[0].Field)
			assert.Equal(t, tc.detail, verr.Fields[0].Message)
		})
	}
}

func TestValidatePasswordCountsCharacters(t *testing.T) {
	t.Parallel()
	// seven characters, more than eight bytes
	assert.False(t, ValidatePassword("Äbcdé1!").Rules[0].Met)
}
