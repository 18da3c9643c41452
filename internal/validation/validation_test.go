package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validForm() RegistrationForm {
	return RegistrationForm{
		Name:            "Aki",
		Email:           "a@x.com",
		ConfirmEmail:    "a@x.com",
		Password:        "Abcd1234!",
		ConfirmPassword: "Abcd1234!",
		Terms:           true,
	}
}

func TestRegistrationForm_Valid(t *testing.T) {
	form := validForm()
	assert.NoError(t, form.Validate(PolicyStrict))
}

func TestRegistrationForm_FirstFailureWins(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegistrationForm)
		want   error
	}{
		{
			name: "email mismatch checked before format",
			mutate: func(f *RegistrationForm) {
				f.Email = "bad"
				f.ConfirmEmail = "other"
			},
			want: ErrEmailMismatch,
		},
		{
			name:   "invalid email format",
			mutate: func(f *RegistrationForm) { f.Email = "no-at-sign"; f.ConfirmEmail = "no-at-sign" },
			want:   ErrInvalidEmail,
		},
		{
			name:   "missing tld",
			mutate: func(f *RegistrationForm) { f.Email = "a@x"; f.ConfirmEmail = "a@x" },
			want:   ErrInvalidEmail,
		},
		{
			name: "weak password checked before confirm mismatch",
			mutate: func(f *RegistrationForm) {
				f.Password = "short"
				f.ConfirmPassword = "different"
			},
			want: ErrWeakPassword,
		},
		{
			name:   "password mismatch",
			mutate: func(f *RegistrationForm) { f.ConfirmPassword = "Abcd1234?" },
			want:   ErrPasswordMismatch,
		},
		{
			name:   "terms not accepted",
			mutate: func(f *RegistrationForm) { f.Terms = false },
			want:   ErrTermsNotAccepted,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			form := validForm()
			test.mutate(&form)
			assert.ErrorIs(t, form.Validate(PolicyStrict), test.want)
		})
	}
}

func TestPolicyStrict(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"Abcd1234!", true},
		{"a1!a1!a1", true},
		{"xK9#mansion", true},
		{"short1!", false},          // under 8
		{"abcdefg1", false},         // no symbol
		{"abcdefg!", false},         // no digit
		{"12345678!", false},        // no letter
		{"Abcd 1234!", false},       // space outside allowed classes
		{"Abcd1234!ñ", false},       // non-ASCII
		{"", false},
	}

	for _, test := range tests {
		assert.Equal(t, test.ok, PolicyStrict.Check(test.password), "password %q", test.password)
	}
}

func TestPolicyLegacy(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"abcd1234", true},
		{"ABCDEFGH", true},
		{"a1b2c3d4e5f6g7h8", true},
		{"abc1234", false},            // under 8
		{"a1b2c3d4e5f6g7h8i", false},  // over 16
		{"abcd1234!", false},          // symbol not allowed
	}

	for _, test := range tests {
		assert.Equal(t, test.ok, PolicyLegacy.Check(test.password), "password %q", test.password)
	}
}

func TestParsePolicy(t *testing.T) {
	assert.Equal(t, PolicyStrict, ParsePolicy(""))
	assert.Equal(t, PolicyStrict, ParsePolicy("strict"))
	assert.Equal(t, PolicyStrict, ParsePolicy("unknown"))
	assert.Equal(t, PolicyLegacy, ParsePolicy("legacy"))
	assert.Equal(t, PolicyLegacy, ParsePolicy(" LEGACY "))
}
