package domain_test

import (
	"testing"

	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestRegistrationValidate(t *testing.T) {
	tests := []struct {
		name string
		reg  domain.Registration
		err  error
	}{
		{"NoUsername", domain.Registration{Password: "secret1"}, domain.ErrUsernameRequired},
		{"ShortUsername", domain.Registration{Username: "bob"}, domain.ErrUsernameTooShort},
		{"NoPassword", domain.Registration{Username: "crio.do"}, domain.ErrPasswordRequired},
		{"ShortPassword", domain.Registration{Username: "crio.do", Password: "123"}, domain.ErrPasswordTooShort},
		{
			"Mismatch",
			domain.Registration{Username: "crio.do", Password: "learnbydoing", ConfirmPassword: "learnbydoin"},
			domain.ErrPasswordMismatch,
		},
		{
			"Valid",
			domain.Registration{Username: "crio.do", Password: "learnbydoing", ConfirmPassword: "learnbydoing"},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestCredentialsValidate(t *testing.T) {
	assert.ErrorIs(t, domain.Credentials{}.Validate(), domain.ErrUsernameRequired)
	assert.ErrorIs(t, domain.Credentials{Username: "u"}.Validate(), domain.ErrPasswordRequired)
	assert.NoError(t, domain.Credentials{Username: "u", Password: "p"}.Validate())
}
