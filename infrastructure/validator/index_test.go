package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phoneNumber" validate:"omitempty,phone"`
	CountryCode string `json:"countryCode" validate:"omitempty,country_code"`
	Currency    string `json:"currency" validate:"omitempty,currency"`
	Status      string `json:"status" validate:"omitempty,oneof=pending paid"`
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	errs := ValidatorInstance.ValidateStruct(samplePayload{
		Email:       "not-an-email",
		Phone:       "07",
		CountryCode: "Kenya",
		Currency:    "kes",
		Status:      "done",
	})
	require.NotNil(t, errs)
	msgs := []string{}
	for _, err := range *errs {
		msgs = append(msgs, err.Error())
	}
	assert.Contains(t, msgs, "email must be a valid email address")
	assert.Contains(t, msgs, "phoneNumber must be a valid phone number")
	assert.Contains(t, msgs, "countryCode must be a two letter ISO country code")
	assert.Contains(t, msgs, "currency must be a three letter ISO currency code")
	assert.Contains(t, msgs, "status must be one of [pending paid]")
}

func TestValidateStructPasses(t *testing.T) {
	assert.Nil(t, ValidatorInstance.ValidateStruct(samplePayload{
		Email:       "learner@example.com",
		Phone:       "+254 712 345 678",
		CountryCode: "KE",
		Currency:    "KES",
		Status:      "paid",
	}))
}

func TestValidateValue(t *testing.T) {
	assert.NoError(t, ValidatorInstance.ValidateValue("learner@example.com", "email"))
	assert.Error(t, ValidatorInstance.ValidateValue("learner", "email"))
}
