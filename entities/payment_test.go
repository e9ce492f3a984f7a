package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestPaymentMetadataSurvivesStorage(t *testing.T) {
	payment := Payment{
		Provider:  BankRedirectProvider,
		Reference: "CERT-1",
		Metadata: map[string]any{
			"status":   "success",
			"customer": map[string]any{"email": "learner@example.com"},
		},
	}

	raw, err := bson.Marshal(payment)
	require.NoError(t, err)
	var stored Payment
	require.NoError(t, bson.Unmarshal(raw, &stored))

	assert.Equal(t, "success", stored.Metadata["status"])
	out, err := json.Marshal(stored.Metadata)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","customer":{"email":"learner@example.com"}}`, string(out))
}

func TestPaymentProviderIsValid(t *testing.T) {
	assert.True(t, OrderTrackingProvider.IsValid())
	assert.False(t, PaymentProvider("mpesa").IsValid())
}
