package intasend_payment_processor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"certschool.io/infrastructure/network"
	payment_types "certschool.io/infrastructure/payments/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProcessor(url string) *IntasendPaymentProcessor {
	return &IntasendPaymentProcessor{
		Network:   network.NewNetworkController(providerName, url, 5*time.Second, 0),
		SecretKey: "ISSecretKey_test",
		PublicKey: "ISPubKey_test",
	}
}

func TestInitiateSendsNativeAmount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/checkout/", r.URL.Path)
		assert.Equal(t, "Bearer ISSecretKey_test", r.Header.Get("Authorization"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 1500.5, body["amount"])
		assert.Equal(t, "KES", body["currency"])
		assert.Equal(t, "254712345678", body["phone_number"])
		assert.True(t, strings.HasPrefix(body["api_ref"].(string), "INV-"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"Y3KZ8QG","url":"https://payment.intasend.com/checkout/Y3KZ8QG/express/","api_ref":"` + body["api_ref"].(string) + `","paid":false}`))
	}))
	defer server.Close()

	result, err := newProcessor(server.URL).Initiate(context.Background(), CheckoutRequest{
		FirstName:   "Amina",
		LastName:    "Otieno",
		Email:       "amina@example.com",
		PhoneNumber: "254712345678",
		Amount:      decimal.RequireFromString("1500.50"),
		Currency:    "KES",
	})
	require.NoError(t, err)
	assert.Equal(t, "Y3KZ8QG", result.InvoiceID)
	assert.Equal(t, "https://payment.intasend.com/checkout/Y3KZ8QG/express/", result.URL)
	assert.Equal(t, InitialStatus, result.Status)
	assert.True(t, strings.HasPrefix(result.APIRef, "INV-"))
	assert.Equal(t, "Y3KZ8QG", result.Raw["id"])
}

func TestInitiateKeepsCallerReference(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "APP-42", body["api_ref"])
		w.Write([]byte(`{"id":"INV1","url":"https://pay/INV1"}`))
	}))
	defer server.Close()

	result, err := newProcessor(server.URL).Initiate(context.Background(), CheckoutRequest{
		Email: "a@b.co", PhoneNumber: "254700000000", Amount: decimal.NewFromInt(10), Currency: "KES", APIRef: "APP-42",
	})
	require.NoError(t, err)
	assert.Equal(t, "APP-42", result.APIRef)
}

func TestInitiateSurfacesProviderMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"type":"client_error","errors":[{"code":"invalid_phone","detail":"Phone number is not valid"}]}`))
	}))
	defer server.Close()

	_, err := newProcessor(server.URL).Initiate(context.Background(), CheckoutRequest{
		Email: "a@b.co", PhoneNumber: "07", Amount: decimal.NewFromInt(10), Currency: "KES",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, payment_types.ErrPaymentInitiation))
	var providerErr *payment_types.ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, "Phone number is not valid", providerErr.Message)
}

func TestInitiateAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Invalid token."}`))
	}))
	defer server.Close()

	_, err := newProcessor(server.URL).Initiate(context.Background(), CheckoutRequest{
		Email: "a@b.co", PhoneNumber: "254700000000", Amount: decimal.NewFromInt(10), Currency: "KES",
	})
	assert.True(t, errors.Is(err, payment_types.ErrProviderAuth))
}

func TestInitiateProviderDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newProcessor(server.URL).Initiate(context.Background(), CheckoutRequest{
		Email: "a@b.co", PhoneNumber: "254700000000", Amount: decimal.NewFromInt(10), Currency: "KES",
	})
	assert.True(t, errors.Is(err, payment_types.ErrProviderUnavailable))
	assert.True(t, payment_types.IsRetryable(err))
}
