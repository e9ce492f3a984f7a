package paystack_payment_processor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"certschool.io/application/utils"
	"certschool.io/infrastructure/env"
	"certschool.io/infrastructure/logger"
	"certschool.io/infrastructure/network"
	payment_types "certschool.io/infrastructure/payments/types"
)

const providerName = "paystack"

const (
	StatusSuccess = "success"
	StatusPending = "pending"

	ReferencePrefix = "CERT"

	EventChargeSuccess = "charge.success"
)

type PaystackPaymentProcessor struct {
	Network     *network.NetworkController
	AuthToken   string
	CallbackURL string
}

func NewPaystackPaymentProcessor(cfg *env.Config) *PaystackPaymentProcessor {
	return &PaystackPaymentProcessor{
		Network:     network.NewNetworkController(providerName, cfg.PaystackBaseURL, cfg.ProviderTimeout, cfg.ProviderRetries),
		AuthToken:   cfg.PaystackSecretKey,
		CallbackURL: cfg.PaystackCallbackURL,
	}
}

// Initiate opens a hosted checkout. A reference of the form
// CERT-<unix millis>-<6 chars> is generated when the caller has none.
func (paystack *PaystackPaymentProcessor) Initiate(ctx context.Context, req InitializeRequest) (*InitializeResult, error) {
	if req.Reference == "" {
		req.Reference = utils.GenerateReference(ReferencePrefix, 6, utils.Now())
	}
	response, statusCode, err := paystack.Network.Post(ctx, "/transaction/initialize", paystack.headers(), initializePayload{
		Email:       req.Email,
		Amount:      req.AmountMinor,
		Currency:    req.Currency,
		Reference:   req.Reference,
		CallbackURL: paystack.CallbackURL,
		Metadata:    req.Metadata,
	})
	if response == nil || statusCode == nil {
		return nil, payment_types.UnavailableError(providerName, "failed to reach paystack", err)
	}
	if *statusCode == 401 {
		return nil, payment_types.AuthError(providerName, "paystack rejected the secret key", err)
	}
	if err != nil {
		return nil, payment_types.UnavailableError(providerName, "failed to generate payment link", err)
	}
	var paystackResponse PaystackInitializeResponse
	if err = json.Unmarshal(*response, &paystackResponse); err != nil {
		logger.Error("an error occured while trying to unmarshal paystack initialize response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, payment_types.InitiationFailed(providerName, "failed to generate payment link")
	}
	if *statusCode != 200 || !paystackResponse.Status || paystackResponse.Data.AuthURL == nil {
		logger.Error("paystack refused to initialize transaction", logger.LoggerOptions{
			Key:  "body",
			Data: paystackResponse,
		})
		msg := paystackResponse.Message
		if msg == "" {
			msg = "failed to generate payment link"
		}
		return nil, payment_types.InitiationFailed(providerName, msg)
	}
	reference := paystackResponse.Data.Reference
	if reference == "" {
		reference = req.Reference
	}
	return &InitializeResult{
		AuthorizationURL: *paystackResponse.Data.AuthURL,
		AccessCode:       paystackResponse.Data.AccessCode,
		Reference:        reference,
	}, nil
}

func (paystack *PaystackPaymentProcessor) FetchStatus(ctx context.Context, reference string) (*TransactionStatus, error) {
	if reference == "" {
		return nil, payment_types.ValidationError(providerName, "reference is required")
	}
	response, statusCode, err := paystack.Network.Get(ctx, fmt.Sprintf("/transaction/verify/%s", url.PathEscape(reference)), paystack.headers(), nil)
	if response == nil || statusCode == nil {
		return nil, payment_types.UnavailableError(providerName, "failed to verify transaction on paystack", err)
	}
	if *statusCode == 401 {
		return nil, payment_types.AuthError(providerName, "paystack rejected the secret key", err)
	}
	if err != nil {
		return nil, payment_types.UnavailableError(providerName, "failed to verify transaction on paystack", err)
	}
	var paystackResponse PaystackTransactionVerificationResponse
	if err = json.Unmarshal(*response, &paystackResponse); err != nil {
		logger.Error("an error occured while trying to unmarshal paystack verify response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, payment_types.UnavailableError(providerName, "unreadable verification response", err)
	}
	if *statusCode != 200 || !paystackResponse.Status {
		logger.Warning("paystack could not verify transaction", logger.LoggerOptions{
			Key:  "reference",
			Data: reference,
		}, logger.LoggerOptions{
			Key:  "message",
			Data: paystackResponse.Message,
		})
		return nil, payment_types.ValidationError(providerName, paystackResponse.Message)
	}
	raw := map[string]any{}
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if json.Unmarshal(*response, &envelope) == nil && envelope.Data != nil {
		raw = envelope.Data
	}
	ref := paystackResponse.Data.Reference
	if ref == "" {
		ref = reference
	}
	return &TransactionStatus{
		Reference:   ref,
		Status:      paystackResponse.Data.Status,
		AmountMinor: paystackResponse.Data.Amount,
		Currency:    paystackResponse.Data.Currency,
		PaidAt:      paystackResponse.Data.PaidAt,
		Raw:         raw,
	}, nil
}

// VerifySignature checks the x-paystack-signature header against the raw
// request body.
func (paystack *PaystackPaymentProcessor) VerifySignature(payload []byte, signature string) bool {
	if signature == "" || paystack.AuthToken == "" {
		return false
	}
	return utils.HMACEqual(utils.CreateHMACSHA512Hash(payload, paystack.AuthToken), signature)
}

func (paystack *PaystackPaymentProcessor) headers() map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", paystack.AuthToken),
	}
}
