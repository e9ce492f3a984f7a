package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "certschool.io/application/appErrors"
	"certschool.io/application/controller/dto"
	"certschool.io/application/interfaces"
	payment_usecases "certschool.io/application/usecases/payment"
	"certschool.io/entities"
	"certschool.io/infrastructure/logger"
	paystack_payment_processor "certschool.io/infrastructure/payments/paystack"
	payment_types "certschool.io/infrastructure/payments/types"
	server_response "certschool.io/infrastructure/serverResponse"
)

// ProcessPaystackWebhook checks the HMAC signature, then reconciles the
// reference the event names against the provider. Failures worth retrying
// answer 5xx so the provider redelivers.
func ProcessPaystackWebhook(ctx *interfaces.ApplicationContext[[]byte]) {
	signature := ctx.GetHeader("X-Paystack-Signature")
	if signature == nil || Services.Webhooks == nil || !Services.Webhooks.VerifySignature(*ctx.Body, *signature) {
		logger.Warning("invalid signature on paystack webhook")
		apperrors.AuthenticationError(ctx.Ctx, "invalid webhook signature")
		return
	}
	var body paystack_payment_processor.WebhookEvent
	if err := json.Unmarshal(*ctx.Body, &body); err != nil {
		logger.Error("an error occured while serializing paystack webhook to a struct", logger.LoggerOptions{
			Key:  "err",
			Data: err,
		})
		apperrors.ErrorProcessingPayload(ctx.Ctx)
		return
	}
	if body.Event != paystack_payment_processor.EventChargeSuccess {
		logger.Info("ignoring paystack event", logger.LoggerOptions{
			Key:  "event",
			Data: body.Event,
		})
		server_response.Responder.RespondWithData(ctx.Ctx, http.StatusOK, nil)
		return
	}
	reconciled, err := Services.Reconciler.Reconcile(ctx.Ctx, entities.BankRedirectProvider, body.Data.Reference)
	if err != nil {
		logger.Error("an error occured while reconciling paystack webhook", logger.LoggerOptions{
			Key:  "reference",
			Data: body.Data.Reference,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		if droppable(err) {
			server_response.Responder.RespondWithData(ctx.Ctx, http.StatusOK, nil)
			return
		}
		apperrors.HandleError(ctx.Ctx, err)
		return
	}
	server_response.Responder.RespondWithData(ctx.Ctx, http.StatusOK, verifiedPayment(reconciled))
}

// ProcessOrderTrackingIPN always answers 200 "OK". A failed reconciliation
// that may succeed later is queued for another attempt.
func ProcessOrderTrackingIPN(ctx *interfaces.ApplicationContext[dto.VerifyPaymentDTO]) {
	trackingID := ctx.Body.OrderTrackingID
	if trackingID == "" {
		logger.Warning("order tracking ipn received without OrderTrackingId", logger.LoggerOptions{
			Key:  "merchantReference",
			Data: ctx.Body.OrderMerchantReference,
		})
		server_response.Responder.RespondWithText(ctx.Ctx, http.StatusOK, "OK")
		return
	}
	_, err := Services.Reconciler.Reconcile(ctx.Ctx, entities.OrderTrackingProvider, trackingID)
	if err != nil {
		logger.Error("an error occured while reconciling order tracking ipn", logger.LoggerOptions{
			Key:  "orderTrackingID",
			Data: trackingID,
		}, logger.LoggerOptions{
			Key:  "merchantReference",
			Data: ctx.Body.OrderMerchantReference,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		if !droppable(err) {
			if err := payment_usecases.ScheduleReconcile(Services.Queue, entities.OrderTrackingProvider, trackingID, ipnRetryDelay); err != nil {
				logger.Error("could not schedule ipn reconciliation retry", logger.LoggerOptions{
					Key:  "orderTrackingID",
					Data: trackingID,
				}, logger.LoggerOptions{
					Key:  "error",
					Data: err,
				})
			}
		}
	}
	server_response.Responder.RespondWithText(ctx.Ctx, http.StatusOK, "OK")
}

// droppable reports whether retrying the same reconciliation cannot help.
func droppable(err error) bool {
	var validationErr *apperrors.ValidationError
	var providerErr *payment_types.ProviderError
	if errors.As(err, &validationErr) || errors.Is(err, apperrors.ErrReconciliationUnsupported) {
		return true
	}
	if errors.As(err, &providerErr) {
		return !providerErr.Retryable()
	}
	return false
}
