package queue_tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"certschool.io/entities"
	"certschool.io/infrastructure/logger"
	mq_types "certschool.io/infrastructure/message_queue/types"
	payment_types "certschool.io/infrastructure/payments/types"
	"github.com/hibiken/asynq"
)

var HandleReconcilePaymentTaskName mq_types.Queues = "reconcile_payment"

type ReconcilePaymentPayload struct {
	Provider  entities.PaymentProvider
	Reference string
}

// ReconcilePayment is bound at start-up to the payment reconciler.
var ReconcilePayment func(ctx context.Context, provider entities.PaymentProvider, reference string) error

func HandleReconcilePaymentTask(ctx context.Context, t *asynq.Task) error {
	var payload ReconcilePaymentPayload
	err := json.Unmarshal(t.Payload(), &payload)
	if err != nil {
		logger.Error("an error occured while unmarshalling reconcile payment payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if ReconcilePayment == nil {
		return errors.New("payment reconciler not bound")
	}
	err = ReconcilePayment(ctx, payload.Provider, payload.Reference)
	if err == nil {
		return nil
	}
	logger.Error("queued reconciliation failed", logger.LoggerOptions{
		Key:  "payload",
		Data: payload,
	}, logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	var providerErr *payment_types.ProviderError
	if errors.As(err, &providerErr) && !providerErr.Retryable() {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	return err
}
