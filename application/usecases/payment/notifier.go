package payment_usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"certschool.io/entities"
	"certschool.io/infrastructure/logger"
	queue_tasks "certschool.io/infrastructure/message_queue/tasks"
	mq_types "certschool.io/infrastructure/message_queue/types"
	"github.com/shopspring/decimal"
)

// QueueNotifier sends the payment receipt through the task queue.
type QueueNotifier struct {
	Queue        mq_types.TaskQueueBroker
	Applications ApplicationStore
}

func (n *QueueNotifier) PaymentCompleted(ctx context.Context, payment entities.Payment) {
	if n.Queue == nil || payment.Email == "" {
		return
	}
	opts := map[string]any{
		"NAME":      payment.Email,
		"AMOUNT":    decimal.NewFromFloat(payment.Amount).StringFixed(2),
		"CURRENCY":  payment.Currency,
		"REFERENCE": payment.Reference,
	}
	if payment.ApplicationID != nil && n.Applications != nil {
		if app, err := n.Applications.FindByID(ctx, *payment.ApplicationID); err == nil && app != nil {
			opts["NAME"] = app.FirstName
			opts["PROGRAM"] = app.ProgramName
		}
	}
	emailPayload, err := json.Marshal(queue_tasks.EmailPayload{
		To:       payment.Email,
		Subject:  "We have received your payment",
		Template: "payment_received",
		Opts:     opts,
	})
	if err != nil {
		logger.Error("error marshalling payload for email queue", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return
	}
	if err = n.Queue.Enqueue(mq_types.QueueTask{
		Payload:  emailPayload,
		Name:     queue_tasks.HandleEmailDeliveryTaskName,
		Priority: mq_types.High,
	}); err != nil {
		logger.Warning("payment receipt was not queued", logger.LoggerOptions{
			Key:  "reference",
			Data: payment.Reference,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
}

// ScheduleReconcile queues a later reconciliation of reference.
func ScheduleReconcile(queue mq_types.TaskQueueBroker, provider entities.PaymentProvider, reference string, delaySeconds int) error {
	if queue == nil {
		return fmt.Errorf("no task queue configured")
	}
	payload, err := json.Marshal(queue_tasks.ReconcilePaymentPayload{
		Provider:  provider,
		Reference: reference,
	})
	if err != nil {
		return err
	}
	return queue.Enqueue(mq_types.QueueTask{
		Payload:   payload,
		Name:      queue_tasks.HandleReconcilePaymentTaskName,
		Priority:  mq_types.High,
		ProcessIn: time.Duration(delaySeconds),
		MaxRetry:  8,
	})
}
