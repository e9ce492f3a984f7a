package controller

import (
	application_usecases "certschool.io/application/usecases/applications"
	billing_usecases "certschool.io/application/usecases/billing"
	enrollment_usecases "certschool.io/application/usecases/enrollment"
	payment_usecases "certschool.io/application/usecases/payment"
	mq_types "certschool.io/infrastructure/message_queue/types"
)

// ipnRetryDelay is how long a failed IPN reconciliation waits before the
// queued retry, in seconds.
const ipnRetryDelay = 60

type WebhookVerifier interface {
	VerifySignature(payload []byte, signature string) bool
}

type UseCases struct {
	Orchestrator *payment_usecases.Orchestrator
	Reconciler   *payment_usecases.Reconciler
	Admission    *enrollment_usecases.AdmissionController
	Billing      *billing_usecases.BillingService
	Applications *application_usecases.ApplicationService
	Webhooks     WebhookVerifier
	Queue        mq_types.TaskQueueBroker
}

// Services is populated at start-up before the router is built.
var Services UseCases
