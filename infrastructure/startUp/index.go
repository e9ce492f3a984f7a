package startup

import (
	"context"

	"certschool.io/application/controller"
	"certschool.io/application/repository"
	application_usecases "certschool.io/application/usecases/applications"
	billing_usecases "certschool.io/application/usecases/billing"
	enrollment_usecases "certschool.io/application/usecases/enrollment"
	payment_usecases "certschool.io/application/usecases/payment"
	"certschool.io/entities"
	"certschool.io/infrastructure/auth"
	"certschool.io/infrastructure/database"
	"certschool.io/infrastructure/database/connection/datastore"
	"certschool.io/infrastructure/env"
	"certschool.io/infrastructure/logger"
	messagequeue "certschool.io/infrastructure/message_queue"
	queue_tasks "certschool.io/infrastructure/message_queue/tasks"
	"certschool.io/infrastructure/messaging/emails"
	"certschool.io/infrastructure/payments"
)

// Used to start services such as loggers, databases, queues, etc.
func StartServices() *env.Config {
	env.LoadEnv()
	logger.InitializeLogger()
	cfg, err := env.LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		panic(err)
	}

	repository.Timeout = cfg.DatastoreTimeout
	auth.SigningKey = []byte(cfg.JWTSigningKey)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DatastoreTimeout)
	defer cancel()
	if err := database.SetUpDatabase(ctx, cfg); err != nil {
		logger.Error("could not connect to the database", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		panic(err)
	}

	processors := payments.InitialisePaymentProcessors(cfg)
	emails.InitialiseEmailService(cfg)
	messagequeue.StartQueue(cfg)

	reconciler := &payment_usecases.Reconciler{
		BankRedirect:  processors.BankRedirect,
		OrderTracking: processors.OrderTracking,
		Payments:      repository.PaymentRepo(),
		Applications:  repository.ApplicationRepo(),
		Notifier: &payment_usecases.QueueNotifier{
			Queue:        messagequeue.TaskQueue,
			Applications: repository.ApplicationRepo(),
		},
		ProviderTimeout: cfg.ProviderTimeout,
	}
	queue_tasks.ReconcilePayment = func(ctx context.Context, provider entities.PaymentProvider, reference string) error {
		_, err := reconciler.Reconcile(ctx, provider, reference)
		return err
	}

	controller.Services = controller.UseCases{
		Orchestrator: &payment_usecases.Orchestrator{
			Card:            processors.Card,
			BankRedirect:    processors.BankRedirect,
			OrderTracking:   processors.OrderTracking,
			Payments:        repository.PaymentRepo(),
			ProviderTimeout: cfg.ProviderTimeout,
		},
		Reconciler: reconciler,
		Admission: &enrollment_usecases.AdmissionController{
			Enrollments:  repository.UserEnrollmentRepo(),
			Applications: repository.ApplicationRepo(),
		},
		Billing: &billing_usecases.BillingService{
			Enrollments:    repository.UserEnrollmentRepo(),
			Certifications: repository.CertificationRepo(),
		},
		Applications: &application_usecases.ApplicationService{
			Applications:   repository.ApplicationRepo(),
			Certifications: repository.CertificationRepo(),
			Enrollments:    repository.UserEnrollmentRepo(),
			Admins:         repository.AdminUserRepo(),
		},
		Webhooks: processors.BankRedirect,
		Queue:    messagequeue.TaskQueue,
	}
	return cfg
}

// Used to clean up after services that have been shutdown.
func CleanUpServices() {
	if messagequeue.TaskQueue != nil {
		messagequeue.TaskQueue.Shutdown()
	}
	datastore.CleanUp()
	logger.Sync()
}
