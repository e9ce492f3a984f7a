package payments

import (
	"certschool.io/infrastructure/database/connection/cache"
	cache_repository "certschool.io/infrastructure/database/repository/cache"
	"certschool.io/infrastructure/env"
	intasend_payment_processor "certschool.io/infrastructure/payments/intasend"
	paystack_payment_processor "certschool.io/infrastructure/payments/paystack"
	pesapal_payment_processor "certschool.io/infrastructure/payments/pesapal"
)

// Processors holds one adapter per provider.
type Processors struct {
	Card          *intasend_payment_processor.IntasendPaymentProcessor
	BankRedirect  *paystack_payment_processor.PaystackPaymentProcessor
	OrderTracking *pesapal_payment_processor.PesapalPaymentProcessor
}

var PaymentProcessors *Processors

func InitialisePaymentProcessors(cfg *env.Config) *Processors {
	var ipnCache pesapal_payment_processor.IPNCache
	if client, err := cache.GetInstance(); err == nil {
		ipnCache = cache_repository.NewRedisRepository(client.Client)
	}
	PaymentProcessors = &Processors{
		Card:          intasend_payment_processor.NewIntasendPaymentProcessor(cfg),
		BankRedirect:  paystack_payment_processor.NewPaystackPaymentProcessor(cfg),
		OrderTracking: pesapal_payment_processor.NewPesapalPaymentProcessor(cfg, ipnCache),
	}
	return PaymentProcessors
}
