package repository

import (
	"context"
	"sync"

	"certschool.io/entities"
	"certschool.io/infrastructure/database/connection/datastore"
	"certschool.io/infrastructure/database/repository/mongo"
)

var paymentOnce = sync.Once{}

var paymentRepository PaymentRepository

type PaymentRepository struct {
	*mongo.MongoRepository[entities.Payment]
}

func PaymentRepo() *PaymentRepository {
	paymentOnce.Do(func() {
		paymentRepository = PaymentRepository{&mongo.MongoRepository[entities.Payment]{Model: datastore.PaymentModel, Timeout: Timeout}}
	})
	return &paymentRepository
}

// Insert records a newly initiated payment. ErrPaymentExists means a
// reconciliation already wrote the same reference.
func (repo *PaymentRepository) Insert(ctx context.Context, payment entities.Payment) (*entities.Payment, error) {
	created, err := repo.CreateOne(ctx, payment)
	if err != nil {
		if mongo.IsDuplicateKeyOn(err, datastore.PaymentReferenceIndex) {
			return nil, ErrPaymentExists
		}
		return nil, err
	}
	return created, nil
}

func (repo *PaymentRepository) FindByReference(ctx context.Context, provider entities.PaymentProvider, reference string) (*entities.Payment, error) {
	return repo.FindOneByFilter(ctx, map[string]interface{}{
		"provider":  provider,
		"reference": reference,
	})
}

// UpsertByReference writes the authoritative provider view of a payment.
// Status, amount, currency and metadata are last-write-wins; everything
// else is kept from the first insert.
func (repo *PaymentRepository) UpsertByReference(ctx context.Context, payment entities.Payment) (*entities.Payment, error) {
	set := map[string]any{
		"status":   payment.Status,
		"amount":   payment.Amount,
		"currency": payment.Currency,
		"metadata": payment.Metadata,
	}
	if payment.MerchantReference != nil {
		set["merchantReference"] = payment.MerchantReference
	}
	return repo.UpsertOneByFilter(ctx, map[string]interface{}{
		"provider":  payment.Provider,
		"reference": payment.Reference,
	}, set, payment)
}
