package entities

import (
	"time"

	"certschool.io/application/utils"
)

type PaymentProvider string

const (
	CardProvider          PaymentProvider = "card"
	BankRedirectProvider  PaymentProvider = "bank-redirect"
	OrderTrackingProvider PaymentProvider = "order-tracking"
)

func (p PaymentProvider) IsValid() bool {
	return p == CardProvider || p == BankRedirectProvider || p == OrderTrackingProvider
}

// Payment records one attempt to move money through exactly one provider.
// (Provider, Reference) is unique and is the reconciliation key.
// Status holds the provider's own vocabulary.
type Payment struct {
	Provider          PaymentProvider `bson:"provider" json:"provider"`
	Reference         string          `bson:"reference" json:"reference"`
	MerchantReference *string         `bson:"merchantReference" json:"merchantReference"`
	Amount            float64         `bson:"amount" json:"amount"`
	Currency          string          `bson:"currency" json:"currency"`
	Status            string          `bson:"status" json:"status"`
	Email             string          `bson:"email" json:"email"`
	ApplicationID     *string         `bson:"applicationID" json:"applicationID"`
	CertificationID   *string         `bson:"certificationID" json:"certificationID"`
	Metadata          map[string]any  `bson:"metadata" json:"metadata"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model Payment) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateUULDString()
		}
	}
	model.UpdatedAt = now
	return &model
}
