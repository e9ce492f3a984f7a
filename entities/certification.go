package entities

import (
	"time"

	"certschool.io/application/utils"
)

// Certification is a catalog program. Price is in the institution's base
// currency unit and carries no currency code.
type Certification struct {
	Title       string  `bson:"title" json:"title"`
	Description string  `bson:"description" json:"description"`
	Category    string  `bson:"category" json:"category"`
	Level       string  `bson:"level" json:"level"`
	Price       float64 `bson:"price" json:"price"`
	Slug        string  `bson:"slug" json:"slug"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model Certification) ParseModel() any {
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
