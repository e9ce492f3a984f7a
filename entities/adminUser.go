package entities

import (
	"time"

	"certschool.io/application/utils"
)

type AdminUser struct {
	UserID string `bson:"userID" json:"userID"`
	Email  string `bson:"email" json:"email"`
	Role   string `bson:"role" json:"role"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model AdminUser) ParseModel() any {
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
