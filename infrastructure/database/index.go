package database

import (
	"context"

	"certschool.io/infrastructure/database/connection"
	"certschool.io/infrastructure/env"
)

func SetUpDatabase(ctx context.Context, cfg *env.Config) error {
	return connection.ConnectToDatabase(ctx, cfg)
}

type BaseModel interface {
	ParseModel() any
}
