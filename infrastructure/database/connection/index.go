package connection

import (
	"context"

	"certschool.io/infrastructure/database/connection/cache"
	"certschool.io/infrastructure/database/connection/datastore"
	"certschool.io/infrastructure/env"
)

func ConnectToDatabase(ctx context.Context, cfg *env.Config) error {
	if err := datastore.ConnectToDatabase(ctx, cfg); err != nil {
		return err
	}
	cache.ConnectToCache(cfg)
	return nil
}
