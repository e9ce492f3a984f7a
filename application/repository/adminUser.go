package repository

import (
	"context"
	"sync"

	"certschool.io/entities"
	"certschool.io/infrastructure/database/connection/datastore"
	"certschool.io/infrastructure/database/repository/mongo"
)

var adminUserOnce = sync.Once{}

var adminUserRepository AdminUserRepository

type AdminUserRepository struct {
	*mongo.MongoRepository[entities.AdminUser]
}

func AdminUserRepo() *AdminUserRepository {
	adminUserOnce.Do(func() {
		adminUserRepository = AdminUserRepository{&mongo.MongoRepository[entities.AdminUser]{Model: datastore.AdminUserModel, Timeout: Timeout}}
	})
	return &adminUserRepository
}

func (repo *AdminUserRepository) IsAdmin(ctx context.Context, userID string) (bool, error) {
	count, err := repo.CountDocs(ctx, map[string]interface{}{"userID": userID})
	if err != nil {
		return false, err
	}
	return count != 0, nil
}
