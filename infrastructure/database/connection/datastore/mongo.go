package datastore

import (
	"context"
	"errors"

	"certschool.io/infrastructure/env"
	"certschool.io/infrastructure/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	client *mongo.Client

	ApplicationModel    *mongo.Collection
	CertificationModel  *mongo.Collection
	UserEnrollmentModel *mongo.Collection
	PaymentModel        *mongo.Collection
	AdminUserModel      *mongo.Collection
	DocumentModel       *mongo.Collection
)

func ConnectToDatabase(ctx context.Context, cfg *env.Config) error {
	if cfg.DBURL == "" {
		logger.Error("mongo url missing")
		return errors.New("mongo url missing")
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.DatastoreTimeout)
	defer cancel()

	clientOpts := options.Client().ApplyURI(cfg.DBURL)
	clientOpts.SetMinPoolSize(5)
	clientOpts.SetMaxPoolSize(10)
	clientOpts.SetTimeout(cfg.DatastoreTimeout)

	c, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		logger.Error("an error occured while starting the database", logger.LoggerOptions{Key: "error", Data: err})
		return err
	}
	if err = c.Ping(ctx, nil); err != nil {
		logger.Error("an error occured while pinging the database", logger.LoggerOptions{Key: "error", Data: err})
		return err
	}
	client = c

	db := client.Database(cfg.DBName)
	if err = setUpIndexes(ctx, db); err != nil {
		return err
	}

	logger.Info("connected to mongodb successfully")
	return nil
}

// Set up the indexes for the database
func setUpIndexes(ctx context.Context, db *mongo.Database) error {
	ApplicationModel = db.Collection("applications")
	if _, err := ApplicationModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "userID", Value: 1}, {Key: "certificationID", Value: 1}, {Key: "status", Value: 1}},
		Options: options.Index(),
	}, {
		Keys:    bson.D{{Key: "userID", Value: 1}, {Key: "programName", Value: 1}},
		Options: options.Index(),
	}}); err != nil {
		logger.Error("failed to create applications indexes", logger.LoggerOptions{Key: "error", Data: err})
		return err
	}

	CertificationModel = db.Collection("certifications")
	if _, err := CertificationModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	}}); err != nil {
		logger.Error("failed to create certifications indexes", logger.LoggerOptions{Key: "error", Data: err})
		return err
	}

	// activeEnrollmentIndex closes the race between the admission checks
	// and the insert: the second concurrent insert fails with a duplicate key.
	UserEnrollmentModel = db.Collection("user_enrollments")
	if _, err := UserEnrollmentModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys: bson.D{{Key: "userID", Value: 1}},
		Options: options.Index().
			SetName(ActiveEnrollmentIndex).
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"status": "active"}),
	}, {
		Keys:    bson.D{{Key: "userID", Value: 1}, {Key: "certificationID", Value: 1}},
		Options: options.Index().SetName(LearnerCertificationIndex).SetUnique(true),
	}}); err != nil {
		logger.Error("failed to create user_enrollments indexes", logger.LoggerOptions{Key: "error", Data: err})
		return err
	}

	PaymentModel = db.Collection("payments")
	if _, err := PaymentModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "provider", Value: 1}, {Key: "reference", Value: 1}},
		Options: options.Index().SetName(PaymentReferenceIndex).SetUnique(true),
	}, {
		Keys:    bson.D{{Key: "applicationID", Value: 1}},
		Options: options.Index(),
	}}); err != nil {
		logger.Error("failed to create payments indexes", logger.LoggerOptions{Key: "error", Data: err})
		return err
	}

	AdminUserModel = db.Collection("admin_users")
	DocumentModel = db.Collection("documents")
	if _, err := AdminUserModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "userID", Value: 1}},
		Options: options.Index().SetUnique(true),
	}}); err != nil {
		logger.Error("failed to create admin_users indexes", logger.LoggerOptions{Key: "error", Data: err})
		return err
	}

	logger.Info("mongodb indexes set up successfully")
	return nil
}

const (
	ActiveEnrollmentIndex     = "userID_active_unique"
	LearnerCertificationIndex = "userID_certificationID_unique"
	PaymentReferenceIndex     = "provider_reference_unique"
)

func CleanUp() {
	if client == nil {
		return
	}
	if err := client.Disconnect(context.Background()); err != nil {
		logger.Error("error disconnecting from mongodb", logger.LoggerOptions{Key: "error", Data: err})
	}
}
