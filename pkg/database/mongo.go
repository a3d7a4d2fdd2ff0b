package database

import (
	"context"
	"report_backend/internal/config"
	"report_backend/pkg/logger"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

func InitMongo(ctx context.Context, cfg *config.MongoConfig, timeout time.Duration) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetTimeout(timeout))
	if err != nil {
		return nil, nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, nil, err
	}

	logger.Log.Info("Database connection established",
		zap.String("driver", config.DriverMongo),
		zap.String("database", cfg.Database),
	)
	return client, client.Database(cfg.Database), nil
}
