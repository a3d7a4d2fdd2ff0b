package database

import (
	"fmt"
	"report_backend/internal/config"
	"report_backend/internal/model"
	"report_backend/internal/repository"
	"report_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func InitDB(cfg *config.MySQLConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=UTC",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Database connection established", zap.String("driver", config.DriverMySQL))

	err = db.AutoMigrate(
		&repository.IndividualRow{},
		&model.Result{},
	)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Database migration completed")
	return db, nil
}
