package repository

import (
	"context"
	"errors"
	"report_backend/internal/model"

	"gorm.io/gorm"
)

type MySQLResultRepository struct {
	DB *gorm.DB
}

func NewMySQLResultRepository(db *gorm.DB) *MySQLResultRepository {
	return &MySQLResultRepository{DB: db}
}

func (r *MySQLResultRepository) FindAll(ctx context.Context) ([]model.Result, error) {
	results := []model.Result{}
	err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&results).Error
	return results, err
}

func (r *MySQLResultRepository) FindByResultID(ctx context.Context, resultID string) (*model.Result, error) {
	return r.first(r.DB.WithContext(ctx).Where("result_id = ?", resultID))
}

func (r *MySQLResultRepository) FindByUserID(ctx context.Context, userID string) ([]model.Result, error) {
	results := []model.Result{}
	err := r.DB.WithContext(ctx).Where("result_user_id = ?", userID).Order("created_at ASC").Find(&results).Error
	return results, err
}

func (r *MySQLResultRepository) FindByUserAndTest(ctx context.Context, userID, testID string) (*model.Result, error) {
	return r.first(r.DB.WithContext(ctx).Where("result_user_id = ? AND result_test_id = ?", userID, testID))
}

func (r *MySQLResultRepository) first(query *gorm.DB) (*model.Result, error) {
	var result model.Result
	if err := query.First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *MySQLResultRepository) Create(ctx context.Context, result *model.Result) error {
	err := r.DB.WithContext(ctx).Create(result).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	return err
}

func (r *MySQLResultRepository) Save(ctx context.Context, result *model.Result) error {
	return r.DB.WithContext(ctx).Save(result).Error
}

func (r *MySQLResultRepository) DeleteByResultID(ctx context.Context, resultID string) (*model.Result, error) {
	var deleted *model.Result
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result, err := r.first(tx.Where("result_id = ?", resultID))
		if err != nil {
			return err
		}
		if err := tx.Delete(result).Error; err != nil {
			return err
		}
		deleted = result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
