package repository

import (
	"context"
	"encoding/json"
	"errors"
	"report_backend/internal/model"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// IndividualRow is the relational shape of an Individual. The embedded
// attempts live in a JSON column so a Save stays a single-row write.
type IndividualRow struct {
	ID            string         `gorm:"primaryKey;type:varchar(36)"`
	UserID        string         `gorm:"uniqueIndex;type:varchar(128);not null;comment:用户ID"`
	ModuleName    string         `gorm:"type:varchar(255)"`
	ModuleID      string         `gorm:"type:varchar(128)"`
	ModulePocName string         `gorm:"type:varchar(255)"`
	ModulePocID   string         `gorm:"type:varchar(128)"`
	Tests         datatypes.JSON `gorm:"type:json"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (IndividualRow) TableName() string {
	return "individuals"
}

func toIndividualRow(i *model.Individual) (*IndividualRow, error) {
	tests := i.Tests
	if tests == nil {
		tests = []model.TestAttempt{}
	}
	raw, err := json.Marshal(tests)
	if err != nil {
		return nil, err
	}
	return &IndividualRow{
		ID:            i.ID,
		UserID:        i.UserID,
		ModuleName:    i.ModuleName,
		ModuleID:      i.ModuleID,
		ModulePocName: i.ModulePocName,
		ModulePocID:   i.ModulePocID,
		Tests:         datatypes.JSON(raw),
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}, nil
}

func (row *IndividualRow) toModel() (*model.Individual, error) {
	individual := &model.Individual{
		ID:            row.ID,
		UserID:        row.UserID,
		ModuleName:    row.ModuleName,
		ModuleID:      row.ModuleID,
		ModulePocName: row.ModulePocName,
		ModulePocID:   row.ModulePocID,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	if len(row.Tests) > 0 {
		if err := json.Unmarshal(row.Tests, &individual.Tests); err != nil {
			return nil, err
		}
	}
	individual.Normalize()
	return individual, nil
}

type MySQLIndividualRepository struct {
	DB *gorm.DB
}

func NewMySQLIndividualRepository(db *gorm.DB) *MySQLIndividualRepository {
	return &MySQLIndividualRepository{DB: db}
}

func (r *MySQLIndividualRepository) FindByUserID(ctx context.Context, userID string) (*model.Individual, error) {
	var row IndividualRow
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row.toModel()
}

func (r *MySQLIndividualRepository) FindAll(ctx context.Context) ([]model.Individual, error) {
	var rows []IndividualRow
	if err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	individuals := make([]model.Individual, 0, len(rows))
	for i := range rows {
		individual, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		individuals = append(individuals, *individual)
	}
	return individuals, nil
}

func (r *MySQLIndividualRepository) Create(ctx context.Context, individual *model.Individual) error {
	row, err := toIndividualRow(individual)
	if err != nil {
		return err
	}
	err = r.DB.WithContext(ctx).Create(row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	return err
}

func (r *MySQLIndividualRepository) Save(ctx context.Context, individual *model.Individual) error {
	row, err := toIndividualRow(individual)
	if err != nil {
		return err
	}

	res := r.DB.WithContext(ctx).Model(&IndividualRow{}).Where("id = ?", row.ID).Updates(map[string]interface{}{
		"module_name":     row.ModuleName,
		"module_id":       row.ModuleID,
		"module_poc_name": row.ModulePocName,
		"module_poc_id":   row.ModulePocID,
		"tests":           row.Tests,
		"updated_at":      row.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// MySQL reports zero affected rows for an identical write, so tell
		// "unchanged" apart from "missing".
		var count int64
		if err := r.DB.WithContext(ctx).Model(&IndividualRow{}).Where("id = ?", row.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
	}
	return nil
}
