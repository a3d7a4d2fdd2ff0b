package repository

import (
	"context"
	"errors"
	"report_backend/internal/model"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// IndividualRepository is the document store holding one Individual per user.
// Save overwrites the whole document.
type IndividualRepository interface {
	FindByUserID(ctx context.Context, userID string) (*model.Individual, error)
	FindAll(ctx context.Context) ([]model.Individual, error)
	Create(ctx context.Context, individual *model.Individual) error
	Save(ctx context.Context, individual *model.Individual) error
}

type ResultRepository interface {
	FindAll(ctx context.Context) ([]model.Result, error)
	FindByResultID(ctx context.Context, resultID string) (*model.Result, error)
	FindByUserID(ctx context.Context, userID string) ([]model.Result, error)
	FindByUserAndTest(ctx context.Context, userID, testID string) (*model.Result, error)
	Create(ctx context.Context, result *model.Result) error
	Save(ctx context.Context, result *model.Result) error
	DeleteByResultID(ctx context.Context, resultID string) (*model.Result, error)
}
