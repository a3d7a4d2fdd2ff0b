package repository

import (
	"context"
	"encoding/json"
	"errors"
	"report_backend/internal/model"
	"sort"

	"github.com/dgraph-io/badger/v4"
)

const resultPrefix = "result/"

// BadgerResultRepository stores results under result/<result_id>. Lookups
// by user scan the prefix; the result set of this service is small.
type BadgerResultRepository struct {
	db *badger.DB
}

func NewBadgerResultRepository(db *badger.DB) *BadgerResultRepository {
	return &BadgerResultRepository{db: db}
}

func resultKey(resultID string) []byte {
	return []byte(resultPrefix + resultID)
}

func (r *BadgerResultRepository) filter(ctx context.Context, keep func(*model.Result) bool) ([]model.Result, error) {
	results := []model.Result{}
	err := r.db.View(func(txn *badger.Txn) error {
		return scanJSON(ctx, txn, []byte(resultPrefix), func(val []byte) error {
			var result model.Result
			if err := json.Unmarshal(val, &result); err != nil {
				return err
			}
			if keep(&result) {
				results = append(results, result)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt.Before(results[j].CreatedAt)
	})
	return results, nil
}

func (r *BadgerResultRepository) FindAll(ctx context.Context) ([]model.Result, error) {
	return r.filter(ctx, func(*model.Result) bool { return true })
}

func (r *BadgerResultRepository) FindByResultID(ctx context.Context, resultID string) (*model.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var result model.Result
	err := r.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, resultKey(resultID), &result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *BadgerResultRepository) FindByUserID(ctx context.Context, userID string) ([]model.Result, error) {
	return r.filter(ctx, func(res *model.Result) bool { return res.ResultUserID == userID })
}

func (r *BadgerResultRepository) FindByUserAndTest(ctx context.Context, userID, testID string) (*model.Result, error) {
	results, err := r.filter(ctx, func(res *model.Result) bool {
		return res.ResultUserID == userID && res.ResultTestID == testID
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	return &results[0], nil
}

func (r *BadgerResultRepository) Create(ctx context.Context, result *model.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		key := resultKey(result.ResultID)
		if _, err := txn.Get(key); err == nil {
			return ErrDuplicateKey
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return setJSON(txn, key, result)
	})
}

func (r *BadgerResultRepository) Save(ctx context.Context, result *model.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, resultKey(result.ResultID), result)
	})
}

func (r *BadgerResultRepository) DeleteByResultID(ctx context.Context, resultID string) (*model.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var result model.Result
	err := r.db.Update(func(txn *badger.Txn) error {
		key := resultKey(resultID)
		if err := getJSON(txn, key, &result); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
