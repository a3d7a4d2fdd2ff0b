package repository

import (
	"context"
	"encoding/json"
	"errors"
	"report_backend/internal/model"
	"sort"

	"github.com/dgraph-io/badger/v4"
)

const individualPrefix = "individual/"

// BadgerIndividualRepository stores each Individual as a JSON value under
// individual/<user_id>.
type BadgerIndividualRepository struct {
	db *badger.DB
}

func NewBadgerIndividualRepository(db *badger.DB) *BadgerIndividualRepository {
	return &BadgerIndividualRepository{db: db}
}

func individualKey(userID string) []byte {
	return []byte(individualPrefix + userID)
}

func (r *BadgerIndividualRepository) FindByUserID(ctx context.Context, userID string) (*model.Individual, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var individual model.Individual
	err := r.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, individualKey(userID), &individual)
	})
	if err != nil {
		return nil, err
	}
	individual.Normalize()
	return &individual, nil
}

func (r *BadgerIndividualRepository) FindAll(ctx context.Context) ([]model.Individual, error) {
	individuals := []model.Individual{}
	err := r.db.View(func(txn *badger.Txn) error {
		return scanJSON(ctx, txn, []byte(individualPrefix), func(val []byte) error {
			var individual model.Individual
			if err := json.Unmarshal(val, &individual); err != nil {
				return err
			}
			individual.Normalize()
			individuals = append(individuals, individual)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	// Keys iterate in user_id order; report in creation order like the other
	// backends.
	sort.SliceStable(individuals, func(i, j int) bool {
		return individuals[i].CreatedAt.Before(individuals[j].CreatedAt)
	})
	return individuals, nil
}

func (r *BadgerIndividualRepository) Create(ctx context.Context, individual *model.Individual) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		key := individualKey(individual.UserID)
		if _, err := txn.Get(key); err == nil {
			return ErrDuplicateKey
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return setJSON(txn, key, individual)
	})
}

func (r *BadgerIndividualRepository) Save(ctx context.Context, individual *model.Individual) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		key := individualKey(individual.UserID)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return setJSON(txn, key, individual)
	})
}

func getJSON(txn *badger.Txn, key []byte, out interface{}) error {
	item, err := txn.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

func setJSON(txn *badger.Txn, key []byte, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return txn.Set(key, raw)
}

func scanJSON(ctx context.Context, txn *badger.Txn, prefix []byte, fn func(val []byte) error) error {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := it.Item().Value(fn); err != nil {
			return err
		}
	}
	return nil
}
