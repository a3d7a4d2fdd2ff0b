package repository

import (
	"context"
	"report_backend/internal/model"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openInMemory(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBadgerIndividualRepository_CreateAndFind(t *testing.T) {
	repo := NewBadgerIndividualRepository(openInMemory(t))
	ctx := context.Background()

	_, err := repo.FindByUserID(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	individual := &model.Individual{
		ID:     model.GenerateUUID(),
		UserID: "u1",
		Tests:  []model.TestAttempt{{ResultTestID: "t1", Date: "2024-01-01", ScoredMark: "18"}},
	}
	require.NoError(t, repo.Create(ctx, individual))
	assert.ErrorIs(t, repo.Create(ctx, individual), ErrDuplicateKey)

	got, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, individual.ID, got.ID)
	assert.Equal(t, individual.Tests, got.Tests)
}

func TestBadgerIndividualRepository_Save(t *testing.T) {
	repo := NewBadgerIndividualRepository(openInMemory(t))
	ctx := context.Background()

	individual := &model.Individual{ID: model.GenerateUUID(), UserID: "u1"}
	assert.ErrorIs(t, repo.Save(ctx, individual), ErrNotFound)

	require.NoError(t, repo.Create(ctx, individual))
	individual.Tests = []model.TestAttempt{{ResultTestID: "t2", Date: "2024-01-02"}}
	require.NoError(t, repo.Save(ctx, individual))

	got, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got.Tests, 1)
	assert.Equal(t, "t2", got.Tests[0].ResultTestID)
}

func TestBadgerIndividualRepository_FindAllInCreationOrder(t *testing.T) {
	repo := NewBadgerIndividualRepository(openInMemory(t))
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, userID := range []string{"zed", "amy", "bob"} {
		require.NoError(t, repo.Create(ctx, &model.Individual{
			ID:        model.GenerateUUID(),
			UserID:    userID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "zed", all[0].UserID)
	assert.Equal(t, "amy", all[1].UserID)
	assert.Equal(t, "bob", all[2].UserID)
	for _, individual := range all {
		assert.NotNil(t, individual.Tests)
	}
}

func TestBadgerIndividualRepository_CancelledContext(t *testing.T) {
	repo := NewBadgerIndividualRepository(openInMemory(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FindByUserID(ctx, "u1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.Create(ctx, &model.Individual{UserID: "u1"}), context.Canceled)
}

func TestBadgerResultRepository(t *testing.T) {
	repo := NewBadgerResultRepository(openInMemory(t))
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, r := range []model.Result{
		{ResultID: "r1", ResultUserID: "u1", ResultTestID: "t1", ResultScore: 10},
		{ResultID: "r2", ResultUserID: "u1", ResultTestID: "t2", ResultScore: 5},
		{ResultID: "r3", ResultUserID: "u2", ResultTestID: "t1", ResultScore: 7},
	} {
		r.ID = model.GenerateUUID()
		r.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, &r))
	}
	assert.ErrorIs(t, repo.Create(ctx, &model.Result{ResultID: "r1"}), ErrDuplicateKey)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byUser, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	found, err := repo.FindByUserAndTest(ctx, "u2", "t1")
	require.NoError(t, err)
	assert.Equal(t, "r3", found.ResultID)

	_, err = repo.FindByUserAndTest(ctx, "u2", "t2")
	assert.ErrorIs(t, err, ErrNotFound)

	found.ResultScore = 9
	require.NoError(t, repo.Save(ctx, found))
	got, err := repo.FindByResultID(ctx, "r3")
	require.NoError(t, err)
	assert.Equal(t, 9.0, got.ResultScore)

	deleted, err := repo.DeleteByResultID(ctx, "r3")
	require.NoError(t, err)
	assert.Equal(t, "u2", deleted.ResultUserID)

	_, err = repo.DeleteByResultID(ctx, "r3")
	assert.ErrorIs(t, err, ErrNotFound)
}
