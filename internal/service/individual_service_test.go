package service

import (
	"context"
	"errors"
	"fmt"
	"report_backend/internal/config"
	"report_backend/internal/model"
	"report_backend/internal/repository"
	"report_backend/internal/util"
	"report_backend/pkg/database"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := database.InitBadger(&config.BadgerConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestIndividualService(t *testing.T, recompute string) (*IndividualService, repository.IndividualRepository) {
	t.Helper()
	repo := repository.NewBadgerIndividualRepository(openTestDB(t))
	svc := NewIndividualService(repo, NewKeyedMutex(), &config.IndividualConfig{ScoreRecompute: recompute})
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func submission(userID, testID, date string, mcq, coding float64) SubmitAttemptInput {
	return SubmitAttemptInput{
		UserID: userID,
		Module: ModuleInfo{
			ModuleName:    "Go Basics",
			ModuleID:      "m1",
			ModulePocName: "Ana",
			ModulePocID:   "p1",
		},
		ResultTestID: testID,
		McqScore:     util.LooseNumber(mcq),
		CodingScore:  util.LooseNumber(coding),
		TotalMark:    util.LooseNumber(20),
		Date:         date,
	}
}

func TestSubmitAttempt_FirstSubmissionCreatesReport(t *testing.T) {
	svc, repo := newTestIndividualService(t, config.RecomputeIncoming)
	ctx := context.Background()

	individual, err := svc.SubmitAttempt(ctx, submission("u1", "t1", "2024-01-01", 8, 10))
	require.NoError(t, err)

	assert.NotEmpty(t, individual.ID)
	assert.Equal(t, "u1", individual.UserID)
	assert.Equal(t, "Go Basics", individual.ModuleName)
	assert.Equal(t, "p1", individual.ModulePocID)
	require.Len(t, individual.Tests, 1)
	assert.Equal(t, model.TestAttempt{
		ResultTestID:      "t1",
		Date:              "2024-01-01",
		ResultMcqScore:    "8",
		ResultCodingScore: "10",
		ScoredMark:        "18",
		TotalMark:         "20",
	}, individual.Tests[0])

	stored, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, individual.Tests, stored.Tests)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSubmitAttempt_SameDateIsRejected(t *testing.T) {
	svc, repo := newTestIndividualService(t, config.RecomputeIncoming)
	ctx := context.Background()

	_, err := svc.SubmitAttempt(ctx, submission("u1", "t1", "2024-01-01", 8, 10))
	require.NoError(t, err)

	_, err = svc.SubmitAttempt(ctx, submission("u1", "t2", "2024-01-01", 1, 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrConflict))
	assert.Equal(t, "Test already exists for user on 2024-01-01", err.Error())

	stored, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, stored.Tests, 1)
	assert.Equal(t, "t1", stored.Tests[0].ResultTestID)
	assert.Equal(t, "18", stored.Tests[0].ScoredMark)
}

func TestSubmitAttempt_NewDateAppends(t *testing.T) {
	svc, _ := newTestIndividualService(t, config.RecomputeIncoming)
	ctx := context.Background()

	first, err := svc.SubmitAttempt(ctx, submission("u1", "t1", "2024-01-01", 8, 10))
	require.NoError(t, err)
	prior := first.Tests[0]

	next := submission("u1", "t2", "2024-01-02", 4.5, 4)
	next.Module = ModuleInfo{ModuleName: "ignored"}
	individual, err := svc.SubmitAttempt(ctx, next)
	require.NoError(t, err)

	require.Len(t, individual.Tests, 2)
	assert.Equal(t, prior, individual.Tests[0])
	assert.Equal(t, "8.5", individual.Tests[1].ScoredMark)
	assert.Equal(t, "Go Basics", individual.ModuleName)
}

func TestSubmitAttempt_Defaults(t *testing.T) {
	svc, _ := newTestIndividualService(t, config.RecomputeIncoming)

	individual, err := svc.SubmitAttempt(context.Background(), SubmitAttemptInput{
		UserID:       "u2",
		ResultTestID: "t1",
		McqScore:     util.LooseString("abc"),
	})
	require.NoError(t, err)

	test := individual.Tests[0]
	assert.Equal(t, "2024-03-15", test.Date)
	assert.Equal(t, "abc", test.ResultMcqScore)
	assert.Equal(t, "0", test.ResultCodingScore)
	assert.Equal(t, "0", test.ScoredMark)
	assert.Equal(t, "100", test.TotalMark)
}

func TestSubmitAttempt_Validation(t *testing.T) {
	svc, _ := newTestIndividualService(t, config.RecomputeIncoming)
	ctx := context.Background()

	_, err := svc.SubmitAttempt(ctx, submission("", "t1", "2024-01-01", 1, 1))
	assert.True(t, errors.Is(err, util.ErrValidation))

	_, err = svc.SubmitAttempt(ctx, submission("u1", "t1", "01/02/2024", 1, 1))
	assert.True(t, errors.Is(err, util.ErrValidation))

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSubmitAttempt_ConcurrentSubmissionsAreSerialized(t *testing.T) {
	svc, repo := newTestIndividualService(t, config.RecomputeIncoming)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(day int) {
			defer wg.Done()
			date := fmt.Sprintf("2024-02-%02d", day)
			_, err := svc.SubmitAttempt(ctx, submission("u1", fmt.Sprintf("t%d", day), date, 1, 1))
			errs <- err
		}(i + 1)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	stored, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, stored.Tests, n)
}

func TestGetByUser(t *testing.T) {
	svc, _ := newTestIndividualService(t, config.RecomputeIncoming)
	ctx := context.Background()

	_, err := svc.GetByUser(ctx, "nobody")
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrNotFound))
	assert.Equal(t, "No reports found for this user.", err.Error())

	created, err := svc.SubmitAttempt(ctx, submission("u1", "t1", "2024-01-01", 8, 10))
	require.NoError(t, err)

	got, err := svc.GetByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Tests, got.Tests)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestUpdateAttempt_IncomingRecompute(t *testing.T) {
	svc, _ := newTestIndividualService(t, config.RecomputeIncoming)
	ctx := context.Background()

	_, err := svc.SubmitAttempt(ctx, submission("u1", "t1", "2024-01-01", 8, 10))
	require.NoError(t, err)

	individual, err := svc.UpdateAttempt(ctx, UpdateAttemptInput{
		UserID:       "u1",
		ResultTestID: "t1",
		McqScore:     util.LooseNumber(9),
	})
	require.NoError(t, err)

	test := individual.Tests[0]
	assert.Equal(t, "9", test.ResultMcqScore)
	assert.Equal(t, "10", test.ResultCodingScore)
	// Coding was not sent, so it counts as 0.
	assert.Equal(t, "9", test.ScoredMark)
	assert.Equal(t, "2024-01-01", test.Date)
	assert.Equal(t, "20", test.TotalMark)
}

func TestUpdateAttempt_MergedRecompute(t *testing.T) {
	svc, _ := newTestIndividualService(t, config.RecomputeMerged)
	ctx := context.Background()

	_, err := svc.SubmitAttempt(ctx, submission("u1", "t1", "2024-01-01", 8, 10))
	require.NoError(t, err)

	individual, err := svc.UpdateAttempt(ctx, UpdateAttemptInput{
		UserID:       "u1",
		ResultTestID: "t1",
		McqScore:     util.LooseNumber(9),
	})
	require.NoError(t, err)
	assert.Equal(t, "19", individual.Tests[0].ScoredMark)
}

func TestUpdateAttempt_FieldsAndModule(t *testing.T) {
	svc, repo := newTestIndividualService(t, config.RecomputeIncoming)
	ctx := context.Background()

	_, err := svc.SubmitAttempt(ctx, submission("u1", "t1", "2024-01-01", 8, 10))
	require.NoError(t, err)

	_, err = svc.UpdateAttempt(ctx, UpdateAttemptInput{
		UserID:       "u1",
		ResultTestID: "t1",
		Date:         "2024-01-05",
		McqScore:     util.LooseString("5"),
		CodingScore:  util.LooseNumber(0),
		TotalMark:    util.LooseNumber(30),
		Module:       ModuleInfo{ModuleName: "Go Advanced"},
	})
	require.NoError(t, err)

	stored, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	test := stored.Tests[0]
	assert.Equal(t, "2024-01-05", test.Date)
	assert.Equal(t, "5", test.ResultMcqScore)
	assert.Equal(t, "0", test.ResultCodingScore)
	assert.Equal(t, "5", test.ScoredMark)
	assert.Equal(t, "30", test.TotalMark)
	assert.Equal(t, "Go Advanced", stored.ModuleName)
	assert.Equal(t, "m1", stored.ModuleID)
}

func TestUpdateAttempt_FirstMatchWins(t *testing.T) {
	svc, _ := newTestIndividualService(t, config.RecomputeIncoming)
	ctx := context.Background()

	_, err := svc.SubmitAttempt(ctx, submission("u1", "t1", "2024-01-01", 1, 1))
	require.NoError(t, err)
	_, err = svc.SubmitAttempt(ctx, submission("u1", "t1", "2024-01-02", 2, 2))
	require.NoError(t, err)

	individual, err := svc.UpdateAttempt(ctx, UpdateAttemptInput{
		UserID:       "u1",
		ResultTestID: "t1",
		McqScore:     util.LooseNumber(7),
	})
	require.NoError(t, err)
	assert.Equal(t, "7", individual.Tests[0].ResultMcqScore)
	assert.Equal(t, "2", individual.Tests[1].ResultMcqScore)

	individual, err = svc.UpdateAttempt(ctx, UpdateAttemptInput{
		UserID:       "u1",
		ResultTestID: "t1",
		MatchDate:    "2024-01-02",
		McqScore:     util.LooseNumber(6),
	})
	require.NoError(t, err)
	assert.Equal(t, "7", individual.Tests[0].ResultMcqScore)
	assert.Equal(t, "6", individual.Tests[1].ResultMcqScore)
}

func TestUpdateAttempt_DateTakenByAnotherAttempt(t *testing.T) {
	svc, repo := newTestIndividualService(t, config.RecomputeIncoming)
	ctx := context.Background()

	_, err := svc.SubmitAttempt(ctx, submission("u1", "t1", "2024-01-01", 1, 1))
	require.NoError(t, err)
	_, err = svc.SubmitAttempt(ctx, submission("u1", "t2", "2024-01-02", 2, 2))
	require.NoError(t, err)

	_, err = svc.UpdateAttempt(ctx, UpdateAttemptInput{UserID: "u1", ResultTestID: "t1", Date: "2024-01-02"})
	assert.True(t, errors.Is(err, util.ErrConflict))

	// Re-stating an attempt's own date is not a conflict.
	_, err = svc.UpdateAttempt(ctx, UpdateAttemptInput{UserID: "u1", ResultTestID: "t1", Date: "2024-01-01"})
	assert.NoError(t, err)

	stored, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", stored.Tests[0].Date)
}

func TestUpdateAttempt_NotFound(t *testing.T) {
	svc, _ := newTestIndividualService(t, config.RecomputeIncoming)
	ctx := context.Background()

	_, err := svc.UpdateAttempt(ctx, UpdateAttemptInput{UserID: "ghost", ResultTestID: "t1"})
	assert.Equal(t, util.ErrIndividualNotFound, err)

	_, err = svc.SubmitAttempt(ctx, submission("u1", "t1", "2024-01-01", 1, 1))
	require.NoError(t, err)

	_, err = svc.UpdateAttempt(ctx, UpdateAttemptInput{UserID: "u1", ResultTestID: "t9"})
	assert.Equal(t, util.ErrTestNotFound, err)

	_, err = svc.UpdateAttempt(ctx, UpdateAttemptInput{UserID: "u1", ResultTestID: "t1", MatchDate: "2023-12-31"})
	assert.Equal(t, util.ErrTestNotFound, err)

	_, err = svc.UpdateAttempt(ctx, UpdateAttemptInput{UserID: "u1"})
	assert.True(t, errors.Is(err, util.ErrValidation))
}

func TestDeleteAttempt_RemovesEveryMatch(t *testing.T) {
	svc, repo := newTestIndividualService(t, config.RecomputeIncoming)
	ctx := context.Background()

	for _, in := range []SubmitAttemptInput{
		submission("u1", "t1", "2024-01-01", 1, 1),
		submission("u1", "t2", "2024-01-02", 2, 2),
		submission("u1", "t1", "2024-01-03", 3, 3),
	} {
		_, err := svc.SubmitAttempt(ctx, in)
		require.NoError(t, err)
	}

	individual, err := svc.DeleteAttempt(ctx, "u1", "t1", "")
	require.NoError(t, err)
	require.Len(t, individual.Tests, 1)
	assert.Equal(t, "t2", individual.Tests[0].ResultTestID)

	stored, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, stored.Tests, 1)
}

func TestDeleteAttempt_ScopedByDate(t *testing.T) {
	svc, _ := newTestIndividualService(t, config.RecomputeIncoming)
	ctx := context.Background()

	_, err := svc.SubmitAttempt(ctx, submission("u1", "t1", "2024-01-01", 1, 1))
	require.NoError(t, err)
	_, err = svc.SubmitAttempt(ctx, submission("u1", "t1", "2024-01-02", 2, 2))
	require.NoError(t, err)

	individual, err := svc.DeleteAttempt(ctx, "u1", "t1", "2024-01-02")
	require.NoError(t, err)
	require.Len(t, individual.Tests, 1)
	assert.Equal(t, "2024-01-01", individual.Tests[0].Date)
}

func TestDeleteAttempt_NotFound(t *testing.T) {
	svc, repo := newTestIndividualService(t, config.RecomputeIncoming)
	ctx := context.Background()

	_, err := svc.DeleteAttempt(ctx, "ghost", "t1", "")
	assert.Equal(t, util.ErrIndividualNotFound, err)

	_, err = svc.SubmitAttempt(ctx, submission("u1", "t1", "2024-01-01", 1, 1))
	require.NoError(t, err)

	_, err = svc.DeleteAttempt(ctx, "u1", "t9", "")
	assert.Equal(t, util.ErrTestNotFound, err)

	stored, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, stored.Tests, 1)
}

func TestDeleteAttempt_LastAttemptLeavesEmptyReport(t *testing.T) {
	svc, _ := newTestIndividualService(t, config.RecomputeIncoming)
	ctx := context.Background()

	_, err := svc.SubmitAttempt(ctx, submission("u1", "t1", "2024-01-01", 1, 1))
	require.NoError(t, err)

	_, err = svc.DeleteAttempt(ctx, "u1", "t1", "")
	require.NoError(t, err)

	got, err := svc.GetByUser(ctx, "u1")
	require.NoError(t, err)
	assert.NotNil(t, got.Tests)
	assert.Empty(t, got.Tests)
}
