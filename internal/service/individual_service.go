package service

import (
	"context"
	"errors"
	"report_backend/internal/config"
	"report_backend/internal/model"
	"report_backend/internal/repository"
	"report_backend/internal/util"
	"report_backend/pkg/tracing"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// ModuleInfo is the descriptive metadata of an individual report.
type ModuleInfo struct {
	ModuleName    string
	ModuleID      string
	ModulePocName string
	ModulePocID   string
}

type SubmitAttemptInput struct {
	UserID       string
	Module       ModuleInfo
	ResultTestID string
	McqScore     util.Loose
	CodingScore  util.Loose
	TotalMark    util.Loose
	// Date defaults to the current UTC date.
	Date string
}

// UpdateAttemptInput is a partial update of one attempt. Absent or null
// scores keep their stored value; a blank Date or module field is ignored.
type UpdateAttemptInput struct {
	UserID       string
	ResultTestID string
	// MatchDate, when set, restricts the match to the attempt on that date.
	MatchDate   string
	Date        string
	McqScore    util.Loose
	CodingScore util.Loose
	TotalMark   util.Loose
	Module      ModuleInfo
}

type IndividualService struct {
	repo      repository.IndividualRepository
	locker    UserLocker
	recompute string
	now       func() time.Time
}

func NewIndividualService(repo repository.IndividualRepository, locker UserLocker, cfg *config.IndividualConfig) *IndividualService {
	recompute := cfg.ScoreRecompute
	if recompute == "" {
		recompute = config.RecomputeIncoming
	}
	return &IndividualService{
		repo:      repo,
		locker:    locker,
		recompute: recompute,
		now:       time.Now,
	}
}

func (s *IndividualService) today() string {
	return s.now().UTC().Format(util.DateFormat)
}

func validDate(date string) bool {
	_, err := time.Parse(util.DateFormat, date)
	return err == nil
}

// SubmitAttempt records a new attempt for a user, creating the user's report
// on first submission. A user can have at most one attempt per date.
func (s *IndividualService) SubmitAttempt(ctx context.Context, in SubmitAttemptInput) (individual *model.Individual, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "IndividualService.SubmitAttempt")
	defer func() { finishSpan(span, "individual.submit", err) }()
	span.SetAttributes(attribute.String("user_id", in.UserID))

	if strings.TrimSpace(in.UserID) == "" {
		return nil, util.KindError(util.ErrValidation, "user_id is required")
	}

	date := in.Date
	if date == "" {
		date = s.today()
	} else if !validDate(date) {
		return nil, util.KindErrorf(util.ErrValidation, "date must be formatted as YYYY-MM-DD, got %q", date)
	}

	attempt := model.TestAttempt{
		ResultTestID:      in.ResultTestID,
		Date:              date,
		ResultMcqScore:    in.McqScore.OrDefault(util.DefaultScore),
		ResultCodingScore: in.CodingScore.OrDefault(util.DefaultScore),
		ScoredMark:        util.FormatNumber(in.McqScore.Float() + in.CodingScore.Float()),
		TotalMark:         in.TotalMark.OrDefault(util.DefaultTotalMark),
	}

	unlock, err := s.locker.Lock(ctx, in.UserID)
	if err != nil {
		return nil, util.StorageError("lock user", err)
	}
	defer unlock()

	now := s.now().UTC()
	individual, err = s.repo.FindByUserID(ctx, in.UserID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		individual = &model.Individual{
			ID:            model.GenerateUUID(),
			ModuleName:    in.Module.ModuleName,
			ModuleID:      in.Module.ModuleID,
			ModulePocName: in.Module.ModulePocName,
			ModulePocID:   in.Module.ModulePocID,
			UserID:        in.UserID,
			Tests:         []model.TestAttempt{attempt},
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.repo.Create(ctx, individual); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return nil, util.KindErrorf(util.ErrConflict, "Report for user %s was created concurrently, retry the submission", in.UserID)
			}
			return nil, util.StorageError("create individual", err)
		}
		return individual, nil

	case err != nil:
		return nil, util.StorageError("find individual", err)
	}

	if individual.HasDate(date, -1) {
		return nil, util.KindErrorf(util.ErrConflict, "Test already exists for user on %s", date)
	}

	individual.Tests = append(individual.Tests, attempt)
	individual.UpdatedAt = now
	if err := s.repo.Save(ctx, individual); err != nil {
		return nil, util.StorageError("save individual", err)
	}
	return individual, nil
}

func (s *IndividualService) ListAll(ctx context.Context) (individuals []model.Individual, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "IndividualService.ListAll")
	defer func() { finishSpan(span, "individual.list", err) }()

	individuals, err = s.repo.FindAll(ctx)
	if err != nil {
		return nil, util.StorageError("list individuals", err)
	}
	return individuals, nil
}

func (s *IndividualService) GetByUser(ctx context.Context, userID string) (individual *model.Individual, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "IndividualService.GetByUser")
	defer func() { finishSpan(span, "individual.get", err) }()
	span.SetAttributes(attribute.String("user_id", userID))

	return s.find(ctx, userID, "No reports found for this user.")
}

func (s *IndividualService) find(ctx context.Context, userID, notFoundMsg string) (*model.Individual, error) {
	individual, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			if notFoundMsg == "" {
				return nil, util.ErrIndividualNotFound
			}
			return nil, util.KindError(util.ErrNotFound, notFoundMsg)
		}
		return nil, util.StorageError("find individual", err)
	}
	return individual, nil
}

// UpdateAttempt applies a partial update to the first attempt whose
// result_test_id matches and recomputes its scored mark.
func (s *IndividualService) UpdateAttempt(ctx context.Context, in UpdateAttemptInput) (individual *model.Individual, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "IndividualService.UpdateAttempt")
	defer func() { finishSpan(span, "individual.update", err) }()
	span.SetAttributes(
		attribute.String("user_id", in.UserID),
		attribute.String("result_test_id", in.ResultTestID),
	)

	if strings.TrimSpace(in.UserID) == "" {
		return nil, util.KindError(util.ErrValidation, "user_id is required")
	}
	if in.ResultTestID == "" {
		return nil, util.KindError(util.ErrValidation, "result_test_id is required")
	}
	if in.Date != "" && !validDate(in.Date) {
		return nil, util.KindErrorf(util.ErrValidation, "date must be formatted as YYYY-MM-DD, got %q", in.Date)
	}

	unlock, err := s.locker.Lock(ctx, in.UserID)
	if err != nil {
		return nil, util.StorageError("lock user", err)
	}
	defer unlock()

	individual, err = s.find(ctx, in.UserID, "")
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, t := range individual.Tests {
		if t.ResultTestID == in.ResultTestID && (in.MatchDate == "" || t.Date == in.MatchDate) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, util.ErrTestNotFound
	}

	test := &individual.Tests[idx]
	if in.Date != "" {
		if individual.HasDate(in.Date, idx) {
			return nil, util.KindErrorf(util.ErrConflict, "Test already exists for user on %s", in.Date)
		}
		test.Date = in.Date
	}
	if in.McqScore.Present() {
		test.ResultMcqScore = in.McqScore.Raw
	}
	if in.CodingScore.Present() {
		test.ResultCodingScore = in.CodingScore.Raw
	}
	if in.TotalMark.Present() {
		test.TotalMark = in.TotalMark.Raw
	}
	test.ScoredMark = util.FormatNumber(s.scoredMark(test, in))

	if in.Module.ModuleName != "" {
		individual.ModuleName = in.Module.ModuleName
	}
	if in.Module.ModuleID != "" {
		individual.ModuleID = in.Module.ModuleID
	}
	if in.Module.ModulePocName != "" {
		individual.ModulePocName = in.Module.ModulePocName
	}
	if in.Module.ModulePocID != "" {
		individual.ModulePocID = in.Module.ModulePocID
	}

	individual.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, individual); err != nil {
		return nil, util.StorageError("save individual", err)
	}
	return individual, nil
}

// scoredMark sums the scores the update sent ("incoming", a missing score
// counts as 0) or the attempt's scores after the update ("merged").
func (s *IndividualService) scoredMark(test *model.TestAttempt, in UpdateAttemptInput) float64 {
	if s.recompute == config.RecomputeMerged {
		return util.ParseNumber(test.ResultMcqScore) + util.ParseNumber(test.ResultCodingScore)
	}
	return in.McqScore.Float() + in.CodingScore.Float()
}

// DeleteAttempt removes every attempt with the given result_test_id, or only
// the one on date when date is set.
func (s *IndividualService) DeleteAttempt(ctx context.Context, userID, resultTestID, date string) (individual *model.Individual, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "IndividualService.DeleteAttempt")
	defer func() { finishSpan(span, "individual.delete", err) }()
	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.String("result_test_id", resultTestID),
	)

	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return nil, util.StorageError("lock user", err)
	}
	defer unlock()

	individual, err = s.find(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	kept := make([]model.TestAttempt, 0, len(individual.Tests))
	for _, t := range individual.Tests {
		if t.ResultTestID == resultTestID && (date == "" || t.Date == date) {
			continue
		}
		kept = append(kept, t)
	}
	if len(kept) == len(individual.Tests) {
		return nil, util.ErrTestNotFound
	}

	individual.Tests = kept
	individual.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, individual); err != nil {
		return nil, util.StorageError("save individual", err)
	}
	return individual, nil
}
