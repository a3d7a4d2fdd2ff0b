package service

import (
	"context"
	"errors"
	"fmt"
	"report_backend/internal/config"
	"report_backend/internal/model"
	"report_backend/internal/repository"
	"report_backend/internal/util"
	"report_backend/pkg/tracing"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

type CreateResultInput struct {
	ResultID         string
	ResultUserID     string
	ResultTestID     string
	ResultScore      util.Loose
	ResultTotalScore util.Loose
	ResultPocID      string
}

type ResultService struct {
	repo          repository.ResultRepository
	maxTotalScore float64
	now           func() time.Time
}

func NewResultService(repo repository.ResultRepository, cfg *config.ResultsConfig) *ResultService {
	return &ResultService{
		repo:          repo,
		maxTotalScore: cfg.MaxTotalScore,
		now:           time.Now,
	}
}

func (s *ResultService) ListResults(ctx context.Context) (results []model.Result, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "ResultService.ListResults")
	defer func() { finishSpan(span, "result.list", err) }()

	results, err = s.repo.FindAll(ctx)
	if err != nil {
		return nil, util.StorageError("list results", err)
	}
	return results, nil
}

func (s *ResultService) CreateResult(ctx context.Context, in CreateResultInput) (result *model.Result, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "ResultService.CreateResult")
	defer func() { finishSpan(span, "result.create", err) }()
	span.SetAttributes(attribute.String("result_id", in.ResultID))

	if in.ResultID == "" || in.ResultUserID == "" || in.ResultTestID == "" ||
		!in.ResultScore.Present() || !in.ResultTotalScore.Present() || in.ResultPocID == "" {
		return nil, util.KindError(util.ErrValidation, "Missing required fields")
	}

	if _, err := s.repo.FindByResultID(ctx, in.ResultID); err == nil {
		return nil, util.ErrResultExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, util.StorageError("find result", err)
	}

	now := s.now().UTC()
	result = &model.Result{
		ID:               model.GenerateUUID(),
		ResultID:         in.ResultID,
		ResultUserID:     in.ResultUserID,
		ResultTestID:     in.ResultTestID,
		ResultScore:      in.ResultScore.Float(),
		ResultTotalScore: in.ResultTotalScore.Float(),
		ResultPocID:      in.ResultPocID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Create(ctx, result); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, util.ErrResultExists
		}
		return nil, util.StorageError("create result", err)
	}
	return result, nil
}

func (s *ResultService) UpdateResult(ctx context.Context, resultID string, patch model.ResultPatch) (result *model.Result, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "ResultService.UpdateResult")
	defer func() { finishSpan(span, "result.update", err) }()
	span.SetAttributes(attribute.String("result_id", resultID))

	if resultID == "" {
		return nil, util.KindError(util.ErrValidation, "result_id is required for update")
	}

	result, err = s.repo.FindByResultID(ctx, resultID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.ErrResultNotFound
		}
		return nil, util.StorageError("find result", err)
	}

	patch.Apply(result)
	result.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, result); err != nil {
		return nil, util.StorageError("save result", err)
	}
	return result, nil
}

func (s *ResultService) DeleteResult(ctx context.Context, resultID string) (result *model.Result, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "ResultService.DeleteResult")
	defer func() { finishSpan(span, "result.delete", err) }()
	span.SetAttributes(attribute.String("result_id", resultID))

	result, err = s.repo.DeleteByResultID(ctx, resultID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.ErrResultNotFound
		}
		return nil, util.StorageError("delete result", err)
	}
	return result, nil
}

// ScoreSummary totals every score of a user and expresses it as a
// percentage of the configured maximum total score.
func (s *ResultService) ScoreSummary(ctx context.Context, userID string) (summary *model.ScoreSummary, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "ResultService.ScoreSummary")
	defer func() { finishSpan(span, "result.summary", err) }()
	span.SetAttributes(attribute.String("result_user_id", userID))

	results, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, util.StorageError("find results", err)
	}
	if len(results) == 0 {
		return nil, util.KindError(util.ErrNotFound, "No results found for this user")
	}

	summary = &model.ScoreSummary{
		ResultUserID: userID,
		Scores:       make([]float64, 0, len(results)),
	}
	for _, r := range results {
		summary.Scores = append(summary.Scores, r.ResultScore)
		summary.TotalScore += r.ResultScore
	}
	summary.Percentage = fmt.Sprintf("%.2f", summary.TotalScore/s.maxTotalScore*100)
	return summary, nil
}

func (s *ResultService) ResultExists(ctx context.Context, userID, testID string) (exists bool, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "ResultService.ResultExists")
	defer func() { finishSpan(span, "result.check", err) }()

	_, err = s.repo.FindByUserAndTest(ctx, userID, testID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrNotFound):
		return false, nil
	default:
		return false, util.StorageError("find result", err)
	}
}
