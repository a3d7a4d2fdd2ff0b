package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"report_backend/internal/util"
	"report_backend/pkg/logger"
	"report_backend/pkg/tracing"
	"time"

	"go.uber.org/zap"
)

type ExportResult struct {
	URL    string `json:"url"`
	Object string `json:"object"`
	Count  int    `json:"count"`
}

// ExportService snapshots every individual report into object storage.
type ExportService struct {
	individuals *IndividualService
	storage     *StorageService
	now         func() time.Time
}

func NewExportService(individuals *IndividualService, storage *StorageService) *ExportService {
	return &ExportService{
		individuals: individuals,
		storage:     storage,
		now:         time.Now,
	}
}

func (s *ExportService) ExportIndividuals(ctx context.Context) (res *ExportResult, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "ExportService.ExportIndividuals")
	defer func() { finishSpan(span, "individual.export", err) }()

	individuals, err := s.individuals.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := json.MarshalIndent(individuals, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	object := fmt.Sprintf("exports/individual-%s.json", s.now().UTC().Format(util.ExportTimeFormat))
	url, err := s.storage.Upload(ctx, object, bytes.NewReader(raw), int64(len(raw)), "application/json")
	if err != nil {
		return nil, util.StorageError("upload export", err)
	}

	logger.Log.Info("Individual reports exported",
		zap.String("object", object),
		zap.Int("count", len(individuals)),
	)
	return &ExportResult{URL: url, Object: object, Count: len(individuals)}, nil
}
