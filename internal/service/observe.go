package service

import (
	"errors"
	"report_backend/internal/util"
	"report_backend/pkg/monitoring"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, util.ErrConflict):
		return "conflict"
	case errors.Is(err, util.ErrNotFound):
		return "not_found"
	case errors.Is(err, util.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}

// finishSpan ends span and counts the operation. Only unexpected errors mark
// the span as failed; not-found and conflicts are normal answers.
func finishSpan(span trace.Span, operation string, err error) {
	outcome := outcomeOf(err)
	if outcome == "error" {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(attribute.String("outcome", outcome))
	monitoring.ObserveOperation(operation, outcome)
	span.End()
}
