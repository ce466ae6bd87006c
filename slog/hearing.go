package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/hearings"
)

// Ensure LoggingHearingService implements hearings.HearingService.
var _ hearings.HearingService = (*LoggingHearingService)(nil)

// LoggingHearingService wraps a HearingService with debug logging.
type LoggingHearingService struct {
	next   hearings.HearingService
	logger *slog.Logger
}

// NewLoggingHearingService creates a new LoggingHearingService.
func NewLoggingHearingService(next hearings.HearingService, logger *slog.Logger) *LoggingHearingService {
	return &LoggingHearingService{next: next, logger: logger}
}

func (s *LoggingHearingService) HearingExists(ctx context.Context, id string) (exists bool, err error) {
	defer func(begin time.Time) {
		s.logger.Info("hearing exists",
			"id", id,
			"exists", exists,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.HearingExists(ctx, id)
}

func (s *LoggingHearingService) CreateHearing(ctx context.Context, h *hearings.Hearing) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create hearing",
			"id", h.ID,
			"bytes", len(h.Content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateHearing(ctx, h)
}

func (s *LoggingHearingService) FindHearingByID(ctx context.Context, id string) (h *hearings.Hearing, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find hearing",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindHearingByID(ctx, id)
}
