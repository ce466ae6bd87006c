package mock

import (
	"context"

	"github.com/fwojciec/hearings"
)

var _ hearings.HearingService = (*HearingService)(nil)

// HearingService is a mock implementation of hearings.HearingService.
type HearingService struct {
	HearingExistsFn   func(ctx context.Context, id string) (bool, error)
	CreateHearingFn   func(ctx context.Context, h *hearings.Hearing) error
	FindHearingByIDFn func(ctx context.Context, id string) (*hearings.Hearing, error)
}

func (s *HearingService) HearingExists(ctx context.Context, id string) (bool, error) {
	return s.HearingExistsFn(ctx, id)
}

func (s *HearingService) CreateHearing(ctx context.Context, h *hearings.Hearing) error {
	return s.CreateHearingFn(ctx, h)
}

func (s *HearingService) FindHearingByID(ctx context.Context, id string) (*hearings.Hearing, error) {
	return s.FindHearingByIDFn(ctx, id)
}
