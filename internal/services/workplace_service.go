// Package services provides business logic and orchestration over storage,
// the pay engine and the sync bus.
package services

import (
	"context"
	"fmt"

	"paytrack/internal/core"
	"paytrack/internal/storage"
)

// WorkplaceService manages rate configurations.
type WorkplaceService struct {
	workplaces storage.WorkplaceStore
	shifts     storage.ShiftStore
}

func NewWorkplaceService(workplaces storage.WorkplaceStore, shifts storage.ShiftStore) *WorkplaceService {
	return &WorkplaceService{workplaces: workplaces, shifts: shifts}
}

// Create validates and stores a rate configuration exactly as given. Zero
// multipliers and a zero threshold are legitimate settings, not omissions;
// defaulting for absent fields is the transport layer's concern.
func (s *WorkplaceService) Create(ctx context.Context, w core.Workplace) (core.Workplace, error) {
	if err := w.Validate(); err != nil {
		return core.Workplace{}, err
	}
	id, err := s.workplaces.CreateWorkplace(ctx, w)
	if err != nil {
		return core.Workplace{}, fmt.Errorf("create workplace: %w", err)
	}
	return s.workplaces.GetWorkplace(ctx, id)
}

func (s *WorkplaceService) Get(ctx context.Context, id int64) (core.Workplace, error) {
	return s.workplaces.GetWorkplace(ctx, id)
}

func (s *WorkplaceService) List(ctx context.Context) ([]core.Workplace, error) {
	return s.workplaces.ListWorkplaces(ctx)
}

// Update replaces the rate configuration. Pay already stored on past shifts
// is never recomputed.
func (s *WorkplaceService) Update(ctx context.Context, w core.Workplace) (core.Workplace, error) {
	if err := w.Validate(); err != nil {
		return core.Workplace{}, err
	}
	if err := s.workplaces.UpdateWorkplace(ctx, w); err != nil {
		return core.Workplace{}, err
	}
	return s.workplaces.GetWorkplace(ctx, w.ID)
}

// Delete refuses to remove a workplace that still has shifts recorded
// against it.
func (s *WorkplaceService) Delete(ctx context.Context, id int64) error {
	n, err := s.shifts.CountShiftsForWorkplace(ctx, id)
	if err != nil {
		return fmt.Errorf("count shifts: %w", err)
	}
	if n > 0 {
		return core.Validationf("workplace has %d shifts recorded, delete them first", n)
	}
	return s.workplaces.DeleteWorkplace(ctx, id)
}
