package services

import (
	"context"
	"fmt"
	"log/slog"

	"paytrack/internal/core"
	"paytrack/internal/storage"
)

// ShiftPublisher pushes shift sync messages onto the export bus.
type ShiftPublisher interface {
	PublishShiftSync(ctx context.Context, id, version int64) error
}

// ShiftService rates and records shifts. Pay is always computed here from the
// workplace rates; caller-supplied pay figures are ignored.
type ShiftService struct {
	workplaces storage.WorkplaceStore
	shifts     storage.ShiftStore
	holidays   core.HolidayTable
	publisher  ShiftPublisher
}

func NewShiftService(
	workplaces storage.WorkplaceStore,
	shifts storage.ShiftStore,
	holidays core.HolidayTable,
	publisher ShiftPublisher,
) *ShiftService {
	return &ShiftService{
		workplaces: workplaces,
		shifts:     shifts,
		holidays:   holidays,
		publisher:  publisher,
	}
}

// ShiftInput is what the caller controls about a shift.
type ShiftInput struct {
	WorkplaceID int64
	Date        core.Date
	Start       core.ClockTime
	End         core.ClockTime
	Notes       string
}

// Create rates the shift against its workplace and saves it, then publishes
// a sync message. A publish failure never fails the request; the shift stays
// queued as pending.
func (s *ShiftService) Create(ctx context.Context, in ShiftInput) (core.Shift, error) {
	shift, err := s.rate(ctx, in)
	if err != nil {
		return core.Shift{}, err
	}

	id, err := s.shifts.CreateShift(ctx, shift)
	if err != nil {
		return core.Shift{}, fmt.Errorf("save shift: %w", err)
	}

	s.publishSync(ctx, id, 1)
	return s.shifts.GetShift(ctx, id)
}

// Update re-rates the shift from its current workplace rates and bumps the
// sync version.
func (s *ShiftService) Update(ctx context.Context, id int64, in ShiftInput) (core.Shift, error) {
	current, err := s.shifts.GetShift(ctx, id)
	if err != nil {
		return core.Shift{}, err
	}

	shift, err := s.rate(ctx, in)
	if err != nil {
		return core.Shift{}, err
	}
	shift.ID = id

	if err := s.shifts.UpdateShift(ctx, shift); err != nil {
		return core.Shift{}, err
	}

	s.publishSync(ctx, id, current.Version+1)
	return s.shifts.GetShift(ctx, id)
}

func (s *ShiftService) Get(ctx context.Context, id int64) (core.Shift, error) {
	return s.shifts.GetShift(ctx, id)
}

func (s *ShiftService) List(ctx context.Context, f core.ShiftFilter) ([]core.Shift, error) {
	return s.shifts.ListShifts(ctx, f)
}

func (s *ShiftService) Delete(ctx context.Context, id int64) error {
	return s.shifts.DeleteShift(ctx, id)
}

// rate loads the workplace and computes the pay breakdown.
func (s *ShiftService) rate(ctx context.Context, in ShiftInput) (core.Shift, error) {
	wp, err := s.workplaces.GetWorkplace(ctx, in.WorkplaceID)
	if err != nil {
		return core.Shift{}, err
	}

	pay, err := core.ComputePay(wp, in.Date, in.Start, in.End, s.holidays)
	if err != nil {
		return core.Shift{}, err
	}

	return core.Shift{
		WorkplaceID: wp.ID,
		Date:        in.Date,
		Start:       in.Start,
		End:         in.End,
		Hours:       pay.Hours,
		Day:         pay.Day,
		Overtime:    pay.Overtime,
		ShiftType:   pay.ShiftType,
		RegularPay:  pay.RegularPay,
		OvertimePay: pay.OvertimePay,
		TotalPay:    pay.TotalPay,
		Notes:       in.Notes,
	}, nil
}

func (s *ShiftService) publishSync(ctx context.Context, id, version int64) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishShiftSync(ctx, id, version); err != nil {
		slog.ErrorContext(ctx, "Failed to publish shift sync message",
			"id", id, "version", version, "error", err)
	}
}
