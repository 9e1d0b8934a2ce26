package services

import (
	"context"
	"errors"
	"testing"

	"paytrack/internal/core"
)

func mustDate(t *testing.T, s string) core.Date {
	t.Helper()
	d, err := core.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func mustTime(t *testing.T, s string) core.ClockTime {
	t.Helper()
	c, err := core.ParseClockTime(s)
	if err != nil {
		t.Fatalf("ParseClockTime(%q): %v", s, err)
	}
	return c
}

func seedWorkplace(t *testing.T, store *fakeWorkplaceStore) int64 {
	t.Helper()
	id, err := store.CreateWorkplace(context.Background(), core.Workplace{
		Name:                    "Cafe Norte",
		BaseRate:                core.Money{Cents: 3000},
		WeekendMultiplier:       1.5,
		PublicHolidayMultiplier: 2.5,
		OvertimeMultiplier:      1.5,
		OvertimeThreshold:       8,
	})
	if err != nil {
		t.Fatalf("CreateWorkplace: %v", err)
	}
	return id
}

func TestShiftServiceCreateComputesPay(t *testing.T) {
	workplaces := newFakeWorkplaceStore()
	shifts := newFakeShiftStore()
	pub := &recordingPublisher{}
	svc := NewShiftService(workplaces, shifts, core.AustralianHolidays(), pub)
	wpID := seedWorkplace(t, workplaces)

	// Saturday, 10 hours against an 8 hour threshold: 8h at 45/h plus 2h at
	// 67.50/h.
	got, err := svc.Create(context.Background(), ShiftInput{
		WorkplaceID: wpID,
		Date:        mustDate(t, "2026-01-03"),
		Start:       mustTime(t, "08:00"),
		End:         mustTime(t, "18:00"),
		Notes:       "open to close",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if got.TotalPay.Cents != 49500 {
		t.Errorf("TotalPay = %d, want 49500", got.TotalPay.Cents)
	}
	if got.RegularPay.Cents != 36000 || got.OvertimePay.Cents != 13500 {
		t.Errorf("split = %d/%d, want 36000/13500", got.RegularPay.Cents, got.OvertimePay.Cents)
	}
	if got.ShiftType != "weekend_overtime" {
		t.Errorf("ShiftType = %q, want weekend_overtime", got.ShiftType)
	}
	if !got.Overtime {
		t.Error("Overtime = false, want true")
	}

	if len(pub.ids) != 1 || pub.ids[0] != got.ID || pub.versions[0] != 1 {
		t.Errorf("published (%v, %v), want ([%d], [1])", pub.ids, pub.versions, got.ID)
	}
}

func TestShiftServiceCreateUnknownWorkplace(t *testing.T) {
	svc := NewShiftService(newFakeWorkplaceStore(), newFakeShiftStore(), core.AustralianHolidays(), nil)

	_, err := svc.Create(context.Background(), ShiftInput{
		WorkplaceID: 99,
		Date:        mustDate(t, "2026-01-05"),
		Start:       mustTime(t, "09:00"),
		End:         mustTime(t, "17:00"),
	})
	if !core.IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestShiftServiceCreateRejectsInvertedTimes(t *testing.T) {
	workplaces := newFakeWorkplaceStore()
	svc := NewShiftService(workplaces, newFakeShiftStore(), core.AustralianHolidays(), nil)
	wpID := seedWorkplace(t, workplaces)

	_, err := svc.Create(context.Background(), ShiftInput{
		WorkplaceID: wpID,
		Date:        mustDate(t, "2026-01-05"),
		Start:       mustTime(t, "17:00"),
		End:         mustTime(t, "09:00"),
	})
	if !core.IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestShiftServicePublishFailureDoesNotFailCreate(t *testing.T) {
	workplaces := newFakeWorkplaceStore()
	shifts := newFakeShiftStore()
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewShiftService(workplaces, shifts, core.AustralianHolidays(), pub)
	wpID := seedWorkplace(t, workplaces)

	got, err := svc.Create(context.Background(), ShiftInput{
		WorkplaceID: wpID,
		Date:        mustDate(t, "2026-01-05"),
		Start:       mustTime(t, "09:00"),
		End:         mustTime(t, "17:00"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.ID == 0 {
		t.Error("shift not saved")
	}
}

func TestShiftServiceUpdateReratesAndBumpsVersion(t *testing.T) {
	workplaces := newFakeWorkplaceStore()
	shifts := newFakeShiftStore()
	pub := &recordingPublisher{}
	svc := NewShiftService(workplaces, shifts, core.AustralianHolidays(), pub)
	wpID := seedWorkplace(t, workplaces)

	created, err := svc.Create(context.Background(), ShiftInput{
		WorkplaceID: wpID,
		Date:        mustDate(t, "2026-01-05"),
		Start:       mustTime(t, "09:00"),
		End:         mustTime(t, "17:00"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.TotalPay.Cents != 24000 {
		t.Fatalf("weekday 8h pay = %d, want 24000", created.TotalPay.Cents)
	}

	// Move to the public holiday: same hours, 2.5x rate.
	updated, err := svc.Update(context.Background(), created.ID, ShiftInput{
		WorkplaceID: wpID,
		Date:        mustDate(t, "2026-01-26"),
		Start:       mustTime(t, "09:00"),
		End:         mustTime(t, "17:00"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.TotalPay.Cents != 60000 {
		t.Errorf("holiday pay = %d, want 60000", updated.TotalPay.Cents)
	}
	if updated.ShiftType != "public_holiday" {
		t.Errorf("ShiftType = %q, want public_holiday", updated.ShiftType)
	}

	wantVersions := []int64{1, 2}
	if len(pub.versions) != 2 || pub.versions[0] != wantVersions[0] || pub.versions[1] != wantVersions[1] {
		t.Errorf("published versions = %v, want %v", pub.versions, wantVersions)
	}
}

func TestWorkplaceServiceDeleteRejectsWhenShiftsExist(t *testing.T) {
	workplaces := newFakeWorkplaceStore()
	shifts := newFakeShiftStore()
	wpSvc := NewWorkplaceService(workplaces, shifts)
	shiftSvc := NewShiftService(workplaces, shifts, core.AustralianHolidays(), nil)
	wpID := seedWorkplace(t, workplaces)

	created, err := shiftSvc.Create(context.Background(), ShiftInput{
		WorkplaceID: wpID,
		Date:        mustDate(t, "2026-01-05"),
		Start:       mustTime(t, "09:00"),
		End:         mustTime(t, "17:00"),
	})
	if err != nil {
		t.Fatalf("Create shift: %v", err)
	}

	if err := wpSvc.Delete(context.Background(), wpID); !core.IsValidation(err) {
		t.Errorf("Delete with shifts err = %v, want validation error", err)
	}

	if err := shiftSvc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete shift: %v", err)
	}
	if err := wpSvc.Delete(context.Background(), wpID); err != nil {
		t.Errorf("Delete after shifts removed: %v", err)
	}
}

func TestWorkplaceServiceKeepsExplicitZeroMultipliers(t *testing.T) {
	svc := NewWorkplaceService(newFakeWorkplaceStore(), newFakeShiftStore())

	// Zero multipliers are a valid configuration (no penalty loading), not
	// missing fields, and must be stored exactly as given.
	got, err := svc.Create(context.Background(), core.Workplace{
		Name:                    "Bar Uno",
		BaseRate:                core.Money{Cents: 2500},
		WeekendMultiplier:       0,
		PublicHolidayMultiplier: 0,
		OvertimeMultiplier:      0,
		OvertimeThreshold:       8,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.WeekendMultiplier != 0 || got.PublicHolidayMultiplier != 0 || got.OvertimeMultiplier != 0 {
		t.Errorf("zero multipliers rewritten: %+v", got)
	}
}
