package services

import (
	"context"
	"sort"

	"paytrack/internal/core"
)

// In-memory stores for exercising the services without SQLite.

type fakeWorkplaceStore struct {
	nextID int64
	items  map[int64]core.Workplace
}

func newFakeWorkplaceStore() *fakeWorkplaceStore {
	return &fakeWorkplaceStore{items: make(map[int64]core.Workplace)}
}

func (f *fakeWorkplaceStore) CreateWorkplace(_ context.Context, w core.Workplace) (int64, error) {
	f.nextID++
	w.ID = f.nextID
	f.items[w.ID] = w
	return w.ID, nil
}

func (f *fakeWorkplaceStore) GetWorkplace(_ context.Context, id int64) (core.Workplace, error) {
	w, ok := f.items[id]
	if !ok {
		return core.Workplace{}, core.NotFound("workplace", id)
	}
	return w, nil
}

func (f *fakeWorkplaceStore) ListWorkplaces(context.Context) ([]core.Workplace, error) {
	out := make([]core.Workplace, 0, len(f.items))
	for _, w := range f.items {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeWorkplaceStore) UpdateWorkplace(_ context.Context, w core.Workplace) error {
	if _, ok := f.items[w.ID]; !ok {
		return core.NotFound("workplace", w.ID)
	}
	f.items[w.ID] = w
	return nil
}

func (f *fakeWorkplaceStore) DeleteWorkplace(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return core.NotFound("workplace", id)
	}
	delete(f.items, id)
	return nil
}

type fakeShiftStore struct {
	nextID int64
	items  map[int64]core.Shift
}

func newFakeShiftStore() *fakeShiftStore {
	return &fakeShiftStore{items: make(map[int64]core.Shift)}
}

func (f *fakeShiftStore) CreateShift(_ context.Context, s core.Shift) (int64, error) {
	f.nextID++
	s.ID = f.nextID
	s.Version = 1
	f.items[s.ID] = s
	return s.ID, nil
}

func (f *fakeShiftStore) GetShift(_ context.Context, id int64) (core.Shift, error) {
	s, ok := f.items[id]
	if !ok {
		return core.Shift{}, core.NotFound("shift", id)
	}
	return s, nil
}

func (f *fakeShiftStore) ListShifts(_ context.Context, filter core.ShiftFilter) ([]core.Shift, error) {
	all := make([]core.Shift, 0, len(f.items))
	for _, s := range f.items {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return core.FilterShifts(all, filter), nil
}

func (f *fakeShiftStore) UpdateShift(_ context.Context, s core.Shift) error {
	old, ok := f.items[s.ID]
	if !ok {
		return core.NotFound("shift", s.ID)
	}
	s.Version = old.Version + 1
	f.items[s.ID] = s
	return nil
}

func (f *fakeShiftStore) DeleteShift(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return core.NotFound("shift", id)
	}
	delete(f.items, id)
	return nil
}

func (f *fakeShiftStore) CountShiftsForWorkplace(_ context.Context, workplaceID int64) (int64, error) {
	var n int64
	for _, s := range f.items {
		if s.WorkplaceID == workplaceID {
			n++
		}
	}
	return n, nil
}

func (f *fakeShiftStore) MarkShiftSynced(_ context.Context, id int64) error   { return nil }
func (f *fakeShiftStore) MarkShiftSyncError(_ context.Context, id int64) error { return nil }

func (f *fakeShiftStore) ListPendingShifts(context.Context, int) ([]core.Shift, error) {
	return nil, nil
}

type fakeExpenseStore struct {
	nextID int64
	items  map[int64]core.Expense
}

func newFakeExpenseStore() *fakeExpenseStore {
	return &fakeExpenseStore{items: make(map[int64]core.Expense)}
}

func (f *fakeExpenseStore) CreateExpense(_ context.Context, e core.Expense) (int64, error) {
	f.nextID++
	e.ID = f.nextID
	f.items[e.ID] = e
	return e.ID, nil
}

func (f *fakeExpenseStore) GetExpense(_ context.Context, id int64) (core.Expense, error) {
	e, ok := f.items[id]
	if !ok {
		return core.Expense{}, core.NotFound("expense", id)
	}
	return e, nil
}

func (f *fakeExpenseStore) ListExpenses(context.Context) ([]core.Expense, error) {
	out := make([]core.Expense, 0, len(f.items))
	for _, e := range f.items {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeExpenseStore) UpdateExpense(_ context.Context, e core.Expense) error {
	if _, ok := f.items[e.ID]; !ok {
		return core.NotFound("expense", e.ID)
	}
	f.items[e.ID] = e
	return nil
}

func (f *fakeExpenseStore) DeleteExpense(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return core.NotFound("expense", id)
	}
	delete(f.items, id)
	return nil
}

type allocationKey struct {
	goalID int64
	period string
}

type fakeGoalStore struct {
	nextID        int64
	nextContribID int64
	items         map[int64]core.Goal
	contributions []core.Contribution
	allocations   map[allocationKey]bool
}

func newFakeGoalStore() *fakeGoalStore {
	return &fakeGoalStore{
		items:       make(map[int64]core.Goal),
		allocations: make(map[allocationKey]bool),
	}
}

func (f *fakeGoalStore) CreateGoal(_ context.Context, g core.Goal) (int64, error) {
	f.nextID++
	g.ID = f.nextID
	f.items[g.ID] = g
	return g.ID, nil
}

func (f *fakeGoalStore) GetGoal(_ context.Context, id int64) (core.Goal, error) {
	g, ok := f.items[id]
	if !ok {
		return core.Goal{}, core.NotFound("goal", id)
	}
	g.Saved = f.savedFor(id)
	return g, nil
}

func (f *fakeGoalStore) ListGoals(context.Context) ([]core.Goal, error) {
	out := make([]core.Goal, 0, len(f.items))
	for _, g := range f.items {
		g.Saved = f.savedFor(g.ID)
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeGoalStore) UpdateGoal(_ context.Context, g core.Goal) error {
	if _, ok := f.items[g.ID]; !ok {
		return core.NotFound("goal", g.ID)
	}
	f.items[g.ID] = g
	return nil
}

func (f *fakeGoalStore) DeleteGoal(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return core.NotFound("goal", id)
	}
	delete(f.items, id)
	kept := f.contributions[:0]
	for _, c := range f.contributions {
		if c.GoalID != id {
			kept = append(kept, c)
		}
	}
	f.contributions = kept
	for k := range f.allocations {
		if k.goalID == id {
			delete(f.allocations, k)
		}
	}
	return nil
}

func (f *fakeGoalStore) AddContribution(_ context.Context, c core.Contribution) (int64, error) {
	f.nextContribID++
	c.ID = f.nextContribID
	f.contributions = append(f.contributions, c)
	return c.ID, nil
}

func (f *fakeGoalStore) ListContributions(_ context.Context, goalID int64) ([]core.Contribution, error) {
	var out []core.Contribution
	for _, c := range f.contributions {
		if c.GoalID == goalID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeGoalStore) ApplyAllocation(ctx context.Context, c core.Contribution, periodStart core.Date) (bool, error) {
	k := allocationKey{goalID: c.GoalID, period: periodStart.String()}
	if f.allocations[k] {
		return false, nil
	}
	f.allocations[k] = true
	if _, err := f.AddContribution(ctx, c); err != nil {
		return false, err
	}
	return true, nil
}

func (f *fakeGoalStore) savedFor(id int64) core.Money {
	var total core.Money
	for _, c := range f.contributions {
		if c.GoalID == id {
			total = total.Add(c.Amount)
		}
	}
	return total
}

type recordingPublisher struct {
	ids      []int64
	versions []int64
	err      error
}

func (p *recordingPublisher) PublishShiftSync(_ context.Context, id, version int64) error {
	if p.err != nil {
		return p.err
	}
	p.ids = append(p.ids, id)
	p.versions = append(p.versions, version)
	return nil
}
