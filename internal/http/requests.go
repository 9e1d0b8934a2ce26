package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"paytrack/internal/core"
	"paytrack/internal/services"
	val "paytrack/internal/validator"
)

type workplaceRequest struct {
	Name                    string   `json:"name" validate:"required,notblank"`
	BaseRate                float64  `json:"base_rate" validate:"required,gt=0"`
	WeekendMultiplier       *float64 `json:"weekend_multiplier" validate:"omitempty,gte=0"`
	PublicHolidayMultiplier *float64 `json:"public_holiday_multiplier" validate:"omitempty,gte=0"`
	OvertimeMultiplier      *float64 `json:"overtime_multiplier" validate:"omitempty,gte=0"`
	OvertimeThreshold       *float64 `json:"overtime_threshold" validate:"omitempty,gte=0"`
}

// toWorkplace builds the domain workplace. Absent fields take the standard
// penalty rates (1.5/2.5/1.5, threshold 8h); an explicit zero is kept as
// given, so a zero threshold means every hour is overtime and a zero
// multiplier means unpaid penalty loading.
func (req workplaceRequest) toWorkplace(id int64) core.Workplace {
	w := core.Workplace{
		ID:                      id,
		Name:                    strings.TrimSpace(req.Name),
		BaseRate:                core.FromDollars(req.BaseRate),
		WeekendMultiplier:       1.5,
		PublicHolidayMultiplier: 2.5,
		OvertimeMultiplier:      1.5,
		OvertimeThreshold:       8,
	}
	if req.WeekendMultiplier != nil {
		w.WeekendMultiplier = *req.WeekendMultiplier
	}
	if req.PublicHolidayMultiplier != nil {
		w.PublicHolidayMultiplier = *req.PublicHolidayMultiplier
	}
	if req.OvertimeMultiplier != nil {
		w.OvertimeMultiplier = *req.OvertimeMultiplier
	}
	if req.OvertimeThreshold != nil {
		w.OvertimeThreshold = *req.OvertimeThreshold
	}
	return w
}

type shiftRequest struct {
	WorkplaceID int64  `json:"workplace_id" validate:"required,gt=0"`
	Date        string `json:"date" validate:"required,isodate"`
	StartTime   string `json:"start_time" validate:"required,clocktime"`
	EndTime     string `json:"end_time" validate:"required,clocktime"`
	Notes       string `json:"notes"`
}

func (req shiftRequest) toInput() (services.ShiftInput, error) {
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return services.ShiftInput{}, err
	}
	start, err := core.ParseClockTime(req.StartTime)
	if err != nil {
		return services.ShiftInput{}, err
	}
	end, err := core.ParseClockTime(req.EndTime)
	if err != nil {
		return services.ShiftInput{}, err
	}
	return services.ShiftInput{
		WorkplaceID: req.WorkplaceID,
		Date:        date,
		Start:       start,
		End:         end,
		Notes:       req.Notes,
	}, nil
}

type expenseRequest struct {
	Category  string  `json:"category" validate:"required,notblank"`
	Amount    float64 `json:"amount" validate:"gte=0"`
	DueDate   string  `json:"due_date" validate:"omitempty,isodate"`
	Recurring *bool   `json:"recurring"`
	Notes     string  `json:"notes"`
}

func (req expenseRequest) toExpense(id int64) (core.Expense, error) {
	e := core.Expense{
		ID:        id,
		Category:  strings.TrimSpace(req.Category),
		Amount:    core.FromDollars(req.Amount),
		Recurring: true,
		Notes:     req.Notes,
	}
	if req.Recurring != nil {
		e.Recurring = *req.Recurring
	}
	if req.DueDate != "" {
		d, err := core.ParseDate(req.DueDate)
		if err != nil {
			return core.Expense{}, err
		}
		e.DueDate = d
	}
	return e, nil
}

type goalRequest struct {
	Name         string  `json:"name" validate:"required,notblank"`
	Target       float64 `json:"target" validate:"required,gt=0"`
	AutoAllocate float64 `json:"auto_allocate" validate:"gte=0"`
	Priority     string  `json:"priority" validate:"omitempty,oneof=high medium low"`
	Deadline     string  `json:"deadline" validate:"omitempty,isodate"`
	Notes        string  `json:"notes"`
}

func (req goalRequest) toGoal(id int64) (core.Goal, error) {
	g := core.Goal{
		ID:           id,
		Name:         strings.TrimSpace(req.Name),
		Target:       core.FromDollars(req.Target),
		AutoAllocate: core.FromDollars(req.AutoAllocate),
		Priority:     core.Priority(req.Priority),
		Notes:        req.Notes,
	}
	if req.Deadline != "" {
		d, err := core.ParseDate(req.Deadline)
		if err != nil {
			return core.Goal{}, err
		}
		g.Deadline = d
	}
	return g, nil
}

type contributionRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Date   string  `json:"date" validate:"omitempty,isodate"`
	Notes  string  `json:"notes"`
}

// decodeAndValidate parses the JSON body into dst and runs the struct tags.
// Failures come back as validation errors so handlers answer 422.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return core.Validationf("invalid request body: %v", err)
	}
	if err := val.Validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if ok := asValidationErrors(err, &fieldErrs); ok {
			msgs := make([]string, 0, len(fieldErrs))
			for _, e := range fieldErrs {
				msgs = append(msgs, fieldErrorToString(e))
			}
			return core.Validationf("%s", strings.Join(msgs, "; "))
		}
		return core.Validationf("invalid request: %v", err)
	}
	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = fieldErrs
	}
	return ok
}

func fieldErrorToString(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", e.Field())
	case "isodate":
		return fmt.Sprintf("%s must be in YYYY-MM-DD format", e.Field())
	case "clocktime":
		return fmt.Sprintf("%s must be in HH:MM format", e.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}

// pathID extracts the {id} route parameter.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, core.Validationf("invalid id %q", r.PathValue("id"))
	}
	return id, nil
}
