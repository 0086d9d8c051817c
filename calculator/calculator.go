package calculator

import (
	"due-date-calculator/errors"
	"due-date-calculator/models"
	"time"
)

// Working-time policy: Monday to Friday, between 09:00 and 17:00.
const (
	WorkdayStartHour = 9
	WorkdayEndHour   = 17
	WorkdayHours     = WorkdayEndHour - WorkdayStartHour
)

// Calculate returns the resolution time for a problem submitted at submission
// with the given turnaround. Only working hours count towards the turnaround.
//
// The submission must fall inside working hours on a working day and the
// turnaround must be a positive whole number of hours, otherwise a
// *errors.ValidationError wrapping ErrOutOfWorkingHours or ErrInvalidTurnaround
// is returned. The submission is checked first.
func Calculate(submission time.Time, turnaround time.Duration) (time.Time, error) {
	if err := validateSubmission(submission); err != nil {
		return time.Time{}, err
	}
	if err := validateTurnaround(turnaround); err != nil {
		return time.Time{}, err
	}

	turnaroundHours := int64(turnaround / time.Hour)

	// Work on the wall clock only so the location's DST rules never move the result.
	resolution := wallClock(submission)
	resolution = forwardHours(resolution, turnaroundHours)
	resolution = forwardDays(resolution, turnaroundHours)

	return inLocation(resolution, submission.Location()), nil
}

// CalculateAll resolves every request independently. A rejected request keeps its
// error in the matching Resolution and does not affect the others.
func CalculateAll(requests []models.Request) []models.Resolution {
	resolutions := make([]models.Resolution, 0, len(requests))
	for _, req := range requests {
		due, err := Calculate(req.Submission, req.Turnaround)
		resolutions = append(resolutions, models.Resolution{
			Request: req,
			Due:     due,
			Err:     err,
		})
	}
	return resolutions
}

// IsWorkingDay reports whether t falls on Monday to Friday.
func IsWorkingDay(t time.Time) bool {
	weekday := t.Weekday()
	return weekday != time.Saturday && weekday != time.Sunday
}

// IsWorkingHour reports whether the time of day of t lies strictly between
// 09:00 and 17:00. Both boundary instants are outside working hours.
// The day of week is not considered.
func IsWorkingHour(t time.Time) bool {
	// Boundaries carry t's own sub-second part, so only the exact instant is excluded.
	start := time.Date(t.Year(), t.Month(), t.Day(), WorkdayStartHour, 0, 0, t.Nanosecond(), t.Location())
	end := time.Date(t.Year(), t.Month(), t.Day(), WorkdayEndHour, 0, 0, t.Nanosecond(), t.Location())
	return t.After(start) && t.Before(end)
}

func validateSubmission(submission time.Time) error {
	if submission.IsZero() || !IsWorkingDay(submission) || !IsWorkingHour(submission) {
		return &errors.ValidationError{
			Field:  "submission",
			Value:  formatValue(submission),
			Reason: "problems must be submitted from Monday to Friday between 9AM and 5PM",
			Err:    errors.ErrOutOfWorkingHours,
		}
	}
	return nil
}

func validateTurnaround(turnaround time.Duration) error {
	if turnaround <= 0 {
		return &errors.ValidationError{
			Field:  "turnaround",
			Value:  turnaround.String(),
			Reason: "turnaround time must be a positive time duration",
			Err:    errors.ErrInvalidTurnaround,
		}
	}
	if turnaround%time.Hour != 0 {
		return &errors.ValidationError{
			Field:  "turnaround",
			Value:  turnaround.String(),
			Reason: "turnaround time must be specified in hours",
			Err:    errors.ErrInvalidTurnaround,
		}
	}
	return nil
}

// forwardHours spends the hours that do not add up to a full working day.
// Hours stepped over outside working time are free.
func forwardHours(t time.Time, turnaroundHours int64) time.Time {
	hours := turnaroundHours % WorkdayHours

	for hours > 0 || !IsWorkingHour(t) {
		if IsWorkingHour(t) {
			hours--
		}
		t = t.Add(time.Hour)
	}

	return t
}

// forwardDays moves t by whole working days. A turnaround that is a multiple of
// 24 hours was given in calendar days, anything else counts 8 working hours per day.
func forwardDays(t time.Time, turnaroundHours int64) time.Time {
	var days int64
	if turnaroundHours%24 == 0 {
		days = turnaroundHours / 24
	} else {
		days = turnaroundHours / WorkdayHours
	}

	for days > 0 || !IsWorkingDay(t) {
		if IsWorkingDay(t) {
			days--
		}
		t = t.AddDate(0, 0, 1)
	}

	return t
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func inLocation(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

func formatValue(t time.Time) string {
	if t.IsZero() {
		return "<unset>"
	}
	return t.Format(models.TimestampLayout)
}
