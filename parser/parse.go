package parser

import (
	"due-date-calculator/errors"
	"due-date-calculator/models"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Parse reads batch CSV data from the reader and returns one Request per record.
// Each record is "submission, turnaround", where submission uses the
// "YYYY-MM-DD HH:mm:ss" layout and turnaround is a whole number followed by
// a unit letter ("18H", "2D"). Lines starting with '#' are comments.
// Parsing stops at the first malformed record with a *errors.ParseError.
func Parse(r io.Reader) ([]models.Request, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	var data []models.Request

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			return nil, &errors.ParseError{
				Line:   line,
				Record: record,
				Err:    errors.ErrEmptyRecord,
			}
		}

		if len(record) != 2 {
			return nil, &errors.ParseError{
				Line:   line,
				Record: record,
				Err:    errors.ErrInvalidFieldCount,
			}
		}

		req := models.Request{Line: line}

		req.Submission, err = ParseSubmission(record[0])
		if err != nil {
			return nil, &errors.ParseError{
				Line:   line,
				Record: record,
				Err:    err,
			}
		}

		req.Turnaround, err = ParseTurnaround(record[1])
		if err != nil {
			return nil, &errors.ParseError{
				Line:   line,
				Record: record,
				Err:    err,
			}
		}

		data = append(data, req)
	}

	return data, nil
}

// ParseSubmission parses a "YYYY-MM-DD HH:mm:ss" timestamp as naive wall-clock time.
func ParseSubmission(value string) (time.Time, error) {
	t, err := time.Parse(models.TimestampLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", errors.ErrInvalidSubmissionTime, err)
	}
	return t, nil
}

// ParseTurnaround parses a magnitude followed by a single unit letter.
// "D" means days of 24 hours; any other letter is read as hours.
// The magnitude may be signed, range checks are left to the calculator.
func ParseTurnaround(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if len(value) < 2 {
		return 0, fmt.Errorf("%w: %q", errors.ErrInvalidTurnaroundFormat, value)
	}

	unit := value[len(value)-1:]
	if !unicode.IsLetter(rune(unit[0])) {
		return 0, fmt.Errorf("%w: %q has no unit letter", errors.ErrInvalidTurnaroundFormat, value)
	}
	magnitude, err := strconv.ParseInt(value[:len(value)-1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errors.ErrInvalidTurnaroundFormat, err)
	}

	perUnit := time.Hour
	if unit == "D" {
		perUnit = 24 * time.Hour
	}

	if magnitude > int64(maxDuration/perUnit) || magnitude < -int64(maxDuration/perUnit) {
		return 0, fmt.Errorf("%w: %q is out of range", errors.ErrInvalidTurnaroundFormat, value)
	}

	return time.Duration(magnitude) * perUnit, nil
}

const maxDuration = time.Duration(1<<63 - 1)
