package formatter_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	customerrors "due-date-calculator/errors"
	"due-date-calculator/formatter"
	"due-date-calculator/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResolutions() []models.Resolution {
	return []models.Resolution{
		{
			Request: models.Request{
				Line:       2,
				Submission: time.Date(2018, 7, 24, 14, 12, 0, 0, time.UTC),
				Turnaround: 48 * time.Hour,
			},
			Due: time.Date(2018, 7, 26, 14, 12, 0, 0, time.UTC),
		},
		{
			Request: models.Request{
				Line:       3,
				Submission: time.Date(2018, 7, 21, 13, 0, 0, 0, time.UTC),
				Turnaround: 18 * time.Hour,
			},
			Err: &customerrors.ValidationError{
				Field:  "submission",
				Value:  "2018-07-21 13:00:00",
				Reason: "problems must be submitted from Monday to Friday between 9AM and 5PM",
				Err:    customerrors.ErrOutOfWorkingHours,
			},
		},
	}
}

func TestFormatTurnaround(t *testing.T) {
	tests := map[string]struct {
		input    time.Duration
		expected string
	}{
		"WholeDays":    {input: 48 * time.Hour, expected: "2D"},
		"Hours":        {input: 18 * time.Hour, expected: "18H"},
		"Zero":         {input: 0, expected: "0H"},
		"NegativeDays": {input: -24 * time.Hour, expected: "-1D"},
		"SubHour":      {input: 61 * time.Minute, expected: "1h1m0s"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatter.FormatTurnaround(tt.input))
		})
	}
}

func TestFormatResolution(t *testing.T) {
	due := time.Date(2018, 7, 25, 9, 59, 50, 0, time.UTC)
	assert.Equal(t, "Resolution time is: 2018-07-25 09:59:50", formatter.FormatResolution(due))
}

func TestFormatText(t *testing.T) {
	tests := map[string]struct {
		resolutions []models.Resolution
		contains    []string
	}{
		"Empty": {
			resolutions: nil,
			contains:    []string{"total=0 ; resolved=0 ; failed=0"},
		},
		"Mixed": {
			resolutions: sampleResolutions(),
			contains: []string{
				"2018-07-24 14:12:00 + 2D : due=2018-07-26 14:12:00",
				"2018-07-21 13:00:00 + 18H : error=out_of_working_hours ; problems must be submitted from Monday to Friday between 9AM and 5PM",
				"total=2 ; resolved=1 ; failed=1",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			output := formatter.FormatText(tt.resolutions)
			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
		})
	}
}

func TestFormatJSON(t *testing.T) {
	output := formatter.FormatJSON(sampleResolutions())

	var rows []formatter.ResolutionData
	require.NoError(t, json.Unmarshal([]byte(output), &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, formatter.ResolutionData{
		Line:       2,
		Submission: "2018-07-24 14:12:00",
		Turnaround: "2D",
		Resolution: "2018-07-26 14:12:00",
	}, rows[0])
	assert.Equal(t, "out_of_working_hours", rows[1].ErrorKind)
	assert.Empty(t, rows[1].Resolution)
	assert.NotContains(t, output, `"resolution": ""`)
}

func TestFormatCSV(t *testing.T) {
	output := formatter.FormatCSV(sampleResolutions())
	lines := strings.Split(strings.TrimSpace(output), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "Line,Submission,Turnaround,Resolution,Error Kind,Error", lines[0])
	assert.Equal(t, "2,2018-07-24 14:12:00,2D,2018-07-26 14:12:00,,", lines[1])
	assert.Equal(t, "3,2018-07-21 13:00:00,18H,,out_of_working_hours,problems must be submitted from Monday to Friday between 9AM and 5PM", lines[2])
}
