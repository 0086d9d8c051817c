package parser_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	customerrors "due-date-calculator/errors"
	"due-date-calculator/models"
	"due-date-calculator/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tuesday := time.Date(2018, 7, 24, 14, 12, 0, 0, time.UTC)
	friday := time.Date(2018, 7, 27, 16, 50, 0, 0, time.UTC)

	tests := map[string]struct {
		input         string
		expectedData  []models.Request
		expectedError error
		expectedLine  int
	}{
		"ValidInput_SingleLine": {
			input: `
2018-07-24 14:12:00, 2D
`,
			expectedData: []models.Request{
				{Line: 2, Submission: tuesday, Turnaround: 48 * time.Hour},
			},
		},
		"ValidInput_MultipleLines_WithComments": {
			input: `# Submission, Turnaround
2018-07-24 14:12:00, 18H
# Friday afternoon
2018-07-27 16:50:00, 1H
`,
			expectedData: []models.Request{
				{Line: 2, Submission: tuesday, Turnaround: 18 * time.Hour},
				{Line: 4, Submission: friday, Turnaround: time.Hour},
			},
		},
		"EmptyInput": {
			input:        "",
			expectedData: nil,
		},
		"InvalidFieldCount": {
			input:         "2018-07-24 14:12:00, 2D, extra\n",
			expectedError: customerrors.ErrInvalidFieldCount,
			expectedLine:  1,
		},
		"BlankRecord": {
			input:         "2018-07-24 14:12:00, 2D\n   \n",
			expectedError: customerrors.ErrEmptyRecord,
			expectedLine:  2,
		},
		"InvalidSubmission": {
			input:         "2018-07-24T14:12:00, 2D\n",
			expectedError: customerrors.ErrInvalidSubmissionTime,
			expectedLine:  1,
		},
		"InvalidTurnaround": {
			input:         "2018-07-24 14:12:00, 2D\n2018-07-24 14:12:00, twoD\n",
			expectedError: customerrors.ErrInvalidTurnaroundFormat,
			expectedLine:  2,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			data, err := parser.Parse(strings.NewReader(tt.input))

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedError), "got %v", err)

				var parseErr *customerrors.ParseError
				require.True(t, errors.As(err, &parseErr))
				assert.Equal(t, tt.expectedLine, parseErr.Line)
				assert.Nil(t, data)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedData, data)
		})
	}
}

func TestParseSubmission(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected time.Time
		wantErr  bool
	}{
		"Valid":             {input: "2018-07-24 14:12:00", expected: time.Date(2018, 7, 24, 14, 12, 0, 0, time.UTC)},
		"SurroundingSpaces": {input: "  2018-07-24 09:00:01 ", expected: time.Date(2018, 7, 24, 9, 0, 1, 0, time.UTC)},
		"MissingSeconds":    {input: "2018-07-24 14:12", wantErr: true},
		"ISOSeparator":      {input: "2018-07-24T14:12:00", wantErr: true},
		"NotPadded":         {input: "2018-7-24 14:12:00", wantErr: true},
		"Empty":             {input: "", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			actual, err := parser.ParseSubmission(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, customerrors.ErrInvalidSubmissionTime), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestParseTurnaround(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		"Hours":          {input: "18H", expected: 18 * time.Hour},
		"Days":           {input: "2D", expected: 48 * time.Hour},
		"OtherLetter":    {input: "3X", expected: 3 * time.Hour},
		"LowercaseDay":   {input: "2d", expected: 2 * time.Hour},
		"Zero":           {input: "0H", expected: 0},
		"Negative":       {input: "-1H", expected: -time.Hour},
		"Spaces":         {input: " 1H ", expected: time.Hour},
		"NoUnit":         {input: "12", wantErr: true},
		"NoMagnitude":    {input: "H", wantErr: true},
		"Empty":          {input: "", wantErr: true},
		"Fraction":       {input: "1.5H", wantErr: true},
		"TwoUnitLetters": {input: "1HD", wantErr: true},
		"OutOfRange":     {input: "999999999999D", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			actual, err := parser.ParseTurnaround(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, customerrors.ErrInvalidTurnaroundFormat), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}
