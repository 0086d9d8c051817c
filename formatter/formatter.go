package formatter

import (
	"due-date-calculator/errors"
	"due-date-calculator/models"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ResolutionData holds one prepared row used by all batch formatters
type ResolutionData struct {
	Line       int    `json:"line,omitempty"`
	Submission string `json:"submission"`
	Turnaround string `json:"turnaround"`
	Resolution string `json:"resolution,omitempty"`
	Error      string `json:"error,omitempty"`
	ErrorKind  string `json:"error_kind,omitempty"`
}

// FormatTimestamp renders t as "YYYY-MM-DD HH:mm:ss"
func FormatTimestamp(t time.Time) string {
	return t.Format(models.TimestampLayout)
}

// FormatTurnaround renders whole days as "<n>D", whole hours as "<n>H"
// and falls back to Go duration syntax for anything else.
func FormatTurnaround(d time.Duration) string {
	switch {
	case d != 0 && d%(24*time.Hour) == 0:
		return strconv.FormatInt(int64(d/(24*time.Hour)), 10) + "D"
	case d%time.Hour == 0:
		return strconv.FormatInt(int64(d/time.Hour), 10) + "H"
	default:
		return d.String()
	}
}

// FormatResolution returns the console line for a single calculation
func FormatResolution(due time.Time) string {
	return "Resolution time is: " + FormatTimestamp(due)
}

// prepareResolutionData flattens resolutions into printable rows
func prepareResolutionData(resolutions []models.Resolution) []ResolutionData {
	rows := make([]ResolutionData, 0, len(resolutions))
	for _, res := range resolutions {
		row := ResolutionData{
			Line:       res.Line,
			Submission: FormatTimestamp(res.Submission),
			Turnaround: FormatTurnaround(res.Turnaround),
		}
		if res.Failed() {
			row.Error = errors.Reason(res.Err)
			row.ErrorKind = errors.Label(res.Err)
		} else {
			row.Resolution = FormatTimestamp(res.Due)
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatText returns the text representation of batch results
func FormatText(resolutions []models.Resolution) string {
	rows := prepareResolutionData(resolutions)
	var sb strings.Builder

	failed := 0
	for _, row := range rows {
		if row.Error != "" {
			failed++
			sb.WriteString(fmt.Sprintf("%s + %s : error=%s ; %s\n",
				row.Submission, row.Turnaround, row.ErrorKind, row.Error))
			continue
		}
		sb.WriteString(fmt.Sprintf("%s + %s : due=%s\n", row.Submission, row.Turnaround, row.Resolution))
	}

	sb.WriteString(fmt.Sprintf("total=%d ; resolved=%d ; failed=%d\n", len(rows), len(rows)-failed, failed))
	return sb.String()
}

// FormatJSON returns the JSON representation of batch results
func FormatJSON(resolutions []models.Resolution) string {
	rows := prepareResolutionData(resolutions)
	jsonBytes, _ := json.MarshalIndent(rows, "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the CSV representation of batch results
func FormatCSV(resolutions []models.Resolution) string {
	rows := prepareResolutionData(resolutions)
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	// Write header
	writer.Write([]string{"Line", "Submission", "Turnaround", "Resolution", "Error Kind", "Error"})

	for _, row := range rows {
		writer.Write([]string{
			strconv.Itoa(row.Line),
			row.Submission,
			row.Turnaround,
			row.Resolution,
			row.ErrorKind,
			row.Error,
		})
	}

	writer.Flush()
	return sb.String()
}
