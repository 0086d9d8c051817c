package models

import "time"

// TimestampLayout is the textual form of submission and resolution times.
const TimestampLayout = "2006-01-02 15:04:05"

// Request is one due-date calculation to perform.
type Request struct {
	// Line is the source line in batch input, 0 when the request did not come from a file.
	Line       int
	Submission time.Time
	Turnaround time.Duration
}

// Resolution is the outcome of a Request. Exactly one of Due and Err is meaningful.
type Resolution struct {
	Request
	Due time.Time
	Err error
}

// Failed reports whether the calculation was rejected.
func (r Resolution) Failed() bool {
	return r.Err != nil
}
