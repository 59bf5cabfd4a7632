package models

import "fmt"

type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
)

// Weekdays lists the teaching days in calendar order. There are no weekend periods.
var Weekdays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

// Valid reports whether d is one of the five weekdays.
func (d Day) Valid() bool {
	return d.Index() >= 0
}

// Index returns the position of d in Weekdays, or -1.
func (d Day) Index() int {
	for i, wd := range Weekdays {
		if wd == d {
			return i
		}
	}
	return -1
}

// Short returns the three letter abbreviation (Mon, Tue, ...).
func (d Day) Short() string {
	if len(d) < 3 {
		return string(d)
	}
	return string(d[:3])
}

// Period is one scheduled class meeting.
type Period struct {
	ID                string `json:"id"`
	Day               Day    `json:"day"`
	PeriodNumber      int    `json:"periodNumber"`
	StartTime         string `json:"startTime"` // HH:MM format
	EndTime           string `json:"endTime"`   // HH:MM format
	CourseCode        string `json:"courseCode"`
	CourseTitle       string `json:"courseTitle"`
	FacultyID         string `json:"facultyId"`
	OriginalFacultyID string `json:"originalFacultyId,omitempty"` // set only while covered by a substitute
	Location          string `json:"location,omitempty"`
}

// IsCovered reports whether the period is delivered on behalf of someone else.
func (p Period) IsCovered() bool {
	return p.OriginalFacultyID != ""
}

// PeriodID derives the composite key of a period.
func PeriodID(facultyID string, day Day, periodNumber int) string {
	return fmt.Sprintf("%s-%s-%d", facultyID, day, periodNumber)
}
