package timetable

import "strings"

// Slot is one entry of the fixed bell schedule.
type Slot struct {
	Number int
	Start  string
	End    string
}

// Course is one entry of the course catalog.
type Course struct {
	Code  string
	Title string
}

// PeriodTable is the daily bell schedule. Lunch falls between slots 5 and 6.
var PeriodTable = []Slot{
	{Number: 1, Start: "08:00", End: "08:50"},
	{Number: 2, Start: "09:00", End: "09:50"},
	{Number: 3, Start: "10:00", End: "10:50"},
	{Number: 4, Start: "11:00", End: "11:50"},
	{Number: 5, Start: "12:00", End: "12:50"},
	{Number: 6, Start: "14:00", End: "14:50"},
	{Number: 7, Start: "15:00", End: "15:50"},
	{Number: 8, Start: "16:00", End: "16:50"},
}

var Catalog = []Course{
	{Code: "CS101", Title: "Introduction to Computer Science"},
	{Code: "CS201", Title: "Data Structures"},
	{Code: "CS301", Title: "Algorithms"},
	{Code: "CS401", Title: "Artificial Intelligence"},
	{Code: "PH101", Title: "Introduction to Physics"},
	{Code: "PH201", Title: "Mechanics"},
	{Code: "PH301", Title: "Electromagnetism"},
	{Code: "PH401", Title: "Quantum Mechanics"},
	{Code: "MA101", Title: "Calculus I"},
	{Code: "MA201", Title: "Linear Algebra"},
	{Code: "MA301", Title: "Differential Equations"},
	{Code: "EE101", Title: "Circuit Theory"},
	{Code: "EE201", Title: "Digital Electronics"},
}

// SlotFor returns the bell schedule entry for period number n (1-8).
func SlotFor(n int) (Slot, bool) {
	if n < 1 || n > len(PeriodTable) {
		return Slot{}, false
	}
	return PeriodTable[n-1], true
}

// CourseByCode looks a course up case-insensitively.
func CourseByCode(code string) (Course, bool) {
	code = strings.TrimSpace(code)
	for _, c := range Catalog {
		if strings.EqualFold(c.Code, code) {
			return c, true
		}
	}
	return Course{}, false
}
