package models

type Status string

const (
	StatusAvailable    Status = "available"
	StatusAbsent       Status = "absent"
	StatusSubstituting Status = "substituting"
	StatusSubstituted  Status = "substituted"
)

// AllStatuses lists every status in display order.
var AllStatuses = []Status{StatusAvailable, StatusAbsent, StatusSubstituting, StatusSubstituted}

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusAbsent, StatusSubstituting, StatusSubstituted:
		return true
	}
	return false
}

// Label returns the capitalized display form of the status.
func (s Status) Label() string {
	switch s {
	case StatusAvailable:
		return "Available"
	case StatusAbsent:
		return "Absent"
	case StatusSubstituting:
		return "Substituting"
	case StatusSubstituted:
		return "Substituted"
	default:
		return "Unknown"
	}
}

// Faculty is one instructor. SubstitutedBy is only meaningful while Status is
// substituted, Substituting only while Status is substituting.
type Faculty struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Department    string `json:"department" yaml:"department"`
	Email         string `json:"email" yaml:"email"`
	Phone         string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Status        Status `json:"status" yaml:"status"`
	SubstitutedBy string `json:"substitutedBy,omitempty" yaml:"substitutedBy,omitempty"`
	Substituting  string `json:"substituting,omitempty" yaml:"substituting,omitempty"`
}

// Partner returns the id of the faculty on the other side of an active
// substitution, or "" when there is none.
func (f Faculty) Partner() string {
	switch f.Status {
	case StatusSubstituted:
		return f.SubstitutedBy
	case StatusSubstituting:
		return f.Substituting
	}
	return ""
}

type StatusCount struct {
	Available    int `json:"available"`
	Absent       int `json:"absent"`
	Substituting int `json:"substituting"`
	Substituted  int `json:"substituted"`
}

// Total returns the sum of all four counters.
func (c StatusCount) Total() int {
	return c.Available + c.Absent + c.Substituting + c.Substituted
}

// Get returns the counter for a single status.
func (c StatusCount) Get(s Status) int {
	switch s {
	case StatusAvailable:
		return c.Available
	case StatusAbsent:
		return c.Absent
	case StatusSubstituting:
		return c.Substituting
	case StatusSubstituted:
		return c.Substituted
	}
	return 0
}

func (c *StatusCount) add(s Status) {
	switch s {
	case StatusAvailable:
		c.Available++
	case StatusAbsent:
		c.Absent++
	case StatusSubstituting:
		c.Substituting++
	case StatusSubstituted:
		c.Substituted++
	}
}

// CountStatuses aggregates the statuses of the given records.
func CountStatuses(faculty []Faculty) StatusCount {
	var c StatusCount
	for _, f := range faculty {
		c.add(f.Status)
	}
	return c
}
