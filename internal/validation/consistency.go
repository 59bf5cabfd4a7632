package validation

import (
	"fmt"

	"github.com/julianstephens/facultyboard/internal/models"
)

// ConflictType represents the type of directory inconsistency
type ConflictType string

const (
	ConflictMissingReference  ConflictType = "missing_reference"
	ConflictStaleReference    ConflictType = "stale_reference"
	ConflictDanglingReference ConflictType = "dangling_reference"
	ConflictSelfReference     ConflictType = "self_reference"
	ConflictUnpaired          ConflictType = "unpaired"
)

// Conflict is one problem with the substitution links between records.
type Conflict struct {
	Type        ConflictType
	Description string
	FacultyIDs  []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, c := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", c.Description)
	}
	return report
}

func (vr *ValidationResult) add(t ConflictType, desc string, ids ...string) {
	vr.Conflicts = append(vr.Conflicts, Conflict{Type: t, Description: desc, FacultyIDs: ids})
}

// CheckDirectory reports substitution references that do not form proper
// pairs. Status updates may leave the directory in such a state between the
// two halves of a manual pairing, or after a removal.
func CheckDirectory(faculty []models.Faculty) ValidationResult {
	byID := make(map[string]models.Faculty, len(faculty))
	for _, f := range faculty {
		byID[f.ID] = f
	}

	var vr ValidationResult
	for _, f := range faculty {
		switch f.Status {
		case models.StatusSubstituted:
			if f.SubstitutedBy == "" {
				vr.add(ConflictMissingReference, fmt.Sprintf("%s is substituted but names no substitute", f.ID), f.ID)
			}
		case models.StatusSubstituting:
			if f.Substituting == "" {
				vr.add(ConflictMissingReference, fmt.Sprintf("%s is substituting but names nobody to cover", f.ID), f.ID)
			}
		}

		if f.SubstitutedBy != "" && f.Status != models.StatusSubstituted {
			vr.add(ConflictStaleReference,
				fmt.Sprintf("%s is %s but still lists substitute %s", f.ID, f.Status, f.SubstitutedBy), f.ID)
		}
		if f.Substituting != "" && f.Status != models.StatusSubstituting {
			vr.add(ConflictStaleReference,
				fmt.Sprintf("%s is %s but still lists covering for %s", f.ID, f.Status, f.Substituting), f.ID)
		}

		partnerID := f.Partner()
		if partnerID == "" {
			continue
		}
		if partnerID == f.ID {
			vr.add(ConflictSelfReference, fmt.Sprintf("%s is paired with itself", f.ID), f.ID)
			continue
		}
		partner, ok := byID[partnerID]
		if !ok {
			vr.add(ConflictDanglingReference, fmt.Sprintf("%s references unknown faculty %s", f.ID, partnerID), f.ID)
			continue
		}
		if partner.Partner() != f.ID {
			vr.add(ConflictUnpaired,
				fmt.Sprintf("%s is %s with %s, but %s is %s", f.ID, f.Status, partnerID, partnerID, partner.Status),
				f.ID, partnerID)
		}
	}
	return vr
}
