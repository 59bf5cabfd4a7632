package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/facultyboard/internal/models"
	"github.com/julianstephens/facultyboard/internal/validation"
)

type rosterFile struct {
	Faculty []models.Faculty `yaml:"faculty"`
}

// LoadRoster reads a YAML roster:
//
//	faculty:
//	  - name: Dr. Lise Meitner
//	    department: Physics
//	    email: lise.meitner@faculty.edu
//	    status: available
//
// Ids and substitution references are optional. A missing status means
// available. Every entry is validated like form input.
func LoadRoster(path string) ([]models.Faculty, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}

	var rf rosterFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse roster %s: %w", path, err)
	}
	if len(rf.Faculty) == 0 {
		return nil, fmt.Errorf("roster %s lists no faculty", path)
	}

	var errs []error
	seen := make(map[string]bool)
	for i, f := range rf.Faculty {
		if f.Status == "" {
			f.Status = models.StatusAvailable
		}
		input := validation.FacultyInputFrom(f).Normalize()
		if err := validation.Struct(input); err != nil {
			errs = append(errs, fmt.Errorf("entry %d (%s): %w", i+1, f.Name, err))
			continue
		}
		if f.ID != "" {
			if seen[f.ID] {
				errs = append(errs, fmt.Errorf("entry %d: duplicate id %s", i+1, f.ID))
				continue
			}
			seen[f.ID] = true
		}

		normalized := input.Faculty()
		normalized.ID = f.ID
		normalized.SubstitutedBy = f.SubstitutedBy
		normalized.Substituting = f.Substituting
		rf.Faculty[i] = normalized
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid roster %s: %w", path, errors.Join(errs...))
	}
	return rf.Faculty, nil
}
