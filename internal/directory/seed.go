package directory

import "github.com/julianstephens/facultyboard/internal/models"

// DemoRoster returns the synthetic faculty the dashboard starts with.
func DemoRoster() []models.Faculty {
	return []models.Faculty{
		{
			ID:         "fac-001",
			Name:       "Dr. Alan Turing",
			Department: "Computer Science",
			Email:      "alan.turing@faculty.edu",
			Phone:      "555-123-4567",
			Status:     models.StatusAvailable,
		},
		{
			ID:            "fac-002",
			Name:          "Dr. Marie Curie",
			Department:    "Physics",
			Email:         "marie.curie@faculty.edu",
			Phone:         "555-234-5678",
			Status:        models.StatusAbsent,
			SubstitutedBy: "fac-003",
		},
		{
			ID:           "fac-003",
			Name:         "Dr. Albert Einstein",
			Department:   "Physics",
			Email:        "albert.einstein@faculty.edu",
			Phone:        "555-345-6789",
			Status:       models.StatusSubstituting,
			Substituting: "fac-002",
		},
		{
			ID:         "fac-004",
			Name:       "Dr. Ada Lovelace",
			Department: "Mathematics",
			Email:      "ada.lovelace@faculty.edu",
			Phone:      "555-456-7890",
			Status:     models.StatusAvailable,
		},
		{
			ID:         "fac-005",
			Name:       "Dr. Nikola Tesla",
			Department: "Electrical Engineering",
			Email:      "nikola.tesla@faculty.edu",
			Phone:      "555-567-8901",
			Status:     models.StatusAbsent,
		},
		{
			ID:         "fac-006",
			Name:       "Dr. Grace Hopper",
			Department: "Computer Science",
			Email:      "grace.hopper@faculty.edu",
			Phone:      "555-678-9012",
			Status:     models.StatusAvailable,
		},
		{
			ID:            "fac-007",
			Name:          "Dr. Isaac Newton",
			Department:    "Physics",
			Email:         "isaac.newton@faculty.edu",
			Phone:         "555-789-0123",
			Status:        models.StatusSubstituted,
			SubstitutedBy: "fac-006",
		},
	}
}
