package timetable

import (
	"math/rand"
	"sync"
	"time"

	"github.com/julianstephens/facultyboard/internal/models"
)

const (
	minPeriodsPerDay = 3
	maxPeriodsPerDay = 4
	// coverProbability is the chance a substituting faculty's period is shown
	// as covering for their partner.
	coverProbability = 0.5
)

// FacultyLookup resolves a faculty by id. *directory.Store satisfies it.
type FacultyLookup interface {
	Get(id string) (models.Faculty, bool)
}

type GeneratorOption func(*Generator)

// WithRand makes generation reproducible.
func WithRand(r *rand.Rand) GeneratorOption {
	return func(g *Generator) {
		if r != nil {
			g.rng = r
		}
	}
}

// WithSeed is WithRand over a fresh source. A zero seed keeps the time based default.
func WithSeed(seed int64) GeneratorOption {
	return func(g *Generator) {
		if seed != 0 {
			g.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// Generator produces random demo weeks. It reads the directory but never
// writes to it.
type Generator struct {
	lookup FacultyLookup

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

func NewGenerator(lookup FacultyLookup, opts ...GeneratorOption) *Generator {
	g := &Generator{
		lookup: lookup,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a random week for facultyID with the substitution overlay
// applied. Unknown ids yield an empty week. The result is unordered.
func (g *Generator) Generate(facultyID string) []models.Period {
	f, ok := g.lookup.Get(facultyID)
	if !ok {
		return []models.Period{}
	}
	return g.ApplyOverlay(f, g.build(facultyID))
}

// GenerateBase is Generate without the overlay: every period belongs to
// facultyID.
func (g *Generator) GenerateBase(facultyID string) []models.Period {
	if _, ok := g.lookup.Get(facultyID); !ok {
		return []models.Period{}
	}
	return g.build(facultyID)
}

func (g *Generator) build(facultyID string) []models.Period {
	g.mu.Lock()
	defer g.mu.Unlock()

	var week []models.Period
	for _, day := range models.Weekdays {
		count := minPeriodsPerDay + g.rng.Intn(maxPeriodsPerDay-minPeriodsPerDay+1)

		// Draw until count distinct slots are picked, keeping draw order.
		picked := make(map[int]bool, count)
		var slots []int
		for len(slots) < count {
			idx := g.rng.Intn(len(PeriodTable))
			if picked[idx] {
				continue
			}
			picked[idx] = true
			slots = append(slots, idx)
		}

		for _, idx := range slots {
			slot := PeriodTable[idx]
			course := Catalog[g.rng.Intn(len(Catalog))]
			week = append(week, models.Period{
				ID:           models.PeriodID(facultyID, day, slot.Number),
				Day:          day,
				PeriodNumber: slot.Number,
				StartTime:    slot.Start,
				EndTime:      slot.End,
				CourseCode:   course.Code,
				CourseTitle:  course.Title,
				FacultyID:    facultyID,
			})
		}
	}
	return week
}

// ApplyOverlay rewrites periods according to f's current status and returns
// the rewritten copy. Substituted faculty hand every period to their
// substitute; substituting faculty have roughly half their periods marked as
// covering for their partner. Other statuses are returned unchanged.
func (g *Generator) ApplyOverlay(f models.Faculty, periods []models.Period) []models.Period {
	out := make([]models.Period, len(periods))
	copy(out, periods)

	switch {
	case f.Status == models.StatusSubstituted && f.SubstitutedBy != "":
		for i := range out {
			out[i].OriginalFacultyID = f.ID
			out[i].FacultyID = f.SubstitutedBy
		}
	case f.Status == models.StatusSubstituting && f.Substituting != "":
		g.mu.Lock()
		for i := range out {
			if g.rng.Float64() < coverProbability {
				out[i].OriginalFacultyID = f.Substituting
			}
		}
		g.mu.Unlock()
	}
	return out
}
