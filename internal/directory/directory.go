package directory

import (
	"errors"
	"sort"
	"strings"
	"sync"

	apperrors "github.com/julianstephens/facultyboard/internal/errors"
	"github.com/julianstephens/facultyboard/internal/logger"
	"github.com/julianstephens/facultyboard/internal/models"
)

var (
	// ErrNotFound is returned by the pairing operations when an id is unknown.
	ErrNotFound = apperrors.NotFound("faculty")
	// ErrSelfSubstitution is returned when a faculty would cover for itself.
	ErrSelfSubstitution = errors.New("faculty cannot substitute for themselves")
)

// Filter narrows Search results. Zero values match everything.
type Filter struct {
	Query      string
	Status     models.Status
	Department string
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the default fac-NNN sequence.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.nextID = gen
		}
	}
}

// WithReservedIDs keeps ids that are still in use outside the directory, such
// as stored timetables, from being handed out by Add.
func WithReservedIDs(ids []string) Option {
	return func(s *Store) {
		for _, id := range ids {
			s.reserved[id] = struct{}{}
		}
	}
}

// Store is the authoritative, insertion-ordered faculty directory.
// It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	order  []string
	byID   map[string]models.Faculty
	seq    int
	nextID IDGenerator

	// ids Add must never return
	reserved map[string]struct{}
}

// New builds a directory holding seed in the given order. Seed records without
// an id are assigned one. The id sequence starts after the larger of the seed
// size and the highest fac-NNN number among seeded and reserved ids.
func New(seed []models.Faculty, opts ...Option) *Store {
	s := &Store{
		byID:     make(map[string]models.Faculty, len(seed)),
		nextID:   SequenceGenerator,
		reserved: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.seq = len(seed)
	for _, f := range seed {
		if n := sequenceOf(f.ID); n > s.seq {
			s.seq = n
		}
	}
	for id := range s.reserved {
		if n := sequenceOf(id); n > s.seq {
			s.seq = n
		}
	}

	for _, f := range seed {
		if f.ID == "" {
			f.ID = s.allocateID()
		}
		if _, dup := s.byID[f.ID]; dup {
			logger.Warn("Duplicate faculty id in seed, skipping", "id", f.ID)
			continue
		}
		f.Status = normalizeStatus(f.Status)
		s.order = append(s.order, f.ID)
		s.byID[f.ID] = f
	}

	return s
}

// NewDemo returns a directory seeded with DemoRoster.
func NewDemo(opts ...Option) *Store {
	return New(DemoRoster(), opts...)
}

func normalizeStatus(st models.Status) models.Status {
	if st.Valid() {
		return st
	}
	return models.StatusAvailable
}

// allocateID must be called with the write lock held.
func (s *Store) allocateID() string {
	for {
		s.seq++
		id := s.nextID(s.seq)
		if _, taken := s.byID[id]; taken {
			continue
		}
		if _, taken := s.reserved[id]; taken {
			continue
		}
		return id
	}
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Get looks a faculty up by id. A miss is reported through ok, not an error.
func (s *Store) Get(id string) (models.Faculty, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.byID[id]
	return f, ok
}

// List returns a copy of every record in insertion order.
func (s *Store) List() []models.Faculty {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Faculty, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Add assigns a fresh id to f and appends it. Any id on f is ignored.
func (s *Store) Add(f models.Faculty) models.Faculty {
	s.mu.Lock()
	defer s.mu.Unlock()

	f.ID = s.allocateID()
	f.Status = normalizeStatus(f.Status)
	s.order = append(s.order, f.ID)
	s.byID[f.ID] = f

	logger.Info("Faculty added", "id", f.ID, "name", f.Name)
	return f
}

// Update replaces the contact details of a record. Status and substitution
// references are kept as they are.
func (s *Store) Update(id string, details models.Faculty) (models.Faculty, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.byID[id]
	if !ok {
		return models.Faculty{}, false
	}
	f.Name = details.Name
	f.Department = details.Department
	f.Email = details.Email
	f.Phone = details.Phone
	s.byID[id] = f

	logger.Debug("Faculty updated", "id", id)
	return f, true
}

// UpdateStatus sets the status and both substitution references in one step.
// Empty references clear the field; pass existing values through to keep them.
// Unknown ids and unknown statuses report ok == false.
func (s *Store) UpdateStatus(id string, status models.Status, substitutedBy, substituting string) (models.Faculty, bool) {
	if !status.Valid() {
		logger.Warn("Rejected unknown faculty status", "id", id, "status", status)
		return models.Faculty{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.byID[id]
	if !ok {
		return models.Faculty{}, false
	}
	f.Status = status
	f.SubstitutedBy = substitutedBy
	f.Substituting = substituting
	s.byID[id] = f

	logger.Debug("Faculty status updated", "id", id, "status", status,
		"substitutedBy", substitutedBy, "substituting", substituting)
	return f, true
}

// Remove deletes a record and reports whether it existed. References held by
// other records are not touched.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	logger.Info("Faculty removed", "id", id)
	return true
}

// StatusCounts aggregates the four status categories.
func (s *Store) StatusCounts() models.StatusCount {
	return models.CountStatuses(s.List())
}

// PairSubstitution marks absentID as substituted by substituteID and
// substituteID as substituting for absentID. Both records change together or
// not at all.
func (s *Store) PairSubstitution(absentID, substituteID string) (absent, substitute models.Faculty, err error) {
	if absentID == substituteID {
		return models.Faculty{}, models.Faculty{}, ErrSelfSubstitution
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	absent, ok := s.byID[absentID]
	if !ok {
		return models.Faculty{}, models.Faculty{}, ErrNotFound
	}
	substitute, ok = s.byID[substituteID]
	if !ok {
		return models.Faculty{}, models.Faculty{}, ErrNotFound
	}

	absent.Status = models.StatusSubstituted
	absent.SubstitutedBy = substituteID
	absent.Substituting = ""
	substitute.Status = models.StatusSubstituting
	substitute.Substituting = absentID
	substitute.SubstitutedBy = ""

	s.byID[absentID] = absent
	s.byID[substituteID] = substitute

	logger.Info("Substitution paired", "absent", absentID, "substitute", substituteID)
	return absent, substitute, nil
}

// ReleaseSubstitution ends the substitution id takes part in. The record and,
// when it still points back, its partner return to their resting status:
// substituted becomes absent, substituting becomes available.
func (s *Store) ReleaseSubstitution(id string) ([]models.Faculty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	partnerID := f.Partner()
	released := []models.Faculty{s.release(f)}
	if partner, ok := s.byID[partnerID]; ok && partner.Partner() == id {
		released = append(released, s.release(partner))
	}

	logger.Info("Substitution released", "id", id, "partner", partnerID)
	return released, nil
}

// release must be called with the write lock held.
func (s *Store) release(f models.Faculty) models.Faculty {
	switch f.Status {
	case models.StatusSubstituted:
		f.Status = models.StatusAbsent
	case models.StatusSubstituting:
		f.Status = models.StatusAvailable
	}
	f.SubstitutedBy = ""
	f.Substituting = ""
	s.byID[f.ID] = f
	return f
}

// Search returns the records matching filter in insertion order. Query is a
// case-insensitive substring match against name, department and email.
func (s *Store) Search(filter Filter) []models.Faculty {
	term := strings.ToLower(strings.TrimSpace(filter.Query))

	var out []models.Faculty
	for _, f := range s.List() {
		if filter.Status != "" && f.Status != filter.Status {
			continue
		}
		if filter.Department != "" && !strings.EqualFold(f.Department, filter.Department) {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(f.Name), term) &&
			!strings.Contains(strings.ToLower(f.Department), term) &&
			!strings.Contains(strings.ToLower(f.Email), term) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Departments returns the distinct departments, sorted.
func (s *Store) Departments() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, f := range s.List() {
		if _, ok := seen[f.Department]; ok || f.Department == "" {
			continue
		}
		seen[f.Department] = struct{}{}
		out = append(out, f.Department)
	}
	sort.Strings(out)
	return out
}

// FindSubstitute picks the first available faculty other than absentID,
// preferring colleagues from the same department.
func (s *Store) FindSubstitute(absentID string) (models.Faculty, bool) {
	all := s.List()

	department := ""
	if absent, ok := s.Get(absentID); ok {
		department = absent.Department
	}

	var fallback *models.Faculty
	for i := range all {
		f := all[i]
		if f.ID == absentID || f.Status != models.StatusAvailable {
			continue
		}
		if department != "" && f.Department == department {
			return f, true
		}
		if fallback == nil {
			fallback = &all[i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return models.Faculty{}, false
}

// Resolve returns the display name for id, or id itself when it is dangling.
func (s *Store) Resolve(id string) string {
	if f, ok := s.Get(id); ok {
		return f.Name
	}
	return id
}
