package storage

import (
	"maps"
	"sort"
	"sync"

	"github.com/julianstephens/facultyboard/internal/models"
)

// MemoryStore keeps timetables for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	weeks  map[string]map[string]models.Period
	onSave func() error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{weeks: make(map[string]map[string]models.Period)}
}

func (s *MemoryStore) Init() error  { return nil }
func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) GetConfigPath() string {
	return "memory"
}

func (s *MemoryStore) HasTimetable(facultyID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.weeks[facultyID]
	return ok, nil
}

func (s *MemoryStore) SaveTimetable(facultyID string, periods []models.Period) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	week := make(map[string]models.Period, len(periods))
	for _, p := range periods {
		p.FacultyID = facultyID
		week[p.ID] = p
	}
	prev, existed := s.snapshot(facultyID)
	s.weeks[facultyID] = week
	return s.persist(facultyID, prev, existed)
}

func (s *MemoryStore) ClearTimetable(facultyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, existed := s.snapshot(facultyID)
	delete(s.weeks, facultyID)
	return s.persist(facultyID, prev, existed)
}

func (s *MemoryStore) ListTimetables() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.weeks))
	for id := range s.weeks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryStore) ListPeriods(facultyID string) ([]models.Period, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	week := s.weeks[facultyID]
	out := make([]models.Period, 0, len(week))
	for _, p := range week {
		out = append(out, p)
	}
	sortPeriods(out)
	return out, nil
}

func (s *MemoryStore) SavePeriod(p models.Period) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.snapshot(p.FacultyID)
	week, ok := s.weeks[p.FacultyID]
	if !ok {
		week = make(map[string]models.Period)
		s.weeks[p.FacultyID] = week
	}
	// One period per slot: drop whatever else occupies it.
	for id, existing := range week {
		if id != p.ID && existing.Day == p.Day && existing.PeriodNumber == p.PeriodNumber {
			delete(week, id)
		}
	}
	week[p.ID] = p
	return s.persist(p.FacultyID, prev, existed)
}

func (s *MemoryStore) DeletePeriod(facultyID, periodID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	week := s.weeks[facultyID]
	if _, ok := week[periodID]; !ok {
		return ErrNotFound
	}
	prev, existed := s.snapshot(facultyID)
	delete(week, periodID)
	return s.persist(facultyID, prev, existed)
}

// snapshot copies facultyID's week so a failed save can restore it. Must be
// called with the write lock held.
func (s *MemoryStore) snapshot(facultyID string) (map[string]models.Period, bool) {
	if s.onSave == nil {
		return nil, false
	}
	week, ok := s.weeks[facultyID]
	return maps.Clone(week), ok
}

// persist runs the save hook and, if it fails, puts facultyID's week back the
// way snapshot found it. Must be called with the write lock held.
func (s *MemoryStore) persist(facultyID string, prev map[string]models.Period, existed bool) error {
	if s.onSave == nil {
		return nil
	}
	if err := s.onSave(); err != nil {
		if existed {
			s.weeks[facultyID] = prev
		} else {
			delete(s.weeks, facultyID)
		}
		return err
	}
	return nil
}

// sortPeriods gives stored weeks a stable order: weekday, then period number.
func sortPeriods(periods []models.Period) {
	sort.Slice(periods, func(i, j int) bool {
		if di, dj := periods[i].Day.Index(), periods[j].Day.Index(); di != dj {
			return di < dj
		}
		return periods[i].PeriodNumber < periods[j].PeriodNumber
	})
}
