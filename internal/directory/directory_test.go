package directory

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	apperrors "github.com/julianstephens/facultyboard/internal/errors"
	"github.com/julianstephens/facultyboard/internal/models"
)

func newFaculty(name, dept string, status models.Status) models.Faculty {
	return models.Faculty{
		Name:       name,
		Department: dept,
		Email:      strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@faculty.edu",
		Status:     status,
	}
}

func TestStatusCountsSumToLen(t *testing.T) {
	tests := []struct {
		name string
		seed []models.Faculty
	}{
		{name: "empty", seed: nil},
		{name: "demo", seed: DemoRoster()},
		{
			name: "all absent",
			seed: []models.Faculty{
				newFaculty("A", "Physics", models.StatusAbsent),
				newFaculty("B", "Physics", models.StatusAbsent),
			},
		},
		{
			name: "unknown status normalized",
			seed: []models.Faculty{newFaculty("C", "Math", models.Status("on-leave"))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := New(tt.seed)
			counts := store.StatusCounts()
			if counts.Total() != store.Len() {
				t.Errorf("StatusCounts().Total() = %d, want %d", counts.Total(), store.Len())
			}
		})
	}
}

func TestDemoStatusCounts(t *testing.T) {
	counts := NewDemo().StatusCounts()
	want := models.StatusCount{Available: 3, Absent: 2, Substituting: 1, Substituted: 1}
	if counts != want {
		t.Errorf("StatusCounts() = %+v, want %+v", counts, want)
	}
}

func TestAddThenGet(t *testing.T) {
	store := New(nil)
	input := models.Faculty{
		ID:         "ignored",
		Name:       "X",
		Department: "Y",
		Email:      "x@y.com",
		Status:     models.StatusAvailable,
	}

	added := store.Add(input)
	if added.ID == "" || added.ID == "ignored" {
		t.Fatalf("Add() assigned id %q", added.ID)
	}

	got, ok := store.Get(added.ID)
	if !ok {
		t.Fatalf("Get(%q) not found after Add", added.ID)
	}

	want := input
	want.ID = added.ID
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestAddOnSevenRecordDirectoryAssignsFac008(t *testing.T) {
	store := NewDemo()
	if store.Len() != 7 {
		t.Fatalf("demo directory has %d records, want 7", store.Len())
	}

	added := store.Add(models.Faculty{Name: "X", Department: "Y", Email: "x@y.com", Status: models.StatusAvailable})
	if added.ID != "fac-008" {
		t.Errorf("Add() id = %q, want fac-008", added.ID)
	}
}

func TestIDsAreNotReusedAfterRemove(t *testing.T) {
	store := NewDemo()

	if !store.Remove("fac-003") {
		t.Fatal("Remove(fac-003) = false")
	}
	first := store.Add(newFaculty("New One", "Physics", models.StatusAvailable))
	second := store.Add(newFaculty("New Two", "Physics", models.StatusAvailable))

	if first.ID != "fac-008" || second.ID != "fac-009" {
		t.Errorf("ids after removal = %q, %q; want fac-008, fac-009", first.ID, second.ID)
	}

	// The last record is removed and re-added: the old length based scheme
	// would hand out fac-009 again here.
	store.Remove("fac-009")
	third := store.Add(newFaculty("New Three", "Physics", models.StatusAvailable))
	if third.ID != "fac-010" {
		t.Errorf("id after removing the newest record = %q, want fac-010", third.ID)
	}
}

func TestSequenceStartsAfterHighestSeededID(t *testing.T) {
	store := New([]models.Faculty{
		{ID: "fac-010", Name: "Ten"},
		{ID: "fac-002", Name: "Two"},
	})
	added := store.Add(models.Faculty{Name: "Next"})
	if added.ID != "fac-011" {
		t.Errorf("Add() id = %q, want fac-011", added.ID)
	}
}

func TestReservedIDsAreNotAssigned(t *testing.T) {
	tests := []struct {
		name     string
		gen      IDGenerator
		reserved []string
		want     string
	}{
		{name: "sequence advances past reserved", reserved: []string{"fac-008", "fac-012"}, want: "fac-013"},
		{name: "reserved below seed size", reserved: []string{"fac-003"}, want: "fac-008"},
		{name: "non sequence ids", reserved: []string{"fac-legacy"}, want: "fac-008"},
		{
			name:     "generator collision skipped",
			gen:      func(seq int) string { return "fac-" + fmt.Sprint(seq%2) },
			reserved: []string{"fac-0"},
			want:     "fac-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewDemo(WithIDGenerator(tt.gen), WithReservedIDs(tt.reserved))
			if store.Len() != 7 {
				t.Fatalf("Len() = %d, want 7", store.Len())
			}
			added := store.Add(newFaculty("Fresh Hire", "Physics", models.StatusAvailable))
			if added.ID != tt.want {
				t.Errorf("Add() id = %q, want %q", added.ID, tt.want)
			}
		})
	}
}

func TestSeedWithoutIDsGetsSequence(t *testing.T) {
	store := New([]models.Faculty{{Name: "A"}, {Name: "B"}})
	list := store.List()
	if len(list) != 2 {
		t.Fatalf("List() len = %d, want 2", len(list))
	}
	if list[0].ID != "fac-003" || list[1].ID != "fac-004" {
		t.Errorf("seeded ids = %q, %q", list[0].ID, list[1].ID)
	}
}

func TestUUIDGeneratorIDs(t *testing.T) {
	store := New(nil, WithIDGenerator(UUIDGenerator))
	a := store.Add(models.Faculty{Name: "A"})
	b := store.Add(models.Faculty{Name: "B"})
	if !strings.HasPrefix(a.ID, "fac-") || len(a.ID) != len("fac-")+36 {
		t.Errorf("uuid id = %q", a.ID)
	}
	if a.ID == b.ID {
		t.Error("uuid generator produced duplicate ids")
	}
}

func TestAllocateSkipsTakenIDs(t *testing.T) {
	calls := 0
	gen := func(seq int) string {
		calls++
		if calls == 1 {
			return "fac-001"
		}
		return SequenceGenerator(seq)
	}
	store := New([]models.Faculty{{ID: "fac-001", Name: "Taken"}}, WithIDGenerator(gen))
	added := store.Add(models.Faculty{Name: "Fresh"})
	if added.ID == "fac-001" {
		t.Fatal("Add() reused an id already in the directory")
	}
	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}
}

func TestListPreservesInsertionOrder(t *testing.T) {
	store := New(nil)
	names := []string{"Charlie", "Alice", "Bob"}
	for _, n := range names {
		store.Add(newFaculty(n, "Math", models.StatusAvailable))
	}
	for i, f := range store.List() {
		if f.Name != names[i] {
			t.Errorf("List()[%d] = %q, want %q", i, f.Name, names[i])
		}
	}
}

func TestRemove(t *testing.T) {
	t.Run("existing id", func(t *testing.T) {
		store := NewDemo()
		if !store.Remove("fac-004") {
			t.Fatal("Remove(fac-004) = false, want true")
		}
		if _, ok := store.Get("fac-004"); ok {
			t.Error("Get(fac-004) found a removed record")
		}
		if store.Len() != 6 {
			t.Errorf("Len() = %d, want 6", store.Len())
		}
	})

	t.Run("missing id leaves collection unchanged", func(t *testing.T) {
		store := NewDemo()
		before := store.List()
		if store.Remove("fac-999") {
			t.Fatal("Remove(fac-999) = true, want false")
		}
		after := store.List()
		if len(before) != len(after) {
			t.Fatalf("Len changed from %d to %d", len(before), len(after))
		}
		for i := range before {
			if before[i] != after[i] {
				t.Errorf("record %d changed: %+v -> %+v", i, before[i], after[i])
			}
		}
	})

	t.Run("does not cascade", func(t *testing.T) {
		store := NewDemo()
		store.Remove("fac-006")
		newton, _ := store.Get("fac-007")
		if newton.SubstitutedBy != "fac-006" {
			t.Errorf("SubstitutedBy = %q, want dangling fac-006", newton.SubstitutedBy)
		}
	})
}

func TestUpdateStatusClearsUnsuppliedReferences(t *testing.T) {
	store := NewDemo()

	got, ok := store.UpdateStatus("fac-003", models.StatusAvailable, "", "")
	if !ok {
		t.Fatal("UpdateStatus(fac-003) not found")
	}
	if got.Status != models.StatusAvailable || got.Substituting != "" || got.SubstitutedBy != "" {
		t.Errorf("UpdateStatus() = %+v, want available with cleared references", got)
	}

	stored, _ := store.Get("fac-003")
	if stored != got {
		t.Errorf("stored record %+v differs from returned %+v", stored, got)
	}
}

func TestUpdateStatusMisses(t *testing.T) {
	store := NewDemo()
	if _, ok := store.UpdateStatus("fac-999", models.StatusAbsent, "", ""); ok {
		t.Error("UpdateStatus on unknown id reported ok")
	}
	if _, ok := store.UpdateStatus("fac-001", models.Status("retired"), "", ""); ok {
		t.Error("UpdateStatus with unknown status reported ok")
	}
	if f, _ := store.Get("fac-001"); f.Status != models.StatusAvailable {
		t.Errorf("status changed to %q after rejected update", f.Status)
	}
}

func TestTwoStepPairingScenario(t *testing.T) {
	store := New(nil)
	available := store.Add(newFaculty("Avail", "Physics", models.StatusAvailable))
	absent := store.Add(newFaculty("Gone", "Physics", models.StatusAbsent))

	if _, ok := store.UpdateStatus(absent.ID, models.StatusSubstituted, available.ID, ""); !ok {
		t.Fatal("first UpdateStatus failed")
	}
	if _, ok := store.UpdateStatus(available.ID, models.StatusSubstituting, "", absent.ID); !ok {
		t.Fatal("second UpdateStatus failed")
	}

	gotAbsent, _ := store.Get(absent.ID)
	gotAvailable, _ := store.Get(available.ID)
	if gotAbsent.Status != models.StatusSubstituted || gotAbsent.SubstitutedBy != available.ID {
		t.Errorf("absent record = %+v", gotAbsent)
	}
	if gotAvailable.Status != models.StatusSubstituting || gotAvailable.Substituting != absent.ID {
		t.Errorf("available record = %+v", gotAvailable)
	}
}

func TestPairSubstitution(t *testing.T) {
	t.Run("pairs both records", func(t *testing.T) {
		store := NewDemo()
		absent, sub, err := store.PairSubstitution("fac-005", "fac-004")
		if err != nil {
			t.Fatalf("PairSubstitution() error = %v", err)
		}
		if absent.Status != models.StatusSubstituted || absent.SubstitutedBy != "fac-004" || absent.Substituting != "" {
			t.Errorf("absent = %+v", absent)
		}
		if sub.Status != models.StatusSubstituting || sub.Substituting != "fac-005" || sub.SubstitutedBy != "" {
			t.Errorf("substitute = %+v", sub)
		}
	})

	t.Run("unknown substitute changes nothing", func(t *testing.T) {
		store := NewDemo()
		before, _ := store.Get("fac-005")
		_, _, err := store.PairSubstitution("fac-005", "fac-404")
		if !errors.Is(err, ErrNotFound) || !apperrors.IsNotFound(err) {
			t.Fatalf("PairSubstitution() error = %v, want ErrNotFound", err)
		}
		after, _ := store.Get("fac-005")
		if before != after {
			t.Errorf("absent record changed on failed pairing: %+v -> %+v", before, after)
		}
	})

	t.Run("self substitution rejected", func(t *testing.T) {
		store := NewDemo()
		if _, _, err := store.PairSubstitution("fac-001", "fac-001"); !errors.Is(err, ErrSelfSubstitution) {
			t.Errorf("PairSubstitution(self) error = %v", err)
		}
	})
}

func TestReleaseSubstitution(t *testing.T) {
	store := NewDemo()
	if _, _, err := store.PairSubstitution("fac-005", "fac-004"); err != nil {
		t.Fatalf("PairSubstitution() error = %v", err)
	}

	released, err := store.ReleaseSubstitution("fac-004")
	if err != nil {
		t.Fatalf("ReleaseSubstitution() error = %v", err)
	}
	if len(released) != 2 {
		t.Fatalf("released %d records, want 2", len(released))
	}

	tesla, _ := store.Get("fac-005")
	lovelace, _ := store.Get("fac-004")
	if tesla.Status != models.StatusAbsent || tesla.SubstitutedBy != "" {
		t.Errorf("absent side = %+v", tesla)
	}
	if lovelace.Status != models.StatusAvailable || lovelace.Substituting != "" {
		t.Errorf("substitute side = %+v", lovelace)
	}

	if _, err := store.ReleaseSubstitution("fac-404"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReleaseSubstitution(unknown) error = %v", err)
	}
}

func TestReleaseLeavesUnrelatedPartner(t *testing.T) {
	store := NewDemo()
	// fac-007 is covered by fac-006, but fac-006 is not marked as substituting
	released, err := store.ReleaseSubstitution("fac-007")
	if err != nil {
		t.Fatalf("ReleaseSubstitution() error = %v", err)
	}
	if len(released) != 1 {
		t.Errorf("released %d records, want 1", len(released))
	}
	hopper, _ := store.Get("fac-006")
	if hopper.Status != models.StatusAvailable {
		t.Errorf("partner status = %q, want untouched available", hopper.Status)
	}
}

func TestUpdateKeepsStatus(t *testing.T) {
	store := NewDemo()
	got, ok := store.Update("fac-003", models.Faculty{
		Name:       "Prof. Albert Einstein",
		Department: "Theoretical Physics",
		Email:      "einstein@faculty.edu",
		Status:     models.StatusAvailable,
	})
	if !ok {
		t.Fatal("Update(fac-003) not found")
	}
	if got.Status != models.StatusSubstituting || got.Substituting != "fac-002" {
		t.Errorf("Update() touched status: %+v", got)
	}
	if got.Name != "Prof. Albert Einstein" || got.Phone != "" {
		t.Errorf("Update() details = %+v", got)
	}
	if _, ok := store.Update("fac-999", models.Faculty{}); ok {
		t.Error("Update(unknown) reported ok")
	}
}

func TestSearch(t *testing.T) {
	store := NewDemo()
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "no filter", filter: Filter{}, want: []string{"fac-001", "fac-002", "fac-003", "fac-004", "fac-005", "fac-006", "fac-007"}},
		{name: "name query", filter: Filter{Query: "curie"}, want: []string{"fac-002"}},
		{name: "department query", filter: Filter{Query: "PHYSICS"}, want: []string{"fac-002", "fac-003", "fac-007"}},
		{name: "email query", filter: Filter{Query: "grace.hopper@"}, want: []string{"fac-006"}},
		{name: "status", filter: Filter{Status: models.StatusAbsent}, want: []string{"fac-002", "fac-005"}},
		{name: "department and status", filter: Filter{Department: "computer science", Status: models.StatusAvailable}, want: []string{"fac-001", "fac-006"}},
		{name: "no match", filter: Filter{Query: "zzz"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := store.Search(tt.filter)
			var ids []string
			for _, f := range got {
				ids = append(ids, f.ID)
			}
			if fmt.Sprint(ids) != fmt.Sprint(tt.want) {
				t.Errorf("Search(%+v) = %v, want %v", tt.filter, ids, tt.want)
			}
		})
	}
}

func TestDepartments(t *testing.T) {
	got := NewDemo().Departments()
	want := []string{"Computer Science", "Electrical Engineering", "Mathematics", "Physics"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Departments() = %v, want %v", got, want)
	}
}

func TestFindSubstitute(t *testing.T) {
	store := NewDemo()

	t.Run("prefers same department", func(t *testing.T) {
		store.Add(models.Faculty{Name: "Dr. Lise Meitner", Department: "Physics", Email: "lise@faculty.edu"})
		got, ok := store.FindSubstitute("fac-002")
		if !ok || got.Name != "Dr. Lise Meitner" {
			t.Errorf("FindSubstitute(fac-002) = %+v, %v", got, ok)
		}
	})

	t.Run("falls back to first available", func(t *testing.T) {
		got, ok := store.FindSubstitute("fac-005")
		if !ok || got.ID != "fac-001" {
			t.Errorf("FindSubstitute(fac-005) = %+v, %v", got, ok)
		}
	})

	t.Run("none available", func(t *testing.T) {
		empty := New([]models.Faculty{newFaculty("Solo", "Math", models.StatusAbsent)})
		if _, ok := empty.FindSubstitute("fac-001"); ok {
			t.Error("FindSubstitute() found a substitute in a directory with no available faculty")
		}
	})
}

func TestResolve(t *testing.T) {
	store := NewDemo()
	if got := store.Resolve("fac-001"); got != "Dr. Alan Turing" {
		t.Errorf("Resolve(fac-001) = %q", got)
	}
	if got := store.Resolve("fac-404"); got != "fac-404" {
		t.Errorf("Resolve(fac-404) = %q", got)
	}
}

func TestGeneratorFor(t *testing.T) {
	for _, scheme := range []string{"", "sequence", "uuid"} {
		if _, err := GeneratorFor(scheme); err != nil {
			t.Errorf("GeneratorFor(%q) error = %v", scheme, err)
		}
	}
	if _, err := GeneratorFor("random"); err == nil {
		t.Error("GeneratorFor(random) error = nil")
	}
}

func TestConcurrentAddsProduceUniqueIDs(t *testing.T) {
	store := New(nil)
	const n = 50

	var wg sync.WaitGroup
	ids := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids <- store.Add(models.Faculty{Name: fmt.Sprintf("F%d", i)}).ID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
	if store.Len() != n {
		t.Errorf("Len() = %d, want %d", store.Len(), n)
	}
}
