package timetable

import (
	"sort"

	"github.com/julianstephens/facultyboard/internal/models"
)

// SortPeriods orders periods by weekday, then period number, in place.
func SortPeriods(periods []models.Period) {
	sort.SliceStable(periods, func(i, j int) bool {
		di, dj := periods[i].Day.Index(), periods[j].Day.Index()
		if di != dj {
			return di < dj
		}
		return periods[i].PeriodNumber < periods[j].PeriodNumber
	})
}

// GroupByDay buckets periods per weekday, each bucket sorted by period
// number. Every weekday has an entry, possibly empty.
func GroupByDay(periods []models.Period) map[models.Day][]models.Period {
	grouped := make(map[models.Day][]models.Period, len(models.Weekdays))
	for _, d := range models.Weekdays {
		grouped[d] = []models.Period{}
	}
	for _, p := range periods {
		if !p.Day.Valid() {
			continue
		}
		grouped[p.Day] = append(grouped[p.Day], p)
	}
	for d := range grouped {
		SortPeriods(grouped[d])
	}
	return grouped
}
