package baseline

import (
	"time"

	"github.com/emirpasic/gods/maps/treemap"
)

// Record is the historical crowd of a location at one hour of one
// weekday.
type Record struct {
	Location      string
	Weekday       time.Weekday
	Hour          int
	BaselineCrowd int
}

type dayKey struct {
	location string
	weekday  time.Weekday
}

// Table is the immutable baseline dataset. Records keep the row order of
// the source they were loaded from, and every "first record wins" rule
// below refers to that order.
type Table struct {
	records []Record

	// Key value: (location, weekday) -> treemap of hour -> baseline crowd
	// of the first record with that hour. The treemap gives us the floor
	// hour and the earliest hour without scanning.
	hours map[dayKey]*treemap.Map

	// Key value: location -> records of that location in source order.
	byLocation map[string][]Record

	// Distinct locations in first-seen order.
	locations []string
}

// NewTable indexes records, which must already be in source order.
func NewTable(records []Record) *Table {
	t := &Table{
		records:    make([]Record, len(records)),
		hours:      make(map[dayKey]*treemap.Map),
		byLocation: make(map[string][]Record),
	}
	copy(t.records, records)

	for _, r := range t.records {
		if _, ok := t.byLocation[r.Location]; !ok {
			t.locations = append(t.locations, r.Location)
		}
		t.byLocation[r.Location] = append(t.byLocation[r.Location], r)

		key := dayKey{location: r.Location, weekday: r.Weekday}
		hours, ok := t.hours[key]
		if !ok {
			hours = treemap.NewWithIntComparator()
			t.hours[key] = hours
		}
		// First record for an hour wins, later duplicates are ignored.
		if _, found := hours.Get(r.Hour); !found {
			hours.Put(r.Hour, r.BaselineCrowd)
		}
	}

	return t
}

// Records returns a copy of all records in source order.
func (t *Table) Records() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

func (t *Table) Len() int {
	return len(t.records)
}

// Locations returns the distinct locations in the order they first
// appear in the source.
func (t *Table) Locations() []string {
	out := make([]string, len(t.locations))
	copy(out, t.locations)
	return out
}

// Has reports whether location appears anywhere in the source.
func (t *Table) Has(location string) bool {
	_, ok := t.byLocation[location]
	return ok
}

// Lookup returns the baseline crowd of the first record matching the
// exact (location, weekday, hour). A missing triple means no historical
// data and reports false.
func (t *Table) Lookup(location string, weekday time.Weekday, hour int) (int, bool) {
	hours, ok := t.hours[dayKey{location: location, weekday: weekday}]
	if !ok {
		return 0, false
	}
	value, found := hours.Get(hour)
	if !found {
		return 0, false
	}
	return value.(int), true
}

// ResolveHour picks the recorded hour used for an estimate at hour: the
// latest recorded hour not after it, or the earliest recorded hour of the
// day when hour precedes all of them. Reports false when the location
// has no records on that weekday.
func (t *Table) ResolveHour(location string, weekday time.Weekday, hour int) (int, bool) {
	hours, ok := t.hours[dayKey{location: location, weekday: weekday}]
	if !ok || hours.Empty() {
		return 0, false
	}

	if floor, _ := hours.Floor(hour); floor != nil {
		return floor.(int), true
	}

	earliest, _ := hours.Min()
	return earliest.(int), true
}
