package baseline

import (
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

const DataUnavailable = "Data unavailable"

// BestHour returns the historically least crowded hour of a location
// across every weekday. Duplicate rows for an hour keep their minimum,
// and among equally quiet hours the one seen first in the source wins.
func (t *Table) BestHour(location string) (int, bool) {
	records, ok := t.byLocation[location]
	if !ok {
		return 0, false
	}

	// Key value: hour -> minimum crowd. Insertion order is the order in
	// which hours are first encountered.
	hourly := linkedhashmap.New()
	for _, r := range records {
		if value, found := hourly.Get(r.Hour); found && value.(int) <= r.BaselineCrowd {
			continue
		}
		hourly.Put(r.Hour, r.BaselineCrowd)
	}

	best, bestCrowd, found := 0, 0, false
	it := hourly.Iterator()
	for it.Begin(); it.Next(); {
		hour, crowd := it.Key().(int), it.Value().(int)
		if !found || crowd < bestCrowd {
			best, bestCrowd, found = hour, crowd, true
		}
	}
	return best, found
}

// BestTime formats BestHour as a clock hour range, or DataUnavailable.
func (t *Table) BestTime(location string) string {
	hour, ok := t.BestHour(location)
	if !ok {
		return DataUnavailable
	}
	return FormatHourRange(hour)
}

func FormatHourRange(hour int) string {
	return fmt.Sprintf("%d:00 – %d:00", hour, hour+1)
}
