package service

import (
	"sort"
	"time"
)

// SlotPolicy bounds the calendar scan for the next free posting slot.
type SlotPolicy struct {
	ScanDays int
	MinGap   time.Duration
}

func DefaultSlotPolicy() SlotPolicy {
	return SlotPolicy{ScanDays: 14, MinGap: time.Hour}
}

// FindNextSlot returns the earliest free posting slot for a company,
// scanning from the next calendar day. A candidate is rejected if it is in
// the past or sits within MinGap of any existing pending booking.
//
// The function is pure over its inputs. Two concurrent calls against the
// same booking snapshot can return the same slot; callers serialize slot
// allocation per company.
func FindNextSlot(now time.Time, hours []int, booked []time.Time, policy SlotPolicy) time.Time {
	if policy.ScanDays <= 0 {
		policy = DefaultSlotPolicy()
	}
	if len(hours) == 0 {
		hours = []int{12}
	}

	sorted := make([]int, len(hours))
	copy(sorted, hours)
	sort.Ints(sorted)

	start := startOfDay(now).AddDate(0, 0, 1)
	for day := 0; day < policy.ScanDays; day++ {
		date := start.AddDate(0, 0, day)
		for _, hour := range sorted {
			candidate := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, now.Location())
			if candidate.Before(now) {
				continue
			}
			if conflicts(candidate, booked, policy.MinGap) {
				continue
			}
			return candidate
		}
	}

	// Nothing free in the whole window: rather than failing, fall back to
	// tomorrow at the midpoint configured hour.
	mid := sorted[len(sorted)/2]
	return time.Date(start.Year(), start.Month(), start.Day(), mid, 0, 0, 0, now.Location())
}

func conflicts(candidate time.Time, booked []time.Time, minGap time.Duration) bool {
	for _, b := range booked {
		d := candidate.Sub(b)
		if d < 0 {
			d = -d
		}
		if d < minGap {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
