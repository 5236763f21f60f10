package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFindNextSlotStartsTomorrow(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	slot := FindNextSlot(now, []int{8, 12, 18}, nil, DefaultSlotPolicy())

	// 12:00 and 18:00 today would still be in the future, but the scan
	// deliberately begins on the next calendar day.
	assert.Equal(t, time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC), slot)
}

func TestFindNextSlotSkipsConflicts(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	booked := []time.Time{
		time.Date(2026, 3, 11, 8, 30, 0, 0, time.UTC), // within an hour of 08:00
	}

	slot := FindNextSlot(now, []int{8, 12, 18}, booked, DefaultSlotPolicy())

	assert.Equal(t, time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC), slot)
}

func TestFindNextSlotExactGapAllowed(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	booked := []time.Time{
		time.Date(2026, 3, 11, 7, 0, 0, 0, time.UTC), // exactly 60 minutes before 08:00
	}

	slot := FindNextSlot(now, []int{8, 12, 18}, booked, DefaultSlotPolicy())

	assert.Equal(t, time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC), slot)
}

func TestFindNextSlotAccumulatedBookingsKeepGaps(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	hours := []int{8, 12, 18}

	var booked []time.Time
	for i := 0; i < 10; i++ {
		slot := FindNextSlot(now, hours, booked, DefaultSlotPolicy())
		assert.True(t, slot.After(now))
		for _, b := range booked {
			gap := slot.Sub(b)
			if gap < 0 {
				gap = -gap
			}
			assert.GreaterOrEqual(t, gap, time.Hour, "slot %v too close to booking %v", slot, b)
		}
		booked = append(booked, slot)
	}
}

func TestFindNextSlotFallbackWhenWindowFull(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	hours := []int{8, 12, 18}
	policy := SlotPolicy{ScanDays: 14, MinGap: time.Hour}

	var booked []time.Time
	for day := 1; day <= policy.ScanDays+1; day++ {
		for _, h := range hours {
			booked = append(booked, time.Date(2026, 3, 10+day, h, 0, 0, 0, time.UTC))
		}
	}

	slot := FindNextSlot(now, hours, booked, policy)

	// Every scanned candidate is taken, so the fallback books tomorrow at
	// the midpoint configured hour regardless of the collision.
	assert.Equal(t, time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC), slot)
}

func TestFindNextSlotDefaultsNoonWithoutHours(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	slot := FindNextSlot(now, nil, nil, DefaultSlotPolicy())

	assert.Equal(t, time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC), slot)
}

func TestFindNextSlotUnsortedHours(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	slot := FindNextSlot(now, []int{18, 8, 12}, nil, DefaultSlotPolicy())

	assert.Equal(t, time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC), slot)
}
