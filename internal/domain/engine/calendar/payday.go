// Package calendar implements day-of-month arithmetic for payday proximity.
// All functions are pure: "today" is always an explicit parameter and the
// wall clock is only ever read by the outermost caller.
package calendar

import (
	"fmt"
	"time"

	domainerror "github.com/playbookTV/Kora/internal/domain/error"
)

// ValidatePaydayDay checks that a payday day-of-month is within 1-31.
func ValidatePaydayDay(paydayDay int) error {
	if paydayDay < 1 || paydayDay > 31 {
		return domainerror.NewEngineError(
			domainerror.ErrCodeInvalidPaydayDay,
			fmt.Sprintf("payday day %d is outside 1-31", paydayDay),
			domainerror.ErrInvalidPaydayDay,
		)
	}
	return nil
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysToPayday returns the number of whole days from today until the next
// occurrence of paydayDay. The result is 0 when today is payday and is
// never negative.
//
// When payday has already passed this month the target is paydayDay in the
// next calendar month, clamped to that month's last day when it is shorter
// (payday on the 31st in January targets Feb 28/29, never March).
func DaysToPayday(today time.Time, paydayDay int) (int, error) {
	if err := ValidatePaydayDay(paydayDay); err != nil {
		return 0, err
	}

	currentDay := today.Day()
	if currentDay < paydayDay {
		return paydayDay - currentDay, nil
	}

	// Payday already happened (or is today, distance 0 handled below).
	if currentDay == paydayDay {
		return 0, nil
	}

	nextYear, nextMonth := today.Year(), today.Month()+1
	if nextMonth > time.December {
		nextYear, nextMonth = nextYear+1, time.January
	}

	targetDay := paydayDay
	if last := DaysInMonth(nextYear, nextMonth); targetDay > last {
		targetDay = last
	}

	current := time.Date(today.Year(), today.Month(), currentDay, 0, 0, 0, 0, time.UTC)
	target := time.Date(nextYear, nextMonth, targetDay, 0, 0, 0, 0, time.UTC)

	return int(target.Sub(current).Hours() / 24), nil
}
