package report

import "time"

// Period selects the calendar span a report covers.
type Period string

const (
	PeriodDay     Period = "day"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodHalf    Period = "half"
	PeriodYear    Period = "year"
)

// Window is a time range applied inclusively on both ends against a
// visit's start time.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window. A zero Start or End
// leaves that side unbounded.
func (w Window) Contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && t.After(w.End) {
		return false
	}
	return true
}

// ResolveWindow computes the calendar window of the given period that
// contains the reference instant. Weeks run Sunday through Saturday.
// Unknown periods resolve to the unbounded window.
func ResolveWindow(period Period, reference time.Time) Window {
	y, m, d := reference.Date()
	loc := reference.Location()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)

	switch period {
	case PeriodDay:
		return Window{Start: midnight, End: midnight.Add(24*time.Hour - time.Millisecond)}
	case PeriodWeek:
		start := midnight.AddDate(0, 0, -int(reference.Weekday()))
		return Window{Start: start, End: endOfDay(start.AddDate(0, 0, 6))}
	case PeriodMonth:
		start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return Window{Start: start, End: endOfDay(start.AddDate(0, 1, -1))}
	case PeriodQuarter:
		qm := time.Month((int(m)-1)/3*3 + 1)
		start := time.Date(y, qm, 1, 0, 0, 0, 0, loc)
		return Window{Start: start, End: endOfDay(start.AddDate(0, 3, -1))}
	case PeriodHalf:
		hm := time.January
		if m >= time.July {
			hm = time.July
		}
		start := time.Date(y, hm, 1, 0, 0, 0, 0, loc)
		return Window{Start: start, End: endOfDay(start.AddDate(0, 6, -1))}
	case PeriodYear:
		start := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		return Window{Start: start, End: endOfDay(time.Date(y, time.December, 31, 0, 0, 0, 0, loc))}
	default:
		return Window{}
	}
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999000000, t.Location())
}
