package booking

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Date is a calendar date with no time-of-day component. Equality and
// ordering are by calendar date; the zero value is "no date".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	// Normalize through time.Date so Feb 30 etc. roll over the same way
	// the time package does.
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the civil date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool { return d == Date{} }

func (d Date) Weekday() time.Weekday {
	return d.midnightUTC().Weekday()
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.midnightUTC().AddDate(0, 0, n))
}

func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

func (d Date) Equal(o Date) bool { return d == o }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// midnightUTC anchors the date for calendar arithmetic. The location is
// irrelevant to weekday/offset math as long as it is fixed.
func (d Date) midnightUTC() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// WeekdaySet is a set of target weekdays. Order-irrelevant, duplicates
// collapse. The empty set is legal and means "nothing configured yet".
type WeekdaySet map[time.Weekday]struct{}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	s := make(WeekdaySet, len(days))
	for _, d := range days {
		s[d] = struct{}{}
	}
	return s
}

// ParseWeekdays parses a comma-separated list of day names, e.g.
// "wednesday,thursday". Names are case-insensitive; blanks are skipped.
func ParseWeekdays(csv string) (WeekdaySet, error) {
	s := make(WeekdaySet)
	for _, part := range strings.Split(csv, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		wd, ok := weekdayNames[part]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		s[wd] = struct{}{}
	}
	return s, nil
}

func (s WeekdaySet) Has(d time.Weekday) bool {
	_, ok := s[d]
	return ok
}

func (s WeekdaySet) String() string {
	names := make([]string, 0, len(s))
	for d := range s {
		names = append(names, strings.ToLower(d.String()))
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

// Window describes which dates are eligible for booking: every date in
// [Start, Start+7*WeeksAhead) whose weekday is in Days. Start defaults to
// the caller's "today" at resolution time.
type Window struct {
	Days       WeekdaySet
	WeeksAhead int
	Start      Date
}
