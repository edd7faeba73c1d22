package weather

import (
	"fmt"
	"strconv"
	"time"
)

// Timeline maps wall-clock "now" onto the provider's daily and hourly
// series. All keys are naive strings already expressed in the reporting
// timezone (the one the provider was asked for), so lookups are plain
// string comparisons and display formatting slices the fixed-format keys
// directly. Reparsing them through a host-timezone-sensitive constructor
// would shift days near midnight when the host zone differs.
type Timeline struct {
	loc *time.Location
	now func() time.Time
}

// NewTimeline creates a Timeline for the given reporting timezone,
// e.g. "America/New_York".
func NewTimeline(tz string) (*Timeline, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid reporting timezone %q: %w", tz, err)
	}
	return &Timeline{loc: loc, now: time.Now}, nil
}

// CurrentDateKey returns today's date as YYYY-MM-DD in the reporting timezone.
func (t *Timeline) CurrentDateKey() string {
	return t.now().In(t.loc).Format("2006-01-02")
}

// CurrentHourKey returns the current hour as YYYY-MM-DDTHH:00 in the
// reporting timezone.
func (t *Timeline) CurrentHourKey() string {
	return t.now().In(t.loc).Format("2006-01-02T15:00")
}

// DateKeyDaysAgo returns the date n days before today, as YYYY-MM-DD in
// the reporting timezone.
func (t *Timeline) DateKeyDaysAgo(n int) string {
	return t.now().In(t.loc).AddDate(0, 0, -n).Format("2006-01-02")
}

// DateKeyYearsAgo returns the date n years before today, as YYYY-MM-DD in
// the reporting timezone.
func (t *Timeline) DateKeyYearsAgo(n int) string {
	return t.now().In(t.loc).AddDate(-n, 0, 0).Format("2006-01-02")
}

// Today returns today's year, month and day in the reporting timezone.
func (t *Timeline) Today() (year, month, day int) {
	now := t.now().In(t.loc)
	return now.Year(), int(now.Month()), now.Day()
}

// FindDayIndex locates today in a sorted slice of date keys. It returns
// the exact match if present, otherwise the first key after today,
// otherwise 0. The result is always a valid index for non-empty input.
func (t *Timeline) FindDayIndex(dates []string) int {
	return findKeyIndex(dates, t.CurrentDateKey())
}

// FindHourIndex locates the current hour in a sorted slice of hour keys,
// with the same fallback policy as FindDayIndex.
func (t *Timeline) FindHourIndex(hours []string) int {
	return findKeyIndex(hours, t.CurrentHourKey())
}

// findKeyIndex relies on DateKey/HourKey strings sorting chronologically.
func findKeyIndex(keys []string, target string) int {
	for i, k := range keys {
		if k == target {
			return i
		}
	}
	for i, k := range keys {
		if k > target {
			return i
		}
	}
	return 0
}

// ClampWindow returns the exclusive end index of a window of up to n
// entries starting at start, capped to the available length.
func ClampWindow(start, n, length int) int {
	end := start + n
	if end > length {
		end = length
	}
	if end < start {
		end = start
	}
	return end
}

var (
	shortWeekdays = [...]string{"Sun", "Mon", "Tues", "Wed", "Thurs", "Fri", "Sat"}
	longWeekdays  = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	shortMonths   = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	longMonths    = [...]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"}
)

// FormatClock renders the HH:MM portion of an hour or sunrise/sunset key
// as "h:mm AM/PM". The hour is read straight out of the string; the key is
// already in the reporting timezone.
func FormatClock(key string) string {
	if len(key) < 16 {
		return ""
	}
	hh, err := strconv.Atoi(key[11:13])
	if err != nil {
		return ""
	}
	mm := key[14:16]
	ampm := "AM"
	if hh >= 12 {
		ampm = "PM"
	}
	h12 := hh % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%s %s", h12, mm, ampm)
}

// FormatDayLabel renders a date key as "Jan 5" for compact chart labels.
func FormatDayLabel(ymd string) string {
	_, m, d, ok := splitDateKey(ymd)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s %d", shortMonths[m-1], d)
}

// FormatShortDate renders a date key as "Wed, Jan 5".
func FormatShortDate(ymd string) string {
	y, m, d, ok := splitDateKey(ymd)
	if !ok {
		return ""
	}
	dow := weekdayOf(y, m, d)
	return fmt.Sprintf("%s, %s %d", shortWeekdays[dow], shortMonths[m-1], d)
}

// FormatFullDate renders a date key as "Wednesday, January 5th".
func FormatFullDate(ymd string) string {
	y, m, d, ok := splitDateKey(ymd)
	if !ok {
		return ""
	}
	dow := weekdayOf(y, m, d)
	return fmt.Sprintf("%s, %s %d%s", longWeekdays[dow], longMonths[m-1], d, ordinalSuffix(d))
}

// weekdayOf anchors the date at noon UTC before asking for the weekday, so
// the answer cannot roll over a day regardless of the host timezone.
func weekdayOf(y, m, d int) time.Weekday {
	return time.Date(y, time.Month(m), d, 12, 0, 0, 0, time.UTC).Weekday()
}

func splitDateKey(ymd string) (y, m, d int, ok bool) {
	if len(ymd) < 10 {
		return 0, 0, 0, false
	}
	y, errY := strconv.Atoi(ymd[0:4])
	m, errM := strconv.Atoi(ymd[5:7])
	d, errD := strconv.Atoi(ymd[8:10])
	if errY != nil || errM != nil || errD != nil || m < 1 || m > 12 || d < 1 || d > 31 {
		return 0, 0, 0, false
	}
	return y, m, d, true
}

func ordinalSuffix(n int) string {
	if v := n % 100; v >= 11 && v <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
