package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidTime = errors.New("invalid time of day")
	ErrInvalidDate = errors.New("invalid date")
)

const dateLayout = "2006-01-02"

// SimpleTime is a time of day with minute precision.
type SimpleTime struct {
	hour   int
	minute int
}

type simpleTimeJSON struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// NewSimpleTime rejects anything outside 00:00-23:59.
func NewSimpleTime(hour, minute int) (SimpleTime, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return SimpleTime{}, fmt.Errorf("%w: %02d:%02d", ErrInvalidTime, hour, minute)
	}
	return SimpleTime{hour: hour, minute: minute}, nil
}

// MustSimpleTime is NewSimpleTime for constants in tests and fixtures.
func MustSimpleTime(hour, minute int) SimpleTime {
	t, err := NewSimpleTime(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseSimpleTime accepts "H:MM", "HH:MM" and "HHMM".
func ParseSimpleTime(s string) (SimpleTime, error) {
	s = strings.TrimSpace(s)
	var hourStr, minuteStr string
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		hourStr, minuteStr = s[:idx], s[idx+1:]
	} else if len(s) == 4 {
		hourStr, minuteStr = s[:2], s[2:]
	} else {
		return SimpleTime{}, fmt.Errorf("%w: %q, use HH:MM", ErrInvalidTime, s)
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return SimpleTime{}, fmt.Errorf("%w: %q, use HH:MM", ErrInvalidTime, s)
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil {
		return SimpleTime{}, fmt.Errorf("%w: %q, use HH:MM", ErrInvalidTime, s)
	}
	return NewSimpleTime(hour, minute)
}

// SimpleTimeOf truncates a wall clock instant to its time of day.
func SimpleTimeOf(t time.Time) SimpleTime {
	return SimpleTime{hour: t.Hour(), minute: t.Minute()}
}

func (t SimpleTime) Hour() int   { return t.hour }
func (t SimpleTime) Minute() int { return t.minute }

func (t SimpleTime) minutes() int { return t.hour*60 + t.minute }

// Sub returns t - other. A negative difference means the span crossed
// midnight, so a day is added: 01:00 - 23:00 is 2h.
func (t SimpleTime) Sub(other SimpleTime) time.Duration {
	mins := t.minutes() - other.minutes()
	if mins < 0 {
		mins += 24 * 60
	}
	return time.Duration(mins) * time.Minute
}

func (t SimpleTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

func (t SimpleTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(simpleTimeJSON{Hour: t.hour, Minute: t.minute})
}

func (t *SimpleTime) UnmarshalJSON(data []byte) error {
	var raw simpleTimeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewSimpleTime(raw.Hour, raw.Minute)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Date is a calendar day without a time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate normalises out-of-range days the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today is the current local calendar day.
func Today() Date { return DateOf(time.Now()) }

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q, use YYYY-MM-DD", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool { return d == Date{} }

// Valid reports whether d is a real day that ParseDate would give back.
func (d Date) Valid() bool {
	return d.Year >= 1 && d.Year <= 9999 && DateOf(d.Time()) == d
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date { return DateOf(d.Time().AddDate(0, 0, n)) }

// Compare returns -1, 0 or +1.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }

func (d Date) String() string { return d.Time().Format(dateLayout) }

// MarshalText refuses dates that could not be read back.
func (d Date) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d-%02d-%02d is not a calendar day", ErrInvalidDate, d.Year, int(d.Month), d.Day)
	}
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// FormatDuration renders whole hours and minutes, e.g. 8h30m, 2h, 45m.
func FormatDuration(d time.Duration) string {
	total := int(d / time.Minute)
	if total == 0 {
		return "0m"
	}
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	h, m := total/60, total%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%s%dh%dm", sign, h, m)
	case h > 0:
		return fmt.Sprintf("%s%dh", sign, h)
	default:
		return fmt.Sprintf("%s%dm", sign, m)
	}
}
