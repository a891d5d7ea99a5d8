package activity

import (
	"fmt"
	"strings"
	"time"
)

var weekdayNames = [...]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

// DayOfWeek returns the short Chinese weekday name, e.g. "周三".
func DayOfWeek(t time.Time) string {
	return weekdayNames[t.Weekday()]
}

// TimePeriod buckets an hour into morning, afternoon or evening.
func TimePeriod(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "上午"
	case h < 18:
		return "下午"
	default:
		return "晚上"
	}
}

// GenerateTitle builds a default title like "周六上午 - 朝阳公园 - 约球".
// start must already be in the display location.
func GenerateTitle(start time.Time, location string, typ Type) string {
	parts := []string{DayOfWeek(start) + TimePeriod(start)}
	if loc := strings.TrimSpace(location); loc != "" {
		parts = append(parts, loc)
	}
	parts = append(parts, typ.Label())
	return strings.Join(parts, " - ")
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// ParseDate parses a "2006-01-02" day in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", ErrInvalidInput, s)
	}
	return day, nil
}

// DateLayout is the calendar day format used by queries and counts.
const DateLayout = "2006-01-02"
