package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var locations map[string]*time.Location = map[string]*time.Location{}

func init() {
	for i := time.Duration(-12); i < 15; i++ {
		name := fmt.Sprintf("GMT%+d", i)
		locations[name] = time.FixedZone(name, int((i * time.Hour).Seconds()))
	}
}

// GetLocation returns a location of a GMT-X or GMT+X:MM format timezone.
func GetLocation(timezone string) *time.Location {
	name := strings.ToUpper(timezone)
	if tz, ok := locations[name]; ok {
		return tz
	}

	if !strings.HasPrefix(name, "GMT") || len(name) < 5 {
		return nil
	}

	sign := 1
	switch name[3] {
	case '+':
	case '-':
		sign = -1
	default:
		return nil
	}

	parts := strings.SplitN(name[4:], ":", 2)
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours > 14 {
		return nil
	}
	minutes := 0
	if len(parts) == 2 {
		if minutes, err = strconv.Atoi(parts[1]); err != nil || minutes >= 60 {
			return nil
		}
	}

	offset := sign * (hours*3600 + minutes*60)
	return time.FixedZone(name, offset)
}

// FormatClock renders t as HH:MM in timezone, falling back to UTC
func FormatClock(t time.Time, timezone string) string {
	loc := GetLocation(timezone)
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("15:04")
}

// FormatDateTime renders t as DD.MM.YYYY HH:MM in timezone, falling back to UTC
func FormatDateTime(t time.Time, timezone string) string {
	loc := GetLocation(timezone)
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("02.01.2006 15:04")
}
