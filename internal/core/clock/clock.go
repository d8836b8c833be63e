// Package clock formats message timestamps as a locale-aware hour:minute.
package clock

import (
	"errors"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	layout24 = "15:04"
	layout12 = "03:04 PM"
)

var (
	// ErrInvalidTimestamp is returned when a timestamp cannot be formatted.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	// ErrNoLocale is returned by ParseLocale for empty, C and POSIX locales.
	ErrNoLocale = errors.New("no locale")
)

// hour12Regions are regions whose conventional clock is 12-hour.
var hour12Regions = map[string]bool{
	"US": true,
	"CA": true,
	"AU": true,
	"NZ": true,
	"IN": true,
	"PH": true,
	"PK": true,
	"EG": true,
	"SA": true,
}

// Formatter formats timestamps with two-digit hour and minute and no seconds.
type Formatter struct {
	Hour12   bool
	Location *time.Location // nil uses the timestamp's own location
}

// Format returns t as "15:04" or "03:04 PM". The zero time is rejected.
func (f Formatter) Format(t time.Time) (string, error) {
	if t.IsZero() {
		return "", ErrInvalidTimestamp
	}
	if f.Location != nil {
		t = t.In(f.Location)
	}
	if f.Hour12 {
		return t.Format(layout12), nil
	}
	return t.Format(layout24), nil
}

// FromLocale returns the formatter conventional for the given locale, which
// may be a BCP 47 tag ("en-US") or a POSIX locale ("en_US.UTF-8"). Unknown or
// unparseable locales use a 24-hour clock.
func FromLocale(locale string) Formatter {
	tag, err := ParseLocale(locale)
	if err != nil {
		return Formatter{}
	}

	region, conf := tag.Region()
	if conf == language.No {
		return Formatter{}
	}

	return Formatter{Hour12: hour12Regions[region.String()]}
}

// ParseLocale parses a BCP 47 tag or a POSIX locale name.
func ParseLocale(locale string) (language.Tag, error) {
	locale = normalizeLocale(locale)
	if locale == "" {
		return language.Tag{}, ErrNoLocale
	}
	return language.Parse(locale)
}

// DetectLocale returns the locale in effect for time formatting, following
// POSIX priority: LC_ALL, then LC_TIME, then LANG.
func DetectLocale() string {
	for _, key := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// normalizeLocale strips the codeset and modifier from a POSIX locale and
// maps the C/POSIX locales to empty.
func normalizeLocale(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.TrimSpace(locale)

	switch locale {
	case "C", "POSIX":
		return ""
	}
	return strings.ReplaceAll(locale, "_", "-")
}
