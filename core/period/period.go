package period

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	quarterRe = regexp.MustCompile(`^(\d{4})-Q([1-4])$`)
	monthRe   = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	yearRe    = regexp.MustCompile(`^\d{4}$`)
)

// Normalize converts a source period string into an ISO date and a display
// label. Recognized conventions:
//
//	"2024-Q1" -> "2024-01-01", "Q1 2024"
//	"2024-03" -> "2024-03-01", "Mar 2024"
//	"2024"    -> "2024-01-01", "2024"
//
// Anything unrecognized passes through unchanged with no error, so unknown
// provider conventions survive the pipeline intact.
func Normalize(raw string) (isoDate, label string) {
	if m := quarterRe.FindStringSubmatch(raw); m != nil {
		year := m[1]
		quarter, _ := strconv.Atoi(m[2])
		month := (quarter-1)*3 + 1
		return fmt.Sprintf("%s-%02d-01", year, month), fmt.Sprintf("Q%d %s", quarter, year)
	}

	if m := monthRe.FindStringSubmatch(raw); m != nil {
		month, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 {
			return fmt.Sprintf("%s-%02d-01", m[1], month),
				fmt.Sprintf("%s %s", time.Month(month).String()[:3], m[1])
		}
	}

	if yearRe.MatchString(raw) {
		return raw + "-01-01", raw
	}

	return raw, raw
}

// Date parses the ISO date a Normalize call produced. Unrecognized periods
// that passed through raw fail here, letting callers decide whether a raw
// period is acceptable.
func Date(isoDate string) (time.Time, error) {
	return time.Parse("2006-01-02", isoDate)
}
