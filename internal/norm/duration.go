package norm

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var isoDurationRe = regexp.MustCompile(`(?i)^P(?:(\d+(?:\.\d+)?)W)?(?:(\d+(?:\.\d+)?)D)?(?:T(?:(\d+(?:\.\d+)?)H)?(?:(\d+(?:\.\d+)?)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// MinutesFromISODuration reads an ISO-8601 duration out of a value that may
// be a single string or a list of candidates, returning total whole minutes
// with seconds rounded to the nearest minute. The first candidate that
// parses as a duration with at least one numeric field wins. Returns nil
// when none does.
func MinutesFromISODuration(v any) *int {
	for _, c := range candidateStrings(v) {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		m := isoDurationRe.FindStringSubmatch(c)
		if m == nil {
			continue
		}
		var minutes float64
		seen := false
		for i, mult := range []float64{7 * 24 * 60, 24 * 60, 60, 1, 1.0 / 60} {
			if m[i+1] == "" {
				continue
			}
			f, err := strconv.ParseFloat(m[i+1], 64)
			if err != nil {
				continue
			}
			minutes += f * mult
			seen = true
		}
		if !seen {
			continue
		}
		n := int(math.Round(minutes))
		return &n
	}
	return nil
}

func candidateStrings(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

const numberPattern = `\d+\s+\d+/\d+|\d+/\d+|\d+(?:\.\d+)?`

var freeTimeRe = regexp.MustCompile(`(?i)\b(` + numberPattern + `)(?:\s*(?:-|to)\s*(` + numberPattern + `))?\s*(hours?|hrs?|h|minutes?|mins?|m)\b`)

// ScanTextMinutes scans instruction text for duration phrases such as
// "about 20-25 minutes" or "1½ hours" and returns the largest minute value
// found, treating it as the most conservative cook-time signal. Ranges are
// averaged. Returns nil when no phrase matches.
func ScanTextMinutes(texts []string) *int {
	var best float64
	found := false
	for _, text := range texts {
		s := ExpandFractions(normalizeDashes(text))
		for _, m := range freeTimeRe.FindAllStringSubmatch(s, -1) {
			val, ok := parseNumber(m[1])
			if !ok {
				continue
			}
			if m[2] != "" {
				if hi, ok := parseNumber(m[2]); ok {
					val = (val + hi) / 2
				}
			}
			if strings.HasPrefix(strings.ToLower(m[3]), "h") {
				val *= 60
			}
			if !found || val > best {
				best = val
				found = true
			}
		}
	}
	if !found {
		return nil
	}
	n := int(math.Round(best))
	return &n
}

// parseNumber parses an integer, decimal, simple fraction, or mixed number
// ("1 1/2") into a float.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if fields := strings.Fields(s); len(fields) == 2 {
		whole, ok1 := parseNumber(fields[0])
		frac, ok2 := parseNumber(fields[1])
		if ok1 && ok2 {
			return whole + frac, true
		}
		return 0, false
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
