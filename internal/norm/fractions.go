package norm

import "strings"

// vulgarFractions maps unicode fraction runes to their ASCII n/d spelling.
var vulgarFractions = map[rune]string{
	'½': "1/2",
	'⅓': "1/3",
	'⅔': "2/3",
	'¼': "1/4",
	'¾': "3/4",
	'⅕': "1/5",
	'⅖': "2/5",
	'⅗': "3/5",
	'⅘': "4/5",
	'⅙': "1/6",
	'⅚': "5/6",
	'⅛': "1/8",
	'⅜': "3/8",
	'⅝': "5/8",
	'⅞': "7/8",
}

// ExpandFractions rewrites unicode vulgar fractions as ASCII n/d. When a
// fraction directly follows a digit a space is inserted so "1½" becomes
// "1 1/2" and parses as a mixed number.
func ExpandFractions(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevDigit := false
	for _, r := range s {
		if frac, ok := vulgarFractions[r]; ok {
			if prevDigit {
				b.WriteByte(' ')
			}
			b.WriteString(frac)
			prevDigit = false
			continue
		}
		b.WriteRune(r)
		prevDigit = r >= '0' && r <= '9'
	}
	return b.String()
}

// normalizeDashes folds unicode dash and minus variants into ASCII '-'.
func normalizeDashes(s string) string {
	return strings.NewReplacer("−", "-", "–", "-", "—", "-").Replace(s)
}
