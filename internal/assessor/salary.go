package assessor

import (
	"regexp"
	"strconv"
	"strings"
)

// salaryNumber matches the first integer in a salary string, allowing
// three-digit groups separated by "," or "." ("130,000", "10.000").
var salaryNumber = regexp.MustCompile(`\d{1,3}(?:[,.]\d{3})+|\d+`)

// ParseSalary extracts the first embedded integer from a free-form salary
// range. A "k" directly after the number multiplies it by 1000. ok is false
// when no number can be read.
//
//	"$130,000 - $160,000" -> 130000
//	"60k-80k"             -> 60000
//	"Competitive"         -> ok=false
func ParseSalary(s string) (value int64, ok bool) {
	loc := salaryNumber.FindStringIndex(s)
	if loc == nil {
		return 0, false
	}
	digits := strings.NewReplacer(",", "", ".", "").Replace(s[loc[0]:loc[1]])
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	if loc[1] < len(s) && (s[loc[1]] == 'k' || s[loc[1]] == 'K') {
		v *= 1000
	}
	return v, true
}
