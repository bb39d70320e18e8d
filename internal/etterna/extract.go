package etterna

import (
	"regexp"
	"strconv"
)

var judgeDigitPattern = regexp.MustCompile(`[jJ]([1-9])`)

// ExtractJudge scans free-form text for a judge selector like "j7" or "J4"
// and returns the matching built-in judge. The first match wins when the text
// contains several.
func ExtractJudge(text string) (*Judge, bool) {
	groups := judgeDigitPattern.FindStringSubmatch(text)
	if groups == nil {
		return nil, false
	}
	number, err := strconv.Atoi(groups[1])
	if err != nil {
		return nil, false
	}
	return JudgeByNumber(number)
}
