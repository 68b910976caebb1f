package knowledge

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// arithmeticPattern accepts exactly "what is <int> <op> <int>"; anything else is not arithmetic
var arithmeticPattern = regexp.MustCompile(`(?i)what\s*is\s*(\d+)\s*([+\-*/])\s*(\d+)`)

// Evaluate answers a two-operand integer arithmetic question.
// ok is false for anything outside the grammar, division by zero or overflow.
func Evaluate(message string) (answer string, ok bool) {
	m := arithmeticPattern.FindStringSubmatch(message)
	if m == nil {
		return "", false
	}

	a, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return "", false
	}
	b, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return "", false
	}

	result, ok := apply(a, m[2], b)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("The answer is %s. Would you like me to explain the calculation?", result), true
}

// apply computes a op b for non-negative operands
func apply(a int64, op string, b int64) (string, bool) {
	switch op {
	case "+":
		if a > math.MaxInt64-b {
			return "", false
		}
		return strconv.FormatInt(a+b, 10), true
	case "-":
		return strconv.FormatInt(a-b, 10), true
	case "*":
		if a != 0 && b > math.MaxInt64/a {
			return "", false
		}
		return strconv.FormatInt(a*b, 10), true
	case "/":
		if b == 0 {
			return "", false
		}
		if a%b == 0 {
			return strconv.FormatInt(a/b, 10), true
		}
		return strconv.FormatFloat(float64(a)/float64(b), 'f', -1, 64), true
	}
	return "", false
}
