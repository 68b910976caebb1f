package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		message string
		want    string
		ok      bool
	}{
		{"what is 2+2", "4", true},
		{"What is 12 * 3?", "36", true},
		{"what is 3 - 10", "-7", true},
		{"what is 7/2", "3.5", true},
		{"what is 8 / 4", "2", true},
		{"what is 2+", "", false},
		{"what is 5/0", "", false},
		{"what is 9223372036854775807 + 1", "", false},
		{"what is 99999999999999999999 + 1", "", false},
		{"what is 4000000000 * 4000000000", "", false},
		{"what is 2 ** 3", "", false},
		{"2+2", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			answer, ok := Evaluate(tt.message)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Contains(t, answer, "The answer is "+tt.want+".")
			} else {
				assert.Empty(t, answer)
			}
		})
	}
}
