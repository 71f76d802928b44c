package calc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"2+2", "4"},
		{" 2 + 3 * 4 ", "14"},
		{"(2 + 3) * 4", "20"},
		{"7 / 2", "3.5"},
		{"8 / 4", "2"},
		{"-3 + 1", "-2"},
		{"10 % 3", "1"},
		{"1.5 * 2", "3"},
		{"0.1 + 0.2", "0.3"},
		{"123456789012345678901234567890 + 1", "123456789012345678901234567891"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Eval(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvalRejects(t *testing.T) {
	tests := []struct {
		expr string
		want error
	}{
		{"", ErrEmpty},
		{"1/0", ErrDivisionByZero},
		{"5 % (2-2)", ErrDivisionByZero},
		{"1.5 % 2", ErrUnsupported},
		{"os.Exit(1)", ErrUnsupported},
		{"x + 1", ErrUnsupported},
		{"2 ^ 3", ErrUnsupported},
		{"1 << 60", ErrUnsupported},
		{`"a" + "b"`, ErrUnsupported},
		{"!1", ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := Eval(tt.expr)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEvalSyntaxError(t *testing.T) {
	_, err := Eval("2 +")
	assert.ErrorContains(t, err, "invalid expression")
}

func TestEvalOverflow(t *testing.T) {
	huge := strings.TrimSuffix(strings.Repeat("1e400*", 12), "*")

	_, err := Eval(huge)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = Eval("-" + huge + "+0.5")
	assert.ErrorIs(t, err, ErrOverflow)

	got, err := Eval("1e400 / 1e399")
	require.NoError(t, err)
	assert.Equal(t, "10", got)
}
