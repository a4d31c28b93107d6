package money

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatVND(t *testing.T) {
	cases := map[int64]string{
		0:        "0đ",
		500:      "500đ",
		25000:    "25.000đ",
		75000:    "75.000đ",
		1250000:  "1.250.000đ",
		12500000: "12.500.000đ",
	}
	for amount, want := range cases {
		require.Equal(t, want, FormatVND(amount), "amount %d", amount)
	}
}

func TestMulQty(t *testing.T) {
	require.Equal(t, int64(75000), MulQty(25000, 3))
	require.Equal(t, int64(0), MulQty(25000, 0))
}

func TestSum(t *testing.T) {
	require.Equal(t, int64(0), Sum())
	require.Equal(t, int64(175000), Sum(75000, 100000))
}
