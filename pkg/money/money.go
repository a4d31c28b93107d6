// Package money handles VND amounts. Vietnamese đồng has no minor unit, so
// amounts travel as int64 đồng end to end; decimal is used for arithmetic
// that could overflow or needs exact sums.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var viPrinter = message.NewPrinter(language.Vietnamese)

// FormatVND renders an amount the way the storefront displays it:
// vi-VN grouped thousands with a trailing đ, e.g. 75000 -> "75.000đ".
// Presentation only; never parse it back.
func FormatVND(amount int64) string {
	return viPrinter.Sprintf("%d", amount) + "đ"
}

// MulQty multiplies a unit price by a quantity without int64 overflow.
func MulQty(unitPrice int64, qty int) int64 {
	return decimal.NewFromInt(unitPrice).Mul(decimal.NewFromInt(int64(qty))).IntPart()
}

// Sum adds a list of amounts exactly.
func Sum(amounts ...int64) int64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromInt(a))
	}
	return total.IntPart()
}
