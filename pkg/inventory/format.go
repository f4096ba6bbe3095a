package inventory

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pesoPrinter = message.NewPrinter(language.MustParse("en-PH"))

// FormatPrice renders a price as a peso amount with grouped thousands and
// exactly two fractional digits, e.g. "₱1,234.50". The value stays decimal
// end to end; only the integer part passes through the locale printer for
// grouping. Display-only: the stored value is never derived from this string.
func FormatPrice(price decimal.Decimal) string {
	fixed := price.Round(2).StringFixed(2)
	dot := strings.LastIndexByte(fixed, '.')
	units, _ := strconv.ParseInt(fixed[:dot], 10, 64)
	return "₱" + pesoPrinter.Sprintf("%d", units) + fixed[dot:]
}
