package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// GstRate is the flat tax-inclusive GST rate applied to POS orders (5%).
var GstRate = decimal.NewFromFloat(0.05)

// SplitGstInclusive splits a GST-inclusive total into net and tax parts.
// net = total / (1 + rate) rounded to 2dp; gst = (total - unrounded net)
// rounded to 2dp. The parts are rounded independently, so net + gst may
// differ from total by up to 0.01. Callers must not "fix" the total.
func SplitGstInclusive(total decimal.Decimal) (net decimal.Decimal, gst decimal.Decimal) {
	rawNet := total.Div(decimal.NewFromInt(1).Add(GstRate))
	net = rawNet.Round(2)
	gst = total.Sub(rawNet).Round(2)
	return net, gst
}

// FormatINR renders an amount with the rupee sign and Indian digit
// grouping (last three digits, then groups of two): 1234567.89 -> ₹12,34,567.89
func FormatINR(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	if len(intPart) > 3 {
		head := intPart[:len(intPart)-3]
		tail := intPart[len(intPart)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		intPart = strings.Join(groups, ",") + "," + tail
	}

	out := "₹" + intPart + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
