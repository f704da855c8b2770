package view

import "github.com/dustin/go-humanize"

// es-CO grouping: dot thousands separator, no decimals.
const copFormat = "#.###,"

// FormatCOP renders 10000 as "$10.000".
func FormatCOP(n int64) string {
	if n < 0 {
		return "-$" + humanize.FormatInteger(copFormat, int(-n))
	}
	return "$" + humanize.FormatInteger(copFormat, int(n))
}

// FormatCOPSuffix renders 10000 as "$10.000 COP".
func FormatCOPSuffix(n int64) string {
	return FormatCOP(n) + " COP"
}
