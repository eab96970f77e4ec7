package document

import (
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Brasília time has no DST since 2019.
var brasilia = time.FixedZone("BRT", -3*60*60)

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]`)

// FormatCurrency renders "R$ 1234.50": period decimal separator, no grouping.
func FormatCurrency(v decimal.Decimal) string {
	return "R$ " + v.StringFixed(2)
}

// FormatDateTime renders dd/mm/yyyy HH:MM:SS in loc.
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02/01/2006 15:04:05")
}

// maxFilenameStem caps the title-derived part of the filename.
const maxFilenameStem = 100

// Filename derives the artifact name from the proposal title.
func Filename(title string, signed bool) string {
	name := nonAlphanumeric.ReplaceAllString(title, "_")
	// Only ASCII survives the replacement, so bytes are runes here.
	if len(name) > maxFilenameStem {
		name = name[:maxFilenameStem]
	}
	if name == "" {
		name = "orcamento"
	}
	if signed {
		name += "_signed"
	}
	return name + ".pdf"
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

type rgb struct{ r, g, b int }

// parseHex parses #RRGGBB, returning fallback for anything else.
func parseHex(s string, fallback rgb) rgb {
	if len(s) != 7 || s[0] != '#' {
		return fallback
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return fallback
	}
	return rgb{r: int(v >> 16 & 0xff), g: int(v >> 8 & 0xff), b: int(v & 0xff)}
}

func (c rgb) isWhite() bool {
	return c.r == 0xff && c.g == 0xff && c.b == 0xff
}
