package parser

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Serial date window. Numbers strictly inside (SerialDateMin, SerialDateMax)
// are treated as day offsets from the 1900 spreadsheet epoch. The window is
// a heuristic: ordinary numbers inside it are rendered as dates too.
const (
	SerialDateMin = 59
	SerialDateMax = 60000
)

// DateLayout is the output layout for every recognized date (DD.MM.YYYY).
const DateLayout = "02.01.2006"

// serialEpoch is day zero for serial offsets. Offsets are shifted by two:
// one for 1-based serials and one for the phantom 29 February 1900.
var serialEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// FormatSerialDate renders numeric text as DD.MM.YYYY when it falls inside
// the serial date window and returns text unchanged otherwise.
func FormatSerialDate(text string) string {
	if hasBasePrefix(text) {
		return text
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(n) {
		return text
	}
	if n <= SerialDateMin || n >= SerialDateMax {
		return text
	}

	days := int(n) - 2
	date := serialEpoch.AddDate(0, 0, days)
	if date.Year() < 1900 || date.Year() > 9999 {
		return text
	}
	return date.Format(DateLayout)
}

// hasBasePrefix reports whether text starts, after an optional sign, with
// a 0x base prefix. ParseFloat accepts hexadecimal floats; cells do not.
func hasBasePrefix(text string) bool {
	text = strings.TrimLeft(text, "+-")
	return len(text) > 1 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X')
}

// FormatISODate renders an ISO 8601 date (YYYY-MM-DD, optionally followed by
// a time part) as DD.MM.YYYY and returns text unchanged when it does not parse.
func FormatISODate(text string) string {
	datePart := text
	if i := strings.IndexByte(datePart, 'T'); i >= 0 {
		datePart = datePart[:i]
	}
	date, err := time.Parse("2006-01-02", datePart)
	if err != nil {
		return text
	}
	return date.Format(DateLayout)
}
