package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// SniffSampleSize is how many leading bytes are inspected to pick a delimiter.
const SniffSampleSize = 1024

// delimiterCandidates is ordered; earlier entries win ties.
var delimiterCandidates = []rune{';', ',', '\t', '|'}

// SniffDelimiter returns the candidate delimiter occurring most often in
// sample. Ties go to the earlier candidate and an empty count defaults to ';'.
func SniffDelimiter(sample []byte) rune {
	best, bestCount := delimiterCandidates[0], 0
	for _, d := range delimiterCandidates {
		if n := bytes.Count(sample, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// DecodeCSV parses delimited text into raw rows, header first.
// Records that fail to parse are skipped.
func DecodeCSV(data []byte, logger *slog.Logger) ([][]string, error) {
	// Strip a UTF-8 BOM and transcode UTF-16 input that announces itself with one.
	data, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	sample := data
	if len(sample) > SniffSampleSize {
		sample = sample[:SniffSampleSize]
	}
	delimiter := SniffDelimiter(sample)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter
	r.LazyQuotes = true

	var rows [][]string
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logger.Debug("skipping malformed csv record", "record", line, "error", err)
			continue
		}
		if !validRecord(record) {
			if len(rows) == 0 {
				return nil, fmt.Errorf("%w: csv header", ErrEncoding)
			}
			logger.Debug("skipping csv record with invalid utf-8", "record", line)
			continue
		}
		rows = append(rows, record)
	}

	logger.Debug("decoded csv", "delimiter", string(delimiter), "rows", len(rows))
	return rows, nil
}

func validRecord(record []string) bool {
	for _, field := range record {
		if !utf8.ValidString(field) {
			return false
		}
	}
	return true
}
