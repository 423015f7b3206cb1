package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var errNoHeader = errors.New("no header row")

// delimiters are tried in this order when counts tie.
var delimiters = []rune{';', ',', '\t', '|'}

const sniffLines = 20

// ParseDelimited reads delimiter-separated text whose first row is the
// header. Content that is not valid UTF-8 is decoded as Latin-1. Rows with
// more fields than the header are skipped.
func ParseDelimited(content []byte) (Table, error) {
	text, err := decodeText(content)
	if err != nil {
		return Table{}, err
	}
	text = strings.TrimPrefix(text, "\ufeff")

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := readNonBlank(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, errNoHeader
		}
		return Table{}, fmt.Errorf("read header: %w", err)
	}
	columns := headerLabels(header)

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				continue
			}
			return Table{}, fmt.Errorf("read row: %w", err)
		}
		if len(rec) > len(columns) || blank(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	return NewTable(columns, rows), nil
}

func decodeText(content []byte) (string, error) {
	if utf8.Valid(content) {
		return string(content), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
	if err != nil {
		return "", fmt.Errorf("decode latin-1: %w", err)
	}
	return string(decoded), nil
}

// sniffDelimiter picks the candidate that appears the same non-zero number of
// times on every sampled line, preferring the highest count. Quoted sections
// are ignored. When nothing is consistent the most frequent candidate wins,
// falling back to a comma.
func sniffDelimiter(text string) rune {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, l)
		if len(lines) == sniffLines {
			break
		}
	}
	if len(lines) == 0 {
		return ','
	}

	best, bestCount := rune(0), 0
	fallback, fallbackTotal := ',', 0
	for _, d := range delimiters {
		first := countUnquoted(lines[0], d)
		consistent := first > 0
		total := 0
		for _, l := range lines {
			n := countUnquoted(l, d)
			total += n
			if n != first {
				consistent = false
			}
		}
		if consistent && first > bestCount {
			best, bestCount = d, first
		}
		if total > fallbackTotal {
			fallback, fallbackTotal = d, total
		}
	}
	if best != 0 {
		return best
	}
	return fallback
}

func countUnquoted(line string, d rune) int {
	n := 0
	quoted := false
	for _, c := range line {
		switch {
		case c == '"':
			quoted = !quoted
		case c == d && !quoted:
			n++
		}
	}
	return n
}

func readNonBlank(r *csv.Reader) ([]string, error) {
	for {
		rec, err := r.Read()
		if err != nil {
			return nil, err
		}
		if !blank(rec) {
			return rec, nil
		}
	}
}

// headerLabels trims labels and names empty or repeated ones so every column
// stays addressable.
func headerLabels(header []string) []string {
	out := make([]string, len(header))
	seen := map[string]int{}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		if n := seen[h]; n > 0 {
			seen[h] = n + 1
			h = fmt.Sprintf("%s.%d", h, n)
		} else {
			seen[h] = 1
		}
		out[i] = h
	}
	return out
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// trimmedRows is shared by the spreadsheet adapter.
func trimmedRows(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		if blank(r) {
			continue
		}
		rec := make([]string, len(r))
		for i, v := range r {
			rec[i] = strings.TrimSpace(v)
		}
		out = append(out, rec)
	}
	return out
}
