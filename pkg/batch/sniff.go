package batch

import (
	"bytes"

	"github.com/arthur-debert/printergen/pkg/errors"
)

// SampleSize is how much of the file is inspected to detect the delimiter.
const SampleSize = 5000

// Candidates are the delimiters tried, in order of preference.
var Candidates = []rune{',', ';', '\t', '|', ':'}

// Sniff returns the delimiter used in sample. A candidate qualifies when it
// occurs outside quoted sections the same, non-zero number of times on every
// complete line of the sample. When several qualify, the earliest in
// Candidates wins. If none is consistent, the first candidate present on
// every line is used, which accepts files with short rows.
func Sniff(sample []byte) (rune, error) {
	lines := sampleLines(sample)
	if len(lines) == 0 {
		return 0, errors.New(errors.ErrDelimiterNotFound, "Could not determine delimiter")
	}

	for _, c := range Candidates {
		if consistent(lines, c) {
			return c, nil
		}
	}
	for _, c := range Candidates {
		if present(lines, c) {
			return c, nil
		}
	}
	return 0, errors.New(errors.ErrDelimiterNotFound, "Could not determine delimiter").
		WithDetail("lines", len(lines))
}

// sampleLines splits sample into non-blank lines. A trailing line that was
// cut off by the sample limit is dropped unless it is the only one.
func sampleLines(sample []byte) [][]byte {
	sample = bytes.TrimPrefix(sample, []byte("\xef\xbb\xbf"))
	truncated := len(sample) >= SampleSize && !bytes.HasSuffix(sample, []byte("\n"))

	raw := bytes.Split(sample, []byte("\n"))
	if truncated && len(raw) > 1 {
		raw = raw[:len(raw)-1]
	}

	lines := make([][]byte, 0, len(raw))
	for _, l := range raw {
		l = bytes.TrimRight(l, "\r")
		if len(bytes.TrimSpace(l)) == 0 {
			continue
		}
		lines = append(lines, l)
	}
	return joinQuotedLines(lines)
}

// joinQuotedLines merges physical lines that belong to one record because a
// quoted field spans a newline.
func joinQuotedLines(lines [][]byte) [][]byte {
	var out [][]byte
	var pending []byte
	for _, l := range lines {
		if pending != nil {
			pending = append(append(pending, '\n'), l...)
		} else {
			pending = append([]byte(nil), l...)
		}
		if !scan(pending, isCandidate).open {
			out = append(out, pending)
			pending = nil
		}
	}
	if pending != nil {
		out = append(out, pending)
	}
	return out
}

func consistent(lines [][]byte, delim rune) bool {
	want := countUnquoted(lines[0], delim)
	if want == 0 {
		return false
	}
	for _, l := range lines[1:] {
		if countUnquoted(l, delim) != want {
			return false
		}
	}
	return true
}

func present(lines [][]byte, delim rune) bool {
	for _, l := range lines {
		if countUnquoted(l, delim) == 0 {
			return false
		}
	}
	return true
}

func countUnquoted(line []byte, delim rune) int {
	return scan(line, func(r rune) bool { return r == delim }).delims
}

func isCandidate(r rune) bool {
	for _, c := range Candidates {
		if r == c {
			return true
		}
	}
	return false
}

type scanResult struct {
	delims int
	open   bool
}

// scan walks text the way a lenient CSV reader does: a quote opens a quoted
// field only at the start of a field, "" inside one is a literal quote, and
// any other quote is ordinary text.
func scan(text []byte, isDelim func(rune) bool) scanResult {
	var res scanResult
	fieldStart := true
	runes := []rune(string(text))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if res.open {
			if r == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					i++
					continue
				}
				res.open = false
			}
			continue
		}
		switch {
		case r == '"' && fieldStart:
			res.open = true
			fieldStart = false
		case r == '\n':
			fieldStart = true
		case isDelim(r):
			res.delims++
			fieldStart = true
		case r == ' ' && fieldStart:
		default:
			fieldStart = false
		}
	}
	return res
}
