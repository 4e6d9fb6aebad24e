// SPDX-License-Identifier: MIT

package mtx

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/loopcons/adjacency"
)

// MaxDimension is the largest matrix dimension Read accepts. Adjacency rows
// are uint32 bitmaps, and BuildMatrix is quadratic in N, so larger sizes only
// come from corrupt or hostile size lines.
const MaxDimension = 1 << 24

// maxPrealloc caps the capacity reserved from the declared entry count.
const maxPrealloc = 1 << 16

// header is the parsed banner.
type header struct {
	field    string // pattern | integer | real
	symmetry string // symmetric | general
}

func parseHeader(line string) (header, error) {
	tok := strings.Fields(strings.ToLower(line))
	if len(tok) != 5 || tok[0] != "%%matrixmarket" || tok[1] != "matrix" {
		return header{}, fmt.Errorf("%q: %w", line, ErrHeader)
	}
	if tok[2] != "coordinate" {
		return header{}, fmt.Errorf("storage %q: %w", tok[2], ErrUnsupported)
	}
	h := header{field: tok[3], symmetry: tok[4]}
	switch h.field {
	case "pattern", "integer", "real":
	case "complex":
		return header{}, fmt.Errorf("field %q: %w", h.field, ErrUnsupported)
	default:
		return header{}, fmt.Errorf("field %q: %w", h.field, ErrHeader)
	}
	switch h.symmetry {
	case "symmetric", "general":
	case "skew-symmetric", "hermitian":
		return header{}, fmt.Errorf("symmetry %q: %w", h.symmetry, ErrUnsupported)
	default:
		return header{}, fmt.Errorf("symmetry %q: %w", h.symmetry, ErrHeader)
	}

	return h, nil
}

// Read parses a Matrix Market coordinate file into an adjacency matrix.
//
// Behavior highlights:
//   - Any nonzero value marks an edge; explicit zeros in integer/real files are skipped.
//   - Symmetric files may list either triangle; entries are mirrored.
//   - General files must list both (i,j) and (j,i) for every off-diagonal
//     edge, otherwise adjacency.ErrAsymmetric is reported.
//   - The unit diagonal is implied whether or not the file lists it.
//
//   - The size line is bounded: N ≤ MaxDimension and nnz no larger than the
//     triangle (symmetric) or full matrix (general) can hold.
//
// Errors:
//   - ErrHeader, ErrUnsupported, ErrSize, ErrEntry, adjacency.ErrAsymmetric.
func Read(r io.Reader) (*adjacency.Matrix, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0
	next := func() (string, bool) {
		for sc.Scan() {
			lineNo++
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "%") {
				continue
			}
			return line, true
		}
		return "", false
	}

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("Read: %w", err)
		}
		return nil, fmt.Errorf("Read: empty input: %w", ErrHeader)
	}
	lineNo++
	h, err := parseHeader(sc.Text())
	if err != nil {
		return nil, fmt.Errorf("Read: %w", err)
	}

	sizeLine, ok := next()
	if !ok {
		return nil, fmt.Errorf("Read: missing size line: %w", ErrSize)
	}
	n, cols, nnz, err := parseSize(sizeLine)
	if err != nil {
		return nil, fmt.Errorf("Read: line %d: %w", lineNo, err)
	}
	if n != cols {
		return nil, fmt.Errorf("Read: %d×%d is not square: %w", n, cols, ErrSize)
	}
	if n > MaxDimension {
		return nil, fmt.Errorf("Read: dimension %d exceeds %d: %w", n, MaxDimension, ErrSize)
	}
	if limit := maxEntries(n, h.symmetry); nnz > limit {
		return nil, fmt.Errorf("Read: %d entries declared, a %d×%d %s matrix holds at most %d: %w",
			nnz, n, n, h.symmetry, limit, ErrSize)
	}

	wantTokens := 3
	if h.field == "pattern" {
		wantTokens = 2
	}
	// The size line is untrusted; grow past this hint only as entries arrive.
	hint := min(nnz, maxPrealloc)
	entries := make([]adjacency.Entry, 0, hint)
	var directed map[adjacency.Entry]struct{}
	if h.symmetry == "general" {
		directed = make(map[adjacency.Entry]struct{}, hint)
	}
	read := 0
	for {
		line, ok := next()
		if !ok {
			break
		}
		read++
		if read > nnz {
			return nil, fmt.Errorf("Read: line %d: more than %d entries: %w", lineNo, nnz, ErrSize)
		}
		e, nonzero, err := parseEntry(line, n, wantTokens)
		if err != nil {
			return nil, fmt.Errorf("Read: line %d: %w", lineNo, err)
		}
		if !nonzero {
			continue
		}
		entries = append(entries, e)
		if directed != nil {
			directed[e] = struct{}{}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("Read: %w", err)
	}
	if read != nnz {
		return nil, fmt.Errorf("Read: %d entries, size line declares %d: %w", read, nnz, ErrSize)
	}

	for e := range directed {
		if e.Row == e.Col {
			continue
		}
		if _, ok := directed[adjacency.Entry{Row: e.Col, Col: e.Row}]; !ok {
			return nil, fmt.Errorf("Read: (%d,%d) has no mirror: %w", e.Row+1, e.Col+1, adjacency.ErrAsymmetric)
		}
	}

	m, err := adjacency.FromEntries(n, entries)
	if err != nil {
		return nil, fmt.Errorf("Read: %w", err)
	}

	return m, nil
}

// maxEntries is the largest entry count a well-formed n×n file can declare.
func maxEntries(n int, symmetry string) int {
	if symmetry == "symmetric" {
		return n * (n + 1) / 2
	}

	return n * n
}

func parseSize(line string) (rows, cols, nnz int, err error) {
	tok := strings.Fields(line)
	if len(tok) != 3 {
		return 0, 0, 0, fmt.Errorf("%q: %w", line, ErrSize)
	}
	vals := [3]int{}
	for k, s := range tok {
		v, perr := strconv.Atoi(s)
		if perr != nil || v < 0 {
			return 0, 0, 0, fmt.Errorf("%q: %w", line, ErrSize)
		}
		vals[k] = v
	}

	return vals[0], vals[1], vals[2], nil
}

// parseEntry converts a 1-based coordinate line into a 0-based Entry.
// nonzero is false for an explicit zero value.
func parseEntry(line string, n, wantTokens int) (e adjacency.Entry, nonzero bool, err error) {
	tok := strings.Fields(line)
	if len(tok) != wantTokens {
		return e, false, fmt.Errorf("%q: want %d fields: %w", line, wantTokens, ErrEntry)
	}
	row, rerr := strconv.Atoi(tok[0])
	col, cerr := strconv.Atoi(tok[1])
	if err := errors.Join(rerr, cerr); err != nil {
		return e, false, fmt.Errorf("%q: %w: %w", line, ErrEntry, err)
	}
	if row < 1 || row > n || col < 1 || col > n {
		return e, false, fmt.Errorf("(%d,%d) outside %d×%d: %w", row, col, n, n, ErrEntry)
	}
	nonzero = true
	if wantTokens == 3 {
		v, verr := strconv.ParseFloat(tok[2], 64)
		if verr != nil {
			return e, false, fmt.Errorf("%q: %w: %w", line, ErrEntry, verr)
		}
		nonzero = v != 0
	}

	return adjacency.Entry{Row: row - 1, Col: col - 1}, nonzero, nil
}

// ReadFile opens path, decompresses it according to CompressionFromPath and
// parses it with Read.
func ReadFile(path string) (*adjacency.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ReadFile: %w", err)
	}
	defer f.Close()

	cr, err := NewReader(f, CompressionFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("ReadFile %s: %w", path, err)
	}
	defer cr.Close()

	m, err := Read(cr)
	if err != nil {
		return nil, fmt.Errorf("ReadFile %s: %w", path, err)
	}

	return m, nil
}
