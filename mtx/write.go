// SPDX-License-Identifier: MIT

package mtx

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/katalvlaran/loopcons/adjacency"
)

// Banner is the header line of every file this package writes.
const Banner = "%%MatrixMarket matrix coordinate pattern symmetric"

// DefaultComment is written below the banner when no comment is given.
const DefaultComment = "pairwise consistency adjacency matrix"

// Write streams m to w in Matrix Market coordinate pattern symmetric form.
// comment lines are prefixed with "%"; an empty comment writes DefaultComment.
//
// Implementation:
//   - Stage 1: banner, comment lines, "N N nnz" with nnz = m.StoredNNZ().
//   - Stage 2: one "row col" line per stored entry, 1-based, in the
//     column-major order of m.Entries().
//
// Complexity:
//   - Time O(nnz), Space O(nnz) for the entry list.
func Write(w io.Writer, m *adjacency.Matrix, comment string) error {
	if m == nil {
		return fmt.Errorf("Write: nil matrix: %w", adjacency.ErrBadShape)
	}
	if comment == "" {
		comment = DefaultComment
	}
	entries := m.Entries()

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, Banner)
	for _, line := range strings.Split(comment, "\n") {
		fmt.Fprintf(bw, "%% %s\n", line)
	}
	fmt.Fprintf(bw, "%d %d %d\n", m.N(), m.N(), len(entries))
	for _, e := range entries {
		fmt.Fprintf(bw, "%d %d\n", e.Row+1, e.Col+1)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("Write: %w", err)
	}

	return nil
}

// WriteFile creates path and writes m to it, compressed according to
// CompressionFromPath. A partially written file is removed on failure.
func WriteFile(path string, m *adjacency.Matrix, comment string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("WriteFile: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("WriteFile: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	cw, err := NewWriter(f, CompressionFromPath(path))
	if err != nil {
		return fmt.Errorf("WriteFile: %w", err)
	}
	werr := Write(cw, m, comment)
	if cerr := cw.Close(); werr != nil || cerr != nil {
		return fmt.Errorf("WriteFile %s: %w", path, errors.Join(werr, cerr))
	}

	return nil
}
