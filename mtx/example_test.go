package mtx_test

import (
	"os"

	"github.com/katalvlaran/loopcons/adjacency"
	"github.com/katalvlaran/loopcons/mtx"
)

func ExampleWrite() {
	m, _ := adjacency.FromEntries(3, []adjacency.Entry{{Row: 0, Col: 1}})
	_ = mtx.Write(os.Stdout, m, "loop closures 0 and 1 agree")
	// Output:
	// %%MatrixMarket matrix coordinate pattern symmetric
	// % loop closures 0 and 1 agree
	// 3 3 4
	// 1 1
	// 2 1
	// 2 2
	// 3 3
}
