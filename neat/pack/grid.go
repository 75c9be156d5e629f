package pack

import (
	"fmt"
	"math"
)

// Grid is the width and height of a rectangle of cells.
type Grid struct {
	Width  int
	Height int
}

// Area returns the number of cells in the grid.
func (g Grid) Area() int { return g.Width * g.Height }

// String formats the grid as WxH.
func (g Grid) String() string { return fmt.Sprintf("%dx%d", g.Width, g.Height) }

// maxPackCount bounds Pack2D so that the intermediate square fits in 64 bits
// and each side fits in a uint32 texture dimension.
const maxPackCount = math.MaxUint32

// Pack2D returns the smallest near-square grid holding count cells.
//
// The width is ceil(sqrt(count)); whole empty rows are trimmed from the
// bottom of the square, so Width*Height >= count and Width*(Height-1) < count.
func Pack2D(count int) (Grid, error) {
	if count <= 0 {
		return Grid{}, fmt.Errorf("%w: cannot pack %d cells", ErrEmptyInput, count)
	}
	if uint64(count) > maxPackCount {
		return Grid{}, fmt.Errorf("%w: cannot pack %d cells", ErrDimensionOverflow, count)
	}
	n := uint64(count)
	side := ceilSqrt(n)
	excess := side*side - n
	rowsToRemove := excess / side
	return Grid{Width: int(side), Height: int(side - rowsToRemove)}, nil
}

// ceilSqrt returns the smallest s with s*s >= n.
func ceilSqrt(n uint64) uint64 {
	s := uint64(math.Sqrt(float64(n)))
	// float64 rounding can land one off in either direction
	for s*s < n {
		s++
	}
	for s > 0 && (s-1)*(s-1) >= n {
		s--
	}
	return s
}
