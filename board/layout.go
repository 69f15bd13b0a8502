package board

import "fmt"

// Variant selects which groups of cells count as winning lines.
type Variant string

const (
	// VariantLines is standard Trio!: rows, columns and both diagonals.
	VariantLines Variant = "lines"
	// VariantSquares additionally wins on any fully occupied 2×2 square.
	VariantSquares Variant = "squares"
)

// LineFamily names where a line came from. Traces log it for each win.
type LineFamily uint8

const (
	FamilyRow LineFamily = iota
	FamilyColumn
	FamilyLeftDiagonal
	FamilyRightDiagonal
	FamilySquare
)

func (f LineFamily) String() string {
	switch f {
	case FamilyRow:
		return "row"
	case FamilyColumn:
		return "column"
	case FamilyLeftDiagonal:
		return "left-diagonal"
	case FamilyRightDiagonal:
		return "right-diagonal"
	case FamilySquare:
		return "square"
	}
	return "unknown"
}

// Line is a list of cell indices checked together for a win.
type Line struct {
	Family LineFamily
	Cells  []int
}

// Layout is the immutable set of lines for a board shape and variant.
// Build it once and share it between states.
type Layout struct {
	dims    Dims
	variant Variant
	lines   []Line
}

func NewLayout(dims Dims, variant Variant) (*Layout, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	n := dims.Rows
	l := &Layout{dims: dims, variant: variant}

	for r := 0; r < n; r++ {
		cells := make([]int, n)
		for c := 0; c < n; c++ {
			cells[c] = r*n + c
		}
		l.lines = append(l.lines, Line{FamilyRow, cells})
	}
	// Columns are the rows of the transposed board.
	for c := 0; c < n; c++ {
		cells := make([]int, n)
		for r := 0; r < n; r++ {
			cells[r] = r*n + c
		}
		l.lines = append(l.lines, Line{FamilyColumn, cells})
	}
	left := make([]int, n)
	right := make([]int, n)
	for i := 0; i < n; i++ {
		left[i] = i*n + i
		// The right diagonal is the left diagonal of the row-reversed board.
		right[i] = (n-1-i)*n + i
	}
	l.lines = append(l.lines, Line{FamilyLeftDiagonal, left}, Line{FamilyRightDiagonal, right})

	switch variant {
	case VariantLines:
	case VariantSquares:
		for r := 0; r < n-1; r++ {
			for c := 0; c < n-1; c++ {
				l.lines = append(l.lines, Line{FamilySquare, []int{
					r*n + c, r*n + c + 1, (r+1)*n + c, (r+1)*n + c + 1,
				}})
			}
		}
	default:
		return nil, fmt.Errorf("unknown variant %q", variant)
	}
	return l, nil
}

func (l *Layout) Dims() Dims {
	return l.dims
}

func (l *Layout) Variant() Variant {
	return l.variant
}

func (l *Layout) Lines() []Line {
	return l.lines
}

// SharesAttribute reports whether the folded AND/OR of a group of pieces
// means they all agree on at least one attribute.
func (d Dims) SharesAttribute(commonOnes, commonZeroes Piece) bool {
	return commonOnes&d.Mask() != 0 || commonZeroes != d.Mask()
}

// WinningLine returns the first fully occupied line whose pieces share an
// attribute.
func (l *Layout) WinningLine(b Board) (Line, bool) {
	for _, line := range l.lines {
		if l.isWin(b, line) {
			return line, true
		}
	}
	return Line{}, false
}

func (l *Layout) isWin(b Board, line Line) bool {
	commonOnes := l.dims.Mask()
	commonZeroes := Piece(0)
	for _, cell := range line.Cells {
		p := b.cells[cell]
		if p == NoPiece {
			// A line with a hole can't be a win.
			return false
		}
		commonOnes &= p
		commonZeroes |= p
	}
	return l.dims.SharesAttribute(commonOnes, commonZeroes)
}
