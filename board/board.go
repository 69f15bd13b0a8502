// Package board holds the Trio! board: a small square grid of cells, each
// either empty or holding a piece whose bits are its attributes.
package board

import (
	"errors"
	"fmt"
	"strings"
)

// Piece is a bit vector of attributes. Bit i is the value of attribute i.
type Piece int8

// NoPiece marks an empty cell. It is also the piece-to-play on the last
// ply, when nothing is left to hand over.
const NoPiece Piece = -1

const (
	// MaxRows keeps the cell set inside a 64-bit mask.
	MaxRows = 8
	// MaxAttributes keeps the piece pool inside a 64-bit mask.
	MaxAttributes = 6
	// MaxCells is the size of the cell array backing every Board.
	MaxCells = MaxRows * MaxRows

	interCellGap = " "
)

var ErrInvalidDims = errors.New("invalid board dimensions")

// Dims is the board configuration: an R×R grid and A attributes per piece.
type Dims struct {
	Rows       int
	Attributes int
}

// Reference is the 3×3 board with three attributes (eight pieces).
var Reference = Dims{Rows: 3, Attributes: 3}

func (d Dims) Validate() error {
	if d.Rows < 2 || d.Rows > MaxRows {
		return fmt.Errorf("%w: %d rows", ErrInvalidDims, d.Rows)
	}
	if d.Attributes < 1 || d.Attributes > MaxAttributes {
		return fmt.Errorf("%w: %d attributes", ErrInvalidDims, d.Attributes)
	}
	return nil
}

func (d Dims) Cells() int {
	return d.Rows * d.Rows
}

func (d Dims) Pieces() int {
	return 1 << d.Attributes
}

// Mask is the all-ones attribute pattern.
func (d Dims) Mask() Piece {
	return Piece(d.Pieces() - 1)
}

// Board is a value type; assigning a Board copies every cell.
type Board struct {
	dims  Dims
	cells [MaxCells]Piece
}

// New returns an empty board with the given dimensions.
func New(dims Dims) (Board, error) {
	if err := dims.Validate(); err != nil {
		return Board{}, err
	}
	b := Board{dims: dims}
	for i := range b.cells {
		b.cells[i] = NoPiece
	}
	return b, nil
}

func (b Board) Dims() Dims {
	return b.dims
}

func (b Board) At(cell int) Piece {
	return b.cells[cell]
}

func (b Board) AtRC(row, col int) Piece {
	return b.cells[row*b.dims.Rows+col]
}

func (b Board) IsEmpty(cell int) bool {
	return b.cells[cell] == NoPiece
}

// With returns a copy of the board with p written into cell.
func (b Board) With(cell int, p Piece) Board {
	b.cells[cell] = p
	return b
}

// NumOccupied counts the cells holding a piece.
func (b Board) NumOccupied() int {
	n := 0
	for i := 0; i < b.dims.Cells(); i++ {
		if b.cells[i] != NoPiece {
			n++
		}
	}
	return n
}

// RenderPiece renders a piece as its attribute bits, most significant
// first. Empty cells render as underscores.
func (d Dims) RenderPiece(p Piece) string {
	if p == NoPiece {
		return strings.Repeat("_", d.Attributes)
	}
	var sb strings.Builder
	for a := d.Attributes - 1; a >= 0; a-- {
		if p&(1<<a) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// ToDisplayText renders one row per line.
func (b Board) ToDisplayText() string {
	var sb strings.Builder
	for r := 0; r < b.dims.Rows; r++ {
		for c := 0; c < b.dims.Rows; c++ {
			sb.WriteString(b.dims.RenderPiece(b.AtRC(r, c)))
			sb.WriteString(interCellGap)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
