// Package move describes a single Trio! move: where the piece-to-play goes
// and which piece is handed to the opponent afterwards.
package move

import (
	"fmt"

	"github.com/domino14/trio/board"
)

// Move places the current piece-to-play at Cell, then hands Handoff to the
// opponent. Handoff is board.NoPiece on the final ply.
type Move struct {
	Cell    int
	Handoff board.Piece
}

func New(cell int, handoff board.Piece) Move {
	return Move{Cell: cell, Handoff: handoff}
}

// IsFinal is true for a move that has nothing left to hand over.
func (m Move) IsFinal() bool {
	return m.Handoff == board.NoPiece
}

func (m Move) String() string {
	if m.IsFinal() {
		return fmt.Sprintf("cell %d, no handoff", m.Cell)
	}
	return fmt.Sprintf("cell %d, hand over %d", m.Cell, m.Handoff)
}

// ShortDescription is the compact form used in logs.
func (m Move) ShortDescription() string {
	if m.IsFinal() {
		return fmt.Sprintf("%d/-", m.Cell)
	}
	return fmt.Sprintf("%d/%d", m.Cell, m.Handoff)
}
