// Package movegen generates Trio! moves in the order the search should try
// them.
package movegen

import (
	"iter"
	"slices"

	"github.com/samber/lo"

	"github.com/domino14/trio/board"
	"github.com/domino14/trio/game"
	"github.com/domino14/trio/move"
)

// MoveGenerator produces the legal moves of a state. The sequence is
// finite; to restart it, call Generate again.
type MoveGenerator interface {
	Generate(g *game.GameState) iter.Seq[move.Move]
}

// OrderedGenerator tries cells in ascending order and, for each cell,
// hands over the pieces in descending order, least similar to piece 0
// first.
type OrderedGenerator struct{}

func NewOrderedGenerator() *OrderedGenerator {
	return &OrderedGenerator{}
}

func (og *OrderedGenerator) Generate(g *game.GameState) iter.Seq[move.Move] {
	return func(yield func(move.Move) bool) {
		unplaced := g.UnplacedPieces()
		cells := g.UnoccupiedCells()
		if len(unplaced) == 1 {
			// Only the piece-to-play is left; nothing to hand over.
			for _, cell := range cells {
				if !yield(move.New(cell, board.NoPiece)) {
					return
				}
			}
			return
		}
		toPlay := g.PieceToPlay()
		handoffs := lo.Filter(unplaced, func(p board.Piece, _ int) bool {
			return p != toPlay
		})
		slices.Reverse(handoffs)
		for _, cell := range cells {
			for _, p := range handoffs {
				if !yield(move.New(cell, p)) {
					return
				}
			}
		}
	}
}

// GenAll returns every move of g, in generation order.
func GenAll(mg MoveGenerator, g *game.GameState) []move.Move {
	return slices.Collect(mg.Generate(g))
}
