package alphabeta

import (
	"github.com/domino14/trio/game"
	"github.com/domino14/trio/move"
)

// On the reference board the first player holds piece 000. The stored
// reply takes the centre and hands over 111, which shares no attribute
// with it.
var referenceOpening = move.New(4, 7)

func (s *Solver) bookMove(g *game.GameState) (move.Move, bool) {
	if !s.openingBook || !g.Rules().OpeningBook() {
		return move.Move{}, false
	}
	if !g.Fresh() || g.PieceToPlay() != game.FirstPiece {
		return move.Move{}, false
	}
	return referenceOpening, true
}
