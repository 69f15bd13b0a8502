// Package equity scores Trio! positions. Terminal positions get large
// depth-weighted constants; everything else gets a static line-threat
// heuristic. Every score is from the maximizing player's point of view.
package equity

import (
	"github.com/domino14/trio/board"
	"github.com/domino14/trio/game"
)

// Evaluator scores positions with a profile's weights.
type Evaluator struct {
	weights game.Weights
}

func NewEvaluator(w game.Weights) *Evaluator {
	return &Evaluator{weights: w}
}

// ForRules returns an evaluator using the weights of the given rules.
func ForRules(r *game.Rules) *Evaluator {
	return NewEvaluator(r.Weights())
}

func (e *Evaluator) Weights() game.Weights {
	return e.weights
}

// WinScore scores a won position where player is to move. The player who
// just moved completed the line, so the sign is the other player's.
func (e *Evaluator) WinScore(player game.Player, depth int) int {
	return player.Other().Sign() * (depth + 1) * e.weights.WinWeight
}

// TieScore is the same for both players, from the maximizer's view.
func (e *Evaluator) TieScore(depth int) int {
	return -(depth + 1) * e.weights.TieWeight
}

// Terminal returns the score of a won or tied position. ok is false if the
// game is still going.
func (e *Evaluator) Terminal(g *game.GameState, player game.Player, depth int) (score int, ok bool) {
	if g.GameOver() {
		return e.WinScore(player, depth), true
	}
	if g.TieGame() {
		return e.TieScore(depth), true
	}
	return 0, false
}

// Heuristic sums the line threats of g for the player to move, who holds
// the piece-to-play. A line that shares an attribute with that piece
// is worth the bonus when one cell is left, and the penalty when two are.
func (e *Evaluator) Heuristic(g *game.GameState) int {
	b := g.Board()
	dims := g.Dims()
	toPlay := g.PieceToPlay()
	cost := 0
	for _, line := range g.Rules().Layout().Lines() {
		emptyCells := 0
		commonOnes := dims.Mask()
		commonZeroes := board.Piece(0)
		for _, cell := range line.Cells {
			p := b.At(cell)
			if p == board.NoPiece {
				emptyCells++
				continue
			}
			commonOnes &= p
			commonZeroes |= p
		}
		if toPlay != board.NoPiece {
			commonOnes &= toPlay
			commonZeroes |= toPlay
		}
		if !dims.SharesAttribute(commonOnes, commonZeroes) {
			continue
		}
		switch emptyCells {
		case 1:
			cost += e.weights.NearWinBonus
		case 2:
			cost += e.weights.EarlyThreatPenalty
		}
	}
	return cost
}

// CostEstimate is the heuristic signed for player and scaled by depth+1.
func (e *Evaluator) CostEstimate(g *game.GameState, player game.Player, depth int) int {
	return player.Sign() * e.Heuristic(g) * (depth + 1)
}

// Evaluate scores any position: terminal constants first, then the
// heuristic.
func (e *Evaluator) Evaluate(g *game.GameState, player game.Player, depth int) int {
	if score, ok := e.Terminal(g, player, depth); ok {
		return score
	}
	return e.CostEstimate(g, player, depth)
}
