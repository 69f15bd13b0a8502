// Package game holds the Trio! game state: the board, the pools of unplaced
// pieces and unoccupied cells, and the piece the player on turn must place.
// States are never changed by search; every explored move works on a copy.
package game

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/trio/board"
	"github.com/domino14/trio/move"
)

// FirstPiece is the piece the first player has to place.
const FirstPiece board.Piece = 0

var (
	ErrInvalidPlacement = errors.New("invalid placement")
	ErrInvalidPiece     = errors.New("invalid piece")
)

// GameState is a snapshot of one ply. The pools are bit masks indexed by
// cell and piece, so a copy is a plain struct assignment.
type GameState struct {
	board       board.Board
	unplaced    uint64
	unoccupied  uint64
	pieceToPlay board.Piece
	verbose     bool
	rules       *Rules
}

// NewGameState returns the empty starting position.
func NewGameState(rules *Rules, verbose bool) (*GameState, error) {
	if rules == nil {
		return nil, errors.New("rules must not be nil")
	}
	dims := rules.Dims()
	b, err := board.New(dims)
	if err != nil {
		return nil, err
	}
	return &GameState{
		board:       b,
		unplaced:    fullMask(dims.Pieces()),
		unoccupied:  fullMask(dims.Cells()),
		pieceToPlay: FirstPiece,
		verbose:     verbose,
		rules:       rules,
	}, nil
}

func fullMask(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << n) - 1
}

// Copy returns a state that shares no mutable storage with g.
func (g *GameState) Copy() *GameState {
	cp := *g
	return &cp
}

// Place returns a new state with p written into cell. p must be the
// piece-to-play and the cell must be empty. The new state has no
// piece-to-play until one is handed over.
func (g *GameState) Place(cell int, p board.Piece) (*GameState, error) {
	if cell < 0 || cell >= g.Dims().Cells() {
		return nil, fmt.Errorf("%w: cell %d out of range", ErrInvalidPlacement, cell)
	}
	if !g.IsUnoccupied(cell) {
		return nil, fmt.Errorf("%w: cell %d is occupied", ErrInvalidPlacement, cell)
	}
	if p == board.NoPiece || p != g.pieceToPlay {
		return nil, fmt.Errorf("%w: piece %d is not the piece to play (%d)",
			ErrInvalidPlacement, p, g.pieceToPlay)
	}
	ng := g.Copy()
	ng.board = g.board.With(cell, p)
	ng.unplaced &^= 1 << uint(p)
	ng.unoccupied &^= 1 << uint(cell)
	ng.pieceToPlay = board.NoPiece
	return ng, nil
}

// Play applies a generated move: place the piece-to-play at m.Cell, then
// hand m.Handoff to the opponent.
func (g *GameState) Play(m move.Move) (*GameState, error) {
	ng, err := g.Place(m.Cell, g.pieceToPlay)
	if err != nil {
		return nil, err
	}
	if err := ng.SetPieceToPlay(m.Handoff); err != nil {
		return nil, err
	}
	return ng, nil
}

// SetPieceToPlay assigns the piece the player on turn has to place.
// board.NoPiece is only accepted once every piece is on the board.
func (g *GameState) SetPieceToPlay(p board.Piece) error {
	if p == board.NoPiece {
		if g.unplaced != 0 {
			return fmt.Errorf("%w: must hand over one of %v", ErrInvalidPiece, g.UnplacedPieces())
		}
		g.pieceToPlay = p
		return nil
	}
	if !g.IsUnplaced(p) {
		return fmt.Errorf("%w: piece %d is not available", ErrInvalidPiece, p)
	}
	g.pieceToPlay = p
	return nil
}

func (g *GameState) PieceToPlay() board.Piece {
	return g.pieceToPlay
}

// GameOver is true if some line is full and its pieces share an attribute.
func (g *GameState) GameOver() bool {
	_, won := g.rules.layout.WinningLine(g.board)
	return won
}

// WinningLine returns the line that ended the game, if any.
func (g *GameState) WinningLine() (board.Line, bool) {
	return g.rules.layout.WinningLine(g.board)
}

// TieGame is true if every piece has been placed without a win.
func (g *GameState) TieGame() bool {
	return g.unplaced == 0 && !g.GameOver()
}

// UnoccupiedCells lists the empty cells in ascending order.
func (g *GameState) UnoccupiedCells() []int {
	return maskIndices(g.unoccupied)
}

// UnplacedPieces lists the pieces not yet on the board in ascending order.
func (g *GameState) UnplacedPieces() []board.Piece {
	return lo.Map(maskIndices(g.unplaced), func(i int, _ int) board.Piece {
		return board.Piece(i)
	})
}

func (g *GameState) NumUnplaced() int {
	return bits.OnesCount64(g.unplaced)
}

func (g *GameState) NumPlaced() int {
	return g.Dims().Pieces() - g.NumUnplaced()
}

// Fresh is true before the first piece is placed.
func (g *GameState) Fresh() bool {
	return g.NumPlaced() == 0
}

func maskIndices(m uint64) []int {
	out := make([]int, 0, bits.OnesCount64(m))
	for m != 0 {
		i := bits.TrailingZeros64(m)
		out = append(out, i)
		m &= m - 1
	}
	return out
}

func (g *GameState) IsUnoccupied(cell int) bool {
	if cell < 0 || cell >= g.Dims().Cells() {
		return false
	}
	return g.unoccupied&(1<<uint(cell)) != 0
}

func (g *GameState) IsUnplaced(p board.Piece) bool {
	if p < 0 || int(p) >= g.Dims().Pieces() {
		return false
	}
	return g.unplaced&(1<<uint(p)) != 0
}

func (g *GameState) IsVerboseMode() bool {
	return g.verbose
}

func (g *GameState) SetVerboseMode(v bool) {
	g.verbose = v
}

func (g *GameState) Board() board.Board {
	return g.board
}

func (g *GameState) Rules() *Rules {
	return g.rules
}

func (g *GameState) Dims() board.Dims {
	return g.rules.Dims()
}

func (g *GameState) Variant() board.Variant {
	return g.rules.Variant()
}

// Render shows the piece-to-play and the board, one row per line.
func (g *GameState) Render() string {
	var sb strings.Builder
	sb.WriteString("Piece to play: ")
	sb.WriteString(g.FormatPiece(g.pieceToPlay))
	sb.WriteString("\n")
	sb.WriteString(g.board.ToDisplayText())
	return sb.String()
}

// FormatPiece renders a piece as "5 (101)".
func (g *GameState) FormatPiece(p board.Piece) string {
	if p == board.NoPiece {
		return "none"
	}
	return strconv.Itoa(int(p)) + " (" + g.Dims().RenderPiece(p) + ")"
}

// FormatPieces renders a pool of pieces, for prompts.
func (g *GameState) FormatPieces(pieces []board.Piece) []string {
	return lo.Map(pieces, func(p board.Piece, _ int) string {
		return g.FormatPiece(p)
	})
}
