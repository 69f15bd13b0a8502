package game

import "github.com/domino14/trio/board"

// Placement is a piece already on the board in a set-up position.
type Placement struct {
	Cell  int
	Piece board.Piece
}

// NewPositionFromPlacements builds a position by placing each piece in
// order, then assigning pieceToPlay. It is mostly useful for tests and
// for loading puzzles.
func NewPositionFromPlacements(rules *Rules, verbose bool, placements []Placement,
	pieceToPlay board.Piece) (*GameState, error) {

	g, err := NewGameState(rules, verbose)
	if err != nil {
		return nil, err
	}
	for _, pl := range placements {
		if err := g.SetPieceToPlay(pl.Piece); err != nil {
			return nil, err
		}
		g, err = g.Place(pl.Cell, pl.Piece)
		if err != nil {
			return nil, err
		}
	}
	if err := g.SetPieceToPlay(pieceToPlay); err != nil {
		return nil, err
	}
	return g, nil
}

// PositionFromBoardRows is like NewPositionFromPlacements, with the board
// given row by row and board.NoPiece for empty cells.
func PositionFromBoardRows(rules *Rules, verbose bool, rows [][]board.Piece,
	pieceToPlay board.Piece) (*GameState, error) {

	var placements []Placement
	n := rules.Dims().Rows
	for r, row := range rows {
		for c, p := range row {
			if p == board.NoPiece {
				continue
			}
			placements = append(placements, Placement{Cell: r*n + c, Piece: p})
		}
	}
	return NewPositionFromPlacements(rules, verbose, placements, pieceToPlay)
}
