package game

import (
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/trio/board"
	"github.com/domino14/trio/move"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

const X = board.NoPiece

func trioRules(t *testing.T) *Rules {
	r, err := NewRules(ProfileTrio, board.Reference)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestNewGameState(t *testing.T) {
	is := is.New(t)
	g, err := NewGameState(trioRules(t), false)
	is.NoErr(err)
	is.Equal(g.UnoccupiedCells(), []int{0, 1, 2, 3, 4, 5, 6, 7, 8})
	is.Equal(g.UnplacedPieces(), []board.Piece{0, 1, 2, 3, 4, 5, 6, 7})
	is.Equal(g.PieceToPlay(), FirstPiece)
	is.True(g.Fresh())
	is.True(!g.GameOver())
	is.True(!g.TieGame())
}

func TestPlaceShrinksPools(t *testing.T) {
	is := is.New(t)
	g, err := NewGameState(trioRules(t), false)
	is.NoErr(err)
	is.NoErr(g.SetPieceToPlay(5))

	ng, err := g.Place(4, 5)
	is.NoErr(err)
	is.Equal(len(ng.UnoccupiedCells()), len(g.UnoccupiedCells())-1)
	is.Equal(len(ng.UnplacedPieces()), len(g.UnplacedPieces())-1)
	is.Equal(ng.Board().At(4), board.Piece(5))
	is.True(!ng.IsUnoccupied(4))
	is.True(!ng.IsUnplaced(5))
	is.Equal(ng.PieceToPlay(), X)

	// The receiver is untouched.
	is.True(g.IsUnoccupied(4))
	is.True(g.IsUnplaced(5))
	is.True(g.Board().IsEmpty(4))
	is.Equal(g.PieceToPlay(), board.Piece(5))
}

func TestPlaceErrors(t *testing.T) {
	is := is.New(t)
	g, err := NewGameState(trioRules(t), false)
	is.NoErr(err)

	_, err = g.Place(4, 3)
	is.True(errors.Is(err, ErrInvalidPlacement)) // not the piece to play
	_, err = g.Place(9, 0)
	is.True(errors.Is(err, ErrInvalidPlacement))
	_, err = g.Place(-1, 0)
	is.True(errors.Is(err, ErrInvalidPlacement))

	ng, err := g.Place(4, 0)
	is.NoErr(err)
	is.NoErr(ng.SetPieceToPlay(1))
	_, err = ng.Place(4, 1)
	is.True(errors.Is(err, ErrInvalidPlacement)) // occupied
}

func TestSetPieceToPlay(t *testing.T) {
	is := is.New(t)
	g, err := NewGameState(trioRules(t), false)
	is.NoErr(err)
	ng, err := g.Place(0, 0)
	is.NoErr(err)
	is.True(errors.Is(ng.SetPieceToPlay(0), ErrInvalidPiece)) // already placed
	is.True(errors.Is(ng.SetPieceToPlay(8), ErrInvalidPiece))
	is.True(errors.Is(ng.SetPieceToPlay(X), ErrInvalidPiece))
	is.NoErr(ng.SetPieceToPlay(7))
	is.Equal(ng.PieceToPlay(), board.Piece(7))
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)
	g, err := PositionFromBoardRows(trioRules(t), true, [][]board.Piece{
		{0, X, X},
		{X, 6, X},
		{X, X, X},
	}, 3)
	is.NoErr(err)

	cp := g.Copy()
	is.Equal(cp, g)
	is.True(cp != g)

	is.NoErr(cp.SetPieceToPlay(1))
	cp2, err := cp.Place(8, 1)
	is.NoErr(err)
	cp2.SetVerboseMode(false)

	is.Equal(g.PieceToPlay(), board.Piece(3))
	is.True(g.IsUnoccupied(8))
	is.True(g.IsUnplaced(1))
	is.True(g.IsVerboseMode())
	is.Equal(g.Board().NumOccupied(), 2)
	is.Equal(cp.Board().NumOccupied(), 2)
	is.Equal(cp2.Board().NumOccupied(), 3)
}

func TestPlay(t *testing.T) {
	is := is.New(t)
	g, err := NewGameState(trioRules(t), false)
	is.NoErr(err)
	ng, err := g.Play(move.New(2, 7))
	is.NoErr(err)
	is.Equal(ng.Board().At(2), board.Piece(0))
	is.Equal(ng.PieceToPlay(), board.Piece(7))
	is.Equal(ng.NumPlaced(), 1)

	_, err = g.Play(move.New(2, 0))
	is.True(errors.Is(err, ErrInvalidPiece)) // can't hand over the placed piece
}

func TestRowWin(t *testing.T) {
	is := is.New(t)
	// 001, 011, 101 share bit 0.
	g, err := PositionFromBoardRows(trioRules(t), false, [][]board.Piece{
		{1, 3, 5},
		{X, X, X},
		{X, X, X},
	}, 0)
	is.NoErr(err)
	is.True(g.GameOver())
	is.True(!g.TieGame())
	line, ok := g.WinningLine()
	is.True(ok)
	is.Equal(line.Family, board.FamilyRow)
}

func TestColumnAndDiagonalWins(t *testing.T) {
	is := is.New(t)
	// 000, 001, 010 share a clear bit 2.
	col, err := PositionFromBoardRows(trioRules(t), false, [][]board.Piece{
		{X, 0, X},
		{X, 1, X},
		{X, 2, X},
	}, 7)
	is.NoErr(err)
	is.True(col.GameOver())

	diag, err := PositionFromBoardRows(trioRules(t), false, [][]board.Piece{
		{4, X, X},
		{X, 6, X},
		{X, X, 7},
	}, 0)
	is.NoErr(err)
	is.True(diag.GameOver())

	none, err := PositionFromBoardRows(trioRules(t), false, [][]board.Piece{
		{0, X, X},
		{X, 3, X},
		{X, X, 5},
	}, 7)
	is.NoErr(err)
	is.True(!none.GameOver())
}

func TestTieGame(t *testing.T) {
	is := is.New(t)
	// Eight pieces fit on nine cells, so a finished board keeps one hole.
	g, err := PositionFromBoardRows(trioRules(t), false, [][]board.Piece{
		{0, 2, 7},
		{4, X, 1},
		{3, 5, 6},
	}, X)
	is.NoErr(err)
	is.Equal(len(g.UnplacedPieces()), 0)
	is.True(!g.GameOver())
	is.True(g.TieGame())
}

func TestNeverWinAndTie(t *testing.T) {
	is := is.New(t)
	// The last piece completes a winning row: a win, not a tie.
	g, err := PositionFromBoardRows(trioRules(t), false, [][]board.Piece{
		{0, 2, 7},
		{4, X, 1},
		{3, 5, 6},
	}, X)
	is.NoErr(err)
	is.True(g.TieGame())

	won, err := PositionFromBoardRows(trioRules(t), false, [][]board.Piece{
		{1, 3, 5},
		{0, 2, 4},
		{6, 7, X},
	}, X)
	is.NoErr(err)
	is.True(won.GameOver())
	is.True(!won.TieGame())
}

func TestRender(t *testing.T) {
	is := is.New(t)
	g, err := PositionFromBoardRows(trioRules(t), false, [][]board.Piece{
		{0, X, X},
		{X, 5, X},
		{X, X, X},
	}, 6)
	is.NoErr(err)
	is.Equal(g.Render(), "Piece to play: 6 (110)\n000 ___ ___ \n___ 101 ___ \n___ ___ ___ \n")
	is.Equal(g.FormatPieces([]board.Piece{1, 2}), []string{"1 (001)", "2 (010)"})
	is.Equal(g.FormatPiece(X), "none")
}
