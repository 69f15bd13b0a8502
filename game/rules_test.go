package game

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/trio/board"
)

func TestProfiles(t *testing.T) {
	is := is.New(t)
	is.Equal(ProfileNames(), []string{ProfileExtended, ProfileTrio})

	trio, err := NewRules(ProfileTrio, board.Reference)
	is.NoErr(err)
	is.Equal(trio.Variant(), board.VariantLines)
	is.Equal(trio.Weights(), Weights{NearWinBonus: 200, EarlyThreatPenalty: -50, WinWeight: 100000, TieWeight: 1000})
	is.Equal(trio.CutoffDepth(), 5)
	is.True(trio.OpeningBook())

	ext, err := NewRules(ProfileExtended, board.Reference)
	is.NoErr(err)
	is.Equal(ext.Variant(), board.VariantSquares)
	is.Equal(ext.Weights().NearWinBonus, 300)
	is.Equal(ext.Weights().EarlyThreatPenalty, -100)
	is.Equal(ext.CutoffDepth(), 4)
	is.True(!ext.OpeningBook())

	small, err := NewRules(ProfileTrio, board.Dims{Rows: 2, Attributes: 2})
	is.NoErr(err)
	is.True(!small.OpeningBook())

	_, err = NewRules("quarto", board.Reference)
	is.True(errors.Is(err, ErrUnknownProfile))
}

func TestCustomRules(t *testing.T) {
	is := is.New(t)
	r, err := NewCustomRules("custom", board.Reference, board.VariantLines,
		Weights{NearWinBonus: 1, EarlyThreatPenalty: -1, WinWeight: 10, TieWeight: 2}, 3, false)
	is.NoErr(err)
	is.Equal(r.Name(), "custom")
	is.Equal(r.CutoffDepth(), 3)

	_, err = NewCustomRules("custom", board.Reference, board.VariantLines, Weights{}, -1, false)
	is.True(err != nil)
}
