package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/trio/board"
	"github.com/domino14/trio/config"
	"github.com/domino14/trio/game"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func testController(t *testing.T, args ...string) (*ShellController, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{}
	if err := cfg.Load(args); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	sc, err := newShellController(cfg, &out)
	if err != nil {
		t.Fatal(err)
	}
	return sc, &out
}

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"   ", nil, errNoData},
		{"show", &shellcmd{"show", nil}, nil},
		{"NEW computer", &shellcmd{"new", []string{"computer"}}, nil},
		{"place  4 ", &shellcmd{"place", []string{"4"}}, nil},
		{`give "7"`, &shellcmd{"give", []string{"7"}}, nil},
	}
	for _, tc := range cases {
		cmd, err := extractFields(tc.line)
		is.Equal(cmd, tc.expCmd)
		is.Equal(err, tc.expErr)
	}
	_, err := extractFields(`give "7`)
	is.True(err != nil)
}

func TestCommandsNeedAGame(t *testing.T) {
	is := is.New(t)
	sc, _ := testController(t, "--depth", "2")
	ctx := context.Background()
	for _, line := range []string{"show", "pieces", "place 4", "give 3"} {
		_, err := sc.Execute(ctx, line)
		is.True(errors.Is(err, errNoGame))
	}
	_, err := sc.Execute(ctx, "fly away")
	is.True(err != nil)

	resp, err := sc.Execute(ctx, "exit")
	is.True(errors.Is(err, errExit))
	is.Equal(resp.message, messageGoodbye)
}

func TestHumanTurnSequencing(t *testing.T) {
	is := is.New(t)
	sc, _ := testController(t, "--depth", "2")
	ctx := context.Background()

	resp, err := sc.Execute(ctx, "new")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, messageUsersTurn))
	is.True(strings.Contains(resp.message, "Piece to play: 0 (000)"))

	_, err = sc.Execute(ctx, "give 3")
	is.True(err != nil)
	_, err = sc.Execute(ctx, "place 9")
	is.True(errors.Is(err, game.ErrInvalidPlacement))
	_, err = sc.Execute(ctx, "place x")
	is.True(err != nil)

	resp, err = sc.Execute(ctx, "place 4")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "Designate next piece"))
	is.Equal(sc.game.Board().At(4), board.Piece(0))

	_, err = sc.Execute(ctx, "place 0")
	is.True(err != nil)
	_, err = sc.Execute(ctx, "give 0")
	is.True(errors.Is(err, game.ErrInvalidPiece))
	// 257 would wrap around to piece 1 as an int8.
	for _, line := range []string{"give 257", "give -1", "give 8"} {
		_, err = sc.Execute(ctx, line)
		is.True(errors.Is(err, game.ErrInvalidPiece))
		is.Equal(sc.phase, humanGive)
		is.Equal(sc.game.Board().NumOccupied(), 1)
	}

	resp, err = sc.Execute(ctx, "give 7")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, messageComputersTurn))
	is.Equal(sc.game.Board().NumOccupied(), 2)
	is.True(!sc.game.IsUnplaced(7))
	is.Equal(sc.phase, humanPlace)

	resp, err = sc.Execute(ctx, "pieces")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "Empty cells"))
}

func TestComputerOpens(t *testing.T) {
	is := is.New(t)
	sc, _ := testController(t)
	resp, err := sc.Execute(context.Background(), "new computer")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, messageComputersTurn))
	is.Equal(sc.game.Board().At(4), board.Piece(0))
	is.Equal(sc.game.PieceToPlay(), board.Piece(7))
	is.Equal(sc.phase, humanPlace)
}

func TestPlayToTheEnd(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	for _, first := range []string{"you", "computer"} {
		sc, _ := testController(t, "--depth", "2")
		resp, err := sc.Execute(ctx, "new "+first)
		is.NoErr(err)
		for i := 0; sc.phase != gameOver; i++ {
			is.True(i < 20)
			switch sc.phase {
			case humanPlace:
				cell := sc.game.UnoccupiedCells()[0]
				resp, err = sc.Execute(ctx, "place "+strconv.Itoa(cell))
			case humanGive:
				p := sc.game.UnplacedPieces()[0]
				resp, err = sc.Execute(ctx, "give "+strconv.Itoa(int(p)))
			}
			is.NoErr(err)
		}
		is.True(strings.HasSuffix(resp.message, messageYouWin) ||
			strings.HasSuffix(resp.message, messageComputerWins) ||
			strings.HasSuffix(resp.message, messageTie))

		_, err = sc.Execute(ctx, "place 0")
		is.True(errors.Is(err, errNoGame))
		// The finished board can still be shown.
		_, err = sc.Execute(ctx, "show")
		is.NoErr(err)
	}
}

func TestAutoplayCommand(t *testing.T) {
	is := is.New(t)
	sc, _ := testController(t, "--depth", "1")
	ctx := context.Background()
	resp, err := sc.Execute(ctx, "autoplay 2")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "Games played: 2"))

	_, err = sc.Execute(ctx, "autoplay none")
	is.True(err != nil)
}

func TestHelp(t *testing.T) {
	is := is.New(t)
	sc, _ := testController(t)
	resp, err := sc.Execute(context.Background(), "help")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "place <cell>"))
}
