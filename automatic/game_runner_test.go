package automatic

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/domino14/trio/config"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func runner(t *testing.T, args ...string) *GameRunner {
	t.Helper()
	cfg := &config.Config{}
	if err := cfg.Load(args); err != nil {
		t.Fatal(err)
	}
	r, err := NewGameRunner(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func checkRecord(is *is.I, rec *GameRecord) {
	is.Equal(len(rec.Moves), rec.Plies)
	is.True(rec.Plies >= 1 && rec.Plies <= 8)
	is.True(rec.Winner != "")
	if rec.Winner == TieResult {
		is.Equal(rec.Plies, 8)
	} else {
		is.Equal(rec.Moves[rec.Plies-1].Player, rec.Winner)
	}
	is.Equal(rec.Moves[0].Player, rec.First)
	is.Equal(rec.Moves[0].Piece, 0)
	seen := map[int]bool{}
	for i, m := range rec.Moves {
		is.True(!seen[m.Cell])
		seen[m.Cell] = true
		if i > 0 {
			// Each player places what the previous one handed over.
			is.Equal(m.Piece, rec.Moves[i-1].Handoff)
			is.True(m.Player != rec.Moves[i-1].Player)
		}
	}
}

func TestPlayGameAgainstRandom(t *testing.T) {
	is := is.New(t)
	r := runner(t, "--depth", "1")
	for first := 0; first < 2; first++ {
		rec, err := r.PlayGame(context.Background(), first+1, first)
		is.NoErr(err)
		checkRecord(is, rec)
	}
}

func TestEngineOpensWithBookMove(t *testing.T) {
	is := is.New(t)
	r := runner(t, "--depth", "2", "--opponent", "engine")
	rec, err := r.PlayGame(context.Background(), 1, 0)
	is.NoErr(err)
	checkRecord(is, rec)
	is.Equal(rec.Moves[0].Cell, 4)
	is.Equal(rec.Moves[0].Handoff, 7)
	is.Equal(rec.Moves[0].Nodes, uint64(0))
	is.True(strings.Contains(rec.Final, "000"))
}

func TestUnknownOpponent(t *testing.T) {
	is := is.New(t)
	cfg := &config.Config{}
	is.NoErr(cfg.Load([]string{"--opponent", "nobody"}))
	_, err := NewGameRunner(cfg)
	is.True(err != nil)
}

func TestAutoplayWritesYAML(t *testing.T) {
	is := is.New(t)
	r := runner(t, "--depth", "1")
	var buf bytes.Buffer
	summary, err := r.Autoplay(context.Background(), 6, 3, &buf)
	is.NoErr(err)
	is.Equal(summary.Games, 6)
	wins := 0
	for _, w := range summary.Wins {
		wins += w
	}
	is.Equal(wins+summary.Ties, 6)
	is.Equal(summary.Plies.Len(), 6)

	dec := yaml.NewDecoder(&buf)
	firsts := map[string]int{}
	docs := 0
	for {
		var rec GameRecord
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		is.NoErr(err)
		checkRecord(is, &rec)
		firsts[rec.First]++
		docs++
	}
	is.Equal(docs, 6)
	is.Equal(firsts["engine-1"], 3)
	is.Equal(firsts["random-2"], 3)

	var out bytes.Buffer
	is.NoErr(summary.Fprint(&out))
	is.True(strings.Contains(out.String(), "Games played: 6"))
}

func TestAutoplayCancelled(t *testing.T) {
	is := is.New(t)
	r := runner(t, "--depth", "1", "--opening-book=false")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Autoplay(ctx, 4, 2, nil)
	is.True(errors.Is(err, context.Canceled))
}

func TestEngineSelfPlayRepeats(t *testing.T) {
	is := is.New(t)
	r := runner(t, "--depth", "1", "--opponent", "engine")
	summary, err := r.Autoplay(context.Background(), 4, 2, nil)
	is.NoErr(err)
	is.Equal(summary.Games, 4)
	// Both engines search the same way, so every game is the same.
	is.Equal(summary.Distinct(), 1)
}
