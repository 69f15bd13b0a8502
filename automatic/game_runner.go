// Package automatic plays computer games to the end, for testing the
// engine against a random mover or against itself.
package automatic

import (
	"context"
	"fmt"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"

	"github.com/domino14/trio/board"
	"github.com/domino14/trio/config"
	"github.com/domino14/trio/game"
	"github.com/domino14/trio/movegen"
	"github.com/domino14/trio/solver/alphabeta"
)

const TieResult = "tie"

// MoveRecord is one turn of a finished game.
type MoveRecord struct {
	Player  string `yaml:"player"`
	Cell    int    `yaml:"cell"`
	Piece   int    `yaml:"piece"`
	Handoff int    `yaml:"handoff"`
	Nodes   uint64 `yaml:"nodes,omitempty"`
}

// GameRecord is a finished game, as written to the autoplay log.
type GameRecord struct {
	Game   int          `yaml:"game"`
	First  string       `yaml:"first"`
	Winner string       `yaml:"winner"`
	Plies  int          `yaml:"plies"`
	Nodes  uint64       `yaml:"nodes"`
	Key    string       `yaml:"key"`
	Moves  []MoveRecord `yaml:"moves"`
	Final  string       `yaml:"final"`
}

// GameRunner plays games between two computer players.
type GameRunner struct {
	rules       *game.Rules
	opponent    string
	depth       int
	openingBook bool
}

// NewGameRunner builds a runner from the config: the profile, search depth
// and opening book for the engine, and the kind of opponent.
func NewGameRunner(cfg *config.Config) (*GameRunner, error) {
	rules, err := cfg.Rules()
	if err != nil {
		return nil, err
	}
	opp := cfg.GetString(config.ConfigOpponent)
	if opp != EnginePlayer && opp != RandomPlayer {
		return nil, fmt.Errorf("unknown opponent %q", opp)
	}
	return &GameRunner{
		rules:       rules,
		opponent:    opp,
		depth:       cfg.GetInt(config.ConfigDepth),
		openingBook: cfg.GetBool(config.ConfigOpeningBook),
	}, nil
}

// newPlayers makes fresh players for one game; they are not shared
// between goroutines.
func (r *GameRunner) newPlayers() [2]Player {
	var players [2]Player
	players[0] = &engine{
		name: EnginePlayer + "-1",
		solver: alphabeta.NewSolver(
			alphabeta.WithDepth(r.depth),
			alphabeta.WithOpeningBook(r.openingBook)),
	}
	if r.opponent == EnginePlayer {
		players[1] = &engine{
			name: EnginePlayer + "-2",
			solver: alphabeta.NewSolver(
				alphabeta.WithDepth(r.depth),
				alphabeta.WithOpeningBook(r.openingBook)),
		}
	} else {
		players[1] = &random{name: RandomPlayer + "-2", movegen: movegen.NewOrderedGenerator()}
	}
	return players
}

// PlayGame plays one game to the end. first is the index (0 or 1) of the
// player who places the first piece.
func (r *GameRunner) PlayGame(ctx context.Context, id int, first int) (*GameRecord, error) {
	players := r.newPlayers()
	g, err := game.NewGameState(r.rules, false)
	if err != nil {
		return nil, err
	}
	rec := &GameRecord{Game: id, First: players[first].Name()}
	onturn := first
	for {
		p := players[onturn]
		next, err := p.Move(ctx, g)
		if err != nil {
			return nil, fmt.Errorf("game %d, %s: %w", id, p.Name(), err)
		}
		mr := MoveRecord{
			Player:  p.Name(),
			Cell:    placedCell(g, next),
			Piece:   int(g.PieceToPlay()),
			Handoff: int(next.PieceToPlay()),
		}
		if e, ok := p.(*engine); ok {
			mr.Nodes = e.Nodes()
			rec.Nodes += mr.Nodes
		}
		rec.Moves = append(rec.Moves, mr)
		g = next

		if g.GameOver() {
			rec.Winner = p.Name()
			break
		}
		if g.TieGame() {
			rec.Winner = TieResult
			break
		}
		onturn = 1 - onturn
	}
	rec.Plies = len(rec.Moves)
	rec.Key = gameKey(rec.Moves)
	rec.Final = g.Board().ToDisplayText()
	log.Debug().Int("game", id).Str("winner", rec.Winner).Int("plies", rec.Plies).Msg("game-over")
	return rec, nil
}

// gameKey identifies a game by its sequence of placements and handoffs, so
// repeated games can be counted.
func gameKey(moves []MoveRecord) string {
	var sb strings.Builder
	for _, m := range moves {
		fmt.Fprintf(&sb, "%d/%d/%d;", m.Cell, m.Piece, m.Handoff)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(sb.String()))
}

func placedCell(before, after *game.GameState) int {
	for _, c := range before.UnoccupiedCells() {
		if after.Board().At(c) != board.NoPiece {
			return c
		}
	}
	return -1
}
