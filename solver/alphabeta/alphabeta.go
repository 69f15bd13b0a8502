// Package alphabeta implements the Trio! computer player: depth-limited
// minimax with alpha-beta pruning over copied game states.
package alphabeta

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/trio/equity"
	"github.com/domino14/trio/game"
	"github.com/domino14/trio/move"
	"github.com/domino14/trio/movegen"
)

// thanks Wikipedia:
/*
function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        for each child of node do
            α := max(α, alphabeta(child, depth − 1, α, β, FALSE))
            if α ≥ β then
                break (* β cut-off *)
        return α
    else
        for each child of node do
            β := min(β, alphabeta(child, depth − 1, α, β, TRUE))
            if α ≥ β then
                break (* α cut-off *)
        return β
*/

// Infinity is larger than any score a position can get.
const Infinity = 1 << 30

var ErrExhaustedSearch = errors.New("no moves examined at a non-terminal state")

// Stats counts the work done by the last search.
type Stats struct {
	Nodes   uint64
	Leaves  uint64
	Cutoffs uint64
	Elapsed time.Duration
}

// Solver picks moves for the computer player. A Solver runs one search at
// a time.
type Solver struct {
	movegen       movegen.MoveGenerator
	tracer        Tracer
	depthOverride int
	threads       int
	openingBook   bool

	nodes   atomic.Uint64
	leaves  atomic.Uint64
	cutoffs atomic.Uint64
	elapsed time.Duration
}

type Option func(*Solver)

func WithMoveGenerator(mg movegen.MoveGenerator) Option {
	return func(s *Solver) { s.movegen = mg }
}

func WithTracer(t Tracer) Option {
	return func(s *Solver) { s.tracer = t }
}

// WithDepth overrides the cutoff depth of the rules profile. Zero keeps
// the profile's depth.
func WithDepth(d int) Option {
	return func(s *Solver) { s.depthOverride = d }
}

// WithThreads searches the root moves on up to n goroutines.
func WithThreads(n int) Option {
	return func(s *Solver) { s.threads = n }
}

// WithOpeningBook allows the stored first move when the rules offer one.
func WithOpeningBook(on bool) Option {
	return func(s *Solver) { s.openingBook = on }
}

func NewSolver(opts ...Option) *Solver {
	s := &Solver{
		movegen:     movegen.NewOrderedGenerator(),
		tracer:      DefaultTracer(),
		threads:     1,
		openingBook: true,
	}
	for _, o := range opts {
		o(s)
	}
	if s.threads < 1 {
		s.threads = 1
	}
	return s
}

// Stats returns the counters of the most recent search.
func (s *Solver) Stats() Stats {
	return Stats{
		Nodes:   s.nodes.Load(),
		Leaves:  s.leaves.Load(),
		Cutoffs: s.cutoffs.Load(),
		Elapsed: s.elapsed,
	}
}

func (s *Solver) resetStats() {
	s.nodes.Store(0)
	s.leaves.Store(0)
	s.cutoffs.Store(0)
	s.elapsed = 0
}

// CutoffDepth is the depth CalculateNextMove will search g to.
func (s *Solver) CutoffDepth(g *game.GameState) int {
	if s.depthOverride > 0 {
		return s.depthOverride
	}
	return g.Rules().CutoffDepth()
}

// CalculateNextMove returns the state after the computer's move: the
// piece-to-play placed, and the piece it hands to the opponent assigned.
// g is not modified.
func (s *Solver) CalculateNextMove(ctx context.Context, g *game.GameState) (*game.GameState, error) {
	if g.GameOver() || g.TieGame() {
		return nil, errors.New("game is already over")
	}
	s.resetStats()
	tstart := time.Now()

	if m, ok := s.bookMove(g); ok {
		log.Debug().Str("move", m.ShortDescription()).Msg("opening-book-move")
		return g.Play(m)
	}

	depth := s.CutoffDepth(g)
	log.Debug().
		Int("depth", depth).
		Int("threads", s.threads).
		Str("profile", g.Rules().Name()).
		Msg("alphabeta-search-config")

	var next *game.GameState
	var score int
	var err error
	if s.threads > 1 {
		score, next, err = s.searchRootParallel(ctx, g, depth)
	} else {
		score, next, err = s.Search(ctx, g, depth, -Infinity, Infinity, game.MaxPlayer)
	}
	s.elapsed = time.Since(tstart)
	if err != nil {
		return nil, err
	}
	st := s.Stats()
	log.Debug().
		Int("score", score).
		Uint64("nodes", st.Nodes).
		Uint64("leaves", st.Leaves).
		Uint64("cutoffs", st.Cutoffs).
		Float64("time-elapsed-sec", st.Elapsed.Seconds()).
		Msg("solve-returning")
	if next == g {
		// Only possible with a zero depth override.
		return nil, fmt.Errorf("%w: search returned the root state", ErrExhaustedSearch)
	}
	return next, nil
}

// Search runs alpha-beta from g and returns the bound for player together
// with the best child state (or g itself at a leaf). Scores are from
// MaxPlayer's point of view. A win is credited to the player who made the
// last move, which is the one not on turn at the won state.
func (s *Solver) Search(ctx context.Context, g *game.GameState, depth, alpha, beta int,
	player game.Player) (int, *game.GameState, error) {

	sr := s.newSearcher(g, depth)
	return sr.search(ctx, g, depth, alpha, beta, player)
}

type searcher struct {
	s        *Solver
	eval     *equity.Evaluator
	tracer   Tracer
	maxDepth int
}

func (s *Solver) newSearcher(g *game.GameState, depth int) *searcher {
	sr := &searcher{s: s, eval: equity.ForRules(g.Rules()), maxDepth: depth}
	if g.IsVerboseMode() && s.tracer != nil {
		sr.tracer = s.tracer
	}
	return sr
}

func (sr *searcher) search(ctx context.Context, g *game.GameState, depth, alpha, beta int,
	player game.Player) (int, *game.GameState, error) {

	if ctx.Err() != nil {
		return 0, nil, ctx.Err()
	}
	sr.s.nodes.Add(1)

	if g.GameOver() {
		if sr.tracer != nil {
			sr.tracer.TerminalFound(TerminalWin, player.Other(), sr.maxDepth-depth, g)
		}
		return sr.eval.WinScore(player, depth), g, nil
	}
	if g.TieGame() {
		if sr.tracer != nil {
			sr.tracer.TerminalFound(TerminalTie, player.Other(), sr.maxDepth-depth, g)
		}
		return sr.eval.TieScore(depth), g, nil
	}
	if depth == 0 {
		sr.s.leaves.Add(1)
		return sr.eval.CostEstimate(g, player, depth), g, nil
	}

	best := g
	examined := false
	for m := range sr.s.movegen.Generate(g) {
		examined = true
		next, err := sr.child(g, m)
		if err != nil {
			return 0, nil, err
		}
		score, _, err := sr.search(ctx, next, depth-1, alpha, beta, player.Other())
		if err != nil {
			return 0, nil, err
		}
		if player == game.MaxPlayer {
			if score > alpha {
				if sr.tracer != nil {
					sr.tracer.BoundUpdated(player, alpha, score)
				}
				alpha = score
				best = next
			}
		} else if score < beta {
			if sr.tracer != nil {
				sr.tracer.BoundUpdated(player, beta, score)
			}
			beta = score
			best = next
		}
		if beta <= alpha {
			sr.s.cutoffs.Add(1)
			if sr.tracer != nil {
				sr.tracer.Pruned(player)
			}
			break
		}
	}
	if !examined {
		return 0, nil, fmt.Errorf("%w: %d cells and %d pieces left",
			ErrExhaustedSearch, len(g.UnoccupiedCells()), len(g.UnplacedPieces()))
	}
	if player == game.MaxPlayer {
		return alpha, best, nil
	}
	return beta, best, nil
}

func (sr *searcher) child(g *game.GameState, m move.Move) (*game.GameState, error) {
	next, err := g.Play(m)
	if err != nil {
		// The generator only offers legal moves; this is a bug.
		return nil, fmt.Errorf("playing %v: %w", m, err)
	}
	if sr.tracer != nil {
		sr.tracer.Searched(g, m)
	}
	return next, nil
}
