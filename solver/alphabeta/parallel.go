package alphabeta

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/trio/game"
	"github.com/domino14/trio/movegen"
)

type rootResult struct {
	score int
	state *game.GameState
}

// searchRootParallel splits the root moves over s.threads goroutines.
// Every root move is searched with the full window, so each score is
// exact, and the first move with the highest score is the one sequential
// alpha-beta would have kept. Only the node count differs.
func (s *Solver) searchRootParallel(ctx context.Context, g *game.GameState, depth int) (int, *game.GameState, error) {
	sr := s.newSearcher(g, depth)
	if depth == 0 {
		return sr.search(ctx, g, depth, -Infinity, Infinity, game.MaxPlayer)
	}
	s.nodes.Add(1)
	moves := movegen.GenAll(s.movegen, g)
	if len(moves) == 0 {
		return 0, nil, fmt.Errorf("%w: empty root", ErrExhaustedSearch)
	}
	results := make([]rootResult, len(moves))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.threads)
	for idx, m := range moves {
		eg.Go(func() error {
			next, err := sr.child(g, m)
			if err != nil {
				return err
			}
			score, _, err := sr.search(egctx, next, depth-1, -Infinity, Infinity, game.MinPlayer)
			if err != nil {
				return err
			}
			results[idx] = rootResult{score: score, state: next}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Debug().Err(err).Msg("root-errgroup-error")
		return 0, nil, err
	}

	alpha := -Infinity
	best := g
	for _, r := range results {
		if r.score > alpha {
			if sr.tracer != nil {
				sr.tracer.BoundUpdated(game.MaxPlayer, alpha, r.score)
			}
			alpha = r.score
			best = r.state
		}
	}
	return alpha, best, nil
}
