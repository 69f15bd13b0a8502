package automatic

import (
	"context"
	"expvar"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/domino14/trio/stats"
)

// GamesPlayed counts finished autoplay games in this process.
var GamesPlayed = expvar.NewInt("trio-games-played")

// Summary collects the results of an autoplay run.
type Summary struct {
	Games int
	Wins  map[string]int
	Ties  int
	Plies stats.Sample
	Nodes stats.Sample
	keys  map[string]struct{}
}

func newSummary() *Summary {
	return &Summary{Wins: map[string]int{}, keys: map[string]struct{}{}}
}

func (s *Summary) add(rec *GameRecord) {
	s.Games++
	if rec.Winner == TieResult {
		s.Ties++
	} else {
		s.Wins[rec.Winner]++
	}
	s.keys[rec.Key] = struct{}{}
	s.Plies.Push(float64(rec.Plies))
	s.Nodes.Push(float64(rec.Nodes))
}

// Distinct is the number of different games played.
func (s *Summary) Distinct() int {
	return len(s.keys)
}

// Fprint writes the win counts with a 95% interval, game length figures and
// a histogram of the plies per game.
func (s *Summary) Fprint(w io.Writer) error {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "Games played: %d (%d distinct)\n", s.Games, s.Distinct())
	names := lo.Keys(s.Wins)
	slices.Sort(names)
	for _, name := range names {
		low, high := stats.RateInterval(s.Wins[name], s.Games, 95)
		fmt.Fprintf(w, "%-10s wins: %4d  (95%% interval %.3f - %.3f)\n",
			name, s.Wins[name], low, high)
	}
	fmt.Fprintf(w, "Ties: %d\n", s.Ties)
	fmt.Fprintf(w, "Plies: mean %.2f stdev %.2f median %.0f\n",
		s.Plies.Mean(), s.Plies.Stdev(), s.Plies.Quantile(0.5))
	p.Fprintf(w, "Nodes per game: mean %.0f max %.0f\n",
		s.Nodes.Mean(), s.Nodes.Quantile(1))
	return s.Plies.FprintHistogram(w, 6)
}

// Autoplay plays n games on up to threads goroutines. The first player
// alternates between games. If logw is not nil each game is written to it
// as a YAML document, in order of completion.
func (r *GameRunner) Autoplay(ctx context.Context, n, threads int, logw io.Writer) (*Summary, error) {
	if threads < 1 {
		threads = 1
	}
	var enc *yaml.Encoder
	if logw != nil {
		enc = yaml.NewEncoder(logw)
		enc.SetIndent(2)
		defer enc.Close()
	}
	summary := newSummary()
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			rec, err := r.PlayGame(ctx, i+1, i%2)
			if err != nil {
				return err
			}
			GamesPlayed.Add(1)
			mu.Lock()
			defer mu.Unlock()
			summary.add(rec)
			if enc != nil {
				if err := enc.Encode(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Info().Int("games", summary.Games).Int("ties", summary.Ties).
		Interface("wins", summary.Wins).Msg("autoplay-done")
	return summary, nil
}
