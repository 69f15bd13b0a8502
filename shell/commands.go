package shell

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/trio/automatic"
	"github.com/domino14/trio/board"
	"github.com/domino14/trio/config"
	"github.com/domino14/trio/game"
)

const defaultAutoplayGames = 10

//go:embed helptext/usage.txt
var usageText string

func (sc *ShellController) newGame(ctx context.Context, cmd *shellcmd) (*Response, error) {
	first := "you"
	if len(cmd.args) > 1 {
		return nil, errWrongArg
	}
	if len(cmd.args) == 1 {
		first = strings.ToLower(cmd.args[0])
	}
	if first != "you" && first != "computer" {
		return nil, fmt.Errorf("first player must be you or computer, not %q", first)
	}
	g, err := game.NewGameState(sc.rules, sc.config.GetBool(config.ConfigVerbose))
	if err != nil {
		return nil, err
	}
	sc.game = g
	var sb strings.Builder
	if first == "computer" {
		err = sc.computerTurn(ctx, &sb)
	} else {
		sc.userTurn(&sb)
	}
	return msg(strings.TrimRight(sb.String(), "\n")), err
}

func (sc *ShellController) userTurn(sb *strings.Builder) {
	sc.phase = humanPlace
	sb.WriteString(messageUsersTurn + "\n")
	sb.WriteString(sc.game.Render())
	fmt.Fprintf(sb, "Place piece %d with: place <cell>\n", sc.game.PieceToPlay())
}

func (sc *ShellController) computerTurn(ctx context.Context, sb *strings.Builder) error {
	sb.WriteString(messageComputersTurn + "\n")
	next, err := sc.solver.CalculateNextMove(ctx, sc.game)
	if err != nil {
		sc.phase = gameOver
		return err
	}
	sc.game = next
	sb.WriteString(sc.game.Render())
	st := sc.solver.Stats()
	log.Debug().Uint64("nodes", st.Nodes).Dur("elapsed", st.Elapsed).Msg("computer-moved")

	switch {
	case sc.game.GameOver():
		sc.phase = gameOver
		sb.WriteString(messageComputerWins + "\n")
	case sc.game.TieGame():
		sc.phase = gameOver
		sb.WriteString(messageTie + "\n")
	default:
		sc.userTurn(sb)
	}
	return nil
}

func (sc *ShellController) place(cmd *shellcmd) (*Response, error) {
	switch sc.phase {
	case noGame, gameOver:
		return nil, errNoGame
	case humanGive:
		return nil, fmt.Errorf("choose a piece to give first: %v",
			sc.game.FormatPieces(sc.game.UnplacedPieces()))
	}
	if len(cmd.args) != 1 {
		return nil, errWrongArg
	}
	cell, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, fmt.Errorf("cell must be a number: %w", err)
	}
	next, err := sc.game.Place(cell, sc.game.PieceToPlay())
	if err != nil {
		return nil, err
	}
	sc.game = next

	var sb strings.Builder
	sb.WriteString(sc.game.Board().ToDisplayText())
	switch {
	case sc.game.GameOver():
		sc.phase = gameOver
		sb.WriteString(messageYouWin)
	case sc.game.TieGame():
		sc.phase = gameOver
		sb.WriteString(messageTie)
	default:
		sc.phase = humanGive
		fmt.Fprintf(&sb, "Designate next piece to play %v with: give <piece>",
			sc.game.FormatPieces(sc.game.UnplacedPieces()))
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) give(ctx context.Context, cmd *shellcmd) (*Response, error) {
	switch sc.phase {
	case noGame, gameOver:
		return nil, errNoGame
	case humanPlace:
		return nil, fmt.Errorf("place piece %d first", sc.game.PieceToPlay())
	}
	if len(cmd.args) != 1 {
		return nil, errWrongArg
	}
	p, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, fmt.Errorf("piece must be a number: %w", err)
	}
	if p < 0 || p >= sc.game.Dims().Pieces() {
		return nil, fmt.Errorf("%w: piece %d is out of range", game.ErrInvalidPiece, p)
	}
	if err := sc.game.SetPieceToPlay(board.Piece(p)); err != nil {
		return nil, err
	}
	var sb strings.Builder
	err = sc.computerTurn(ctx, &sb)
	return msg(strings.TrimRight(sb.String(), "\n")), err
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(strings.TrimRight(sc.game.Render(), "\n")), nil
}

func (sc *ShellController) pieces(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(fmt.Sprintf("Unplaced pieces: %v\nEmpty cells: %v",
		sc.game.FormatPieces(sc.game.UnplacedPieces()),
		sc.game.UnoccupiedCells())), nil
}

func (sc *ShellController) autoplay(ctx context.Context, cmd *shellcmd) (*Response, error) {
	n := sc.config.GetInt(config.ConfigAutoplay)
	if n <= 0 {
		n = defaultAutoplayGames
	}
	if len(cmd.args) > 1 {
		return nil, errWrongArg
	}
	if len(cmd.args) == 1 {
		var err error
		n, err = strconv.Atoi(cmd.args[0])
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("number of games must be a positive number: %v", cmd.args[0])
		}
	}
	var sb strings.Builder
	if err := RunAutoplay(ctx, sc.config, n, &sb); err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

// RunAutoplay plays n computer games as configured and writes the summary
// to w. Games go to the autoplay log file if one is set.
func RunAutoplay(ctx context.Context, cfg *config.Config, n int, w io.Writer) error {
	runner, err := automatic.NewGameRunner(cfg)
	if err != nil {
		return err
	}
	var logfile *os.File
	if path := cfg.GetString(config.ConfigAutoplayLog); path != "" {
		logfile, err = os.Create(path)
		if err != nil {
			return err
		}
		defer logfile.Close()
		log.Info().Str("path", path).Msg("writing-autoplay-log")
	}
	var summary *automatic.Summary
	if logfile != nil {
		summary, err = runner.Autoplay(ctx, n, cfg.GetInt(config.ConfigThreads), logfile)
	} else {
		summary, err = runner.Autoplay(ctx, n, cfg.GetInt(config.ConfigThreads), nil)
	}
	if err != nil {
		return err
	}
	return summary.Fprint(w)
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	return msg(strings.TrimRight(usageText, "\n")), nil
}
