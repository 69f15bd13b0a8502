// Package shell is the interactive Trio! prompt: a human plays the
// computer, one command at a time.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/trio/config"
	"github.com/domino14/trio/game"
	"github.com/domino14/trio/solver/alphabeta"
)

const (
	messageComputersTurn = "Computer's turn."
	messageComputerWins  = "Computer wins."
	messageGoodbye       = "Goodbye. Thanks for playing Trio!."
	messageUsersTurn     = "User's turn."
	messageWelcome       = "Welcome to Trio!"
	messageYouWin        = "User wins."
	messageTie           = "Tie game."
)

var (
	errNoData   = errors.New("no data in line")
	errNoGame   = errors.New("no game in progress; start one with new")
	errExit     = errors.New("exit requested")
	errWrongArg = errors.New("wrong number of arguments")
)

type phase int

const (
	noGame phase = iota
	humanPlace
	humanGive
	gameOver
)

type shellcmd struct {
	cmd  string
	args []string
}

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

type ShellController struct {
	l      *readline.Instance
	out    io.Writer
	config *config.Config

	rules  *game.Rules
	solver *alphabeta.Solver
	game   *game.GameState
	phase  phase
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

var completer = readline.NewPrefixCompleter(
	readline.PcItem("new", readline.PcItem("you"), readline.PcItem("computer")),
	readline.PcItem("place"),
	readline.PcItem("give"),
	readline.PcItem("show"),
	readline.PcItem("pieces"),
	readline.PcItem("autoplay"),
	readline.PcItem("help"),
	readline.PcItem("exit"),
)

func NewShellController(cfg *config.Config) (*ShellController, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mtrio>\033[0m ",
		HistoryFile:     cfg.GetString(config.ConfigHistoryFile),
		AutoComplete:    completer,
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc, err := newShellController(cfg, l.Stdout())
	if err != nil {
		l.Close()
		return nil, err
	}
	sc.l = l
	return sc, nil
}

func newShellController(cfg *config.Config, out io.Writer) (*ShellController, error) {
	rules, err := cfg.Rules()
	if err != nil {
		return nil, err
	}
	solver := alphabeta.NewSolver(
		alphabeta.WithDepth(cfg.GetInt(config.ConfigDepth)),
		alphabeta.WithThreads(cfg.GetInt(config.ConfigThreads)),
		alphabeta.WithOpeningBook(cfg.GetBool(config.ConfigOpeningBook)),
	)
	return &ShellController{
		out:    out,
		config: cfg,
		rules:  rules,
		solver: solver,
	}, nil
}

func (sc *ShellController) showMessage(msg string) {
	io.WriteString(sc.out, msg)
	io.WriteString(sc.out, "\n")
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: strings.ToLower(fields[0])}
	if len(fields) > 1 {
		cmd.args = fields[1:]
	}
	return cmd, nil
}

// Execute runs one command line and returns what it printed.
func (sc *ShellController) Execute(ctx context.Context, line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("cmd", cmd.cmd).Strs("args", cmd.args).Msg("shell-command")
	switch cmd.cmd {
	case "new":
		return sc.newGame(ctx, cmd)
	case "place":
		return sc.place(cmd)
	case "give":
		return sc.give(ctx, cmd)
	case "show":
		return sc.show(cmd)
	case "pieces":
		return sc.pieces(cmd)
	case "autoplay":
		return sc.autoplay(ctx, cmd)
	case "help":
		return sc.help(cmd)
	case "exit", "quit":
		return msg(messageGoodbye), errExit
	default:
		return nil, fmt.Errorf("command %v not found", cmd.cmd)
	}
}

func (sc *ShellController) Loop(ctx context.Context, sig chan os.Signal) {
	defer sc.l.Close()
	sc.showMessage(messageWelcome)
	if sc.config.GetBool(config.ConfigVerbose) {
		sc.showMessage("Playing in verbose mode")
	}

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		resp, err := sc.Execute(ctx, line)
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
		if errors.Is(err, errExit) {
			sig <- syscall.SIGINT
			break
		}
		if err != nil {
			sc.showError(err)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}
