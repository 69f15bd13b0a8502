package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/domino14/trio/board"
	"github.com/domino14/trio/game"
)

const (
	ConfigProfile      = "profile"
	ConfigVerbose      = "verbose"
	ConfigDepth        = "depth"
	ConfigThreads      = "threads"
	ConfigOpeningBook  = "opening-book"
	ConfigDebug        = "debug"
	ConfigAutoplay     = "autoplay"
	ConfigOpponent     = "opponent"
	ConfigAutoplayLog  = "autoplay-log"
	ConfigConfigFile   = "config-file"
	ConfigHistoryFile  = "history-file"
	ConfigNearWinBonus = "weights.near-win-bonus"
	ConfigEarlyThreat  = "weights.early-threat-penalty"
)

// Config wraps a viper instance. Settings come from, in order of priority:
// command-line flags, TRIO_* environment variables, an optional config
// file, and the defaults below.
type Config struct {
	*viper.Viper
	// Args are the positional arguments left after flag parsing.
	Args []string
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigProfile, game.ProfileTrio)
	c.SetDefault(ConfigVerbose, false)
	c.SetDefault(ConfigDepth, 0)
	c.SetDefault(ConfigThreads, 1)
	c.SetDefault(ConfigOpeningBook, true)
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigAutoplay, 0)
	c.SetDefault(ConfigOpponent, "random")
	c.SetDefault(ConfigAutoplayLog, "")
	c.SetDefault(ConfigHistoryFile, "/tmp/trio_readline.tmp")
}

// reset starts over from a fresh viper instance holding the defaults and
// the TRIO_* environment.
func (c *Config) reset() {
	c.Viper = viper.New()
	c.setDefaults()
	c.SetEnvPrefix("trio")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	c.AutomaticEnv()
}

// DefaultConfig returns a config with defaults and environment only. It is
// handy for tests.
func DefaultConfig() *Config {
	c := &Config{}
	c.reset()
	return c
}

// Load parses command-line arguments on top of the defaults.
func (c *Config) Load(args []string) error {
	c.reset()

	fs := pflag.NewFlagSet("trio", pflag.ContinueOnError)
	fs.String(ConfigProfile, game.ProfileTrio, "rules profile: "+strings.Join(game.ProfileNames(), ", "))
	fs.BoolP(ConfigVerbose, "v", false, "trace every searched state and alpha/beta update")
	fs.Int(ConfigDepth, 0, "search cutoff depth; 0 uses the profile's depth")
	fs.Int(ConfigThreads, 1, "goroutines for the root of the search")
	fs.Bool(ConfigOpeningBook, true, "use the stored first move on the reference board")
	fs.Bool(ConfigDebug, false, "debug logging")
	fs.Int(ConfigAutoplay, 0, "play this many computer games and exit")
	fs.String(ConfigOpponent, "random", "autoplay opponent: random or engine")
	fs.String(ConfigAutoplayLog, "", "write autoplay games as YAML to this file")
	fs.String(ConfigConfigFile, "", "optional YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.Args = fs.Args()
	// A lone "v" argument also turns on verbose mode.
	for _, a := range c.Args {
		if a == "v" {
			c.Set(ConfigVerbose, true)
		}
	}

	if cf := c.GetString(ConfigConfigFile); cf != "" {
		c.SetConfigFile(cf)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", cf, err)
		}
	}
	return nil
}

// Rules builds the rules for the configured profile on the reference
// board. Weights set in the config file replace the profile's.
func (c *Config) Rules() (*game.Rules, error) {
	r, err := game.NewRules(c.GetString(ConfigProfile), board.Reference)
	if err != nil {
		return nil, err
	}
	if !c.IsSet(ConfigNearWinBonus) && !c.IsSet(ConfigEarlyThreat) {
		return r, nil
	}
	w := r.Weights()
	if c.IsSet(ConfigNearWinBonus) {
		w.NearWinBonus = c.GetInt(ConfigNearWinBonus)
	}
	if c.IsSet(ConfigEarlyThreat) {
		w.EarlyThreatPenalty = c.GetInt(ConfigEarlyThreat)
	}
	return game.NewCustomRules(r.Name()+"-custom", r.Dims(), r.Variant(), w,
		r.CutoffDepth(), r.OpeningBook())
}

// SanitizedSettings is safe to log.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
