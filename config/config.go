// Package config loads settings from flags and PYLOS_* environment
// variables, and the named search presets.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigLogLevel            = "log-level"
	ConfigPreset              = "preset"
	ConfigPresetsPath         = "presets-path"
	ConfigSearchDepth         = "search-depth"
	ConfigContempt            = "contempt"
	ConfigTTEnabled           = "tt-enabled"
	ConfigTTSizePower         = "tt-size-power"
	ConfigRemovalPolicy       = "removal-policy"
	ConfigArenaGames          = "arena-games"
	ConfigArenaThreads        = "arena-threads"
	ConfigArenaMaxTurns       = "arena-max-turns"
	ConfigArenaRandomOpenings = "arena-random-openings"
	ConfigArenaOutput         = "arena-output"
	ConfigArenaSeeds          = "arena-seeds"
	ConfigPlayer1             = "player1"
	ConfigPlayer2             = "player2"
	ConfigCPUProfile          = "cpu-profile"
)

type Config struct {
	*viper.Viper
}

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("pylos", pflag.ContinueOnError)
	fs.String(ConfigLogLevel, "info", "debug, info or disabled")
	fs.String(ConfigPreset, "default", "search preset for the shell's ai command")
	fs.String(ConfigPresetsPath, "", "optional YAML file with extra or replacement presets")
	fs.Int(ConfigSearchDepth, 0, "override the preset's search depth (0 keeps it)")
	fs.Float64(ConfigContempt, 0.25, "override the preset's contempt")
	fs.Bool(ConfigTTEnabled, true, "override whether presets use a transposition table")
	fs.Int(ConfigTTSizePower, 20, "transposition table size as a power of two")
	fs.String(ConfigRemovalPolicy, "", "override the removal policy: mobility or search")
	fs.Int(ConfigArenaGames, 100, "number of arena games")
	fs.Int(ConfigArenaThreads, 0, "concurrent arena games (0 uses all CPUs)")
	fs.Int(ConfigArenaMaxTurns, 200, "turns before an arena game is drawn")
	fs.Int(ConfigArenaRandomOpenings, 2, "random plies at the start of each arena game")
	fs.String(ConfigArenaOutput, "", "file to write the per-turn CSV log to")
	fs.String(ConfigArenaSeeds, "", "file of per-game seeds; created if missing")
	fs.String(ConfigPlayer1, "default", "preset of the first arena player")
	fs.String(ConfigPlayer2, "random", "preset of the second arena player")
	fs.String(ConfigCPUProfile, "", "write a CPU profile of the shell session to this file")
	return fs
}

// Load parses args and binds the result together with the environment.
// Unknown flags are an error.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	fs := flagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.SetEnvPrefix("pylos")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	return c.BindPFlags(fs)
}

// DefaultConfig has every setting at its default, ignoring the
// environment.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	if err := c.BindPFlags(flagSet()); err != nil {
		panic(err)
	}
	return c
}
