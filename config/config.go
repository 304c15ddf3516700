package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wordwheel/wheel/game"
)

const (
	ConfigDataPath            = "data-path"
	ConfigWheelFile           = "wheel-file"
	ConfigPhrasesFile         = "phrases-file"
	ConfigLogDir              = "log-dir"
	ConfigPlayers             = "players"
	ConfigVowelCost           = "vowel-cost"
	ConfigSolveBonus          = "solve-bonus"
	ConfigSeed                = "seed"
	ConfigClearScreen         = "clear-screen"
	ConfigReadlineHistoryFile = "readline-history-file"
	ConfigDebug               = "debug"
	ConfigFile                = "config"

	DefaultWheelFile   = "wheel.json"
	DefaultPhrasesFile = "phrases.json"
	DefaultPlayers     = "'ChatGPTv4 1' 'Google Bert(aka Bard) 2' LaMMA"
)

var ErrNoPlayers = errors.New("at least one player is required")

type Config struct {
	*viper.Viper
}

func New() *Config {
	return &Config{Viper: viper.New()}
}

// Load reads, in increasing priority: defaults, an optional config file,
// a .env file, WHEEL_* environment variables and finally command-line
// flags.
func (c *Config) Load(args []string) error {
	if c.Viper == nil {
		c.Viper = viper.New()
	}
	// A missing .env file is fine.
	_ = godotenv.Load()

	fs := pflag.NewFlagSet("wheel", pflag.ContinueOnError)
	fs.String(ConfigDataPath, "./data", "directory holding wheel and phrase files")
	fs.String(ConfigWheelFile, "", "wheel definition (json or yaml); defaults to <data-path>/"+DefaultWheelFile+" or the built-in wheel")
	fs.String(ConfigPhrasesFile, "", "phrase book (json or yaml); defaults to <data-path>/"+DefaultPhrasesFile+" or the built-in phrases")
	fs.String(ConfigLogDir, ".", "directory where game logs are written")
	fs.String(ConfigPlayers, DefaultPlayers, "shell-quoted list of player names, in turn order")
	fs.Int(ConfigVowelCost, game.DefaultVowelCost, "points it costs to buy a vowel")
	fs.Int(ConfigSolveBonus, game.DefaultSolveBonus, "bonus for solving the puzzle")
	fs.String(ConfigSeed, "", "seed for a reproducible game; empty for a random one")
	fs.Bool(ConfigClearScreen, false, "clear the terminal before every turn")
	fs.String(ConfigReadlineHistoryFile, "", "file to keep readline history in")
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigFile, "", "optional config file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.SetEnvPrefix("wheel")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cfgFile := c.GetString(ConfigFile); cfgFile != "" {
		c.SetConfigFile(cfgFile)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return nil
}

// AdjustRelativePaths resolves relative data and log paths against
// basePath, usually the directory of the executable. Paths that exist
// relative to the working directory are left alone.
func (c *Config) AdjustRelativePaths(basePath string) {
	for _, key := range []string{ConfigDataPath, ConfigWheelFile, ConfigPhrasesFile, ConfigLogDir} {
		p := c.GetString(key)
		if p == "" || filepath.IsAbs(p) {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			continue
		}
		adjusted := filepath.Join(basePath, p)
		log.Debug().Str("key", key).Str("path", adjusted).Msg("adjusted-relative-path")
		c.Set(key, adjusted)
	}
}

// ContentPath returns the file to load for key (wheel or phrases). An
// explicit setting wins; otherwise the default file in the data path is
// used if it exists. An empty result means the built-in content.
func (c *Config) ContentPath(key string) string {
	if p := c.GetString(key); p != "" {
		return p
	}
	def := DefaultWheelFile
	if key == ConfigPhrasesFile {
		def = DefaultPhrasesFile
	}
	p := filepath.Join(c.GetString(ConfigDataPath), def)
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

// PlayerNames splits the players setting the way a shell would, so names
// with spaces can be quoted.
func (c *Config) PlayerNames() ([]string, error) {
	names, err := shellquote.Split(c.GetString(ConfigPlayers))
	if err != nil {
		return nil, fmt.Errorf("parsing %v: %w", ConfigPlayers, err)
	}
	if len(names) == 0 {
		return nil, ErrNoPlayers
	}
	return names, nil
}

// Rules returns the scoring rules from the settings.
func (c *Config) Rules() game.Rules {
	return game.Rules{
		VowelCost:  c.GetInt(ConfigVowelCost),
		SolveBonus: c.GetInt(ConfigSolveBonus),
	}
}

// SanitizedSettings returns the settings in a form suitable for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
