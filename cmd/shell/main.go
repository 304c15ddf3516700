package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wordwheel/wheel/config"
	"github.com/wordwheel/wheel/content"
	"github.com/wordwheel/wheel/history"
	"github.com/wordwheel/wheel/shell"
)

var (
	GitVersion string
)

//go:embed wheel.txt
var wheelbanner string

func main() {
	// Determine the directory of the executable. We will use this
	// directory to find the data files if an absolute path is not
	// provided for these!
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)
	fmt.Println(wheelbanner)
	fmt.Println(GitVersion)

	cfg := config.New()
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg.AdjustRelativePaths(exPath)

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
	log.Debug().Interface("config", cfg.SanitizedSettings()).Msg("loaded-config")

	store, err := content.Load(
		cfg.ContentPath(config.ConfigWheelFile),
		cfg.ContentPath(config.ConfigPhrasesFile),
		content.NewRandomizer(cfg.GetString(config.ConfigSeed)))
	if err != nil {
		log.Fatal().Err(err).Msg("could not load game content")
	}

	hist := history.NewFileLog(cfg.GetString(config.ConfigLogDir), time.Now())
	log.Info().Str("path", hist.Path()).Msg("game-log")

	sc, err := shell.NewShellController(cfg, store, hist)
	if err != nil {
		log.Fatal().Err(err).Msg("could not start shell")
	}
	if err := sc.NewGame(); err != nil {
		log.Fatal().Err(err).Msg("could not start game")
	}
	// Scores get written however we leave: the game ends, the input ends,
	// or a signal comes in while a player is thinking.
	defer sc.Cleanup()

	done := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		err := sc.Loop()
		if errors.Is(err, shell.ErrQuit) {
			log.Info().Msg("game abandoned")
		} else if err != nil {
			log.Error().Err(err).Msg("game loop exited")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-sig:
		log.Info().Msg("got quit signal...")
	}
}
