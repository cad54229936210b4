// Package main is the folderplay entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/folderplay/internal/app"
	"github.com/llehouerou/folderplay/internal/config"
	"github.com/llehouerou/folderplay/internal/logger"
	"github.com/llehouerou/folderplay/internal/mpris"
	"github.com/llehouerou/folderplay/internal/playback"
	"github.com/llehouerou/folderplay/internal/player"
	"github.com/llehouerou/folderplay/internal/state"
	"github.com/llehouerou/folderplay/internal/stderr"
)

var (
	cli        = kingpin.New("folderplay", "Play the audio files of a folder in the terminal")
	folderArg  = cli.Arg("folder", "Folder to play (default: last folder, then music_folder, then the working directory)").String()
	configPath = cli.Flag("config", "Path to config file").Short('c').String()
	verbose    = cli.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = cli.Flag("logfile", "Path to log file").String()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	kingpin.MustParse(cli.Parse(os.Args[1:]))

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "folderplay: %v\n", err)
		os.Exit(1)
	}

	logCfg := logger.Config{
		Output:     "file",
		Level:      cfg.Log.Level,
		File:       cfg.LogFile(),
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}
	if *verbose {
		logCfg.Level = "debug"
	}
	if *logfile != "" {
		logCfg.File = config.ExpandPath(*logfile)
	}
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "folderplay: init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	// Audio backends write to fd 2 directly; keep it off the TUI.
	if err := stderr.Start(nil); err != nil {
		zlog.Warn().Err(err).Msg("capture stderr")
	}
	defer stderr.Stop()

	if err := run(cfg); err != nil {
		zlog.Error().Err(err).Msg("folderplay exited with error")
		stderr.WriteOriginal(fmt.Sprintf("folderplay: %v\n", err))
		stderr.Stop()
		logger.Close()
		os.Exit(1)
	}
}

// run executes the program. Using a separate function ensures deferred
// cleanup runs before main exits.
func run(cfg *config.Config) error {
	stateMgr, err := state.Open()
	if err != nil {
		return errors.Wrap(err, "open state")
	}
	defer func() {
		if err := stateMgr.Close(); err != nil {
			zlog.Warn().Err(err).Msg("close state")
		}
	}()

	speaker := player.NewSpeaker()
	speaker.SetVolume(cfg.Volume)
	if saved, err := stateMgr.GetVolume(); err != nil {
		zlog.Warn().Err(err).Msg("load saved volume")
	} else if saved != nil {
		speaker.SetVolume(saved.Volume)
		speaker.SetMuted(saved.Muted)
	}

	ctrl := playback.New(speaker)
	defer func() { _ = ctrl.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ctrl.Run(ctx, cfg.TickInterval)

	if cfg.MPRIS {
		adapter, err := mpris.New(ctrl, speaker)
		if err != nil {
			zlog.Warn().Err(err).Msg("start mpris")
		} else {
			defer func() { _ = adapter.Close() }()
		}
	}

	saved, err := stateMgr.GetFolder()
	if err != nil {
		zlog.Warn().Err(err).Msg("load saved folder")
	}
	folder := app.ResolveFolder(*folderArg, saved, cfg.MusicFolder)

	zlog.Info().
		Str("folder", folder).
		Dur("tick", cfg.TickInterval).
		Bool("watch", cfg.WatchFolder).
		Msg("starting")

	m := app.New(app.Options{
		Controller:  ctrl,
		Mixer:       speaker,
		State:       stateMgr,
		Folder:      folder,
		SeekStep:    cfg.SeekStep,
		WatchFolder: cfg.WatchFolder,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if fm, ok := final.(app.Model); ok {
		fm.Close()
	}
	if err != nil {
		return errors.Wrap(err, "run program")
	}
	return nil
}
