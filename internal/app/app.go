package app

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/folderplay/internal/keymap"
	"github.com/llehouerou/folderplay/internal/playback"
	"github.com/llehouerou/folderplay/internal/player"
	"github.com/llehouerou/folderplay/internal/state"
	"github.com/llehouerou/folderplay/internal/tracklist"
	"github.com/llehouerou/folderplay/internal/ui/folderprompt"
	"github.com/llehouerou/folderplay/internal/ui/trackview"
)

const volumeStep = 0.05

// Options wires the model to the rest of the program.
type Options struct {
	Controller *playback.Controller
	Mixer      Mixer
	State      state.Interface
	Keys       *keymap.Resolver // nil means keymap.Default

	// Folder is the folder to open at start; see ResolveFolder.
	Folder string
	// SeekStep is the fraction of the track moved by the seek keys.
	SeekStep float64
	// WatchFolder reloads the list when files are added or removed.
	WatchFolder bool
}

// Model is the application state.
type Model struct {
	ctrl     *playback.Controller
	sub      *playback.Subscription
	mixer    Mixer
	state    state.Interface
	keys     *keymap.Resolver
	seekStep float64
	watch    bool

	folder  string
	watcher *tracklist.Watcher
	// pending holds a watcher reload that arrived during playback.
	pending []tracklist.Track
	// restoreName is the saved cursor track, applied to the first list.
	restoreName string

	tracks  trackview.Model
	prompt  folderprompt.Model
	readout playback.Readout
	info    *player.TrackInfo
	status  string
	help    bool

	width  int
	height int
}

// New creates the model and subscribes it to the controller.
func New(opts Options) Model {
	keys := opts.Keys
	if keys == nil {
		keys = keymap.Default
	}

	m := Model{
		ctrl:     opts.Controller,
		sub:      opts.Controller.Subscribe(),
		mixer:    opts.Mixer,
		state:    opts.State,
		keys:     keys,
		seekStep: opts.SeekStep,
		watch:    opts.WatchFolder,
		folder:   opts.Folder,
		tracks:   trackview.New(),
		prompt:   folderprompt.New(),
		readout:  opts.Controller.Readout(),
	}

	if saved, err := opts.State.GetFolder(); err != nil {
		zlog.Warn().Err(err).Msg("load saved folder state")
	} else if saved != nil && saved.Folder == opts.Folder {
		m.restoreName = saved.SelectedName
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(LoadFolderCmd(m.folder), WatchEvents(m.sub))
}

// Close releases the folder watcher. The controller is owned by the caller.
func (m Model) Close() {
	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			zlog.Debug().Err(err).Msg("close folder watcher")
		}
	}
}

// ResolveFolder picks the folder to open: the command line argument, then
// the saved folder if it still exists, then the configured folder, then
// the working directory.
func ResolveFolder(arg string, saved *state.FolderState, configured string) string {
	if arg != "" {
		return resolvePath(arg)
	}
	if saved != nil && saved.Folder != "" {
		if fi, err := os.Stat(saved.Folder); err == nil && fi.IsDir() {
			return saved.Folder
		}
	}
	if configured != "" {
		return resolvePath(configured)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
