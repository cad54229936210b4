package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/folderplay/internal/playback"
	"github.com/llehouerou/folderplay/internal/player"
	"github.com/llehouerou/folderplay/internal/tracklist"
)

// WatchEvents waits for the next controller event. The handler for each
// resulting message issues WatchEvents again.
func WatchEvents(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return StateChangedMsg(e)
		case e := <-sub.TrackChanged:
			return TrackChangedMsg(e)
		case e := <-sub.TracksChanged:
			return TracksChangedMsg(e)
		case r := <-sub.ReadoutChanged:
			return ReadoutMsg(r)
		case e := <-sub.Error:
			return PlaybackErrorMsg(e)
		case <-sub.Done:
			return SubscriptionClosedMsg{}
		}
	}
}

// LoadFolderCmd scans folder for playable files.
func LoadFolderCmd(folder string) tea.Cmd {
	return func() tea.Msg {
		tracks, err := tracklist.Load(folder)
		return FolderLoadedMsg{Folder: folder, Tracks: tracks, Err: err}
	}
}

// ReadTrackInfoCmd reads the tags of the track at path.
func ReadTrackInfoCmd(path string) tea.Cmd {
	return func() tea.Msg {
		info, err := player.ReadTrackInfo(path)
		return TrackInfoMsg{Path: path, Info: info, Err: err}
	}
}

// WatchFolder waits for the next reload from w.
func WatchFolder(w *tracklist.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	folder := w.Folder()
	return waitForChannel(w.Updates(), func(tracks []tracklist.Track, ok bool) tea.Msg {
		if !ok {
			return WatcherClosedMsg{Folder: folder}
		}
		return FolderChangedMsg{Folder: folder, Tracks: tracks}
	})
}

// waitForChannel receives one value from ch and converts it to a message.
// ok is false once ch is closed.
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}
