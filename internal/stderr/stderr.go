//go:build !windows

// Package stderr captures output that C libraries (ALSA, the audio device
// layer) write directly to file descriptor 2, bypassing os.Stderr. Without
// it those lines would corrupt the TUI.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"
)

var (
	mu         sync.Mutex
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	readerDone chan struct{}
	started    bool
)

// Start begins capturing stderr output. Each non-empty captured line is
// passed to onLine; a nil onLine logs the line at warn level.
//
// Must be called early in main(), before the audio device is initialized.
// On error the program can continue uncaptured. Do not combine with a
// logger that writes to stderr: its output would be captured and re-logged.
func Start(onLine func(string)) error {
	mu.Lock()
	defer mu.Unlock()

	if started {
		return nil
	}
	if onLine == nil {
		onLine = logLine
	}

	r, w, err := os.Pipe()
	if err != nil {
		return errors.Wrap(err, "create stderr pipe")
	}

	orig, err := unix.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return errors.Wrap(err, "dup stderr")
	}

	// Redirect stderr (fd 2) to the pipe's write end
	if err := unix.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		_ = unix.Close(orig)
		r.Close()
		w.Close()
		return errors.Wrap(err, "redirect stderr")
	}

	origStderr = orig
	pipeRead = r
	pipeWrite = w
	readerDone = make(chan struct{})
	started = true

	go forward(r, onLine, readerDone)
	return nil
}

func forward(r *os.File, onLine func(string), done chan<- struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			onLine(line)
		}
	}
}

func logLine(line string) {
	zlog.Warn().Str("source", "stderr").Msg(line)
}

// WriteOriginal writes directly to the original stderr, bypassing capture.
// Useful for fatal errors that must be visible even while the TUI runs.
func WriteOriginal(msg string) {
	mu.Lock()
	fd := origStderr
	mu.Unlock()

	if fd < 0 {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = unix.Write(fd, []byte(msg))
}

// Stop restores the original stderr and waits for pending lines to be
// forwarded. Should be called on program exit.
func Stop() {
	mu.Lock()
	defer mu.Unlock()

	if !started {
		return
	}

	_ = unix.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = unix.Close(origStderr)
	origStderr = -1

	// fd 2 no longer refers to the pipe, so closing our write end delivers EOF.
	pipeWrite.Close()
	<-readerDone
	pipeRead.Close()

	started = false
}
