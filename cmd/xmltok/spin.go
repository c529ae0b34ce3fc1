package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// spinner shows terminal progress while an http(s) fetch in openInput is
// in flight, since documents beyond a spinner-worthy round trip are
// exactly the ones tokenize/browse are meant to avoid loading fully
// before they'd get to show anything.
type spinner struct {
	frames  []string
	message string

	mu      sync.Mutex
	running bool

	stop   sync.Once
	ticker *time.Ticker
	done   chan struct{}
}

func newSpinner(message string) *spinner {
	return &spinner{
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		message: strings.TrimRight(strings.TrimSpace(message), "."),
		ticker:  time.NewTicker(time.Millisecond * 90),
		done:    make(chan struct{}),
	}
}

func (s *spinner) run(fn func() error) error {
	s.start()
	defer s.stop_()
	return fn()
}

func (s *spinner) stop_() {
	s.stop.Do(func() {
		close(s.done)
		s.ticker.Stop()
		io.WriteString(os.Stderr, "\x1b[0G\x1b[2K\x1b[0G")
	})
}

func (s *spinner) start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	go func() {
		for i := 0; ; i++ {
			select {
			case <-s.ticker.C:
				fmt.Fprintf(os.Stderr, "\r%s %s...", s.frames[i%len(s.frames)], s.message)
			case <-s.done:
				return
			}
		}
	}()
}
