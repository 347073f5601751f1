package speech

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
)

// ReaderSource adapts a line-oriented reader into the transcript event
// stream. Each line is a Partial; a blank line or EOF finishes the capture
// with a Final holding the joined text. The CLI uses it for typed answers
// and tests use it as a deterministic stand-in for a speech engine.
type ReaderSource struct {
	scanner  *bufio.Scanner
	stop     chan struct{}
	stopOnce sync.Once
}

// NewReaderSource wraps the reader. The source can serve multiple captures
// from the same reader, one Events call at a time.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{
		scanner: bufio.NewScanner(r),
		stop:    make(chan struct{}),
	}
}

// Events starts one capture and streams its events.
func (s *ReaderSource) Events(ctx context.Context) (<-chan Event, error) {
	out := make(chan Event)

	go func() {
		defer close(out)

		if !s.emit(ctx, out, Event{Kind: Started}) {
			return
		}

		var lines []string
		for s.scanner.Scan() {
			line := strings.TrimSpace(s.scanner.Text())
			if line == "" {
				break
			}

			lines = append(lines, line)
			if !s.emit(ctx, out, Event{Kind: Partial, Text: line}) {
				return
			}
		}

		if err := s.scanner.Err(); err != nil {
			s.emit(ctx, out, Event{Kind: Error, Err: err})
			return
		}

		if !s.emit(ctx, out, Event{Kind: Final, Text: strings.Join(lines, " ")}) {
			return
		}
		s.emit(ctx, out, Event{Kind: Ended})
	}()

	return out, nil
}

// Stop ends the current capture early.
func (s *ReaderSource) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// emit reports false when the capture should end without further events.
func (s *ReaderSource) emit(ctx context.Context, out chan<- Event, ev Event) bool {
	select {
	case <-ctx.Done():
		return false
	case <-s.stop:
		return false
	case out <- ev:
		return true
	}
}
