// Package speech abstracts transcript capture as a stream of typed events.
// Real capture engines (browser speech recognition, cloud STT) live outside
// this repository; a Source only promises the event contract below.
package speech

import (
	"context"
	"strings"
)

// EventKind enumerates the transcript event variants.
type EventKind int

const (
	// Started signals that capture has begun.
	Started EventKind = iota
	// Partial carries an interim transcript fragment.
	Partial
	// Final carries the complete transcript for the current capture.
	Final
	// Error carries a capture failure. The stream may continue afterwards.
	Error
	// Ended signals that the stream is finished; no more events follow.
	Ended
)

func (k EventKind) String() string {
	switch k {
	case Started:
		return "started"
	case Partial:
		return "partial"
	case Final:
		return "final"
	case Error:
		return "error"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Event is one transcript stream item. Text is set for Partial and Final,
// Err for Error.
type Event struct {
	Kind EventKind
	Text string
	Err  error
}

// Source produces one capture's worth of transcript events. Events returns a
// channel that is closed after the Ended event. Stop requests an early end;
// it is safe to call more than once.
type Source interface {
	Events(ctx context.Context) (<-chan Event, error)
	Stop()
}

// Collect drains one capture from the source and returns the final
// transcript. Partial fragments are joined when no Final event arrives.
// A capture error aborts collection; context cancellation returns ctx.Err().
func Collect(ctx context.Context, src Source) (string, error) {
	events, err := src.Events(ctx)
	if err != nil {
		return "", err
	}

	var partials []string
	var final string

	for {
		if ctx.Err() != nil {
			src.Stop()
			return "", ctx.Err()
		}

		select {
		case <-ctx.Done():
			src.Stop()
			return "", ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return result(final, partials), nil
			}

			switch ev.Kind {
			case Partial:
				partials = append(partials, ev.Text)
			case Final:
				final = ev.Text
			case Error:
				src.Stop()
				return "", ev.Err
			case Ended:
				return result(final, partials), nil
			}
		}
	}
}

func result(final string, partials []string) string {
	if strings.TrimSpace(final) != "" {
		return strings.TrimSpace(final)
	}

	return strings.TrimSpace(strings.Join(partials, " "))
}
