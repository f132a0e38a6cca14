package framer

import (
	"github.com/rs/zerolog"

	"github.com/arloliu/streamframe/internal/options"
	"github.com/arloliu/streamframe/stream"
)

// Option is a functional option for configuring a Framer at construction
// time. The framing configuration itself (layout, word width) is not an
// option; it is part of New's signature and immutable.
type Option = options.Option[*Framer]

func applyOptions(f *Framer, opts []Option) error {
	return options.Apply(f, opts...)
}

// recorder receives every word the framer emits downstream.
// *trace.Recorder satisfies it.
type recorder interface {
	Record(stream.Word)
}

// WithRecorder wires a recorder that observes every accepted downstream
// word, typically a *trace.Recorder building a capture file.
func WithRecorder(rec interface{ Record(stream.Word) }) Option {
	return options.NoError(func(f *Framer) {
		f.recorder = rec
	})
}

// logger receives state transition events.
type logger interface {
	transition(from, to State)
}

type nopLogger struct{}

func (nopLogger) transition(State, State) {}

type zerologLogger struct {
	log zerolog.Logger
}

func (l zerologLogger) transition(from, to State) {
	l.log.Trace().Stringer("from", from).Stringer("to", to).Msg("framer transition")
}

// WithLogger logs state transitions at trace level. The library logs
// nothing by default.
func WithLogger(log zerolog.Logger) Option {
	return options.NoError(func(f *Framer) {
		f.logger = zerologLogger{log: log}
	})
}
