// Package framer implements the header-insertion state machine: it prefixes
// each upstream frame with an encoded header and forwards the payload
// unmodified, honoring ready/valid flow control on both sides.
//
// The machine advances in discrete ticks. Each tick the caller supplies the
// pending upstream word (if any) and the downstream readiness; Step returns
// the upstream acceptance and the downstream word for that same tick. All
// state (current state, shift register, held header) mutates exclusively
// inside Step, so the machine can be unit tested by feeding synthetic input
// sequences, or driven against real endpoints with Run.
package framer

import (
	"fmt"

	"github.com/arloliu/streamframe/errs"
	"github.com/arloliu/streamframe/header"
	"github.com/arloliu/streamframe/layout"
	"github.com/arloliu/streamframe/stream"
)

// State identifies the framer's position in the frame lifecycle.
type State uint8

const (
	// StateIdle accepts and discards words until a start-of-frame arrives,
	// then emits the first header word.
	StateIdle State = iota
	// StateSendHeader emits the remaining header words from the shift
	// register. The upstream word stays pending throughout.
	StateSendHeader
	// StateCopy forwards payload words verbatim until end-of-frame.
	StateCopy
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateSendHeader:
		return "SendHeader"
	case StateCopy:
		return "Copy"
	default:
		return "Unknown"
	}
}

// Input carries one tick's endpoint observations.
type Input struct {
	// Valid reports that Word holds a pending upstream word. A pending word
	// must be presented unchanged every tick until the framer asserts Ready.
	Valid bool
	Word  stream.Word
	// Meta is the frame metadata record; it is sampled on the tick the
	// start-of-frame word is first observed.
	Meta header.Record
	// Ready reports downstream readiness for this tick.
	Ready bool
}

// Output carries the framer's response for the same tick.
type Output struct {
	// Ready asserts upstream acceptance: when Input.Valid was also set, the
	// pending word was consumed this tick.
	Ready bool
	// Valid reports that Word is offered downstream. A transfer happened
	// when Input.Ready was also set.
	Valid bool
	Word  stream.Word
}

// Framer inserts an encoded header in front of each upstream frame.
//
// A Framer is built for one layout and word width, both immutable after
// New. Instances are independent; protocol layers are composed by chaining
// framers with different layouts. Not safe for concurrent use: the tick
// model is strictly sequential.
type Framer struct {
	enc         *header.Encoder
	wordBits    int
	headerWords int

	state   State
	reg     *shiftReg
	pending header.Value

	logger   logger
	recorder recorder
}

// New builds a framer for the given layout and word width.
//
// Construction fails when wordBits is not a multiple of 8 in [8, 64], when
// the layout's bit length is not an exact multiple of wordBits, or when the
// header spans fewer than two words (one word goes out while leaving Idle
// and at least one more must be shifted explicitly, so a shorter header has
// no valid schedule).
func New(l *layout.Layout, wordBits int, opts ...Option) (*Framer, error) {
	if wordBits < 8 || wordBits > 64 || wordBits%8 != 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidWordWidth, wordBits)
	}
	if l.Bits()%wordBits != 0 {
		return nil, fmt.Errorf("%w: %d header bits, %d-bit words", errs.ErrHeaderNotWordMultiple, l.Bits(), wordBits)
	}

	words := l.Bits() / wordBits
	if words < 2 {
		return nil, fmt.Errorf("%w: %d-bit header is %d %d-bit words", errs.ErrHeaderTooShort, l.Bits(), words, wordBits)
	}

	f := &Framer{
		enc:         header.NewEncoder(l),
		wordBits:    wordBits,
		headerWords: words,
		state:       StateIdle,
		reg:         newShiftReg(l.LengthBytes(), wordBits),
		logger:      nopLogger{},
	}

	if err := applyOptions(f, opts); err != nil {
		return nil, err
	}

	return f, nil
}

// State returns the current machine state.
func (f *Framer) State() State {
	return f.state
}

// WordBits returns the configured word width in bits.
func (f *Framer) WordBits() int {
	return f.wordBits
}

// HeaderWords returns the number of words the header occupies.
func (f *Framer) HeaderWords() int {
	return f.headerWords
}

// Step advances the machine by one tick.
//
// Outputs are a function of the prior state and in; state mutates only when
// the corresponding handshake held on this tick. The only error path is a
// metadata record missing a layout field, in which case no state changes
// and the start-of-frame word is left pending.
func (f *Framer) Step(in Input) (Output, error) {
	var out Output

	switch f.state {
	case StateIdle:
		if !in.Valid || !in.Word.Start {
			// Words between frames carry nothing; drop them.
			out.Ready = true
			break
		}

		if f.pending == nil {
			v, err := f.enc.Encode(in.Meta)
			if err != nil {
				return Output{}, err
			}
			f.pending = v
		}

		// The first header word is held, not re-derived, until accepted.
		out.Valid = true
		out.Word = stream.Word{Data: f.pending.Word(0, f.wordBits), Start: true}
		if in.Ready {
			f.emit(out.Word)
			f.reg.load(f.pending)
			f.pending = nil
			f.setState(StateSendHeader)
		}

	case StateSendHeader:
		threshold := f.headerWords - 2
		out.Valid = in.Valid
		out.Word = stream.Word{
			Data: f.reg.peek(1),
			End:  in.Word.End && f.reg.count == threshold,
		}

		if out.Valid && in.Ready {
			f.emit(out.Word)
			last := f.reg.count == threshold
			f.reg.shift()

			switch {
			case last && out.Word.End:
				// Degenerate single-word payload: the pending word's end
				// marker rode out on the final header word, so consume it
				// here and skip Copy entirely.
				out.Ready = true
				f.setState(StateIdle)
			case last:
				f.setState(StateCopy)
			}
		}

	case StateCopy:
		out.Valid = in.Valid
		out.Word = stream.Word{Data: in.Word.Data, End: in.Word.End, Error: in.Word.Error}

		if out.Valid && in.Ready {
			f.emit(out.Word)
			out.Ready = true
			if in.Word.End {
				f.setState(StateIdle)
			}
		}
	}

	return out, nil
}

// Reset abandons any in-flight frame and returns to Idle. This is the only
// way to recover from an upstream that dies mid-frame; there is no timeout
// primitive.
func (f *Framer) Reset() {
	f.pending = nil
	f.reg.reset()
	f.setState(StateIdle)
}

// Run drives the framer between src and sink until the source reports done
// and the machine has returned to Idle. Step errors abort the run. The sink
// must eventually assert ready while output is offered; Run has no timeout,
// mirroring the handshake protocol itself.
func (f *Framer) Run(src stream.Source, sink stream.Sink) error {
	for {
		w, ok := src.Word()
		in := Input{Valid: ok, Word: w, Ready: sink.Ready()}
		if ok && w.Start {
			in.Meta = src.Meta()
		}

		out, err := f.Step(in)
		if err != nil {
			return err
		}

		if out.Valid && in.Ready {
			sink.Accept(out.Word)
		}
		if out.Ready && ok {
			src.Advance()
		}

		if f.state == StateIdle && src.Done() {
			return nil
		}
	}
}

// emit hooks an accepted downstream word into the optional recorder.
func (f *Framer) emit(w stream.Word) {
	if f.recorder != nil {
		f.recorder.Record(w)
	}
}

func (f *Framer) setState(next State) {
	if next != f.state {
		f.logger.transition(f.state, next)
	}
	f.state = next
}
