package stream

import "github.com/arloliu/streamframe/header"

// SliceSource replays a fixed word sequence. It implements Source with
// hold-stable semantics and supports an optional per-tick valid pattern for
// exercising upstream stalls.
//
// Metadata records are consumed one per frame: the first record applies to
// the first frame, and each consumed End word moves to the next record. The
// last record is reused when more frames than records are supplied.
type SliceSource struct {
	words   []Word
	metas   []header.Record
	validFn func(tick int) bool

	pos   int
	frame int
	tick  int
}

// NewSliceSource creates a source over the given words. At least one
// metadata record is required per distinct header layout use; passing a
// single record covers any number of frames.
func NewSliceSource(words []Word, metas ...header.Record) *SliceSource {
	return &SliceSource{words: words, metas: metas}
}

// SetValidPattern installs a per-tick valid predicate. Ticks where fn
// returns false present no word even if one is pending. A nil pattern (the
// default) is always valid.
func (s *SliceSource) SetValidPattern(fn func(tick int) bool) {
	s.validFn = fn
}

// Word implements Source.
func (s *SliceSource) Word() (Word, bool) {
	t := s.tick
	s.tick++

	if s.pos >= len(s.words) {
		return Word{}, false
	}
	if s.validFn != nil && !s.validFn(t) {
		return Word{}, false
	}

	return s.words[s.pos], true
}

// Meta implements Source.
func (s *SliceSource) Meta() header.Record {
	if len(s.metas) == 0 {
		return nil
	}
	if s.frame >= len(s.metas) {
		return s.metas[len(s.metas)-1]
	}

	return s.metas[s.frame]
}

// Advance implements Source.
func (s *SliceSource) Advance() {
	if s.pos >= len(s.words) {
		return
	}
	if s.words[s.pos].End {
		s.frame++
	}
	s.pos++
}

// Done implements Source.
func (s *SliceSource) Done() bool {
	return s.pos >= len(s.words)
}

// SliceSink collects accepted words. It supports an optional per-tick ready
// pattern for exercising downstream backpressure.
type SliceSink struct {
	words   []Word
	readyFn func(tick int) bool
	tick    int
}

// NewSliceSink creates an empty sink that is always ready.
func NewSliceSink() *SliceSink {
	return &SliceSink{}
}

// SetReadyPattern installs a per-tick ready predicate. A nil pattern (the
// default) is always ready.
func (s *SliceSink) SetReadyPattern(fn func(tick int) bool) {
	s.readyFn = fn
}

// Ready implements Sink.
func (s *SliceSink) Ready() bool {
	t := s.tick
	s.tick++

	return s.readyFn == nil || s.readyFn(t)
}

// Accept implements Sink.
func (s *SliceSink) Accept(w Word) {
	s.words = append(s.words, w)
}

// Words returns the accepted words in order.
func (s *SliceSink) Words() []Word {
	return s.words
}

// Bytes returns the accepted words unpacked into a byte stream.
func (s *SliceSink) Bytes(wordBits int) []byte {
	return BytesFromWords(s.words, wordBits)
}
