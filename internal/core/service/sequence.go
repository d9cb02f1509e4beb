package service

import "sync/atomic"

// sequencer provides monotonically increasing sequence numbers.
type sequencer struct{ n atomic.Uint64 }

func (s *sequencer) next() uint64 { return s.n.Add(1) }
