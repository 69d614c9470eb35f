package music

import (
	"context"
	"sync"
)

// Player consumes finished music sequences. Play is called once per
// sequence with its notes in order and must not retain the slice.
type Player interface {
	Play(ctx context.Context, notes []Note) error
}

// Recorder is a Player that keeps every sequence it is given.
type Recorder struct {
	mu        sync.Mutex
	Sequences [][]Note
}

func (r *Recorder) Play(_ context.Context, notes []Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sequences = append(r.Sequences, append([]Note(nil), notes...))
	return nil
}

// Notes returns every recorded note, flattened.
func (r *Recorder) Notes() []Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Note
	for _, seq := range r.Sequences {
		out = append(out, seq...)
	}
	return out
}
