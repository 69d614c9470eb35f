package audio

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/hnimtadd/bbsterm/logger"
	"github.com/hnimtadd/bbsterm/terminal/music"
)

// Speaker plays note events on the default audio device. Foreground
// sequences block until they finish or the context is done, background
// ones (MB) return at once.
type Speaker struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	inited bool
	logger logger.Logger
}

func NewSpeaker(rate beep.SampleRate, l logger.Logger) *Speaker {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return &Speaker{rate: rate, logger: logger.OrDiscard(l)}
}

func (s *Speaker) init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inited {
		return nil
	}
	if err := speaker.Init(s.rate, s.rate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	s.inited = true
	return nil
}

// Play implements music.Player.
func (s *Speaker) Play(ctx context.Context, notes []music.Note) error {
	if len(notes) == 0 {
		return nil
	}
	if err := s.init(); err != nil {
		return err
	}
	stream, err := Streamer(notes, s.rate)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	ctrl := &beep.Ctrl{Streamer: beep.Seq(stream, beep.Callback(func() { close(done) }))}
	speaker.Play(ctrl)

	if background(notes) {
		s.logger.Debug("playing in background", "notes", len(notes))
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Lock()
		ctrl.Streamer = nil
		speaker.Unlock()
		return ctx.Err()
	}
}

// background reports whether the sequence switched to MB at any point.
func background(notes []music.Note) bool {
	return slices.ContainsFunc(notes, func(n music.Note) bool { return n.Background })
}

// Close releases the audio device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inited {
		speaker.Close()
		s.inited = false
	}
}

var _ music.Player = (*Speaker)(nil)
