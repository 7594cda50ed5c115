package audio

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hajimehoshi/go-mp3"
	"github.com/hajimehoshi/oto/v2"
)

// Player decodes MP3 audio and plays it through the system mixer. Playback
// is serialized; the mixer handles one clip at a time.
type Player struct {
	mu sync.Mutex
}

// NewPlayer creates an MP3 player
func NewPlayer() *Player {
	return &Player{}
}

// PlayMP3 decodes and plays the clip, blocking until playback finishes or
// ctx is done
func (p *Player) PlayMP3(ctx context.Context, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty audio clip")
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	decoder, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("mp3 decoder: %w", err)
	}

	otoCtx, readyChan, err := oto.NewContext(decoder.SampleRate(), 2, 2)
	if err != nil {
		return fmt.Errorf("oto context: %w", err)
	}
	<-readyChan

	player := otoCtx.NewPlayer(decoder)
	player.Play()
	defer player.Close()

	ticker := time.NewTicker(15 * time.Millisecond)
	defer ticker.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return nil
}
