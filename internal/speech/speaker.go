package speech

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync/atomic"
)

// Speaker plays synthesized speech. Playback is serialized: a Speak issued
// while another is still in flight is ignored rather than queued.
type Speaker struct {
	provider Provider
	play     func(ctx context.Context, audioFile string) error
	playing  atomic.Bool
	logf     func(format string, args ...any)
}

// NewSpeaker creates a speaker around the given provider.
func NewSpeaker(provider Provider) *Speaker {
	return &Speaker{
		provider: provider,
		play:     playFile,
		logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
	}
}

// SetPlayFunc overrides the playback command, used by tests.
func (s *Speaker) SetPlayFunc(play func(ctx context.Context, audioFile string) error) {
	s.play = play
}

// IsSpeaking reports whether a playback is currently in flight.
func (s *Speaker) IsSpeaking() bool {
	return s.playing.Load()
}

// Speak synthesizes and plays text in the background, best-effort. The call
// returns immediately; failures are logged and swallowed. A request issued
// while another playback is running is dropped.
func (s *Speaker) Speak(ctx context.Context, text string) {
	if text == "" {
		return
	}
	if !s.playing.CompareAndSwap(false, true) {
		return // already speaking
	}

	go func() {
		defer s.playing.Store(false)

		audioFile, err := s.provider.Synthesize(ctx, text)
		if err != nil {
			s.logf("Warning: speech synthesis failed: %v", err)
			return
		}
		if err := s.play(ctx, audioFile); err != nil {
			s.logf("Warning: audio playback failed: %v", err)
		}
	}()
}

// playFile plays an audio file using platform-specific commands.
func playFile(ctx context.Context, audioFile string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "afplay", audioFile)
	case "linux":
		// mpg123 first since it handles MP3 files best
		if _, err := exec.LookPath("mpg123"); err == nil {
			cmd = exec.CommandContext(ctx, "mpg123", "-q", audioFile)
		} else if _, err := exec.LookPath("ffplay"); err == nil {
			cmd = exec.CommandContext(ctx, "ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", audioFile)
		} else if _, err := exec.LookPath("play"); err == nil {
			cmd = exec.CommandContext(ctx, "play", "-q", audioFile)
		} else if _, err := exec.LookPath("paplay"); err == nil {
			cmd = exec.CommandContext(ctx, "paplay", audioFile)
		} else {
			return fmt.Errorf("no audio player found. Install mpg123, ffplay, sox or paplay")
		}
	case "windows":
		cmd = exec.CommandContext(ctx, "cmd", "/c", "start", "/min", audioFile)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Run()
}
