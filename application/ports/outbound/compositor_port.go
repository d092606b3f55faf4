package outbound

import "context"

type ComposeRequest struct {
	VideoRef string
	MusicRef string
	// VoiceRef may be empty; the compositor then mixes video and music only.
	VoiceRef           string
	DurationCapSeconds int
}

type CompositorPort interface {
	Compose(ctx context.Context, req ComposeRequest) ([]byte, error)
}
