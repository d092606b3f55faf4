package outbound

import "context"

type GenerateMusicRequest struct {
	Idea string
	Tags []string
}

type MusicGeneratorPort interface {
	Generate(ctx context.Context, req GenerateMusicRequest) ([]byte, error)
}

type MusicJobStatus string

const (
	MusicJobSuccess MusicJobStatus = "SUCCESS"
	MusicJobFailure MusicJobStatus = "FAILURE"
)

type SubmitMusicJobRequest struct {
	Prompt         string
	Tags           []string
	PromptStrength float64
}

// MusicJobClient is the asynchronous half of the music backend protocol:
// submit a generation job, check its status, fetch the finished track. The
// poll loop lives in the generator so tests can inject an
// immediate-terminal-state client.
type MusicJobClient interface {
	Submit(ctx context.Context, req SubmitMusicJobRequest) (taskID string, err error)
	Status(ctx context.Context, taskID string) (MusicJobStatus, error)
	Fetch(ctx context.Context, taskID string) ([]byte, error)
}
