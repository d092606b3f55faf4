package outbound

import "context"

type IdeaResult struct {
	Idea   string
	Prompt string
}

type IdeaGeneratorPort interface {
	Generate(ctx context.Context) (*IdeaResult, error)
}
