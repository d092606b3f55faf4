package config

import (
	"generate-video-pipeline/domain"
	"os"
)

// GetDefaultCredentials loads the process-wide backend credentials. Missing
// keys are not an error: an empty key puts that backend in demo mode.
func GetDefaultCredentials() domain.Credentials {
	return domain.Credentials{
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		ReplicateToken: os.Getenv("REPLICATE_API_KEY"),
		SonautoKey:     os.Getenv("SONAUTO_API_KEY"),
	}
}
