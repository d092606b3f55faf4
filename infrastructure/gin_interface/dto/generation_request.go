package dto

type GenerateRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
	Step      string `json:"step" binding:"required"`

	// Optional per-request backend credentials; empty fields fall back to
	// the process-wide defaults.
	OpenAIKey      string `json:"openai_key"`
	ReplicateToken string `json:"replicate_token"`
	SonautoKey     string `json:"sonauto_key"`
}

type GenerateResponse struct {
	TaskID string `json:"task_id"`
}

type RunStatusResponse struct {
	TaskID      string `json:"task_id"`
	ProjectID   string `json:"project_id"`
	Step        string `json:"step"`
	State       string `json:"state"`
	Progress    int    `json:"progress"`
	CurrentStep string `json:"current_step,omitempty"`
	Message     string `json:"message,omitempty"`
}

type RunResultResponse struct {
	Status       string            `json:"status"`
	Message      string            `json:"message,omitempty"`
	ArtifactRefs map[string]string `json:"artifact_refs"`
}
