package domain

type ProjectStatus string

const (
	ProjectDraft      ProjectStatus = "draft"
	ProjectProcessing ProjectStatus = "processing"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectError      ProjectStatus = "error"
)

type StepName string

const (
	StepAll   StepName = "all"
	StepIdea  StepName = "idea"
	StepImage StepName = "image"
	StepVoice StepName = "voice"
	StepVideo StepName = "video"
	StepMusic StepName = "music"
	StepFinal StepName = "final"
)

// StepOrder is the fixed execution order for a full run.
var StepOrder = []StepName{StepIdea, StepImage, StepVoice, StepVideo, StepMusic, StepFinal}

func IsValidStep(step StepName) bool {
	if step == StepAll {
		return true
	}
	for _, s := range StepOrder {
		if s == step {
			return true
		}
	}
	return false
}

type Project struct {
	ID           string
	Status       ProjectStatus
	Idea         string
	Prompt       string
	ArtifactRefs map[StepName]string
}

func (p *Project) SetArtifactRef(step StepName, ref string) {
	if p.ArtifactRefs == nil {
		p.ArtifactRefs = make(map[StepName]string)
	}
	p.ArtifactRefs[step] = ref
}

func (p *Project) ArtifactRef(step StepName) string {
	return p.ArtifactRefs[step]
}

type RunState string

const (
	RunPending   RunState = "pending"
	RunRunning   RunState = "running"
	RunSucceeded RunState = "succeeded"
	RunFailed    RunState = "failed"
)

func (s RunState) Terminal() bool {
	return s == RunSucceeded || s == RunFailed
}

type PipelineRun struct {
	RunID           string
	ProjectID       string
	RequestedStep   StepName
	State           RunState
	ProgressPercent int
	CurrentStep     StepName
	Message         string
}

// VoiceID is a closed two-value choice of voice register.
type VoiceID string

const (
	VoiceMale   VoiceID = "onyx"
	VoiceFemale VoiceID = "shimmer"
)

type VoiceDialog struct {
	AudioRef             string
	SpokenText           string
	VoiceID              VoiceID
	DeliveryInstructions string
}

type StepResult struct {
	Status       ProjectStatus
	Message      string
	ArtifactRefs map[StepName]string
}

// Credentials are backend API keys. An empty field selects demo mode for the
// corresponding backend. Process-wide defaults can be overridden per call.
type Credentials struct {
	OpenAIKey      string
	ReplicateToken string
	SonautoKey     string
}

// Merge returns c with any non-empty fields of override applied on top.
func (c Credentials) Merge(override Credentials) Credentials {
	if override.OpenAIKey != "" {
		c.OpenAIKey = override.OpenAIKey
	}
	if override.ReplicateToken != "" {
		c.ReplicateToken = override.ReplicateToken
	}
	if override.SonautoKey != "" {
		c.SonautoKey = override.SonautoKey
	}
	return c
}
