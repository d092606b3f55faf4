package controllers

import (
	"encoding/json"
	"errors"
	"generate-video-pipeline/application/ports/inbound"
	"generate-video-pipeline/application/ports/outbound"
	"generate-video-pipeline/application/services"
	"generate-video-pipeline/domain"
	"generate-video-pipeline/infrastructure/gin_interface/dto"
	"time"

	"github.com/gin-gonic/gin"
)

type GenerationController interface {
	SubmitRun(c *gin.Context)
	RunStatus(c *gin.Context)
	CancelRun(c *gin.Context)
	RunSync(c *gin.Context)
	StreamRunStatus(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type generationController struct {
	logger        outbound.LoggerPort
	taskRunner    inbound.TaskRunnerPort
	orchestrators inbound.OrchestratorFactory
	defaultCreds  domain.Credentials
	workerPool    outbound.TaskDispatcher
}

func NewGenerationController(
	logger outbound.LoggerPort,
	taskRunner inbound.TaskRunnerPort,
	orchestrators inbound.OrchestratorFactory,
	defaultCreds domain.Credentials,
	workerPool outbound.TaskDispatcher,
) GenerationController {
	return &generationController{
		logger:        logger,
		taskRunner:    taskRunner,
		orchestrators: orchestrators,
		defaultCreds:  defaultCreds,
		workerPool:    workerPool,
	}
}

func (g *generationController) SubmitRun(c *gin.Context) {
	var request dto.GenerateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(400, gin.H{"error": err.Error()})
		return
	}

	step := domain.StepName(request.Step)
	if !domain.IsValidStep(step) {
		c.AbortWithStatusJSON(400, gin.H{"error": "unknown step: " + request.Step})
		return
	}

	taskID, err := g.taskRunner.Submit(c, inbound.SubmitRunParams{
		ProjectID: request.ProjectID,
		Step:      step,
		Credentials: domain.Credentials{
			OpenAIKey:      request.OpenAIKey,
			ReplicateToken: request.ReplicateToken,
			SonautoKey:     request.SonautoKey,
		},
	})
	if err != nil {
		if errors.Is(err, services.ErrRunInProgress) {
			c.AbortWithStatusJSON(409, gin.H{"error": err.Error()})
			return
		}
		c.AbortWithStatusJSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(202, dto.GenerateResponse{TaskID: taskID})
}

func (g *generationController) RunStatus(c *gin.Context) {
	run, err := g.taskRunner.Poll(c.Param("task_id"))
	if err != nil {
		if errors.Is(err, services.ErrRunNotFound) {
			c.AbortWithStatusJSON(404, gin.H{"error": err.Error()})
			return
		}
		c.AbortWithStatusJSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, runToStatusResponse(run))
}

func (g *generationController) CancelRun(c *gin.Context) {
	if err := g.taskRunner.Cancel(c.Param("task_id")); err != nil {
		if errors.Is(err, services.ErrRunNotFound) {
			c.AbortWithStatusJSON(404, gin.H{"error": err.Error()})
			return
		}
		c.AbortWithStatusJSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"cancelled": true})
}

// RunSync executes the requested step inline and responds only when the
// pipeline finishes. Long requests are expected; the client controls the
// deadline through the request context.
func (g *generationController) RunSync(c *gin.Context) {
	var request dto.GenerateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(400, gin.H{"error": err.Error()})
		return
	}

	step := domain.StepName(request.Step)
	if !domain.IsValidStep(step) {
		c.AbortWithStatusJSON(400, gin.H{"error": "unknown step: " + request.Step})
		return
	}

	orchestrator := g.orchestrators.ForCredentials(g.defaultCreds.Merge(domain.Credentials{
		OpenAIKey:      request.OpenAIKey,
		ReplicateToken: request.ReplicateToken,
		SonautoKey:     request.SonautoKey,
	}))

	var result *domain.StepResult
	var err error
	if step == domain.StepAll {
		result, err = orchestrator.RunFull(c, request.ProjectID, nil)
	} else {
		result, err = orchestrator.RunStep(c, request.ProjectID, step, nil)
	}
	if err != nil {
		c.AbortWithStatusJSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, dto.RunResultResponse{
		Status:       string(result.Status),
		Message:      result.Message,
		ArtifactRefs: refsToStrings(result.ArtifactRefs),
	})
}

// StreamRunStatus pushes run snapshots over server-sent events until the run
// reaches a terminal state or the client disconnects.
func (g *generationController) StreamRunStatus(c *gin.Context) {
	taskID := c.Param("task_id")
	if _, err := g.taskRunner.Poll(taskID); err != nil {
		c.AbortWithStatusJSON(404, gin.H{"error": err.Error()})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")

	clientGone := c.Request.Context().Done()
	done := make(chan struct{})

	err := g.workerPool.Submit(func() {
		defer close(done)
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				run, err := g.taskRunner.Poll(taskID)
				if err != nil {
					return
				}
				payload, err := json.Marshal(runToStatusResponse(run))
				if err != nil {
					g.logger.Error(err, "failed to marshal run status event")
					return
				}
				if _, err := c.Writer.WriteString("data: " + string(payload) + "\n\n"); err != nil {
					return
				}
				c.Writer.Flush()
				if run.State.Terminal() {
					return
				}
			case <-clientGone:
				return
			}
		}
	})
	if err != nil {
		c.AbortWithStatusJSON(500, gin.H{"error": err.Error()})
		return
	}

	<-done
}

func (g *generationController) RegisterRoutes(engine *gin.Engine) {
	engine.POST("/generation/generate", g.SubmitRun)
	engine.GET("/generation/status/:task_id", g.RunStatus)
	engine.POST("/generation/cancel/:task_id", g.CancelRun)
	engine.POST("/generation/run", g.RunSync)
	engine.GET("/generation/stream/:task_id", g.StreamRunStatus)
}

func runToStatusResponse(run *domain.PipelineRun) dto.RunStatusResponse {
	return dto.RunStatusResponse{
		TaskID:      run.RunID,
		ProjectID:   run.ProjectID,
		Step:        string(run.RequestedStep),
		State:       string(run.State),
		Progress:    run.ProgressPercent,
		CurrentStep: string(run.CurrentStep),
		Message:     run.Message,
	}
}

func refsToStrings(refs map[domain.StepName]string) map[string]string {
	out := make(map[string]string, len(refs))
	for step, ref := range refs {
		out[string(step)] = ref
	}
	return out
}
