package adapters

import (
	"encoding/json"
	"generate-video-pipeline/application/ports/outbound"
	"os"
	"sync"
)

// IdeaHistory is the bounded list of recently generated ideas, handed to the
// idea backend so it can steer the model away from repeats.
type IdeaHistory interface {
	Recent() []string
	Append(idea string)
}

type fileIdeaHistory struct {
	mu       sync.Mutex
	path     string
	maxItems int
	ideas    []string
	logger   outbound.LoggerPort
}

func NewFileIdeaHistory(path string, maxItems int, logger outbound.LoggerPort) IdeaHistory {
	h := &fileIdeaHistory{
		path:     path,
		maxItems: maxItems,
		logger:   logger,
	}
	h.ideas = h.load()
	return h
}

func (h *fileIdeaHistory) Recent() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	recent := make([]string, len(h.ideas))
	copy(recent, h.ideas)
	return recent
}

// Append adds an idea, evicting oldest-first past the bound.
func (h *fileIdeaHistory) Append(idea string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.ideas = append(h.ideas, idea)
	if len(h.ideas) > h.maxItems {
		h.ideas = h.ideas[len(h.ideas)-h.maxItems:]
	}

	raw, err := json.Marshal(h.ideas)
	if err != nil {
		h.logger.Error(err, "failed to marshal idea history")
		return
	}
	if err := os.WriteFile(h.path, raw, 0o644); err != nil {
		h.logger.Error(err, "failed to write idea history file")
	}
}

func (h *fileIdeaHistory) load() []string {
	raw, err := os.ReadFile(h.path)
	if err != nil {
		return nil
	}

	var ideas []string
	// A corrupted history file starts over empty.
	if err := json.Unmarshal(raw, &ideas); err != nil {
		h.logger.Warn("idea history file is corrupted, starting with an empty history")
		return nil
	}
	return ideas
}
