package adapters

import (
	"strings"
	"testing"
)

func TestParseIdeaResponse(t *testing.T) {
	raw := `Idea: A lighthouse keeper discovers his lamp attracts falling stars.
Prompt: A lonely lighthouse on a storm-swept cliff at night, streaks of starlight spiraling toward the beam, cinematic lighting, 9:16 aspect ratio`

	result := parseIdeaResponse(raw)

	if result.Idea != "A lighthouse keeper discovers his lamp attracts falling stars." {
		t.Fatalf("unexpected idea: %q", result.Idea)
	}
	if !strings.HasPrefix(result.Prompt, "A lonely lighthouse on a storm-swept cliff") {
		t.Fatalf("unexpected prompt: %q", result.Prompt)
	}
}

func TestParseIdeaResponseMissingPromptLabel(t *testing.T) {
	result := parseIdeaResponse("Idea: A clockmaker who repairs broken memories.")

	if result.Idea != "A clockmaker who repairs broken memories." {
		t.Fatalf("unexpected idea: %q", result.Idea)
	}
	if result.Prompt != "" {
		t.Fatalf("expected empty prompt, got %q", result.Prompt)
	}
}

func TestParseIdeaResponseStripsMarkdown(t *testing.T) {
	raw := "Idea: **A city** that only exists\n\n  at   low tide.\nPrompt: *Sunken* streets,  glistening water"

	result := parseIdeaResponse(raw)

	if result.Idea != "A city that only exists at low tide." {
		t.Fatalf("markdown not stripped from idea: %q", result.Idea)
	}
	if result.Prompt != "Sunken streets, glistening water" {
		t.Fatalf("markdown not stripped from prompt: %q", result.Prompt)
	}
}

func TestBuildIdeaPromptWithoutHistory(t *testing.T) {
	prompt := buildIdeaPrompt("generate something", nil)

	if prompt != "generate something" {
		t.Fatalf("expected the bare template, got %q", prompt)
	}
}

func TestBuildIdeaPromptAppendsAvoidanceList(t *testing.T) {
	prompt := buildIdeaPrompt("generate something", []string{"first idea", "second idea"})

	if !strings.Contains(prompt, "Please avoid generating ideas similar to these recently created ones:") {
		t.Fatalf("avoidance context missing: %q", prompt)
	}
	if !strings.Contains(prompt, "1. first idea") || !strings.Contains(prompt, "2. second idea") {
		t.Fatalf("recent ideas not numbered: %q", prompt)
	}
}
