package adapters

import (
	"generate-video-pipeline/domain"
	"testing"
)

func TestDynamoProjectItemMapping(t *testing.T) {
	project := &domain.Project{
		ID:     "p1",
		Status: domain.ProjectCompleted,
		Idea:   "an idea",
		Prompt: "a prompt",
	}
	project.SetArtifactRef(domain.StepImage, "image/i.png")
	project.SetArtifactRef(domain.StepFinal, "final/f.mp4")

	restored := projectToItem(project).toProject()

	if restored.ID != "p1" || restored.Status != domain.ProjectCompleted {
		t.Fatalf("identity not preserved: %+v", restored)
	}
	if restored.ArtifactRef(domain.StepImage) != "image/i.png" {
		t.Fatalf("image ref lost: %+v", restored.ArtifactRefs)
	}
	if restored.ArtifactRef(domain.StepFinal) != "final/f.mp4" {
		t.Fatalf("final ref lost: %+v", restored.ArtifactRefs)
	}
	if _, ok := restored.ArtifactRefs[domain.StepVoice]; ok {
		t.Fatal("empty columns must not materialize as refs")
	}
}
