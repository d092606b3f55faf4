package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetVideoSettingsFromDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "video_gen.toml")
	doc := `duration = 8
aspect_ratio = "16:9"
cfg_scale = 0.7
negative_prompt = "blurry"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal("failed to write settings document:", err)
	}
	t.Setenv("VIDEO_SETTINGS_PATH", path)

	settings, err := GetVideoSettings()
	if err != nil {
		t.Fatal("failed to load video settings:", err)
	}
	if settings.Duration != 8 || settings.AspectRatio != "16:9" || settings.CfgScale != 0.7 {
		t.Fatalf("unexpected settings: %+v", settings)
	}
	if settings.NegativePrompt != "blurry" {
		t.Fatalf("unexpected negative prompt: %q", settings.NegativePrompt)
	}
}

func TestGetVideoSettingsMissingDocumentUsesDefaults(t *testing.T) {
	t.Setenv("VIDEO_SETTINGS_PATH", filepath.Join(t.TempDir(), "does_not_exist.toml"))

	settings, err := GetVideoSettings()
	if err != nil {
		t.Fatal("a missing document should not be an error:", err)
	}
	if settings.Duration != 10 || settings.AspectRatio != "9:16" || settings.CfgScale != 0.5 {
		t.Fatalf("unexpected default settings: %+v", settings)
	}
}

func TestGetMusicSettingsFromDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "music_gen.toml")
	doc := `prompt_strength = 1.8
tags = ["jazz", "upbeat"]
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal("failed to write settings document:", err)
	}
	t.Setenv("MUSIC_SETTINGS_PATH", path)

	settings, err := GetMusicSettings()
	if err != nil {
		t.Fatal("failed to load music settings:", err)
	}
	if settings.PromptStrength != 1.8 {
		t.Fatalf("unexpected prompt strength: %v", settings.PromptStrength)
	}
	if len(settings.Tags) != 2 || settings.Tags[0] != "jazz" {
		t.Fatalf("unexpected tags: %v", settings.Tags)
	}
}

func TestGetMusicSettingsDefaultPromptStrength(t *testing.T) {
	t.Setenv("MUSIC_SETTINGS_PATH", filepath.Join(t.TempDir(), "does_not_exist.toml"))

	settings, err := GetMusicSettings()
	if err != nil {
		t.Fatal("a missing document should not be an error:", err)
	}
	if settings.PromptStrength != 2.3 {
		t.Fatalf("unexpected default prompt strength: %v", settings.PromptStrength)
	}
}
