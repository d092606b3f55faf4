package adapters

import (
	"context"
	"generate-video-pipeline/config"
	"os"
	"testing"
)

func TestLocalBlobStoreRoundTrip(t *testing.T) {
	store := NewLocalBlobStore(&config.LocalStorageConfig{BaseDir: t.TempDir()}, NewZerologWrapper())
	ctx := context.Background()

	ref, err := store.Save(ctx, []byte("png bytes"), "image/flux_image_test.png", "image/png")
	if err != nil {
		t.Fatal("failed to save artifact:", err)
	}
	if ref != "image/flux_image_test.png" {
		t.Fatalf("expected the logical path as ref, got %q", ref)
	}

	data, err := os.ReadFile(store.UrlFor(ref))
	if err != nil {
		t.Fatal("failed to read artifact back:", err)
	}
	if string(data) != "png bytes" {
		t.Fatalf("unexpected artifact content: %q", data)
	}

	if err := store.Delete(ctx, ref); err != nil {
		t.Fatal("failed to delete artifact:", err)
	}
	if _, err := os.Stat(store.UrlFor(ref)); !os.IsNotExist(err) {
		t.Fatal("artifact still present after delete")
	}
}
