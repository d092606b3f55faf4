package adapters

import (
	"bytes"
	"generate-video-pipeline/application/ports/outbound"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/google/uuid"
)

// Demo-mode stand-in content, so downstream steps and the compositor always
// have well-formed inputs to chew on.
const (
	placeholderIdea      = "A serene mountain landscape with flowing rivers and lush forests, changing through the seasons."
	placeholderPrompt    = "Photorealistic mountain landscape, flowing rivers, lush green forests, seasonal changes, dramatic lighting, 8k resolution, cinematic, detailed."
	placeholderNarration = "In this breathtaking landscape, nature reveals its timeless beauty. Mountains rise majestically, rivers carve ancient paths, and forests breathe with life."
)

var (
	placeholderVoiceBytes = []byte("Placeholder voice file")
	placeholderMusicBytes = []byte("Placeholder music file")
	placeholderVideoBytes = []byte("Placeholder video file")
	placeholderFinalBytes = []byte("Placeholder final video file")
)

// renderPlaceholderImage draws a solid-color canvas at the contract output
// resolution.
func renderPlaceholderImage() ([]byte, error) {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetRGB255(73, 109, 137)
	dc.Clear()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// synthesizeStillVideo builds a fixed-duration clip that loops the given
// still image.
func synthesizeStillVideo(imagePath string, durationSeconds int, logger outbound.LoggerPort) ([]byte, error) {
	outputFile := filepath.Join(os.TempDir(), uuid.NewString()+".mp4")
	defer func() {
		if err := os.Remove(outputFile); err != nil && !os.IsNotExist(err) {
			logger.Error(err, "failed to remove temporary video file")
		}
	}()

	cmd := exec.Command("ffmpeg", "-loop", "1", "-i", imagePath, "-c:v", "libx264",
		"-t", strconv.Itoa(durationSeconds), "-pix_fmt", "yuv420p", "-y", outputFile)
	if err := cmd.Run(); err != nil {
		return nil, err
	}

	return os.ReadFile(outputFile)
}
