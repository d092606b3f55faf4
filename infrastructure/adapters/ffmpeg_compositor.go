package adapters

import (
	"context"
	"fmt"
	"generate-video-pipeline/application/ports/outbound"
	"generate-video-pipeline/config"
	"generate-video-pipeline/domain"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
)

// ffmpegCompositor muxes the video stream unchanged and down-mixes music and
// voice into one audio stream: music attenuated, voice boosted and delayed
// relative to music start.
type ffmpegCompositor struct {
	blobs        outbound.BlobStorePort
	musicGain    float64
	voiceGain    float64
	voiceDelayMs int
	logger       outbound.LoggerPort
}

func NewFFmpegCompositor(blobs outbound.BlobStorePort, pipelineConfig *config.PipelineConfig,
	logger outbound.LoggerPort) outbound.CompositorPort {
	return &ffmpegCompositor{
		blobs:        blobs,
		musicGain:    pipelineConfig.MusicGain,
		voiceGain:    pipelineConfig.VoiceGain,
		voiceDelayMs: pipelineConfig.VoiceDelayMs,
		logger:       logger,
	}
}

func (c *ffmpegCompositor) Compose(ctx context.Context, req outbound.ComposeRequest) ([]byte, error) {
	outputFile := filepath.Join(os.TempDir(), uuid.NewString()+".mp4")
	defer func() {
		if err := os.Remove(outputFile); err != nil && !os.IsNotExist(err) {
			c.logger.Error(err, "failed to remove temporary final video file")
		}
	}()

	args := []string{"-y", "-i", c.blobs.UrlFor(req.VideoRef), "-i", c.blobs.UrlFor(req.MusicRef)}
	if req.VoiceRef != "" {
		args = append(args, "-i", c.blobs.UrlFor(req.VoiceRef))
	}
	args = append(args,
		"-filter_complex", buildMixFilterGraph(c.musicGain, c.voiceGain, c.voiceDelayMs, req.VoiceRef != ""),
		"-map", "0:v", "-map", "[a]",
		"-c:v", "copy", "-c:a", "aac", "-b:a", "192k",
		"-shortest",
	)
	if req.DurationCapSeconds > 0 {
		args = append(args, "-t", strconv.Itoa(req.DurationCapSeconds))
	}
	args = append(args, outputFile)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	if err := cmd.Run(); err != nil {
		c.logger.Error(err, "ffmpeg composition failed")
		return nil, &domain.CompositionError{Err: err}
	}

	data, err := os.ReadFile(outputFile)
	if err != nil {
		c.logger.Error(err, "failed to read composed video")
		return nil, &domain.CompositionError{Err: err}
	}
	return data, nil
}

// buildMixFilterGraph renders the amix filter. With voice present the voice
// track is delayed and boosted against the attenuated music; without voice
// only the music attenuation applies.
func buildMixFilterGraph(musicGain, voiceGain float64, voiceDelayMs int, withVoice bool) string {
	if !withVoice {
		return fmt.Sprintf("[1:a]volume=%g[a]", musicGain)
	}
	return fmt.Sprintf("[1:a]volume=%g[music];[2:a]adelay=%d|%d,volume=%g[voice];[music][voice]amix=inputs=2:duration=longest[a]",
		musicGain, voiceDelayMs, voiceDelayMs, voiceGain)
}
