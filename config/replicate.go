package config

import "os"

type ReplicateConfig struct {
	ApiUrl     string
	ImageModel string
	VideoModel string
}

func GetReplicateConfig() *ReplicateConfig {
	apiUrl := os.Getenv("REPLICATE_API_URL")
	if apiUrl == "" {
		apiUrl = "https://api.replicate.com/v1/models"
	}
	imageModel := os.Getenv("REPLICATE_IMAGE_MODEL")
	if imageModel == "" {
		imageModel = "black-forest-labs/flux-pro"
	}
	videoModel := os.Getenv("REPLICATE_VIDEO_MODEL")
	if videoModel == "" {
		videoModel = "kwaivgi/kling-v1.6-standard"
	}

	return &ReplicateConfig{
		ApiUrl:     apiUrl,
		ImageModel: imageModel,
		VideoModel: videoModel,
	}
}
