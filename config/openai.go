package config

import "os"

type OpenAIConfig struct {
	ChatApiUrl string
	TTSApiUrl  string
	ChatModel  string
	TTSModel   string
}

// GetOpenAIConfig never fails: endpoints and models have defaults and the
// API key lives in the credential set, where absence selects demo mode.
func GetOpenAIConfig() *OpenAIConfig {
	chatApiUrl := os.Getenv("OPENAI_CHAT_API_URL")
	if chatApiUrl == "" {
		chatApiUrl = "https://api.openai.com/v1/chat/completions"
	}
	ttsApiUrl := os.Getenv("OPENAI_TTS_API_URL")
	if ttsApiUrl == "" {
		ttsApiUrl = "https://api.openai.com/v1/audio/speech"
	}
	chatModel := os.Getenv("OPENAI_CHAT_MODEL")
	if chatModel == "" {
		chatModel = "gpt-4o"
	}
	ttsModel := os.Getenv("OPENAI_TTS_MODEL")
	if ttsModel == "" {
		ttsModel = "gpt-4o-mini-tts"
	}

	return &OpenAIConfig{
		ChatApiUrl: chatApiUrl,
		TTSApiUrl:  ttsApiUrl,
		ChatModel:  chatModel,
		TTSModel:   ttsModel,
	}
}
