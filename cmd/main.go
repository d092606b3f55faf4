package main

import (
	"fmt"
	"generate-video-pipeline/application/ports/inbound"
	"generate-video-pipeline/application/ports/outbound"
	"generate-video-pipeline/application/services"
	"generate-video-pipeline/config"
	"generate-video-pipeline/domain"
	"generate-video-pipeline/infrastructure/adapters"
	"generate-video-pipeline/infrastructure/gin_interface/controllers"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
)

func main() {
	openAIConfig := config.GetOpenAIConfig()
	replicateConfig := config.GetReplicateConfig()

	sonautoConfig, err := config.GetSonautoConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get sonauto config")
	}

	pipelineConfig, err := config.GetPipelineConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get pipeline config")
	}

	videoSettings, err := config.GetVideoSettings()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load video settings")
	}

	musicSettings, err := config.GetMusicSettings()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load music settings")
	}

	ideaSettings := config.GetIdeaSettings()

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	// Cloud stores are used when configured; otherwise local disk and an
	// in-process project map keep the service runnable without AWS.
	var awsSession *session.Session
	newAwsSession := func() *session.Session {
		if awsSession == nil {
			awsSession = session.Must(session.NewSessionWithOptions(session.Options{
				SharedConfigState: session.SharedConfigEnable,
			}))
		}
		return awsSession
	}

	var blobStore outbound.BlobStorePort
	if s3Config, err := config.GetS3Config(); err == nil {
		blobStore = adapters.NewS3BlobStore(s3.New(newAwsSession()), s3Config)
	} else {
		log.Info().Err(err).Msg("S3 not configured, storing artifacts on local disk")
		blobStore = adapters.NewLocalBlobStore(config.GetLocalStorageConfig(), zeroLogger)
	}

	var projectStore outbound.ProjectStorePort
	if dynamoConfig, err := config.GetDynamoConfig(); err == nil {
		projectStore = adapters.NewDynamoProjectStore(zeroLogger, dynamodb.New(newAwsSession()), dynamoConfig)
	} else {
		log.Info().Err(err).Msg("DynamoDB not configured, keeping projects in memory")
		projectStore = adapters.NewMemoryProjectStore()
	}

	contentFetcher := adapters.NewContentFetcher(zeroLogger)
	ideaHistory := adapters.NewFileIdeaHistory(ideaSettings.HistoryPath, ideaSettings.MaxStoredIdeas, zeroLogger)

	orchestrators := inbound.OrchestratorFactoryFunc(func(creds domain.Credentials) inbound.PipelineOrchestratorPort {
		backends := services.GenerationBackends{
			Idea: adapters.NewIdeaGeneratorWithFallback(
				adapters.NewOpenAIIdeaGenerator(openAIConfig, creds.OpenAIKey, ideaSettings, ideaHistory, zeroLogger),
				zeroLogger),
			Image: adapters.NewImageGeneratorWithFallback(
				adapters.NewFluxImageGenerator(contentFetcher, replicateConfig, creds.ReplicateToken, zeroLogger),
				zeroLogger),
			Voice: adapters.NewVoiceGeneratorWithFallback(
				adapters.NewOpenAIVoiceGenerator(contentFetcher, openAIConfig, creds.OpenAIKey, zeroLogger),
				zeroLogger),
			Video: adapters.NewVideoGeneratorWithFallback(
				adapters.NewKlingVideoGenerator(contentFetcher, replicateConfig, videoSettings, blobStore, creds.ReplicateToken, zeroLogger),
				blobStore, videoSettings.Duration, zeroLogger),
			Music: adapters.NewMusicGeneratorWithFallback(
				adapters.NewSonautoMusicGenerator(
					adapters.NewSonautoJobClient(contentFetcher, sonautoConfig, creds.SonautoKey, zeroLogger),
					musicSettings, creds.SonautoKey, sonautoConfig.PollInterval, sonautoConfig.MaxPollAttempts, zeroLogger),
				zeroLogger),
		}

		compositor := adapters.NewFFmpegCompositor(blobStore, pipelineConfig, zeroLogger)
		if pipelineConfig.DemoFallback {
			compositor = adapters.NewCompositorWithFallback(compositor, blobStore, zeroLogger)
		}

		return services.NewPipelineOrchestrator(projectStore, blobStore, backends, compositor,
			zeroLogger, musicSettings.Tags, pipelineConfig.DurationCapSeconds)
	})

	defaultCreds := config.GetDefaultCredentials()

	taskRunner := services.NewTaskRunner(workerPool, orchestrators, defaultCreds, zeroLogger)

	generationController := controllers.NewGenerationController(zeroLogger, taskRunner, orchestrators, defaultCreds, workerPool)

	router := gin.Default()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	generationController.RegisterRoutes(router)

	if err := router.Run(":8080"); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
