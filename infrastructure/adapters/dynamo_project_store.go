package adapters

import (
	"context"
	"fmt"
	"generate-video-pipeline/application/ports/outbound"
	"generate-video-pipeline/config"
	"generate-video-pipeline/domain"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
)

type dynamoProjectItem struct {
	ProjectID string `dynamodbav:"project_id"`
	Status    string `dynamodbav:"status"`
	Idea      string `dynamodbav:"idea"`
	Prompt    string `dynamodbav:"prompt"`
	ImageRef  string `dynamodbav:"image_path"`
	VideoRef  string `dynamodbav:"video_path"`
	VoiceRef  string `dynamodbav:"voice_path"`
	MusicRef  string `dynamodbav:"music_path"`
	FinalRef  string `dynamodbav:"final_video_path"`
}

type dynamoProjectStore struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
}

func NewDynamoProjectStore(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB,
	dynamoConfig *config.DynamoConfig) outbound.ProjectStorePort {
	return &dynamoProjectStore{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

func (s *dynamoProjectStore) Get(ctx context.Context, id string) (*domain.Project, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.dynamoConfig.TableName),
		Key: map[string]*dynamodb.AttributeValue{
			"project_id": {S: aws.String(id)},
		},
	}

	out, err := s.dynamoSvc.GetItemWithContext(ctx, input)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to load project item", map[string]interface{}{
			"project_id": id,
		})
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("project %s not found", id)
	}

	var item dynamoProjectItem
	if err := dynamodbattribute.UnmarshalMap(out.Item, &item); err != nil {
		s.logger.Error(err, "Failed to unmarshal project item")
		return nil, err
	}

	return item.toProject(), nil
}

func (s *dynamoProjectStore) Save(ctx context.Context, project *domain.Project) error {
	av, err := dynamodbattribute.MarshalMap(projectToItem(project))
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to marshal project item", map[string]interface{}{
			"project_id": project.ID,
		})
		return err
	}

	input := &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(s.dynamoConfig.TableName),
	}

	_, err = s.dynamoSvc.PutItemWithContext(ctx, input)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to save project item", map[string]interface{}{
			"project_id": project.ID,
		})
	}
	return err
}

func projectToItem(project *domain.Project) dynamoProjectItem {
	return dynamoProjectItem{
		ProjectID: project.ID,
		Status:    string(project.Status),
		Idea:      project.Idea,
		Prompt:    project.Prompt,
		ImageRef:  project.ArtifactRef(domain.StepImage),
		VideoRef:  project.ArtifactRef(domain.StepVideo),
		VoiceRef:  project.ArtifactRef(domain.StepVoice),
		MusicRef:  project.ArtifactRef(domain.StepMusic),
		FinalRef:  project.ArtifactRef(domain.StepFinal),
	}
}

func (item dynamoProjectItem) toProject() *domain.Project {
	project := &domain.Project{
		ID:     item.ProjectID,
		Status: domain.ProjectStatus(item.Status),
		Idea:   item.Idea,
		Prompt: item.Prompt,
	}
	refs := map[domain.StepName]string{
		domain.StepImage: item.ImageRef,
		domain.StepVideo: item.VideoRef,
		domain.StepVoice: item.VoiceRef,
		domain.StepMusic: item.MusicRef,
		domain.StepFinal: item.FinalRef,
	}
	for step, ref := range refs {
		if ref != "" {
			project.SetArtifactRef(step, ref)
		}
	}
	return project
}
