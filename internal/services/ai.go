package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ryoptimus/DevStorm-backend/internal/utils"
	"github.com/sashabaranov/go-openai"
)

// Groq exposes an OpenAI-compatible API, so the one client covers both the
// brainstorm and task-generation calls.
const (
	groqBaseURL = "https://api.groq.com/openai/v1"
	groqModel   = "llama3-8b-8192"
)

type AIService struct {
	client *openai.Client
}

// ProjectIdea is the structured brainstorm output the model is asked for.
type ProjectIdea struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Steps     []string `json:"steps"`
	Languages []string `json:"languages"`
}

// StepTasks is one entry of the task-generation output: the 1-based index
// of the plan step and the tasks derived from it.
type StepTasks struct {
	StepIndex int
	Tasks     []string
}

func NewAIService(apiKey string) *AIService {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
	}
}

// BrainstormIdea prompts the model for a project idea in JSON mode.
func (s *AIService) BrainstormIdea(ctx context.Context, roles, technologies, industries []string) (*ProjectIdea, error) {
	if s.client == nil {
		return nil, fmt.Errorf("AI client not initialized")
	}

	prompt := utils.EngineerBrainstormPrompt(roles, technologies, industries)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: groqModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are a project assistant that outputs project ideas in JSON.\n" +
					"The JSON object must use the schema: " +
					`{"title": "string", "summary": "string", "steps": ["string"], "languages": ["string"]}`,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature:    0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	})
	if err != nil {
		return nil, fmt.Errorf("AI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from AI")
	}

	var idea ProjectIdea
	content := resp.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), &idea); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return &idea, nil
}

// GenerateTasks asks the model for one task list per plan step and returns
// them paired with their 1-based step index. Callers treat failure as
// "no tasks", never as a reason to abort project creation.
func (s *AIService) GenerateTasks(ctx context.Context, title, summary string, languages, steps []string) ([]StepTasks, error) {
	if s.client == nil {
		return nil, fmt.Errorf("AI client not initialized")
	}

	prompt := utils.EngineerTaskgenPrompt(title, summary, languages, steps)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: groqModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are a project assistant that provides task lists for each project step in JSON.\n" +
					"The JSON object must use the schema: " +
					`{"tasks_lists": [{"title": "Step 1 title", "tasks": ["task 1", "task 2", "task 3"]}]}`,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature:    0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	})
	if err != nil {
		return nil, fmt.Errorf("AI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from AI")
	}

	var parsed struct {
		TasksLists []struct {
			Title string   `json:"title"`
			Tasks []string `json:"tasks"`
		} `json:"tasks_lists"`
	}
	content := resp.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	// Task lists arrive in step order; the index pairs each list with the
	// plan step it belongs to.
	result := make([]StepTasks, 0, len(parsed.TasksLists))
	for i, list := range parsed.TasksLists {
		result = append(result, StepTasks{
			StepIndex: i + 1,
			Tasks:     list.Tasks,
		})
	}

	return result, nil
}
