package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ChatTurn is one prior message of a conversation, oldest-first.
type ChatTurn struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// ToolInvocation is a structured action request returned by the model.
type ToolInvocation struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // raw JSON as the model produced it
}

// ChatReply is the model's answer to one turn: natural-language content,
// zero or more tool invocations, or both.
type ChatReply struct {
	Content   string           `json:"content"`
	ToolCalls []ToolInvocation `json:"tool_calls,omitempty"`
}

// MealEstimate is one recognized item of a photographed meal.
type MealEstimate struct {
	Name     string  `json:"name"`
	Portion  string  `json:"portion"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// MealAnalysis is the vision endpoint's structured verdict on a meal photo.
type MealAnalysis struct {
	Items              []MealEstimate `json:"items"`
	ConfirmationPrompt string         `json:"confirmation_prompt"`
}

// AIClient is the slice of the inference endpoint the core depends on.
// Exactly one call per turn; tool resolution never loops back into a second
// inference round.
type AIClient interface {
	Chat(ctx context.Context, contextJSON string, history []ChatTurn, message string, tools []llms.Tool) (*ChatReply, error)
	AnalyzeMealPhoto(ctx context.Context, photoURL string) (*MealAnalysis, error)
}

// OpenAIClient implements AIClient on the OpenAI chat-completions API with
// native function calling.
type OpenAIClient struct {
	llm *openai.LLM
}

func NewOpenAIClient() (*OpenAIClient, error) {
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}
	llm, err := openai.New(
		openai.WithToken(os.Getenv("OPENAI_API_KEY")),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("creating openai client: %w", err)
	}
	return &OpenAIClient{llm: llm}, nil
}

func (c *OpenAIClient) Chat(
	ctx context.Context,
	contextJSON string,
	history []ChatTurn,
	message string,
	tools []llms.Tool,
) (*ChatReply, error) {
	messages := make([]llms.MessageContent, 0, len(history)+2)
	messages = append(messages, llms.MessageContent{
		Role:  llms.ChatMessageTypeSystem,
		Parts: []llms.ContentPart{llms.TextContent{Text: systemPrompt + "\n\nCONTEXT:\n" + contextJSON}},
	})
	for _, t := range history {
		role := llms.ChatMessageTypeHuman
		if t.Role == "assistant" {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.MessageContent{
			Role:  role,
			Parts: []llms.ContentPart{llms.TextContent{Text: t.Content}},
		})
	}
	messages = append(messages, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextContent{Text: message}},
	})

	resp, err := c.llm.GenerateContent(ctx, messages,
		llms.WithTools(tools),
		llms.WithToolChoice("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("calling chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	choice := resp.Choices[0]
	reply := &ChatReply{Content: choice.Content}
	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall == nil {
			continue
		}
		reply.ToolCalls = append(reply.ToolCalls, ToolInvocation{
			ID:        tc.ID,
			Name:      tc.FunctionCall.Name,
			Arguments: tc.FunctionCall.Arguments,
		})
	}
	return reply, nil
}

func (c *OpenAIClient) AnalyzeMealPhoto(ctx context.Context, photoURL string) (*MealAnalysis, error) {
	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextContent{Text: visionPrompt},
				llms.ImageURLContent{URL: photoURL},
			},
		},
	}

	resp, err := c.llm.GenerateContent(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("calling vision completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("vision completion returned no choices")
	}

	var analysis MealAnalysis
	if err := json.Unmarshal([]byte(stripJSONMarkup(resp.Choices[0].Content)), &analysis); err != nil {
		return nil, fmt.Errorf("unmarshalling vision response: %w", err)
	}
	return &analysis, nil
}

// Models keep wrapping JSON answers in markdown fences despite instructions.
func stripJSONMarkup(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
