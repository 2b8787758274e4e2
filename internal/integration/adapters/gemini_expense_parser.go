package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

const defaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiExpenseParser reads free-form expense commands with Google Gemini.
type GeminiExpenseParser struct {
	apiKey    string
	modelName string
}

// NewGeminiExpenseParser creates a new Gemini backed parser.
func NewGeminiExpenseParser(apiKey, modelName string) *GeminiExpenseParser {
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	return &GeminiExpenseParser{apiKey: apiKey, modelName: modelName}
}

// IsAvailable checks if the parser has an API key.
func (p *GeminiExpenseParser) IsAvailable() bool {
	return p.apiKey != ""
}

// Parse asks the model for a JSON expense draft.
func (p *GeminiExpenseParser) Parse(ctx context.Context, transcript string) (*adapter.ParsedExpense, error) {
	if !p.IsAvailable() {
		return nil, adapter.ErrNotParsed
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(p.modelName)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildExpensePrompt(transcript)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, adapter.ErrNotParsed
	}
	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text = string(t)
			break
		}
	}
	return parseGeminiReply(text)
}

func buildExpensePrompt(transcript string) string {
	var sb strings.Builder
	sb.WriteString("You read short spoken commands that record a personal expense.\n")
	sb.WriteString("Reply with one JSON object: {\"understood\": bool, \"amount\": number, \"category\": string, \"description\": string}.\n")
	sb.WriteString("category must be exactly one of:\n")
	for _, c := range entity.ExpenseCategories {
		sb.WriteString("- " + string(c) + "\n")
	}
	sb.WriteString("Use \"Other\" when unsure. description is at most 60 characters.\n")
	sb.WriteString("Set understood to false when the text does not describe spending money.\n\n")
	sb.WriteString("Command: ")
	sb.WriteString(transcript)
	return sb.String()
}

type geminiExpenseReply struct {
	Understood  bool            `json:"understood"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// parseGeminiReply converts the model output, tolerating markdown fences.
func parseGeminiReply(text string) (*adapter.ParsedExpense, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, adapter.ErrNotParsed
	}

	var reply geminiExpenseReply
	if err := json.Unmarshal([]byte(text), &reply); err != nil {
		return nil, fmt.Errorf("failed to parse gemini reply: %w", err)
	}
	if !reply.Understood || !reply.Amount.IsPositive() {
		return nil, adapter.ErrNotParsed
	}

	category := entity.ExpenseCategory(reply.Category)
	if !category.IsValidExpenseCategory() {
		category = entity.CategoryOther
	}
	description := strings.TrimSpace(reply.Description)
	if description == "" {
		description = "Voice expense"
	}

	return &adapter.ParsedExpense{
		Amount:      reply.Amount,
		Category:    category,
		Description: description,
	}, nil
}
