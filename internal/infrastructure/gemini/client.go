package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-1.5-flash"

// IcebreakerPrompt describes an accepted pair of study partners.
type IcebreakerPrompt struct {
	SenderName        string
	PartnerName       string
	SharedTechniques  []string
	PartnerTechniques []string
	Environment       string
	SessionType       string
}

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if modelName == "" {
		modelName = defaultModel
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Close() {
	c.client.Close()
}

// GenerateIcebreakers asks the model for three opening messages.
func (c *GeminiClient) GenerateIcebreakers(ctx context.Context, p IcebreakerPrompt) ([]string, error) {
	prompt := fmt.Sprintf(`
		Generate 3 friendly icebreaker messages for two university students who just became study partners.
		Sender: %s
		Partner: %s
		Study techniques they share: %v
		Partner's study techniques: %v
		Preferred environment: %s
		Preferred session type: %s

		Task: Create 3 distinct opening lines the sender could send to the partner.
		Focus on planning a first study session and on shared techniques.
		Output: JSON array of strings. Example: ["Hi...", "Hello..."]
	`, p.SenderName, p.PartnerName, p.SharedTechniques, p.PartnerTechniques, p.Environment, p.SessionType)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate icebreakers: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	return ParseIcebreakers(sb.String())
}

// ParseIcebreakers reads a JSON array of strings, tolerating a markdown code
// fence around it. Output that is not JSON is split into lines instead.
func ParseIcebreakers(text string) ([]string, error) {
	responseText := strings.TrimSpace(text)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	var icebreakers []string
	if err := json.Unmarshal([]byte(responseText), &icebreakers); err != nil {
		for _, line := range strings.Split(responseText, "\n") {
			line = strings.TrimSpace(line)
			if line != "" && !strings.HasPrefix(line, "[") && !strings.HasSuffix(line, "]") {
				icebreakers = append(icebreakers, line)
			}
		}
		if len(icebreakers) == 0 {
			return nil, fmt.Errorf("failed to parse icebreakers: %w", err)
		}
	}

	out := icebreakers[:0]
	for _, s := range icebreakers {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no icebreakers in response")
	}
	return out, nil
}
