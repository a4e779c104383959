package coach

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/saulo-duarte/ascend-lambda/internal/config"
	"google.golang.org/genai"
)

var ErrEmptyReply = errors.New("empty reply from model")

type Provider interface {
	Reply(ctx context.Context, apiKey, system string, history []Message) (string, error)
}

type geminiProvider struct {
	model string
}

func NewGeminiProvider(model string) Provider {
	return &geminiProvider{model: model}
}

func toContents(history []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return contents
}

// Reply opens a client per call since the key can differ between users.
func (p *geminiProvider) Reply(ctx context.Context, apiKey, system string, history []Message) (string, error) {
	log := config.WithContext(ctx)

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, p.model, toContents(history), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	})
	if err != nil {
		log.WithError(err).Error("Gemini generate content failed")
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", ErrEmptyReply
	}
	log.Debugf("Coach reply generated with %d characters", len(text))
	return text, nil
}
