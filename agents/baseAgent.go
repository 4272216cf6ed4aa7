package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/benela/benela_backend/config"
	"google.golang.org/genai"
)

const (
	agentTemperature     = 0.1
	agentMaxOutputTokens = 1024
)

var ErrEmptyResponse = errors.New("model returned no text")

// Generator sends one user turn with a system instruction and returns the
// model's text.
type Generator interface {
	Generate(ctx context.Context, systemPrompt string, message string) (string, error)
}

type BaseAgent struct {
	Name         string
	SystemPrompt string
	generator    Generator
}

func NewBaseAgent(name string, systemPrompt string, generator Generator) *BaseAgent {
	return &BaseAgent{Name: name, SystemPrompt: systemPrompt, generator: generator}
}

// Run forwards message to the model once. There is no retry and no streaming.
func (a *BaseAgent) Run(ctx context.Context, message string) (string, error) {
	if a.generator == nil {
		return "", errors.New("agent has no generator")
	}
	text, err := a.generator.Generate(ctx, a.SystemPrompt, message)
	if err != nil {
		config.LogError(config.GetLogger(), "agents", "Run", a.Name, nil, err)
		return "", err
	}
	return text, nil
}

// GeminiGenerator calls generateContent through google.golang.org/genai.
// The client is created on first use so a missing key only fails agent calls.
type GeminiGenerator struct {
	APIKey string
	Model  string

	once   sync.Once
	client *genai.Client
	err    error
}

func NewGeminiGenerator() *GeminiGenerator {
	return &GeminiGenerator{
		APIKey: config.GeminiAPIKey(),
		Model:  config.GeminiModel(),
	}
}

func (g *GeminiGenerator) getClient(ctx context.Context) (*genai.Client, error) {
	g.once.Do(func() {
		if strings.TrimSpace(g.APIKey) == "" {
			g.err = errors.New("GEMINI_API_KEY is not set")
			return
		}
		g.client, g.err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  g.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if g.err != nil {
			g.err = fmt.Errorf("failed to create GenAI client: %w", g.err)
		}
	})
	return g.client, g.err
}

func (g *GeminiGenerator) Generate(ctx context.Context, systemPrompt string, message string) (string, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{
		genai.NewContentFromText(message, genai.RoleUser),
	}
	resp, err := client.Models.GenerateContent(ctx, g.Model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](agentTemperature),
		MaxOutputTokens:   agentMaxOutputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
