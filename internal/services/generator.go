package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	captionCount = 5
	ideaCount    = 10
)

const captionsPrompt = `Generate %d post captions for the following:
- Social Network: %s
- Subject: %s
- Tone: %s

Do not use the character " inside a caption.
Respond with a JSON object exactly like this example:
{"data": ["caption1", "caption2", "caption3"]}`

const ideasPrompt = `Generate %d post caption ideas for the following topic:
- Topic: %s

Respond with a JSON object exactly like this example:
{"data": ["idea1", "idea2", "idea3"]}`

const captionsFromIdeaPrompt = `Create a list of %d captions for the idea: %s

Respond with a JSON object exactly like this example:
{"data": ["caption1", "caption2", "caption3"]}`

type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ContentGenerator turns request fields into prompts and parses the model
// output. Caller input is embedded in prompts as-is.
type ContentGenerator struct {
	llm TextGenerator
}

func NewContentGenerator(llm TextGenerator) *ContentGenerator {
	return &ContentGenerator{llm: llm}
}

func (g *ContentGenerator) GenerateCaptions(ctx context.Context, socialNetwork, subject, tone string) ([]string, error) {
	return g.generate(ctx, fmt.Sprintf(captionsPrompt, captionCount, socialNetwork, subject, tone), captionCount)
}

func (g *ContentGenerator) GenerateIdeas(ctx context.Context, topic string) ([]string, error) {
	return g.generate(ctx, fmt.Sprintf(ideasPrompt, ideaCount, topic), ideaCount)
}

func (g *ContentGenerator) GenerateCaptionsFromIdea(ctx context.Context, idea string) ([]string, error) {
	return g.generate(ctx, fmt.Sprintf(captionsFromIdeaPrompt, captionCount, idea), captionCount)
}

func (g *ContentGenerator) generate(ctx context.Context, prompt string, want int) ([]string, error) {
	raw, err := g.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseGenerated(raw, want)
}

// parseGenerated decodes {"data": [...]} and trims the list to want items.
func parseGenerated(raw string, want int) ([]string, error) {
	var payload struct {
		Data []string `json:"data"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGeneration, err)
	}
	if len(payload.Data) == 0 {
		return nil, fmt.Errorf("%w: no data items", ErrMalformedGeneration)
	}
	if len(payload.Data) > want {
		payload.Data = payload.Data[:want]
	}
	return payload.Data, nil
}

// stripCodeFence removes a surrounding ```json ... ``` block if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
