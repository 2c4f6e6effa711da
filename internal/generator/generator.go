// Package generator asks Gemini to write new stories.
package generator

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tatianab/bby/internal/story"
)

//go:embed prompts/generate_story.txt
var generateStoryPrompt string

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

var promptTmpl = template.Must(template.New("generate_story").Parse(generateStoryPrompt))

type Generator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGenerator(ctx context.Context, apiKey, modelName string) (*Generator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = DefaultModel
	}
	model := client.GenerativeModel(modelName)

	return &Generator{
		client: client,
		model:  model,
	}, nil
}

func (g *Generator) Close() {
	g.client.Close()
}

// Generate returns a YAML story document built around hint. The document is
// checked with the story loader before it is returned.
func (g *Generator) Generate(ctx context.Context, hint string) ([]byte, error) {
	prompt, err := renderPrompt(hint)
	if err != nil {
		return nil, err
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content returned from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response type from Gemini")
	}

	return parseStory(string(text))
}

func renderPrompt(hint string) (string, error) {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		hint = "random"
	}

	var buf bytes.Buffer
	err := promptTmpl.Execute(&buf, struct {
		Hint               string
		MinRooms, MaxRooms int
	}{Hint: hint, MinRooms: 3, MaxRooms: 8})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// parseStory strips the code fences models like to add and makes sure what
// is left is a loadable story.
func parseStory(text string) ([]byte, error) {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```yaml")
	clean = strings.TrimPrefix(clean, "```yml")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean) + "\n"

	if _, err := story.Decode(strings.NewReader(clean), story.FormatYAML); err != nil {
		return nil, fmt.Errorf("generated story is invalid: %w", err)
	}
	return []byte(clean), nil
}
