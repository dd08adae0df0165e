package ai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"github.com/olenko/satchel/internal/domain"
)

// Assistant is the optional AI collaborator: it guesses the command a
// user meant to type and answers semantic note-search queries. Everything
// works without it; callers hold a nil *Assistant when no API key is
// configured.
type Assistant struct {
	client *genai.Client
	model  string
}

const correctionPrompt = `You are a CLI assistant that fixes mistyped commands. The user may write in English, Ukrainian or Russian, with typos.

Supported commands:
%s

Return ONLY the canonical command name or an empty string.`

const semanticPrompt = `You are a semantic search assistant.
Below is a numbered list of notes. Each note has the format
<index>: <text>  [tags: <tag1>, <tag2>, ...]

The user will send a search query in Russian, Ukrainian or English.
Return ONLY the indices (space-separated) of up to five notes
that are truly relevant. If nothing fits, return an empty string.

%s`

var intRE = regexp.MustCompile(`\d+`)

// New creates an assistant talking to the given model.
func New(ctx context.Context, apiKey, model string) (*Assistant, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Assistant{client: client, model: model}, nil
}

// NewFromKeyFile creates an assistant from the API key stored in keyFile,
// falling back to the GEMINI_API_KEY environment variable. No key anywhere
// is not an error: it returns (nil, nil) and the AI features stay off.
func NewFromKeyFile(ctx context.Context, keyFile, model string) (*Assistant, error) {
	key := os.Getenv("GEMINI_API_KEY")

	data, err := os.ReadFile(keyFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read key file: %w", err)
	default:
		if k := strings.TrimSpace(string(data)); k != "" {
			key = k
		}
	}

	if key == "" {
		return nil, nil
	}
	return New(ctx, key, model)
}

// SuggestCommand guesses which canonical command the input was meant to
// be. It returns "" when the model has no confident guess; anything the
// model returns outside the catalog is discarded.
func (a *Assistant) SuggestCommand(ctx context.Context, input string, commands []string) (string, error) {
	prompt := fmt.Sprintf(correctionPrompt, strings.Join(commands, "\n"))

	resp, err := a.client.Models.GenerateContent(ctx, a.model,
		genai.Text(input),
		&genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](0),
			MaxOutputTokens:   16,
			SystemInstruction: genai.NewContentFromText(prompt, genai.RoleUser),
		})
	if err != nil {
		return "", fmt.Errorf("correction request failed: %w", err)
	}

	guess := strings.Trim(strings.TrimSpace(resp.Text()), `"'`)
	for _, c := range commands {
		if guess == c {
			return guess, nil
		}
	}
	return "", nil
}

// RelevantNotes asks the model which notes answer the query. It returns
// one-based indices into the given notes; the caller drops any index the
// model invents beyond the catalog.
func (a *Assistant) RelevantNotes(ctx context.Context, query string, notes []*domain.Note) ([]int, error) {
	prompt := fmt.Sprintf(semanticPrompt, NoteCatalog(notes))

	resp, err := a.client.Models.GenerateContent(ctx, a.model,
		genai.Text(query),
		&genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](0),
			TopP:              genai.Ptr[float32](0.1),
			MaxOutputTokens:   20,
			SystemInstruction: genai.NewContentFromText(prompt, genai.RoleUser),
		})
	if err != nil {
		return nil, fmt.Errorf("semantic search request failed: %w", err)
	}

	return ParseIndices(resp.Text()), nil
}

// NoteCatalog renders notes as the numbered list the semantic prompt
// expects: "<index>: <text>  [tags: ...]", one per line.
func NoteCatalog(notes []*domain.Note) string {
	var b strings.Builder
	for i, n := range notes {
		tags := strings.Join(n.Tags, ", ")
		if tags == "" {
			tags = "—"
		}
		fmt.Fprintf(&b, "%d: %s  [tags: %s]\n", i+1, n.Text, tags)
	}
	return strings.TrimRight(b.String(), "\n")
}

// ParseIndices extracts every integer from a model reply, in order.
func ParseIndices(s string) []int {
	var out []int
	for _, m := range intRE.FindAllString(s, -1) {
		if n, err := strconv.Atoi(m); err == nil {
			out = append(out, n)
		}
	}
	return out
}
