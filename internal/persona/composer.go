package persona

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/drpaneas/redlica/internal/llm"
	"github.com/drpaneas/redlica/internal/reddit"
	"github.com/drpaneas/redlica/internal/textutil"
)

const (
	Temperature = 0.5
	MaxTokens   = 1500

	maxContentSize = 40000 // bytes of rendered content sent to the model
)

// Outcome classifies how a composition ended.
type Outcome int

const (
	Generated Outcome = iota
	NoContent
	EmptyGeneration
	GenerationFailed
)

func (o Outcome) String() string {
	switch o {
	case Generated:
		return "generated"
	case NoContent:
		return "no_content"
	case EmptyGeneration:
		return "empty_generation"
	case GenerationFailed:
		return "generation_failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of one composition. Text is set only for Generated
// and Err only for GenerationFailed.
type Result struct {
	Username string
	Outcome  Outcome
	Text     string
	Err      error
}

// Document returns the text to persist: the generated persona verbatim, or
// a placeholder document describing why there is none.
func (r Result) Document() string {
	switch r.Outcome {
	case Generated:
		return r.Text
	case NoContent:
		return fmt.Sprintf(noContentDocument, r.Username)
	case EmptyGeneration:
		return fmt.Sprintf(emptyDocument, r.Username)
	default:
		return fmt.Sprintf(failedDocument, r.Username, r.Username, r.Err)
	}
}

// Composer turns collected content into a persona document using an LLM.
type Composer struct {
	provider llm.Provider
	timeout  time.Duration
}

// New returns a Composer that uses the given provider. timeout bounds the
// generation call; zero means no limit beyond ctx.
func New(provider llm.Provider, timeout time.Duration) *Composer {
	return &Composer{provider: provider, timeout: timeout}
}

// Compose builds the persona prompt from items and makes a single generation
// call. The provider is not called when no item has usable text.
func (c *Composer) Compose(ctx context.Context, username string, items []reddit.ContentItem) Result {
	content := RenderContent(items)
	if content == "" {
		slog.Warn("no usable content, skipping generation", "stage", "compose", "username", username)
		return Result{Username: username, Outcome: NoContent}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	prompt := fmt.Sprintf(personaPrompt, username, username, truncateContent(content))
	slog.Info("generating persona", "username", username, "items", len(items), "prompt_bytes", len(prompt))
	text, err := c.provider.Complete(ctx, systemPrompt, prompt, &llm.CompleteOptions{
		Temperature: llm.Float32(Temperature),
		MaxTokens:   MaxTokens,
	})
	if err != nil {
		slog.Error("persona generation failed", "stage", "compose", "username", username, "error", err)
		return Result{Username: username, Outcome: GenerationFailed, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		slog.Warn("language model returned an empty response", "stage", "compose", "username", username)
		return Result{Username: username, Outcome: EmptyGeneration}
	}
	return Result{Username: username, Outcome: Generated, Text: text}
}

// RenderContent renders items as citation-bearing bullet lines, one per item
// with usable text, in input order:
//
//	- Comment: "text" (https://reddit.com/...)
func RenderContent(items []reddit.ContentItem) string {
	var b strings.Builder
	for _, item := range items {
		text := item.DisplayText()
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "- %s: \"%s\" (%s)\n", item.Kind, text, item.SourceURL)
	}
	return b.String()
}

func truncateContent(s string) string {
	return textutil.TruncateLines(s, maxContentSize, "... (content truncated to fit context window)\n")
}
