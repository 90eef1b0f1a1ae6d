package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/drpaneas/redlica/internal/config"
	"github.com/drpaneas/redlica/internal/llm"
	"github.com/drpaneas/redlica/internal/output"
	"github.com/drpaneas/redlica/internal/persona"
	"github.com/drpaneas/redlica/internal/reddit"
)

func main() {
	var cfg config.Config
	var provider string
	flag.StringVar(&provider, "provider", "openai", "LLM provider: openai, anthropic, gemini, ollama")
	flag.StringVar(&cfg.Model, "model", "", "LLM model (default: per-provider)")
	flag.StringVar(&cfg.OutputDir, "output", ".", "Directory to write <username>_persona.txt into")
	flag.IntVar(&cfg.Limit, "limit", reddit.DefaultLimit, "Maximum top comments and, separately, top posts to fetch")
	flag.DurationVar(&cfg.Timeout, "timeout", 2*time.Minute, "Timeout for each external call (content fetch, generation)")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: redlica [flags] <reddit_user_profile_url>\n")
		fmt.Fprintf(os.Stderr, "Example: redlica https://www.reddit.com/user/kojied/\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg.Provider = llm.ProviderName(provider)

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	username, err := config.UsernameFromURL(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		flag.Usage()
		os.Exit(1)
	}
	cfg.Username = username

	if err := cfg.Load(); err != nil {
		log.Fatal(err)
	}
	if cfg.Model == "" {
		cfg.Model = config.DefaultModel(cfg.Provider)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, &cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	slog.Info("starting redlica", "username", cfg.Username, "provider", cfg.Provider, "model", cfg.Model)

	collector := reddit.NewCollector(reddit.Credentials{
		ClientID:     cfg.RedditClientID,
		ClientSecret: cfg.RedditClientSecret,
		UserAgent:    cfg.RedditUserAgent,
	}, cfg.Limit, cfg.Timeout)

	provider, err := llm.NewProvider(ctx, llm.ProviderConfig{
		Name:       cfg.Provider,
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		OllamaHost: cfg.OllamaHost,
	})
	if err != nil {
		return fmt.Errorf("creating LLM provider: %w", err)
	}

	path, err := generate(ctx, cfg, collector, provider)
	if err != nil {
		return err
	}
	slog.Info("done", "username", cfg.Username, "path", path)
	return nil
}

// contentFetcher collects a user's public comments and posts.
type contentFetcher interface {
	Fetch(ctx context.Context, username string) reddit.Collection
}

// generate collects, composes and saves the persona for cfg.Username and
// returns the path written. A document is always saved unless saving itself
// fails; generation failures are reported after the placeholder is on disk.
// Missing content, including an upstream fetch failure, is not an error.
func generate(ctx context.Context, cfg *config.Config, fetcher contentFetcher, provider llm.Provider) (string, error) {
	collection := fetcher.Fetch(ctx, cfg.Username)
	var apiErr *reddit.APIError
	switch {
	case errors.As(collection.Err, &apiErr) && apiErr.NotFound():
		slog.Error("reddit user not found or suspended", "stage", "collect", "username", cfg.Username, "status", apiErr.StatusCode)
	case collection.Err != nil:
		slog.Error("could not fetch reddit content", "stage", "collect", "username", cfg.Username, "error", collection.Err)
	}
	if collection.Empty() {
		fmt.Fprintf(os.Stderr, "No public comments or posts found for u/%s.\n", cfg.Username)
	}

	result := persona.New(provider, cfg.Timeout).Compose(ctx, cfg.Username, collection.Items())
	slog.Info("persona composed", "username", cfg.Username, "outcome", result.Outcome)

	path, err := output.NewWriter(cfg.OutputDir).Save(cfg.Username, result.Document())
	if err != nil {
		slog.Error("could not save persona", "stage", "save", "username", cfg.Username, "error", err)
		return "", err
	}
	fmt.Println(path)

	switch result.Outcome {
	case persona.GenerationFailed:
		return path, fmt.Errorf("generating persona for u/%s: %w", cfg.Username, result.Err)
	case persona.EmptyGeneration:
		return path, errors.New("generating persona: the language model returned an empty response")
	}
	return path, nil
}
