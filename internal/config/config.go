package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"time"

	"github.com/drpaneas/redlica/internal/llm"
	"github.com/joho/godotenv"
)

var (
	profileURL    = regexp.MustCompile(`reddit\.com/user/([^/?#]+)`)
	validUsername = regexp.MustCompile(`^[A-Za-z0-9_-]{1,20}$`)
)

// ErrInvalidProfileURL is returned when a profile URL does not name a Reddit user.
var ErrInvalidProfileURL = errors.New("invalid reddit profile URL")

// MissingSettingError reports a required setting that was not provided.
type MissingSettingError struct {
	Name string
}

func (e *MissingSettingError) Error() string {
	return fmt.Sprintf("%s environment variable is required", e.Name)
}

// Config holds all runtime configuration for redlica.
type Config struct {
	Username           string
	RedditClientID     string
	RedditClientSecret string
	RedditUserAgent    string
	Provider           llm.ProviderName
	Model              string
	OllamaHost         string
	APIKey             string
	OutputDir          string
	Limit              int
	Timeout            time.Duration
	Verbose            bool
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if c.Username == "" {
		return fmt.Errorf("reddit username is required")
	}
	if !validUsername.MatchString(c.Username) {
		return fmt.Errorf("invalid reddit username %q", c.Username)
	}
	if c.RedditClientID == "" {
		return &MissingSettingError{Name: "REDDIT_CLIENT_ID"}
	}
	if c.RedditClientSecret == "" {
		return &MissingSettingError{Name: "REDDIT_CLIENT_SECRET"}
	}
	if c.RedditUserAgent == "" {
		return &MissingSettingError{Name: "REDDIT_USER_AGENT"}
	}
	switch c.Provider {
	case llm.ProviderOpenAI, llm.ProviderAnthropic, llm.ProviderGemini, llm.ProviderOllama:
	default:
		return fmt.Errorf("unsupported LLM provider %q: must be openai, anthropic, gemini, or ollama", c.Provider)
	}
	if c.APIKey == "" && c.Provider != llm.ProviderOllama {
		return &MissingSettingError{Name: envKeyForProvider(c.Provider)}
	}
	if c.Limit < 1 || c.Limit > 1000 {
		return fmt.Errorf("--limit must be between 1 and 1000")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("--timeout must be positive")
	}
	return nil
}

// Load reads an optional .env file from the working directory and then
// populates environment-dependent fields. Variables already set in the
// process environment take precedence over the file.
func (c *Config) Load() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	c.LoadFromEnv()
	return nil
}

// LoadFromEnv populates environment-dependent fields (credentials, keys, hosts).
func (c *Config) LoadFromEnv() {
	c.RedditClientID = os.Getenv("REDDIT_CLIENT_ID")
	c.RedditClientSecret = os.Getenv("REDDIT_CLIENT_SECRET")
	c.RedditUserAgent = os.Getenv("REDDIT_USER_AGENT")
	c.OllamaHost = os.Getenv("OLLAMA_HOST")
	if c.OllamaHost == "" {
		c.OllamaHost = "http://localhost:11434"
	}
	if key := envKeyForProvider(c.Provider); key != "" {
		c.APIKey = os.Getenv(key)
	}
}

// UsernameFromURL extracts the path segment following /user/ in a Reddit
// profile URL such as https://www.reddit.com/user/kojied/. The segment must
// be a valid Reddit username.
func UsernameFromURL(rawURL string) (string, error) {
	m := profileURL.FindStringSubmatch(rawURL)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidProfileURL, rawURL)
	}
	if !validUsername.MatchString(m[1]) {
		return "", fmt.Errorf("%w: %q is not a valid username", ErrInvalidProfileURL, m[1])
	}
	return m[1], nil
}

// DefaultModel returns the default model name for the given provider.
func DefaultModel(provider llm.ProviderName) string {
	switch provider {
	case llm.ProviderOpenAI:
		return "gpt-3.5-turbo"
	case llm.ProviderAnthropic:
		return "claude-sonnet-4-5"
	case llm.ProviderGemini:
		return "gemini-2.5-flash"
	case llm.ProviderOllama:
		return "llama3"
	default:
		return ""
	}
}

func envKeyForProvider(provider llm.ProviderName) string {
	switch provider {
	case llm.ProviderOpenAI:
		return "OPENAI_API_KEY"
	case llm.ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case llm.ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}
