package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/namsral/flag"

	"github.com/domino14/bigmodel/pkg/apitoken"
)

const (
	// EnvPrefix is prepended to every flag name to find its environment
	// variable, e.g. -api-key reads BIGMODEL_API_KEY.
	EnvPrefix = "BIGMODEL"

	DefaultBaseURL  = "https://open.bigmodel.cn/api/paas/v4/"
	DefaultModel    = "glm-4"
	DefaultTokenTTL = 120
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Debug        bool
	APIKey       string
	BaseURL      string
	Model        string
	TokenTTL     int64
	SignType     string
	AllowZeroTTL bool
	Timeout      time.Duration
	MaxRetries   int
	Temperature  float64
	TopP         float64
	MaxTokens    int
	Prompt       string
}

// Load loads the configs from the given arguments, falling back to
// BIGMODEL_* environment variables for flags not given.
func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSetWithEnvPrefix("bigmodel", EnvPrefix, flag.ContinueOnError)

	fs.BoolVar(&c.Debug, "debug", false, "debug logging on")
	fs.StringVar(&c.APIKey, "api-key", "", "API credential in the form <id>.<secret>")
	fs.StringVar(&c.BaseURL, "base-url", DefaultBaseURL, "base URL of the chat API")
	fs.StringVar(&c.Model, "model", DefaultModel, "model to use for completions")
	fs.Int64Var(&c.TokenTTL, "token-ttl", DefaultTokenTTL, "lifetime of issued tokens in seconds")
	fs.StringVar(&c.SignType, "sign-type", "", "legacy sign_type header value, e.g. SIGN; empty omits it")
	fs.BoolVar(&c.AllowZeroTTL, "allow-zero-ttl", false, "allow tokens whose expiration equals issuance")
	fs.DurationVar(&c.Timeout, "timeout", 60*time.Second, "per-request timeout")
	fs.IntVar(&c.MaxRetries, "max-retries", 2, "retries for failed requests")
	fs.Float64Var(&c.Temperature, "temperature", 0, "sampling temperature; 0 uses the server default")
	fs.Float64Var(&c.TopP, "top-p", 0, "nucleus sampling; 0 uses the server default")
	fs.IntVar(&c.MaxTokens, "max-tokens", 0, "maximum tokens to generate; 0 uses the server default")
	fs.StringVar(&c.Prompt, "prompt", "", "send a single prompt and exit")
	return fs.Parse(args)
}

// Validate checks that the configuration can be used to reach the API.
func (c *Config) Validate() error {
	if _, _, err := apitoken.SplitCredential(c.APIKey); err != nil {
		return fmt.Errorf("%w: api-key: %w", ErrInvalidConfig, err)
	}
	if c.TokenTTL < 0 || (c.TokenTTL == 0 && !c.AllowZeroTTL) {
		return fmt.Errorf("%w: token-ttl must be positive, got %d", ErrInvalidConfig, c.TokenTTL)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: base-url %q", ErrInvalidConfig, c.BaseURL)
	}
	if c.Model == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidConfig)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("%w: max-retries must not be negative", ErrInvalidConfig)
	}
	return nil
}

// IssuerOptions returns the token issuer options this configuration asks for.
func (c *Config) IssuerOptions() []apitoken.Option {
	var opts []apitoken.Option
	if c.SignType != "" {
		opts = append(opts, apitoken.WithSignType(c.SignType))
	}
	if c.AllowZeroTTL {
		opts = append(opts, apitoken.AllowZeroLifetime())
	}
	return opts
}

// LoadEnvFile loads variables from a dotenv file into the process
// environment. A missing file is not an error; variables already set win.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
