package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the immutable settings the tool runs with. It is built once
// at startup and passed by reference; nothing mutates it afterwards.
type Config struct {
	Remote              string `mapstructure:"remote"`
	MasterBranch        string `mapstructure:"master_branch"`
	DevelopBranch       string `mapstructure:"develop_branch"`
	TicketPrefix        string `mapstructure:"ticket_prefix"`
	LegacyTicketPattern bool   `mapstructure:"legacy_ticket_pattern"`
	Debug               bool   `mapstructure:"debug"`
	GithubToken         string `mapstructure:"github_token"`
	GithubOwner         string `mapstructure:"github_owner"`
	GithubRepo          string `mapstructure:"github_repo"`
}

// DefaultConfig returns a Config with the conventional git-flow values.
func DefaultConfig() *Config {
	return &Config{
		Remote:        "origin",
		MasterBranch:  "master",
		DevelopBranch: "develop",
		TicketPrefix:  "tkt",
	}
}

var validRefName = regexp.MustCompile(`^[a-zA-Z0-9._/-]+$`)

// Validate validates the configuration.
func (c *Config) Validate() error {
	for name, value := range map[string]string{
		"remote":         c.Remote,
		"master_branch":  c.MasterBranch,
		"develop_branch": c.DevelopBranch,
	} {
		if value == "" {
			return fmt.Errorf("%s cannot be empty", name)
		}
		if !validRefName.MatchString(value) || strings.Contains(value, "..") {
			return fmt.Errorf("invalid %s: %s", name, value)
		}
	}
	if c.MasterBranch == c.DevelopBranch {
		return fmt.Errorf("master_branch and develop_branch cannot both be %q", c.MasterBranch)
	}
	if strings.TrimSpace(c.TicketPrefix) == "" {
		return fmt.Errorf("ticket_prefix cannot be empty")
	}
	// GitHub settings are optional; validated only when a token is present.
	if c.GithubToken != "" {
		if err := ValidateGitHubToken(c.GithubToken); err != nil {
			return fmt.Errorf("invalid github_token: %w", err)
		}
		if err := ValidateGitHubOwnerRepo(c.GithubOwner, c.GithubRepo); err != nil {
			return fmt.Errorf("invalid github configuration: %w", err)
		}
	}
	return nil
}

// ValidateGitHubToken validates GitHub token format (exported for reuse)
func ValidateGitHubToken(token string) error {
	token = strings.TrimSpace(token)
	if len(token) < 40 {
		return fmt.Errorf("token too short: expected at least 40 characters")
	}
	classicPAT := regexp.MustCompile(`^[a-fA-F0-9]{40}$`)
	fineGrainedPAT := regexp.MustCompile(`^github_pat_[a-zA-Z0-9_]{82}$`)
	appToken := regexp.MustCompile(`^ghs_[a-zA-Z0-9]{36}$`)
	oauthToken := regexp.MustCompile(`^gho_[a-zA-Z0-9]{36}$`)
	if !classicPAT.MatchString(token) &&
		!fineGrainedPAT.MatchString(token) &&
		!appToken.MatchString(token) &&
		!oauthToken.MatchString(token) {
		return fmt.Errorf("invalid token format")
	}
	return nil
}

// ValidateGitHubOwnerRepo validates GitHub owner and repository names (exported for reuse)
func ValidateGitHubOwnerRepo(owner, repo string) error {
	if owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if repo == "" {
		return fmt.Errorf("repository cannot be empty")
	}
	validName := regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_.]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)
	if !validName.MatchString(owner) {
		return fmt.Errorf("invalid owner format: %s", owner)
	}
	if len(owner) > 39 {
		return fmt.Errorf("owner too long: maximum 39 characters")
	}
	if !validName.MatchString(repo) {
		return fmt.Errorf("invalid repository format: %s", repo)
	}
	if len(repo) > 100 {
		return fmt.Errorf("repository too long: maximum 100 characters")
	}
	return nil
}

// LoadConfig reads .relflow.yaml from the working directory plus RELFLOW_*
// environment variables and returns a validated Config.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".relflow")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("RELFLOW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// The token commonly arrives through GITHUB_TOKEN in CI.
	if err := v.BindEnv("github_token", "GITHUB_TOKEN", "RELFLOW_GITHUB_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind github_token env: %w", err)
	}
	defaults := DefaultConfig()
	v.SetDefault("remote", defaults.Remote)
	v.SetDefault("master_branch", defaults.MasterBranch)
	v.SetDefault("develop_branch", defaults.DevelopBranch)
	v.SetDefault("ticket_prefix", defaults.TicketPrefix)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}
