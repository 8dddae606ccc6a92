package config

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Run("Should carry the conventional git-flow values", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.Equal(t, "origin", cfg.Remote)
		assert.Equal(t, "master", cfg.MasterBranch)
		assert.Equal(t, "develop", cfg.DevelopBranch)
		assert.Equal(t, "tkt", cfg.TicketPrefix)
		assert.False(t, cfg.LegacyTicketPattern)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("Should accept the defaults", func(t *testing.T) {
		require.NoError(t, DefaultConfig().Validate())
	})
	t.Run("Should reject empty branch names", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DevelopBranch = ""
		assert.Error(t, cfg.Validate())
	})
	t.Run("Should reject unsafe ref names", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MasterBranch = "ma..ster"
		assert.Error(t, cfg.Validate())
	})
	t.Run("Should reject identical master and develop", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DevelopBranch = cfg.MasterBranch
		assert.Error(t, cfg.Validate())
	})
	t.Run("Should reject an empty ticket prefix", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.TicketPrefix = " "
		assert.Error(t, cfg.Validate())
	})
	t.Run("Should validate GitHub settings only when a token is set", func(t *testing.T) {
		cfg := DefaultConfig()
		require.NoError(t, cfg.Validate())
		cfg.GithubToken = strings.Repeat("a", 40)
		assert.Error(t, cfg.Validate()) // owner/repo missing
		cfg.GithubOwner = "acme"
		cfg.GithubRepo = "widgets"
		assert.NoError(t, cfg.Validate())
		cfg.GithubToken = "short"
		assert.Error(t, cfg.Validate())
	})
}

func TestLoadConfig(t *testing.T) {
	chdir := func(t *testing.T, dir string) {
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })
	}
	t.Run("Should fall back to defaults without a config file", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("RELFLOW_GITHUB_TOKEN", "")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "origin", cfg.Remote)
		assert.Equal(t, "develop", cfg.DevelopBranch)
	})
	t.Run("Should read overrides from .relflow.yaml", func(t *testing.T) {
		dir := t.TempDir()
		contents := "remote: upstream\nmaster_branch: main\nticket_prefix: jira\nlegacy_ticket_pattern: true\n"
		require.NoError(t, os.WriteFile(dir+"/.relflow.yaml", []byte(contents), 0644))
		chdir(t, dir)
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("RELFLOW_GITHUB_TOKEN", "")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "upstream", cfg.Remote)
		assert.Equal(t, "main", cfg.MasterBranch)
		assert.Equal(t, "develop", cfg.DevelopBranch)
		assert.Equal(t, "jira", cfg.TicketPrefix)
		assert.True(t, cfg.LegacyTicketPattern)
	})
	t.Run("Should surface validation failures", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(dir+"/.relflow.yaml", []byte("develop_branch: master\n"), 0644))
		chdir(t, dir)
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("RELFLOW_GITHUB_TOKEN", "")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
