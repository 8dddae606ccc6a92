package cmd

import (
	"github.com/relflow/relflow/internal/config"
	"github.com/relflow/relflow/internal/orchestrator"
	"github.com/relflow/relflow/internal/repository"
	"github.com/relflow/relflow/internal/service"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// container holds all the dependencies for the application.
type container struct {
	cfg  *config.Config
	log  *zap.Logger
	orch *orchestrator.ReleaseOrchestrator
}

// newContainer creates a new container with all the dependencies.
func newContainer() (*container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	gitRepo, err := repository.NewGitRepository()
	if err != nil {
		return nil, err
	}

	// GitHub repository is optional - only create if token is provided
	var ghRepo repository.GithubRepository
	if cfg.GithubToken != "" {
		ghRepo, err = repository.NewGithubRepository(cfg.GithubToken, cfg.GithubOwner, cfg.GithubRepo)
		if err != nil {
			return nil, err
		}
	}

	fsRepo := repository.FileSystemRepository(afero.NewOsFs())
	flowSvc := service.NewFlowService()
	lock := orchestrator.NewReleaseLock(orchestrator.LockFileName)

	orch, err := orchestrator.NewReleaseOrchestrator(cfg, gitRepo, ghRepo, fsRepo, flowSvc, lock, log)
	if err != nil {
		return nil, err
	}

	return &container{
		cfg:  cfg,
		log:  log,
		orch: orch,
	}, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// InitCommands initializes all commands with their dependencies
func InitCommands() error {
	c, err := newContainer()
	if err != nil {
		return err
	}

	rootCmd.AddCommand(
		NewVersionCmd(c.orch),
		NewPreviousCmd(c.orch),
		NewNextCmd(c.orch),
		NewIssuesCmd(c.orch),
		NewPrepareCmd(c.orch),
		NewCreateCmd(c.orch),
		NewSendCmd(c.orch),
		NewRevertCmd(c.orch),
		NewDeployCmd(c.orch),
	)
	return nil
}
