package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/relflow/relflow/internal/config"
	"github.com/relflow/relflow/internal/domain"
	"github.com/relflow/relflow/internal/repository"
	"github.com/relflow/relflow/internal/service"
	"github.com/relflow/relflow/internal/usecase"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const releaseBranchPrefix = "release/"

// DeployOptions configures a deploy run.
type DeployOptions struct {
	// Arg is a bump kind or a literal version; empty means the default kind.
	Arg string
	// Send pushes the finished release to the remote.
	Send bool
	// ReportPath, when set, also writes the issue report to this file.
	ReportPath string
}

// IssueReport is the outcome of an issues query.
type IssueReport struct {
	Range usecase.Range
	IDs   []string
}

// String renders the resolved range header followed by one ticket id per
// line.
func (r *IssueReport) String() string {
	lines := append([]string{r.Range.String()}, r.IDs...)
	return strings.Join(lines, "\n") + "\n"
}

// ReleaseOrchestrator sequences version-control side effects around the pure
// version and issue-extraction logic. Each chain short-circuits on the first
// failing step; the failing command's diagnostic is surfaced unmodified.
type ReleaseOrchestrator struct {
	cfg     *config.Config
	gitRepo repository.GitRepository
	ghRepo  repository.GithubRepository
	fsRepo  repository.FileSystemRepository
	flowSvc service.FlowService
	lock    *ReleaseLock
	log     *zap.Logger
	pattern *regexp.Regexp
	out     io.Writer
}

// NewReleaseOrchestrator creates a new release orchestrator. ghRepo may be
// nil; GitHub release publication is then skipped.
func NewReleaseOrchestrator(
	cfg *config.Config,
	gitRepo repository.GitRepository,
	ghRepo repository.GithubRepository,
	fsRepo repository.FileSystemRepository,
	flowSvc service.FlowService,
	lock *ReleaseLock,
	log *zap.Logger,
) (*ReleaseOrchestrator, error) {
	pattern, err := domain.TicketPattern(cfg.TicketPrefix, cfg.LegacyTicketPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket pattern: %w", err)
	}
	return &ReleaseOrchestrator{
		cfg:     cfg,
		gitRepo: gitRepo,
		ghRepo:  ghRepo,
		fsRepo:  fsRepo,
		flowSvc: flowSvc,
		lock:    lock,
		log:     log,
		pattern: pattern,
		out:     os.Stdout,
	}, nil
}

// SetOutput redirects report output; commands pass their own writer.
func (o *ReleaseOrchestrator) SetOutput(w io.Writer) {
	o.out = w
}

func (o *ReleaseOrchestrator) withLock(ctx context.Context, fn func(context.Context) error) error {
	release, err := o.lock.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	return fn(ctx)
}

// Versions returns up to count released versions, newest first.
func (o *ReleaseOrchestrator) Versions(ctx context.Context, count int) ([]string, error) {
	uc := &usecase.ListVersionsUseCase{GitRepo: o.gitRepo}
	versions, err := uc.Execute(ctx, count)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(versions))
	for _, v := range versions {
		out = append(out, v.String())
	}
	return out, nil
}

// Previous returns the version offset positions behind the latest release,
// or empty when history is not deep enough.
func (o *ReleaseOrchestrator) Previous(ctx context.Context, offset int) (string, error) {
	uc := &usecase.ListVersionsUseCase{GitRepo: o.gitRepo}
	v, err := uc.Previous(ctx, offset)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return v.String(), nil
}

// Next returns the computed next version for the named bump kind; 0.0.0 when
// no release exists yet.
func (o *ReleaseOrchestrator) Next(ctx context.Context, kindName string) (string, error) {
	kind := domain.DefaultBump
	if kindName != "" {
		parsed, ok := domain.ParseBumpKind(kindName)
		if !ok {
			return "", fmt.Errorf("unknown bump kind %q (expected major, minor or patch)", kindName)
		}
		kind = parsed
	}
	uc := &usecase.NextVersionUseCase{GitRepo: o.gitRepo}
	v, err := uc.Execute(ctx, kind)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// Issues resolves the range endpoints and extracts the ticket ids referenced
// by the commits in between. Side-effect free.
func (o *ReleaseOrchestrator) Issues(ctx context.Context, pointA, pointB string) (*IssueReport, error) {
	resolve := &usecase.ResolveRangeUseCase{GitRepo: o.gitRepo, DevelopBranch: o.cfg.DevelopBranch}
	rng, err := resolve.Execute(ctx, pointA, pointB)
	if err != nil {
		return nil, err
	}
	extract := &usecase.ExtractIssuesUseCase{GitRepo: o.gitRepo, Pattern: o.pattern}
	ids, err := extract.Execute(ctx, rng)
	if err != nil {
		return nil, err
	}
	return &IssueReport{Range: *rng, IDs: ids}, nil
}

// WriteIssueReport writes a report to the given path.
func (o *ReleaseOrchestrator) WriteIssueReport(report *IssueReport, path string) error {
	if err := afero.WriteFile(o.fsRepo, path, []byte(report.String()), FilePermissionsReadWrite); err != nil {
		return fmt.Errorf("failed to write issue report: %w", err)
	}
	return nil
}

// Prepare syncs the local master and develop branches and tags with the
// remote, ending on develop.
func (o *ReleaseOrchestrator) Prepare(ctx context.Context) error {
	return o.withLock(ctx, o.prepare)
}

func (o *ReleaseOrchestrator) prepare(ctx context.Context) error {
	o.log.Info("syncing local branches with remote",
		zap.String("remote", o.cfg.Remote),
		zap.String("master", o.cfg.MasterBranch),
		zap.String("develop", o.cfg.DevelopBranch))
	if err := o.gitRepo.CheckoutBranch(ctx, o.cfg.MasterBranch); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", o.cfg.MasterBranch, err)
	}
	if err := o.gitRepo.Pull(ctx, o.cfg.Remote, o.cfg.MasterBranch); err != nil {
		return fmt.Errorf("failed to pull %s: %w", o.cfg.MasterBranch, err)
	}
	if err := o.gitRepo.CheckoutBranch(ctx, o.cfg.DevelopBranch); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", o.cfg.DevelopBranch, err)
	}
	if err := o.gitRepo.Pull(ctx, o.cfg.Remote, o.cfg.DevelopBranch); err != nil {
		return fmt.Errorf("failed to pull %s: %w", o.cfg.DevelopBranch, err)
	}
	if err := o.gitRepo.FetchTags(ctx, o.cfg.Remote); err != nil {
		return fmt.Errorf("failed to fetch tags: %w", err)
	}
	return nil
}

// Create starts and finishes a git-flow release for the resolved version.
// The argument is a bump kind or a literal version taken verbatim.
func (o *ReleaseOrchestrator) Create(ctx context.Context, arg string) error {
	return o.withLock(ctx, func(ctx context.Context) error {
		return o.create(ctx, arg)
	})
}

func (o *ReleaseOrchestrator) create(ctx context.Context, arg string) error {
	version, err := o.resolveVersionArg(ctx, arg)
	if err != nil {
		return err
	}
	if err := ValidateBranchName(releaseBranchPrefix + version); err != nil {
		return fmt.Errorf("invalid release version %q: %w", version, err)
	}
	o.log.Info("creating release", zap.String("version", version))
	if err := o.flowSvc.ReleaseStart(ctx, version); err != nil {
		return err
	}
	return o.flowSvc.ReleaseFinish(ctx, version)
}

// resolveVersionArg maps a bump-kind name to the computed next version and
// passes anything else through as a literal version. Literal versions are
// not validated against semantic-version shape; downstream commands assume
// it, so a malformed literal surfaces later as their failure.
func (o *ReleaseOrchestrator) resolveVersionArg(ctx context.Context, arg string) (string, error) {
	if arg == "" {
		arg = string(domain.DefaultBump)
	}
	if _, ok := domain.ParseBumpKind(arg); ok {
		return o.Next(ctx, arg)
	}
	return arg, nil
}

// Send pushes develop, then master plus tags, publishes an optional GitHub
// release and returns to develop.
func (o *ReleaseOrchestrator) Send(ctx context.Context) error {
	return o.withLock(ctx, o.send)
}

func (o *ReleaseOrchestrator) send(ctx context.Context) error {
	o.log.Info("pushing release to remote", zap.String("remote", o.cfg.Remote))
	if err := o.pushWithRetry(ctx, o.cfg.DevelopBranch); err != nil {
		return err
	}
	if err := o.pushWithRetry(ctx, o.cfg.MasterBranch); err != nil {
		return err
	}
	err := retry.Do(ctx, retry.WithMaxRetries(DefaultRetryCount, retry.NewExponential(DefaultRetryDelay)),
		func(ctx context.Context) error {
			return retry.RetryableError(o.gitRepo.PushTags(ctx, o.cfg.Remote))
		})
	if err != nil {
		return fmt.Errorf("failed to push tags: %w", err)
	}
	if err := o.publishGithubRelease(ctx); err != nil {
		return err
	}
	if err := o.gitRepo.CheckoutBranch(ctx, o.cfg.DevelopBranch); err != nil {
		return fmt.Errorf("failed to return to %s: %w", o.cfg.DevelopBranch, err)
	}
	return nil
}

func (o *ReleaseOrchestrator) pushWithRetry(ctx context.Context, branch string) error {
	err := retry.Do(ctx, retry.WithMaxRetries(DefaultRetryCount, retry.NewExponential(DefaultRetryDelay)),
		func(ctx context.Context) error {
			return retry.RetryableError(o.gitRepo.PushBranch(ctx, o.cfg.Remote, branch))
		})
	if err != nil {
		return fmt.Errorf("failed to push %s: %w", branch, err)
	}
	return nil
}

// publishGithubRelease creates a GitHub release for the just-pushed tag when
// a GitHub repository is configured. The body is the ticket report of the
// latest release range.
func (o *ReleaseOrchestrator) publishGithubRelease(ctx context.Context) error {
	if o.ghRepo == nil {
		return nil
	}
	versions, err := o.Versions(ctx, 1)
	if err != nil {
		return err
	}
	if len(versions) == 0 {
		o.log.Warn("no release tag found, skipping GitHub release")
		return nil
	}
	version := versions[0]
	var body string
	if report, err := o.Issues(ctx, usecase.PreviousPoint, "0"); err == nil {
		body = strings.Join(report.IDs, "\n")
	} else if !errors.Is(err, usecase.ErrNoReleases) {
		return err
	}
	o.log.Info("publishing GitHub release", zap.String("version", version))
	err = retry.Do(ctx, retry.WithMaxRetries(DefaultRetryCount, retry.NewExponential(DefaultRetryDelay)),
		func(ctx context.Context) error {
			return retry.RetryableError(o.ghRepo.CreateRelease(ctx, version, version, body))
		})
	if err != nil {
		return fmt.Errorf("failed to publish GitHub release: %w", err)
	}
	return nil
}

// Revert destructively undoes the most recent local release: both branches
// are hard-reset to the remote heads and the local release branch and tag
// are removed. Any unpushed work on master or develop is lost.
func (o *ReleaseOrchestrator) Revert(ctx context.Context) error {
	return o.withLock(ctx, o.revert)
}

func (o *ReleaseOrchestrator) revert(ctx context.Context) error {
	versions, err := o.Versions(ctx, 1)
	if err != nil {
		return err
	}
	if len(versions) == 0 {
		return fmt.Errorf("no release to revert")
	}
	version := versions[0]
	o.log.Warn("reverting local release", zap.String("version", version))
	if err := o.gitRepo.CheckoutBranch(ctx, o.cfg.MasterBranch); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", o.cfg.MasterBranch, err)
	}
	if err := o.gitRepo.ResetHard(ctx, o.cfg.Remote+"/"+o.cfg.MasterBranch); err != nil {
		return fmt.Errorf("failed to reset %s: %w", o.cfg.MasterBranch, err)
	}
	if err := o.gitRepo.CheckoutBranch(ctx, o.cfg.DevelopBranch); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", o.cfg.DevelopBranch, err)
	}
	if err := o.gitRepo.ResetHard(ctx, o.cfg.Remote+"/"+o.cfg.DevelopBranch); err != nil {
		return fmt.Errorf("failed to reset %s: %w", o.cfg.DevelopBranch, err)
	}
	// flow finish already removes the release branch; gone refs are fine.
	if err := o.gitRepo.DeleteBranch(ctx, releaseBranchPrefix+version); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		o.log.Debug("release branch already deleted", zap.String("version", version))
	}
	if err := o.gitRepo.DeleteTag(ctx, version); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		o.log.Debug("release tag already deleted", zap.String("version", version))
	}
	return o.prepare(ctx)
}

// Deploy runs prepare, prints the issue report, creates the release and
// optionally sends it.
func (o *ReleaseOrchestrator) Deploy(ctx context.Context, opts DeployOptions) error {
	return o.withLock(ctx, func(ctx context.Context) error {
		return o.deploy(ctx, opts)
	})
}

func (o *ReleaseOrchestrator) deploy(ctx context.Context, opts DeployOptions) error {
	log := o.log.With(zap.String("run_id", uuid.NewString()))
	log.Info("starting deploy", zap.String("arg", opts.Arg), zap.Bool("send", opts.Send))
	if err := o.prepare(ctx); err != nil {
		return err
	}
	if err := o.reportIssues(ctx, opts.ReportPath, log); err != nil {
		return err
	}
	if err := o.create(ctx, opts.Arg); err != nil {
		return err
	}
	if opts.Send {
		if err := o.send(ctx); err != nil {
			return err
		}
	}
	log.Info("deploy finished")
	return nil
}

// reportIssues prints the report for the default range. The first release of
// a repository has no range to report on; that is not a reason to stop the
// deploy.
func (o *ReleaseOrchestrator) reportIssues(ctx context.Context, reportPath string, log *zap.Logger) error {
	report, err := o.Issues(ctx, "", "")
	if err != nil {
		if errors.Is(err, usecase.ErrNoReleases) {
			log.Warn("no previous release, skipping issue report")
			return nil
		}
		return err
	}
	fmt.Fprint(o.out, report.String())
	if reportPath != "" {
		return o.WriteIssueReport(report, reportPath)
	}
	return nil
}
