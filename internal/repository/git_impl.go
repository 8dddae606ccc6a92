package repository

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

// gitRepository is the implementation of the GitRepository interface.

type gitRepository struct {
	repo *git.Repository
}

// NewGitRepository opens the repository in the working directory.
func NewGitRepository() (GitRepository, error) {
	repo, err := git.PlainOpen(".")
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return &gitRepository{repo: repo}, nil
}

// CheckoutBranch switches the worktree to the given branch.
func (r *gitRepository) CheckoutBranch(_ context.Context, name string) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	if err := w.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
	}); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", name, err)
	}
	return nil
}

// Pull fast-forwards the current branch from the remote.
func (r *gitRepository) Pull(ctx context.Context, remote, branch string) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	err = w.PullContext(ctx, &git.PullOptions{
		RemoteName:    remote,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		Auth:          r.getAuth(),
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return fmt.Errorf("failed to pull %s from %s: %w", branch, remote, err)
	}
	return nil
}

// FetchTags fetches all tags from the remote.
func (r *gitRepository) FetchTags(ctx context.Context, remote string) error {
	rem, err := r.repo.Remote(remote)
	if err != nil {
		return fmt.Errorf("failed to get remote %s: %w", remote, err)
	}
	err = rem.FetchContext(ctx, &git.FetchOptions{
		RefSpecs: []config.RefSpec{
			config.RefSpec("+refs/tags/*:refs/tags/*"),
		},
		Auth: r.getAuth(),
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return fmt.Errorf("failed to fetch tags from %s: %w", remote, err)
	}
	return nil
}

// PushBranch pushes a branch to the remote.
func (r *gitRepository) PushBranch(ctx context.Context, remote, branch string) error {
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{config.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch))},
		Auth:       r.getAuth(),
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return fmt.Errorf("failed to push %s to %s: %w", branch, remote, err)
	}
	return nil
}

// PushTags pushes all local tags to the remote.
func (r *gitRepository) PushTags(ctx context.Context, remote string) error {
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{config.RefSpec("refs/tags/*:refs/tags/*")},
		Auth:       r.getAuth(),
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return fmt.Errorf("failed to push tags to %s: %w", remote, err)
	}
	return nil
}

// ResetHard performs a hard reset to the specified reference.
func (r *gitRepository) ResetHard(_ context.Context, ref string) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return fmt.Errorf("failed to resolve revision %s: %w", ref, err)
	}
	if err := w.Reset(&git.ResetOptions{Commit: *hash, Mode: git.HardReset}); err != nil {
		return fmt.Errorf("failed to reset to %s: %w", ref, err)
	}
	return nil
}

// DeleteBranch deletes a local branch. Returns ErrNotFound when the branch
// does not exist.
func (r *gitRepository) DeleteBranch(_ context.Context, name string) error {
	branchRef := plumbing.NewBranchReferenceName(name)
	if _, err := r.repo.Reference(branchRef, false); err != nil {
		if err == plumbing.ErrReferenceNotFound {
			return fmt.Errorf("branch %s: %w", name, ErrNotFound)
		}
		return fmt.Errorf("failed to look up branch %s: %w", name, err)
	}
	if err := r.repo.Storer.RemoveReference(branchRef); err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", name, err)
	}
	return nil
}

// DeleteTag deletes a local tag. Returns ErrNotFound when the tag does not
// exist.
func (r *gitRepository) DeleteTag(_ context.Context, name string) error {
	if _, err := r.repo.Tag(name); err != nil {
		if err == git.ErrTagNotFound {
			return fmt.Errorf("tag %s: %w", name, ErrNotFound)
		}
		return fmt.Errorf("failed to look up tag %s: %w", name, err)
	}
	if err := r.repo.DeleteTag(name); err != nil {
		return fmt.Errorf("failed to delete tag %s: %w", name, err)
	}
	return nil
}

// tagsByCommit maps each tagged commit to its tag names, resolving both
// lightweight and annotated tags.
func (r *gitRepository) tagsByCommit() (map[plumbing.Hash][]string, error) {
	tagRefs, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	byCommit := make(map[plumbing.Hash][]string)
	if err := tagRefs.ForEach(func(ref *plumbing.Reference) error {
		target := ref.Hash()
		if tagObj, err := r.repo.TagObject(ref.Hash()); err == nil {
			target = tagObj.Target
		}
		if _, err := r.repo.CommitObject(target); err != nil {
			return nil // skip tags that do not point at commits
		}
		byCommit[target] = append(byCommit[target], ref.Name().Short())
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	return byCommit, nil
}

// ReleaseTags returns all tag names in the order their commits appear in the
// log from HEAD, newest first. Tag names are returned raw; callers decide
// which ones denote releases.
func (r *gitRepository) ReleaseTags(_ context.Context) ([]string, error) {
	byCommit, err := r.tagsByCommit()
	if err != nil {
		return nil, err
	}
	if len(byCommit) == 0 {
		return nil, nil
	}
	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}
	log, err := r.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("failed to get log: %w", err)
	}
	var tags []string
	err = log.ForEach(func(c *object.Commit) error {
		tags = append(tags, byCommit[c.Hash]...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate log: %w", err)
	}
	return tags, nil
}

// reachable collects every commit hash reachable from the given revision.
func (r *gitRepository) reachable(ref string) (map[plumbing.Hash]struct{}, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve revision %s: %w", ref, err)
	}
	log, err := r.repo.Log(&git.LogOptions{From: *hash})
	if err != nil {
		return nil, fmt.Errorf("failed to get log from %s: %w", ref, err)
	}
	seen := make(map[plumbing.Hash]struct{})
	err = log.ForEach(func(c *object.Commit) error {
		seen[c.Hash] = struct{}{}
		return nil
	})
	if err != nil && err != storer.ErrStop {
		return nil, fmt.Errorf("failed to iterate log from %s: %w", ref, err)
	}
	return seen, nil
}

// subjectsBetween returns the subject lines of commits reachable from 'to'
// but not from 'from', newest first.
func (r *gitRepository) subjectsBetween(from, to string) ([]string, error) {
	exclude, err := r.reachable(from)
	if err != nil {
		return nil, err
	}
	toHash, err := r.repo.ResolveRevision(plumbing.Revision(to))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve revision %s: %w", to, err)
	}
	log, err := r.repo.Log(&git.LogOptions{From: *toHash})
	if err != nil {
		return nil, fmt.Errorf("failed to get log from %s: %w", to, err)
	}
	var subjects []string
	err = log.ForEach(func(c *object.Commit) error {
		if _, ok := exclude[c.Hash]; ok {
			return nil
		}
		subject, _, _ := strings.Cut(c.Message, "\n")
		subjects = append(subjects, strings.TrimSpace(subject))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate range log: %w", err)
	}
	return subjects, nil
}

// RangeSubjects returns one-line summaries for the commits between the two
// endpoints. The pair is an unordered boundary: the query runs as refA..refB
// and, when that side is empty, retries with the endpoints swapped.
func (r *gitRepository) RangeSubjects(_ context.Context, refA, refB string) ([]string, error) {
	subjects, err := r.subjectsBetween(refA, refB)
	if err != nil {
		return nil, err
	}
	if len(subjects) == 0 {
		return r.subjectsBetween(refB, refA)
	}
	return subjects, nil
}

// getAuth returns token authentication for remote operations when available.
func (r *gitRepository) getAuth() *http.BasicAuth {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		token = os.Getenv("RELFLOW_GITHUB_TOKEN")
	}
	if token == "" {
		return nil
	}
	return &http.BasicAuth{
		Username: "x-access-token",
		Password: token,
	}
}
