package repository

import (
	"context"
	"errors"
)

// ErrNotFound reports a branch or tag that does not exist locally. Callers
// that delete refs which may already be gone check for it with errors.Is.
var ErrNotFound = errors.New("reference not found")

// GitRepository defines the version-control operations the release workflow
// drives. Every call goes straight to the repository; nothing is cached
// between invocations.
type GitRepository interface {
	// Branch and worktree operations
	CheckoutBranch(ctx context.Context, name string) error
	Pull(ctx context.Context, remote, branch string) error
	FetchTags(ctx context.Context, remote string) error
	PushBranch(ctx context.Context, remote, branch string) error
	PushTags(ctx context.Context, remote string) error
	ResetHard(ctx context.Context, ref string) error
	DeleteBranch(ctx context.Context, name string) error
	DeleteTag(ctx context.Context, name string) error
	// History queries
	ReleaseTags(ctx context.Context) ([]string, error)
	RangeSubjects(ctx context.Context, refA, refB string) ([]string, error)
}
