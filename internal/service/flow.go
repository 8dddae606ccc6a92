package service

import "context"

// FlowService defines the interface for the git-flow release workflow.
// go-git carries no flow porcelain, so these calls shell out to the git-flow
// extension; it fails loudly when flow is not initialized in the repository.

type FlowService interface {
	ReleaseStart(ctx context.Context, version string) error
	ReleaseFinish(ctx context.Context, version string) error
}
