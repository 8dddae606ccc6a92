package orchestrator

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Mock for GitRepository - implements all methods from the interface
type mockGitRepository struct{ mock.Mock }

func (m *mockGitRepository) CheckoutBranch(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}
func (m *mockGitRepository) Pull(ctx context.Context, remote, branch string) error {
	args := m.Called(ctx, remote, branch)
	return args.Error(0)
}
func (m *mockGitRepository) FetchTags(ctx context.Context, remote string) error {
	args := m.Called(ctx, remote)
	return args.Error(0)
}
func (m *mockGitRepository) PushBranch(ctx context.Context, remote, branch string) error {
	args := m.Called(ctx, remote, branch)
	return args.Error(0)
}
func (m *mockGitRepository) PushTags(ctx context.Context, remote string) error {
	args := m.Called(ctx, remote)
	return args.Error(0)
}
func (m *mockGitRepository) ResetHard(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}
func (m *mockGitRepository) DeleteBranch(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}
func (m *mockGitRepository) DeleteTag(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}
func (m *mockGitRepository) ReleaseTags(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	tags, _ := args.Get(0).([]string)
	return tags, args.Error(1)
}
func (m *mockGitRepository) RangeSubjects(ctx context.Context, refA, refB string) ([]string, error) {
	args := m.Called(ctx, refA, refB)
	subjects, _ := args.Get(0).([]string)
	return subjects, args.Error(1)
}

// Mock for FlowService
type mockFlowService struct{ mock.Mock }

func (m *mockFlowService) ReleaseStart(ctx context.Context, version string) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}
func (m *mockFlowService) ReleaseFinish(ctx context.Context, version string) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}

// Mock for GithubRepository
type mockGithubRepository struct{ mock.Mock }

func (m *mockGithubRepository) CreateRelease(ctx context.Context, tag, name, body string) error {
	args := m.Called(ctx, tag, name, body)
	return args.Error(0)
}
