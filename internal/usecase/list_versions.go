package usecase

import (
	"context"

	"github.com/relflow/relflow/internal/domain"
	"github.com/relflow/relflow/internal/repository"
)

// ListVersionsUseCase reads the released versions from tag history, newest
// first. Tags that do not parse as versions are skipped, not reported.

type ListVersionsUseCase struct {
	GitRepo repository.GitRepository
}

// Execute returns up to count versions, newest first. An empty result means
// no release exists yet and is not an error.
func (uc *ListVersionsUseCase) Execute(ctx context.Context, count int) ([]*domain.Version, error) {
	if count < 1 {
		count = 1
	}
	tags, err := uc.GitRepo.ReleaseTags(ctx)
	if err != nil {
		return nil, err
	}
	var versions []*domain.Version
	for _, tag := range tags {
		v, err := domain.ParseVersion(tag)
		if err != nil {
			continue
		}
		versions = append(versions, v)
		if len(versions) == count {
			break
		}
	}
	return versions, nil
}

// Previous returns the version offset positions behind the latest release
// (offset 1 is the release immediately before the current one). It returns
// nil when history is not deep enough.
func (uc *ListVersionsUseCase) Previous(ctx context.Context, offset int) (*domain.Version, error) {
	if offset < 0 {
		offset = 0
	}
	versions, err := uc.Execute(ctx, offset+1)
	if err != nil {
		return nil, err
	}
	if len(versions) < offset+1 {
		return nil, nil
	}
	return versions[offset], nil
}
