package usecase

import (
	"context"

	"github.com/relflow/relflow/internal/domain"
	"github.com/relflow/relflow/internal/repository"
)

// NextVersionUseCase computes the next release version from tag history.

type NextVersionUseCase struct {
	GitRepo repository.GitRepository
}

// Execute returns the bumped version, or 0.0.0 when no release exists yet,
// regardless of kind.
func (uc *NextVersionUseCase) Execute(ctx context.Context, kind domain.BumpKind) (*domain.Version, error) {
	list := &ListVersionsUseCase{GitRepo: uc.GitRepo}
	versions, err := list.Execute(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return domain.ZeroVersion(), nil
	}
	return versions[0].Bump(kind), nil
}
