package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/relflow/relflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExtractUC(t *testing.T, gitRepo *mockGitRepository) *ExtractIssuesUseCase {
	t.Helper()
	pattern, err := domain.TicketPattern(domain.DefaultTicketPrefix, false)
	require.NoError(t, err)
	return &ExtractIssuesUseCase{GitRepo: gitRepo, Pattern: pattern}
}

func TestExtractIssuesUseCase_Execute(t *testing.T) {
	rng := &Range{From: "develop", To: "1.1.0"}
	t.Run("Should return sorted unique normalized ids", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := newExtractUC(t, gitRepo)
		ctx := context.Background()
		gitRepo.On("RangeSubjects", ctx, "develop", "1.1.0").Return([]string{
			"Fix TKT-1",
			"see tkt-1 again",
			"TKT_2 done",
		}, nil)
		ids, err := uc.Execute(ctx, rng)
		require.NoError(t, err)
		assert.Equal(t, []string{"tkt-1", "tkt_2"}, ids)
	})
	t.Run("Should keep separator variants as distinct ids", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := newExtractUC(t, gitRepo)
		ctx := context.Background()
		gitRepo.On("RangeSubjects", ctx, "develop", "1.1.0").Return([]string{
			"Fix TKT-42 and tkt_42 again",
		}, nil)
		ids, err := uc.Execute(ctx, rng)
		require.NoError(t, err)
		assert.Equal(t, []string{"tkt-42", "tkt_42"}, ids)
	})
	t.Run("Should be idempotent across repeated runs", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := newExtractUC(t, gitRepo)
		ctx := context.Background()
		gitRepo.On("RangeSubjects", ctx, "develop", "1.1.0").Return([]string{
			"tkt-3 then TKT-2 then tkt-10",
		}, nil)
		first, err := uc.Execute(ctx, rng)
		require.NoError(t, err)
		second, err := uc.Execute(ctx, rng)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, []string{"tkt-10", "tkt-2", "tkt-3"}, first)
	})
	t.Run("Should return empty for a range without ticket references", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := newExtractUC(t, gitRepo)
		ctx := context.Background()
		gitRepo.On("RangeSubjects", ctx, "develop", "1.1.0").Return([]string{"chore: tidy"}, nil)
		ids, err := uc.Execute(ctx, rng)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
	t.Run("Should propagate repository errors", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := newExtractUC(t, gitRepo)
		ctx := context.Background()
		gitRepo.On("RangeSubjects", ctx, "develop", "1.1.0").Return([]string(nil), errors.New("bad range"))
		_, err := uc.Execute(ctx, rng)
		assert.Error(t, err)
	})
}
