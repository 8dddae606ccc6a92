package usecase

import (
	"context"
	"regexp"
	"sort"

	"github.com/relflow/relflow/internal/domain"
	"github.com/relflow/relflow/internal/repository"
)

// ExtractIssuesUseCase scans a commit range's subject lines for ticket
// references.

type ExtractIssuesUseCase struct {
	GitRepo repository.GitRepository
	Pattern *regexp.Regexp
}

// Execute returns the normalized ticket ids found in the range, deduplicated
// and sorted ascending. No match is an empty result, not an error.
func (uc *ExtractIssuesUseCase) Execute(ctx context.Context, rng *Range) ([]string, error) {
	subjects, err := uc.GitRepo.RangeSubjects(ctx, rng.From, rng.To)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	for _, subject := range subjects {
		for _, match := range uc.Pattern.FindAllString(subject, -1) {
			seen[domain.NormalizeIssueID(match)] = struct{}{}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
