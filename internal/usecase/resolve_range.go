package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/relflow/relflow/internal/repository"
)

// ErrNoReleases reports that range resolution needed a released version and
// the repository has none.
var ErrNoReleases = errors.New("no releases found")

// PreviousPoint is the addressing-mode token for the first endpoint: the
// second argument then becomes an integer backward offset instead of a ref.
const PreviousPoint = "previous"

// Range is an unordered pair of history points bounding a commit query.
type Range struct {
	From string
	To   string
}

func (r Range) String() string {
	return r.From + ".." + r.To
}

// ResolveRangeUseCase turns the two endpoint arguments of an issues query
// into concrete refs.

type ResolveRangeUseCase struct {
	GitRepo       repository.GitRepository
	DevelopBranch string
}

// Execute resolves the endpoints. Empty pointA defaults to the develop
// branch and empty pointB to the current version. When pointA is the literal
// "previous", pointB is repurposed as a backward offset k (default 0) and
// the result is the boundary of release k, i.e. (previous(k), previous(k+1));
// a ref supplied in that position is never used as one.
func (uc *ResolveRangeUseCase) Execute(ctx context.Context, pointA, pointB string) (*Range, error) {
	list := &ListVersionsUseCase{GitRepo: uc.GitRepo}
	if pointA == PreviousPoint {
		offset := 0
		if pointB != "" {
			parsed, err := strconv.Atoi(pointB)
			if err != nil {
				return nil, fmt.Errorf("previous offset must be an integer, got %q", pointB)
			}
			offset = parsed
		}
		from, err := list.Previous(ctx, offset)
		if err != nil {
			return nil, err
		}
		to, err := list.Previous(ctx, offset+1)
		if err != nil {
			return nil, err
		}
		if from == nil || to == nil {
			return nil, fmt.Errorf("release history not deep enough for previous %d: %w", offset, ErrNoReleases)
		}
		return &Range{From: from.String(), To: to.String()}, nil
	}
	if pointA == "" {
		pointA = uc.DevelopBranch
	}
	if pointB == "" {
		versions, err := list.Execute(ctx, 1)
		if err != nil {
			return nil, err
		}
		if len(versions) == 0 {
			return nil, fmt.Errorf("cannot default range endpoint to current version: %w", ErrNoReleases)
		}
		pointB = versions[0].String()
	}
	return &Range{From: pointA, To: pointB}, nil
}
