package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrNotSemantic reports a string that cannot be read as a release version.
// Callers treat it as "no version here", not as a fatal condition.
var ErrNotSemantic = errors.New("not a semantic version")

// versionShape restricts input to two or three dot-separated digit runs.
// Masterminds accepts looser shapes (v-prefix, single component, pre-release),
// none of which are valid release tags for this workflow.
var versionShape = regexp.MustCompile(`^\d+\.\d+(\.\d+)?$`)

// Version wraps semver.Version and remembers whether the patch component was
// present in the source string. A two-component version bumps differently on
// patch, so the distinction is carried explicitly instead of being inferred.
type Version struct {
	sv       *semver.Version
	hasPatch bool
}

// ParseVersion parses a release version of the shape N.N or N.N.N.
func ParseVersion(s string) (*Version, error) {
	s = strings.TrimSpace(s)
	if !versionShape.MatchString(s) {
		return nil, fmt.Errorf("%w: %q", ErrNotSemantic, s)
	}
	sv, err := semver.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotSemantic, s)
	}
	return &Version{sv: sv, hasPatch: strings.Count(s, ".") == 2}, nil
}

// ZeroVersion is the version reported when no release exists yet.
func ZeroVersion() *Version {
	return &Version{sv: semver.New(0, 0, 0, "", ""), hasPatch: true}
}

// Major returns the major component.
func (v *Version) Major() uint64 { return v.sv.Major() }

// Minor returns the minor component.
func (v *Version) Minor() uint64 { return v.sv.Minor() }

// Patch returns the patch component; zero when it was absent from the source.
func (v *Version) Patch() uint64 { return v.sv.Patch() }

// HasPatch reports whether the patch component was present when parsed.
func (v *Version) HasPatch() bool { return v.hasPatch }

// Bump returns the next version for the given kind. Bumping never mutates
// the receiver.
func (v *Version) Bump(kind BumpKind) *Version {
	switch kind {
	case BumpMajor:
		nv := v.sv.IncMajor()
		return &Version{sv: &nv, hasPatch: true}
	case BumpPatch:
		if v.hasPatch {
			nv := v.sv.IncPatch()
			return &Version{sv: &nv, hasPatch: true}
		}
		// A version released without a patch component gets patch 1,
		// not an increment of a field it never had.
		return &Version{sv: semver.New(v.sv.Major(), v.sv.Minor(), 1, "", ""), hasPatch: true}
	default:
		nv := v.sv.IncMinor()
		return &Version{sv: &nv, hasPatch: true}
	}
}

// String renders the version with exactly three components and no prefix,
// matching the release tag format.
func (v *Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.sv.Major(), v.sv.Minor(), v.sv.Patch())
}

// BumpKind selects which component of a version to increment.
type BumpKind string

const (
	BumpMajor BumpKind = "major"
	BumpMinor BumpKind = "minor"
	BumpPatch BumpKind = "patch"

	// DefaultBump is used when no kind is supplied.
	DefaultBump = BumpMinor
)

// ParseBumpKind resolves a bump kind name. The second return value is false
// for anything outside the closed set.
func ParseBumpKind(s string) (BumpKind, bool) {
	switch BumpKind(s) {
	case BumpMajor, BumpMinor, BumpPatch:
		return BumpKind(s), true
	}
	return "", false
}
