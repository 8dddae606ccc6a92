package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultTicketPrefix is the conventional prefix of ticket references in
// commit subjects.
const DefaultTicketPrefix = "tkt"

// TicketPattern builds the case-insensitive regexp that matches ticket
// references for the given prefix.
//
// The canonical form is prefix, an optional '-' or '_', and a digit run.
// The legacy form (prefix followed by any run of characters excluding
// whitespace, ':', '-', '\'' and ')') predates the digit-only pattern and is
// only available as an explicit compatibility mode.
func TicketPattern(prefix string, legacy bool) (*regexp.Regexp, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil, fmt.Errorf("ticket prefix cannot be empty")
	}
	quoted := regexp.QuoteMeta(prefix)
	if legacy {
		return regexp.Compile(`(?i)` + quoted + `[^\s:')-]+`)
	}
	return regexp.Compile(`(?i)` + quoted + `[-_]?[0-9]+`)
}

// NormalizeIssueID lower-cases a matched ticket reference. Separators are
// preserved, so TKT-42 and tkt_42 normalize to distinct ids.
func NormalizeIssueID(s string) string {
	return strings.ToLower(s)
}
