package service

import "time"

// Timeout constants for service operations
const (
	// DefaultFlowTimeout is the timeout for git-flow operations; finishing a
	// release performs two merges and a tag.
	DefaultFlowTimeout = 5 * time.Minute
)
