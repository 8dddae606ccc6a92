package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowService_SanitizeVersion(t *testing.T) {
	svc := &flowService{timeout: DefaultFlowTimeout}
	t.Run("Should accept version-shaped and literal ref-safe arguments", func(t *testing.T) {
		for _, v := range []string{"1.2.3", "1.2", "2.0.0-rc1", "hotfix_build"} {
			assert.NoError(t, svc.sanitizeVersion(v), v)
		}
	})
	t.Run("Should reject arguments that could escape the command line", func(t *testing.T) {
		for _, v := range []string{"", "1.2.3; rm -rf /", "a b", "../../etc", "v1/..", "$(whoami)"} {
			assert.Error(t, svc.sanitizeVersion(v), v)
		}
	})
}

func TestNewFlowService(t *testing.T) {
	t.Run("Should configure the default timeout", func(t *testing.T) {
		svc := NewFlowService()
		require.NotNil(t, svc)
		assert.Equal(t, DefaultFlowTimeout, svc.(*flowService).timeout)
	})
}
