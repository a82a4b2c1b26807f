package constants

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigPathEnvHasPrefix(t *testing.T) {
	assert.True(t, strings.HasPrefix(ConfigPathEnv, EnvPrefix))
}

func TestExitCodesDistinct(t *testing.T) {
	codes := map[int]struct{}{ExitOK: {}, ExitConfigError: {}, ExitRuntimeError: {}}
	assert.Len(t, codes, 3)
}
