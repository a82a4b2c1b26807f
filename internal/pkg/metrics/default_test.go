package metrics

import (
	"testing"

	"github.com/Kargones/taskdispatch/internal/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetInstalled сбрасывает сборщик процесса после теста.
func resetInstalled(t *testing.T) {
	t.Helper()
	installed.Store(nil)
	t.Cleanup(func() { installed.Store(nil) })
}

func TestDefault_WithoutInstallIsInactive(t *testing.T) {
	resetInstalled(t)

	assert.Same(t, Inactive(), Default())
}

func TestInstall(t *testing.T) {
	resetInstalled(t)

	active := NewActiveCollector(logging.NewNopLogger())
	require.NoError(t, Install(active))
	assert.Same(t, active, Default())

	err := Install(NewActiveCollector(logging.NewNopLogger()))
	assert.ErrorIs(t, err, ErrAlreadyInstalled)
	assert.Same(t, active, Default(), "повторная установка не меняет сборщик")
}

func TestInstall_Nil(t *testing.T) {
	resetInstalled(t)

	assert.ErrorIs(t, Install(nil), ErrNilCollector)
	assert.Same(t, Inactive(), Default())
}
