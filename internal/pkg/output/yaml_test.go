package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestYAMLWriter_ImplementsWriter(_ *testing.T) {
	var _ Writer = (*YAMLWriter)(nil)
}

func TestYAMLWriter_Write(t *testing.T) {
	report := NewSnapshotReport(sampleSnapshot(), true, 10*time.Second)
	result := &Result{
		Status:   StatusSuccess,
		Command:  "run",
		Data:     report,
		Metadata: &Metadata{DurationMs: 10000, APIVersion: APIVersion},
		Summary:  report.Summary(),
	}

	var buf bytes.Buffer
	require.NoError(t, NewYAMLWriter().Write(&buf, result))

	var decoded struct {
		Status   string         `yaml:"status"`
		Data     SnapshotReport `yaml:"data"`
		Metadata Metadata       `yaml:"metadata"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, StatusSuccess, decoded.Status)
	assert.Equal(t, *report, decoded.Data)
	assert.Equal(t, int64(10000), decoded.Metadata.DurationMs)
	require.NotNil(t, decoded.Metadata.Summary)
	assert.Equal(t, 2, decoded.Metadata.Summary.WarningsCount)
}

func TestYAMLWriter_Write_Nil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLWriter().Write(&buf, nil))
	assert.Empty(t, buf.String())
}
