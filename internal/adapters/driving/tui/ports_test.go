package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPorts(t *testing.T) {
	diagnosis := &mockDiagnosisService{}
	search := &mockSearchService{}
	source := &mockSourceService{}
	sync := &mockSyncOrchestrator{}

	ports := NewPorts(diagnosis, search, source, sync)

	require.NotNil(t, ports)
	assert.Equal(t, diagnosis, ports.Diagnosis)
	assert.Equal(t, search, ports.Search)
	assert.Equal(t, source, ports.Source)
	assert.Equal(t, sync, ports.Sync)
	assert.Nil(t, ports.Comparison)
	assert.Nil(t, ports.Settings)
}

func TestPorts_Validate(t *testing.T) {
	t.Run("all required ports set", func(t *testing.T) {
		ports := validPorts()
		assert.NoError(t, ports.Validate())
	})

	t.Run("optional ports may be nil", func(t *testing.T) {
		ports := validPorts()
		ports.Comparison = nil
		ports.Settings = nil
		assert.NoError(t, ports.Validate())
	})

	t.Run("missing diagnosis service", func(t *testing.T) {
		ports := validPorts()
		ports.Diagnosis = nil
		assert.ErrorIs(t, ports.Validate(), ErrMissingDiagnosisService)
	})

	t.Run("missing search service", func(t *testing.T) {
		ports := validPorts()
		ports.Search = nil
		assert.ErrorIs(t, ports.Validate(), ErrMissingSearchService)
	})

	t.Run("missing source service", func(t *testing.T) {
		ports := validPorts()
		ports.Source = nil
		assert.ErrorIs(t, ports.Validate(), ErrMissingSourceService)
	})

	t.Run("missing sync orchestrator", func(t *testing.T) {
		ports := validPorts()
		ports.Sync = nil
		assert.ErrorIs(t, ports.Validate(), ErrMissingSyncOrchestrator)
	})
}
