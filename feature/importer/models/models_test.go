package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevisionHistory_ValueEmptyIsArray(t *testing.T) {
	var h RevisionHistory
	v, err := h.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestRevisionHistory_RoundTrip(t *testing.T) {
	prev := "3.1"
	next := "3.2"
	h := RevisionHistory{{PreviousActual: &prev, NewActual: &next, RevisedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}}

	v, err := h.Value()
	require.NoError(t, err)

	var out RevisionHistory
	require.NoError(t, out.Scan(v))
	require.Len(t, out, 1)
	assert.Equal(t, "3.1", *out[0].PreviousActual)
	assert.Equal(t, "3.2", *out[0].NewActual)
}

func TestRevisionHistory_ScanCoercesSingleObject(t *testing.T) {
	var h RevisionHistory
	err := h.Scan([]byte(`{"previous_actual":"1.0","new_actual":"1.1","revised_at":"2025-06-01T00:00:00Z"}`))

	require.NoError(t, err)
	require.Len(t, h, 1)
	assert.Equal(t, "1.1", *h[0].NewActual)
}

func TestRevisionHistory_ScanNil(t *testing.T) {
	var h RevisionHistory
	require.NoError(t, h.Scan(nil))
	assert.Empty(t, h)
}

func TestRevisionHistory_ScanMalformed(t *testing.T) {
	var h RevisionHistory
	assert.Error(t, h.Scan([]byte(`not json`)))
}
