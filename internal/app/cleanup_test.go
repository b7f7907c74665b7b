package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindow(t *testing.T) {
	location, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	window, err := parseWindow("2025-09-01", "2025-12-22", location)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, location), window.Start)
	assert.Equal(t, time.Date(2025, 12, 22, 0, 0, 0, 0, location), window.End)

	_, err = parseWindow("2025-12-22", "2025-09-01", location)
	assert.Error(t, err)

	_, err = parseWindow("2025-12-22", "2025-12-22", location)
	assert.Error(t, err)

	_, err = parseWindow("soon", "2025-12-22", location)
	assert.Error(t, err)
}
