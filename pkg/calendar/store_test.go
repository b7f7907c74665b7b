package calendar

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTag(t *testing.T) {
	tag, err := ParseTag("swimsyncSource=swimsync")
	require.NoError(t, err)
	assert.Equal(t, Tag{Key: "swimsyncSource", Value: "swimsync"}, tag)
	assert.Equal(t, "swimsyncSource=swimsync", tag.String())

	for _, input := range []string{"", "keyonly", "=value", "key="} {
		_, err := ParseTag(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestStoreErrorKinds(t *testing.T) {
	transient := &StoreError{Op: "delete", Status: 503, Kind: KindTransient, Err: errors.New("unavailable")}
	notFound := &StoreError{Op: "delete", Status: 404, Kind: KindNotFound, Err: errors.New("gone")}
	permanent := &StoreError{Op: "insert", Status: 400, Kind: KindPermanent, Err: errors.New("bad request")}

	assert.True(t, IsTransient(transient))
	assert.False(t, IsTransient(notFound))
	assert.False(t, IsTransient(permanent))

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(transient))

	// classification survives wrapping
	wrapped := fmt.Errorf("could not delete: %w", transient)
	assert.True(t, IsTransient(wrapped))

	assert.False(t, IsTransient(errors.New("plain error")))
	assert.False(t, IsNotFound(nil))
}

func TestStoreErrorMessage(t *testing.T) {
	err := &StoreError{Op: "delete", Status: 503, Kind: KindTransient, Err: errors.New("unavailable")}
	assert.Contains(t, err.Error(), "delete")
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "transient")
}
