package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	err := errors.New("line one\r\n\r\nline two\n   \nline three\nline four\nline five\nline six")
	assert.Equal(t, "line one\nline two\nline three\nline four\nline five", Summarize(err, 5))

	wrapped := fmt.Errorf("failed to create product: %w", errors.New("disk full"))
	assert.Equal(t, "failed to create product: disk full", Summarize(wrapped, 5))

	assert.Equal(t, "", Summarize(nil, 5))
}

func TestParseIDs(t *testing.T) {
	assert.Nil(t, parseID(""))
	assert.Nil(t, parseID("-1"))
	assert.Nil(t, parseID("1.5"))
	if id := parseID("42"); assert.NotNil(t, id) {
		assert.Equal(t, uint(42), *id)
	}

	assert.Nil(t, parseProductID("abc"))
	if id := parseProductID("-7"); assert.NotNil(t, id) {
		assert.Equal(t, int64(-7), *id)
	}
}
