package ticket

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/systech-labs/deskflow/internal/domain/ticket/valueobjects"
)

func TestNewComment(t *testing.T) {
	c, err := NewComment(1, 2, "  looks good  ", true)
	require.NoError(t, err)
	assert.Equal(t, "looks good", c.Body())
	assert.True(t, c.IsInternal())
	assert.False(t, c.CreatedAt().IsZero())

	_, err = NewComment(0, 2, "x", false)
	assert.Error(t, err)
	_, err = NewComment(1, 0, "x", false)
	assert.Error(t, err)
	_, err = NewComment(1, 2, "   ", false)
	assert.Error(t, err)
	_, err = NewComment(1, 2, strings.Repeat("a", maxCommentLength+1), false)
	assert.Error(t, err)
}

func TestComment_SetID(t *testing.T) {
	c, err := NewComment(1, 2, "hello", false)
	require.NoError(t, err)

	assert.Error(t, c.SetID(0))
	require.NoError(t, c.SetID(5))
	assert.Error(t, c.SetID(6))
	assert.Equal(t, uint(5), c.ID())
}

func TestNewAttachment(t *testing.T) {
	a, err := NewAttachment(1, "trace.log", "text/plain", 512, "https://files.example.com/trace.log", 3)
	require.NoError(t, err)
	assert.Equal(t, "trace.log", a.FileName())

	_, err = NewAttachment(1, "", "text/plain", 1, "u", 3)
	assert.Error(t, err)
	_, err = NewAttachment(1, "big.bin", "", MaxAttachmentSize+1, "u", 3)
	assert.Error(t, err)
}

func TestNewLink(t *testing.T) {
	l, err := NewLink(1, 2, vo.LinkBlocks)
	require.NoError(t, err)
	assert.Equal(t, vo.LinkBlocks, l.Type)

	_, err = NewLink(1, 1, vo.LinkRelatesTo)
	assert.Error(t, err)
	_, err = NewLink(1, 2, "mentions")
	assert.Error(t, err)
}
