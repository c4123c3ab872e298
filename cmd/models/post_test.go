package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLikeRoundTrip(t *testing.T) {
	post := Post{}

	liked := post.ToggleLike(7)
	assert.True(t, liked)
	assert.Equal(t, []uint{7}, []uint(post.Likes))

	liked = post.ToggleLike(7)
	assert.False(t, liked)
	assert.Empty(t, post.Likes)
}

func TestToggleLikeNoDuplicates(t *testing.T) {
	post := Post{}
	post.ToggleLike(1)
	post.ToggleLike(2)
	post.ToggleLike(1)
	post.ToggleLike(1)

	assert.Equal(t, []uint{2, 1}, []uint(post.Likes))
}

func TestAddCommentAppendsInOrder(t *testing.T) {
	post := Post{}

	first := post.AddComment(1, "first")
	second := post.AddComment(2, "second")

	require.Len(t, post.Comments, 2)
	assert.Equal(t, "first", post.Comments[0].Text)
	assert.Equal(t, "second", post.Comments[1].Text)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, uint(1), post.Comments[0].AuthorID)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestFindComment(t *testing.T) {
	post := Post{}
	comment := post.AddComment(1, "hello")

	found, ok := post.FindComment(comment.ID)
	require.True(t, ok)
	assert.Equal(t, "hello", found.Text)

	_, ok = post.FindComment("missing")
	assert.False(t, ok)
}

func TestRemoveCommentKeepsOrder(t *testing.T) {
	post := Post{}
	post.AddComment(1, "a")
	target := post.AddComment(2, "b")
	post.AddComment(3, "c")

	post.RemoveComment(target.ID)

	require.Len(t, post.Comments, 2)
	assert.Equal(t, "a", post.Comments[0].Text)
	assert.Equal(t, "c", post.Comments[1].Text)
}
