package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wavefeed/wavefeed/cmd/models"
	"gorm.io/gorm"
)

func TestBeginGatesDuplicateSubmissions(t *testing.T) {
	s := NewState()

	require.True(t, s.Begin())
	assert.False(t, s.Begin(), "second submission while in flight must be gated")

	s.SetPosts(nil)
	assert.True(t, s.Begin())
}

func TestFailKeepsPriorState(t *testing.T) {
	s := NewState()
	s.SetPosts([]models.Post{{Model: gorm.Model{ID: 1}, Content: "hello"}})

	s.Begin()
	s.Fail("Post not found")

	assert.False(t, s.Loading)
	assert.Equal(t, "Post not found", s.Err)
	require.Len(t, s.Posts, 1)
	assert.Equal(t, "hello", s.Posts[0].Content)
}

func TestUpsertPostReplacesListAndCurrent(t *testing.T) {
	s := NewState()
	s.SetPosts([]models.Post{
		{Model: gorm.Model{ID: 1}, Content: "one"},
		{Model: gorm.Model{ID: 2}, Content: "two"},
	})
	current := s.Posts[1]
	s.SetCurrent(&current)

	updated := models.Post{Model: gorm.Model{ID: 2}, Content: "two, edited"}
	s.UpsertPost(&updated)

	assert.Equal(t, "one", s.Posts[0].Content)
	assert.Equal(t, "two, edited", s.Posts[1].Content)
	require.NotNil(t, s.Current)
	assert.Equal(t, "two, edited", s.Current.Content)
}

func TestRemovePostClearsCurrent(t *testing.T) {
	s := NewState()
	s.SetPosts([]models.Post{
		{Model: gorm.Model{ID: 1}},
		{Model: gorm.Model{ID: 2}},
	})
	current := s.Posts[0]
	s.SetCurrent(&current)

	s.RemovePost(1)

	require.Len(t, s.Posts, 1)
	assert.Equal(t, uint(2), s.Posts[0].ID)
	assert.Nil(t, s.Current)
}
