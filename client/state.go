package client

import (
	"github.com/samber/lo"
	"github.com/wavefeed/wavefeed/cmd/models"
)

// State is the feed state a UI owns and injects where needed. All updates
// happen on the UI's event loop, so there is no locking here; network
// results are applied through the setters after a call resolves.
type State struct {
	Posts   []models.Post
	Current *models.Post
	Loading bool
	Err     string
}

func NewState() *State {
	return &State{}
}

// Begin marks a request in flight. It returns false when one already is,
// which is how duplicate submissions get gated.
func (s *State) Begin() bool {
	if s.Loading {
		return false
	}
	s.Loading = true
	s.Err = ""
	return true
}

// Fail records a failure notification. Prior feed state stays untouched.
func (s *State) Fail(message string) {
	s.Loading = false
	s.Err = message
}

func (s *State) SetPosts(posts []models.Post) {
	s.Posts = posts
	s.Loading = false
	s.Err = ""
}

func (s *State) SetCurrent(post *models.Post) {
	s.Current = post
	s.Loading = false
	s.Err = ""
}

// UpsertPost replaces the matching post in the list (and the current post)
// with the fresh copy a mutation returned.
func (s *State) UpsertPost(post *models.Post) {
	s.Posts = lo.Map(s.Posts, func(p models.Post, _ int) models.Post {
		if p.ID == post.ID {
			return *post
		}
		return p
	})
	if s.Current != nil && s.Current.ID == post.ID {
		s.Current = post
	}
	s.Loading = false
	s.Err = ""
}

func (s *State) RemovePost(id uint) {
	s.Posts = lo.Filter(s.Posts, func(p models.Post, _ int) bool {
		return p.ID != id
	})
	if s.Current != nil && s.Current.ID == id {
		s.Current = nil
	}
	s.Loading = false
	s.Err = ""
}
