package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MaxImagesPerPost = 5
	MaxVideosPerPost = 2
)

// Post is the aggregate root of the feed. Media, likes and comments are
// embedded jsonb documents on the row, so deleting a post removes them
// with it and every mutation is a whole-document save.
type Post struct {
	gorm.Model
	AuthorID uint                            `gorm:"column:author_id;not null" json:"author_id"`
	Content  string                          `gorm:"column:content;type:text;not null" json:"content"`
	Media    datatypes.JSONType[MediaBundle] `gorm:"column:media" json:"media"`
	Likes    datatypes.JSONSlice[uint]       `gorm:"column:likes" json:"likes"`
	Comments datatypes.JSONSlice[Comment]    `gorm:"column:comments" json:"comments"`
	Author   *User                           `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// MediaBundle holds the durable provider URLs collected at creation time.
// There is no endpoint that changes it afterwards.
type MediaBundle struct {
	Images []string `json:"images"`
	Videos []string `json:"videos"`
}

// Comment lives only inside its parent post's comments column.
type Comment struct {
	ID        string    `json:"id"`
	AuthorID  uint      `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Author    *UserRef  `json:"author,omitempty"`
}

// ToggleLike flips the caller's membership in the likes set and reports
// whether the post is liked afterwards.
func (p *Post) ToggleLike(userID uint) bool {
	if lo.Contains(p.Likes, userID) {
		p.Likes = lo.Filter(p.Likes, func(id uint, _ int) bool {
			return id != userID
		})
		return false
	}
	p.Likes = append(p.Likes, userID)
	return true
}

// AddComment appends a new comment authored by userID and returns it.
func (p *Post) AddComment(userID uint, text string) Comment {
	comment := Comment{
		ID:        uuid.NewString(),
		AuthorID:  userID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	p.Comments = append(p.Comments, comment)
	return comment
}

// FindComment looks a comment up by its id.
func (p *Post) FindComment(commentID string) (Comment, bool) {
	return lo.Find(p.Comments, func(c Comment) bool {
		return c.ID == commentID
	})
}

// RemoveComment drops the comment with the given id, keeping order of the rest.
func (p *Post) RemoveComment(commentID string) {
	p.Comments = lo.Filter(p.Comments, func(c Comment, _ int) bool {
		return c.ID != commentID
	})
}
