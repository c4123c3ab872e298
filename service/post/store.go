package post

import (
	"github.com/samber/lo"
	"github.com/wavefeed/wavefeed/cmd/models"
	"gorm.io/gorm"
)

// Store persists the Post aggregate. Mutations go through Save, which
// writes the whole row back; two concurrent mutations on the same post
// therefore race as last-write-wins, matching the behavior this service
// was specified against. An atomic jsonb update with a version check
// would close that gap but is a deliberate non-change.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func selectIdentity(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name")
}

func (s *Store) Insert(post *models.Post) error {
	return s.db.Create(post).Error
}

// FindByID loads a post with its author and comment authors resolved to
// the name+id projection.
func (s *Store) FindByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.Preload("Author", selectIdentity).First(&post, id).Error; err != nil {
		return nil, err
	}
	if err := s.hydrateCommentAuthors(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// FindAllNewestFirst returns every post sorted by creation time descending.
func (s *Store) FindAllNewestFirst() ([]models.Post, error) {
	var posts []models.Post
	err := s.db.Preload("Author", selectIdentity).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if err := s.hydrateCommentAuthors(&posts[i]); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// Save writes the whole aggregate back. Hydrated comment authors are
// stripped first so the stored document keeps bare author references.
func (s *Store) Save(post *models.Post) error {
	post.Comments = lo.Map(post.Comments, func(c models.Comment, _ int) models.Comment {
		c.Author = nil
		return c
	})
	return s.db.Save(post).Error
}

func (s *Store) Delete(post *models.Post) error {
	return s.db.Delete(post).Error
}

func (s *Store) hydrateCommentAuthors(post *models.Post) error {
	authorIDs := lo.Uniq(lo.Map(post.Comments, func(c models.Comment, _ int) uint {
		return c.AuthorID
	}))
	if len(authorIDs) == 0 {
		return nil
	}

	var authors []models.User
	if err := s.db.Select("id", "name").Where("id IN ?", authorIDs).Find(&authors).Error; err != nil {
		return err
	}

	refs := lo.SliceToMap(authors, func(u models.User) (uint, models.UserRef) {
		return u.ID, u.Ref()
	})
	for i, comment := range post.Comments {
		if ref, ok := refs[comment.AuthorID]; ok {
			ref := ref
			post.Comments[i].Author = &ref
		}
	}
	return nil
}
