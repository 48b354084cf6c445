package blog

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Repository defines persistence operations for blog posts.
type Repository interface {
	Create(ctx context.Context, post *Post) error
	List(ctx context.Context, offset, limit int) (int64, []Post, error)
	GetByID(ctx context.Context, id uint) (*Post, error)
	DeleteByID(ctx context.Context, id uint) error
}

// GormRepository persists blog posts using a Gorm database connection.
type GormRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewRepository constructs a Gorm-backed repository implementation.
func NewRepository(db *gorm.DB, logger *logrus.Logger) (*GormRepository, error) {
	if db == nil {
		return nil, eris.New("gorm DB is required")
	}

	return &GormRepository{db: db, logger: logger}, nil
}

var _ Repository = (*GormRepository)(nil)

// Create stores a new blog post, assigning its identity and timestamps.
func (r *GormRepository) Create(ctx context.Context, post *Post) error {
	if post == nil {
		return eris.New("post is nil")
	}

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		r.logError(logrus.Fields{"topic": post.Topic}, err, "creating blog post")
		return eris.Wrap(err, "creating blog post")
	}

	return nil
}

// List returns the total number of posts and a page of posts ordered newest-first.
func (r *GormRepository) List(ctx context.Context, offset, limit int) (int64, []Post, error) {
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&Post{}).Count(&total).Error; err != nil {
		r.logError(nil, err, "counting blog posts")
		return 0, nil, eris.Wrap(err, "counting blog posts")
	}

	query := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var posts []Post
	if err := query.Find(&posts).Error; err != nil {
		r.logError(nil, err, "listing blog posts")
		return 0, nil, eris.Wrap(err, "listing blog posts")
	}

	return total, posts, nil
}

// GetByID returns the post with the given id or ErrNotFound.
func (r *GormRepository) GetByID(ctx context.Context, id uint) (*Post, error) {
	var post Post
	err := r.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(ErrNotFound, "fetching blog post %d", id)
		}
		r.logError(logrus.Fields{"id": id}, err, "fetching blog post")
		return nil, eris.Wrapf(err, "fetching blog post %d", id)
	}

	return &post, nil
}

// DeleteByID removes the post with the given id, returning ErrNotFound when absent.
func (r *GormRepository) DeleteByID(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Post{}, id)
	if result.Error != nil {
		r.logError(logrus.Fields{"id": id}, result.Error, "deleting blog post")
		return eris.Wrapf(result.Error, "deleting blog post %d", id)
	}

	if result.RowsAffected == 0 {
		return eris.Wrapf(ErrNotFound, "deleting blog post %d", id)
	}

	return nil
}

func (r *GormRepository) logError(fields logrus.Fields, err error, message string) {
	if r.logger == nil {
		return
	}

	entry := r.logger.WithField("error", err.Error())
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error(message)
}
