package post

import (
	"context"

	"volunteerhub-backend/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	PostRepository interface {
		Transaction(ctx context.Context, fn func(repo PostRepository) error) error

		CreatePost(ctx context.Context, post *entities.Post) error
		GetPostByID(ctx context.Context, id string) (*entities.Post, error)
		LockPostByID(ctx context.Context, id string) (*entities.Post, error)
		ListPostsByEvent(ctx context.Context, eventID string, offset, limit int) ([]*entities.Post, int64, error)
		ListRecentPosts(ctx context.Context, limit int) ([]*entities.Post, error)
		UpdatePost(ctx context.Context, id string, updates map[string]interface{}) error
		// AdjustCounter adds delta to likes_count or comments_count.
		AdjustCounter(ctx context.Context, id string, column string, delta int) error

		GetLike(ctx context.Context, postID, userID string) (*entities.PostLike, error)
		CreateLike(ctx context.Context, like *entities.PostLike) error
		DeleteLike(ctx context.Context, postID, userID string) error

		CreateComment(ctx context.Context, comment *entities.Comment) error
		GetCommentByID(ctx context.Context, id string) (*entities.Comment, error)
		ListComments(ctx context.Context, postID string, offset, limit int) ([]*entities.Comment, int64, error)

		GetEventOwner(ctx context.Context, eventID string) (*entities.Event, error)
	}

	postRepository struct {
		db *gorm.DB
	}
)

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Transaction(ctx context.Context, fn func(repo PostRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&postRepository{db: tx})
	})
}

func (r *postRepository) CreatePost(ctx context.Context, post *entities.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetPostByID(ctx context.Context, id string) (*entities.Post, error) {
	var post entities.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Event").
		Preload("Likes").
		Where("id = ?", id).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) LockPostByID(ctx context.Context, id string) (*entities.Post, error) {
	var post entities.Post
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListPostsByEvent(ctx context.Context, eventID string, offset, limit int) ([]*entities.Post, int64, error) {
	var posts []*entities.Post
	var count int64

	query := r.db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("event_id = ? AND is_active = ?", eventID, true)
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := query.
		Preload("Author").
		Preload("Likes").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, count, nil
}

func (r *postRepository) ListRecentPosts(ctx context.Context, limit int) ([]*entities.Post, error) {
	var posts []*entities.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Event").
		Preload("Likes").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) UpdatePost(ctx context.Context, id string, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postRepository) AdjustCounter(ctx context.Context, id string, column string, delta int) error {
	return r.db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("id = ?", id).
		Update(column, gorm.Expr("GREATEST(? + ?, 0)", clause.Column{Name: column}, delta)).Error
}

func (r *postRepository) GetLike(ctx context.Context, postID, userID string) (*entities.PostLike, error) {
	var like entities.PostLike
	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *postRepository) CreateLike(ctx context.Context, like *entities.PostLike) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *postRepository) DeleteLike(ctx context.Context, postID, userID string) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&entities.PostLike{}).Error
}

func (r *postRepository) CreateComment(ctx context.Context, comment *entities.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *postRepository) GetCommentByID(ctx context.Context, id string) (*entities.Comment, error) {
	var comment entities.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ? AND is_active = ?", id, true).
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *postRepository) ListComments(ctx context.Context, postID string, offset, limit int) ([]*entities.Comment, int64, error) {
	var comments []*entities.Comment
	var count int64

	query := r.db.WithContext(ctx).
		Model(&entities.Comment{}).
		Where("post_id = ? AND is_active = ?", postID, true)
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := query.
		Preload("Author").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, count, nil
}

func (r *postRepository) GetEventOwner(ctx context.Context, eventID string) (*entities.Event, error) {
	var event entities.Event
	if err := r.db.WithContext(ctx).
		Select("id", "title", "created_by_id").
		Where("id = ?", eventID).
		First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}
