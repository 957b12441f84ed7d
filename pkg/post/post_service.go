package post

import (
	"context"
	"errors"
	"fmt"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/entities"
	"volunteerhub-backend/pkg/notification"
	"volunteerhub-backend/pkg/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	columnLikesCount    = "likes_count"
	columnCommentsCount = "comments_count"
)

type (
	PostService interface {
		CreatePost(ctx context.Context, actor domain.Actor, req domain.CreatePostRequest) (*domain.PostResponse, error)
		GetEventPosts(ctx context.Context, eventID string, page domain.PageQuery) (*domain.PostsResponse, error)
		GetRecentPosts(ctx context.Context, limit int) ([]domain.PostResponse, error)
		ToggleLike(ctx context.Context, actor domain.Actor, postID string) (*domain.ToggleLikeResponse, error)
		AddComment(ctx context.Context, actor domain.Actor, req domain.AddCommentRequest) (*domain.CommentResponse, error)
		GetComments(ctx context.Context, postID string, page domain.PageQuery) (*domain.CommentsResponse, error)
		GetComment(ctx context.Context, commentID string) (*domain.CommentResponse, error)
		DeletePost(ctx context.Context, actor domain.Actor, postID string) error
	}

	postService struct {
		repo     PostRepository
		notifier notification.Notifier
		logger   *zap.Logger
	}
)

func NewPostService(repo PostRepository, notifier notification.Notifier, logger *zap.Logger) PostService {
	return &postService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *postService) CreatePost(ctx context.Context, actor domain.Actor, req domain.CreatePostRequest) (*domain.PostResponse, error) {
	authorID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	event, err := s.repo.GetEventOwner(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}

	post := &entities.Post{
		Title:    req.Title,
		Body:     req.Body,
		Image:    req.Image,
		AuthorID: authorID,
		EventID:  eventID,
		IsActive: true,
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if event.CreatedByID != authorID {
		s.notifier.Notify(ctx, domain.NotificationInput{
			RecipientID:    event.CreatedByID.String(),
			SenderID:       actor.ID,
			Type:           domain.NotificationPostNew,
			Title:          "New post on your event",
			Message:        fmt.Sprintf("%s posted %q on %q", actor.Name, post.Title, event.Title),
			RelatedEventID: event.ID.String(),
			RelatedPostID:  post.ID.String(),
		})
	}

	created, err := s.repo.GetPostByID(ctx, post.ID.String())
	if err != nil {
		return nil, err
	}
	res := ToPostResponse(created)
	return &res, nil
}

func (s *postService) GetEventPosts(ctx context.Context, eventID string, page domain.PageQuery) (*domain.PostsResponse, error) {
	page = page.Normalize(20)
	if _, err := uuid.Parse(eventID); err != nil {
		return &domain.PostsResponse{Posts: []domain.PostResponse{}, Pagination: domain.NewPagination(0, page)}, nil
	}

	posts, total, err := s.repo.ListPostsByEvent(ctx, eventID, page.Offset(), page.Limit)
	if err != nil {
		return nil, err
	}
	return &domain.PostsResponse{
		Posts:      toPostResponses(posts),
		Pagination: domain.NewPagination(total, page),
	}, nil
}

func (s *postService) GetRecentPosts(ctx context.Context, limit int) ([]domain.PostResponse, error) {
	limit = domain.PageQuery{Limit: limit}.Normalize(10).Limit
	posts, err := s.repo.ListRecentPosts(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toPostResponses(posts), nil
}

// ToggleLike adds or removes the actor's like. The join row and likes_count change in one
// transaction under a lock on the post row.
func (s *postService) ToggleLike(ctx context.Context, actor domain.Actor, postID string) (*domain.ToggleLikeResponse, error) {
	userID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	postUUID, err := uuid.Parse(postID)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	var (
		post  *entities.Post
		liked bool
	)
	err = s.repo.Transaction(ctx, func(repo PostRepository) error {
		locked, err := repo.LockPostByID(ctx, postID)
		if err != nil {
			return mapPostErr(err)
		}
		if !locked.IsActive {
			return domain.ErrPostNotFound
		}
		post = locked

		_, err = repo.GetLike(ctx, postID, actor.ID)
		switch {
		case err == nil:
			if err := repo.DeleteLike(ctx, postID, actor.ID); err != nil {
				return err
			}
			post.LikesCount--
			return repo.AdjustCounter(ctx, postID, columnLikesCount, -1)
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := repo.CreateLike(ctx, &entities.PostLike{PostID: postUUID, UserID: userID}); err != nil {
				return err
			}
			liked = true
			post.LikesCount++
			return repo.AdjustCounter(ctx, postID, columnLikesCount, 1)
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	if liked && post.AuthorID != userID {
		s.notifier.Notify(ctx, domain.NotificationInput{
			RecipientID:    post.AuthorID.String(),
			SenderID:       actor.ID,
			Type:           domain.NotificationLikeNew,
			Title:          "New like",
			Message:        fmt.Sprintf("%s liked your post %q", actor.Name, post.Title),
			RelatedEventID: post.EventID.String(),
			RelatedPostID:  postID,
		})
	}

	if post.LikesCount < 0 {
		post.LikesCount = 0
	}
	return &domain.ToggleLikeResponse{LikesCount: post.LikesCount, Liked: liked}, nil
}

func (s *postService) AddComment(ctx context.Context, actor domain.Actor, req domain.AddCommentRequest) (*domain.CommentResponse, error) {
	authorID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	postUUID, err := uuid.Parse(req.PostID)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	var (
		post    *entities.Post
		comment *entities.Comment
	)
	err = s.repo.Transaction(ctx, func(repo PostRepository) error {
		locked, err := repo.LockPostByID(ctx, req.PostID)
		if err != nil {
			return mapPostErr(err)
		}
		if !locked.IsActive {
			return domain.ErrPostNotFound
		}
		post = locked

		comment = &entities.Comment{
			Text:     req.Text,
			AuthorID: authorID,
			PostID:   postUUID,
			IsActive: true,
		}
		if err := repo.CreateComment(ctx, comment); err != nil {
			return err
		}
		return repo.AdjustCounter(ctx, req.PostID, columnCommentsCount, 1)
	})
	if err != nil {
		return nil, err
	}

	if post.AuthorID != authorID {
		s.notifier.Notify(ctx, domain.NotificationInput{
			RecipientID:    post.AuthorID.String(),
			SenderID:       actor.ID,
			Type:           domain.NotificationCommentNew,
			Title:          "New comment",
			Message:        fmt.Sprintf("%s commented on your post %q", actor.Name, post.Title),
			RelatedEventID: post.EventID.String(),
			RelatedPostID:  req.PostID,
		})
	}

	return s.GetComment(ctx, comment.ID.String())
}

func (s *postService) GetComments(ctx context.Context, postID string, page domain.PageQuery) (*domain.CommentsResponse, error) {
	page = page.Normalize(50)
	if _, err := uuid.Parse(postID); err != nil {
		return &domain.CommentsResponse{Comments: []domain.CommentResponse{}, Pagination: domain.NewPagination(0, page)}, nil
	}

	comments, total, err := s.repo.ListComments(ctx, postID, page.Offset(), page.Limit)
	if err != nil {
		return nil, err
	}

	res := &domain.CommentsResponse{
		Comments:   make([]domain.CommentResponse, 0, len(comments)),
		Pagination: domain.NewPagination(total, page),
	}
	for _, c := range comments {
		res.Comments = append(res.Comments, ToCommentResponse(c))
	}
	return res, nil
}

func (s *postService) GetComment(ctx context.Context, commentID string) (*domain.CommentResponse, error) {
	if _, err := uuid.Parse(commentID); err != nil {
		return nil, domain.ErrCommentNotFound
	}
	comment, err := s.repo.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}
	res := ToCommentResponse(comment)
	return &res, nil
}

func (s *postService) DeletePost(ctx context.Context, actor domain.Actor, postID string) error {
	if _, err := uuid.Parse(postID); err != nil {
		return domain.ErrPostNotFound
	}
	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		return mapPostErr(err)
	}
	if !post.IsActive {
		return domain.ErrPostNotFound
	}
	if !actor.Role.CanActOn(actor.ID, post.AuthorID.String()) {
		return domain.ErrNotPostAuthor
	}
	return mapPostErr(s.repo.UpdatePost(ctx, postID, map[string]interface{}{"is_active": false}))
}

func mapPostErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrPostNotFound
	}
	return err
}

func ToPostResponse(p *entities.Post) domain.PostResponse {
	res := domain.PostResponse{
		ID:            p.ID.String(),
		Title:         p.Title,
		Body:          p.Body,
		Image:         p.Image,
		Author:        user.ToUserSummary(p.Author),
		EventID:       p.EventID.String(),
		Likes:         make([]string, 0, len(p.Likes)),
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Event != nil {
		res.EventTitle = p.Event.Title
	}
	for _, like := range p.Likes {
		res.Likes = append(res.Likes, like.UserID.String())
	}
	return res
}

func ToCommentResponse(c *entities.Comment) domain.CommentResponse {
	return domain.CommentResponse{
		ID:        c.ID.String(),
		Text:      c.Text,
		Author:    user.ToUserSummary(c.Author),
		PostID:    c.PostID.String(),
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
}

func toPostResponses(posts []*entities.Post) []domain.PostResponse {
	res := make([]domain.PostResponse, 0, len(posts))
	for _, p := range posts {
		res = append(res, ToPostResponse(p))
	}
	return res
}
