package domain

import "time"

var (
	MessageSuccessCreatePost  = "Post created successfully"
	MessageSuccessGetPosts    = "Posts retrieved successfully"
	MessageSuccessToggleLike  = "Post like toggled"
	MessageSuccessAddComment  = "Comment added successfully"
	MessageSuccessGetComments = "Comments retrieved successfully"
	MessageSuccessGetComment  = "Comment retrieved successfully"
	MessageSuccessDeletePost  = "Post deleted successfully"

	MessageFailedCreatePost  = "Failed to create post"
	MessageFailedGetPosts    = "Failed to retrieve posts"
	MessageFailedToggleLike  = "Failed to toggle like"
	MessageFailedAddComment  = "Failed to add comment"
	MessageFailedGetComments = "Failed to retrieve comments"
	MessageFailedDeletePost  = "Failed to delete post"

	ErrPostNotFound    = NewError(KindNotFound, "Post not found")
	ErrCommentNotFound = NewError(KindNotFound, "Comment not found")
	ErrNotPostAuthor   = NewError(KindForbidden, "Not authorized to delete this post")
)

type (
	CreatePostRequest struct {
		Title   string `json:"title" validate:"required,max=200"`
		Body    string `json:"body" validate:"required,max=5000"`
		EventID string `json:"eventId" validate:"required,uuid"`
		Image   string `json:"image" validate:"omitempty,url"`
	}

	AddCommentRequest struct {
		PostID string `json:"postId" validate:"required,uuid"`
		Text   string `json:"text" validate:"required,max=1000"`
	}

	PostResponse struct {
		ID            string       `json:"id"`
		Title         string       `json:"title"`
		Body          string       `json:"body"`
		Image         string       `json:"image,omitempty"`
		Author        *UserSummary `json:"author,omitempty"`
		EventID       string       `json:"eventId"`
		EventTitle    string       `json:"eventTitle,omitempty"`
		Likes         []string     `json:"likes"`
		LikesCount    int          `json:"likesCount"`
		CommentsCount int          `json:"commentsCount"`
		IsActive      bool         `json:"isActive"`
		CreatedAt     time.Time    `json:"createdAt"`
		UpdatedAt     time.Time    `json:"updatedAt"`
	}

	PostsResponse struct {
		Posts      []PostResponse `json:"posts"`
		Pagination Pagination     `json:"pagination"`
	}

	CommentResponse struct {
		ID        string       `json:"id"`
		Text      string       `json:"text"`
		Author    *UserSummary `json:"author,omitempty"`
		PostID    string       `json:"postId"`
		IsActive  bool         `json:"isActive"`
		CreatedAt time.Time    `json:"createdAt"`
	}

	CommentsResponse struct {
		Comments   []CommentResponse `json:"comments"`
		Pagination Pagination        `json:"pagination"`
	}

	ToggleLikeResponse struct {
		LikesCount int  `json:"likesCount"`
		Liked      bool `json:"liked"`
	}
)
