package client

import (
	"context"
	"net/http"
	"net/url"

	"volunteerhub-backend/domain"
)

func (c *Client) CreatePost(ctx context.Context, req domain.CreatePostRequest) (*domain.PostResponse, error) {
	out := new(domain.PostResponse)
	if err := c.do(ctx, http.MethodPost, "/api/posts/create", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) EventPosts(ctx context.Context, eventID string, page, limit int) (*domain.PostsResponse, error) {
	out := new(domain.PostsResponse)
	if err := c.do(ctx, http.MethodGet, "/api/posts/event/"+url.PathEscape(eventID), pageValues(page, limit), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ToggleLike(ctx context.Context, postID string) (*domain.ToggleLikeResponse, error) {
	out := new(domain.ToggleLikeResponse)
	if err := c.do(ctx, http.MethodPost, "/api/posts/"+url.PathEscape(postID)+"/like", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddComment(ctx context.Context, postID, text string) (*domain.CommentResponse, error) {
	out := new(domain.CommentResponse)
	req := domain.AddCommentRequest{PostID: postID, Text: text}
	if err := c.do(ctx, http.MethodPost, "/api/posts/comment", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Comments(ctx context.Context, postID string, page, limit int) (*domain.CommentsResponse, error) {
	out := new(domain.CommentsResponse)
	if err := c.do(ctx, http.MethodGet, "/api/posts/"+url.PathEscape(postID)+"/comments", pageValues(page, limit), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Comment(ctx context.Context, commentID string) (*domain.CommentResponse, error) {
	out := new(domain.CommentResponse)
	if err := c.do(ctx, http.MethodGet, "/api/posts/comment/"+url.PathEscape(commentID), nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeletePost(ctx context.Context, postID string) error {
	return c.do(ctx, http.MethodDelete, "/api/posts/"+url.PathEscape(postID), nil, nil, nil)
}
