package handlers

import (
	"volunteerhub-backend/domain"
	"volunteerhub-backend/internal/api/presenters"
	"volunteerhub-backend/pkg/post"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PostHandler interface {
		CreatePost(c *fiber.Ctx) error
		GetEventPosts(c *fiber.Ctx) error
		ToggleLike(c *fiber.Ctx) error
		AddComment(c *fiber.Ctx) error
		GetComments(c *fiber.Ctx) error
		GetComment(c *fiber.Ctx) error
		DeletePost(c *fiber.Ctx) error
	}

	postHandler struct {
		postService post.PostService
		validator   *validator.Validate
	}
)

func NewPostHandler(postService post.PostService, validator *validator.Validate) PostHandler {
	return &postHandler{
		postService: postService,
		validator:   validator,
	}
}

func (h *postHandler) CreatePost(c *fiber.Ctx) error {
	req := new(domain.CreatePostRequest)
	if ok, err := bindRequest(c, h.validator, req); !ok {
		return err
	}

	res, err := h.postService.CreatePost(c.UserContext(), actor(c), *req)
	if err != nil {
		return failure(c, domain.MessageFailedCreatePost, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreatePost)
}

func (h *postHandler) GetEventPosts(c *fiber.Ctx) error {
	res, err := h.postService.GetEventPosts(c.UserContext(), c.Params("eventId"), pageQuery(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetPosts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPosts)
}

func (h *postHandler) ToggleLike(c *fiber.Ctx) error {
	res, err := h.postService.ToggleLike(c.UserContext(), actor(c), c.Params("postId"))
	if err != nil {
		return failure(c, domain.MessageFailedToggleLike, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleLike)
}

func (h *postHandler) AddComment(c *fiber.Ctx) error {
	req := new(domain.AddCommentRequest)
	if ok, err := bindRequest(c, h.validator, req); !ok {
		return err
	}

	res, err := h.postService.AddComment(c.UserContext(), actor(c), *req)
	if err != nil {
		return failure(c, domain.MessageFailedAddComment, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddComment)
}

func (h *postHandler) GetComments(c *fiber.Ctx) error {
	res, err := h.postService.GetComments(c.UserContext(), c.Params("postId"), pageQuery(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetComments, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetComments)
}

func (h *postHandler) GetComment(c *fiber.Ctx) error {
	res, err := h.postService.GetComment(c.UserContext(), c.Params("commentId"))
	if err != nil {
		return failure(c, domain.MessageFailedGetComments, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetComment)
}

func (h *postHandler) DeletePost(c *fiber.Ctx) error {
	if err := h.postService.DeletePost(c.UserContext(), actor(c), c.Params("postId")); err != nil {
		return failure(c, domain.MessageFailedDeletePost, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeletePost)
}
