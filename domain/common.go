package domain

import (
	"errors"
	"math"
)

var (
	MessageFailedBodyRequest   = "Invalid request body"
	MessageValidationFailed    = "Validation failed"
	MessageRouteNotFound       = "Route not found"
	MessageInternalServerError = "Internal server error"
	MessageNoTokenProvided     = "No token provided"
	MessageInvalidToken        = "Invalid or expired token"
	MessageForbidden           = "Forbidden: Insufficient permissions"
	MessageTooManyRequests     = "Too many requests, please try again later"
	MessageHealthy             = "VolunteerHub API is running"

	ErrParseUUID      = NewError(KindInvalid, "invalid identifier")
	ErrTokenNotFound  = NewError(KindUnauthenticated, MessageNoTokenProvided)
	ErrTokenInvalid   = NewError(KindUnauthenticated, MessageInvalidToken)
	ErrTokenExpired   = NewError(KindUnauthenticated, MessageInvalidToken)
	ErrUserNotAllowed = NewError(KindForbidden, MessageForbidden)
)

// Kind classifies a domain error for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalid
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	// KindRejected is a well-formed request refused by a business rule.
	KindRejected
	KindUnavailable
)

type Error struct {
	Kind    Kind
	Message string
}

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf returns the kind of the first domain error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

type (
	PageQuery struct {
		Page  int
		Limit int
	}

	Pagination struct {
		Total int64 `json:"total"`
		Page  int   `json:"page"`
		Pages int   `json:"pages"`
		Limit int   `json:"limit"`
	}
)

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Normalize clamps page to >= 1 and limit to [1, 100], falling back to def.
func (q PageQuery) Normalize(def int) PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = def
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	return q
}

func NewPagination(total int64, q PageQuery) Pagination {
	pages := 0
	if q.Limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(q.Limit)))
	}
	return Pagination{Total: total, Page: q.Page, Pages: pages, Limit: q.Limit}
}
