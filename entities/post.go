package entities

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Title         string    `gorm:"type:varchar(200);not null" json:"title"`
	Body          string    `gorm:"type:varchar(5000);not null" json:"body"`
	Image         string    `json:"image"`
	AuthorID      uuid.UUID `gorm:"type:uuid;not null;index" json:"author"`
	EventID       uuid.UUID `gorm:"type:uuid;not null;index" json:"event"`
	LikesCount    int       `gorm:"default:0" json:"likesCount"`
	CommentsCount int       `gorm:"default:0" json:"commentsCount"`
	IsActive      bool      `gorm:"default:true;index" json:"isActive"`

	Author *User       `gorm:"foreignKey:AuthorID" json:"-"`
	Event  *Event      `gorm:"foreignKey:EventID" json:"-"`
	Likes  []*PostLike `gorm:"foreignKey:PostID" json:"-"`
	Timestamp
}

// PostLike is one user's like on a post.
type PostLike struct {
	PostID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"post"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

type Comment struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Text     string    `gorm:"type:varchar(1000);not null" json:"text"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null" json:"author"`
	PostID   uuid.UUID `gorm:"type:uuid;not null;index" json:"post"`
	IsActive bool      `gorm:"default:true" json:"isActive"`

	Author *User `gorm:"foreignKey:AuthorID" json:"-"`
	Post   *Post `gorm:"foreignKey:PostID" json:"-"`
	Timestamp
}
