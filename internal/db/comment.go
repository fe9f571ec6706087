package db

import "time"

// DeletedCommentBody is what every reader sees in place of a deleted
// comment's body. The stored body is kept for thread integrity.
const DeletedCommentBody = "[comment deleted]"

// Comment belongs to an article. A comment with ReplyFromID set is a reply
// nested exactly one level under that parent; replies cannot be replied to.
// ReplyToID is an optional mention of a specific user, independent of
// threading.
type Comment struct {
	ID          uint   `gorm:"primaryKey"`
	Body        string `gorm:"not null"`
	IsDeleted   bool   `gorm:"not null;default:false"`
	CommentedAt time.Time `gorm:"autoCreateTime"`
	OwnerID     uint      `gorm:"index;not null"`
	ArticleID   uint      `gorm:"index;not null"`
	ReplyFromID *uint     `gorm:"index"`
	ReplyToID   *uint
	Owner       User
	ReplyTo     *User
	Replies     []Comment `gorm:"foreignKey:ReplyFromID"`

	// Aggregates attached by handlers, never persisted.
	UpVotes   int64 `gorm:"-"`
	DownVotes int64 `gorm:"-"`
}

// IsTopLevel reports whether the comment can receive replies.
func (c *Comment) IsTopLevel() bool {
	return c.ReplyFromID == nil
}

// DisplayBody masks the body of deleted comments.
func (c *Comment) DisplayBody() string {
	if c.IsDeleted {
		return DeletedCommentBody
	}
	return c.Body
}
