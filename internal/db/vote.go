package db

import "time"

// VoteTarget identifies what kind of resource a vote points at.
type VoteTarget uint8

const (
	VoteTargetArticle VoteTarget = iota + 1
	VoteTargetComment
)

// String returns the lowercase target name used in API payloads.
func (t VoteTarget) String() string {
	switch t {
	case VoteTargetArticle:
		return "article"
	case VoteTargetComment:
		return "comment"
	}
	return "unknown"
}

// Vote records a single user's up or down vote on a target. The composite
// unique index enforces at most one vote per (owner, target) pair; the vote
// service pre-checks it, the index closes the race.
type Vote struct {
	ID         uint       `gorm:"primaryKey"`
	OwnerID    uint       `gorm:"not null;uniqueIndex:idx_votes_owner_target"`
	TargetType VoteTarget `gorm:"not null;uniqueIndex:idx_votes_owner_target"`
	TargetID   uint       `gorm:"not null;uniqueIndex:idx_votes_owner_target"`
	IsPositive bool       `gorm:"not null"`
	VotedAt    time.Time  `gorm:"autoCreateTime"`
}
