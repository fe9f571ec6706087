package service

import (
	"errors"

	"github.com/inkpress/internal/db"
	"gorm.io/gorm"
)

// VoteService is the vote ledger: at most one vote per (owner, target).
// Counts are computed from live rows, never cached.
type VoteService struct {
	db *gorm.DB
}

// VoteCounts aggregates one target's votes.
type VoteCounts struct {
	Up   int64
	Down int64
}

// NewVoteService creates a VoteService instance.
func NewVoteService(gdb *gorm.DB) *VoteService {
	return &VoteService{db: gdb}
}

// GetByOwnerAndTarget returns the owner's vote on the target, or nil when
// none exists.
func (s *VoteService) GetByOwnerAndTarget(ownerID uint, targetType db.VoteTarget, targetID uint) (*db.Vote, error) {
	var vote db.Vote
	err := s.db.
		Where("owner_id = ? AND target_type = ? AND target_id = ?", ownerID, targetType, targetID).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// Vote records a new vote. An existing vote on the same target is a
// conflict; the ledger never replaces in place, the caller must Unvote
// first. The composite unique index catches the race the pre-check cannot.
func (s *VoteService) Vote(ownerID uint, targetType db.VoteTarget, targetID uint, isPositive bool) (*db.Vote, error) {
	existing, err := s.GetByOwnerAndTarget(ownerID, targetType, targetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyVoted
	}

	vote := &db.Vote{
		OwnerID:    ownerID,
		TargetType: targetType,
		TargetID:   targetID,
		IsPositive: isPositive,
	}
	if err := s.db.Create(vote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyVoted
		}
		return nil, err
	}
	return vote, nil
}

// Unvote removes the owner's vote on the target. Unvoting a target the owner
// never voted is a successful no-op.
func (s *VoteService) Unvote(ownerID uint, targetType db.VoteTarget, targetID uint) error {
	return s.db.
		Where("owner_id = ? AND target_type = ? AND target_id = ?", ownerID, targetType, targetID).
		Delete(&db.Vote{}).Error
}

// CountPositive counts the target's up votes.
func (s *VoteService) CountPositive(targetType db.VoteTarget, targetID uint) (int64, error) {
	return s.countVotes(targetType, targetID, true)
}

// CountNegative counts the target's down votes.
func (s *VoteService) CountNegative(targetType db.VoteTarget, targetID uint) (int64, error) {
	return s.countVotes(targetType, targetID, false)
}

// CountsByTarget aggregates up/down counts for a batch of targets in one
// query, used by listing handlers.
func (s *VoteService) CountsByTarget(targetType db.VoteTarget, targetIDs []uint) (map[uint]VoteCounts, error) {
	counts := make(map[uint]VoteCounts, len(targetIDs))
	if len(targetIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		TargetID uint
		Up       int64
		Down     int64
	}
	if err := s.db.Model(&db.Vote{}).
		Select("target_id, SUM(CASE WHEN is_positive THEN 1 ELSE 0 END) AS up, SUM(CASE WHEN is_positive THEN 0 ELSE 1 END) AS down").
		Where("target_type = ? AND target_id IN ?", targetType, targetIDs).
		Group("target_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.TargetID] = VoteCounts{Up: row.Up, Down: row.Down}
	}
	return counts, nil
}

func (s *VoteService) countVotes(targetType db.VoteTarget, targetID uint, positive bool) (int64, error) {
	var count int64
	err := s.db.Model(&db.Vote{}).
		Where("target_type = ? AND target_id = ? AND is_positive = ?", targetType, targetID, positive).
		Count(&count).Error
	return count, err
}
