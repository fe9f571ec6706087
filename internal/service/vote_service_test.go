package service

import (
	"errors"
	"testing"

	"github.com/inkpress/internal/db"
)

func TestVoteOncePerTarget(t *testing.T) {
	gdb := setupServiceTestDB(t)
	voter := seedUser(t, gdb, "alice")
	svc := NewVoteService(gdb)

	vote, err := svc.Vote(voter.ID, db.VoteTargetArticle, 1, true)
	if err != nil {
		t.Fatalf("failed to vote: %v", err)
	}
	if !vote.IsPositive {
		t.Fatal("expected an up vote")
	}

	if _, err := svc.Vote(voter.ID, db.VoteTargetArticle, 1, false); !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}
	if _, err := svc.Vote(voter.ID, db.VoteTargetArticle, 1, true); !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("re-voting the same way must still conflict, got %v", err)
	}
}

func TestVoteErrAlreadyVotedIsConflict(t *testing.T) {
	gdb := setupServiceTestDB(t)
	voter := seedUser(t, gdb, "alice")
	svc := NewVoteService(gdb)

	if _, err := svc.Vote(voter.ID, db.VoteTargetComment, 7, true); err != nil {
		t.Fatalf("failed to vote: %v", err)
	}
	_, err := svc.Vote(voter.ID, db.VoteTargetComment, 7, true)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate votes must surface as conflicts, got %v", err)
	}
}

func TestSameIDDifferentTargetTypes(t *testing.T) {
	gdb := setupServiceTestDB(t)
	voter := seedUser(t, gdb, "alice")
	svc := NewVoteService(gdb)

	if _, err := svc.Vote(voter.ID, db.VoteTargetArticle, 1, true); err != nil {
		t.Fatalf("failed to vote on article: %v", err)
	}
	// An article and a comment sharing an id are distinct targets.
	if _, err := svc.Vote(voter.ID, db.VoteTargetComment, 1, false); err != nil {
		t.Fatalf("failed to vote on comment with the same id: %v", err)
	}
}

func TestUnvoteThenVoteAgain(t *testing.T) {
	gdb := setupServiceTestDB(t)
	voter := seedUser(t, gdb, "alice")
	svc := NewVoteService(gdb)

	if _, err := svc.Vote(voter.ID, db.VoteTargetArticle, 1, true); err != nil {
		t.Fatalf("failed to vote: %v", err)
	}
	if err := svc.Unvote(voter.ID, db.VoteTargetArticle, 1); err != nil {
		t.Fatalf("failed to unvote: %v", err)
	}

	vote, err := svc.GetByOwnerAndTarget(voter.ID, db.VoteTargetArticle, 1)
	if err != nil {
		t.Fatalf("failed to look up vote: %v", err)
	}
	if vote != nil {
		t.Fatal("expected no vote after unvoting")
	}

	// Switching direction is unvote + vote, never replace in place.
	if _, err := svc.Vote(voter.ID, db.VoteTargetArticle, 1, false); err != nil {
		t.Fatalf("failed to vote after unvoting: %v", err)
	}
}

func TestUnvoteWithoutVoteIsNoop(t *testing.T) {
	gdb := setupServiceTestDB(t)
	voter := seedUser(t, gdb, "alice")
	svc := NewVoteService(gdb)

	if err := svc.Unvote(voter.ID, db.VoteTargetArticle, 42); err != nil {
		t.Fatalf("unvote without a vote must succeed, got %v", err)
	}
}

func TestVoteCounts(t *testing.T) {
	gdb := setupServiceTestDB(t)
	alice := seedUser(t, gdb, "alice")
	bob := seedUser(t, gdb, "bob")
	carol := seedUser(t, gdb, "carol")
	svc := NewVoteService(gdb)

	for _, v := range []struct {
		owner    uint
		positive bool
	}{
		{alice.ID, true},
		{bob.ID, true},
		{carol.ID, false},
	} {
		if _, err := svc.Vote(v.owner, db.VoteTargetArticle, 1, v.positive); err != nil {
			t.Fatalf("failed to vote: %v", err)
		}
	}

	up, err := svc.CountPositive(db.VoteTargetArticle, 1)
	if err != nil {
		t.Fatalf("failed to count up votes: %v", err)
	}
	down, err := svc.CountNegative(db.VoteTargetArticle, 1)
	if err != nil {
		t.Fatalf("failed to count down votes: %v", err)
	}
	if up != 2 || down != 1 {
		t.Fatalf("expected 2 up / 1 down, got %d / %d", up, down)
	}
}

func TestCountsByTarget(t *testing.T) {
	gdb := setupServiceTestDB(t)
	alice := seedUser(t, gdb, "alice")
	bob := seedUser(t, gdb, "bob")
	svc := NewVoteService(gdb)

	if _, err := svc.Vote(alice.ID, db.VoteTargetArticle, 1, true); err != nil {
		t.Fatalf("failed to vote: %v", err)
	}
	if _, err := svc.Vote(bob.ID, db.VoteTargetArticle, 1, false); err != nil {
		t.Fatalf("failed to vote: %v", err)
	}
	if _, err := svc.Vote(alice.ID, db.VoteTargetArticle, 2, true); err != nil {
		t.Fatalf("failed to vote: %v", err)
	}

	counts, err := svc.CountsByTarget(db.VoteTargetArticle, []uint{1, 2, 3})
	if err != nil {
		t.Fatalf("failed to batch count: %v", err)
	}

	if c := counts[1]; c.Up != 1 || c.Down != 1 {
		t.Fatalf("target 1: expected 1 up / 1 down, got %+v", c)
	}
	if c := counts[2]; c.Up != 1 || c.Down != 0 {
		t.Fatalf("target 2: expected 1 up / 0 down, got %+v", c)
	}
	if _, ok := counts[3]; ok {
		t.Fatal("target without votes must be absent from the map")
	}

	empty, err := svc.CountsByTarget(db.VoteTargetArticle, nil)
	if err != nil {
		t.Fatalf("failed to count empty batch: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty map for empty batch, got %v", empty)
	}
}
