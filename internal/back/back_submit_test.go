package back // nolint:testpackage

import (
	"context"
	"errors"
	"testing"

	"rankit/internal/rating"
	"rankit/internal/util"
)

func TestSubmitResultCreatesPendingMatch(t *testing.T) {
	b := testBack(t)
	submitter := registerTestPlayer(t, b, "Darunia")
	opponent := registerTestPlayer(t, b, "Ruto")

	match, err := b.SubmitResult(asPlayer(submitter), "Ruto", 21, 15)
	if err != nil {
		t.Fatal(err)
	}

	if match.PlayerA != submitter.ID || match.PlayerB != opponent.ID {
		t.Errorf("unexpected match players: %s vs %s", match.PlayerA, match.PlayerB)
	}

	stored, scores := matchState(t, b, match.ID)
	if stored.Reviewed {
		t.Error("a new match must not be reviewed")
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(scores))
	}

	self := scoreOf(t, scores, submitter.ID)
	opp := scoreOf(t, scores, opponent.ID)

	if !self.Reviewed || !self.IsWinner || self.Value != 21 {
		t.Errorf("bad submitter score: %+v", self)
	}
	if opp.Reviewed || opp.IsWinner || opp.Value != 15 {
		t.Errorf("bad opponent score: %+v", opp)
	}

	// Ratings must not move before approval.
	for _, playerID := range []util.UUIDAsBlob{submitter.ID, opponent.ID} {
		skill := playerSkill(t, b, playerID)
		if skill.Mu != rating.DefaultMu || skill.Sigma != rating.DefaultSigma {
			t.Errorf("rating of %s moved before approval: %+v", playerID, skill)
		}
	}
}

func TestSubmitResultValidation(t *testing.T) {
	b := testBack(t)
	submitter := registerTestPlayer(t, b, "Darunia")
	registerTestPlayer(t, b, "Ruto")

	cases := []struct {
		name                string
		opponent            string
		selfValue, oppValue int
	}{
		{"empty opponent", "", 1, 0},
		{"unknown opponent", "Ganondorf", 1, 0},
		{"self match", "Darunia", 1, 0},
		{"negative self score", "Ruto", -1, 0},
		{"negative opponent score", "Ruto", 1, -2},
		{"draw", "Ruto", 7, 7},
	}

	for _, v := range cases {
		t.Run(v.name, func(t *testing.T) {
			_, err := b.SubmitResult(asPlayer(submitter), v.opponent, v.selfValue, v.oppValue)
			if !errors.Is(err, util.ErrPublic("")) {
				t.Errorf("expected a public validation error, got %v", err)
			}
		})
	}

	// No partial write may have survived any of the rejections.
	if n := countRows(t, b, "Match"); n != 0 {
		t.Errorf("expected 0 matches, got %d", n)
	}
	if n := countRows(t, b, "Score"); n != 0 {
		t.Errorf("expected 0 scores, got %d", n)
	}
}

func TestSubmitResultRequiresIdentity(t *testing.T) {
	b := testBack(t)
	registerTestPlayer(t, b, "Ruto")

	if _, err := b.SubmitResult(context.Background(), "Ruto", 2, 1); !errors.Is(err, util.ErrPublic("")) {
		t.Errorf("expected a public error without an identity, got %v", err)
	}
}

func TestRegisterPlayerSeedsRating(t *testing.T) {
	b := testBack(t)
	player := registerTestPlayer(t, b, "Darunia")

	skill := playerSkill(t, b, player.ID)
	if skill.Mu != rating.DefaultMu || skill.Sigma != rating.DefaultSigma {
		t.Errorf("unexpected seed rating: %+v", skill)
	}
}

func TestRegisterPlayerRejectsDuplicates(t *testing.T) {
	b := testBack(t)
	registerTestPlayer(t, b, "Darunia")

	if _, err := b.RegisterPlayer("Darunia", ""); !errors.Is(err, util.ErrPublic("")) {
		t.Errorf("expected a public error on duplicate name, got %v", err)
	}

	if n := countRows(t, b, "Player"); n != 1 {
		t.Errorf("expected 1 player, got %d", n)
	}
	if n := countRows(t, b, "SkillRating"); n != 1 {
		t.Errorf("expected 1 rating, got %d", n)
	}
}
