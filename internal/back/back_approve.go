package back

import (
	"context"
	"fmt"
	"log"

	"rankit/internal/rating"
	"rankit/internal/util"

	"github.com/jmoiron/sqlx"
)

// ApproveResult lets the signed-in player acknowledge a result reported by
// their opponent. This is the only trigger that moves ratings: on the first
// effective call the pending Score row, the Match and both players'
// SkillRating are updated together in one transaction.
//
// Approving an already-approved match is not an error, it is a no-op so
// concurrent duplicate requests cannot rate the same match twice. The
// check-and-set on the pending row's Reviewed flag is what enforces the
// exactly-once guarantee.
func (b *Back) ApproveResult(
	ctx context.Context,
	matchID, selfScoreID, opponentScoreID util.UUIDAsBlob,
) error {
	return b.transaction(func(tx *sqlx.Tx) error {
		self, err := currentPlayer(ctx, tx)
		if err != nil {
			return err
		}

		match, err := getMatchByID(tx, matchID)
		if err != nil {
			return fmt.Errorf("unable to fetch match %s: %w", matchID, err)
		}

		selfScore, err := getScoreByID(tx, selfScoreID)
		if err != nil {
			return fmt.Errorf("unable to fetch score %s: %w", selfScoreID, err)
		}

		opponentScore, err := getScoreByID(tx, opponentScoreID)
		if err != nil {
			return fmt.Errorf("unable to fetch score %s: %w", opponentScoreID, err)
		}

		if err := checkApprovalConsistency(match, selfScore, opponentScore); err != nil {
			return err
		}

		if selfScore.PlayerID != self.ID {
			return util.ErrPublic("you can only approve your own score")
		}

		// Idempotent check-and-set: flip the pending flag only if no one
		// else did. Losing the race means the ratings are already up to
		// date and there is nothing left to do.
		res, err := tx.Exec(`UPDATE Score SET Reviewed = 1 WHERE ID = ? AND Reviewed = 0`, selfScore.ID)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			log.Printf("debug: match %s approved twice, ignoring", match.ID)
			return nil
		}

		selfSkill, err := getSkillRating(tx, selfScore.PlayerID)
		if err != nil {
			return err
		}
		opponentSkill, err := getSkillRating(tx, opponentScore.PlayerID)
		if err != nil {
			return err
		}

		// Argument order does not matter, the winner is resolved from the
		// score values.
		newSelf, newOpponent, err := rating.Update(
			selfSkill.Rating(), selfScore.Value,
			opponentSkill.Rating(), opponentScore.Value,
		)
		if err != nil {
			return fmt.Errorf("unable to rate match %s: %w", match.ID, err)
		}

		selfSkill.apply(newSelf)
		opponentSkill.apply(newOpponent)
		match.Reviewed = true

		return util.ConcatErrors([]error{
			selfSkill.update(tx),
			opponentSkill.update(tx),
			match.update(tx),
		})
	})
}

// checkApprovalConsistency rejects approval requests whose three IDs do not
// describe one well-formed match. A mismatch means corrupted data or a
// forged request, either way nothing must be written.
func checkApprovalConsistency(match Match, selfScore, opponentScore Score) error {
	if selfScore.MatchID != match.ID || opponentScore.MatchID != match.ID {
		return fmt.Errorf("scores %s/%s do not belong to match %s", selfScore.ID, opponentScore.ID, match.ID)
	}

	if selfScore.PlayerID == opponentScore.PlayerID {
		return fmt.Errorf("match %s: both scores belong to player %s", match.ID, selfScore.PlayerID)
	}

	for _, v := range []Score{selfScore, opponentScore} {
		if v.PlayerID != match.PlayerA && v.PlayerID != match.PlayerB {
			return fmt.Errorf("match %s: score %s belongs to a third player %s", match.ID, v.ID, v.PlayerID)
		}
	}

	if !opponentScore.Reviewed {
		return fmt.Errorf("match %s: submitter score %s is not reviewed", match.ID, opponentScore.ID)
	}

	return nil
}
