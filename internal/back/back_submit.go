package back

import (
	"context"
	"database/sql"
	"errors"

	"rankit/internal/util"

	"github.com/jmoiron/sqlx"
)

// SubmitResult records the outcome of a game between the signed-in player
// and the named opponent. The submitter's Score row is auto-approved, the
// opponent's is left pending; ratings do not move until the opponent
// approves. The match and both scores are inserted in one transaction, a
// failed validation writes nothing.
func (b *Back) SubmitResult(
	ctx context.Context,
	opponentName string,
	selfValue, opponentValue int,
) (Match, error) {
	var ret Match

	if err := b.transaction(func(tx *sqlx.Tx) error {
		self, err := currentPlayer(ctx, tx)
		if err != nil {
			return err
		}

		if opponentName == "" {
			return util.ErrPublic("all entries must be filled")
		}

		opponent, err := getPlayerByName(tx, opponentName)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return util.ErrPublic("opponent's username does not exist")
			}
			return err
		}

		if opponent.ID == self.ID {
			return util.ErrPublic("opponent cannot be yourself")
		}

		if selfValue < 0 || opponentValue < 0 {
			return util.ErrPublic("scores must be non-negative integers")
		}

		if selfValue == opponentValue {
			return util.ErrPublic("game result cannot be a draw")
		}

		match := NewMatch(self.ID, opponent.ID)
		scores := []Score{
			NewScore(match.ID, self.ID, selfValue, opponentValue, true),
			NewScore(match.ID, opponent.ID, opponentValue, selfValue, false),
		}

		if err := match.insert(tx); err != nil {
			return err
		}

		for k := range scores {
			if err := scores[k].insert(tx); err != nil {
				return err
			}
		}

		ret = match
		return nil
	}); err != nil {
		return Match{}, err
	}

	return ret, nil
}
