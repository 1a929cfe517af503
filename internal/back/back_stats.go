package back

import (
	"rankit/internal/util"

	"github.com/jmoiron/sqlx"
)

// A PendingMatch is a reported result waiting on one player's approval,
// with everything the approval call needs.
type PendingMatch struct {
	MatchID      util.UUIDAsBlob
	SelfScoreID  util.UUIDAsBlob
	SelfValue    int
	OppScoreID   util.UUIDAsBlob
	OppValue     int
	OpponentName string
	CreatedAt    util.TimeAsTimestamp
}

// ProfileStats aggregates a player's match history. Purely derived from
// stored Score rows, computing it mutates nothing.
type ProfileStats struct {
	GamesPlayed int
	Won         int
	Lost        int

	// PendingSelf are matches waiting on this player's approval,
	// PendingOthers the ones this player reported and is waiting on.
	PendingSelf   []PendingMatch
	PendingOthers []PendingMatch
}

const pendingMatchQuery = `
    SELECT
        t1.MatchID AS MatchID,
        t1.ID AS SelfScoreID,
        t1.Value AS SelfValue,
        t2.ID AS OppScoreID,
        t2.Value AS OppValue,
        Player.Name AS OpponentName,
        t1.CreatedAt AS CreatedAt
    FROM Score t1
    INNER JOIN Score t2 ON(t1.MatchID = t2.MatchID AND t2.PlayerID != t1.PlayerID)
    INNER JOIN Player ON(t2.PlayerID = Player.ID)
    WHERE t1.PlayerID = ? AND t1.Reviewed = ? AND t2.Reviewed = ?
    ORDER BY t1.CreatedAt ASC`

func (b *Back) GetProfileStats(playerID util.UUIDAsBlob) (stats ProfileStats, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		counts := []struct {
			Dst   interface{}
			Query string
			Args  []interface{}
		}{
			{
				&stats.GamesPlayed,
				`SELECT COUNT(*) FROM Score WHERE PlayerID = ?`,
				[]interface{}{playerID},
			},
			{
				&stats.Won,
				`SELECT COUNT(*) FROM Score WHERE PlayerID = ? AND IsWinner = 1`,
				[]interface{}{playerID},
			},
			{
				&stats.Lost,
				`SELECT COUNT(*) FROM Score WHERE PlayerID = ? AND IsWinner = 0`,
				[]interface{}{playerID},
			},
		}

		for _, v := range counts {
			if err := tx.Get(v.Dst, v.Query, v.Args...); err != nil {
				return err
			}
		}

		// Own row pending, opponent's reviewed: our approval is due.
		if err := tx.Select(&stats.PendingSelf, pendingMatchQuery, playerID, false, true); err != nil {
			return err
		}

		// The inverse: we reported, the opponent has yet to approve.
		if err := tx.Select(&stats.PendingOthers, pendingMatchQuery, playerID, true, false); err != nil {
			return err
		}

		return nil
	}); err != nil {
		return ProfileStats{}, err
	}

	return stats, nil
}
