package back

import (
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

// A LeaderboardEntry is one row of the public ranking table.
type LeaderboardEntry struct {
	PlayerName  string
	DisplayName null.String
	Mu          float64
	Sigma       float64
	Wins        int
	Losses      int
}

// GetLeaderboard returns every player's current rating ordered by mean
// skill, best first. Ties are returned in no particular order.
// Win and loss counts only cover matches the opponent has confirmed.
func (b *Back) GetLeaderboard() (out []LeaderboardEntry, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		query := `
            SELECT
                Player.Name AS PlayerName,
                Player.DisplayName AS DisplayName,
                SkillRating.Mu AS Mu,
                SkillRating.Sigma AS Sigma,
                SUM(CASE WHEN Score.IsWinner = 1 THEN 1 ELSE 0 END) AS Wins,
                SUM(CASE WHEN Score.IsWinner = 0 THEN 1 ELSE 0 END) AS Losses
            FROM SkillRating
            INNER JOIN Player ON(SkillRating.PlayerID = Player.ID)
            LEFT JOIN Match ON(Match.Reviewed = 1 AND Player.ID IN (Match.PlayerA, Match.PlayerB))
            LEFT JOIN Score ON(Score.MatchID = Match.ID AND Score.PlayerID = Player.ID)
            GROUP BY Player.ID
            ORDER BY SkillRating.Mu DESC`

		return tx.Select(&out, query)
	}); err != nil {
		return nil, err
	}

	return out, nil
}
