package back

import (
	"time"

	"rankit/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// A Match is a single game between two distinct players. PlayerA is always
// the submitter. A match and its two Score rows are created together and are
// immutable except for the review flags; Reviewed flips false to true exactly
// once, when the opponent approves the reported result.
type Match struct {
	ID        util.UUIDAsBlob
	PlayerA   util.UUIDAsBlob
	PlayerB   util.UUIDAsBlob
	CreatedAt util.TimeAsTimestamp
	Reviewed  bool
}

// A Score is one player's reported result in a match. Exactly two rows exist
// per match, one per player, with unequal Values. The submitter's row is
// born reviewed, the opponent's row is born pending.
type Score struct {
	ID        util.UUIDAsBlob
	MatchID   util.UUIDAsBlob
	PlayerID  util.UUIDAsBlob
	CreatedAt util.TimeAsTimestamp
	Value     int
	IsWinner  bool
	Reviewed  bool
}

func NewMatch(playerA, playerB util.UUIDAsBlob) Match {
	return Match{
		ID:        util.NewUUIDAsBlob(),
		PlayerA:   playerA,
		PlayerB:   playerB,
		CreatedAt: util.TimeAsTimestamp(time.Now()),
	}
}

// NewScore derives IsWinner from the two values, draws are rejected long
// before this point.
func NewScore(matchID, playerID util.UUIDAsBlob, value, opponentValue int, reviewed bool) Score {
	return Score{
		ID:        util.NewUUIDAsBlob(),
		MatchID:   matchID,
		PlayerID:  playerID,
		CreatedAt: util.TimeAsTimestamp(time.Now()),
		Value:     value,
		IsWinner:  value > opponentValue,
		Reviewed:  reviewed,
	}
}

func (m *Match) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Match").SetMap(squirrel.Eq{
		"ID":        m.ID,
		"PlayerA":   m.PlayerA,
		"PlayerB":   m.PlayerB,
		"CreatedAt": m.CreatedAt,
		"Reviewed":  m.Reviewed,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func (m *Match) update(tx *sqlx.Tx) error {
	query, args, err := squirrel.Update("Match").SetMap(squirrel.Eq{
		"Reviewed": m.Reviewed,
	}).Where("Match.ID = ?", m.ID).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func (s *Score) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Score").SetMap(squirrel.Eq{
		"ID":        s.ID,
		"MatchID":   s.MatchID,
		"PlayerID":  s.PlayerID,
		"CreatedAt": s.CreatedAt,
		"Value":     s.Value,
		"IsWinner":  s.IsWinner,
		"Reviewed":  s.Reviewed,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getMatchByID(tx *sqlx.Tx, id util.UUIDAsBlob) (Match, error) {
	var ret Match
	query := `SELECT * FROM Match WHERE Match.ID = ? LIMIT 1`
	if err := tx.Get(&ret, query, id); err != nil {
		return Match{}, err
	}

	return ret, nil
}

func getScoreByID(tx *sqlx.Tx, id util.UUIDAsBlob) (Score, error) {
	var ret Score
	query := `SELECT * FROM Score WHERE Score.ID = ? LIMIT 1`
	if err := tx.Get(&ret, query, id); err != nil {
		return Score{}, err
	}

	return ret, nil
}

func getScoresByMatchID(tx *sqlx.Tx, matchID util.UUIDAsBlob) ([]Score, error) {
	var ret []Score
	query := `SELECT * FROM Score WHERE Score.MatchID = ? ORDER BY Score.Reviewed DESC`
	if err := tx.Select(&ret, query, matchID); err != nil {
		return nil, err
	}

	return ret, nil
}
