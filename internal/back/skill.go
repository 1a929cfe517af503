package back

import (
	"fmt"
	"time"

	"rankit/internal/rating"
	"rankit/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// SkillRating is the current belief about a player's skill. There is exactly
// one live row per player, seeded at registration and mutated only when a
// match result is approved.
type SkillRating struct {
	PlayerID  util.UUIDAsBlob
	CreatedAt util.TimeAsTimestamp
	UpdatedAt util.TimeAsTimestamp

	// TrueSkill
	Mu    float64
	Sigma float64
}

func NewSkillRating(playerID util.UUIDAsBlob) SkillRating {
	now := util.TimeAsTimestamp(time.Now())

	return SkillRating{
		PlayerID:  playerID,
		CreatedAt: now,
		UpdatedAt: now,

		Mu:    rating.DefaultMu,
		Sigma: rating.DefaultSigma,
	}
}

func (r SkillRating) Rating() rating.Rating {
	return rating.Rating{Mu: r.Mu, Sigma: r.Sigma}
}

func (r *SkillRating) apply(v rating.Rating) {
	r.Mu = v.Mu
	r.Sigma = v.Sigma
	r.UpdatedAt = util.TimeAsTimestamp(time.Now())
}

func (r *SkillRating) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("SkillRating").SetMap(squirrel.Eq{
		"PlayerID":  r.PlayerID,
		"CreatedAt": r.CreatedAt,
		"UpdatedAt": r.UpdatedAt,
		"Mu":        r.Mu,
		"Sigma":     r.Sigma,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func (r *SkillRating) update(tx *sqlx.Tx) error {
	query, args, err := squirrel.Update("SkillRating").SetMap(squirrel.Eq{
		"UpdatedAt": r.UpdatedAt,
		"Mu":        r.Mu,
		"Sigma":     r.Sigma,
	}).Where("SkillRating.PlayerID = ?", r.PlayerID).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

// getSkillRating returns the live rating of a player. A missing row is a
// data-integrity error, registration always seeds one.
func getSkillRating(tx *sqlx.Tx, playerID util.UUIDAsBlob) (SkillRating, error) {
	var ret SkillRating
	query := `SELECT * FROM SkillRating WHERE PlayerID = ? LIMIT 1`
	if err := tx.Get(&ret, query, playerID); err != nil {
		return SkillRating{}, fmt.Errorf("unable to fetch rating of player %s: %w", playerID, err)
	}

	return ret, nil
}
