package back

import (
	"fmt"
	"time"

	"rankit/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

// A Player is a ladder competitor, identified by a unique name.
type Player struct {
	ID          util.UUIDAsBlob
	CreatedAt   util.TimeAsTimestamp
	Name        string
	DisplayName null.String
}

func NewPlayer(name string) Player {
	return Player{
		ID:        util.NewUUIDAsBlob(),
		CreatedAt: util.TimeAsTimestamp(time.Now()),
		Name:      name,
	}
}

func (p *Player) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Player").SetMap(squirrel.Eq{
		"ID":          p.ID,
		"CreatedAt":   p.CreatedAt,
		"Name":        p.Name,
		"DisplayName": p.DisplayName,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getPlayerByName(tx *sqlx.Tx, name string) (Player, error) {
	var ret Player
	query := `SELECT * FROM Player WHERE Player.Name = ? LIMIT 1`
	if err := tx.Get(&ret, query, name); err != nil {
		return Player{}, err
	}

	return ret, nil
}

func getPlayerByID(tx *sqlx.Tx, id util.UUIDAsBlob) (Player, error) {
	var ret Player
	query := `SELECT * FROM Player WHERE Player.ID = ? LIMIT 1`
	if err := tx.Get(&ret, query, id); err != nil {
		return Player{}, err
	}

	return ret, nil
}

func (b *Back) GetPlayerByName(name string) (player Player, _ error) {
	return player, b.transaction(func(tx *sqlx.Tx) (err error) {
		player, err = getPlayerByName(tx, name)
		return err
	})
}

// RegisterPlayer creates a new competitor and seeds its default skill
// rating. The name must be unique across the ladder; the rating row lives
// and dies with the player and is never created anywhere else.
func (b *Back) RegisterPlayer(name, displayName string) (player Player, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		if len(name) < 3 || len(name) > 32 {
			return util.ErrPublic("your name must be between 3 and 32 characters")
		}

		if _, err := getPlayerByName(tx, name); err == nil {
			return util.ErrPublic(fmt.Sprintf("the name `%s` is taken already, please pick another name", name))
		}

		player = NewPlayer(name)
		player.DisplayName = null.NewString(displayName, displayName != "")
		if err := player.insert(tx); err != nil {
			return err
		}

		skill := NewSkillRating(player.ID)
		if err := skill.insert(tx); err != nil {
			return err
		}

		return nil
	}); err != nil {
		return Player{}, err
	}

	return player, nil
}
