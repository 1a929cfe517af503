package back

import (
	"context"
	"database/sql"
	"errors"

	"rankit/internal/util"

	"github.com/jmoiron/sqlx"
)

type ctxKey int

const ctxKeyPlayerID ctxKey = iota

// WithPlayerID returns a context carrying an authenticated player ID. It is
// the only channel through which operations learn who is acting, there is no
// ambient "current user".
func WithPlayerID(ctx context.Context, id util.UUIDAsBlob) context.Context {
	return context.WithValue(ctx, ctxKeyPlayerID, id)
}

// PlayerIDFromContext returns the authenticated player ID, if any.
func PlayerIDFromContext(ctx context.Context) (util.UUIDAsBlob, bool) {
	id, ok := ctx.Value(ctxKeyPlayerID).(util.UUIDAsBlob)
	return id, ok
}

// currentPlayer resolves the context identity to a stored Player, acting as
// the guard in front of every authenticated operation.
func currentPlayer(ctx context.Context, tx *sqlx.Tx) (Player, error) {
	id, ok := PlayerIDFromContext(ctx)
	if !ok || id.IsZero() {
		return Player{}, util.ErrPublic("you need to sign in first")
	}

	player, err := getPlayerByID(tx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Player{}, util.ErrPublic("you need to sign in first")
		}
		return Player{}, err
	}

	return player, nil
}
