package back // nolint:testpackage

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"rankit/internal/util"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// testBack returns a Back running on an in-memory database with the
// repository migrations applied.
func testBack(t *testing.T) *Back {
	t.Helper()

	b, err := New("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		b.db.Close()
	})

	files, err := filepath.Glob(filepath.Join("..", "..", "migrations", "*.up.sql"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("found no migration to apply")
	}
	sort.Strings(files)

	for _, path := range files {
		schema, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}

		if _, err := b.db.Exec(string(schema)); err != nil {
			t.Fatalf("unable to apply %s: %s", path, err)
		}
	}

	return b
}

func registerTestPlayer(t *testing.T, b *Back, name string) Player {
	t.Helper()

	player, err := b.RegisterPlayer(name, "")
	if err != nil {
		t.Fatal(err)
	}

	return player
}

func asPlayer(player Player) context.Context {
	return WithPlayerID(context.Background(), player.ID)
}

func countRows(t *testing.T, b *Back, table string) int {
	t.Helper()

	var ret int
	if err := b.transaction(func(tx *sqlx.Tx) error {
		return tx.Get(&ret, `SELECT COUNT(*) FROM "`+table+`"`)
	}); err != nil {
		t.Fatal(err)
	}

	return ret
}

func matchState(t *testing.T, b *Back, matchID util.UUIDAsBlob) (Match, []Score) {
	t.Helper()

	var (
		match  Match
		scores []Score
	)

	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		if match, err = getMatchByID(tx, matchID); err != nil {
			return err
		}
		scores, err = getScoresByMatchID(tx, matchID)
		return err
	}); err != nil {
		t.Fatal(err)
	}

	return match, scores
}

func playerSkill(t *testing.T, b *Back, playerID util.UUIDAsBlob) SkillRating {
	t.Helper()

	var ret SkillRating
	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		ret, err = getSkillRating(tx, playerID)
		return err
	}); err != nil {
		t.Fatal(err)
	}

	return ret
}

// scoreOf returns the Score row of a given player out of the two rows of a
// match.
func scoreOf(t *testing.T, scores []Score, playerID util.UUIDAsBlob) Score {
	t.Helper()

	for _, v := range scores {
		if v.PlayerID == playerID {
			return v
		}
	}

	t.Fatalf("no score for player %s", playerID)
	return Score{}
}
