package main

import (
	"context"
	"log"

	"rankit/internal/back"
	"rankit/internal/config"
)

// loadFixtures seeds a handful of players, one approved match and one match
// still waiting on its approval.
func loadFixtures(conf *config.Config) error {
	if err := runMigrations(conf.SQLDSN); err != nil {
		return err
	}

	b, err := back.New(conf.SQLDriver, conf.SQLDSN)
	if err != nil {
		return err
	}

	names := []string{"Darunia", "Ruto", "Rauru", "Nabooru"}
	players := make([]back.Player, 0, len(names))
	for _, name := range names {
		player, err := b.RegisterPlayer(name, "")
		if err != nil {
			return err
		}
		players = append(players, player)
	}

	ctx := context.Background()

	if _, err := b.SubmitResult(
		back.WithPlayerID(ctx, players[0].ID),
		players[1].Name, 3, 1,
	); err != nil {
		return err
	}

	stats, err := b.GetProfileStats(players[1].ID)
	if err != nil {
		return err
	}
	for _, pending := range stats.PendingSelf {
		if err := b.ApproveResult(
			back.WithPlayerID(ctx, players[1].ID),
			pending.MatchID, pending.SelfScoreID, pending.OppScoreID,
		); err != nil {
			return err
		}
	}

	// Left pending on purpose.
	if _, err := b.SubmitResult(
		back.WithPlayerID(ctx, players[2].ID),
		players[3].Name, 2, 5,
	); err != nil {
		return err
	}

	log.Printf("info: loaded fixtures for %d players", len(players))

	return nil
}
