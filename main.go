package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"rankit/internal/config"

	_ "github.com/mattn/go-sqlite3"
)

// Version holds the build-time version string.
var Version = "unknown" // nolint:gochecknoglobals

func main() {
	flag.Parse()

	conf, err := config.NewFromUserConfigDir()
	if err != nil {
		log.Fatalf("error: unable to load configuration: %s", err)
	}

	switch flag.Arg(0) {
	case "version":
		fmt.Fprintf(os.Stdout, "rankit %s\n", Version)
	case "migrate":
		if err := runMigrations(conf.SQLDSN); err != nil {
			log.Fatalf("error: %s", err)
		}
	case "dev:fixtures":
		if err := loadFixtures(conf); err != nil {
			log.Fatalf("error: %s", err)
		}
	case "help":
		fmt.Fprint(os.Stdout, help())
		return
	default:
		fmt.Fprint(os.Stderr, help())
		os.Exit(1)
	}
}

func help() string {
	return fmt.Sprintf(`
rankit maintains a two-player competitive ladder with TrueSkill ratings,
every reported result requires the opponent's approval before it counts.

Usage: %[1]s COMMAND [ARGS…]

COMMANDS
    dev:fixtures create default data for quick testing during development
    help         display this help
    migrate      apply database migrations
    version      display the current version
`,
		os.Args[0],
	)
}
