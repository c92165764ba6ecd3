package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guildforge/ledgerbot/ledgerbot"
	"github.com/guildforge/ledgerbot/ledgerbot/database"
	"github.com/guildforge/ledgerbot/ledgerbot/database/repositories"
	"github.com/guildforge/ledgerbot/ledgerbot/economy"
	"github.com/guildforge/ledgerbot/ledgerbot/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = "ledgerbot-migrate"
	app.Usage = "Manage the ledger database without starting the bot"
	app.Flags = []cli.Flag{
		&cli.StringFlag{Name: "config", Value: "config.toml", Usage: "path to config"},
	}
	app.Commands = []*cli.Command{
		{
			Name:   "up",
			Usage:  "Create tables and indexes, then seed the material catalog",
			Action: withDB(migrateUp),
		},
		{
			Name:   "materials",
			Usage:  "List the material catalog",
			Action: withDB(listMaterials),
		},
		{
			Name:      "set-value",
			Usage:     "Change a material's scaled per-unit value",
			ArgsUsage: "<material> <value>",
			Action:    withDB(setValue),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Migration failed", slog.String("type", "sys"), slog.Any("error", err))
		os.Exit(1)
	}
}

func withDB(fn func(*cli.Context, *database.DB) error) cli.ActionFunc {
	return func(cctx *cli.Context) error {
		cfg, err := ledgerbot.ReadConfig(cctx.String("config"))
		if err != nil {
			return err
		}
		if err = cfg.ValidateDatabase(); err != nil {
			return err
		}
		slog.SetDefault(logger.New(cfg.Log, os.Stdout))

		ctx, cancel := context.WithTimeout(cctx.Context, 5*time.Minute)
		defer cancel()

		db, err := database.New(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()

		if err = db.Ping(ctx); err != nil {
			return err
		}
		cctx.Context = ctx
		return fn(cctx, db)
	}
}

func migrateUp(cctx *cli.Context, db *database.DB) error {
	start := time.Now()
	if err := db.InitializeSchema(cctx.Context); err != nil {
		return err
	}
	logger.LogSystem("Schema initialized", slog.Duration("took", time.Since(start)))
	return nil
}

func listMaterials(cctx *cli.Context, db *database.DB) error {
	repo := repositories.NewLedgerRepository(db.BunDB(), database.DefaultMaterials())
	materials, err := repo.ListMaterials(cctx.Context)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDISPLAY NAME\tPOINTS/UNIT")
	for _, m := range materials {
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.Name, m.DisplayName, economy.UnitValue(m.Value))
	}
	return w.Flush()
}

func setValue(cctx *cli.Context, db *database.DB) error {
	if cctx.NArg() != 2 {
		return cli.Exit("usage: set-value <material> <value>", 2)
	}
	name := cctx.Args().Get(0)
	value, err := strconv.Atoi(cctx.Args().Get(1))
	if err != nil {
		return fmt.Errorf("value must be an integer: %w", err)
	}
	if err := database.SetMaterialValue(cctx.Context, db.BunDB(), name, value); err != nil {
		return err
	}
	logger.LogSystem("Material repriced",
		slog.String("material", name),
		slog.String("points_per_unit", economy.UnitValue(value)))
	return nil
}
