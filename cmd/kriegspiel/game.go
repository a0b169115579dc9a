package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/freeeve/kriegspiel/internal/config"
	"github.com/freeeve/kriegspiel/internal/model"
	"github.com/freeeve/kriegspiel/internal/repository/postgres"
	redisrepo "github.com/freeeve/kriegspiel/internal/repository/redis"
	"github.com/freeeve/kriegspiel/internal/service"
	"github.com/freeeve/kriegspiel/pkg/kriegspiel"
)

// openService connects to postgres and redis. The returned func closes both.
func openService(cmd *cli.Command) (*service.GameService, func(), error) {
	size, err := boardSize(cmd)
	if err != nil {
		return nil, nil, err
	}
	db, err := postgres.Connect(cmd.String("database-url"))
	if err != nil {
		return nil, nil, err
	}
	cache, err := redisrepo.NewClient(cmd.String("redis-url"))
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	svc := service.NewGameService(
		postgres.NewGameRepo(db),
		postgres.NewActionRepo(db),
		cache,
		service.NoopBroadcaster{},
		size,
	)
	return svc, func() {
		cache.Close()
		db.Close()
	}, nil
}

// withService wraps a game subcommand action with a connected service.
func withService(fn func(ctx context.Context, cmd *cli.Command, svc *service.GameService) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		svc, closeFn, err := openService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()
		return fn(ctx, cmd, svc)
	}
}

func gameFlag() cli.Flag {
	return &cli.StringFlag{Name: "game", Aliases: []string{"g"}, Required: true}
}

func playerFlag() cli.Flag {
	return &cli.IntFlag{Name: "player", Aliases: []string{"p"}, Required: true}
}

func gameCommand(cfg *config.Config, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "game",
		Usage: "play stored games (postgres + redis)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "database-url", Value: cfg.DatabaseURL},
			&cli.StringFlag{Name: "redis-url", Value: cfg.RedisURL},
		},
		Commands: []*cli.Command{
			{
				Name:  "new",
				Usage: "create a game from a scenario or board text",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Value: "Kriegspiel"},
					&cli.StringFlag{Name: "scenario", Aliases: []string{"s"}, Value: cfg.Scenario},
					&cli.StringFlag{Name: "board", Aliases: []string{"b"}},
				},
				Action: withService(func(ctx context.Context, cmd *cli.Command, svc *service.GameService) error {
					name := cmd.String("name")
					var (
						game *model.Game
						err  error
					)
					if b := cmd.String("board"); b != "" {
						game, err = svc.CreateGameFromBoard(ctx, name, b)
					} else {
						game, err = svc.CreateGame(ctx, name, cmd.String("scenario"))
					}
					if err != nil {
						return err
					}
					fmt.Fprintln(out, game.ID)
					return nil
				}),
			},
			{
				Name:  "list",
				Usage: "list games",
				Flags: []cli.Flag{&cli.StringFlag{Name: "status", Usage: "active or finished"}},
				Action: withService(func(ctx context.Context, cmd *cli.Command, svc *service.GameService) error {
					games, err := svc.ListGames(ctx, cmd.String("status"))
					if err != nil {
						return err
					}
					for _, g := range games {
						fmt.Fprintf(out, "%s  %-8s turn=%-4d %-24s %s\n", g.ID, g.Status, g.Turn, g.Scenario, g.Name)
					}
					return nil
				}),
			},
			{
				Name:  "show",
				Usage: "summarize a stored game",
				Flags: []cli.Flag{gameFlag(), &cli.BoolFlag{Name: "board", Usage: "print the board text"}},
				Action: withService(func(ctx context.Context, cmd *cli.Command, svc *service.GameService) error {
					gs, err := svc.State(ctx, cmd.String("game"))
					if err != nil {
						return err
					}
					printSummary(out, gs)
					if cmd.Bool("board") {
						fmt.Fprintln(out, kriegspiel.EncodeBoard(gs))
					}
					return nil
				}),
			},
			{
				Name:  "history",
				Usage: "list the recorded actions of a game",
				Flags: []cli.Flag{gameFlag()},
				Action: withService(func(ctx context.Context, cmd *cli.Command, svc *service.GameService) error {
					actions, err := svc.History(ctx, cmd.String("game"))
					if err != nil {
						return err
					}
					for _, a := range actions {
						fmt.Fprintf(out, "%4d turn=%-4d player=%d %-16s from=%d to=%d\n", a.Seq, a.Turn, a.Player, a.Kind, a.From, a.To)
					}
					return nil
				}),
			},
			{
				Name:  "move",
				Usage: "move a unit",
				Flags: []cli.Flag{
					gameFlag(), playerFlag(),
					&cli.StringFlag{Name: "from", Required: true, Usage: "x,y"},
					&cli.StringFlag{Name: "to", Required: true, Usage: "x,y"},
				},
				Action: withService(func(ctx context.Context, cmd *cli.Command, svc *service.GameService) error {
					size, err := boardSize(cmd)
					if err != nil {
						return err
					}
					from, err := parseCell(size, cmd.String("from"))
					if err != nil {
						return err
					}
					to, err := parseCell(size, cmd.String("to"))
					if err != nil {
						return err
					}
					return svc.Move(ctx, cmd.String("game"), kriegspiel.PlayerID(cmd.Int("player")), from, to)
				}),
			},
			{
				Name:  "attack",
				Usage: "attack a cell",
				Flags: []cli.Flag{gameFlag(), playerFlag(), &cli.StringFlag{Name: "cell", Aliases: []string{"c"}, Required: true, Usage: "x,y"}},
				Action: withService(func(ctx context.Context, cmd *cli.Command, svc *service.GameService) error {
					size, err := boardSize(cmd)
					if err != nil {
						return err
					}
					cell, err := parseCell(size, cmd.String("cell"))
					if err != nil {
						return err
					}
					outcome, err := svc.Attack(ctx, cmd.String("game"), kriegspiel.PlayerID(cmd.Int("player")), cell)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, outcome)
					return nil
				}),
			},
			{
				Name:  "end-turn",
				Usage: "end the current turn",
				Flags: []cli.Flag{gameFlag(), playerFlag()},
				Action: withService(func(ctx context.Context, cmd *cli.Command, svc *service.GameService) error {
					res, err := svc.EndTurn(ctx, cmd.String("game"), kriegspiel.PlayerID(cmd.Int("player")))
					if err != nil {
						return err
					}
					if res != nil {
						log.Info().Int("winner", int(res.Winner)).Int("loser", int(res.Loser)).Msg("Game over")
						fmt.Fprintf(out, "game over: player %d beat player %d\n", res.Winner, res.Loser)
					}
					return nil
				}),
			},
			{
				Name:  "merge",
				Usage: "overlay board text on a game",
				Flags: []cli.Flag{gameFlag(), &cli.StringFlag{Name: "board", Aliases: []string{"b"}, Required: true}},
				Action: withService(func(ctx context.Context, cmd *cli.Command, svc *service.GameService) error {
					return svc.MergeBoard(ctx, cmd.String("game"), cmd.String("board"))
				}),
			},
		},
	}
}
