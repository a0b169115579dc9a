package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/freeeve/kriegspiel/internal/config"
	"github.com/freeeve/kriegspiel/internal/logger"
	"github.com/freeeve/kriegspiel/pkg/kriegspiel"
)

func main() {
	logger.Init()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(cfg, os.Stdout).Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

func newApp(cfg *config.Config, out io.Writer) *cli.Command {
	boardFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{Name: "scenario", Aliases: []string{"s"}, Usage: "built-in scenario name"},
			&cli.StringFlag{Name: "board", Aliases: []string{"b"}, Usage: "board text"},
			&cli.StringFlag{Name: "board-file", Usage: "file holding board text"},
		}
	}

	return &cli.Command{
		Name:  "kriegspiel",
		Usage: "Kriegspiel rules engine tools",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "width", Value: cfg.BoardWidth, Usage: "board width"},
			&cli.IntFlag{Name: "height", Value: cfg.BoardHeight, Usage: "board height"},
		},
		Commands: []*cli.Command{
			{
				Name:  "scenarios",
				Usage: "list the built-in scenarios",
				Action: func(_ context.Context, cmd *cli.Command) error {
					size, err := boardSize(cmd)
					if err != nil {
						return err
					}
					return listScenarios(out, size)
				},
			},
			{
				Name:  "show",
				Usage: "summarize a board: units, supply and depots per player",
				Flags: boardFlags(),
				Action: func(_ context.Context, cmd *cli.Command) error {
					gs, err := loadState(cmd, cfg.Scenario)
					if err != nil {
						return err
					}
					printSummary(out, gs)
					return nil
				},
			},
			{
				Name:  "encode",
				Usage: "decode and re-encode board text",
				Flags: boardFlags(),
				Action: func(_ context.Context, cmd *cli.Command) error {
					text, err := boardText(cmd, cfg.Scenario)
					if err != nil {
						return err
					}
					size, err := boardSize(cmd)
					if err != nil {
						return err
					}
					units, strongholds := kriegspiel.DecodeBoard(text, size)
					gs := kriegspiel.NewGameState(size, kriegspiel.DefaultRoster())
					gs.Units, gs.Strongholds = units, strongholds
					fmt.Fprintln(out, kriegspiel.EncodeBoard(gs))
					return nil
				},
			},
			{
				Name:  "supply",
				Usage: "list the supplied cells of a player",
				Flags: append([]cli.Flag{
					&cli.IntFlag{Name: "player", Aliases: []string{"p"}, Required: true},
				}, boardFlags()...),
				Action: func(_ context.Context, cmd *cli.Command) error {
					gs, err := loadState(cmd, cfg.Scenario)
					if err != nil {
						return err
					}
					p := kriegspiel.PlayerID(cmd.Int("player"))
					for _, c := range gs.Supply[p].Sorted() {
						fmt.Fprintln(out, formatCell(gs.Size, c))
					}
					return nil
				},
			},
			{
				Name:  "attack-check",
				Usage: "report whether a player may attack a cell",
				Flags: append([]cli.Flag{
					&cli.IntFlag{Name: "player", Aliases: []string{"p"}, Required: true},
					&cli.StringFlag{Name: "cell", Aliases: []string{"c"}, Required: true, Usage: "x,y"},
				}, boardFlags()...),
				Action: func(_ context.Context, cmd *cli.Command) error {
					gs, err := loadState(cmd, cfg.Scenario)
					if err != nil {
						return err
					}
					cell, err := parseCell(gs.Size, cmd.String("cell"))
					if err != nil {
						return err
					}
					ok, rel := kriegspiel.CanAttack(gs, kriegspiel.PlayerID(cmd.Int("player")), cell)
					fmt.Fprintf(out, "attackable=%v relative_offense=%d outcome=%s\n", ok, rel, kriegspiel.OutcomeOf(rel))
					return nil
				},
			},
			gameCommand(cfg, out),
		},
	}
}

// boardSize reads --width and --height, rejecting boards with no cells.
func boardSize(cmd *cli.Command) (kriegspiel.Size, error) {
	w, h := cmd.Int("width"), cmd.Int("height")
	if w <= 0 || h <= 0 {
		return kriegspiel.Size{}, fmt.Errorf("board size %dx%d: width and height must be positive", w, h)
	}
	return kriegspiel.Size{Width: w, Height: h}, nil
}

// boardText resolves the board from --board, --board-file or --scenario, in
// that order, falling back to the configured scenario.
func boardText(cmd *cli.Command, fallback string) (string, error) {
	if b := cmd.String("board"); b != "" {
		return b, nil
	}
	if path := cmd.String("board-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read board file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	name := cmd.String("scenario")
	if name == "" {
		name = fallback
	}
	sc, ok := kriegspiel.ScenarioByName(name)
	if !ok {
		return "", fmt.Errorf("unknown scenario %q", name)
	}
	return sc.Board, nil
}

func loadState(cmd *cli.Command, fallback string) (*kriegspiel.GameState, error) {
	text, err := boardText(cmd, fallback)
	if err != nil {
		return nil, err
	}
	size, err := boardSize(cmd)
	if err != nil {
		return nil, err
	}
	roster := kriegspiel.DefaultRoster()
	if ids := kriegspiel.BoardPlayers(text, size); len(ids) > 0 {
		roster = roster.Subset(ids)
	}
	return kriegspiel.LoadBoard(text, roster, size), nil
}

func listScenarios(out io.Writer, size kriegspiel.Size) error {
	for _, sc := range kriegspiel.Scenarios() {
		players := kriegspiel.BoardPlayers(sc.Board, size)
		fmt.Fprintf(out, "%-28s %d players\n", sc.Name, len(players))
	}
	return nil
}

func printSummary(out io.Writer, gs *kriegspiel.GameState) {
	control := kriegspiel.ControlledCells(kriegspiel.ControlAreaOf(gs))
	fmt.Fprintf(out, "board %dx%d, turn %d, %s to move\n",
		gs.Size.Width, gs.Size.Height, gs.Turn, gs.Roster.Name(gs.Current))
	for _, p := range gs.Roster.Players {
		fmt.Fprintf(out, "%d %-24s units=%d supplied=%d depots=%d control=%d\n",
			p.ID, p.Name, len(gs.UnitCells(p.ID)), len(gs.Supply[p.ID]), gs.DepotCount(p.ID), control[p.ID])
	}
	if r, over := kriegspiel.Winner(gs); over {
		fmt.Fprintf(out, "%s has lost to %s\n", gs.Roster.Name(r.Loser), gs.Roster.Name(r.Winner))
	}
}

// parseCell reads "x,y" board coordinates.
func parseCell(size kriegspiel.Size, s string) (kriegspiel.CellID, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return kriegspiel.InvalidCell, fmt.Errorf("cell %q: want x,y", s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if errX != nil || errY != nil {
		return kriegspiel.InvalidCell, fmt.Errorf("cell %q: want x,y", s)
	}
	if x < 0 || y < 0 || x >= size.Width || y >= size.Height {
		return kriegspiel.InvalidCell, fmt.Errorf("cell %q is off the %dx%d board", s, size.Width, size.Height)
	}
	return size.Cell(x, y), nil
}

func formatCell(size kriegspiel.Size, c kriegspiel.CellID) string {
	p := size.Pos(c)
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}
