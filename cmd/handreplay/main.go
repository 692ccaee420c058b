// Command handreplay replays a hand history file in the terminal and computes
// ICM equities.
//
//	handreplay replay hand.json [-dump]
//	handreplay icm -stacks 300,200,100 -payouts 0.5,0.3,0.2
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lazharichir/handreplay/config"
	"github.com/lazharichir/handreplay/game"
	"github.com/lazharichir/handreplay/hand"
	"github.com/lazharichir/handreplay/icm"
	"github.com/lazharichir/handreplay/table"
	"github.com/pterm/pterm"
	"github.com/sanity-io/litter"
	"github.com/shopspring/decimal"
)

var errUsage = errors.New("usage: handreplay replay <hand.json> [-dump] | handreplay icm -stacks a,b,c -payouts x,y")

func main() {
	cfg, err := config.Load()
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	pterm.DefaultLogger.Level = ptermLevel(cfg.LogLevel)
	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))

	if err := run(os.Args[1:], cfg, logger, os.Stdout); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(args []string, cfg config.Config, logger *slog.Logger, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "replay":
		return runReplay(args[1:], logger, out)
	case "icm":
		return runICM(args[1:], cfg, out)
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}

func runReplay(args []string, logger *slog.Logger, out io.Writer) error {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	dump := fs.Bool("dump", false, "dump the final table state")
	if err := fs.Parse(reorder(args)); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	h, err := hand.Decode(f)
	if err != nil {
		return err
	}

	replay, err := game.NewEngine(game.WithLogger(logger)).Replay(h)
	if err != nil {
		return err
	}
	for _, d := range replay.Diagnostics {
		logger.Warn("action skipped", "event", d.EventName(), "detail", litter.Sdump(d))
	}

	rendered, err := snapshotTable(replay).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, rendered)

	if *dump {
		fmt.Fprintln(out, litter.Sdump(replay.Final()))
	}
	return nil
}

// reorder moves flags ahead of positional arguments so "file -dump" parses.
func reorder(args []string) []string {
	var flags, rest []string
	for _, a := range args {
		if strings.HasPrefix(a, "-") {
			flags = append(flags, a)
		} else {
			rest = append(rest, a)
		}
	}
	return append(flags, rest...)
}

func snapshotTable(replay *game.Replay) *pterm.TablePrinter {
	data := pterm.TableData{{"#", "Street", "Pot", "Bet", "Called", "Board", "Players"}}
	for i, s := range replay.Snapshots {
		data = append(data, []string{
			fmt.Sprint(i),
			string(s.Street),
			s.Pot.String(),
			s.Bet.String(),
			s.Called.String(),
			board(s),
			players(s),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data)
}

func board(s table.TableState) string {
	parts := make([]string, 0, len(s.Board))
	for _, br := range s.Board {
		parts = append(parts, br.Cards.String())
	}
	return strings.Join(parts, " | ")
}

func players(s table.TableState) string {
	parts := make([]string, 0, len(s.Players))
	for _, p := range s.Players {
		entry := fmt.Sprintf("%s %s/%s", p.Name, p.Stack, p.Chips)
		if p.JustActed && p.Action != "" {
			entry += " (" + p.Action + ")"
		}
		if p.Folded {
			entry += " folded"
		}
		if p.HandName != "" {
			entry += " [" + p.HandName + "]"
		}
		parts = append(parts, entry)
	}
	return strings.Join(parts, ", ")
}

func runICM(args []string, cfg config.Config, out io.Writer) error {
	fs := flag.NewFlagSet("icm", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	stacksFlag := fs.String("stacks", "", "comma separated chip stacks")
	payoutsFlag := fs.String("payouts", "", "comma separated prize fractions")
	if err := fs.Parse(args); err != nil {
		return err
	}

	stacks, err := parseDecimals(*stacksFlag)
	if err != nil {
		return fmt.Errorf("invalid stacks: %w", err)
	}
	payouts, err := parseDecimals(*payoutsFlag)
	if err != nil {
		return fmt.Errorf("invalid payouts: %w", err)
	}

	equities, err := icm.EquitiesWithPrecision(stacks, payouts, cfg.ICMPrecision)
	if err != nil {
		return err
	}

	data := pterm.TableData{{"Player", "Stack", "Equity"}}
	for i, eq := range equities {
		data = append(data, []string{fmt.Sprint(i + 1), stacks[i].String(), eq.String()})
	}
	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, rendered)
	return nil
}

func parseDecimals(s string) ([]decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]decimal.Decimal, 0, len(fields))
	for _, f := range fields {
		v, err := decimal.NewFromString(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func ptermLevel(level slog.Level) pterm.LogLevel {
	switch {
	case level <= slog.LevelDebug:
		return pterm.LogLevelDebug
	case level <= slog.LevelInfo:
		return pterm.LogLevelInfo
	case level <= slog.LevelWarn:
		return pterm.LogLevelWarn
	default:
		return pterm.LogLevelError
	}
}
