// Command medctl manages medicines directly against the configured store.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/okian/meditrack/internal/adapters/repository"
	app "github.com/okian/meditrack/internal/app"
	"github.com/okian/meditrack/internal/config"
	"github.com/okian/meditrack/internal/domain/model"
	"github.com/okian/meditrack/pkg/logger"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("medctl", flag.ContinueOnError)
	global.SetOutput(stderr)
	asJSON := global.Bool("json", false, "print JSON instead of tables")
	global.Usage = func() {
		fmt.Fprintln(stderr, "usage: medctl [-json] <add|list|take|delete|schedule|stats> [flags]")
		global.PrintDefaults()
	}
	if err := global.Parse(args); err != nil {
		return exitUsage
	}
	if global.NArg() == 0 {
		global.Usage()
		return exitUsage
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "medctl:", err)
		return exitError
	}
	if err := logger.InitWith(stderr, logger.ParseFormat(cfg.LogFormat)); err != nil {
		fmt.Fprintln(stderr, "medctl:", err)
		return exitError
	}
	_ = logger.SetLevelString("warn")

	store, closeStore, err := repository.Open(ctx, cfg.Backend())
	if err != nil {
		fmt.Fprintln(stderr, "medctl:", err)
		return exitError
	}
	defer func() { _ = closeStore() }()

	svc := app.New(app.WithStore(store), app.WithoutTicker())
	if err := svc.Start(ctx); err != nil {
		fmt.Fprintln(stderr, "medctl:", err)
		return exitError
	}
	defer svc.Stop()

	c := &cli{svc: svc, out: stdout, errOut: stderr, json: *asJSON}
	if err := c.dispatch(ctx, global.Arg(0), global.Args()[1:]); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			if !errors.Is(err, flag.ErrHelp) && err != errUsage { //nolint:errorlint // bare sentinel means already reported
				fmt.Fprintln(stderr, "medctl:", err)
			}
			return exitUsage
		}
		fmt.Fprintln(stderr, "medctl:", err)
		return exitError
	}
	return exitOK
}

type cli struct {
	svc    *app.Service
	out    io.Writer
	errOut io.Writer
	json   bool
}

func (c *cli) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "add":
		return c.add(ctx, args)
	case "list":
		return c.list(ctx)
	case "take":
		return c.take(ctx, args)
	case "delete":
		return c.remove(ctx, args)
	case "schedule":
		return c.schedule(ctx)
	case "stats":
		return c.stats(ctx)
	}
	fmt.Fprintf(c.errOut, "unknown command %q\n", cmd)
	return errUsage
}

func (c *cli) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	var in app.NewMedicine
	fs.StringVar(&in.Name, "name", "", "medicine name")
	fs.StringVar(&in.Dosage, "dosage", "", "dosage, e.g. 500mg")
	fs.StringVar(&in.Time, "time", "", "first dose time HH:MM")
	freq := fs.String("frequency", string(model.FrequencyDaily), "daily, twice or thrice")
	fs.StringVar(&in.Notes, "notes", "", "optional notes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	in.Frequency = model.Frequency(*freq)

	m, err := c.svc.AddMedicine(ctx, in)
	if err != nil {
		return err
	}
	if c.json {
		return c.writeJSON(m)
	}
	fmt.Fprintln(c.out, m.ID)
	return nil
}

func (c *cli) list(ctx context.Context) error {
	meds := c.svc.Medicines(ctx)
	if c.json {
		return c.writeJSON(meds)
	}
	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDOSAGE\tTIME\tFREQUENCY\tLAST TAKEN")
	for _, m := range meds {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Dosage, m.TimeLabel, m.FrequencyLabel, m.LastTakenLabel)
	}
	return tw.Flush()
}

func (c *cli) take(ctx context.Context, args []string) error {
	id, err := oneID("take", args)
	if err != nil {
		return err
	}
	m, err := c.svc.MarkTaken(ctx, id)
	if err != nil {
		return err
	}
	if c.json {
		return c.writeJSON(m)
	}
	fmt.Fprintf(c.out, "%s marked as taken\n", m.Name)
	return nil
}

func (c *cli) remove(ctx context.Context, args []string) error {
	id, err := oneID("delete", args)
	if err != nil {
		return err
	}
	return c.svc.DeleteMedicine(ctx, id)
}

func (c *cli) schedule(ctx context.Context) error {
	entries := c.svc.Schedule(ctx)
	if c.json {
		return c.writeJSON(entries)
	}
	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tNAME\tDOSAGE\tSTATUS")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.TimeLabel, e.Name, e.Dosage, e.StatusLabel)
	}
	return tw.Flush()
}

func (c *cli) stats(ctx context.Context) error {
	s := c.svc.Stats(ctx)
	if c.json {
		return c.writeJSON(s)
	}
	fmt.Fprintf(c.out, "medicines: %d\ntoday's doses: %d\nadherence: %d%%\n", s.TotalMedicines, s.TodayDoses, s.AdherenceRate)
	return nil
}

func (c *cli) writeJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func oneID(cmd string, args []string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", fmt.Errorf("%w: medctl %s <id>", errUsage, cmd)
	}
	return args[0], nil
}
