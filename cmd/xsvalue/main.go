package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"slices"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/jacoelho/xsdvalue"
	"github.com/jacoelho/xsdvalue/catalog"
	xsderrors "github.com/jacoelho/xsdvalue/errors"
	"github.com/jacoelho/xsdvalue/internal/logging"
	"github.com/jacoelho/xsdvalue/internal/metrics"
)

const name = "xsvalue"

// overridden during build with ldflags
var version = "dev"

// errInvalid reports that at least one checked value failed validation.
type errInvalid struct {
	count int
}

func (e errInvalid) Error() string {
	return fmt.Sprintf("%d value(s) failed validation", e.count)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type app struct {
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	logger   *slog.Logger
	catalog  *catalog.Catalog
	ns       xsdvalue.Namespaces
	registry *prometheus.Registry
	metrics  *metrics.Recorder

	stopProfile func() error
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	err := a.command().Run(ctx, args)
	var invalid errInvalid
	switch {
	case err == nil:
		return 0
	case errors.As(err, &invalid):
		return 1
	default:
		_ = writef(stderr, "error: %v\n", err)
		return 2
	}
}

func typeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "type",
		Aliases:  []string{"t"},
		Required: true,
		Usage:    "type to use: a catalog name or a builtin such as xs:int",
	}
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     "Validate and canonicalize XML Schema simple-type values",
		Version:   version,
		Reader:    a.stdin,
		Writer:    a.stdout,
		ErrWriter: a.stderr,
		ExitErrHandler: func(context.Context, *cli.Command, error) {
			// exit codes are mapped by run
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "catalog",
				Aliases: []string{"c"},
				Usage:   "YAML catalog of named types",
				Sources: cli.EnvVars("XSVALUE_CATALOG"),
			},
			&cli.StringSliceFlag{
				Name:  "ns",
				Usage: "namespace binding prefix=uri for QName values; repeatable",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "metrics",
				Usage: "write Prometheus metrics in text format to this file on exit",
			},
			&cli.StringFlag{
				Name:  "cpuprofile",
				Usage: "write CPU profile to file",
			},
			&cli.StringFlag{
				Name:  "memprofile",
				Usage: "write memory profile to file",
			},
		},
		Before: a.setup,
		After:  a.teardown,
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Validate values against a type",
				ArgsUsage: "[value...]",
				Description: `Validates each value and prints one line per value, or one line per
finding for invalid values. Values are read one per line from stdin when
none are given. Exits with status 1 when any value is invalid.`,
				Flags: []cli.Flag{
					typeFlag(),
					&cli.IntFlag{
						Name:  "jobs",
						Value: runtime.GOMAXPROCS(0),
						Usage: "number of values validated concurrently",
					},
				},
				Action: a.check,
			},
			{
				Name:      "canon",
				Usage:     "Print the canonical form of values",
				ArgsUsage: "[value...]",
				Flags:     []cli.Flag{typeFlag()},
				Action:    a.canon,
			},
			{
				Name:      "compare",
				Usage:     "Compare two values in their value space",
				ArgsUsage: "<a> <b>",
				Flags: []cli.Flag{
					typeFlag(),
					&cli.StringFlag{
						Name:  "other-type",
						Usage: "type of the second value, defaults to --type",
					},
				},
				Action: a.compare,
			},
			{
				Name:   "types",
				Usage:  "List catalog and builtin types",
				Action: a.types,
			},
		},
	}
}

func (a *app) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	a.logger = logging.NewStructuredLoggerTo(a.stderr, name, version, cmd.String("log-level"))
	a.registry = prometheus.NewRegistry()
	a.metrics = metrics.New(a.registry)

	if path := cmd.String("cpuprofile"); path != "" {
		stopCPUProfile, err := startCPUProfile(path)
		if err != nil {
			return ctx, err
		}
		a.stopProfile = stopCPUProfile
	}

	ns, err := parseNamespaces(cmd.StringSlice("ns"))
	if err != nil {
		return ctx, err
	}

	if path := cmd.String("catalog"); path != "" {
		c, err := catalog.LoadFile(path, catalog.WithLogger(a.logger))
		if err != nil {
			return ctx, err
		}
		a.catalog = c
		a.metrics.CatalogTypes(c.Len())
		a.logger.Debug("catalog loaded", "path", path, "types", c.Len())
	} else {
		a.catalog, _ = catalog.Build(catalog.Document{}, catalog.WithLogger(a.logger))
	}

	a.ns = xsdvalue.Namespaces{}
	for p, uri := range a.catalog.Namespaces() {
		a.ns[p] = uri
	}
	for p, uri := range ns {
		a.ns[p] = uri
	}
	return ctx, nil
}

func (a *app) teardown(_ context.Context, cmd *cli.Command) error {
	var errs []error
	if a.stopProfile != nil {
		errs = append(errs, a.stopProfile())
	}
	if path := cmd.String("memprofile"); path != "" {
		errs = append(errs, writeMemProfile(path))
	}
	if path := cmd.String("metrics"); path != "" && a.registry != nil {
		if err := prometheus.WriteToTextfile(path, a.registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}

func parseNamespaces(bindings []string) (xsdvalue.Namespaces, error) {
	ns := xsdvalue.Namespaces{}
	for _, b := range bindings {
		prefix, uri, ok := strings.Cut(b, "=")
		if !ok || uri == "" {
			return nil, fmt.Errorf("invalid namespace binding %q, want prefix=uri", b)
		}
		ns[prefix] = uri
	}
	return ns, nil
}

func (a *app) lookupType(typeName string) (*xsdvalue.Type, error) {
	t, ok := a.catalog.Type(typeName)
	if !ok {
		return nil, fmt.Errorf("unknown type %q", typeName)
	}
	return t, nil
}

// values returns the positional arguments, or stdin lines when there are
// none.
func (a *app) values(cmd *cli.Command) ([]string, error) {
	if cmd.Args().Len() > 0 {
		return cmd.Args().Slice(), nil
	}
	var out []string
	sc := bufio.NewScanner(a.stdin)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	return out, nil
}

func (a *app) check(ctx context.Context, cmd *cli.Command) error {
	t, err := a.lookupType(cmd.String("type"))
	if err != nil {
		return err
	}
	values, err := a.values(cmd)
	if err != nil {
		return err
	}

	results := make([]xsderrors.ValidationList, len(values))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, int(cmd.Int("jobs"))))
	for i, s := range values {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var c xsdvalue.Collector
			xsdvalue.New(t).ValidateText(s, a.ns, a.metrics.Sink(&c))
			a.metrics.Checked(t, c.Len() == 0)
			results[i] = c.Findings()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	invalid := 0
	for i, s := range values {
		if len(results[i]) == 0 {
			if err := writef(a.stdout, "%q: valid\n", s); err != nil {
				return err
			}
			continue
		}
		invalid++
		for _, f := range results[i] {
			if err := writef(a.stdout, "%q: %s\n", s, f.Error()); err != nil {
				return err
			}
		}
	}
	a.logger.Info("check completed",
		"type", t.String(),
		"values", len(values),
		"invalid", invalid)
	if invalid > 0 {
		return errInvalid{count: invalid}
	}
	return nil
}

func (a *app) canon(_ context.Context, cmd *cli.Command) error {
	t, err := a.lookupType(cmd.String("type"))
	if err != nil {
		return err
	}
	values, err := a.values(cmd)
	if err != nil {
		return err
	}
	invalid := 0
	for _, s := range values {
		v := xsdvalue.New(t)
		if err := v.SetTextNS(s, a.ns); err != nil {
			invalid++
			if werr := writef(a.stdout, "%q: %v\n", s, err); werr != nil {
				return werr
			}
			continue
		}
		if err := writeln(a.stdout, canonicalText(v, a.ns)); err != nil {
			return err
		}
	}
	if invalid > 0 {
		return errInvalid{count: invalid}
	}
	return nil
}

// canonicalText renders QName values with the command-line bindings.
func canonicalText(v xsdvalue.Value, ns xsdvalue.Namespaces) string {
	if u, ok := v.(*xsdvalue.Union); ok && u.Member() != nil {
		return canonicalText(u.Member(), ns)
	}
	if q, ok := v.(*xsdvalue.QName); ok {
		return q.TextNS(ns)
	}
	return v.Text()
}

func (a *app) compare(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 {
		return fmt.Errorf("compare needs exactly two values, got %d", cmd.Args().Len())
	}
	left, err := a.lookupType(cmd.String("type"))
	if err != nil {
		return err
	}
	right := left
	if other := cmd.String("other-type"); other != "" {
		if right, err = a.lookupType(other); err != nil {
			return err
		}
	}
	x, err := xsdvalue.Parse(left, cmd.Args().Get(0), a.ns)
	if err != nil {
		return err
	}
	y, err := xsdvalue.Parse(right, cmd.Args().Get(1), a.ns)
	if err != nil {
		return err
	}
	c, ok := x.Compare(y)
	if !ok {
		return writeln(a.stdout, "incomparable")
	}
	return writeln(a.stdout, c)
}

func (a *app) types(_ context.Context, _ *cli.Command) error {
	for _, n := range a.catalog.Names() {
		t, _ := a.catalog.Type(n)
		if err := writef(a.stdout, "%s\t%s\t%s\n", n, t.Family(), baseOf(t)); err != nil {
			return err
		}
	}
	builtins := xsdvalue.Builtins()
	slices.SortFunc(builtins, func(x, y *xsdvalue.Type) int { return strings.Compare(x.Name(), y.Name()) })
	for _, t := range builtins {
		if err := writef(a.stdout, "%s\t%s\t%s\n", t, t.Family(), baseOf(t)); err != nil {
			return err
		}
	}
	return nil
}

func baseOf(t *xsdvalue.Type) string {
	if t.Base() == nil {
		return "-"
	}
	return t.Base().String()
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}

func startCPUProfile(path string) (func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create cpu profile %s: %w", path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return nil, fmt.Errorf("start cpu profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return nil, fmt.Errorf("start cpu profile %s: %w", path, err)
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			return fmt.Errorf("close cpu profile %s: %w", path, err)
		}
		return nil
	}, nil
}

func writeMemProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mem profile %s: %w", path, err)
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return fmt.Errorf("write mem profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return fmt.Errorf("write mem profile %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close mem profile %s: %w", path, err)
	}
	return nil
}
