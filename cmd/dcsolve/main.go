// SPDX-License-Identifier: MIT

// Command dcsolve solves a DC resistive circuit and prints every component's
// current and voltage together with the vertex potentials.
//
// The circuit comes from exactly one of:
//
//	-netlist file.yaml   YAML netlist
//	-records file.bin    binary component records
//	-name NAME           a circuit stored in the -db database
//
// -save NAME stores the circuit in the database after a successful solve;
// -export file.yaml writes it back as a netlist; -metrics prints the solve
// metrics in the Prometheus text format.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/katalvlaran/dcmesh/circuit"
	"github.com/katalvlaran/dcmesh/config"
	"github.com/katalvlaran/dcmesh/netlist"
	"github.com/katalvlaran/dcmesh/store"
	"github.com/katalvlaran/dcmesh/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "dcsolve: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	configPath  string
	netlistPath string
	recordsPath string
	dbPath      string
	name        string
	save        string
	export      string
	metrics     bool
}

func parseFlags(args []string, stderr io.Writer) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("dcsolve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "Path to config file (default: search $DCMESH_CONFIG, ./dcmesh.yaml, ~/.config/dcmesh)")
	fs.StringVar(&f.netlistPath, "netlist", "", "Path to YAML netlist")
	fs.StringVar(&f.recordsPath, "records", "", "Path to binary component records")
	fs.StringVar(&f.dbPath, "db", "", "SQLite database (default from config)")
	fs.StringVar(&f.name, "name", "", "Load the named circuit from the database")
	fs.StringVar(&f.save, "save", "", "Store the circuit in the database under this name")
	fs.StringVar(&f.export, "export", "", "Write the circuit as a YAML netlist to this path")
	fs.BoolVar(&f.metrics, "metrics", false, "Print solve metrics in Prometheus text format")
	if err := fs.Parse(args); err != nil {
		return f, err
	}

	sources := 0
	for _, s := range []string{f.netlistPath, f.recordsPath, f.name} {
		if s != "" {
			sources++
		}
	}
	if sources != 1 {
		return f, errors.New("exactly one of -netlist, -records or -name is required")
	}

	return f, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	f, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, cfgPath, err := loadConfig(f.configPath)
	if err != nil {
		return err
	}
	if f.dbPath == "" {
		f.dbPath = cfg.Store.Path
	}
	logger := cfg.Logger(stderr)
	if cfgPath != "" {
		logger.Debug("config loaded", slog.String("path", cfgPath))
	}

	reg := prometheus.NewRegistry()
	opts := append(cfg.Options(),
		circuit.WithLogger(logger),
		circuit.WithObserver(telemetry.NewCollector(reg)),
	)

	var db *store.Store
	if f.name != "" || f.save != "" {
		if db, err = store.Open(f.dbPath); err != nil {
			return err
		}
		defer db.Close()
	}

	c, err := loadCircuit(ctx, f, db, opts)
	if err != nil {
		return err
	}
	if err := c.Initialize(); err != nil {
		return fmt.Errorf("solve: %w", err)
	}
	if err := report(stdout, c); err != nil {
		return err
	}

	if f.save != "" {
		if err := db.Save(ctx, f.save, c); err != nil {
			return err
		}
		logger.Info("circuit saved", slog.String("name", f.save), slog.String("db", f.dbPath))
	}
	if f.export != "" {
		if err := exportNetlist(f.export, c); err != nil {
			return err
		}
	}
	if f.metrics {
		return writeMetrics(stdout, reg)
	}

	return nil
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}

	return config.Load()
}

func loadCircuit(ctx context.Context, f flags, db *store.Store, opts []circuit.Option) (*circuit.Circuit, error) {
	switch {
	case f.netlistPath != "":
		file, err := os.Open(f.netlistPath)
		if err != nil {
			return nil, fmt.Errorf("open netlist: %w", err)
		}
		defer file.Close()
		n, err := netlist.Decode(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.netlistPath, err)
		}
		return n.Build(opts...)

	case f.recordsPath != "":
		file, err := os.Open(f.recordsPath)
		if err != nil {
			return nil, fmt.Errorf("open records: %w", err)
		}
		defer file.Close()
		c := circuit.New(opts...)
		if err := c.Load(file); err != nil {
			return nil, fmt.Errorf("%s: %w", f.recordsPath, err)
		}
		return c, nil

	default:
		return db.Load(ctx, f.name, opts...)
	}
}

func report(w io.Writer, c *circuit.Circuit) error {
	if _, err := fmt.Fprintf(w, "%-8s %-8s %12s %12s %12s\n", "LABEL", "KIND", "VALUE", "CURRENT", "VOLTAGE"); err != nil {
		return err
	}
	for _, comp := range c.Components() {
		if _, err := fmt.Fprintf(w, "%-8s %-8s %12.6g %12.6g %12.6g\n",
			comp.Label, comp.Kind, comp.Value, comp.Current, comp.Voltage); err != nil {
			return err
		}
	}

	p, err := c.Potentials()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\nPOTENTIALS (ground %d)\n", c.Ground()); err != nil {
		return err
	}
	for v, x := range p {
		if _, err := fmt.Fprintf(w, "v%-7d %12.6g\n", v, x); err != nil {
			return err
		}
	}

	return nil
}

func exportNetlist(path string, c *circuit.Circuit) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create netlist: %w", err)
	}
	if err := netlist.Encode(file, netlist.FromCircuit(c)); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	mfs, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}

	return nil
}
