// Command ied-sim runs a simulated IED with MMS-style reporting.
//
// It builds a server model (from a YAML file or the built-in demo model),
// connects a client over a simulated association, browses the model,
// enables the configured report control blocks, and then
// drives simulated sensor drift so that reports stream to the console.
//
// Usage:
//
//	ied-sim [flags]
//
// Flags:
//
//	-model string      Model YAML file (default: built-in demo model)
//	-interactive       Drop into an interactive shell instead of drifting
//	-interval duration Drift tick interval (default 2s)
//	-journal string    Append CBOR event journal to this file
//	-mqtt string       Publish reports to this MQTT broker (e.g. tcp://localhost:1883)
//	-topic string      MQTT topic for reports (default "ied/reports")
//	-log-level string  Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Run the built-in demo scenario with drifting phase voltages
//	ied-sim
//
//	# Load a model file and poke at it interactively
//	ied-sim -model substation.yaml -interactive
//
//	# Forward all reports to a broker and keep a journal
//	ied-sim -mqtt tcp://localhost:1883 -journal events.cbor
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ied-protocol/ied-go/pkg/bridge"
	"github.com/ied-protocol/ied-go/pkg/client"
	"github.com/ied-protocol/ied-go/pkg/config"
	"github.com/ied-protocol/ied-go/pkg/log"
	"github.com/ied-protocol/ied-go/pkg/model"
	"github.com/ied-protocol/ied-go/pkg/report"
	"github.com/ied-protocol/ied-go/pkg/sim"
)

func main() {
	var (
		modelFile   = flag.String("model", "", "Model YAML file (default: built-in demo model)")
		interactive = flag.Bool("interactive", false, "Drop into an interactive shell")
		interval    = flag.Duration("interval", 2*time.Second, "Drift tick interval")
		journal     = flag.String("journal", "", "Append CBOR event journal to this file")
		mqttURL     = flag.String("mqtt", "", "Publish reports to this MQTT broker")
		mqttTopic   = flag.String("topic", "ied/reports", "MQTT topic for reports")
		logLevel    = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	)
	flag.Parse()

	if err := run(*modelFile, *interactive, *interval, *journal, *mqttURL, *mqttTopic, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "ied-sim: %v\n", err)
		os.Exit(1)
	}
}

func run(modelFile string, interactive bool, interval time.Duration, journal, mqttURL, mqttTopic, logLevel string) error {
	// Build the server model.
	cfg := config.Default()
	if modelFile != "" {
		loaded, err := config.Load(modelFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	server, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build model: %w", err)
	}

	// Wire logging: console always, journal when requested.
	slogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(logLevel),
	}))
	loggers := []log.Logger{log.NewSlogAdapter(slogger)}
	if journal != "" {
		fl, err := log.NewFileLogger(journal)
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		defer fl.Close()
		loggers = append(loggers, fl)
	}
	server.SetLogger(log.NewMultiLogger(loggers...))

	// Establish the association.
	c := client.NewClient()
	c.SetLogger(log.NewSlogAdapter(slogger))
	if err := c.Connect(server); err != nil {
		return err
	}
	fmt.Printf("Connected to %s (association %s)\n\n", server.Name(), c.AssociationID())

	printDirectory(c)

	// Console sink, optionally fanned out to an MQTT bridge.
	sink := consoleSink(os.Stdout)
	if mqttURL != "" {
		b, err := bridge.Connect(bridge.Config{
			BrokerURL: mqttURL,
			Topic:     mqttTopic,
		})
		if err != nil {
			return err
		}
		defer b.Close()
		sink = fanOut(sink, b.Sink())
	}

	// Enable every configured report control block.
	for _, ld := range server.LogicalDevices() {
		for _, ln := range ld.LogicalNodes() {
			for _, rcb := range ln.Reports() {
				if err := c.EnableReport(ld.Name(), ln.Name(), rcb.Name(), sink); err != nil {
					return err
				}
				fmt.Printf("Enabled report %s (id %s)\n", rcb.Name(), rcb.ReportID())
			}
		}
	}

	// Drift every float attribute that belongs to a dataset.
	simulator := sim.New(interval)
	if err := addDriftChannels(simulator, server); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if interactive {
		return runShell(ctx, server, c, simulator)
	}

	fmt.Printf("\nDrifting values every %v, Ctrl-C to stop.\n\n", interval)
	if err := simulator.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// addDriftChannels registers a drift channel for every float64 dataset
// member, walking ±2% around the initial value.
func addDriftChannels(simulator *sim.Simulator, server *model.Server) error {
	seen := make(map[string]struct{})
	for _, ld := range server.LogicalDevices() {
		for _, ln := range ld.LogicalNodes() {
			for _, ds := range ln.Datasets() {
				for _, attr := range ds.Members() {
					if _, dup := seen[attr.Path()]; dup {
						continue
					}
					seen[attr.Path()] = struct{}{}

					initial, ok := attr.Value().(float64)
					if !ok {
						continue
					}
					spread := initial * 0.02
					if spread < 1 {
						spread = 1
					}
					if err := simulator.AddChannel(attr, initial-spread, initial+spread, spread/2); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// consoleSink prints received reports in the classic demo layout.
func consoleSink(w io.Writer) report.Sink {
	return func(reportID string, data map[string]any, reason report.Reason) error {
		fmt.Fprintf(w, "\n== REPORT %s (%s) ==\n", reportID, reason)
		for path, value := range data {
			fmt.Fprintf(w, "  %s = %v\n", path, value)
		}
		return nil
	}
}

// fanOut delivers a report to every sink, returning the first error.
func fanOut(sinks ...report.Sink) report.Sink {
	return func(reportID string, data map[string]any, reason report.Reason) error {
		var firstErr error
		for _, s := range sinks {
			if err := s(reportID, data, reason); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}
}

// printDirectory renders the model tree the way the discovery step of the
// original demo did.
func printDirectory(c *client.Client) {
	entries, err := c.Directory()
	if err != nil {
		return
	}

	fmt.Println("Model directory:")
	for entry := range entries {
		fmt.Printf("%s+- %s: %s\n", strings.Repeat("   ", int(entry.Level)), entry.Level, entry.Name)
	}
	fmt.Println()
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
