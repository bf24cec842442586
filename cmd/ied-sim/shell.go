package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ied-protocol/ied-go/pkg/client"
	"github.com/ied-protocol/ied-go/pkg/model"
	"github.com/ied-protocol/ied-go/pkg/sim"
)

// runShell drives the interactive readline loop until quit or Ctrl-D.
func runShell(ctx context.Context, server *model.Server, c *client.Client, simulator *sim.Simulator) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "ied> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	stopDrift := context.CancelFunc(func() {})
	defer func() { stopDrift() }()

	fmt.Fprintln(rl.Stdout(), `Type "help" for commands.`)

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help", "?":
			printHelp(rl.Stdout())

		case "dir", "d":
			printDirectory(c)

		case "read", "r":
			if len(fields) != 2 {
				fmt.Fprintln(rl.Stdout(), "usage: read <LD/LN.DO.DA>")
				continue
			}
			value, timestamp, err := c.Read(fields[1])
			if err != nil {
				fmt.Fprintf(rl.Stdout(), "read failed: %v\n", err)
				continue
			}
			quality, _ := c.ReadQuality(fields[1])
			fmt.Fprintf(rl.Stdout(), "%v (t=%s q=%s)\n", value, timestamp.Format("15:04:05.000"), quality)

		case "set", "s":
			if len(fields) != 3 {
				fmt.Fprintln(rl.Stdout(), "usage: set <LD/LN.DO.DA> <value>")
				continue
			}
			attr, err := server.Resolve(fields[1])
			if err != nil {
				fmt.Fprintf(rl.Stdout(), "set failed: %v\n", err)
				continue
			}
			attr.SetValue(parseValue(fields[2]))

		case "enable", "e":
			if len(fields) != 4 {
				fmt.Fprintln(rl.Stdout(), "usage: enable <LD> <LN> <RCB>")
				continue
			}
			if err := c.EnableReport(fields[1], fields[2], fields[3], consoleSink(rl.Stdout())); err != nil {
				fmt.Fprintf(rl.Stdout(), "enable failed: %v\n", err)
			}

		case "disable":
			if len(fields) != 4 {
				fmt.Fprintln(rl.Stdout(), "usage: disable <LD> <LN> <RCB>")
				continue
			}
			if err := c.DisableReport(fields[1], fields[2], fields[3]); err != nil {
				fmt.Fprintf(rl.Stdout(), "disable failed: %v\n", err)
			}

		case "sim":
			if len(fields) != 2 {
				fmt.Fprintln(rl.Stdout(), "usage: sim start|stop|step")
				continue
			}
			switch fields[1] {
			case "start":
				if simulator.Running() {
					fmt.Fprintln(rl.Stdout(), "simulation already running")
					continue
				}
				stopDrift = runDrift(ctx, simulator)
				fmt.Fprintln(rl.Stdout(), "simulation started")
			case "stop":
				stopDrift()
				stopDrift = func() {}
				fmt.Fprintln(rl.Stdout(), "simulation stopped")
			case "step":
				simulator.Step()
			default:
				fmt.Fprintln(rl.Stdout(), "usage: sim start|stop|step")
			}

		case "quit", "exit", "q":
			return nil

		default:
			fmt.Fprintf(rl.Stdout(), "unknown command %q, try help\n", fields[0])
		}
	}
}

// runDrift starts the simulator on a child context and returns the stop
// function that cancels it.
func runDrift(ctx context.Context, simulator *sim.Simulator) context.CancelFunc {
	runCtx, cancel := context.WithCancel(ctx)
	go func() { _ = simulator.Run(runCtx) }()
	return cancel
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, `Commands:
  dir                        browse the model tree
  read <path>                read value, timestamp, quality
  set <path> <value>         write a value (triggers reports)
  enable <LD> <LN> <RCB>     enable a report control block
  disable <LD> <LN> <RCB>    disable a report control block
  sim start|stop|step        control simulated drift
  quit                       leave the shell`)
}

// parseValue interprets a shell argument as int, float, bool, or string.
// Numbers win over bools so "1" writes an int, not true.
func parseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
