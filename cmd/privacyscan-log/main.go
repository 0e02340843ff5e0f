// Command privacyscan-log reads the session logs privacyscan writes with
// -session-log.
//
// A session log records every marker transition, identification, scan
// window change and decode failure of one scan, so a walk past a set of
// devices can be inspected afterwards.
//
// Usage:
//
//	privacyscan-log <command> [flags] <file.pslog>
//
// Commands:
//
//	view     Print events, one block per event
//	export   Write events as JSON lines or CSV
//	filter   Copy selected events to a new session log
//	stats    Summarize channels, devices and decode failures
//
// Examples:
//
//	# What did the beacon channel identify?
//	privacyscan-log view -channel beacon -category ident 20261019-142501-6f1c2e4a.pslog
//
//	# Which labels failed to decode?
//	privacyscan-log view -category error 20261019-142501-6f1c2e4a.pslog
//
//	# Spreadsheet of a session
//	privacyscan-log export -format csv -o walk.csv 20261019-142501-6f1c2e4a.pslog
//
//	# Keep only the first ten minutes
//	privacyscan-log filter -time-end 2026-10-19T14:35:01Z -o head.pslog 20261019-142501-6f1c2e4a.pslog
//
//	# Devices seen and error kinds
//	privacyscan-log stats 20261019-142501-6f1c2e4a.pslog
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mjstratton7/PrivacyScan/cmd/privacyscan-log/commands"
)

// command is one privacyscan-log subcommand.
type command struct {
	name    string
	summary string
	args    string
	run     func(fs *flag.FlagSet, args []string, stdout io.Writer) error
}

var commandList = []command{
	{"view", "Print events, one block per event", "[flags] <file.pslog>", runView},
	{"export", "Write events as JSON lines or CSV", "[flags] <file.pslog>", runExport},
	{"filter", "Copy selected events to a new session log", "-o <out.pslog> [flags] <file.pslog>", runFilter},
	{"stats", "Summarize channels, devices and decode failures", "<file.pslog>", runStats},
}

// errUsage makes run print the subcommand's usage.
var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one subcommand and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 2
	}

	name := args[0]
	switch name {
	case "-h", "-help", "--help", "help":
		printUsage(stdout)
		return 0
	}

	for _, c := range commandList {
		if c.name != name {
			continue
		}

		fs := flag.NewFlagSet(c.name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		fs.Usage = func() {
			fmt.Fprintf(stderr, "privacyscan-log %s: %s\n\nUsage:\n  privacyscan-log %s %s\n", c.name, c.summary, c.name, c.args)
			if hasFlags(fs) {
				fmt.Fprintln(stderr, "\nFlags:")
				fs.PrintDefaults()
			}
		}

		err := c.run(fs, args[1:], stdout)
		switch {
		case err == nil:
			return 0
		case errors.Is(err, flag.ErrHelp):
			return 0
		case errors.Is(err, errUsage):
			fs.Usage()
			return 2
		default:
			fmt.Fprintf(stderr, "privacyscan-log %s: %v\n", c.name, err)
			return 1
		}
	}

	fmt.Fprintf(stderr, "privacyscan-log: unknown command %q\n\n", name)
	printUsage(stderr)
	return 2
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "privacyscan-log reads privacyscan session logs.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  privacyscan-log <command> [flags] <file.pslog>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commandList {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, `Run "privacyscan-log <command> -h" for the command's flags.`)
}

func hasFlags(fs *flag.FlagSet) bool {
	n := 0
	fs.VisitAll(func(*flag.Flag) { n++ })
	return n > 0
}

// parseOne parses fs and returns its single log file argument.
func parseOne(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() != 1 {
		return "", errUsage
	}
	return fs.Arg(0), nil
}

func runView(fs *flag.FlagSet, args []string, stdout io.Writer) error {
	channel := fs.String("channel", "", "Only this channel: marker, beacon, network, session")
	category := fs.String("category", "", "Only this category: tracking, ident, scan, error")
	source := fs.String("source", "", "Only events from this marker label, beacon or service")

	path, err := parseOne(fs, args)
	if err != nil {
		return err
	}

	filter := commands.ViewFilter{Source: *source}
	if *channel != "" {
		c, err := commands.ParseChannelFlag(*channel)
		if err != nil {
			return err
		}
		filter.Channel = &c
	}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			return err
		}
		filter.Category = &c
	}
	return commands.RunView(path, filter, stdout)
}

func runExport(fs *flag.FlagSet, args []string, _ io.Writer) error {
	format := fs.String("format", "jsonl", "Output format: jsonl or csv")
	output := fs.String("o", "", "Output file (default: standard output)")

	path, err := parseOne(fs, args)
	if err != nil {
		return err
	}
	return commands.RunExport(path, *format, *output)
}

func runFilter(fs *flag.FlagSet, args []string, stdout io.Writer) error {
	var opts commands.FilterOptions
	fs.StringVar(&opts.Output, "o", "", "Session log to write (required)")
	fs.StringVar(&opts.SessionID, "session", "", "Only this session id")
	fs.StringVar(&opts.Source, "source", "", "Only events from this marker label, beacon or service")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Only events at or after this time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Only events before this time (RFC3339)")
	fs.StringVar(&opts.Channel, "channel", "", "Only this channel: marker, beacon, network, session")
	fs.StringVar(&opts.Category, "category", "", "Only this category: tracking, ident, scan, error")

	path, err := parseOne(fs, args)
	if err != nil {
		return err
	}
	if opts.Output == "" {
		return errUsage
	}

	n, err := commands.RunFilter(path, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %d events to %s\n", n, opts.Output)
	return nil
}

func runStats(fs *flag.FlagSet, args []string, stdout io.Writer) error {
	path, err := parseOne(fs, args)
	if err != nil {
		return err
	}
	return commands.RunStats(path, stdout)
}
