// Command hap-log is a tool for viewing and analyzing characteristic event
// logs.
//
// Log files are created by hap-sim with the -event-log flag. Each entry
// records one read, write, subscribe, unsubscribe or notification.
//
// Usage:
//
//	hap-log <command> [flags] <file.hlog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSONL or CSV format
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	hap-log view fan.hlog
//
//	# View only notifications
//	hap-log view -op notify fan.hlog
//
//	# Export to CSV
//	hap-log export -format csv -o fan.csv fan.hlog
//
//	# Keep only failed rotation speed accesses
//	hap-log filter -characteristic "Rotation Speed" -failed -o failed.hlog fan.hlog
//
//	# Show statistics
//	hap-log stats fan.hlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hap-protocol/hap-go/cmd/hap-log/commands"
)

const usage = `hap-log - Characteristic Event Log Analyzer

Usage:
  hap-log <command> [flags] <file.hlog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSONL or CSV format
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "hap-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// logPath returns the single positional argument or exits with usage.
func logPath(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func newFlagSet(name, summary, usageLine string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "hap-log %s - %s\n\nUsage:\n  %s\n\nFlags:\n", name, summary, usageLine)
		fs.PrintDefaults()
	}
	return fs
}

func runView(args []string) {
	fs := newFlagSet("view", "View log file in human-readable format", "hap-log view [flags] <file.hlog>")

	op := fs.String("op", "", "Filter by operation (read, write, subscribe, unsubscribe, notify)")
	characteristic := fs.String("characteristic", "", "Filter by characteristic display name")
	failed := fs.Bool("failed", false, "Show only failed operations")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := logPath(fs)

	filter, err := commands.BuildFilter(commands.FilterOptions{
		Operation:      *op,
		Characteristic: *characteristic,
		FailedOnly:     *failed,
	})
	if err != nil {
		fail(err)
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := newFlagSet("export", "Export log file to JSONL or CSV format", "hap-log export [flags] <file.hlog>")

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := logPath(fs)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := newFlagSet("filter", "Filter log file and write to new file", "hap-log filter [flags] <file.hlog>")

	output := fs.String("o", "", "Output file (required)")
	op := fs.String("op", "", "Filter by operation (read, write, subscribe, unsubscribe, notify)")
	characteristic := fs.String("characteristic", "", "Filter by characteristic display name")
	typ := fs.String("type", "", "Filter by characteristic type (catalog name or UUID)")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	failed := fs.Bool("failed", false, "Keep only failed operations")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := logPath(fs)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	n, err := commands.RunFilter(path, commands.FilterOptions{
		Output:         *output,
		Operation:      *op,
		Characteristic: *characteristic,
		Type:           *typ,
		TimeStart:      *timeStart,
		TimeEnd:        *timeEnd,
		FailedOnly:     *failed,
	})
	if err != nil {
		fail(err)
	}
	fmt.Printf("Filtered %d events to %s\n", n, *output)
}

func runStats(args []string) {
	fs := newFlagSet("stats", "Show statistics about the log file", "hap-log stats <file.hlog>")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := logPath(fs)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
