// Package interactive provides the interactive command-line interface
// for privacyscan.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/mjstratton7/PrivacyScan/pkg/present"
	"github.com/mjstratton7/PrivacyScan/pkg/scan"
	"github.com/mjstratton7/PrivacyScan/pkg/tables"
	"github.com/mjstratton7/PrivacyScan/pkg/tracking"
)

// Shell reads console commands with line editing.
type Shell struct {
	rl *readline.Instance
}

// NewShell creates the readline shell.
func NewShell() (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "scan> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Shell{rl: rl}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for findings and log output to avoid interfering with the prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
func (s *Shell) Stderr() io.Writer {
	return s.rl.Stderr()
}

// Run reads commands and hands them to c until the user quits or ctx is
// done. cancel is called when the user quits.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc, c *Console) {
	defer s.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		if !c.Execute(line) {
			cancel()
			return
		}
	}
}

// Console executes commands against a scan session.
type Console struct {
	sess   *scan.Session
	tables *tables.Tables
	out    io.Writer
}

// NewConsole creates a console writing to out. t supplies category
// descriptions for the details command and may be nil.
func NewConsole(sess *scan.Session, t *tables.Tables, out io.Writer) *Console {
	return &Console{sess: sess, tables: t, out: out}
}

// Execute runs one command line. It returns false when the user asked to
// quit.
func (c *Console) Execute(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		c.printHelp()

	case "status", "s":
		c.cmdStatus()

	case "tracked", "t":
		c.cmdTracked(c.sess.Tracker().Tracked())

	case "eligible", "e":
		c.cmdTracked(c.sess.Tracker().RenderEligible())

	case "frame", "f":
		c.cmdFrame(args)

	case "details", "d":
		c.cmdDetails(args)

	case "pause":
		c.report("Paused", c.sess.Pause())

	case "resume":
		c.report("Resumed", c.sess.Resume())

	case "rescan", "r":
		c.report("Scan window opened", c.sess.Rescan())

	case "quit", "exit", "q":
		fmt.Fprintln(c.out, "Exiting...")
		return false

	default:
		fmt.Fprintf(c.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
PrivacyScan Commands:
  Session:
    status                         - Show session state and counters
    pause                          - Stop beacon and network scanning
    resume                         - Restart scanning after pause
    rescan                         - Open a new beacon scan window

  Markers:
    tracked                        - List tracked markers
    eligible                       - List markers eligible for rendering
    frame <id> <state> [method] <label>
                                   - Apply one marker report
    details <id>                   - Show device information for a marker

  General:
    help                           - Show this help
    quit                           - Exit

  States:  PAUSED, TRACKING, STOPPED
  Methods: FULL_TRACKING, LAST_KNOWN_POSE, NOT_TRACKING`)
}

func (c *Console) cmdStatus() {
	st := c.sess.Stats()
	fmt.Fprintf(c.out, "Session:  %s\n", c.sess.ID())
	fmt.Fprintf(c.out, "State:    %s\n", c.sess.State())
	if w := c.sess.Window(); w != nil {
		fmt.Fprintf(c.out, "Window:   %s", w.State())
		if remaining := w.RemainingTime(); remaining > 0 {
			fmt.Fprintf(c.out, " (%s left)", remaining.Round(100*time.Millisecond))
		}
		fmt.Fprintln(c.out)
	}
	fmt.Fprintf(c.out, "Tracked:  %d\n", c.sess.Tracker().Len())
	fmt.Fprintf(c.out, "Markers:  %d\n", st.Markers)
	fmt.Fprintf(c.out, "Beacons:  %d (%d URL frames, %d ignored)\n", st.Beacons, st.URLFrames, st.Ignored)
	fmt.Fprintf(c.out, "Services: %d\n", st.Services)
	fmt.Fprintf(c.out, "Errors:   %d\n", st.Errors)
	if st.Dropped > 0 {
		fmt.Fprintf(c.out, "Dropped:  %d\n", st.Dropped)
	}
}

func (c *Console) cmdTracked(snaps []tracking.Snapshot) {
	if len(snaps) == 0 {
		fmt.Fprintln(c.out, "No markers")
		return
	}
	for _, s := range snaps {
		fmt.Fprintf(c.out, "  %3d  %-8s %-15s %s\n", s.ID, s.State, s.Method, s.Label)
	}
}

func (c *Console) cmdFrame(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(c.out, "Usage: frame <id> <state> [method] <label>")
		return
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Invalid marker id: %s\n", args[0])
		return
	}

	r := tracking.Report{ID: id, State: tracking.ParseState(strings.ToUpper(args[1]))}
	rest := args[2:]
	if m, ok := parseMethod(rest[0]); ok && len(rest) > 1 {
		r.Method = m
		rest = rest[1:]
	}
	r.Label = strings.Join(rest, " ")

	events, err := c.sess.ApplyFrame([]tracking.Report{r})
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	if len(events) == 0 {
		fmt.Fprintln(c.out, "No change")
		return
	}
	for _, ev := range events {
		fmt.Fprintf(c.out, "  %s %d\n", ev.Type, ev.ID)
	}
}

func (c *Console) cmdDetails(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: details <id>")
		return
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Invalid marker id: %s\n", args[0])
		return
	}

	s, ok := c.sess.Tracker().Get(id)
	if !ok {
		fmt.Fprintf(c.out, "Marker %d is not tracked\n", id)
		return
	}
	if s.Record == nil {
		fmt.Fprintf(c.out, "Marker %d: %s\n", id, present.MessageDeviceDataError)
		return
	}
	fmt.Fprintf(c.out, "%s%s", present.TitleDeviceInfo, present.Details(s.Record, c.tables))
}

func (c *Console) report(done string, err error) {
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(c.out, done)
}

func parseMethod(s string) (tracking.Method, bool) {
	switch strings.ToUpper(s) {
	case "FULL_TRACKING":
		return tracking.MethodFull, true
	case "LAST_KNOWN_POSE":
		return tracking.MethodLastKnownPose, true
	case "NOT_TRACKING":
		return tracking.MethodNotTracking, true
	}
	return tracking.MethodNotTracking, false
}
