package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-nsor/axis"
	"github.com/cwbudde/algo-nsor/internal/app"
	"github.com/cwbudde/algo-nsor/params"
	"github.com/cwbudde/algo-nsor/session"
)

var shellTimeout time.Duration

var shellCmd = &cobra.Command{
	Use:   "shell [FILE]",
	Short: "Drive the phasing controller line by line",
	Long: `Read commands from stdin and apply them like the actions of the
interactive tool. Type "help" for the command list.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.Flags().DurationVar(&shellTimeout, "timeout", 30*time.Second,
		"maximum time the wait command blocks")
}

const shellHelp = `commands:
  open PATH                 load an acquisition
  renew                     restore the raw signal
  cursor time|freq LO HI    set a cursor pair
  limit time|freq x|y LO HI set an axis limit
  zerofill x1|x2|x4|x8      zero-fill and transform
  phase DEG                 set the zeroth-order phase
  release                   settle the phase slider
  first on|off|DEG          toggle or set the first-order phase
  auto                      auto-phase over the frequency cursor
  axis                      reset limits to the data
  save                      write fields to the parameter file
  fields                    print all fields
  status                    print labels and session state
  wait                      block until transforms finish
  quit                      leave the shell
`

// termUI implements app.UI on a text stream.
type termUI struct {
	out    io.Writer
	fields map[string]string
	labels map[app.Label]string
}

func (u *termUI) PromptPath(string) (string, bool) { return "", false }
func (u *termUI) Warn(msg string)                   { fmt.Fprintf(u.out, "warning: %s\n", msg) }
func (u *termUI) FieldText(key string) string       { return u.fields[key] }
func (u *termUI) SetFieldText(key, text string)     { u.fields[key] = text }
func (u *termUI) Draw(axis.Domain)                  {}
func (u *termUI) Blit(axis.Domain)                  {}
func (u *termUI) SetLabel(l app.Label, text string) { u.labels[l] = text }

func runShell(cmd *cobra.Command, args []string) error {
	ui := &termUI{
		out:    cmd.OutOrStdout(),
		fields: map[string]string{},
		labels: map[app.Label]string{},
	}
	a := app.New(ui, app.Options{
		Logger:        logger,
		ParameterFile: cfg.ParameterFile,
		Format:        cfg.Format(),
		Session: []session.Option{
			session.WithWorkers(cfg.Workers),
			session.WithNormalization(cfg.Norm()),
			session.WithApodization(cfg.Apodize()),
		},
	})
	defer a.Close()

	if err := a.Start(); err != nil {
		return err
	}
	if len(args) == 1 {
		_ = a.Open(args[0])
	}

	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		words := strings.Fields(sc.Text())
		if len(words) == 0 {
			continue
		}
		if words[0] == "quit" || words[0] == "exit" {
			break
		}
		if err := shellCommand(cmd.Context(), a, ui, words); err != nil {
			fmt.Fprintf(ui.out, "error: %v\n", err)
		}
		a.Tick()
	}
	return sc.Err()
}

func shellCommand(ctx context.Context, a *app.App, ui *termUI, words []string) error {
	args := words[1:]
	switch words[0] {
	case "help":
		fmt.Fprint(ui.out, shellHelp)
	case "open":
		if len(args) != 1 {
			return fmt.Errorf("usage: open PATH")
		}
		_ = a.Open(args[0])
	case "renew":
		_ = a.Renew()
	case "cursor":
		if len(args) != 3 {
			return fmt.Errorf("usage: cursor time|freq LO HI")
		}
		d, err := parseDomain(args[0])
		if err != nil {
			return err
		}
		key := d.Key(axis.Cursor)
		ui.SetFieldText(key, strings.Join(args[1:], " "))
		_ = a.EditField(key)
	case "limit":
		if len(args) != 4 {
			return fmt.Errorf("usage: limit time|freq x|y LO HI")
		}
		d, err := parseDomain(args[0])
		if err != nil {
			return err
		}
		field := axis.XLimit
		if args[1] == "y" {
			field = axis.YLimit
		}
		key := d.Key(field)
		ui.SetFieldText(key, strings.Join(args[2:], " "))
		_ = a.EditField(key)
	case "zerofill":
		if len(args) != 1 {
			return fmt.Errorf("usage: zerofill x1|x2|x4|x8")
		}
		ui.SetFieldText(app.ZeroFillKey, args[0])
		_ = a.ZeroFill(args[0])
	case "phase":
		deg, err := parseDegrees(args)
		if err != nil {
			return err
		}
		_ = a.ZerothPhase(deg)
	case "release":
		a.SliderReleased()
	case "first":
		if len(args) != 1 {
			return fmt.Errorf("usage: first on|off|DEG")
		}
		switch args[0] {
		case "on", "off":
			a.FirstOrderToggled(args[0] == "on")
		default:
			deg, err := parseDegrees(args)
			if err != nil {
				return err
			}
			a.FirstPhase(deg)
		}
	case "auto":
		if deg, err := a.AutoPhase(); err == nil {
			fmt.Fprintf(ui.out, "phase: %d\n", deg)
		}
	case "axis":
		_ = a.AutoAxis()
	case "save":
		_ = a.SaveParameters()
	case "fields":
		printFields(ui)
	case "status":
		printStatus(ui, a)
	case "wait":
		ctx, cancel := context.WithTimeout(ctx, shellTimeout)
		defer cancel()
		return a.Wait(ctx)
	default:
		return fmt.Errorf("unknown command %q, try help", words[0])
	}
	return nil
}

func parseDomain(s string) (axis.Domain, error) {
	for _, d := range axis.Domains {
		if s == d.String() {
			return d, nil
		}
	}
	return 0, fmt.Errorf("domain must be time or freq: %q", s)
}

func parseDegrees(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one angle in degrees")
	}
	deg, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", params.ErrNotNumeric, args[0])
	}
	return deg, nil
}

func printFields(ui *termUI) {
	keys := make([]string, 0, len(ui.fields))
	for k := range ui.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(ui.out, "%s: %s\n", params.Label(k), ui.fields[k])
	}
}

func printStatus(ui *termUI, a *app.App) {
	for _, l := range []app.Label{app.LabelStatus, app.LabelIntegral, app.LabelPhaseInfo} {
		if text, ok := ui.labels[l]; ok {
			fmt.Fprintln(ui.out, strings.ReplaceAll(text, "\n", " "))
		}
	}
	st := a.Session().Status()
	fmt.Fprintf(ui.out, "samples=%d bins=%d zero_fill=%s pending=%d\n",
		st.Samples, st.Bins, st.ZeroFill, st.Pending)
}
