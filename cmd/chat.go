package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Piyush2510verma/Language/internal/mistakes"
	"github.com/Piyush2510verma/Language/internal/screens"
	"github.com/Piyush2510verma/Language/internal/session"
	"github.com/Piyush2510verma/Language/internal/store"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the tutor on the command line",
	Long: `Chat with the tutor line by line over stdin.

Commands:
  /mistakes   show your most frequent mistakes
  /summary    show mistake counts and focus areas
  /reset      end the conversation and pick new languages
  /quit       leave (Ctrl+D works too)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := setup(cmd, setupOptions{requireProvider: true})
		if err != nil {
			return err
		}
		defer svc.Close()

		r := newREPL(svc.deps, cmd.InOrStdin(), cmd.OutOrStdout())
		r.known, _ = cmd.Flags().GetString("known")
		r.target, _ = cmd.Flags().GetString("target")
		r.level, _ = cmd.Flags().GetString("level")
		return r.run(cmd.Context())
	},
}

func init() {
	chatCmd.Flags().String("known", "", "Language you already speak")
	chatCmd.Flags().String("target", "", "Language you want to practice")
	chatCmd.Flags().String("level", "", "Your level: Beginner, Intermediate, Advanced or Complete Beginner")
}

// errQuit ends the loop without an error.
var errQuit = errors.New("quit")

// repl is the line-oriented front end over the same session and tutor the
// TUI uses.
type repl struct {
	deps *screens.Deps
	in   *bufio.Scanner
	out  io.Writer

	// Answers given up front. They are used for the first conversation only.
	known, target, level string
}

func newREPL(deps *screens.Deps, in io.Reader, out io.Writer) *repl {
	return &repl{deps: deps, in: bufio.NewScanner(in), out: out}
}

func (r *repl) run(ctx context.Context) error {
	err := r.loop(ctx)
	if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
		fmt.Fprintln(r.out, "Bye!")
		return nil
	}
	return err
}

func (r *repl) loop(ctx context.Context) error {
	for {
		if !r.deps.Session.Active() {
			if err := r.configure(); err != nil {
				return err
			}
		}

		line, err := r.ask("You: ")
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if err := r.command(ctx, line); err != nil {
				return err
			}
			continue
		}

		reply, err := r.deps.Tutor.Turn(ctx, r.deps.Session, line)
		r.printNotices()
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Tutor: %s\n\n", reply)
	}
}

// configure asks for the language pair until Session.Start accepts it.
func (r *repl) configure() error {
	for {
		known, err := r.answer(&r.known, "Which language do you know? ")
		if err != nil {
			return err
		}
		target, err := r.answer(&r.target, "Which language do you want to learn? ")
		if err != nil {
			return err
		}
		raw, err := r.answer(&r.level, "Your level (Beginner, Intermediate, Advanced, Complete Beginner): ")
		if err != nil {
			return err
		}

		level, ok := session.ParseLevel(raw)
		if !ok {
			fmt.Fprintf(r.out, "Unknown level %q.\n", raw)
			continue
		}
		if !r.deps.Session.Start(known, target, level) {
			fmt.Fprintln(r.out, "Both languages are required.")
			continue
		}

		pair, _ := r.deps.Session.Pair()
		fmt.Fprintf(r.out, "Let's practice %s! Type /quit to leave.\n\n", pair.Target)
		return nil
	}
}

// answer returns the preset value in *preset, clearing it, or asks.
func (r *repl) answer(preset *string, prompt string) (string, error) {
	if v := strings.TrimSpace(*preset); v != "" {
		*preset = ""
		return v, nil
	}
	return r.ask(prompt)
}

func (r *repl) ask(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.in.Scan() {
		fmt.Fprintln(r.out)
		if err := r.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(r.in.Text()), nil
}

func (r *repl) command(ctx context.Context, line string) error {
	switch strings.ToLower(strings.Fields(line)[0]) {
	case "/quit", "/exit":
		return errQuit
	case "/reset":
		r.deps.Session.Reset()
		fmt.Fprintln(r.out, "Conversation reset.")
	case "/mistakes":
		recs, err := r.deps.Mistakes.Top(ctx, store.DefaultTopLimit)
		if err != nil {
			return fmt.Errorf("load mistakes: %w", err)
		}
		printRecords(r.out, recs)
	case "/summary":
		report, err := buildReport(ctx, r.deps.Mistakes)
		if err != nil {
			return err
		}
		printReport(r.out, report)
	default:
		fmt.Fprintf(r.out, "Unknown command %s. Try /mistakes, /summary, /reset or /quit.\n", line)
	}
	return nil
}

func (r *repl) printNotices() {
	if r.deps.Notices == nil {
		return
	}
	for _, n := range r.deps.Notices.Drain() {
		fmt.Fprintf(r.out, "(%s)\n", n)
	}
}

func buildReport(ctx context.Context, repo store.MistakeRepo) (mistakes.Report, error) {
	counts, err := repo.Summarize(ctx)
	if err != nil {
		return mistakes.Report{}, fmt.Errorf("summarize mistakes: %w", err)
	}
	return mistakes.BuildReport(counts), nil
}

func printRecords(w io.Writer, recs []store.MistakeRecord) {
	if len(recs) == 0 {
		fmt.Fprintln(w, mistakes.NoRecordsMessage)
		return
	}
	for _, rec := range recs {
		fmt.Fprintf(w, "- %s\n", mistakes.FormatRecord(rec))
	}
}

func printReport(w io.Writer, report mistakes.Report) {
	if report.Empty() {
		fmt.Fprintln(w, mistakes.NoMistakesMessage)
		return
	}
	fmt.Fprint(w, report.String())
}
