// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// convert_cmd.go - Headless conversion for link2clash.
//
// Command: convert [--file F] [flags]
// Short:   Convert share links once and print the result
// Aliases: c
//
// Input is read from --file (or a single positional path), from stdin when
// it is piped, or from an interactive prompt when stdin is a terminal.
//
// Flags:
//   --show document|proxies|groups|all   What to print (default: document)
//   --out F                              Also write the shown text to F
//   --copy proxies|groups|config         Copy one surface to the clipboard
//   --url URL                            Engine base URL
//   --lint                               Fail if the composed document is not valid YAML
//   --watch                              Re-run whenever --file changes
//
// Examples:
//   link2clash convert --file links.txt
//   link2clash convert links.txt --show all --out clash.txt
//   pbpaste | link2clash convert --copy config
//   link2clash convert --file links.txt --watch --out clash.yaml

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/peterh/liner"

	"github.com/jeranaias/link2clash-tui/internal/clipboard"
	"github.com/jeranaias/link2clash-tui/internal/compose"
	"github.com/jeranaias/link2clash-tui/internal/config"
	"github.com/jeranaias/link2clash-tui/internal/convert"
	"github.com/jeranaias/link2clash-tui/internal/ui/app"
	"github.com/jeranaias/link2clash-tui/internal/ui/components"
	"github.com/jeranaias/link2clash-tui/internal/util"
)

// What convert prints.
const (
	ShowDocument = "document"
	ShowProxies  = "proxies"
	ShowGroups   = "groups"
	ShowAll      = "all"
)

// watchInterval is the minimum spacing between watch-mode re-runs.
const watchInterval = 500 * time.Millisecond

// inputTerminator ends interactive input.
const inputTerminator = "."

// convertOptions holds the parsed flags of the convert command.
type convertOptions struct {
	File  string
	Show  string
	Out   string
	Copy  string
	URL   string
	Lint  bool
	Watch bool
}

func parseConvertOptions(raw []string) (convertOptions, error) {
	p := NewArgParser(raw, "lint", "watch")

	opts := convertOptions{
		File:  p.Flag("file"),
		Show:  p.FlagOrDefault("show", ShowDocument),
		Out:   p.Flag("out"),
		Copy:  p.Flag("copy"),
		URL:   p.Flag("url"),
		Lint:  p.BoolFlag("lint"),
		Watch: p.BoolFlag("watch"),
	}
	if p.HasFlag("f") && opts.File == "" {
		opts.File = p.Flag("f")
	}

	switch {
	case p.PositionalCount() > 1:
		return opts, NewValidationError("argument", p.Positional(1), "convert takes at most one input file")
	case p.PositionalCount() == 1 && opts.File != "":
		return opts, NewValidationError("argument", p.Positional(0), "input given both as --file and positionally")
	case p.PositionalCount() == 1:
		opts.File = p.Positional(0)
	}

	if err := oneOf("show", opts.Show, ShowDocument, ShowProxies, ShowGroups, ShowAll); err != nil {
		return opts, err
	}
	if opts.Copy != "" {
		if _, ok := app.ParseCopyTarget(opts.Copy); !ok {
			return opts, oneOf("copy", opts.Copy, "config", "proxies", "groups")
		}
	}
	if opts.Watch && (opts.File == "" || opts.File == "-") {
		return opts, ErrMissingArgument("file", "link2clash convert --file links.txt --watch")
	}
	return opts, nil
}

// =============================================================================
// RUNNER
// =============================================================================

// Converter performs one conversion request.
type Converter interface {
	Convert(ctx context.Context, input string) (*convert.Response, error)
}

// Copier places text on the clipboard.
type Copier interface {
	Copy(text, label string) clipboard.Outcome
}

// convertRunner drives one or more conversions and reports each of them.
// The composed document survives incomplete responses across watch-mode
// re-runs, the same way the TUI keeps its last document.
type convertRunner struct {
	opts     convertOptions
	client   Converter
	composer *compose.Composer
	copier   Copier
	json     bool
	quiet    bool
	stdout   io.Writer
	stderr   io.Writer

	document string
	composed bool
}

func newConvertRunner(opts convertOptions, client Converter, composer *compose.Composer, copier Copier) *convertRunner {
	return &convertRunner{
		opts:     opts,
		client:   client,
		composer: composer,
		copier:   copier,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		document: composer.Reset(),
	}
}

// run performs one conversion and folds it into the runner's document.
func (r *convertRunner) run(ctx context.Context, input string) (ConvertData, error) {
	log.Printf("CONVERT_START | bytes=%d", len(input))

	resp, err := r.client.Convert(ctx, input)
	if err != nil {
		log.Printf("CONVERT_FAILED | error=%v", err)
		return ConvertData{}, err
	}

	if resp.Complete() {
		r.document = r.composer.Compose(resp.ProxyLines, resp.GroupLines)
		r.composed = true
	}
	log.Printf("CONVERT_DONE | rejected=%d composed=%t", len(resp.Errors), resp.Complete())

	return ConvertData{
		Proxies:  resp.ProxyLines,
		Groups:   resp.GroupLines,
		Document: r.document,
		Composed: r.composed,
		Errors:   resp.Errors,
	}, nil
}

// runAndReport converts input, then applies --lint, --out and --copy and
// prints the result.
func (r *convertRunner) runAndReport(ctx context.Context, input string) error {
	data, err := r.run(ctx, input)
	if err != nil {
		return err
	}

	if r.opts.Lint && data.Composed {
		if err := compose.Lint(data.Document); err != nil {
			return NewCommandError("convert", "lint", "composed document is invalid", err)
		}
	}

	shown := shownText(r.opts.Show, data)
	if r.opts.Out != "" {
		if err := util.AtomicWriteFile(r.opts.Out, []byte(ensureNewline(shown)), 0644); err != nil {
			return NewCommandError("convert", "write", r.opts.Out, err)
		}
		data.Output = r.opts.Out
	}

	var copyErr error
	var copyStatus string
	if r.opts.Copy != "" {
		outcome := r.copy(data)
		copyStatus = outcome.Message
		if outcome.Copied {
			data.Copied = outcome.Label
		}
		if outcome.Err != nil {
			copyErr = NewCommandError("convert", "copy", outcome.Message, outcome.Err)
		}
	}

	if r.json {
		if copyErr != nil {
			return copyErr
		}
		return NewJSONResponse("convert", data).Print(r.stdout)
	}

	for _, item := range data.Errors {
		fmt.Fprintln(r.stderr, ErrorStyle.Render(components.FormatErrorRow(item)))
	}
	if shown != "" {
		fmt.Fprint(r.stdout, ensureNewline(shown))
	}
	if !r.quiet {
		if !data.Composed && r.opts.Show != ShowProxies && r.opts.Show != ShowGroups {
			fmt.Fprintln(r.stderr, WarningStyle.Render("No document composed: the engine returned no proxies or no groups."))
		}
		fmt.Fprintln(r.stderr, SuccessStyle.Render(app.StatusConversionDone))
		if copyStatus != "" && copyErr == nil {
			fmt.Fprintln(r.stderr, DimStyle.Render(copyStatus))
		}
	}
	return copyErr
}

// copy sends the requested surface to the clipboard. An uncomposed document
// counts as nothing to copy.
func (r *convertRunner) copy(data ConvertData) clipboard.Outcome {
	target, _ := app.ParseCopyTarget(r.opts.Copy)
	var text string
	switch target {
	case app.TargetEntries:
		text = data.Proxies
	case app.TargetGroups:
		text = data.Groups
	case app.TargetDocument:
		if data.Composed {
			text = data.Document
		}
	}
	return r.copier.Copy(text, target.Label())
}

// watch re-reads the input file and re-runs the conversion after every
// change until ctx is cancelled.
func (r *convertRunner) watch(ctx context.Context) error {
	fw, err := newFileWatcher(r.opts.File, watchInterval)
	if err != nil {
		return NewCommandError("convert", "watch", r.opts.File, err)
	}
	defer fw.Close()

	if !r.quiet && !r.json {
		fmt.Fprintln(r.stderr, DimStyle.Render("Watching "+r.opts.File+" (Ctrl+C to stop)"))
	}

	return fw.Run(ctx, func() {
		input, err := readInput(r.opts.File, nil, false)
		if err == nil {
			if !r.json {
				fmt.Fprintln(r.stderr, RenderSeparator())
			}
			err = r.runAndReport(ctx, input)
		}
		if err != nil {
			DisplayError(r.stderr, "convert", err, false)
		}
	})
}

// shownText selects what --show prints.
func shownText(show string, data ConvertData) string {
	switch show {
	case ShowProxies:
		return data.Proxies
	case ShowGroups:
		return data.Groups
	case ShowAll:
		var sb strings.Builder
		sb.WriteString("# proxies\n")
		sb.WriteString(ensureNewline(data.Proxies))
		sb.WriteString("\n# groups\n")
		sb.WriteString(ensureNewline(data.Groups))
		sb.WriteString("\n# document\n")
		sb.WriteString(data.Document)
		return sb.String()
	default:
		return data.Document
	}
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// =============================================================================
// INPUT
// =============================================================================

// readInput returns the link text from path, stdin, or an interactive
// prompt. The text is returned verbatim.
func readInput(path string, stdin io.Reader, interactive bool) (string, error) {
	if path != "" && path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	}
	if interactive {
		return promptInput()
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// promptInput collects lines at a liner prompt until a lone "." or Ctrl+D.
func promptInput() (string, error) {
	if err := RequiresTTY("read links"); err != nil {
		return "", err
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Fprintln(os.Stderr, DimStyle.Render(`Paste share links, one per line. Finish with "." or Ctrl+D.`))

	var lines []string
	for {
		text, err := line.Prompt("> ")
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", NewCommandError("convert", "read input", "aborted", err)
		}
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		if text == inputTerminator {
			break
		}
		if strings.TrimSpace(text) != "" {
			line.AppendHistory(text)
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n"), nil
}

// =============================================================================
// HANDLER
// =============================================================================

// HandleConvert handles the "convert" command.
func HandleConvert(args Args) error {
	opts, err := parseConvertOptions(args.Raw)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.URL != "" {
		cfg.Engine.URL = opts.URL
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	composer, err := cfg.Composer()
	if err != nil {
		return err
	}

	r := newConvertRunner(opts,
		convert.NewClientWithConfig(cfg.ClientConfig()),
		composer,
		clipboard.NewDefaultService(cfg.Clipboard.OSC52Fallback))
	r.json = args.JSON
	r.quiet = args.Quiet

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	input, err := readInput(opts.File, os.Stdin, opts.File == "" && IsTTY())
	if err != nil {
		return err
	}

	if err := r.runAndReport(ctx, input); err != nil {
		if !opts.Watch {
			return err
		}
		DisplayError(r.stderr, "convert", err, false)
	}

	if opts.Watch {
		return r.watch(ctx)
	}
	return nil
}
