package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/weaver/internal/config"
	"github.com/jorge-barreto/weaver/internal/docs"
	"github.com/jorge-barreto/weaver/internal/logging"
	"github.com/jorge-barreto/weaver/internal/parser"
	"github.com/jorge-barreto/weaver/internal/prompt"
	"github.com/jorge-barreto/weaver/internal/scaffold"
	"github.com/jorge-barreto/weaver/internal/ux"
	"github.com/jorge-barreto/weaver/internal/watch"
	"github.com/jorge-barreto/weaver/internal/weave"
	"github.com/jorge-barreto/weaver/internal/writer"
)

func main() {
	app := &cli.Command{
		Name:        "weaver",
		Usage:       "Extract files and instructions from AI chat transcripts",
		Description: "Run 'weaver docs' for documentation on config syntax, parsing, and watch mode.",
		Commands: []*cli.Command{
			initCmd(),
			parseCmd(),
			watchCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		os.Exit(1)
	}
}

func parseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "auto", Usage: "Never prompt; skip ambiguous blocks"},
		&cli.BoolFlag{Name: "dry-run", Usage: "Parse and report without writing anything"},
		&cli.BoolFlag{Name: "no-git", Usage: "Update existing files in place, without a git branch"},
		&cli.BoolFlag{Name: "verbose", Usage: "Enable debug logging"},
		&cli.StringFlag{Name: "root", Usage: "Write extracted files under this directory (default: project root)"},
	}
}

func parseCmd() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse a saved transcript once",
		ArgsUsage: "<transcript>",
		Flags:     parseFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			transcript := cmd.Args().First()
			if transcript == "" {
				return fmt.Errorf("transcript argument is required")
			}

			w, cleanup, err := buildWeaver(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ux.Processing(transcript)
			out, err := w.Process(ctx, transcript)
			if err != nil {
				return err
			}
			if cmd.Bool("dry-run") && !out.Skipped {
				fmt.Print(parser.Report(out.Result))
				return nil
			}
			printOutcome(transcript, out)
			return nil
		},
	}
}

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Reparse a transcript whenever it is saved",
		ArgsUsage: "<transcript>",
		Flags: append(parseFlags(),
			&cli.DurationFlag{Name: "debounce", Value: 500 * time.Millisecond, Usage: "Delay before reparsing after a change"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			transcript := cmd.Args().First()
			if transcript == "" {
				return fmt.Errorf("transcript argument is required")
			}

			w, cleanup, err := buildWeaver(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			onChange := func() {
				out, err := w.Process(ctx, transcript)
				if err != nil {
					w.Log.Error().Err(err).Msg("parse failed")
					return
				}
				printOutcome(transcript, out)
			}

			watcher, err := watch.New(transcript, cmd.Duration("debounce"), w.Log, onChange)
			if err != nil {
				return fmt.Errorf("watching %s: %w", transcript, err)
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
			defer stop()

			ux.Watching(transcript)
			onChange() // parse whatever is there already
			return watcher.Run(ctx)
		},
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize a new .weaver/ directory with a config template",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir)
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-16s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'weaver docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}

// buildWeaver assembles the pipeline from the project config and the
// command's flags. The returned cleanup closes the log file.
func buildWeaver(cmd *cli.Command) (*weave.Weaver, func(), error) {
	projectRoot, cfg, err := loadProject()
	if err != nil {
		return nil, nil, err
	}

	logFolder := cfg.LogFolder
	if !filepath.IsAbs(logFolder) {
		logFolder = filepath.Join(projectRoot, logFolder)
	}

	log, cleanup, err := logging.New(logFolder, cmd.Bool("verbose"))
	if err != nil {
		return nil, nil, err
	}

	learnedPath := filepath.Join(projectRoot, ".weaver", "learned.yaml")
	learned, err := config.LoadLearned(learnedPath)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("loading learned extensions: %w", err)
	}

	var dis parser.Disambiguator
	if cmd.Bool("auto") {
		dis = prompt.Auto{}
	} else {
		term := prompt.NewTerminal()
		term.OnLearn = func(ext, style string) {
			if learned.Set(ext, style) {
				if err := learned.Save(learnedPath); err != nil {
					log.Warn().Err(err).Msg("saving learned extensions")
				}
			}
		}
		dis = term
	}

	outRoot := cmd.String("root")
	if outRoot == "" {
		outRoot = projectRoot
	}

	w := &weave.Weaver{
		Styles: cfg.StyleConfig(learned),
		Dis:    dis,
		Writer: writer.New(outRoot, logFolder, log),
		Log:    log,
		DryRun: cmd.Bool("dry-run"),
		UseGit: !cmd.Bool("no-git"),
	}
	return w, cleanup, nil
}

func printOutcome(transcript string, out *weave.Outcome) {
	if out.Skipped {
		ux.Skipped(transcript)
		return
	}
	for _, p := range out.Created {
		ux.FileCreated(p)
	}
	for i, p := range out.Updated {
		ux.FileUpdated(p, out.Backups[i])
	}
	ux.Summary(out.Result, len(out.Created), len(out.Updated))
}

// loadProject finds the project root and its config. Without a
// .weaver/config.yaml anywhere above the cwd, the cwd and the built-in
// defaults are used.
func loadProject() (string, *config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", nil, err
	}
	dir := cwd
	for {
		configPath := filepath.Join(dir, ".weaver", "config.yaml")
		if _, err := os.Stat(configPath); err == nil {
			cfg, err := config.Load(configPath)
			if err != nil {
				return "", nil, fmt.Errorf("loading config: %w", err)
			}
			return dir, cfg, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", nil, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, config.Default(), nil
		}
		dir = parent
	}
}
