package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/folio/internal/datasource"
	"github.com/vanderheijden86/folio/pkg/config"
	"github.com/vanderheijden86/folio/pkg/content"
	"github.com/vanderheijden86/folio/pkg/debug"
	"github.com/vanderheijden86/folio/pkg/export"
	"github.com/vanderheijden86/folio/pkg/hooks"
	_ "github.com/vanderheijden86/folio/pkg/ttyguard"
	"github.com/vanderheijden86/folio/pkg/ui"
	"github.com/vanderheijden86/folio/pkg/version"
	"github.com/vanderheijden86/folio/pkg/watcher"
)

// Exit codes.
const (
	exitOK     = 0
	exitError  = 1
	exitMisuse = 2
)

type options struct {
	contentPath   string
	watch         bool
	configPath    string
	start         string
	pick          bool
	robotContent  bool
	robotSections bool
	robotSources  bool
	exportMD      string
	exportHTML    string
	exportDir     string
	noHooks       bool
	cpuProfile    string
	version       bool
	help          bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func newFlagSet(opts *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("folio", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.contentPath, "content", "", "Content YAML file (default: discovered, else embedded)")
	fs.BoolVar(&opts.watch, "watch", false, "Live-reload the content file when it changes")
	fs.StringVar(&opts.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/folio/config.yaml)")
	fs.StringVar(&opts.start, "start", "", "Section to open at (e.g. biography, works)")
	fs.BoolVar(&opts.pick, "pick", false, "Choose the start section interactively")
	fs.BoolVar(&opts.robotContent, "robot-content", false, "Print the loaded content as JSON and exit")
	fs.BoolVar(&opts.robotSections, "robot-sections", false, "Print the section list as JSON and exit")
	fs.BoolVar(&opts.robotSources, "robot-sources", false, "Print discovered content sources as JSON and exit")
	fs.StringVar(&opts.exportMD, "export-md", "", "Write a Markdown rendition to FILE and exit")
	fs.StringVar(&opts.exportHTML, "export-html", "", "Write a standalone HTML page to FILE and exit")
	fs.StringVar(&opts.exportDir, "export-dir", "", "Write site.md, index.html and site.json into DIR and exit")
	fs.BoolVar(&opts.noHooks, "no-hooks", false, "Skip export hooks from .folio/hooks.yaml")
	fs.StringVar(&opts.cpuProfile, "cpu-profile", "", "Write CPU profile to file")
	fs.BoolVar(&opts.version, "version", false, "Show version")
	fs.BoolVar(&opts.help, "help", false, "Show help")
	return fs
}

func usage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Usage: folio [options]")
	fmt.Fprintln(w, "\nA terminal reader for a single-page illustrated biography.")
	fmt.Fprintln(w)
	fs.SetOutput(w)
	fs.PrintDefaults()
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := newFlagSet(&opts, stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitMisuse
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "Error: unexpected arguments: %v\n", fs.Args())
		return exitMisuse
	}

	// CPU profiling support
	if opts.cpuProfile != "" {
		f, err := os.Create(opts.cpuProfile)
		if err != nil {
			fmt.Fprintf(stderr, "Could not create CPU profile: %v\n", err)
			return exitError
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(stderr, "Could not start CPU profile: %v\n", err)
			return exitError
		}
		defer pprof.StopCPUProfile()
	}

	if opts.help {
		usage(fs, stdout)
		return exitOK
	}
	if opts.version {
		fmt.Fprintf(stdout, "folio %s\n", version.Version)
		return exitOK
	}

	// Flags override env, env overrides the config file.
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		// Non-fatal: continue with defaults
		fmt.Fprintf(stderr, "Warning: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}
	cfg.ApplyEnv()
	if opts.contentPath != "" {
		cfg.Content.Path = opts.contentPath
	}
	if opts.watch {
		cfg.Content.Watch = true
	}

	discovery := datasource.DiscoveryOptions{
		ExplicitPath: cfg.Content.Path,
		DataDir:      config.DataDir(),
	}
	if wd, err := os.Getwd(); err == nil {
		discovery.WorkDir = wd
	}

	if opts.robotSources {
		discovery.ValidateAfterDiscovery = true
		discovery.IncludeInvalid = true
		sources, err := datasource.DiscoverSources(discovery)
		if err != nil {
			fmt.Fprintf(stderr, "Error discovering sources: %v\n", err)
			return exitError
		}
		if err := export.WriteRobotSources(stdout, sources); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		return exitOK
	}

	site, src, err := datasource.Resolve(discovery)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading content: %v\n", err)
		return exitError
	}

	if opts.robotContent || opts.robotSections {
		write := export.WriteRobotSections
		if opts.robotContent {
			write = export.WriteRobotContent
		}
		if err := write(stdout, site, src.Path); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		return exitOK
	}

	if opts.exportMD != "" || opts.exportHTML != "" || opts.exportDir != "" {
		return runExports(opts, site, stdout, stderr)
	}

	start := opts.start
	if start == "" {
		start = cfg.UI.StartSection
	}
	if start != "" {
		if _, ok := site.FindSection(content.SectionID(start)); !ok {
			fmt.Fprintf(stderr, "Error: unknown section %q (valid: %v)\n", start, site.SectionIDs())
			return exitMisuse
		}
	}
	if opts.pick {
		picked, err := pickSection(site, content.SectionID(start))
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		start = string(picked)
	}

	var modelOpts []ui.Option
	if start != "" {
		modelOpts = append(modelOpts, ui.WithStartSection(content.SectionID(start)))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Content.Watch {
		if src.IsEmbedded() {
			fmt.Fprintln(stderr, "Warning: --watch ignored for embedded content")
		} else if w, err := startWatcher(ctx, src.Path, cfg); err != nil {
			fmt.Fprintf(stderr, "Warning: live reload disabled: %v\n", err)
		} else {
			defer w.Stop()
			modelOpts = append(modelOpts, ui.WithWatcher(w))
		}
	}

	m := ui.NewModel(site, src, cfg, modelOpts...)
	defer m.Close()

	if err := runTUIProgram(m); err != nil {
		fmt.Fprintf(stderr, "Error running folio: %v\n", err)
		return exitError
	}
	logMetrics()
	return exitOK
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func runExports(opts options, site *content.Site, stdout, stderr io.Writer) int {
	if opts.exportMD != "" {
		code := exportWithHooks(opts, site, opts.exportMD, "markdown", stdout, stderr, func() error {
			if err := export.SaveMarkdownToFile(site, opts.exportMD); err != nil {
				return fmt.Errorf("exporting markdown: %w", err)
			}
			fmt.Fprintf(stdout, "✓ Wrote %s\n", opts.exportMD)
			return nil
		})
		if code != exitOK {
			return code
		}
	}
	if opts.exportHTML != "" {
		code := exportWithHooks(opts, site, opts.exportHTML, "html", stdout, stderr, func() error {
			if err := export.SaveHTMLToFile(site, opts.exportHTML); err != nil {
				return fmt.Errorf("exporting html: %w", err)
			}
			fmt.Fprintf(stdout, "✓ Wrote %s\n", opts.exportHTML)
			return nil
		})
		if code != exitOK {
			return code
		}
	}
	if opts.exportDir != "" {
		return exportWithHooks(opts, site, opts.exportDir, "bundle", stdout, stderr, func() error {
			results, err := export.ExportAll(context.Background(), site, opts.exportDir)
			if err != nil {
				return fmt.Errorf("exporting bundle: %w", err)
			}
			for _, r := range results {
				fmt.Fprintf(stdout, "✓ Wrote %s (%d bytes)\n", r.Path, r.Bytes)
			}
			return nil
		})
	}
	return exitOK
}

// exportWithHooks wraps write with the pre/post-export hooks from
// .folio/hooks.yaml in the working directory.
func exportWithHooks(opts options, site *content.Site, path, format string, stdout, stderr io.Writer, write func() error) int {
	wd, _ := os.Getwd()
	executor, err := hooks.RunHooks(wd, hooks.ExportContext{
		ExportPath:   path,
		ExportFormat: format,
		SectionCount: len(site.Sections),
		Title:        site.Title,
		Timestamp:    time.Now(),
	}, opts.noHooks)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading hooks: %v\n", err)
		return exitError
	}

	if executor != nil {
		if err := executor.RunPreExport(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
	}
	if err := write(); err != nil {
		fmt.Fprintf(stderr, "Error %v\n", err)
		return exitError
	}
	if executor != nil {
		if err := executor.RunPostExport(); err != nil {
			fmt.Fprintf(stderr, "Warning: %v\n", err)
		}
		if summary := executor.Summary(); summary != "" {
			fmt.Fprintln(stdout, summary)
		}
	}
	return exitOK
}

func startWatcher(ctx context.Context, path string, cfg config.Config) (*watcher.Watcher, error) {
	w, err := watcher.New(path,
		watcher.WithForcePoll(cfg.Content.ForcePoll),
		watcher.WithOnError(func(err error) {
			debug.Log("watcher: %v", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return w, nil
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set FOLIO_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("FOLIO_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}
