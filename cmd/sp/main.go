// Command sp is the terminal viewer for the IoT career roadmap.
//
// By default it opens the interactive TUI against the configured API
// server. The --export-md, --export-svg and --print flags render the
// roadmap without entering the TUI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/rvanmaanen/skillpath/pkg/api"
	"github.com/rvanmaanen/skillpath/pkg/config"
	"github.com/rvanmaanen/skillpath/pkg/export"
	"github.com/rvanmaanen/skillpath/pkg/ui"
	"github.com/rvanmaanen/skillpath/pkg/version"
)

const reportTitle = "IoT Career Roadmap"

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	apiURL := flag.String("api", "", "API base URL (overrides config and SP_API_URL)")
	tabFlag := flag.String("tab", "", "Initial tab: roadmap or insights")
	exportMD := flag.String("export-md", "", "Write a markdown report to the given path and exit")
	exportSVG := flag.String("export-svg", "", "Write an SVG timeline to the given path and exit")
	printFlag := flag.Bool("print", false, "Render the roadmap report to the terminal and exit")
	flag.Parse()

	if *help {
		fmt.Println("Usage: sp [options]")
		fmt.Println("\nA terminal viewer for the IoT career roadmap.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("sp %s\n", version.Version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		// Non-fatal: continue with defaults
		cfg = config.DefaultConfig()
	}
	if *apiURL != "" {
		cfg.API.BaseURL = *apiURL
	}
	if *tabFlag != "" {
		cfg.UI.DefaultTab = *tabFlag
	}

	if *exportMD != "" || *exportSVG != "" || *printFlag {
		runExport(cfg, *exportMD, *exportSVG, *printFlag)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "sp needs an interactive terminal; use --print or --export-md for non-interactive output")
		os.Exit(1)
	}

	client := api.New(cfg.API.BaseURL)
	if cfg.API.TimeoutSeconds > 0 {
		client.HTTP.Timeout = time.Duration(cfg.API.TimeoutSeconds) * time.Second
	}

	theme := ui.DefaultTheme(lipgloss.NewRenderer(os.Stdout))
	m := ui.NewModel(client, theme, cfg.UI.DefaultTab)

	if err := runTUIProgram(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error running roadmap viewer: %v\n", err)
		os.Exit(1)
	}
}

// runExport fetches the catalog with retries; a slow answer beats a
// missing one for one-shot output.
func runExport(cfg config.Config, mdPath, svgPath string, print bool) {
	client := api.NewWithRetry(cfg.API.BaseURL, api.DefaultRetryConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ov, err := client.FetchOverview(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching roadmap from %s: %v\n", cfg.API.BaseURL, err)
		os.Exit(1)
	}

	if mdPath != "" {
		if err := export.WriteMarkdownFile(mdPath, ov.Levels, ov.Insights, reportTitle); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", mdPath)
	}

	if svgPath != "" {
		if err := export.WriteTimelineSVG(svgPath, ov.Levels, reportTitle); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", svgPath)
	}

	if print {
		md := export.GenerateMarkdown(ov.Levels, ov.Insights, reportTitle)
		width := 100
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
			width = w
		}
		out, err := export.RenderTerminal(md, width)
		if err != nil {
			// Fall back to raw markdown on renderer failure.
			out = md
		}
		fmt.Print(out)
	}
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
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

	_, err := p.Run()
	return err
}
