package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"dripsim/internal/adapters/browser"
	"dripsim/internal/adapters/editor"
	"dripsim/internal/adapters/tui"
	"dripsim/internal/bootstrap"
	"dripsim/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("dripsim needs a terminal; use dripsim-cli for scripted runs")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var opts []bootstrap.Option
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "dripsim")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		opts = append(opts, bootstrap.WithLogger(log.Default()))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt, err := bootstrap.Open(ctx, cfg, opts...)
	if err != nil {
		return err
	}
	if err := rt.WatchTemplates(ctx); err != nil {
		log.Printf("watch: %v", err)
	}

	app := tui.NewApp(rt.Engine, tui.Deps{
		Editor:       editor.NewOpener(),
		Browser:      browser.NewOpener(""),
		TemplatePath: rt.TemplatePath,
		Clipboard:    clipboard.WriteAll,
	})
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
