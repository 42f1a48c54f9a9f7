package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"vesselx/internal/adapters/tui"
	"vesselx/internal/config"
	"vesselx/internal/wiring"
)

func main() {
	configFlag := flag.String("config", config.Path(), "path to the config file")
	sessionFlag := flag.String("session", os.Getenv("VESSELX_SESSION"), "open this session directly")
	flag.Parse()

	if err := run(*configFlag, *sessionFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, sessionID string) error {
	// The alternate screen owns the terminal, so logs go to a file
	logPath := filepath.Join(config.ExpandHome(config.Home()), "vesselx.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return err
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	env, err := wiring.Open(configPath, wiring.Overrides{LogOutput: logFile})
	if err != nil {
		return err
	}
	defer env.Close()

	app := tui.NewApp(env.Context(context.Background()), env.Store, tui.Options{
		Exporter:  env.Exporter,
		Extractor: env.Extractor,
		Editor:    env.Editor,
		Strategy:  env.Config.Extractor.Strategy,
		SessionID: sessionID,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
