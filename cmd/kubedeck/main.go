package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jclamy/kubedeck/internal/cache"
	"github.com/jclamy/kubedeck/internal/config"
	"github.com/jclamy/kubedeck/internal/domain"
	"github.com/jclamy/kubedeck/internal/k8s"
	"github.com/jclamy/kubedeck/internal/logging"
	"github.com/jclamy/kubedeck/internal/tui"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("kubedeck %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration invalide: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// ClientFactory wraps client construction behind the domain
	// interface, with the TTL cache decorator on top.
	factory := func() (domain.Gateway, error) {
		client, err := k8s.NewClient(log)
		if err != nil {
			return nil, err
		}
		return cache.NewCachedGateway(client, cfg.Cache), nil
	}

	client, err := factory()
	if err != nil {
		// Client creation failed -- launch TUI in error mode
		log.Warn("démarrage en mode erreur", zap.Error(err))
		m := tui.NewModelWithError(err, factory)
		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	m := tui.NewModel(client, factory, cfg, log)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
