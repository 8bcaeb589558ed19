package installer

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/tuskshop/internal/storage/sqlite"
)

// SaveEnvStep writes the collected configuration to the runtime .env file.
type SaveEnvStep struct {
	err   error
	saved bool
}

func NewSaveEnvStep() Step {
	return &SaveEnvStep{}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}
	if s.err != nil {
		return s, nil
	}

	if err := state.WriteEnv(); err != nil {
		s.err = fmt.Errorf("failed to write %s: %w", state.EnvPath(), err)
		return s, nil
	}

	s.saved = true
	return nil, nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Configuration saved successfully!\n"
	}
	return "Saving configuration...\n"
}

type seededMsg sqlite.SeedStats

// SeedCatalogStep creates the shop database and loads the demo catalog.
type SeedCatalogStep struct {
	started bool
	err     error
}

func NewSeedCatalogStep() Step {
	return &SeedCatalogStep{}
}

func (s *SeedCatalogStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func seedCatalog(path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := sqlite.NewDB(ctx, path)
		if err != nil {
			return errMsg(err)
		}
		defer db.Close()

		stats, err := sqlite.Seed(ctx, db)
		if err != nil {
			return errMsg(err)
		}
		return seededMsg(stats)
	}
}

func (s *SeedCatalogStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case seededMsg:
		return nil, nil
	case errMsg:
		s.err = msg
		return s, nil
	}

	if !s.started {
		s.started = true
		return s, seedCatalog(state.App.GetDatabasePath())
	}
	return s, nil
}

func (s *SeedCatalogStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Failed to prepare the shop database: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	return "Preparing the shop database at " + state.App.GetDatabasePath() + "...\n"
}
