package installer

import (
	"os"
	"path/filepath"

	"github.com/sandevgo/tuskshop/internal/config"
	"github.com/sandevgo/tuskshop/pkg/env"
)

// InstallState accumulates the answers of the wizard.
type InstallState struct {
	RuntimePath string
	App         config.AppConfig
	LLM         config.LLMConfig
	Telegram    config.TelegramConfig
}

func NewInstallState(runtimePath string) *InstallState {
	return &InstallState{
		RuntimePath: runtimePath,
		App: config.AppConfig{
			RuntimePath:   runtimePath,
			StoreBackend:  config.StoreSQLite,
			EnableHTTP:    true,
			HTTPAddr:      ":8000",
			HistoryWindow: 3,
			SeedOnStart:   true,
		},
		LLM: config.LLMConfig{
			Provider:      "ollama",
			Model:         "llama3.2:3b",
			Temperature:   0.1,
			OllamaBaseURL: "http://localhost:11434",
		},
	}
}

func (s *InstallState) EnvPath() string {
	return filepath.Join(s.RuntimePath, ".env")
}

// EnvContent renders the collected settings as .env lines. The runtime path
// is implied by the file location and left out.
func (s *InstallState) EnvContent() (string, error) {
	app := s.App
	app.RuntimePath = ""

	// SeedOnStart defaults to true, so only an explicit opt-out needs writing.
	content, err := env.MarshalEnv(&app, &s.LLM, &s.Telegram)
	if err != nil {
		return "", err
	}
	if !s.App.EnableHTTP {
		content += "TUSK_ENABLE_HTTP=false\n"
	}
	if !s.App.SeedOnStart {
		content += "TUSK_SEED_ON_START=false\n"
	}
	return content, nil
}

// WriteEnv stores the configuration, refusing to overwrite an existing file.
func (s *InstallState) WriteEnv() error {
	if err := os.MkdirAll(s.RuntimePath, 0o755); err != nil {
		return err
	}

	content, err := s.EnvContent()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(s.EnvPath(), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}
