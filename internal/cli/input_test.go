package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/termdict/termserve/pkg/config"
	"github.com/termdict/termserve/pkg/dictionary"
	"github.com/termdict/termserve/pkg/search"
)

func sessionFixture(t *testing.T) *InputHandler {
	t.Helper()
	dict := dictionary.New([]dictionary.Term{
		{English: "cloud", Turkish: "bulut"},
		{English: "cloud computing", Turkish: "bulut bilişim"},
		{English: "database", Turkish: "veritabanı"},
	}, dictionary.Metadata{Source: "test", TotalTerms: 3})

	cfg := config.DefaultConfig()
	params, err := cfg.Params()
	if err != nil {
		t.Fatalf("building session params: %v", err)
	}
	return NewInputHandler(search.New(dict), dict, nil, cfg, "", params)
}

func TestHandleCommandAdjustsSession(t *testing.T) {
	testCases := []struct {
		description string
		command     string
		check       func(t *testing.T, h *InputHandler)
	}{
		{
			description: "mode switch",
			command:     ":mode exact",
			check: func(t *testing.T, h *InputHandler) {
				if h.params.Mode != search.ModeExact {
					t.Errorf("expected exact mode, got %s", h.params.Mode)
				}
			},
		},
		{
			description: "scope switch",
			command:     ":lang tr",
			check: func(t *testing.T, h *InputHandler) {
				if h.params.Scope != search.ScopeTurkish {
					t.Errorf("expected tr scope, got %s", h.params.Scope)
				}
			},
		},
		{
			description: "limit clamped to configured maximum",
			command:     ":limit 500",
			check: func(t *testing.T, h *InputHandler) {
				if h.params.Limit != h.config.Search.MaxLimit {
					t.Errorf("expected limit %d, got %d", h.config.Search.MaxLimit, h.params.Limit)
				}
			},
		},
		{
			description: "score threshold updated",
			command:     ":score 75",
			check: func(t *testing.T, h *InputHandler) {
				if h.params.MinScore != 75 {
					t.Errorf("expected score 75, got %.1f", h.params.MinScore)
				}
			},
		},
		{
			description: "invalid mode leaves session untouched",
			command:     ":mode soundex",
			check: func(t *testing.T, h *InputHandler) {
				if h.params.Mode != search.ModeFuzzy {
					t.Errorf("expected mode to stay fuzzy, got %s", h.params.Mode)
				}
			},
		},
		{
			description: "out of range score rejected",
			command:     ":score 150",
			check: func(t *testing.T, h *InputHandler) {
				if h.params.MinScore != 60 {
					t.Errorf("expected score to stay 60, got %.1f", h.params.MinScore)
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			h := sessionFixture(t)
			if quit := h.handleCommand(tc.command); quit {
				t.Fatal("command unexpectedly ended the session")
			}
			tc.check(t, h)
		})
	}
}

func TestHandleCommandQuit(t *testing.T) {
	h := sessionFixture(t)
	if !h.handleCommand(":quit") {
		t.Error("expected :quit to end the session")
	}
	if !h.handleCommand(":q") {
		t.Error("expected :q to end the session")
	}
	if h.handleCommand(":unknown") {
		t.Error("expected unknown command to keep the session alive")
	}
}

func TestExportAfterSearch(t *testing.T) {
	h := sessionFixture(t)
	h.handleCommand(":mode partial")
	h.handleQuery("cloud")

	if len(h.lastResults) != 2 {
		t.Fatalf("expected 2 retained results, got %d", len(h.lastResults))
	}

	path := filepath.Join(t.TempDir(), "hits.csv")
	h.handleCommand(":export csv " + path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading exported file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "English,Turkish" {
		t.Errorf("expected CSV header, got %q", lines[0])
	}
}

func TestExportWithoutResults(t *testing.T) {
	h := sessionFixture(t)
	path := filepath.Join(t.TempDir(), "empty.json")
	h.handleCommand(":export json " + path)

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected no file when there is nothing to export")
	}
}

func TestSaveSessionDefaults(t *testing.T) {
	h := sessionFixture(t)
	configPath := filepath.Join(t.TempDir(), "config.toml")
	h.configPath = configPath
	h.handleCommand(":mode exact")
	h.handleCommand(":lang en")
	h.handleCommand(":save")

	saved, err := config.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if saved.Search.DefaultMode != "exact" {
		t.Errorf("expected saved mode exact, got %q", saved.Search.DefaultMode)
	}
	if saved.Search.DefaultScope != "en" {
		t.Errorf("expected saved scope en, got %q", saved.Search.DefaultScope)
	}
}
