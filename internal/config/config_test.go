package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// LLM defaults
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "anthropic/claude-3.5-sonnet", cfg.LLM.Model)
	assert.Equal(t, 120*time.Second, cfg.LLM.Timeout)
	assert.Empty(t, cfg.LLM.SiteURL)
	assert.Empty(t, cfg.LLM.AppName)

	// Tracker defaults
	assert.Equal(t, "https://st-api.yandex-team.ru", cfg.Tracker.BaseURL)
	assert.Equal(t, "v3", cfg.Tracker.APIVersion)
	assert.Equal(t, "ru", cfg.Tracker.Language)
	assert.Empty(t, cfg.Tracker.OrgID)

	// Plan and TUI defaults
	assert.Equal(t, 50, cfg.Plan.PerPage)
	assert.NotEmpty(t, cfg.Plan.Query)
	assert.Equal(t, 200, cfg.TUI.HistoryLimit)
	assert.Equal(t, "info", cfg.Log.Level)

	// Credentials never have defaults
	assert.Empty(t, cfg.Tracker.Token)
	assert.Empty(t, cfg.LLM.Token)
	assert.Nil(t, cfg.Proxy)

	// Default config should be valid
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: "",
		},
		{
			name: "negative tracker timeout",
			modify: func(c *Config) {
				c.Tracker.Timeout = -1 * time.Second
			},
			wantErr: "tracker.timeout cannot be negative",
		},
		{
			name: "negative llm timeout",
			modify: func(c *Config) {
				c.LLM.Timeout = -1 * time.Second
			},
			wantErr: "llm.timeout cannot be negative",
		},
		{
			name: "relative tracker base url",
			modify: func(c *Config) {
				c.Tracker.BaseURL = "st-api.yandex-team.ru"
			},
			wantErr: `tracker.base_url must be an absolute URL, got "st-api.yandex-team.ru"`,
		},
		{
			name: "empty api version",
			modify: func(c *Config) {
				c.Tracker.APIVersion = ""
			},
			wantErr: "tracker.api_version cannot be empty",
		},
		{
			name: "unknown language",
			modify: func(c *Config) {
				c.Tracker.Language = "de"
			},
			wantErr: `tracker.language must be "ru" or "en", got "de"`,
		},
		{
			name: "english language is valid",
			modify: func(c *Config) {
				c.Tracker.Language = "en"
			},
			wantErr: "",
		},
		{
			name: "empty web url is valid",
			modify: func(c *Config) {
				c.Tracker.WebURL = ""
			},
			wantErr: "",
		},
		{
			name: "empty llm model",
			modify: func(c *Config) {
				c.LLM.Model = ""
			},
			wantErr: "llm.model cannot be empty",
		},
		{
			name: "empty llm base url",
			modify: func(c *Config) {
				c.LLM.BaseURL = ""
			},
			wantErr: `llm.base_url must be an absolute URL, got ""`,
		},
		{
			name: "negative per page",
			modify: func(c *Config) {
				c.Plan.PerPage = -1
			},
			wantErr: "plan.per_page cannot be negative",
		},
		{
			name: "negative history limit",
			modify: func(c *Config) {
				c.TUI.HistoryLimit = -1
			},
			wantErr: "tui.history_limit cannot be negative",
		},
		{
			name: "unknown log level",
			modify: func(c *Config) {
				c.Log.Level = "chatty"
			},
			wantErr: `log.level "chatty" is not a valid level`,
		},
		{
			name: "zero timeouts are valid",
			modify: func(c *Config) {
				c.Tracker.Timeout = 0
				c.LLM.Timeout = 0
			},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestConfigPaths(t *testing.T) {
	tests := []struct {
		name         string
		cwd          string
		homeDir      string
		wantContains []string // paths that should be in result
		wantOrder    []string // expected order (subset, for key paths)
		wantMissing  []string
	}{
		{
			name:    "cwd is home",
			cwd:     "/Users/jim",
			homeDir: "/Users/jim",
			wantContains: []string{
				"/Users/jim/you.toml",
			},
			wantMissing: []string{
				"/Users/you.toml",
			},
		},
		{
			name:    "nested project structure",
			cwd:     "/Users/jim/code/org/project",
			homeDir: "/Users/jim",
			wantContains: []string{
				"/Users/jim/code/org/project/you.toml",
				"/Users/jim/code/org/you.toml",
				"/Users/jim/code/you.toml",
				"/Users/jim/you.toml",
			},
			wantOrder: []string{
				"/Users/jim/you.toml",                  // home (lowest)
				"/Users/jim/code/you.toml",             // ancestor
				"/Users/jim/code/org/you.toml",         // ancestor
				"/Users/jim/code/org/project/you.toml", // cwd (highest)
			},
		},
		{
			name:    "cwd outside home",
			cwd:     "/tmp/scratch",
			homeDir: "/Users/jim",
			wantContains: []string{
				"/tmp/scratch/you.toml",
			},
			wantMissing: []string{
				"/tmp/you.toml",
				"/Users/jim/you.toml",
			},
		},
		{
			name:    "sibling with shared prefix is not inside home",
			cwd:     "/Users/jimmy/project",
			homeDir: "/Users/jim",
			wantContains: []string{
				"/Users/jimmy/project/you.toml",
			},
			wantMissing: []string{
				"/Users/jim/you.toml",
				"/Users/jimmy/you.toml",
			},
		},
		{
			name:    "empty home dir",
			cwd:     "/Users/jim/project",
			homeDir: "",
			wantContains: []string{
				"/Users/jim/project/you.toml",
			},
			wantMissing: []string{
				"/Users/jim/you.toml",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := ConfigPaths(tt.cwd, tt.homeDir)

			for _, want := range tt.wantContains {
				assert.Contains(t, paths, want, "expected path to be present")
			}
			for _, missing := range tt.wantMissing {
				assert.NotContains(t, paths, missing)
			}

			// Check ordering if specified
			if len(tt.wantOrder) > 0 {
				var foundOrder []string
				for _, p := range paths {
					for _, expected := range tt.wantOrder {
						if p == expected {
							foundOrder = append(foundOrder, p)
						}
					}
				}
				assert.Equal(t, tt.wantOrder, foundOrder, "paths should be in priority order (lowest to highest)")
			}

			// cwd is always last
			assert.Equal(t, filepath.Join(tt.cwd, "you.toml"), paths[len(paths)-1])

			// Check no duplicates
			seen := make(map[string]bool)
			for _, p := range paths {
				assert.False(t, seen[p], "duplicate path: %s", p)
				seen[p] = true
			}
		})
	}
}

// fakeFileSystem is a test double for FileSystem
type fakeFileSystem struct {
	existingFiles map[string]bool
}

func (f *fakeFileSystem) Exists(path string) bool {
	return f.existingFiles[path]
}

func TestLoad_MissingFile(t *testing.T) {
	fs := &fakeFileSystem{existingFiles: map[string]bool{}}
	loader := NewLoader(fs)

	result, err := loader.Load([]string{"/nonexistent/you.toml"})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), result.Config)
	assert.Empty(t, result.SourcePaths)
}

func TestLoad_SingleFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "you.toml")

	tests := []struct {
		name    string
		content string
		check   func(*testing.T, Config)
	}{
		{
			name: "llm model only",
			content: `[llm]
model = "openai/gpt-4o"
`,
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "openai/gpt-4o", cfg.LLM.Model)
				// Other defaults should remain
				assert.Equal(t, 120*time.Second, cfg.LLM.Timeout)
				assert.Equal(t, "https://openrouter.ai/api/v1", cfg.LLM.BaseURL)
			},
		},
		{
			name: "tracker timeout and org",
			content: `[tracker]
timeout = "10s"
org_id = "12345"
language = "en"
`,
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, 10*time.Second, cfg.Tracker.Timeout)
				assert.Equal(t, "12345", cfg.Tracker.OrgID)
				assert.Equal(t, "en", cfg.Tracker.Language)
				assert.Equal(t, "v3", cfg.Tracker.APIVersion)
			},
		},
		{
			name: "plan and tui",
			content: `[plan]
query = "Queue: TEST"
per_page = 10

[tui]
history_limit = 50
`,
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "Queue: TEST", cfg.Plan.Query)
				assert.Equal(t, 10, cfg.Plan.PerPage)
				assert.Equal(t, DefaultPlanSystemPrompt, cfg.Plan.SystemPrompt)
				assert.Equal(t, 50, cfg.TUI.HistoryLimit)
			},
		},
		{
			name:    "empty file",
			content: "",
			check: func(t *testing.T, cfg Config) {
				// Should return defaults
				assert.Equal(t, DefaultConfig(), cfg)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := os.WriteFile(configPath, []byte(tt.content), 0644)
			require.NoError(t, err)

			loader := NewDefaultLoader()
			result, err := loader.Load([]string{configPath})
			require.NoError(t, err)

			tt.check(t, result.Config)
			assert.Equal(t, []string{configPath}, result.SourcePaths)
		})
	}
}

func TestLoad_TokensAreNotReadFromFiles(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "you.toml")
	content := `[tracker]
token = "from-file"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	result, err := NewDefaultLoader().Load([]string{configPath})
	require.NoError(t, err)

	// Unknown key: logged and ignored
	assert.Empty(t, result.Config.Tracker.Token)
}

func TestLoad_SequentialOverlay(t *testing.T) {
	tmpDir := t.TempDir()

	lowPriorityPath := filepath.Join(tmpDir, "low.toml")
	highPriorityPath := filepath.Join(tmpDir, "high.toml")

	lowPriorityContent := `[llm]
model = "low/model"

[plan]
per_page = 100
`

	highPriorityContent := `[llm]
model = "high/model"
`

	require.NoError(t, os.WriteFile(lowPriorityPath, []byte(lowPriorityContent), 0644))
	require.NoError(t, os.WriteFile(highPriorityPath, []byte(highPriorityContent), 0644))

	loader := NewDefaultLoader()
	result, err := loader.Load([]string{lowPriorityPath, highPriorityPath})
	require.NoError(t, err)

	// High priority should override llm.model
	assert.Equal(t, "high/model", result.Config.LLM.Model)
	// Low priority should still apply for non-overridden fields
	assert.Equal(t, 100, result.Config.Plan.PerPage)
	// Both paths should be in source paths
	assert.Equal(t, []string{lowPriorityPath, highPriorityPath}, result.SourcePaths)
}

func TestLoad_ZeroValueOverwrite(t *testing.T) {
	tmpDir := t.TempDir()

	firstPath := filepath.Join(tmpDir, "first.toml")
	require.NoError(t, os.WriteFile(firstPath, []byte("[tui]\nhistory_limit = 500\n"), 0644))

	secondPath := filepath.Join(tmpDir, "second.toml")
	require.NoError(t, os.WriteFile(secondPath, []byte("[tui]\nhistory_limit = 0\n"), 0644))

	loader := NewDefaultLoader()
	result, err := loader.Load([]string{firstPath, secondPath})
	require.NoError(t, err)

	// Zero value from second file should override
	assert.Equal(t, 0, result.Config.TUI.HistoryLimit)
}

func TestLoad_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "you.toml")

	invalidContent := `[llm
model = "broken`
	require.NoError(t, os.WriteFile(configPath, []byte(invalidContent), 0644))

	loader := NewDefaultLoader()
	_, err := loader.Load([]string{configPath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), configPath)
}

func TestLoad_InvalidConfigValues(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "you.toml")

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "negative per_page",
			content: `[plan]
per_page = -1
`,
			wantErr: "plan.per_page cannot be negative",
		},
		{
			name: "bad language",
			content: `[tracker]
language = "fr"
`,
			wantErr: "tracker.language must be",
		},
		{
			name: "negative timeout",
			content: `[llm]
timeout = "-5s"
`,
			wantErr: "llm.timeout cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(configPath, []byte(tt.content), 0644))

			loader := NewDefaultLoader()
			_, err := loader.Load([]string{configPath})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ReturnsSourcePaths(t *testing.T) {
	tmpDir := t.TempDir()

	// Create three config files, but only two exist
	path1 := filepath.Join(tmpDir, "one.toml")
	path2 := filepath.Join(tmpDir, "two.toml")
	path3 := filepath.Join(tmpDir, "nonexistent.toml")

	require.NoError(t, os.WriteFile(path1, []byte("[llm]\nmodel = \"one\""), 0644))
	require.NoError(t, os.WriteFile(path2, []byte("[llm]\nmodel = \"two\""), 0644))

	loader := NewDefaultLoader()
	result, err := loader.Load([]string{path1, path3, path2})
	require.NoError(t, err)

	// Only existing files should be in source paths
	assert.Equal(t, []string{path1, path2}, result.SourcePaths)
	assert.Equal(t, "two", result.Config.LLM.Model)
}

func TestLoad_PathIsDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	// Create a directory where a config file might be expected
	dirPath := filepath.Join(tmpDir, "you.toml")
	require.NoError(t, os.Mkdir(dirPath, 0755))

	loader := NewDefaultLoader()
	result, err := loader.Load([]string{dirPath})
	require.NoError(t, err)

	// Directory should be skipped
	assert.Empty(t, result.SourcePaths)
	assert.Equal(t, DefaultConfig(), result.Config)
}

func TestOSFileSystem_Exists(t *testing.T) {
	tmpDir := t.TempDir()

	filePath := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("test"), 0644))

	dirPath := filepath.Join(tmpDir, "testdir")
	require.NoError(t, os.Mkdir(dirPath, 0755))

	fs := OSFileSystem{}

	assert.True(t, fs.Exists(filePath))
	assert.False(t, fs.Exists(dirPath))
	assert.False(t, fs.Exists(filepath.Join(tmpDir, "nonexistent")))
}

func TestNewDefaultLoader(t *testing.T) {
	loader := NewDefaultLoader()
	assert.NotNil(t, loader)
	assert.IsType(t, OSFileSystem{}, loader.fs)
}
