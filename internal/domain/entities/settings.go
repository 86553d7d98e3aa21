package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCommitLimit = 100
	DefaultDiffTimeout = 30 * time.Second
	DefaultGitBinary   = "git"
	DefaultDatasetPath = "diff_discrepancy_analysis.csv"
	DefaultSummaryPath = "discrepancy_stats.csv"
)

// Order selects how a repository history is walked.
type Order string

const (
	// OrderOldestFirst walks from the root commit forward.
	OrderOldestFirst Order = "oldest-first"
	// OrderNative walks in the VCS log order, newest first.
	OrderNative Order = "native"
)

// Settings is the explicit configuration passed into the pipeline.
type Settings struct {
	Repositories  []Repository  `yaml:"repositories"   hcl:"repository,block"`
	CommitLimit   int           `yaml:"-"`
	RawLimit      *int          `yaml:"commit_limit"   hcl:"commit_limit,optional"`
	DiffTimeout   time.Duration `yaml:"-"`
	RawTimeout    string        `yaml:"diff_timeout"   hcl:"diff_timeout,optional"`
	Workers       int           `yaml:"workers"        hcl:"workers,optional"`
	SnippetLength int           `yaml:"snippet_length" hcl:"snippet_length,optional"`
	Order         Order         `yaml:"order"          hcl:"order,optional"`
	GitBinary     string        `yaml:"git_binary"     hcl:"git_binary,optional"`
	Output        *Output       `yaml:"output"         hcl:"output,block"`
}

// Output holds artifact destinations. An empty Metrics path disables the metrics file.
type Output struct {
	Dataset string `yaml:"dataset" hcl:"dataset,optional"`
	Summary string `yaml:"summary" hcl:"summary,optional"`
	Metrics string `yaml:"metrics" hcl:"metrics,optional"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads a YAML or HCL configuration file, expands environment
// variables, fills defaults and validates the result.
func NewSettings(path string) (*Settings, error) {
	settings, err := ReadSettings(path)
	if err != nil {
		return nil, err
	}
	if validateErr := settings.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return settings, nil
}

// ReadSettings parses a configuration file and fills defaults without
// validating, so callers can apply overrides first.
func ReadSettings(path string) (*Settings, error) {
	var settings Settings

	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		if err := hclsimple.DecodeFile(path, nil, &settings); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	if err := settings.prepare(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// DefaultSettings returns settings for the given repositories with every default applied.
func DefaultSettings(repositories ...Repository) *Settings {
	settings := &Settings{Repositories: repositories, CommitLimit: DefaultCommitLimit}
	settings.applyDefaults()
	return settings
}

// prepare expands environment references and applies defaults.
func (s *Settings) prepare() error {
	for i := range s.Repositories {
		s.Repositories[i].Path = expandEnv(s.Repositories[i].Path)
	}
	if s.Output != nil {
		s.Output.Dataset = expandEnv(s.Output.Dataset)
		s.Output.Summary = expandEnv(s.Output.Summary)
		s.Output.Metrics = expandEnv(s.Output.Metrics)
	}

	// Only an absent commit_limit gets the default; 0 means no limit.
	s.CommitLimit = DefaultCommitLimit
	if s.RawLimit != nil {
		s.CommitLimit = *s.RawLimit
	}

	if s.RawTimeout != "" {
		timeout, err := time.ParseDuration(s.RawTimeout)
		if err != nil {
			return fmt.Errorf("diff_timeout: %w", err)
		}
		s.DiffTimeout = timeout
	}

	s.applyDefaults()
	return nil
}

func (s *Settings) applyDefaults() {
	if s.DiffTimeout == 0 {
		s.DiffTimeout = DefaultDiffTimeout
	}
	if s.Workers <= 0 {
		s.Workers = runtime.NumCPU()
	}
	if s.SnippetLength <= 0 {
		s.SnippetLength = DefaultSnippetLength
	}
	if s.Order == "" {
		s.Order = OrderOldestFirst
	}
	if s.GitBinary == "" {
		s.GitBinary = DefaultGitBinary
	}
	if s.Output == nil {
		s.Output = &Output{}
	}
	if s.Output.Dataset == "" {
		s.Output.Dataset = DefaultDatasetPath
	}
	if s.Output.Summary == "" {
		s.Output.Summary = DefaultSummaryPath
	}
}

// Validate checks for required configuration values.
func (s *Settings) Validate() error {
	if len(s.Repositories) == 0 {
		return errors.New("at least one repository must be configured")
	}
	for i, repo := range s.Repositories {
		if strings.TrimSpace(repo.Path) == "" {
			return fmt.Errorf("repositories[%d].path is required", i)
		}
	}
	if s.CommitLimit < 0 {
		return fmt.Errorf("commit_limit must not be negative, got %d", s.CommitLimit)
	}
	if s.DiffTimeout <= 0 {
		return fmt.Errorf("diff_timeout must be positive, got %s", s.DiffTimeout)
	}
	switch s.Order {
	case OrderOldestFirst, OrderNative:
	default:
		return fmt.Errorf("order must be %q or %q, got %q", OrderOldestFirst, OrderNative, s.Order)
	}
	return nil
}

// FindConfigFile searches for a configuration file in standard locations.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{".", ".config", "configs"}
	if homeDir != "" {
		locations = append(locations, homeDir, filepath.Join(homeDir, ".config"))
	}

	patterns := []string{
		".diffaudit.yaml",
		".diffaudit.yml",
		".diffaudit.hcl",
		"diffaudit.yaml",
		"diffaudit.yml",
		"diffaudit.hcl",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", ErrConfigNotFound
}

// expandEnv replaces ${VAR} references with their environment values.
func expandEnv(raw string) string {
	if raw == "" {
		return raw
	}
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}
