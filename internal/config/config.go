// internal/config/config.go
//
// This package handles configuration and the .wanderguide directory structure.
// The first run in a directory creates .wanderguide/ with a commented config.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// ProjectDirName is the name of the directory we create in each project
	ProjectDirName = ".wanderguide"

	DefaultEndpoint    = "https://wander-api.onrender.com/tour/"
	DefaultTimeout     = 150 * time.Second
	DefaultIntroDelay  = 800 * time.Millisecond
	DefaultAnswerDelay = 500 * time.Millisecond
	DefaultRevealDelay = 2 * time.Second
	DefaultStubHost    = "127.0.0.1"
	DefaultStubPort    = 8787
)

// Environment variables consulted after the config file.
const (
	EnvEndpoint = "WANDERGUIDE_ENDPOINT"
	EnvTimeout  = "WANDERGUIDE_TIMEOUT"
	EnvStubHost = "WANDERGUIDE_STUB_HOST"
	EnvStubPort = "WANDERGUIDE_STUB_PORT"
)

const defaultProjectConfigYAML = `# wanderguide project configuration
version: 1

# Tour generation service. The stub server (wanderguide stub-server) speaks
# the same contract; point endpoint at http://127.0.0.1:8787/tour/ to use it.
api:
  endpoint: https://wander-api.onrender.com/tour/
  timeout: 150s

# Pauses between screens.
timing:
  intro_delay: 800ms
  answer_delay: 500ms
  reveal_delay: 2s

# Optional question bank file. Relative paths resolve against the project dir.
quiz:
  # bank: questions.yaml

stub:
  host: 127.0.0.1
  port: 8787
`

// APIConfig points at the tour generation service.
type APIConfig struct {
	Endpoint string `yaml:"endpoint"`
	Timeout  string `yaml:"timeout"`
}

// TimingConfig holds the screen transition delays as duration strings.
type TimingConfig struct {
	IntroDelay  string `yaml:"intro_delay"`
	AnswerDelay string `yaml:"answer_delay"`
	RevealDelay string `yaml:"reveal_delay"`
}

// QuizConfig selects the question bank.
type QuizConfig struct {
	Bank string `yaml:"bank,omitempty"`
}

// StubConfig controls the local stub server.
type StubConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// ProjectConfig models .wanderguide/config.yaml.
type ProjectConfig struct {
	Version int          `yaml:"version"`
	API     APIConfig    `yaml:"api"`
	Timing  TimingConfig `yaml:"timing"`
	Quiz    QuizConfig   `yaml:"quiz"`
	Stub    StubConfig   `yaml:"stub"`
}

// Delays is the parsed form of TimingConfig.
type Delays struct {
	Intro  time.Duration
	Answer time.Duration
	Reveal time.Duration
}

// Config holds the runtime configuration for wanderguide.
type Config struct {
	// ProjectDir is the directory where the user ran `wanderguide` from
	ProjectDir string

	// StateDir is ProjectDir/.wanderguide
	StateDir string

	Project ProjectConfig

	resolved bool
	timeout  time.Duration
	delays   Delays
}

// InitProjectDir creates the .wanderguide directory structure in the given
// project directory and writes a default config.yaml if none exists.
//
// Structure created:
// .wanderguide/
// ├── config.yaml
// └── logs/
func InitProjectDir(projectDir string) error {
	stateDir := filepath.Join(projectDir, ProjectDirName)
	if err := os.MkdirAll(filepath.Join(stateDir, "logs"), 0755); err != nil {
		return err
	}
	return ensureProjectConfig(filepath.Join(stateDir, "config.yaml"))
}

// NewConfig loads .env, the project config file, and environment overrides.
func NewConfig(projectDir string) (*Config, error) {
	if err := loadDotEnv(filepath.Join(projectDir, ".env")); err != nil {
		return nil, err
	}

	cfg := &Config{
		ProjectDir: projectDir,
		StateDir:   filepath.Join(projectDir, ProjectDirName),
		Project:    defaultProjectConfig(),
	}

	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.StateDir, "logs")
}

// SessionLogPath returns the journal file used by the TUI.
func (c *Config) SessionLogPath() string {
	return filepath.Join(c.LogsDir(), "session.log")
}

// ServerLogPath returns the log file used by the stub server.
func (c *Config) ServerLogPath() string {
	return filepath.Join(c.LogsDir(), "wanderguide.log")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.StateDir, "config.yaml")
}

// Endpoint returns the tour service URL.
func (c *Config) Endpoint() string {
	return c.Project.API.Endpoint
}

// Timeout returns the request timeout for the tour service.
func (c *Config) Timeout() time.Duration {
	if !c.resolved {
		return DefaultTimeout
	}
	return c.timeout
}

// Delays returns the screen transition delays.
func (c *Config) Delays() Delays {
	if !c.resolved {
		return defaultDelays()
	}
	return c.delays
}

// QuestionBankPath returns the resolved bank path, or "" for the built-in bank.
func (c *Config) QuestionBankPath() string {
	return c.Project.Quiz.Bank
}

// StubHost returns the interface the stub server binds to.
func (c *Config) StubHost() string {
	return c.Project.Stub.Host
}

// StubPort returns the TCP port the stub server binds to.
func (c *Config) StubPort() int {
	return c.Project.Stub.Port
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c.resolve()
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize(c.ProjectDir)
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return c.resolve()
}

// resolve caches the parsed durations. The project config must already be valid.
func (c *Config) resolve() error {
	timeout, delays, err := c.Project.durations()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.timeout = timeout
	c.delays = delays
	c.resolved = true
	return nil
}

func (c *Config) applyEnvOverrides() {
	if endpoint := strings.TrimSpace(os.Getenv(EnvEndpoint)); endpoint != "" {
		c.Project.API.Endpoint = endpoint
	}
	if value := strings.TrimSpace(os.Getenv(EnvTimeout)); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			c.Project.API.Timeout = value
			c.timeout = parsed
		}
	}
	if host := strings.TrimSpace(os.Getenv(EnvStubHost)); host != "" {
		c.Project.Stub.Host = host
	}
	if port := strings.TrimSpace(os.Getenv(EnvStubPort)); port != "" {
		if parsed, err := strconv.Atoi(port); err == nil && isValidPort(parsed) {
			c.Project.Stub.Port = parsed
		}
	}
}

func defaultProjectConfig() ProjectConfig {
	pc := ProjectConfig{}
	pc.applyDefaults()
	return pc
}

func defaultDelays() Delays {
	return Delays{Intro: DefaultIntroDelay, Answer: DefaultAnswerDelay, Reveal: DefaultRevealDelay}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.API.Endpoint) == "" {
		pc.API.Endpoint = DefaultEndpoint
	}
	if strings.TrimSpace(pc.API.Timeout) == "" {
		pc.API.Timeout = DefaultTimeout.String()
	}
	if strings.TrimSpace(pc.Timing.IntroDelay) == "" {
		pc.Timing.IntroDelay = DefaultIntroDelay.String()
	}
	if strings.TrimSpace(pc.Timing.AnswerDelay) == "" {
		pc.Timing.AnswerDelay = DefaultAnswerDelay.String()
	}
	if strings.TrimSpace(pc.Timing.RevealDelay) == "" {
		pc.Timing.RevealDelay = DefaultRevealDelay.String()
	}
	if strings.TrimSpace(pc.Stub.Host) == "" {
		pc.Stub.Host = DefaultStubHost
	}
	if pc.Stub.Port == 0 {
		pc.Stub.Port = DefaultStubPort
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.API.Endpoint = strings.TrimSpace(pc.API.Endpoint)
	pc.API.Timeout = strings.TrimSpace(pc.API.Timeout)
	pc.Timing.IntroDelay = strings.TrimSpace(pc.Timing.IntroDelay)
	pc.Timing.AnswerDelay = strings.TrimSpace(pc.Timing.AnswerDelay)
	pc.Timing.RevealDelay = strings.TrimSpace(pc.Timing.RevealDelay)
	pc.Quiz.Bank = resolvePath(base, pc.Quiz.Bank)
	pc.Stub.Host = strings.TrimSpace(pc.Stub.Host)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	parsed, err := url.Parse(pc.API.Endpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("api.endpoint must be an absolute URL, got %q", pc.API.Endpoint)
	}
	if _, _, err := pc.durations(); err != nil {
		return err
	}
	if !isValidPort(pc.Stub.Port) {
		return fmt.Errorf("stub.port must be between 1 and 65535, got %d", pc.Stub.Port)
	}
	return nil
}

func (pc ProjectConfig) durations() (time.Duration, Delays, error) {
	timeout, err := parseDuration("api.timeout", pc.API.Timeout, false)
	if err != nil {
		return 0, Delays{}, err
	}
	var delays Delays
	if delays.Intro, err = parseDuration("timing.intro_delay", pc.Timing.IntroDelay, true); err != nil {
		return 0, Delays{}, err
	}
	if delays.Answer, err = parseDuration("timing.answer_delay", pc.Timing.AnswerDelay, true); err != nil {
		return 0, Delays{}, err
	}
	if delays.Reveal, err = parseDuration("timing.reveal_delay", pc.Timing.RevealDelay, true); err != nil {
		return 0, Delays{}, err
	}
	return timeout, delays, nil
}

func parseDuration(key, value string, allowZero bool) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 || (d == 0 && !allowZero) {
		return 0, fmt.Errorf("%s must be positive, got %s", key, value)
	}
	return d, nil
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

func isValidPort(port int) bool {
	return port > 0 && port <= 65535
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}
