package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/vango-dev/forge/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "forge.json"

	// EnvPrefix prefixes environment variables read by Overlay.
	EnvPrefix = "FORGE"

	// DefaultPort is the default preview server port.
	DefaultPort = 4400

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultInto is the selector rendered archetypes are inserted into.
	DefaultInto = "body"

	// DefaultMaxNotifyDepth bounds re-entrant state notification.
	DefaultMaxNotifyDepth = 64
)

// Config represents the complete forge.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Dev enables verbose diagnostic logging.
	Dev bool `json:"dev,omitempty"`

	// StrictAlias makes registering an existing alias an error.
	StrictAlias bool `json:"strictAlias,omitempty"`

	// MaxNotifyDepth is the re-entrant notification limit.
	MaxNotifyDepth int `json:"maxNotifyDepth,omitempty"`

	// Document is an HTML file used as the base document. Empty means an
	// empty html/head/body skeleton.
	Document string `json:"document,omitempty"`

	// Into is the default parent selector for rendered elements.
	Into string `json:"into,omitempty"`

	// Archetypes lists YAML archetype files loaded at startup.
	Archetypes []string `json:"archetypes,omitempty"`

	// States seeds named reactive states before archetypes are loaded.
	States map[string]map[string]any `json:"states,omitempty"`

	// Preview contains preview server configuration.
	Preview PreviewConfig `json:"preview,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// PreviewConfig contains preview server settings.
type PreviewConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Watch reloads archetype files when they change.
	Watch bool `json:"watch,omitempty"`

	// Metrics exposes /metrics.
	Metrics bool `json:"metrics,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		MaxNotifyDepth: DefaultMaxNotifyDepth,
		Into:           DefaultInto,
		Preview: PreviewConfig{
			Host:    DefaultHost,
			Port:    DefaultPort,
			Watch:   true,
			Metrics: true,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for forge.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeInvalidConfig).
				WithSubject(path).
				WithDetail("No forge.json found in " + filepath.Dir(path)).
				WithSuggestion("Create forge.json or pass settings as flags")
		}
		return nil, errors.New(errors.CodeInvalidConfig).WithSubject(path).Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(errors.CodeInvalidConfig).
			WithSubject(path).
			WithDetail("Failed to parse forge.json: " + err.Error()).
			WithSuggestion("Check that forge.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New(errors.CodeInvalidConfig).
			WithDetail("no config path set").
			WithSuggestion("Use SaveTo with an explicit path")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New(errors.CodeInvalidConfig).Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.CodeInvalidConfig).WithSubject(path).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.MaxNotifyDepth == 0 {
		c.MaxNotifyDepth = DefaultMaxNotifyDepth
	}
	if c.Into == "" {
		c.Into = DefaultInto
	}
	if c.Preview.Host == "" {
		c.Preview.Host = DefaultHost
	}
	if c.Preview.Port == 0 {
		c.Preview.Port = DefaultPort
	}
}

// Overlay applies values set in v on top of c. Keys use the JSON field
// names with "." between sections (dev, strictAlias, preview.port, ...).
// Environment variables are bound as FORGE_<KEY> with dots replaced by
// underscores, so FORGE_PREVIEW_PORT sets preview.port.
func (c *Config) Overlay(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range overlayKeys {
		// Env lookups need an explicit bind when the key has no default.
		_ = v.BindEnv(key, envName(key))
	}

	if v.IsSet("name") {
		c.Name = v.GetString("name")
	}
	if v.IsSet("dev") {
		c.Dev = v.GetBool("dev")
	}
	if v.IsSet("strictAlias") {
		c.StrictAlias = v.GetBool("strictAlias")
	}
	if v.IsSet("maxNotifyDepth") {
		c.MaxNotifyDepth = v.GetInt("maxNotifyDepth")
	}
	if v.IsSet("document") {
		c.Document = v.GetString("document")
	}
	if v.IsSet("into") {
		c.Into = v.GetString("into")
	}
	if v.IsSet("archetypes") {
		c.Archetypes = v.GetStringSlice("archetypes")
	}
	if v.IsSet("preview.host") {
		c.Preview.Host = v.GetString("preview.host")
	}
	if v.IsSet("preview.port") {
		c.Preview.Port = v.GetInt("preview.port")
	}
	if v.IsSet("preview.watch") {
		c.Preview.Watch = v.GetBool("preview.watch")
	}
	if v.IsSet("preview.metrics") {
		c.Preview.Metrics = v.GetBool("preview.metrics")
	}
}

var overlayKeys = []string{
	"name", "dev", "strictAlias", "maxNotifyDepth", "document", "into", "archetypes",
	"preview.host", "preview.port", "preview.watch", "preview.metrics",
}

// envName maps "preview.port" to FORGE_PREVIEW_PORT and "strictAlias" to
// FORGE_STRICT_ALIAS.
func envName(key string) string {
	var b strings.Builder
	b.WriteString(EnvPrefix)
	b.WriteByte('_')
	for i, r := range key {
		switch {
		case r == '.':
			b.WriteByte('_')
		case r >= 'A' && r <= 'Z':
			if i > 0 && key[i-1] != '.' {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteString(strings.ToUpper(string(r)))
		}
	}
	return b.String()
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return errors.New(errors.CodeInvalidConfig).
			WithSubject("preview.port").
			WithDetail("Port must be between 0 and 65535")
	}
	if c.MaxNotifyDepth < 1 {
		return errors.New(errors.CodeInvalidConfig).
			WithSubject("maxNotifyDepth").
			WithDetail("The notification depth limit must be at least 1")
	}
	if strings.TrimSpace(c.Into) == "" {
		return errors.New(errors.CodeInvalidConfig).
			WithSubject("into").
			WithDetail("A parent selector is required")
	}
	for _, a := range c.Archetypes {
		if strings.TrimSpace(a) == "" {
			return errors.New(errors.CodeInvalidConfig).
				WithSubject("archetypes").
				WithDetail("Archetype file paths cannot be empty")
		}
	}
	return nil
}

// PreviewAddress returns the address string for the preview server.
func (c *Config) PreviewAddress() string {
	return c.Preview.Host + ":" + strconv.Itoa(c.Preview.Port)
}

// PreviewURL returns the full URL for the preview server.
func (c *Config) PreviewURL() string {
	return "http://" + c.PreviewAddress()
}

// DocumentPath returns the absolute path to the base document, or "" when
// none is configured.
func (c *Config) DocumentPath() string {
	if c.Document == "" {
		return ""
	}
	return c.resolve(c.Document)
}

// ArchetypePaths returns the archetype files resolved against the config
// directory.
func (c *Config) ArchetypePaths() []string {
	out := make([]string, 0, len(c.Archetypes))
	for _, a := range c.Archetypes {
		out = append(out, c.resolve(a))
	}
	return out
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir(), p)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing forge.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New(errors.CodeInvalidConfig).
				WithDetail("No forge.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory,
// falling back to defaults when no forge.json exists above it.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return New(), nil
	}

	return Load(root)
}
