package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	v1alpha1 "github.com/mepworks/workplan-generator/api/v1alpha1"
)

// LoadDocument reads a snapshot document from path. The raw JSON is
// unmarshaled over a fully defaulted document, so any absent field inherits
// its documented default while present fields, including explicit zeros,
// win. A missing field never fails the load.
func LoadDocument(path string) (*v1alpha1.ConfigSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	return ParseDocument(data)
}

// ParseDocument parses snapshot JSON with per-field defaulting.
func ParseDocument(data []byte) (*v1alpha1.ConfigSnapshot, error) {
	doc := DefaultDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing snapshot document: %w", err)
	}
	if doc.APIVersion == "" {
		doc.APIVersion = v1alpha1.APIVersion
	}
	if doc.Kind == "" {
		doc.Kind = v1alpha1.KindConfigSnapshot
	}
	return doc, nil
}

// SaveDocument writes the snapshot document to path as indented JSON.
// Saving a just-loaded document and loading it again yields an identical
// document, so save-load-save is a no-op on all numeric outputs.
func SaveDocument(path string, doc *v1alpha1.ConfigSnapshot) error {
	if doc == nil {
		return fmt.Errorf("snapshot document cannot be nil")
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot document: %w", err)
	}
	data = append(data, '\n')
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating snapshot directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", path, err)
	}
	return nil
}

// Load reads, defaults, and compiles a snapshot in one step.
func Load(path string) (*Snapshot, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return Compile(doc)
}

// Settings are tool-level settings, distinct from the snapshot document:
// they control where the tool looks and how it serves, never what a plan
// computes.
type Settings struct {
	// SnapshotPath is the snapshot document location.
	SnapshotPath string `mapstructure:"snapshot"`

	// Listen is the serve command's bind address.
	Listen string `mapstructure:"listen"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log-level"`

	// Development switches the logger to console encoding.
	Development bool `mapstructure:"development"`

	// RatebookPath optionally points at a YAML $/SF ratebook override file.
	RatebookPath string `mapstructure:"ratebook"`
}

// NewViper builds the viper instance used for tool settings, with defaults
// and WORKPLAN_-prefixed environment overrides registered.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("snapshot", "workplan.json")
	v.SetDefault("listen", ":8080")
	v.SetDefault("log-level", "info")
	v.SetDefault("development", false)
	v.SetDefault("ratebook", "")
	v.SetEnvPrefix("WORKPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadSettings resolves Settings from the given viper instance.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("resolving tool settings: %w", err)
	}
	return settings, nil
}
