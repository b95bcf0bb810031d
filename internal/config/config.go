package config

import (
	"errors"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config defines cim-mapping configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Output   OutputConfig   `yaml:"output"`
	SCL      SCLConfig      `yaml:"scl"`
	LogQuery bool           `yaml:"log_queries"`
}

// DatabaseConfig locates the triple store.
type DatabaseConfig struct {
	DSN   string `yaml:"dsn"`
	Table string `yaml:"table"`
}

// OutputConfig names the files a map run writes. Empty paths are skipped,
// except SCLPath where empty means stdout.
type OutputConfig struct {
	SCLPath         string `yaml:"scl_path"`
	InventoryXLSX   string `yaml:"inventory_xlsx"`
	SummaryPDF      string `yaml:"summary_pdf"`
	MetricsTextfile string `yaml:"metrics_textfile"`
}

// SCLConfig sets the SCL root and header attributes.
type SCLConfig struct {
	Version  string `yaml:"version"`
	Revision string `yaml:"revision"`
	Release  string `yaml:"release"`
	ToolID   string `yaml:"tool_id"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Database: DatabaseConfig{
			DSN:   "file:cim-mapping.db",
			Table: "cim_triples",
		},
		SCL: SCLConfig{
			Version:  "2007",
			Revision: "B",
			Release:  "4",
			ToolID:   "cim-mapping",
		},
	}
}

// Load reads the yaml file at path, or at CIM_MAPPING_CONFIG when path is
// empty, then applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CIM_MAPPING_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.Database.DSN = getenvDefault("CIM_MAPPING_DSN", cfg.Database.DSN)
	cfg.Database.Table = getenvDefault("CIM_MAPPING_TABLE", cfg.Database.Table)
	cfg.Output.SCLPath = getenvDefault("CIM_MAPPING_OUT", cfg.Output.SCLPath)
	cfg.Output.MetricsTextfile = getenvDefault("CIM_MAPPING_METRICS_FILE", cfg.Output.MetricsTextfile)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks required fields.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("config: database dsn required")
	}
	if strings.TrimSpace(c.Database.Table) == "" {
		return errors.New("config: database table required")
	}
	if c.SCL.Version == "" || c.SCL.Revision == "" {
		return errors.New("config: scl version and revision required")
	}
	return nil
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
