package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "feedcli/internal/errors"
)

// EnvPrefix namespaces every environment variable read by Load
const EnvPrefix = "FEED"

// Config represents the complete application configuration
type Config struct {
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Parser     ParserConfig     `yaml:"parser" envconfig:"PARSER"`
	Clean      CleanConfig      `yaml:"clean" envconfig:"CLEAN"`
	Verify     VerifyConfig     `yaml:"verify" envconfig:"VERIFY"`
	Validate   ValidateConfig   `yaml:"validate" envconfig:"VALIDATE"`
	MasterList MasterListConfig `yaml:"masterlist" envconfig:"MASTERLIST"`
	Metrics    MetricsConfig    `yaml:"metrics" envconfig:"METRICS"`
	Tracing    TracingConfig    `yaml:"tracing" envconfig:"TRACING"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ParserConfig controls delimiter sniffing
type ParserConfig struct {
	SniffBytes int `yaml:"sniff_bytes" envconfig:"SNIFF_BYTES"`
}

// CleanConfig configures the archive cleaning operation
type CleanConfig struct {
	OutputSuffix   string `yaml:"output_suffix" envconfig:"OUTPUT_SUFFIX"`
	MemberExt      string `yaml:"member_ext" envconfig:"MEMBER_EXT"`
	CombineMembers bool   `yaml:"combine_members" envconfig:"COMBINE_MEMBERS"`
	AppendOutput   bool   `yaml:"append_output" envconfig:"APPEND_OUTPUT"`
	// UTF8BOM starts each new output with a byte order mark for Excel
	UTF8BOM bool `yaml:"utf8_bom" envconfig:"UTF8_BOM"`
}

// VerifyConfig configures the column totals operation
type VerifyConfig struct {
	SummaryFile string `yaml:"summary_file" envconfig:"SUMMARY_FILE"`
	SheetName   string `yaml:"sheet_name" envconfig:"SHEET_NAME"`
	Columns     []int  `yaml:"columns" envconfig:"COLUMNS"`
}

// ValidateConfig configures lookup matching
type ValidateConfig struct {
	KeyColumn    string `yaml:"key_column" envconfig:"KEY_COLUMN"`
	ValueColumn  string `yaml:"value_column" envconfig:"VALUE_COLUMN"`
	OutputPrefix string `yaml:"output_prefix" envconfig:"OUTPUT_PREFIX"`
}

// MasterListConfig configures the two set comparisons
type MasterListConfig struct {
	DiffColumn  int    `yaml:"diff_column" envconfig:"DIFF_COLUMN"`
	DiffFile    string `yaml:"diff_file" envconfig:"DIFF_FILE"`
	DiffHeader  string `yaml:"diff_header" envconfig:"DIFF_HEADER"`
	UnionColumn int    `yaml:"union_column" envconfig:"UNION_COLUMN"`
	UnionFile   string `yaml:"union_file" envconfig:"UNION_FILE"`
	UnionHeader string `yaml:"union_header" envconfig:"UNION_HEADER"`
}

// MetricsConfig controls the prometheus textfile written after each run
type MetricsConfig struct {
	TextfilePath string `yaml:"textfile_path" envconfig:"TEXTFILE_PATH"`
}

// TracingConfig controls span export. Tracing is off while FilePath is empty.
type TracingConfig struct {
	FilePath    string  `yaml:"file_path" envconfig:"FILE_PATH"`
	SampleRatio float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO"`
}

// Load builds the configuration from defaults, then the YAML file at path (if any),
// then FEED_* environment variables. Later sources win.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = getConfigFilePath()
	}
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg; keys absent from the file keep their value
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging format: %q", c.Logging.Format)
	}

	switch strings.ToLower(c.Logging.Output) {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %q", c.Logging.Output)
	}

	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/feedcli.log"
	}

	if c.Parser.SniffBytes <= 0 || c.Parser.SniffBytes > 4096 {
		return fmt.Errorf("parser sniff_bytes must be between 1 and 4096, got %d", c.Parser.SniffBytes)
	}

	if len(c.Verify.Columns) != 3 {
		return fmt.Errorf("verify columns must name exactly 3 columns, got %d", len(c.Verify.Columns))
	}
	for _, col := range c.Verify.Columns {
		if col < 0 {
			return fmt.Errorf("invalid verify column: %d", col)
		}
	}

	if c.MasterList.DiffColumn < 0 || c.MasterList.UnionColumn < 0 {
		return fmt.Errorf("master list columns must not be negative")
	}

	if c.Validate.KeyColumn == "" || c.Validate.ValueColumn == "" {
		return fmt.Errorf("validate key_column and value_column are required")
	}

	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing sample_ratio must be between 0 and 1, got %v", c.Tracing.SampleRatio)
	}

	return nil
}

// getConfigFilePath returns the first config file found in the usual locations
func getConfigFilePath() string {
	locations := []string{
		"feedcli.yaml",
		"configs/feedcli.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "console",
		},
		Parser: ParserConfig{
			SniffBytes: 4096,
		},
		Clean: CleanConfig{
			OutputSuffix:   "_processed.csv",
			MemberExt:      ".csv",
			CombineMembers: false,
		},
		Verify: VerifyConfig{
			SummaryFile: "Column Totals Summary.xlsx",
			SheetName:   "Summary",
			Columns:     []int{3, 4, 5},
		},
		Validate: ValidateConfig{
			KeyColumn:    "File Name",
			ValueColumn:  "Add in File",
			OutputPrefix: "processed_",
		},
		MasterList: MasterListConfig{
			DiffColumn:  3,
			DiffFile:    "Logic1_New_SKU.csv",
			DiffHeader:  "NotFound_Values",
			UnionColumn: 0,
			UnionFile:   "Unique_Corporate_List.csv",
			UnionHeader: "Unique_Values",
		},
		Tracing: TracingConfig{
			SampleRatio: 1.0,
		},
	}
}
