package application

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"rdalreport/internal/reporting/domain/code"
)

// Date formats of the artifact header. Configuration-selected, not
// code-selected.
const (
	DateFormatShort = "ddmmyy"
	DateFormatLong  = "ddmmyyyy"
)

// ReportDate is the reporting day the run covers.
type ReportDate struct {
	Day   int `yaml:"day"`
	Month int `yaml:"month"`
	Year  int `yaml:"year"`
}

// Validate checks the date fields.
func (d ReportDate) Validate() error {
	if d.Day < 1 || d.Day > 31 || d.Month < 1 || d.Month > 12 || d.Year < 1 {
		return fmt.Errorf("config: invalid reporting date %02d/%02d/%d", d.Day, d.Month, d.Year)
	}
	return nil
}

// ExtractConfig names one source extract file.
type ExtractConfig struct {
	Granularity code.Granularity `yaml:"granularity"`
	Path        string           `yaml:"path"`
	Format      string           `yaml:"format"` // "attributed" or "coded"
	Mandatory   bool             `yaml:"mandatory"`
}

// SuppressionConfig is the documented Special-section suppression case.
type SuppressionConfig struct {
	Code string `yaml:"code"`
	Days []int  `yaml:"days"`
}

// Config is the full run configuration: a yaml file merged over env-var
// fallbacks.
type Config struct {
	ReportingDate    ReportDate        `yaml:"reporting_date"`
	DateFormat       string            `yaml:"date_format"`
	ScaleFactor      int64             `yaml:"scale_factor"`
	ExcludedPrefixes []string          `yaml:"excluded_prefixes"`
	Base             ExtractConfig     `yaml:"base"`
	Overlays         []ExtractConfig   `yaml:"overlays"`
	Suppression      SuppressionConfig `yaml:"suppression"`
	AdjustmentsPath  string            `yaml:"adjustments_path"`
	OutputPath       string            `yaml:"output_path"`
	WorkbookPath     string            `yaml:"workbook_path"`
	SummaryPDFPath   string            `yaml:"summary_pdf_path"`
	ReceiptPath      string            `yaml:"receipt_path"`
	ReceiptSecret    string            `yaml:"receipt_secret"`
	MetricsAddr      string            `yaml:"metrics_addr"`
	PostgresDSN      string            `yaml:"postgres_dsn"`
}

// LoadConfig loads configuration from the yaml file at path (or the
// RDAL_CONFIG env var when path is empty), applying env fallbacks for the
// operational fields.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		DateFormat:    DateFormatShort,
		ScaleFactor:   getenvInt64Default("RDAL_SCALE_FACTOR", 1000),
		OutputPath:    os.Getenv("RDAL_OUTPUT"),
		MetricsAddr:   os.Getenv("RDAL_METRICS_ADDR"),
		PostgresDSN:   getenvDefault("RDAL_PG_DSN", os.Getenv("DATABASE_URL")),
		ReceiptSecret: os.Getenv("RDAL_RECEIPT_SECRET"),
	}

	if path == "" {
		path = os.Getenv("RDAL_CONFIG")
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

	return cfg, cfg.Validate()
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	if err := c.ReportingDate.Validate(); err != nil {
		return err
	}
	if c.DateFormat != DateFormatShort && c.DateFormat != DateFormatLong {
		return fmt.Errorf("config: unknown date format %q", c.DateFormat)
	}
	if c.ScaleFactor <= 0 {
		return errors.New("config: scale factor must be positive")
	}
	if c.OutputPath == "" {
		return errors.New("config: output path required")
	}
	if c.Base.Path == "" {
		return errors.New("config: base extract path required")
	}
	if !c.Base.Granularity.FinerThan(code.GranularityMonthly) {
		return errors.New("config: base extract must be the weekly cadence")
	}
	for _, overlay := range c.Overlays {
		if overlay.Path == "" {
			return fmt.Errorf("config: overlay %v has no path", overlay.Granularity)
		}
		if !c.Base.Granularity.FinerThan(overlay.Granularity) {
			return fmt.Errorf("config: overlay %v is not coarser than the base", overlay.Granularity)
		}
	}
	if c.Suppression.Code != "" && len(c.Suppression.Code) != code.Length {
		return fmt.Errorf("config: suppression code %q has wrong length", c.Suppression.Code)
	}
	return nil
}

// RunID derives the snapshot run identity from the reporting date.
func (c Config) RunID() string {
	return fmt.Sprintf("%04d-%02d-%02d", c.ReportingDate.Year, c.ReportingDate.Month, c.ReportingDate.Day)
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt64Default(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
