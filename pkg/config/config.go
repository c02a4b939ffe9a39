package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Log        LogConfig
	Report     ReportConfig
	Curriculum CurriculumConfig
	Dashboard  DashboardConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// ReportConfig controls workbook generation and exports.
type ReportConfig struct {
	OutputDir    string
	SheetName    string
	StaticValues bool
	Formats      []string
	Workers      int
}

// CurriculumConfig selects the active curriculum revision.
type CurriculumConfig struct {
	Revision string
	File     string
}

// DashboardConfig tunes the summary sheet.
type DashboardConfig struct {
	TopN int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Running without a .env file is the normal case for the CLI.
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	workers := v.GetInt("REPORT_WORKERS")
	if workers <= 0 {
		workers = 4
	}
	cfg.Report = ReportConfig{
		OutputDir:    v.GetString("OUTPUT_DIR"),
		SheetName:    v.GetString("REPORT_SHEET_NAME"),
		StaticValues: v.GetBool("REPORT_STATIC_VALUES"),
		Formats:      splitAndTrim(v.GetString("EXPORT_FORMATS")),
		Workers:      workers,
	}

	cfg.Curriculum = CurriculumConfig{
		Revision: v.GetString("CURRICULUM"),
		File:     v.GetString("CURRICULUM_FILE"),
	}

	topN := v.GetInt("DASHBOARD_TOP_N")
	if topN <= 0 {
		topN = 5
	}
	cfg.Dashboard = DashboardConfig{TopN: topN}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("OUTPUT_DIR", "./out")
	v.SetDefault("REPORT_SHEET_NAME", "Data Source")
	v.SetDefault("REPORT_STATIC_VALUES", false)
	v.SetDefault("EXPORT_FORMATS", "xlsx")
	v.SetDefault("REPORT_WORKERS", 4)

	v.SetDefault("CURRICULUM", "dakhil-2025")
	v.SetDefault("CURRICULUM_FILE", "")

	v.SetDefault("DASHBOARD_TOP_N", 5)
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
