package cli

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/dakhil-report-gen/internal/curriculum"
	"github.com/noah-isme/dakhil-report-gen/pkg/config"
	"github.com/noah-isme/dakhil-report-gen/pkg/logger"
)

// Execute runs the command tree.
func Execute() error {
	return rootCmd().Execute()
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dakhil-report",
		Short: "Dakhil examination result workbook generator and inspector",
		Long: `Generate a Dakhil examination result workbook (raw marks, live GPA and
grade formulas, summary dashboard with charts) and inspect generated files.

Commands:
  generate   Grade a roster and write the report workbook and exports.
  inspect    Read formulas, evaluated values or formula lengths back.
  failcheck  Replay every pass condition for one student row.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("curriculum", "", "Curriculum revision ("+strings.Join(curriculum.Revisions(), ", ")+")")
	root.PersistentFlags().String("curriculum-file", "", "Curriculum YAML file overriding the built-in revisions")

	root.AddCommand(generateCmd(), inspectCmd(), failcheckCmd())
	return root
}

// app carries the shared bootstrap state behind every command.
type app struct {
	cfg        *config.Config
	logger     *zap.Logger
	curriculum curriculum.Curriculum
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	if revision, _ := cmd.Flags().GetString("curriculum"); revision != "" {
		cfg.Curriculum.Revision = revision
	}
	if file, _ := cmd.Flags().GetString("curriculum-file"); file != "" {
		cfg.Curriculum.File = file
	}

	c, err := curriculum.Load(cfg.Curriculum.Revision, cfg.Curriculum.File)
	if err != nil {
		return nil, err
	}
	for _, warning := range c.Warnings() {
		logr.Warn("curriculum inconsistency", zap.String("detail", warning))
	}

	return &app{cfg: cfg, logger: logr, curriculum: c}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}
