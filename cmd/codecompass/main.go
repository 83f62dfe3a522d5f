package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ehr/codecompass/internal/config"
	"github.com/ehr/codecompass/internal/domain/labels"
	"github.com/ehr/codecompass/internal/domain/mappings"
	"github.com/ehr/codecompass/internal/domain/table"
	"github.com/ehr/codecompass/internal/platform/jsonout"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "codecompass",
		Short: "Build reference datasets for clinical coding systems",
	}

	rootCmd.AddCommand(labelsCmd())
	rootCmd.AddCommand(mappingsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func labelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Generate the multilingual code label table",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			outputPath, _ := cmd.Flags().GetString("output")
			return runLabels(configPath, outputPath)
		},
	}
	addRunFlags(cmd)
	return cmd
}

func mappingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Generate the cross-system code mapping table",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			outputPath, _ := cmd.Flags().GetString("output")
			return runMappings(configPath, outputPath)
		},
	}
	addRunFlags(cmd)
	return cmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to the pipeline config file")
	cmd.Flags().String("output", "", "Path to the output JSON file")
	cmd.MarkFlagRequired("config")
	cmd.MarkFlagRequired("output")
	cmd.SilenceUsage = true
}

func runLabels(configPath, outputPath string) error {
	settings, logger, err := bootstrap()
	if err != nil {
		return err
	}

	spec, err := config.LoadSpec(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load config")
		return err
	}

	reader := table.NewReader(settings.HTTPTimeout)
	svc := labels.NewService(spec, reader, logger)

	tree, err := svc.Build()
	if err != nil {
		logger.Error().Err(err).Msg("labels pipeline failed")
		return err
	}

	if err := writeArtifact(outputPath, func(f *os.File) error {
		return jsonout.WriteLabels(f, spec.Sources, tree)
	}); err != nil {
		logger.Error().Err(err).Msg("failed to write output")
		return err
	}

	logger.Info().
		Str("output", outputPath).
		Int("labels", tree.NumLabels()).
		Msg("labels artifact written")
	return nil
}

func runMappings(configPath, outputPath string) error {
	settings, logger, err := bootstrap()
	if err != nil {
		return err
	}

	spec, err := config.LoadSpec(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load config")
		return err
	}

	reader := table.NewReader(settings.HTTPTimeout)
	svc := mappings.NewService(spec, reader, logger)

	rows, err := svc.Build()
	if err != nil {
		logger.Error().Err(err).Msg("mappings pipeline failed")
		return err
	}

	if err := writeArtifact(outputPath, func(f *os.File) error {
		return jsonout.WriteMappings(f, spec.Sources, rows)
	}); err != nil {
		logger.Error().Err(err).Msg("failed to write output")
		return err
	}

	logger.Info().
		Str("output", outputPath).
		Int("mappings", len(rows)).
		Msg("mappings artifact written")
	return nil
}

// bootstrap loads runtime settings and builds the run logger, tagged with
// a fresh run id.
func bootstrap() (*config.Settings, zerolog.Logger, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("loading settings: %w", err)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if settings.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	if level, err := zerolog.ParseLevel(settings.LogLevel); err == nil {
		logger = logger.Level(level)
	}
	logger = logger.With().Str("run_id", uuid.NewString()).Logger()

	return settings, logger, nil
}

// writeArtifact creates the output file only after the pipeline has fully
// succeeded; a failed run never leaves a partial artifact behind.
func writeArtifact(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
