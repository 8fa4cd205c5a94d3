package app

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"whiteboardLabeler/configs"
	"whiteboardLabeler/internal/services"
)

// NewRootCommand builds the labeler CLI. Running it without a subcommand
// serves the API.
func NewRootCommand() *cobra.Command {
	var configFile string

	// load builds the App for one command invocation.
	load := func(cmd *cobra.Command) (*App, error) {
		config, err := configs.Load(configFile)
		if err != nil {
			return nil, err
		}
		return NewApp(cmd.Context(), config)
	}

	serve := func(cmd *cobra.Command, _ []string) error {
		app, err := load(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		return app.LetsGo()
	}

	root := &cobra.Command{
		Use:           "labeler",
		Short:         "Whiteboard labeling backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to config file (default: ./config.yaml or ./configs/config.yaml)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the REST API",
			Args:  cobra.NoArgs,
			RunE:  serve,
		},
		newImportCommand(load),
		newResetCommand(load),
		newExportCommand(load),
	)
	return root
}

func newImportCommand(load func(*cobra.Command) (*App, error)) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import whiteboards from a CSV with id,image_url columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			in, err := os.Open(file)
			if err != nil {
				return err
			}
			defer in.Close()

			imported, err := services.NewImportService(app.Store(), app.Logger()).ImportCSV(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d whiteboards\n", imported)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "data/whiteboards.csv", "CSV file to import")
	return cmd
}

func newResetCommand(load func(*cobra.Command) (*App, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Mark every whiteboard incomplete and clear its contractor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := services.NewImportService(app.Store(), app.Logger()).Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "whiteboards reset")
			return nil
		},
	}
}

func newExportCommand(load func(*cobra.Command) (*App, error)) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every chunk as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			content, err := services.NewExportService(app.Store(), nil, app.Logger()).ExportCSV(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(content)
				return err
			}
			if err := os.WriteFile(out, content, 0o644); err != nil {
				return err
			}
			app.Logger().Info("export written", zap.String("file", out), zap.Int("bytes", len(content)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", services.ExportFileName, "output file, - for stdout")
	return cmd
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "labeler:", err)
		os.Exit(1)
	}
}
