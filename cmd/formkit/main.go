// Command formkit manages form definitions from the terminal: create, lint,
// import, export, render, and serve them for preview.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit"
	"github.com/goliatone/go-formkit/pkg/builder"
	"github.com/goliatone/go-formkit/pkg/importer"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/react"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/store"
	"github.com/goliatone/go-formkit/pkg/validation"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func newRootCommand() *cobra.Command {
	var dir string
	var verbose bool

	root := &cobra.Command{
		Use:           "formkit",
		Short:         "Schema-driven form toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().StringVar(&dir, "dir", "./forms", "directory holding form definitions")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newNewCommand(&dir),
		newListCommand(&dir),
		newValidateCommand(&dir),
		newImportCommand(&dir),
		newExportCommand(&dir),
		newRenderCommand(&dir),
		newFillCommand(&dir),
		newServeCommand(&dir),
	)
	return root
}

func openStore(dir string) (*store.Store, error) {
	return store.New(dir)
}

func newNewCommand(dir *string) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a starter form definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openStore(*dir)
			if err != nil {
				return err
			}

			def := builder.Starter()
			if title != "" {
				b := builder.FromDefinition(def)
				b.SetTitle(title)
				def = b.Definition()
			}
			if err := s.Save(def); err != nil {
				return err
			}
			logrus.WithField("id", def.ID).Info("definition created")
			fmt.Fprintln(cmd.OutOrStdout(), def.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "form title")
	return cmd
}

func newListCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored form definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openStore(*dir)
			if err != nil {
				return err
			}
			ids, err := s.List()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newValidateCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <id>",
		Short: "Lint a form definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(*dir)
			if err != nil {
				return err
			}
			def, err := s.Load(args[0])
			if err != nil {
				return err
			}

			result := validation.ValidateDefinition(def)
			for _, issue := range result.Issues {
				if issue.Field != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", issue.Field, issue.Message)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), issue.Message)
			}
			if !result.Valid {
				return fmt.Errorf("definition %q has %d issue(s)", args[0], len(result.Issues))
			}
			logrus.WithField("id", args[0]).Debug("definition is clean")
			return nil
		},
	}
}

func newImportCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <schema-file>",
		Short: "Import a JSON Schema document as a form definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(*dir)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			def, err := importer.New().Import(cmd.Context(), data)
			if err != nil {
				return err
			}
			if err := s.Save(def); err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{"id": def.ID, "fields": len(def.Fields)}).Info("definition imported")
			fmt.Fprintln(cmd.OutOrStdout(), def.ID)
			return nil
		},
	}
}

func newExportCommand(dir *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export artifacts derived from a definition",
	}
	cmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	cmd.AddCommand(&cobra.Command{
		Use:   "schema <id>",
		Short: "Export the projected JSON Schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(*dir)
			if err != nil {
				return err
			}
			def, err := s.Load(args[0])
			if err != nil {
				return err
			}
			payload, err := formkit.ToJSONSchema(def)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, append(payload, '\n'))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "component <id>",
		Short: "Export standalone component source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(*dir)
			if err != nil {
				return err
			}
			def, err := s.Load(args[0])
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, react.New().Source(def))
		},
	})

	return cmd
}

func newRenderCommand(dir *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render <id>",
		Short: "Render a definition as an HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(*dir)
			if err != nil {
				return err
			}
			def, err := s.Load(args[0])
			if err != nil {
				return err
			}
			page, err := formkit.Generate(cmd.Context(), def, "html", formkit.RenderOptions{})
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, page)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func newFillCommand(dir *string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "fill <id>",
		Short: "Fill a form interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(*dir)
			if err != nil {
				return err
			}
			def, err := s.Load(args[0])
			if err != nil {
				return err
			}

			renderer := tui.New(tui.WithOutputFormat(tui.OutputFormat(format)))
			payload, err := renderer.Render(cmd.Context(), def, render.RenderOptions{})
			if errors.Is(err, tui.ErrAborted) {
				logrus.Warn("aborted")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(payload))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatJSON), "output format: json, form, or pretty")
	return cmd
}

func writeOutput(cmd *cobra.Command, path string, payload []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(payload)
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logrus.WithField("path", path).Info("artifact written")
	return nil
}

// commandContext exists so serve can honor Ctrl+C through cobra's context.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
