package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/parley-chat/parley/internal/core/config"
	"github.com/parley-chat/parley/internal/core/db"
	"github.com/parley-chat/parley/internal/core/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
	exportCopy   bool
)

var exportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export a session to Markdown or JSON",
	Long: `Export a session (metadata plus the full ordered message log).

By default exports Markdown to session-<id>.md in the current directory.
Use --format json for the structured document, --output for a custom
path, or --copy to place the result on the clipboard instead.

The Markdown layout can be customized via
~/.config/parley/export_template.txt (mustache syntax).

Examples:
  parley export 42
  parley export 42 --format json --output backup.json
  parley export 42 --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runExportCmd,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "markdown", "Output format: markdown or json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().BoolVar(&exportCopy, "copy", false, "Copy to clipboard instead of writing a file")
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	id, err := parseSessionID(args[0])
	if err != nil {
		return err
	}

	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = database.Close()
	}()

	var content string
	var ext string

	switch exportFormat {
	case "json":
		doc, err := export.Structured(database, id)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		if doc == nil {
			return fmt.Errorf("session %d not found", id)
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
		content = string(data)
		ext = "json"

	case "markdown", "md":
		cfg, _ := config.Load()
		rendered, err := export.MarkdownWithTemplate(database, id, cfg.ExportTemplate)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		if rendered == "" {
			return fmt.Errorf("session %d not found", id)
		}
		content = rendered
		ext = "md"

	default:
		return fmt.Errorf("unknown format %q (want markdown or json)", exportFormat)
	}

	if exportCopy {
		if err := clipboard.WriteAll(content); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Printf("Copied session %d export to clipboard\n", id)
		return nil
	}

	outputPath := exportOutput
	if outputPath == "" {
		outputPath = fmt.Sprintf("session-%d.%s", id, ext)
	}
	if !filepath.IsAbs(outputPath) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		outputPath = filepath.Join(cwd, outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Printf("Exported session to: %s\n", outputPath)
	return nil
}
