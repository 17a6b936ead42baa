package cmd

import (
	"archive/zip"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pagewright/pagewright/internal/types"
)

var previewArchive string

// previewCmd compiles a document without touching stored artifacts.
var previewCmd = &cobra.Command{
	Use:   "preview <document>",
	Short: "Compile a document to the output directory without publishing",
	Long: `Preview replays a document's event log, compiles it, and writes the
generated files to the output directory. Stored artifacts and the publish
timestamp are left untouched; use 'publish' for that.

Examples:
  pagewright preview my-site
  pagewright preview my-site --archive site.zip`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringVar(&previewArchive, "archive", "", "also write the artifacts to a zip archive")
	addCodeFlags(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	opts := rt.cfg.CodeOptions()
	applyCodeFlags(cmd, &opts)

	result, err := rt.newPipeline(opts).CompileDocument(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	reportProblems(result)
	if !result.OK() {
		return fmt.Errorf("compilation failed with %d error(s)", len(result.Errors))
	}

	if err := writeFiles(rt.cfg.Output.Dir, result.Files); err != nil {
		return err
	}
	if previewArchive != "" {
		if err := writeArchive(previewArchive, result.Files); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Compiled %d file(s) to %s in %s\n",
		len(result.Files), rt.cfg.Output.Dir, result.Duration.Round(time.Millisecond))
	return nil
}

// writeArchive packs the artifacts into a single zip for handoff.
func writeArchive(path string, files []types.File) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, f := range files {
		w, err := zw.Create(f.Path)
		if err != nil {
			return fmt.Errorf("archive %s: %w", f.Path, err)
		}
		if _, err := w.Write([]byte(f.Content)); err != nil {
			return fmt.Errorf("archive %s: %w", f.Path, err)
		}
	}
	return zw.Close()
}
