package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// publishCmd compiles a document and persists the result.
var publishCmd = &cobra.Command{
	Use:   "publish <document>",
	Short: "Compile a document, persist its artifacts, and mark it published",
	Long: `Publish runs the full pipeline and, on success, stores the generated
files in the database, records the publish time, and writes them to the
output directory. A failed compilation persists nothing and leaves the
previously published artifacts in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
	addCodeFlags(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	opts := rt.cfg.CodeOptions()
	applyCodeFlags(cmd, &opts)

	result, err := rt.newPipeline(opts).CompileAndPersist(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	reportProblems(result)
	if !result.OK() {
		return fmt.Errorf("publish aborted: %d validation error(s)", len(result.Errors))
	}

	if err := writeFiles(rt.cfg.Output.Dir, result.Files); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Published %d file(s) to %s in %s\n",
		len(result.Files), rt.cfg.Output.Dir, result.Duration.Round(time.Millisecond))
	return nil
}
