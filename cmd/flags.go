package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pagewright/pagewright/internal/types"
)

// styleModeValue is a pflag.Value that only accepts valid style modes, so
// bad input fails at flag parse time instead of deep in the pipeline.
type styleModeValue struct {
	mode *string
}

var _ pflag.Value = (*styleModeValue)(nil)

func (v *styleModeValue) String() string {
	if v.mode == nil {
		return ""
	}
	return *v.mode
}

func (v *styleModeValue) Set(val string) error {
	val = strings.ToLower(val)
	if !types.StyleMode(val).Valid() {
		return fmt.Errorf("style mode %q is not one of embedded, external, inline", val)
	}
	*v.mode = val
	return nil
}

func (v *styleModeValue) Type() string { return "styleMode" }

// addCodeFlags registers generation flags shared by preview and publish.
func addCodeFlags(cmd *cobra.Command) {
	mode := string(types.StyleModeExternal)
	cmd.Flags().Var(&styleModeValue{mode: &mode}, "style-mode",
		"stylesheet placement (embedded, external, inline)")
	cmd.Flags().Bool("minify", false, "minify the generated stylesheet")
	cmd.Flags().Bool("compact", false, "emit compact markup without indentation")
}

// applyCodeFlags overrides config-derived options with flags the user
// actually passed; untouched flags defer to the config file and environment.
func applyCodeFlags(cmd *cobra.Command, opts *types.CodeOptions) {
	if cmd.Flags().Changed("style-mode") {
		opts.StyleMode = types.StyleMode(cmd.Flags().Lookup("style-mode").Value.String())
	}
	if cmd.Flags().Changed("minify") {
		minify, _ := cmd.Flags().GetBool("minify")
		opts.MinifyStylesheet = minify
	}
	if compact, _ := cmd.Flags().GetBool("compact"); compact {
		opts.PrettyPrint = false
	}
}
