package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgmap/pkg/graph"
	"github.com/matzehuels/orgmap/pkg/metadata"
)

// buildCommand creates the build command, which writes the positioned map
// as JSON.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		flags  pipelineFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "build [source.json|source.toml|url|-]",
		Short: "Build a positioned mind map from org metadata",
		Long: `Build a positioned mind map from org metadata.

The source is a metadata document (JSON or TOML) read from a file, from an
http(s) URL, or from stdin when given as "-". The result lists every node
with its depth and box, and every edge, as JSON.

Without -o the map is written next to the input as <name>.map.json, or to
stdout when reading stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, args[0], flags, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (\"-\" for stdout)")
	flags.registerBuild(cmd)

	return cmd
}

func (c *CLI) runBuild(cmd *cobra.Command, input string, flags pipelineFlags, output string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	src, err := c.loadSource(ctx, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	m, hit, err := runner.BuildWithCacheInfo(ctx, src, c.options(cmd, flags))
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	prog.done(fmt.Sprintf("Built map for %s", src.Organization()))

	if output == "" {
		output = mapPath(input)
	}
	if output == "-" {
		return graph.Write(cmd.OutOrStdout(), m)
	}
	if err := graph.WriteFile(m, output); err != nil {
		return err
	}

	printSuccess("Mind map built")
	printStats(len(m.Nodes), len(m.Edges), hit)
	printFile(output)
	printNextStep("Render it", fmt.Sprintf("%s render %s", appName, input))
	return nil
}

// loadSource resolves input through metadata.Load with a spinner.
func (c *CLI) loadSource(ctx context.Context, input string) (*metadata.Source, error) {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Loading %s...", input))
	spinner.Start()
	src, _, err := metadata.Load(ctx, input, os.Stdin, nil)
	spinner.Stop()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", input, err)
	}
	loggerFromContext(ctx).Debug("source loaded", "organization", src.Organization(), "records", src.RecordCount())
	return src, nil
}

// mapPath derives the default JSON output for input: "-" and URLs go to
// stdout, files get a ".map.json" sibling.
func mapPath(input string) string {
	if input == metadata.Stdin || isURL(input) {
		return "-"
	}
	return trimExt(input) + ".map.json"
}

func trimExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
