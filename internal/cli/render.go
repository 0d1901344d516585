package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgmap/pkg/pipeline"
)

// defaultBase names outputs when the source has no file name (stdin, URL).
const defaultBase = "mindmap"

// renderCommand creates the render command: source to artifacts in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  pipelineFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "render [source.json|source.toml|url|-]",
		Short: "Render a mind map to SVG, DOT, PNG, PDF or JSON",
		Long: `Render a mind map to SVG, DOT, PNG, PDF or JSON.

The native engine draws the positioned boxes and elbow connectors directly;
the graphviz engine pins the same positions in DOT and lets Graphviz draw
them. PNG and PDF are converted from the SVG and need rsvg-convert.

Results are cached locally for faster subsequent runs.

Examples:
  orgmap render acme.json
  orgmap render acme.json -f svg,png -o out/acme
  orgmap render acme.json -f dot --engine graphviz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, flags)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateEngine(opts.Engine); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], opts, flags.noCache, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	flags.registerBuild(cmd)
	flags.registerRender(cmd)

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts pipeline.Options, noCache bool, output string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	src, err := c.loadSource(ctx, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()
	result, err := runner.Execute(ctx, src, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	logger.Debug("pipeline finished",
		"build", result.Stats.BuildTime,
		"render", result.Stats.RenderTime,
		"build_cached", result.CacheInfo.BuildHit,
		"render_cached", result.CacheInfo.RenderHit)

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		nodes:     result.Stats.NodeCount,
		edges:     result.Stats.EdgeCount,
		cacheHit:  result.CacheInfo.BuildHit && result.CacheInfo.RenderHit,
	})
}

// =============================================================================
// Output
// =============================================================================

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	nodes     int
	edges     int
	cacheHit  bool
}

// writeArtifacts writes one file per format and prints a summary.
func writeArtifacts(p artifactWriteParams) error {
	paths := outputPaths(p.formats, p.input, p.output)
	for _, format := range p.formats {
		path := paths[format]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	printSuccess("Rendered %s", strings.Join(p.formats, ", "))
	printStats(p.nodes, p.edges, p.cacheHit)
	for _, format := range p.formats {
		printFile(paths[format])
	}
	return nil
}

// outputPaths maps each format to its file. A single format with an
// explicit output path is written there as is; otherwise the base path
// gets one extension per format.
func outputPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		p := base + "." + f
		if p == input {
			p = base + ".map." + f
		}
		paths[f] = p
	}
	return paths
}

// basePath strips a known format extension from output, or derives a base
// from the input file name.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" || isURL(input) {
			return defaultBase
		}
		return trimExt(input)
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
