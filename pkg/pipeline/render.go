package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/orgmap/pkg/graph"
	"github.com/matzehuels/orgmap/pkg/render"
	"github.com/matzehuels/orgmap/pkg/render/nodelink"
	"github.com/matzehuels/orgmap/pkg/render/svg"
)

// RenderMap generates output artifacts in the requested formats without
// caching. Options must already carry render defaults.
func RenderMap(ctx context.Context, m graph.MindMap, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	// SVG is the base for PNG and PDF; render it at most once.
	var base []byte
	svgBase := func() ([]byte, error) {
		if base != nil {
			return base, nil
		}
		var err error
		base, err = renderSVG(ctx, m, opts)
		return base, err
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = svgBase()
		case FormatDOT:
			data = []byte(nodelink.ToDOT(m, nodelink.Options{}))
		case FormatPNG:
			if data, err = svgBase(); err == nil {
				data, err = render.ToPNG(ctx, data, DefaultPNGScale)
			}
		case FormatPDF:
			if data, err = svgBase(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case FormatJSON:
			data, err = graph.Marshal(m)
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func renderSVG(ctx context.Context, m graph.MindMap, opts Options) ([]byte, error) {
	if opts.Engine == EngineGraphviz {
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(m, nodelink.Options{}))
	}
	var svgOpts []svg.Option
	if opts.PanZoom {
		svgOpts = append(svgOpts, svg.WithPanZoom())
	}
	return svg.Render(m, svgOpts...), nil
}
