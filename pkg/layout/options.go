package layout

import "github.com/matzehuels/orgmap/pkg/errors"

// Anchor selects which point of a node's box a position refers to.
type Anchor string

const (
	AnchorTopLeft Anchor = "top-left"
	AnchorCenter  Anchor = "center"
)

// Default spacing, in SVG user units.
const (
	DefaultRankSeparation = 100.0
	DefaultNodeSeparation = 80.0
	DefaultNodeWidth      = 200.0
	DefaultNodeHeight     = 80.0
)

// Options controls spacing and the anchor convention. Zero values are
// replaced by the defaults.
type Options struct {
	RankSeparation float64 `json:"rank_separation,omitempty" toml:"rank_separation"`
	NodeSeparation float64 `json:"node_separation,omitempty" toml:"node_separation"`
	NodeWidth      float64 `json:"node_width,omitempty" toml:"node_width"`
	NodeHeight     float64 `json:"node_height,omitempty" toml:"node_height"`
	Anchor         Anchor  `json:"anchor,omitempty" toml:"anchor"`
}

// DefaultOptions returns the standard 200x80 boxes, 100 rank separation,
// 80 node separation and top-left anchor.
func DefaultOptions() Options {
	return Options{
		RankSeparation: DefaultRankSeparation,
		NodeSeparation: DefaultNodeSeparation,
		NodeWidth:      DefaultNodeWidth,
		NodeHeight:     DefaultNodeHeight,
		Anchor:         AnchorTopLeft,
	}
}

// WithDefaults returns a copy with zero fields filled in.
func (o Options) WithDefaults() Options {
	if o.RankSeparation == 0 {
		o.RankSeparation = DefaultRankSeparation
	}
	if o.NodeSeparation == 0 {
		o.NodeSeparation = DefaultNodeSeparation
	}
	if o.NodeWidth == 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.NodeHeight == 0 {
		o.NodeHeight = DefaultNodeHeight
	}
	if o.Anchor == "" {
		o.Anchor = AnchorTopLeft
	}
	return o
}

// Validate rejects negative sizes and unknown anchors.
func (o Options) Validate() error {
	if o.RankSeparation < 0 || o.NodeSeparation < 0 || o.NodeWidth < 0 || o.NodeHeight < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout sizes must not be negative")
	}
	switch o.Anchor {
	case "", AnchorTopLeft, AnchorCenter:
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown anchor %q (want %q or %q)", o.Anchor, AnchorTopLeft, AnchorCenter)
	}
}
