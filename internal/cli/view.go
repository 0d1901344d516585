package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orgmap/pkg/graph"
)

// Tree styles
var (
	treeSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	treeRootStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	treeCategoryStyle = lipgloss.NewStyle().Foreground(colorGreen)
	treeItemStyle     = lipgloss.NewStyle().Foreground(colorWhite)
	treeDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// viewCommand creates the interactive tree browser.
func (c *CLI) viewCommand() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "view [source.json|map.json|url|-]",
		Short: "Browse a mind map in the terminal",
		Long: `Browse a mind map in the terminal.

The input is either a metadata source, which is built first, or a map
written by 'build' (*.map.json). Categories expand and collapse in place.

Keys: ↑/↓ or j/k move, enter/space toggle, ←/→ collapse/expand, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.loadMap(cmd, args[0], flags)
			if err != nil {
				return err
			}
			if m.IsEmpty() {
				printWarning("Map is empty")
				return nil
			}
			p := tea.NewProgram(NewTreeModel(m), tea.WithContext(cmd.Context()), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	flags.registerBuild(cmd)
	return cmd
}

// loadMap reads a built map directly or builds one from a source.
func (c *CLI) loadMap(cmd *cobra.Command, input string, flags pipelineFlags) (graph.MindMap, error) {
	if strings.HasSuffix(input, ".map.json") {
		return graph.ReadFile(input)
	}
	ctx := cmd.Context()
	src, err := c.loadSource(ctx, input)
	if err != nil {
		return graph.MindMap{}, err
	}
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return graph.MindMap{}, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	return runner.Build(ctx, src, c.options(cmd, flags))
}

// =============================================================================
// TreeModel - Interactive map browser
// =============================================================================

type treeRow struct {
	node    graph.Node
	level   int
	hasKids bool
}

// TreeModel is the bubbletea model for browsing a map as a collapsible tree.
type TreeModel struct {
	Map      graph.MindMap
	Expanded map[string]bool
	Cursor   int
	Offset   int
	Height   int

	rows []treeRow
}

// NewTreeModel creates a tree model with the top level expanded.
func NewTreeModel(m graph.MindMap) TreeModel {
	t := TreeModel{
		Map:      m,
		Expanded: make(map[string]bool),
		Height:   20,
	}
	for _, n := range m.Nodes {
		if n.Depth == 0 {
			t.Expanded[n.ID] = true
		}
	}
	t.rows = t.flatten()
	return t
}

// flatten lists the visible rows in depth-first, edge order.
func (m TreeModel) flatten() []treeRow {
	var rows []treeRow
	var walk func(n graph.Node, level int)
	walk = func(n graph.Node, level int) {
		kids := m.Map.Children(n.ID)
		rows = append(rows, treeRow{node: n, level: level, hasKids: len(kids) > 0})
		if !m.Expanded[n.ID] {
			return
		}
		for _, k := range kids {
			walk(k, level+1)
		}
	}
	for _, n := range m.Map.Nodes {
		if n.Depth == 0 {
			walk(n, 0)
		}
	}
	return rows
}

func (m TreeModel) Init() tea.Cmd {
	return nil
}

func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "enter", " ":
			m.setExpanded(!m.Expanded[m.current().node.ID])
		case "right", "l":
			m.setExpanded(true)
		case "left", "h":
			m.setExpanded(false)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.scroll()
	}
	return m, nil
}

func (m *TreeModel) current() treeRow {
	if len(m.rows) == 0 {
		return treeRow{}
	}
	return m.rows[m.Cursor]
}

func (m *TreeModel) move(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.rows)-1)
	m.scroll()
}

func (m *TreeModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m *TreeModel) setExpanded(open bool) {
	row := m.current()
	if !row.hasKids {
		return
	}
	m.Expanded[row.node.ID] = open
	m.rows = m.flatten()
	m.Cursor = min(m.Cursor, len(m.rows)-1)
	m.scroll()
}

func (m TreeModel) View() string {
	var b strings.Builder

	title := "Org Map"
	if m.Map.Organization != "" {
		title += " · " + m.Map.Organization
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(treeDimStyle.Render("↑/↓ navigate  ⏎ toggle  ←/→ collapse/expand  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.rows))
	for i := m.Offset; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if row := m.current(); row.node.ID != "" {
		n := row.node
		b.WriteString(treeDimStyle.Render(fmt.Sprintf("  %s · %s · depth %d · (%.0f, %.0f) %.0f×%.0f",
			n.ID, n.Kind, n.Depth, n.X, n.Y, n.Width, n.Height)))
		b.WriteString("\n")
	}
	b.WriteString(treeDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d nodes", m.Cursor+1, len(m.rows), len(m.Map.Nodes))))

	return b.String()
}

func (m TreeModel) renderRow(i int) string {
	row := m.rows[i]
	marker := "  "
	if row.hasKids {
		marker = "▸ "
		if m.Expanded[row.node.ID] {
			marker = "▾ "
		}
	}
	cursor := "  "
	if i == m.Cursor {
		cursor = "› "
	}
	label := strings.ReplaceAll(row.node.Label, "\n", " ")
	line := cursor + strings.Repeat("  ", row.level) + marker + label

	if i == m.Cursor {
		return treeSelectedStyle.Render(line)
	}
	switch row.node.Kind {
	case "root":
		return treeRootStyle.Render(line)
	case "category":
		return treeCategoryStyle.Render(line)
	case "overflow":
		return treeDimStyle.Render(line)
	default:
		return treeItemStyle.Render(line)
	}
}
