package main

import (
	"flag"
	"fmt"
	"os"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/midbel/xmltok/exchange"
	"github.com/midbel/xmltok/token"
)

// BrowseCmd opens an interactive pager over every fragment a selector
// path matches, one fragment per screen, navigable with the arrow
// keys. Unlike TokenizeCmd it must see every match before it can page
// backward, so it drains the cursor up front instead of streaming.
type BrowseCmd struct {
	Namespaces map[string]string
	Inject     bool
	Charset    string
}

func (b BrowseCmd) Run(args []string) error {
	set := flag.NewFlagSet("browse", flag.ContinueOnError)
	set.BoolVar(&b.Inject, "inject", false, "inject inherited namespaces into the matched element instead of wrapping its ancestors")
	set.StringVar(&b.Charset, "charset", "", "declared charset of the input (default UTF-8)")
	set.Func("ns", "prefix=uri namespace binding, repeatable", func(arg string) error {
		m, err := parseNamespaceFlag(b.Namespaces, arg)
		b.Namespaces = m
		return err
	})
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() < 1 {
		return fmt.Errorf("browse: missing selector path")
	}
	path := set.Arg(0)

	r, err := openInput(set.Arg(1))
	if err != nil {
		return err
	}
	defer r.Close()

	mode := token.ModeWrap
	if b.Inject {
		mode = token.ModeInject
	}
	expr := exchange.NewExpression(path,
		exchange.WithNamespaces(b.Namespaces),
		exchange.WithMode(mode),
	)
	cur, err := expr.Evaluate(exchange.New(r).WithCharset(b.Charset))
	if err != nil {
		return err
	}
	defer cur.Close()

	var fragments []string
	for {
		frag, ok := cur.Next()
		if !ok {
			break
		}
		fragments = append(fragments, frag)
	}
	if err := cur.Err(); err != nil {
		return err
	}
	if len(fragments) == 0 {
		fmt.Fprintf(os.Stderr, "no fragment matched %q\n", path)
		return errFail
	}

	_, err = tea.NewProgram(newBrowseModel(path, fragments)).Run()
	return err
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230"))
	footerStyle = lipgloss.NewStyle().
			Faint(true).
			Padding(0, 1)
)

// browseModel is the standard bubbletea viewport-pager shape - a
// header, a scrollable viewport, a footer - adapted to step through a
// slice of already-matched fragments instead of a single file's
// content.
type browseModel struct {
	path      string
	fragments []string
	index     int
	viewport  viewport.Model
	ready     bool
}

func newBrowseModel(path string, fragments []string) *browseModel {
	return &browseModel{path: path, fragments: fragments}
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := lipgloss.Height(m.footerView())
		margin := headerHeight + footerHeight
		if !m.ready {
			m.viewport = viewport.New(viewport.WithWidth(msg.Width), viewport.WithHeight(msg.Height-margin))
			m.ready = true
		} else {
			m.viewport.SetWidth(msg.Width)
			m.viewport.SetHeight(msg.Height - margin)
		}
		m.viewport.SetContent(m.fragments[m.index])
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "n", "l":
			m.step(1)
		case "left", "p", "h":
			m.step(-1)
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *browseModel) step(delta int) {
	next := m.index + delta
	if next < 0 || next >= len(m.fragments) {
		return
	}
	m.index = next
	m.viewport.SetContent(m.fragments[m.index])
	m.viewport.GotoTop()
}

func (m *browseModel) headerView() string {
	return headerStyle.Render(fmt.Sprintf("%s - match %d/%d", m.path, m.index+1, len(m.fragments)))
}

func (m *browseModel) footerView() string {
	return footerStyle.Render("left/right navigate - q quit")
}

func (m *browseModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if !m.ready {
		v.SetContent("\n  loading...\n")
		return v
	}
	v.SetContent(m.headerView() + "\n" + m.viewport.View() + "\n" + m.footerView())
	return v
}
