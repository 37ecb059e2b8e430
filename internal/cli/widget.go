// Package cli drives mod search from a terminal, for debugging and quick lookups.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/bastiangx/modsearch/pkg/search"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Loader starts the one-shot load of the search data.
type Loader interface {
	Load()
}

var (
	nameStyle    = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	creatorStyle = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#907aa9", Dark: "#c4a7e7"})
	descStyle    = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	panelStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#dfdad9", Dark: "#403d52"}).
			Padding(0, 1)
)

// Widget is a search box with a result panel below it.
// The panel is created on the first Focus, which also starts loading the data.
type Widget struct {
	index   search.Searcher
	loader  Loader
	out     io.Writer
	limit   int
	created bool
	visible bool
	results []search.Result
}

// NewWidget creates a widget rendering into out. A limit of 0 shows every result.
func NewWidget(index search.Searcher, loader Loader, out io.Writer, limit int) *Widget {
	return &Widget{index: index, loader: loader, out: out, limit: limit}
}

// Focus shows the result panel, creating it and loading the data the first time.
func (w *Widget) Focus() {
	if !w.created {
		w.created = true
		log.Debug("Creating result panel")
		if w.loader != nil {
			w.loader.Load()
		}
	}
	w.visible = true
}

// Blur hides the result panel.
func (w *Widget) Blur() {
	w.visible = false
}

// Visible reports whether the panel is shown.
func (w *Widget) Visible() bool {
	return w.visible
}

// Results returns what the panel currently holds.
func (w *Widget) Results() []search.Result {
	return w.results
}

// Input searches for text, replaces the panel contents and renders them.
func (w *Widget) Input(text string) error {
	if !w.created {
		w.Focus()
	}

	results := w.index.Search(text)
	if w.limit > 0 && len(results) > w.limit {
		results = results[:w.limit]
	}
	w.results = results

	if !w.visible {
		return nil
	}
	_, err := fmt.Fprintln(w.out, w.Render())
	return err
}

// Render draws the panel: one block per result with name, creator and description.
func (w *Widget) Render() string {
	if len(w.results) == 0 {
		switch w.index.State() {
		case search.StateLoading:
			return panelStyle.Render(descStyle.Render("loading..."))
		case search.StateFailed:
			return panelStyle.Render(descStyle.Render("search is unavailable"))
		}
		return panelStyle.Render(descStyle.Render("no mods found"))
	}

	blocks := make([]string, len(w.results))
	for i, r := range w.results {
		header := nameStyle.Render(r.Mod.Name)
		if r.Mod.Creator != "" {
			header += " " + creatorStyle.Render("by "+r.Mod.Creator)
		}
		blocks[i] = lipgloss.JoinVertical(lipgloss.Left, header, descStyle.Render(r.Mod.Description))
	}
	return panelStyle.Render(strings.Join(blocks, "\n\n"))
}
