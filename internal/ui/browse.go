package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/k4tool/internal/listing"
)

// Patch categories shown as tabs
const (
	categorySingle = iota
	categoryMulti
	categoryCount
)

var categoryNames = [categoryCount]string{"SINGLE", "MULTI"}

// BrowseSelection is the patch chosen with enter
type BrowseSelection struct {
	Category string
	Label    string
	Name     string
}

// String returns e.g. "SINGLE A-1 NAME"
func (s BrowseSelection) String() string {
	return fmt.Sprintf("%s %s %s", s.Category, s.Label, strings.TrimRight(s.Name, " "))
}

// patchItem wraps a listing entry for use with bubbles/list
type patchItem struct {
	category string
	entry    listing.Entry
}

// FilterValue implements list.Item; filters on label and name
func (p patchItem) FilterValue() string {
	return p.entry.Label + " " + p.entry.Name
}

// Title is the patch name
func (p patchItem) Title() string {
	return fmt.Sprintf("%-5s %s", p.entry.Label, p.entry.Name)
}

// Description is the category and slot
func (p patchItem) Description() string {
	return strings.ToLower(p.category) + " patch"
}

// browseKeyMap defines key bindings for the browse screen
type browseKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Filter key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Filter, k.Select, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Switch},
		{k.Filter, k.Select, k.Quit},
	}
}

func newBrowseKeyMap() browseKeyMap {
	return browseKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "singles/multis"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BrowseModel is a bubbletea model listing the patches of a bank dump,
// one tab per category, with filtering.
type BrowseModel struct {
	Title    string
	Lists    [categoryCount]list.Model
	Active   int
	Selected *BrowseSelection

	Width  int
	Height int
	Help   help.Model
	Keys   browseKeyMap
}

// NewBrowseModel creates the browse model for a listing
func NewBrowseModel(l *listing.Listing) BrowseModel {
	entries := [categoryCount][]listing.Entry{l.Singles, l.Multis}

	width, height := GetTerminalSize()

	var lists [categoryCount]list.Model
	for c := range lists {
		items := make([]list.Item, len(entries[c]))
		for i, e := range entries[c] {
			items[i] = patchItem{category: categoryNames[c], entry: e}
		}

		delegate := list.NewDefaultDelegate()
		delegate.ShowDescription = false
		delegate.SetSpacing(0)

		lst := list.New(items, delegate, width-4, height-4)
		lst.Title = fmt.Sprintf("%s  %s patches", l.Title, categoryNames[c])
		lst.Styles.Title = BrowseTitleStyle
		lst.SetShowHelp(false)
		lst.SetFilteringEnabled(true)
		lists[c] = lst
	}

	return BrowseModel{
		Title:  l.Title,
		Lists:  lists,
		Width:  width,
		Height: height,
		Help:   help.New(),
		Keys:   newBrowseKeyMap(),
	}
}

// Init implements tea.Model
func (m BrowseModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		for c := range m.Lists {
			m.Lists[c].SetSize(msg.Width-4, msg.Height-5) // Leave room for tabs, status and help
		}
		return m, nil

	case tea.KeyMsg:
		// Keys go to the filter input while it is open
		if m.Lists[m.Active].SettingFilter() {
			break
		}

		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.Keys.Switch):
			m.Active = (m.Active + 1) % categoryCount
			return m, nil

		case key.Matches(msg, m.Keys.Select):
			if item, ok := m.Lists[m.Active].SelectedItem().(patchItem); ok {
				m.Selected = &BrowseSelection{
					Category: item.category,
					Label:    item.entry.Label,
					Name:     item.entry.Name,
				}
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.Lists[m.Active], cmd = m.Lists[m.Active].Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m BrowseModel) View() string {
	tabs := make([]string, categoryCount)
	for c := range tabs {
		style := TabStyle
		if c == m.Active {
			style = ActiveTabStyle
		}
		tabs[c] = style.Render(categoryNames[c])
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		m.Lists[m.Active].View(),
		m.status(),
		m.Help.View(m.Keys),
	)
}

// status shows the highlighted patch
func (m BrowseModel) status() string {
	item, ok := m.Lists[m.Active].SelectedItem().(patchItem)
	if !ok {
		return StatusStyle.Render("no match")
	}
	return StatusStyle.Render(fmt.Sprintf("%s %s  %s", item.category, item.entry.Label, item.entry.Name))
}

// RunBrowser runs the browse screen until the user quits or selects a
// patch. The selection is nil when the user quit.
func RunBrowser(l *listing.Listing) (*BrowseSelection, error) {
	final, err := tea.NewProgram(NewBrowseModel(l), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, fmt.Errorf("browse failed: %w", err)
	}
	if m, ok := final.(BrowseModel); ok {
		return m.Selected, nil
	}
	return nil, nil
}
