package reflections

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	journeydto "sparks/internal/modules/journey/dto"
	"sparks/internal/ui/theme"
)

type ReflectionPort interface {
	ListReflections(ctx context.Context) []journeydto.ReflectionOutput
}

type LoadedMsg struct {
	Reflections []journeydto.ReflectionOutput
}

type reflectionItem struct {
	reflection journeydto.ReflectionOutput
}

func (i reflectionItem) Title() string {
	title := i.reflection.QuestTitle
	if title == "" {
		title = i.reflection.QuestID
	}
	return title
}
func (i reflectionItem) Description() string {
	return fmt.Sprintf("%s · %s · +%d", i.reflection.CreatedAt.Local().Format("2006-01-02"), i.reflection.Mood, i.reflection.Points)
}
func (i reflectionItem) FilterValue() string {
	return i.reflection.QuestTitle + " " + i.reflection.Text
}

type Model struct {
	port   ReflectionPort
	list   list.Model
	detail viewport.Model
	width  int
	height int
}

func New(port ReflectionPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Reflections"
	l.Styles.Title = theme.Title
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	return Model{port: port, list: l, detail: vp}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload reads the cached journal; it never touches the network.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		return LoadedMsg{Reflections: m.port.ListReflections(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listW := m.width * 4 / 10
		m.list.SetSize(listW, m.height)
		m.detail.Width = m.width - listW - 4
		m.detail.Height = m.height - 4
	case LoadedMsg:
		items := make([]list.Item, len(msg.Reflections))
		for i, r := range msg.Reflections {
			items[i] = reflectionItem{reflection: r}
		}
		m.list.Title = fmt.Sprintf("Reflections (%d)", len(items))
		cmds = append(cmds, m.list.SetItems(items))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	m.detail.SetContent(m.renderDetail())
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 4 / 10
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := theme.Pane.Width(m.width - listW - 2).Height(m.height - 2).Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m Model) Selected() (journeydto.ReflectionOutput, bool) {
	if item, ok := m.list.SelectedItem().(reflectionItem); ok {
		return item.reflection, true
	}
	return journeydto.ReflectionOutput{}, false
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) renderDetail() string {
	r, ok := m.Selected()
	if !ok {
		return theme.Muted.Render("No reflections yet. Complete a quest, then press : and run reflect")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(reflectionItem{reflection: r}.Title()) + "\n")
	sb.WriteString(theme.Muted.Render(r.CreatedAt.Local().Format("Mon 2 Jan 2006 15:04")) + "\n\n")
	sb.WriteString(r.Text + "\n\n")
	sb.WriteString(theme.Muted.Render("mood:   ") + r.Mood + "\n")
	sb.WriteString(theme.Muted.Render("points: ") + theme.Spark.Render(fmt.Sprintf("+%d", r.Points)) + "\n")
	if r.PhotoURI != "" {
		sb.WriteString(theme.Muted.Render("photo:  ") + r.PhotoURI + "\n")
	}
	if r.AudioURI != "" {
		sb.WriteString(theme.Muted.Render("audio:  ") + r.AudioURI + "\n")
	}
	return sb.String()
}
