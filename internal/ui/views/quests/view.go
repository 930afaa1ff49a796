package quests

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	journeydto "sparks/internal/modules/journey/dto"
	"sparks/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type QuestPort interface {
	ListQuests(ctx context.Context, questType, difficulty string, completedOnly, pendingOnly bool) ([]journeydto.QuestOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Quests []journeydto.QuestOutput
	Err    error
}

// ─── filters ─────────────────────────────────────────────────────────────────

var typeFilters = []string{"all", "self-reflection", "mindfulness", "creativity", "social", "adventure", "wellness"}
var difficultyFilters = []string{"all", "easy", "medium", "hard"}

// ─── list item ───────────────────────────────────────────────────────────────

type questItem struct {
	quest journeydto.QuestOutput
}

func (i questItem) Title() string {
	if i.quest.Completed {
		return "✓ " + i.quest.Title
	}
	return i.quest.Title
}
func (i questItem) Description() string {
	return fmt.Sprintf("%s · %s · %d pts", i.quest.Type, i.quest.Difficulty, i.quest.Points)
}
func (i questItem) FilterValue() string { return i.quest.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port          QuestPort
	list          list.Model
	detail        viewport.Model
	spinner       spinner.Model
	loading       bool
	typeIdx       int
	difficultyIdx int
	width         int
	height        int
}

func New(port QuestPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Quests"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, detail: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload re-reads the quest list with the current filters.
func (m Model) Reload() tea.Cmd {
	questType := typeFilters[m.typeIdx]
	difficulty := difficultyFilters[m.difficultyIdx]
	return func() tea.Msg {
		quests, err := m.port.ListQuests(context.Background(), questType, difficulty, false, false)
		return LoadedMsg{Quests: quests, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Quests: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = fmt.Sprintf("Quests [%s / %s]", typeFilters[m.typeIdx], difficultyFilters[m.difficultyIdx])
		items := make([]list.Item, len(msg.Quests))
		for i, q := range msg.Quests {
			items[i] = questItem{quest: q}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case tea.KeyMsg:
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "f":
				m.typeIdx = (m.typeIdx + 1) % len(typeFilters)
				return m, m.Reload()
			case "d":
				m.difficultyIdx = (m.difficultyIdx + 1) % len(difficultyFilters)
				return m, m.Reload()
			}
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		m.detail.SetContent(m.renderDetail())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.spinner.View()+" Loading quests…")
	}
	listW := m.width * 5 / 10
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := theme.Pane.Width(m.width - listW - 2).Height(m.height - 2).Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Selected returns the highlighted quest.
func (m Model) Selected() (journeydto.QuestOutput, bool) {
	if item, ok := m.list.SelectedItem().(questItem); ok {
		return item.quest, true
	}
	return journeydto.QuestOutput{}, false
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 5 / 10
	m.list.SetSize(listW, m.height)
	m.detail.Width = m.width - listW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderDetail() string {
	q, ok := m.Selected()
	if !ok {
		return theme.Muted.Render("No quests match the current filters")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(q.Title) + "\n\n")
	sb.WriteString(q.Description + "\n\n")
	sb.WriteString(theme.Muted.Render("type:       ") + q.Type + "\n")
	sb.WriteString(theme.Muted.Render("difficulty: ") + q.Difficulty + "\n")
	sb.WriteString(theme.Muted.Render("duration:   ") + q.Duration + "\n")
	sb.WriteString(fmt.Sprintf("%s%d\n", theme.Muted.Render("points:     "), q.Points))
	if len(q.Instructions) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Steps") + "\n")
		for i, step := range q.Instructions {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
		}
	}
	if q.Completed {
		done := "completed"
		if q.CompletedAt != nil {
			done += " " + q.CompletedAt.Local().Format("2006-01-02 15:04")
		}
		sb.WriteString("\n" + theme.Good.Render(done) + "\n")
		sb.WriteString(theme.Muted.Render("r: reflect on this quest"))
	} else {
		sb.WriteString("\n" + theme.Muted.Render("c: complete  f: type filter  d: difficulty filter"))
	}
	return sb.String()
}
