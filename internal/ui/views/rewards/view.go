package rewards

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	journeydto "sparks/internal/modules/journey/dto"
	"sparks/internal/ui/theme"
)

type RewardPort interface {
	ListRewards(ctx context.Context) []journeydto.RewardOutput
	Overview(ctx context.Context) (journeydto.OverviewOutput, error)
}

type LoadedMsg struct {
	Rewards []journeydto.RewardOutput
	Points  int
}

type rewardItem struct {
	reward journeydto.RewardOutput
}

func (i rewardItem) Title() string {
	switch {
	case i.reward.Redeemed:
		return "★ " + i.reward.Title
	case !i.reward.Unlocked:
		return "🔒 " + i.reward.Title
	}
	return i.reward.Title
}
func (i rewardItem) Description() string {
	return fmt.Sprintf("%s · %d pts", i.reward.Type, i.reward.Cost)
}
func (i rewardItem) FilterValue() string { return i.reward.Title }

type Model struct {
	port   RewardPort
	list   list.Model
	bar    progress.Model
	points int
	width  int
	height int
}

func New(port RewardPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Rewards"
	l.Styles.Title = theme.Title
	l.SetShowHelp(false)

	bar := progress.New(progress.WithGradient(string(theme.Peach), string(theme.Yellow)), progress.WithoutPercentage())
	return Model{port: port, list: l, bar: bar}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		msg := LoadedMsg{Rewards: m.port.ListRewards(ctx)}
		if overview, err := m.port.Overview(ctx); err == nil {
			msg.Points = overview.Standing.SparkPoints
		}
		return msg
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width/2, m.height)
		m.bar.Width = m.width/2 - 8
	case LoadedMsg:
		m.points = msg.Points
		items := make([]list.Item, len(msg.Rewards))
		for i, r := range msg.Rewards {
			items[i] = rewardItem{reward: r}
		}
		m.list.Title = fmt.Sprintf("Rewards · %d ✦", msg.Points)
		cmds = append(cmds, m.list.SetItems(items))
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listPane := lipgloss.NewStyle().Width(m.width / 2).Height(m.height).Render(m.list.View())
	detailPane := theme.Pane.Width(m.width - m.width/2 - 2).Height(m.height - 2).Render(m.renderDetail())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m Model) Selected() (journeydto.RewardOutput, bool) {
	if item, ok := m.list.SelectedItem().(rewardItem); ok {
		return item.reward, true
	}
	return journeydto.RewardOutput{}, false
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) renderDetail() string {
	r, ok := m.Selected()
	if !ok {
		return theme.Muted.Render("No rewards available")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(r.Title) + "\n\n")
	sb.WriteString(r.Description + "\n\n")
	sb.WriteString(fmt.Sprintf("%s%d / %d\n", theme.Muted.Render("points: "), m.points, r.Cost))
	ratio := 1.0
	if r.Cost > 0 {
		ratio = float64(m.points) / float64(r.Cost)
	}
	sb.WriteString(m.bar.ViewAs(min(ratio, 1)) + "\n\n")
	switch {
	case r.Redeemed:
		sb.WriteString(theme.Good.Render("redeemed"))
	case !r.Unlocked:
		sb.WriteString(theme.Muted.Render("locked"))
	case m.points < r.Cost:
		sb.WriteString(theme.Hot.Render(fmt.Sprintf("%d more points needed", r.Cost-m.points)))
	default:
		sb.WriteString(theme.Spark.Render("enter: redeem"))
	}
	return sb.String()
}
