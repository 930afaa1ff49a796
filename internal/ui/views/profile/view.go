package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	accountdto "sparks/internal/modules/account/dto"
	journeydto "sparks/internal/modules/journey/dto"
	"sparks/internal/ui/theme"
)

type SessionPort interface {
	Current(ctx context.Context) accountdto.SessionOutput
}

type OverviewPort interface {
	Overview(ctx context.Context) (journeydto.OverviewOutput, error)
}

type LoadedMsg struct {
	Session  accountdto.SessionOutput
	Overview journeydto.OverviewOutput
	Err      error
}

type Model struct {
	session  SessionPort
	overview OverviewPort
	vp       viewport.Model
	level    progress.Model
	weekly   progress.Model
	loaded   LoadedMsg
	width    int
	height   int
}

func New(session SessionPort, overview OverviewPort) Model {
	return Model{
		session:  session,
		overview: overview,
		vp:       viewport.New(0, 0),
		level:    progress.New(progress.WithGradient(string(theme.Lavender), string(theme.Sapphire))),
		weekly:   progress.New(progress.WithGradient(string(theme.Green), string(theme.Yellow))),
	}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		overview, err := m.overview.Overview(ctx)
		return LoadedMsg{Session: m.session.Current(ctx), Overview: overview, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = m.width - 4
		m.vp.Height = m.height - 2
		m.level.Width = min(m.width-8, 60)
		m.weekly.Width = min(m.width-8, 60)
	case LoadedMsg:
		m.loaded = msg
	}
	m.vp.SetContent(m.render())
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return theme.Pane.Width(m.width - 2).Height(m.height - 2).Render(m.vp.View())
}

func (m Model) render() string {
	p := m.loaded.Session.Profile
	if p == nil {
		return theme.Muted.Render("Not signed in")
	}
	o := m.loaded.Overview
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(p.Name) + theme.Muted.Render("  "+p.Email) + "\n\n")
	sb.WriteString(fmt.Sprintf("%s %s   %s %s\n",
		theme.Muted.Render("personality"), p.PersonalityType,
		theme.Muted.Render("mood"), emptyDash(p.CurrentMood)))
	if len(p.Interests) > 0 {
		sb.WriteString(theme.Muted.Render("interests ") + strings.Join(p.Interests, ", ") + "\n")
	}
	if len(p.Goals) > 0 {
		sb.WriteString(theme.Muted.Render("goals     ") + strings.Join(p.Goals, ", ") + "\n")
	}
	if m.loaded.Err != nil {
		sb.WriteString("\n" + theme.Error.Render(m.loaded.Err.Error()) + "\n")
		return sb.String()
	}

	sb.WriteString("\n" + theme.Spark.Render(fmt.Sprintf("✦ %d spark points", o.Standing.SparkPoints)))
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("   level %d", o.Progress.Level)) + "\n")
	sb.WriteString(m.level.ViewAs(o.Progress.Percent/100) + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%d / %d to next level", o.Progress.Current, o.Progress.Needed)) + "\n\n")

	sb.WriteString(theme.Title.Render("This week") + "\n")
	weekly := 0.0
	if o.WeeklyGoal > 0 {
		weekly = float64(o.CompletedThisWeek) / float64(o.WeeklyGoal)
	}
	sb.WriteString(m.weekly.ViewAs(min(weekly, 1)) + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%d of %d quests", o.CompletedThisWeek, o.WeeklyGoal)) + "\n\n")

	stats := []string{
		fmt.Sprintf("%d quests completed", o.CompletedQuestCount),
		fmt.Sprintf("%d reflections", o.ReflectionCount),
		fmt.Sprintf("%d avg points per quest", o.AvgPointsPerQuest),
		fmt.Sprintf("%d rewards redeemed", o.RedeemedRewardCount),
		fmt.Sprintf("%d rewards within reach", len(o.RedeemableRewardIDs)),
	}
	sb.WriteString(lipgloss.JoinVertical(lipgloss.Left, stats...) + "\n")
	if o.NextQuest != nil {
		sb.WriteString("\n" + theme.Muted.Render("next quest ") + theme.Hot.Render(o.NextQuest.Title) + "\n")
	}
	return sb.String()
}

func emptyDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
