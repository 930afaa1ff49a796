package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	accountdto "sparks/internal/modules/account/dto"
	journeydto "sparks/internal/modules/journey/dto"
	"sparks/internal/ui/components"
	"sparks/internal/ui/theme"
	profileview "sparks/internal/ui/views/profile"
	questsview "sparks/internal/ui/views/quests"
	reflectionsview "sparks/internal/ui/views/reflections"
	rewardsview "sparks/internal/ui/views/rewards"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type accountPort interface {
	Current(ctx context.Context) accountdto.SessionOutput
	Logout(ctx context.Context) error
	RefreshProfile(ctx context.Context) (accountdto.ProfileOutput, error)
}

type journeyPort interface {
	Refresh(ctx context.Context) error
	Status(ctx context.Context) journeydto.StatusOutput
	ListQuests(ctx context.Context, questType, difficulty string, completedOnly, pendingOnly bool) ([]journeydto.QuestOutput, error)
	CompleteQuest(ctx context.Context, questID string) (journeydto.CompleteQuestOutput, error)
	ListReflections(ctx context.Context) []journeydto.ReflectionOutput
	AddReflection(ctx context.Context, input journeydto.AddReflectionInput) (journeydto.AddReflectionOutput, error)
	DeleteReflection(ctx context.Context, reflectionID string) error
	ExportJournal(ctx context.Context) (journeydto.ExportJournalOutput, error)
	ListRewards(ctx context.Context) []journeydto.RewardOutput
	CheckRedeem(ctx context.Context, rewardID string) error
	RedeemReward(ctx context.Context, rewardID string) (journeydto.RedeemRewardOutput, error)
	UpdateMood(ctx context.Context, mood string) (journeydto.StandingOutput, error)
	Overview(ctx context.Context) (journeydto.OverviewOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabQuests tabID = iota
	tabReflections
	tabRewards
	tabProfile
	tabCount
)

var tabLabels = [tabCount]string{
	"Quests", "Reflections", "Rewards", "Profile",
}

// ─── async messages ───────────────────────────────────────────────────────────

type sessionLoadedMsg struct {
	session accountdto.SessionOutput
}

// actionDoneMsg reports a finished mutation. Views reload on success.
type actionDoneMsg struct {
	status string
	err    error
}

type loggedOutMsg struct{ err error }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Complete key.Binding
	Reflect  key.Binding
	Redeem   key.Binding
	Refresh  key.Binding
	Filters  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete quest")),
		Reflect:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reflect")),
		Redeem:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "redeem reward")),
		Refresh:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
		Filters:  key.NewBinding(key.WithKeys("f", "d"), key.WithHelp("f/d", "quest filters")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Complete, k.Reflect, k.Filters},
		{k.Redeem, k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the signed-in
// header, the global help overlay, and the command palette. Mutations go
// through the journey port; rendering is delegated to sub-views.
type Model struct {
	account accountPort
	journey journeyPort

	questView      questsview.Model
	reflectionView reflectionsview.Model
	rewardView     rewardsview.Model
	profileView    profileview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	session   accountdto.SessionOutput
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(account accountPort, journey journeyPort) Model {
	return Model{
		account:        account,
		journey:        journey,
		questView:      questsview.New(journey),
		reflectionView: reflectionsview.New(journey),
		rewardView:     rewardsview.New(journey),
		profileView:    profileview.New(account, journey),
		activeTab:      tabQuests,
		keys:           defaultKeys(),
		help:           help.New(),
		palette:        components.NewPalette(),
		status:         "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadSessionCmd(),
		m.questView.Init(),
		m.reflectionView.Init(),
		m.rewardView.Init(),
		m.profileView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case sessionLoadedMsg:
		m.session = msg.session
		if !msg.session.Authenticated {
			m.status = "not signed in: run `sparks login` first"
		} else if st := m.journey.Status(context.Background()); st.Error != "" {
			m.status = "last refresh: " + st.Error
		}

	case actionDoneMsg:
		if msg.err != nil {
			m.status = theme.Error.Render(msg.err.Error())
			return m, nil
		}
		m.status = msg.status
		return m, m.reloadAll()

	case loggedOutMsg:
		if msg.err != nil {
			m.status = "logout: " + msg.err.Error()
			return m, nil
		}
		return m, tea.Quit

	// Loaded messages are routed to their owning view regardless of the
	// active tab so background tabs stay current.
	case questsview.LoadedMsg:
		var cmd tea.Cmd
		m.questView, cmd = m.questView.Update(msg)
		return m, cmd
	case reflectionsview.LoadedMsg:
		var cmd tea.Cmd
		m.reflectionView, cmd = m.reflectionView.Update(msg)
		return m, cmd
	case rewardsview.LoadedMsg:
		var cmd tea.Cmd
		m.rewardView, cmd = m.rewardView.Update(msg)
		return m, cmd
	case profileview.LoadedMsg:
		var cmd tea.Cmd
		m.profileView, cmd = m.profileView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			cmd := m.palette.Open()
			return m, cmd
		case "ctrl+r":
			m.status = "refreshing…"
			return m, m.refreshCmd()
		case "c":
			if m.activeTab == tabQuests {
				if q, ok := m.questView.Selected(); ok {
					return m, m.completeQuestCmd(q)
				}
			}
		case "r":
			if m.activeTab == tabQuests {
				if q, ok := m.questView.Selected(); ok {
					cmd := m.palette.OpenWith("reflect " + q.ID + " ")
					return m, cmd
				}
			}
		case "enter":
			if m.activeTab == tabRewards {
				if r, ok := m.rewardView.Selected(); ok {
					return m, m.redeemCmd(r)
				}
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabQuests:
		m.questView, tabCmd = m.questView.Update(msg)
	case tabReflections:
		m.reflectionView, tabCmd = m.reflectionView.Update(msg)
	case tabRewards:
		m.rewardView, tabCmd = m.rewardView.Update(msg)
	case tabProfile:
		m.profileView, tabCmd = m.profileView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabQuests:
		return m.questView.View()
	case tabReflections:
		return m.reflectionView.View()
	case tabRewards:
		return m.rewardView.View()
	case tabProfile:
		return m.profileView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "sparks  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if p := m.session.Profile; p != nil {
		left = theme.Spark.Render(fmt.Sprintf("✦ %s", p.Name)) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "refresh":
		m.status = "refreshing…"
		return m, m.refreshCmd()

	case "quest:complete":
		q, ok := m.questView.Selected()
		if len(parts) >= 2 {
			q, ok = journeydto.QuestOutput{ID: parts[1], Title: parts[1]}, true
		}
		if !ok {
			m.status = "no quest selected"
			return m, nil
		}
		return m, m.completeQuestCmd(q)

	case "reflect":
		if len(parts) < 4 {
			m.status = "usage: reflect <quest-id> <mood> <text>"
			return m, nil
		}
		text := strings.TrimSpace(strings.TrimPrefix(input, parts[0]+" "+parts[1]+" "+parts[2]))
		m.activeTab = tabReflections
		return m, m.reflectCmd(journeydto.AddReflectionInput{QuestID: parts[1], Mood: parts[2], Text: text})

	case "reflection:delete":
		r, ok := m.reflectionView.Selected()
		if !ok {
			m.status = "no reflection selected"
			return m, nil
		}
		return m, m.deleteReflectionCmd(r.ID)

	case "reward:redeem":
		r, ok := m.rewardView.Selected()
		if len(parts) >= 2 {
			r, ok = journeydto.RewardOutput{ID: parts[1], Title: parts[1]}, true
		}
		if !ok {
			m.status = "no reward selected"
			return m, nil
		}
		return m, m.redeemCmd(r)

	case "mood:set":
		if len(parts) < 2 {
			m.status = "usage: mood:set <mood>"
			return m, nil
		}
		return m, m.moodCmd(parts[1])

	case "journal:export":
		return m, m.exportCmd()

	case "profile:refresh":
		m.activeTab = tabProfile
		return m, m.refreshProfileCmd()

	case "tab":
		if len(parts) >= 2 {
			if n, err := strconv.Atoi(parts[1]); err == nil && n >= 1 && n <= int(tabCount) {
				m.activeTab = tabID(n - 1)
				return m, nil
			}
		}
		m.status = "usage: tab <1-4>"

	case "logout":
		return m, m.logoutCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabQuests:
		return m.questView.Filtering()
	case tabReflections:
		return m.reflectionView.Filtering()
	case tabRewards:
		return m.rewardView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.questView, _ = m.questView.Update(sz)
	m.reflectionView, _ = m.reflectionView.Update(sz)
	m.rewardView, _ = m.rewardView.Update(sz)
	m.profileView, _ = m.profileView.Update(sz)
}

func (m Model) reloadAll() tea.Cmd {
	return tea.Batch(
		m.loadSessionCmd(),
		m.questView.Reload(),
		m.reflectionView.Reload(),
		m.rewardView.Reload(),
		m.profileView.Reload(),
	)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadSessionCmd() tea.Cmd {
	return func() tea.Msg {
		return sessionLoadedMsg{session: m.account.Current(context.Background())}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.journey.Refresh(context.Background()); err != nil {
			return actionDoneMsg{err: fmt.Errorf("refresh: %w", err)}
		}
		return actionDoneMsg{status: "refreshed"}
	}
}

func (m Model) completeQuestCmd(q journeydto.QuestOutput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.journey.CompleteQuest(context.Background(), q.ID)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("completed %q: %d points, level %d",
			out.Quest.Title, out.Standing.SparkPoints, out.Standing.Level)}
	}
}

func (m Model) reflectCmd(input journeydto.AddReflectionInput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.journey.AddReflection(context.Background(), input)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("reflection saved (+%d)", out.Reflection.Points)}
	}
}

func (m Model) deleteReflectionCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.journey.DeleteReflection(context.Background(), id); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: "reflection deleted"}
	}
}

func (m Model) redeemCmd(r journeydto.RewardOutput) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.journey.CheckRedeem(ctx, r.ID); err != nil {
			return actionDoneMsg{err: err}
		}
		out, err := m.journey.RedeemReward(ctx, r.ID)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("redeemed %q: %d points left", out.Reward.Title, out.Standing.SparkPoints)}
	}
}

func (m Model) moodCmd(mood string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.journey.UpdateMood(context.Background(), mood); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: "mood set to " + mood}
	}
}

func (m Model) exportCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.journey.ExportJournal(context.Background())
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("exported %d notes to %s", len(out.Paths), out.IndexPath)}
	}
}

func (m Model) refreshProfileCmd() tea.Cmd {
	return func() tea.Msg {
		if _, err := m.account.RefreshProfile(context.Background()); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: "profile refreshed"}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return loggedOutMsg{err: m.account.Logout(context.Background())}
	}
}
