package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"soloquest/internal/engine"
	"soloquest/internal/ui"
)

type row struct {
	quest engine.Quest
	kind  engine.QuestKind
}

type boardModel struct {
	store *engine.Store

	width  int
	height int

	state    engine.State
	rows     []row
	selected int

	lastLog string
}

func newBoardModel(store *engine.Store) boardModel {
	m := boardModel{store: store, lastLog: "Loaded."}
	m.refresh()
	return m
}

func (m *boardModel) refresh() {
	m.state = m.store.Snapshot()
	m.rows = m.rows[:0]
	for _, q := range m.state.PermanentQuests {
		m.rows = append(m.rows, row{quest: q, kind: engine.QuestPermanent})
	}
	for _, q := range m.state.TemporaryQuests {
		m.rows = append(m.rows, row{quest: q, kind: engine.QuestTemporary})
	}
	if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.refresh()
			m.lastLog = "Refreshed."
			return m, nil
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.rows)-1 {
				m.selected++
			}
			return m, nil
		case " ", "enter":
			if len(m.rows) == 0 {
				return m, nil
			}
			r := m.rows[m.selected]
			res, err := m.store.ToggleQuest(r.quest.ID, r.kind)
			if err != nil {
				m.lastLog = "Toggle failed: " + err.Error()
				return m, nil
			}
			if res.Quest.Completed {
				m.lastLog = fmt.Sprintf("Completed %q: %+d XP", res.Quest.Title, res.XPDelta)
			} else {
				m.lastLog = fmt.Sprintf("Unchecked %q: %+d XP", res.Quest.Title, res.XPDelta)
			}
			if res.LevelAfter > res.LevelBefore {
				m.lastLog += " " + ui.BadgeLevelUp
			}
			m.refresh()
			return m, nil
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	var b strings.Builder

	st := m.state
	b.WriteString(ui.Heading(ui.IconQuest, "Soloquest") + "\n")
	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s\n",
		ui.Key.Render("Level:"), fmt.Sprint(st.Level),
		ui.Key.Render("Rank:"), ui.RankBadge(engine.Rank(st.Level)),
		ui.Key.Render("Streak:"), fmt.Sprintf("%s %d (best %d)", ui.IconFlame, st.Streak.Current, st.Streak.Longest),
	))
	b.WriteString(ui.XPBar(st.XP, engine.RequiredXP(st.Level), 24) + "\n\n")

	if len(m.rows) == 0 {
		b.WriteString(ui.Muted.Render("No quests yet. Add one with `sq add`.") + "\n")
	}

	lastKind := engine.QuestKind("")
	for i, r := range m.rows {
		if r.kind != lastKind {
			lastKind = r.kind
			if r.kind == engine.QuestPermanent {
				b.WriteString(ui.H2.Render("Daily quests") + "\n")
			} else {
				b.WriteString(ui.H2.Render("Today only") + "\n")
			}
		}

		line := fmt.Sprintf("%s %s", ui.QuestIcon(r.quest.Completed), r.quest.Title)
		if i == m.selected {
			line = ui.SelectedRow.Render("› " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + ui.Muted.Render(m.lastLog) + "\n")
	b.WriteString(ui.Muted.Render("space/enter toggle · j/k move · r refresh · q quit") + "\n")
	return b.String()
}
