package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lmerten/studiplan/internal/core/config"
	"github.com/lmerten/studiplan/internal/core/models"
	"github.com/lmerten/studiplan/internal/core/session"
	"github.com/lmerten/studiplan/internal/core/state"
)

type viewMode int

const (
	planView viewMode = iota
	progressView
	helpView
)

type Model struct {
	sess   *session.Session
	store  state.Store
	cfg    *config.Config
	mode   viewMode
	list   list.Model
	width  int
	height int
	status string
	dirty  bool
}

// courseItem adapts a catalog course to the bubbles list
type courseItem struct {
	course *models.Course
	sess   *session.Session
}

func (i courseItem) Title() string {
	prefix := "  "
	if i.course.Favorite {
		prefix = "* "
	}
	return prefix + i.course.Title
}

func (i courseItem) Description() string {
	desc := fmt.Sprintf("%d LP", i.course.Credits)
	if i.course.ModuleCode != "" {
		desc += "  " + i.course.ModuleCode
	}
	if i.course.Group != "" {
		desc += "  [" + i.course.Group + "]"
	}
	if avail := i.course.Availability.String(); avail != "" {
		desc += "  " + avail
	}
	if i.course.Assigned() {
		desc += "  -> " + i.sess.Planner.Label(i.course.Slot)
	}
	return desc
}

func (i courseItem) FilterValue() string {
	return i.course.Title + " " + i.course.Description + " " + i.course.ModuleCode + " " + i.course.Group
}

func New(sess *session.Session, store state.Store, cfg *config.Config) Model {
	m := Model{
		sess:  sess,
		store: store,
		cfg:   cfg,
		mode:  planView,
	}
	m.list = newCourseList(sess, 0, 0)
	return m
}

func newCourseList(sess *session.Session, width, height int) list.Model {
	items := make([]list.Item, 0, sess.Catalog.Len())
	for _, c := range sess.Catalog.Courses {
		items = append(items, courseItem{course: c, sess: sess})
	}

	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, width, height)
	l.Title = "Courses"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	return l
}

// refreshList rebuilds the item descriptions after a mutation
func (m *Model) refreshList() {
	idx := m.list.Index()
	items := make([]list.Item, 0, m.sess.Catalog.Len())
	for _, c := range m.sess.Catalog.Courses {
		items = append(items, courseItem{course: c, sess: m.sess})
	}
	m.list.SetItems(items)
	m.list.Select(idx)
}

func (m *Model) selectedCourse() *models.Course {
	item, ok := m.list.SelectedItem().(courseItem)
	if !ok {
		return nil
	}
	return item.course
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sess.Window = state.Window{Width: msg.Width, Height: msg.Height}
		m.list.SetSize(msg.Width/2-2, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// While the list filter is open, every key belongs to it
		if m.mode == planView && m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			if m.mode != planView {
				m.mode = planView
				return m, nil
			}
			if m.dirty {
				if err := m.sess.Save(m.store); err != nil {
					m.status = "Save failed: " + err.Error()
					return m, nil
				}
			}
			return m, tea.Quit

		case "?":
			m.mode = helpView
			return m, nil

		case "p":
			if m.mode == progressView {
				m.mode = planView
			} else {
				m.mode = progressView
			}
			return m, nil
		}

		if m.mode == planView {
			return m.updatePlan(msg)
		}
		return m, nil
	}

	if m.mode == planView {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePlan(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		course := m.selectedCourse()
		if course == nil {
			return m, nil
		}
		idx := int(key[0] - '1')
		if idx >= m.sess.Planner.NumSlots() {
			m.status = fmt.Sprintf("No semester slot %d", idx+1)
			return m, nil
		}
		if err := m.sess.Assign(course, idx); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.dirty = true
		m.status = fmt.Sprintf("%s -> %s", course.Title, m.sess.Planner.Label(idx))
		m.refreshList()
		return m, nil

	case "u":
		course := m.selectedCourse()
		if course == nil || !course.Assigned() {
			return m, nil
		}
		label := m.sess.Planner.Label(course.Slot)
		m.sess.Unassign(course)
		m.dirty = true
		m.status = fmt.Sprintf("Removed %s from %s", course.Title, label)
		m.refreshList()
		return m, nil

	case "f":
		course := m.selectedCourse()
		if course == nil {
			return m, nil
		}
		m.sess.ToggleFavorite(course)
		m.dirty = true
		m.refreshList()
		return m, nil

	case "y":
		course := m.selectedCourse()
		if course == nil {
			return m, nil
		}
		if err := clipboard.WriteAll(course.Key()); err != nil {
			m.status = "Clipboard unavailable: " + err.Error()
		} else {
			m.status = "Copied " + course.Key()
		}
		return m, nil

	case "s":
		if err := m.sess.Save(m.store); err != nil {
			m.status = "Save failed: " + err.Error()
		} else {
			m.dirty = false
			m.status = "Saved to slot " + m.sess.SlotName
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	switch m.mode {
	case progressView:
		return m.progressView()
	case helpView:
		return m.helpView()
	default:
		return m.planView()
	}
}
