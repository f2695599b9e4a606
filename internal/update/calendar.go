package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/clinicd/internal/calendar"
	"github.com/sandeepkv93/clinicd/internal/model"
	"github.com/sandeepkv93/clinicd/internal/storage"
	"github.com/sandeepkv93/clinicd/internal/views"
)

const persistTimeout = 5 * time.Second

func (m Model) handleCalendarKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		m.Controller.PreviousPeriod()
		m.Drawer.Open = false
		m.refreshRender()
		m.Status = StatusBar{Text: fmt.Sprintf("anchor: %s", calendar.DateKey(m.Controller.Anchor()))}
	case "l", "right":
		m.Controller.NextPeriod()
		m.Drawer.Open = false
		m.refreshRender()
		m.Status = StatusBar{Text: fmt.Sprintf("anchor: %s", calendar.DateKey(m.Controller.Anchor()))}
	case "j", "down":
		if m.Drawer.Open {
			if m.Drawer.Cursor < len(m.selectedDayAppointments())-1 {
				m.Drawer.Cursor++
			}
		} else if m.DayCursor < len(m.render.Cells)-1 {
			m.DayCursor++
		}
		m.syncBubbleData()
	case "k", "up":
		if m.Drawer.Open {
			if m.Drawer.Cursor > 0 {
				m.Drawer.Cursor--
			}
		} else if m.DayCursor > 0 {
			m.DayCursor--
		}
		m.syncBubbleData()
	case "enter":
		cell, ok := m.selectedCell()
		if !ok {
			return m, nil
		}
		m.Drawer.Open = !m.Drawer.Open
		m.Drawer.Cursor = 0
		m.syncBubbleData()
		if m.Drawer.Open {
			m.Status = StatusBar{Text: fmt.Sprintf("day drawer: %s", calendar.DateKey(cell.Date))}
		}
	case "esc":
		if m.Drawer.Open {
			m.Drawer.Open = false
			m.Status = StatusBar{Text: "drawer closed"}
		}
	case "s":
		return m.cycleSelectedStatus()
	}
	return m, nil
}

// cycleSelectedStatus advances the selected appointment to the next
// status in legend order, swaps the snapshot and kicks off the
// persistence command.
func (m Model) cycleSelectedStatus() (Model, tea.Cmd) {
	apt, ok := m.selectedAppointment()
	if !ok {
		m.Status = StatusBar{Text: "no appointment selected", IsError: true}
		return m, nil
	}
	next := nextStatus(apt.Status)
	change, err := m.Controller.ChangeStatus(apt.ID, next)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.refreshRender()
	m.Status = StatusBar{Text: fmt.Sprintf("%s -> %s", apt.ID, next.Label())}
	if m.Repo == nil {
		return m, nil
	}
	m.spinnerActive = true
	return m, tea.Batch(m.saveSpinner.Tick, persistStatusCmd(m.Repo, change))
}

func nextStatus(current model.AppointmentStatus) model.AppointmentStatus {
	all := model.AllStatuses()
	for i, s := range all {
		if s == current {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func persistStatusCmd(repo storage.Repository, change calendar.StatusChange) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		err := repo.UpdateAppointmentStatus(ctx, change.AppointmentID, string(change.NewStatus))
		return StatusPersistedMsg{Change: change, Err: err}
	}
}

func (m Model) renderCalendarPane() string {
	if m.renderErr != nil {
		return fmt.Sprintf("render error: %v", m.renderErr)
	}
	if m.render.View == calendar.ViewMonthly {
		return m.renderMonthView()
	}
	return m.renderTimelineView()
}

func (m Model) renderMonthView() string {
	loc := m.locale()
	anchor := m.Controller.Anchor()
	cells := make([]views.MonthCellData, 0, len(m.render.Cells))
	for i, cell := range m.render.Cells {
		entries := make([]string, 0, len(cell.VisibleAppointments))
		for _, apt := range cell.VisibleAppointments {
			entries = append(entries, views.SeverityBadge(string(apt.Status.Severity())))
		}
		cells = append(cells, views.MonthCellData{
			Day:      cell.Date.Day(),
			InFocus:  cell.InFocusedPeriod,
			IsToday:  cell.IsToday,
			Selected: i == m.DayCursor,
			Entries:  entries,
			Overflow: cell.OverflowCount,
		})
	}
	return views.RenderMonthPanel(views.MonthPanelData{
		Title:    fmt.Sprintf("%s %d", loc.MonthName(anchor.Month()), anchor.Year()),
		DayNames: m.Controller.DayNames(),
		Cells:    cells,
	})
}

func (m Model) renderTimelineView() string {
	loc := m.locale()
	entries := make([]views.TimelineEntryData, 0)
	for _, cell := range m.render.Cells {
		for _, apt := range cell.VisibleAppointments {
			pos, ok := m.render.Timeline[apt.ID]
			if !ok {
				continue
			}
			entries = append(entries, views.TimelineEntryData{
				ID:       apt.ID,
				Label:    apt.PatientName,
				Time:     loc.FormatClock(apt.StartTime),
				Date:     calendar.DateKey(cell.Date),
				Row:      pos.RowStart,
				Span:     pos.RowSpan,
				Column:   pos.Column,
				Columns:  pos.Columns,
				AllDay:   pos.AllDay,
				Severity: string(apt.Status.Severity()),
			})
		}
	}
	return views.RenderTimelinePanel(views.TimelinePanelData{
		Mode:      string(m.render.View),
		Title:     loc.FormatDate(m.Controller.Anchor()),
		TableView: m.dayTable.View(),
		Entries:   entries,
	})
}

func (m Model) renderDrawerView() string {
	cell, ok := m.selectedCell()
	if !ok {
		return ""
	}
	loc := m.locale()
	items := make([]views.DrawerItemData, 0)
	for _, apt := range m.selectedDayAppointments() {
		item := views.DrawerItemData{
			ID:       apt.ID,
			Time:     loc.FormatClock(apt.StartTime),
			Patient:  apt.PatientName,
			Status:   apt.Status.Label(),
			Severity: string(apt.Status.Severity()),
		}
		if apt.AllDay() {
			item.Time = ""
		}
		if apt.Dentist != nil {
			item.Dentist = apt.Dentist.Name
		}
		if apt.Clinic != nil {
			item.Room = apt.Clinic.Room
		}
		items = append(items, item)
	}
	return views.RenderDrawerPanel(views.DrawerPanelData{
		DateTitle: loc.FormatDate(cell.Date),
		Side:      loc.DrawerSide(),
		Items:     items,
		Cursor:    m.Drawer.Cursor,
		NotesView: m.notesViewport.View(),
	})
}

func (m Model) renderLegendView() string {
	counts := make(map[model.AppointmentStatus]int)
	for _, apt := range m.Controller.Snapshot() {
		counts[apt.Status]++
	}
	entries := make([]views.LegendEntryData, 0, len(model.AllStatuses()))
	for _, status := range model.AllStatuses() {
		entries = append(entries, views.LegendEntryData{
			Label:    status.Label(),
			Severity: string(status.Severity()),
			Count:    counts[status],
		})
	}
	return views.RenderLegendPanel(entries)
}
