// Package update holds the Elm-style TUI state machine: a single Model
// updated by typed messages, with all calendar math delegated to the
// calendar controller.
package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/clinicd/internal/calendar"
	"github.com/sandeepkv93/clinicd/internal/locale"
	"github.com/sandeepkv93/clinicd/internal/model"
	"github.com/sandeepkv93/clinicd/internal/scheduler"
	"github.com/sandeepkv93/clinicd/internal/storage"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Monthly  string
	Weekly   string
	Daily    string
	Today    string
	Language string
	Help     string
	Quit     string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type DrawerState struct {
	Open   bool
	Cursor int
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

// Model is the whole TUI state. The controller owns view, anchor,
// snapshot and locale; the model adds cursors, the drawer, the palette
// and the reminder log on top.
type Model struct {
	Controller     *calendar.Controller
	Repo           storage.Repository
	Scheduler      *scheduler.Engine
	ReminderLog    []scheduler.AppointmentReminder
	ReminderAck    map[string]bool
	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier
	Palette        CommandPaletteState
	Drawer         DrawerState
	HelpVisible    bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	DayCursor      int

	render    calendar.RenderModel
	renderErr error

	// Bubble components used for rich TUI controls
	dayTable      table.Model
	commandInput  textinput.Model
	notesViewport viewport.Model
	saveSpinner   spinner.Model
	helpModel     help.Model
	spinnerActive bool
}

type SetAppointmentsMsg struct {
	Appointments []model.Appointment
}

type StatusPersistedMsg struct {
	Change calendar.StatusChange
	Err    error
}

type AppointmentCreatedMsg struct {
	Appointment model.Appointment
	Err         error
}

type ExportDoneMsg struct {
	Path    string
	Skipped int
	Err     error
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type ReminderDueMsg struct {
	Reminder scheduler.AppointmentReminder
}

type AcknowledgeReminderMsg struct {
	ID string
}

func NewModel(controller *calendar.Controller) Model {
	m := Model{
		Controller:  controller,
		ReminderAck: make(map[string]bool),
		notifier:    NoopDesktopNotifier{},
		Keys: GlobalKeyMap{
			Monthly:  "m",
			Weekly:   "w",
			Daily:    "d",
			Today:    "t",
			Language: "L",
			Help:     "?",
			Quit:     "q",
		},
	}
	m.initBubbleComponents()
	m.refreshRender()
	return m
}

func NewModelWithRuntime(controller *calendar.Controller, repo storage.Repository, engine *scheduler.Engine, notifier DesktopNotifier, cfg RuntimeConfig) Model {
	m := NewModel(controller)
	m.Repo = repo
	m.Scheduler = engine
	m.DesktopEnabled = cfg.DesktopNotifications
	if notifier != nil {
		m.notifier = notifier
	}
	return m
}

func (m *Model) initBubbleComponents() {
	cols := []table.Column{
		{Title: "Time", Width: 9},
		{Title: "Patient", Width: 20},
		{Title: "Status", Width: 10},
		{Title: "Dentist", Width: 14},
	}
	m.dayTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.notesViewport = viewport.New(54, 8)

	m.saveSpinner = spinner.New()
	m.saveSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
}

// refreshRender recomputes the derived render model after any state
// transition and clamps the cursors to the new cell set.
func (m *Model) refreshRender() {
	if m.Controller == nil {
		return
	}
	m.render, m.renderErr = m.Controller.Render()
	if m.renderErr != nil {
		m.LastError = m.renderErr
		return
	}
	if m.DayCursor >= len(m.render.Cells) {
		m.DayCursor = len(m.render.Cells) - 1
	}
	if m.DayCursor < 0 {
		m.DayCursor = 0
	}
	m.clampDrawerCursor()
	m.syncBubbleData()
}

func (m *Model) clampDrawerCursor() {
	appointments := m.selectedDayAppointments()
	if m.Drawer.Cursor >= len(appointments) {
		m.Drawer.Cursor = len(appointments) - 1
	}
	if m.Drawer.Cursor < 0 {
		m.Drawer.Cursor = 0
	}
}

func (m *Model) syncBubbleData() {
	rows := make([]table.Row, 0)
	for _, apt := range m.selectedDayAppointments() {
		when := apt.StartTime
		if apt.AllDay() {
			when = "all-day"
		}
		dentist := ""
		if apt.Dentist != nil {
			dentist = apt.Dentist.Name
		}
		rows = append(rows, table.Row{when, apt.PatientName, apt.Status.Label(), dentist})
	}
	m.dayTable.SetRows(rows)
	if len(rows) > 0 && m.Drawer.Cursor < len(rows) {
		m.dayTable.SetCursor(m.Drawer.Cursor)
	}

	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	}

	if apt, ok := m.selectedAppointment(); ok && apt.Notes != "" {
		m.notesViewport.SetContent(renderNotes(apt.Notes))
	} else {
		m.notesViewport.SetContent("")
	}
}

func (m Model) selectedCell() (calendar.Cell, bool) {
	if len(m.render.Cells) == 0 || m.DayCursor < 0 || m.DayCursor >= len(m.render.Cells) {
		return calendar.Cell{}, false
	}
	return m.render.Cells[m.DayCursor], true
}

func (m Model) selectedDayAppointments() []model.Appointment {
	cell, ok := m.selectedCell()
	if !ok {
		return nil
	}
	key := calendar.DateKey(cell.Date)
	out := make([]model.Appointment, 0)
	for _, apt := range m.Controller.Snapshot() {
		if apt.Date == key {
			out = append(out, apt)
		}
	}
	return out
}

func (m Model) selectedAppointment() (model.Appointment, bool) {
	appointments := m.selectedDayAppointments()
	if len(appointments) == 0 || m.Drawer.Cursor < 0 || m.Drawer.Cursor >= len(appointments) {
		return model.Appointment{}, false
	}
	return appointments[m.Drawer.Cursor], true
}

func (m Model) locale() locale.Locale {
	if m.Controller == nil {
		return locale.ForLanguage(locale.LangEnglish)
	}
	return m.Controller.Locale()
}
