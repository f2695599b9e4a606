package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/clinicd/internal/calendar"
	"github.com/sandeepkv93/clinicd/internal/model"
	"github.com/sandeepkv93/clinicd/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		return waitForReminderCmd(m.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			next, cmd := m.handlePaletteKey(typed)
			return next, cmd
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case "g":
			m.Palette.Active = true
			m.Palette.Input = "goto "
			m.commandInput.Focus()
			m.commandInput.SetValue(m.Palette.Input)
			m.Status = StatusBar{Text: "jump to date: goto yyyy-mm-dd"}
			return m, nil
		case m.Keys.Monthly:
			return m.switchView(calendar.ViewMonthly), nil
		case m.Keys.Weekly:
			return m.switchView(calendar.ViewWeekly), nil
		case m.Keys.Daily:
			return m.switchView(calendar.ViewDaily), nil
		case m.Keys.Today:
			m.Controller.GoToToday()
			m.refreshRender()
			m.Status = StatusBar{Text: "jumped to today"}
			return m, nil
		case m.Keys.Language:
			m.Controller.SetLocale(m.Controller.Locale().Toggle())
			m.refreshRender()
			m.Status = StatusBar{Text: fmt.Sprintf("language: %s (%s)", m.locale().Language, m.locale().Direction)}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		return m.handleCalendarKey(typed)
	case spinner.TickMsg:
		if m.spinnerActive {
			var cmd tea.Cmd
			m.saveSpinner, cmd = m.saveSpinner.Update(typed)
			return m, cmd
		}
	case SetAppointmentsMsg:
		m.Controller.SetAppointments(typed.Appointments)
		m.refreshRender()
		m.Status = StatusBar{Text: fmt.Sprintf("loaded %d appointments", len(typed.Appointments))}
		return m, nil
	case StatusPersistedMsg:
		m.spinnerActive = false
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: fmt.Sprintf("status save failed: %v", typed.Err), IsError: true}
			m.notify("Save Failed", typed.Err.Error(), "error")
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("%s -> %s saved", typed.Change.AppointmentID, typed.Change.NewStatus.Label())}
		return m, nil
	case AppointmentCreatedMsg:
		m.spinnerActive = false
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: fmt.Sprintf("add failed: %v", typed.Err), IsError: true}
			return m, nil
		}
		next := append(append([]model.Appointment(nil), m.Controller.Snapshot()...), typed.Appointment)
		m.Controller.SetAppointments(next)
		m.refreshRender()
		m.Status = StatusBar{Text: fmt.Sprintf("added %s on %s", typed.Appointment.PatientName, typed.Appointment.Date)}
		return m, nil
	case ExportDoneMsg:
		m.spinnerActive = false
		if typed.Err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("export failed: %v", typed.Err), IsError: true}
			return m, nil
		}
		text := fmt.Sprintf("exported to %s", typed.Path)
		if typed.Skipped > 0 {
			text += fmt.Sprintf(" (%d skipped)", typed.Skipped)
		}
		m.Status = StatusBar{Text: text}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case ReminderDueMsg:
		m.ReminderLog = append(m.ReminderLog, typed.Reminder)
		if len(m.ReminderLog) > 20 {
			m.ReminderLog = m.ReminderLog[len(m.ReminderLog)-20:]
		}
		m.Status = StatusBar{Text: fmt.Sprintf("reminder: %s at %s", typed.Reminder.PatientName, typed.Reminder.StartsAt.Format("15:04"))}
		m.notify("Appointment Reminder", m.Status.Text, "info")
		if m.Scheduler != nil {
			return m, waitForReminderCmd(m.Scheduler.C())
		}
		return m, nil
	case AcknowledgeReminderMsg:
		if typed.ID != "" {
			m.ReminderAck[typed.ID] = true
			m.Status = StatusBar{Text: fmt.Sprintf("reminder acknowledged: %s", typed.ID)}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) switchView(v calendar.View) Model {
	if err := m.Controller.SetView(v); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Drawer.Open = false
	m.DayCursor = 0
	m.refreshRender()
	m.Status = StatusBar{Text: fmt.Sprintf("view: %s", v)}
	return m
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := m.renderCalendarPane()
	rightPane := m.renderSidePane()

	notificationView := ""
	if len(m.ReminderLog) > 0 {
		entries := make([]views.ReminderEntryData, 0, len(m.ReminderLog))
		for _, rem := range m.ReminderLog {
			entries = append(entries, views.ReminderEntryData{
				AppointmentID: rem.AppointmentID,
				Patient:       rem.PatientName,
				At:            rem.StartsAt.Format("15:04"),
				Acked:         m.ReminderAck[rem.ID],
			})
		}
		notificationView = strings.TrimSpace(views.RenderRemindersPanel(entries))
	}
	if m.spinnerActive {
		notificationView = strings.TrimSpace(strings.Join([]string{notificationView, "saving: " + m.saveSpinner.View()}, "\n"))
	}
	notificationView = strings.TrimSpace(strings.Join([]string{notificationView, strings.TrimSpace(m.renderNotificationsView())}, "\n"))

	loc := m.locale()
	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("clinicd | %s | %s", m.Controller.View(), loc.FormatDate(m.Controller.Anchor())),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notificationView,
		Footer: fmt.Sprintf("keys: %s/%s/%s view | h/l period | %s today | g goto | / cmd | %s lang | %s help | %s quit",
			m.Keys.Monthly, m.Keys.Weekly, m.Keys.Daily, m.Keys.Today, m.Keys.Language, m.Keys.Help, m.Keys.Quit),
		RTL: loc.IsRTL(),
	})
}

func (m Model) renderSidePane() string {
	parts := make([]string, 0, 4)
	if m.Drawer.Open {
		parts = append(parts, m.renderDrawerView())
	} else {
		parts = append(parts, m.renderLegendView())
	}
	if m.Palette.Active {
		parts = append(parts, views.RenderCommandPalette(true, m.commandInput.Value()))
	}
	if m.HelpVisible {
		parts = append(parts, m.renderHelpView())
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	last := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(last.Level, fmt.Sprintf("%s: %s", last.Title, last.Body))
}

func (m *Model) notify(title, body, level string) {
	n := Notification{Title: title, Body: body, Level: level, At: time.Now()}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 10 {
		m.Notifications = m.Notifications[len(m.Notifications)-10:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}
