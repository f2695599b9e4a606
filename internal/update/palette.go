package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/sandeepkv93/clinicd/internal/calendar"
	"github.com/sandeepkv93/clinicd/internal/commands"
	"github.com/sandeepkv93/clinicd/internal/export"
	"github.com/sandeepkv93/clinicd/internal/model"
	"github.com/sandeepkv93/clinicd/internal/storage"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	case "backspace":
		val := m.commandInput.Value()
		if len(val) > 0 {
			m.commandInput.SetValue(val[:len(val)-1])
		}
		m.Palette.Input = m.commandInput.Value()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		if msg.Type == tea.KeySpace {
			m.commandInput.SetValue(m.commandInput.Value() + " ")
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var teaCmd tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Status: func(a commands.StatusArgs) (commands.Result, error) {
			change, err := m.Controller.ChangeStatus(a.AppointmentID, a.Status)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m.refreshRender()
			if m.Repo != nil {
				m.spinnerActive = true
				teaCmd = tea.Batch(m.saveSpinner.Tick, persistStatusCmd(m.Repo, change))
			}
			return commands.Result{Message: fmt.Sprintf("%s -> %s", a.AppointmentID, a.Status.Label())}, nil
		},
		Goto: func(a commands.GotoArgs) (commands.Result, error) {
			day, err := calendar.ParseDateKey(a.Date)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m.Controller.GoToDate(day)
			m.Drawer.Open = false
			m.refreshRender()
			return commands.Result{Message: fmt.Sprintf("jumped to %s", a.Date)}, nil
		},
		View: func(a commands.ViewArgs) (commands.Result, error) {
			if err := m.Controller.SetView(a.View); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m.Drawer.Open = false
			m.DayCursor = 0
			m.refreshRender()
			return commands.Result{Message: fmt.Sprintf("view: %s", a.View)}, nil
		},
		Add: func(a commands.AddArgs) (commands.Result, error) {
			apt := model.Appointment{
				ID:              uuid.NewString(),
				PatientName:     a.PatientName,
				Date:            a.Date,
				StartTime:       a.StartTime,
				DurationMinutes: a.DurationMinutes,
				Status:          model.StatusUpcoming,
			}
			if err := apt.Validate(); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			if m.Repo != nil {
				m.spinnerActive = true
				teaCmd = tea.Batch(m.saveSpinner.Tick, createAppointmentCmd(m.Repo, apt))
			} else {
				next := append(append([]model.Appointment(nil), m.Controller.Snapshot()...), apt)
				m.Controller.SetAppointments(next)
				m.refreshRender()
			}
			return commands.Result{Message: fmt.Sprintf("adding %s on %s %s", a.PatientName, a.Date, a.StartTime)}, nil
		},
		Export: func(a commands.ExportArgs) (commands.Result, error) {
			teaCmd = exportCmd(a.Path, m.Controller.Snapshot())
			return commands.Result{Message: fmt.Sprintf("exporting to %s", a.Path)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message}
		m.notify("Command", res.Message, "info")
	}
	return m, teaCmd
}

func createAppointmentCmd(repo storage.Repository, apt model.Appointment) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		err := repo.CreateAppointment(ctx, storage.FromDomain(apt, time.Now().UTC()))
		return AppointmentCreatedMsg{Appointment: apt, Err: err}
	}
}

func exportCmd(path string, snapshot []model.Appointment) tea.Cmd {
	return func() tea.Msg {
		warnings, err := export.WriteFile(path, snapshot)
		return ExportDoneMsg{Path: path, Skipped: len(warnings), Err: err}
	}
}
