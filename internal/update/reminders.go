package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/clinicd/internal/scheduler"
)

func waitForReminderCmd(ch <-chan scheduler.AppointmentReminder) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		rem, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Reminder: rem}
	}
}
