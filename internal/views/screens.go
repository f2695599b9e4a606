package views

import (
	"fmt"
	"strings"
)

type MonthCellData struct {
	Day      int
	InFocus  bool
	IsToday  bool
	Selected bool
	Entries  []string
	Overflow int
}

type MonthPanelData struct {
	Title    string
	DayNames []string
	Cells    []MonthCellData
}

type TimelineEntryData struct {
	ID       string
	Label    string
	Time     string
	Date     string
	Row      int
	Span     int
	Column   int
	Columns  int
	AllDay   bool
	Severity string
}

type TimelinePanelData struct {
	Mode      string
	Title     string
	TableView string
	Entries   []TimelineEntryData
}

type DrawerItemData struct {
	ID       string
	Time     string
	Patient  string
	Status   string
	Severity string
	Dentist  string
	Room     string
}

type DrawerPanelData struct {
	DateTitle string
	Side      string
	Items     []DrawerItemData
	Cursor    int
	NotesView string
}

type LegendEntryData struct {
	Label    string
	Severity string
	Count    int
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

type ReminderEntryData struct {
	AppointmentID string
	Patient       string
	At            string
	Acked         bool
}

// RenderMonthPanel draws the 6x7 day grid. Each cell shows the day
// number plus up to the capped entry lines; hidden entries collapse
// into a "+N" marker.
func RenderMonthPanel(data MonthPanelData) string {
	var b strings.Builder
	b.WriteString("calendar: " + data.Title + "\n")
	b.WriteString("actions: [m/w/d]view [h/l]period [j/k]day [enter]drawer [t]today\n")
	b.WriteString(strings.Join(data.DayNames, " | ") + "\n")

	for i, cell := range data.Cells {
		marker := " "
		if cell.IsToday {
			marker = "*"
		}
		cursor := " "
		if cell.Selected {
			cursor = ">"
		}
		dim := ""
		if !cell.InFocus {
			dim = "."
		}
		b.WriteString(fmt.Sprintf("%s%s%2d%s", cursor, marker, cell.Day, dim))
		for _, entry := range cell.Entries {
			b.WriteString(" " + entry)
		}
		if cell.Overflow > 0 {
			b.WriteString(fmt.Sprintf(" +%d", cell.Overflow))
		}
		if (i+1)%7 == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" |")
		}
	}
	return strings.TrimSpace(b.String())
}

// RenderTimelinePanel lists the laid-out slots for week and day views.
// Side-by-side collisions are shown as "col x/y" so the lateral split
// is visible in plain text.
func RenderTimelinePanel(data TimelinePanelData) string {
	var b strings.Builder
	b.WriteString("timeline: " + data.Title + "\n")
	b.WriteString(fmt.Sprintf("mode: %s\n", data.Mode))
	b.WriteString("actions: [m/w/d]view [h/l]period [j/k]entry [s]status [t]today\n")
	if data.TableView != "" {
		b.WriteString(data.TableView + "\n")
	}
	if len(data.Entries) == 0 {
		b.WriteString("(no appointments)")
		return strings.TrimSpace(b.String())
	}
	for _, entry := range data.Entries {
		when := entry.Time
		if entry.AllDay {
			when = "all-day"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s [row %d span %d", entry.Date, when, SeverityBadge(entry.Severity), entry.Label, entry.Row, entry.Span))
		if entry.Columns > 1 {
			b.WriteString(fmt.Sprintf(", col %d/%d", entry.Column+1, entry.Columns))
		}
		b.WriteString("]\n")
	}
	return strings.TrimSpace(b.String())
}

// RenderDrawerPanel shows the selected day's appointment list with the
// notes preview for the item under the cursor.
func RenderDrawerPanel(data DrawerPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("day: %s (%s drawer)\n", data.DateTitle, data.Side))
	b.WriteString("actions: [j/k]move [s]cycle status [esc]close\n")
	if len(data.Items) == 0 {
		b.WriteString("(no appointments)")
		return strings.TrimSpace(b.String())
	}
	for i, item := range data.Items {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		when := item.Time
		if when == "" {
			when = "all-day"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s (%s)", cursor, when, SeverityBadge(item.Severity), item.Patient, item.Status))
		if item.Dentist != "" {
			b.WriteString(" " + item.Dentist)
		}
		if item.Room != "" {
			b.WriteString(" room:" + item.Room)
		}
		b.WriteString("\n")
	}
	if data.NotesView != "" {
		b.WriteString("\nnotes:\n" + data.NotesView)
	}
	return strings.TrimSpace(b.String())
}

func RenderLegendPanel(entries []LegendEntryData) string {
	var b strings.Builder
	b.WriteString("legend:\n")
	for _, entry := range entries {
		b.WriteString(fmt.Sprintf("%s %s: %d\n", SeverityBadge(entry.Severity), entry.Label, entry.Count))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func RenderRemindersPanel(entries []ReminderEntryData) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nreminders:\n")
	for _, entry := range entries {
		ack := " "
		if entry.Acked {
			ack = "x"
		}
		b.WriteString(fmt.Sprintf("[%s] %s %s (%s)\n", ack, entry.At, entry.Patient, entry.AppointmentID))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func SeverityBadge(severity string) string {
	switch severity {
	case "success":
		return "[OK]"
	case "info":
		return "[UP]"
	case "warn":
		return "[..]"
	case "danger":
		return "[XX]"
	default:
		return "[--]"
	}
}
