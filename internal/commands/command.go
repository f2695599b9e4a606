package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/clinicd/internal/calendar"
	"github.com/sandeepkv93/clinicd/internal/model"
)

type Type string

const (
	TypeStatus Type = "status"
	TypeGoto   Type = "goto"
	TypeView   Type = "view"
	TypeAdd    Type = "add"
	TypeExport Type = "export"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type StatusArgs struct {
	AppointmentID string
	Status        model.AppointmentStatus
}

type GotoArgs struct {
	Date string
}

type ViewArgs struct {
	View calendar.View
}

type AddArgs struct {
	Date            string
	StartTime       string
	DurationMinutes int
	PatientName     string
}

type ExportArgs struct {
	Path string
}

type Command struct {
	Type   Type
	Raw    string
	Status *StatusArgs
	Goto   *GotoArgs
	View   *ViewArgs
	Add    *AddArgs
	Export *ExportArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeStatus:
		return parseStatus(input, args)
	case TypeGoto:
		return parseGoto(input, args)
	case TypeView:
		return parseView(input, args)
	case TypeAdd:
		return parseAdd(input, args)
	case TypeExport:
		return parseExport(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseStatus(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "status requires an appointment id and a status"}
	}
	status := model.AppointmentStatus(strings.ToUpper(args[1]))
	if !status.IsValid() {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown status: %s", args[1])}
	}
	return Command{Type: TypeStatus, Raw: raw, Status: &StatusArgs{AppointmentID: args[0], Status: status}}, nil
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goto requires a yyyy-mm-dd date"}
	}
	if _, err := calendar.ParseDateKey(args[0]); err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid date: %s", args[0])}
	}
	return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Date: args[0]}}, nil
}

func parseView(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "view requires a mode: monthly, weekly or daily"}
	}
	view := calendar.View(strings.ToLower(args[0]))
	if !view.IsValid() {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown view mode: %s", args[0])}
	}
	return Command{Type: TypeView, Raw: raw, View: &ViewArgs{View: view}}, nil
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) < 4 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires date, start time, duration and patient name"}
	}
	if _, err := calendar.ParseDateKey(args[0]); err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid date: %s", args[0])}
	}
	if _, ok := calendar.ParseClock(args[1]); !ok {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid start time: %s", args[1])}
	}
	duration, err := strconv.Atoi(args[2])
	if err != nil || duration <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid duration: %s", args[2])}
	}
	patient := strings.TrimSpace(strings.Join(args[3:], " "))
	if patient == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a patient name"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{
		Date:            args[0],
		StartTime:       args[1],
		DurationMinutes: duration,
		PatientName:     patient,
	}}, nil
}

func parseExport(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "export requires a file path"}
	}
	return Command{Type: TypeExport, Raw: raw, Export: &ExportArgs{Path: strings.Join(args, " ")}}, nil
}
