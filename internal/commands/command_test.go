package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/clinicd/internal/calendar"
	"github.com/sandeepkv93/clinicd/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/status apt-1 COMPLETE", TypeStatus},
		{"goto 2026-02-09", TypeGoto},
		{"view weekly", TypeView},
		{"add 2026-02-09 10:00 30 Sara Ahmed", TypeAdd},
		{"/export calendar.ics", TypeExport},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseStatusArguments(t *testing.T) {
	cmd, err := Parse("status apt-7 cancel")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Status.AppointmentID != "apt-7" || cmd.Status.Status != model.StatusCancel {
		t.Fatalf("unexpected status args: %+v", cmd.Status)
	}

	_, err = Parse("status apt-7 archived")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid argument for unknown status, got %v", err)
	}
}

func TestParseAddArguments(t *testing.T) {
	cmd, err := Parse("add 2026-02-09 14:30 45 Omar Khalid")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := AddArgs{Date: "2026-02-09", StartTime: "14:30", DurationMinutes: 45, PatientName: "Omar Khalid"}
	if *cmd.Add != want {
		t.Fatalf("unexpected add args: %+v", cmd.Add)
	}

	bad := []string{
		"add 2026-2-9 14:30 45 Omar",
		"add 2026-02-09 2pm 45 Omar",
		"add 2026-02-09 14:30 zero Omar",
		"add 2026-02-09 14:30 45",
	}
	for _, in := range bad {
		if _, err := Parse(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestParseGotoRejectsBadDate(t *testing.T) {
	_, err := Parse("goto 09-02-2026")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/view daily")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		View: func(a ViewArgs) (Result, error) {
			called = true
			if a.View != calendar.ViewDaily {
				t.Fatalf("unexpected view: %q", a.View)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("export out.ics")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
