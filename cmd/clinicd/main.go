package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/clinicd/internal/calendar"
	"github.com/sandeepkv93/clinicd/internal/config"
	"github.com/sandeepkv93/clinicd/internal/locale"
	"github.com/sandeepkv93/clinicd/internal/scheduler"
	"github.com/sandeepkv93/clinicd/internal/storage"
	"github.com/sandeepkv93/clinicd/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "clinicd failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(configPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := storage.MigrateUp(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	repo, err := storage.NewSQLiteRepository(db)
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	rows, err := repo.ListAppointments(ctx, storage.AppointmentListFilter{})
	cancel()
	if err != nil {
		return fmt.Errorf("load appointments: %w", err)
	}
	appointments := storage.DomainAll(rows)

	controller, err := calendar.NewController(calendar.ControllerConfig{
		WeekStart:   calendar.WeekStart(cfg.WeekStart),
		SlotMinutes: cfg.SlotMinutes,
		Policy:      calendar.OverlapPolicy(cfg.OverlapPolicy),
		Grouping:    calendar.Grouping(cfg.Grouping),
		Locale:      locale.ForLanguage(locale.Language(cfg.Language)),
	})
	if err != nil {
		return fmt.Errorf("init calendar: %w", err)
	}
	controller.SetAppointments(appointments)

	runtimeCfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())
	if cfg.ReminderLeadMinutes > 0 {
		runtimeCfg.ReminderLeadMinutes = cfg.ReminderLeadMinutes
	}

	engine := scheduler.NewEngine(runtimeCfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()
	if runtimeCfg.ReminderLeadMinutes > 0 {
		lead := time.Duration(runtimeCfg.ReminderLeadMinutes) * time.Minute
		engine.ScheduleUpcoming(appointments, lead, time.Now())
	}

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if runtimeCfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}

	model := update.NewModelWithRuntime(controller, repo, engine, notifier, runtimeCfg)
	program := tea.NewProgram(model)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func configPath() string {
	if path := os.Getenv("CLINICD_CONFIG"); path != "" {
		return path
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "clinicd.yaml"
	}
	return filepath.Join(base, "clinicd", "config.yaml")
}
