// Package scheduler runs the appointment reminder engine: a min-heap
// of trigger times drained by a single timer goroutine.
package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/clinicd/internal/calendar"
	"github.com/sandeepkv93/clinicd/internal/model"
)

var ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")

// AppointmentReminder fires a lead interval before a timed appointment
// starts.
type AppointmentReminder struct {
	ID            string
	AppointmentID string
	PatientName   string
	StartsAt      time.Time
	TriggerAt     time.Time
}

type queueItem struct {
	reminder AppointmentReminder
}

type reminderQueue []queueItem

func (q reminderQueue) Len() int { return len(q) }

func (q reminderQueue) Less(i, j int) bool {
	return q[i].reminder.TriggerAt.Before(q[j].reminder.TriggerAt)
}

func (q reminderQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *reminderQueue) Push(x any) {
	*q = append(*q, x.(queueItem))
}

func (q *reminderQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

type Engine struct {
	mu      sync.Mutex
	queue   reminderQueue
	out     chan AppointmentReminder
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(reminderQueue, 0),
		out:    make(chan AppointmentReminder, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan AppointmentReminder {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Schedule(rem AppointmentReminder) error {
	if rem.TriggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return errors.New("scheduler: engine stopped")
	}

	heap.Push(&e.queue, queueItem{reminder: rem})
	e.signalWakeup()
	return nil
}

// ScheduleUpcoming enqueues a reminder for every timed appointment in
// the snapshot whose start, minus lead, is still in the future. All-day
// entries and appointments with unparseable dates or times are skipped.
// It returns how many reminders were scheduled.
func (e *Engine) ScheduleUpcoming(appointments []model.Appointment, lead time.Duration, now time.Time) int {
	scheduled := 0
	for _, apt := range appointments {
		startsAt, ok := appointmentStart(apt)
		if !ok {
			continue
		}
		trigger := startsAt.Add(-lead)
		if !trigger.After(now) {
			continue
		}
		err := e.Schedule(AppointmentReminder{
			ID:            "rem-" + apt.ID,
			AppointmentID: apt.ID,
			PatientName:   apt.PatientName,
			StartsAt:      startsAt,
			TriggerAt:     trigger,
		})
		if err == nil {
			scheduled++
		}
	}
	return scheduled
}

func appointmentStart(apt model.Appointment) (time.Time, bool) {
	if apt.AllDay() {
		return time.Time{}, false
	}
	day, err := calendar.ParseDateKey(apt.Date)
	if err != nil {
		return time.Time{}, false
	}
	mins, ok := calendar.ParseClock(apt.StartTime)
	if !ok {
		return time.Time{}, false
	}
	return day.Add(time.Duration(mins) * time.Minute), true
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.TriggerAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now())
			for _, rem := range due {
				select {
				case e.out <- rem:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (AppointmentReminder, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return AppointmentReminder{}, false
	}
	return e.queue[0].reminder, true
}

func (e *Engine) popDue(now time.Time) []AppointmentReminder {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]AppointmentReminder, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].reminder
		if next.TriggerAt.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(queueItem)
		out = append(out, item.reminder)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
