package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ncobase/voxtask/concurrency/worker"
	"github.com/ncobase/voxtask/internal/ai"
	"github.com/ncobase/voxtask/internal/automation"
	"github.com/ncobase/voxtask/internal/task"
	"github.com/ncobase/voxtask/internal/voice"
	"github.com/ncobase/voxtask/logging/logger"
)

// CommandService runs the voice and text command pipeline: transcribe,
// parse, execute against the store, record activity, notify n8n.
type CommandService struct {
	tasks   *TaskService
	voice   *VoiceService
	parser  ai.IntentParser
	trigger automation.Trigger
	pool    *worker.Pool
	logger  *logger.Logger
	now     func() time.Time
}

// NewCommandService creates a new command service.
func NewCommandService(tasks *TaskService, v *VoiceService, parser ai.IntentParser, trigger automation.Trigger,
	pool *worker.Pool, logger *logger.Logger, now func() time.Time) *CommandService {
	return &CommandService{
		tasks:   tasks,
		voice:   v,
		parser:  parser,
		trigger: trigger,
		pool:    pool,
		logger:  logger,
		now:     now,
	}
}

// Outcome is what executing a command did.
type Outcome struct {
	Action   string       `json:"action"`
	Success  bool         `json:"success"`
	Message  string       `json:"message"`
	Task     *task.Task   `json:"task,omitempty"`
	Tasks    []*task.Task `json:"tasks,omitempty"`
	AudioURL string       `json:"audioUrl,omitempty"`
}

// CommandResult is the response of the command endpoints.
type CommandResult struct {
	Transcript *voice.Transcript `json:"transcript,omitempty"`
	Command    *ai.Command       `json:"command"`
	Result     *Outcome          `json:"result"`
}

// RunVoice transcribes audio and runs the resulting text.
func (s *CommandService) RunVoice(ctx context.Context, audio *voice.Audio) (*CommandResult, error) {
	tr, err := s.voice.Transcribe(ctx, audio)
	if err != nil {
		return nil, err
	}
	res, err := s.RunText(ctx, tr.Text)
	if err != nil {
		return nil, err
	}
	res.Transcript = tr
	return res, nil
}

// RunText parses text and executes the command.
func (s *CommandService) RunText(ctx context.Context, text string) (*CommandResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &task.ValidationError{Field: "text", Message: "Command text is required"}
	}
	cmd, err := s.parser.ParseIntent(ctx, text)
	if err != nil {
		return nil, err
	}

	out, err := s.execute(ctx, cmd, text)
	if err != nil {
		return nil, err
	}
	out.Action = cmd.Intent
	out.AudioURL = s.voice.Feedback(ctx, out.Message)

	related := ""
	if out.Task != nil {
		related = out.Task.ID
	}
	s.tasks.RecordActivity(ctx, &task.UserActivity{
		Action:      cmd.Intent,
		Command:     text,
		Timestamp:   s.now().UTC(),
		RelatedTask: related,
		Success:     out.Success,
		Details:     out.Message,
	})
	s.dispatch(ctx, cmd, text)

	return &CommandResult{Command: cmd, Result: out}, nil
}

// dispatch forwards the command to the voice-command workflow in the
// background. Failures are only logged.
func (s *CommandService) dispatch(ctx context.Context, cmd *ai.Command, text string) {
	if s.pool == nil || s.trigger == nil {
		return
	}
	payload := automation.VoiceCommand{Intent: cmd.Intent, Entities: cmd.Entities, Transcript: text}
	err := s.pool.Submit(ctx, automation.WorkflowVoiceCommand, func(ctx context.Context) error {
		_, err := automation.TriggerVoiceCommand(ctx, s.trigger, payload)
		return err
	})
	if err != nil {
		s.logger.Warn(ctx, "voice command dispatch skipped", "error", err)
	}
}

// DispatchState reports the background dispatch pool as disabled, idle,
// busy or running.
func (s *CommandService) DispatchState() string {
	switch {
	case s.pool == nil || s.trigger == nil:
		return "disabled"
	case s.pool.IsIdle():
		return "idle"
	case s.pool.IsBusy():
		return "busy"
	}
	return "running"
}

func (s *CommandService) execute(ctx context.Context, cmd *ai.Command, text string) (*Outcome, error) {
	now := s.now()
	switch cmd.Intent {
	case ai.IntentCreateTask:
		return s.create(ctx, cmd, text, now)
	case ai.IntentCompleteTask:
		return s.onMatch(ctx, cmd, func(t *task.Task) (*Outcome, error) {
			done, err := s.tasks.Complete(ctx, t.ID)
			if err != nil {
				return nil, err
			}
			return &Outcome{Success: true, Task: done, Message: fmt.Sprintf("Marked %q as completed", done.Title)}, nil
		})
	case ai.IntentUpdateTask:
		return s.onMatch(ctx, cmd, func(t *task.Task) (*Outcome, error) {
			p := &task.Patch{}
			if d := resolveDate(cmd.Entity("date"), now); d != "" {
				p.DueDate = &d
			}
			if c := resolveClock(cmd.Entity("time")); c != "" {
				p.Time = &c
			}
			if pr, ok := task.ParsePriority(cmd.Entity("priority")); ok {
				p.Priority = &pr
			}
			if p.Empty() {
				return &Outcome{Message: fmt.Sprintf("Nothing to change on %q", t.Title), Task: t}, nil
			}
			updated, err := s.tasks.Update(ctx, t.ID, p)
			if err != nil {
				return nil, err
			}
			return &Outcome{Success: true, Task: updated, Message: fmt.Sprintf("Updated %q", updated.Title)}, nil
		})
	case ai.IntentDeleteTask:
		return s.onMatch(ctx, cmd, func(t *task.Task) (*Outcome, error) {
			if _, err := s.tasks.Delete(ctx, t.ID); err != nil {
				return nil, err
			}
			return &Outcome{Success: true, Task: t, Message: fmt.Sprintf("Deleted %q", t.Title)}, nil
		})
	case ai.IntentQueryTasks:
		return s.query(ctx, cmd.Entity("timeframe"), now)
	}
	return &Outcome{Message: "Sorry, I didn't understand that command. Try asking me to create, complete or list tasks."}, nil
}

func (s *CommandService) create(ctx context.Context, cmd *ai.Command, text string, now time.Time) (*Outcome, error) {
	title := cmd.Entity("task")
	if title == "" {
		title = text
	}
	req := &CreateTaskRequest{
		Title:    title,
		DueDate:  resolveDate(cmd.Entity("date"), now),
		Time:     resolveClock(cmd.Entity("time")),
		Priority: cmd.Entity("priority"),
		Project:  cmd.Entity("project"),
	}
	if _, ok := task.ParsePriority(req.Priority); !ok {
		req.Priority = ""
	}
	t, err := s.tasks.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	msg := fmt.Sprintf("Created task %q", t.Title)
	if t.DueDate != "" {
		msg += " for " + t.DueDate
		if t.Time != "" {
			msg += " at " + t.Time
		}
	}
	return &Outcome{Success: true, Task: t, Message: msg}, nil
}

// onMatch runs fn on the open task named by the command's reference.
func (s *CommandService) onMatch(ctx context.Context, cmd *ai.Command, fn func(*task.Task) (*Outcome, error)) (*Outcome, error) {
	ref := cmd.Entity("task_reference")
	if ref == "" {
		ref = cmd.Entity("task")
	}
	t, err := s.tasks.FindOpen(ctx, ref)
	if errors.Is(err, task.ErrNotFound) {
		return &Outcome{Message: fmt.Sprintf("No open task matching %q", ref)}, nil
	}
	if err != nil {
		return nil, err
	}
	return fn(t)
}

func (s *CommandService) query(ctx context.Context, timeframe string, now time.Time) (*Outcome, error) {
	var (
		tasks []*task.Task
		err   error
		label string
	)
	switch strings.ToLower(timeframe) {
	case "tomorrow":
		label = "tomorrow"
		tasks, err = s.tasks.ListForDate(ctx, now.AddDate(0, 0, 1).Format(time.DateOnly))
	case "week", "this week":
		label = "this week"
		tasks, err = s.tasks.List(ctx)
		tasks = within(tasks, now, 7)
	case "all":
		label = "in total"
		tasks, err = s.tasks.List(ctx)
	default:
		label = "today"
		tasks, err = s.tasks.ListForDate(ctx, now.Format(time.DateOnly))
	}
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []*task.Task{}
	}
	return &Outcome{
		Success: true,
		Tasks:   tasks,
		Message: fmt.Sprintf("You have %d task(s) %s", len(tasks), label),
	}, nil
}

// within keeps tasks due from now's date through the following days-1 days.
func within(tasks []*task.Task, now time.Time, days int) []*task.Task {
	from := now.Format(time.DateOnly)
	to := now.AddDate(0, 0, days-1).Format(time.DateOnly)
	out := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.DueDate != "" && t.DueDate >= from && t.DueDate <= to {
			out = append(out, t)
		}
	}
	return out
}
