package retro

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/retro/internal/extract"
	"github.com/fyrsmithlabs/retro/internal/habits"
	"github.com/fyrsmithlabs/retro/internal/logging"
	"github.com/fyrsmithlabs/retro/internal/rollup"
	"github.com/fyrsmithlabs/retro/internal/store"
)

// WeekStore persists weekly results.
type WeekStore interface {
	SaveWeek(ctx context.Context, rec store.WeekRecord) error
	GetWeek(ctx context.Context, week string, mode extract.Mode) (store.WeekRecord, error)
	DeleteWeek(ctx context.Context, week string) error
	ListMonth(ctx context.Context, month string, mode extract.Mode) ([]store.WeekRecord, error)
}

// Service runs retrospective extractions.
type Service struct {
	engine     *extract.Engine
	aggregator *rollup.Aggregator
	evaluator  *habits.Evaluator
	store      WeekStore
	metrics    *Metrics
	tracer     trace.Tracer
	logger     *logging.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithStore sets the week store used for saving and monthly rollups.
func WithStore(s WeekStore) Option {
	return func(svc *Service) {
		svc.store = s
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *logging.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.logger = l
		}
	}
}

// WithMetrics sets custom metrics.
func WithMetrics(m *Metrics) Option {
	return func(svc *Service) {
		svc.metrics = m
	}
}

// WithTracer sets a custom tracer.
func WithTracer(t trace.Tracer) Option {
	return func(svc *Service) {
		if t != nil {
			svc.tracer = t
		}
	}
}

// NewService creates a service around engine. A nil evaluator disables
// habit evaluation output but is not an error.
func NewService(engine *extract.Engine, evaluator *habits.Evaluator, opts ...Option) (*Service, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}
	metrics, _ := NewMetrics(nil)

	svc := &Service{
		engine:     engine,
		aggregator: rollup.NewAggregator(engine),
		evaluator:  evaluator,
		metrics:    metrics,
		tracer:     Tracer(),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Engine returns the extraction engine.
func (s *Service) Engine() *extract.Engine {
	return s.engine
}

// WeekInput is one week's raw reports.
type WeekInput struct {
	// Week is the week's start date (YYYY-MM-DD). Required when Save is set.
	Week         string
	TaskText     string
	CalendarText string
	// Modes defaults to both modes.
	Modes []extract.Mode
	Save  bool
}

// WeekReport is the outcome of ProcessWeek.
type WeekReport struct {
	RunID   string           `json:"run_id"`
	Week    string           `json:"week,omitempty"`
	Results []extract.Result `json:"results"`
}

// Result returns the result for mode, if it was computed.
func (r *WeekReport) Result(mode extract.Mode) (extract.Result, bool) {
	for _, res := range r.Results {
		if res.Mode == mode {
			return res, true
		}
	}
	return extract.Result{}, false
}

// ProcessWeek extracts both modes for one week and optionally saves them.
func (s *Service) ProcessWeek(ctx context.Context, in WeekInput) (*WeekReport, error) {
	if strings.TrimSpace(in.TaskText) == "" && strings.TrimSpace(in.CalendarText) == "" {
		return nil, ErrNoInput
	}
	if in.Week != "" || in.Save {
		if err := store.ValidateWeek(in.Week); err != nil {
			return nil, err
		}
	}
	if in.Save && s.store == nil {
		return nil, ErrNoStore
	}
	modes, err := normalizeModes(in.Modes)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx = logging.WithWeek(logging.WithRunID(ctx, runID), in.Week)
	ctx, span := s.tracer.Start(ctx, "retro.ProcessWeek", trace.WithAttributes(
		attribute.String("retro.run_id", runID),
		attribute.String("retro.week", in.Week),
		attribute.Bool("retro.save", in.Save),
	))
	defer span.End()

	rep := &WeekReport{RunID: runID, Week: in.Week, Results: make([]extract.Result, 0, len(modes))}
	for _, mode := range modes {
		res := s.engine.ExtractWeek(in.TaskText, in.CalendarText, mode)
		s.observeSections(ctx, mode, res.Sections)
		s.metrics.RecordWeek(ctx, mode)

		if in.Save {
			_, getErr := s.store.GetWeek(ctx, in.Week, mode)
			if err := s.store.SaveWeek(ctx, store.WeekRecord{Week: in.Week, Mode: mode, Result: res}); err != nil {
				err = fmt.Errorf("saving week %s (%s): %w", in.Week, mode, err)
				recordError(span, err)
				s.logger.Error(ctx, "failed to save week", zap.String("mode", string(mode)), zap.Error(err))
				return nil, err
			}
			if getErr == nil {
				s.logger.Info(ctx, "week replaced", zap.String("mode", string(mode)))
			}
		}
		rep.Results = append(rep.Results, res)
	}

	s.logger.Info(ctx, "week processed",
		zap.Int("modes", len(modes)),
		zap.Bool("saved", in.Save),
	)
	return rep, nil
}

// ForgetWeek removes every mode saved for week.
func (s *Service) ForgetWeek(ctx context.Context, week string) error {
	if err := store.ValidateWeek(week); err != nil {
		return err
	}
	if s.store == nil {
		return ErrNoStore
	}
	ctx = logging.WithWeek(ctx, week)
	if err := s.store.DeleteWeek(ctx, week); err != nil {
		s.logger.Error(ctx, "failed to forget week", zap.Error(err))
		return fmt.Errorf("forgetting week %s: %w", week, err)
	}
	s.logger.Info(ctx, "week forgotten")
	return nil
}

// MonthInput selects a month to roll up from the store.
type MonthInput struct {
	// Month is YYYY-MM.
	Month string
	// Modes defaults to both modes.
	Modes []extract.Mode
}

// MonthReport is the outcome of ProcessMonth.
type MonthReport struct {
	RunID   string          `json:"run_id"`
	Month   string          `json:"month"`
	Weeks   []string        `json:"weeks"`
	Results []rollup.Result `json:"results"`
}

// Result returns the rollup for mode, if it was computed.
func (r *MonthReport) Result(mode extract.Mode) (rollup.Result, bool) {
	for _, res := range r.Results {
		if res.Mode == mode {
			return res, true
		}
	}
	return rollup.Result{}, false
}

// ProcessMonth rolls up every saved week whose start date falls in the month.
func (s *Service) ProcessMonth(ctx context.Context, in MonthInput) (*MonthReport, error) {
	if err := store.ValidateMonth(in.Month); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, ErrNoStore
	}
	modes, err := normalizeModes(in.Modes)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx = logging.WithMonth(logging.WithRunID(ctx, runID), in.Month)
	ctx, span := s.tracer.Start(ctx, "retro.ProcessMonth", trace.WithAttributes(
		attribute.String("retro.run_id", runID),
		attribute.String("retro.month", in.Month),
	))
	defer span.End()

	rep := &MonthReport{RunID: runID, Month: in.Month, Results: make([]rollup.Result, 0, len(modes))}
	seen := map[string]bool{}
	for _, mode := range modes {
		recs, err := s.store.ListMonth(ctx, in.Month, mode)
		if err != nil {
			err = fmt.Errorf("listing month %s (%s): %w", in.Month, mode, err)
			recordError(span, err)
			return nil, err
		}
		weeks := make([]extract.Result, 0, len(recs))
		for _, rec := range recs {
			weeks = append(weeks, rec.Result)
			if !seen[rec.Week] {
				seen[rec.Week] = true
				rep.Weeks = append(rep.Weeks, rec.Week)
			}
		}
		rep.Results = append(rep.Results, s.AggregateMonth(ctx, mode, weeks))
	}

	if len(rep.Weeks) == 0 {
		recordError(span, ErrNoInput)
		s.logger.Warn(ctx, "no saved weeks for month")
		return nil, ErrNoInput
	}
	span.SetAttributes(attribute.Int("retro.weeks", len(rep.Weeks)))

	s.logger.Info(ctx, "month processed",
		zap.Int("weeks", len(rep.Weeks)),
		zap.Int("modes", len(modes)),
	)
	return rep, nil
}

// AggregateMonth rolls up already extracted weekly results for mode.
func (s *Service) AggregateMonth(ctx context.Context, mode extract.Mode, weeks []extract.Result) rollup.Result {
	res := s.aggregator.AggregateMonth(mode, weeks)
	s.observeSections(ctx, mode, res.Sections)
	s.metrics.RecordMonth(ctx, mode)
	return res
}

// HabitReport is the outcome of EvaluateHabits.
type HabitReport struct {
	RunID  string        `json:"run_id"`
	Weeks  int           `json:"weeks"`
	Result habits.Result `json:"result"`
}

// EvaluateHabits classifies a month's habit text over weeks weeks.
func (s *Service) EvaluateHabits(ctx context.Context, text string, weeks int) (*HabitReport, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoInput
	}
	if weeks < 1 {
		weeks = 1
	}

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	ctx, span := s.tracer.Start(ctx, "retro.EvaluateHabits", trace.WithAttributes(
		attribute.String("retro.run_id", runID),
		attribute.Int("retro.weeks", weeks),
	))
	defer span.End()

	rep := &HabitReport{RunID: runID, Weeks: weeks, Result: habits.Result{Good: []string{}, Bad: []string{}}}
	if s.evaluator == nil {
		s.logger.Warn(ctx, "no habit rules configured")
		return rep, nil
	}

	rep.Result = s.evaluator.Evaluate(text, weeks)
	for _, ev := range rep.Result.Evaluations {
		s.metrics.RecordHabit(ctx, ev.Rule, ev.Status)
		s.logger.Debug(ctx, "habit evaluated",
			zap.String("rule", ev.Rule),
			zap.String("status", ev.Status.String()),
			zap.Float64("value", ev.Value),
		)
	}
	span.SetAttributes(
		attribute.Int("retro.habits.good", len(rep.Result.Good)),
		attribute.Int("retro.habits.bad", len(rep.Result.Bad)),
	)

	s.logger.Info(ctx, "habits evaluated",
		zap.Int("good", len(rep.Result.Good)),
		zap.Int("bad", len(rep.Result.Bad)),
	)
	return rep, nil
}

func (s *Service) observeSections(ctx context.Context, mode extract.Mode, sections []extract.SectionItems) {
	for _, sec := range sections {
		s.metrics.RecordSectionItems(ctx, sec.Section, mode, len(sec.Items))
		s.logger.Debug(ctx, "section extracted",
			zap.String("mode", string(mode)),
			zap.String("section", sec.Section),
			zap.Int("items", len(sec.Items)),
		)
	}
}

func normalizeModes(modes []extract.Mode) ([]extract.Mode, error) {
	if len(modes) == 0 {
		return extract.Modes, nil
	}
	for _, m := range modes {
		if !m.Valid() {
			return nil, fmt.Errorf("unknown mode %q", m)
		}
	}
	return modes, nil
}
