package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"logistics/internal/core/application/risk"
	"logistics/internal/core/domain/model/event"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultRiskThreshold is the decision gate: a strictly greater score
// triggers a reassignment attempt.
const DefaultRiskThreshold = 0.7

// ScoringPolicy decides where the risk score is obtained relative to the
// store's exclusion domain.
type ScoringPolicy int

const (
	// ScoreWhileLocked scores inside the unit of work, so the outbound call
	// blocks every other store operation until it returns or falls back.
	ScoreWhileLocked ScoringPolicy = iota

	// ScoreBeforeLock checks the event under a short read lock, scores with
	// the lock released, then re-checks the ledger and both entities under
	// the lock before applying the decision.
	ScoreBeforeLock
)

func (p ScoringPolicy) String() string {
	if p == ScoreBeforeLock {
		return "score_before_lock"
	}
	return "score_while_locked"
}

// ProcessDelayEventResult summarizes the handling of one delay event.
type ProcessDelayEventResult struct {
	// Ignored is set for a replayed event id. Only EventID is filled then.
	Ignored bool

	EventID          string
	OrderID          string
	RiskScore        float64
	RiskSource       event.RiskSource
	Action           event.Action
	Outcome          event.ReassignmentOutcome
	OrderStatus      order.Status
	ReassignCount    int
	AssignedDriverID *string
}

// ProcessDelayEventCommandHandler runs the delay pipeline: idempotency check,
// validation, state transition, risk scoring, decision gate, reassignment and
// history append, as one unit of work.
//
// Example:
//
//	handler := NewProcessDelayEventCommandHandler(uowFactory, predictor, engine,
//	    WithRiskThreshold(0.7),
//	    WithLogger(logger),
//	)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown order or driver, nothing was recorded
//	case err != nil:
//	    // store failure
//	case result.Ignored:
//	    // duplicate event id
//	}
type ProcessDelayEventCommandHandler struct {
	uowFactory UoWFactory
	predictor  RiskPredictor
	engine     services.ReassignmentEngine

	threshold float64
	policy    ScoringPolicy
	now       func() time.Time
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

// ProcessDelayEventOption configures a ProcessDelayEventCommandHandler.
type ProcessDelayEventOption func(*ProcessDelayEventCommandHandler)

// WithRiskThreshold sets the score a reassignment attempt must exceed.
func WithRiskThreshold(threshold float64) ProcessDelayEventOption {
	return func(h *ProcessDelayEventCommandHandler) {
		h.threshold = threshold
	}
}

// WithScoringPolicy sets where scoring happens relative to the store lock.
func WithScoringPolicy(policy ScoringPolicy) ProcessDelayEventOption {
	return func(h *ProcessDelayEventCommandHandler) {
		h.policy = policy
	}
}

// WithClock sets the clock used to stamp history records.
func WithClock(now func() time.Time) ProcessDelayEventOption {
	return func(h *ProcessDelayEventCommandHandler) {
		h.now = now
	}
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) ProcessDelayEventOption {
	return func(h *ProcessDelayEventCommandHandler) {
		h.logger = logger
	}
}

// WithMetrics sets the collectors updated per event. Nil disables them.
func WithMetrics(m *metrics.Metrics) ProcessDelayEventOption {
	return func(h *ProcessDelayEventCommandHandler) {
		h.metrics = m
	}
}

// WithTracerProvider sets the provider of the handler's tracer. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) ProcessDelayEventOption {
	return func(h *ProcessDelayEventCommandHandler) {
		h.tracer = tp.Tracer("logistics/commands")
	}
}

func NewProcessDelayEventCommandHandler(
	uowFactory UoWFactory,
	predictor RiskPredictor,
	engine services.ReassignmentEngine,
	opts ...ProcessDelayEventOption,
) ProcessDelayEventCommandHandler {
	h := ProcessDelayEventCommandHandler{
		uowFactory: uowFactory,
		predictor:  predictor,
		engine:     engine,
		threshold:  DefaultRiskThreshold,
		policy:     ScoreWhileLocked,
		now:        time.Now,
		logger:     slog.Default(),
		tracer:     otel.Tracer("logistics/commands"),
	}
	for _, opt := range opts {
		opt(&h)
	}
	h.logger = h.logger.With("component", "delay_event_processor")
	return h
}

// Handle processes one delay event.
//
// Cancellation of ctx is ignored once the event is admitted to the pipeline:
// only the outbound scoring attempts carry their own timeouts.
//
// A replayed event id returns an ignored result without validation or any
// mutation. An unknown order or driver fails with errs.ErrObjectNotFound and
// records nothing. Scoring failures and reassignment outcomes are never
// errors: they are reported through the result.
func (h ProcessDelayEventCommandHandler) Handle(
	ctx context.Context,
	cmd ProcessDelayEventCommand,
) (result ProcessDelayEventResult, err error) {
	if err = cmd.Validate(); err != nil {
		return ProcessDelayEventResult{}, err
	}
	ctx = context.WithoutCancel(ctx)

	started := time.Now()
	ctx, span := h.tracer.Start(ctx, "ProcessDelayEvent", trace.WithAttributes(
		attribute.String("event.id", cmd.EventID()),
		attribute.String("order.id", cmd.OrderID()),
		attribute.String("driver.id", cmd.DriverID()),
		attribute.String("scoring.policy", h.policy.String()),
	))
	defer func() {
		h.metrics.ObserveEvent(eventResult(result, err), time.Since(started))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "delay event rejected")
		} else {
			span.SetAttributes(
				attribute.Bool("event.ignored", result.Ignored),
				attribute.String("decision.action", result.Action.String()),
			)
		}
		span.End()
	}()

	h.logger.InfoContext(ctx, "delay event received",
		"event_id", cmd.EventID(),
		"order_id", cmd.OrderID(),
		"driver_id", cmd.DriverID(),
		"reason", cmd.Reason(),
	)

	var assessment *risk.Assessment
	if h.policy == ScoreBeforeLock {
		needsScore, ignored, preErr := h.precheck(ctx, cmd)
		if preErr != nil {
			return ProcessDelayEventResult{}, preErr
		}
		if ignored {
			return ProcessDelayEventResult{Ignored: true, EventID: cmd.EventID()}, nil
		}
		if needsScore {
			a := h.predictor.Predict(ctx, riskRequest(cmd))
			assessment = &a
		}
	}

	return h.apply(ctx, cmd, assessment)
}

// precheck runs the admission checks under a short lock without mutating
// anything. It reports whether the event still needs a score.
func (h ProcessDelayEventCommandHandler) precheck(
	ctx context.Context,
	cmd ProcessDelayEventCommand,
) (needsScore bool, ignored bool, err error) {
	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return false, false, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	processed, err := uow.EventRepository().IsProcessed(ctx, cmd.EventID())
	if err != nil {
		return false, false, err
	}
	if processed {
		h.logger.InfoContext(ctx, "duplicate event ignored", "event_id", cmd.EventID())
		return false, true, nil
	}

	o, err := h.admit(ctx, uow, cmd)
	if err != nil {
		return false, false, err
	}

	return !o.IsCancelled(), false, nil
}

// apply runs the pipeline under the store's exclusion domain. When
// precomputed is nil the score is obtained while the lock is held.
func (h ProcessDelayEventCommandHandler) apply(
	ctx context.Context,
	cmd ProcessDelayEventCommand,
	precomputed *risk.Assessment,
) (ProcessDelayEventResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ProcessDelayEventResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	events := uow.EventRepository()
	processed, err := events.IsProcessed(ctx, cmd.EventID())
	if err != nil {
		return ProcessDelayEventResult{}, err
	}
	if processed {
		h.logger.InfoContext(ctx, "duplicate event ignored", "event_id", cmd.EventID())
		return ProcessDelayEventResult{Ignored: true, EventID: cmd.EventID()}, nil
	}

	o, err := h.admit(ctx, uow, cmd)
	if err != nil {
		return ProcessDelayEventResult{}, err
	}

	if o.IsCancelled() {
		h.logger.InfoContext(ctx, "order already cancelled, recording event without action",
			"event_id", cmd.EventID(), "order_id", cmd.OrderID())
		return h.record(ctx, uow, cmd, o, risk.Assessment{Source: event.RiskSourceSkipped}, event.OutcomeNone)
	}

	if err = o.MarkDelayed(); err != nil {
		return ProcessDelayEventResult{}, err
	}
	h.logger.InfoContext(ctx, "order marked delayed", "order_id", cmd.OrderID())

	assessment := h.assess(ctx, cmd, precomputed)

	outcome := event.OutcomeNone
	if assessment.Score > h.threshold {
		h.logger.InfoContext(ctx, "risk above threshold, initiating reassignment",
			"order_id", cmd.OrderID(), "risk_score", assessment.Score, "threshold", h.threshold)

		outcome, err = h.reassign(ctx, uow, cmd, o)
		if err != nil {
			return ProcessDelayEventResult{}, err
		}
	} else {
		h.logger.InfoContext(ctx, "risk within threshold, maintaining assignment",
			"order_id", cmd.OrderID(), "risk_score", assessment.Score, "threshold", h.threshold)
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return ProcessDelayEventResult{}, err
	}

	return h.record(ctx, uow, cmd, o, assessment, outcome)
}

// admit checks that both the order and the driver exist.
func (h ProcessDelayEventCommandHandler) admit(
	ctx context.Context,
	uow UoW,
	cmd ProcessDelayEventCommand,
) (*order.Order, error) {
	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.WarnContext(ctx, "order not found", "event_id", cmd.EventID(), "order_id", cmd.OrderID())
		}
		return nil, err
	}

	if _, err = uow.DriverRepository().Get(ctx, cmd.DriverID()); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.WarnContext(ctx, "driver not found", "event_id", cmd.EventID(), "driver_id", cmd.DriverID())
		}
		return nil, err
	}

	return o, nil
}

func (h ProcessDelayEventCommandHandler) assess(
	ctx context.Context,
	cmd ProcessDelayEventCommand,
	precomputed *risk.Assessment,
) risk.Assessment {
	assessment := risk.Assessment{}
	if precomputed != nil {
		assessment = *precomputed
	} else {
		assessment = h.predictor.Predict(ctx, riskRequest(cmd))
	}
	assessment.Score = risk.Clamp(assessment.Score)

	h.logger.InfoContext(ctx, "risk assessed",
		"order_id", cmd.OrderID(),
		"risk_score", assessment.Score,
		"source", assessment.Source,
	)
	return assessment
}

func (h ProcessDelayEventCommandHandler) reassign(
	ctx context.Context,
	uow UoW,
	cmd ProcessDelayEventCommand,
	o *order.Order,
) (event.ReassignmentOutcome, error) {
	drivers := uow.DriverRepository()
	all, err := drivers.GetAll(ctx)
	if err != nil {
		return event.OutcomeNone, err
	}

	result, err := h.engine.Reassign(o, cmd.DriverID(), all)
	if err != nil {
		return event.OutcomeNone, err
	}

	if result.Assigned != nil {
		if err = drivers.Update(ctx, result.Assigned); err != nil {
			return event.OutcomeNone, err
		}
	}
	if result.Released != nil {
		if err = drivers.Update(ctx, result.Released); err != nil {
			return event.OutcomeNone, err
		}
	}

	switch result.Outcome {
	case event.OutcomeReassigned:
		h.logger.InfoContext(ctx, "order reassigned",
			"order_id", cmd.OrderID(),
			"new_driver_id", result.Assigned.ID(),
			"reassign_count", o.ReassignCount(),
		)
	case event.OutcomeExhausted:
		h.logger.WarnContext(ctx, "reassignment limit reached, order cancelled",
			"order_id", cmd.OrderID(),
			"reassign_count", o.ReassignCount(),
			"max_reassignments", h.engine.MaxReassignments(),
		)
	case event.OutcomeNoDriverAvailable:
		h.logger.WarnContext(ctx, "no available driver for reassignment", "order_id", cmd.OrderID())
	case event.OutcomeNone:
	}

	return result.Outcome, nil
}

// record appends the ledger entry and history record, then commits.
func (h ProcessDelayEventCommandHandler) record(
	ctx context.Context,
	uow UoW,
	cmd ProcessDelayEventCommand,
	o *order.Order,
	assessment risk.Assessment,
	outcome event.ReassignmentOutcome,
) (ProcessDelayEventResult, error) {
	action := outcome.Action()
	if assessment.Source == event.RiskSourceSkipped {
		action = event.ActionOrderAlreadyCancelled
	}

	rec := event.NewRecord(
		cmd.EventID(),
		h.now(),
		cmd.OrderID(),
		cmd.DriverID(),
		cmd.Reason(),
		assessment.Score,
		assessment.Source,
		action,
		outcome,
		o.Status(),
	)
	if err := uow.EventRepository().Record(ctx, rec); err != nil {
		return ProcessDelayEventResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return ProcessDelayEventResult{}, err
	}

	h.metrics.ObserveDecision(action.String(), outcome.String())
	h.logger.InfoContext(ctx, "delay event processed",
		"event_id", cmd.EventID(),
		"order_id", cmd.OrderID(),
		"action", action,
		"order_status", o.Status().String(),
		"reassign_count", o.ReassignCount(),
	)

	return ProcessDelayEventResult{
		EventID:          cmd.EventID(),
		OrderID:          cmd.OrderID(),
		RiskScore:        assessment.Score,
		RiskSource:       assessment.Source,
		Action:           action,
		Outcome:          outcome,
		OrderStatus:      o.Status(),
		ReassignCount:    o.ReassignCount(),
		AssignedDriverID: o.AssignedDriver(),
	}, nil
}

func riskRequest(cmd ProcessDelayEventCommand) ports.RiskRequest {
	return ports.RiskRequest{
		OrderID:  cmd.OrderID(),
		DriverID: cmd.DriverID(),
		Reason:   cmd.Reason(),
	}
}

func eventResult(result ProcessDelayEventResult, err error) string {
	switch {
	case err == nil && result.Ignored:
		return metrics.ResultIgnored
	case err == nil:
		return metrics.ResultProcessed
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid):
		return metrics.ResultRejected
	default:
		return metrics.ResultFailed
	}
}
