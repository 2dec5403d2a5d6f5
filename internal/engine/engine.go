// Package engine wires command validation, dedup, replay, domain decision,
// and event append into the single write path of the kernel.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Fordjour12/seila/internal/domain/aggregate"
	"github.com/Fordjour12/seila/internal/domain/command"
	"github.com/Fordjour12/seila/internal/domain/event"
	"github.com/Fordjour12/seila/internal/domain/replay"
	"github.com/Fordjour12/seila/internal/storage"
)

// Result is the outcome of handling one command.
type Result struct {
	// Deduplicated is true when the idempotency key was already used; Events
	// then holds the previously appended events and nothing new was written.
	Deduplicated bool
	// Events holds the appended (or previously appended) events.
	Events []event.Event
	// Rejections holds domain validation failures. Non-empty rejections mean
	// no events were appended.
	Rejections []command.Rejection
}

// Handler handles commands against the event store.
type Handler struct {
	commands *command.Registry
	events   *event.Registry
	store    storage.EventStore
	now      func() time.Time
	tracer   trace.Tracer
}

// NewHandler creates a command handler. A nil now falls back to wall-clock
// time.
func NewHandler(commands *command.Registry, events *event.Registry, store storage.EventStore, now func() time.Time) (*Handler, error) {
	if commands == nil {
		return nil, errors.New("command registry is required")
	}
	if events == nil {
		return nil, errors.New("event registry is required")
	}
	if store == nil {
		return nil, errors.New("event store is required")
	}
	if now == nil {
		now = time.Now
	}
	return &Handler{
		commands: commands,
		events:   events,
		store:    store,
		now:      now,
		tracer:   otel.Tracer("seila/engine"),
	}, nil
}

// Handle validates, dedups, decides, and appends one command. The dedup
// lookup is the first store-visible effect: a replayed key returns the
// original events and writes nothing.
func (h *Handler) Handle(ctx context.Context, cmd command.Command) (Result, error) {
	ctx, span := h.tracer.Start(ctx, "engine.Handle",
		trace.WithAttributes(attribute.String("command.type", string(cmd.Type))))
	defer span.End()

	cmd, err := h.commands.ValidateForDecision(cmd)
	if err != nil {
		return Result{}, fmt.Errorf("validate command: %w", err)
	}

	stored, err := h.store.FindByIdempotencyKey(ctx, cmd.UserID, cmd.IdempotencyKey)
	if err == nil {
		span.SetAttributes(attribute.Bool("command.deduplicated", true))
		return Result{Deduplicated: true, Events: stored}, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return Result{}, fmt.Errorf("dedup lookup: %w", err)
	}

	state, err := replay.Load(ctx, h.store, cmd.UserID, 0)
	if err != nil {
		return Result{}, fmt.Errorf("replay state: %w", err)
	}

	decision := aggregate.Decide(state, cmd, h.now)
	if len(decision.Rejections) > 0 {
		return Result{Rejections: decision.Rejections}, nil
	}
	if len(decision.Events) == 0 {
		return Result{}, errors.New("decision produced neither events nor rejections")
	}

	validated := make([]event.Event, 0, len(decision.Events))
	for _, evt := range decision.Events {
		checked, err := h.events.ValidateForAppend(evt)
		if err != nil {
			return Result{}, fmt.Errorf("validate event %s: %w", evt.Type, err)
		}
		validated = append(validated, checked)
	}

	appended, err := h.store.AppendEvents(ctx, validated)
	if err != nil {
		// A raced duplicate lost the append; surface the winner's events.
		if errors.Is(err, storage.ErrIdempotencyConflict) {
			stored, findErr := h.store.FindByIdempotencyKey(ctx, cmd.UserID, cmd.IdempotencyKey)
			if findErr != nil {
				return Result{}, fmt.Errorf("load raced events: %w", findErr)
			}
			span.SetAttributes(attribute.Bool("command.deduplicated", true))
			return Result{Deduplicated: true, Events: stored}, nil
		}
		return Result{}, fmt.Errorf("append events: %w", err)
	}
	return Result{Events: appended}, nil
}
