package handle

import (
	"context"
	"log/slog"

	"github.com/gridwork/jobflow/internal/schedd"
)

// act applies a queue action to every job matching the handle.
func (h *ConstraintHandle) act(ctx context.Context, a schedd.Actor, action schedd.Action) (schedd.Ad, error) {
	ad, err := a.Act(ctx, action, h.ConstraintString())
	if err != nil {
		return nil, err
	}
	slog.Info("queue action applied",
		"action", action.String(),
		"constraint", h.ConstraintString(),
	)
	return ad, nil
}

// Remove removes the matched jobs from the queue.
func (h *ConstraintHandle) Remove(ctx context.Context, a schedd.Actor) (schedd.Ad, error) {
	return h.act(ctx, a, schedd.ActionRemove)
}

// Hold holds the matched jobs.
func (h *ConstraintHandle) Hold(ctx context.Context, a schedd.Actor) (schedd.Ad, error) {
	return h.act(ctx, a, schedd.ActionHold)
}

// Release releases held jobs back to the idle state.
func (h *ConstraintHandle) Release(ctx context.Context, a schedd.Actor) (schedd.Ad, error) {
	return h.act(ctx, a, schedd.ActionRelease)
}

// Pause suspends running jobs; they keep their claimed resources.
func (h *ConstraintHandle) Pause(ctx context.Context, a schedd.Actor) (schedd.Ad, error) {
	return h.act(ctx, a, schedd.ActionSuspend)
}

// Resume un-pauses suspended jobs.
func (h *ConstraintHandle) Resume(ctx context.Context, a schedd.Actor) (schedd.Ad, error) {
	return h.act(ctx, a, schedd.ActionContinue)
}

// Vacate forces running jobs off their execute resources; they become
// idle again.
func (h *ConstraintHandle) Vacate(ctx context.Context, a schedd.Actor) (schedd.Ad, error) {
	return h.act(ctx, a, schedd.ActionVacate)
}

// Edit sets an attribute on the matched jobs. Edits do not affect jobs
// that have already matched resources; vacate first when the new value
// must take effect.
func (h *ConstraintHandle) Edit(ctx context.Context, a schedd.Actor, attr, value string) (schedd.Ad, error) {
	return a.Edit(ctx, h.ConstraintString(), attr, value)
}
