package app

import (
	"context"
	"fmt"

	"locsmith/internal/domain"
	"locsmith/internal/ports"
	"locsmith/internal/usecase/extractor"
	"locsmith/internal/usecase/scheduler"
)

type SyncAPI struct {
	sched   *scheduler.Scheduler
	batches ports.BatchRepository
}

func NewSyncAPI(sched *scheduler.Scheduler, batches ports.BatchRepository) *SyncAPI {
	return &SyncAPI{sched: sched, batches: batches}
}

type RenderResultRequest struct {
	Status string            `json:"status"`
	Blocks map[string]string `json:"blocks,omitempty"`
	Code   string            `json:"code,omitempty"`
}

// RenderResult stages whatever payloads the render carried and then applies
// the render outcome: success kicks off a batch, failure discards the staged
// payloads. Returns the resulting sync state.
func (a *SyncAPI) RenderResult(ctx context.Context, req RenderResultRequest) (string, error) {
	if req.Blocks != nil {
		a.sched.StageBlocks(req.Blocks)
	}
	if req.Code != "" {
		a.sched.StageExtraction(extractor.Extract(req.Code))
	}
	switch req.Status {
	case "ok":
		a.sched.RenderSucceeded()
	case "failed":
		a.sched.RenderFailed()
	default:
		return "", fmt.Errorf("%w: status must be ok or failed", domain.ErrInvalidField)
	}
	return a.sched.State(), nil
}

func (a *SyncAPI) State() string { return a.sched.State() }

func (a *SyncAPI) History(ctx context.Context, limit int) ([]*domain.BatchRun, error) {
	return a.batches.List(ctx, limit)
}
