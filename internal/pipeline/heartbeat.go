package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/talentwire/candidate-scorer/internal/frontend"
)

// Heartbeat cadence and ceiling. Progress is advisory: it exists so the front
// end can show motion during the long scoring phase, and it never reaches 100
// until the run is actually terminal.
const (
	heartbeatInterval = 4 * time.Second
	heartbeatStep     = 4
	heartbeatCeiling  = 90
)

// heartbeat periodically pushes an incrementing WORKING progress value to the
// front end while the scoring sub-computations run.
type heartbeat struct {
	notifier frontend.Notifier
	req      Request
	progress int

	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func newHeartbeat(notifier frontend.Notifier, req Request, startProgress int) *heartbeat {
	return &heartbeat{
		notifier: notifier,
		req:      req,
		progress: startProgress,
		done:     make(chan struct{}),
	}
}

func (h *heartbeat) start(ctx context.Context) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()

		for {
			select {
			case <-h.done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if h.progress+heartbeatStep <= heartbeatCeiling {
					h.progress += heartbeatStep
				}
				h.notifier.NotifyApplication(ctx, h.req.ClientApplicationID, frontend.StatusUpdate{
					CompanyID:        h.req.CompanyID,
					ProcessingStatus: frontend.StatusWorking,
					Progress:         h.progress,
				})
			}
		}
	}()
}

// stop halts the heartbeat and waits for any in-flight push to finish.
// Safe to call more than once.
func (h *heartbeat) stop() {
	h.once.Do(func() { close(h.done) })
	h.wg.Wait()
}
