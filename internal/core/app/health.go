package app

import (
	"context"
	"fmt"
	"time"
)

// RunStatus describes the most recent conversion.
type RunStatus struct {
	RunID    string        `json:"run_id,omitempty"`
	At       time.Time     `json:"at"`
	Duration time.Duration `json:"duration"`
	Files    int           `json:"files"`
	Error    string        `json:"error,omitempty"`
}

type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components map[string]string `json:"components"`
	LastRun    *RunStatus        `json:"last_run,omitempty"`
}

type HealthService struct {
	app *App
}

func NewHealthService(app *App) *HealthService {
	return &HealthService{app: app}
}

func (a *App) recordRun(p *Project, err error, elapsed time.Duration) {
	status := RunStatus{At: time.Now().UTC(), Duration: elapsed}
	if p != nil {
		status.RunID = p.RunID
		status.Files = len(p.Files)
	}
	if err != nil {
		status.Error = err.Error()
	}
	a.statusMu.Lock()
	a.lastRun = status
	a.statusMu.Unlock()
}

// LastRun returns the status of the latest conversion and whether one ran.
func (a *App) LastRun() (RunStatus, bool) {
	a.statusMu.RLock()
	defer a.statusMu.RUnlock()
	return a.lastRun, !a.lastRun.At.IsZero()
}

func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:     "up",
		Timestamp:  time.Now().UTC(),
		Components: make(map[string]string),
	}

	if analyzer := s.app.Analyzer(); analyzer != nil {
		status.Components["analyzer"] = fmt.Sprintf("ok (%d cached)", analyzer.CacheLen())
	} else {
		status.Components["analyzer"] = "disabled"
	}

	run, ok := s.app.LastRun()
	switch {
	case !ok:
		status.Components["conversion"] = "pending"
	case run.Error != "":
		status.Status = "degraded"
		status.Components["conversion"] = "failed"
		status.LastRun = &run
	default:
		status.Components["conversion"] = fmt.Sprintf("ok (%d files)", run.Files)
		status.LastRun = &run
	}
	return status
}
