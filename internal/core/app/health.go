package app

import (
	"context"
	"fmt"
	"time"
)

type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components map[string]string `json:"components"`
}

type HealthService struct {
	app *App
}

func NewHealthService(app *App) *HealthService {
	return &HealthService{app: app}
}

func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:     "up",
		Timestamp:  time.Now().UTC(),
		Components: make(map[string]string),
	}

	if s.app.Registry == nil {
		status.Status = "degraded"
		status.Components["registry"] = "missing"
	} else {
		status.Components["registry"] = "ok"
	}

	if inst := s.app.Mocks(); inst != nil {
		status.Components["mocks"] = fmt.Sprintf("ok (%d modules mocked)", len(inst.MockedModules()))
	} else if len(s.app.Config.Mock.Modules) > 0 {
		status.Status = "degraded"
		status.Components["mocks"] = "missing but configured"
	}

	if s.app.attrStore != nil {
		status.Components["attr_store"] = "ok"
	} else if s.app.Config.DB.Enabled {
		status.Status = "degraded"
		status.Components["attr_store"] = "missing but enabled in config"
	}

	return status
}
