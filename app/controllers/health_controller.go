package controllers

import (
	"net/http"
	"time"

	"github.com/shringarlabs/shringar/pkg/cache"
	"github.com/shringarlabs/shringar/pkg/database"
	"github.com/shringarlabs/shringar/pkg/response"
)

var bootedAt = time.Now()

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

// Check reports process liveness plus dependency reachability. The
// cache is optional so its state never fails the check.
func (c *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(bootedAt).Round(time.Second).String(),
	}

	if err := database.Ping(); err != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
	} else {
		status["database"] = "ok"
	}

	if cache.Available() {
		status["cache"] = "ok"
	} else {
		status["cache"] = "unavailable"
	}

	code := http.StatusOK
	if status["status"] != "ok" {
		code = http.StatusServiceUnavailable
	}
	response.JSON(w, code, status)
}
