package worker

import (
	"github.com/spec-kit/lead-service/internal/service"
)

// StartActivityWorker registers activity logging handlers.
func StartActivityWorker(activityService *service.ActivityService) {
	if activityService == nil {
		return
	}
	activityService.RegisterHandlers()
}
