package worker

import (
	"github.com/spec-kit/movie-vote/internal/service"
)

// StartCacheWorker registers cache invalidation handlers.
func StartCacheWorker(cacheService *service.CacheMaintenanceService) {
	if cacheService == nil {
		return
	}
	cacheService.RegisterHandlers()
}
