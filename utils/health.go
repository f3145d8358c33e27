package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external collaborators.
type HealthStatus struct {
	Redis     bool      `json:"redis"`
	RemoteAPI bool      `json:"remoteApi"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
// remotePing should be a cheap reachability probe against the schedule service.
func StartHealthMonitor(storeClient *redis.Client, remotePing func(context.Context) error) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			redisHealthy := storeClient.Ping(ctx).Err() == nil

			remoteHealthy := false
			if remotePing != nil {
				probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
				remoteHealthy = remotePing(probeCtx) == nil
				cancel()
			}

			mu.Lock()
			currentHealth = HealthStatus{
				Redis:     redisHealthy,
				RemoteAPI: remoteHealthy,
				CheckedAt: time.Now(),
			}
			mu.Unlock()
		}
	}()
}
