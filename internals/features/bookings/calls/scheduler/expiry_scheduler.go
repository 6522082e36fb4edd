package scheduler

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"tripku_backend/internals/features/bookings/calls/service"
)

// StartCallExpiryScheduler periodically sweeps scheduled calls whose start
// time has passed to expired. Interval comes from CALL_EXPIRY_SWEEP_MINUTES
// (default: 15).
func StartCallExpiryScheduler(svc *service.CallService) {
	go func() {
		intervalMin := 15
		if val := os.Getenv("CALL_EXPIRY_SWEEP_MINUTES"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				intervalMin = parsed
			}
		}

		for {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			count, err := svc.ExpirePastCalls(ctx)
			cancel()
			if err != nil {
				log.Printf("[CALL SWEEP] expire failed: %v", err)
			} else if count > 0 {
				log.Printf("[CALL SWEEP] %d call(s) expired", count)
			}

			time.Sleep(time.Duration(intervalMin) * time.Minute)
		}
	}()
}
