package health

import (
	"context"
	"encoding/json"
	"runtime"
	"strconv"
	"time"

	"empire-builder/internal/application/economy"
	"empire-builder/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// Pinger is implemented by the save store backends. Nil means not configured.
type Pinger interface {
	Ping(ctx context.Context) error
}

// GameReader exposes the live projection. Nil omits the game section.
type GameReader interface {
	View() economy.View
}

// CollectResult is the /health/json payload minus the service name.
type CollectResult struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Dependencies map[string]DepStatus `json:"dependencies"`
	Game         *GameInfo            `json:"game,omitempty"`
}

type RuntimeInfo struct {
	UptimeSeconds int64      `json:"uptimeSeconds"`
	Memory        MemoryInfo `json:"memory"`
	Goroutines    int        `json:"goroutines"`
	Platform      string     `json:"platform"`
	GoVersion     string     `json:"goVersion"`
}

type MemoryInfo struct {
	Alloc    int `json:"alloc"`
	HeapUsed int `json:"heapUsed"`
}

type TrafficInfo struct {
	TotalRequests   int         `json:"totalRequests"`
	SuccessCount    int         `json:"successCount"`
	FailedCount     int         `json:"failedCount"`
	SuccessRate     string      `json:"successRate"`
	AvgResponseTime interface{} `json:"avgResponseTime"`
	LastRequest     interface{} `json:"lastRequest"`
}

type DepStatus struct {
	Status string      `json:"status"`
	PingMs interface{} `json:"pingMs"`
}

// GameInfo is a small summary of the running simulation.
type GameInfo struct {
	Wallet             string  `json:"wallet"`
	CPS                string  `json:"cps"`
	PrestigeMultiplier float64 `json:"prestigeMultiplier"`
	ManualActions      int64   `json:"manualActions"`
	AssetsOwned        int     `json:"assetsOwned"`
}

// CollectHealth pings the save store and Redis, reads the request counters the
// HealthMarker middleware keeps in Redis, and summarizes the game.
func CollectHealth(ctx context.Context, rdb *redis.Client, store Pinger, game GameReader) CollectResult {
	result := CollectResult{
		Dependencies: make(map[string]DepStatus),
	}

	storeStatus := "disconnected"
	var storePingMs *int64
	if store != nil {
		start := time.Now()
		if err := store.Ping(ctx); err == nil {
			ms := time.Since(start).Milliseconds()
			storePingMs = &ms
			storeStatus = "connected"
		} else {
			storeStatus = "error"
		}
	}
	result.Dependencies["save_store"] = DepStatus{Status: storeStatus, PingMs: storePingMs}

	redisStatus := "disconnected"
	var redisPingMs *int64
	stats := TrafficInfo{AvgResponseTime: 0, SuccessRate: "100"}
	startTimeMs := time.Now().UnixMilli()

	if rdb != nil {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err == nil {
			ms := time.Since(start).Milliseconds()
			redisPingMs = &ms
			redisStatus = "connected"
			stats, startTimeMs = readTraffic(ctx, rdb, startTimeMs)
		} else {
			redisStatus = "error"
		}
	}
	result.Dependencies["redis"] = DepStatus{Status: redisStatus, PingMs: redisPingMs}
	result.Traffic = stats

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	uptimeSec := (time.Now().UnixMilli() - startTimeMs) / 1000
	if uptimeSec < 0 {
		uptimeSec = 0
	}
	result.Runtime = RuntimeInfo{
		UptimeSeconds: uptimeSec,
		Memory:        MemoryInfo{Alloc: int(m.Alloc / 1024 / 1024), HeapUsed: int(m.HeapInuse / 1024 / 1024)},
		Goroutines:    runtime.NumGoroutine(),
		Platform:      runtime.GOOS + " (" + runtime.GOARCH + ")",
		GoVersion:     runtime.Version(),
	}

	if game != nil {
		v := game.View()
		owned := 0
		for _, a := range v.Assets {
			owned += a.Owned
		}
		result.Game = &GameInfo{
			Wallet:             v.WalletDisplay,
			CPS:                v.CPSDisplay,
			PrestigeMultiplier: v.PrestigeMultiplier,
			ManualActions:      v.ManualActions,
			AssetsOwned:        owned,
		}
	}

	// Redis only carries counters, so "disconnected" is fine; "error" is not.
	if storeStatus == "connected" && redisStatus != "error" {
		result.Status = "ok"
	} else {
		result.Status = "issue"
	}
	return result
}

func readTraffic(ctx context.Context, rdb *redis.Client, startTimeMs int64) (TrafficInfo, int64) {
	stats := TrafficInfo{AvgResponseTime: 0, SuccessRate: "100"}

	totalReq, _ := rdb.Get(ctx, middleware.KeyReqTotal).Result()
	totalErr, _ := rdb.Get(ctx, middleware.KeyReqErrors).Result()
	totalTime, _ := rdb.Get(ctx, middleware.KeyResTime).Result()
	resCount, _ := rdb.Get(ctx, middleware.KeyResCount).Result()
	startTimeStr, _ := rdb.Get(ctx, middleware.KeyStartTime).Result()
	lastReqStr, _ := rdb.Get(ctx, middleware.KeyLastReq).Result()

	if startTimeStr != "" {
		if t, err := strconv.ParseInt(startTimeStr, 10, 64); err == nil {
			startTimeMs = t
		}
	} else {
		rdb.Set(ctx, middleware.KeyStartTime, startTimeMs, 0)
	}

	stats.TotalRequests, _ = strconv.Atoi(totalReq)
	stats.FailedCount, _ = strconv.Atoi(totalErr)
	stats.SuccessCount = stats.TotalRequests - stats.FailedCount
	if stats.TotalRequests > 0 {
		stats.SuccessRate = strconv.FormatFloat(float64(stats.SuccessCount)/float64(stats.TotalRequests)*100, 'f', 1, 64)
	}
	timeSum, _ := strconv.ParseFloat(totalTime, 64)
	countSum, _ := strconv.Atoi(resCount)
	if countSum > 0 {
		stats.AvgResponseTime = strconv.FormatFloat(timeSum/float64(countSum), 'f', 2, 64)
	}
	if lastReqStr != "" {
		var lastReq map[string]interface{}
		_ = json.Unmarshal([]byte(lastReqStr), &lastReq)
		stats.LastRequest = lastReq
	}
	return stats, startTimeMs
}
