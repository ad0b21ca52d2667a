package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame rate, frame time spread, and memory statistics for
// performance monitoring. Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	lastFrame      time.Time
	minFrame       time.Duration
	maxFrame       time.Duration
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	now := time.Now()
	return &Profiler{
		frameCount:     0,
		lastTime:       now,
		lastFrame:      now,
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
	}
}

// SetUpdateInterval sets how often Tick logs statistics.
// Values <= 0 are treated as the 1 second default.
//
// Parameters:
//   - interval: time between log lines
func (p *Profiler) SetUpdateInterval(interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	p.updateInterval = interval
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, min/max frame time, heap usage, allocation rate,
// GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	currentTime := time.Now()

	// Track the shortest and longest frame within the interval; the spread
	// surfaces stutter that an average FPS number hides.
	frameTime := currentTime.Sub(p.lastFrame)
	p.lastFrame = currentTime
	if p.frameCount == 0 || frameTime < p.minFrame {
		p.minFrame = frameTime
	}
	if frameTime > p.maxFrame {
		p.maxFrame = frameTime
	}
	p.frameCount++

	elapsed := currentTime.Sub(p.lastTime)
	if elapsed >= p.updateInterval {
		fps := float64(p.frameCount) / elapsed.Seconds()

		runtime.ReadMemStats(&p.memStats)
		// Alloc: Bytes of allocated heap objects (live memory)
		// TotalAlloc: Cumulative bytes allocated for heap objects (increases forever, tracks churn)
		// Sys: Total bytes of memory obtained from the OS (actual process footprint)
		allocMB := float64(p.memStats.Alloc) / 1024 / 1024
		sysMB := float64(p.memStats.Sys) / 1024 / 1024

		// Calculate allocation rate (MB/sec)
		allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
		allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

		// Calculate GC pause stats (last pause and max recent pause)
		gcCount := p.memStats.NumGC
		var lastPauseUs, maxPauseUs uint64
		if gcCount > 0 {
			// PauseNs is a circular buffer of last 256 GC pauses
			lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

			// Find max pause since last tick
			startIdx := p.lastGCCount
			if gcCount-startIdx > 256 {
				startIdx = gcCount - 256
			}
			for i := startIdx; i < gcCount; i++ {
				pause := p.memStats.PauseNs[i%256] / 1000
				if pause > maxPauseUs {
					maxPauseUs = pause
				}
			}
		}

		log.Printf("[Profiler] FPS: %.2f | Frame: %.2f-%.2f ms | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
			fps, float64(p.minFrame.Microseconds())/1000, float64(p.maxFrame.Microseconds())/1000,
			allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

		p.frameCount = 0
		p.minFrame = 0
		p.maxFrame = 0
		p.lastTime = currentTime
		p.lastGCCount = gcCount
		p.lastTotalAlloc = p.memStats.TotalAlloc
		return true
	}

	return false
}
