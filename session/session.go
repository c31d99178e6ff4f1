// Package session starts the process-wide services around the game loop:
// logging, crash reporting, runtime stats and the telemetry stream.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/google/uuid"
	"github.com/milk9111/firstperson/common"
	"github.com/milk9111/firstperson/telemetry"
)

type Options struct {
	LogFile       string
	Debug         bool
	SentryDSN     string
	StatsAddr     string
	TelemetryAddr string
}

// Session owns the services started for one run. Close stops them in reverse
// start order and is safe to call more than once.
type Session struct {
	ID     string
	Hub    *telemetry.Hub
	Sentry bool

	mu       sync.Mutex
	cleanups []func()
	closed   bool
}

func Start(opts Options) (*Session, error) {
	if opts.LogFile != "" {
		if err := common.InitLogger(opts.LogFile, opts.Debug); err != nil {
			return nil, fmt.Errorf("session: init logger: %w", err)
		}
	}

	s := &Session{ID: uuid.New().String()}
	common.WithSession(s.ID)
	s.onClose(common.SyncLogger)

	if opts.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: opts.SentryDSN, Release: "firstperson"}); err != nil {
			common.Log.Warnw("sentry disabled", "error", err)
		} else {
			sentry.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("session", s.ID)
			})
			s.Sentry = true
			s.onClose(func() { sentry.Flush(2 * time.Second) })
		}
	}

	if opts.StatsAddr != "" {
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(opts.StatsAddr))
		mgr := statsview.New()
		go mgr.Start()
		s.onClose(mgr.Stop)
	}

	if opts.TelemetryAddr != "" {
		s.Hub = telemetry.NewHub()
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := telemetry.Serve(ctx, opts.TelemetryAddr, s.Hub); err != nil {
				common.Log.Warnw("telemetry server stopped", "addr", opts.TelemetryAddr, "error", err)
			}
		}()
		s.onClose(func() {
			cancel()
			<-done
		})
		common.Log.Infow("telemetry enabled", "addr", opts.TelemetryAddr)
	}

	return s, nil
}

func (s *Session) onClose(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanups = append(s.cleanups, fn)
}

func (s *Session) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cleanups := s.cleanups
	s.cleanups = nil
	s.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}
