package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/firstperson/common"
	"github.com/milk9111/firstperson/session"
	"golang.design/x/clipboard"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code.
func run() int {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	logFile := flag.String("log", "logs/firstperson.log", "log file path")
	telemetryAddr := flag.String("telemetry", "", "serve player telemetry over websocket on this address (e.g. :8090)")
	statsAddr := flag.String("statsview", "", "serve runtime stats on this address (e.g. localhost:18066)")
	sentryDSN := flag.String("sentry-dsn", os.Getenv("SENTRY_DSN"), "sentry DSN for crash reports")
	flag.Parse()

	sess, err := session.Start(session.Options{
		LogFile:       *logFile,
		Debug:         *debug,
		SentryDSN:     *sentryDSN,
		StatsAddr:     *statsAddr,
		TelemetryAddr: *telemetryAddr,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer sess.Close()
	if sess.Sentry {
		defer sentry.Recover()
	}

	opts := GameOptions{Debug: *debug, Session: sess.ID}
	if sess.Hub != nil {
		opts.Publisher = sess.Hub
	}
	if err := clipboard.Init(); err != nil {
		common.Log.Warnw("clipboard unavailable", "error", err)
	} else {
		opts.Clipboard = true
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("firstperson")
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(opts)
	if err != nil {
		common.Log.Errorw("start game", "error", err)
		sentry.CaptureException(err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		common.Log.Errorw("game loop", "error", err)
		sentry.CaptureException(err)
		return 1
	}
	return 0
}
