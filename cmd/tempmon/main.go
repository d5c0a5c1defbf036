package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/mutker/tempmon/internal/agent"
	"codeberg.org/mutker/tempmon/internal/config"
	"codeberg.org/mutker/tempmon/internal/control"
	"codeberg.org/mutker/tempmon/internal/device"
	"codeberg.org/mutker/tempmon/internal/errors"
	"codeberg.org/mutker/tempmon/internal/history"
	"codeberg.org/mutker/tempmon/internal/logger"
	"codeberg.org/mutker/tempmon/internal/pid"
	"codeberg.org/mutker/tempmon/internal/report"
)

type app struct {
	cfg     *config.Config
	sensor  device.Sensor
	button  device.Button
	logFile *os.File
	history history.Recorder
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, config.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, _ := logger.ParseLevel(cfg.LogLevel.String())
	logger.Init(level, logger.IsService())
	logger.Debug().Msg("Config loaded")

	if err := pid.Write(cfg.PIDFile); err != nil {
		logger.FatalWithCode(err).Msg("Failed to write PID file")
	}

	a := &app{cfg: cfg}
	if err := a.init(); err != nil {
		a.fatal(err, "Failed to initialize")
	}

	state := control.New(cfg.Period, cfg.TemperatureScale())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.newAgent(state).Run(ctx); err != nil {
		a.fatal(err, "Agent failed")
	}

	a.cleanup()
	logger.Info().Msg("Exiting...")
}

func (a *app) init() error {
	var err error

	a.sensor, err = device.OpenSensor(a.cfg.Sensor)
	if err != nil {
		return err
	}

	a.button, err = device.OpenButton(a.cfg.Button.ButtonConfig)
	if err != nil {
		return err
	}

	if a.cfg.LogPath != "" {
		a.logFile, err = report.OpenLog(a.cfg.LogPath)
		if err != nil {
			return err
		}
	}

	a.history, err = history.NewService(a.cfg.History, logger.Default())
	if err != nil {
		return err
	}

	logger.Info().
		Str("sensor", a.cfg.Sensor.Source).
		Str("button", a.cfg.Button.Source).
		Int64("period", a.cfg.Period).
		Str("scale", a.cfg.TemperatureScale().String()).
		Str("log", a.cfg.LogPath).
		Bool("history", a.cfg.History.Enabled).
		Msg("Initialized")

	return nil
}

func (a *app) newAgent(state *control.State) *agent.Agent {
	var opts []report.Option
	if a.logFile != nil {
		opts = append(opts, report.WithLog(a.logFile))
		if a.cfg.LogPad {
			opts = append(opts, report.WithPadding(report.PaddedRecordSize))
		}
	}
	emitter := report.NewEmitter(os.Stdout, logger.Default(), opts...)

	return agent.New(state, a.sensor, a.button, os.Stdin, emitter,
		agent.WithHistory(a.history),
		agent.WithButtonPollInterval(a.cfg.Button.PollInterval),
		agent.WithInputTimeout(a.cfg.Input.Timeout),
		agent.WithChunkSize(a.cfg.Input.ChunkSize),
	)
}

// fatal exits with status 1. Only the PID file is cleaned up.
func (a *app) fatal(err error, msg string) {
	if rmErr := pid.Remove(a.cfg.PIDFile); rmErr != nil {
		logger.ErrorWithCode(rmErr).Msg("Failed to remove PID file")
	}
	logger.FatalWithCode(err).Msg(msg)
}

func (a *app) cleanup() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			logger.ErrorWithCode(err).Msg("Failed to close history")
		}
	}
	if a.button != nil {
		if err := a.button.Close(); err != nil {
			logger.ErrorWithCode(err).Msg("Failed to release button")
		}
	}
	if a.sensor != nil {
		if err := a.sensor.Close(); err != nil {
			logger.ErrorWithCode(err).Msg("Failed to close sensor")
		}
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			a.fatal(errors.New().Wrap(errors.ErrCloseLog, err), "Failed to close log file")
		}
	}
	if err := pid.Remove(a.cfg.PIDFile); err != nil {
		logger.ErrorWithCode(err).Msg("Failed to remove PID file")
	}
}
