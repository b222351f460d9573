package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/itohio/gotherm/pkg/app"
	"github.com/itohio/gotherm/pkg/config"
	"github.com/itohio/gotherm/pkg/hal"
	"github.com/itohio/gotherm/pkg/hal/periphio"
	"github.com/itohio/gotherm/pkg/input"
	"github.com/itohio/gotherm/pkg/sampler"
)

// runLocal runs the whole control loop on this machine: ADS1115 sensor,
// SSD1306 panel and GPIO LED/button through periph.io. This is the same
// wiring the firmware does, minus the serial telemetry.
func runLocal(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	backend, err := periphio.Open(periphio.DefaultConfig())
	if err != nil {
		return fmt.Errorf("open hardware: %w", err)
	}
	defer backend.Close()
	logger.Info("local hardware ready")

	events := app.NewEvents()
	timers := hal.NewSystemTimers(nil)

	sched := sampler.New(
		backend.Sensor(),
		backend.Indicator(),
		sampler.Params{
			VRef:       float32(cfg.ADC.VRef),
			FullScale:  cfg.ADC.FullScale(),
			OffsetV:    float32(cfg.Calibration.OffsetV),
			SlopeVPerC: float32(cfg.Calibration.SlopeVPerC),
			ThresholdC: float32(cfg.Indicator.ThresholdC),
		},
		cfg.Sampling.FilterWindow,
		func(r sampler.Reading) {
			logger.Debug("sample",
				zap.Uint16("raw", r.Raw),
				zap.Float32("celsius", r.FilteredC),
				zap.Bool("indicator", r.IndicatorOn))
			events.SignalRender()
		},
	)

	loop := app.NewLoop(events, sched, backend.Display())

	debouncer := input.New(backend.Button(), timers, cfg.Button.Debounce, events.SignalPress)
	debouncer.Arm()

	stopSampling := sched.Start(timers, cfg.Sampling.Period)
	defer stopSampling()

	err = loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
