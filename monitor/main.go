// Command monitor is the headless companion: it follows a device's
// telemetry on a serial port (or the mock), logs measurements and warns
// on threshold crossings. With -local it runs the full control loop on
// this machine's own I2C/GPIO hardware instead.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/itohio/gotherm/pkg/config"
	"github.com/itohio/gotherm/pkg/convert"
	"github.com/itohio/gotherm/pkg/device"
	"github.com/itohio/gotherm/pkg/trend"
)

func main() {
	var (
		portFlag   = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag   = flag.Bool("mock", false, "Use mocked device instead of serial port")
		localFlag  = flag.Bool("local", false, "Run the control loop on local I2C/GPIO hardware")
		toggleFlag = flag.Duration("toggle-every", 0, "Periodically toggle the display unit (0 = never)")
	)
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *localFlag {
		if err := runLocal(ctx, cfg, logger); err != nil {
			logger.Fatal("local control loop failed", zap.Error(err))
		}
		return
	}

	var dev device.Device
	if *mockFlag {
		dev = device.NewMock(cfg)
	} else {
		dev = device.New(cfg.Serial.Port, device.DefaultBaudRate, device.DefaultBufferSize)
	}

	if err := dev.Connect(); err != nil {
		logger.Fatal("failed to connect", zap.String("port", cfg.Serial.Port), zap.Error(err))
	}
	defer dev.Close()
	logger.Info("connected", zap.String("port", cfg.Serial.Port), zap.Bool("mock", *mockFlag))

	history := trend.New(trend.DefaultWindow)

	// Warn once per crossing, not once per sample.
	var lastIndicator, haveIndicator bool
	history.OnUpdate(func(m convert.Measurement) {
		logger.Info("measurement",
			zap.Time("timestamp", m.Timestamp),
			zap.Uint16("raw", m.Raw),
			zap.Float32("voltage", m.Voltage),
			zap.Float32("celsius", m.FilteredC),
			zap.String("unit", m.Unit.String()),
			zap.Bool("indicator", m.IndicatorOn),
		)
		if haveIndicator && m.IndicatorOn != lastIndicator {
			if m.IndicatorOn {
				logger.Warn("temperature dropped below threshold",
					zap.Float32("celsius", m.FilteredC),
					zap.Float64("threshold", cfg.Indicator.ThresholdC))
			} else {
				logger.Warn("temperature rose above threshold",
					zap.Float32("celsius", m.FilteredC),
					zap.Float64("threshold", cfg.Indicator.ThresholdC))
			}
		}
		lastIndicator, haveIndicator = m.IndicatorOn, true
	})

	measurements := convert.NewPipeline(cfg, 500)(dev.Readings())

	done := make(chan struct{})
	go func() {
		defer close(done)
		history.ProcessMeasurements(measurements)
	}()

	if *toggleFlag > 0 {
		go func() {
			ticker := time.NewTicker(*toggleFlag)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := dev.PressUnit(); err != nil {
						logger.Warn("unit toggle failed", zap.Error(err))
					}
				}
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		dev.Close()
		<-done
	case <-done:
		logger.Info("telemetry stream ended")
	}

	stats := history.Stats()
	logger.Info("session summary",
		zap.Float32("min_c", stats.MinC),
		zap.Float32("max_c", stats.MaxC),
		zap.Float32("mean_c", stats.MeanC),
		zap.Int("samples", stats.Count))
}
