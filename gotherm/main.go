package main

import (
	"flag"
	"fmt"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/gotherm/pkg/config"
	"github.com/itohio/gotherm/pkg/convert"
	"github.com/itohio/gotherm/pkg/device"
	"github.com/itohio/gotherm/pkg/frame"
	"github.com/itohio/gotherm/pkg/screen"
	"github.com/itohio/gotherm/pkg/trend"
)

func main() {
	var (
		portFlag   = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag   = flag.Bool("mock", false, "Use mocked device instead of serial port")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override serial port if provided via command line
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}

	// Create Fyne application
	application := app.NewWithID("com.itohio.gotherm")

	// Create main window
	window := application.NewWindow("Temperature Monitor")
	window.Resize(fyne.NewSize(700, 360))
	window.CenterOnScreen()

	// Create application state
	state := &appState{
		cfg:     cfg,
		history: trend.New(trend.DefaultWindow),
		window:  window,
		useMock: *mockFlag,
	}

	// Create toolbar
	toolbar := createToolbar(state)

	// Create screen widget mirroring the device panel
	screenWidget := screen.New()
	state.screenWidget = screenWidget

	// Stats strip at the bottom
	state.statsLabel = widget.NewLabel("")
	state.statsLabel.Alignment = fyne.TextAlignCenter

	content := container.NewBorder(
		toolbar,
		state.statsLabel,
		nil,
		nil,
		screenWidget,
	)

	window.SetContent(content)
	window.ShowAndRun()
}

// measurementChain tracks the components of the measurement chain for
// graceful shutdown.
type measurementChain struct {
	device       device.Device
	measurements <-chan convert.Measurement
	trendDone    chan struct{} // Closed when the trend goroutine exits
}

// appState holds the application state.
type appState struct {
	cfg          *config.Config
	device       device.Device
	history      *trend.Trend
	screenWidget *screen.ScreenWidget
	statsLabel   *widget.Label
	window       fyne.Window
	connectBtn   *widget.Button
	unitBtn      *widget.Button
	useMock      bool
	chain        *measurementChain // Current measurement chain (nil if not connected)

	// Throttling for screen updates
	lastUpdateTime time.Time
	updateMu       sync.Mutex
}

// createToolbar creates the application toolbar with Connect, Settings and
// Unit toggle buttons.
func createToolbar(state *appState) fyne.CanvasObject {
	connectBtn := widget.NewButtonWithIcon("", theme.LoginIcon(), func() {
		handleConnect(state)
	})
	state.connectBtn = connectBtn

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	// Unit toggle mirrors the physical button: it asks the device to
	// switch, the new unit arrives back in the telemetry stream.
	unitBtn := widget.NewButtonWithIcon("C / F", theme.ViewRefreshIcon(), func() {
		handleUnitToggle(state)
	})
	unitBtn.Disable()
	state.unitBtn = unitBtn

	return container.NewBorder(
		nil, // top
		nil, // bottom
		container.NewHBox(connectBtn, settingsBtn), // left
		container.NewHBox(unitBtn),                 // right
		nil, // center (spacer)
	)
}

// closeMeasurementChain gracefully closes the measurement chain and waits
// for the goroutines to drain.
func closeMeasurementChain(chain *measurementChain) {
	if chain == nil {
		return
	}

	// Close device - this will close the Readings channel
	if chain.device != nil {
		chain.device.Close()
	}

	// Wait for the trend goroutine to finish; it exits when the
	// measurement stream closes behind the device.
	if chain.trendDone != nil {
		<-chain.trendDone
	}
}

// handleConnect handles the connect/disconnect button click.
func handleConnect(state *appState) {
	if state.device != nil && state.device.IsConnected() {
		// Disconnect - gracefully close measurement chain
		closeMeasurementChain(state.chain)
		state.chain = nil
		state.device = nil
		state.unitBtn.Disable()
		state.screenWidget.Clear()
		state.statsLabel.SetText("")
		if state.useMock {
			fmt.Println("Disconnected from mocked device")
		} else {
			fmt.Println("Disconnected from serial port")
		}
		return
	}

	// Connect
	var dev device.Device
	if state.useMock {
		dev = device.NewMock(state.cfg)
		fmt.Println("Using mocked device")
	} else {
		dev = device.New(state.cfg.Serial.Port, device.DefaultBaudRate, device.DefaultBufferSize)
	}

	if err := dev.Connect(); err != nil {
		if state.useMock {
			dialog.ShowError(fmt.Errorf("failed to connect to mocked device: %w", err), state.window)
		} else {
			dialog.ShowError(fmt.Errorf("failed to connect to %s: %w", state.cfg.Serial.Port, err), state.window)
		}
		return
	}
	state.device = dev
	if state.useMock {
		fmt.Printf("Connected to mocked device\n")
	} else {
		fmt.Printf("Connected to serial port: %s\n", state.cfg.Serial.Port)
	}

	state.unitBtn.Enable()

	// Reset the trend shutdown flag for the new chain
	state.history.ResetShutdown()

	// Register callback with the trend to update the screen widget.
	// This must be done before starting the measurement chain.
	// Throttle updates to ~30 FPS; telemetry arrives every 500ms anyway,
	// the throttle only matters for bursty reconnects.
	const updateInterval = 33 * time.Millisecond
	state.history.OnUpdate(func(m convert.Measurement) {
		state.updateMu.Lock()
		now := time.Now()
		tooSoon := now.Sub(state.lastUpdateTime) < updateInterval
		if !tooSoon {
			state.lastUpdateTime = now
		}
		state.updateMu.Unlock()
		if tooSoon {
			return
		}

		stats := state.history.Stats()

		// Update widgets on the main thread
		fyne.Do(func() {
			state.screenWidget.UpdateStatus(frame.Status{
				Voltage:     m.Voltage,
				Temperature: m.DisplayTemperature(),
				Unit:        m.Unit,
			}, m.IndicatorOn)
			state.statsLabel.SetText(fmt.Sprintf(
				"min %.1f C   max %.1f C   mean %.1f C   (%d samples)",
				stats.MinC, stats.MaxC, stats.MeanC, stats.Count))
		})
	})

	// Convert raw telemetry to measurements and feed the trend
	measurements := convert.NewPipeline(state.cfg, 500)(dev.Readings())

	trendDone := make(chan struct{})
	go func() {
		defer close(trendDone)
		state.history.ProcessMeasurements(measurements)
	}()

	// Store chain for graceful shutdown
	state.chain = &measurementChain{
		device:       dev,
		measurements: measurements,
		trendDone:    trendDone,
	}
}

// handleUnitToggle forwards a unit-toggle request to the device.
func handleUnitToggle(state *appState) {
	if state.device == nil || !state.device.IsConnected() {
		return
	}
	if err := state.device.PressUnit(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to toggle display unit: %w", err), state.window)
	}
}
