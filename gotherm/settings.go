package main

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/gotherm/pkg/device"
)

// showSettingsDialog displays a settings dialog with tabs for the
// configuration sections.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createSerialTab(state),
		createCalibrationTab(state),
		createIndicatorTab(state),
		createMockTab(state),
	)

	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(500, 400))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(500, 400))
	d.Show()
}

// createSerialTab creates the Serial configuration tab.
func createSerialTab(state *appState) *container.TabItem {
	// Get available serial ports
	ports, err := device.Ports()
	portOptions := []string{}
	portMap := make(map[string]string) // Map display name to actual port name

	if err == nil {
		for _, port := range ports {
			displayName := port.Name
			if port.Description != "" && port.Description != port.Name {
				displayName = fmt.Sprintf("%s (%s)", port.Name, port.Description)
			}
			portOptions = append(portOptions, displayName)
			portMap[displayName] = port.Name
		}
	}

	// Add current port if not in list
	currentPort := state.cfg.Serial.Port
	currentDisplay := currentPort
	found := false
	for _, opt := range portOptions {
		if portMap[opt] == currentPort {
			currentDisplay = opt
			found = true
			break
		}
	}
	if !found && currentPort != "" {
		portOptions = append(portOptions, currentPort)
		portMap[currentPort] = currentPort
	}

	portSelect := widget.NewSelect(portOptions, func(string) {})
	if currentDisplay != "" {
		portSelect.SetSelected(currentDisplay)
	}

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: portSelect},
		},
		OnSubmit: func() {
			if portSelect.Selected == "" {
				return
			}
			selectedPort := portMap[portSelect.Selected]
			if selectedPort == "" {
				selectedPort = portSelect.Selected
			}

			portChanged := state.cfg.Serial.Port != selectedPort
			wasConnected := state.device != nil && state.device.IsConnected()

			state.cfg.Serial.Port = selectedPort
			if err := state.cfg.Save("config.yaml"); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
				return
			}

			// Reconnect on the new port if a device was attached
			if portChanged && wasConnected {
				closeMeasurementChain(state.chain)
				state.chain = nil
				state.device = nil
				handleConnect(state)
			}
		},
	}

	return container.NewTabItem("Serial", form)
}

// createCalibrationTab creates the sensor calibration tab.
func createCalibrationTab(state *appState) *container.TabItem {
	offsetEntry := widget.NewEntry()
	offsetEntry.SetText(strconv.FormatFloat(state.cfg.Calibration.OffsetV, 'f', -1, 64))

	slopeEntry := widget.NewEntry()
	slopeEntry.SetText(strconv.FormatFloat(state.cfg.Calibration.SlopeVPerC, 'f', -1, 64))

	vrefEntry := widget.NewEntry()
	vrefEntry.SetText(strconv.FormatFloat(state.cfg.ADC.VRef, 'f', -1, 64))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Offset (V at 0 C)", Widget: offsetEntry},
			{Text: "Slope (V per C)", Widget: slopeEntry},
			{Text: "ADC reference (V)", Widget: vrefEntry},
		},
		OnSubmit: func() {
			offset, err := strconv.ParseFloat(offsetEntry.Text, 64)
			if err != nil {
				dialog.ShowError(fmt.Errorf("invalid offset: %w", err), state.window)
				return
			}
			slope, err := strconv.ParseFloat(slopeEntry.Text, 64)
			if err != nil || slope == 0 {
				dialog.ShowError(fmt.Errorf("invalid slope: must be a non-zero number"), state.window)
				return
			}
			vref, err := strconv.ParseFloat(vrefEntry.Text, 64)
			if err != nil || vref <= 0 {
				dialog.ShowError(fmt.Errorf("invalid reference voltage: must be positive"), state.window)
				return
			}

			state.cfg.Calibration.OffsetV = offset
			state.cfg.Calibration.SlopeVPerC = slope
			state.cfg.ADC.VRef = vref
			if err := state.cfg.Save("config.yaml"); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
			}
		},
	}

	return container.NewTabItem("Calibration", form)
}

// createIndicatorTab creates the indicator threshold tab.
func createIndicatorTab(state *appState) *container.TabItem {
	thresholdEntry := widget.NewEntry()
	thresholdEntry.SetText(strconv.FormatFloat(state.cfg.Indicator.ThresholdC, 'f', -1, 64))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "LED threshold (C)", Widget: thresholdEntry},
		},
		OnSubmit: func() {
			threshold, err := strconv.ParseFloat(thresholdEntry.Text, 64)
			if err != nil {
				dialog.ShowError(fmt.Errorf("invalid threshold: %w", err), state.window)
				return
			}
			state.cfg.Indicator.ThresholdC = threshold
			if err := state.cfg.Save("config.yaml"); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
			}
		},
	}

	return container.NewTabItem("Indicator", form)
}

// createMockTab creates the mock device configuration tab.
func createMockTab(state *appState) *container.TabItem {
	ambientEntry := widget.NewEntry()
	ambientEntry.SetText(strconv.FormatFloat(state.cfg.Mock.AmbientC, 'f', -1, 64))

	noiseEntry := widget.NewEntry()
	noiseEntry.SetText(strconv.FormatFloat(state.cfg.Mock.NoiseC, 'f', -1, 64))

	driftEntry := widget.NewEntry()
	driftEntry.SetText(strconv.FormatFloat(state.cfg.Mock.DriftC, 'f', -1, 64))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Ambient (C)", Widget: ambientEntry},
			{Text: "Noise amplitude (C)", Widget: noiseEntry},
			{Text: "Drift amplitude (C)", Widget: driftEntry},
		},
		OnSubmit: func() {
			ambient, err := strconv.ParseFloat(ambientEntry.Text, 64)
			if err != nil {
				dialog.ShowError(fmt.Errorf("invalid ambient: %w", err), state.window)
				return
			}
			noise, err := strconv.ParseFloat(noiseEntry.Text, 64)
			if err != nil || noise < 0 {
				dialog.ShowError(fmt.Errorf("invalid noise amplitude: must be non-negative"), state.window)
				return
			}
			drift, err := strconv.ParseFloat(driftEntry.Text, 64)
			if err != nil || drift < 0 {
				dialog.ShowError(fmt.Errorf("invalid drift amplitude: must be non-negative"), state.window)
				return
			}

			state.cfg.Mock.AmbientC = ambient
			state.cfg.Mock.NoiseC = noise
			state.cfg.Mock.DriftC = drift
			if err := state.cfg.Save("config.yaml"); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
			}
		},
	}

	return container.NewTabItem("Mock", form)
}
