package screen

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"github.com/itohio/gotherm/pkg/frame"
)

const (
	pixelScale  = 4  // Logical pixels per panel pixel at minimum size
	ledStripPx  = 24 // Height of the indicator strip under the panel
	ledRadiusPx = 8
)

var (
	panelBg  = color.RGBA{R: 10, G: 10, B: 16, A: 255}
	pixelLit = color.RGBA{R: 140, G: 210, B: 255, A: 255} // SSD1306 blue-white
	ledOff   = color.RGBA{R: 40, G: 24, B: 24, A: 255}
	ledOn    = color.RGBA{R: 255, G: 60, B: 40, A: 255}
)

// screenRenderer renders the screen widget.
type screenRenderer struct {
	screen *ScreenWidget

	bg     *canvas.Rectangle
	raster *canvas.Raster
	led    *canvas.Circle

	objects []fyne.CanvasObject
}

// CreateRenderer creates the widget renderer.
func (s *ScreenWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &screenRenderer{
		screen: s,
		bg:     canvas.NewRectangle(panelBg),
		led:    canvas.NewCircle(ledOff),
	}
	r.raster = canvas.NewRaster(r.draw)
	r.objects = []fyne.CanvasObject{r.bg, r.raster, r.led}
	return r
}

// draw regenerates the panel image at the requested size, nearest-neighbor
// mapping display pixels onto panel pixels.
func (r *screenRenderer) draw(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	r.screen.mu.RLock()
	defer r.screen.mu.RUnlock()

	if w == 0 || h == 0 {
		return img
	}
	for y := 0; y < h; y++ {
		py := y * frame.Height / h
		for x := 0; x < w; x++ {
			px := x * frame.Width / w
			if r.screen.pixelOn(px, py) {
				img.Set(x, y, pixelLit)
			} else {
				img.Set(x, y, panelBg)
			}
		}
	}
	return img
}

func (r *screenRenderer) MinSize() fyne.Size {
	return fyne.NewSize(frame.Width*pixelScale, frame.Height*pixelScale+ledStripPx)
}

func (r *screenRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)

	// Keep the panel's 4:1 aspect ratio inside the available area.
	panelH := size.Height - ledStripPx
	panelW := size.Width
	if panelW/panelH > frame.Width/frame.Height {
		panelW = panelH * frame.Width / frame.Height
	} else {
		panelH = panelW * frame.Height / frame.Width
	}
	offX := (size.Width - panelW) / 2

	r.raster.Move(fyne.NewPos(offX, 0))
	r.raster.Resize(fyne.NewSize(panelW, panelH))

	r.led.Move(fyne.NewPos(offX, panelH+(ledStripPx-2*ledRadiusPx)/2))
	r.led.Resize(fyne.NewSize(2*ledRadiusPx, 2*ledRadiusPx))
}

func (r *screenRenderer) Refresh() {
	r.screen.mu.RLock()
	on := r.screen.indicatorOn
	r.screen.mu.RUnlock()

	if on {
		r.led.FillColor = ledOn
	} else {
		r.led.FillColor = ledOff
	}
	r.led.Refresh()
	canvas.Refresh(r.raster)
}

func (r *screenRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *screenRenderer) Destroy() {}
