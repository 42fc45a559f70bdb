// Package mainwindow provides the application main window.
package mainwindow

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"

	"photo-ruler/internal/app"
	"photo-ruler/internal/photo"
	"photo-ruler/internal/session"
	"photo-ruler/internal/version"
	"photo-ruler/pkg/geometry"
	"photo-ruler/ui/canvas"
	"photo-ruler/ui/panels"
	"photo-ruler/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const prefKeyLastDir = "last_dir"

// Overlay colors: reference geometry in amber, measurement path in cyan.
var (
	referenceColor   = color.RGBA{R: 255, G: 179, B: 0, A: 255}
	measurementColor = color.RGBA{R: 0, G: 200, B: 255, A: 255}
)

// MainWindow is the application main window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	canvas    *canvas.PhotoCanvas
	panel     *panels.MeasurePanel
	statusBar *widget.Label

	fitToWindowItem *fyne.MenuItem
}

// New creates the main window wired to the application state.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Photo Ruler")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  appPrefs,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	width := float32(appPrefs.Float(prefs.KeyWindowWidth, 1200))
	height := float32(appPrefs.Float(prefs.KeyWindowHeight, 800))
	win.Resize(fyne.NewSize(width, height))

	win.SetCloseIntercept(func() {
		mw.SavePreferences()
		win.Close()
	})

	return mw
}

func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewPhotoCanvas()
	mw.canvas.OnClick(mw.onCanvasClick)
	if mw.prefs.Bool(prefs.KeyFitToWindow, true) {
		mw.canvas.SetFitToWindow(true)
	}

	mw.panel = panels.NewMeasurePanel(mw.state)
	mw.statusBar = widget.NewLabel(session.GuidanceSetReferenceLength.Message())

	content := container.NewBorder(
		nil,                  // top
		mw.statusBar,         // bottom
		nil,                  // left
		mw.panel.Container(), // right
		mw.canvas.Container(),
	)
	mw.SetContent(content)
}

func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Photo...", mw.onOpenPhoto),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset Session", mw.onResetSession),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	mw.fitToWindowItem = fyne.NewMenuItem("  Fit to Window", mw.onToggleFitToWindow)
	if mw.canvas.GetFitToWindow() {
		mw.fitToWindowItem.Label = "✓ Fit to Window"
	}

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		mw.fitToWindowItem,
		fyne.NewMenuItem("Actual Size", mw.onActualSize),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, helpMenu))
}

func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		if layer, ok := data.(*photo.Layer); ok {
			mw.canvas.SetPhoto(layer)
			mw.canvas.FitToWindow()
			mw.SetTitle("Photo Ruler - " + filepath.Base(layer.Path))
			mw.updateStatus(fmt.Sprintf("Loaded %s (%dx%d)",
				filepath.Base(layer.Path), layer.Width, layer.Height))
		}
	})

	mw.state.On(app.EventSessionChanged, func(data interface{}) {
		mw.syncOverlay()
		if m, ok := data.(session.Measurement); ok {
			mw.updateStatus(m.String())
		}
	})

	mw.state.On(app.EventCalibrated, func(data interface{}) {
		if scale, ok := data.(float64); ok {
			mw.updateStatus(fmt.Sprintf("Calibrated: %.4f %s per pixel",
				scale, mw.state.Session.Unit().Label()))
		}
	})
}

// onCanvasClick forwards clicks to the session and surfaces calibration
// errors as alerts. The session is untouched by a rejected click.
func (mw *MainWindow) onCanvasClick(x, y float64) {
	if !mw.state.HasPhoto() {
		return
	}
	if err := mw.state.RecordClick(x, y); err != nil {
		if errors.Is(err, session.ErrMissingCalibrationInput) {
			dialog.ShowError(err, mw.Window)
			return
		}
		dialog.ShowError(err, mw.Window)
	}
}

// syncOverlay rebuilds the canvas annotations from the session's render
// plan.
func (mw *MainWindow) syncOverlay() {
	plan := mw.state.Session.RenderPlan()

	overlay := &canvas.Overlay{}
	for _, m := range plan.Markers {
		overlay.Circles = append(overlay.Circles, canvas.OverlayCircle{
			Center: m.Center,
			Radius: 5,
			Color:  kindColor(m.Kind),
			Filled: true,
		})
	}
	for _, seg := range plan.Segments {
		overlay.Lines = append(overlay.Lines, canvas.OverlayLine{
			From:      seg.From,
			To:        seg.To,
			Color:     kindColor(seg.Kind),
			Thickness: 2,
		})
	}

	// Anchor the readout beside the last measurement point.
	points := mw.state.Session.MeasurementPoints()
	if len(points) >= 2 && plan.Label != "" {
		last := points[len(points)-1]
		overlay.Labels = append(overlay.Labels, canvas.OverlayLabel{
			Text:   plan.Label,
			Anchor: geometry.NewPoint2D(last.X+10, last.Y+10),
			Color:  measurementColor,
			Scale:  2,
		})
	}

	mw.canvas.SetOverlay(overlay)
}

func kindColor(kind session.PathKind) color.RGBA {
	if kind == session.KindReference {
		return referenceColor
	}
	return measurementColor
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	dir := filepath.Dir(filePath)
	mw.app.Preferences().SetString(prefKeyLastDir, dir)
}

// SavePreferences persists window and view settings.
func (mw *MainWindow) SavePreferences() {
	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
	mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
	mw.prefs.SetBool(prefs.KeyFitToWindow, mw.canvas.GetFitToWindow())
	if err := mw.prefs.Save(); err != nil {
		fmt.Printf("Failed to save preferences: %v\n", err)
	}
}

// Menu action handlers

func (mw *MainWindow) onOpenPhoto() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)

		if err := mw.state.LoadPhoto(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(photo.SupportedExtensions()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onResetSession() {
	mw.state.ResetSession()
}

func (mw *MainWindow) onZoomIn() {
	mw.disableFitToWindow()
	mw.canvas.ZoomIn()
}

func (mw *MainWindow) onZoomOut() {
	mw.disableFitToWindow()
	mw.canvas.ZoomOut()
}

func (mw *MainWindow) onToggleFitToWindow() {
	enabled := !mw.canvas.GetFitToWindow()
	mw.canvas.SetFitToWindow(enabled)

	if enabled {
		mw.fitToWindowItem.Label = "✓ Fit to Window"
	} else {
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) onActualSize() {
	mw.disableFitToWindow()
	mw.canvas.SetZoom(1.0)
}

func (mw *MainWindow) disableFitToWindow() {
	if mw.canvas.GetFitToWindow() {
		mw.canvas.SetFitToWindow(false)
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Photo Ruler",
		fmt.Sprintf("Photo Ruler v%s\n\n"+
			"Measure real-world lengths from a photo using a\n"+
			"reference object of known size.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
