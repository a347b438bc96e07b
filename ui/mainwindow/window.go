// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"angio-caliper/internal/export"
	"angio-caliper/internal/frame"
	"angio-caliper/internal/measure"
	"angio-caliper/ui/canvas"
	"angio-caliper/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	prefKeyLastDir    = "lastDirectory"
	prefKeyBrightness = "brightness"
	prefKeyContrast   = "contrast"
	prefKeyEditMode   = "editMode"
)

// MainWindow is the primary application window: two viewers (raw image on
// the left, segmentation mask on the right), propagation and export
// controls, and a live stenosis readout.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	prefs *prefs.Prefs

	loader  *frame.Loader
	set     frame.Set
	current int

	imageViewer *canvas.SurfaceViewer
	maskViewer  *canvas.SurfaceViewer

	editCheck  *widget.Check
	frameLabel *widget.Label
	statusBar  *widget.Label

	brightness *widget.Slider
	contrast   *widget.Slider
}

// New creates the main window.
func New(fyneApp fyne.App, loader *frame.Loader, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Angio Caliper")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		prefs:  p,
		loader: loader,
	}
	mw.setupUI()
	win.Resize(fyne.NewSize(1280, 720))
	return mw
}

func (mw *MainWindow) setupUI() {
	mw.imageViewer = canvas.NewSurfaceViewer(nil)
	mw.maskViewer = canvas.NewSurfaceViewer(nil)
	mw.imageViewer.OnChange(mw.updateStatus)
	mw.maskViewer.OnChange(mw.updateStatus)

	mw.statusBar = widget.NewLabel("Open a folder of image/mask pairs to begin")
	mw.frameLabel = widget.NewLabel("no frames")

	mw.editCheck = widget.NewCheck("Draw lines", func(on bool) {
		for _, v := range []*canvas.SurfaceViewer{mw.imageViewer, mw.maskViewer} {
			if s := v.Surface(); s != nil {
				s.SetEditMode(on)
			}
		}
		mw.prefs.SetBool(prefKeyEditMode, on)
		mw.updateStatus()
	})
	mw.editCheck.SetChecked(mw.prefs.Bool(prefKeyEditMode, true))

	toolbar := container.NewHBox(
		widget.NewButton("Open Folder...", mw.openFolder),
		widget.NewButton("<", func() { mw.showFrame(mw.current - 1) }),
		mw.frameLabel,
		widget.NewButton(">", func() { mw.showFrame(mw.current + 1) }),
		widget.NewSeparator(),
		mw.editCheck,
		widget.NewButton("Propagate to Mask", mw.propagateForward),
		widget.NewButton("Copy from Mask", mw.propagateReverse),
		widget.NewButton("Undo", mw.undoLast),
		widget.NewButton("Clear", mw.clearAll),
		widget.NewSeparator(),
		widget.NewButton("Export Bundle...", mw.exportBundle),
		widget.NewButton("Export Report...", mw.exportReport),
	)

	mw.brightness = widget.NewSlider(0, 200)
	mw.brightness.Value = mw.prefs.FloatWithFallback(prefKeyBrightness, 100)
	mw.brightness.OnChanged = func(v float64) {
		mw.eachSurface(func(s *measure.Surface) { s.SetBrightness(v) })
		mw.prefs.SetFloat(prefKeyBrightness, v)
		mw.refreshViewers()
	}

	mw.contrast = widget.NewSlider(0, 1000)
	mw.contrast.Value = mw.prefs.FloatWithFallback(prefKeyContrast, 100)
	mw.contrast.OnChanged = func(v float64) {
		mw.eachSurface(func(s *measure.Surface) { s.SetContrast(v) })
		mw.prefs.SetFloat(prefKeyContrast, v)
		mw.refreshViewers()
	}

	filters := container.NewGridWithColumns(2,
		container.NewBorder(nil, nil, widget.NewLabel("Brightness"), nil, mw.brightness),
		container.NewBorder(nil, nil, widget.NewLabel("Contrast"), nil, mw.contrast),
	)

	viewers := container.NewGridWithColumns(2,
		container.NewBorder(widget.NewLabel("Image"), nil, nil, nil, mw.imageViewer),
		container.NewBorder(widget.NewLabel("Mask"), nil, nil, nil, mw.maskViewer),
	)

	mw.SetContent(container.NewBorder(
		container.NewVBox(toolbar, filters),
		mw.statusBar,
		nil, nil,
		viewers,
	))
}

// currentFrame returns the frame on display, or nil.
func (mw *MainWindow) currentFrame() *frame.Frame {
	frames := mw.set.Frames()
	if mw.current < 0 || mw.current >= len(frames) {
		return nil
	}
	return frames[mw.current]
}

func (mw *MainWindow) eachSurface(fn func(s *measure.Surface)) {
	f := mw.currentFrame()
	if f == nil {
		return
	}
	fn(f.Image)
	fn(f.Mask)
}

func (mw *MainWindow) refreshViewers() {
	mw.imageViewer.Refresh()
	mw.maskViewer.Refresh()
}

// openFolder loads every image/mask pair from a chosen directory, replacing
// the current upload set.
func (mw *MainWindow) openFolder() {
	dlg := dialog.NewFolderOpen(func(list fyne.ListableURI, err error) {
		if err != nil || list == nil {
			return
		}
		dir := list.Path()
		mw.prefs.SetString(prefKeyLastDir, dir)
		mw.LoadDirectory(dir)
	}, mw.Window)
	if last := mw.prefs.String(prefKeyLastDir); last != "" {
		if uri, err := storage.ListerForURI(storage.NewFileURI(last)); err == nil {
			dlg.SetLocation(uri)
		}
	}
	dlg.Show()
}

// LoadDirectory loads every image/mask pair from a directory, replacing the
// current upload set.
func (mw *MainWindow) LoadDirectory(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}

	var paths []string
	for _, e := range entries {
		if !e.IsDir() {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	frames := mw.loader.LoadAll(paths)
	mw.set.Replace(frames)
	log.Printf("loaded %d frame(s) from %s", len(frames), dir)
	mw.showFrame(0)
}

// showFrame binds the viewers to the frame at the given index.
func (mw *MainWindow) showFrame(i int) {
	frames := mw.set.Frames()
	if len(frames) == 0 {
		mw.imageViewer.SetSurface(nil)
		mw.maskViewer.SetSurface(nil)
		mw.frameLabel.SetText("no frames")
		mw.updateStatus()
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(frames) {
		i = len(frames) - 1
	}
	mw.current = i

	f := frames[i]
	mw.imageViewer.SetSurface(f.Image)
	mw.maskViewer.SetSurface(f.Mask)
	mw.eachSurface(func(s *measure.Surface) {
		s.SetEditMode(mw.editCheck.Checked)
		s.SetBrightness(mw.brightness.Value)
		s.SetContrast(mw.contrast.Value)
	})
	mw.frameLabel.SetText(fmt.Sprintf("%d / %d  %s", i+1, len(frames), f.Identity))
	mw.updateStatus()
}

func (mw *MainWindow) propagateForward() {
	f := mw.currentFrame()
	if f == nil {
		return
	}
	measure.Propagate(f.Image, f.Mask)
	mw.refreshViewers()
	mw.updateStatus()
}

func (mw *MainWindow) propagateReverse() {
	f := mw.currentFrame()
	if f == nil {
		return
	}
	measure.PropagateReverse(f.Mask, f.Image)
	mw.refreshViewers()
	mw.updateStatus()
}

func (mw *MainWindow) undoLast() {
	mw.eachSurface(func(s *measure.Surface) { s.UndoLast() })
	mw.refreshViewers()
	mw.updateStatus()
}

func (mw *MainWindow) clearAll() {
	mw.eachSurface(func(s *measure.Surface) { s.UndoAll() })
	mw.refreshViewers()
	mw.updateStatus()
}

// updateStatus refreshes the live stenosis readout.
func (mw *MainWindow) updateStatus() {
	f := mw.currentFrame()
	if f == nil {
		mw.statusBar.SetText("Open a folder of image/mask pairs to begin")
		return
	}

	text := fmt.Sprintf("image: %s    mask: %s", readout(f.Image), readout(f.Mask))
	mw.statusBar.SetText(text)
}

func readout(s *measure.Surface) string {
	result, ok := s.Stenosis()
	if !ok {
		return fmt.Sprintf("%d/%d lines", s.Count(), s.Config().MaxLines)
	}
	return fmt.Sprintf("diameter %.1f%%  area %.1f%%", result.DiameterPct, result.AreaPct)
}

func (mw *MainWindow) exportBundle() {
	if mw.set.Len() == 0 {
		return
	}
	dlg := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := export.WriteBundle(wc, mw.set.Frames()); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		log.Printf("exported bundle to %s", wc.URI().Path())
	}, mw.Window)
	dlg.SetFileName("measurements.zip")
	dlg.Show()
}

func (mw *MainWindow) exportReport() {
	if mw.set.Len() == 0 {
		return
	}
	dlg := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		path := wc.URI().Path()
		wc.Close()
		rows := export.BuildRows(mw.set.Frames())
		if err := export.WriteReport(path, rows); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		log.Printf("exported report to %s", path)
	}, mw.Window)
	dlg.SetFileName("report.pdf")
	dlg.Show()
}

// SavePreferences persists preferences to disk.
func (mw *MainWindow) SavePreferences() {
	if err := mw.prefs.Save(); err != nil {
		log.Printf("failed to save preferences: %v", err)
	}
}
