// Package main provides the entry point for the Angio Caliper application.
package main

import (
	"log"
	"os"

	"angio-caliper/internal/frame"
	"angio-caliper/internal/measure"
	"angio-caliper/internal/ocr"
	"angio-caliper/internal/version"
	"angio-caliper/ui/mainwindow"
	"angio-caliper/ui/prefs"

	"fyne.io/fyne/v2/app"
)

const appTitle = "Angio Caliper"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s (%s)", appTitle, version.Version, version.GitCommit)

	fyneApp := app.New()
	appPrefs := prefs.Load()

	cfg := measure.DefaultConfig()
	if suffix := appPrefs.String("maskSuffix"); suffix != "" {
		cfg.MaskSuffix = suffix
	}

	var fallback frame.IdentityReader
	engine, err := ocr.NewEngine()
	if err != nil {
		log.Printf("metadata OCR unavailable: %v", err)
	} else {
		fallback = engine
		defer engine.Close()
	}

	loader := frame.NewLoader(cfg, fallback)
	win := mainwindow.New(fyneApp, loader, appPrefs)

	// Pre-load a directory passed on the command line.
	if len(os.Args) > 1 {
		win.LoadDirectory(os.Args[1])
	}

	win.SetOnClosed(win.SavePreferences)
	win.ShowAndRun()
}
