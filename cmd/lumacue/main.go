// Command lumacue is the process entry point: it loads a show
// configuration, wires the mixer, DMX transmitter, and pattern watcher
// together, and drives the console control surface until the operator
// quits or the process receives an interrupt.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robmorgan/lumacue/cmd/console"
	"github.com/robmorgan/lumacue/config"
	"github.com/robmorgan/lumacue/dmxtransmitter"
	"github.com/robmorgan/lumacue/logger"
	"github.com/robmorgan/lumacue/mixer"
	"github.com/robmorgan/lumacue/watch"
	"k8s.io/utils/clock"
)

func main() {
	os.Exit(run())
}

// run returns a process exit code: 0 on clean termination, nonzero on
// initialisation failure. All startup errors — config parse, missing
// fixture definitions — are fatal; everything after the loop starts is
// liveness-preserving and handled internally.
func run() int {
	showPath := flag.String("show", "show.toml", "path to the show configuration file")
	device := flag.String("device", "", "serial device for the USB-to-DMX adaptor; empty disables DMX output")
	patternsDir := flag.String("patterns", "patterns", "directory pattern scripts are loaded from")
	fixturesDir := flag.String("fixtures", "fixtures", "directory fixture-definition files are loaded from")
	flag.Parse()

	log := logger.GetProjectLogger()

	show, err := config.LoadShow(*showPath, *patternsDir)
	if err != nil {
		log.WithError(err).Error("failed to load show configuration")
		return 1
	}

	inst, err := config.LoadInstallation(filepath.Join(filepath.Dir(*showPath), show.Pool.InstallationPath), *fixturesDir)
	if err != nil {
		log.WithError(err).Error("failed to load installation configuration")
		return 1
	}

	m := mixer.New(inst, show.Pool, clock.RealClock{}, 1)

	watcher, err := watch.New(*patternsDir, m.ReloadSignal)
	if err != nil {
		log.WithError(err).Warn("pattern directory watch disabled")
	} else {
		defer watcher.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go m.Run(ctx)

	if *device != "" {
		port, err := dmxtransmitter.Open(*device)
		if err != nil {
			log.WithError(err).Error("failed to open dmx serial device, dmx output disabled")
		} else {
			tx := dmxtransmitter.New(port, m.Universes)
			go tx.Run()
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	go func() {
		<-quit
		cancel()
	}()

	program := tea.NewProgram(console.New(show.Pool, show.CueList, m))
	if err := program.Start(); err != nil {
		log.WithError(err).Error("console exited with an error")
		return 1
	}

	return 0
}
