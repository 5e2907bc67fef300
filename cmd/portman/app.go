package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/portmanops/portman/portman/commandmanager"
	"github.com/portmanops/portman/portman/configstore"
	"github.com/portmanops/portman/portman/installer"
	"github.com/portmanops/portman/portman/pkgdb"
	"github.com/portmanops/portman/portman/selfupdate"
)

const defaultBasepath = "/var/lib/portman"

// app wires the collaborators one command invocation needs.
type app struct {
	store     *configstore.IniStore
	log       *logrus.Logger
	db        *pkgdb.DescDatabase
	installer *installer.AptInstaller
	registry  *selfupdate.Registry
	finalizer *selfupdate.Finalizer
	out       io.Writer
}

func newApp(flags *rootFlags, out io.Writer) (*app, error) {
	log := logrus.New()
	if flags.logFile != "" {
		file, err := os.OpenFile(flags.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		log.SetOutput(file)
	}
	if flags.debug {
		log.SetLevel(logrus.DebugLevel)
	}

	store, err := configstore.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	base := store.GetWithDefault(configstore.KeyBasepath, defaultBasepath)
	manager := &commandmanager.LocalCommandManager{Log: log}
	db := &pkgdb.DescDatabase{BaseDir: base, Log: log}
	apt := &installer.AptInstaller{CommandManager: manager, Log: log}

	stateDir := filepath.Join(base, "state")
	registry := selfupdate.NewRegistry()
	registry.Register(selfupdate.MethodPoint, &selfupdate.PointStrategy{
		State:          selfupdate.StrategyState{StateDir: stateDir, Method: selfupdate.MethodPoint},
		CommandManager: manager,
		BaseURL:        store.GetWithDefault(configstore.KeyDistBaseURL, ""),
		DescDir:        db.DescDir(),
		Log:            log,
	})
	registry.Register(selfupdate.MethodCvs, &selfupdate.CvsStrategy{
		State:          selfupdate.StrategyState{StateDir: stateDir, Method: selfupdate.MethodCvs},
		CommandManager: manager,
		Root:           store.GetWithDefault(configstore.KeyCvsRoot, ""),
		DescDir:        db.DescDir(),
		Log:            log,
	})
	registry.Register(selfupdate.MethodRsync, &selfupdate.RsyncStrategy{
		State:          selfupdate.StrategyState{StateDir: stateDir, Method: selfupdate.MethodRsync},
		CommandManager: manager,
		Mirror:         store.GetWithDefault(configstore.KeyRsyncMirror, ""),
		DescDir:        db.DescDir(),
		Log:            log,
	})

	executable, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locating own executable: %w", err)
	}

	finalizer := &selfupdate.Finalizer{
		DB:             db,
		Installer:      apt,
		Replacer:       installer.ExecReplacer{},
		Out:            out,
		Log:            log,
		SelfExecutable: executable,
		Version:        Version,
	}

	return &app{
		store:     store,
		log:       log,
		db:        db,
		installer: apt,
		registry:  registry,
		finalizer: finalizer,
		out:       out,
	}, nil
}
