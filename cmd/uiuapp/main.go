package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/amatgil/uiuapp/activation"
	"github.com/amatgil/uiuapp/audio"
	"github.com/amatgil/uiuapp/catalog"
	"github.com/amatgil/uiuapp/config"
	"github.com/amatgil/uiuapp/core"
	"github.com/amatgil/uiuapp/editor"
	"github.com/amatgil/uiuapp/input"
	"github.com/amatgil/uiuapp/prim"
	"github.com/amatgil/uiuapp/render"
)

const (
	logDir      = "logs"
	logFileName = "uiuapp.log"
	maxLogSize  = 10 * 1024 * 1024 // 10 MB
)

type runCfg struct {
	configPath string
	keysPath   string
	debug      bool
	noSound    bool
	arm        string
}

var cfg = &runCfg{}

var rootCmd = &cobra.Command{
	Use:          "uiuapp",
	Short:        "Glyph keypad with radial alternates for writing uiua in a terminal",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&cfg.configPath, "config", "c", defaultConfigPath(), "settings file (YAML)")
	rootCmd.Flags().StringVarP(&cfg.keysPath, "keys", "k", "", "key binding overrides (YAML)")
	rootCmd.Flags().BoolVarP(&cfg.debug, "debug", "d", false, "write debug logs to "+filepath.Join(logDir, logFileName))
	rootCmd.Flags().BoolVar(&cfg.noSound, "no-sound", false, "disable feedback sounds")
	rootCmd.Flags().StringVar(&cfg.arm, "arm", "", "radial arm policy: delay, drag or both")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// defaultConfigPath is <user config dir>/uiuapp/settings.yaml, or empty when unknown
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "uiuapp", "settings.yaml")
}

// setupLogging routes the standard logger to logs/uiuapp.log when debug is set
// and discards it otherwise. A file over maxLogSize is moved aside first.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("uiuapp-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

// newLogger builds the structured logger sharing the debug log file
func newLogger(logFile *os.File) *logrus.Logger {
	l := logrus.New()
	if logFile == nil {
		l.SetOutput(io.Discard)
		return l
	}
	l.SetOutput(logFile)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return l
}

// loadSettings applies file, environment and flags in that order
func loadSettings(rc *runCfg) (*config.Settings, error) {
	settings, err := config.Load(rc.configPath)
	if err != nil {
		return nil, err
	}
	settings.ApplyEnv()
	if rc.noSound {
		settings.Sound = false
	}
	if rc.arm != "" {
		if _, err := activation.ParseArmPolicy(rc.arm); err != nil {
			return nil, errors.Wrap(err, "--arm")
		}
		settings.ArmPolicy = rc.arm
	}
	return settings, settings.Validate()
}

func loadKeyTable(path string) (*input.KeyTable, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read keymap")
	}
	override, err := input.LoadKeyConfig(data)
	if err != nil {
		return nil, err
	}
	return input.MergeKeyTable(input.DefaultKeyTable(), override), nil
}

func run(ctx context.Context, rc *runCfg) error {
	logFile := setupLogging(rc.debug)
	if logFile != nil {
		defer logFile.Close()
	}
	logger := newLogger(logFile)

	settings, err := loadSettings(rc)
	if err != nil {
		return err
	}
	keys, err := loadKeyTable(rc.keysPath)
	if err != nil {
		return err
	}

	pv := prim.Builtin()
	cat := catalog.Default()
	if err := catalog.Audit(cat, pv); err != nil {
		// The keypad still works; unreachable glyphs can be typed
		logger.WithError(err).Warn("keypad audit")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)

	sound := audio.NewSoundManager(audio.LoadAudioConfig(), logger.WithField("component", "audio"))
	if settings.Sound {
		if err := sound.Initialize(); err != nil {
			// Non-fatal, the keypad works without sound
			logger.WithError(err).Warn("audio initialization failed")
		}
	}

	session := editor.NewSession(editor.EchoEvaluator{}, nil, settings, logger.WithField("component", "editor"))

	app := render.NewApp(render.Options{
		Screen:   screen,
		Catalog:  cat,
		Provider: pv,
		Session:  session,
		Sound:    sound,
		KeyTable: keys,
		Logger:   logger,
		OnSettingsChanged: func(s config.Settings) {
			saveSettings(rc.configPath, s, logger)
		},
	})
	defer app.Close()

	// Panic recovery: restore the terminal before printing the trace
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.WithFields(logrus.Fields{
		"config": rc.configPath,
		"arm":    settings.ArmPolicy,
		"delay":  settings.ActivationDelay,
	}).Info("uiuapp started")

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func saveSettings(path string, s config.Settings, logger logrus.FieldLogger) {
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.WithError(err).Warn("settings not saved")
		return
	}
	if err := s.Save(path); err != nil {
		logger.WithError(err).Warn("settings not saved")
	}
}
