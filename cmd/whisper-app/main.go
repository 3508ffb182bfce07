package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/PieterBecking/whisper-app/internal/audio"
	"github.com/PieterBecking/whisper-app/internal/config"
	"github.com/PieterBecking/whisper-app/internal/hotkey"
	"github.com/PieterBecking/whisper-app/internal/logger"
	"github.com/PieterBecking/whisper-app/internal/notify"
	"github.com/PieterBecking/whisper-app/internal/paste"
	"github.com/PieterBecking/whisper-app/internal/platform"
	"github.com/PieterBecking/whisper-app/internal/session"
	"github.com/PieterBecking/whisper-app/internal/transcribe"
	"github.com/PieterBecking/whisper-app/internal/tray"
)

const appName = "Whisper App"

func init() {
	// The hotkey and tray event loops require the main OS thread on macOS
	runtime.LockOSThread()
}

func main() {
	log, err := logger.New(logger.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	cfg, err := config.Load(config.GetConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		log.Error("failed to load config: %v", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Invalid config: %v\n", err)
		log.Error("invalid config: %v", err)
		os.Exit(1)
	}
	if cfg.APIKey == "" {
		fmt.Fprintln(os.Stderr, "❌ No API key configured. Set OPENAI_API_KEY or add api_key to "+config.GetConfigPath())
		log.Error("no API key configured")
		os.Exit(1)
	}

	profile := platform.Resolve()
	log.Info("platform resolved: os=%s session=%s paste=%s notify=%s",
		profile.OS, profile.Session, profile.PasteTool, profile.Notifier)

	fmt.Printf("🖥️  Platform: %s\n", profile.Pretty)
	if missing := platform.MissingLinuxTools(profile); len(missing) > 0 {
		fmt.Printf("🔔 Missing tools: %s (install for paste and notifications)\n", strings.Join(missing, ", "))
		log.Warn("missing platform tools: %v", missing)
	}

	audioConfig := audio.DefaultConfig()
	audioConfig.DeviceID = cfg.AudioDeviceID
	audioConfig.SampleRate = cfg.SampleRate
	audioConfig.Channels = cfg.Channels

	driver, err := audio.NewPortAudioDriver(audioConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to initialize audio: %v\n", err)
		log.Error("failed to initialize audio: %v", err)
		os.Exit(1)
	}
	fmt.Println("🎤 Audio initialized")

	transcriberConfig := transcribe.DefaultConfig(cfg.APIKey)
	transcriberConfig.Model = cfg.Model
	transcriber := transcribe.NewWhisperClient(transcriberConfig)

	paster := paste.New(profile)
	notifier := notify.New(profile, appName, cfg.ShowNotifications)

	hotkeyConfig := hotkey.Config{
		Ctrl:  cfg.Hotkey.Ctrl,
		Shift: cfg.Hotkey.Shift,
		Alt:   cfg.Hotkey.Alt,
		Cmd:   cfg.Hotkey.Cmd,
		Key:   cfg.Hotkey.Key,
	}
	hotkeyManager := hotkey.New()

	sessionConfig := session.Config{
		SampleRate:  cfg.SampleRate,
		Channels:    cfg.Channels,
		MaxDuration: time.Duration(cfg.MaxRecordTime) * time.Second,
	}

	var (
		sessionManager *session.Manager
		trayManager    *tray.Manager
		shutdownOnce   sync.Once
	)

	shutdown := func() {
		shutdownOnce.Do(func() {
			log.Info("shutting down")
			if err := hotkeyManager.Close(); err != nil {
				log.Warn("failed to close hotkey: %v", err)
			}
			if sessionManager != nil {
				sessionManager.Stop()
			}
			if err := driver.Close(); err != nil {
				log.Warn("failed to close audio driver: %v", err)
			}
		})
	}

	trayManager = tray.NewManager(tray.Config{
		ShortcutLabel: hotkeyConfig.String(),
		OnReady: func() {
			if err := hotkeyManager.Register(hotkeyConfig); err != nil {
				log.Error("failed to register hotkey: %v", err)
				notifier.ErrorMsg("❌ Failed to register shortcut " + hotkeyConfig.String())
				return
			}

			sessionManager = session.New(driver, transcriber, paster, notifier, log, hotkeyManager.Events(), sessionConfig)
			sessionManager.SetStateHook(func(s session.State) {
				switch s {
				case session.Recording:
					trayManager.SetState(tray.StateRecording)
				case session.Processing:
					trayManager.SetState(tray.StateProcessing)
				default:
					trayManager.SetState(tray.StateIdle)
				}
			})
			go sessionManager.Run()

			log.Info("ready: shortcut %s", hotkeyConfig)
			fmt.Printf("📋 Shortcut: %s\n", hotkeyConfig)
			fmt.Println("🔄 Press the shortcut to start and stop recording")
		},
		OnQuit: shutdown,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info("received signal %v", sig)
		shutdown()
		trayManager.Quit()
	}()

	// Blocks until the tray exits, via Quit menu or signal
	trayManager.Run()
	shutdown()
}
