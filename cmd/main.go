package main

import (
	"context"
	"log"
	"time"

	"stagetimer/internal/app"
	"stagetimer/internal/audio"
	"stagetimer/internal/core/countdown"
	"stagetimer/internal/core/settings"
	"stagetimer/internal/core/theme"
	"stagetimer/internal/history"
	"stagetimer/internal/logutil"
	"stagetimer/internal/platform"
	"stagetimer/internal/storage"
	"stagetimer/internal/ui/animation"
	"stagetimer/internal/ui/preferences"
	"stagetimer/internal/ui/shell"
	"stagetimer/internal/ui/tray"
	"stagetimer/resources"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "StageTimer"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	dirs := platform.NewService()
	configDir, err := dirs.ConfigDir(appName)
	logutil.MustSucceed("config dir", err)

	durable := storage.NewDurableStore(configDir)
	var session *storage.SessionStore
	if sessionDir, err := dirs.SessionDir(appName); err != nil {
		log.Printf("session dir: %v; theme will not survive a restart", err)
	} else {
		session = storage.NewSessionStore(sessionDir)
	}
	persister := storage.NewThemePersister(session, durable)

	prefs, err := durable.Load()
	logutil.LogError("preferences: load", err)

	themes := settings.NewStore(settings.Load(persister), persister)

	var sounds countdown.Sounds = audio.Silent{}
	if player, err := audio.NewPlayer(); err != nil {
		log.Printf("audio: %v; continuing without sound", err)
	} else {
		sounds = player
	}

	var recorder app.History
	if store, err := history.Open(configDir); err != nil {
		log.Printf("history: %v; runs will not be recorded", err)
	} else {
		recorder = store
		defer func() {
			logutil.LogError("history: close", store.Close())
		}()
	}

	machine := countdown.New(prefs.CountdownPolicy(), themes, sounds)
	controller := app.New(machine, themes, durable, recorder, prefs)

	fyneApp := fyneapp.NewWithID("com.stagetimer.app")
	fyneApp.SetIcon(resources.MustImage(resources.AppIcon))

	var prefsWindow *preferences.Window
	mainWindow := shell.New(fyneApp, appName, shell.Actions{
		OnReset:      controller.Reset,
		OnStartPause: controller.StartPause,
		OnAddTime:    controller.AddTime,
		OnToggleMute: controller.ToggleMute,
		OnSettings: func() {
			prefsWindow.Show()
		},
		OnRename: controller.SetTimerName,
	}, animation.DefaultConfig())

	prefsWindow = preferences.New(fyneApp, prefs, preferences.Actions{
		SelectPreset: controller.SelectPreset,
		UpdateTheme:  controller.UpdateTheme,
		SavePreferences: func(updated preferences.Settings) {
			controller.UpdatePreferences(updated)
			mainWindow.SetAddStep(updated.AddTimeStep)
		},
	})

	quit := func() {
		mainWindow.Stop()
		fyneApp.Quit()
	}

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, appName, tray.Callbacks{
			OnShow:        mainWindow.Show,
			OnStartPause:  controller.StartPause,
			OnReset:       controller.Reset,
			OnAddTime:     controller.AddTime,
			OnToggleMute:  controller.ToggleMute,
			OnPreferences: prefsWindow.Show,
			OnQuit:        quit,
		})
		desktopApp.SetSystemTrayIcon(resources.MustImage(resources.AppIcon))
		mainWindow.Window().SetCloseIntercept(func() {
			mainWindow.Window().Hide()
		})
	} else {
		log.Printf("system tray unsupported on this platform")
		mainWindow.Window().SetCloseIntercept(quit)
	}

	controller.OnThemeChange(func(current theme.Settings) {
		mainWindow.ApplyTheme(current)
		prefsWindow.Refresh(current, controller.Status().AlertMode)
	})

	controller.OnEvent(func(event countdown.Event) {
		mainWindow.SetStatus(event.Status)
		summary := ""
		if event.Type != countdown.EventTick {
			summary = controller.Summary(time.Now())
		}
		if trayManager == nil {
			return
		}
		fyne.Do(func() {
			trayManager.SetStatus(event.Status)
			if summary != "" {
				trayManager.SetSummary(summary)
			}
		})
	})

	fyneApp.Lifecycle().SetOnStarted(func() {
		current := controller.Theme()
		status := controller.Status()
		mainWindow.ApplyTheme(current)
		mainWindow.SetStatus(status)
		mainWindow.SetTimerName(controller.Preferences().TimerName)
		mainWindow.SetAddStep(controller.Preferences().AddTimeStep)
		prefsWindow.Refresh(current, status.AlertMode)
		if trayManager != nil {
			trayManager.SetStatus(status)
			trayManager.SetSummary(controller.Summary(time.Now()))
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go controller.Run(ctx)
	go guard.Serve(func() {
		fyne.Do(mainWindow.Show)
	})

	log.Printf("%s started; config in %s", appName, configDir)
	mainWindow.Show()
	fyneApp.Run()

	controller.Shutdown()
}
