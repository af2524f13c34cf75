package tray

import (
	"fmt"

	"stagetimer/internal/core/countdown"
	"stagetimer/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/systray"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnStartPause  func()
	OnReset       func()
	OnAddTime     func()
	OnToggleMute  func()
	OnPreferences func()
	OnQuit        func()
}

// menuHost is the part of desktop.App the tray needs.
type menuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Manager handles system tray state.
type Manager struct {
	app        menuHost
	title      string
	callbacks  Callbacks
	setTooltip func(string)

	statusItem  *fyne.MenuItem
	summaryItem *fyne.MenuItem
	startItem   *fyne.MenuItem
	muteItem    *fyne.MenuItem

	status  countdown.Status
	summary string
}

// New creates a tray manager with the provided callbacks.
func New(app menuHost, title string, callbacks Callbacks) *Manager {
	return newManager(app, title, callbacks, systray.SetTooltip)
}

func newManager(app menuHost, title string, callbacks Callbacks, setTooltip func(string)) *Manager {
	manager := &Manager{
		app:        app,
		title:      title,
		callbacks:  callbacks,
		setTooltip: setTooltip,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.summaryItem = fyne.NewMenuItem("", nil)
	manager.summaryItem.Disabled = true
	manager.startItem = fyne.NewMenuItem("Start", func() { call(manager.callbacks.OnStartPause) })
	manager.muteItem = fyne.NewMenuItem("Mute", func() { call(manager.callbacks.OnToggleMute) })

	manager.refreshStatus()
	return manager
}

// SetStatus mirrors the countdown in the menu and tooltip.
func (manager *Manager) SetStatus(status countdown.Status) {
	manager.status = status
	if status.State.Running() {
		manager.startItem.Label = "Pause"
	} else {
		manager.startItem.Label = "Start"
	}
	if status.Muted {
		manager.muteItem.Label = "Unmute"
	} else {
		manager.muteItem.Label = "Mute"
	}
	manager.refreshStatus()
}

// SetSummary updates the history line.
func (manager *Manager) SetSummary(summary string) {
	manager.summary = summary
	manager.refreshStatus()
}

// StatusLine describes status for the tray.
func StatusLine(status countdown.Status) string {
	clock := model.FormatClock(status.Remaining)
	switch status.State {
	case countdown.StateRunning:
		return fmt.Sprintf("%s remaining", clock)
	case countdown.StateAlertRunning:
		return fmt.Sprintf("%s remaining (final minutes)", clock)
	case countdown.StatePaused:
		return fmt.Sprintf("%s (paused)", clock)
	case countdown.StateExpired:
		return "Time's up"
	default:
		return "Ready"
	}
}

func (manager *Manager) refreshStatus() {
	line := StatusLine(manager.status)
	manager.statusItem.Label = fmt.Sprintf("Status: %s", line)
	manager.summaryItem.Label = manager.summary
	if manager.setTooltip != nil {
		manager.setTooltip(fmt.Sprintf("%s: %s", manager.title, line))
	}
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	items := []*fyne.MenuItem{manager.statusItem}
	if manager.summary != "" {
		items = append(items, manager.summaryItem)
	}
	items = append(items,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show timer", func() { call(manager.callbacks.OnShow) }),
		manager.startItem,
		fyne.NewMenuItem("Reset", func() { call(manager.callbacks.OnReset) }),
		fyne.NewMenuItem("Add time", func() { call(manager.callbacks.OnAddTime) }),
		manager.muteItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings", func() { call(manager.callbacks.OnPreferences) }),
		fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) }),
	)
	manager.app.SetSystemTrayMenu(fyne.NewMenu(manager.title, items...))
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
