package platform

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecondInstanceAsksFirstToShow(t *testing.T) {
	appName := "stagetimer-test-" + t.Name()
	guard, err := AcquireSingleInstance(appName)
	if err != nil {
		t.Skipf("port unavailable: %v", err)
	}
	defer guard.Release()

	shown := make(chan struct{}, 1)
	go guard.Serve(func() { shown <- struct{}{} })

	_, err = AcquireSingleInstance(appName)
	require.True(t, errors.Is(err, ErrAlreadyRunning))

	select {
	case <-shown:
	case <-time.After(2 * time.Second):
		t.Fatal("running instance was not asked to show")
	}
}

func TestPortFromNameIsStable(t *testing.T) {
	port := portFromName("StageTimer")
	assert.Equal(t, port, portFromName("StageTimer"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}

func TestDirsAreScopedByAppName(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	service := NewService()

	sessionDir, err := service.SessionDir("StageTimer")
	require.NoError(t, err)
	assert.Equal(t, "StageTimer", filepath.Base(sessionDir))

	_, err = service.SessionDir("")
	assert.Error(t, err)
	_, err = service.ConfigDir("")
	assert.Error(t, err)
}

func TestNilGuardIsSafe(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
	guard.Serve(nil)
}
