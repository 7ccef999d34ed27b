package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basegeek/startpage/internal/domain"
	"github.com/basegeek/startpage/internal/logger"
	"github.com/basegeek/startpage/internal/store/memory"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "services.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestApplyRegistersServices(t *testing.T) {
	path := writeSeedFile(t, `
services:
  - name: Router
    url: http://192.168.1.1
    type: web
    tags: [network]
  - name: Plex
    url: http://192.168.1.50:32400
    description: Media server
    alertThreshold: 2000
    checkInterval: 60
`)

	backend := memory.NewBackend()
	s := NewSeeder(path, backend.Services(), logger.NewNop())
	require.NoError(t, s.Apply(context.Background()))

	list, err := backend.Services().List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	router, err := backend.Services().GetByName(context.Background(), "Router")
	require.NoError(t, err)
	assert.Equal(t, domain.TypeWeb, router.Type)
	assert.Equal(t, domain.DefaultAlertThreshold, router.AlertThreshold)
	assert.True(t, router.Enabled)
	assert.Equal(t, domain.StatusUnknown, router.Status)

	plex, err := backend.Services().GetByName(context.Background(), "Plex")
	require.NoError(t, err)
	assert.Equal(t, 2000, plex.AlertThreshold)
	assert.Equal(t, 60, plex.CheckInterval)
}

func TestApplyIsIdempotent(t *testing.T) {
	path := writeSeedFile(t, `
services:
  - name: Router
    url: http://192.168.1.1
`)

	backend := memory.NewBackend()
	s := NewSeeder(path, backend.Services(), logger.NewNop())
	require.NoError(t, s.Apply(context.Background()))

	// User edits the service between restarts.
	svc, err := backend.Services().GetByName(context.Background(), "Router")
	require.NoError(t, err)
	svc.Description = "edited by hand"
	require.NoError(t, backend.Services().Save(context.Background(), svc))

	require.NoError(t, s.Apply(context.Background()))

	list, err := backend.Services().List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "edited by hand", list[0].Description)
}

func TestApplySkipsInvalidEntries(t *testing.T) {
	path := writeSeedFile(t, `
services:
  - name: ""
    url: http://192.168.1.1
  - name: NoURL
  - name: BadType
    url: http://10.0.0.1
    type: mainframe
  - name: Good
    url: http://10.0.0.2
`)

	backend := memory.NewBackend()
	s := NewSeeder(path, backend.Services(), logger.NewNop())
	require.NoError(t, s.Apply(context.Background()))

	list, err := backend.Services().List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Good", list[0].Name)
}

func TestApplyMissingFile(t *testing.T) {
	backend := memory.NewBackend()
	s := NewSeeder(filepath.Join(t.TempDir(), "nope.yaml"), backend.Services(), logger.NewNop())
	assert.Error(t, s.Apply(context.Background()))
}

func TestApplyDisabledEntry(t *testing.T) {
	path := writeSeedFile(t, `
services:
  - name: Legacy
    url: http://10.0.0.9
    enabled: false
`)

	backend := memory.NewBackend()
	s := NewSeeder(path, backend.Services(), logger.NewNop())
	require.NoError(t, s.Apply(context.Background()))

	svc, err := backend.Services().GetByName(context.Background(), "Legacy")
	require.NoError(t, err)
	assert.False(t, svc.Enabled)
}
