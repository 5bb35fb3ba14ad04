package loader_test

import (
	"errors"
	"testing"

	"inventory-sync/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	loadErr error
	loaded  bool
}

func (f *stubFeature) Name() string    { return f.name }
func (f *stubFeature) IsEnabled() bool { return f.enabled }

func (f *stubFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.loadErr
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("SkipsDisabled", func(t *testing.T) {
		enabled := &stubFeature{name: "on", enabled: true}
		disabled := &stubFeature{name: "off"}

		mgr := loader.NewManager()
		mgr.Register(enabled)
		mgr.Register(disabled)

		assert.NoError(t, mgr.LoadAll(fiber.New()))
		assert.True(t, enabled.loaded)
		assert.False(t, disabled.loaded)
	})

	t.Run("StopsOnFailure", func(t *testing.T) {
		failing := &stubFeature{name: "broken", enabled: true, loadErr: errors.New("route clash")}
		after := &stubFeature{name: "later", enabled: true}

		mgr := loader.NewManager()
		mgr.Register(failing)
		mgr.Register(after)

		err := mgr.LoadAll(fiber.New())
		assert.ErrorContains(t, err, "broken")
		assert.False(t, after.loaded)
	})
}
