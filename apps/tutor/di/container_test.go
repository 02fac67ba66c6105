package di

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/mentorhub/apps/console"
	"github.com/trezcool/mentorhub/core"
	"github.com/trezcool/mentorhub/core/notify"
	"github.com/trezcool/mentorhub/core/user"
)

func TestNew(t *testing.T) {
	t.Setenv("ENV", "TEST")
	t.Setenv("SESSION_PATH", filepath.Join(t.TempDir(), "session.json"))
	t.Setenv("API_BASE_URL", "http://backend.test/api/")

	c := New()
	err := c.Invoke(func(conf *core.Config, app *console.App, center *notify.Center, notifier notify.Notifier, gw user.Gateway) {
		assert.True(t, conf.TestMode)
		assert.Equal(t, "http://backend.test/api", conf.API.BaseURL)
		assert.NotNil(t, app.Auth)
		assert.NotNil(t, app.MyReports)
		assert.Same(t, center, notifier)
		assert.NotNil(t, gw)
	})
	require.NoError(t, err)
}

func TestNewValidator(t *testing.T) {
	v := NewValidator()
	err := v.Struct(user.Credentials{Email: "nope", Password: "secret1"})
	require.Error(t, err)
	assert.True(t, core.IsValidationError(err))
}
