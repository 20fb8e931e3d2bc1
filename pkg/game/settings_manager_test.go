package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestGdata 在临时 HOME 下打开 gdata 存储
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	m, err := gdata.Open(gdata.Config{AppName: appName})
	require.NoError(t, err, "failed to create gdata manager")
	return m
}

// TestDefaultSettings 默认设置覆盖全部操作
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	for _, action := range AllActions() {
		assert.NotEmpty(t, settings.Bindings[action], "action %s should have a default key", action)
	}
	assert.True(t, settings.PixelPerfect)
	assert.False(t, settings.Fullscreen)
}

// TestNewSettingsManagerNilGdata gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	require.NoError(t, err)

	assert.Equal(t, "R", sm.Binding(ActionReload))
	assert.NoError(t, sm.Save(), "Save() in degraded mode should not fail")

	require.NoError(t, sm.SetBinding(ActionReload, "T"))
	require.NoError(t, sm.Load())
	assert.Equal(t, "R", sm.Binding(ActionReload), "Load() in degraded mode should restore defaults")
}

// TestSettingsLoadSave 保存后重新加载
func TestSettingsLoadSave(t *testing.T) {
	m := openTestGdata(t, "test_control_settings")

	sm1, err := NewSettingsManager(m)
	require.NoError(t, err)

	require.NoError(t, sm1.SetBinding(ActionFire, "K"))
	sm1.SetPixelPerfect(false)
	sm1.SetFullscreen(true)
	sm1.SetShowDebug(true)
	require.NoError(t, sm1.Save())

	sm2, err := NewSettingsManager(m)
	require.NoError(t, err)

	settings := sm2.GetSettings()
	assert.Equal(t, "K", settings.Bindings[ActionFire])
	assert.Equal(t, "E", settings.Bindings[ActionInteract])
	assert.False(t, settings.PixelPerfect)
	assert.True(t, settings.Fullscreen)
	assert.True(t, settings.ShowDebug)
}

// TestSettingsLoadFillsMissingBindings 旧版本保存的设置缺少绑定时用默认值补齐
func TestSettingsLoadFillsMissingBindings(t *testing.T) {
	m := openTestGdata(t, "test_control_settings_partial")

	partial := []byte("bindings:\n  fire: K\npixelPerfect: false\n")
	require.NoError(t, m.SaveObjectProp(settingsObject, settingsProperty, partial))

	sm, err := NewSettingsManager(m)
	require.NoError(t, err)

	assert.Equal(t, "K", sm.Binding(ActionFire))
	assert.Equal(t, "Space", sm.Binding(ActionRoll))
	assert.False(t, sm.GetSettings().PixelPerfect)
}

// TestSettingsLoadCorrupted 无法解析的设置文件回退到默认值
func TestSettingsLoadCorrupted(t *testing.T) {
	m := openTestGdata(t, "test_control_settings_corrupted")
	require.NoError(t, m.SaveObjectProp(settingsObject, settingsProperty, []byte("bindings: [not, a, map")))

	sm, err := NewSettingsManager(m)
	require.NoError(t, err, "corrupted settings should not prevent creation")
	assert.Error(t, sm.Load())
	assert.Equal(t, DefaultSettings(), sm.GetSettings())
}

func TestSetBinding(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	assert.Error(t, sm.SetBinding(Action("jump"), "K"), "unknown action should be rejected")
	assert.Error(t, sm.SetBinding(ActionFire, ""), "empty key should be rejected")
	require.NoError(t, sm.SetBinding(ActionFire, "Enter"))
	assert.Equal(t, "Enter", sm.Binding(ActionFire))
}
