package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Action 可绑定按键的操作
type Action string

const (
	ActionFire      Action = "fire"
	ActionReload    Action = "reload"
	ActionInteract  Action = "interact"
	ActionRoll      Action = "roll"
	ActionMoveUp    Action = "moveUp"
	ActionMoveDown  Action = "moveDown"
	ActionMoveLeft  Action = "moveLeft"
	ActionMoveRight Action = "moveRight"
)

// AllActions 按固定顺序返回全部操作
func AllActions() []Action {
	return []Action{
		ActionFire, ActionReload, ActionInteract, ActionRoll,
		ActionMoveUp, ActionMoveDown, ActionMoveLeft, ActionMoveRight,
	}
}

// ControlSettings 本机的操作和显示设置
// 按键用 ebiten 的按键名保存（如 "KeyR"、"Space"），由输入层解析
type ControlSettings struct {
	Bindings map[Action]string `yaml:"bindings"`

	PixelPerfect bool `yaml:"pixelPerfect"` // 整数倍缩放
	Fullscreen   bool `yaml:"fullscreen"`   // 启动时是否全屏
	ShowDebug    bool `yaml:"showDebug"`    // 显示调试信息（帧号、事件）
}

// DefaultSettings 返回默认设置
func DefaultSettings() *ControlSettings {
	return &ControlSettings{
		Bindings: map[Action]string{
			ActionFire:      "J",
			ActionReload:    "R",
			ActionInteract:  "E",
			ActionRoll:      "Space",
			ActionMoveUp:    "W",
			ActionMoveDown:  "S",
			ActionMoveLeft:  "A",
			ActionMoveRight: "D",
		},
		PixelPerfect: true,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager   // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ControlSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "controls"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 目前总是 nil，加载失败只记录日志并使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置；
// 已保存的设置缺少某个操作的绑定时，用默认绑定补齐
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded ControlSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	defaults := DefaultSettings()
	if loaded.Bindings == nil {
		loaded.Bindings = make(map[Action]string)
	}
	for _, action := range AllActions() {
		if loaded.Bindings[action] == "" {
			loaded.Bindings[action] = defaults.Bindings[action]
		}
	}

	sm.settings = &loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// gdataManager 为 nil 时直接返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ControlSettings {
	return sm.settings
}

// Binding 返回操作绑定的按键名
func (sm *SettingsManager) Binding(action Action) string {
	return sm.settings.Bindings[action]
}

// SetBinding 修改操作的按键绑定
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetBinding(action Action, key string) error {
	if !isKnownAction(action) {
		return fmt.Errorf("unknown action %q", action)
	}
	if key == "" {
		return fmt.Errorf("action %s: key cannot be empty", action)
	}
	sm.settings.Bindings[action] = key
	return nil
}

// SetPixelPerfect 设置整数倍缩放
func (sm *SettingsManager) SetPixelPerfect(enabled bool) {
	sm.settings.PixelPerfect = enabled
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetShowDebug 设置是否显示调试信息
func (sm *SettingsManager) SetShowDebug(enabled bool) {
	sm.settings.ShowDebug = enabled
}

func isKnownAction(action Action) bool {
	for _, a := range AllActions() {
		if a == action {
			return true
		}
	}
	return false
}
