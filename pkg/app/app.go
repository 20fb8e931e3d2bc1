// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，
// main.go 只负责解析命令行参数和启动 ebiten 主循环。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/gunrunner/pkg/config"
	"github.com/decker502/gunrunner/pkg/game"
	"github.com/decker502/gunrunner/pkg/replay"
	"github.com/decker502/gunrunner/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "gunrunner"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// TuningPath 调参文件路径，为空则使用内置的 data/tuning.yaml
	TuningPath string
	// RecordPath 录像输出路径，为空则不录制
	RecordPath string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *SceneManager
	settings     *game.SettingsManager
	tuning       *config.TuningConfig
	tuningPath   string
	recorder     *replay.Recorder
	recordPath   string
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 使用内置调参文件时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	tuning, tuningPath, err := loadTuning(cfg.TuningPath)
	if err != nil {
		return nil, err
	}
	log.Printf("[Config] 加载调参文件: %s", tuningPath)

	// gdata 打开失败时降级为仅内存设置
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
		gdataManager = nil
	}
	settings, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置加载失败: %w", err)
	}

	a := &App{
		settings:   settings,
		tuning:     tuning,
		tuningPath: tuningPath,
		recordPath: cfg.RecordPath,
		verbose:    cfg.Verbose,
	}
	a.sceneManager = NewSceneManager(a.newCombatScene)
	if err := a.sceneManager.Restart(); err != nil {
		return nil, fmt.Errorf("战斗场景创建失败: %w", err)
	}

	ebiten.SetFullscreen(settings.GetSettings().Fullscreen)
	return a, nil
}

// loadTuning 加载调参文件，path 为空时使用内置文件
func loadTuning(path string) (*config.TuningConfig, string, error) {
	if path == "" {
		tuning, err := config.LoadEmbeddedTuning()
		if err != nil {
			return nil, "", fmt.Errorf("调参文件加载失败: %w", err)
		}
		return tuning, config.DefaultTuningPath, nil
	}
	tuning, err := config.LoadTuning(path)
	if err != nil {
		return nil, "", fmt.Errorf("调参文件加载失败: %w", err)
	}
	return tuning, path, nil
}

// newCombatScene 场景工厂
// 每次（重新）开始都使用新的录制器，录像只包含最后一局
func (a *App) newCombatScene() (Scene, error) {
	var recorder scenes.FrameRecorder
	if a.recordPath != "" {
		a.recorder = replay.NewRecorder(a.tuningPath, a.tuning.Pickup.Seed)
		recorder = a.recorder
	}
	return scenes.NewCombatScene(a.tuning, a.settings, recorder)
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	// P 切换像素完美渲染
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		pixelPerfect := !a.settings.GetSettings().PixelPerfect
		a.settings.SetPixelPerfect(pixelPerfect)
		a.saveSettings()
		log.Printf("[App] PixelPerfect = %v", pixelPerfect)
	}

	// F3 切换调试信息
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		a.settings.SetShowDebug(!a.settings.GetSettings().ShowDebug)
		a.saveSettings()
	}

	// F5 重新开始
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		a.SaveRecording()
		if err := a.sceneManager.Restart(); err != nil {
			log.Printf("[App] Restart failed: %v", err)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settings.SetFullscreen(!a.settings.GetSettings().Fullscreen)
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = a.filter()
	screen.DrawImage(offscreen, op)
}

// filter 像素完美模式用最近邻放大保持像素边缘，否则用线性滤波
func (a *App) filter() ebiten.Filter {
	if a.settings.GetSettings().PixelPerfect {
		return ebiten.FilterNearest
	}
	return ebiten.FilterLinear
}

// Layout 返回游戏的逻辑屏幕尺寸
// 场景始终在固定的低分辨率画布上绘制，由 DrawFinalScreen 按 filter() 放大到窗口
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.LogicalWidth, config.LogicalHeight
}

// SaveRecording 把当前录像写入 RecordPath
// 未启用录制时什么都不做
func (a *App) SaveRecording() {
	if a.recorder == nil {
		return
	}
	if err := a.recorder.Save(a.recordPath); err != nil {
		log.Printf("[App] Warning: Failed to save recording: %v", err)
		return
	}
	log.Printf("[App] 录像已保存: %s (%d 帧)", a.recordPath, len(a.recorder.Recording().Frames))
}

// Close 游戏退出时调用：关闭场景并保存录像
func (a *App) Close() {
	a.sceneManager.Close()
	a.SaveRecording()
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
