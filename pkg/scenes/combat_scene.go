package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/config"
	"github.com/decker502/gunrunner/pkg/ecs"
	"github.com/decker502/gunrunner/pkg/game"
	"github.com/decker502/gunrunner/pkg/types"
	"github.com/decker502/gunrunner/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// FrameRecorder 接收每帧实际送入模拟的输入
type FrameRecorder interface {
	Capture(dt float64, intents map[ecs.EntityID]components.InputIntentComponent)
}

// CombatScene 可操作的战斗场景
// 负责输入轮询和绘制，战斗逻辑全部交给 Simulation。
// 第一名玩家使用键鼠，第二名玩家（如果场地有）使用第一个连接的手柄
type CombatScene struct {
	sim      *Simulation
	players  []ecs.EntityID
	padAim   float64
	keys     utils.KeyBindings
	settings *game.SettingsManager
	recorder FrameRecorder

	atlases map[components.AtlasHandle]*ebiten.Image
	log     []string
}

// NewCombatScene 创建战斗场景
//
// 参数:
//   - tuning: 调参配置
//   - settings: 操作设置（按键绑定、调试显示）
//   - recorder: 输入录制器，可为 nil
func NewCombatScene(tuning *config.TuningConfig, settings *game.SettingsManager, recorder FrameRecorder) (*CombatScene, error) {
	keys, err := utils.ParseKeyBindings(settings.GetSettings().Bindings)
	if err != nil {
		return nil, fmt.Errorf("invalid key bindings: %w", err)
	}

	sim, players, err := NewArena(tuning)
	if err != nil {
		return nil, err
	}

	return &CombatScene{
		sim:      sim,
		players:  players,
		keys:     keys,
		settings: settings,
		recorder: recorder,
		atlases:  buildAtlases(sim.animations),
	}, nil
}

// Update 读取输入并推进一帧
func (s *CombatScene) Update(deltaTime float64) {
	intents := make(map[ecs.EntityID]components.InputIntentComponent, len(s.players))
	if state, ok := s.sim.ActorState(s.players[0]); ok {
		sx, sy := config.WorldToScreen(state.X, state.Y)
		intents[s.players[0]] = utils.ReadIntent(s.keys, sx, sy)
	}
	if len(s.players) > 1 {
		// 没有手柄时第二名玩家原地待命
		if pad, ok := utils.FirstGamepad(); ok && s.sim.entityManager.IsAlive(s.players[1]) {
			intent := utils.ReadGamepadIntent(pad, s.padAim)
			s.padAim = intent.AimAngle
			intents[s.players[1]] = intent
		}
	}

	if s.recorder != nil {
		s.recorder.Capture(deltaTime, intents)
	}

	for _, e := range s.sim.Step(deltaTime, intents) {
		s.pushLog(e.String())
	}
}

// pushLog 记录最近的事件，最多保留 MaxEventLogLines 条
func (s *CombatScene) pushLog(line string) {
	s.log = append(s.log, line)
	if len(s.log) > config.MaxEventLogLines {
		s.log = s.log[len(s.log)-config.MaxEventLogLines:]
	}
}

// Draw 绘制场景
// 按 ZIndex 由低到高绘制拾取物，然后绘制角色、子弹和界面
func (s *CombatScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 46, G: 52, B: 64, A: 255})

	s.drawPickups(screen)
	for _, id := range s.sim.Actors() {
		s.drawActor(screen, id)
	}
	s.drawProjectiles(screen)
	s.drawHUD(screen)
}

func (s *CombatScene) drawProjectiles(screen *ebiten.Image) {
	em := s.sim.EntityManager()
	for _, id := range s.sim.Projectiles() {
		pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
		if !ok {
			continue
		}
		x, y := config.WorldToScreen(pos.X, pos.Y)
		vector.DrawFilledCircle(screen, float32(x), float32(y), 1.5, color.RGBA{R: 255, G: 220, B: 120, A: 255}, false)
	}
}

func (s *CombatScene) drawPickups(screen *ebiten.Image) {
	em := s.sim.EntityManager()
	pickups := s.sim.Pickups()
	sort.SliceStable(pickups, func(i, j int) bool {
		a, _ := ecs.GetComponent[*components.PickupComponent](em, pickups[i])
		b, _ := ecs.GetComponent[*components.PickupComponent](em, pickups[j])
		return a.ZIndex < b.ZIndex
	})

	const size = config.PickupSize
	for _, id := range pickups {
		pickup, _ := ecs.GetComponent[*components.PickupComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

		// 漂浮幅度以世界单位计，放大到像素后才看得出来
		x, y := config.WorldToScreen(pos.X, pickup.BaseY+pickup.BobOffset*20)
		left, top := float32(x-size/2), float32(y-size/2)
		vector.DrawFilledRect(screen, left, top, size, size, itemColor(pickup.Item), false)
		if pickup.Highlighted {
			vector.StrokeRect(screen, left-1, top-1, size+2, size+2, 1, color.RGBA{R: 255, G: 230, B: 80, A: 255}, false)
		}
	}
}

func (s *CombatScene) drawActor(screen *ebiten.Image, id ecs.EntityID) {
	em := s.sim.EntityManager()
	anim, ok := ecs.GetComponent[*components.AnimationComponent](em, id)
	if !ok {
		return
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	x, y := config.WorldToScreen(pos.X, pos.Y)

	atlasHandle, frame, flip := anim.Frame()
	if atlas, ok := s.atlases[atlasHandle]; ok {
		const size = config.SpriteFrameSize
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-size/2, -size/2)
		switch flip {
		case components.FlipX:
			op.GeoM.Scale(-1, 1)
		case components.FlipY:
			op.GeoM.Scale(1, -1)
		}
		op.GeoM.Translate(x, y)
		screen.DrawImage(frameImage(atlas, frame), op)
	}

	equipped, ok := ecs.GetComponent[*components.EquippedWeaponComponent](em, id)
	if !ok {
		return
	}
	weapon, ok := ecs.GetComponent[*components.WeaponComponent](em, equipped.Weapon)
	if !ok {
		return
	}
	ex := x + math.Cos(weapon.Orientation)*config.WeaponLength
	ey := y + math.Sin(weapon.Orientation)*config.WeaponLength
	vector.StrokeLine(screen, float32(x), float32(y), float32(ex), float32(ey), 2, color.RGBA{R: 200, G: 200, B: 210, A: 255}, false)
}

func (s *CombatScene) drawHUD(screen *ebiten.Image) {
	state, ok := s.sim.ActorState(s.players[0])
	if !ok {
		ebitenutil.DebugPrintAt(screen, "YOU DIED", config.LogicalWidth/2-24, config.LogicalHeight/2)
		return
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("HP %.0f/%.0f", state.Health, state.MaxHealth), 2, 2)
	ebitenutil.DebugPrintAt(screen, ammoLine(state), 2, 14)

	var inv []string
	for _, kind := range types.AllItemKinds() {
		inv = append(inv, fmt.Sprintf("%s:%d", kind, state.Inventory[kind]))
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(inv, " "), 2, 26)

	// 手柄玩家的状态显示在右上角
	if len(s.players) > 1 {
		line := "P2 down"
		if p2, ok := s.sim.ActorState(s.players[1]); ok {
			line = fmt.Sprintf("P2 HP %.0f  %d/%d", p2.Health, p2.MagAmmo, p2.MagSize)
		}
		ebitenutil.DebugPrintAt(screen, line, config.LogicalWidth-len(line)*6-2, 2)
	}

	if !s.settings.GetSettings().ShowDebug {
		return
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("frame %d  t=%.2f  %s#%d  entities %d",
		s.sim.Frame(), s.sim.Elapsed(), state.Animation, state.Frame, s.sim.EntityManager().EntityCount()), 2, 40)
	for i, line := range s.log {
		ebitenutil.DebugPrintAt(screen, line, 2, 54+i*12)
	}
}

// ammoLine 格式化弹药显示
func ammoLine(state ActorState) string {
	ammo := fmt.Sprintf("%s %d/%d  reserve %d", state.Weapon, state.MagAmmo, state.MagSize, state.Ammo)
	if state.Infinite {
		ammo = fmt.Sprintf("%s %d/%d  reserve inf", state.Weapon, state.MagAmmo, state.MagSize)
	}
	if state.Reloading {
		ammo += "  RELOADING"
	}
	return ammo
}

// Player 返回键鼠玩家的角色ID
func (s *CombatScene) Player() ecs.EntityID {
	return s.players[0]
}

// Players 返回全部本地玩家的角色ID（键鼠玩家在前）
func (s *CombatScene) Players() []ecs.EntityID {
	return s.players
}

// Simulation 返回场景使用的模拟
func (s *CombatScene) Simulation() *Simulation {
	return s.sim
}

// logSummary 在场景结束时输出玩家的背包
func (s *CombatScene) logSummary() {
	for _, id := range s.players {
		if state, ok := s.sim.ActorState(id); ok {
			log.Printf("[CombatScene] 结束于第 %d 帧，角色 %d 背包: %v", s.sim.Frame(), id, state.Inventory)
		}
	}
}

// Close 场景关闭前调用
func (s *CombatScene) Close() {
	s.logSummary()
}
