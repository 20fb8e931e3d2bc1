package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/config"
	"github.com/decker502/gunrunner/pkg/ecs"
	"github.com/decker502/gunrunner/pkg/entities"
	"github.com/decker502/gunrunner/pkg/game"
	"github.com/decker502/gunrunner/pkg/systems"
	"github.com/decker502/gunrunner/pkg/types"
	"github.com/decker502/gunrunner/pkg/weapons"
)

// Simulation 战斗核心的帧编排器
//
// 不依赖渲染：给定相同的调参和相同的 (dt, 意图) 序列，结果完全相同。
// 每帧固定顺序：翻滚 → 移动 → 动画 → 换弹 → 开火 → 子弹 → 拾取 → 死亡 → 清理实体。
type Simulation struct {
	entityManager *ecs.EntityManager
	events        *game.EventQueue
	tuning        *config.TuningConfig
	registry      *weapons.Registry
	animations    *components.AnimationStateMachine

	rollSystem       *systems.RollSystem
	movementSystem   *systems.MovementSystem
	animationSystem  *systems.AnimationSystem
	reloadSystem     *systems.ReloadSystem
	weaponSystem     *systems.WeaponSystem
	projectileSystem *systems.ProjectileSystem
	pickupSystem     *systems.PickupSystem
	deathSystem      *systems.DeathSystem

	elapsed float64
	frame   int
}

// NewSimulation 根据调参创建一个空的模拟（没有角色和拾取物）
func NewSimulation(tuning *config.TuningConfig) (*Simulation, error) {
	registry, err := weapons.NewRegistryFromTuning(tuning)
	if err != nil {
		return nil, fmt.Errorf("failed to bind weapon behaviors: %w", err)
	}
	animations, err := entities.NewAnimationStateMachine(tuning.Animation)
	if err != nil {
		return nil, fmt.Errorf("failed to build animation table: %w", err)
	}

	em := ecs.NewEntityManager()
	events := game.NewEventQueue()
	log.Printf("[Simulation] 已绑定武器: %v", registry.Kinds())

	return &Simulation{
		entityManager: em,
		events:        events,
		tuning:        tuning,
		registry:      registry,
		animations:    animations,

		rollSystem:       systems.NewRollSystem(em),
		movementSystem:   systems.NewMovementSystem(em),
		animationSystem:  systems.NewAnimationSystem(em),
		reloadSystem:     systems.NewReloadSystem(em, registry, events, tuning.Reload.MaxDuration),
		weaponSystem:     systems.NewWeaponSystem(em, registry, events),
		projectileSystem: systems.NewProjectileSystem(em, events),
		pickupSystem:     systems.NewPickupSystem(em, events, tuning.Pickup),
		deathSystem:      systems.NewDeathSystem(em, events),
	}, nil
}

// NewArena 创建一个标准场地：每个出生点一名本地玩家，外加一行拾取物
// 返回模拟和玩家角色ID（按出生点顺序：键鼠玩家在前，手柄玩家在后）
func NewArena(tuning *config.TuningConfig) (*Simulation, []ecs.EntityID, error) {
	sim, err := NewSimulation(tuning)
	if err != nil {
		return nil, nil, err
	}

	spawns := tuning.Arena.SpawnPoints()
	players := make([]ecs.EntityID, 0, len(spawns))
	for _, p := range spawns {
		players = append(players, sim.SpawnActor(p.X, p.Y))
	}
	pickups := sim.SpawnPickups()
	log.Printf("[Simulation] 场地就绪 (玩家: %v, 拾取物: %d)", players, len(pickups))
	return sim, players, nil
}

// SpawnActor 在指定位置生成一个持初始武器的角色
func (s *Simulation) SpawnActor(x, y float64) ecs.EntityID {
	return entities.NewActorEntity(s.entityManager, s.tuning, s.animations, x, y)
}

// SpawnPickups 按调参生成一行拾取物
func (s *Simulation) SpawnPickups() []ecs.EntityID {
	return entities.SpawnPickupRow(s.entityManager, s.tuning.Pickup)
}

// Step 推进一帧
//
// 参数:
//   - dt: 本帧时间增量（秒）
//   - intents: 每个角色本帧的输入意图；未出现的角色视为没有任何输入
//
// 返回: 本帧产生的全部通知（按发出顺序）
func (s *Simulation) Step(dt float64, intents map[ecs.EntityID]components.InputIntentComponent) []game.Event {
	s.applyIntents(intents)

	s.rollSystem.Update(dt)
	s.movementSystem.Update(dt)
	s.animationSystem.Update(dt)
	s.reloadSystem.Update(dt)
	s.weaponSystem.Update(dt)
	s.projectileSystem.Update(dt)
	s.pickupSystem.Update(dt)
	s.deathSystem.Update(dt)

	s.entityManager.RemoveMarkedEntities()

	s.elapsed += dt
	s.frame++
	return s.events.Drain()
}

// applyIntents 把本帧意图写入角色的意图组件
func (s *Simulation) applyIntents(intents map[ecs.EntityID]components.InputIntentComponent) {
	for _, id := range ecs.GetEntitiesWith1[*components.InputIntentComponent](s.entityManager) {
		current, _ := ecs.GetComponent[*components.InputIntentComponent](s.entityManager, id)
		if intent, ok := intents[id]; ok {
			*current = intent
			continue
		}
		*current = components.InputIntentComponent{AnimationState: types.AnimIdle}
	}
}

// Elapsed 返回累计模拟时间（秒）
func (s *Simulation) Elapsed() float64 {
	return s.elapsed
}

// Frame 返回已推进的帧数
func (s *Simulation) Frame() int {
	return s.frame
}

// EntityManager 返回底层实体管理器（渲染层只读使用）
func (s *Simulation) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Tuning 返回模拟使用的调参
func (s *Simulation) Tuning() *config.TuningConfig {
	return s.tuning
}

// Actors 返回所有存活角色（ID 升序）
func (s *Simulation) Actors() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.ActorStatsComponent](s.entityManager)
}

// Pickups 返回世界中剩余的拾取物（ID 升序）
func (s *Simulation) Pickups() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.PickupComponent](s.entityManager)
}

// Projectiles 返回飞行中的子弹（ID 升序）
func (s *Simulation) Projectiles() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.ProjectileComponent](s.entityManager)
}

// ActorState 角色状态快照，供界面显示和回放比对
type ActorState struct {
	ID        ecs.EntityID
	X, Y      float64
	Health    float64
	MaxHealth float64

	Weapon    types.WeaponKind
	MagAmmo   int
	MagSize   int
	Ammo      int
	Infinite  bool
	Reloading bool

	Animation types.AnimationState
	Frame     int
	Inventory map[types.ItemKind]int
}

// ActorState 返回角色的状态快照；角色不存在时返回 false
func (s *Simulation) ActorState(id ecs.EntityID) (ActorState, bool) {
	stats, ok := ecs.GetComponent[*components.ActorStatsComponent](s.entityManager, id)
	if !ok || !s.entityManager.IsAlive(id) {
		return ActorState{}, false
	}

	state := ActorState{
		ID:        id,
		Health:    stats.CurrentHealth,
		MaxHealth: stats.MaxHealth,
	}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id); ok {
		state.X, state.Y = pos.X, pos.Y
	}
	if anim, ok := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id); ok {
		state.Animation = anim.State
		state.Frame = anim.FrameIndex
	}
	if reload, ok := ecs.GetComponent[*components.ReloadComponent](s.entityManager, id); ok {
		state.Reloading = reload.IsReloading()
	}
	if inv, ok := ecs.GetComponent[*components.InventoryComponent](s.entityManager, id); ok {
		state.Inventory = inv.Snapshot()
	}
	if equipped, ok := ecs.GetComponent[*components.EquippedWeaponComponent](s.entityManager, id); ok {
		if weapon, ok := ecs.GetComponent[*components.WeaponComponent](s.entityManager, equipped.Weapon); ok {
			state.Weapon = weapon.Kind
		}
		if ammo, ok := ecs.GetComponent[*components.AmmoComponent](s.entityManager, equipped.Weapon); ok {
			state.MagAmmo = ammo.MagAmmo
			state.MagSize = ammo.MagSize
			state.Ammo = ammo.Ammo
			state.Infinite = ammo.Infinite
		}
	}
	return state, true
}
