package entities

import (
	"fmt"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/config"
	"github.com/decker502/gunrunner/pkg/ecs"
	"github.com/decker502/gunrunner/pkg/types"
)

// NewAnimationStateMachine 根据调参构建角色的动作状态表
// 返回的状态机只读，可在多个角色之间共享
func NewAnimationStateMachine(cfg config.AnimationTuning) (*components.AnimationStateMachine, error) {
	entries := make(map[types.AnimationState]components.AnimationDescriptor, len(cfg.States))
	for name, entry := range cfg.States {
		state, err := types.ParseAnimationState(name)
		if err != nil {
			return nil, err
		}
		flip, err := components.ParseFlipMode(entry.Flip)
		if err != nil {
			return nil, fmt.Errorf("animation state %s: %w", name, err)
		}
		entries[state] = components.AnimationDescriptor{
			Atlas: components.AtlasHandle(entry.Atlas),
			First: entry.First,
			Last:  entry.Last,
			Flip:  flip,
		}
	}
	return components.NewAnimationStateMachine(entries)
}

// DefaultActorStats 根据调参生成满血的角色属性
func DefaultActorStats(cfg config.ActorTuning) components.ActorStatsComponent {
	return components.ActorStatsComponent{
		CurrentHealth:    cfg.MaxHealth,
		MaxHealth:        cfg.MaxHealth,
		Speed:            cfg.Speed,
		RollSpeed:        cfg.RollSpeed,
		RollDuration:     cfg.RollDuration,
		DamageMultiplier: cfg.DamageMultiplier,
		DamageAdded:      cfg.DamageAdded,
	}
}

// NewActorEntity 创建一个可控制的角色及其初始武器
//
// 参数:
//   - em: EntityManager 实例
//   - cfg: 调参配置（角色属性、动画帧时长、初始武器）
//   - machine: 动作状态表
//   - x, y: 世界坐标
//
// 返回: 角色实体ID（武器实体ID可通过 EquippedWeaponComponent 获取）
func NewActorEntity(em *ecs.EntityManager, cfg *config.TuningConfig, machine *components.AnimationStateMachine, x, y float64) ecs.EntityID {
	id := em.CreateEntity()

	stats := DefaultActorStats(cfg.Actor)
	ecs.AddComponent(em, id, &stats)
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.InputIntentComponent{AnimationState: types.AnimIdle})
	ecs.AddComponent(em, id, components.NewAnimationComponent(machine, types.AnimIdle, cfg.Animation.FrameDuration))
	ecs.AddComponent(em, id, &components.ReloadComponent{Phase: components.ReloadIdle})
	ecs.AddComponent(em, id, &components.RollComponent{})
	ecs.AddComponent(em, id, components.NewInventoryComponent())
	if cfg.Actor.HitWidth > 0 && cfg.Actor.HitHeight > 0 {
		ecs.AddComponent(em, id, &components.CollisionComponent{
			Width:  cfg.Actor.HitWidth,
			Height: cfg.Actor.HitHeight,
		})
	}

	kind := cfg.StartingWeaponKind()
	tuning, _ := cfg.Weapon(kind)
	weaponID := NewWeaponEntity(em, kind, tuning, id)
	ecs.AddComponent(em, id, &components.EquippedWeaponComponent{Weapon: weaponID})

	return id
}
