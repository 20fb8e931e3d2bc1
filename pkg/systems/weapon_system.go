package systems

import (
	"log"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/ecs"
	"github.com/decker502/gunrunner/pkg/entities"
	"github.com/decker502/gunrunner/pkg/game"
	"github.com/decker502/gunrunner/pkg/weapons"
)

// WeaponSystem 开火路径
//
// 只有换弹阶段为 ReloadIdle 且本帧没有刚结束换弹的角色才能开火，
// 因此同一帧内弹匣只会被开火或换弹其中一方修改。
// 必须在 ReloadSystem 之后运行：触发换弹的那次开火键不会再开火。
type WeaponSystem struct {
	entityManager *ecs.EntityManager
	registry      *weapons.Registry
	events        *game.EventQueue
}

// NewWeaponSystem 创建开火系统
func NewWeaponSystem(em *ecs.EntityManager, registry *weapons.Registry, events *game.EventQueue) *WeaponSystem {
	return &WeaponSystem{
		entityManager: em,
		registry:      registry,
		events:        events,
	}
}

// Update 处理所有持枪角色的瞄准和开火
func (s *WeaponSystem) Update(deltaTime float64) {
	actors := ecs.GetEntitiesWith2[
		*components.EquippedWeaponComponent,
		*components.InputIntentComponent,
	](s.entityManager)

	for _, actorID := range actors {
		equipped, _ := ecs.GetComponent[*components.EquippedWeaponComponent](s.entityManager, actorID)
		intent, _ := ecs.GetComponent[*components.InputIntentComponent](s.entityManager, actorID)

		if !s.entityManager.IsAlive(equipped.Weapon) {
			continue
		}
		weapon, ok := ecs.GetComponent[*components.WeaponComponent](s.entityManager, equipped.Weapon)
		if !ok {
			continue
		}
		ammo, ok := ecs.GetComponent[*components.AmmoComponent](s.entityManager, equipped.Weapon)
		if !ok {
			continue
		}

		if weapon.FireCooldown > 0 {
			weapon.FireCooldown -= deltaTime
		}

		// 换弹中或本帧刚换完：朝向和弹药都归换弹行为所有
		if reload, ok := ecs.GetComponent[*components.ReloadComponent](s.entityManager, actorID); ok &&
			(reload.IsReloading() || reload.FinishedThisTick) {
			continue
		}

		weapon.Orientation = intent.AimAngle

		behavior := s.registry.MustLookup(weapon.Kind)
		if !s.wantsToFire(intent, weapon, behavior) {
			continue
		}
		if ammo.MagAmmo <= 0 {
			continue
		}

		ammo.MagAmmo -= behavior.ShotCost()
		if ammo.MagAmmo < 0 {
			ammo.MagAmmo = 0
		}
		weapon.FireCooldown = behavior.FireInterval()

		damage := behavior.BaseDamage()
		if stats, ok := ecs.GetComponent[*components.ActorStatsComponent](s.entityManager, actorID); ok {
			damage = stats.Damage(damage)
		}

		log.Printf("[WeaponSystem] 角色 %d 开火 (武器: %s, 剩余弹匣: %d/%d)", actorID, weapon.Kind, ammo.MagAmmo, ammo.MagSize)
		s.events.Emit(game.Event{
			Type:       game.EventShotFired,
			Actor:      actorID,
			Weapon:     equipped.Weapon,
			WeaponKind: weapon.Kind,
			Angle:      weapon.Orientation,
			Damage:     damage,
		})

		s.spawnProjectile(actorID, weapon, damage)
	}
}

// spawnProjectile 在角色位置沿武器朝向生成子弹
// 没有弹道参数的武器或没有位置的角色只发出开火通知
func (s *WeaponSystem) spawnProjectile(actorID ecs.EntityID, weapon *components.WeaponComponent, damage float64) {
	ballistics, ok := s.registry.Ballistics(weapon.Kind)
	if !ok {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, actorID)
	if !ok {
		return
	}
	entities.NewProjectileEntity(s.entityManager, actorID, weapon.Kind, pos.X, pos.Y,
		weapon.Orientation, ballistics.Speed, ballistics.Range, damage)
}

// wantsToFire 刚按下开火键总是开火；按住时按连发间隔开火（间隔为 0 的武器不连发）
func (s *WeaponSystem) wantsToFire(intent *components.InputIntentComponent, weapon *components.WeaponComponent, behavior weapons.Behavior) bool {
	if intent.FireJustPressed {
		return true
	}
	return intent.FireHeld && behavior.FireInterval() > 0 && weapon.FireCooldown <= 0
}
