package systems

import (
	"fmt"
	"log"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/ecs"
	"github.com/decker502/gunrunner/pkg/game"
	"github.com/decker502/gunrunner/pkg/weapons"
)

// ReloadSystem 换弹引擎
//
// 换弹期间它是武器弹药的唯一写入者：WeaponSystem 只在 ReloadIdle 阶段开火。
// 具体的装填节奏由武器行为决定，引擎只负责触发、调用、校验和收尾。
type ReloadSystem struct {
	entityManager *ecs.EntityManager
	registry      *weapons.Registry
	events        *game.EventQueue

	// maxDuration 引擎级兜底超时（秒），0 表示不启用
	maxDuration float64
}

// NewReloadSystem 创建换弹系统
func NewReloadSystem(em *ecs.EntityManager, registry *weapons.Registry, events *game.EventQueue, maxDuration float64) *ReloadSystem {
	return &ReloadSystem{
		entityManager: em,
		registry:      registry,
		events:        events,
		maxDuration:   maxDuration,
	}
}

// Update 处理所有持枪角色的换弹
// 角色按 ID 升序处理；开始换弹的那一帧不推进换弹
func (s *ReloadSystem) Update(deltaTime float64) {
	actors := ecs.GetEntitiesWith3[
		*components.ReloadComponent,
		*components.EquippedWeaponComponent,
		*components.InputIntentComponent,
	](s.entityManager)

	for _, actorID := range actors {
		reload, _ := ecs.GetComponent[*components.ReloadComponent](s.entityManager, actorID)
		reload.FinishedThisTick = false

		if reload.IsReloading() {
			s.tick(actorID, reload, deltaTime)
			continue
		}
		s.tryStart(actorID, reload)
	}
}

// tryStart 检查触发条件并进入换弹阶段
//
// 触发条件：
//   - 按住换弹键，或弹匣为空时刚按下开火键
//   - 弹匣未满，且有备弹或无限备弹
func (s *ReloadSystem) tryStart(actorID ecs.EntityID, reload *components.ReloadComponent) {
	intent, _ := ecs.GetComponent[*components.InputIntentComponent](s.entityManager, actorID)
	equipped, _ := ecs.GetComponent[*components.EquippedWeaponComponent](s.entityManager, actorID)

	weapon, ammo, ok := s.weaponOf(equipped.Weapon)
	if !ok {
		return
	}

	requested := intent.ReloadHeld || (intent.FireJustPressed && ammo.MagAmmo == 0)
	if !requested || !ammo.CanReload() {
		return
	}

	reload.Begin(equipped.Weapon, weapon.Orientation)
	log.Printf("[ReloadSystem] 角色 %d 开始换弹 (武器: %s, 弹匣: %d/%d, 备弹: %d)",
		actorID, weapon.Kind, ammo.MagAmmo, ammo.MagSize, ammo.Ammo)
	s.events.Emit(game.Event{
		Type:       game.EventReloadStarted,
		Actor:      actorID,
		Weapon:     equipped.Weapon,
		WeaponKind: weapon.Kind,
	})
}

// tick 推进一帧换弹
func (s *ReloadSystem) tick(actorID ecs.EntityID, reload *components.ReloadComponent, deltaTime float64) {
	equipped, _ := ecs.GetComponent[*components.EquippedWeaponComponent](s.entityManager, actorID)

	weapon, ammo, ok := s.weaponOf(reload.Weapon)
	if !ok || equipped.Weapon != reload.Weapon {
		// 目标武器已销毁或已更换：丢弃本次换弹
		log.Printf("[ReloadSystem] 角色 %d 的换弹目标 %d 已失效，丢弃换弹", actorID, reload.Weapon)
		s.events.Emit(game.Event{Type: game.EventReloadDiscarded, Actor: actorID, Weapon: reload.Weapon})
		reload.Finish()
		return
	}

	behavior := s.registry.MustLookup(weapon.Kind)

	var stats components.ActorStatsComponent
	if st, ok := ecs.GetComponent[*components.ActorStatsComponent](s.entityManager, actorID); ok {
		stats = *st
	}
	roll, _ := ecs.GetComponent[*components.RollComponent](s.entityManager, actorID)

	reload.Elapsed += deltaTime
	out := behavior.Reload(weapons.ReloadInput{
		Dt:               deltaTime,
		Elapsed:          reload.Elapsed,
		Progress:         reload.Progress,
		Orientation:      weapon.Orientation,
		StartOrientation: reload.StartOrientation,
		Ammo:             *ammo,
		Stats:            stats,
		Roll:             roll,
	})

	if err := checkOutcome(*ammo, out); err != nil {
		panic(fmt.Sprintf("[ReloadSystem] weapon %s behavior broke ammo invariant on actor %d: %v", weapon.Kind, actorID, err))
	}

	ammo.MagAmmo = out.MagAmmo
	ammo.Ammo = out.Ammo
	weapon.Orientation = out.Orientation
	reload.Progress = out.Progress

	event := game.Event{Actor: actorID, Weapon: reload.Weapon, WeaponKind: weapon.Kind}
	switch {
	case out.Done:
		log.Printf("[ReloadSystem] 角色 %d 换弹完成 (弹匣: %d/%d, 备弹: %d, 用时: %.2fs)",
			actorID, ammo.MagAmmo, ammo.MagSize, ammo.Ammo, reload.Elapsed)
		event.Type = game.EventReloadFinished
	case s.maxDuration > 0 && reload.Elapsed >= s.maxDuration:
		log.Printf("[ReloadSystem] 警告：角色 %d 的 %s 换弹超过 %.2fs 未完成，强制终止",
			actorID, weapon.Kind, s.maxDuration)
		event.Type = game.EventReloadAborted
	default:
		return
	}
	reload.Finish()
	s.events.Emit(event)
}

// weaponOf 获取存活武器实体的组件
func (s *ReloadSystem) weaponOf(id ecs.EntityID) (*components.WeaponComponent, *components.AmmoComponent, bool) {
	if !s.entityManager.IsAlive(id) {
		return nil, nil, false
	}
	weapon, ok := ecs.GetComponent[*components.WeaponComponent](s.entityManager, id)
	if !ok {
		return nil, nil, false
	}
	ammo, ok := ecs.GetComponent[*components.AmmoComponent](s.entityManager, id)
	if !ok {
		return nil, nil, false
	}
	return weapon, ammo, true
}

// checkOutcome 校验行为的输出
// 换弹只能增加弹匣（不超过容量），只能减少备弹（不低于 0）
func checkOutcome(before components.AmmoComponent, out weapons.ReloadOutcome) error {
	if out.MagAmmo < before.MagAmmo {
		return fmt.Errorf("mag ammo decreased from %d to %d", before.MagAmmo, out.MagAmmo)
	}
	if out.MagAmmo > before.MagSize {
		return fmt.Errorf("mag ammo %d exceeds mag size %d", out.MagAmmo, before.MagSize)
	}
	if out.Ammo > before.Ammo {
		return fmt.Errorf("reserve ammo increased from %d to %d", before.Ammo, out.Ammo)
	}
	if out.Ammo < 0 {
		return fmt.Errorf("reserve ammo went negative: %d", out.Ammo)
	}
	return nil
}
