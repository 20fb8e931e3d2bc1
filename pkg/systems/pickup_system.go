package systems

import (
	"errors"
	"log"
	"math"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/config"
	"github.com/decker502/gunrunner/pkg/ecs"
	"github.com/decker502/gunrunner/pkg/game"
)

// ErrWeaponPickupUnimplemented 武器拾取物尚未实现
// 拾取这类物品时直接 panic，避免静默丢弃
var ErrWeaponPickupUnimplemented = errors.New("weapon pickups are not implemented")

// PickupSystem 拾取物漂浮动画、最近物品高亮和拾取转移
type PickupSystem struct {
	entityManager *ecs.EntityManager
	events        *game.EventQueue
	config        config.PickupTuning

	elapsed float64
}

// NewPickupSystem 创建拾取系统
func NewPickupSystem(em *ecs.EntityManager, events *game.EventQueue, cfg config.PickupTuning) *PickupSystem {
	return &PickupSystem{
		entityManager: em,
		events:        events,
		config:        cfg,
	}
}

// Update 执行一帧拾取逻辑
//
// 顺序：
//  1. 所有拾取物推进漂浮动画并取消高亮
//  2. 每个角色（ID 升序）选出范围内最近的拾取物并高亮
//  3. 角色本帧按下交互键时立即完成转移，该拾取物随即从后续查询中消失
func (s *PickupSystem) Update(deltaTime float64) {
	s.elapsed += deltaTime

	pickups := ecs.GetEntitiesWith2[
		*components.PickupComponent,
		*components.PositionComponent,
	](s.entityManager)

	for _, id := range pickups {
		pickup, _ := ecs.GetComponent[*components.PickupComponent](s.entityManager, id)
		pickup.BobOffset = math.Sin((s.elapsed+pickup.AnimOffset)*s.config.BobFrequency) * s.config.BobAmplitude
		pickup.ZIndex = pickup.BobOffset + s.config.ZBase
		pickup.Highlighted = false
	}

	actors := ecs.GetEntitiesWith3[
		*components.PositionComponent,
		*components.InventoryComponent,
		*components.InputIntentComponent,
	](s.entityManager)

	for _, actorID := range actors {
		actorPos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, actorID)

		nearest, found := s.nearest(actorPos, pickups)
		if !found {
			continue
		}
		pickup, _ := ecs.GetComponent[*components.PickupComponent](s.entityManager, nearest)
		pickup.Highlighted = true

		intent, _ := ecs.GetComponent[*components.InputIntentComponent](s.entityManager, actorID)
		if intent.InteractJustPressed {
			s.transfer(actorID, nearest, pickup)
		}
	}
}

// nearest 在候选列表中找距离最近且严格小于拾取半径的拾取物
// 距离相同时取列表中靠前的（ID 升序即生成顺序）；已被拾取的实体跳过
func (s *PickupSystem) nearest(actorPos *components.PositionComponent, pickups []ecs.EntityID) (ecs.EntityID, bool) {
	var best ecs.EntityID
	bestDist := math.Inf(1)
	found := false

	for _, id := range pickups {
		if !s.entityManager.IsAlive(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		dist := actorPos.DistanceTo(pos)
		if dist < bestDist {
			best = id
			bestDist = dist
		}
	}

	if bestDist < s.config.Range {
		found = true
	}
	return best, found
}

// transfer 把拾取物转移到角色背包
// 背包计数、拾取通知和销毁拾取物在同一次调用中完成
func (s *PickupSystem) transfer(actorID, pickupID ecs.EntityID, pickup *components.PickupComponent) {
	if pickup.Kind == components.PickupWeapon {
		panic(ErrWeaponPickupUnimplemented)
	}

	inventory, _ := ecs.GetComponent[*components.InventoryComponent](s.entityManager, actorID)
	inventory.Add(pickup.Item)
	s.events.Emit(game.Event{
		Type:   game.EventPickupCollected,
		Actor:  actorID,
		Pickup: pickupID,
		Item:   pickup.Item,
	})
	s.entityManager.DestroyEntity(pickupID)

	log.Printf("[PickupSystem] 角色 %d 拾取了 %s (背包数量: %d, 合计: %d)",
		actorID, pickup.Item, inventory.Count(pickup.Item), inventory.Total())
}
