package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/config"
	"github.com/decker502/gunrunner/pkg/ecs"
	"github.com/decker502/gunrunner/pkg/game"
	"github.com/decker502/gunrunner/pkg/types"
)

var testPickupTuning = config.PickupTuning{
	Range:        37.5,
	BobFrequency: 3,
	BobAmplitude: 0.1,
	ZBase:        5,
}

func newPickupActor(em *ecs.EntityManager, x, y float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, components.NewInventoryComponent())
	ecs.AddComponent(em, id, &components.InputIntentComponent{})
	return id
}

func newTestPickup(em *ecs.EntityManager, item types.ItemKind, x, y float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.PickupComponent{Kind: components.PickupItem, Item: item, BaseY: y})
	return id
}

func highlighted(em *ecs.EntityManager, id ecs.EntityID) bool {
	p, ok := ecs.GetComponent[*components.PickupComponent](em, id)
	return ok && p.Highlighted
}

func TestPickupNearestSelection(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewPickupSystem(em, game.NewEventQueue(), testPickupTuning)

	newPickupActor(em, 0, 0)
	far := newTestPickup(em, types.ItemScrap, 50, 0)
	near := newTestPickup(em, types.ItemBandage, 0, 30)
	farther := newTestPickup(em, types.ItemBattery, -60, 0)

	system.Update(0.1)

	if !highlighted(em, near) {
		t.Error("pickup at distance 30 should be highlighted")
	}
	if highlighted(em, far) || highlighted(em, farther) {
		t.Error("only the nearest pickup should be highlighted")
	}
}

func TestPickupOutOfRange(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewPickupSystem(em, game.NewEventQueue(), testPickupTuning)

	newPickupActor(em, 0, 0)
	ids := []ecs.EntityID{
		newTestPickup(em, types.ItemScrap, 50, 0),
		newTestPickup(em, types.ItemScrap, 0, 37.5), // 等于半径不算在范围内
		newTestPickup(em, types.ItemScrap, 60, 0),
	}

	system.Update(0.1)

	for _, id := range ids {
		if highlighted(em, id) {
			t.Errorf("pickup %d is out of range and should not be highlighted", id)
		}
	}
}

func TestPickupHighlightResetsEachTick(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewPickupSystem(em, game.NewEventQueue(), testPickupTuning)

	actor := newPickupActor(em, 0, 0)
	pickup := newTestPickup(em, types.ItemScrap, 10, 0)

	system.Update(0.1)
	if !highlighted(em, pickup) {
		t.Fatal("pickup should be highlighted while the actor is close")
	}

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, actor)
	pos.X = 100
	system.Update(0.1)
	if highlighted(em, pickup) {
		t.Error("highlight should be cleared once the actor walks away")
	}
}

func TestPickupTieBreakPrefersFirstSpawned(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewPickupSystem(em, game.NewEventQueue(), testPickupTuning)

	newPickupActor(em, 0, 0)
	first := newTestPickup(em, types.ItemScrap, 20, 0)
	second := newTestPickup(em, types.ItemBattery, -20, 0)

	for i := 0; i < 5; i++ {
		system.Update(0.1)
		if !highlighted(em, first) || highlighted(em, second) {
			t.Fatalf("tick %d: tie should resolve to the first spawned pickup", i)
		}
	}
}

func TestPickupTransferIsAtomic(t *testing.T) {
	em := ecs.NewEntityManager()
	events := game.NewEventQueue()
	system := NewPickupSystem(em, events, testPickupTuning)

	actor := newPickupActor(em, 0, 0)
	pickup := newTestPickup(em, types.ItemGunpowder, 10, 0)

	intent, _ := ecs.GetComponent[*components.InputIntentComponent](em, actor)
	intent.InteractJustPressed = true
	system.Update(0.1)

	inventory, _ := ecs.GetComponent[*components.InventoryComponent](em, actor)
	if inventory.Count(types.ItemGunpowder) != 1 || inventory.Total() != 1 {
		t.Errorf("inventory should contain exactly one gunpowder, got %v", inventory.Snapshot())
	}
	if em.IsAlive(pickup) {
		t.Error("collected pickup should be removed immediately")
	}
	if got := ecs.GetEntitiesWith1[*components.PickupComponent](em); len(got) != 0 {
		t.Errorf("collected pickup should be invisible to queries, got %v", got)
	}

	collected := events.Drain()
	if len(collected) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(collected))
	}
	if e := collected[0]; e.Type != game.EventPickupCollected || e.Item != types.ItemGunpowder || e.Actor != actor {
		t.Errorf("unexpected notification: %v", e)
	}

	// 下一帧再次交互：拾取物已不存在，什么都不发生
	em.RemoveMarkedEntities()
	system.Update(0.1)
	if inventory.Total() != 1 {
		t.Errorf("second attempt should be a no-op, inventory=%v", inventory.Snapshot())
	}
	if events.Len() != 0 {
		t.Errorf("second attempt should not emit, got %v", events.Drain())
	}
}

func TestPickupTwoActorsCannotShareAPickup(t *testing.T) {
	em := ecs.NewEntityManager()
	events := game.NewEventQueue()
	system := NewPickupSystem(em, events, testPickupTuning)

	first := newPickupActor(em, 0, 0)
	second := newPickupActor(em, 5, 0)
	newTestPickup(em, types.ItemBattery, 2, 0)

	for _, id := range []ecs.EntityID{first, second} {
		intent, _ := ecs.GetComponent[*components.InputIntentComponent](em, id)
		intent.InteractJustPressed = true
	}
	system.Update(0.1)

	inv1, _ := ecs.GetComponent[*components.InventoryComponent](em, first)
	inv2, _ := ecs.GetComponent[*components.InventoryComponent](em, second)
	if inv1.Count(types.ItemBattery) != 1 {
		t.Errorf("lower-ID actor should collect the pickup, got %d", inv1.Count(types.ItemBattery))
	}
	if inv2.Total() != 0 {
		t.Errorf("second actor should get nothing, got %v", inv2.Snapshot())
	}
	if events.Len() != 1 {
		t.Errorf("expected exactly one notification, got %d", events.Len())
	}
}

func TestPickupBobAnimation(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewPickupSystem(em, game.NewEventQueue(), testPickupTuning)

	id := newTestPickup(em, types.ItemScrap, 0, 80)
	pickup, _ := ecs.GetComponent[*components.PickupComponent](em, id)
	pickup.AnimOffset = 0.5

	system.Update(0.25)

	want := math.Sin((0.25+0.5)*3) * 0.1
	if math.Abs(pickup.BobOffset-want) > 1e-12 {
		t.Errorf("expected bob offset %v, got %v", want, pickup.BobOffset)
	}
	if math.Abs(pickup.ZIndex-(want+5)) > 1e-12 {
		t.Errorf("expected z index %v, got %v", want+5, pickup.ZIndex)
	}
}

func TestWeaponPickupFailsLoudly(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewPickupSystem(em, game.NewEventQueue(), testPickupTuning)

	actor := newPickupActor(em, 0, 0)
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: 1, Y: 0})
	ecs.AddComponent(em, id, &components.PickupComponent{Kind: components.PickupWeapon, Weapon: types.WeaponShotgun})

	intent, _ := ecs.GetComponent[*components.InputIntentComponent](em, actor)
	intent.InteractJustPressed = true

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrWeaponPickupUnimplemented) {
			t.Errorf("expected ErrWeaponPickupUnimplemented panic, got %v", r)
		}
	}()
	system.Update(0.1)
}
