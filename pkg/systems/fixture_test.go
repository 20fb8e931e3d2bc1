package systems

import (
	"testing"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/ecs"
	"github.com/decker502/gunrunner/pkg/game"
	"github.com/decker502/gunrunner/pkg/types"
	"github.com/decker502/gunrunner/pkg/weapons"
)

// combatFixture 一个持左轮的角色
type combatFixture struct {
	em       *ecs.EntityManager
	events   *game.EventQueue
	registry *weapons.Registry
	reload   *ReloadSystem
	weapon   *WeaponSystem

	actor    ecs.EntityID
	weaponID ecs.EntityID
}

// newCombatFixture 创建角色和武器；左轮换弹 1 秒，连发间隔 0.25 秒
func newCombatFixture(t *testing.T, ammo components.AmmoComponent) *combatFixture {
	t.Helper()

	em := ecs.NewEntityManager()
	events := game.NewEventQueue()
	registry := weapons.NewRegistry()
	if err := registry.Register(weapons.NewRevolver(1, 0.25, 10, 1.0, 0)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	actor := em.CreateEntity()
	weaponID := em.CreateEntity()

	ecs.AddComponent(em, actor, &components.ActorStatsComponent{CurrentHealth: 100, MaxHealth: 100, DamageMultiplier: 1})
	ecs.AddComponent(em, actor, &components.InputIntentComponent{})
	ecs.AddComponent(em, actor, &components.ReloadComponent{})
	ecs.AddComponent(em, actor, &components.EquippedWeaponComponent{Weapon: weaponID})

	ecs.AddComponent(em, weaponID, &components.WeaponComponent{Kind: types.WeaponRevolver, Owner: actor})
	a := ammo
	ecs.AddComponent(em, weaponID, &a)

	return &combatFixture{
		em:       em,
		events:   events,
		registry: registry,
		reload:   NewReloadSystem(em, registry, events, 0),
		weapon:   NewWeaponSystem(em, registry, events),
		actor:    actor,
		weaponID: weaponID,
	}
}

// step 写入本帧意图后依次运行换弹和开火
func (f *combatFixture) step(dt float64, intent components.InputIntentComponent) {
	current, _ := ecs.GetComponent[*components.InputIntentComponent](f.em, f.actor)
	*current = intent
	f.reload.Update(dt)
	f.weapon.Update(dt)
}

func (f *combatFixture) ammo() *components.AmmoComponent {
	a, _ := ecs.GetComponent[*components.AmmoComponent](f.em, f.weaponID)
	return a
}

func (f *combatFixture) reloadState() *components.ReloadComponent {
	r, _ := ecs.GetComponent[*components.ReloadComponent](f.em, f.actor)
	return r
}

// countEvents 统计并清空队列中指定类型的事件
func countEvents(q *game.EventQueue, eventType game.EventType) int {
	n := 0
	for _, e := range q.Drain() {
		if e.Type == eventType {
			n++
		}
	}
	return n
}
