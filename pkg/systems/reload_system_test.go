package systems

import (
	"testing"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/ecs"
	"github.com/decker502/gunrunner/pkg/game"
	"github.com/decker502/gunrunner/pkg/types"
	"github.com/decker502/gunrunner/pkg/weapons"
)

// stubBehavior 测试用的换弹行为，结果由 reload 函数决定
type stubBehavior struct {
	kind   types.WeaponKind
	reload func(in weapons.ReloadInput) weapons.ReloadOutcome
	inputs []weapons.ReloadInput
}

func (b *stubBehavior) Kind() types.WeaponKind { return b.kind }
func (b *stubBehavior) ShotCost() int          { return 1 }
func (b *stubBehavior) FireInterval() float64  { return 0 }
func (b *stubBehavior) BaseDamage() float64    { return 1 }
func (b *stubBehavior) Reload(in weapons.ReloadInput) weapons.ReloadOutcome {
	b.inputs = append(b.inputs, in)
	return b.reload(in)
}

// newStubFixture 用自定义行为替换左轮
func newStubFixture(t *testing.T, ammo components.AmmoComponent, stub *stubBehavior, maxDuration float64) *combatFixture {
	t.Helper()
	f := newCombatFixture(t, ammo)

	stub.kind = types.WeaponSniper
	registry := weapons.NewRegistry()
	if err := registry.Register(stub); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	weapon, _ := ecs.GetComponent[*components.WeaponComponent](f.em, f.weaponID)
	weapon.Kind = types.WeaponSniper

	f.registry = registry
	f.reload = NewReloadSystem(f.em, registry, f.events, maxDuration)
	f.weapon = NewWeaponSystem(f.em, registry, f.events)
	return f
}

func TestReloadTriggerConditions(t *testing.T) {
	tests := []struct {
		name      string
		ammo      components.AmmoComponent
		intent    components.InputIntentComponent
		wantStart bool
	}{
		{
			name:      "空弹匣刚按下开火",
			ammo:      components.AmmoComponent{MagAmmo: 0, MagSize: 6, Ammo: 10},
			intent:    components.InputIntentComponent{FireJustPressed: true},
			wantStart: true,
		},
		{
			name:      "按住换弹键",
			ammo:      components.AmmoComponent{MagAmmo: 3, MagSize: 6, Ammo: 10},
			intent:    components.InputIntentComponent{ReloadHeld: true},
			wantStart: true,
		},
		{
			name:      "无限备弹",
			ammo:      components.AmmoComponent{MagAmmo: 0, MagSize: 6, Ammo: 0, Infinite: true},
			intent:    components.InputIntentComponent{FireJustPressed: true},
			wantStart: true,
		},
		{
			name:      "没有备弹时按开火",
			ammo:      components.AmmoComponent{MagAmmo: 0, MagSize: 6, Ammo: 0},
			intent:    components.InputIntentComponent{FireJustPressed: true},
			wantStart: false,
		},
		{
			name:      "没有备弹时按换弹",
			ammo:      components.AmmoComponent{MagAmmo: 0, MagSize: 6, Ammo: 0},
			intent:    components.InputIntentComponent{ReloadHeld: true, FireJustPressed: true, FireHeld: true},
			wantStart: false,
		},
		{
			name:      "弹匣已满",
			ammo:      components.AmmoComponent{MagAmmo: 6, MagSize: 6, Ammo: 10},
			intent:    components.InputIntentComponent{ReloadHeld: true},
			wantStart: false,
		},
		{
			name:      "弹匣有子弹时按开火",
			ammo:      components.AmmoComponent{MagAmmo: 2, MagSize: 6, Ammo: 10},
			intent:    components.InputIntentComponent{FireJustPressed: true},
			wantStart: false,
		},
		{
			name:      "只按住开火",
			ammo:      components.AmmoComponent{MagAmmo: 0, MagSize: 6, Ammo: 10},
			intent:    components.InputIntentComponent{FireHeld: true},
			wantStart: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCombatFixture(t, tt.ammo)
			f.step(0.25, tt.intent)

			if got := f.reloadState().IsReloading(); got != tt.wantStart {
				t.Errorf("expected reloading=%v, got %v", tt.wantStart, got)
			}
			started := countEvents(f.events, game.EventReloadStarted)
			if tt.wantStart && started != 1 {
				t.Errorf("expected exactly one ReloadStarted, got %d", started)
			}
			if !tt.wantStart && started != 0 {
				t.Errorf("expected no ReloadStarted, got %d", started)
			}
		})
	}
}

func TestReloadStartsOnlyOnce(t *testing.T) {
	f := newCombatFixture(t, components.AmmoComponent{MagAmmo: 0, MagSize: 6, Ammo: 10})

	f.step(0.25, components.InputIntentComponent{FireJustPressed: true})
	reload := f.reloadState()
	if !reload.IsReloading() || reload.Weapon != f.weaponID {
		t.Fatalf("expected reload targeting weapon %d, got %+v", f.weaponID, reload)
	}
	if reload.Elapsed != 0 {
		t.Errorf("the starting tick should not advance the reload, elapsed=%v", reload.Elapsed)
	}

	// 换弹中继续按键不会重新开始
	f.step(0.25, components.InputIntentComponent{FireJustPressed: true, ReloadHeld: true})
	if reload.Elapsed != 0.25 {
		t.Errorf("reload should keep its progress, elapsed=%v", reload.Elapsed)
	}

	events := f.events.Drain()
	started := 0
	for _, e := range events {
		if e.Type == game.EventReloadStarted {
			started++
		}
	}
	if started != 1 {
		t.Errorf("expected exactly one ReloadStarted, got %d", started)
	}
}

// TestReloadEndToEnd 空弹匣开火触发换弹，换弹结束后可以正常开火
func TestReloadEndToEnd(t *testing.T) {
	f := newCombatFixture(t, components.AmmoComponent{MagAmmo: 0, MagSize: 6, Ammo: 12})

	f.step(0.25, components.InputIntentComponent{FireJustPressed: true})
	if !f.reloadState().IsReloading() {
		t.Fatal("fire press on empty magazine should start a reload")
	}
	if n := countEvents(f.events, game.EventShotFired); n != 0 {
		t.Fatalf("empty weapon should not fire, got %d shots", n)
	}

	// 换弹时长 1 秒：4 帧 × 0.25 秒
	for i := 0; i < 4; i++ {
		f.step(0.25, components.InputIntentComponent{})
	}

	ammo := f.ammo()
	if ammo.MagAmmo != 6 || ammo.Ammo != 6 {
		t.Errorf("expected mag=6 ammo=6 after reload, got mag=%d ammo=%d", ammo.MagAmmo, ammo.Ammo)
	}
	if f.reloadState().IsReloading() {
		t.Error("reload state should be cleared")
	}
	if n := countEvents(f.events, game.EventReloadFinished); n != 1 {
		t.Errorf("expected one ReloadFinished, got %d", n)
	}

	f.step(0.25, components.InputIntentComponent{FireJustPressed: true})
	if ammo.MagAmmo != 5 {
		t.Errorf("fire after reload should leave 5 rounds, got %d", ammo.MagAmmo)
	}
}

// TestReloadMutualExclusion 换弹期间开火不会改变弹匣
func TestReloadMutualExclusion(t *testing.T) {
	f := newCombatFixture(t, components.AmmoComponent{MagAmmo: 2, MagSize: 6, Ammo: 12})

	f.step(0.25, components.InputIntentComponent{ReloadHeld: true})
	if !f.reloadState().IsReloading() {
		t.Fatal("reload should start")
	}
	f.events.Drain()

	for i := 0; i < 3; i++ {
		f.step(0.25, components.InputIntentComponent{FireJustPressed: true, FireHeld: true})
		if f.ammo().MagAmmo != 2 {
			t.Fatalf("frame %d: mag changed during reload to %d", i, f.ammo().MagAmmo)
		}
	}
	if n := countEvents(f.events, game.EventShotFired); n != 0 {
		t.Errorf("no shots should be fired while reloading, got %d", n)
	}
}

// TestReloadFinishTickDoesNotFire 按住开火跨过换弹完成的那一帧，弹匣只被换弹写入
func TestReloadFinishTickDoesNotFire(t *testing.T) {
	f := newCombatFixture(t, components.AmmoComponent{MagAmmo: 0, MagSize: 6, Ammo: 12})

	f.step(0.25, components.InputIntentComponent{ReloadHeld: true})
	f.events.Drain()

	for i := 0; i < 4; i++ {
		f.step(0.25, components.InputIntentComponent{FireHeld: true})
	}
	if f.reloadState().IsReloading() {
		t.Fatal("reload should have finished after 1s")
	}
	if !f.reloadState().FinishedThisTick {
		t.Error("finish tick should be flagged")
	}
	if f.ammo().MagAmmo != 6 || f.ammo().Ammo != 6 {
		t.Fatalf("finish tick must not fire: expected 6/6, got %d/%d", f.ammo().MagAmmo, f.ammo().Ammo)
	}
	events := f.events.Drain()
	shots, finished := 0, 0
	for _, e := range events {
		switch e.Type {
		case game.EventShotFired:
			shots++
		case game.EventReloadFinished:
			finished++
		}
	}
	if shots != 0 || finished != 1 {
		t.Errorf("expected 1 ReloadFinished and no shot, got %v", events)
	}

	// 下一帧恢复开火
	f.step(0.25, components.InputIntentComponent{FireHeld: true})
	if f.reloadState().FinishedThisTick {
		t.Error("flag should be cleared on the next tick")
	}
	if f.ammo().MagAmmo != 5 {
		t.Errorf("expected held fire to resume after the finish tick, got mag %d", f.ammo().MagAmmo)
	}
}

func TestReloadDiscardedWhenWeaponDestroyed(t *testing.T) {
	f := newCombatFixture(t, components.AmmoComponent{MagAmmo: 0, MagSize: 6, Ammo: 12})

	f.step(0.25, components.InputIntentComponent{ReloadHeld: true})
	f.em.DestroyEntity(f.weaponID)
	f.em.RemoveMarkedEntities()

	f.step(0.25, components.InputIntentComponent{ReloadHeld: true})

	if f.reloadState().IsReloading() {
		t.Error("reload targeting a destroyed weapon should be discarded")
	}
	if n := countEvents(f.events, game.EventReloadDiscarded); n != 1 {
		t.Errorf("expected one ReloadDiscarded, got %d", n)
	}
}

func TestReloadPassesRollStateThrough(t *testing.T) {
	stub := &stubBehavior{reload: func(in weapons.ReloadInput) weapons.ReloadOutcome {
		return weapons.ReloadOutcome{MagAmmo: in.Ammo.MagAmmo, Ammo: in.Ammo.Ammo, Progress: in.Progress + in.Dt}
	}}
	f := newStubFixture(t, components.AmmoComponent{MagAmmo: 0, MagSize: 5, Ammo: 5}, stub, 0)
	ecs.AddComponent(f.em, f.actor, &components.RollComponent{Active: true})

	f.step(0.5, components.InputIntentComponent{ReloadHeld: true})
	f.step(0.5, components.InputIntentComponent{})

	if len(stub.inputs) != 1 {
		t.Fatalf("expected one behavior call, got %d", len(stub.inputs))
	}
	in := stub.inputs[0]
	if in.Roll == nil || !in.Roll.Active {
		t.Error("roll state should be passed to the behavior")
	}
	if in.Elapsed != 0.5 || in.Dt != 0.5 {
		t.Errorf("unexpected timing input: dt=%v elapsed=%v", in.Dt, in.Elapsed)
	}
	if in.Stats.MaxHealth != 100 {
		t.Errorf("actor stats should be passed to the behavior, got %+v", in.Stats)
	}
}

func TestReloadAbortedAfterMaxDuration(t *testing.T) {
	stub := &stubBehavior{reload: func(in weapons.ReloadInput) weapons.ReloadOutcome {
		// 永远不完成
		return weapons.ReloadOutcome{MagAmmo: in.Ammo.MagAmmo, Ammo: in.Ammo.Ammo}
	}}
	f := newStubFixture(t, components.AmmoComponent{MagAmmo: 0, MagSize: 5, Ammo: 5}, stub, 1.0)

	f.step(0.5, components.InputIntentComponent{ReloadHeld: true})
	f.step(0.5, components.InputIntentComponent{})
	if !f.reloadState().IsReloading() {
		t.Fatal("reload should still be running before the limit")
	}

	f.step(0.5, components.InputIntentComponent{})
	if f.reloadState().IsReloading() {
		t.Error("reload should be aborted once the limit is reached")
	}
	if n := countEvents(f.events, game.EventReloadAborted); n != 1 {
		t.Errorf("expected one ReloadAborted, got %d", n)
	}
}

func TestReloadPanicsOnOverfill(t *testing.T) {
	stub := &stubBehavior{reload: func(in weapons.ReloadInput) weapons.ReloadOutcome {
		return weapons.ReloadOutcome{MagAmmo: in.Ammo.MagSize + 1, Ammo: in.Ammo.Ammo}
	}}
	f := newStubFixture(t, components.AmmoComponent{MagAmmo: 0, MagSize: 5, Ammo: 5}, stub, 0)
	f.step(0.5, components.InputIntentComponent{ReloadHeld: true})

	defer func() {
		if recover() == nil {
			t.Error("overfilling the magazine should panic")
		}
	}()
	f.step(0.5, components.InputIntentComponent{})
}

func TestCheckOutcome(t *testing.T) {
	before := components.AmmoComponent{MagAmmo: 2, MagSize: 6, Ammo: 4}

	tests := []struct {
		name    string
		out     weapons.ReloadOutcome
		wantErr bool
	}{
		{"合法装填", weapons.ReloadOutcome{MagAmmo: 6, Ammo: 0}, false},
		{"不变", weapons.ReloadOutcome{MagAmmo: 2, Ammo: 4}, false},
		{"弹匣减少", weapons.ReloadOutcome{MagAmmo: 1, Ammo: 4}, true},
		{"超过容量", weapons.ReloadOutcome{MagAmmo: 7, Ammo: 0}, true},
		{"备弹增加", weapons.ReloadOutcome{MagAmmo: 2, Ammo: 5}, true},
		{"备弹为负", weapons.ReloadOutcome{MagAmmo: 6, Ammo: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkOutcome(before, tt.out)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkOutcome() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
