package systems

import (
	"testing"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/ecs"
	"github.com/decker502/gunrunner/pkg/game"
	"github.com/decker502/gunrunner/pkg/types"
	"github.com/decker502/gunrunner/pkg/weapons"
)

func TestWeaponFireDecrementsMagazine(t *testing.T) {
	f := newCombatFixture(t, components.AmmoComponent{MagAmmo: 3, MagSize: 6, Ammo: 12})
	stats, _ := ecs.GetComponent[*components.ActorStatsComponent](f.em, f.actor)
	stats.DamageMultiplier = 2
	stats.DamageAdded = 1

	f.step(0.25, components.InputIntentComponent{FireJustPressed: true, AimAngle: 1.5})

	if f.ammo().MagAmmo != 2 {
		t.Errorf("expected mag=2, got %d", f.ammo().MagAmmo)
	}
	events := f.events.Drain()
	if len(events) != 1 || events[0].Type != game.EventShotFired {
		t.Fatalf("expected a single ShotFired, got %v", events)
	}
	if events[0].Damage != 21 {
		t.Errorf("expected damage 10*2+1=21, got %v", events[0].Damage)
	}
	if events[0].Angle != 1.5 {
		t.Errorf("shot angle should follow aim, got %v", events[0].Angle)
	}
}

func TestWeaponHeldFireRespectsInterval(t *testing.T) {
	f := newCombatFixture(t, components.AmmoComponent{MagAmmo: 6, MagSize: 6, Ammo: 12})

	f.step(0.125, components.InputIntentComponent{FireJustPressed: true, FireHeld: true})
	// 连发间隔 0.25：接下来一帧冷却中，再下一帧可以开火
	f.step(0.125, components.InputIntentComponent{FireHeld: true})
	if f.ammo().MagAmmo != 5 {
		t.Fatalf("held fire should wait for the interval, mag=%d", f.ammo().MagAmmo)
	}
	f.step(0.125, components.InputIntentComponent{FireHeld: true})
	if f.ammo().MagAmmo != 4 {
		t.Errorf("held fire should shoot once the interval elapsed, mag=%d", f.ammo().MagAmmo)
	}
}

func TestWeaponEmptyMagazineDoesNotFire(t *testing.T) {
	f := newCombatFixture(t, components.AmmoComponent{MagAmmo: 0, MagSize: 6, Ammo: 0})

	f.step(0.25, components.InputIntentComponent{FireJustPressed: true})

	if f.ammo().MagAmmo != 0 {
		t.Errorf("magazine should stay empty, got %d", f.ammo().MagAmmo)
	}
	if n := countEvents(f.events, game.EventShotFired); n != 0 {
		t.Errorf("empty weapon should not fire, got %d shots", n)
	}
}

func TestWeaponOrientationFrozenWhileReloading(t *testing.T) {
	f := newCombatFixture(t, components.AmmoComponent{MagAmmo: 1, MagSize: 6, Ammo: 12})
	weapon, _ := ecs.GetComponent[*components.WeaponComponent](f.em, f.weaponID)

	f.step(0.25, components.InputIntentComponent{AimAngle: 0.5})
	if weapon.Orientation != 0.5 {
		t.Fatalf("idle weapon should follow aim, got %v", weapon.Orientation)
	}

	f.step(0.25, components.InputIntentComponent{ReloadHeld: true, AimAngle: 2.0})
	if weapon.Orientation != 0.5 {
		t.Errorf("reloading weapon should not follow aim, got %v", weapon.Orientation)
	}
}

func TestWeaponSpawnsProjectile(t *testing.T) {
	f := newCombatFixture(t, components.AmmoComponent{MagAmmo: 6, MagSize: 6, Ammo: 12})

	// 没有弹道参数：只有开火通知
	f.step(0.25, components.InputIntentComponent{FireJustPressed: true})
	if n := len(ecs.GetEntitiesWith1[*components.ProjectileComponent](f.em)); n != 0 {
		t.Fatalf("weapon without ballistics should not spawn bullets, got %d", n)
	}

	f.registry.SetBallistics(types.WeaponRevolver, weapons.Ballistics{Speed: 300, Range: 200})
	ecs.AddComponent(f.em, f.actor, &components.PositionComponent{X: 5, Y: -3})
	f.step(0.25, components.InputIntentComponent{FireJustPressed: true, AimAngle: 0})

	bullets := ecs.GetEntitiesWith1[*components.ProjectileComponent](f.em)
	if len(bullets) != 1 {
		t.Fatalf("expected one bullet, got %d", len(bullets))
	}
	projectile, _ := ecs.GetComponent[*components.ProjectileComponent](f.em, bullets[0])
	if projectile.Owner != f.actor || projectile.Damage != 10 || projectile.Remaining != 200 || projectile.Weapon != types.WeaponRevolver {
		t.Errorf("unexpected projectile: %+v", projectile)
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](f.em, bullets[0])
	vel, _ := ecs.GetComponent[*components.VelocityComponent](f.em, bullets[0])
	if pos.X != 5 || pos.Y != -3 || vel.VX != 300 || vel.VY != 0 {
		t.Errorf("bullet should start at the actor and fly along the aim, got pos %+v vel %+v", pos, vel)
	}
}
