package systems

import (
	"math"
	"testing"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/ecs"
)

func TestRollStartsAndExpires(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewRollSystem(em)

	id := em.CreateEntity()
	roll := &components.RollComponent{}
	intent := &components.InputIntentComponent{RollJustPressed: true, MoveX: 3, MoveY: 4}
	ecs.AddComponent(em, id, roll)
	ecs.AddComponent(em, id, intent)
	ecs.AddComponent(em, id, &components.ActorStatsComponent{RollDuration: 0.5})

	system.Update(0.25)
	if !roll.Active || roll.Duration != 0.5 {
		t.Fatalf("roll should start with the actor's duration, got %+v", roll)
	}
	if math.Abs(roll.DirX-0.6) > 1e-9 || math.Abs(roll.DirY-0.8) > 1e-9 {
		t.Errorf("roll direction should be the normalized move vector, got (%v, %v)", roll.DirX, roll.DirY)
	}

	intent.RollJustPressed = false
	system.Update(0.25)
	if !roll.Active {
		t.Fatal("roll should still be active halfway")
	}
	system.Update(0.25)
	if roll.Active {
		t.Error("roll should end after its duration")
	}
}

func TestRollIgnoresPressWhileActive(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewRollSystem(em)

	id := em.CreateEntity()
	roll := &components.RollComponent{Active: true, Elapsed: 0.25, Duration: 0.5, DirX: 1}
	ecs.AddComponent(em, id, roll)
	ecs.AddComponent(em, id, &components.InputIntentComponent{RollJustPressed: true, MoveY: 1})
	ecs.AddComponent(em, id, &components.ActorStatsComponent{RollDuration: 0.5})

	system.Update(0.125)
	if roll.DirX != 1 || roll.Elapsed != 0.375 {
		t.Errorf("active roll should not restart, got %+v", roll)
	}
}
