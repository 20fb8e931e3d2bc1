package systems

import (
	"log"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/ecs"
	"github.com/decker502/gunrunner/pkg/game"
)

// DeathSystem 生命值归零的角色连同其武器一起销毁
type DeathSystem struct {
	entityManager *ecs.EntityManager
	events        *game.EventQueue
}

// NewDeathSystem 创建死亡系统
func NewDeathSystem(em *ecs.EntityManager, events *game.EventQueue) *DeathSystem {
	return &DeathSystem{
		entityManager: em,
		events:        events,
	}
}

// Update 检查所有角色的生命值
func (s *DeathSystem) Update(deltaTime float64) {
	actors := ecs.GetEntitiesWith1[*components.ActorStatsComponent](s.entityManager)

	for _, id := range actors {
		stats, _ := ecs.GetComponent[*components.ActorStatsComponent](s.entityManager, id)
		if !stats.IsDead() {
			continue
		}

		log.Printf("[DeathSystem] 角色 %d 死亡 (生命值: %.1f/%.1f)", id, stats.CurrentHealth, stats.MaxHealth)

		var weaponID ecs.EntityID
		if equipped, ok := ecs.GetComponent[*components.EquippedWeaponComponent](s.entityManager, id); ok {
			weaponID = equipped.Weapon
			s.entityManager.DestroyEntity(equipped.Weapon)
		}
		s.entityManager.DestroyEntity(id)

		s.events.Emit(game.Event{Type: game.EventActorDied, Actor: id, Weapon: weaponID})
	}
}
