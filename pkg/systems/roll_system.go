package systems

import (
	"log"
	"math"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/ecs"
)

// RollSystem 翻滚/闪避
// 只维护翻滚状态，位移由编排层根据 RollComponent 计算
type RollSystem struct {
	entityManager *ecs.EntityManager
}

// NewRollSystem 创建翻滚系统
func NewRollSystem(em *ecs.EntityManager) *RollSystem {
	return &RollSystem{entityManager: em}
}

// Update 推进进行中的翻滚，并响应新的翻滚输入
func (s *RollSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith3[
		*components.RollComponent,
		*components.InputIntentComponent,
		*components.ActorStatsComponent,
	](s.entityManager)

	for _, id := range entities {
		roll, _ := ecs.GetComponent[*components.RollComponent](s.entityManager, id)

		if roll.Active {
			roll.Elapsed += deltaTime
			if roll.Elapsed >= roll.Duration {
				roll.Active = false
				roll.Elapsed = 0
			}
			continue
		}

		intent, _ := ecs.GetComponent[*components.InputIntentComponent](s.entityManager, id)
		if !intent.RollJustPressed {
			continue
		}
		stats, _ := ecs.GetComponent[*components.ActorStatsComponent](s.entityManager, id)
		if stats.RollDuration <= 0 {
			continue
		}

		dirX, dirY := intent.MoveX, intent.MoveY
		if length := math.Hypot(dirX, dirY); length > 0 {
			dirX, dirY = dirX/length, dirY/length
		}

		*roll = components.RollComponent{
			Active:   true,
			Duration: stats.RollDuration,
			DirX:     dirX,
			DirY:     dirY,
		}
		log.Printf("[RollSystem] 实体 %d 开始翻滚 (方向: %.2f, %.2f)", id, dirX, dirY)
	}
}
