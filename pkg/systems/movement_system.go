package systems

import (
	"math"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/ecs"
)

// MovementSystem 根据移动意图和翻滚状态积分角色位置
// 翻滚期间忽略移动输入，沿翻滚方向以 RollSpeed 移动
type MovementSystem struct {
	entityManager *ecs.EntityManager
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager) *MovementSystem {
	return &MovementSystem{entityManager: em}
}

// Update 更新所有角色的位置
func (s *MovementSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith3[
		*components.PositionComponent,
		*components.InputIntentComponent,
		*components.ActorStatsComponent,
	](s.entityManager)

	for _, id := range entities {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		intent, _ := ecs.GetComponent[*components.InputIntentComponent](s.entityManager, id)
		stats, _ := ecs.GetComponent[*components.ActorStatsComponent](s.entityManager, id)

		if roll, ok := ecs.GetComponent[*components.RollComponent](s.entityManager, id); ok && roll.Active {
			pos.X += roll.DirX * stats.RollSpeed * deltaTime
			pos.Y += roll.DirY * stats.RollSpeed * deltaTime
			continue
		}

		length := math.Hypot(intent.MoveX, intent.MoveY)
		if length == 0 {
			continue
		}
		// 对角线移动不加速
		if length < 1 {
			length = 1
		}
		pos.X += intent.MoveX / length * stats.Speed * deltaTime
		pos.Y += intent.MoveY / length * stats.Speed * deltaTime
	}
}
