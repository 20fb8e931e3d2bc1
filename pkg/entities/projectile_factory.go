package entities

import (
	"math"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/ecs"
	"github.com/decker502/gunrunner/pkg/types"
)

// ProjectileSize 子弹碰撞盒边长（世界单位）
const ProjectileSize = 2.0

// NewProjectileEntity 创建一颗子弹
// 子弹从 (x, y) 沿 angle 方向以恒定速度飞行，飞满 distance 后消失
//
// 参数:
//   - em: 实体管理器
//   - owner: 开火的角色
//   - weapon: 发射武器类型
//   - x, y: 起始世界坐标
//   - angle: 飞行方向（弧度）
//   - speed: 飞行速度（世界单位/秒）
//   - distance: 最大射程
//   - damage: 命中伤害
func NewProjectileEntity(em *ecs.EntityManager, owner ecs.EntityID, weapon types.WeaponKind, x, y, angle, speed, distance, damage float64) ecs.EntityID {
	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.VelocityComponent{
		VX: math.Cos(angle) * speed,
		VY: math.Sin(angle) * speed,
	})
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Width:  ProjectileSize,
		Height: ProjectileSize,
	})
	ecs.AddComponent(em, id, &components.ProjectileComponent{
		Owner:     owner,
		Weapon:    weapon,
		Damage:    damage,
		Remaining: distance,
	})

	return id
}
