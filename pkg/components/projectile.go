package components

import (
	"github.com/decker502/gunrunner/pkg/ecs"
	"github.com/decker502/gunrunner/pkg/types"
)

// VelocityComponent 实体的速度（世界单位/秒）
type VelocityComponent struct {
	VX float64
	VY float64
}

// ProjectileComponent 飞行中的子弹
// 伤害在开火时结算好，命中时原样扣除
type ProjectileComponent struct {
	Owner     ecs.EntityID     // 开火的角色，子弹不会命中自己的主人
	Weapon    types.WeaponKind // 发射武器
	Damage    float64          // 命中伤害
	Remaining float64          // 剩余射程，耗尽后子弹消失
}
