package components

import "github.com/decker502/gunrunner/pkg/ecs"

// ActorStatsComponent 存储角色的基础属性
// 包括生命值、移动参数和伤害修正
type ActorStatsComponent struct {
	CurrentHealth float64 // 当前生命值，范围 [0, MaxHealth]
	MaxHealth     float64 // 最大生命值

	Speed        float64 // 移动速度（世界单位/秒）
	RollSpeed    float64 // 翻滚速度（世界单位/秒）
	RollDuration float64 // 翻滚持续时间（秒）

	DamageMultiplier float64 // 伤害倍率
	DamageAdded      float64 // 伤害加值
}

// Damage 根据武器基础伤害计算实际伤害
func (s *ActorStatsComponent) Damage(base float64) float64 {
	return base*s.DamageMultiplier + s.DamageAdded
}

// TakeDamage 扣除生命值，结果不低于 0
func (s *ActorStatsComponent) TakeDamage(amount float64) {
	s.CurrentHealth -= amount
	if s.CurrentHealth < 0 {
		s.CurrentHealth = 0
	}
}

// IsDead 生命值归零即死亡
func (s *ActorStatsComponent) IsDead() bool {
	return s.CurrentHealth <= 0
}

// EquippedWeaponComponent 角色当前装备的武器实体
// 武器实体归角色所有：角色销毁时武器一并销毁
type EquippedWeaponComponent struct {
	Weapon ecs.EntityID
}
