package components

import (
	"fmt"

	"github.com/decker502/gunrunner/pkg/ecs"
	"github.com/decker502/gunrunner/pkg/types"
)

// WeaponComponent 武器实体的基础信息
type WeaponComponent struct {
	Kind         types.WeaponKind // 武器类型，决定换弹行为
	Owner        ecs.EntityID     // 持有者（角色实体）
	Orientation  float64          // 朝向角度（弧度），与弹药状态独立更新
	FireCooldown float64          // 距离下一次可以连发的剩余时间（秒）
}

// AmmoComponent 武器的弹药计数
//
// 不变量：
//   - 0 <= MagAmmo <= MagSize
//   - Ammo >= 0（Infinite 为 true 时备弹不消耗）
type AmmoComponent struct {
	MagAmmo  int  // 弹匣内子弹
	MagSize  int  // 弹匣容量
	Ammo     int  // 备弹
	Infinite bool // 是否无限备弹
}

// CanReload 弹匣未满且有备弹（或无限）时可以换弹
func (a *AmmoComponent) CanReload() bool {
	return a.MagAmmo < a.MagSize && (a.Ammo > 0 || a.Infinite)
}

// Validate 检查弹药不变量
func (a *AmmoComponent) Validate() error {
	if a.MagSize <= 0 {
		return fmt.Errorf("mag size must be positive, got %d", a.MagSize)
	}
	if a.MagAmmo < 0 || a.MagAmmo > a.MagSize {
		return fmt.Errorf("mag ammo %d out of range [0, %d]", a.MagAmmo, a.MagSize)
	}
	if a.Ammo < 0 {
		return fmt.Errorf("reserve ammo cannot be negative, got %d", a.Ammo)
	}
	return nil
}
