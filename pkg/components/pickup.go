package components

import "github.com/decker502/gunrunner/pkg/types"

// PickupKind 拾取物的大类
type PickupKind int

const (
	// PickupItem 普通物品，拾取后进入背包
	PickupItem PickupKind = iota
	// PickupWeapon 武器拾取物（预留，尚未实现）
	PickupWeapon
)

// PickupComponent 世界中等待拾取的物品
type PickupComponent struct {
	Kind   PickupKind       // 大类
	Item   types.ItemKind   // Kind == PickupItem 时有效
	Weapon types.WeaponKind // Kind == PickupWeapon 时有效

	AnimOffset float64 // 漂浮动画的相位偏移，每个实例不同
	BaseY      float64 // 生成时的 Y 坐标，漂浮偏移基于它计算
	BobOffset  float64 // 本帧的漂浮偏移
	ZIndex     float64 // 绘制层级

	Highlighted bool // 本帧是否被某个角色选中（每帧重新计算）
}
