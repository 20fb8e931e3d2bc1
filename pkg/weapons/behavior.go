// Package weapons 维护武器类型到换弹/射击行为的绑定
//
// 不同武器的换弹节奏差异很大（左轮一次装满整个弹巢，霰弹枪逐发装填，
// 狙击枪拉栓会被翻滚打断），换弹系统只通过 Behavior 接口调用它们，
// 不需要知道任何一种武器的具体策略。
package weapons

import (
	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/types"
)

// ReloadInput 换弹行为的输入快照
// 行为函数只读这些值，不直接修改任何组件
type ReloadInput struct {
	Dt               float64 // 本帧时间增量（秒）
	Elapsed          float64 // 自换弹开始经过的时间（已包含本帧）
	Progress         float64 // 行为上一帧写回的进度计时
	Orientation      float64 // 当前武器朝向
	StartOrientation float64 // 开始换弹时的武器朝向

	Ammo  components.AmmoComponent       // 弹药快照
	Stats components.ActorStatsComponent // 持有者属性快照

	// Roll 持有者的翻滚状态，没有翻滚组件时为 nil
	// 换弹系统总是原样传入，是否使用由具体武器决定
	Roll *components.RollComponent
}

// Rolling 持有者是否正在翻滚
func (in ReloadInput) Rolling() bool {
	return in.Roll != nil && in.Roll.Active
}

// ReloadOutcome 换弹行为产生的变更
type ReloadOutcome struct {
	MagAmmo     int     // 新的弹匣子弹数
	Ammo        int     // 新的备弹数
	Orientation float64 // 新的武器朝向
	Progress    float64 // 新的进度计时
	Done        bool    // 换弹是否完成（完成后换弹状态被清除）
}

// Behavior 单种武器的行为
type Behavior interface {
	// Kind 行为绑定的武器类型
	Kind() types.WeaponKind
	// ShotCost 每次射击消耗的弹匣子弹数
	ShotCost() int
	// FireInterval 按住开火时的连发间隔（秒），0 表示只响应按下
	FireInterval() float64
	// BaseDamage 基础伤害
	BaseDamage() float64
	// Reload 推进一帧换弹
	Reload(in ReloadInput) ReloadOutcome
}

// refill 从备弹中补满弹匣
// 返回新的弹匣数和备弹数；无限备弹时备弹不变
func refill(ammo components.AmmoComponent) (int, int) {
	need := ammo.MagSize - ammo.MagAmmo
	if need <= 0 {
		return ammo.MagAmmo, ammo.Ammo
	}
	if ammo.Infinite {
		return ammo.MagSize, ammo.Ammo
	}
	take := need
	if ammo.Ammo < take {
		take = ammo.Ammo
	}
	return ammo.MagAmmo + take, ammo.Ammo - take
}

// unchanged 返回不做任何修改的结果
func unchanged(in ReloadInput) ReloadOutcome {
	return ReloadOutcome{
		MagAmmo:     in.Ammo.MagAmmo,
		Ammo:        in.Ammo.Ammo,
		Orientation: in.Orientation,
		Progress:    in.Progress,
	}
}

// base 各武器共享的射击参数
type base struct {
	kind         types.WeaponKind
	shotCost     int
	fireInterval float64
	baseDamage   float64
}

func (b base) Kind() types.WeaponKind { return b.kind }
func (b base) ShotCost() int          { return b.shotCost }
func (b base) FireInterval() float64  { return b.fireInterval }
func (b base) BaseDamage() float64    { return b.baseDamage }
