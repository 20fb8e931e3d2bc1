package components

import "github.com/decker502/gunrunner/pkg/ecs"

// ReloadPhase 换弹状态机的阶段
type ReloadPhase int

const (
	// ReloadIdle 空闲：可以开火
	ReloadIdle ReloadPhase = iota
	// ReloadInProgress 换弹中：弹药只由换弹系统写入
	ReloadInProgress
)

// String 返回阶段名称（日志用）
func (p ReloadPhase) String() string {
	switch p {
	case ReloadIdle:
		return "idle"
	case ReloadInProgress:
		return "reloading"
	default:
		return "invalid"
	}
}

// ReloadComponent 角色的换弹状态
//
// 每个持枪角色恰好挂一个，阶段字段本身就是"是否正在换弹"的唯一来源，
// 因此同一角色不可能同时存在两个换弹过程。
type ReloadComponent struct {
	Phase            ReloadPhase  // 当前阶段
	Elapsed          float64      // 自换弹开始经过的时间（秒），由换弹系统推进
	Progress         float64      // 换弹行为自己维护的进度计时，可被行为暂停或清零
	Weapon           ecs.EntityID // 正在换弹的武器
	StartOrientation float64      // 开始换弹时的武器朝向

	// FinishedThisTick 本帧刚结束换弹（完成、终止或丢弃），本帧不再开火。
	// 换弹系统在下一帧开始时清除
	FinishedThisTick bool
}

// IsReloading 是否处于换弹阶段
func (r *ReloadComponent) IsReloading() bool {
	return r.Phase == ReloadInProgress
}

// Begin 进入换弹阶段
func (r *ReloadComponent) Begin(weapon ecs.EntityID, orientation float64) {
	*r = ReloadComponent{
		Phase:            ReloadInProgress,
		Weapon:           weapon,
		StartOrientation: orientation,
	}
}

// Clear 回到空闲阶段并清空换弹数据
func (r *ReloadComponent) Clear() {
	*r = ReloadComponent{Phase: ReloadIdle}
}

// Finish 结束换弹并标记本帧不可开火
func (r *ReloadComponent) Finish() {
	r.Clear()
	r.FinishedThisTick = true
}
