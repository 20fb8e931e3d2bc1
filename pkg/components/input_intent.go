package components

import "github.com/decker502/gunrunner/pkg/types"

// InputIntentComponent 本帧的输入意图
// 由编排层在每帧开始时写入（已完成设备轮询和边沿检测），核心系统只读
type InputIntentComponent struct {
	FireHeld            bool // 开火键按住
	FireJustPressed     bool // 开火键本帧刚按下
	ReloadHeld          bool // 换弹键按住
	InteractJustPressed bool // 拾取键本帧刚按下
	RollJustPressed     bool // 翻滚键本帧刚按下

	MoveX, MoveY float64 // 移动向量（仅用于推导动作状态和翻滚方向）
	AimAngle     float64 // 瞄准角度（弧度）

	// AnimationState 由编排层根据移动向量推导出的动作状态
	AnimationState types.AnimationState
}
