package components

import (
	"fmt"

	"github.com/decker502/gunrunner/pkg/types"
)

// AtlasHandle 精灵图集的句柄
// 核心不关心图集如何加载，渲染层用它查找已加载的图像
type AtlasHandle string

// FlipMode 精灵翻转方式
type FlipMode int

const (
	// FlipNone 不翻转
	FlipNone FlipMode = iota
	// FlipX 沿 X 轴镜像（朝左的动作复用朝右的图集）
	FlipX
	// FlipY 沿 Y 轴镜像
	FlipY
)

// String 返回翻转方式的配置名
func (f FlipMode) String() string {
	switch f {
	case FlipX:
		return "x"
	case FlipY:
		return "y"
	default:
		return "none"
	}
}

// ParseFlipMode 将配置名转换为 FlipMode，空字符串视为 none
func ParseFlipMode(name string) (FlipMode, error) {
	switch name {
	case "", "none":
		return FlipNone, nil
	case "x":
		return FlipX, nil
	case "y":
		return FlipY, nil
	}
	return FlipNone, fmt.Errorf("unknown flip mode %q", name)
}

// AnimationDescriptor 单个动作状态的播放数据（不可变）
type AnimationDescriptor struct {
	Atlas AtlasHandle // 图集句柄
	First int         // 起始帧索引（含）
	Last  int         // 结束帧索引（含）
	Flip  FlipMode    // 翻转方式
}

// FrameCount 返回动画包含的帧数
func (d AnimationDescriptor) FrameCount() int {
	return d.Last - d.First + 1
}

// AnimationStateMachine 动作状态到动画描述的查找表
// 在角色生成时一次性构建，之后只读
type AnimationStateMachine struct {
	table map[types.AnimationState]AnimationDescriptor
}

// NewAnimationStateMachine 根据给定的条目构建状态机
// 每个动作状态都必须有对应条目，帧范围必须合法
func NewAnimationStateMachine(entries map[types.AnimationState]AnimationDescriptor) (*AnimationStateMachine, error) {
	table := make(map[types.AnimationState]AnimationDescriptor, len(entries))
	for _, state := range types.AllAnimationStates() {
		desc, ok := entries[state]
		if !ok {
			return nil, fmt.Errorf("animation state %s has no descriptor", state)
		}
		if desc.First < 0 || desc.Last < desc.First {
			return nil, fmt.Errorf("animation state %s: invalid frame range [%d, %d]", state, desc.First, desc.Last)
		}
		if desc.Atlas == "" {
			return nil, fmt.Errorf("animation state %s: empty atlas handle", state)
		}
		table[state] = desc
	}
	return &AnimationStateMachine{table: table}, nil
}

// Lookup 查找动作状态的描述
// 状态是封闭枚举且在构建时已全部填充，查不到说明调用方有 bug，直接 panic
func (m *AnimationStateMachine) Lookup(state types.AnimationState) AnimationDescriptor {
	desc, ok := m.table[state]
	if !ok {
		panic(fmt.Sprintf("animation state machine: no descriptor for state %s", state))
	}
	return desc
}

// AnimationComponent 角色的动画播放状态
type AnimationComponent struct {
	Machine       *AnimationStateMachine // 动作状态查找表（多个角色可共享）
	State         types.AnimationState   // 当前动作状态
	FrameIndex    int                    // 当前显示的帧索引（图集内的绝对索引）
	FrameElapsed  float64                // 当前帧已显示时间（秒）
	FrameDuration float64                // 每帧持续时间（秒）
}

// NewAnimationComponent 以给定状态的起始帧创建动画组件
func NewAnimationComponent(machine *AnimationStateMachine, state types.AnimationState, frameDuration float64) *AnimationComponent {
	return &AnimationComponent{
		Machine:       machine,
		State:         state,
		FrameIndex:    machine.Lookup(state).First,
		FrameDuration: frameDuration,
	}
}

// Frame 返回渲染层需要的当前帧信息
func (a *AnimationComponent) Frame() (AtlasHandle, int, FlipMode) {
	desc := a.Machine.Lookup(a.State)
	return desc.Atlas, a.FrameIndex, desc.Flip
}
