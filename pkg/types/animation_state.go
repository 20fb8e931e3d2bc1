// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// AnimationState 角色的离散动作状态
// 由编排层根据移动向量和瞄准方向推导，核心只消费结果
type AnimationState int

const (
	// AnimIdle 站立
	AnimIdle AnimationState = iota
	// AnimFront 正面行走
	AnimFront
	// AnimBack 背面行走
	AnimBack
	// AnimLeftFront 左前方
	AnimLeftFront
	// AnimRightFront 右前方
	AnimRightFront
	// AnimLeftBack 左后方
	AnimLeftBack
	// AnimRightBack 右后方
	AnimRightBack
)

var animationStateNames = [...]string{
	AnimIdle:       "idle",
	AnimFront:      "front",
	AnimBack:       "back",
	AnimLeftFront:  "leftFront",
	AnimRightFront: "rightFront",
	AnimLeftBack:   "leftBack",
	AnimRightBack:  "rightBack",
}

// AllAnimationStates 按声明顺序返回全部动作状态
func AllAnimationStates() []AnimationState {
	states := make([]AnimationState, len(animationStateNames))
	for i := range animationStateNames {
		states[i] = AnimationState(i)
	}
	return states
}

// String 返回状态的配置名
func (s AnimationState) String() string {
	if s >= 0 && int(s) < len(animationStateNames) {
		return animationStateNames[s]
	}
	return fmt.Sprintf("AnimationState(%d)", int(s))
}

// ParseAnimationState 将配置名转换为 AnimationState
func ParseAnimationState(name string) (AnimationState, error) {
	for i, n := range animationStateNames {
		if n == name {
			return AnimationState(i), nil
		}
	}
	return AnimIdle, fmt.Errorf("unknown animation state %q", name)
}
