package systems

import (
	"log"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/ecs"
)

// AnimationSystem 根据输入意图切换角色动作状态并推进帧
type AnimationSystem struct {
	entityManager *ecs.EntityManager
}

// NewAnimationSystem 创建一个新的动画系统
func NewAnimationSystem(em *ecs.EntityManager) *AnimationSystem {
	return &AnimationSystem{
		entityManager: em,
	}
}

// Update 更新所有动画实体的帧
//
// 每个实体：
//  1. 意图中的动作状态与当前不同时切换，本帧停在新状态的起始帧
//  2. 否则累加帧时间，每满一个 FrameDuration 前进一帧，越过结束帧回到起始帧
func (s *AnimationSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[
		*components.AnimationComponent,
		*components.InputIntentComponent,
	](s.entityManager)

	for _, id := range entities {
		anim, _ := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)
		intent, _ := ecs.GetComponent[*components.InputIntentComponent](s.entityManager, id)

		if intent.AnimationState != anim.State {
			desc := anim.Machine.Lookup(intent.AnimationState)
			log.Printf("[AnimationSystem] 实体 %d 动作切换: %s -> %s", id, anim.State, intent.AnimationState)
			anim.State = intent.AnimationState
			anim.FrameIndex = desc.First
			anim.FrameElapsed = 0
			continue
		}

		s.advance(anim, deltaTime)
	}
}

// advance 推进帧计时，一次大步长可以跨越多帧
func (s *AnimationSystem) advance(anim *components.AnimationComponent, deltaTime float64) {
	if anim.FrameDuration <= 0 {
		return
	}
	desc := anim.Machine.Lookup(anim.State)

	anim.FrameElapsed += deltaTime
	if anim.FrameElapsed < anim.FrameDuration {
		return
	}

	steps := int(anim.FrameElapsed / anim.FrameDuration)
	anim.FrameElapsed -= float64(steps) * anim.FrameDuration
	if anim.FrameElapsed < 0 {
		anim.FrameElapsed = 0
	}
	anim.FrameIndex = desc.First + (anim.FrameIndex-desc.First+steps)%desc.FrameCount()
}
