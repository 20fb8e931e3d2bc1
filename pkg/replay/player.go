package replay

import (
	"fmt"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/ecs"
	"github.com/decker502/gunrunner/pkg/game"
)

// Stepper 可以被逐帧驱动的模拟
type Stepper interface {
	Step(dt float64, intents map[ecs.EntityID]components.InputIntentComponent) []game.Event
}

// FrameFunc 每帧回放后的回调
type FrameFunc func(index int, frame Frame, events []game.Event)

// Play 把录像逐帧喂给模拟
// 模拟必须与录制时处于相同的初始状态（同一份调参、同样的生成顺序）
func Play(sim Stepper, rec *Recording, onFrame FrameFunc) error {
	for i, frame := range rec.Frames {
		intents, err := frame.DecodeIntents()
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		events := sim.Step(frame.Dt, intents)
		if onFrame != nil {
			onFrame(i, frame, events)
		}
	}
	return nil
}
