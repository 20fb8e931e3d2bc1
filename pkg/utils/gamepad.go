package utils

import (
	"math"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// GamepadDeadZone 摇杆死区：摇杆偏移量（0~1）小于该值时视为回中
const GamepadDeadZone = 0.2

// 标准布局手柄的按键分配
const (
	padFire     = ebiten.StandardGamepadButtonFrontBottomRight // RT
	padReload   = ebiten.StandardGamepadButtonFrontTopRight    // RB
	padInteract = ebiten.StandardGamepadButtonRightLeft        // X
	padRoll     = ebiten.StandardGamepadButtonRightBottom      // A
)

// FirstGamepad 返回最早连接的手柄
func FirstGamepad() (ebiten.GamepadID, bool) {
	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}

// StickVector 对摇杆读数应用死区
//
// 整体偏移量在死区内时返回 (0, 0, false)；否则单个分量落在死区内的轴被吸附为 0，
// 这样轻微偏斜的纯竖直/纯水平推杆不会被当成斜向移动
func StickVector(x, y float64) (float64, float64, bool) {
	if math.Hypot(x, y) < GamepadDeadZone {
		return 0, 0, false
	}
	if math.Abs(x) < GamepadDeadZone {
		x = 0
	}
	if math.Abs(y) < GamepadDeadZone {
		y = 0
	}
	return x, y, true
}

// ReadGamepadIntent 轮询标准布局手柄，生成本帧的输入意图
//
// 左摇杆移动，右摇杆瞄准（回中时保持 lastAim），RT 开火，RB 换弹，X 交互，A 翻滚。
// 手柄不支持标准布局时只保持瞄准方向，不产生任何操作
func ReadGamepadIntent(id ebiten.GamepadID, lastAim float64) components.InputIntentComponent {
	intent := components.InputIntentComponent{AimAngle: lastAim, AnimationState: types.AnimIdle}
	if !ebiten.IsStandardGamepadLayoutAvailable(id) {
		return intent
	}

	intent.MoveX, intent.MoveY, _ = StickVector(
		ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
		ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical),
	)
	if ax, ay, ok := StickVector(
		ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal),
		ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical),
	); ok {
		intent.AimAngle = math.Atan2(ay, ax)
	}

	intent.FireHeld = ebiten.IsStandardGamepadButtonPressed(id, padFire)
	intent.FireJustPressed = inpututil.IsStandardGamepadButtonJustPressed(id, padFire)
	intent.ReloadHeld = ebiten.IsStandardGamepadButtonPressed(id, padReload)
	intent.InteractJustPressed = inpututil.IsStandardGamepadButtonJustPressed(id, padInteract)
	intent.RollJustPressed = inpututil.IsStandardGamepadButtonJustPressed(id, padRoll)

	intent.AnimationState = DeriveAnimationState(intent.MoveX, intent.MoveY)
	return intent
}
