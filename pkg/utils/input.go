// Package utils 提供通用工具函数
package utils

import (
	"fmt"
	"math"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/game"
	"github.com/decker502/gunrunner/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyBindings 操作到 ebiten 按键的映射
type KeyBindings map[game.Action]ebiten.Key

// ParseKeyBindings 把设置中的按键名解析为 ebiten 按键
// 按键名与 ebiten.Key.String() 一致（如 "R"、"Space"）
func ParseKeyBindings(bindings map[game.Action]string) (KeyBindings, error) {
	keys := make(KeyBindings, len(bindings))
	for _, action := range game.AllActions() {
		name, ok := bindings[action]
		if !ok {
			return nil, fmt.Errorf("action %s has no key binding", action)
		}
		var key ebiten.Key
		if err := key.UnmarshalText([]byte(name)); err != nil {
			return nil, fmt.Errorf("action %s: invalid key %q: %w", action, name, err)
		}
		keys[action] = key
	}
	return keys, nil
}

// ReadIntent 轮询键盘和鼠标，生成本帧的输入意图
//
// 参数:
//   - keys: 按键绑定
//   - originX, originY: 角色在屏幕上的位置，用于计算瞄准角度
//
// 鼠标左键与开火键等效
func ReadIntent(keys KeyBindings, originX, originY float64) components.InputIntentComponent {
	var intent components.InputIntentComponent

	intent.FireHeld = ebiten.IsKeyPressed(keys[game.ActionFire]) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	intent.FireJustPressed = inpututil.IsKeyJustPressed(keys[game.ActionFire]) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	intent.ReloadHeld = ebiten.IsKeyPressed(keys[game.ActionReload])
	intent.InteractJustPressed = inpututil.IsKeyJustPressed(keys[game.ActionInteract])
	intent.RollJustPressed = inpututil.IsKeyJustPressed(keys[game.ActionRoll])

	if ebiten.IsKeyPressed(keys[game.ActionMoveLeft]) {
		intent.MoveX--
	}
	if ebiten.IsKeyPressed(keys[game.ActionMoveRight]) {
		intent.MoveX++
	}
	if ebiten.IsKeyPressed(keys[game.ActionMoveUp]) {
		intent.MoveY--
	}
	if ebiten.IsKeyPressed(keys[game.ActionMoveDown]) {
		intent.MoveY++
	}

	cx, cy := ebiten.CursorPosition()
	intent.AimAngle = AimAngle(originX, originY, float64(cx), float64(cy))
	intent.AnimationState = DeriveAnimationState(intent.MoveX, intent.MoveY)
	return intent
}

// AimAngle 返回从 (ox, oy) 指向 (tx, ty) 的角度（弧度，屏幕坐标系 Y 向下）
func AimAngle(ox, oy, tx, ty float64) float64 {
	return math.Atan2(ty-oy, tx-ox)
}

// DeriveAnimationState 根据移动向量推导动作状态（屏幕坐标系 Y 向下）
//
//   - 不动：Idle
//   - 纯竖直：向下 Front，向上 Back
//   - 纯水平或斜向下：LeftFront / RightFront
//   - 斜向上：LeftBack / RightBack
func DeriveAnimationState(moveX, moveY float64) types.AnimationState {
	switch {
	case moveX == 0 && moveY == 0:
		return types.AnimIdle
	case moveX == 0 && moveY > 0:
		return types.AnimFront
	case moveX == 0:
		return types.AnimBack
	case moveX < 0 && moveY < 0:
		return types.AnimLeftBack
	case moveX < 0:
		return types.AnimLeftFront
	case moveY < 0:
		return types.AnimRightBack
	default:
		return types.AnimRightFront
	}
}
