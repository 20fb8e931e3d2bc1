package scenes

import (
	"hash/fnv"
	"image"
	"image/color"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/config"
	"github.com/decker502/gunrunner/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// buildAtlases 为动作状态表中引用的每个图集生成占位精灵图
// 每帧一个 SpriteFrameSize 见方的格子，身体颜色由图集名决定，
// 脚的位置随帧号左右摆动，便于观察动画循环
func buildAtlases(machine *components.AnimationStateMachine) map[components.AtlasHandle]*ebiten.Image {
	lastFrame := make(map[components.AtlasHandle]int)
	for _, state := range types.AllAnimationStates() {
		desc := machine.Lookup(state)
		if last, ok := lastFrame[desc.Atlas]; !ok || desc.Last > last {
			lastFrame[desc.Atlas] = desc.Last
		}
	}

	atlases := make(map[components.AtlasHandle]*ebiten.Image, len(lastFrame))
	for handle, last := range lastFrame {
		atlases[handle] = drawPlaceholderAtlas(handle, last+1)
	}
	return atlases
}

// drawPlaceholderAtlas 绘制 frames 帧的横向图集
func drawPlaceholderAtlas(handle components.AtlasHandle, frames int) *ebiten.Image {
	const size = config.SpriteFrameSize
	img := ebiten.NewImage(size*frames, size)
	body := atlasColor(handle)
	foot := color.RGBA{R: 40, G: 30, B: 30, A: 255}

	for i := 0; i < frames; i++ {
		x := float32(i * size)
		vector.DrawFilledRect(img, x+4, 2, 8, 10, body, false)
		vector.DrawFilledRect(img, x+6, 3, 4, 3, color.RGBA{R: 250, G: 220, B: 190, A: 255}, false)

		swing := float32(i%4) - 1.5
		vector.DrawFilledRect(img, x+5+swing, 12, 2, 3, foot, false)
		vector.DrawFilledRect(img, x+9-swing, 12, 2, 3, foot, false)
	}
	return img
}

// atlasColor 根据图集名生成稳定的颜色
func atlasColor(handle components.AtlasHandle) color.RGBA {
	h := fnv.New32a()
	h.Write([]byte(handle))
	sum := h.Sum32()
	return color.RGBA{
		R: uint8(80 + sum%150),
		G: uint8(80 + (sum>>8)%150),
		B: uint8(80 + (sum>>16)%150),
		A: 255,
	}
}

// frameImage 从图集中裁出一帧
func frameImage(atlas *ebiten.Image, index int) *ebiten.Image {
	const size = config.SpriteFrameSize
	rect := image.Rect(index*size, 0, (index+1)*size, size)
	return atlas.SubImage(rect).(*ebiten.Image)
}

// itemColor 拾取物颜色
func itemColor(item types.ItemKind) color.RGBA {
	switch item {
	case types.ItemBandage:
		return color.RGBA{R: 240, G: 240, B: 240, A: 255}
	case types.ItemGunpowder:
		return color.RGBA{R: 70, G: 70, B: 80, A: 255}
	case types.ItemScrap:
		return color.RGBA{R: 170, G: 120, B: 60, A: 255}
	case types.ItemBattery:
		return color.RGBA{R: 90, G: 200, B: 90, A: 255}
	default:
		return color.RGBA{R: 255, G: 0, B: 255, A: 255}
	}
}
