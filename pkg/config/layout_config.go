package config

// 布局配置常量
// 世界坐标以场地中心为原点，Y 轴向下；屏幕坐标以左上角为原点

const (
	// LogicalWidth 逻辑画面宽度（像素画分辨率）
	LogicalWidth = 320
	// LogicalHeight 逻辑画面高度
	LogicalHeight = 180

	// PixelScale 窗口相对逻辑画面的整数缩放倍数
	PixelScale = 3

	// GameWindowWidth 默认窗口宽度
	GameWindowWidth = LogicalWidth * PixelScale
	// GameWindowHeight 默认窗口高度
	GameWindowHeight = LogicalHeight * PixelScale

	// SpriteFrameSize 精灵图集中每帧的边长（像素）
	SpriteFrameSize = 16

	// PickupSize 拾取物绘制尺寸（像素）
	PickupSize = 6.0

	// WeaponLength 武器朝向线的长度（像素）
	WeaponLength = 10.0

	// MaxEventLogLines 画面上保留的最近事件条数
	MaxEventLogLines = 6
)

// WorldToScreen 把世界坐标转换为逻辑画面坐标（原点位于画面中心）
func WorldToScreen(x, y float64) (float64, float64) {
	return x + LogicalWidth/2, y + LogicalHeight/2
}
