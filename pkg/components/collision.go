package components

// CollisionComponent 定义实体的碰撞检测边界框
// 碰撞盒中心对齐实体位置，用于子弹与角色的命中判定
type CollisionComponent struct {
	Width   float64 // 碰撞盒宽度（世界单位）
	Height  float64 // 碰撞盒高度（世界单位）
	OffsetX float64 // 碰撞盒相对于实体位置的X偏移量，正值向右
	OffsetY float64 // 碰撞盒相对于实体位置的Y偏移量，正值向下
}

// Overlaps 检查两个碰撞盒是否重叠（AABB，边界接触也算重叠）
func (c *CollisionComponent) Overlaps(pos *PositionComponent, other *CollisionComponent, otherPos *PositionComponent) bool {
	cx1, cy1 := pos.X+c.OffsetX, pos.Y+c.OffsetY
	cx2, cy2 := otherPos.X+other.OffsetX, otherPos.Y+other.OffsetY

	return cx1+c.Width/2 >= cx2-other.Width/2 &&
		cx1-c.Width/2 <= cx2+other.Width/2 &&
		cy1+c.Height/2 >= cy2-other.Height/2 &&
		cy1-c.Height/2 <= cy2+other.Height/2
}
