package components

import "math"

// PositionComponent 实体在世界坐标系中的位置
// 位置由编排层（移动/物理）写入，核心系统只读
type PositionComponent struct {
	X float64
	Y float64
}

// DistanceTo 返回两点之间的平面距离
func (p *PositionComponent) DistanceTo(other *PositionComponent) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}
