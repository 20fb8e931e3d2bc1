package components

// RollComponent 翻滚/闪避状态
// 换弹行为可以读取它来暂停或取消换弹
type RollComponent struct {
	Active   bool    // 是否正在翻滚
	Elapsed  float64 // 已翻滚时间（秒）
	Duration float64 // 本次翻滚总时长（秒）
	DirX     float64 // 翻滚方向
	DirY     float64
}
