// Package data 内置数据文件
//
// //go:embed 只能嵌入当前包目录及其子目录的文件，
// 因此嵌入声明放在 data/ 目录本身，游戏和回放工具都从这里取用。
package data

import "embed"

// FS 以 data/ 目录为根的内置文件系统，交给 embedded.Init 使用
//
//go:embed tuning.yaml
var FS embed.FS
