package main

import (
	"flag"
	"log"

	"github.com/decker502/gunrunner/data"
	"github.com/decker502/gunrunner/pkg/app"
	"github.com/decker502/gunrunner/pkg/config"
	"github.com/decker502/gunrunner/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	tuningPath = flag.String("tuning", "", "调参文件路径（默认使用内置 data/tuning.yaml）")
	recordPath = flag.String("record", "", "把本局输入录制到指定文件，可用 cmd/replay 回放")
)

func main() {
	flag.Parse()

	embedded.Init(data.FS)

	game, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		TuningPath: *tuningPath,
		RecordPath: *recordPath,
	})
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Gunrunner")

	// RunGame 阻塞直到窗口关闭
	err = ebiten.RunGame(game)
	game.Close()
	if err != nil {
		log.Fatal(err)
	}
}
