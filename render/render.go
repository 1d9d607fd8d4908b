// 把游戏快照画成图片
package render

import (
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/hoshinonyaruko/gridsnake/memimg"
	"github.com/hoshinonyaruko/gridsnake/structs"
)

// 棋盘格的两种颜色和蛇、食物的颜色
var (
	color1      = [3]float64{0.67, 0.84, 0.32}
	color2      = [3]float64{0.63, 0.80, 0.29}
	playerColor = [3]float64{0.26, 0.45, 0.91}
	appleColor  = [3]float64{0.90, 0.22, 0.18}
)

// Board 渲染整张地图。y 轴向上，所以画的时候要翻转。
func Board(snap structs.Snapshot, blockSize int) image.Image {
	width := snap.Width * blockSize
	height := snap.Height * blockSize
	dc := gg.NewContext(width, height)

	renderChecker(dc, snap.Width, snap.Height, blockSize)

	if snap.AppleActive {
		drawCell(dc, snap.Apple, snap.Height, blockSize, memimg.SpriteApple, appleColor, 1)
	}
	// 先画尾巴再画头，头稍微大一点
	for i := len(snap.Body) - 1; i >= 1; i-- {
		drawCell(dc, snap.Body[i], snap.Height, blockSize, memimg.SpriteTail, playerColor, 0.95)
	}
	if len(snap.Body) > 0 {
		drawCell(dc, snap.Body[0], snap.Height, blockSize, memimg.SpriteHead, playerColor, 1)
	}

	if snap.State == structs.GameOver.String() {
		return gameOverOverlay(dc.Image())
	}
	return dc.Image()
}

// SavePNG 渲染并保存为 png
func SavePNG(snap structs.Snapshot, blockSize int, fileName string) error {
	img := Board(snap, blockSize)
	if err := os.MkdirAll(filepath.Dir(fileName), os.ModePerm); err != nil {
		return err
	}
	return imaging.Save(img, fileName)
}

func renderChecker(dc *gg.Context, cols, rows, blockSize int) {
	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			c := color1
			if (x+y)%2 != 0 {
				c = color2
			}
			dc.SetRGB(c[0], c[1], c[2])
			px, py := pixel(structs.Cell{X: x, Y: y}, rows, blockSize)
			dc.DrawRectangle(px, py, float64(blockSize), float64(blockSize))
			dc.Fill()
		}
	}
}

func pixel(c structs.Cell, rows, blockSize int) (float64, float64) {
	return float64(c.X * blockSize), float64((rows - 1 - c.Y) * blockSize)
}

func drawCell(dc *gg.Context, c structs.Cell, rows, blockSize int, sprite string, fallback [3]float64, scale float64) {
	px, py := pixel(c, rows, blockSize)
	if img, found := memimg.GetSprite(sprite); found {
		dc.DrawImage(img, int(px), int(py))
		return
	}
	// 没有贴图时用纯色方块
	size := float64(blockSize) * scale
	inset := (float64(blockSize) - size) / 2
	dc.SetRGB(fallback[0], fallback[1], fallback[2])
	dc.DrawRectangle(px+inset, py+inset, size, size)
	dc.Fill()
}

func gameOverOverlay(img image.Image) image.Image {
	blurred := imaging.Blur(img, 3.5)
	b := blurred.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.DrawImage(blurred, 0, 0)
	dc.SetRGBA(0, 0, 0, 0.4)
	dc.DrawRectangle(0, 0, float64(b.Dx()), float64(b.Dy()))
	dc.Fill()
	return dc.Image()
}
