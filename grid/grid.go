// 地图格子
package grid

import (
	"fmt"

	"github.com/hoshinonyaruko/gridsnake/structs"
)

// Grid 持有固定的 width*height 个格子，创建后不再改变
type Grid struct {
	width  int
	height int
	cells  []structs.Cell // 按列存放，index = x*height + y
}

// New 创建地图，宽高必须为正数
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid size %dx%d must be positive", width, height)
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]structs.Cell, 0, width*height),
	}
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			g.cells = append(g.cells, structs.Cell{X: x, Y: y})
		}
	}
	return g, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Size 格子总数
func (g *Grid) Size() int { return len(g.cells) }

// Contains 判断坐标是否在地图内
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// CellAt 越界时返回 false，而不是报错
func (g *Grid) CellAt(x, y int) (structs.Cell, bool) {
	if !g.Contains(x, y) {
		return structs.Cell{}, false
	}
	return g.cells[x*g.height+y], true
}

// Cells 按创建顺序返回所有格子的副本
func (g *Grid) Cells() []structs.Cell {
	out := make([]structs.Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// Center 镜头应该对准的格子
func (g *Grid) Center() structs.Cell {
	return g.cells[(g.width/2)*g.height+g.height/2]
}
