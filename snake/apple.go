package snake

import (
	"github.com/hoshinonyaruko/gridsnake/grid"
	"github.com/hoshinonyaruko/gridsnake/structs"
)

// Apple 地图上唯一的食物，被吃掉后移动到新位置而不是重新创建
type Apple struct {
	cell   structs.Cell
	active bool
}

func (a *Apple) Cell() structs.Cell { return a.cell }

// Active 地图被占满后食物不再出现
func (a *Apple) Active() bool { return a.active }

// Relocate 从空闲格子里随机选一个位置。池子为空时返回 grid.ErrEmptyPool，
// 食物变为不活跃。
func (a *Apple) Relocate(pool *grid.Pool) error {
	c, err := pool.PickRandom()
	if err != nil {
		a.active = false
		return err
	}
	a.cell = c
	a.active = true
	return nil
}

// Is 判断某个格子上是否有食物
func (a *Apple) Is(c structs.Cell) bool {
	return a.active && a.cell == c
}

// Deactivate 胜利后调用
func (a *Apple) Deactivate() {
	a.active = false
}
