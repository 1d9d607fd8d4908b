package grid

import (
	"errors"

	"github.com/hoshinonyaruko/gridsnake/structs"
	"golang.org/x/exp/rand"
)

// ErrEmptyPool 没有空闲格子可选，意味着整张地图已经被蛇占满
var ErrEmptyPool = errors.New("available cell pool is empty")

// Source 随机数来源，测试可以注入固定序列
type Source interface {
	// Intn 返回 [0,n) 内的整数
	Intn(n int) int
}

// NewSource 返回一个带种子的随机数来源
func NewSource(seed uint64) Source {
	return rand.New(rand.NewSource(seed))
}

// Pool 记录当前没有被蛇占用的格子。
// cells 与 index 一起维护，add/remove/pick 都是 O(1)。
type Pool struct {
	cells []structs.Cell
	index map[structs.Cell]int
	rng   Source
}

// NewPool 用地图上的全部格子初始化
func NewPool(g *Grid, rng Source) *Pool {
	p := &Pool{
		cells: make([]structs.Cell, 0, g.Size()),
		index: make(map[structs.Cell]int, g.Size()),
		rng:   rng,
	}
	for _, c := range g.cells {
		p.Add(c)
	}
	return p
}

// Add 已存在时什么都不做
func (p *Pool) Add(c structs.Cell) {
	if _, ok := p.index[c]; ok {
		return
	}
	p.index[c] = len(p.cells)
	p.cells = append(p.cells, c)
}

// Remove 把最后一个元素换到被删除的位置
func (p *Pool) Remove(c structs.Cell) {
	i, ok := p.index[c]
	if !ok {
		return
	}
	last := len(p.cells) - 1
	if i != last {
		moved := p.cells[last]
		p.cells[i] = moved
		p.index[moved] = i
	}
	p.cells = p.cells[:last]
	delete(p.index, c)
}

func (p *Pool) Contains(c structs.Cell) bool {
	_, ok := p.index[c]
	return ok
}

func (p *Pool) Count() int { return len(p.cells) }

// PickRandom 均匀地选出一个空闲格子，不会把它移出集合
func (p *Pool) PickRandom() (structs.Cell, error) {
	if len(p.cells) == 0 {
		return structs.Cell{}, ErrEmptyPool
	}
	return p.cells[p.rng.Intn(len(p.cells))], nil
}
