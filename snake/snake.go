// 关于蛇的移动和生长
package snake

import (
	"github.com/hoshinonyaruko/gridsnake/grid"
	"github.com/hoshinonyaruko/gridsnake/structs"
	"github.com/zyedidia/generic/mapset"
)

// Snake 蛇头加尾巴链。body[0] 是蛇头，最后一个是蛇尾。
type Snake struct {
	body     []structs.Cell
	occupied mapset.Set[structs.Cell] // 按坐标判断占用，O(1)
	current  structs.Direction        // 已生效的方向
	target   structs.Direction        // 等待下一个 tick 生效的方向
}

// New 只有蛇头，方向为 None
func New(head structs.Cell) *Snake {
	s := &Snake{
		body:     []structs.Cell{head},
		occupied: mapset.New[structs.Cell](),
	}
	s.occupied.Put(head)
	return s
}

func (s *Snake) Head() structs.Cell { return s.body[0] }

func (s *Snake) Len() int { return len(s.body) }

// Body 返回蛇头到蛇尾的副本
func (s *Snake) Body() []structs.Cell {
	out := make([]structs.Cell, len(s.body))
	copy(out, s.body)
	return out
}

// Tail 不含蛇头的尾巴段
func (s *Snake) Tail() []structs.Cell {
	out := make([]structs.Cell, len(s.body)-1)
	copy(out, s.body[1:])
	return out
}

// Direction 当前已生效的方向
func (s *Snake) Direction() structs.Direction { return s.current }

// TargetDirection 等待生效的方向
func (s *Snake) TargetDirection() structs.Direction { return s.target }

// SetTargetDirection 与当前方向相反时拒绝，返回是否接受
func (s *Snake) SetTargetDirection(d structs.Direction) bool {
	if d == structs.None {
		return false
	}
	if d == s.current.Opposite() {
		return false
	}
	s.target = d
	return true
}

// PromoteDirection 每个 tick 开始时调用一次
func (s *Snake) PromoteDirection() structs.Direction {
	if s.target != structs.None {
		s.current = s.target
	}
	return s.current
}

// ComputeNextHead 按当前方向算出下一个蛇头，出界返回 false
func (s *Snake) ComputeNextHead(g *grid.Grid) (structs.Cell, bool) {
	dx, dy := s.current.Delta()
	head := s.Head()
	return g.CellAt(head.X+dx, head.Y+dy)
}

// Occupies 判断格子是否是蛇头或任意一段尾巴
func (s *Snake) Occupies(c structs.Cell) bool {
	return s.occupied.Has(c)
}

// Advance 提交一次移动。
// 每段尾巴移动到它前面那段在移动前的位置；grow 时在末尾追加一段，
// 占据原来最后一段的位置。返回被腾出的格子，grow 时没有。
func (s *Snake) Advance(newHead structs.Cell, grow bool) (vacated structs.Cell, ok bool) {
	prev := s.body
	n := len(prev)
	if grow {
		n++
	}
	next := make([]structs.Cell, n)
	next[0] = newHead
	// 只读取移动前的快照，避免原地覆盖
	copy(next[1:], prev[:len(prev)-1])
	if grow {
		next[n-1] = prev[len(prev)-1]
	} else {
		vacated, ok = prev[len(prev)-1], true
		s.occupied.Remove(vacated)
	}
	s.occupied.Put(newHead)
	s.body = next
	return vacated, ok
}
