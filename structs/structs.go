package structs

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownDirection 输入的方向字符串无法识别
var ErrUnknownDirection = errors.New("unknown direction")

// Cell 描述地图上的一个格子，坐标范围 [0,width) × [0,height)。
type Cell struct {
	X int `json:"x" msgpack:"x"` // X坐标
	Y int `json:"y" msgpack:"y"` // Y坐标，向上为正
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction 描述蛇的移动方向。零值 None 表示还没有任何输入。
type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

var directionNames = map[Direction]string{
	None:  "none",
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// Opposite 返回相反方向，None 没有相反方向
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return None
}

// Delta 返回该方向上一步的坐标偏移
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, 1
	case Down:
		return 0, -1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// ParseDirection 把 "up" "down" "left" "right" 转换为 Direction
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// State 游戏会话所处的阶段
type State int

const (
	Idle State = iota
	Running
	GameOver
	Won
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case GameOver:
		return "game_over"
	case Won:
		return "won"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal 游戏结束或胜利后不再推进
func (s State) Terminal() bool {
	return s == GameOver || s == Won
}

// Outcome 一次 tick 的结果，由驱动循环解释
type Outcome int

const (
	OutcomeNone Outcome = iota // 不在 Running 状态，什么都没发生
	OutcomeMoved
	OutcomeScored
	OutcomeWon
	OutcomeGameOver
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeMoved:
		return "moved"
	case OutcomeScored:
		return "scored"
	case OutcomeWon:
		return "won"
	case OutcomeGameOver:
		return "game_over"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Snapshot 给展示层使用的只读快照
type Snapshot struct {
	SessionID   string `json:"session_id" msgpack:"session_id"`
	State       string `json:"state" msgpack:"state"`
	Width       int    `json:"width" msgpack:"width"`
	Height      int    `json:"height" msgpack:"height"`
	Body        []Cell `json:"body" msgpack:"body"` // 蛇头在前，蛇尾在后
	Direction   string `json:"direction" msgpack:"direction"`
	Apple       Cell   `json:"apple" msgpack:"apple"`
	AppleActive bool   `json:"apple_active" msgpack:"apple_active"`
	Score       int    `json:"score" msgpack:"score"`
	HighScore   int    `json:"high_score" msgpack:"high_score"`
	Camera      Cell   `json:"camera" msgpack:"camera"` // 镜头中心格子
}

// SessionRecord 一局结束后写入数据库的记录
type SessionRecord struct {
	SessionID  string    `json:"session_id"`
	Outcome    string    `json:"outcome"` // "game_over" 或 "won"
	Score      int       `json:"score"`
	Length     int       `json:"length"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Body       []Cell    `json:"body"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
