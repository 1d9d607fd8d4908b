package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hoshinonyaruko/gridsnake/engine"
	"github.com/hoshinonyaruko/gridsnake/render"
	"github.com/hoshinonyaruko/gridsnake/structs"
	"github.com/vmihailenco/msgpack/v5"
)

// SessionStore 保存最高分和每局记录，sqlite.Store 实现了它
type SessionStore interface {
	engine.HighScoreStore
	RecordSession(rec structs.SessionRecord) error
	RecentSessions(limit int) ([]structs.SessionRecord, error)
}

// Options 渲染和静态文件相关的设置
type Options struct {
	BlockSize int
	StaticDir string
	SelfPath  string
}

// Server 持有唯一的一把锁，输入、tick 和重开都在锁内串行执行
type Server struct {
	mu    sync.Mutex
	game  *engine.Engine
	store SessionStore
	opts  Options
}

// NewServer 创建引擎并开始第一局
func NewServer(cfg engine.Config, store SessionStore, opts Options, engineOpts ...engine.Option) (*Server, error) {
	if opts.BlockSize <= 0 {
		opts.BlockSize = 20
	}
	if opts.StaticDir == "" {
		opts.StaticDir = "./static"
	}
	s := &Server{store: store, opts: opts}
	hooks := engine.Hooks{
		OnGameStart: func() {
			log.Printf("new game ready")
		},
		OnFirstInput: func() {
			log.Printf("first input received, clock started")
		},
		OnScoreChanged: func(current, high int) {
			log.Printf("score %d, high score %d", current, high)
		},
		OnGameOver: func() {
			log.Printf("game over")
			s.recordSession()
		},
		OnWon: func() {
			log.Printf("board filled, you won")
			s.recordSession()
		},
	}
	engineOpts = append([]engine.Option{engine.WithStore(store), engine.WithHooks(hooks)}, engineOpts...)
	game, err := engine.New(cfg, engineOpts...)
	if err != nil {
		return nil, err
	}
	s.game = game
	return s, nil
}

// recordSession 在 hook 中调用，此时已经持有锁
func (s *Server) recordSession() {
	rec, ok := s.game.Record()
	if !ok {
		return
	}
	if err := s.store.RecordSession(rec); err != nil {
		log.Printf("Failed to record session %s: %v", rec.SessionID, err)
	}
}

// Reconfigure 新配置只在下一局生效
func (s *Server) Reconfigure(cfg engine.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.SetConfig(cfg)
}

// Snapshot 加锁读取当前状态
func (s *Server) Snapshot() structs.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

// Step 推进一帧，返回本帧的结果
func (s *Server) Step(elapsed time.Duration) structs.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Update(elapsed)
}

// Run 按固定帧率驱动引擎，直到 ctx 结束
func (s *Server) Run(ctx context.Context, frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Step(now.Sub(last))
			last = now
		}
	}
}

// Router 注册所有路由
func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	// 处理玩家改变方向
	router.GET("/update-direction", s.UpdateDirection)
	// 游戏结束后重新开始
	router.GET("/restart", s.Restart)
	// 当前状态，支持 json 和 msgpack
	router.GET("/state", s.State)
	// 渲染函数 返回静态地址
	router.GET("/render-map", s.RenderMap)
	// 历史记录
	router.GET("/sessions", s.Sessions)
	router.Static("/static", s.opts.StaticDir) // 静态文件服务
	return router
}

func (s *Server) UpdateDirection(c *gin.Context) {
	raw := c.Query("direction")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter: direction"})
		return
	}
	d, err := structs.ParseDirection(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	accepted := s.game.SetTargetDirection(d)
	state := s.game.State()
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"accepted": accepted, "state": state.String()})
}

func (s *Server) Restart(c *gin.Context) {
	s.mu.Lock()
	err := s.game.Restart()
	snap := s.game.Snapshot()
	s.mu.Unlock()

	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) State(c *gin.Context) {
	snap := s.Snapshot()
	if c.Query("format") == "msgpack" {
		data, err := msgpack.Marshal(&snap)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to encode state"})
			return
		}
		c.Data(http.StatusOK, "application/x-msgpack", data)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) RenderMap(c *gin.Context) {
	snap := s.Snapshot()
	fileName := filepath.Join(s.opts.StaticDir, "board.png")
	if err := render.SavePNG(snap, s.opts.BlockSize, fileName); err != nil {
		log.Printf("err render board: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to render board"})
		return
	}
	imageUrl := fmt.Sprintf("%s/static/board.png", s.opts.SelfPath)
	c.JSON(http.StatusOK, gin.H{"image_url": imageUrl})
}

func (s *Server) Sessions(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}
	records, err := s.store.RecentSessions(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": records})
}
