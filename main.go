package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hoshinonyaruko/gridsnake/api"
	"github.com/hoshinonyaruko/gridsnake/config"
	"github.com/hoshinonyaruko/gridsnake/memimg"
	"github.com/hoshinonyaruko/gridsnake/sqlite"
)

const (
	configPath = "./config.json"
	frameRate  = 16 * time.Millisecond
)

func main() {
	// Initialize the configuration
	cfg := config.LoadConfig(configPath)
	EnsureFoldersExist(cfg.Sprites)
	gameCfg, err := cfg.Game()
	if err != nil {
		log.Fatalf("Invalid game configuration: %v", err)
	}

	// 载入贴图到内存
	if err := memimg.LoadSprites(cfg.Sprites, cfg.Blocksize); err != nil {
		log.Printf("Failed to load sprites: %v", err)
	}

	store, err := sqlite.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database %s: %v", cfg.Database, err)
	}

	server, err := api.NewServer(gameCfg, store, api.Options{
		BlockSize: cfg.Blocksize,
		StaticDir: "./static",
		SelfPath:  cfg.SelfPath,
	})
	if err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 检测并热更新到内存
	go func() {
		if err := memimg.WatchSprites(cfg.Sprites, cfg.Blocksize, ctx.Done()); err != nil {
			log.Printf("sprite watcher stopped: %v", err)
		}
	}()
	// 配置变化只影响下一局
	go func() {
		err := config.Watch(configPath, func(next *config.AppConfig) {
			gc, err := next.Game()
			if err != nil {
				log.Printf("ignored config change: %v", err)
				return
			}
			if err := server.Reconfigure(gc); err != nil {
				log.Printf("ignored config change: %v", err)
			}
		}, ctx.Done())
		if err != nil {
			log.Printf("config watcher stopped: %v", err)
		}
	}()
	go server.Run(ctx, frameRate)

	router := server.Router()
	go func() {
		<-ctx.Done()
		log.Printf("shutting down")
		store.Close()
		os.Exit(0)
	}()
	// 从配置单例读取端口 监听
	if err := router.Run(":" + config.GetConfigValue("port").(string)); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// EnsureFoldersExist 检查并创建必需的文件夹
func EnsureFoldersExist(sprites string) {
	folders := []string{sprites, "static"}

	for _, folder := range folders {
		if _, err := os.Stat(folder); os.IsNotExist(err) {
			// 文件夹不存在，尝试创建它
			err := os.MkdirAll(folder, 0755) // 使用0755权限以确保读写权限
			if err != nil {
				// 如果创建失败，则记录错误并可能退出程序
				log.Fatalf("Failed to create %s directory: %s", folder, err)
			}
			log.Printf("Created %s directory", folder)
		} else {
			// 文件夹已存在
			log.Printf("%s directory already exists", folder)
		}
	}
}
