// 蛇头、蛇身和食物的贴图缓存
package memimg

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fsnotify/fsnotify"
)

// 贴图名字就是去掉扩展名的文件名
const (
	SpriteHead  = "head"
	SpriteTail  = "tail"
	SpriteApple = "apple"
)

var (
	sprites      = make(map[string]image.Image)
	spritesMutex sync.RWMutex
)

// LoadSprites 读取目录下所有图片并缩放到 blockSize，替换现有缓存。
// 目录不存在时缓存为空。
func LoadSprites(directory string, blockSize int) error {
	loaded := make(map[string]image.Image)
	err := filepath.Walk(directory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipDir
			}
			return err
		}
		if info.IsDir() || !isImage(path) {
			return nil
		}
		img, err := loadImage(path, blockSize)
		if err != nil {
			log.Printf("skip sprite %s: %v", path, err)
			return nil
		}
		loaded[spriteName(path)] = img
		return nil
	})
	if err != nil {
		return err
	}
	spritesMutex.Lock()
	sprites = loaded
	spritesMutex.Unlock()
	return nil
}

func isImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

func spriteName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func loadImage(path string, blockSize int) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return imaging.Resize(img, blockSize, blockSize, imaging.Lanczos), nil
}

// WatchSprites 检测目录变化并热更新到内存，直到 done 关闭
func WatchSprites(directory string, blockSize int, done <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(directory); err != nil {
		return err
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isImage(event.Name) {
				continue
			}
			switch {
			case event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create:
				img, err := loadImage(event.Name, blockSize)
				if err == nil {
					spritesMutex.Lock()
					sprites[spriteName(event.Name)] = img
					spritesMutex.Unlock()
				}
			case event.Op&fsnotify.Remove == fsnotify.Remove || event.Op&fsnotify.Rename == fsnotify.Rename:
				spritesMutex.Lock()
				delete(sprites, spriteName(event.Name))
				spritesMutex.Unlock()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Println("sprite watcher error:", err)
		case <-done:
			return nil
		}
	}
}

// GetSprite 从内存中获取贴图
func GetSprite(name string) (image.Image, bool) {
	spritesMutex.RLock()
	img, exists := sprites[name]
	spritesMutex.RUnlock()
	return img, exists
}
