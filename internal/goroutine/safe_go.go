package goroutine

import (
	"log"
	"runtime/debug"

	"github.com/LucasFJU/portfolio-flow-ai/internal/logger"
)

// SafeGo запускает fn в горутине и перехватывает panic, чтобы фоновая
// запись (аналитика, отправка в ws) не уронила процесс.
func SafeGo(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if logger.Log != nil {
					logger.Log.Errorf("panic в фоновой горутине: %v\n%s", r, debug.Stack())
					return
				}
				log.Printf("panic в фоновой горутине: %v\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}
