package web

import "log"

func logStartup(msg string, args ...any) {
	log.Printf("[STARTUP] "+msg, args...)
}

func logShutdown(msg string, args ...any) {
	log.Printf("[SHUTDOWN] "+msg, args...)
}

func logHTTP(msg string, args ...any) {
	log.Printf("[HTTP] "+msg, args...)
}

func logError(msg string, args ...any) {
	log.Printf("[ERROR] "+msg, args...)
}
