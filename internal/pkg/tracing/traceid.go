// Package tracing предоставляет OpenTelemetry трейсинг и trace ID для корреляции логов.
//
// Формат trace ID: 32-символьный hex (16 байт), совместимый с W3C Trace Context:
//
//	"a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6"
package tracing

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

var fallbackCounter atomic.Uint64

// GenerateTraceID генерирует trace ID через crypto/rand.
// При ошибке crypto/rand возвращает ID из timestamp и счётчика.
func GenerateTraceID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fallbackTraceID()
	}
	return hex.EncodeToString(b)
}

// fallbackTraceID: %016x от uint64 (16 символов), в сумме 32.
func fallbackTraceID() string {
	counter := fallbackCounter.Add(1)
	timestamp := uint64(time.Now().UnixNano())
	return fmt.Sprintf("%016x%016x", timestamp, counter)
}
