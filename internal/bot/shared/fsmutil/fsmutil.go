package fsmutil

import (
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/AcademiaAllegro/telegram-academia-bot/internal/metrics"
)

// pending — protección simple contra reprocesar acciones "pesadas".
// Clave: chatID; valor: clave del contexto (por ejemplo "export" o "login").
var pending = struct {
	mu sync.Mutex
	m  map[int64]string
}{
	m: make(map[int64]string),
}

// SetPending marca el chat como "en proceso" para la clave key.
// Devuelve false si ya hay algo en proceso.
func SetPending(chatID int64, key string) bool {
	pending.mu.Lock()
	defer pending.mu.Unlock()

	if _, ok := pending.m[chatID]; ok {
		return false
	}
	pending.m[chatID] = key
	return true
}

// ClearPending quita la marca si la clave coincide.
func ClearPending(chatID int64, key string) {
	pending.mu.Lock()
	defer pending.mu.Unlock()

	if cur, ok := pending.m[chatID]; ok && cur == key {
		delete(pending.m, chatID)
	}
}

// DisableMarkup apaga el teclado inline de un mensaje (teclado de un solo uso).
// Se llama apenas se procesa el callback para evitar clics repetidos.
func DisableMarkup(bot *tgbotapi.BotAPI, chatID int64, messageID int) {
	empty := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: make([][]tgbotapi.InlineKeyboardButton, 0)}
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, empty)
	if _, err := bot.Send(edit); err != nil {
		metrics.HandlerErrors.Inc()
	}
}

// BackCancelRow — fila lista con botones "Atrás" y "Cancelar".
func BackCancelRow(backData, cancelData string) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Atrás", backData),
		tgbotapi.NewInlineKeyboardButtonData("❌ Cancelar", cancelData),
	)
}

// IsCancelText — cancelación "por texto" en pasos donde el usuario escribe.
// Aceptamos: "cancelar", "/cancel", "cancel" (sin distinguir mayúsculas).
func IsCancelText(s string) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	return s == "cancelar" || s == "/cancel" || s == "cancel"
}
