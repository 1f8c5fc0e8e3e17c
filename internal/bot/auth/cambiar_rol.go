package auth

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/AcademiaAllegro/telegram-academia-bot/internal/bot/menu"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/bot/shared/fsmutil"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/session"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/tg"
)

const prefijoRol = "rol_"

// MostrarCambioRol ofrece los roles del usuario como botones inline.
func MostrarCambioRol(bot *tgbotapi.BotAPI, chatID int64, s *session.Session) {
	if !s.TieneVariosRoles() {
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, "Solo tienes un rol asignado."))
		return
	}
	var filas [][]tgbotapi.InlineKeyboardButton
	for _, r := range s.Roles {
		etiqueta := r.Nombre
		if strings.EqualFold(r.Nombre, string(s.Rol)) {
			etiqueta = "✅ " + etiqueta
		}
		filas = append(filas, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(etiqueta, prefijoRol+r.ID),
		))
	}
	msg := tgbotapi.NewMessage(chatID, "🔄 Elige el rol con el que quieres trabajar:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(filas...)
	_, _ = tg.Send(bot, msg)
}

// HandleCallback procesa los botones rol_*. Devuelve false si el callback no
// es de este flujo.
func (d Deps) HandleCallback(ctx context.Context, bot *tgbotapi.BotAPI, cb *tgbotapi.CallbackQuery, s *session.Session) bool {
	if cb.Data == "" || !strings.HasPrefix(cb.Data, prefijoRol) {
		return false
	}
	chatID := cb.Message.Chat.ID
	defer func() { _, _ = tg.Request(bot, tgbotapi.NewCallback(cb.ID, "")) }()
	fsmutil.DisableMarkup(bot, chatID, cb.Message.MessageID)

	rolID := strings.TrimPrefix(cb.Data, prefijoRol)
	var nombre string
	for _, r := range s.Roles {
		if r.ID == rolID {
			nombre = r.Nombre
			break
		}
	}
	if nombre == "" {
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, "⚠️ Ese rol ya no está entre los tuyos."))
		return true
	}

	resp, err := d.API.CambiarRol(ctx, s.Token, s.Usuario.ID, rolID)
	if err != nil || !resp.Success || resp.Token == "" {
		d.Log.Warn("cambio de rol fallido", zap.Int64("chat_id", chatID), zap.String("rol_id", rolID), zap.Error(err))
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, "❌ No se pudo cambiar el rol. Intenta de nuevo."))
		return true
	}

	// el backend entrega token e identidad nuevos; se reemplaza todo junto
	nueva := sessionDe(chatID, resp)
	if len(nueva.Roles) == 0 {
		nueva.Roles = s.Roles
	}
	if err := d.Sessions.Put(ctx, nueva); err != nil {
		d.Log.Error("guardando sesión tras cambio de rol", zap.Int64("chat_id", chatID), zap.Error(err))
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, "⚠️ Error interno guardando la sesión."))
		return true
	}

	msg := tgbotapi.NewMessage(chatID, "✅ Ahora trabajas como "+string(nueva.Rol)+".")
	msg.ReplyMarkup = menu.GetRoleMenu(nueva.Rol, nueva.TieneVariosRoles())
	_, _ = tg.Send(bot, msg)
	return true
}

// Logout cierra la sesión del chat y quita el menú.
func (d Deps) Logout(ctx context.Context, bot *tgbotapi.BotAPI, chatID int64) {
	if err := d.Sessions.Delete(ctx, chatID); err != nil {
		d.Log.Error("cerrando sesión", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	msg := tgbotapi.NewMessage(chatID, "👋 Sesión cerrada. Usa /start cuando quieras volver.")
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	_, _ = tg.Send(bot, msg)
}
