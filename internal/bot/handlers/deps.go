// Package handlers arma cada pantalla del bot: trae la colección del
// backend, la recorta según el rol, la da forma y se la entrega a la lista.
package handlers

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/AcademiaAllegro/telegram-academia-bot/internal/api"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/listview"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/metrics"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/scope"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/session"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/tg"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/view"
)

type Deps struct {
	API      *api.Client
	Sessions *session.Store
	Lists    *listview.Manager
	Log      *zap.Logger
	Loc      *time.Location
}

func sendText(bot *tgbotapi.BotAPI, chatID int64, texto string) {
	_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, texto))
}

// mostrar corre la carga de una pantalla de lista. El token se pide ANTES de
// salir a la red; si mientras tanto el usuario abre otra pantalla, esta
// respuesta se descarta en silencio.
func (d Deps) mostrar(bot *tgbotapi.BotAPI, chatID int64, s *session.Session, build func(ctx context.Context) (*listview.Lista, error)) {
	token := d.Lists.NuevaCarga(chatID)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		l, err := build(ctx)
		if err != nil {
			metrics.HandlerErrors.Inc()
			d.Log.Error("cargando pantalla", zap.Int64("chat_id", chatID), zap.Error(err))
			if d.Lists.Vigente(chatID, token) {
				sendText(bot, chatID, "⚠️ No se pudieron cargar los datos. Intenta de nuevo.")
			}
			return
		}
		l.Exportable = s.Rol == scope.Administrador
		d.Lists.Mostrar(bot, chatID, token, l)
	}()
}

// soloAdmin corta las pantallas administrativas para los demás roles.
func soloAdmin(bot *tgbotapi.BotAPI, chatID int64, s *session.Session) bool {
	if s.Rol != scope.Administrador {
		sendText(bot, chatID, "🚫 Esta sección es solo para administradores.")
		return false
	}
	return true
}

// filas aplica Formar a cada registro ya convertido en mapa de valores.
func filas[T any](records []T, cols []view.Columna, vals func(T) map[string]any) []view.Fila {
	out := make([]view.Fila, 0, len(records))
	for _, r := range records {
		out = append(out, view.Formar(vals(r), cols))
	}
	return out
}
