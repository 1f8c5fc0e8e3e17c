package app

import (
	"context"
	"errors"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/AcademiaAllegro/telegram-academia-bot/internal/api"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/bot/auth"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/bot/handlers"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/bot/menu"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/ctxutil"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/listview"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/session"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/tg"
)

// Deps reúne todo lo que el dispatcher necesita para atender un update.
type Deps struct {
	Bot      *tgbotapi.BotAPI
	API      *api.Client
	Sessions *session.Store
	Lists    *listview.Manager
	Log      *zap.Logger
	Loc      *time.Location
	Limiter  *ChatLimiter
}

func (d *Deps) auth() auth.Deps {
	return auth.Deps{API: d.API, Sessions: d.Sessions, Log: d.Log}
}

// Handlers expone las dependencias de pantalla; cmd/bot lo usa para
// enganchar la exportación de listas.
func (d *Deps) Handlers() handlers.Deps {
	return handlers.Deps{API: d.API, Sessions: d.Sessions, Lists: d.Lists, Log: d.Log, Loc: d.Loc}
}

func (d *Deps) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	switch {
	case upd.Message != nil:
		d.handleMessage(ctx, upd.Message)
	case upd.CallbackQuery != nil:
		d.handleCallback(ctx, upd.CallbackQuery)
	}
}

// sesion carga la sesión del chat; nil sin error significa "no autenticado".
func (d *Deps) sesion(ctx context.Context, chatID int64) (*session.Session, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	s, err := d.Sessions.Get(ctx, chatID)
	if errors.Is(err, session.ErrNoSession) {
		return nil, nil
	}
	return s, err
}

func (d *Deps) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	unlock := d.Limiter.lock(chatID)
	defer unlock()

	ctx = ctxutil.WithChatID(ctx, chatID)
	texto := msg.Text

	// flujos que consumen texto: primero login, luego búsqueda de la lista
	if d.auth().HandleTexto(ctx, d.Bot, chatID, texto) {
		return
	}
	if d.Lists.HandleTexto(d.Bot, chatID, texto) {
		return
	}

	s, err := d.sesion(ctx, chatID)
	if err != nil {
		d.Log.Error("cargando sesión", zap.Int64("chat_id", chatID), zap.Error(err))
		_, _ = tg.Send(d.Bot, tgbotapi.NewMessage(chatID, "⚠️ Error interno. Intenta de nuevo."))
		return
	}

	if msg.IsCommand() {
		d.handleCommand(ctx, chatID, msg.Command(), s)
		return
	}
	if s == nil {
		auth.StartLogin(d.Bot, chatID)
		return
	}
	if err := d.Sessions.Touch(ctx, chatID); err != nil {
		d.Log.Warn("refrescando sesión", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	d.routeMenu(ctx, chatID, texto, s)
}

func (d *Deps) handleCommand(ctx context.Context, chatID int64, cmd string, s *session.Session) {
	switch cmd {
	case "start":
		if s == nil {
			auth.StartLogin(d.Bot, chatID)
			return
		}
		msg := tgbotapi.NewMessage(chatID, "🎵 Hola de nuevo, "+s.Usuario.NombreCompleto()+". Elige una opción:")
		msg.ReplyMarkup = menu.GetRoleMenu(s.Rol, s.TieneVariosRoles())
		_, _ = tg.Send(d.Bot, msg)
	case "logout":
		if s != nil {
			d.Lists.Cerrar(d.Bot, chatID)
			d.auth().Logout(ctx, d.Bot, chatID)
		}
	case "help":
		_, _ = tg.Send(d.Bot, tgbotapi.NewMessage(chatID,
			"Usa los botones del menú para consultar la academia.\n/start — menú principal\n/logout — cerrar sesión"))
	default:
		_, _ = tg.Send(d.Bot, tgbotapi.NewMessage(chatID, "No conozco ese comando. Prueba /help."))
	}
}

func (d *Deps) routeMenu(ctx context.Context, chatID int64, texto string, s *session.Session) {
	h := d.Handlers()
	switch texto {
	case menu.BtnVentas:
		h.MostrarVentas(d.Bot, chatID, s)
	case menu.BtnPagos:
		h.MostrarPagos(d.Bot, chatID, s)
	case menu.BtnAsistencias:
		h.MostrarAsistencias(d.Bot, chatID, s)
	case menu.BtnClases:
		h.MostrarClases(d.Bot, chatID, s)
	case menu.BtnProfHorarios:
		h.MostrarHorariosProfesores(d.Bot, chatID, s)
	case menu.BtnCursos:
		h.MostrarCursos(d.Bot, chatID, s)
	case menu.BtnMatriculas:
		h.MostrarMatriculas(d.Bot, chatID, s)
	case menu.BtnBeneficiarios:
		h.MostrarBeneficiarios(d.Bot, chatID, s)
	case menu.BtnClientes:
		h.MostrarClientes(d.Bot, chatID, s)
	case menu.BtnProfesores:
		h.MostrarProfesores(d.Bot, chatID, s)
	case menu.BtnUsuarios:
		h.MostrarUsuarios(d.Bot, chatID, s)
	case menu.BtnAulas:
		h.MostrarAulas(d.Bot, chatID, s)
	case menu.BtnRoles:
		h.MostrarRoles(d.Bot, chatID, s)
	case menu.BtnPerfil:
		h.MostrarPerfil(d.Bot, chatID, s)
	case menu.BtnCambiarRol:
		auth.MostrarCambioRol(d.Bot, chatID, s)
	case menu.BtnSalir:
		d.Lists.Cerrar(d.Bot, chatID)
		d.auth().Logout(ctx, d.Bot, chatID)
	default:
		msg := tgbotapi.NewMessage(chatID, "No te entendí. Usa el menú 👇")
		msg.ReplyMarkup = menu.GetRoleMenu(s.Rol, s.TieneVariosRoles())
		_, _ = tg.Send(d.Bot, msg)
	}
}

func (d *Deps) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	unlock := d.Limiter.lock(chatID)
	defer unlock()

	ctx = ctxutil.WithChatID(ctx, chatID)

	// sin sesión no se atiende ningún botón: la lista que haya quedado en
	// el chat se cierra para que no siga paginando ni exportando
	s, err := d.sesion(ctx, chatID)
	if err != nil || s == nil {
		d.Lists.Cerrar(d.Bot, chatID)
		_, _ = tg.Request(d.Bot, tgbotapi.NewCallback(cb.ID, "Sesión expirada. Usa /start."))
		return
	}
	if err := d.Sessions.Touch(ctx, chatID); err != nil {
		d.Log.Warn("refrescando sesión", zap.Int64("chat_id", chatID), zap.Error(err))
	}

	if d.Lists.HandleCallback(d.Bot, cb) {
		return
	}
	if d.auth().HandleCallback(ctx, d.Bot, cb, s) {
		return
	}
	if d.Handlers().HandleVentasCallback(d.Bot, cb, s) {
		return
	}
	_, _ = tg.Request(d.Bot, tgbotapi.NewCallback(cb.ID, ""))
}
