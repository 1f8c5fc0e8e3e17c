// Package auth maneja el inicio de sesión contra el backend y el cambio de
// rol cuando el usuario tiene más de uno.
package auth

import (
	"context"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/AcademiaAllegro/telegram-academia-bot/internal/academy"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/api"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/bot/menu"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/bot/shared/fsmutil"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/scope"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/session"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/tg"
)

type Deps struct {
	API      *api.Client
	Sessions *session.Store
	Log      *zap.Logger
}

type paso int

const (
	pasoCorreo paso = iota
	pasoContrasena
)

type loginState struct {
	paso   paso
	correo string
}

var login = struct {
	mu sync.Mutex
	m  map[int64]*loginState
}{m: make(map[int64]*loginState)}

// StartLogin arranca el flujo correo → contraseña.
func StartLogin(bot *tgbotapi.BotAPI, chatID int64) {
	login.mu.Lock()
	login.m[chatID] = &loginState{paso: pasoCorreo}
	login.mu.Unlock()

	msg := tgbotapi.NewMessage(chatID, "🎵 Bienvenido a Academia Allegro.\n\nEscribe tu correo para iniciar sesión:")
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	_, _ = tg.Send(bot, msg)
}

// Activo indica si el chat está a mitad del flujo de login.
func Activo(chatID int64) bool {
	login.mu.Lock()
	defer login.mu.Unlock()
	_, ok := login.m[chatID]
	return ok
}

func abandonar(chatID int64) {
	login.mu.Lock()
	delete(login.m, chatID)
	login.mu.Unlock()
}

// HandleTexto avanza el flujo con el texto entrante. Devuelve false si el
// chat no está en login.
func (d Deps) HandleTexto(ctx context.Context, bot *tgbotapi.BotAPI, chatID int64, texto string) bool {
	login.mu.Lock()
	st, ok := login.m[chatID]
	login.mu.Unlock()
	if !ok {
		return false
	}

	if fsmutil.IsCancelText(texto) {
		abandonar(chatID)
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, "Inicio de sesión cancelado. Usa /start para intentar de nuevo."))
		return true
	}

	switch st.paso {
	case pasoCorreo:
		correo := strings.TrimSpace(texto)
		if !strings.Contains(correo, "@") {
			_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, "⚠️ Eso no parece un correo. Intenta de nuevo:"))
			return true
		}
		st.correo = correo
		st.paso = pasoContrasena
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, "🔑 Ahora escribe tu contraseña:"))
	case pasoContrasena:
		d.autenticar(ctx, bot, chatID, st.correo, texto)
	}
	return true
}

func (d Deps) autenticar(ctx context.Context, bot *tgbotapi.BotAPI, chatID int64, correo, contrasena string) {
	resp, err := d.API.Login(ctx, correo, contrasena)
	if err != nil {
		d.Log.Warn("login fallido", zap.Int64("chat_id", chatID), zap.Error(err))
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, "❌ No se pudo iniciar sesión. Revisa tus credenciales y escribe tu correo de nuevo:"))
		login.mu.Lock()
		if st, ok := login.m[chatID]; ok {
			st.paso = pasoCorreo
		}
		login.mu.Unlock()
		return
	}
	if !resp.Success || resp.Token == "" {
		texto := resp.Message
		if texto == "" {
			texto = "credenciales inválidas"
		}
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, "❌ "+texto+". Escribe tu correo de nuevo:"))
		login.mu.Lock()
		if st, ok := login.m[chatID]; ok {
			st.paso = pasoCorreo
		}
		login.mu.Unlock()
		return
	}

	s := sessionDe(chatID, resp)
	if err := d.Sessions.Put(ctx, s); err != nil {
		d.Log.Error("guardando sesión", zap.Int64("chat_id", chatID), zap.Error(err))
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, "⚠️ Error interno guardando la sesión. Intenta de nuevo con /start."))
		abandonar(chatID)
		return
	}
	abandonar(chatID)

	msg := tgbotapi.NewMessage(chatID, "✅ Hola, "+s.Usuario.NombreCompleto()+". Sesión iniciada como "+string(s.Rol)+".")
	msg.ReplyMarkup = menu.GetRoleMenu(s.Rol, s.TieneVariosRoles())
	_, _ = tg.Send(bot, msg)
}

// sessionDe arma la sesión a partir de la respuesta de /login o de
// /login/cambiar-rol, que comparten forma.
func sessionDe(chatID int64, resp *api.LoginResponse) *session.Session {
	usuario := academy.PersonaDe(resp.Usuario)
	s := &session.Session{
		ChatID:  chatID,
		Token:   resp.Token,
		Usuario: usuario,
	}
	if rol, ok := resp.Usuario["rol"].(map[string]any); ok {
		s.Rol = scope.RolDe(academy.RolDe(rol).Nombre)
	}
	if todos, ok := resp.Usuario["todosLosRoles"].([]any); ok {
		for _, r := range todos {
			if m, ok := r.(map[string]any); ok {
				s.Roles = append(s.Roles, academy.RolDe(m))
			}
		}
	}
	return s
}
