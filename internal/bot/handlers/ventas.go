package handlers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/AcademiaAllegro/telegram-academia-bot/internal/academy"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/bot/shared/fsmutil"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/listview"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/metrics"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/scope"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/session"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/tg"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/view"
)

// La pantalla de ventas abre con un resumen del período (mes/año): cuántas
// ventas vigentes de cursos y de matrículas hubo y por cuánto, con botones
// para moverse de mes y para abrir cada detalle como lista.

// ventasState guarda el período y las ventas del chat. El mutex cubre mes,
// año y msgID: cada callback llega en su propia goroutine.
type ventasState struct {
	mu     sync.Mutex
	anio   int
	mes    time.Month
	msgID  int             // mensaje del resumen publicado
	ventas []academy.Venta // ya recortadas por rol
}

var ventas = struct {
	mu sync.Mutex
	m  map[int64]*ventasState
}{m: make(map[int64]*ventasState)}

var meses = [...]string{"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"}

func duenoVenta(rol scope.Rol) scope.Dueno[academy.Venta] {
	if rol == scope.Cliente {
		return func(v academy.Venta) (academy.Persona, bool) { return v.Cliente, true }
	}
	return func(v academy.Venta) (academy.Persona, bool) { return v.Beneficiario, true }
}

// MostrarVentas trae las ventas del rol y pinta el resumen del mes actual.
// Usa el mismo token de carga que las pantallas de lista: la respuesta de
// un toque anterior llega con token superado y se descarta.
func (d Deps) MostrarVentas(bot *tgbotapi.BotAPI, chatID int64, s *session.Session) {
	if s.Rol == scope.Profesor {
		sendText(bot, chatID, "🚫 Esta sección no está disponible para profesores.")
		return
	}
	token := d.Lists.NuevaCarga(chatID)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		todas, err := d.API.Ventas(ctx, s.Token)
		if err != nil {
			d.Log.Error("cargando ventas", zap.Int64("chat_id", chatID), zap.Error(err))
			if d.Lists.Vigente(chatID, token) {
				sendText(bot, chatID, "⚠️ No se pudieron cargar las ventas. Intenta de nuevo.")
			}
			return
		}
		propias := scope.Filtrar(todas, s.Usuario, s.Rol, duenoVenta(s.Rol))
		if !d.Lists.Vigente(chatID, token) {
			metrics.ListCargasDescartadas.Inc()
			return
		}

		ahora := time.Now().In(d.Loc)
		st := &ventasState{anio: ahora.Year(), mes: ahora.Month(), ventas: propias}
		msg := tgbotapi.NewMessage(chatID, resumenVentas(st))
		msg.ReplyMarkup = tecladoVentas()
		sent, err := tg.Send(bot, msg)
		if err != nil {
			return
		}
		st.msgID = sent.MessageID

		ventas.mu.Lock()
		viejo := ventas.m[chatID]
		ventas.m[chatID] = st
		ventas.mu.Unlock()

		// el resumen anterior queda sin botones para que no siga vivo
		if viejo != nil {
			viejo.mu.Lock()
			msgID := viejo.msgID
			viejo.mu.Unlock()
			if msgID != 0 {
				fsmutil.DisableMarkup(bot, chatID, msgID)
			}
		}
	}()
}

// HandleVentasCallback procesa los botones vts_*. Devuelve false si el
// callback no es de esta pantalla.
func (d Deps) HandleVentasCallback(bot *tgbotapi.BotAPI, cb *tgbotapi.CallbackQuery, s *session.Session) bool {
	if cb.Data == "" || !strings.HasPrefix(cb.Data, "vts_") {
		return false
	}
	chatID := cb.Message.Chat.ID
	defer func() { _, _ = tg.Request(bot, tgbotapi.NewCallback(cb.ID, "")) }()

	ventas.mu.Lock()
	st := ventas.m[chatID]
	ventas.mu.Unlock()
	if st == nil {
		sendText(bot, chatID, "La pantalla de ventas expiró. Ábrela de nuevo desde el menú.")
		return true
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	switch cb.Data {
	case "vts_prev":
		st.mes--
		if st.mes < time.January {
			st.mes = time.December
			st.anio--
		}
	case "vts_next":
		st.mes++
		if st.mes > time.December {
			st.mes = time.January
			st.anio++
		}
	case "vts_cursos":
		d.listaVentas(bot, chatID, s, st, "CU-", "Venta de cursos")
		return true
	case "vts_mats":
		d.listaVentas(bot, chatID, s, st, "MA-", "Venta de matrículas")
		return true
	default:
		return true
	}

	edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, resumenVentas(st))
	teclado := tecladoVentas()
	edit.ReplyMarkup = &teclado
	_, _ = tg.Send(bot, edit)
	return true
}

func (d Deps) listaVentas(bot *tgbotapi.BotAPI, chatID int64, s *session.Session, st *ventasState, prefijo, titulo string) {
	cols := colsVentas(s.Rol, prefijo)
	del := ventasDelPeriodo(st, prefijo)
	l := &listview.Lista{
		Titulo:   fmt.Sprintf("%s · %s %d", titulo, meses[st.mes-1], st.anio),
		Cols:     cols,
		Filas:    filas(del, cols, filaVenta),
		MsgVacio: "No hay ventas en este período",
	}
	token := d.Lists.NuevaCarga(chatID)
	l.Exportable = s.Rol == scope.Administrador
	d.Lists.Mostrar(bot, chatID, token, l)
}

// ventasDelPeriodo recorta por prefijo de código, estado vigente y mes.
// Una venta sin fecha reconocible queda fuera del resumen.
func ventasDelPeriodo(st *ventasState, prefijo string) []academy.Venta {
	out := make([]academy.Venta, 0, len(st.ventas))
	for _, v := range st.ventas {
		if !strings.HasPrefix(v.Codigo, prefijo) || v.Estado != "vigente" {
			continue
		}
		if v.Fecha == nil || v.Fecha.Year() != st.anio || v.Fecha.Month() != st.mes {
			continue
		}
		out = append(out, v)
	}
	return out
}

func resumenVentas(st *ventasState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💰 Ventas · %s %d\n\n", meses[st.mes-1], st.anio)
	for _, g := range []struct {
		prefijo, etiqueta string
	}{{"CU-", "🎹 Cursos"}, {"MA-", "📚 Matrículas"}} {
		del := ventasDelPeriodo(st, g.prefijo)
		var total float64
		for _, v := range del {
			if v.ValorTotal != nil {
				total += *v.ValorTotal
			}
		}
		fmt.Fprintf(&b, "%s: %d ventas · %s\n", g.etiqueta, len(del), view.Moneda(&total))
	}
	return b.String()
}

func tecladoVentas() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Mes anterior", "vts_prev"),
			tgbotapi.NewInlineKeyboardButtonData("Mes siguiente ➡️", "vts_next"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎹 Ver cursos", "vts_cursos"),
			tgbotapi.NewInlineKeyboardButtonData("📚 Ver matrículas", "vts_mats"),
		),
	)
}

func colsVentas(rol scope.Rol, prefijo string) []view.Columna {
	cols := []view.Columna{{Clave: "codigo", Etiqueta: "Código"}}
	if rol != scope.Beneficiario {
		cols = append(cols, view.Columna{Clave: "beneficiario", Etiqueta: "Beneficiario"})
	}
	if prefijo == "MA-" {
		cols = append(cols, view.Columna{Clave: "matricula", Etiqueta: "Matrícula"})
	} else {
		cols = append(cols, view.Columna{Clave: "curso", Etiqueta: "Curso"})
	}
	return append(cols,
		view.Columna{Clave: "valor", Etiqueta: "Valor"},
		view.Columna{Clave: "fecha", Etiqueta: "Fecha inicio"},
		view.Columna{Clave: "estado", Etiqueta: "Estado"},
	)
}

func filaVenta(v academy.Venta) map[string]any {
	return map[string]any{
		"codigo":       v.Codigo,
		"beneficiario": v.Beneficiario.NombreCompleto(),
		"curso":        v.Curso,
		"matricula":    v.Matricula,
		"valor":        view.Moneda(v.ValorTotal),
		"fecha":        v.Fecha,
		"estado":       v.Estado,
	}
}
