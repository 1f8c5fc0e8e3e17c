package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/AcademiaAllegro/telegram-academia-bot/internal/academy"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/listview"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/scope"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/session"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/view"
)

func duenoPago(rol scope.Rol) scope.Dueno[academy.Pago] {
	if rol == scope.Cliente {
		return func(p academy.Pago) (academy.Persona, bool) { return p.Venta.Cliente, true }
	}
	return func(p academy.Pago) (academy.Persona, bool) { return p.Venta.Beneficiario, true }
}

func (d Deps) MostrarPagos(bot *tgbotapi.BotAPI, chatID int64, s *session.Session) {
	if s.Rol == scope.Profesor {
		sendText(bot, chatID, "🚫 Esta sección no está disponible para profesores.")
		return
	}
	d.mostrar(bot, chatID, s, func(ctx context.Context) (*listview.Lista, error) {
		pagos, err := d.API.Pagos(ctx, s.Token)
		if err != nil {
			return nil, err
		}
		propios := scope.Filtrar(pagos, s.Usuario, s.Rol, duenoPago(s.Rol))
		cols := colsPagos(s.Rol)
		return &listview.Lista{
			Titulo:   "Pagos",
			Cols:     cols,
			Filas:    filas(propios, cols, filaPago),
			MsgVacio: "No hay pagos registrados",
		}, nil
	})
}

func colsPagos(rol scope.Rol) []view.Columna {
	cols := []view.Columna{{Clave: "codigo", Etiqueta: "Código venta"}}
	if rol != scope.Beneficiario {
		cols = append(cols, view.Columna{Clave: "beneficiario", Etiqueta: "Beneficiario"})
	}
	return append(cols,
		view.Columna{Clave: "monto", Etiqueta: "Monto"},
		view.Columna{Clave: "metodo", Etiqueta: "Método"},
		view.Columna{Clave: "fecha", Etiqueta: "Fecha"},
		view.Columna{Clave: "estado", Etiqueta: "Estado"},
		view.Columna{Clave: "observaciones", Etiqueta: "Observaciones"},
	)
}

func filaPago(p academy.Pago) map[string]any {
	return map[string]any{
		"codigo":        p.Venta.Codigo,
		"beneficiario":  p.Venta.Beneficiario.NombreCompleto(),
		"monto":         view.Moneda(p.Monto),
		"metodo":        p.Metodo,
		"fecha":         p.FechaPago,
		"estado":        p.Estado,
		"observaciones": p.Observaciones,
	}
}
