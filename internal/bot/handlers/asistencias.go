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

func duenoAsistencia(rol scope.Rol) scope.Dueno[academy.Asistencia] {
	switch rol {
	case scope.Profesor:
		return func(a academy.Asistencia) (academy.Persona, bool) { return a.Clase.Profesor, true }
	case scope.Cliente:
		return func(a academy.Asistencia) (academy.Persona, bool) { return a.Venta.Cliente, true }
	default:
		return func(a academy.Asistencia) (academy.Persona, bool) { return a.Venta.Beneficiario, true }
	}
}

func (d Deps) MostrarAsistencias(bot *tgbotapi.BotAPI, chatID int64, s *session.Session) {
	d.mostrar(bot, chatID, s, func(ctx context.Context) (*listview.Lista, error) {
		asistencias, err := d.API.Asistencias(ctx, s.Token)
		if err != nil {
			return nil, err
		}
		propias := scope.Filtrar(asistencias, s.Usuario, s.Rol, duenoAsistencia(s.Rol))
		cols := colsAsistencias(s.Rol)
		return &listview.Lista{
			Titulo:   "Asistencias",
			Cols:     cols,
			Filas:    filas(propias, cols, filaAsistencia),
			MsgVacio: "No hay asistencias registradas",
		}, nil
	})
}

func colsAsistencias(rol scope.Rol) []view.Columna {
	var cols []view.Columna
	if rol != scope.Beneficiario {
		cols = append(cols, view.Columna{Clave: "beneficiario", Etiqueta: "Beneficiario"})
	}
	cols = append(cols, view.Columna{Clave: "curso", Etiqueta: "Curso"})
	if rol != scope.Profesor {
		cols = append(cols, view.Columna{Clave: "profesor", Etiqueta: "Profesor"})
	}
	return append(cols,
		view.Columna{Clave: "fecha", Etiqueta: "Fecha"},
		view.Columna{Clave: "estado", Etiqueta: "Estado"},
	)
}

func filaAsistencia(a academy.Asistencia) map[string]any {
	curso := a.Venta.Curso
	if curso == "" {
		curso = a.Clase.Curso
	}
	return map[string]any{
		"beneficiario": a.Venta.Beneficiario.NombreCompleto(),
		"curso":        curso,
		"profesor":     a.Clase.Profesor.NombreCompleto(),
		"fecha":        a.CreadaEn,
		"estado":       view.EstadoAsistencia(a.Estado),
	}
}
