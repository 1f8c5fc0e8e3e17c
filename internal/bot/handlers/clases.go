package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/AcademiaAllegro/telegram-academia-bot/internal/academy"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/listview"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/scope"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/session"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/view"
)

// MostrarClases lista la programación de clases. El profesor ve sus
// franjas; el beneficiario, las clases donde figura inscrito.
func (d Deps) MostrarClases(bot *tgbotapi.BotAPI, chatID int64, s *session.Session) {
	if s.Rol == scope.Cliente {
		sendText(bot, chatID, "🚫 Esta sección no está disponible para clientes.")
		return
	}
	d.mostrar(bot, chatID, s, func(ctx context.Context) (*listview.Lista, error) {
		clases, err := d.API.ProgramacionesDeClase(ctx, s.Token)
		if err != nil {
			return nil, err
		}
		propias := clasesDelRol(clases, s)
		cols := colsClases(s.Rol)
		return &listview.Lista{
			Titulo:   "Programación de clases",
			Cols:     cols,
			Filas:    filas(propias, cols, filaClase),
			MsgVacio: "No hay clases programadas",
		}, nil
	})
}

// clasesDelRol: el beneficiario pertenece a la clase por la lista de
// inscritos, no por una relación única, así que no pasa por Filtrar.
func clasesDelRol(clases []academy.ProgramacionClase, s *session.Session) []academy.ProgramacionClase {
	switch s.Rol {
	case scope.Beneficiario:
		out := make([]academy.ProgramacionClase, 0, len(clases))
		for _, c := range clases {
			for _, b := range c.Beneficiarios {
				if scope.Coincide(b, s.Usuario) != scope.SinCoincidencia {
					out = append(out, c)
					break
				}
			}
		}
		return out
	default:
		return scope.Filtrar(clases, s.Usuario, s.Rol,
			func(c academy.ProgramacionClase) (academy.Persona, bool) { return c.Profesor, true })
	}
}

func colsClases(rol scope.Rol) []view.Columna {
	cols := []view.Columna{
		{Clave: "dia", Etiqueta: "Día"},
		{Clave: "horario", Etiqueta: "Horario"},
		{Clave: "aula", Etiqueta: "Aula"},
		{Clave: "curso", Etiqueta: "Curso"},
	}
	if rol != scope.Profesor {
		cols = append(cols, view.Columna{Clave: "profesor", Etiqueta: "Profesor"})
	}
	if rol != scope.Beneficiario {
		cols = append(cols, view.Columna{Clave: "beneficiarios", Etiqueta: "Beneficiarios"})
	}
	return cols
}

func filaClase(c academy.ProgramacionClase) map[string]any {
	nombres := make([]string, 0, len(c.Beneficiarios))
	for _, b := range c.Beneficiarios {
		if n := b.NombreCompleto(); n != "" {
			nombres = append(nombres, n)
		}
	}
	return map[string]any{
		"dia":           view.Dia(c.Dia),
		"horario":       view.RangoHoras(c.HoraInicio, c.HoraFin),
		"aula":          c.Aula,
		"curso":         c.Curso,
		"profesor":      c.Profesor.NombreCompleto(),
		"beneficiarios": strings.Join(nombres, ", "),
	}
}

// MostrarHorariosProfesores lista la disponibilidad semanal de cada
// profesor, una fila por franja.
func (d Deps) MostrarHorariosProfesores(bot *tgbotapi.BotAPI, chatID int64, s *session.Session) {
	if s.Rol == scope.Beneficiario || s.Rol == scope.Cliente {
		sendText(bot, chatID, "🚫 Esta sección no está disponible para tu rol.")
		return
	}
	d.mostrar(bot, chatID, s, func(ctx context.Context) (*listview.Lista, error) {
		progs, err := d.API.ProgramacionesDeProfesor(ctx, s.Token)
		if err != nil {
			return nil, err
		}
		propias := scope.Filtrar(progs, s.Usuario, s.Rol,
			func(p academy.ProgramacionProfesor) (academy.Persona, bool) { return p.Profesor, true })

		cols := colsHorarios(s.Rol)
		var fs []view.Fila
		for _, p := range propias {
			for _, h := range p.Horarios {
				fs = append(fs, view.Formar(map[string]any{
					"profesor": p.Profesor.NombreCompleto(),
					"dia":      view.Dia(h.Dia),
					"horario":  view.RangoHoras(h.HoraInicio, h.HoraFin),
				}, cols))
			}
		}
		return &listview.Lista{
			Titulo:   "Programación de profesores",
			Cols:     cols,
			Filas:    fs,
			MsgVacio: "No hay horarios registrados",
		}, nil
	})
}

func colsHorarios(rol scope.Rol) []view.Columna {
	var cols []view.Columna
	if rol != scope.Profesor {
		cols = append(cols, view.Columna{Clave: "profesor", Etiqueta: "Profesor"})
	}
	return append(cols,
		view.Columna{Clave: "dia", Etiqueta: "Día"},
		view.Columna{Clave: "horario", Etiqueta: "Horario"},
	)
}
