package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/AcademiaAllegro/telegram-academia-bot/internal/academy"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/listview"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/session"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/view"
)

// Catálogos administrativos: cursos, matrículas, aulas y roles.

func (d Deps) MostrarCursos(bot *tgbotapi.BotAPI, chatID int64, s *session.Session) {
	if !soloAdmin(bot, chatID, s) {
		return
	}
	d.mostrar(bot, chatID, s, func(ctx context.Context) (*listview.Lista, error) {
		cursos, err := d.API.Cursos(ctx, s.Token)
		if err != nil {
			return nil, err
		}
		cols := []view.Columna{
			{Clave: "nombre", Etiqueta: "Nombre"},
			{Clave: "valor_hora", Etiqueta: "Valor por hora"},
			{Clave: "descripcion", Etiqueta: "Descripción"},
			{Clave: "estado", Etiqueta: "Estado"},
		}
		return &listview.Lista{
			Titulo: "Cursos",
			Cols:   cols,
			Filas: filas(cursos, cols, func(c academy.Curso) map[string]any {
				return map[string]any{
					"nombre":      c.Nombre,
					"valor_hora":  view.Moneda(c.ValorHora),
					"descripcion": c.Descripcion,
					"estado":      view.EstadoActivoPtr(c.Estado),
				}
			}),
			MsgVacio: "No hay cursos registrados",
		}, nil
	})
}

func (d Deps) MostrarMatriculas(bot *tgbotapi.BotAPI, chatID int64, s *session.Session) {
	if !soloAdmin(bot, chatID, s) {
		return
	}
	d.mostrar(bot, chatID, s, func(ctx context.Context) (*listview.Lista, error) {
		matriculas, err := d.API.Matriculas(ctx, s.Token)
		if err != nil {
			return nil, err
		}
		cols := []view.Columna{
			{Clave: "nombre", Etiqueta: "Nombre"},
			{Clave: "valor", Etiqueta: "Valor"},
			{Clave: "estado", Etiqueta: "Estado"},
		}
		return &listview.Lista{
			Titulo: "Matrículas",
			Cols:   cols,
			Filas: filas(matriculas, cols, func(m academy.Matricula) map[string]any {
				return map[string]any{
					"nombre": m.Nombre,
					"valor":  view.Moneda(m.Valor),
					"estado": view.EstadoActivoPtr(m.Estado),
				}
			}),
			MsgVacio: "No hay matrículas registradas",
		}, nil
	})
}

func (d Deps) MostrarAulas(bot *tgbotapi.BotAPI, chatID int64, s *session.Session) {
	if !soloAdmin(bot, chatID, s) {
		return
	}
	d.mostrar(bot, chatID, s, func(ctx context.Context) (*listview.Lista, error) {
		aulas, err := d.API.Aulas(ctx, s.Token)
		if err != nil {
			return nil, err
		}
		cols := []view.Columna{
			{Clave: "numero", Etiqueta: "Número"},
			{Clave: "capacidad", Etiqueta: "Capacidad"},
			{Clave: "estado", Etiqueta: "Estado"},
		}
		return &listview.Lista{
			Titulo: "Aulas",
			Cols:   cols,
			Filas: filas(aulas, cols, func(a academy.Aula) map[string]any {
				return map[string]any{
					"numero":    a.Numero,
					"capacidad": a.Capacidad,
					"estado":    a.Estado,
				}
			}),
			MsgVacio: "No hay aulas registradas",
		}, nil
	})
}

func (d Deps) MostrarRoles(bot *tgbotapi.BotAPI, chatID int64, s *session.Session) {
	if !soloAdmin(bot, chatID, s) {
		return
	}
	d.mostrar(bot, chatID, s, func(ctx context.Context) (*listview.Lista, error) {
		roles, err := d.API.Roles(ctx, s.Token)
		if err != nil {
			return nil, err
		}
		cols := []view.Columna{
			{Clave: "nombre", Etiqueta: "Nombre"},
			{Clave: "descripcion", Etiqueta: "Descripción"},
			{Clave: "estado", Etiqueta: "Estado"},
		}
		return &listview.Lista{
			Titulo: "Roles",
			Cols:   cols,
			Filas: filas(roles, cols, func(r academy.Rol) map[string]any {
				return map[string]any{
					"nombre":      r.Nombre,
					"descripcion": r.Descripcion,
					"estado":      view.EstadoActivoPtr(r.Estado),
				}
			}),
			MsgVacio: "No hay roles registrados",
		}, nil
	})
}
