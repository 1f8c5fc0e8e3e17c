package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/AcademiaAllegro/telegram-academia-bot/internal/academy"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/listview"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/scope"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/session"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/view"
)

// MostrarBeneficiarios: el administrador ve todos; el cliente, los suyos.
func (d Deps) MostrarBeneficiarios(bot *tgbotapi.BotAPI, chatID int64, s *session.Session) {
	if s.Rol != scope.Administrador && s.Rol != scope.Cliente {
		sendText(bot, chatID, "🚫 Esta sección no está disponible para tu rol.")
		return
	}
	d.mostrar(bot, chatID, s, func(ctx context.Context) (*listview.Lista, error) {
		beneficiarios, err := d.API.Beneficiarios(ctx, s.Token)
		if err != nil {
			return nil, err
		}
		// el vínculo con el cliente es clienteId, no una relación poblada
		propios := scope.Filtrar(beneficiarios, s.Usuario, s.Rol,
			func(b academy.Beneficiario) (academy.Persona, bool) {
				return academy.Persona{ID: b.ClienteID}, b.ClienteID != ""
			})
		cols := colsBeneficiarios()
		return &listview.Lista{
			Titulo:   "Beneficiarios",
			Cols:     cols,
			Filas:    filas(propios, cols, filaBeneficiario),
			MsgVacio: "No hay beneficiarios registrados",
		}, nil
	})
}

// MostrarClientes lista los beneficiarios que son su propio responsable.
func (d Deps) MostrarClientes(bot *tgbotapi.BotAPI, chatID int64, s *session.Session) {
	if !soloAdmin(bot, chatID, s) {
		return
	}
	d.mostrar(bot, chatID, s, func(ctx context.Context) (*listview.Lista, error) {
		beneficiarios, err := d.API.Beneficiarios(ctx, s.Token)
		if err != nil {
			return nil, err
		}
		clientes := make([]academy.Beneficiario, 0, len(beneficiarios))
		for _, b := range beneficiarios {
			if b.EsCliente() {
				clientes = append(clientes, b)
			}
		}
		cols := colsBeneficiarios()
		return &listview.Lista{
			Titulo:   "Clientes",
			Cols:     cols,
			Filas:    filas(clientes, cols, filaBeneficiario),
			MsgVacio: "No hay clientes registrados",
		}, nil
	})
}

func colsBeneficiarios() []view.Columna {
	return []view.Columna{
		{Clave: "nombre", Etiqueta: "Nombre"},
		{Clave: "documento", Etiqueta: "Documento"},
		{Clave: "correo", Etiqueta: "Correo"},
		{Clave: "telefono", Etiqueta: "Teléfono"},
		{Clave: "direccion", Etiqueta: "Dirección"},
	}
}

func filaBeneficiario(b academy.Beneficiario) map[string]any {
	return map[string]any{
		"nombre":    b.NombreCompleto(),
		"documento": b.NumeroDocumento,
		"correo":    b.Correo,
		"telefono":  b.Telefono,
		"direccion": b.Direccion,
	}
}

func (d Deps) MostrarProfesores(bot *tgbotapi.BotAPI, chatID int64, s *session.Session) {
	if !soloAdmin(bot, chatID, s) {
		return
	}
	d.mostrar(bot, chatID, s, func(ctx context.Context) (*listview.Lista, error) {
		profesores, err := d.API.Profesores(ctx, s.Token)
		if err != nil {
			return nil, err
		}
		cols := []view.Columna{
			{Clave: "nombre", Etiqueta: "Nombre"},
			{Clave: "correo", Etiqueta: "Correo"},
			{Clave: "telefono", Etiqueta: "Teléfono"},
			{Clave: "especialidades", Etiqueta: "Especialidades"},
		}
		return &listview.Lista{
			Titulo: "Profesores",
			Cols:   cols,
			Filas: filas(profesores, cols, func(p academy.Profesor) map[string]any {
				return map[string]any{
					"nombre":         p.NombreCompleto(),
					"correo":         p.Correo,
					"telefono":       p.Telefono,
					"especialidades": strings.Join(p.Especialidades, ", "),
				}
			}),
			MsgVacio: "No hay profesores registrados",
		}, nil
	})
}

func (d Deps) MostrarUsuarios(bot *tgbotapi.BotAPI, chatID int64, s *session.Session) {
	if !soloAdmin(bot, chatID, s) {
		return
	}
	d.mostrar(bot, chatID, s, func(ctx context.Context) (*listview.Lista, error) {
		usuarios, err := d.API.Usuarios(ctx, s.Token)
		if err != nil {
			return nil, err
		}
		cols := []view.Columna{
			{Clave: "nombre", Etiqueta: "Nombre"},
			{Clave: "correo", Etiqueta: "Correo"},
			{Clave: "documento", Etiqueta: "Documento"},
			{Clave: "rol", Etiqueta: "Rol"},
			{Clave: "estado", Etiqueta: "Estado"},
		}
		return &listview.Lista{
			Titulo: "Usuarios",
			Cols:   cols,
			Filas: filas(usuarios, cols, func(u academy.Usuario) map[string]any {
				return map[string]any{
					"nombre":    u.NombreCompleto(),
					"correo":    u.Correo,
					"documento": u.NumeroDocumento,
					"rol":       u.Rol,
					"estado":    view.EstadoActivoPtr(u.Estado),
				}
			}),
			MsgVacio: "No hay usuarios registrados",
		}, nil
	})
}

// MostrarPerfil pinta la identidad de la sesión como tarjeta de texto.
func (d Deps) MostrarPerfil(bot *tgbotapi.BotAPI, chatID int64, s *session.Session) {
	var roles []string
	for _, r := range s.Roles {
		roles = append(roles, r.Nombre)
	}
	texto := fmt.Sprintf(
		"👤 %s\n\n📧 Correo: %s\n🪪 Documento: %s\n🛡 Rol activo: %s\n🗂 Roles: %s",
		valorO(s.Usuario.NombreCompleto()),
		valorO(s.Usuario.Correo),
		valorO(s.Usuario.NumeroDocumento),
		string(s.Rol),
		valorO(strings.Join(roles, ", ")),
	)
	sendText(bot, chatID, texto)
}

func valorO(s string) string {
	if s == "" {
		return view.NA
	}
	return s
}
