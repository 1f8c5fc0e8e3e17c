// Package scope recorta colecciones del backend según el rol activo.
// El backend devuelve colecciones completas a cualquier usuario autenticado,
// así que el recorte por dueño se hace aquí, del lado del bot.
package scope

import (
	"strings"

	"github.com/AcademiaAllegro/telegram-academia-bot/internal/academy"
)

// Rol es el rol activo de la sesión, ya en minúsculas.
type Rol string

const (
	Administrador Rol = "administrador"
	Profesor      Rol = "profesor"
	Beneficiario  Rol = "beneficiario"
	Cliente       Rol = "cliente"
)

// RolDe normaliza el nombre de rol que manda el backend. Un rol desconocido
// se trata como beneficiario, el más restringido.
func RolDe(nombre string) Rol {
	switch strings.ToLower(strings.TrimSpace(nombre)) {
	case "administrador", "admin":
		return Administrador
	case "profesor":
		return Profesor
	case "cliente":
		return Cliente
	case "beneficiario":
		return Beneficiario
	default:
		return Beneficiario
	}
}

// Restringido indica si el rol ve sólo sus propios registros.
func (r Rol) Restringido() bool {
	return r != Administrador
}

// Criterio identifica qué campo produjo la coincidencia de identidad.
type Criterio int

const (
	SinCoincidencia Criterio = iota
	PorID
	PorCorreo
	PorDocumento
	PorNombre
)

// Dueno extrae la persona dueña de un registro. ok=false cuando la relación
// no viene poblada en el registro crudo.
type Dueno[T any] func(T) (academy.Persona, bool)

// Filtrar devuelve el subconjunto de registros cuyo dueño coincide con la
// identidad dada. Roles no restringidos pasan sin tocar. El orden de entrada
// se conserva y la entrada nunca se modifica.
func Filtrar[T any](records []T, quien academy.Persona, rol Rol, dueno Dueno[T]) []T {
	if !rol.Restringido() || records == nil {
		return records
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		p, ok := dueno(r)
		if !ok || p.Vacia() {
			continue
		}
		if Coincide(p, quien) != SinCoincidencia {
			out = append(out, r)
		}
	}
	return out
}

// Coincide compara la persona del registro contra la identidad de la sesión.
// Los criterios se evalúan en orden y gana el primero: id, correo, documento,
// nombre completo. El respaldo por correo/documento/nombre cubre registros
// viejos donde la relación quedó con otro id tras re-importaciones.
func Coincide(p, quien academy.Persona) Criterio {
	if p.ID != "" && quien.ID != "" && p.ID == quien.ID {
		return PorID
	}
	if p.Correo != "" && quien.Correo != "" && p.Correo == quien.Correo {
		return PorCorreo
	}
	if p.NumeroDocumento != "" && quien.NumeroDocumento != "" && p.NumeroDocumento == quien.NumeroDocumento {
		return PorDocumento
	}
	a, b := nombreCompleto(p), nombreCompleto(quien)
	if a != "" && a == b {
		return PorNombre
	}
	return SinCoincidencia
}

func nombreCompleto(p academy.Persona) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimSpace(p.Nombre) + " " + strings.TrimSpace(p.Apellido)))
}
