package scope

import (
	"reflect"
	"testing"

	"github.com/AcademiaAllegro/telegram-academia-bot/internal/academy"
)

type registro struct {
	id    string
	dueno academy.Persona
	ok    bool
}

func duenoDe(r registro) (academy.Persona, bool) { return r.dueno, r.ok }

func TestFiltrarAdministradorPasaTodo(t *testing.T) {
	records := []registro{
		{id: "1", dueno: academy.Persona{ID: "otro"}, ok: true},
		{id: "2", ok: false},
	}
	out := Filtrar(records, academy.Persona{ID: "yo"}, Administrador, duenoDe)
	if !reflect.DeepEqual(out, records) {
		t.Fatalf("el administrador debe recibir la colección intacta, obtuvo %#v", out)
	}
}

func TestFiltrarPorID(t *testing.T) {
	yo := academy.Persona{ID: "u1"}
	records := []registro{
		{id: "a", dueno: academy.Persona{ID: "u1"}, ok: true},
		{id: "b", dueno: academy.Persona{ID: "u2"}, ok: true},
		{id: "c", dueno: academy.Persona{ID: "u1"}, ok: true},
	}
	out := Filtrar(records, yo, Beneficiario, duenoDe)
	if len(out) != 2 || out[0].id != "a" || out[1].id != "c" {
		t.Fatalf("esperaba [a c] en orden, obtuvo %#v", out)
	}
}

func TestFiltrarRelacionFaltanteSeExcluye(t *testing.T) {
	yo := academy.Persona{ID: "u1", Correo: "yo@academia.co"}
	records := []registro{
		{id: "sin-relacion", ok: false},
		{id: "vacia", dueno: academy.Persona{}, ok: true},
		{id: "mia", dueno: academy.Persona{ID: "u1"}, ok: true},
	}
	out := Filtrar(records, yo, Cliente, duenoDe)
	if len(out) != 1 || out[0].id != "mia" {
		t.Fatalf("registros sin relación deben caer, obtuvo %#v", out)
	}
}

func TestFiltrarRespaldoPorCorreo(t *testing.T) {
	// tras una re-importación el id de la relación ya no coincide,
	// pero el correo sí
	yo := academy.Persona{ID: "nuevo-id", Correo: "ana@academia.co"}
	records := []registro{
		{id: "viejo", dueno: academy.Persona{ID: "viejo-id", Correo: "ana@academia.co"}, ok: true},
		{id: "ajeno", dueno: academy.Persona{ID: "x", Correo: "otro@academia.co"}, ok: true},
	}
	out := Filtrar(records, yo, Beneficiario, duenoDe)
	if len(out) != 1 || out[0].id != "viejo" {
		t.Fatalf("esperaba coincidencia por correo, obtuvo %#v", out)
	}
}

func TestFiltrarEsIdempotente(t *testing.T) {
	yo := academy.Persona{NumeroDocumento: "123"}
	records := []registro{
		{id: "a", dueno: academy.Persona{NumeroDocumento: "123"}, ok: true},
		{id: "b", dueno: academy.Persona{NumeroDocumento: "999"}, ok: true},
	}
	una := Filtrar(records, yo, Profesor, duenoDe)
	dos := Filtrar(una, yo, Profesor, duenoDe)
	if !reflect.DeepEqual(una, dos) {
		t.Fatalf("filtrar dos veces debe dar lo mismo: %#v vs %#v", una, dos)
	}
}

func TestFiltrarNilPasa(t *testing.T) {
	if out := Filtrar[registro](nil, academy.Persona{ID: "u"}, Beneficiario, duenoDe); out != nil {
		t.Fatalf("nil debe pasar tal cual, obtuvo %#v", out)
	}
}

func TestCoincideOrdenDeCriterios(t *testing.T) {
	yo := academy.Persona{ID: "u1", Correo: "a@b.co", NumeroDocumento: "123", Nombre: "Ana", Apellido: "Mora"}

	casos := []struct {
		nombre string
		p      academy.Persona
		quiere Criterio
	}{
		{"id", academy.Persona{ID: "u1", Correo: "zzz@b.co"}, PorID},
		{"correo", academy.Persona{ID: "otro", Correo: "a@b.co"}, PorCorreo},
		{"documento", academy.Persona{NumeroDocumento: "123"}, PorDocumento},
		{"nombre", academy.Persona{Nombre: "  ANA", Apellido: "mora  "}, PorNombre},
		{"nada", academy.Persona{ID: "x", Correo: "x@x.co"}, SinCoincidencia},
		{"ids vacios no coinciden", academy.Persona{Nombre: "Pedro"}, SinCoincidencia},
	}
	for _, c := range casos {
		if got := Coincide(c.p, yo); got != c.quiere {
			t.Errorf("%s: Coincide=%v, quería %v", c.nombre, got, c.quiere)
		}
	}
}

func TestCoincideNombreVacioNoCoincide(t *testing.T) {
	if Coincide(academy.Persona{}, academy.Persona{}) != SinCoincidencia {
		t.Fatal("dos personas vacías no deben coincidir")
	}
}

func TestRolDe(t *testing.T) {
	casos := map[string]Rol{
		"Administrador": Administrador,
		"ADMIN":         Administrador,
		" profesor ":    Profesor,
		"cliente":       Cliente,
		"beneficiario":  Beneficiario,
		"desconocido":   Beneficiario,
		"":              Beneficiario,
	}
	for nombre, quiere := range casos {
		if got := RolDe(nombre); got != quiere {
			t.Errorf("RolDe(%q)=%v, quería %v", nombre, got, quiere)
		}
	}
	if Administrador.Restringido() {
		t.Error("administrador no debe estar restringido")
	}
	if !Cliente.Restringido() {
		t.Error("cliente debe estar restringido")
	}
}
