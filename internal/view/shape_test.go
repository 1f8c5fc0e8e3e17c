package view

import (
	"testing"
	"time"
)

func TestFormarEsTotal(t *testing.T) {
	cols := []Columna{
		{Clave: "a", Etiqueta: "A"},
		{Clave: "b", Etiqueta: "B"},
		{Clave: "c", Etiqueta: "C"},
	}
	// sólo "a" trae valor; el resto falta o viene mal tipado
	fila := Formar(map[string]any{"a": "hola", "c": struct{}{}}, cols)
	if len(fila) != len(cols) {
		t.Fatalf("la fila debe traer una celda por columna, trajo %d", len(fila))
	}
	if fila["a"] != "hola" {
		t.Errorf("a=%q", fila["a"])
	}
	if fila["b"] != NA || fila["c"] != NA {
		t.Errorf("faltantes y mal tipados deben ser N/A: b=%q c=%q", fila["b"], fila["c"])
	}
}

func TestFormarTipos(t *testing.T) {
	d := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	n := 42.5
	s := " texto "
	cols := []Columna{
		{Clave: "fecha"}, {Clave: "numero"}, {Clave: "cadena"},
		{Clave: "vacia"}, {Clave: "activo"}, {Clave: "nulo"},
		{Clave: "pnum"}, {Clave: "pstr"},
	}
	fila := Formar(map[string]any{
		"fecha":  &d,
		"numero": &n,
		"cadena": s,
		"vacia":  "   ",
		"activo": true,
		"nulo":   nil,
		"pnum":   (*float64)(nil),
		"pstr":   &s,
	}, cols)

	quiere := map[string]string{
		"fecha":  "02/01/2026",
		"numero": "42.5",
		"cadena": "texto",
		"vacia":  NA,
		"activo": "Activo",
		"nulo":   NA,
		"pnum":   NA,
		"pstr":   "texto",
	}
	for k, v := range quiere {
		if fila[k] != v {
			t.Errorf("%s=%q, quería %q", k, fila[k], v)
		}
	}
}

func TestFormarSinValores(t *testing.T) {
	cols := []Columna{{Clave: "x"}}
	fila := Formar(nil, cols)
	if fila["x"] != NA {
		t.Fatalf("sin mapa de valores la celda debe ser N/A, fue %q", fila["x"])
	}
}
