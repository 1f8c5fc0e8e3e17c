package view

import (
	"testing"
	"time"
)

func f(v float64) *float64 { return &v }

func TestMoneda(t *testing.T) {
	casos := []struct {
		in     *float64
		quiere string
	}{
		{nil, NA},
		{f(0), "$0,00"},
		{f(1234.5), "$1.234,50"},
		{f(1000000), "$1.000.000,00"},
		{f(50000), "$50.000,00"},
		{f(999.999), "$1.000,00"},
		{f(-1234.5), "-$1.234,50"},
		{f(7), "$7,00"},
	}
	for _, c := range casos {
		if got := Moneda(c.in); got != c.quiere {
			t.Errorf("Moneda(%v)=%q, quería %q", c.in, got, c.quiere)
		}
	}
}

func TestFecha(t *testing.T) {
	if got := Fecha(nil); got != NA {
		t.Fatalf("Fecha(nil)=%q", got)
	}
	d := time.Date(2026, time.March, 5, 14, 0, 0, 0, time.UTC)
	if got := Fecha(&d); got != "05/03/2026" {
		t.Fatalf("Fecha=%q, quería 05/03/2026", got)
	}
}

func TestDia(t *testing.T) {
	casos := map[string]string{
		"L": "Lunes",
		"M": "Martes",
		"X": "Miércoles",
		"J": "Jueves",
		"V": "Viernes",
		"S": "Sábado",
		"D": "Domingo",
		"Z": "Z", // código desconocido pasa tal cual
		"":  NA,
	}
	for in, quiere := range casos {
		if got := Dia(in); got != quiere {
			t.Errorf("Dia(%q)=%q, quería %q", in, got, quiere)
		}
	}
}

func TestRangoHoras(t *testing.T) {
	if got := RangoHoras("08:00", "09:30"); got != "08:00 - 09:30" {
		t.Fatalf("RangoHoras=%q", got)
	}
	if got := RangoHoras("", "09:30"); got != NA {
		t.Fatalf("RangoHoras sin inicio=%q", got)
	}
}

func TestEstadoAsistencia(t *testing.T) {
	if got := EstadoAsistencia("asistio"); got != "Presente" {
		t.Fatalf("asistio=%q", got)
	}
	if got := EstadoAsistencia("no_asistio"); got != "Ausente" {
		t.Fatalf("no_asistio=%q", got)
	}
	if got := EstadoAsistencia("otro"); got != NA {
		t.Fatalf("desconocido=%q", got)
	}
}

func TestEstadoActivoPtr(t *testing.T) {
	v := true
	if got := EstadoActivoPtr(&v); got != "Activo" {
		t.Fatalf("true=%q", got)
	}
	v = false
	if got := EstadoActivoPtr(&v); got != "Inactivo" {
		t.Fatalf("false=%q", got)
	}
	if got := EstadoActivoPtr(nil); got != NA {
		t.Fatalf("nil=%q", got)
	}
}
