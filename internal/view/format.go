package view

import (
	"strconv"
	"time"
)

// Moneda formatea pesos al estilo es-CO: $1.234,50.
func Moneda(v *float64) string {
	if v == nil {
		return NA
	}
	n := *v
	signo := ""
	if n < 0 {
		signo = "-"
		n = -n
	}
	entero := int64(n)
	centavos := int64((n-float64(entero))*100 + 0.5)
	if centavos >= 100 {
		entero++
		centavos -= 100
	}
	return signo + "$" + miles(entero) + "," + pad2(centavos)
}

func miles(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	return string(out)
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// Fecha formatea dd/mm/aaaa.
func Fecha(t *time.Time) string {
	if t == nil {
		return NA
	}
	return t.Format("02/01/2006")
}

var dias = map[string]string{
	"L": "Lunes",
	"M": "Martes",
	"X": "Miércoles",
	"J": "Jueves",
	"V": "Viernes",
	"S": "Sábado",
	"D": "Domingo",
}

// Dia traduce el código de día del backend. Un código desconocido se muestra
// tal cual llegó.
func Dia(codigo string) string {
	if codigo == "" {
		return NA
	}
	if d, ok := dias[codigo]; ok {
		return d
	}
	return codigo
}

func RangoHoras(inicio, fin string) string {
	if inicio == "" || fin == "" {
		return NA
	}
	return inicio + " - " + fin
}

func EstadoAsistencia(estado string) string {
	switch estado {
	case "asistio":
		return "Presente"
	case "no_asistio":
		return "Ausente"
	default:
		return NA
	}
}

func EstadoActivo(activo bool) string {
	if activo {
		return "Activo"
	}
	return "Inactivo"
}

func EstadoActivoPtr(activo *bool) string {
	if activo == nil {
		return NA
	}
	return EstadoActivo(*activo)
}
