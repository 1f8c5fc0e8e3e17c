// Package view transforma registros en filas listas para pintar.
// La regla central: una fila siempre trae una celda por columna y toda
// celda es texto. Lo que falte o venga mal tipado se muestra como N/A,
// nunca se omite ni se revienta.
package view

import (
	"strconv"
	"strings"
	"time"
)

const NA = "N/A"

// Columna asocia la clave del valor con la etiqueta visible.
type Columna struct {
	Clave    string
	Etiqueta string
}

type Fila map[string]string

// Formar produce la fila para un registro. Total: hay una entrada por cada
// columna configurada, pase lo que pase con los valores.
func Formar(vals map[string]any, cols []Columna) Fila {
	f := make(Fila, len(cols))
	for _, c := range cols {
		f[c.Clave] = celda(vals[c.Clave])
	}
	return f
}

func celda(v any) string {
	switch t := v.(type) {
	case nil:
		return NA
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return s
		}
		return NA
	case *string:
		if t == nil {
			return NA
		}
		return celda(*t)
	case *float64:
		if t == nil {
			return NA
		}
		return strconv.FormatFloat(*t, 'f', -1, 64)
	case *time.Time:
		return Fecha(t)
	case bool:
		return EstadoActivo(t)
	default:
		return NA
	}
}
