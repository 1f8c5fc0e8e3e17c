package academy

import (
	"strconv"
	"strings"
	"time"
)

// El backend expone cada colección con formas ligeramente distintas:
// relaciones pobladas u omitidas, campos en singular o plural
// (nombre/nombres), ids como _id o id, números como número o cadena.
// Este archivo concentra toda esa variación: cada endpoint tiene un
// constructor XxxDe(raw) que produce el registro canónico y el resto del
// código nunca vuelve a tocar map[string]any.

func texto(m map[string]any, claves ...string) string {
	for _, k := range claves {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(t)
		}
	}
	return ""
}

func numero(m map[string]any, claves ...string) *float64 {
	for _, k := range claves {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case float64:
			n := t
			return &n
		case int:
			n := float64(t)
			return &n
		case string:
			if n, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
				return &n
			}
		}
	}
	return nil
}

func booleano(m map[string]any, claves ...string) *bool {
	for _, k := range claves {
		if v, ok := m[k].(bool); ok {
			b := v
			return &b
		}
	}
	return nil
}

// objeto devuelve la primera relación poblada bajo cualquiera de las claves.
// Una relación sin poblar llega como id suelto (string) y se ignora aquí.
func objeto(m map[string]any, claves ...string) map[string]any {
	for _, k := range claves {
		if o, ok := m[k].(map[string]any); ok {
			return o
		}
	}
	return nil
}

func lista(m map[string]any, claves ...string) []map[string]any {
	for _, k := range claves {
		raw, ok := m[k].([]any)
		if !ok {
			continue
		}
		out := make([]map[string]any, 0, len(raw))
		for _, e := range raw {
			if o, ok := e.(map[string]any); ok {
				out = append(out, o)
			}
		}
		return out
	}
	return nil
}

var formatosFecha = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"}

func fecha(m map[string]any, claves ...string) *time.Time {
	for _, k := range claves {
		s, ok := m[k].(string)
		if !ok || s == "" {
			continue
		}
		for _, f := range formatosFecha {
			if t, err := time.Parse(f, s); err == nil {
				return &t
			}
		}
	}
	return nil
}

// PersonaDe tolera las dos ortografías que usa el backend para nombres
// (beneficiarios: nombre/apellido; profesores: nombres/apellidos).
func PersonaDe(m map[string]any) Persona {
	if m == nil {
		return Persona{}
	}
	return Persona{
		ID:              texto(m, "_id", "id"),
		Nombre:          texto(m, "nombre", "nombres"),
		Apellido:        texto(m, "apellido", "apellidos"),
		Correo:          texto(m, "correo", "email"),
		NumeroDocumento: texto(m, "numero_de_documento", "numeroDocumento", "documento", "identificacion"),
	}
}

func RolDe(m map[string]any) Rol {
	return Rol{
		ID:          texto(m, "_id", "id"),
		Nombre:      texto(m, "nombre"),
		Descripcion: texto(m, "descripcion"),
		Estado:      booleano(m, "estado"),
	}
}

// fechaVenta replica la cadena de respaldo del front original: el backend
// ha ido cambiando el nombre del campo de fecha entre despliegues.
func fechaVenta(m map[string]any) *time.Time {
	return fecha(m, "fechaInicio", "fecha", "fechaVenta", "fecha_venta", "createdAt", "updatedAt", "fechaCreacion")
}

func VentaDe(m map[string]any) Venta {
	if m == nil {
		return Venta{}
	}
	v := Venta{
		ID:            texto(m, "_id", "id"),
		Codigo:        texto(m, "codigoVenta"),
		Estado:        texto(m, "estado"),
		ValorTotal:    numero(m, "valor_total", "valorTotal"),
		FechaInicio:   fecha(m, "fechaInicio"),
		Fecha:         fechaVenta(m),
		Observaciones: texto(m, "observaciones"),
	}
	if ben := objeto(m, "beneficiarioId", "beneficiario"); ben != nil {
		v.Beneficiario = PersonaDe(ben)
		v.Cliente = Persona{ID: texto(ben, "clienteId")}
	} else if n := texto(m, "beneficiarioNombre"); n != "" {
		v.Beneficiario = Persona{Nombre: n}
	}
	if c := objeto(m, "cursoId", "curso"); c != nil {
		v.Curso = texto(c, "nombre")
	}
	if ma := objeto(m, "matriculaId", "matricula"); ma != nil {
		v.Matricula = texto(ma, "nombre")
	}
	return v
}

func PagoDe(m map[string]any) Pago {
	p := Pago{
		ID:            texto(m, "_id", "id"),
		Metodo:        texto(m, "metodoPago"),
		Estado:        texto(m, "estado"),
		Monto:         numero(m, "monto"),
		FechaPago:     fecha(m, "fechaPago"),
		Observaciones: texto(m, "observaciones", "descripcion"),
	}
	if venta := objeto(m, "ventaId", "venta", "ventas"); venta != nil {
		p.Venta = VentaDe(venta)
	} else if cod := texto(m, "codigoVenta"); cod != "" {
		p.Venta = Venta{Codigo: cod}
	}
	if p.Venta.Observaciones != "" && p.Observaciones == "" {
		p.Observaciones = p.Venta.Observaciones
	}
	return p
}

func AsistenciaDe(m map[string]any) Asistencia {
	a := Asistencia{
		ID:       texto(m, "_id", "id"),
		Estado:   texto(m, "estado"),
		CreadaEn: fecha(m, "createdAt"),
	}
	if venta := objeto(m, "ventaId", "venta"); venta != nil {
		a.Venta = VentaDe(venta)
	}
	if clase := objeto(m, "programacionClaseId", "programacionClase"); clase != nil {
		a.Clase = ProgramacionClaseDe(clase)
	}
	return a
}

func ProgramacionClaseDe(m map[string]any) ProgramacionClase {
	c := ProgramacionClase{
		ID:         texto(m, "_id", "id"),
		Dia:        texto(m, "dia"),
		HoraInicio: texto(m, "horaInicio"),
		HoraFin:    texto(m, "horaFin"),
		CreadaEn:   fecha(m, "createdAt"),
	}
	if aula := objeto(m, "aula", "aulaId"); aula != nil {
		c.Aula = texto(aula, "numeroAula", "numero")
	}
	if pp := objeto(m, "programacionProfesor", "programacionProfesorId"); pp != nil {
		if prof := objeto(pp, "profesor", "profesorId"); prof != nil {
			c.Profesor = PersonaDe(prof)
		}
		c.ProgProfesorID = texto(pp, "_id", "id")
	}
	if c.ProgProfesorID == "" {
		c.ProgProfesorID = texto(m, "programacionProfesorId")
	}
	for _, ins := range lista(m, "beneficiarios") {
		if ben := objeto(ins, "beneficiarioId", "beneficiario"); ben != nil {
			c.Beneficiarios = append(c.Beneficiarios, PersonaDe(ben))
		}
		if c.Curso == "" {
			if cur := objeto(ins, "cursoId", "curso"); cur != nil {
				c.Curso = texto(cur, "nombre")
			}
		}
	}
	if venta := objeto(m, "ventaId", "venta"); venta != nil {
		c.Venta = VentaDe(venta)
		if c.Curso == "" {
			c.Curso = c.Venta.Curso
		}
	}
	return c
}

func ProgramacionProfesorDe(m map[string]any) ProgramacionProfesor {
	p := ProgramacionProfesor{ID: texto(m, "_id", "id")}
	if prof := objeto(m, "profesor", "profesorId"); prof != nil {
		p.Profesor = PersonaDe(prof)
	}
	for _, h := range lista(m, "horariosPorDia") {
		p.Horarios = append(p.Horarios, Horario{
			Dia:        texto(h, "dia"),
			HoraInicio: texto(h, "horaInicio"),
			HoraFin:    texto(h, "horaFin"),
		})
	}
	return p
}

func CursoDe(m map[string]any) Curso {
	return Curso{
		ID:          texto(m, "_id", "id"),
		Nombre:      texto(m, "nombre"),
		Descripcion: texto(m, "descripcion"),
		ValorHora:   numero(m, "valor_por_hora", "valorPorHora"),
		Estado:      booleano(m, "estado"),
	}
}

func MatriculaDe(m map[string]any) Matricula {
	return Matricula{
		ID:     texto(m, "_id", "id"),
		Nombre: texto(m, "nombre"),
		Valor:  numero(m, "valorMatricula"),
		Estado: booleano(m, "estado"),
	}
}

func BeneficiarioDe(m map[string]any) Beneficiario {
	return Beneficiario{
		Persona:       PersonaDe(m),
		TipoDocumento: texto(m, "tipo_de_documento", "tipoDocumento"),
		Telefono:      texto(m, "telefono"),
		Direccion:     texto(m, "direccion"),
		ClienteID:     texto(m, "clienteId"),
	}
}

func ProfesorDe(m map[string]any) Profesor {
	p := Profesor{
		Persona:  PersonaDe(m),
		Telefono: texto(m, "telefono"),
	}
	if raw, ok := m["especialidades"].([]any); ok {
		for _, e := range raw {
			if s, ok := e.(string); ok && s != "" {
				p.Especialidades = append(p.Especialidades, s)
			}
		}
	}
	return p
}

func UsuarioDe(m map[string]any) Usuario {
	u := Usuario{
		Persona:       PersonaDe(m),
		TipoDocumento: texto(m, "tipo_de_documento", "tipoDocumento"),
		Estado:        booleano(m, "estado"),
	}
	switch r := m["rol"].(type) {
	case string:
		u.Rol = r
	case map[string]any:
		u.Rol = texto(r, "nombre")
	}
	return u
}

func AulaDe(m map[string]any) Aula {
	return Aula{
		ID:        texto(m, "_id", "id"),
		Numero:    texto(m, "numeroAula", "numero"),
		Capacidad: numero(m, "capacidad"),
		Estado:    texto(m, "estado"),
	}
}
