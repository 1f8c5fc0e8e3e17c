package academy

import "time"

// Persona — datos mínimos de identidad que el backend anida dentro de
// ventas, pagos, asistencias y programaciones. El backend no es consistente
// con los nombres de campo, por eso siempre se construye vía normalización
// (ver normalize.go) y nunca decodificando JSON directamente.
type Persona struct {
	ID              string
	Nombre          string
	Apellido        string
	Correo          string
	NumeroDocumento string
}

// Vacia indica que la relación no se pudo resolver en el registro crudo.
func (p Persona) Vacia() bool {
	return p.ID == "" && p.Correo == "" && p.NumeroDocumento == "" && p.Nombre == "" && p.Apellido == ""
}

func (p Persona) NombreCompleto() string {
	switch {
	case p.Nombre != "" && p.Apellido != "":
		return p.Nombre + " " + p.Apellido
	case p.Nombre != "":
		return p.Nombre
	default:
		return p.Apellido
	}
}

// Rol — rol del sistema (administrador, profesor, beneficiario, cliente).
type Rol struct {
	ID          string
	Nombre      string
	Descripcion string
	Estado      *bool
}

// Venta de curso (CU-) o matrícula (MA-).
type Venta struct {
	ID            string
	Codigo        string // codigoVenta, prefijo CU- o MA-
	Beneficiario  Persona
	Cliente       Persona // responsable; el backend sólo manda su id
	Curso         string
	Matricula     string
	Estado        string // vigente | anulada
	ValorTotal    *float64
	FechaInicio   *time.Time
	Fecha         *time.Time // mejor fecha disponible, ver fechaVenta en normalize.go
	Observaciones string
}

type Pago struct {
	ID            string
	Metodo        string // efectivo | transferencia | tarjeta | cheque
	Estado        string // pendiente | completado | cancelado
	Monto         *float64
	FechaPago     *time.Time
	Observaciones string
	Venta         Venta
}

type Asistencia struct {
	ID       string
	Estado   string // asistio | no_asistio
	Venta    Venta
	Clase    ProgramacionClase
	CreadaEn *time.Time
}

// ProgramacionClase — una franja de clase programada.
type ProgramacionClase struct {
	ID             string
	Dia            string // código L/M/X/J/V/S/D
	HoraInicio     string
	HoraFin        string
	Aula           string
	Curso          string
	Profesor       Persona
	ProgProfesorID string
	Beneficiarios  []Persona
	Venta          Venta
	CreadaEn       *time.Time
}

// Inscrito indica si la persona figura entre los beneficiarios de la clase.
func (c ProgramacionClase) Inscrito(id string) bool {
	for _, b := range c.Beneficiarios {
		if b.ID != "" && b.ID == id {
			return true
		}
	}
	return false
}

type Horario struct {
	Dia        string
	HoraInicio string
	HoraFin    string
}

type ProgramacionProfesor struct {
	ID       string
	Profesor Persona
	Horarios []Horario
}

type Curso struct {
	ID          string
	Nombre      string
	Descripcion string
	ValorHora   *float64
	Estado      *bool
}

type Matricula struct {
	ID     string
	Nombre string
	Valor  *float64
	Estado *bool
}

type Beneficiario struct {
	Persona
	TipoDocumento string
	Telefono      string
	Direccion     string
	ClienteID     string
}

// EsCliente — el backend modela a los clientes como beneficiarios cuyo
// clienteId apunta a sí mismos.
func (b Beneficiario) EsCliente() bool {
	return b.ClienteID != "" && b.ClienteID == b.ID
}

type Profesor struct {
	Persona
	Telefono       string
	Especialidades []string
}

type Usuario struct {
	Persona
	TipoDocumento string
	Rol           string
	Estado        *bool
}

type Aula struct {
	ID        string
	Numero    string
	Capacidad *float64
	Estado    string
}
