package academy

import (
	"encoding/json"
	"testing"
	"time"
)

func crudo(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestPersonaDeOrtografias(t *testing.T) {
	// beneficiarios: nombre/apellido; profesores: nombres/apellidos
	p := PersonaDe(crudo(t, `{"_id":"u1","nombres":"Ana María","apellidos":"Mora","email":"ana@academia.co","numeroDocumento":"123"}`))
	if p.ID != "u1" || p.Nombre != "Ana María" || p.Apellido != "Mora" || p.Correo != "ana@academia.co" || p.NumeroDocumento != "123" {
		t.Fatalf("persona mal normalizada: %#v", p)
	}

	q := PersonaDe(crudo(t, `{"id":"u2","nombre":"Luis","apellido":"Gil","correo":"luis@academia.co","numero_de_documento":9007}`))
	if q.ID != "u2" || q.NumeroDocumento != "9007" {
		t.Fatalf("documento numérico debe volverse cadena: %#v", q)
	}
}

func TestVentaDeRelacionPoblada(t *testing.T) {
	v := VentaDe(crudo(t, `{
		"_id":"v1","codigoVenta":"CU-0042","estado":"vigente","valor_total":"150000.5",
		"fechaVenta":"2026-02-10",
		"beneficiarioId":{"_id":"b1","nombre":"Sofía","apellido":"Rey","clienteId":"c9"},
		"cursoId":{"nombre":"Piano"}
	}`))
	if v.Codigo != "CU-0042" || v.Beneficiario.ID != "b1" || v.Cliente.ID != "c9" || v.Curso != "Piano" {
		t.Fatalf("venta mal normalizada: %#v", v)
	}
	if v.ValorTotal == nil || *v.ValorTotal != 150000.5 {
		t.Fatalf("valor_total como cadena debe parsearse: %#v", v.ValorTotal)
	}
	if v.Fecha == nil || v.Fecha.Format("2006-01-02") != "2026-02-10" {
		t.Fatalf("fecha de respaldo: %#v", v.Fecha)
	}
}

func TestVentaDeSoloNombre(t *testing.T) {
	v := VentaDe(crudo(t, `{"id":"v2","beneficiarioNombre":"Carlos Paz","createdAt":"2026-01-05T10:00:00Z"}`))
	if v.Beneficiario.Nombre != "Carlos Paz" || v.Beneficiario.ID != "" {
		t.Fatalf("respaldo beneficiarioNombre: %#v", v.Beneficiario)
	}
	if v.Fecha == nil {
		t.Fatal("createdAt debe servir como fecha de respaldo")
	}
}

func TestFechaVentaCadenaDeRespaldo(t *testing.T) {
	// fechaInicio gana sobre createdAt
	v := VentaDe(crudo(t, `{"fechaInicio":"2026-03-01","createdAt":"2025-01-01T00:00:00Z"}`))
	if v.Fecha == nil || v.Fecha.Month() != time.March {
		t.Fatalf("fechaInicio debe ganar: %#v", v.Fecha)
	}
}

func TestPagoDeVentaAnidadaYRespaldo(t *testing.T) {
	p := PagoDe(crudo(t, `{
		"_id":"p1","metodoPago":"efectivo","estado":"completado","monto":80000,
		"ventaId":{"codigoVenta":"MA-0001","observaciones":"abono"}
	}`))
	if p.Venta.Codigo != "MA-0001" || p.Monto == nil || *p.Monto != 80000 {
		t.Fatalf("pago mal normalizado: %#v", p)
	}
	if p.Observaciones != "abono" {
		t.Fatalf("observaciones deben heredarse de la venta: %q", p.Observaciones)
	}

	q := PagoDe(crudo(t, `{"id":"p2","codigoVenta":"CU-0002"}`))
	if q.Venta.Codigo != "CU-0002" {
		t.Fatalf("respaldo codigoVenta plano: %#v", q.Venta)
	}
}

func TestProgramacionClaseDe(t *testing.T) {
	c := ProgramacionClaseDe(crudo(t, `{
		"_id":"pc1","dia":"X","horaInicio":"08:00","horaFin":"09:00",
		"aula":{"numeroAula":"201"},
		"programacionProfesor":{"_id":"pp1","profesor":{"_id":"t1","nombres":"Eva","apellidos":"Luna"}},
		"beneficiarios":[
			{"beneficiarioId":{"_id":"b1","nombre":"Sofía"},"cursoId":{"nombre":"Violín"}},
			{"beneficiarioId":{"_id":"b2","nombre":"Marco"}}
		]
	}`))
	if c.Aula != "201" || c.Profesor.ID != "t1" || c.ProgProfesorID != "pp1" || c.Curso != "Violín" {
		t.Fatalf("clase mal normalizada: %#v", c)
	}
	if len(c.Beneficiarios) != 2 || !c.Inscrito("b2") || c.Inscrito("b9") {
		t.Fatalf("inscritos: %#v", c.Beneficiarios)
	}
}

func TestUsuarioDeRolAmbasFormas(t *testing.T) {
	u := UsuarioDe(crudo(t, `{"_id":"u1","nombre":"Ana","rol":{"nombre":"administrador"},"estado":true}`))
	if u.Rol != "administrador" || u.Estado == nil || !*u.Estado {
		t.Fatalf("rol como objeto: %#v", u)
	}
	v := UsuarioDe(crudo(t, `{"_id":"u2","rol":"profesor"}`))
	if v.Rol != "profesor" {
		t.Fatalf("rol como cadena: %#v", v)
	}
}

func TestBeneficiarioEsCliente(t *testing.T) {
	b := BeneficiarioDe(crudo(t, `{"_id":"b1","clienteId":"b1"}`))
	if !b.EsCliente() {
		t.Fatal("clienteId igual a su id: es cliente")
	}
	c := BeneficiarioDe(crudo(t, `{"_id":"b2","clienteId":"b1"}`))
	if c.EsCliente() {
		t.Fatal("clienteId ajeno: no es cliente")
	}
	d := BeneficiarioDe(crudo(t, `{"_id":"b3"}`))
	if d.EsCliente() {
		t.Fatal("sin clienteId no es cliente")
	}
}

func TestAulaDeCapacidad(t *testing.T) {
	a := AulaDe(crudo(t, `{"_id":"a1","numeroAula":"305","capacidad":12,"estado":"disponible"}`))
	if a.Numero != "305" || a.Capacidad == nil || *a.Capacidad != 12 {
		t.Fatalf("aula: %#v", a)
	}
}
