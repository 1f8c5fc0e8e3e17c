package api

import (
	"context"
	"time"

	"github.com/AcademiaAllegro/telegram-academia-bot/internal/academy"
)

// Métodos tipados por colección. Cada uno trae la colección cruda, la pasa
// por su normalizador y devuelve registros canónicos. Los timeouts vienen
// del comportamiento observado del backend: las colecciones con relaciones
// pobladas (ventas, programaciones) tardan bastante más que los catálogos.

func coleccion[T any](ctx context.Context, c *Client, token, path string, timeout time.Duration, de func(map[string]any) T, wrapKeys ...string) ([]T, error) {
	crudos, err := c.List(ctx, token, path, timeout, wrapKeys...)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(crudos))
	for _, m := range crudos {
		out = append(out, de(m))
	}
	return out, nil
}

func (c *Client) Ventas(ctx context.Context, token string) ([]academy.Venta, error) {
	return coleccion(ctx, c, token, "/api/ventas", 20*time.Second, academy.VentaDe, "ventas")
}

func (c *Client) Pagos(ctx context.Context, token string) ([]academy.Pago, error) {
	return coleccion(ctx, c, token, "/api/pagos", 15*time.Second, academy.PagoDe, "pagos")
}

func (c *Client) Asistencias(ctx context.Context, token string) ([]academy.Asistencia, error) {
	return coleccion(ctx, c, token, "/api/asistencias", 15*time.Second, academy.AsistenciaDe, "asistencias")
}

func (c *Client) ProgramacionesDeClase(ctx context.Context, token string) ([]academy.ProgramacionClase, error) {
	return coleccion(ctx, c, token, "/programacion_de_clases", 20*time.Second, academy.ProgramacionClaseDe, "programacion_de_clases")
}

func (c *Client) ProgramacionesDeProfesor(ctx context.Context, token string) ([]academy.ProgramacionProfesor, error) {
	return coleccion(ctx, c, token, "/programacion_de_profesores", 15*time.Second, academy.ProgramacionProfesorDe, "programacion_de_profesores")
}

func (c *Client) Cursos(ctx context.Context, token string) ([]academy.Curso, error) {
	return coleccion(ctx, c, token, "/cursos", 10*time.Second, academy.CursoDe, "cursos")
}

func (c *Client) Matriculas(ctx context.Context, token string) ([]academy.Matricula, error) {
	return coleccion(ctx, c, token, "/matriculas", 10*time.Second, academy.MatriculaDe, "matriculas")
}

func (c *Client) Beneficiarios(ctx context.Context, token string) ([]academy.Beneficiario, error) {
	return coleccion(ctx, c, token, "/beneficiarios", 15*time.Second, academy.BeneficiarioDe, "beneficiarios")
}

// Clientes existe como colección propia en el backend, pero trae lo mismo
// que los beneficiarios con clienteId propio; las pantallas derivan de
// /beneficiarios para no pagar dos viajes.
func (c *Client) Clientes(ctx context.Context, token string) ([]academy.Beneficiario, error) {
	return coleccion(ctx, c, token, "/clientes", 15*time.Second, academy.BeneficiarioDe, "clientes")
}

func (c *Client) Profesores(ctx context.Context, token string) ([]academy.Profesor, error) {
	return coleccion(ctx, c, token, "/profesores", 10*time.Second, academy.ProfesorDe, "profesores")
}

func (c *Client) Usuarios(ctx context.Context, token string) ([]academy.Usuario, error) {
	return coleccion(ctx, c, token, "/api/usuarios", 10*time.Second, academy.UsuarioDe, "usuarios")
}

func (c *Client) Aulas(ctx context.Context, token string) ([]academy.Aula, error) {
	return coleccion(ctx, c, token, "/aulas", 5*time.Second, academy.AulaDe, "aulas")
}

func (c *Client) Roles(ctx context.Context, token string) ([]academy.Rol, error) {
	return coleccion(ctx, c, token, "/roles", 5*time.Second, academy.RolDe, "roles")
}
