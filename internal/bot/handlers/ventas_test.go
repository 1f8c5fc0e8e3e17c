package handlers

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/AcademiaAllegro/telegram-academia-bot/internal/academy"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/listview"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/scope"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/session"
)

// telegramFalso responde ok a cualquier método de la API de Telegram.
type telegramFalso struct{}

func (telegramFalso) Do(*http.Request) (*http.Response, error) {
	cuerpo := `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"academia","message_id":7,"chat":{"id":1},"date":1}}`
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(cuerpo)),
	}, nil
}

func botFalso(t *testing.T) *tgbotapi.BotAPI {
	t.Helper()
	bot, err := tgbotapi.NewBotAPIWithClient("123:prueba", tgbotapi.APIEndpoint, telegramFalso{})
	if err != nil {
		t.Fatal(err)
	}
	return bot
}

func venta(codigo, estado string, valor float64, fecha time.Time) academy.Venta {
	return academy.Venta{Codigo: codigo, Estado: estado, ValorTotal: &valor, Fecha: &fecha}
}

func TestVentasDelPeriodo(t *testing.T) {
	feb := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	st := &ventasState{
		anio: 2026,
		mes:  time.February,
		ventas: []academy.Venta{
			venta("CU-1", "vigente", 100, feb),
			venta("CU-2", "anulada", 200, feb), // anulada no cuenta
			venta("CU-3", "vigente", 300, mar), // otro mes
			venta("MA-1", "vigente", 400, feb), // otro prefijo
			{Codigo: "CU-4", Estado: "vigente"}, // sin fecha
		},
	}
	del := ventasDelPeriodo(st, "CU-")
	if len(del) != 1 || del[0].Codigo != "CU-1" {
		t.Fatalf("esperaba solo CU-1, obtuvo %#v", del)
	}
	if del := ventasDelPeriodo(st, "MA-"); len(del) != 1 || del[0].Codigo != "MA-1" {
		t.Fatalf("esperaba solo MA-1, obtuvo %#v", del)
	}
}

func TestResumenVentas(t *testing.T) {
	feb := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	st := &ventasState{
		anio: 2026,
		mes:  time.February,
		ventas: []academy.Venta{
			venta("CU-1", "vigente", 150000.5, feb),
			venta("CU-2", "vigente", 49999.5, feb),
			venta("MA-1", "vigente", 80000, feb),
		},
	}
	texto := resumenVentas(st)
	for _, quiere := range []string{"Febrero 2026", "🎹 Cursos: 2 ventas · $200.000,00", "📚 Matrículas: 1 ventas · $80.000,00"} {
		if !strings.Contains(texto, quiere) {
			t.Errorf("falta %q en:\n%s", quiere, texto)
		}
	}
}

// Un doble toque sobre los botones del resumen llega en dos goroutines:
// el período no puede corromperse. Correr con -race.
func TestVentasCallbacksConcurrentes(t *testing.T) {
	bot := botFalso(t)
	d := Deps{Lists: listview.NewManager(), Log: zap.NewNop(), Loc: time.UTC}
	s := &session.Session{ChatID: 99, Token: "t", Rol: scope.Administrador}

	feb := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	st := &ventasState{
		anio:   2026,
		mes:    time.June,
		ventas: []academy.Venta{venta("CU-1", "vigente", 100, feb)},
	}
	ventas.mu.Lock()
	ventas.m[99] = st
	ventas.mu.Unlock()

	datos := []string{"vts_prev", "vts_next", "vts_cursos", "vts_mats"}
	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(data string) {
			defer wg.Done()
			cb := &tgbotapi.CallbackQuery{
				ID:      "cb",
				Data:    data,
				Message: &tgbotapi.Message{MessageID: 5, Chat: &tgbotapi.Chat{ID: 99}},
			}
			if !d.HandleVentasCallback(bot, cb, s) {
				t.Error("los botones vts_ deben consumirse")
			}
		}(datos[i%len(datos)])
	}
	wg.Wait()

	st.mu.Lock()
	defer st.mu.Unlock()
	if st.mes < time.January || st.mes > time.December {
		t.Fatalf("mes fuera de rango tras los callbacks: %d", st.mes)
	}
}

func TestColsVentasPorRol(t *testing.T) {
	claves := func(rol scope.Rol, prefijo string) map[string]bool {
		m := make(map[string]bool)
		for _, c := range colsVentas(rol, prefijo) {
			m[c.Clave] = true
		}
		return m
	}

	admin := claves(scope.Administrador, "CU-")
	if !admin["beneficiario"] || !admin["curso"] || admin["matricula"] {
		t.Fatalf("columnas de admin para cursos: %#v", admin)
	}
	benef := claves(scope.Beneficiario, "CU-")
	if benef["beneficiario"] {
		t.Fatal("el beneficiario no debe ver su propia columna")
	}
	mats := claves(scope.Administrador, "MA-")
	if !mats["matricula"] || mats["curso"] {
		t.Fatalf("columnas de matrículas: %#v", mats)
	}
}

func TestColsAsistenciasPorRol(t *testing.T) {
	claves := func(rol scope.Rol) map[string]bool {
		m := make(map[string]bool)
		for _, c := range colsAsistencias(rol) {
			m[c.Clave] = true
		}
		return m
	}
	if claves(scope.Beneficiario)["beneficiario"] {
		t.Fatal("el beneficiario no debe ver la columna Beneficiario")
	}
	if claves(scope.Profesor)["profesor"] {
		t.Fatal("el profesor no debe ver la columna Profesor")
	}
	admin := claves(scope.Administrador)
	if !admin["beneficiario"] || !admin["profesor"] {
		t.Fatalf("el admin ve todas: %#v", admin)
	}
}
