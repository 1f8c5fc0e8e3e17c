package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func servidor(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestListMandaTokenBearer(t *testing.T) {
	var visto string
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		visto = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	})
	if _, err := c.List(context.Background(), "tok-123", "/cursos", time.Second); err != nil {
		t.Fatal(err)
	}
	if visto != "Bearer tok-123" {
		t.Fatalf("Authorization=%q", visto)
	}
}

func TestListToleraLosTresSobres(t *testing.T) {
	cuerpos := []string{
		`[{"_id":"1"},{"_id":"2"}]`,
		`{"data":[{"_id":"1"},{"_id":"2"}]}`,
		`{"asistencias":[{"_id":"1"},{"_id":"2"}]}`,
	}
	for _, cuerpo := range cuerpos {
		c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(cuerpo))
		})
		out, err := c.List(context.Background(), "", "/api/asistencias", time.Second, "asistencias")
		if err != nil {
			t.Fatalf("cuerpo %s: %v", cuerpo, err)
		}
		if len(out) != 2 || out[0]["_id"] != "1" {
			t.Fatalf("cuerpo %s: %#v", cuerpo, out)
		}
	}
}

func TestListSobreDesconocido(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"otra_cosa":[]}`))
	})
	if _, err := c.List(context.Background(), "", "/cursos", time.Second); err == nil {
		t.Fatal("un sobre desconocido debe dar error")
	}
}

func TestListErrorHTTP(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "sin permiso", http.StatusForbidden)
	})
	_, err := c.List(context.Background(), "tok", "/api/ventas", time.Second)
	if err == nil {
		t.Fatal("un 403 debe dar error")
	}
	if !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "/api/ventas") {
		t.Fatalf("el error debe nombrar endpoint y código: %v", err)
	}
}

func TestLogin(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Errorf("petición inesperada: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"token":"jwt-1","usuario":{"id":"u1","nombre":"Ana","rol":{"id":"r1","nombre":"administrador"}}}`))
	})
	resp, err := c.Login(context.Background(), "ana@academia.co", "secreta")
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Token != "jwt-1" || resp.Usuario["nombre"] != "Ana" {
		t.Fatalf("login mal decodificado: %#v", resp)
	}
}

func TestVentasNormaliza(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"_id":"v1","codigoVenta":"CU-1","beneficiarioId":{"_id":"b1","nombre":"Sofía"}}]`))
	})
	ventas, err := c.Ventas(context.Background(), "tok")
	if err != nil {
		t.Fatal(err)
	}
	if len(ventas) != 1 || ventas[0].Beneficiario.ID != "b1" {
		t.Fatalf("ventas: %#v", ventas)
	}
}
