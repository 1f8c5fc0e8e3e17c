//go:build testutil
// +build testutil

package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AcademiaAllegro/telegram-academia-bot/internal/academy"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/scope"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/session"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/testutil/testdb"
)

func TestStoreRoundtrip(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	st := session.NewStore(h.DB)

	if _, err := st.Get(ctx, 42); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("sin sesión debe dar ErrNoSession, fue %v", err)
	}

	s := &session.Session{
		ChatID:  42,
		Token:   "jwt-1",
		Usuario: academy.Persona{ID: "u1", Nombre: "Ana", Apellido: "Mora", Correo: "ana@academia.co"},
		Rol:     scope.Administrador,
		Roles: []academy.Rol{
			{ID: "r1", Nombre: "administrador"},
			{ID: "r2", Nombre: "profesor"},
		},
	}
	if err := st.Put(ctx, s); err != nil {
		t.Fatal(err)
	}

	leida, err := st.Get(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if leida.Token != "jwt-1" || leida.Usuario.Nombre != "Ana" || leida.Rol != scope.Administrador {
		t.Fatalf("sesión mal leída: %#v", leida)
	}
	if !leida.TieneVariosRoles() {
		t.Fatal("dos roles: TieneVariosRoles debe ser true")
	}
}

func TestStorePutReemplaza(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	st := session.NewStore(h.DB)

	primera := &session.Session{ChatID: 7, Token: "t1", Usuario: academy.Persona{ID: "u1"}, Rol: scope.Profesor}
	if err := st.Put(ctx, primera); err != nil {
		t.Fatal(err)
	}
	// el cambio de rol reemplaza token e identidad de una vez
	segunda := &session.Session{ChatID: 7, Token: "t2", Usuario: academy.Persona{ID: "u1"}, Rol: scope.Administrador}
	if err := st.Put(ctx, segunda); err != nil {
		t.Fatal(err)
	}

	leida, err := st.Get(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if leida.Token != "t2" || leida.Rol != scope.Administrador {
		t.Fatalf("el upsert debe reemplazar todo: %#v", leida)
	}
}

func TestStoreDeleteYSweep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	st := session.NewStore(h.DB)

	for _, chat := range []int64{1, 2, 3} {
		if err := st.Put(ctx, &session.Session{ChatID: chat, Token: "t", Rol: scope.Beneficiario}); err != nil {
			t.Fatal(err)
		}
	}
	if err := st.Delete(ctx, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Get(ctx, 2); !errors.Is(err, session.ErrNoSession) {
		t.Fatal("la sesión borrada no debe leerse")
	}

	// el corte en el futuro barre todo lo que quedó
	n, err := st.DeleteIdleBefore(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("esperaba barrer 2 sesiones, barrió %d", n)
	}
	if _, err := st.Get(ctx, 1); !errors.Is(err, session.ErrNoSession) {
		t.Fatal("las sesiones barridas no deben leerse")
	}
}
