// Package session guarda la sesión autenticada de cada chat en Postgres,
// así el login sobrevive reinicios del bot.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AcademiaAllegro/telegram-academia-bot/internal/academy"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/scope"
)

var ErrNoSession = errors.New("session: no hay sesión para el chat")

// Session es la identidad activa de un chat: quién es, con qué rol trabaja
// y el token que el backend espera en cada petición.
type Session struct {
	ChatID        int64
	Token         string
	Usuario       academy.Persona
	Rol           scope.Rol
	Roles         []academy.Rol // todos los roles del usuario, para el cambio de rol
	CreadaEn      time.Time
	ActualizadaEn time.Time
}

// TieneVariosRoles indica si corresponde ofrecer el cambio de rol.
func (s *Session) TieneVariosRoles() bool {
	return len(s.Roles) > 1
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (st *Store) Get(ctx context.Context, chatID int64) (*Session, error) {
	var (
		s          Session
		usuarioRaw []byte
		rolesRaw   []byte
		rol        string
	)
	err := st.db.QueryRowContext(ctx, `
		SELECT chat_id, token, usuario, rol, roles, created_at, updated_at
		FROM sessions WHERE chat_id = $1`, chatID).
		Scan(&s.ChatID, &s.Token, &usuarioRaw, &rol, &rolesRaw, &s.CreadaEn, &s.ActualizadaEn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	if err := json.Unmarshal(usuarioRaw, &s.Usuario); err != nil {
		return nil, fmt.Errorf("session get: usuario: %w", err)
	}
	if err := json.Unmarshal(rolesRaw, &s.Roles); err != nil {
		return nil, fmt.Errorf("session get: roles: %w", err)
	}
	s.Rol = scope.Rol(rol)
	return &s, nil
}

// Put inserta o reemplaza la sesión completa. El cambio de rol pasa por
// aquí: token e identidad se sustituyen en una sola sentencia.
func (st *Store) Put(ctx context.Context, s *Session) error {
	usuarioRaw, err := json.Marshal(s.Usuario)
	if err != nil {
		return fmt.Errorf("session put: usuario: %w", err)
	}
	if s.Roles == nil {
		s.Roles = []academy.Rol{}
	}
	rolesRaw, err := json.Marshal(s.Roles)
	if err != nil {
		return fmt.Errorf("session put: roles: %w", err)
	}
	_, err = st.db.ExecContext(ctx, `
		INSERT INTO sessions (chat_id, token, usuario, rol, roles, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (chat_id) DO UPDATE SET
			token = EXCLUDED.token,
			usuario = EXCLUDED.usuario,
			rol = EXCLUDED.rol,
			roles = EXCLUDED.roles,
			updated_at = now()`,
		s.ChatID, s.Token, usuarioRaw, string(s.Rol), rolesRaw)
	if err != nil {
		return fmt.Errorf("session put: %w", err)
	}
	return nil
}

// Touch refresca updated_at para que la sesión activa no caduque.
func (st *Store) Touch(ctx context.Context, chatID int64) error {
	_, err := st.db.ExecContext(ctx, `UPDATE sessions SET updated_at = now() WHERE chat_id = $1`, chatID)
	if err != nil {
		return fmt.Errorf("session touch: %w", err)
	}
	return nil
}

func (st *Store) Delete(ctx context.Context, chatID int64) error {
	_, err := st.db.ExecContext(ctx, `DELETE FROM sessions WHERE chat_id = $1`, chatID)
	if err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

// DeleteIdleBefore borra sesiones sin actividad desde antes del corte.
// Devuelve cuántas cayeron.
func (st *Store) DeleteIdleBefore(ctx context.Context, corte time.Time) (int64, error) {
	res, err := st.db.ExecContext(ctx, `DELETE FROM sessions WHERE updated_at < $1`, corte)
	if err != nil {
		return 0, fmt.Errorf("session sweep: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
