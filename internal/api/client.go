// Package api es el cliente HTTP del backend de la academia. Una petición
// por operación, token Bearer por petición y sin reintentos: quien llama
// decide qué hacer con el error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AcademiaAllegro/telegram-academia-bot/internal/metrics"
)

type Client struct {
	base string
	http *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{},
	}
}

type LoginResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Token   string         `json:"token"`
	Usuario map[string]any `json:"usuario"`
}

// Login autentica con correo y contraseña.
func (c *Client) Login(ctx context.Context, correo, contrasena string) (*LoginResponse, error) {
	body, err := c.post(ctx, "/login", "", map[string]any{
		"correo":     correo,
		"contrasena": contrasena,
	}, 15*time.Second)
	if err != nil {
		return nil, err
	}
	var out LoginResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("/login: decodificando respuesta: %w", err)
	}
	return &out, nil
}

// CambiarRol pide un token nuevo para otro de los roles del usuario.
func (c *Client) CambiarRol(ctx context.Context, token, usuarioID, rolID string) (*LoginResponse, error) {
	body, err := c.post(ctx, "/login/cambiar-rol", token, map[string]any{
		"usuarioId":  usuarioID,
		"nuevoRolId": rolID,
	}, 15*time.Second)
	if err != nil {
		return nil, err
	}
	var out LoginResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("/login/cambiar-rol: decodificando respuesta: %w", err)
	}
	return &out, nil
}

// List trae una colección. El backend no es consistente con el sobre de la
// respuesta: a veces manda el arreglo pelado, a veces {"data": [...]}, a
// veces lo envuelve bajo el nombre de la colección. Se aceptan las tres
// formas; wrapKeys lista los nombres de colección a probar.
func (c *Client) List(ctx context.Context, token, path string, timeout time.Duration, wrapKeys ...string) ([]map[string]any, error) {
	body, err := c.get(ctx, path, token, timeout)
	if err != nil {
		return nil, err
	}

	var arr []map[string]any
	if err := json.Unmarshal(body, &arr); err == nil {
		return arr, nil
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("%s: respuesta inesperada: %w", path, err)
	}
	for _, k := range append([]string{"data"}, wrapKeys...) {
		raw, ok := wrapped[k]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &arr); err != nil {
			return nil, fmt.Errorf("%s: clave %q: %w", path, k, err)
		}
		return arr, nil
	}
	return nil, fmt.Errorf("%s: la respuesta no trae ninguna colección conocida", path)
}

func (c *Client) get(ctx context.Context, path, token string, timeout time.Duration) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, token, nil, timeout)
}

func (c *Client) post(ctx context.Context, path, token string, payload any, timeout time.Duration) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: codificando cuerpo: %w", path, err)
	}
	return c.do(ctx, http.MethodPost, path, token, raw, timeout)
}

func (c *Client) do(ctx context.Context, method, path, token string, payload []byte, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	inicio := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveAPI(path, "error", time.Since(inicio))
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.ObserveAPI(path, statusClass(resp.StatusCode), time.Since(inicio))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: leyendo respuesta: %w", path, err)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%s: http %d: %s", path, resp.StatusCode, resumen(raw))
	}
	return raw, nil
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}

// resumen recorta el cuerpo de error para no arrastrar páginas HTML enteras
// al log.
func resumen(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > 200 {
		s = s[:200] + "…"
	}
	return s
}
