// Package listview pinta cualquier colección como tarjetas paginadas en un
// mensaje de Telegram, con búsqueda, tamaños de página y exportación.
// Cada pantalla del bot arma una Lista (título, columnas, filas) y el
// Manager se encarga del resto.
package listview

import (
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/AcademiaAllegro/telegram-academia-bot/internal/metrics"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/tg"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/view"
)

var TamanosPagina = []int{5, 10, 20, 50}

const (
	tamanoDefecto   = 10
	maxTextoMensaje = 3600
)

// Lista es el estado de la lista mostrada en un chat.
type Lista struct {
	Titulo     string
	Cols       []view.Columna
	Filas      []view.Fila
	MsgVacio   string
	Exportable bool

	busqueda  string
	esperando bool // esperando texto de búsqueda
	pagina    int
	porPagina int
	messageID int
}

// Filtradas aplica la búsqueda activa: subcadena sin distinguir mayúsculas
// sobre el valor de cualquier columna.
func (l *Lista) Filtradas() []view.Fila {
	if l.busqueda == "" {
		return l.Filas
	}
	q := strings.ToLower(l.busqueda)
	out := make([]view.Fila, 0, len(l.Filas))
	for _, f := range l.Filas {
		for _, c := range l.Cols {
			if strings.Contains(strings.ToLower(f[c.Clave]), q) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

func (l *Lista) totalPaginas(n int) int {
	if n == 0 {
		return 1
	}
	return (n + l.porPagina - 1) / l.porPagina
}

// entrada es el estado de lista de un chat. Su mutex cubre tanto la lista
// activa como el contador de cargas: los updates llegan cada uno en su
// goroutine y las cargas llegan desde las goroutines de las pantallas, así
// que toda lectura o escritura de la Lista pasa por aquí.
type entrada struct {
	mu    sync.Mutex
	seq   uint64
	lista *Lista
}

// Manager mantiene la lista activa y el contador de cargas por chat.
type Manager struct {
	mu      sync.Mutex
	porChat map[int64]*entrada

	// OnExport se invoca con la lista activa cuando el usuario pide exportar.
	// Corre con el candado del chat tomado: debe copiar lo que necesite antes
	// de volver y no llamar de vuelta al Manager.
	OnExport func(bot *tgbotapi.BotAPI, chatID int64, l *Lista)
}

func NewManager() *Manager {
	return &Manager{porChat: make(map[int64]*entrada)}
}

func (m *Manager) entrada(chatID int64) *entrada {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.porChat[chatID]
	if !ok {
		e = &entrada{}
		m.porChat[chatID] = e
	}
	return e
}

// NuevaCarga asigna el token de la siguiente carga del chat. Las pantallas
// lo piden ANTES de salir a la red; si el usuario cambia de pantalla
// mientras tanto, la respuesta vieja trae un token superado y se descarta.
func (m *Manager) NuevaCarga(chatID int64) uint64 {
	e := m.entrada(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seq++
	return e.seq
}

// Vigente indica si el token sigue siendo el de la última carga pedida.
func (m *Manager) Vigente(chatID int64, token uint64) bool {
	e := m.entrada(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return token == e.seq
}

// Mostrar publica la lista si el token sigue vigente. Devuelve false cuando
// la carga llegó tarde y fue descartada.
func (m *Manager) Mostrar(bot *tgbotapi.BotAPI, chatID int64, token uint64, l *Lista) bool {
	e := m.entrada(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()
	if token != e.seq {
		metrics.ListCargasDescartadas.Inc()
		return false
	}
	if l.porPagina == 0 {
		l.porPagina = tamanoDefecto
	}
	anterior := e.lista
	e.lista = l

	if anterior != nil && anterior.messageID != 0 {
		quitarTeclado(bot, chatID, anterior.messageID)
	}
	m.pintar(bot, chatID, l, 0)
	return true
}

// Actual devuelve la lista activa del chat. Solo para inspección: los
// campos privados de la Lista se tocan únicamente dentro del Manager.
func (m *Manager) Actual(chatID int64) *Lista {
	e := m.entrada(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lista
}

// Cerrar retira la lista activa del chat y le apaga el teclado. Se usa al
// cerrar sesión y cuando llega un callback de un chat sin sesión.
func (m *Manager) Cerrar(bot *tgbotapi.BotAPI, chatID int64) {
	e := m.entrada(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lista == nil {
		return
	}
	msgID := e.lista.messageID
	e.lista = nil
	if msgID != 0 {
		quitarTeclado(bot, chatID, msgID)
	}
}

// HandleCallback procesa los botones lv_*. Devuelve false si el callback no
// es de la lista.
func (m *Manager) HandleCallback(bot *tgbotapi.BotAPI, cb *tgbotapi.CallbackQuery) bool {
	if cb.Data == "" || !strings.HasPrefix(cb.Data, "lv_") {
		return false
	}
	chatID := cb.Message.Chat.ID
	e := m.entrada(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()

	l := e.lista
	if l == nil {
		_, _ = tg.Request(bot, tgbotapi.NewCallback(cb.ID, ""))
		return true
	}

	switch {
	case cb.Data == "lv_prev":
		if l.pagina > 0 {
			l.pagina--
			m.pintar(bot, chatID, l, l.messageID)
		}
	case cb.Data == "lv_next":
		if l.pagina+1 < l.totalPaginas(len(l.Filtradas())) {
			l.pagina++
			m.pintar(bot, chatID, l, l.messageID)
		}
	case strings.HasPrefix(cb.Data, "lv_size_"):
		var n int
		if _, err := fmt.Sscanf(cb.Data, "lv_size_%d", &n); err == nil && n > 0 {
			l.porPagina = n
			l.pagina = 0
			m.pintar(bot, chatID, l, l.messageID)
		}
	case cb.Data == "lv_buscar":
		l.esperando = true
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("🔍 Escribe el texto a buscar en %s:", l.Titulo))
		_, _ = tg.Send(bot, msg)
	case cb.Data == "lv_limpiar":
		l.busqueda = ""
		l.pagina = 0
		m.pintar(bot, chatID, l, l.messageID)
	case cb.Data == "lv_exportar":
		if l.Exportable && m.OnExport != nil {
			m.OnExport(bot, chatID, l)
		}
	case cb.Data == "lv_cerrar":
		e.lista = nil
		quitarTeclado(bot, chatID, l.messageID)
	}
	_, _ = tg.Request(bot, tgbotapi.NewCallback(cb.ID, ""))
	return true
}

// HandleTexto consume el texto entrante como término de búsqueda cuando la
// lista lo está esperando.
func (m *Manager) HandleTexto(bot *tgbotapi.BotAPI, chatID int64, texto string) bool {
	e := m.entrada(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()
	l := e.lista
	if l == nil || !l.esperando {
		return false
	}
	l.esperando = false
	l.busqueda = strings.TrimSpace(texto)
	l.pagina = 0
	m.pintar(bot, chatID, l, l.messageID)
	return true
}

func (m *Manager) pintar(bot *tgbotapi.BotAPI, chatID int64, l *Lista, editarID int) {
	filtradas := l.Filtradas()
	total := l.totalPaginas(len(filtradas))
	if l.pagina >= total {
		l.pagina = total - 1
	}
	texto := l.texto(filtradas, total)
	teclado := l.teclado(total)

	if editarID != 0 {
		edit := tgbotapi.NewEditMessageText(chatID, editarID, texto)
		edit.ReplyMarkup = &teclado
		if _, err := tg.Send(bot, edit); err == nil {
			return
		}
		// si la edición falla (mensaje borrado), mandamos uno nuevo
	}
	msg := tgbotapi.NewMessage(chatID, texto)
	msg.ReplyMarkup = teclado
	sent, err := tg.Send(bot, msg)
	if err != nil {
		metrics.HandlerErrors.Inc()
		return
	}
	l.messageID = sent.MessageID
}

func (l *Lista) texto(filtradas []view.Fila, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 %s\n", l.Titulo)
	if l.busqueda != "" {
		fmt.Fprintf(&b, "🔍 «%s»\n", l.busqueda)
	}
	if len(filtradas) == 0 {
		if l.MsgVacio != "" {
			b.WriteString("\n" + l.MsgVacio)
		} else {
			b.WriteString("\nNo hay datos disponibles")
		}
		return b.String()
	}
	fmt.Fprintf(&b, "Página %d/%d · %d registros\n", l.pagina+1, total, len(filtradas))

	inicio := l.pagina * l.porPagina
	fin := inicio + l.porPagina
	if fin > len(filtradas) {
		fin = len(filtradas)
	}
	for _, f := range filtradas[inicio:fin] {
		b.WriteString("\n────────────\n")
		for _, c := range l.Cols {
			fmt.Fprintf(&b, "%s: %s\n", c.Etiqueta, f[c.Clave])
		}
		if b.Len() > maxTextoMensaje {
			b.WriteString("\n… demasiados datos para una página; reduce las filas por página.")
			break
		}
	}
	return b.String()
}

func (l *Lista) teclado(total int) tgbotapi.InlineKeyboardMarkup {
	var filas [][]tgbotapi.InlineKeyboardButton
	if total > 1 {
		filas = append(filas, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Anterior", "lv_prev"),
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d/%d", l.pagina+1, total), "lv_noop"),
			tgbotapi.NewInlineKeyboardButtonData("Siguiente ➡️", "lv_next"),
		))
	}
	var tam []tgbotapi.InlineKeyboardButton
	for _, n := range TamanosPagina {
		etiqueta := fmt.Sprintf("%d", n)
		if n == l.porPagina {
			etiqueta = fmt.Sprintf("· %d ·", n)
		}
		tam = append(tam, tgbotapi.NewInlineKeyboardButtonData(etiqueta, fmt.Sprintf("lv_size_%d", n)))
	}
	filas = append(filas, tam)

	acciones := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("🔍 Buscar", "lv_buscar"),
	}
	if l.busqueda != "" {
		acciones = append(acciones, tgbotapi.NewInlineKeyboardButtonData("✖️ Limpiar", "lv_limpiar"))
	}
	if l.Exportable {
		acciones = append(acciones, tgbotapi.NewInlineKeyboardButtonData("📤 Exportar", "lv_exportar"))
	}
	acciones = append(acciones, tgbotapi.NewInlineKeyboardButtonData("❌ Cerrar", "lv_cerrar"))
	filas = append(filas, acciones)

	return tgbotapi.NewInlineKeyboardMarkup(filas...)
}

func quitarTeclado(bot *tgbotapi.BotAPI, chatID int64, messageID int) {
	if messageID == 0 {
		return
	}
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	_, _ = tg.Request(bot, edit)
}
