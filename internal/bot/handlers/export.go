package handlers

import (
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/AcademiaAllegro/telegram-academia-bot/internal/bot/shared/fsmutil"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/export"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/listview"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/metrics"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/tg"
)

// ExportarLista vuelca la lista activa (con la búsqueda aplicada) a un
// libro de Excel y lo manda como documento. Se engancha en
// listview.Manager.OnExport.
func (d Deps) ExportarLista(bot *tgbotapi.BotAPI, chatID int64, l *listview.Lista) {
	if !fsmutil.SetPending(chatID, "export") {
		sendText(bot, chatID, "⏳ Ya hay una exportación en curso.")
		return
	}

	// OnExport nos llama con el candado de la lista tomado: copiamos todo
	// aquí y la goroutine ya no toca la Lista compartida
	titulo := l.Titulo
	header := make([]string, len(l.Cols))
	for i, c := range l.Cols {
		header[i] = c.Etiqueta
	}
	filtradas := l.Filtradas()
	rows := make([][]string, len(filtradas))
	for i, f := range filtradas {
		row := make([]string, len(l.Cols))
		for j, c := range l.Cols {
			row[j] = f[c.Clave]
		}
		rows[i] = row
	}

	go func() {
		defer fsmutil.ClearPending(chatID, "export")

		wb, err := export.NewWorkbook([]export.SheetSpec{{Title: titulo, Header: header, Rows: rows}})
		if err != nil {
			d.exportError(bot, chatID, err)
			return
		}
		path, err := wb.SaveTemp(titulo)
		if err != nil {
			d.exportError(bot, chatID, err)
			return
		}
		defer func() { _ = os.Remove(path) }()

		doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
		doc.Caption = "📤 " + titulo
		if _, err := tg.Send(bot, doc); err != nil {
			d.exportError(bot, chatID, err)
		}
	}()
}

func (d Deps) exportError(bot *tgbotapi.BotAPI, chatID int64, err error) {
	metrics.HandlerErrors.Inc()
	d.Log.Error("exportando lista", zap.Int64("chat_id", chatID), zap.Error(err))
	sendText(bot, chatID, "⚠️ No se pudo generar el archivo. Intenta de nuevo.")
}
