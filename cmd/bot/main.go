package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/AcademiaAllegro/telegram-academia-bot/internal/api"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/app"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/config"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/db"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/jobs"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/listview"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/logging"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/metrics"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/observability"
	"github.com/AcademiaAllegro/telegram-academia-bot/internal/session"
)

var release = "dev"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Closer()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, release)
	if err != nil {
		log.Sugar.Warnw("sentry deshabilitado", "err", err)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Sugar.Fatalw("abriendo la base", "err", err)
	}
	defer func() { _ = database.Close() }()

	if err := db.Migrate(database); err != nil {
		log.Sugar.Fatalw("aplicando migraciones", "err", err)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Sugar.Fatalw("conectando con Telegram", "err", err)
	}
	log.Sugar.Infow("bot autorizado", "usuario", bot.Self.UserName)

	deps := &app.Deps{
		Bot:      bot,
		API:      api.New(cfg.APIBaseURL),
		Sessions: session.NewStore(database),
		Lists:    listview.NewManager(),
		Log:      log.Base,
		Loc:      cfg.Location,
		Limiter:  app.NewChatLimiter(),
	}
	deps.Lists.OnExport = func(b *tgbotapi.BotAPI, chatID int64, l *listview.Lista) {
		deps.Handlers().ExportarLista(b, chatID, l)
	}

	app.StartHTTP(ctx, cfg.HTTPAddr, database)

	runner := jobs.New(ctx)
	runner.Every(12*time.Hour, "session_sweep", jobs.SessionSweep(deps.Sessions, cfg.SessionTTL, log.Base))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := bot.GetUpdatesChan(u)

	log.Sugar.Infow("escuchando updates", "http", cfg.HTTPAddr)
	for {
		select {
		case <-ctx.Done():
			log.Sugar.Infow("apagando")
			bot.StopReceivingUpdates()
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			metrics.BotUpdates.Inc()
			go func(upd tgbotapi.Update) {
				defer func() {
					if r := recover(); r != nil {
						metrics.HandlerErrors.Inc()
						log.Base.Error("pánico atendiendo update", zap.Any("panic", r))
					}
				}()
				deps.HandleUpdate(ctx, upd)
			}(upd)
		}
	}
}
