package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spendenlauf-api/core/config"
	"spendenlauf-api/core/database"
	"spendenlauf-api/core/logger"
	"spendenlauf-api/core/mail"
	"spendenlauf-api/core/middleware"
	"spendenlauf-api/core/ratelimit"
	"spendenlauf-api/core/tasks"
	"spendenlauf-api/modules/auth"
	"spendenlauf-api/modules/event"
	"spendenlauf-api/modules/notification"
	"spendenlauf-api/modules/registration"
	"spendenlauf-api/modules/team"
	"spendenlauf-api/modules/timeslot"

	validatorlib "github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

// Validator adapts go-playground/validator to echo's Validator interface.
type Validator struct {
	validator *validatorlib.Validate
}

func (v *Validator) Validate(i any) error {
	return v.validator.Struct(i)
}

// Run boots the API: config, database, mail, queue, modules, then blocks
// until SIGINT/SIGTERM and shuts down gracefully.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.Logging.Level)
	defer logger.Sync()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = &Validator{validator: validatorlib.New()}
	e.Use(echoMw.Recover())
	e.Use(echoMw.RequestID())
	e.Use(echoMw.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	mw := middleware.NewMiddleware()

	var mailer mail.Mailer
	if cfg.Mail.Enabled {
		smtpMailer, err := mail.NewSMTPMailer(cfg.Mail)
		if err != nil {
			return err
		}
		mailer = smtpMailer
	} else {
		mailer = mail.NewLogMailer()
	}

	// Without Redis the rate limiter runs in memory and confirmations are
	// sent inline instead of queued.
	var (
		limiter ratelimit.Limiter
		client  *asynq.Client
		worker  *asynq.Server
		mux     *asynq.ServeMux
	)
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter = ratelimit.NewRedisLimiter(rdb)
		client = tasks.NewClient(cfg.Redis)
		worker = tasks.NewServer(cfg.Redis)
		mux = asynq.NewServeMux()
	} else {
		limiter = ratelimit.NewMemoryLimiter()
	}

	dispatcher := notification.Init(client, mailer, mux)

	events := event.Init(e, &db, mw)
	teams := team.Init(e, &db)
	timeslots := timeslot.Init(e, &db, mw)
	auth.Init(e)
	registration.Init(e, &db, events, teams, timeslots, limiter, dispatcher)

	if worker != nil {
		go func() {
			if err := worker.Run(mux); err != nil {
				logger.Error("Server:AsynqWorker", err)
			}
		}()
	}

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Start", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("Server:Shutdown:Begin")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server:Shutdown", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
	if client != nil {
		if err := client.Close(); err != nil {
			logger.Error("Server:Shutdown:AsynqClient", err)
		}
	}

	logger.Info("Server:Shutdown:Done")
	return nil
}
