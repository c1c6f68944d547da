package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zhotheone/nailapp/internal/audit"
	"github.com/zhotheone/nailapp/internal/cache"
	"github.com/zhotheone/nailapp/internal/config"
	dbpkg "github.com/zhotheone/nailapp/internal/db"
	"github.com/zhotheone/nailapp/internal/infra/objectstore"
	infraRepo "github.com/zhotheone/nailapp/internal/infra/repository"
	"github.com/zhotheone/nailapp/internal/reminder"
	"github.com/zhotheone/nailapp/internal/routes"
	"github.com/zhotheone/nailapp/internal/timezone"
	authuc "github.com/zhotheone/nailapp/internal/usecase/auth"
	"github.com/zhotheone/nailapp/internal/validators"
)

func main() {

	cfg := config.Load()
	loc := timezone.Location(cfg.Timezone)
	db := dbpkg.NewDB(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	validators.Register()

	// ======================================================
	// SHARED STATE
	// ======================================================
	store := cache.New(ctx, cfg.RedisURL)
	if mem, ok := store.(*cache.Memory); ok {
		go mem.RunJanitor(ctx, time.Minute)
	}

	dispatcher := audit.NewDispatcher(audit.New(db))

	reminders := reminder.NewScheduler(reminder.LogNotifier{Location: loc}, cfg.ReminderLead)
	if n, err := reminders.Rebuild(ctx, infraRepo.NewAppointmentGormRepository(db)); err != nil {
		log.Printf("reminder_rebuild_error error=%q", err.Error())
	} else {
		log.Printf("reminders_rebuilt count=%d", n)
	}

	if _, err := authuc.BootstrapAdmin(
		ctx,
		infraRepo.NewUserGormRepository(db),
		cfg.AdminUsername,
		cfg.AdminPassword,
		authuc.PasswordCost,
	); err != nil {
		log.Fatalf("failed to bootstrap admin: %v", err)
	}

	deps := routes.Deps{
		DB:        db,
		Config:    cfg,
		Location:  loc,
		Cache:     store,
		Audit:     dispatcher,
		Reminders: reminders,
	}
	// a nil *S3Store must not become a non-nil interface
	if s3 := objectstore.NewS3(cfg); s3 != nil {
		deps.Store = s3
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Fatalf("invalid TRUSTED_PROXIES: %v", err)
	}
	r.Use(gin.Logger())
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s (tz=%s)", cfg.Addr(), loc)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http_shutdown_error error=%q", err.Error())
	}

	reminders.Stop()
	dispatcher.Close()
	if err := store.Close(); err != nil {
		log.Printf("cache_close_error error=%q", err.Error())
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Printf("server stopped")
}
