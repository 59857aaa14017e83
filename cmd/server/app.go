package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/lumen-api/internal/api"
	"github.com/phrazzld/lumen-api/internal/config"
	"github.com/phrazzld/lumen-api/internal/events"
	"github.com/phrazzld/lumen-api/internal/generation"
	"github.com/phrazzld/lumen-api/internal/platform/elevenlabs"
	"github.com/phrazzld/lumen-api/internal/platform/gemini"
	"github.com/phrazzld/lumen-api/internal/platform/media"
	"github.com/phrazzld/lumen-api/internal/platform/memstore"
	"github.com/phrazzld/lumen-api/internal/platform/metrics"
	"github.com/phrazzld/lumen-api/internal/platform/openai"
	"github.com/phrazzld/lumen-api/internal/platform/placehold"
	"github.com/phrazzld/lumen-api/internal/platform/postgres"
	"github.com/phrazzld/lumen-api/internal/platform/rediscache"
	"github.com/phrazzld/lumen-api/internal/service"
	"github.com/phrazzld/lumen-api/internal/service/auth"
	"github.com/phrazzld/lumen-api/internal/store"
	"github.com/phrazzld/lumen-api/internal/task"
	"github.com/redis/go-redis/v9"
)

// application holds the wired dependencies of the running server.
type application struct {
	config     *config.Config
	logger     *slog.Logger
	metrics    *metrics.Metrics
	jwtService auth.JWTService
	services   api.Services

	// Optional resources, nil when the configured backend does not use them.
	db         *sql.DB
	redis      *redis.Client
	gcs        *media.GCSStore
	localMedia *media.LocalStore
	taskRunner *task.TaskRunner
}

// mediaEndpoints joins the media services behind api.MediaService.
type mediaEndpoints struct {
	*service.MediaService
	*service.AudioService
	*service.ImageService
}

var _ api.MediaService = mediaEndpoints{}

// newApplication wires every collaborator from cfg. Resources opened before a
// failure are released again.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (app *application, err error) {
	app = &application{
		config:  cfg,
		logger:  log,
		metrics: metrics.New(),
	}
	defer func() {
		if err != nil {
			app.cleanup()
			app = nil
		}
	}()

	app.warnAboutCredentials()

	stores, err := app.openStores(ctx)
	if err != nil {
		return nil, err
	}
	mediaStore, err := app.openMediaStore(ctx)
	if err != nil {
		return nil, err
	}
	cache, err := app.openCache(ctx)
	if err != nil {
		return nil, err
	}

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	lessonPolicy, err := service.ParseFailurePolicy(cfg.Generation.LessonFailurePolicy, service.FailSoft)
	if err != nil {
		return nil, fmt.Errorf("lesson failure policy: %w", err)
	}
	audioPolicy, err := service.ParseFailurePolicy(cfg.Generation.AudioFailurePolicy, service.FailSoft)
	if err != nil {
		return nil, fmt.Errorf("audio failure policy: %w", err)
	}
	imagePolicy, err := service.ParseFailurePolicy(cfg.Generation.ImageFailurePolicy, service.FailLoud)
	if err != nil {
		return nil, fmt.Errorf("image failure policy: %w", err)
	}

	content := generation.NewService(
		app.metrics.InstrumentGenerator(cfg.LLM.Provider, app.newContentGenerator(ctx)),
		log,
	)
	emitter := events.NewInMemoryEventEmitter(log)

	orchestrator, err := service.NewLessonOrchestrator(content, stores, log,
		service.WithLessonPolicy(lessonPolicy),
		service.WithEventEmitter(emitter),
		service.WithRecorder(app.metrics),
	)
	if err != nil {
		return nil, err
	}

	speech := elevenlabs.NewClient(elevenlabs.Config{
		APIKey:  cfg.Speech.ElevenLabsAPIKey,
		VoiceID: cfg.Speech.VoiceID,
		ModelID: cfg.Speech.ModelID,
		BaseURL: cfg.Speech.BaseURL,
	}, log)
	audioService, err := service.NewAudioService(speech, mediaStore, stores.AudioFiles, log,
		service.WithMediaPolicy(audioPolicy),
		service.WithMediaRecorder(app.metrics),
		service.WithMediaCache(cache),
	)
	if err != nil {
		return nil, err
	}
	imageService, err := service.NewImageService(placehold.NewGenerator(content, log), stores.Images, log,
		service.WithMediaPolicy(imagePolicy),
		service.WithMediaRecorder(app.metrics),
		service.WithMediaCache(cache),
	)
	if err != nil {
		return nil, err
	}
	mediaService, err := service.NewMediaService(stores.Lessons, audioService, imageService, log)
	if err != nil {
		return nil, err
	}

	lessonService, err := service.NewLessonService(stores, cache, log)
	if err != nil {
		return nil, err
	}
	worksheetService, err := service.NewWorksheetService(stores.Worksheets, cache, log)
	if err != nil {
		return nil, err
	}
	flashcardService, err := service.NewFlashcardService(stores.Flashcards, cache, log)
	if err != nil {
		return nil, err
	}

	if cfg.Generation.AutoMedia {
		app.setupTaskRunner(emitter, mediaService)
	}

	app.services = api.Services{
		Generator:  orchestrator,
		Lessons:    lessonService,
		Worksheets: worksheetService,
		Flashcards: flashcardService,
		Media:      mediaEndpoints{mediaService, audioService, imageService},
	}
	return app, nil
}

// Run serves HTTP until ctx is cancelled or a shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	return app.startHTTPServer(ctx, app.setupRouter())
}

func (app *application) warnAboutCredentials() {
	for _, report := range config.ValidateCredentials(app.config) {
		if !report.Valid() {
			app.logger.Warn("credential check failed",
				slog.String("credential", report.Name),
				slog.String("problems", strings.Join(report.Errors, "; ")))
		}
	}
}

func (app *application) openStores(ctx context.Context) (store.Stores, error) {
	if app.config.Database.Backend == "memory" {
		app.logger.Warn("using the in-memory store, data is lost on restart")
		return memstore.New(), nil
	}
	db, err := postgres.Open(ctx, app.config.Database.URL, app.logger)
	if err != nil {
		return store.Stores{}, err
	}
	app.db = db
	return postgres.NewStores(db, app.logger), nil
}

func (app *application) openMediaStore(ctx context.Context) (service.MediaStore, error) {
	cfg := app.config.Media
	if cfg.Backend == "gcs" {
		gcs, err := media.NewGCSStore(ctx, media.GCSConfig{
			Bucket:          cfg.GCSBucket,
			CDNDomain:       cfg.GCSCDNDomain,
			CredentialsFile: cfg.GCSCredentialsFile,
		}, app.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open GCS media store: %w", err)
		}
		app.gcs = gcs
		return gcs, nil
	}
	local, err := media.NewLocalStore(cfg.LocalDir, cfg.PublicBaseURL, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open local media store: %w", err)
	}
	app.localMedia = local
	return local, nil
}

func (app *application) openCache(ctx context.Context) (service.MaterialsCache, error) {
	cfg := app.config.Cache
	if cfg.RedisURL == "" {
		return rediscache.Nop{}, nil
	}
	cache, client, err := rediscache.Open(ctx, cfg.RedisURL, time.Duration(cfg.TTLSeconds)*time.Second, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open materials cache: %w", err)
	}
	app.redis = client
	return cache, nil
}

// newContentGenerator builds the configured provider. A provider that cannot
// be built is replaced by one failing every call, so lesson generation
// degrades per request instead of preventing startup.
func (app *application) newContentGenerator(ctx context.Context) generation.ContentGenerator {
	cfg := app.config.LLM
	switch cfg.Provider {
	case "openai":
		gen, err := openai.NewGenerator(app.logger, openai.Config{
			APIKey:    cfg.OpenAIAPIKey,
			BaseURL:   cfg.OpenAIBaseURL,
			ModelName: cfg.ModelName,
		})
		if err != nil {
			return app.unavailableGenerator(err)
		}
		return gen
	default:
		gen, err := gemini.NewGeminiGenerator(ctx, app.logger, gemini.Config{
			APIKey:    cfg.GeminiAPIKey,
			ModelName: cfg.ModelName,
		})
		if err != nil {
			return app.unavailableGenerator(err)
		}
		return gen
	}
}

func (app *application) unavailableGenerator(err error) generation.ContentGenerator {
	app.logger.Warn("content generation is unavailable",
		slog.String("provider", app.config.LLM.Provider),
		slog.String("error", err.Error()))
	return generation.Unavailable(err)
}

// setupTaskRunner generates media in the background for every created lesson.
func (app *application) setupTaskRunner(emitter *events.InMemoryEventEmitter, generator task.MediaGenerator) {
	runner := task.NewTaskRunner(task.TaskRunnerConfig{
		WorkerCount: app.config.Generation.WorkerCount,
		QueueSize:   app.config.Generation.QueueSize,
	}, app.logger)
	runner.SetErrorHandler(func(t task.Task, err error) {
		app.logger.Error("background task failed",
			slog.String("task_id", t.ID().String()),
			slog.String("task_type", t.Type()),
			slog.String("error", err.Error()))
	})

	factory := task.NewMediaGenerationTaskFactory(generator, app.logger)
	emitter.RegisterHandler(task.NewTaskFactoryEventHandler(factory, runner, app.logger))

	runner.Start()
	app.taskRunner = runner
	app.logger.Info("background media generation enabled",
		slog.Int("workers", app.config.Generation.WorkerCount),
		slog.Int("queue_size", app.config.Generation.QueueSize))
}

// cleanup stops background work and releases every opened resource.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("failed to close redis client", slog.String("error", err.Error()))
		}
	}
	if app.gcs != nil {
		if err := app.gcs.Close(); err != nil {
			app.logger.Error("failed to close GCS client", slog.String("error", err.Error()))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}
}
