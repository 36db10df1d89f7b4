package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/mindbridge-care/sentinel/pkg/config"
	"github.com/mindbridge-care/sentinel/pkg/lexicon"
	"github.com/mindbridge-care/sentinel/pkg/respond"
	"github.com/mindbridge-care/sentinel/pkg/risk"
	"github.com/mindbridge-care/sentinel/pkg/session"
)

const Version = "0.1.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		addr := ""
		if len(os.Args) > 2 {
			addr = os.Args[2]
		}
		runHTTPServer(addr)
	case "analyze":
		if len(os.Args) < 3 {
			fmt.Println("Usage: sentinel analyze <message>")
			os.Exit(1)
		}
		runCLIAnalyze(strings.Join(os.Args[2:], " "))
	case "version":
		fmt.Printf("Sentinel v%s\n", Version)
		fmt.Println("Crisis Risk Assessment & Escalation Engine")
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("Sentinel v%s - Crisis Risk Assessment & Escalation Engine\n\n", Version)
	fmt.Println("Usage:")
	fmt.Println("  sentinel serve [addr]      Start HTTP server (default: :8090)")
	fmt.Println("  sentinel analyze <message> Assess a single message from the command line")
	fmt.Println("  sentinel version           Show version")
	fmt.Println("")
	fmt.Println("Environment Variables:")
	fmt.Println("  SENTINEL_EVENT_STORE      memory (default), redis, or postgres")
	fmt.Println("  SENTINEL_REDIS_URL        Redis URL for the redis event store")
	fmt.Println("  SENTINEL_POSTGRES_DSN     Postgres DSN for the postgres event store")
	fmt.Println("  SENTINEL_SEED_DIR         Directory of YAML lexicon seed files")
	fmt.Println("  SENTINEL_RESOURCE_PATH    YAML emergency resource directory")
	fmt.Println("  SENTINEL_ENABLE_LLM       Enable the LLM crisis estimator")
	fmt.Println("  SENTINEL_ENABLE_SEMANTICS Enable the embedding-based estimator")
	fmt.Println("  SENTINEL_LLM_API_KEY      API key for the LLM estimator")
}

// ============================================================================
// Component wiring
// ============================================================================

func buildRegistry(cfg *config.Config) *lexicon.Registry {
	if cfg.SeedDir != "" {
		registry, err := lexicon.NewRegistryFromSeeds(cfg.SeedDir)
		if err != nil {
			log.Fatalf("lexicon seeds in %s: %v", cfg.SeedDir, err)
		}
		log.Printf("✓ Lexicon loaded with seeds from %s (%d entries)", cfg.SeedDir, registry.TermCount())
		return registry
	}
	registry := lexicon.Get()
	log.Printf("✓ Built-in lexicon loaded (%d entries)", registry.TermCount())
	return registry
}

func buildStore(ctx context.Context, cfg *config.Config) session.EventStore {
	switch cfg.EventStore {
	case config.StoreRedis:
		store, err := session.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis event store: %v", err)
		}
		log.Println("✓ Redis event store connected")
		return store
	case config.StorePostgres:
		store, err := session.NewPGStore(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("postgres event store: %v", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			log.Fatalf("postgres schema: %v", err)
		}
		log.Println("✓ Postgres event store connected")
		return store
	default:
		log.Println("✓ In-memory event store (single node)")
		return session.NewMemoryStore()
	}
}

func buildEngine(ctx context.Context, cfg *config.Config) (*risk.Engine, *respond.Composer) {
	registry := buildRegistry(cfg)
	tracker := session.NewTracker(buildStore(ctx, cfg), registry)

	var opts []risk.Option

	if cfg.EnableLLM {
		if est := risk.NewLLMEstimator(cfg); est != nil {
			opts = append(opts, risk.WithLLMEstimator(est))
			log.Printf("✓ LLM crisis estimator enabled (provider: %s)", cfg.LLMProvider)
		} else {
			log.Println("○ LLM crisis estimator disabled (provider: none)")
		}
	} else {
		log.Println("○ LLM crisis estimator disabled")
	}

	if cfg.EnableSemantics {
		embedBase := cfg.LLMBaseURL
		if embedBase == "" {
			embedBase = "http://localhost:11434"
		}
		semantic, err := risk.NewSemanticEstimator(risk.NewHTTPEmbeddingFunc("embeddinggemma", embedBase))
		if err == nil {
			seedCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
			err = semantic.SeedExemplars(seedCtx, nil)
			cancel()
		}
		if err != nil {
			log.Printf("○ Semantic estimator disabled (init failed: %v)", err)
		} else {
			opts = append(opts, risk.WithSemanticEstimator(semantic))
			log.Println("✓ Semantic estimator enabled (chromem-go)")
		}
	} else {
		log.Println("○ Semantic estimator disabled")
	}

	var resources *respond.ResourceDirectory
	if cfg.ResourcePath != "" {
		var err error
		resources, err = respond.LoadDirectory(cfg.ResourcePath)
		if err != nil {
			log.Fatalf("resource directory %s: %v", cfg.ResourcePath, err)
		}
		log.Printf("✓ Resource directory loaded from %s", cfg.ResourcePath)
	} else {
		log.Println("✓ Built-in resource directory")
	}

	engine := risk.NewEngine(cfg, registry, tracker, opts...)
	composer := respond.NewComposer(resources, cfg.Thresholds)
	return engine, composer
}

// ============================================================================
// HTTP Server Mode
// ============================================================================

func runHTTPServer(addr string) {
	cfg := config.NewDefaultConfig()
	if addr != "" {
		cfg.ListenAddr = addr
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	engine, composer := buildEngine(context.Background(), cfg)

	app := fiber.New(fiber.Config{
		AppName: "Sentinel",
	})

	app.Get("/health", func(c fiber.Ctx) error {
		h := engine.Health()
		return c.JSON(fiber.Map{
			"status":           h.Status,
			"version":          Version,
			"lexicon_terms":    h.LexiconTerms,
			"categories":       h.Categories,
			"patterns":         h.Patterns,
			"active_sessions":  h.ActiveSessions,
			"thresholds":       h.Thresholds,
			"llm_enabled":      h.LLMEnabled,
			"semantic_enabled": h.SemanticsEnabled,
		})
	})

	// Full crisis assessment for one message. The composed intervention is
	// attached whenever the verdict requires one.
	app.Post("/v1/analyze", func(c fiber.Ctx) error {
		var req struct {
			SessionID      string `json:"session_id"`
			Message        string `json:"message"`
			EmotionalState string `json:"emotional_state"`
		}
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
		}
		if req.SessionID == "" || req.Message == "" {
			return c.Status(400).JSON(fiber.Map{"error": "session_id and message are required"})
		}

		verdict := engine.Analyze(c.Context(), req.SessionID, req.Message, req.EmotionalState)

		resp := fiber.Map{"verdict": verdict}
		if verdict.RequiresIntervention {
			resp["response"] = composer.Compose(verdict)
		}
		return c.JSON(resp)
	})

	// Human-escalation check against the session's stored crisis history.
	app.Post("/v1/escalation", func(c fiber.Ctx) error {
		var req struct {
			SessionID   string `json:"session_id"`
			CrisisLevel int    `json:"crisis_level"`
		}
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
		}
		if req.SessionID == "" {
			return c.Status(400).JSON(fiber.Map{"error": "session_id is required"})
		}
		if req.CrisisLevel < 0 || req.CrisisLevel > 10 {
			return c.Status(400).JSON(fiber.Map{"error": "crisis_level must be between 0 and 10"})
		}

		assessment, err := engine.CheckEscalation(c.Context(), req.SessionID, req.CrisisLevel)
		if err != nil {
			// History was unavailable; the assessment still stands on the
			// current level alone.
			return c.JSON(fiber.Map{"assessment": assessment, "degraded": true})
		}
		return c.JSON(fiber.Map{"assessment": assessment})
	})

	// Explicit session teardown. Sessions are never reaped implicitly.
	app.Delete("/v1/sessions/:id", func(c fiber.Ctx) error {
		sessionID := c.Params("id")
		if err := engine.EndSession(c.Context(), sessionID); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to end session"})
		}
		return c.JSON(fiber.Map{"ended": sessionID})
	})

	log.Printf("Sentinel v%s listening on %s", Version, cfg.ListenAddr)
	if err := app.Listen(cfg.ListenAddr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// ============================================================================
// CLI Mode
// ============================================================================

func runCLIAnalyze(message string) {
	cfg := config.NewLocalConfig()
	engine, composer := buildEngine(context.Background(), cfg)

	verdict := engine.Analyze(context.Background(), "cli", message, "")

	out := map[string]any{"verdict": verdict}
	if verdict.RequiresIntervention {
		out["response"] = composer.Compose(verdict)
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("encode result: %v", err)
	}
	fmt.Println(string(encoded))
}
