package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"edu_video_generator/config"
	"edu_video_generator/export"
	"edu_video_generator/generator"
	"edu_video_generator/history"
	"edu_video_generator/pipeline"
	"edu_video_generator/render"
	"edu_video_generator/server"
)

// groqBaseURL is Groq's OpenAI-compatible endpoint.
const groqBaseURL = "https://api.groq.com/openai/v1"

var verbose bool

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	configPath := flag.String("config", "config/config.json", "path to config.json")
	topic := flag.String("topic", "", "generate one video for this topic and exit")
	scenes := flag.Int("scenes", 0, "target scene count (overrides config)")
	serve := flag.Bool("serve", false, "start the web dashboard")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	showHistory := flag.Bool("history", false, "print past generation runs and exit")
	exportAnalytics := flag.Bool("export-analytics", false, "write history as an analytics JSON file and exit")
	flag.BoolVar(&verbose, "v", false, "enable info logs")
	flag.Parse()

	// .env is optional; real deployments set the key in the environment.
	_ = godotenv.Load()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()

	if *showHistory {
		records, err := store.List(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(historyTable(records))
		return
	}

	exports, err := export.NewManager(cfg.OutputDir, verbose, log.Default())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *exportAnalytics {
		records, err := store.List(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		path, err := exports.ExportAnalytics(records)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(path)
		return
	}

	if err := exports.CleanupOldExports(time.Duration(cfg.ExportRetentionDays) * 24 * time.Hour); err != nil {
		log.Printf("[cli] export cleanup failed: %v", err)
	}

	pipe, err := buildPipeline(cfg, *scenes, store, exports)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Web server mode
	if *serve {
		srv, err := server.New(pipe, store, log.Default())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		listen := cfg.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		log.Printf("Starting web server on %s", listen)
		if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if *topic == "" {
		fmt.Fprintln(os.Stderr, "--topic is required (or use --serve / --history)")
		os.Exit(1)
	}

	log.Printf("[cli] generating video topic=%q", *topic)
	rec, err := pipe.Run(ctx, *topic)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Printf("[cli] done pattern=%s score=%d rating=%q", rec.Pattern, rec.Quality.OverallScore, rec.Quality.Rating)
	fmt.Println(rec.VideoPath)
}

func buildPipeline(cfg config.Config, scenes int, store *history.Store, exports *export.Manager) (*pipeline.Pipeline, error) {
	llm, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.RequestTimeoutSec) * time.Second
	scripts, err := generator.NewGenerator(llm, timeout, log.Default())
	if err != nil {
		return nil, err
	}

	renderer := render.NewFFmpeg(render.Options{
		Width:  cfg.Render.Width,
		Height: cfg.Render.Height,
		FPS:    cfg.Render.FPS,
	}, verbose, log.Default())

	sceneCount := cfg.SceneCount
	if scenes > 0 {
		sceneCount = scenes
	}

	return pipeline.New(scripts, renderer, store, exports, cfg.OutputDir, sceneCount, log.Default())
}

func buildLLM(cfg config.Config) (generator.LLMClient, error) {
	apiKey := cfg.ResolveAPIKey()
	if apiKey == "" {
		log.Printf("[cli] no API key configured, running in demo mode with the mock model")
		return generator.MockLLM{}, nil
	}

	settings := &generator.LLMSettings{
		Provider:    cfg.LLM.Provider,
		Model:       cfg.LLM.Model,
		APIKey:      apiKey,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: *cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}

	switch cfg.LLM.Provider {
	case "openai":
		return generator.NewOpenAILLMFromConfig(settings)
	case "groq":
		// Groq exposes an OpenAI-compatible API; only the base URL differs.
		if settings.BaseURL == "" {
			settings.BaseURL = groqBaseURL
		}
		return generator.NewOpenAILLMFromConfig(settings)
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}
