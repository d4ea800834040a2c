// Command function serves a single function-style invocation: it reads one
// JSON event from stdin and writes the JSON response to stdout.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/namaste-emily/aasha/backend/internal/app"
	"github.com/namaste-emily/aasha/backend/internal/config"
	"github.com/namaste-emily/aasha/backend/internal/platform/serverless"
)

func main() {
	log.SetOutput(os.Stderr)

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx := context.Background()
	if cfg.AI.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.AI.Timeout*2)
		defer cancel()
	}

	a, err := app.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer a.Close()

	var ev serverless.Event
	if err := json.NewDecoder(os.Stdin).Decode(&ev); err != nil {
		log.Fatalf("failed to decode event: %v", err)
	}

	res, err := serverless.New(a.Handler).Invoke(ctx, ev)
	if err != nil {
		log.Printf("invocation failed: %v", err)
		res = &serverless.Response{
			StatusCode: http.StatusBadRequest,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"error":"invalid event"}`,
		}
	}

	if err := json.NewEncoder(os.Stdout).Encode(res); err != nil {
		log.Fatalf("failed to encode response: %v", err)
	}
}
