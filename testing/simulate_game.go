package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tatianab/bby/internal/config"
	"github.com/tatianab/bby/internal/engine"
	"github.com/tatianab/bby/internal/mcpserver"
	"github.com/tatianab/bby/internal/story"
	"github.com/tatianab/bby/internal/telemetry"
)

const maxTurns = 20

// Lets a Gemini player loose on a story file and prints the transcript.
//
//	go run ./testing path/to/story.toml
func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <story file>", os.Args[0])
	}

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.GeminiAPIKey == "" {
		log.Fatalf("GEMINI_API_KEY environment variable is not set")
	}

	world, err := story.Load(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to load story: %v", err)
	}
	for _, p := range story.Lint(world) {
		fmt.Printf("warning: %s\n", p)
	}

	game := engine.NewGame(world, engine.WithTracer(telemetry.NoopTracer()))

	// Initialize the Player LLM
	playerClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Fatalf("Failed to create player client: %v", err)
	}
	defer playerClient.Close()
	playerModel := playerClient.GenerativeModel(cfg.GeminiModel)

	fmt.Printf("--- Playing: %s ---\n\n", game.Title())

	var history []string
	view, err := mcpserver.Execute(ctx, game, "look")
	if err != nil {
		log.Fatalf("Failed to look around: %v", err)
	}
	fmt.Println(view)

	for turn := 1; turn <= maxTurns && game.State() == engine.StatePlaying; turn++ {
		fmt.Printf("\n--- Turn %d ---\n", turn)

		action := getPlayerAction(ctx, playerModel, game, view, history)
		fmt.Printf("Player Action: %s\n", action)

		view, err = mcpserver.Execute(ctx, game, action)
		if err != nil {
			fmt.Printf("Error processing turn: %v\n", err)
			break
		}
		fmt.Println(view)

		history = append(history, fmt.Sprintf("> %s\n%s", action, view))
	}

	state := mcpserver.Summarize(game)
	fmt.Printf("\nEnded in %s after %d turns carrying %v\n", state.RoomID, state.Turns, state.Inventory)
}

func getPlayerAction(ctx context.Context, model *genai.GenerativeModel, game *engine.Game, view string, history []string) string {
	state := mcpserver.Summarize(game)

	// Only the last few turns fit comfortably in the prompt.
	if len(history) > 8 {
		history = history[len(history)-8:]
	}

	prompt := fmt.Sprintf(`You are playing a text adventure. The game understands only these commands:
look, go <direction>, n, s, e, w, take <item>, drop <item>, inventory, help, quit.

Current room: %s
Exits: %s
Inventory: %s

Recent turns:
%s

Last output:
%s

Explore every room and pick up everything you find. When there is nothing
left to do, type quit. Return ONLY the command, no extra commentary.`,
		state.RoomTitle,
		strings.Join(state.Exits, ", "),
		strings.Join(state.Inventory, ", "),
		strings.Join(history, "\n\n"),
		view,
	)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "look"
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "look"
	}
	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
}
