// Package main provides a tool to seed a running server with sample ideas.
//
// It exercises the full RPC path instead of writing to the database
// directly, so a seeded server has been through validation and tag
// derivation just like real traffic.
//
// Usage:
//
//	go run ./cmd/seed
//	go run ./cmd/seed --addr http://localhost:8080 --count 10
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/ideaboard/ideaboard-server/internal/api"
	"github.com/ideaboard/ideaboard-server/internal/client"
)

var (
	addr  = flag.String("addr", "http://localhost:8080", "Base URL of a running Idea Board server")
	count = flag.Int("count", 5, "Number of sample ideas to submit")
)

var sampleTitles = []string{
	"Dark mode for the dashboard",
	"Export ideas as markdown",
	"Weekly digest email",
	"Keyboard shortcuts for triage",
	"Duplicate idea detection",
	"Tag-based idea filtering",
	"Offline draft support",
	"Bulk archive for stale ideas",
}

var sampleTags = []string{
	"ux, frontend",
	"backend, api",
	"email, growth",
	"productivity",
	"search, ml",
}

func main() {
	flag.Parse()

	fmt.Printf("Seeding %d ideas via %s\n", *count, *addr)

	c := client.New(*addr)
	ctx := context.Background()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < *count; i++ {
		title := sampleTitles[i%len(sampleTitles)]
		if i >= len(sampleTitles) {
			title = fmt.Sprintf("%s (%d)", title, i/len(sampleTitles)+1)
		}

		idea, err := c.SubmitIdea(ctx, api.SubmitIdeaRequest{
			Title:       title,
			Description: fmt.Sprintf("Seeded sample idea #%d", i+1),
			TagsRaw:     sampleTags[rng.Intn(len(sampleTags))],
			Conditions:  []string{"someone owns it", "fits the current roadmap"},
			Notes:       "created by cmd/seed",
		})
		if err != nil {
			log.Fatalf("Failed to submit idea %q: %v", title, err)
		}

		fmt.Printf("  submitted %s: %s\n", idea.ID, idea.Title)
	}

	ideas, err := c.ListIdeas(ctx)
	if err != nil {
		log.Fatalf("Failed to list ideas: %v", err)
	}

	fmt.Printf("Server now holds %d ideas\n", len(ideas))
}
