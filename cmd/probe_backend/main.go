package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"edumate-be/internal/constant"
	"edumate-be/internal/config"
	"edumate-be/pkg/llm"
	"edumate-be/pkg/llm/backend"
	"edumate-be/pkg/roadmap"

	"github.com/fatih/color"
)

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

func main() {
	cfg := config.Load()

	baseURL := flag.String("url", cfg.Ai.BackendURL, "AI backend base URL")
	goal := flag.String("goal", "Become a backend developer in Go", "goal sent to /api/roadmap")
	timeout := flag.Duration("timeout", cfg.Ai.RequestTimeout, "per request timeout")
	flag.Parse()

	client := backend.NewClient(*baseURL, *timeout)
	ctx := context.Background()
	failed := false

	color.Cyan("🚀 Probing AI backend at %s\n", *baseURL)

	// 1. Roadmap
	color.Yellow("\n1. POST /api/roadmap")
	start := time.Now()
	weeks, err := roadmap.NewBackendGenerator(client).Generate(ctx, *goal)
	if err != nil {
		color.Red("Failed after %s: %v", time.Since(start).Round(time.Millisecond), err)
		failed = true
	} else {
		color.Green("OK in %s: %d weeks", time.Since(start).Round(time.Millisecond), len(weeks))
		prettyPrint(weeks)
	}

	// 2. Analyze
	color.Yellow("\n2. POST /api/analyze")
	start = time.Now()
	reply, err := client.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.ResumeReviewerPrompt},
		{Role: constant.ChatMessageRoleUser, Content: fmt.Sprintf(constant.ResumeReviewTemplate, constant.SampleResumeText)},
	})
	if err != nil {
		color.Red("Failed after %s: %v", time.Since(start).Round(time.Millisecond), err)
		failed = true
	} else {
		color.Green("OK in %s", time.Since(start).Round(time.Millisecond))
		fmt.Println(reply)
	}

	if failed {
		os.Exit(1)
	}
	color.Cyan("\n✅ Backend looks healthy")
}
