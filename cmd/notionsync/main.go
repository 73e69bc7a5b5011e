package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/takak2166/notionsync/internal/config"
	"github.com/takak2166/notionsync/internal/logger"
	"github.com/takak2166/notionsync/internal/notion"
	"github.com/takak2166/notionsync/internal/pageid"
	"github.com/takak2166/notionsync/internal/sync"
)

func main() {
	// Parse command line flags
	file := flag.String("file", "", "Markdown file to push")
	parent := flag.String("parent", "", "Parent page ID or URL for new pages")
	update := flag.Bool("update", false, "Update the page recorded in the file's frontmatter")
	force := flag.Bool("force", false, "With -update, delete protected blocks too")
	pull := flag.String("pull", "", "Page ID or URL to download as markdown")
	out := flag.String("out", "", "Output path for -pull (default <page-id>.md)")
	dir := flag.String("dir", "", "Directory to bulk upload")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	if *file == "" && *pull == "" && *dir == "" {
		fmt.Println("Error: one of -file, -pull or -dir is required")
		flag.Usage()
		os.Exit(1)
	}

	// Load .env file if present
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	// Initialize Notion client
	client, err := notion.New(cfg)
	if err != nil {
		logger.Error("Failed to initialize Notion client", err, nil)
		os.Exit(1)
	}
	syncer := sync.New(client, cfg)

	ctx := context.Background()

	switch {
	case *pull != "":
		runPull(ctx, syncer, *pull, *out)
	case *dir != "":
		runBulk(ctx, syncer, *parent, *dir)
	default:
		runPush(ctx, syncer, *file, sync.PushOptions{
			ParentID: *parent,
			Update:   *update,
			Force:    *force,
		})
	}
}

func runPush(ctx context.Context, syncer *sync.Syncer, file string, opts sync.PushOptions) {
	result, err := syncer.Push(ctx, file, opts)
	if err != nil {
		logger.Error("Push failed", err, map[string]interface{}{
			"file": file,
		})
		os.Exit(1)
	}

	if result.Created {
		fmt.Printf("Created page %q: %s\n", result.Title, result.PageURL)
	} else {
		fmt.Printf("Updated page %q: %s\n", result.Title, result.PageURL)
		if result.Preserved > 0 {
			fmt.Printf("Preserved %d protected block(s)\n", result.Preserved)
		}
	}
	fmt.Printf("Uploaded %d block(s)\n", result.Blocks)
}

func runPull(ctx context.Context, syncer *sync.Syncer, pageID, out string) {
	if out == "" {
		out = pageid.Normalize(pageID) + ".md"
	}
	result, err := syncer.Pull(ctx, pageID, out)
	if err != nil {
		logger.Error("Pull failed", err, map[string]interface{}{
			"page_id": pageID,
		})
		os.Exit(1)
	}
	fmt.Printf("Downloaded page %q (%d blocks) to %s\n", result.Title, result.Blocks, result.Path)
}

func runBulk(ctx context.Context, syncer *sync.Syncer, parent, dir string) {
	result, err := syncer.BulkPush(ctx, parent, dir)
	if err != nil {
		logger.Error("Bulk upload failed", err, map[string]interface{}{
			"directory": dir,
		})
		os.Exit(1)
	}

	fmt.Printf("Uploaded: %d, Skipped: %d, Failed: %d\n", result.Uploaded, result.Skipped, result.Failed)
	if result.Failed > 0 {
		os.Exit(1)
	}
}
