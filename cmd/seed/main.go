package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/JaimeStill/pdf-editor/internal/config"
	"github.com/JaimeStill/pdf-editor/internal/documents"
	"github.com/JaimeStill/pdf-editor/internal/extract"
	"github.com/JaimeStill/pdf-editor/internal/infrastructure"
)

func main() {
	var (
		dir  = flag.String("dir", "", "Directory of PDF files to upload")
		all  = flag.Bool("all", false, "Run all seeders")
		name = flag.String("seeder", "", "Run a single seeder by name")
		list = flag.Bool("list", false, "List available seeders")
	)
	flag.Parse()

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range listSeeders() {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	if !*all && *name == "" {
		fmt.Println("usage: seed [-all|-seeder <name>] [-dir <path>] [-list]")
		flag.PrintDefaults()
		return
	}

	cfg, err := config.Load(os.Getenv("SERVICE_CONFIG_DIR"))
	if err != nil {
		log.Fatal("config load failed: ", err)
	}
	cfg.Logging.Service = "pdf-editor-seed"
	if err := cfg.Finalize(); err != nil {
		log.Fatal("config finalize failed: ", err)
	}

	infra, err := infrastructure.New(cfg, os.Stderr)
	if err != nil {
		log.Fatal("infrastructure init failed: ", err)
	}
	if err := infra.Start(); err != nil {
		log.Fatal("infrastructure start failed: ", err)
	}
	infra.Lifecycle.WaitForStartup()
	defer infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())

	env := &Env{
		Documents: documents.New(
			infra.Database.Connection(),
			infra.Storage,
			extract.New(infra.Logger),
			infra.Logger,
			cfg.Pagination,
		),
		Dir: *dir,
	}

	ctx := context.Background()

	if *all {
		if err := runAllSeeders(ctx, env); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		fmt.Println("all seeders completed successfully")
		return
	}

	if err := runSeeder(ctx, env, *name); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	fmt.Printf("%s seeded successfully\n", *name)
}
