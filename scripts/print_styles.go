//go:build ignore
// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/map-service/internal/config"
	"github.com/map-service/internal/infrastructure/mapbox"
	"github.com/map-service/internal/provider"
	"github.com/map-service/internal/repository/cache"
)

func main() {
	user := flag.String("user", "", "Mapbox account (default: MAPBOX_USER)")
	api := flag.String("api", "", "Mapbox access token (default: MAPBOX_API_KEY)")
	asJSON := flag.Bool("json", false, "Print the catalog as JSON")
	cached := flag.Bool("cached", false, "Also print the catalog cached in Redis")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	args := provider.Args{}
	if *user != "" {
		args.User = user
	}
	if *api != "" {
		args.API = api
	}

	p := mapbox.New(args, cfg.Maps.Options(), mapbox.WithBaseURL(cfg.Maps.MapboxBaseURL))
	account := p.Params().User

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	styles, err := p.Styles(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch styles for %q: %v", account, err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(styles); err != nil {
			log.Fatalf("Failed to encode styles: %v", err)
		}
	} else {
		ids := make([]string, 0, len(styles))
		for id := range styles {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		fmt.Printf("Account: %s (%d styles)\n", account, len(ids))
		for _, id := range ids {
			marker := " "
			if !mapbox.IsDefaultStyle(id) {
				marker = "*"
			}
			fmt.Printf("%s %-32s %s\n", marker, id, styles[id])
		}
	}

	if !*cached {
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer client.Close()

	key := cache.StylesKey(mapbox.Slug, account)
	raw, err := client.Get(ctx, key).Result()
	switch {
	case err == redis.Nil:
		fmt.Printf("\nNo cached catalog under %s\n", key)
	case err != nil:
		log.Fatalf("Failed to read cache: %v", err)
	default:
		ttl, _ := client.TTL(ctx, key).Result()
		fmt.Printf("\nCached under %s (ttl %s):\n%s\n", key, ttl, raw)
	}
}
