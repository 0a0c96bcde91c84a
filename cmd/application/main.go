package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"gooekobox/config"
	"gooekobox/metrics"
	"gooekobox/oekobox"
	"gooekobox/oekobox/models"
	"gooekobox/pkg/textutil"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config (env vars used when empty)")
	metricsAddr := flag.String("metrics", "", "address to expose Prometheus metrics on, e.g. :2112")
	flag.Parse()

	cfg := loadConfig(*configPath)

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.MetricsHandler())
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Printf("metrics server stopped: %v", err)
			}
		}()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	shops, err := oekobox.GetAvailableShops(ctx)
	if err != nil {
		log.Printf("shop list unavailable: %v", err)
	} else {
		log.Printf("%d shops available", len(shops))
	}

	client, err := oekobox.NewClient(*cfg, os.Stdout)
	if err != nil {
		log.Fatalf("failed to build client: %v", err)
	}

	err = client.Session(ctx, func(ctx context.Context, user models.UserInfo) error {
		log.Printf("logged on as %s", user.Username)

		groups, err := client.GetGroups(ctx)
		if err != nil {
			return err
		}
		log.Printf("%d product groups", len(groups))

		if len(groups) > 0 {
			items, err := client.GetItems(ctx, groups[0].ID, "")
			if err != nil {
				return err
			}
			log.Printf("group %q has %d items", groups[0].Name, len(items))
			for _, item := range items {
				if item.Description != "" {
					log.Printf("  %s: %s", item.Name, textutil.CleanAndReduce(item.Description, 80))
					break
				}
			}
		}

		cart, err := client.GetCart(ctx)
		if err != nil {
			return err
		}
		log.Printf("cart holds %d positions", len(cart))
		return nil
	})
	if err != nil {
		switch {
		case oekobox.IsAuthentication(err):
			log.Fatalf("credentials rejected: %v", err)
		case oekobox.IsConnection(err):
			log.Fatalf("shop unreachable: %v", err)
		default:
			log.Fatalf("session failed: %v", err)
		}
	}
}

func loadConfig(path string) *config.OekoboxConfig {
	if path == "" {
		return config.GetConfig()
	}
	app, err := config.LoadConfig(path)
	if err != nil {
		log.Fatalf("failed to load config %s: %v", path, err)
	}
	return &app.Oekobox
}
