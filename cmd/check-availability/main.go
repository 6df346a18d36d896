package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/tripdesk/travio-gateway/internal/infrastructure/config"
	"github.com/tripdesk/travio-gateway/internal/infrastructure/travio"
	"github.com/tripdesk/travio-gateway/pkg/logger"
)

func main() {
	serviceType := flag.String("type", "hotels", "service type to search")
	from := flag.String("from", "", "check-in date (YYYY-MM-DD)")
	to := flag.String("to", "", "check-out date (YYYY-MM-DD)")
	adults := flag.Int("adults", 2, "number of adults")
	geoID := flag.Int("geo-id", 0, "destination id to search in")
	serviceIDs := flag.String("service-ids", "", "comma-separated service ids")
	flag.Parse()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel})

	if *from == "" || *to == "" {
		log.Fatal().Msg("-from and -to are required")
	}

	payload := map[string]any{
		"type":      *serviceType,
		"from":      *from,
		"to":        *to,
		"occupancy": []map[string]any{{"adults": *adults}},
	}
	if *geoID != 0 {
		payload["geo"] = []int{*geoID}
	}
	if *serviceIDs != "" {
		ids, err := parseIDs(*serviceIDs)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid -service-ids")
		}
		payload["ids"] = ids
	}

	client := travio.NewClient(travio.Options{
		BaseURL:  cfg.Travio.BaseURL,
		ID:       cfg.Travio.ID,
		Key:      cfg.Travio.Key,
		Language: cfg.Travio.Language,
		Logger:   log,
	})
	defer client.Close()

	result, err := client.BookingSearch(context.Background(), payload)
	if err != nil {
		log.Fatal().Err(err).Msg("availability search failed")
	}

	groups, ok := result["groups"].([]any)
	if !ok || len(groups) == 0 {
		log.Warn().Interface("response", result).Msg("no groups in response")
		return
	}

	for _, g := range groups {
		group, ok := g.(map[string]any)
		if !ok {
			continue
		}
		fmt.Printf("Group: %v\n", group["type"])
		items, _ := group["items"].([]any)
		for _, i := range items {
			item, ok := i.(map[string]any)
			if !ok {
				continue
			}
			fmt.Println(strings.Repeat("-", 40))
			fmt.Printf("Service: %v\n", itemName(item))
			gross, currency := itemPrice(item)
			fmt.Printf("Price: %s %s\n", gross, currency)
		}
	}
}

func parseIDs(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func itemName(item map[string]any) string {
	if name, ok := item["name"].(string); ok && name != "" {
		return name
	}
	if title, ok := item["title"].(string); ok && title != "" {
		return title
	}
	return "Unknown"
}

func itemPrice(item map[string]any) (string, string) {
	price, ok := item["price"].(map[string]any)
	if !ok {
		return "N/A", ""
	}
	gross := "N/A"
	switch v := price["gross"].(type) {
	case float64:
		gross = strconv.FormatFloat(v, 'f', 2, 64)
	case string:
		gross = v
	}
	currency := ""
	if c, ok := price["currency"].(map[string]any); ok {
		currency, _ = c["code"].(string)
	} else if c, ok := price["currency"].(string); ok {
		currency = c
	}
	return gross, currency
}
