package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/tripdesk/travio-gateway/internal/infrastructure/config"
	"github.com/tripdesk/travio-gateway/internal/infrastructure/travio"
	"github.com/tripdesk/travio-gateway/pkg/logger"
)

func main() {
	limit := flag.Int("limit", 100, "number of destinations to fetch")
	output := flag.String("output", "destinations.csv", "output CSV file path")
	flag.Parse()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel})

	client := travio.NewClient(travio.Options{
		BaseURL:  cfg.Travio.BaseURL,
		ID:       cfg.Travio.ID,
		Key:      cfg.Travio.Key,
		Language: cfg.Travio.Language,
		Logger:   log,
	})
	defer client.Close()

	out, err := client.ListDestinations(context.Background(), 1, *limit)
	if err != nil {
		log.Fatal().Err(err).Msg("destination fetch failed")
	}

	items, ok := out["list"].([]any)
	if !ok || len(items) == 0 {
		items, _ = out["items"].([]any)
	}
	if len(items) == 0 {
		log.Warn().Msg("no destinations returned")
		return
	}

	file, err := os.Create(*output)
	if err != nil {
		log.Fatal().Err(err).Str("path", *output).Msg("cannot create output file")
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"id", "name", "type", "parent_id"}); err != nil {
		log.Fatal().Err(err).Msg("csv write failed")
	}
	written := 0
	for _, item := range items {
		dest, ok := item.(map[string]any)
		if !ok {
			continue
		}
		row := []string{
			fieldString(dest["id"], cfg.Travio.Language),
			fieldString(dest["name"], cfg.Travio.Language),
			fieldString(dest["type"], cfg.Travio.Language),
			fieldString(dest["parent"], cfg.Travio.Language),
		}
		if err := w.Write(row); err != nil {
			log.Fatal().Err(err).Msg("csv write failed")
		}
		written++
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatal().Err(err).Msg("csv flush failed")
	}

	log.Info().Int("destinations", written).Str("path", *output).Msg("export complete")
}

// fieldString flattens a CSV cell. Destination names are multilingual
// dictionaries keyed by language code, so pick the configured language and
// fall back to Italian, the upstream's home locale.
func fieldString(v any, lang string) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		if value == float64(int(value)) {
			return strconv.Itoa(int(value))
		}
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case map[string]any:
		if s, ok := value[lang].(string); ok && s != "" {
			return s
		}
		if s, ok := value["it"].(string); ok && s != "" {
			return s
		}
		return fmt.Sprintf("%v", value)
	default:
		return fmt.Sprintf("%v", value)
	}
}
