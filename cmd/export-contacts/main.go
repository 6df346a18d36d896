package main

import (
	"context"
	"flag"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/tripdesk/travio-gateway/internal/infrastructure/config"
	"github.com/tripdesk/travio-gateway/internal/infrastructure/db/mongo"
	"github.com/tripdesk/travio-gateway/internal/infrastructure/travio"
	"github.com/tripdesk/travio-gateway/pkg/logger"
)

func main() {
	perPage := flag.Int("per-page", 200, "records per upstream page")
	maxPages := flag.Int("max-pages", 0, "stop after this many pages (0 = all)")
	flag.Parse()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel})

	ctx := context.Background()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer mongoClient.Disconnect(ctx)

	repo := mongo.NewContactRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	client := travio.NewClient(travio.Options{
		BaseURL:  cfg.Travio.BaseURL,
		ID:       cfg.Travio.ID,
		Key:      cfg.Travio.Key,
		Language: cfg.Travio.Language,
		Logger:   log,
	})
	defer client.Close()

	exportedAt := time.Now().UTC()
	clients, contacts := 0, 0

	page, pages := 1, 1
	for page <= pages {
		if *maxPages > 0 && page > *maxPages {
			log.Info().Int("max_pages", *maxPages).Msg("page cap reached")
			break
		}

		out, err := client.SearchClients(ctx, map[string]string{
			"page":     strconv.Itoa(page),
			"per_page": strconv.Itoa(*perPage),
			"unfold":   "contacts",
		})
		if err != nil {
			log.Fatal().Err(err).Int("page", page).Msg("master-data page fetch failed")
		}

		items := listItems(out)
		if p := intValue(out["pages"]); p > 0 {
			pages = p
		}

		for _, item := range items {
			record, ok := item.(map[string]any)
			if !ok {
				continue
			}
			exported := exportedClient(record, exportedAt)
			if exported.ClientID == 0 {
				log.Warn().Interface("record", record).Msg("skipping record without id")
				continue
			}
			if err := repo.UpsertClient(ctx, exported); err != nil {
				log.Fatal().Err(err).Int("client_id", exported.ClientID).Msg("client upsert failed")
			}
			unfolded := exportedContacts(record, exported.ClientID, exportedAt)
			if err := repo.ReplaceContacts(ctx, exported.ClientID, unfolded); err != nil {
				log.Fatal().Err(err).Int("client_id", exported.ClientID).Msg("contact replace failed")
			}
			clients++
			contacts += len(unfolded)
		}

		log.Info().Int("page", page).Int("pages", pages).Int("records", len(items)).Msg("page exported")
		page++
	}

	log.Info().Int("clients", clients).Int("contacts", contacts).Msg("export complete")
}

// listItems tolerates both envelope shapes the master-data endpoint has been
// seen to return.
func listItems(out map[string]any) []any {
	if items, ok := out["list"].([]any); ok && len(items) > 0 {
		return items
	}
	if items, ok := out["items"].([]any); ok {
		return items
	}
	return nil
}

func exportedClient(record map[string]any, exportedAt time.Time) *mongo.ExportedClient {
	name := stringValue(record["name"])
	if name == "" {
		name = stringValue(record["firstname"])
	}
	surname := stringValue(record["surname"])
	if surname == "" {
		surname = stringValue(record["lastname"])
	}
	return &mongo.ExportedClient{
		ClientID:   intValue(record["id"]),
		Name:       name,
		Surname:    surname,
		VATCountry: stringValue(record["vat_country"]),
		Language:   stringValue(record["language"]),
		Raw:        bson.M(record),
		ExportedAt: exportedAt,
	}
}

func exportedContacts(record map[string]any, clientID int, exportedAt time.Time) []mongo.ExportedContact {
	raw, ok := record["contacts"].([]any)
	if !ok {
		return nil
	}
	contacts := make([]mongo.ExportedContact, 0, len(raw))
	for _, entry := range raw {
		contact, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		contacts = append(contacts, mongo.ExportedContact{
			ClientID:   clientID,
			Name:       stringValue(contact["name"]),
			Emails:     stringList(contact["email"]),
			Phones:     stringList(contact["phone"]),
			Faxes:      stringList(contact["fax"]),
			ExportedAt: exportedAt,
		})
	}
	return contacts
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func intValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func stringList(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, entry := range raw {
		if s, ok := entry.(string); ok && s != "" {
			values = append(values, s)
		}
	}
	return values
}
