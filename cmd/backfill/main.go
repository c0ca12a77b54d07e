// Backfill seeds the products table from the CSV catalog and queues every
// product without an embedding for the embedder service.
package main

import (
	"encoding/json"
	"errors"
	"log"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hydropure/water-assistant/catalog"
	"github.com/hydropure/water-assistant/config"
)

type CDCMessage struct {
	Table string `json:"table"`
	Kind  string `json:"kind"`
	ID    uint64 `json:"id"`
}

func main() {
	cfg := config.LoadConfig()

	store, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		log.Fatal("failed to load catalog:", err)
	}
	slog.Info("catalog loaded", "products", store.Len())

	db, err := gorm.Open(postgres.Open(cfg.Postgres.ConnStr()), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to postgres:", err)
	}

	nc, err := nats.Connect(cfg.Nats.ConnStr())
	if err != nil {
		log.Fatal("failed to connect to nats:", err)
	}
	defer nc.Close()

	js, err := nc.JetStream()
	if err != nil {
		log.Fatal("failed to get jetstream context:", err)
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:      cfg.Nats.Stream,
		Subjects:  []string{cfg.Nats.ProductsSubject},
		Storage:   nats.FileStorage,
		Retention: nats.LimitsPolicy,
		MaxAge:    time.Hour * 24 * 7,
	})
	if err != nil && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
		log.Fatal("failed to create stream:", err)
	}

	products := store.All()
	for i := range products {
		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"category", "regular_price", "short_description",
				"description", "attributes", "images",
			}),
		}).Omit("embedding").Create(&products[i]).Error
		if err != nil {
			log.Fatal("failed to upsert product:", err)
		}
	}
	slog.Info("products upserted", "count", len(products))

	var productIDs []uint64
	if err := db.Table("products").Where("embedding IS NULL").Pluck("id", &productIDs).Error; err != nil {
		log.Fatal("failed to query unembedded products:", err)
	}
	slog.Info("found unembedded products", "count", len(productIDs))

	for _, id := range productIDs {
		msg := CDCMessage{
			Table: "products",
			Kind:  "insert",
			ID:    id,
		}
		data, err := json.Marshal(msg)
		if err != nil {
			slog.Error("failed to marshal message", "err", err)
			continue
		}
		if _, err := js.Publish(cfg.Nats.ProductsSubject, data); err != nil {
			slog.Error("failed to publish product", "id", id, "err", err)
			continue
		}
	}

	slog.Info("backfill complete", "products", len(productIDs))
}
