package main

import (
	"github.com/hydropure/water-assistant/models"
)

const (
	MessageTypeChat     = "chat"
	MessageTypeProducts = "products"
	MessageTypeImage    = "image"
	MessageTypeError    = "error"
)

type WebSocketsMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ProductCard is the compact product projection pushed to the chat client
// alongside the text reply.
type ProductCard struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category"`
	Image    string `json:"image,omitempty"`
}

func toCards(products []models.Product) []ProductCard {
	cards := make([]ProductCard, 0, len(products))
	for i := range products {
		cards = append(cards, ProductCard{
			Name:     products[i].Name,
			Price:    products[i].PriceDisplay(),
			Category: products[i].Category,
			Image:    products[i].FirstImage(),
		})
	}

	return cards
}

// TurnReply is everything one conversation turn produces. ImageURL is set
// only when exactly one product with a hosted image is recommended.
type TurnReply struct {
	Text     string
	Products []models.Product
	ImageURL string
}
