package main

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hydropure/water-assistant/models"
)

type Pg struct {
	db *gorm.DB
}

func NewPg(connString string) (*Pg, error) {
	db, err := gorm.Open(postgres.Open(connString), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return &Pg{
		db: db,
	}, nil
}

func (p *Pg) GetProduct(ctx context.Context, productID uint64) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).Find(&product, "id = ?", productID).Error; err != nil {
		return nil, err
	}

	return &product, nil
}

func (p *Pg) UpdateProductVector(ctx context.Context, productID uint64, vector pgvector.Vector) error {
	return p.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", productID).Update("embedding", vector).Error
}
