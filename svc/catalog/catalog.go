package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vertextrade/storefront/pkg/logger"
)

// Product is one row of the products table.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

// FormattedPrice renders the price with two decimals and the euro sign.
func (p Product) FormattedPrice() string {
	return fmt.Sprintf("%.2f €", p.Price)
}

// Querier reads rows from a backend collection.
type Querier interface {
	Select(ctx context.Context, collection, columns string, dest any) error
}

type Config struct {
	Table string `env:"PRODUCTS_TABLE" envDefault:"products"`
}

// Service lists the catalog.
type Service struct {
	db    Querier
	table string
	log   *slog.Logger
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(db Querier, cfg Config, opts ...Option) *Service {
	table := cfg.Table
	if table == "" {
		table = "products"
	}
	s := &Service{db: db, table: table, log: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("catalog"))
	return s
}

// List returns every product in backend order. Failures are logged and
// yield an empty list so the page still renders.
func (s *Service) List(ctx context.Context) []Product {
	start := time.Now()
	var products []Product
	if err := s.db.Select(ctx, s.table, "*", &products); err != nil {
		s.log.ErrorContext(ctx, "failed to load products",
			logger.Collection(s.table),
			logger.Error(err),
		)
		return []Product{}
	}
	if products == nil {
		products = []Product{}
	}
	s.log.DebugContext(ctx, "products loaded",
		logger.Collection(s.table),
		logger.Count(len(products)),
		logger.Duration(time.Since(start)),
	)
	return products
}
