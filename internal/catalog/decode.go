package catalog

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/Lixing-Zhang/storefront/internal/models"
	"github.com/shopspring/decimal"
)

// wireProduct mirrors models.Product with pointers so missing fields can be told
// apart from zero values.
type wireProduct struct {
	ID          *int64           `json:"id"`
	Title       *string          `json:"title"`
	Price       *decimal.Decimal `json:"price"`
	Description string           `json:"description"`
	Category    *string          `json:"category"`
	Image       *string          `json:"image"`
	Rating      *wireRating      `json:"rating"`
}

type wireRating struct {
	Rate  *float64 `json:"rate"`
	Count *int     `json:"count"`
}

// DecodeProducts reads a JSON array of products and validates every record.
// Any deviation from the product shape yields a *ParseError.
func DecodeProducts(r io.Reader) ([]models.Product, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Index: -1, Reason: "failed to read body", Err: err}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Index: -1, Reason: "payload is not a JSON array", Err: err}
	}

	products := make([]models.Product, 0, len(raw))
	seen := make(map[int64]int, len(raw))

	for i, msg := range raw {
		if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
			return nil, &ParseError{Index: i, Reason: "record is null"}
		}

		var wp wireProduct
		if err := json.Unmarshal(msg, &wp); err != nil {
			return nil, &ParseError{Index: i, Reason: "malformed record", Err: err}
		}

		p, perr := wp.toProduct(i)
		if perr != nil {
			return nil, perr
		}

		if first, dup := seen[p.ID]; dup {
			return nil, &ParseError{Index: i, Field: "id", Reason: "duplicate of product " + strconv.Itoa(first)}
		}
		seen[p.ID] = i

		products = append(products, p)
	}

	return products, nil
}

func (wp wireProduct) toProduct(i int) (models.Product, error) {
	missing := func(field string) error {
		return &ParseError{Index: i, Field: field, Reason: "missing"}
	}

	switch {
	case wp.ID == nil:
		return models.Product{}, missing("id")
	case wp.Title == nil:
		return models.Product{}, missing("title")
	case wp.Price == nil:
		return models.Product{}, missing("price")
	case wp.Category == nil:
		return models.Product{}, missing("category")
	case wp.Image == nil:
		return models.Product{}, missing("image")
	case wp.Rating == nil:
		return models.Product{}, missing("rating")
	case wp.Rating.Rate == nil:
		return models.Product{}, missing("rating.rate")
	case wp.Rating.Count == nil:
		return models.Product{}, missing("rating.count")
	}

	if *wp.ID <= 0 {
		return models.Product{}, &ParseError{Index: i, Field: "id", Reason: "must be positive"}
	}
	if wp.Price.IsNegative() {
		return models.Product{}, &ParseError{Index: i, Field: "price", Reason: "must not be negative"}
	}
	if rate := *wp.Rating.Rate; rate < 0 || rate > 5 {
		return models.Product{}, &ParseError{Index: i, Field: "rating.rate", Reason: "must be between 0 and 5"}
	}
	if *wp.Rating.Count < 0 {
		return models.Product{}, &ParseError{Index: i, Field: "rating.count", Reason: "must not be negative"}
	}

	return models.Product{
		ID:          *wp.ID,
		Title:       *wp.Title,
		Price:       *wp.Price,
		Description: wp.Description,
		Category:    *wp.Category,
		Image:       *wp.Image,
		Rating: models.Rating{
			Rate:  *wp.Rating.Rate,
			Count: *wp.Rating.Count,
		},
	}, nil
}
