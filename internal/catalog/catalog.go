// Package catalog looks up products in the public product API and prices them in rupiah.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// rupiahPerUnit converts the API's list price into rupiah.
const rupiahPerUnit = 1000

type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

type Review struct {
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Date         time.Time `json:"date"`
	ReviewerName string    `json:"reviewerName"`
}

type Meta struct {
	Barcode string `json:"barcode"`
	QRCode  string `json:"qrCode"`
}

type Product struct {
	ID                   int64      `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Category             string     `json:"category"`
	Brand                string     `json:"brand"`
	SKU                  string     `json:"sku"`
	Price                float64    `json:"price"`
	DiscountPercentage   float64    `json:"discountPercentage"`
	Rating               float64    `json:"rating"`
	Stock                int        `json:"stock"`
	AvailabilityStatus   string     `json:"availabilityStatus"`
	Weight               float64    `json:"weight"`
	Dimensions           Dimensions `json:"dimensions"`
	ShippingInformation  string     `json:"shippingInformation"`
	WarrantyInformation  string     `json:"warrantyInformation"`
	ReturnPolicy         string     `json:"returnPolicy"`
	MinimumOrderQuantity int        `json:"minimumOrderQuantity"`
	Tags                 []string   `json:"tags"`
	Thumbnail            string     `json:"thumbnail"`
	Images               []string   `json:"images"`
	Reviews              []Review   `json:"reviews"`
	Meta                 Meta       `json:"meta"`
}

// PriceRupiah is the undiscounted price in whole rupiah.
func (p Product) PriceRupiah() int64 {
	return int64(math.Round(p.Price * rupiahPerUnit))
}

// DiscountedRupiah applies DiscountPercentage to the rupiah price.
func (p Product) DiscountedRupiah() int64 {
	return int64(math.Round(p.Price * rupiahPerUnit * (1 - p.DiscountPercentage/100)))
}

// InStock reports whether any units are available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders amount with Indonesian digit grouping, e.g. "Rp 1.250.000".
func FormatRupiah(amount int64) string {
	if amount < 0 {
		return "-Rp " + idPrinter.Sprintf("%d", -amount)
	}
	return "Rp " + idPrinter.Sprintf("%d", amount)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// Product fetches one product by id.
func (c *Client) Product(ctx context.Context, id int64) (*Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/products/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, fmt.Errorf("build product request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch product %d: %w", id, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read product %d: %w", id, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, errors.New(apiErr.Message)
		}
		return nil, fmt.Errorf("fetch product %d: %s", id, resp.Status)
	}

	var p Product
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode product %d: %w", id, err)
	}
	return &p, nil
}
