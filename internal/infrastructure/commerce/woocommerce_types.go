package commerce

import "encoding/json"

// Wire types for the WooCommerce REST API (wc/v3). Monetary amounts arrive as
// strings; line item prices arrive as bare numbers. Both are parsed through
// shop.ParseDecimal with non-numeric input treated as zero.

type wooBilling struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address1  string `json:"address_1"`
	City      string `json:"city"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type wooImage struct {
	Src string `json:"src"`
}

type wooLineItem struct {
	ID        int64       `json:"id"`
	ProductID int64       `json:"product_id"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	Price     json.Number `json:"price"`
	Image     *wooImage   `json:"image,omitempty"`
}

type wooOrder struct {
	ID                 int64         `json:"id"`
	Status             string        `json:"status"`
	DateCreated        string        `json:"date_created"`
	Total              string        `json:"total"`
	ShippingTotal      string        `json:"shipping_total"`
	DiscountTotal      string        `json:"discount_total"`
	PaymentMethodTitle string        `json:"payment_method_title"`
	Billing            wooBilling    `json:"billing"`
	LineItems          []wooLineItem `json:"line_items"`
}

type wooCategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type wooProduct struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Status        string           `json:"status"`
	Price         string           `json:"price"`
	RegularPrice  string           `json:"regular_price"`
	SalePrice     string           `json:"sale_price"`
	StockQuantity *int             `json:"stock_quantity"`
	Images        []wooImage       `json:"images"`
	Categories    []wooCategoryRef `json:"categories"`
}

type wooCategory struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}
