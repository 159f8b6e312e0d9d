package types

type ApiResponse struct {
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Token   string      `json:"token,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ArtisanPageResponse is the envelope returned by the paginated artisan
// listing and search endpoints.
type ArtisanPageResponse struct {
	ArtisanItems      interface{} `json:"artisanItems"`
	TotalArtisanItems int64       `json:"totalArtisanItems"`
	CurrentPage       int         `json:"currentPage"`
	TotalPages        int         `json:"totalPages"`
	Success           bool        `json:"success"`
}

// OrderPageResponse is the envelope returned by the paginated
// booking-order listing.
type OrderPageResponse struct {
	OrderItems      interface{} `json:"orderItems"`
	TotalOrderItems int64       `json:"totalOrderItems"`
	CurrentPage     int         `json:"currentPage"`
	TotalPages      int         `json:"totalPages"`
	Success         bool        `json:"success"`
}
