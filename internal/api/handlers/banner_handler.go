package handlers

import (
	"net/http"

	"github.com/star-burger/backend/internal/domain/entities"
)

// BannerHandler serves the promo banners shown on the storefront
type BannerHandler struct {
	banners []entities.Banner
}

// NewBannerHandler creates a banner handler with the default banner set
func NewBannerHandler() *BannerHandler {
	return &BannerHandler{
		banners: []entities.Banner{
			{Title: "Delivery", Src: "/assets/images/banners/delivery.jpg", Text: "Free delivery on every order"},
			{Title: "New menu", Src: "/assets/images/banners/menu.jpg", Text: "Seasonal dishes are here"},
			{Title: "Promo", Src: "/assets/images/banners/promo.jpg", Text: "Second pizza half price"},
		},
	}
}

// ListBanners handles GET /api/banners
func (h *BannerHandler) ListBanners(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.banners)
}
