package handlers

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/inventory"
	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/models"
)

// ListCards is the back-office inventory table: grouped like the shop but
// with the per-copy variant list kept so an operator can edit or delete
// individual physical copies, and with search extended to description and
// card number.
func (h *AdminHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// Admins always see fresh rows; with include_sold the audit view counts
	// every copy ever stocked, so group quantities include sold ones.
	var cards []models.Card
	var err error
	if q.Get("include_sold") == "true" {
		cards, err = h.Store.AllCards()
	} else {
		cards, err = h.Store.AvailableCards(true)
	}
	if err != nil {
		respondStoreError(w, err)
		return
	}

	filter := inventory.Filter{
		Search:    q.Get("search"),
		Set:       q.Get("set"),
		SearchAll: true,
	}
	if raw := q.Get("rarity"); raw != "" {
		filter.Rarities = strings.Split(raw, ",")
	}

	groups := inventory.Group(cards)
	groups = filter.ApplyGrouped(groups)
	inventory.SortGrouped(groups, inventory.ParseSortKey(q.Get("sort")))
	if groups == nil {
		groups = []models.GroupedCard{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"cards": groups,
		"count": len(groups),
	})
}

type cardRequest struct {
	Name        string  `json:"name"`
	SetName     string  `json:"set_name"`
	CardNumber  string  `json:"card_number"`
	Rarity      string  `json:"rarity"`
	ImageURL    string  `json:"image_url"`
	Price       float64 `json:"price"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	SellerNotes string  `json:"seller_notes"`
	Quantity    int     `json:"quantity"` // create only: number of copies
}

func (req *cardRequest) validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = "Name is required."
	}
	if strings.TrimSpace(req.SetName) == "" {
		errs["set_name"] = "Set name is required."
	}
	if strings.TrimSpace(req.CardNumber) == "" {
		errs["card_number"] = "Card number is required."
	}
	if req.Price <= 0 {
		errs["price"] = "Price must be positive."
	}
	if req.Condition != "" && !models.ValidConditions[req.Condition] {
		errs["condition"] = "Invalid condition."
	}
	return errs
}

// CreateCard adds a logical card with N physical copies: N identical rows.
func (h *AdminHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		respondJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
		return
	}
	if req.Condition == "" {
		req.Condition = models.ConditionNearMint
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	card := &models.Card{
		Name:        req.Name,
		SetName:     req.SetName,
		CardNumber:  req.CardNumber,
		Rarity:      req.Rarity,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Condition:   req.Condition,
		Description: req.Description,
		SellerNotes: req.SellerNotes,
	}
	if err := h.Store.CreateCards(card, req.Quantity); err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message":  fmt.Sprintf("added %d copies", req.Quantity),
		"quantity": req.Quantity,
	})
}

// UpdateCard edits one physical copy. With ?cascade=true the shared fields
// also move to the copy's unsold siblings in the same transaction;
// condition, seller notes, and image always stay per-copy.
func (h *AdminHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid card id")
		return
	}

	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		respondJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
		return
	}
	if req.Condition == "" {
		req.Condition = models.ConditionNearMint
	}

	card := &models.Card{
		ID:          id,
		Name:        req.Name,
		SetName:     req.SetName,
		CardNumber:  req.CardNumber,
		Rarity:      req.Rarity,
		Price:       req.Price,
		Condition:   req.Condition,
		Description: req.Description,
		SellerNotes: req.SellerNotes,
	}
	cascade := r.URL.Query().Get("cascade") == "true"
	if err := h.Store.UpdateCard(card, cascade); err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"message": "card updated", "cascade": cascade})
}

// DeleteCard removes one physical copy (stock -1).
func (h *AdminHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid card id")
		return
	}
	if err := h.Store.DeleteCard(id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "card deleted"})
}

// DeleteCardGroup removes every unsold copy of a logical card.
func (h *AdminHandler) DeleteCardGroup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key := inventory.Key{
		Name:       q.Get("name"),
		SetName:    q.Get("set"),
		CardNumber: q.Get("number"),
	}
	if key.Name == "" || key.SetName == "" || key.CardNumber == "" {
		respondError(w, http.StatusBadRequest, "name, set and number are required")
		return
	}

	deleted, err := h.Store.DeleteCardGroup(key)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}

// UploadCardImage accepts a PNG or JPEG, shrinks it to at most 800px wide,
// stores it under static/uploads, and points this copy's image at it.
func (h *AdminHandler) UploadCardImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid card id")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB
		respondError(w, http.StatusBadRequest, "file too large, max 10MB")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	var img image.Image
	switch ext := strings.ToLower(filepath.Ext(header.Filename)); ext {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		respondError(w, http.StatusBadRequest, "only PNG and JPEG images are supported")
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to decode image")
		return
	}

	resized := resize.Resize(800, 0, img, resize.Lanczos3)

	filename := fmt.Sprintf("%s.jpg", uuid.New().String())
	uploadPath := filepath.Join("static/uploads", filename)
	out, err := os.Create(uploadPath)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "error saving image")
		return
	}
	defer out.Close()
	if err := jpeg.Encode(out, resized, &jpeg.Options{Quality: 80}); err != nil {
		respondError(w, http.StatusInternalServerError, "error saving image")
		return
	}

	imageURL := "/static/uploads/" + filename
	if err := h.Store.UpdateCardImage(id, imageURL); err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"image_url": imageURL})
}
