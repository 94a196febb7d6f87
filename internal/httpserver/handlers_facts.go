package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/driftlab/beacon-analytics/internal/models"
)

// ---- Campaigns ----

func (s *Server) handleCampaigns(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		campaigns, err := s.store.ListCampaigns(r.Context())
		if err != nil {
			s.internalError(w, "failed to list campaigns", err)
			return
		}
		s.writeJSON(w, http.StatusOK, campaigns)

	case http.MethodPost, http.MethodPut:
		var c models.Campaign
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			s.errorResponse(w, "invalid json", http.StatusBadRequest)
			return
		}
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now().UTC()
		}
		if err := c.Validate(); err != nil {
			s.errorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := s.store.UpsertCampaign(r.Context(), c); err != nil {
			s.internalError(w, "failed to upsert campaign", err)
			return
		}
		s.metrics.RecordIngest("campaign")
		s.writeJSON(w, http.StatusOK, c)

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCampaignByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/campaigns/")
	if id == "" {
		s.errorResponse(w, "campaign id required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		c, err := s.store.GetCampaign(r.Context(), id)
		if err != nil {
			s.internalError(w, "failed to get campaign", err)
			return
		}
		if c == nil {
			s.errorResponse(w, "campaign not found", http.StatusNotFound)
			return
		}
		s.writeJSON(w, http.StatusOK, c)

	case http.MethodDelete:
		if err := s.store.DeleteCampaign(r.Context(), id); err != nil {
			s.internalError(w, "failed to delete campaign", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ---- Links ----

func (s *Server) handleLinks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		links, err := s.store.ListLinks(r.Context())
		if err != nil {
			s.internalError(w, "failed to list links", err)
			return
		}
		s.writeJSON(w, http.StatusOK, links)

	case http.MethodPost, http.MethodPut:
		var l models.Link
		if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
			s.errorResponse(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := l.Validate(); err != nil {
			s.errorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := s.store.UpsertLink(r.Context(), l); err != nil {
			s.internalError(w, "failed to upsert link", err)
			return
		}
		s.metrics.RecordIngest("link")
		s.writeJSON(w, http.StatusOK, l)

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ---- Content ----

func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		content, err := s.store.ListContent(r.Context())
		if err != nil {
			s.internalError(w, "failed to list content", err)
			return
		}
		s.writeJSON(w, http.StatusOK, content)

	case http.MethodPost:
		var cr models.ContentRecord
		if err := json.NewDecoder(r.Body).Decode(&cr); err != nil {
			s.errorResponse(w, "invalid json", http.StatusBadRequest)
			return
		}
		if cr.ID == "" {
			cr.ID = uuid.New().String()
		}
		if cr.CreatedAt.IsZero() {
			cr.CreatedAt = time.Now().UTC()
		}
		if cr.Compliance == "" {
			cr.Compliance = models.ComplianceNone
		}
		if err := cr.Validate(); err != nil {
			s.errorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := s.store.AddContent(r.Context(), cr); err != nil {
			s.internalError(w, "failed to add content record", err)
			return
		}
		s.metrics.RecordIngest("content")
		s.writeJSON(w, http.StatusOK, cr)

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ---- Products ----

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		products, err := s.store.ListProducts(r.Context())
		if err != nil {
			s.internalError(w, "failed to list products", err)
			return
		}
		s.writeJSON(w, http.StatusOK, products)

	case http.MethodPost, http.MethodPut:
		var p models.Product
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			s.errorResponse(w, "invalid json", http.StatusBadRequest)
			return
		}
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		if err := p.Validate(); err != nil {
			s.errorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := s.store.UpsertProduct(r.Context(), p); err != nil {
			s.internalError(w, "failed to upsert product", err)
			return
		}
		s.metrics.RecordIngest("product")
		s.writeJSON(w, http.StatusOK, p)

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ---- Billing ----

func (s *Server) handleDeposits(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		deposits, err := s.store.ListDeposits(r.Context())
		if err != nil {
			s.internalError(w, "failed to list deposits", err)
			return
		}
		s.writeJSON(w, http.StatusOK, deposits)

	case http.MethodPost:
		var d models.Deposit
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			s.errorResponse(w, "invalid json", http.StatusBadRequest)
			return
		}
		if d.DepositDate.IsZero() {
			d.DepositDate = time.Now().UTC()
		}
		if err := d.Validate(); err != nil {
			s.errorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := s.store.AddDeposit(r.Context(), d); err != nil {
			s.internalError(w, "failed to add deposit", err)
			return
		}
		s.metrics.RecordIngest("deposit")
		s.writeJSON(w, http.StatusOK, d)

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		records, err := s.store.ListUsage(r.Context())
		if err != nil {
			s.internalError(w, "failed to list usage records", err)
			return
		}
		s.writeJSON(w, http.StatusOK, records)

	case http.MethodPost:
		var u models.UsageRecord
		if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
			s.errorResponse(w, "invalid json", http.StatusBadRequest)
			return
		}
		if u.Date.IsZero() {
			u.Date = time.Now().UTC()
		}
		if err := u.Validate(); err != nil {
			s.errorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := s.store.AddUsage(r.Context(), u); err != nil {
			s.internalError(w, "failed to add usage record", err)
			return
		}
		s.metrics.RecordIngest("usage")
		s.writeJSON(w, http.StatusOK, u)

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
