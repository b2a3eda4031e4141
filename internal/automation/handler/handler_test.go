package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"blocarch_backend/internal/automation/ports"
	"blocarch_backend/internal/automation/repository"
	"blocarch_backend/internal/automation/service"
	"blocarch_backend/platform/logger"
)

type captureFeed struct {
	gotStatus string
	gotLimit  int
	items     []ports.FeedLead
}

func (f *captureFeed) ListFeedLeads(ctx context.Context, status string, limit int) ([]ports.FeedLead, error) {
	f.gotStatus = status
	f.gotLimit = limit
	return f.items, nil
}

type emptyRules struct{}

func (emptyRules) List(ctx context.Context) ([]repository.Rule, error) { return nil, nil }

func newTestRouter(feed ports.FeedSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := New(service.New(feed, emptyRules{}, logger.New("test")))
	h.RegisterRoutes(engine.Group("/api"))
	return engine
}

func TestFeed_LimitParam(t *testing.T) {
	cases := []struct {
		name      string
		query     string
		wantLimit int
	}{
		{"missing", "", 200},
		{"non-numeric", "?limit=lots", 200},
		{"in range", "?limit=50", 50},
		{"above max", "?limit=2000", 500},
		{"below min", "?limit=-3", 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			feed := &captureFeed{}
			router := newTestRouter(feed)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/n8n/leads"+tc.query, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.wantLimit, feed.gotLimit)
		})
	}
}

func TestFeed_StatusParamForwarded(t *testing.T) {
	feed := &captureFeed{}
	router := newTestRouter(feed)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/n8n/leads?status=qualified", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "qualified", feed.gotStatus)
}

func TestFeed_EnvelopeShape(t *testing.T) {
	leadID := uuid.MustParse("6f1a2b3c-0000-0000-0000-000000000001")
	practiceID := uuid.MustParse("6f1a2b3c-0000-0000-0000-000000000002")
	feed := &captureFeed{items: []ports.FeedLead{{
		LeadID:      leadID,
		PracticeID:  practiceID,
		Status:      "new",
		Stage:       "cold",
		StatusKnown: true,
		Name:        "Acme Architects",
		Email:       "hello@acme.example",
	}}}
	router := newTestRouter(feed)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/n8n/leads?status=new", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"leads": [{
			"lead_id": "6f1a2b3c-0000-0000-0000-000000000001",
			"practice_id": "6f1a2b3c-0000-0000-0000-000000000002",
			"status": "new",
			"outreach_stage": "cold",
			"practice": {
				"id": "6f1a2b3c-0000-0000-0000-000000000002",
				"name": "Acme Architects",
				"email": "hello@acme.example",
				"contact": null,
				"website": null,
				"address": null
			}
		}]
	}`, w.Body.String())
}

func TestFeed_EmptyIsStillLeadsKey(t *testing.T) {
	router := newTestRouter(&captureFeed{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/n8n/leads", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"leads": []}`, w.Body.String())
}

func TestRules_OK(t *testing.T) {
	router := newTestRouter(&captureFeed{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/automation/rules", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items": [], "count": 0}`, w.Body.String())
}
