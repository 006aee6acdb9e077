package integration_test

import (
	"fmt"
	"net/http"
	"testing"

	"gigflow_backend/internal/models"
	"gigflow_backend/internal/services/dto"
	"gigflow_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGig_CreateAndFetch(t *testing.T) {
	ts := helpers.NewTestServer(t)
	owner := newActor(t, ts, "owner")

	gig := postGig(t, ts, owner, "Landing page redesign", 750)
	assert.Equal(t, models.GigStatusOpen, gig.Status)
	assert.Equal(t, owner.User.ID, gig.OwnerID)
	assert.Nil(t, gig.AssignedTo)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/gigs/"+gig.ID, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var fetched models.Gig
	helpers.DecodeJSON(t, body, &fetched)
	assert.Equal(t, gig.ID, fetched.ID)
	require.NotNil(t, fetched.Owner)
	assert.Equal(t, owner.User.Name, fetched.Owner.Name)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/gigs/00000000-0000-0000-0000-000000000000", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))
}

func TestGig_CreateRequiresAuthAndValidInput(t *testing.T) {
	ts := helpers.NewTestServer(t)
	owner := newActor(t, ts, "owner")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/gigs", "", map[string]interface{}{"title": "Anything"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/gigs", "garbage", map[string]interface{}{"title": "Anything"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/gigs", owner.Token, map[string]interface{}{
		"title":       "Hey",
		"description": "too short",
		"budget":      0,
		"deadline":    "2001-01-01",
	})
	require.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	var e struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	helpers.DecodeJSON(t, body, &e)
	assert.Equal(t, "VALIDATION_FAILED", e.Error.Code)
	for _, field := range []string{"title", "description", "budget", "deadline"} {
		assert.Contains(t, e.Error.Details, field)
	}

	for _, budget := range []float64{0.004, 1e15} {
		res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/gigs", owner.Token, map[string]interface{}{
			"title":       "Out of range budget",
			"description": "Budget that cannot be stored as money",
			"budget":      budget,
			"deadline":    nextWeek(),
		})
		require.Equal(t, http.StatusBadRequest, res.StatusCode, body)
		e.Error.Details = nil
		helpers.DecodeJSON(t, body, &e)
		assert.Equal(t, "VALIDATION_FAILED", e.Error.Code)
		assert.Contains(t, e.Error.Details, "budget")
	}

	var count int64
	require.NoError(t, ts.DB.Model(&models.Gig{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGig_ListPaginationAndFilters(t *testing.T) {
	ts := helpers.NewTestServer(t)
	owner := newActor(t, ts, "owner")
	other := newActor(t, ts, "other")

	for i := 0; i < 20; i++ {
		postGig(t, ts, owner, fmt.Sprintf("Owner gig number %02d", i), float64(100+i*10))
	}
	postGig(t, ts, other, "Golang microservice", 5000)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/gigs?ownerOnly=true&limit=9&page=3", owner.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var page dto.GigListResponse
	helpers.DecodeJSON(t, body, &page)
	assert.Len(t, page.Gigs, 2)
	assert.Equal(t, dto.Pagination{Total: 20, Page: 3, Limit: 9, TotalPages: 3, HasNextPage: false, HasPrevPage: true}, page.Pagination)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/gigs?ownership=true", owner.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	helpers.DecodeJSON(t, body, &page)
	assert.EqualValues(t, 20, page.Pagination.Total)
	for _, g := range page.Gigs {
		assert.Equal(t, owner.User.ID, g.OwnerID)
	}

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/gigs?search=GOLANG", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	helpers.DecodeJSON(t, body, &page)
	require.Len(t, page.Gigs, 1)
	assert.Equal(t, "Golang microservice", page.Gigs[0].Title)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/gigs?sortBy=budget&sortOrder=asc&minBudget=150&maxBudget=200", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	helpers.DecodeJSON(t, body, &page)
	require.Len(t, page.Gigs, 6)
	assert.Equal(t, 150.0, page.Gigs[0].Budget)
	assert.Equal(t, 200.0, page.Gigs[5].Budget)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/gigs?ownerOnly=true", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/gigs?status=archived", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestGig_StatusChanges(t *testing.T) {
	ts := helpers.NewTestServer(t)
	owner := newActor(t, ts, "owner")
	stranger := newActor(t, ts, "stranger")
	gig := postGig(t, ts, owner, "Status change target", 300)
	path := "/api/v1/gigs/" + gig.ID + "/status"

	res, body := ts.SendRequest(t, http.MethodPatch, path, stranger.Token, map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPatch, path, owner.Token, map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPatch, path, owner.Token, map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPatch, path, owner.Token, map[string]string{"status": "cancelled"})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var updated models.Gig
	helpers.DecodeJSON(t, body, &updated)
	assert.Equal(t, models.GigStatusCancelled, updated.Status)
}

func TestHealth(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
}
