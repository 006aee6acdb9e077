package integration_test

import (
	"net/http"
	"sync"
	"testing"

	"gigflow_backend/internal/models"
	"gigflow_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBid_HireFlow(t *testing.T) {
	ts := helpers.NewTestServer(t)
	owner := newActor(t, ts, "owner")
	a := newActor(t, ts, "alice")
	b := newActor(t, ts, "bob")
	c := newActor(t, ts, "carol")

	gig := postGig(t, ts, owner, "Build a booking system", 5000)
	bidA := postBid(t, ts, a, gig.ID, 5000)
	bidB := postBid(t, ts, b, gig.ID, 4000)
	bidC := postBid(t, ts, c, gig.ID, 4500)
	assert.Equal(t, models.BidStatusPending, bidB.Status)

	// Only the owner sees the bids, newest first with bidder profiles.
	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/bids/"+gig.ID, a.Token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/bids/"+gig.ID, owner.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var listed []models.Bid
	helpers.DecodeJSON(t, body, &listed)
	require.Len(t, listed, 3)
	assert.Equal(t, []string{bidC.ID, bidB.ID, bidA.ID}, []string{listed[0].ID, listed[1].ID, listed[2].ID})
	require.NotNil(t, listed[1].Bidder)
	assert.Equal(t, b.User.Email, listed[1].Bidder.Email)

	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/bids/"+bidB.ID+"/hire", a.Token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/bids/"+bidB.ID+"/hire", owner.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var hired models.Bid
	helpers.DecodeJSON(t, body, &hired)
	assert.Equal(t, models.BidStatusAccepted, hired.Status)

	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/bids/"+bidA.ID+"/hire", owner.Token, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Equal(t, "CONFLICT", errorCode(t, body))

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/gigs/"+gig.ID, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var current models.Gig
	helpers.DecodeJSON(t, body, &current)
	assert.Equal(t, models.GigStatusAssigned, current.Status)
	require.NotNil(t, current.AssignedTo)
	assert.Equal(t, b.User.ID, *current.AssignedTo)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/bids/my", a.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var mine []models.Bid
	helpers.DecodeJSON(t, body, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, models.BidStatusRejected, mine[0].Status)
	require.NotNil(t, mine[0].Gig)
	assert.Equal(t, gig.Title, mine[0].Gig.Title)

	// A bid on the assigned gig is refused.
	late := newActor(t, ts, "late")
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/bids", late.Token, map[string]interface{}{
		"gigId": gig.ID, "price": 100, "message": "still available?",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)
}

func TestBid_Rejections(t *testing.T) {
	ts := helpers.NewTestServer(t)
	owner := newActor(t, ts, "owner")
	bidder := newActor(t, ts, "bidder")
	gig := postGig(t, ts, owner, "Rejection paths", 100)

	cases := []struct {
		name   string
		token  string
		body   map[string]interface{}
		status int
	}{
		{"self bid", owner.Token, map[string]interface{}{"gigId": gig.ID, "price": 50, "message": "me"}, http.StatusForbidden},
		{"zero price", bidder.Token, map[string]interface{}{"gigId": gig.ID, "price": 0, "message": "free"}, http.StatusBadRequest},
		{"empty message", bidder.Token, map[string]interface{}{"gigId": gig.ID, "price": 50, "message": ""}, http.StatusBadRequest},
		{"missing gig", bidder.Token, map[string]interface{}{"gigId": "00000000-0000-0000-0000-000000000000", "price": 50, "message": "hi"}, http.StatusNotFound},
		{"anonymous", "", map[string]interface{}{"gigId": gig.ID, "price": 50, "message": "hi"}, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/bids", tc.token, tc.body)
			assert.Equal(t, tc.status, res.StatusCode, body)
		})
	}

	var count int64
	require.NoError(t, ts.DB.Model(&models.Bid{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBid_ConcurrentHireOverHTTP(t *testing.T) {
	const n = 6

	ts := helpers.NewTestServer(t)
	owner := newActor(t, ts, "owner")
	gig := postGig(t, ts, owner, "Everyone wants this", 900)

	bids := make([]models.Bid, n)
	for i := range bids {
		bids[i] = postBid(t, ts, newActor(t, ts, "bidder"), gig.ID, float64(500+i))
	}

	statuses := make([]int, n)
	var wg sync.WaitGroup
	for i := range bids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, _ := ts.SendRequest(t, http.MethodPatch, "/api/v1/bids/"+bids[i].ID+"/hire", owner.Token, nil)
			statuses[i] = res.StatusCode
		}(i)
	}
	wg.Wait()

	var ok, conflict int
	for _, s := range statuses {
		switch s {
		case http.StatusOK:
			ok++
		case http.StatusConflict:
			conflict++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflict)
}
