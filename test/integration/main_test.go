package integration_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"gigflow_backend/internal/models"
	"gigflow_backend/test/helpers"

	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Error struct {
		Code    string      `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details"`
	} `json:"error"`
}

type actor struct {
	User  *models.User
	Token string
}

func newActor(t *testing.T, ts *helpers.TestServer, name string) actor {
	t.Helper()
	u := helpers.CreateUser(t, ts.DB, name)
	return actor{User: u, Token: ts.Token(t, u.ID)}
}

func nextWeek() string {
	return time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
}

func postGig(t *testing.T, ts *helpers.TestServer, owner actor, title string, budget float64) models.Gig {
	t.Helper()
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/gigs", owner.Token, map[string]interface{}{
		"title":       title,
		"description": fmt.Sprintf("Detailed description for %s", title),
		"budget":      budget,
		"deadline":    nextWeek(),
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var gig models.Gig
	helpers.DecodeJSON(t, body, &gig)
	return gig
}

func postBid(t *testing.T, ts *helpers.TestServer, bidder actor, gigID string, price float64) models.Bid {
	t.Helper()
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/bids", bidder.Token, map[string]interface{}{
		"gigId":   gigID,
		"price":   price,
		"message": "I have done this before",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var bid models.Bid
	helpers.DecodeJSON(t, body, &bid)
	return bid
}

func errorCode(t *testing.T, body string) string {
	t.Helper()
	var e errorBody
	helpers.DecodeJSON(t, body, &e)
	return e.Error.Code
}
