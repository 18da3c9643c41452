package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatbook/seatbook-backend/internal/models"
)

func TestListEvents_EmptyList(t *testing.T) {
	env := newTestEnv(t)

	rec := newRecorderFor(http.HandlerFunc(env.handler.ListEvents), newGetRequest("/api/events"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"events":[]`)
}

func TestListEvents_OrderedWithSeatCounts(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.events.Create(context.Background(), &models.Event{Name: "First", Date: "2031-05-01", Capacity: 3}))
	require.NoError(t, env.events.Create(context.Background(), &models.Event{Name: "Second", Date: "2031-06-01", Capacity: 5}))

	rec := newRecorderFor(http.HandlerFunc(env.handler.ListEvents), newGetRequest("/api/events"))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Events []models.Event `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Events, 2)
	assert.Equal(t, "First", body.Events[0].Name)
	assert.Equal(t, "Second", body.Events[1].Name)
	assert.Equal(t, 3, body.Events[0].Remaining())
}
