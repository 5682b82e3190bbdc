package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/bowling-center/internal/apperr"
	"github.com/iliyamo/bowling-center/internal/client"
	"github.com/iliyamo/bowling-center/internal/config"
	"github.com/iliyamo/bowling-center/internal/model"
)

const laneID = "0d9f3c3e-2b7a-4a8e-9e55-1c0a4f6b8d21"

func downstreamServer(t *testing.T, h http.HandlerFunc) client.Config {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return client.Config{BaseURL: srv.URL}
}

func intPtr(v int) *int { return &v }

func laneStatus(s model.LaneStatus) *model.LaneStatus { return &s }

func TestLaneClient_Get(t *testing.T) {
	cfg := downstreamServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/lanes/"+laneID, r.URL.Path)
		_, _ = io.WriteString(w, `{"id":"`+laneID+`","laneNumber":3,"zone":"ZONE_2","status":"AVAILABLE"}`)
	})

	lane, err := NewLaneClient(cfg, nil, config.IDFormatUUID).Get(context.Background(), laneID)
	require.NoError(t, err)
	assert.Equal(t, "ZONE_2", lane.Zone)
}

func TestLaneClient_BadIDNeverCallsDownstream(t *testing.T) {
	called := false
	cfg := downstreamServer(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := NewLaneClient(cfg, nil, config.IDFormatUUID).Get(context.Background(), "L1")
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidInput(err))
	assert.Equal(t, "Invalid Lane ID format: L1", err.Error())
	assert.False(t, called)
}

func TestLaneClient_AnyIDPolicy(t *testing.T) {
	cfg := downstreamServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := NewLaneClient(cfg, nil, config.IDFormatAny).Get(context.Background(), "L1")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, "Lane not found: L1", err.Error())
}

func TestLaneClient_GetServerErrorIsDownstreamError(t *testing.T) {
	cfg := downstreamServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"message":"Internal server error"}`)
	})

	_, err := NewLaneClient(cfg, nil, config.IDFormatUUID).Get(context.Background(), laneID)
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidInput(err))
	assert.Equal(t, `Downstream error: {"message":"Internal server error"}`, err.Error())
}

func TestBallClient_CreateClientErrorIsLabelled(t *testing.T) {
	cfg := downstreamServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bowlingballs", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, "size: must not be null")
	})

	_, err := NewBallClient(cfg, nil, config.IDFormatUUID).Create(context.Background(), model.BallRequest{})
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidInput(err))
	assert.Equal(t, "Bowling Ball: size: must not be null", err.Error())
}

func TestTransactionClient_CreateClientErrorIsBodyOnly(t *testing.T) {
	cfg := downstreamServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/transactions", r.URL.Path)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, "Cannot complete transaction: lane is not available.")
	})

	_, err := NewTransactionClient(cfg, nil, config.IDFormatUUID).Create(context.Background(), model.TransactionRequest{})
	require.Error(t, err)
	assert.Equal(t, "Cannot complete transaction: lane is not available.", err.Error())
}

func TestShoeClient_UpdateForwardsBodyAndMaps404(t *testing.T) {
	cfg := downstreamServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var got map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "9", got["size"])
		w.WriteHeader(http.StatusNotFound)
	})

	size := model.Shoe9
	_, err := NewShoeClient(cfg, nil, config.IDFormatUUID).Update(context.Background(), laneID, model.ShoeRequest{Size: &size})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, "Shoe not found: "+laneID, err.Error())
}

func TestLaneClient_DeleteUnexpectedIsUnclassified(t *testing.T) {
	cfg := downstreamServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := NewLaneClient(cfg, nil, config.IDFormatUUID).Delete(context.Background(), laneID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnknown, apperr.KindOf(err))
}

func TestLaneClient_ListAndCreate(t *testing.T) {
	cfg := downstreamServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, `[{"id":"a","laneNumber":1,"zone":"ZONE_1","status":"AVAILABLE"}]`)
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":"b","laneNumber":2,"zone":"ZONE_1","status":"IN_USE"}`)
		}
	})
	c := NewLaneClient(cfg, nil, config.IDFormatUUID)

	lanes, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, lanes, 1)
	assert.Equal(t, "a", lanes[0].ID)

	lane, err := c.Create(context.Background(), model.LaneRequest{LaneNumber: intPtr(2), Zone: "ZONE_1", Status: laneStatus(model.LaneInUse)})
	require.NoError(t, err)
	assert.Equal(t, "b", lane.ID)
}

func TestEntityAndCollection(t *testing.T) {
	lane := model.Lane{ID: "a", LaneNumber: 1, Zone: "ZONE_1", Status: model.LaneAvailable}

	raw, err := Entity(LaneResource, lane)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a","laneNumber":1,"zone":"ZONE_1","status":"AVAILABLE",
		"_links":{"self":{"href":"/api/lanes/a"},"all":{"href":"/api/lanes"}}}`, string(raw))

	coll, err := Collect(LaneResource, []model.Lane{lane})
	require.NoError(t, err)
	out, err := json.Marshal(coll)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_embedded":{"lanes":[{"id":"a","laneNumber":1,"zone":"ZONE_1","status":"AVAILABLE",
		"_links":{"self":{"href":"/api/lanes/a"},"all":{"href":"/api/lanes"}}}]},
		"_links":{"self":{"href":"/api/lanes"}}}`, string(out))
}
