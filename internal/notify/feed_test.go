package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-shop/internal/events"
)

func TestFeedRetainsNewestFirst(t *testing.T) {
	feed := NewFeed(3)
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		require.NoError(t, feed.Notify(ctx, events.Event{
			Topic:   events.TopicCartItemAdded,
			Message: fmt.Sprintf("event %d", i),
		}))
	}

	recent := feed.Recent(0)
	require.Len(t, recent, 3)
	require.Equal(t, "event 5", recent[0].Message)
	require.Equal(t, "event 3", recent[2].Message)

	limited := feed.Recent(1)
	require.Len(t, limited, 1)
	require.Equal(t, "event 5", limited[0].Message)
}

func TestListHandler(t *testing.T) {
	feed := NewFeed(10)
	require.NoError(t, feed.Notify(context.Background(), events.Event{
		Topic:    events.TopicCouponApplied,
		Message:  "coupon applied",
		Severity: events.SeveritySuccess,
	}))
	handler := &Handler{Feed: feed}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []events.Event `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	require.Equal(t, "coupon applied", body.Data[0].Message)

	bad := httptest.NewRequest(http.MethodGet, "/api/v1/notifications?limit=nope", nil)
	badRec := httptest.NewRecorder()
	handler.List(badRec, bad)
	require.Equal(t, http.StatusBadRequest, badRec.Code)
}
