package google

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"

	"github.com/swimsync/swimsync/pkg/calendar"
)

func TestStoreErrorClassification(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want calendar.ErrorKind
	}{
		{
			name: "rate limited",
			err:  &googleapi.Error{Code: 429},
			want: calendar.KindTransient,
		},
		{
			name: "server error",
			err:  &googleapi.Error{Code: 500},
			want: calendar.KindTransient,
		},
		{
			name: "bad gateway",
			err:  &googleapi.Error{Code: 502},
			want: calendar.KindTransient,
		},
		{
			name: "unavailable",
			err:  &googleapi.Error{Code: 503},
			want: calendar.KindTransient,
		},
		{
			name: "gateway timeout",
			err:  &googleapi.Error{Code: 504},
			want: calendar.KindTransient,
		},
		{
			name: "not found",
			err:  &googleapi.Error{Code: 404},
			want: calendar.KindNotFound,
		},
		{
			name: "gone",
			err:  &googleapi.Error{Code: 410},
			want: calendar.KindNotFound,
		},
		{
			name: "forbidden rate limit",
			err: &googleapi.Error{Code: 403, Errors: []googleapi.ErrorItem{
				{Reason: "rateLimitExceeded"},
			}},
			want: calendar.KindTransient,
		},
		{
			name: "forbidden user rate limit",
			err: &googleapi.Error{Code: 403, Errors: []googleapi.ErrorItem{
				{Reason: "userRateLimitExceeded"},
			}},
			want: calendar.KindTransient,
		},
		{
			name: "forbidden for any other reason",
			err:  &googleapi.Error{Code: 403, Errors: []googleapi.ErrorItem{{Reason: "forbidden"}}},
			want: calendar.KindPermanent,
		},
		{
			name: "bad request",
			err:  &googleapi.Error{Code: 400},
			want: calendar.KindPermanent,
		},
		{
			name: "non-API error",
			err:  errors.New("connection reset"),
			want: calendar.KindPermanent,
		},
		{
			name: "wrapped API error",
			err:  fmt.Errorf("call failed: %w", &googleapi.Error{Code: 503}),
			want: calendar.KindTransient,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			storeErr := storeError("delete", tc.err)
			assert.Equal(t, tc.want, storeErr.Kind)
			assert.Equal(t, "delete", storeErr.Op)
		})
	}
}
