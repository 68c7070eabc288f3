package request_test

import (
	"testing"

	"filmes-api/internal/dto/request"

	"github.com/stretchr/testify/assert"
)

func TestListRequest_Window(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		req        request.ListRequest
		wantOffset int
		wantLimit  int
	}{
		{"defaults", request.ListRequest{Skip: 0, Take: request.DefaultTake}, 0, 10},
		{"negative skip", request.ListRequest{Skip: -3, Take: 5}, 0, 5},
		{"zero take", request.ListRequest{Skip: 2, Take: 0}, 2, 0},
		{"negative take", request.ListRequest{Skip: 0, Take: -1}, 0, request.DefaultTake},
		{"take capped", request.ListRequest{Skip: 0, Take: 1000}, 0, request.MaxTake},
		{"large skip passes through", request.ListRequest{Skip: 1_000_000, Take: 10}, 1_000_000, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantOffset, tt.req.Offset())
			assert.Equal(t, tt.wantLimit, tt.req.Limit())
		})
	}
}
