package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseResponse_JSON(t *testing.T) {
	tests := []struct {
		name string
		resp *BaseResponse
		want string
	}{
		{
			name: "error has no data",
			resp: NewErrorResponse(http.StatusConflict, "No rooms left"),
			want: `{"code":409,"message":"No rooms left"}`,
		},
		{
			name: "created carries data",
			resp: NewCreatedResponse("Imported", map[string]int64{"rows": 3}),
			want: `{"code":201,"message":"Imported","data":{"rows":3}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.resp)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
		})
	}
}
