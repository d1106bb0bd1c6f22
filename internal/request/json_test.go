package request

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Email string `json:"email"`
	}

	tests := []struct {
		name    string
		body    string
		strict  bool
		wantErr string
	}{
		{name: "valid", body: `{"email":"asha@example.com"}`},
		{name: "empty", body: ``, wantErr: "body must not be empty"},
		{name: "malformed", body: `{"email":`, wantErr: "badly-formed JSON"},
		{name: "wrong type", body: `{"email":1}`, wantErr: `incorrect JSON type for field "email"`},
		{name: "two values", body: `{} {}`, wantErr: "single JSON value"},
		{name: "unknown field", body: `{"role":"admin"}`, strict: true, wantErr: `unknown key "role"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var err error
			if tt.strict {
				err = DecodeJSONStrict(w, r, &dst)
			} else {
				err = DecodeJSON(w, r, &dst)
			}

			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
