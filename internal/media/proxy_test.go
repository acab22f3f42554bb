package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriveViewURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"share link with /d/ segment",
			"https://drive.google.com/file/d/1AbC_dEf/view?usp=sharing",
			"https://drive.google.com/uc?export=view&id=1AbC_dEf",
		},
		{
			"open link with id parameter",
			"https://drive.google.com/open?id=1AbC_dEf&usp=drive_link",
			"https://drive.google.com/uc?export=view&id=1AbC_dEf",
		},
		{
			"export form kept as is",
			"https://drive.google.com/uc?export=download&id=1AbC_dEf",
			"https://drive.google.com/uc?export=download&id=1AbC_dEf",
		},
		{
			"non-drive url untouched",
			"https://cdn.example.com/audio/q1.mp3",
			"https://cdn.example.com/audio/q1.mp3",
		},
		{
			"drive url without recognizable id untouched",
			"https://drive.google.com/drive/my-drive",
			"https://drive.google.com/drive/my-drive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DriveViewURL(tt.in))
		})
	}
}

func TestProxyFetch_ContentTypes(t *testing.T) {
	tests := []struct {
		name         string
		upstreamType string
		wantType     string
	}{
		{"image passes through", "image/png", "image/png"},
		{"audio forced to mpeg", "audio/ogg", "audio/mpeg"},
		{"unknown falls back", "text/html; charset=utf-8", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.upstreamType)
				_, _ = w.Write([]byte("payload"))
			}))
			defer srv.Close()

			content, err := NewProxy(srv.Client()).Fetch(context.Background(), srv.URL)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, content.Type)
			assert.Equal(t, []byte("payload"), content.Data)
		})
	}
}

func TestProxyFetch_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewProxy(srv.Client()).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
