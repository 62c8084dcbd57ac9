package feedback

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Send(t *testing.T) {
	var gotText, gotName string
	var gotImage []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotText = r.FormValue("content")

		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		gotName = hdr.Filename
		gotImage, _ = io.ReadAll(f)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.Send(context.Background(), Message{Text: "arc looks off", Image: []byte{0x89, 'P', 'N', 'G'}, Filename: "plot.png"})
	require.NoError(t, err)

	assert.Equal(t, "arc looks off", gotText)
	assert.Equal(t, "plot.png", gotName)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, gotImage)
}

func TestClient_SendTextOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "hello", r.FormValue("content"))
		_, _, err := r.FormFile("file")
		assert.ErrorIs(t, err, http.ErrMissingFile)
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL).Send(context.Background(), Message{Text: "hello"}))
}

func TestClient_SendNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Send(context.Background(), Message{Text: "hello"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransmission)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
	assert.Equal(t, "rate limited", se.Body)
}

func TestClient_SendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewClient(url).Send(context.Background(), Message{Text: "hello"})
	assert.ErrorIs(t, err, ErrTransmission)
}

func TestClient_SendTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := NewClient(srv.URL).Send(ctx, Message{Text: "hello"})
	assert.ErrorIs(t, err, ErrTransmission)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_SendRejectsBadInput(t *testing.T) {
	assert.ErrorIs(t, (&Client{}).Send(context.Background(), Message{Text: "hi"}), ErrNoWebhook)
	assert.ErrorIs(t, NewClient("http://127.0.0.1:1").Send(context.Background(), Message{Text: "  "}), ErrEmptyMessage)
}
