package sheetapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCall_DirectJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "text/plain", r.Header.Get("Content-Type"))

		var env map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&env))
		assert.Equal(t, "Products", env["sheet"])

		fmt.Fprint(w, `{"success":true,"data":[["p-1","a@x.com","Telur Ayam","","",50000,10,"pangan",1,"2024-01-01T00:00:00Z","2024-01-01T00:00:00Z"]]}`)
	}))
	defer srv.Close()

	res := New(srv.URL).ReadProducts(context.Background(), "a@x.com")
	require.True(t, res.Success)
	assert.Empty(t, res.Error)

	var rows [][]any
	require.NoError(t, json.Unmarshal(res.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Telur Ayam", rows[0][2])
}

func TestCall_FollowsHTMLRedirectOnce(t *testing.T) {
	var gets atomic.Int32

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/exec", func(w http.ResponseWriter, r *http.Request) {
		// Target berisi &amp; seperti halaman redirect Apps Script asli.
		fmt.Fprintf(w, `<HTML><HEAD><TITLE>Moved Temporarily</TITLE></HEAD><BODY><A HREF="%s/final?lib=x&amp;token=y">here</A></BODY></HTML>`, srv.URL)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "x", r.URL.Query().Get("lib"))
		require.Equal(t, "y", r.URL.Query().Get("token"))
		gets.Add(1)
		fmt.Fprint(w, `{"success":true,"order_id":"o-1"}`)
	})

	res := New(srv.URL + "/exec").CreateOrder(context.Background(), "b@x.com", &OrderData{ProductID: "p-1", Quantity: 1})
	require.True(t, res.Success)
	assert.Equal(t, "o-1", res.OrderID)
	assert.Equal(t, int32(1), gets.Load())
}

func TestCall_MalformedBody(t *testing.T) {
	t.Run("non-JSON non-HTML", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "definitely not json")
		}))
		defer srv.Close()

		res := New(srv.URL).ReadOrders(context.Background(), "a@x.com")
		assert.False(t, res.Success)
		assert.NotEmpty(t, res.Error)
	})

	t.Run("HTML without redirect marker", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html><body>service unavailable</body></html>")
		}))
		defer srv.Close()

		res := New(srv.URL).ReadOrders(context.Background(), "a@x.com")
		assert.False(t, res.Success)
		assert.NotEmpty(t, res.Error)
	})
}

func TestCall_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // koneksi pasti gagal

	res := New(srv.URL).Login(context.Background(), "a@x.com", "pw")
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func TestCall_BusinessRejectionPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":false,"error":"Email already exists"}`)
	}))
	defer srv.Close()

	res := New(srv.URL).Register(context.Background(), "a@x.com", "pw", "Aji", "", "", "buyer")
	assert.False(t, res.Success)
	assert.Equal(t, "Email already exists", res.Error)
}

func TestCall_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := New(srv.URL).ReadProducts(ctx, "a@x.com")
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}
