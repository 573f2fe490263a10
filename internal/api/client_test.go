package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bialog/bialog/internal/api"
	"github.com/bialog/bialog/internal/cache"
	"github.com/bialog/bialog/internal/logging"
	"github.com/bialog/bialog/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler, token string) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.NewClient(api.Options{BaseURL: srv.URL, RetryCount: 0}, session.NewStaticProvider(token))
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestFetchPurchaselog(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /purchaselog", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"page":       3,
			"total_page": 5,
			"purchaselog": []map[string]any{
				{"purchase_id": 9, "date_time": "2024-05-01T12:30:00", "total_amount": 4800, "total_cans": 12},
			},
		})
	})
	c := newTestClient(t, mux, "tok")

	page, err := c.FetchPurchaselog(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 5, page.TotalPage)
	require.Len(t, page.Purchaselog, 1)
	assert.Equal(t, 9, page.Purchaselog[0].PurchaseID)

	when, err := page.Purchaselog[0].PurchasedAt()
	require.NoError(t, err)
	assert.Equal(t, 2024, when.Year())
}

func TestFetchPurchaselog_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{}`, sentinel: api.ErrUnauthorized},
		{name: "not found", status: http.StatusNotFound, body: `{}`, sentinel: api.ErrNotFound},
		{name: "server error", status: http.StatusInternalServerError, body: `{}`, sentinel: api.ErrBadStatus},
		{name: "bad json", status: http.StatusOK, body: `{"page":`, sentinel: api.ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}), "tok")

			_, err := c.FetchPurchaselog(context.Background(), 1)
			require.ErrorIs(t, err, tt.sentinel)

			var fe *api.FetchError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, "fetch purchaselog", fe.Op)
			assert.Equal(t, tt.status, fe.StatusCode)
		})
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := api.NewClient(api.Options{BaseURL: url, Timeout: time.Second}, session.NewStaticProvider("tok"))
	_, err := c.FetchPurchaselog(context.Background(), 1)

	var fe *api.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Zero(t, fe.StatusCode)
}

func TestNoTokenSendsNoAuthorization(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
	}), "")

	_, err := c.CurrentUserName(context.Background())
	require.ErrorIs(t, err, session.ErrUnauthorized)
}

func TestTraceIDHeader(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "01TRACE", r.Header.Get("X-Request-Id"))
		writeJSON(t, w, http.StatusOK, map[string]string{"user_name": "hanako"})
	}), "tok")

	ctx := logging.ContextWithTraceID(context.Background(), "01TRACE")
	name, err := c.CurrentUserName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hanako", name)
}

func TestNotFoundIsEmpty(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler(), "tok")
	ctx := context.Background()

	favs, err := c.Favorites(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, favs)
	assert.NotNil(t, favs)

	prefs, err := c.Preferences(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, prefs)

	brands, err := c.SearchBrands(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, brands)
}

func TestUserWithPhotos(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user_with_photos", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("user_id"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"user":   map[string]any{"user_id": 7, "user_name": "hanako", "user_profile": "IPA好き"},
			"photos": []map[string]any{{"photo_id": 1, "photo_data": "aGk="}},
		})
	})
	c := newTestClient(t, mux, "tok")

	got, err := c.UserWithPhotos(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "hanako", got.User.UserName)
	assert.Len(t, got.Photos, 1)
}

func TestAddFavorite(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /add_favorite", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		switch body["brand_name"] {
		case "Yona Yona":
			writeJSON(t, w, http.StatusOK, map[string]any{"brand_id": 3, "brand_name": "Yona Yona"})
		case "Dup":
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	c := newTestClient(t, mux, "tok")
	ctx := context.Background()

	brand, err := c.AddFavorite(ctx, 1, "Yona Yona")
	require.NoError(t, err)
	assert.Equal(t, api.Brand{BrandID: 3, BrandName: "Yona Yona"}, brand)

	_, err = c.AddFavorite(ctx, 1, "Dup")
	require.ErrorIs(t, err, api.ErrAlreadyFavorite)

	_, err = c.AddFavorite(ctx, 1, "Unknown")
	require.ErrorIs(t, err, api.ErrNotFound)
}

func TestDeleteFavorite(t *testing.T) {
	called := false
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /delete_favorite", func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, "1", r.URL.Query().Get("user_id"))
		assert.Equal(t, "3", r.URL.Query().Get("brand_id"))
		writeJSON(t, w, http.StatusOK, map[string]string{"message": "ok"})
	})
	c := newTestClient(t, mux, "tok")

	require.NoError(t, c.DeleteFavorite(context.Background(), 1, 3))
	assert.True(t, called)
}

func TestUpdatePreferences(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /update_preferences", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UserID      int            `json:"user_id"`
			Preferences map[string]int `json:"preferences"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 1, body.UserID)
		assert.Equal(t, map[string]int{"2": 4, "5": 1}, body.Preferences)
		writeJSON(t, w, http.StatusOK, map[string]string{"message": "ok"})
	})
	c := newTestClient(t, mux, "tok")
	ctx := context.Background()

	require.NoError(t, c.UpdatePreferences(ctx, 1, map[int]int{2: 4, 5: 1}))
	require.ErrorIs(t, c.UpdatePreferences(ctx, 1, map[int]int{2: 9}), api.ErrInvalidScore)
}

func TestLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("username") != "hanako" || r.PostForm.Get("password") != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]string{"access_token": "jwt", "token_type": "bearer"})
	})
	c := newTestClient(t, mux, "")
	ctx := context.Background()

	tok, err := c.Login(ctx, "hanako", "pw")
	require.NoError(t, err)
	assert.Equal(t, "jwt", tok.AccessToken)

	_, err = c.Login(ctx, "hanako", "wrong")
	require.ErrorIs(t, err, api.ErrUnauthorized)

	_, err = c.Login(ctx, "", "")
	require.ErrorIs(t, err, api.ErrEmptyCredentials)
}

func TestSearchBrands_Cached(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("GET /search_brands", func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "yo", r.URL.Query().Get("search_term"))
		writeJSON(t, w, http.StatusOK, []map[string]any{{"brand_id": 3, "brand_name": "Yona Yona"}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store, err := cache.NewStore(t.TempDir(), true, time.Minute)
	require.NoError(t, err)
	c := api.NewClient(api.Options{BaseURL: srv.URL, BrandCache: store}, session.NewStaticProvider("tok"))

	for range 3 {
		brands, searchErr := c.SearchBrands(context.Background(), "yo")
		require.NoError(t, searchErr)
		assert.Equal(t, []api.Brand{{BrandID: 3, BrandName: "Yona Yona"}}, brands)
	}
	assert.Equal(t, 1, calls)

	empty, err := c.SearchBrands(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.Equal(t, 1, calls)
}

func TestUserID(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "12"}).SignedString([]byte("k"))
	require.NoError(t, err)

	c := api.NewClient(api.Options{BaseURL: "http://localhost"}, session.NewStaticProvider(token))
	id, err := c.UserID()
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	guest := api.NewClient(api.Options{BaseURL: "http://localhost"}, session.NewStaticProvider(""))
	_, err = guest.UserID()
	require.ErrorIs(t, err, api.ErrUnauthorized)
	assert.True(t, errors.Is(err, session.ErrUnauthorized))
}

func TestSortDetails(t *testing.T) {
	items := []api.PurchaseItem{
		{Name: "b", Category: "IPA", Price: 300, Count: 2},
		{Name: "a", Category: "Lager", Price: 200, Count: 6},
		{Name: "c", Category: "Ale", Price: 400, Count: 1},
	}

	byPrice := api.SortDetails(items, api.SortByPrice, "desc")
	assert.Equal(t, []int{400, 300, 200}, []int{byPrice[0].Price, byPrice[1].Price, byPrice[2].Price})
	assert.Equal(t, "b", items[0].Name, "input is not modified")

	byName := api.SortDetails(items, api.SortByName, "asc")
	assert.Equal(t, "a", byName[0].Name)

	assert.Equal(t, items, api.SortDetails(items, "bogus", "asc"))
	assert.True(t, api.IsValidDetailSortField("count"))
	assert.Equal(t, []string{"category", "count", "name", "price"}, api.DetailSortFields())
}
