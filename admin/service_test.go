package admin_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openpilgrim/go-admin-client/admin"
	"github.com/openpilgrim/go-admin-client/api"
	"github.com/openpilgrim/go-admin-client/credentials"
	credentialsfakerepo "github.com/openpilgrim/go-admin-client/credentials/repofake"
	"github.com/openpilgrim/go-admin-client/internal/utils"
	"github.com/openpilgrim/go-admin-client/users"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	mux     *http.ServeMux
	service *admin.Service
}

func setupAdminFixture(t *testing.T) *adminFixture {
	t.Helper()

	f := &adminFixture{mux: http.NewServeMux()}
	server := httptest.NewServer(f.mux)
	t.Cleanup(server.Close)

	store := credentialsfakerepo.NewFakeStore()
	require.NoError(t, store.SetSession(&credentials.Session{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}))

	client, err := api.New(server.URL, store)
	require.NoError(t, err)

	service, err := admin.NewService(client)
	require.NoError(t, err)
	f.service = service

	return f
}

const adminUserJSON = `{
	"id":"u1","email":"pilgrim@example.com","full_name":"A Pilgrim",
	"phone":"0901234567","date_of_birth":"1990-04-01","role":"pilgrim",
	"status":"active","site_id":null,"verified_at":null,
	"created_at":"2025-02-01T08:30:00Z","updated_at":"2025-02-01T08:30:00Z",
	"avatar_url":null,"language":"vi"
}`

func TestUsersListAndFilters(t *testing.T) {
	f := setupAdminFixture(t)

	f.mux.HandleFunc("/api/admin/users", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "2", q.Get("page"))
		require.Equal(t, "10", q.Get("limit"))
		require.Equal(t, "pilgrim", q.Get("role"))
		require.Equal(t, "active", q.Get("status"))
		require.Equal(t, "nguyen", q.Get("search"))
		fmt.Fprintf(w, `{"success":true,"message":"ok","data":{"users":[%s],"pagination":{"page":2,"limit":10,"total":31,"totalPages":4}}}`, adminUserJSON)
	})

	list, err := f.service.Users(context.Background(), admin.UserListParams{
		Page:   2,
		Limit:  10,
		Role:   users.RolePilgrim,
		Status: users.StatusActive,
		Search: "nguyen",
	})
	require.NoError(t, err)
	require.Len(t, list.Users, 1)
	require.Equal(t, "pilgrim@example.com", list.Users[0].Email)
	require.Equal(t, users.RolePilgrim, list.Users[0].Role)
	require.Equal(t, api.Pagination{Page: 2, Limit: 10, Total: 31, TotalPages: 4}, list.Pagination)
}

func TestUsersZeroParamsSendNoQuery(t *testing.T) {
	f := setupAdminFixture(t)

	f.mux.HandleFunc("/api/admin/users", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "", r.URL.RawQuery)
		fmt.Fprint(w, `{"success":true,"message":"ok","data":{"users":[],"pagination":{"page":1,"limit":20,"total":0,"totalPages":0}}}`)
	})

	list, err := f.service.Users(context.Background(), admin.UserListParams{})
	require.NoError(t, err)
	require.Empty(t, list.Users)
}

func TestUpdateUser(t *testing.T) {
	f := setupAdminFixture(t)

	f.mux.HandleFunc("/api/admin/users/u1", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Renamed", body["full_name"])
		_, hasPhone := body["phone"]
		require.False(t, hasPhone, "unset fields must be omitted")
		fmt.Fprintf(w, `{"success":true,"message":"ok","data":%s}`, adminUserJSON)
	})

	user, err := f.service.UpdateUser(context.Background(), "u1", admin.UpdateUserParams{
		FullName: utils.Ptr("Renamed"),
	})
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
}

func TestUpdateUserStatus(t *testing.T) {
	f := setupAdminFixture(t)

	f.mux.HandleFunc("/api/admin/users/u1/status", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "banned", body["status"])
		fmt.Fprintf(w, `{"success":true,"message":"ok","data":%s}`, adminUserJSON)
	})

	_, err := f.service.UpdateUserStatus(context.Background(), "u1", users.StatusBanned)
	require.NoError(t, err)
}

func TestSitesListUsesSitesField(t *testing.T) {
	f := setupAdminFixture(t)

	f.mux.HandleFunc("/api/admin/sites", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "true", r.URL.Query().Get("is_active"))
		fmt.Fprint(w, `{"success":true,"message":"ok","data":{"sites":[{"id":"s1","code":"LVG","name":"La Vang","address":"Hai Phu","province":"Quang Tri","latitude":"16.5","longitude":"107.2","region":"central","type":"basilica","is_active":true,"created_at":"2025-01-01T00:00:00Z","updated_at":"2025-01-01T00:00:00Z"}],"pagination":{"page":1,"limit":20,"total":1,"totalPages":1}}}`)
	})

	list, err := f.service.Sites(context.Background(), admin.SiteListParams{IsActive: utils.Ptr(true)})
	require.NoError(t, err)
	require.Len(t, list.Sites, 1)
	require.Equal(t, "La Vang", list.Sites[0].Name)
	require.Equal(t, 1, list.Pagination.Total)
}

func TestVerificationRequestsNormalizeTotalItems(t *testing.T) {
	f := setupAdminFixture(t)

	f.mux.HandleFunc("/api/admin/verification-requests", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "pending", r.URL.Query().Get("status"))
		fmt.Fprint(w, `{"success":true,"message":"ok","data":{"requests":[{"id":"v1","user":{"id":"u1","full_name":"A Pilgrim","email":"pilgrim@example.com"},"site_id":"s1","site_name":"La Vang","status":"pending","note":null,"created_at":"2025-03-01T09:00:00Z","reviewed_at":null}],"pagination":{"page":1,"limit":20,"totalItems":1,"totalPages":1}}}`)
	})

	list, err := f.service.VerificationRequests(context.Background(), admin.VerificationListParams{
		Status: admin.VerificationPending,
	})
	require.NoError(t, err)
	require.Len(t, list.Requests, 1)
	require.Equal(t, admin.VerificationPending, list.Requests[0].Status)
	// totalItems on the wire, Total in the normalized shape.
	require.Equal(t, 1, list.Pagination.Total)
}

func TestUpdateVerificationStatus(t *testing.T) {
	f := setupAdminFixture(t)

	f.mux.HandleFunc("/api/admin/verification-requests/v1/status", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "rejected", body["status"])
		require.Equal(t, "blurry photo", body["note"])
		fmt.Fprint(w, `{"success":true,"message":"ok","data":{"id":"v1","user":{"id":"u1","full_name":"A Pilgrim","email":"pilgrim@example.com"},"site_id":"s1","site_name":"La Vang","status":"rejected","note":"blurry photo","created_at":"2025-03-01T09:00:00Z","reviewed_at":"2025-03-02T10:00:00Z"}}`)
	})

	req, err := f.service.UpdateVerificationStatus(context.Background(), "v1", admin.VerificationRejected, "blurry photo")
	require.NoError(t, err)
	require.Equal(t, admin.VerificationRejected, req.Status)
	require.NotNil(t, req.ReviewedAt)
}
