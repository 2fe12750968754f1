package manager_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openpilgrim/go-admin-client/api"
	"github.com/openpilgrim/go-admin-client/credentials"
	credentialsfakerepo "github.com/openpilgrim/go-admin-client/credentials/repofake"
	"github.com/openpilgrim/go-admin-client/internal/utils"
	"github.com/openpilgrim/go-admin-client/manager"
	"github.com/openpilgrim/go-admin-client/sites"
	"github.com/stretchr/testify/require"
)

type managerFixture struct {
	mux     *http.ServeMux
	service *manager.Service
}

func setupManagerFixture(t *testing.T) *managerFixture {
	t.Helper()

	f := &managerFixture{mux: http.NewServeMux()}
	server := httptest.NewServer(f.mux)
	t.Cleanup(server.Close)

	store := credentialsfakerepo.NewFakeStore()
	require.NoError(t, store.SetSession(&credentials.Session{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}))

	client, err := api.New(server.URL, store)
	require.NoError(t, err)

	service, err := manager.NewService(client)
	require.NoError(t, err)
	f.service = service

	return f
}

const managerSiteJSON = `{
	"id":"s1","code":"LVG","name":"La Vang","description":null,"history":null,
	"address":"Hai Phu","province":"Quang Tri","district":"Hai Lang",
	"latitude":"16.5473","longitude":"107.2279","region":"central","type":"basilica",
	"patron_saint":"Our Lady of La Vang","cover_image":null,
	"is_active":true,
	"created_by":{"id":"m1","full_name":"The Manager","email":"manager@example.com"},
	"created_at":"2025-01-01T00:00:00Z","updated_at":"2025-01-01T00:00:00Z"
}`

func TestMySite(t *testing.T) {
	f := setupManagerFixture(t)

	f.mux.HandleFunc("/api/manager/sites", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		fmt.Fprintf(w, `{"success":true,"message":"ok","data":%s}`, managerSiteJSON)
	})

	site, err := f.service.MySite(context.Background())
	require.NoError(t, err)
	require.Equal(t, "La Vang", site.Name)
	require.Equal(t, sites.RegionCentral, site.Region)
	require.NotNil(t, site.CreatedBy)
	require.Equal(t, "manager@example.com", site.CreatedBy.Email)
}

func TestCreateSiteMultipart(t *testing.T) {
	f := setupManagerFixture(t)

	cover := []byte{0x89, 0x50, 0x4E, 0x47, 0x01}
	f.mux.HandleFunc("/api/manager/sites", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		require.Equal(t, "La Vang", r.FormValue("name"))
		require.Equal(t, "Hai Phu", r.FormValue("address"))
		require.Equal(t, "Quang Tri", r.FormValue("province"))
		require.Equal(t, "16.5473", r.FormValue("latitude"))
		require.Equal(t, "107.2279", r.FormValue("longitude"))
		require.Equal(t, "central", r.FormValue("region"))
		require.Equal(t, "basilica", r.FormValue("type"))
		require.JSONEq(t, `{"monday":{"open":"08:00","close":"17:00"}}`, r.FormValue("opening_hours"))
		require.JSONEq(t, `{"phone":"0233873210"}`, r.FormValue("contact_info"))

		file, header, err := r.FormFile("cover_image")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		require.Equal(t, "cover.png", header.Filename)

		fmt.Fprintf(w, `{"success":true,"message":"ok","data":%s}`, managerSiteJSON)
	})

	site, err := f.service.CreateSite(context.Background(), manager.CreateSiteParams{
		Name:      "La Vang",
		Address:   "Hai Phu",
		Province:  "Quang Tri",
		Latitude:  16.5473,
		Longitude: 107.2279,
		Region:    sites.RegionCentral,
		Type:      sites.TypeBasilica,
		OpeningHours: map[string]sites.OpeningHours{
			"monday": {Open: "08:00", Close: "17:00"},
		},
		ContactInfo:    &sites.ContactInfo{Phone: "0233873210"},
		CoverImage:     cover,
		CoverImageName: "cover.png",
	})
	require.NoError(t, err)
	require.Equal(t, "s1", site.ID)
}

func TestCreateSiteValidatesRequiredFields(t *testing.T) {
	f := setupManagerFixture(t)

	_, err := f.service.CreateSite(context.Background(), manager.CreateSiteParams{Name: "La Vang"})
	require.Error(t, err)
}

func TestUpdateSiteSendsOnlySetFields(t *testing.T) {
	f := setupManagerFixture(t)

	f.mux.HandleFunc("/api/manager/sites", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		require.Equal(t, "Renamed Basilica", r.FormValue("name"))
		require.Empty(t, r.MultipartForm.Value["address"], "unset fields must be omitted")
		require.Empty(t, r.MultipartForm.File["cover_image"])

		fmt.Fprintf(w, `{"success":true,"message":"ok","data":%s}`, managerSiteJSON)
	})

	_, err := f.service.UpdateSite(context.Background(), manager.UpdateSiteParams{
		Name: utils.Ptr("Renamed Basilica"),
	})
	require.NoError(t, err)
}

func TestLocalGuidesUsesDataField(t *testing.T) {
	f := setupManagerFixture(t)

	f.mux.HandleFunc("/api/manager/local-guides", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "active", r.URL.Query().Get("status"))
		fmt.Fprint(w, `{"success":true,"message":"ok","data":{"data":[{"id":"g1","full_name":"A Guide","email":"guide@example.com","phone":null,"avatar_url":null,"status":"active","joined_at":"2025-02-10T07:00:00Z"}],"pagination":{"page":1,"limit":20,"totalItems":1,"totalPages":1}}}`)
	})

	list, err := f.service.LocalGuides(context.Background(), manager.LocalGuideListParams{
		Status: manager.GuideActive,
	})
	require.NoError(t, err)
	require.Len(t, list.Guides, 1)
	require.Equal(t, "A Guide", list.Guides[0].FullName)
	require.Equal(t, 1, list.Pagination.Total)
}

func TestUpdateLocalGuideStatus(t *testing.T) {
	f := setupManagerFixture(t)

	f.mux.HandleFunc("/api/manager/local-guides/g1/status", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "inactive", body["status"])
		fmt.Fprint(w, `{"success":true,"message":"ok","data":{"id":"g1","full_name":"A Guide","email":"guide@example.com","phone":null,"avatar_url":null,"status":"inactive","joined_at":"2025-02-10T07:00:00Z"}}`)
	})

	guide, err := f.service.UpdateLocalGuideStatus(context.Background(), "g1", manager.GuideInactive)
	require.NoError(t, err)
	require.Equal(t, manager.GuideInactive, guide.Status)
}

func TestShiftSubmissionsListAndDetail(t *testing.T) {
	f := setupManagerFixture(t)

	shiftJSON := `{"id":"sh1","guide":{"id":"g1","full_name":"A Guide","email":"guide@example.com"},"date":"2025-03-15","start_time":"08:00","end_time":"12:00","notes":"morning tour","status":"pending","note":null,"created_at":"2025-03-10T06:00:00Z","reviewed_at":null}`

	f.mux.HandleFunc("/api/manager/local-guides/shift-submissions", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "pending", r.URL.Query().Get("status"))
		require.Equal(t, "2025-03-15", r.URL.Query().Get("date"))
		fmt.Fprintf(w, `{"success":true,"message":"ok","data":{"data":[%s],"pagination":{"page":1,"limit":20,"total":1,"totalPages":1}}}`, shiftJSON)
	})
	f.mux.HandleFunc("/api/manager/local-guides/shift-submissions/sh1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"success":true,"message":"ok","data":%s}`, shiftJSON)
	})

	list, err := f.service.ShiftSubmissions(context.Background(), manager.ShiftListParams{
		Status: manager.ShiftPending,
		Date:   "2025-03-15",
	})
	require.NoError(t, err)
	require.Len(t, list.Submissions, 1)
	require.Equal(t, "sh1", list.Submissions[0].ID)

	sub, err := f.service.ShiftSubmission(context.Background(), "sh1")
	require.NoError(t, err)
	require.Equal(t, "08:00", sub.StartTime)
	require.Equal(t, manager.ShiftPending, sub.Status)
}

func TestUpdateShiftSubmissionStatus(t *testing.T) {
	f := setupManagerFixture(t)

	f.mux.HandleFunc("/api/manager/local-guides/shift-submissions/sh1/status", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "approved", body["status"])
		_, hasNote := body["note"]
		require.False(t, hasNote, "empty note must be omitted")
		fmt.Fprint(w, `{"success":true,"message":"ok","data":{"id":"sh1","guide":{"id":"g1","full_name":"A Guide","email":"guide@example.com"},"date":"2025-03-15","start_time":"08:00","end_time":"12:00","notes":null,"status":"approved","note":null,"created_at":"2025-03-10T06:00:00Z","reviewed_at":"2025-03-11T06:00:00Z"}}`)
	})

	sub, err := f.service.UpdateShiftSubmissionStatus(context.Background(), "sh1", manager.ShiftApproved, "")
	require.NoError(t, err)
	require.Equal(t, manager.ShiftApproved, sub.Status)
	require.NotNil(t, sub.ReviewedAt)
}
