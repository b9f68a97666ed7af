package announcement_test

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fpt-software/website-api/internal/announcement"
	"github.com/fpt-software/website-api/internal/model"
	"github.com/fpt-software/website-api/internal/shared/cache"
	"github.com/fpt-software/website-api/internal/shared/crud"
	sharedError "github.com/fpt-software/website-api/internal/shared/error"
	"github.com/fpt-software/website-api/internal/shared/middleware"
	"github.com/fpt-software/website-api/internal/shared/testutil"
	"github.com/fpt-software/website-api/internal/shared/upload"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52}

type testEnv struct {
	router    *gin.Engine
	db        *gorm.DB
	uploadDir string
	editor    map[string]string
	viewer    map[string]string
}

func setupTestEnvironment(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	tokens := testutil.NewTokenManager()

	uploadDir := filepath.Join(t.TempDir(), "uploads")
	storage, err := upload.NewLocalStorage(uploadDir, "/uploads/")
	require.NoError(t, err)
	uploads := upload.NewService(storage, "announcements", upload.DefaultMaxSize)

	service := announcement.NewAnnouncementService(db, uploads, cache.NewMemory(time.Minute))
	h := announcement.NewAnnouncementHandler(service)

	router := testutil.SetupTestRouter()
	group := router.Group("/api/v1/announcements")
	group.GET("", h.FindAll)
	group.GET("/filters", h.FilterOptions)
	group.GET("/:id", h.FindOne)

	guarded := group.Group("", middleware.JWT(tokens, testutil.ClaimsPrincipal), middleware.RequireRoles(model.RoleAdmin, model.RoleEditor))
	guarded.GET("/admin", h.FindAllForAdmin)
	guarded.POST("", h.Create)
	guarded.POST("/upload", h.Upload)
	guarded.PATCH("/:id", h.Update)
	guarded.DELETE("/:id", h.Remove)

	return &testEnv{
		router:    router,
		db:        db,
		uploadDir: uploadDir,
		editor:    testutil.BearerHeader(t, tokens, 2, "editor@example.com", model.RoleEditor),
		viewer:    testutil.BearerHeader(t, tokens, 3, "viewer@example.com", model.RoleViewer),
	}
}

func ptr[T any](v T) *T { return &v }

func seedPublished(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		testutil.MustCreate(t, db, &model.Announcement{
			Title:       fmt.Sprintf("Announcement %d", i),
			Content:     "Quarterly update for everyone",
			Priority:    model.PriorityMedium,
			IsPublished: true,
		})
	}
}

func (env *testEnv) localPath(fileURL string) string {
	return filepath.Join(env.uploadDir, filepath.FromSlash(strings.TrimPrefix(fileURL, "/uploads/")))
}

func TestFindAll_PaginationWindows(t *testing.T) {
	// Given: 8 published announcements
	env := setupTestEnvironment(t)
	seedPublished(t, env.db, 8)

	testCases := []struct {
		query     string
		wantLen   int
		wantPage  int
		wantLimit int
	}{
		{query: "?page=1&limit=3", wantLen: 3, wantPage: 1, wantLimit: 3},
		{query: "?page=2&limit=5", wantLen: 3, wantPage: 2, wantLimit: 5},
		{query: "", wantLen: 8, wantPage: 1, wantLimit: 10},
		{query: "?page=4&limit=3", wantLen: 0, wantPage: 4, wantLimit: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			// When
			recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
				Method: http.MethodGet, URL: "/api/v1/announcements" + tc.query,
			})

			// Then
			require.Equal(t, http.StatusOK, recorder.Code)
			var page crud.Page[announcement.AnnouncementResponse]
			testutil.ParseResponse(t, recorder, &page)
			assert.Len(t, page.Data, tc.wantLen)
			assert.Equal(t, int64(8), page.Total)
			assert.Equal(t, tc.wantPage, page.Page)
			assert.Equal(t, tc.wantLimit, page.Limit)
		})
	}
}

func TestFindAll_NewestFirst(t *testing.T) {
	env := setupTestEnvironment(t)
	seedPublished(t, env.db, 3)

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet, URL: "/api/v1/announcements",
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	var page crud.Page[announcement.AnnouncementResponse]
	testutil.ParseResponse(t, recorder, &page)
	require.Len(t, page.Data, 3)
	assert.Equal(t, "Announcement 3", page.Data[0].Title)
	assert.Equal(t, "Announcement 1", page.Data[2].Title)
}

func TestFindAll_PublicHidesDrafts(t *testing.T) {
	// Given: 2 published, 1 draft
	env := setupTestEnvironment(t)
	seedPublished(t, env.db, 2)
	testutil.MustCreate(t, env.db, &model.Announcement{Title: "Draft notice", Content: "Not ready for release", Priority: model.PriorityLow})

	// When / Then: the public list ignores a status filter
	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet, URL: "/api/v1/announcements?status=unpublished",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	var page crud.Page[announcement.AnnouncementResponse]
	testutil.ParseResponse(t, recorder, &page)
	assert.Equal(t, int64(2), page.Total)

	// When / Then: the admin list sees the draft
	recorder = testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet, URL: "/api/v1/announcements/admin?status=unpublished", Headers: env.editor,
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	testutil.ParseResponse(t, recorder, &page)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Draft notice", page.Data[0].Title)
}

func TestFindAllForAdmin_RequiresEditor(t *testing.T) {
	env := setupTestEnvironment(t)

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet, URL: "/api/v1/announcements/admin",
	})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet, URL: "/api/v1/announcements/admin", Headers: env.viewer,
	})
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestFindAllForAdmin_Filters(t *testing.T) {
	// Given
	env := setupTestEnvironment(t)
	testutil.MustCreate(t, env.db,
		&model.Announcement{Title: "Office move", Content: "We are moving to the new campus", Author: ptr("Jane Smith"), Category: ptr("Company News"), Priority: model.PriorityHigh, IsPublished: true},
		&model.Announcement{Title: "Hackathon results", Content: "Congratulations to every team", Summary: ptr("Winners inside"), Author: ptr("John Doe"), Category: ptr("Events"), Priority: model.PriorityMedium, IsPublished: true},
		&model.Announcement{Title: "Security patch", Content: "Update your laptops this week", Author: ptr("Jane Smith"), Category: ptr("IT"), Priority: model.PriorityHigh},
		&model.Announcement{Title: "Parking rules", Content: "Visitors park on level two", Priority: model.PriorityLow},
	)

	testCases := []struct {
		name      string
		query     string
		wantTotal int64
	}{
		{name: "no filters", query: "", wantTotal: 4},
		{name: "blank search", query: "?search=%20", wantTotal: 4},
		{name: "search title", query: "?search=office", wantTotal: 1},
		{name: "search content", query: "?search=LAPTOPS", wantTotal: 1},
		{name: "search summary", query: "?search=winners", wantTotal: 1},
		{name: "search author", query: "?search=jane", wantTotal: 2},
		{name: "category substring", query: "?category=news", wantTotal: 1},
		{name: "priority", query: "?priority=HIGH", wantTotal: 2},
		{name: "invalid priority ignored", query: "?priority=urgent", wantTotal: 4},
		{name: "published", query: "?status=published", wantTotal: 2},
		{name: "false", query: "?status=FALSE", wantTotal: 2},
		{name: "unknown status ignored", query: "?status=archived", wantTotal: 4},
		{name: "author", query: "?author=smith", wantTotal: 2},
		{name: "combined", query: "?author=smith&status=published&priority=high", wantTotal: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
				Method: http.MethodGet, URL: "/api/v1/announcements/admin" + tc.query, Headers: env.editor,
			})

			require.Equal(t, http.StatusOK, recorder.Code)
			var page crud.Page[announcement.AnnouncementResponse]
			testutil.ParseResponse(t, recorder, &page)
			assert.Equal(t, tc.wantTotal, page.Total)
		})
	}
}

func TestFindOne_NotFound(t *testing.T) {
	env := setupTestEnvironment(t)

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet, URL: "/api/v1/announcements/42",
	})

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	var resp sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &resp)
	assert.Equal(t, "Announcement with ID 42 not found", resp.Message)
	assert.Equal(t, "ANNOUNCEMENT-001", resp.Code)
}

func TestCreate_JSON(t *testing.T) {
	// Given
	env := setupTestEnvironment(t)

	// When
	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/announcements",
		Body: announcement.CreateAnnouncementRequest{
			Title:   "Welcome aboard",
			Content: "A warm welcome to our new colleagues",
			Tags:    []string{" people ", "news"},
		},
		Headers: env.editor,
	})

	// Then
	require.Equal(t, http.StatusCreated, recorder.Code)
	var created announcement.AnnouncementResponse
	testutil.ParseResponse(t, recorder, &created)
	assert.Equal(t, model.PriorityMedium, created.Priority)
	assert.False(t, created.IsPublished)
	assert.Nil(t, created.PublishedAt)
	assert.Equal(t, []string{"people", "news"}, created.Tags)
}

func TestCreate_Validation(t *testing.T) {
	env := setupTestEnvironment(t)

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method:  http.MethodPost,
		URL:     "/api/v1/announcements",
		Body:    map[string]any{"title": "Hi", "content": "short", "priority": "urgent", "readTime": 500},
		Headers: env.editor,
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	var resp sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &resp)
	assert.Len(t, resp.Errors, 4)
}

func TestCreate_MultipartWithImage(t *testing.T) {
	// Given
	env := setupTestEnvironment(t)

	// When
	recorder := testutil.ExecuteMultipart(t, env.router, testutil.MultipartRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/announcements",
		Fields: map[string]string{
			"title":       "New office opening",
			"content":     "Doors open on Monday morning",
			"priority":    "high",
			"isPublished": "true",
			"tags":        `["office","events"]`,
			"readTime":    "3",
		},
		File:    &testutil.MultipartFile{Field: "file", FileName: "office.png", ContentType: "image/png", Content: pngHeader},
		Headers: env.editor,
	})

	// Then
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	var created announcement.AnnouncementResponse
	testutil.ParseResponse(t, recorder, &created)
	require.NotNil(t, created.ImageURL)
	assert.True(t, strings.HasPrefix(*created.ImageURL, "/uploads/announcements/file-"))
	assert.Equal(t, []string{"office", "events"}, created.Tags)
	assert.Equal(t, 3, *created.ReadTime)
	assert.True(t, created.IsPublished)
	assert.NotNil(t, created.PublishedAt)

	stored, err := os.ReadFile(env.localPath(*created.ImageURL))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)

	// When: the announcement is removed
	recorder = testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodDelete, URL: fmt.Sprintf("/api/v1/announcements/%d", created.ID), Headers: env.editor,
	})

	// Then: its image goes with it
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	_, err = os.Stat(env.localPath(*created.ImageURL))
	assert.True(t, os.IsNotExist(err))
}

func TestCreate_RejectedFileIsConflict(t *testing.T) {
	env := setupTestEnvironment(t)

	recorder := testutil.ExecuteMultipart(t, env.router, testutil.MultipartRequest{
		Method:  http.MethodPost,
		URL:     "/api/v1/announcements",
		Fields:  map[string]string{"title": "Script drop", "content": "Please run the attached script"},
		File:    &testutil.MultipartFile{Field: "file", FileName: "run.sh", ContentType: "application/x-sh", Content: []byte("echo hi\n")},
		Headers: env.editor,
	})

	assert.Equal(t, http.StatusConflict, recorder.Code)
	var resp sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &resp)
	assert.Equal(t, "File upload failed: File type application/x-sh is not allowed", resp.Message)

	var count int64
	require.NoError(t, env.db.Model(&model.Announcement{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdate_ReplacesImage(t *testing.T) {
	// Given: an announcement with an uploaded image
	env := setupTestEnvironment(t)
	recorder := testutil.ExecuteMultipart(t, env.router, testutil.MultipartRequest{
		Method:  http.MethodPost,
		URL:     "/api/v1/announcements",
		Fields:  map[string]string{"title": "Team photo day", "content": "Bring your best smile"},
		File:    &testutil.MultipartFile{Field: "file", FileName: "first.png", ContentType: "image/png", Content: pngHeader},
		Headers: env.editor,
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	var created announcement.AnnouncementResponse
	testutil.ParseResponse(t, recorder, &created)

	// When: a new image is uploaded
	recorder = testutil.ExecuteMultipart(t, env.router, testutil.MultipartRequest{
		Method:  http.MethodPatch,
		URL:     fmt.Sprintf("/api/v1/announcements/%d", created.ID),
		Fields:  map[string]string{"summary": "Photos are in"},
		File:    &testutil.MultipartFile{Field: "file", FileName: "second.png", ContentType: "image/png", Content: pngHeader},
		Headers: env.editor,
	})

	// Then
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var updated announcement.AnnouncementResponse
	testutil.ParseResponse(t, recorder, &updated)
	require.NotNil(t, updated.ImageURL)
	assert.NotEqual(t, *created.ImageURL, *updated.ImageURL)
	assert.Equal(t, "Team photo day", updated.Title)
	assert.Equal(t, "Photos are in", *updated.Summary)

	_, err := os.Stat(env.localPath(*created.ImageURL))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(env.localPath(*updated.ImageURL))
	assert.NoError(t, err)
}

func TestUpdate_KeepsImageWithoutFile(t *testing.T) {
	env := setupTestEnvironment(t)
	testutil.MustCreate(t, env.db, &model.Announcement{
		Title: "External image", Content: "Hosted somewhere else", Priority: model.PriorityLow,
		ImageURL: ptr("https://cdn.example.com/banner.png"),
	})

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPatch, URL: "/api/v1/announcements/1",
		Body: announcement.UpdateAnnouncementRequest{Priority: ptr(model.PriorityHigh)}, Headers: env.editor,
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	var updated announcement.AnnouncementResponse
	testutil.ParseResponse(t, recorder, &updated)
	assert.Equal(t, "https://cdn.example.com/banner.png", *updated.ImageURL)
	assert.Equal(t, model.PriorityHigh, updated.Priority)
}

func TestUpdate_PublishedAtIsSetOnce(t *testing.T) {
	// Given: a draft
	env := setupTestEnvironment(t)
	testutil.MustCreate(t, env.db, &model.Announcement{Title: "Draft memo", Content: "To be published later", Priority: model.PriorityLow})

	patch := func(published bool) announcement.AnnouncementResponse {
		recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
			Method: http.MethodPatch, URL: "/api/v1/announcements/1",
			Body: announcement.UpdateAnnouncementRequest{IsPublished: &published}, Headers: env.editor,
		})
		require.Equal(t, http.StatusOK, recorder.Code)
		var resp announcement.AnnouncementResponse
		testutil.ParseResponse(t, recorder, &resp)
		return resp
	}

	// When: published
	first := patch(true)
	require.NotNil(t, first.PublishedAt)

	// When: unpublished and republished
	unpublished := patch(false)
	republished := patch(true)

	// Then: the first publish time survives
	assert.False(t, unpublished.IsPublished)
	require.NotNil(t, unpublished.PublishedAt)
	assert.True(t, first.PublishedAt.Equal(*unpublished.PublishedAt))
	require.NotNil(t, republished.PublishedAt)
	assert.True(t, first.PublishedAt.Equal(*republished.PublishedAt))
}

func TestFilterOptions_RefreshedAfterWrites(t *testing.T) {
	// Given
	env := setupTestEnvironment(t)
	testutil.MustCreate(t, env.db, &model.Announcement{Title: "Company picnic", Content: "Saturday at the lake", Category: ptr("Events"), Author: ptr("HR"), Priority: model.PriorityLow})

	get := func() announcement.FilterOptions {
		recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
			Method: http.MethodGet, URL: "/api/v1/announcements/filters",
		})
		require.Equal(t, http.StatusOK, recorder.Code)
		var options announcement.FilterOptions
		testutil.ParseResponse(t, recorder, &options)
		return options
	}

	options := get()
	assert.Equal(t, []string{"Events"}, options.Categories)
	assert.Equal(t, []string{"HR"}, options.Authors)
	assert.Equal(t, []string{"low", "medium", "high"}, options.Priorities)
	assert.Equal(t, []string{"published", "unpublished"}, options.Statuses)

	// When: a new category arrives through the API
	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost, URL: "/api/v1/announcements",
		Body: announcement.CreateAnnouncementRequest{
			Title: "Cloud migration", Content: "All services move next quarter", Category: ptr("Engineering"), Author: ptr(""),
		},
		Headers: env.editor,
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	// Then
	options = get()
	assert.Equal(t, []string{"Engineering", "Events"}, options.Categories)
	assert.Equal(t, []string{"HR"}, options.Authors)
}

func TestUpload_Standalone(t *testing.T) {
	env := setupTestEnvironment(t)

	recorder := testutil.ExecuteMultipart(t, env.router, testutil.MultipartRequest{
		Method:  http.MethodPost,
		URL:     "/api/v1/announcements/upload",
		File:    &testutil.MultipartFile{Field: "file", FileName: "notes.txt", ContentType: "text/plain", Content: []byte("meeting notes")},
		Headers: env.editor,
	})

	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	var resp announcement.UploadResponse
	testutil.ParseResponse(t, recorder, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, "File uploaded successfully", resp.Message)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "notes.txt", resp.Data.OriginalName)
	assert.Equal(t, "text/plain", resp.Data.MimeType)
	assert.Equal(t, []string{"document", "text"}, resp.Data.Tags)
	assert.FileExists(t, env.localPath(resp.Data.FileURL))
}

func TestUpload_MissingFile(t *testing.T) {
	env := setupTestEnvironment(t)

	recorder := testutil.ExecuteMultipart(t, env.router, testutil.MultipartRequest{
		Method:  http.MethodPost,
		URL:     "/api/v1/announcements/upload",
		Fields:  map[string]string{"note": "no file here"},
		Headers: env.editor,
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	var resp sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &resp)
	assert.Equal(t, "No file provided", resp.Message)
}
