package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"blogsite/internal/middleware"
	"blogsite/internal/models"
	"blogsite/internal/service"
	"blogsite/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	app, db := newTestApp(t)
	author := testutil.CreateUser(t, db)
	reader := testutil.CreateUser(t, db)
	post := testutil.CreatePost(t, db, author, models.CategoryWriting)
	postPath := "/post/" + strconv.Itoa(int(post.ID))

	tests := []struct {
		name           string
		path           string
		form           url.Values
		expectedStatus int
	}{
		{
			name:           "Success",
			path:           postPath + "/comment",
			form:           url.Values{"name": {reader.Name}, "email": {reader.Email}, "message": {"Nice read"}},
			expectedStatus: http.StatusFound,
		},
		{
			name:           "Unknown commenter",
			path:           postPath + "/comment",
			form:           url.Values{"name": {"Ghost"}, "email": {"ghost@example.com"}, "message": {"Boo"}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Empty message",
			path:           postPath + "/comment",
			form:           url.Values{"email": {reader.Email}, "message": {"   "}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown post",
			path:           "/post/9999/comment",
			form:           url.Values{"email": {reader.Email}, "message": {"Hello"}},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doRequest(t, app, formRequest(http.MethodPost, tt.path, tt.form))
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus == http.StatusFound {
				assert.Equal(t, postPath, resp.Header.Get("Location"))
			}
		})
	}

	var comments []models.Comment
	require.NoError(t, db.Find(&comments).Error)
	require.Len(t, comments, 1)
	assert.False(t, comments[0].Approved)
	assert.Equal(t, reader.ID, comments[0].UserID)
}

func TestModeration(t *testing.T) {
	app, db := newTestApp(t)
	author := testutil.CreateUser(t, db)
	reader := testutil.CreateUser(t, db)
	post := testutil.CreatePost(t, db, author, models.CategoryWriting)
	comment := testutil.CreateComment(t, db, post, reader, false)

	token, err := service.NewTokenService(testSecret, nil).Issue(author.ID)
	require.NoError(t, err)

	moderate := func(action string, commentID string) *http.Response {
		req := formRequest(http.MethodPost, "/comments/"+action, url.Values{"commentId": {commentID}})
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
		resp, _ := doRequest(t, app, req)
		return resp
	}
	id := strconv.Itoa(int(comment.ID))

	resp := moderate("approve", id)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/user/comment", resp.Header.Get("Location"))

	var stored models.Comment
	require.NoError(t, db.First(&stored, comment.ID).Error)
	assert.True(t, stored.Approved)

	resp = moderate("disapprove", id)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.NoError(t, db.First(&stored, comment.ID).Error)
	assert.False(t, stored.Approved)

	resp = moderate("approve", "9999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/user/comment", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	resp, body := doRequest(t, app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, comment.Content)
}
