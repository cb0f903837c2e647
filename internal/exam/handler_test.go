package exam

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhub/backend/internal/models"
)

func TestHandler_CreateSessionBody(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		contentLength int64
		wantStatus    int
		wantSubject   string
	}{
		{"no body", "", 0, http.StatusCreated, models.RandomSubjectLabel},
		{"empty chunked body", "", -1, http.StatusCreated, models.RandomSubjectLabel},
		{"chunked subject", `{"subject":"คณิตศาสตร์"}`, -1, http.StatusCreated, "คณิตศาสตร์"},
		{"empty object", `{}`, 2, http.StatusCreated, models.RandomSubjectLabel},
		{"malformed", `{"subject":`, -1, http.StatusBadRequest, ""},
	}

	h := NewHandler(newTestManager(&recordingHistory{}, newClock()))
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/exam/sessions", strings.NewReader(tt.body))
		req.ContentLength = tt.contentLength
		rec := httptest.NewRecorder()
		h.CreateSession(rec, req)

		require.Equal(t, tt.wantStatus, rec.Code, tt.name)
		if tt.wantStatus != http.StatusCreated {
			continue
		}
		var view models.QuizView
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&view), tt.name)
		assert.Equal(t, models.PhaseQuiz, view.Phase, tt.name)
		assert.Equal(t, tt.wantSubject, view.Subject, tt.name)
	}
}
