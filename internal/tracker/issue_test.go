package tracker

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jmcampanini/you-cli/internal/apierr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullIssueJSON = `{
  "self": "https://st-api.yandex-team.ru/v3/issues/TEST-1",
  "id": "593cd211ef7e8a332414f2a7",
  "key": "TEST-1",
  "version": 7,
  "lastCommentUpdatedAt": "2017-07-18T13:33:44.291+0000",
  "summary": "Fix login redirect",
  "parent": {"self": "https://st-api.yandex-team.ru/v3/issues/TEST-0", "id": "1", "key": "TEST-0", "display": "Epic"},
  "aliases": ["LOGIN-1"],
  "updatedBy": {"self": "u", "id": "9876543", "display": "Ivan Ivanov", "passportUid": 1234567890, "cloudUid": "ajeppa7dgp53u8v1ap1c"},
  "description": "Redirect loops after SSO.",
  "sprint": [{"self": "s", "id": "3", "display": "Sprint 12"}],
  "type": {"self": "t", "id": "2", "key": "task", "display": "Task"},
  "priority": {"self": "p", "id": "2", "key": "normal", "display": "Normal"},
  "createdAt": "2017-06-11T05:16:01.339+0000",
  "followers": [{"self": "f", "id": "1", "display": "Anna"}],
  "createdBy": {"self": "c", "id": "1", "display": "Anna"},
  "votes": 3,
  "assignee": {"self": "a", "id": "2", "display": "Jim"},
  "project": {"primary": {"self": "pr", "id": "5", "display": "Auth"}, "secondary": [{"self": "pr2", "id": "6", "display": "SSO"}]},
  "queue": {"self": "q", "id": "1", "key": "TEST", "display": "Test queue"},
  "updatedAt": "2017-07-18T13:33:44.291+0000",
  "status": {"self": "st", "id": "1", "key": "open", "display": "Open"},
  "previousStatus": {"self": "st", "id": "2", "key": "inProgress", "display": "In progress"},
  "favorite": true,
  "tags": ["auth", "sso"],
  "unknownField": {"ignored": true}
}`

func TestIssue_DecodeFull(t *testing.T) {
	var issue Issue
	require.NoError(t, json.Unmarshal([]byte(fullIssueJSON), &issue))

	version := 7
	want := Issue{
		Self:                 "https://st-api.yandex-team.ru/v3/issues/TEST-1",
		ID:                   "593cd211ef7e8a332414f2a7",
		Key:                  "TEST-1",
		Version:              &version,
		LastCommentUpdatedAt: "2017-07-18T13:33:44.291+0000",
		Summary:              "Fix login redirect",
		Parent:               &Ref{Self: "https://st-api.yandex-team.ru/v3/issues/TEST-0", ID: "1", Key: "TEST-0", Display: "Epic"},
		Aliases:              []string{"LOGIN-1"},
		UpdatedBy:            &User{Self: "u", ID: "9876543", Display: "Ivan Ivanov", PassportUID: 1234567890, CloudUID: "ajeppa7dgp53u8v1ap1c"},
		Description:          "Redirect loops after SSO.",
		Sprint:               []Ref{{Self: "s", ID: "3", Display: "Sprint 12"}},
		Type:                 &Ref{Self: "t", ID: "2", Key: "task", Display: "Task"},
		Priority:             &Ref{Self: "p", ID: "2", Key: "normal", Display: "Normal"},
		CreatedAt:            "2017-06-11T05:16:01.339+0000",
		Followers:            []User{{Self: "f", ID: "1", Display: "Anna"}},
		CreatedBy:            &User{Self: "c", ID: "1", Display: "Anna"},
		Votes:                3,
		Assignee:             &User{Self: "a", ID: "2", Display: "Jim"},
		Project: &Project{
			Primary:   &Ref{Self: "pr", ID: "5", Display: "Auth"},
			Secondary: []Ref{{Self: "pr2", ID: "6", Display: "SSO"}},
		},
		Queue:          &Ref{Self: "q", ID: "1", Key: "TEST", Display: "Test queue"},
		UpdatedAt:      "2017-07-18T13:33:44.291+0000",
		Status:         &Ref{Self: "st", ID: "1", Key: "open", Display: "Open"},
		PreviousStatus: &Ref{Self: "st", ID: "2", Key: "inProgress", Display: "In progress"},
		Favorite:       true,
		Tags:           []string{"auth", "sso"},
	}

	if diff := cmp.Diff(want, issue); diff != "" {
		t.Errorf("decoded issue mismatch (-want +got):\n%s", diff)
	}
}

func TestIssue_DecodeMinimal(t *testing.T) {
	var issue Issue
	require.NoError(t, json.Unmarshal([]byte(`{"key":"TEST-1","summary":"Minimal task"}`), &issue))

	assert.Equal(t, "TEST-1", issue.Key)
	assert.Equal(t, "Minimal task", issue.Summary)
	assert.Equal(t, 0, issue.Votes)
	assert.False(t, issue.Favorite)
	assert.Empty(t, issue.Tags)
	assert.Nil(t, issue.Status)
	assert.Nil(t, issue.Assignee)
	assert.Equal(t, "", issue.StatusDisplay())
}

func TestIssue_UpdatedTime(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		want   time.Time
		wantOK bool
	}{
		{"tracker format", "2017-07-18T13:33:44.291+0000", time.Date(2017, 7, 18, 13, 33, 44, 291000000, time.UTC), true},
		{"rfc3339", "2024-01-02T03:04:05Z", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "yesterday", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Issue{UpdatedAt: tt.value}.UpdatedTime()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseExpandField(t *testing.T) {
	for _, in := range []string{"transitions", "Attachments", " comments "} {
		_, err := ParseExpandField(in)
		assert.NoError(t, err, in)
	}

	_, err := ParseExpandField("links")
	assert.EqualError(t, err, `unknown expand field "links" (want attachments, comments or transitions)`)
}

func TestGetIssue(t *testing.T) {
	tests := []struct {
		name      string
		params    *GetIssueParams
		wantQuery string
	}{
		{
			name:      "no params",
			params:    nil,
			wantQuery: "",
		},
		{
			name:      "empty expand",
			params:    &GetIssueParams{},
			wantQuery: "",
		},
		{
			name:      "expand joined with commas",
			params:    &GetIssueParams{Expand: []ExpandField{ExpandTransitions, ExpandComments}},
			wantQuery: "transitions,comments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotExpand string
			mux := http.NewServeMux()
			mux.HandleFunc("GET /v3/issues/TEST-1", func(w http.ResponseWriter, r *http.Request) {
				gotExpand = r.URL.Query().Get("expand")
				_, _ = io.WriteString(w, `{"key":"TEST-1","summary":"Minimal task"}`)
			})
			client := newTestClient(t, mux)

			issue, err := client.GetIssue(context.Background(), "TEST-1", tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, gotExpand)

			assert.Equal(t, "TEST-1", issue.Key)
			assert.Equal(t, 0, issue.Votes)
			assert.False(t, issue.Favorite)
			assert.Empty(t, issue.Tags)
			assert.Nil(t, issue.Status)
		})
	}
}

func TestGetIssue_EmptyID(t *testing.T) {
	client, err := New(DefaultConfig("t"))
	require.NoError(t, err)

	_, err = client.GetIssue(context.Background(), " ", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apierr.ErrInvalidRequest)
}

func TestGetIssue_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v3/issues/NOPE-1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"errorMessages":["Issue does not exist."],"statusCode":404}`)
	})
	client := newTestClient(t, mux)

	issue, err := client.GetIssue(context.Background(), "NOPE-1", nil)
	assert.Nil(t, issue)
	require.Error(t, err)
	assert.ErrorIs(t, err, apierr.ErrNotFound)
	assert.Contains(t, err.Error(), "Issue does not exist.")
}

func TestGetIssue_WrongShape(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v3/issues/TEST-1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"key": 42}`)
	})
	client := newTestClient(t, mux)

	_, err := client.GetIssue(context.Background(), "TEST-1", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apierr.ErrDecode)
}
