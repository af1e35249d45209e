package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/AnshRaj112/captionly-backend/internal/logging"
	"github.com/AnshRaj112/captionly-backend/internal/models"
	"github.com/AnshRaj112/captionly-backend/internal/services"
	"github.com/AnshRaj112/captionly-backend/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSMS struct {
	mu   sync.Mutex
	to   []string
	body []string
	err  error
}

func (s *recordingSMS) Send(_ context.Context, to, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.to = append(s.to, to)
	s.body = append(s.body, body)
	return nil
}

func (s *recordingSMS) lastCode(t *testing.T) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.body)
	body := s.body[len(s.body)-1]
	return strings.TrimPrefix(body, "Your access code is: ")
}

type stubLLM struct {
	reply  string
	err    error
	prompt string
}

func (l *stubLLM) Generate(_ context.Context, prompt string) (string, error) {
	l.prompt = prompt
	return l.reply, l.err
}

type testServer struct {
	router   chi.Router
	sms      *recordingSMS
	llm      *stubLLM
	accounts *store.MemoryAccountStore
	contents *store.MemoryContentStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		sms:      &recordingSMS{},
		llm:      &stubLLM{},
		accounts: store.NewMemoryAccountStore(),
		contents: store.NewMemoryContentStore(),
	}
	h := New(
		services.NewAccessCodeService(ts.accounts, ts.sms, "+1"),
		services.NewContentGenerator(ts.llm),
		services.NewContentService(ts.contents),
		logging.Nop(),
		DefaultTimeouts(),
	)

	r := chi.NewRouter()
	r.Post("/createNewAccessCode", h.CreateNewAccessCode)
	r.Post("/validateAccessCode", h.ValidateAccessCode)
	r.Post("/generatePostCaptions", h.GeneratePostCaptions)
	r.Post("/getPostIdeas", h.GetPostIdeas)
	r.Post("/createCaptionsFromIdeas", h.CreateCaptionsFromIdeas)
	r.Post("/saveGeneratedContent", h.SaveGeneratedContent)
	r.Get("/getUserGeneratedContents", h.GetUserGeneratedContents)
	r.Post("/unsaveContent", h.UnsaveContent)
	ts.router = r
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = []string{v}
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestCreateNewAccessCode_SendsSMS(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/createNewAccessCode", CreateAccessCodeRequest{PhoneNumber: "5551234"}, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[SuccessResponse](t, rec).Success)
	assert.Equal(t, []string{"+15551234"}, ts.sms.to)

	code := ts.sms.lastCode(t)
	assert.Len(t, code, 6)

	acc, err := ts.accounts.GetAccount(context.Background(), "5551234")
	require.NoError(t, err)
	assert.Equal(t, code, acc.AccessCode)
}

func TestCreateNewAccessCode_SMSFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.sms.err = errors.New("twilio: unreachable")

	rec := ts.do(t, http.MethodPost, "/createNewAccessCode", CreateAccessCodeRequest{PhoneNumber: "5551234"}, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "twilio: unreachable", decode[ErrorResponse](t, rec).Error)
}

func TestCreateNewAccessCode_BadInput(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/createNewAccessCode", "{not json", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/createNewAccessCode", CreateAccessCodeRequest{}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ts.sms.to)
}

func TestValidateAccessCode_Flow(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/createNewAccessCode", CreateAccessCodeRequest{PhoneNumber: "5551234"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	code := ts.sms.lastCode(t)

	t.Run("wrong code", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/validateAccessCode",
			ValidateAccessCodeRequest{PhoneNumber: "5551234", AccessCode: "000000"}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid access code", decode[MessageResponse](t, rec).Message)
	})

	t.Run("correct code", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/validateAccessCode",
			ValidateAccessCodeRequest{PhoneNumber: "5551234", AccessCode: code}, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decode[SuccessResponse](t, rec).Success)
	})

	t.Run("code already used", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/validateAccessCode",
			ValidateAccessCodeRequest{PhoneNumber: "5551234", AccessCode: code}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid access code", decode[MessageResponse](t, rec).Message)
	})
}

func TestValidateAccessCode_UnknownPhoneNumber(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/validateAccessCode",
		ValidateAccessCodeRequest{PhoneNumber: "5559999", AccessCode: "123456"}, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Phone number not correct", decode[MessageResponse](t, rec).Message)
}

func TestGeneratePostCaptions(t *testing.T) {
	ts := newTestServer(t)
	ts.llm.reply = `{"data": ["a", "b", "c", "d", "e"]}`

	rec := ts.do(t, http.MethodPost, "/generatePostCaptions",
		GeneratePostCaptionsRequest{SocialNetwork: "Instagram", Subject: "coffee", Tone: "funny"}, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, decode[GeneratedResponse](t, rec).Data)
	assert.Contains(t, ts.llm.prompt, "Instagram")
	assert.Contains(t, ts.llm.prompt, "coffee")
	assert.Contains(t, ts.llm.prompt, "funny")
}

func TestGetPostIdeas_ReturnsTen(t *testing.T) {
	ts := newTestServer(t)
	ts.llm.reply = "```json\n{\"data\": [\"1\",\"2\",\"3\",\"4\",\"5\",\"6\",\"7\",\"8\",\"9\",\"10\",\"11\"]}\n```"

	rec := ts.do(t, http.MethodPost, "/getPostIdeas", GetPostIdeasRequest{Topic: "travel"}, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[GeneratedResponse](t, rec).Data, 10)
}

func TestCreateCaptionsFromIdeas_MalformedOutput(t *testing.T) {
	ts := newTestServer(t)
	ts.llm.reply = "Sure! Here are some captions."

	rec := ts.do(t, http.MethodPost, "/createCaptionsFromIdeas", CreateCaptionsFromIdeasRequest{Idea: "sunset"}, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, decode[ErrorResponse](t, rec).Error)
}

func TestGenerate_CollaboratorError(t *testing.T) {
	ts := newTestServer(t)
	ts.llm.err = errors.New("quota exceeded")

	rec := ts.do(t, http.MethodPost, "/getPostIdeas", GetPostIdeasRequest{Topic: "travel"}, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "quota exceeded", decode[ErrorResponse](t, rec).Error)
}

func TestSavedContent_Lifecycle(t *testing.T) {
	ts := newTestServer(t)
	header := map[string]string{PhoneNumberHeader: "5551234"}

	rec := ts.do(t, http.MethodPost, "/saveGeneratedContent",
		SaveGeneratedContentRequest{Topic: "coffee", Data: []string{"x", "y"}}, header)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[SuccessResponse](t, rec).Success)

	rec = ts.do(t, http.MethodGet, "/getUserGeneratedContents?phone_number=5551234", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]models.GeneratedContent](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "coffee", list[0].Topic)
	assert.Equal(t, []string{"x", "y"}, list[0].Data)
	assert.Equal(t, "5551234", list[0].PhoneNumber)
	require.NotEmpty(t, list[0].ID)

	rec = ts.do(t, http.MethodPost, "/unsaveContent", UnsaveContentRequest{CaptionID: list[0].ID}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/getUserGeneratedContents?phone_number=5551234", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetUserGeneratedContents_OtherUserIsEmpty(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodPost, "/saveGeneratedContent",
		SaveGeneratedContentRequest{Topic: "coffee", Data: []string{"x"}},
		map[string]string{PhoneNumberHeader: "5551234"})

	rec := ts.do(t, http.MethodGet, "/getUserGeneratedContents?phone_number=5550000", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestSaveGeneratedContent_MissingHeader(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/saveGeneratedContent",
		SaveGeneratedContentRequest{Topic: "coffee", Data: []string{"x"}}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnsaveContent_UnknownIDSucceeds(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/unsaveContent", UnsaveContentRequest{CaptionID: "does-not-exist"}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnsaveContent_MissingID(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/unsaveContent", `{}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
