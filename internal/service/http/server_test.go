package http_test

import (
	"bytes"
	"encoding/base64"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"github.com/reusedev/vector-hub/config"
	"github.com/reusedev/vector-hub/internal/modules/session"
	service "github.com/reusedev/vector-hub/internal/service/http"
)

func setup(t *testing.T, upstreamURL string, gate *session.Gate) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	orig := config.GConfig
	t.Cleanup(func() { config.GConfig = orig })
	config.GConfig = &config.Config{
		Vectorizer: config.Vectorizer{
			APIId:     "test-id",
			APISecret: "test-secret",
			BaseURL:   upstreamURL,
		},
		Auth: config.Auth{SessionExpire: "1h"},
	}
	if gate == nil {
		gate = session.NewGate("", "", time.Hour)
	}
	e := gin.New()
	service.InitRouter(e, gate)
	return e
}

func vectorizeForm(t *testing.T, fileName string, fileBytes []byte, imageURL, mode, format string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if fileBytes != nil {
		part, err := writer.CreateFormFile("image", fileName)
		require.NoError(t, err)
		_, err = part.Write(fileBytes)
		require.NoError(t, err)
	}
	if imageURL != "" {
		require.NoError(t, writer.WriteField("image.url", imageURL))
	}
	if mode != "" {
		require.NoError(t, writer.WriteField("mode", mode))
	}
	if format != "" {
		require.NoError(t, writer.WriteField("output.file_format", format))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestVectorize_SVGPassthrough(t *testing.T) {
	var gotAuth, gotMode, gotFormat, gotFileName string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotMode = r.FormValue("mode")
		gotFormat = r.FormValue("output.file_format")
		if fhs := r.MultipartForm.File["image"]; len(fhs) == 1 {
			gotFileName = fhs[0].Filename
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("X-Credits-Charged", "0")
		w.Header().Set("X-Credits-Calculated", "0.15")
		_, _ = w.Write([]byte("<svg>...</svg>"))
	}))
	defer upstream.Close()

	e := setup(t, upstream.URL, nil)
	body, contentType := vectorizeForm(t, "cat.png", []byte("png-bytes"), "", "test", "svg")
	req := httptest.NewRequest(http.MethodPost, "/api/vectorize", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("test-id:test-secret")), gotAuth)
	require.Equal(t, "test", gotMode)
	require.Equal(t, "svg", gotFormat)
	require.Equal(t, "cat.png", gotFileName)

	var result struct {
		Content           string  `json:"content"`
		ContentType       string  `json:"contentType"`
		IsBase64          bool    `json:"isBase64"`
		CreditsCharged    float64 `json:"creditsCharged"`
		CreditsCalculated float64 `json:"creditsCalculated"`
	}
	require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), &result))
	require.Equal(t, "<svg>...</svg>", result.Content)
	require.Equal(t, "image/svg+xml", result.ContentType)
	require.False(t, result.IsBase64)
	require.Equal(t, 0.0, result.CreditsCharged)
	require.Equal(t, 0.15, result.CreditsCalculated)
}

func TestVectorize_BinaryBase64(t *testing.T) {
	pdfBytes := []byte{0x25, 0x50, 0x44, 0x46, 0x2d, 0x00, 0xff}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("X-Credits-Charged", "1.0")
		w.Header().Set("X-Credits-Calculated", "1.0")
		_, _ = w.Write(pdfBytes)
	}))
	defer upstream.Close()

	e := setup(t, upstream.URL, nil)
	body, contentType := vectorizeForm(t, "cat.png", []byte("png-bytes"), "", "test", "pdf")
	req := httptest.NewRequest(http.MethodPost, "/api/vectorize", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var result struct {
		Content  string `json:"content"`
		IsBase64 bool   `json:"isBase64"`
	}
	require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), &result))
	require.True(t, result.IsBase64)
	decoded, err := base64.StdEncoding.DecodeString(result.Content)
	require.NoError(t, err)
	require.Equal(t, pdfBytes, decoded)
}

func TestVectorize_URLField(t *testing.T) {
	var gotURL string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotURL = r.FormValue("image.url")
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write([]byte("<svg/>"))
	}))
	defer upstream.Close()

	e := setup(t, upstream.URL, nil)
	body, contentType := vectorizeForm(t, "", nil, "https://example.com/logo.png", "preview", "svg")
	req := httptest.NewRequest(http.MethodPost, "/api/vectorize", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "https://example.com/logo.png", gotURL)
}

func TestVectorize_UpstreamErrorPassthrough(t *testing.T) {
	errBody := `{"error":{"message":"Insufficient credits"}}`
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(errBody))
	}))
	defer upstream.Close()

	e := setup(t, upstream.URL, nil)
	body, contentType := vectorizeForm(t, "cat.png", []byte("png-bytes"), "", "production", "svg")
	req := httptest.NewRequest(http.MethodPost, "/api/vectorize", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	require.Equal(t, http.StatusPaymentRequired, w.Code)
	require.JSONEq(t, errBody, w.Body.String())
}

func TestVectorize_ValidationBeforeUpstream(t *testing.T) {
	upstreamCalls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls++
	}))
	defer upstream.Close()

	e := setup(t, upstream.URL, nil)

	t.Run("neither image nor url", func(t *testing.T) {
		body, contentType := vectorizeForm(t, "", nil, "", "test", "svg")
		req := httptest.NewRequest(http.MethodPost, "/api/vectorize", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("both image and url", func(t *testing.T) {
		body, contentType := vectorizeForm(t, "cat.png", []byte("x"), "https://example.com/a.png", "test", "svg")
		req := httptest.NewRequest(http.MethodPost, "/api/vectorize", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad mode", func(t *testing.T) {
		body, contentType := vectorizeForm(t, "cat.png", []byte("x"), "", "fast", "svg")
		req := httptest.NewRequest(http.MethodPost, "/api/vectorize", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	require.Equal(t, 0, upstreamCalls)
}

func TestVectorize_CredentialsMissing(t *testing.T) {
	e := setup(t, "http://127.0.0.1:0", nil)
	config.GConfig.APISecret = ""

	body, contentType := vectorizeForm(t, "cat.png", []byte("x"), "", "test", "svg")
	req := httptest.NewRequest(http.MethodPost, "/api/vectorize", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAccount_Passthrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotEmpty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"subscriptionPlan":"starter","subscriptionState":"active","credits":42.5}`))
	}))
	defer upstream.Close()

	e := setup(t, upstream.URL, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/account", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"subscriptionPlan":"starter","subscriptionState":"active","credits":42.5}`, w.Body.String())
}

func TestAccount_UpstreamStatusPassthrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad credentials"}}`))
	}))
	defer upstream.Close()

	e := setup(t, upstream.URL, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/account", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"error":{"message":"bad credentials"}}`, w.Body.String())
}

func TestAccount_NetworkFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	e := setup(t, upstream.URL, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/account", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuth_UnconfiguredGate(t *testing.T) {
	e := setup(t, "http://127.0.0.1:0", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/config", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"authRequired":false}`, w.Body.String())

	body := bytes.NewBufferString(`{"username":"x","password":"y"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	e.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, jsoniter.Get(w.Body.Bytes(), "success").ToBool())
}

func TestAuth_ConfiguredGate(t *testing.T) {
	gate := session.NewGate("admin", "secret", time.Hour)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer upstream.Close()
	e := setup(t, upstream.URL, gate)

	t.Run("config reports auth required", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/config", nil)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)
		require.JSONEq(t, `{"authRequired":true}`, w.Body.String())
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		body := bytes.NewBufferString(`{"username":"admin","password":"wrong"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.False(t, jsoniter.Get(w.Body.Bytes(), "success").ToBool())
	})

	t.Run("protected route without token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/account", nil)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("login then access then logout", func(t *testing.T) {
		body := bytes.NewBufferString(`{"username":"admin","password":"secret"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		token := jsoniter.Get(w.Body.Bytes(), "token").ToString()
		require.NotEmpty(t, token)

		req = httptest.NewRequest(http.MethodGet, "/api/account", nil)
		req.Header.Set("X-Session-Token", token)
		w = httptest.NewRecorder()
		e.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		req.Header.Set("X-Session-Token", token)
		w = httptest.NewRecorder()
		e.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		req = httptest.NewRequest(http.MethodGet, "/api/account", nil)
		req.Header.Set("X-Session-Token", token)
		w = httptest.NewRecorder()
		e.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	e := setup(t, "http://127.0.0.1:0", session.NewGate("admin", "secret", time.Hour))

	// prime the request counter so the scrape has a sample to show
	req := httptest.NewRequest(http.MethodGet, "/api/auth/config", nil)
	e.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "vector_hub_request_count_total")
}
