package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"search-service/domain"
	"search-service/logger"
	"search-service/usecase"

	"github.com/labstack/echo/v4"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type stubRepo struct {
	service *domain.Service
	getErr  error
}

func (s *stubRepo) GetServiceByID(ctx context.Context, id string) (*domain.Service, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.service, nil
}

func (s *stubRepo) GetAllSynonyms(ctx context.Context) ([]domain.SynonymPair, error) {
	return nil, nil
}

type stubEngine struct {
	searchResult *domain.SearchResult
	searchErr    error
	upsertErr    error
	deleteErr    error

	deleted []string
}

func (s *stubEngine) EnsureIndex(ctx context.Context) error { return nil }

func (s *stubEngine) UpsertDocument(ctx context.Context, doc domain.SearchDocument) error {
	return s.upsertErr
}

func (s *stubEngine) DeleteDocument(ctx context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubEngine) Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchResult, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.searchResult, nil
}

func (s *stubEngine) RegisterSynonyms(ctx context.Context, synonyms map[string][]string) error {
	return nil
}

func newTestServer(t *testing.T, repo *stubRepo, engine *stubEngine) *echo.Echo {
	t.Helper()

	h := NewHandler(
		usecase.NewIndexServiceUsecase(repo, engine),
		usecase.NewDeleteServiceUsecase(engine),
		usecase.NewSearchServicesUsecase(engine),
		usecase.NewSuggestServicesUsecase(engine),
	)

	e := echo.New()
	RegisterRoutes(e, h, nil)
	return e
}

func testService(t *testing.T) *domain.Service {
	t.Helper()
	svc, err := domain.NewService(
		"42", "Crane rental", "Mobile crane with operator", "CONSTRUCTION",
		"Berlin", "50t", "max boom 60m", "7", "Krantech GmbH",
		150.0, "2024-01-01T00:00:00Z",
	)
	if err != nil {
		t.Fatal(err)
	}
	return svc
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIndexService(t *testing.T) {
	t.Run("known service is indexed", func(t *testing.T) {
		e := newTestServer(t, &stubRepo{service: testService(t)}, &stubEngine{})

		rec := doJSON(e, http.MethodPost, "/v1/services/index", `{"id":"42"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var resp IndexResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if !resp.Success || resp.ID != "42" {
			t.Errorf("response = %+v, want success for id 42", resp)
		}
	})

	t.Run("unknown service yields 404", func(t *testing.T) {
		e := newTestServer(t, &stubRepo{getErr: domain.ErrServiceNotFound}, &stubEngine{})

		rec := doJSON(e, http.MethodPost, "/v1/services/index", `{"id":"999"}`)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("blank id yields 400", func(t *testing.T) {
		e := newTestServer(t, &stubRepo{}, &stubEngine{})

		rec := doJSON(e, http.MethodPost, "/v1/services/index", `{"id":""}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("engine failure yields 500 with generic body", func(t *testing.T) {
		engine := &stubEngine{upsertErr: errors.New("engine timeout: secret-host:7700")}
		e := newTestServer(t, &stubRepo{service: testService(t)}, engine)

		rec := doJSON(e, http.MethodPost, "/v1/services/index", `{"id":"42"}`)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
		if strings.Contains(rec.Body.String(), "secret-host") {
			t.Error("internal error detail leaked into response body")
		}
	})
}

func TestDeleteService(t *testing.T) {
	t.Run("document is removed", func(t *testing.T) {
		engine := &stubEngine{}
		e := newTestServer(t, &stubRepo{}, engine)

		rec := doJSON(e, http.MethodDelete, "/v1/services/index/42", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if len(engine.deleted) != 1 || engine.deleted[0] != "42" {
			t.Errorf("deleted = %v, want [42]", engine.deleted)
		}
	})

	t.Run("missing document yields 404", func(t *testing.T) {
		e := newTestServer(t, &stubRepo{}, &stubEngine{deleteErr: domain.ErrDocumentNotFound})

		rec := doJSON(e, http.MethodDelete, "/v1/services/index/999", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestSearchServices(t *testing.T) {
	result := &domain.SearchResult{
		Query:      "crane",
		TotalFound: 1,
		Page:       1,
		Hits: []domain.SearchHit{
			{
				Document: domain.SearchDocument{
					ID:          "42",
					Title:       "Crane rental",
					Category:    "CONSTRUCTION",
					PricePerDay: 150.0,
					CreatedAt:   1704067200,
				},
				Score: 0.92,
			},
		},
	}

	t.Run("hits carry document fields and score", func(t *testing.T) {
		e := newTestServer(t, &stubRepo{}, &stubEngine{searchResult: result})

		rec := doJSON(e, http.MethodGet, "/v1/search?q=crane", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}

		var resp domain.SearchResult
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.TotalFound != 1 || len(resp.Hits) != 1 {
			t.Fatalf("response = %+v, want one hit", resp)
		}
		hit := resp.Hits[0]
		if hit.Document.ID != "42" || hit.Document.Title != "Crane rental" || hit.Score != 0.92 {
			t.Errorf("hit = %+v", hit)
		}
	})

	t.Run("envelope uses the published field names", func(t *testing.T) {
		e := newTestServer(t, &stubRepo{}, &stubEngine{searchResult: result})

		rec := doJSON(e, http.MethodGet, "/v1/search?q=crane", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}

		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatal(err)
		}
		for _, key := range []string{"query", "total", "page", "results"} {
			if _, ok := envelope[key]; !ok {
				t.Errorf("envelope missing field %q, body = %s", key, rec.Body.String())
			}
		}

		var hits []map[string]json.RawMessage
		if err := json.Unmarshal(envelope["results"], &hits); err != nil {
			t.Fatal(err)
		}
		if len(hits) != 1 {
			t.Fatalf("results = %s", envelope["results"])
		}
		if _, ok := hits[0]["document"]; !ok {
			t.Errorf("hit does not nest the document, body = %s", rec.Body.String())
		}
		if _, ok := hits[0]["score"]; !ok {
			t.Errorf("hit missing score, body = %s", rec.Body.String())
		}
	})

	t.Run("engine outage degrades to empty result", func(t *testing.T) {
		e := newTestServer(t, &stubRepo{}, &stubEngine{searchErr: errors.New("connection refused")})

		rec := doJSON(e, http.MethodGet, "/v1/search?q=crane", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var resp domain.SearchResult
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.TotalFound != 0 || len(resp.Hits) != 0 {
			t.Errorf("response = %+v, want empty result", resp)
		}
	})

	t.Run("malformed price filter yields 400", func(t *testing.T) {
		e := newTestServer(t, &stubRepo{}, &stubEngine{searchResult: result})

		rec := doJSON(e, http.MethodGet, "/v1/search?q=crane&min_price=cheap", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("negative price filter yields 400", func(t *testing.T) {
		e := newTestServer(t, &stubRepo{}, &stubEngine{searchResult: result})

		rec := doJSON(e, http.MethodGet, "/v1/search?q=crane&min_price=-5", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestSuggestServices(t *testing.T) {
	result := &domain.SearchResult{
		Query:      "cra",
		TotalFound: 2,
		Page:       1,
		Hits: []domain.SearchHit{
			{Document: domain.SearchDocument{ID: "1", Title: "Crane rental"}, Score: 0.9},
			{Document: domain.SearchDocument{ID: "2", Title: "Crawler excavator"}, Score: 0.8},
		},
	}

	t.Run("titles are returned in rank order", func(t *testing.T) {
		e := newTestServer(t, &stubRepo{}, &stubEngine{searchResult: result})

		rec := doJSON(e, http.MethodGet, "/v1/search/suggest?q=cra", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}

		var resp SuggestResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		want := []string{"Crane rental", "Crawler excavator"}
		if len(resp.Suggestions) != 2 || resp.Suggestions[0] != want[0] || resp.Suggestions[1] != want[1] {
			t.Errorf("suggestions = %v, want %v", resp.Suggestions, want)
		}
	})

	t.Run("empty prefix yields 400", func(t *testing.T) {
		e := newTestServer(t, &stubRepo{}, &stubEngine{searchResult: result})

		rec := doJSON(e, http.MethodGet, "/v1/search/suggest", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestPreprocess(t *testing.T) {
	e := newTestServer(t, &stubRepo{}, &stubEngine{})

	t.Run("single request", func(t *testing.T) {
		body := `{"title":"  Mobile  CRANE ","description":"Heavy\tlifting","keywords":""}`
		rec := doJSON(e, http.MethodPost, "/v1/services/preprocess", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}

		var resp PreprocessResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.NormalizedTitle != "mobile crane" || resp.NormalizedDescription != "heavy lifting" {
			t.Errorf("response = %+v", resp)
		}
	})

	t.Run("batch request", func(t *testing.T) {
		body := `[{"title":"Crane A"},{"title":"Crane B"}]`
		rec := doJSON(e, http.MethodPost, "/v1/services/preprocess/batch", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}

		var resp []PreprocessResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if len(resp) != 2 || resp[0].NormalizedTitle != "crane a" || resp[1].NormalizedTitle != "crane b" {
			t.Errorf("response = %+v", resp)
		}
	})
}

func TestHealth(t *testing.T) {
	e := newTestServer(t, &stubRepo{}, &stubEngine{})

	rec := doJSON(e, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}
