package driver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/meilisearch/meilisearch-go"
)

const taskTimeout = 15 * time.Second

// ErrDocumentMissing signals an engine-side 404 for a document. The gateway
// maps it to the domain not-found outcome.
var ErrDocumentMissing = errors.New("document missing")

// Attribute order encodes relevance priority: title matches outrank
// supplier name, which outranks description, and so on. Changing the list
// changes the persisted index contract, not just this process.
var (
	searchableAttributes = []string{"title", "supplier_name", "description", "technical_specs", "category", "location", "capacity"}
	filterableAttributes = []string{"category", "location", "price_per_day", "supplier_id"}
	sortableAttributes   = []string{"created_at", "price_per_day"}
)

type MeilisearchDriver struct {
	client meilisearch.ServiceManager
	index  meilisearch.IndexManager
	name   string
}

func NewMeilisearchDriver(client meilisearch.ServiceManager, indexName string) *MeilisearchDriver {
	return &MeilisearchDriver{
		client: client,
		index:  client.Index(indexName),
		name:   indexName,
	}
}

// awaitTask blocks until the engine task settles, then checks its terminal
// status. Waiting alone is not enough: the wait call resolves failed tasks
// without an error, so a rejected write would otherwise pass as success.
func (d *MeilisearchDriver) awaitTask(op string, taskUID int64, what string) error {
	task, err := d.index.WaitForTask(taskUID, taskTimeout)
	return taskError(op, what, task, err)
}

func taskError(op, what string, task *meilisearch.Task, err error) error {
	if err != nil {
		return &DriverError{Op: op, Err: "failed to wait for " + what + ": " + err.Error()}
	}
	if task.Status != meilisearch.TaskStatusSucceeded {
		detail := task.Error.Message
		if detail == "" {
			detail = "task finished with status " + string(task.Status)
		}
		return &DriverError{Op: op, Err: what + " failed: " + detail}
	}
	return nil
}

// EnsureIndex creates the index with primary key "id" if it does not exist,
// then pushes the fixed attribute settings. Safe to call on every startup.
func (d *MeilisearchDriver) EnsureIndex(ctx context.Context) error {
	if _, err := d.index.FetchInfo(); err != nil {
		if !isNotFound(err) {
			return &DriverError{Op: "EnsureIndex", Err: err.Error()}
		}

		task, err := d.client.CreateIndex(&meilisearch.IndexConfig{
			Uid:        d.name,
			PrimaryKey: "id",
		})
		if err != nil {
			return &DriverError{Op: "EnsureIndex", Err: "failed to create index: " + err.Error()}
		}
		if err := d.awaitTask("EnsureIndex", task.TaskUID, "index creation"); err != nil {
			return err
		}
	}

	if err := d.applySettings(); err != nil {
		return err
	}

	return nil
}

func (d *MeilisearchDriver) applySettings() error {
	searchable := searchableAttributes
	task, err := d.index.UpdateSearchableAttributes(&searchable)
	if err != nil {
		return &DriverError{Op: "EnsureIndex", Err: "failed to set searchable attributes: " + err.Error()}
	}
	if err := d.awaitTask("EnsureIndex", task.TaskUID, "searchable attributes update"); err != nil {
		return err
	}

	filterable := filterableAttributes
	task, err = d.index.UpdateFilterableAttributes(&filterable)
	if err != nil {
		return &DriverError{Op: "EnsureIndex", Err: "failed to set filterable attributes: " + err.Error()}
	}
	if err := d.awaitTask("EnsureIndex", task.TaskUID, "filterable attributes update"); err != nil {
		return err
	}

	sortable := sortableAttributes
	task, err = d.index.UpdateSortableAttributes(&sortable)
	if err != nil {
		return &DriverError{Op: "EnsureIndex", Err: "failed to set sortable attributes: " + err.Error()}
	}
	if err := d.awaitTask("EnsureIndex", task.TaskUID, "sortable attributes update"); err != nil {
		return err
	}

	return nil
}

// UpsertDocument adds or replaces one document by primary key and waits for
// the task so the caller observes a durable result.
func (d *MeilisearchDriver) UpsertDocument(ctx context.Context, doc SearchDocumentDriver) error {
	task, err := d.index.AddDocuments([]SearchDocumentDriver{doc})
	if err != nil {
		return &DriverError{Op: "UpsertDocument", Err: err.Error()}
	}
	if err := d.awaitTask("UpsertDocument", task.TaskUID, "indexing task"); err != nil {
		return err
	}
	return nil
}

// DeleteDocument removes one document by id. An absent id yields
// ErrDocumentMissing so callers can treat the delete as vacuously done.
func (d *MeilisearchDriver) DeleteDocument(ctx context.Context, id string) error {
	var existing SearchDocumentDriver
	if err := d.index.GetDocument(id, nil, &existing); err != nil {
		if isNotFound(err) {
			return ErrDocumentMissing
		}
		return &DriverError{Op: "DeleteDocument", Err: err.Error()}
	}

	task, err := d.index.DeleteDocument(id)
	if err != nil {
		return &DriverError{Op: "DeleteDocument", Err: err.Error()}
	}
	if err := d.awaitTask("DeleteDocument", task.TaskUID, "deletion task"); err != nil {
		return err
	}
	return nil
}

// Search runs one engine query: prefix matching and typo tolerance are
// engine defaults, relevance ordering comes from the ranking rules, and the
// created_at sort breaks ties in favor of newer records.
func (d *MeilisearchDriver) Search(ctx context.Context, query string, filter string, page, pageSize int64) (*SearchResultDriver, error) {
	request := &meilisearch.SearchRequest{
		Query:            query,
		Page:             page,
		HitsPerPage:      pageSize,
		Sort:             []string{"created_at:desc"},
		ShowRankingScore: true,
	}
	if filter != "" {
		request.Filter = filter
	}

	result, err := d.index.Search(query, request)
	if err != nil {
		return nil, &DriverError{Op: "Search", Err: err.Error()}
	}

	hits := make([]SearchHitDriver, 0, len(result.Hits))
	for _, hit := range result.Hits {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		hits = append(hits, SearchHitDriver{
			Document: documentFromHit(hitMap),
			Score:    getFloat(hitMap, "_rankingScore"),
		})
	}

	return &SearchResultDriver{
		Hits:       hits,
		TotalFound: result.TotalHits,
		Page:       result.Page,
	}, nil
}

// RegisterSynonyms overwrites the index synonym sets with the given map.
func (d *MeilisearchDriver) RegisterSynonyms(ctx context.Context, synonyms map[string][]string) error {
	task, err := d.index.UpdateSynonyms(&synonyms)
	if err != nil {
		return &DriverError{Op: "RegisterSynonyms", Err: "failed to register synonyms: " + err.Error()}
	}
	if err := d.awaitTask("RegisterSynonyms", task.TaskUID, "synonyms update"); err != nil {
		return err
	}
	return nil
}

func documentFromHit(m map[string]interface{}) SearchDocumentDriver {
	return SearchDocumentDriver{
		ID:             getString(m, "id"),
		Title:          getString(m, "title"),
		Description:    getString(m, "description"),
		Category:       getString(m, "category"),
		Location:       getString(m, "location"),
		Capacity:       getString(m, "capacity"),
		TechnicalSpecs: getString(m, "technical_specs"),
		SupplierID:     getString(m, "supplier_id"),
		SupplierName:   getString(m, "supplier_name"),
		PricePerDay:    getFloat(m, "price_per_day"),
		CreatedAt:      int64(getFloat(m, "created_at")),
	}
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getFloat(m map[string]interface{}, key string) float64 {
	if v, ok := m[key]; ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return 0
}

// isNotFound reports whether the engine answered 404 for the resource.
func isNotFound(err error) bool {
	var msErr *meilisearch.Error
	if errors.As(err, &msErr) {
		return msErr.StatusCode == http.StatusNotFound
	}
	return false
}
