package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/storelab/catalog-service/models"
)

// --- Mock store ---

type MockProductStore struct {
	Products []models.Product
	Rows     []models.ProductRow

	SlugErr   error
	CreateErr error
	BatchErr  error
	GetErr    error
	ListErr   error
	UpdateErr error
	DeleteErr error

	UpdateRows int64
	DeleteRows int64

	// Fields to capture call arguments
	slugProbes   []string
	lastCreated  *models.Product
	lastBatch    []models.Product
	lastOffset   int
	lastLimit    int
	lastSort     *models.ProductSort
	lastUpdateID uint
	lastFields   map[string]any
	lastDeleteID uint
	listCalled   bool
	updateCalled bool
	deleteCalled bool
}

func (m *MockProductStore) SlugExists(slug string) (bool, error) {
	m.slugProbes = append(m.slugProbes, slug)
	if m.SlugErr != nil {
		return false, m.SlugErr
	}
	for _, p := range m.Products {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockProductStore) Create(p *models.Product) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	p.ID = uint(len(m.Products) + 1)
	m.Products = append(m.Products, *p)
	m.lastCreated = p
	return nil
}

func (m *MockProductStore) CreateBatch(products []models.Product) ([]models.Product, error) {
	m.lastBatch = products
	if m.BatchErr != nil {
		return nil, m.BatchErr
	}
	for i := range products {
		products[i].ID = uint(len(m.Products) + 1)
		m.Products = append(m.Products, products[i])
	}
	return products, nil
}

func (m *MockProductStore) GetBySlug(slug string) (*models.Product, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, p := range m.Products {
		if p.Slug == slug {
			product := p
			return &product, nil
		}
	}
	return nil, models.ErrProductNotFound
}

func (m *MockProductStore) List(offset, limit int, sort *models.ProductSort) ([]models.ProductRow, int64, error) {
	m.listCalled = true
	m.lastOffset = offset
	m.lastLimit = limit
	m.lastSort = sort

	if m.ListErr != nil {
		return nil, 0, m.ListErr
	}

	total := int64(len(m.Rows))

	start := offset
	if start > len(m.Rows) {
		start = len(m.Rows)
	}
	end := offset + limit
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	return m.Rows[start:end], total, nil
}

func (m *MockProductStore) Update(id uint, fields map[string]any) (int64, error) {
	m.updateCalled = true
	m.lastUpdateID = id
	m.lastFields = fields
	if m.UpdateErr != nil {
		return 0, m.UpdateErr
	}
	return m.UpdateRows, nil
}

func (m *MockProductStore) Delete(id uint) (int64, error) {
	m.deleteCalled = true
	m.lastDeleteID = id
	if m.DeleteErr != nil {
		return 0, m.DeleteErr
	}
	return m.DeleteRows, nil
}

// --- Helpers ---

func newTestRows(n int) []models.ProductRow {
	rows := make([]models.ProductRow, n)
	for i := range rows {
		rows[i] = models.ProductRow{
			ID:           uint(i + 1),
			Name:         fmt.Sprintf("Product %d", i+1),
			Price:        (i + 1) * 10,
			Description:  "test product",
			Slug:         fmt.Sprintf("product-%d", i+1),
			CategoryID:   1,
			CategoryName: "Electronics",
		}
	}
	return rows
}

// --- Tests ---

func TestHandleList(t *testing.T) {
	testCases := []struct {
		name               string
		url                string
		mockStoreSetup     func() *MockProductStore
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkStoreCalls    func(t *testing.T, store *MockProductStore)
	}{
		{
			name: "Success with default pagination",
			url:  "/product",
			mockStoreSetup: func() *MockProductStore {
				return &MockProductStore{Rows: newTestRows(12)}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp ListResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, int64(12), resp.Total)
				assert.Equal(t, 1, resp.Page)
				assert.Equal(t, 5, resp.Limit)
				assert.Len(t, resp.Data, 5)
				assert.Equal(t, uint(1), resp.Data[0].ID)
				assert.Equal(t, "Electronics", resp.Data[0].CategoryName)
			},
			checkStoreCalls: func(t *testing.T, store *MockProductStore) {
				assert.Equal(t, 0, store.lastOffset, "Expected default offset 0")
				assert.Equal(t, 5, store.lastLimit, "Expected default limit 5")
				assert.Nil(t, store.lastSort)
			},
		},
		{
			name: "Second page of twelve products",
			url:  "/product?page=2&limit=5&sortBy=price&sortOrder=desc",
			mockStoreSetup: func() *MockProductStore {
				return &MockProductStore{Rows: newTestRows(12)}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp ListResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, int64(12), resp.Total)
				assert.Equal(t, 2, resp.Page)
				assert.Equal(t, 5, resp.Limit)
				assert.Len(t, resp.Data, 5)
				assert.Equal(t, uint(6), resp.Data[0].ID, "Expected rows 6-10 on page 2")
				assert.Equal(t, uint(10), resp.Data[4].ID)
			},
			checkStoreCalls: func(t *testing.T, store *MockProductStore) {
				assert.Equal(t, 5, store.lastOffset)
				assert.Equal(t, 5, store.lastLimit)
				assert.NotNil(t, store.lastSort)
				assert.Equal(t, "price", store.lastSort.Column)
				assert.True(t, store.lastSort.Desc)
			},
		},
		{
			name: "Last page is short",
			url:  "/product?page=3&limit=5",
			mockStoreSetup: func() *MockProductStore {
				return &MockProductStore{Rows: newTestRows(12)}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp ListResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, int64(12), resp.Total)
				assert.Len(t, resp.Data, 2)
			},
		},
		{
			name: "SortBy maps wire field to column with default ascending order",
			url:  "/product?sortBy=productName",
			mockStoreSetup: func() *MockProductStore {
				return &MockProductStore{Rows: newTestRows(3)}
			},
			expectedStatusCode: http.StatusOK,
			checkStoreCalls: func(t *testing.T, store *MockProductStore) {
				assert.NotNil(t, store.lastSort)
				assert.Equal(t, "product_name", store.lastSort.Column)
				assert.False(t, store.lastSort.Desc)
			},
		},
		{
			name: "Unknown sortBy field is rejected",
			url:  "/product?sortBy=stock",
			mockStoreSetup: func() *MockProductStore {
				return &MockProductStore{Rows: newTestRows(3)}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Invalid sortBy field", errResp["error"])
			},
			checkStoreCalls: func(t *testing.T, store *MockProductStore) {
				assert.False(t, store.listCalled, "store should not be queried for an invalid sort field")
			},
		},
		{
			name: "Invalid and non-positive query values fall back to defaults",
			url:  "/product?page=abc&limit=-3",
			mockStoreSetup: func() *MockProductStore {
				return &MockProductStore{Rows: newTestRows(12)}
			},
			expectedStatusCode: http.StatusOK,
			checkStoreCalls: func(t *testing.T, store *MockProductStore) {
				assert.Equal(t, 0, store.lastOffset, "Expected default offset for invalid page")
				assert.Equal(t, 5, store.lastLimit, "Expected default limit for non-positive value")
			},
		},
		{
			name: "Empty table returns empty data array",
			url:  "/product",
			mockStoreSetup: func() *MockProductStore {
				return &MockProductStore{}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), `"data":[]`)
			},
		},
		{
			name: "Store error",
			url:  "/product",
			mockStoreSetup: func() *MockProductStore {
				return &MockProductStore{ListErr: errors.New("db down")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Error while getting products.", errResp["error"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockStore := tc.mockStoreSetup()
			handler := NewCatalogHandler(mockStore, zap.NewNop())
			req := httptest.NewRequest("GET", tc.url, nil)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleList(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)

			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}

			if tc.checkStoreCalls != nil {
				tc.checkStoreCalls(t, mockStore)
			}
		})
	}
}
