package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"propertypulse/internal/config"
	handlers "propertypulse/internal/handler"
	"propertypulse/internal/middleware"
	"propertypulse/internal/models"
	"propertypulse/internal/repository"
	"propertypulse/internal/service"
)

func newTestHandlers(props *MockPropertyService, auth *MockAuthService) *handlers.Handlers {
	return &handlers.Handlers{
		PropertyService: props,
		AuthService:     auth,
		Cfg: &config.Config{
			MaxUploadSize: 10 << 20,
			SiteURL:       "http://localhost:3000",
		},
		Validate: validator.New(),
	}
}

// newTestRouter mirrors the route table in cmd/api.
func newTestRouter(h *handlers.Handlers) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/properties", h.GetProperties).Methods(http.MethodGet)
	router.HandleFunc("/properties", h.CreateProperty).Methods(http.MethodPost)
	router.HandleFunc("/properties/user/", h.GetUserProperties).Methods(http.MethodGet)
	router.HandleFunc("/properties/user/{userId}", h.GetUserProperties).Methods(http.MethodGet)
	router.HandleFunc("/properties/{id}", h.GetProperty).Methods(http.MethodGet)
	router.HandleFunc("/properties/{id}", h.UpdateProperty).Methods(http.MethodPut)
	router.HandleFunc("/properties/{id}", h.DeleteProperty).Methods(http.MethodDelete)
	return router
}

func listingBody(t *testing.T, imageNames []string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := map[string]string{
		"type":              "House",
		"name":              "Seaside Cottage",
		"description":       "Steps from the beach",
		"location.street":   "7 Shore Rd",
		"location.city":     "Portland",
		"location.state":    "ME",
		"location.zipcode":  "04101",
		"beds":              "3",
		"baths":             "2",
		"square_feet":       "1400",
		"rates.monthly":     "3200",
		"seller_info.name":  "Sam Seller",
		"seller_info.email": "sam@example.com",
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.WriteField("amenities", "Wifi"))
	require.NoError(t, writer.WriteField("amenities", "Free Parking"))

	for _, name := range imageNames {
		part, err := writer.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestGetProperties(t *testing.T) {
	props := new(MockPropertyService)
	props.On("List", mock.Anything).Return([]models.Property{
		{Name: "Newer Listing"},
		{Name: "Older Listing"},
	}, nil).Once()

	router := newTestRouter(newTestHandlers(props, new(MockAuthService)))

	req := httptest.NewRequest(http.MethodGet, "/properties", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		Count      int               `json:"count"`
		Properties []models.Property `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Count)
	assert.Equal(t, "Newer Listing", response.Properties[0].Name)
}

func TestGetPropertyNotFound(t *testing.T) {
	props := new(MockPropertyService)
	props.On("Get", mock.Anything, "missing-id").Return(nil, repository.ErrNotFound).Once()

	router := newTestRouter(newTestHandlers(props, new(MockAuthService)))

	req := httptest.NewRequest(http.MethodGet, "/properties/missing-id", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "property not found", response["error"])
}

func TestCreatePropertyRedirectsToNewListing(t *testing.T) {
	newID := primitive.NewObjectID()
	sess := &models.Session{UserID: primitive.NewObjectID().Hex(), Email: "sam@example.com"}

	props := new(MockPropertyService)
	props.On("Create", mock.Anything, sess, mock.MatchedBy(func(input service.PropertyInput) bool {
		return input.Name == "Seaside Cottage" && len(input.Amenities) == 2
	}), mock.MatchedBy(func(images []service.ImageUpload) bool {
		return len(images) == 2 && images[0].FileName == "front.jpg" && images[1].FileName == "back.jpg"
	})).Return(&models.Property{ID: newID, Images: []string{"u1", "u2"}}, nil).Once()

	h := newTestHandlers(props, new(MockAuthService))
	router := newTestRouter(h)

	body, contentType := listingBody(t, []string{"front.jpg", "back.jpg"})
	req := httptest.NewRequest(http.MethodPost, "/properties", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(middleware.WithSession(req.Context(), sess))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, fmt.Sprintf("http://localhost:3000/properties/%s", newID.Hex()), rr.Header().Get("Location"))
	props.AssertExpectations(t)
}

func TestCreatePropertyRequiresSession(t *testing.T) {
	props := new(MockPropertyService)
	router := newTestRouter(newTestHandlers(props, new(MockAuthService)))

	body, contentType := listingBody(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/properties", body)
	req.Header.Set("Content-Type", contentType)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	props.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePropertyRejectsIncompleteForm(t *testing.T) {
	sess := &models.Session{UserID: primitive.NewObjectID().Hex()}
	props := new(MockPropertyService)
	router := newTestRouter(newTestHandlers(props, new(MockAuthService)))

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("name", "Only A Name"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/properties", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req = req.WithContext(middleware.WithSession(req.Context(), sess))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	props.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateProperty(t *testing.T) {
	sess := &models.Session{UserID: primitive.NewObjectID().Hex()}

	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
	}{
		{name: "success", serviceErr: nil, expectedStatus: http.StatusOK},
		{name: "identifier not found", serviceErr: repository.ErrNotFound, expectedStatus: http.StatusNotFound},
		{name: "found but not owned", serviceErr: repository.ErrNotOwner, expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := new(MockPropertyService)
			props.On("Update", mock.Anything, sess, "prop-1", mock.Anything).
				Return(tt.serviceErr).Once()

			router := newTestRouter(newTestHandlers(props, new(MockAuthService)))

			body, contentType := listingBody(t, nil)
			req := httptest.NewRequest(http.MethodPut, "/properties/prop-1", body)
			req.Header.Set("Content-Type", contentType)
			req = req.WithContext(middleware.WithSession(req.Context(), sess))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			props.AssertExpectations(t)
		})
	}
}

func TestDeleteForeignPropertyIsRejected(t *testing.T) {
	propertyID := primitive.NewObjectID().Hex()
	intruder := &models.Session{UserID: primitive.NewObjectID().Hex()}
	original := &models.Property{Name: "Still Here"}

	props := new(MockPropertyService)
	props.On("Delete", mock.Anything, intruder, propertyID).Return(repository.ErrNotOwner).Once()
	props.On("Get", mock.Anything, propertyID).Return(original, nil).Once()

	router := newTestRouter(newTestHandlers(props, new(MockAuthService)))

	req := httptest.NewRequest(http.MethodDelete, "/properties/"+propertyID, nil)
	req = req.WithContext(middleware.WithSession(req.Context(), intruder))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// The listing is still served afterwards.
	req = httptest.NewRequest(http.MethodGet, "/properties/"+propertyID, nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var fetched models.Property
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &fetched))
	assert.Equal(t, "Still Here", fetched.Name)
}

func TestDeleteProperty(t *testing.T) {
	sess := &models.Session{UserID: primitive.NewObjectID().Hex()}

	props := new(MockPropertyService)
	props.On("Delete", mock.Anything, sess, "prop-1").Return(nil).Once()

	router := newTestRouter(newTestHandlers(props, new(MockAuthService)))

	req := httptest.NewRequest(http.MethodDelete, "/properties/prop-1", nil)
	req = req.WithContext(middleware.WithSession(req.Context(), sess))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	props.AssertExpectations(t)
}

func TestDeletePropertyRequiresSession(t *testing.T) {
	props := new(MockPropertyService)
	router := newTestRouter(newTestHandlers(props, new(MockAuthService)))

	req := httptest.NewRequest(http.MethodDelete, "/properties/prop-1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	props.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetUserProperties(t *testing.T) {
	ownerID := primitive.NewObjectID().Hex()

	props := new(MockPropertyService)
	props.On("ListByOwner", mock.Anything, ownerID).Return([]models.Property{
		{Name: "Owned Listing"},
	}, nil).Once()

	router := newTestRouter(newTestHandlers(props, new(MockAuthService)))

	req := httptest.NewRequest(http.MethodGet, "/properties/user/"+ownerID, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var properties []models.Property
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &properties))
	assert.Len(t, properties, 1)
}

func TestGetUserPropertiesMissingID(t *testing.T) {
	props := new(MockPropertyService)
	props.On("ListByOwner", mock.Anything, "").Return(nil, service.ErrInvalidUserID).Once()

	router := newTestRouter(newTestHandlers(props, new(MockAuthService)))

	req := httptest.NewRequest(http.MethodGet, "/properties/user/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
