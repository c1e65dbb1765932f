package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fitmuseapi/dbhelper"
	"fitmuseapi/models"
	"fitmuseapi/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMoodboards(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, &test.LLMServiceMock{}, &test.AWSProviderMock{}, nil, test.URLCacheMock{})
	user := test.FakeUser(db)

	req := test.NewJSONAuthRequest("GET", "/api/moodboards", UIntToStr(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var moodboards []models.Moodboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &moodboards))
	require.Len(t, moodboards, 6)
	assert.Equal(t, "Calm", moodboards[0].Name)
	assert.NotEmpty(t, moodboards[0].ColorPalette)
	assert.NotEmpty(t, moodboards[0].StylingLogic)
}

func TestListStyleVibes(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, &test.LLMServiceMock{}, &test.AWSProviderMock{}, nil, test.URLCacheMock{})
	user := test.FakeUser(db)

	req := test.NewJSONAuthRequest("GET", "/api/style-vibes", UIntToStr(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var vibes []models.StyleVibe
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vibes))
	require.Len(t, vibes, 5)
	assert.Equal(t, "Streetwear", vibes[0].Name)
	assert.NotEmpty(t, vibes[0].StylingRules)
}

func TestReferenceDataRequiresAuth(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, &test.LLMServiceMock{}, &test.AWSProviderMock{}, nil, test.URLCacheMock{})

	req := test.NewJSONRequest("GET", "/api/moodboards", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSaveAndListOutfits(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, &test.LLMServiceMock{}, &test.AWSProviderMock{}, nil, test.URLCacheMock{})
	user := test.FakeUser(db)

	payload := SavedOutfitIn{
		Name:      "Friday night",
		Mood:      "Energetic",
		StyleVibe: StrPointer("Streetwear"),
		Items: []models.SavedOutfitItem{
			{Id: "item-1", Name: "Hoodie", Category: StrPointer("top")},
			{Id: "item-2", Name: "Cargo pants", Category: StrPointer("pants")},
		},
		Explanation: "Relaxed layers with bold sneakers.",
		StyleNotes:  StrPointer("Add a chain necklace."),
	}
	req := test.NewJSONAuthRequest("POST", "/api/saved-outfits", UIntToStr(user.ID), payload)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.SavedOutfit
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Friday night", created.Name)

	req = test.NewJSONAuthRequest("GET", "/api/saved-outfits", UIntToStr(user.ID), nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var listed []models.SavedOutfit
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	outfit := listed[0]
	assert.Equal(t, payload.Name, outfit.Name)
	assert.Equal(t, payload.Mood, outfit.Mood)
	assert.Equal(t, payload.Explanation, outfit.Explanation)
	require.NotNil(t, outfit.StyleVibe)
	assert.Equal(t, "Streetwear", *outfit.StyleVibe)
	require.NotNil(t, outfit.StyleNotes)
	assert.Equal(t, "Add a chain necklace.", *outfit.StyleNotes)
	require.Len(t, outfit.Items, 2)
	assert.Equal(t, "item-1", outfit.Items[0].Id)
	assert.Equal(t, "Hoodie", outfit.Items[0].Name)
	require.NotNil(t, outfit.Items[1].Category)
	assert.Equal(t, "pants", *outfit.Items[1].Category)
}

func TestListOutfitsNewestFirstAndScoped(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, &test.LLMServiceMock{}, &test.AWSProviderMock{}, nil, test.URLCacheMock{})
	user := test.FakeUser(db)
	other := test.FakeUserNamed(db, "othername")

	items := []models.SavedOutfitItem{{Id: "item-1", Name: "Tee"}}
	for i, name := range []string{"first", "second", "third"} {
		outfit := models.SavedOutfit{
			OwnerID: user.ID, Name: name, Mood: "Calm",
			Items: items, Explanation: fmt.Sprintf("outfit %d", i),
		}
		require.NoError(t, db.Create(&outfit).Error)
	}
	db.Create(&models.SavedOutfit{OwnerID: other.ID, Name: "not yours", Mood: "Dark", Items: items, Explanation: "other user's"})

	req := test.NewJSONAuthRequest("GET", "/api/saved-outfits", UIntToStr(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var listed []models.SavedOutfit
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 3)
	assert.Equal(t, "third", listed[0].Name)
	assert.Equal(t, "first", listed[2].Name)
	for _, outfit := range listed {
		assert.NotEqual(t, "not yours", outfit.Name)
	}
}

func TestListOutfitsPresignsStoredComposites(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	mockUrl := "https://r2.example.com/composites/outfit-1.png?sig=abc"
	e := SetupServer(db, &test.LLMServiceMock{}, &test.AWSProviderMock{}, nil, test.URLCacheMock{MockUrl: mockUrl})
	user := test.FakeUser(db)

	outfit := models.SavedOutfit{
		OwnerID: user.ID, Name: "stored", Mood: "Calm",
		Items:              []models.SavedOutfitItem{{Id: "item-1", Name: "Tee"}},
		Explanation:        "uploaded already",
		CompositeObjectKey: StrPointer("composites/outfit-1.png"),
		UploadStatus:       models.CompositeUploadUploaded,
	}
	require.NoError(t, db.Create(&outfit).Error)

	req := test.NewJSONAuthRequest("GET", "/api/saved-outfits", UIntToStr(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var listed []models.SavedOutfit
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].CompositeImage)
	assert.Equal(t, mockUrl, *listed[0].CompositeImage)
}

func TestSaveOutfitValidation(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, &test.LLMServiceMock{}, &test.AWSProviderMock{}, nil, test.URLCacheMock{})
	user := test.FakeUser(db)

	items := []models.SavedOutfitItem{{Id: "item-1", Name: "Tee"}}
	cases := []struct {
		payload SavedOutfitIn
		message string
	}{
		{SavedOutfitIn{Mood: "Calm", Items: items, Explanation: "x"}, "Name, mood, and items are required"},
		{SavedOutfitIn{Name: "a", Items: items, Explanation: "x"}, "Name, mood, and items are required"},
		{SavedOutfitIn{Name: "a", Mood: "Calm", Explanation: "x"}, "Name, mood, and items are required"},
		{SavedOutfitIn{Name: "a", Mood: "Calm", Items: items}, "Explanation is required"},
	}
	for _, c := range cases {
		req := test.NewJSONAuthRequest("POST", "/api/saved-outfits", UIntToStr(user.ID), c.payload)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body map[string]string
		json.Unmarshal(rec.Body.Bytes(), &body)
		assert.Equal(t, c.message, body["error"])
	}
}

func TestDeleteOutfit(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, &test.LLMServiceMock{}, &test.AWSProviderMock{}, nil, test.URLCacheMock{})
	user := test.FakeUser(db)

	outfit := models.SavedOutfit{
		OwnerID: user.ID, Name: "doomed", Mood: "Dark",
		Items:       []models.SavedOutfitItem{{Id: "item-1", Name: "Coat"}},
		Explanation: "soon gone",
	}
	require.NoError(t, db.Create(&outfit).Error)

	req := test.NewJSONAuthRequest("DELETE", fmt.Sprintf("/api/saved-outfits/%d", outfit.ID), UIntToStr(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body map[string]bool
	json.Unmarshal(rec.Body.Bytes(), &body)
	assert.True(t, body["success"])

	var count int64
	db.Model(&models.SavedOutfit{}).Where("id = ?", outfit.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteOutfitOwnedBySomeoneElse(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, &test.LLMServiceMock{}, &test.AWSProviderMock{}, nil, test.URLCacheMock{})
	user := test.FakeUser(db)
	other := test.FakeUserNamed(db, "othername")

	outfit := models.SavedOutfit{
		OwnerID: other.ID, Name: "protected", Mood: "Calm",
		Items:       []models.SavedOutfitItem{{Id: "item-1", Name: "Tee"}},
		Explanation: "belongs to someone else",
	}
	require.NoError(t, db.Create(&outfit).Error)

	req := test.NewJSONAuthRequest("DELETE", fmt.Sprintf("/api/saved-outfits/%d", outfit.ID), UIntToStr(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	assert.Equal(t, "Outfit not found or not authorized", body["error"])

	var count int64
	db.Model(&models.SavedOutfit{}).Where("id = ?", outfit.ID).Count(&count)
	assert.Equal(t, int64(1), count, "foreign outfit must survive")
}

func TestDeleteOutfitMissing(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, &test.LLMServiceMock{}, &test.AWSProviderMock{}, nil, test.URLCacheMock{})
	user := test.FakeUser(db)

	req := test.NewJSONAuthRequest("DELETE", "/api/saved-outfits/999999", UIntToStr(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
