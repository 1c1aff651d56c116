package controllers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crimewatch-be/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeBlobStore struct {
	blobs   map[primitive.ObjectID][]byte
	putErr  error
	deleted []primitive.ObjectID
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: map[primitive.ObjectID][]byte{}}
}

func (f *fakeBlobStore) Put(ctx context.Context, key, contentType string, data io.Reader) (primitive.ObjectID, error) {
	if f.putErr != nil {
		return primitive.NilObjectID, f.putErr
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id := primitive.NewObjectID()
	f.blobs[id] = raw
	return id, nil
}

func (f *fakeBlobStore) Get(ctx context.Context, id primitive.ObjectID) ([]byte, error) {
	raw, ok := f.blobs[id]
	if !ok {
		return nil, errors.New("blob not found")
	}
	return raw, nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.blobs, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func collectInserts(records *[]models.Evidence) insertEvidenceFunc {
	return func(ctx context.Context, ev models.Evidence) (primitive.ObjectID, error) {
		ev.ID = primitive.NewObjectID()
		*records = append(*records, ev)
		return ev.ID, nil
	}
}

func TestStoreEvidenceFile(t *testing.T) {
	blobs := newFakeBlobStore()
	var records []models.Evidence
	caseID := primitive.NewObjectID()
	meta := evidenceMeta{
		caseID:      &caseID,
		officerID:   primitive.NewObjectID(),
		officerName: "Asha Verma",
		notes:       "found at scene",
	}

	entry, err := storeEvidenceFile(context.Background(), blobs, collectInserts(&records),
		"scene photo.jpg", "image/jpeg", 4, bytes.NewReader([]byte("data")), meta)
	require.NoError(t, err)

	assert.Equal(t, "scene photo.jpg", entry["filename"])
	assert.Equal(t, int64(4), entry["size"])
	assert.NotEmpty(t, entry["evidence_id"])
	assert.NotEmpty(t, entry["file_id"])

	require.Len(t, records, 1)
	ev := records[0]
	assert.Equal(t, "scene photo.jpg", ev.OriginalFilename)
	assert.NotEqual(t, ev.OriginalFilename, ev.Filename)
	assert.True(t, strings.HasSuffix(ev.Filename, "scene_photo.jpg"))
	assert.Equal(t, "image/jpeg", ev.ContentType)
	assert.Equal(t, &caseID, ev.CaseID)
	assert.Nil(t, ev.FIRID)
	assert.Equal(t, "found at scene", ev.Notes)
	assert.Equal(t, "active", ev.Status)
	assert.Len(t, blobs.blobs, 1)
}

func TestStoreEvidenceFileRejectsOversized(t *testing.T) {
	blobs := newFakeBlobStore()
	var records []models.Evidence

	_, err := storeEvidenceFile(context.Background(), blobs, collectInserts(&records),
		"dump.bin", "application/octet-stream", models.MaxEvidenceFileSize+1,
		bytes.NewReader(nil), evidenceMeta{officerID: primitive.NewObjectID()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dump.bin")
	assert.Contains(t, err.Error(), "File too large")
	assert.Empty(t, records)
	assert.Empty(t, blobs.blobs)
}

func TestStoreEvidenceFileDefaultsContentType(t *testing.T) {
	blobs := newFakeBlobStore()
	var records []models.Evidence

	_, err := storeEvidenceFile(context.Background(), blobs, collectInserts(&records),
		"notes.txt", "", 5, bytes.NewReader([]byte("hello")),
		evidenceMeta{officerID: primitive.NewObjectID()})
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "application/octet-stream", records[0].ContentType)
}

func TestStoreEvidenceFileBlobFailure(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.putErr = errors.New("bucket unavailable")
	var records []models.Evidence

	_, err := storeEvidenceFile(context.Background(), blobs, collectInserts(&records),
		"scene.jpg", "image/jpeg", 4, bytes.NewReader([]byte("data")),
		evidenceMeta{officerID: primitive.NewObjectID()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket unavailable")
	assert.Empty(t, records)
}

func TestStoreEvidenceFileRemovesBlobWhenInsertFails(t *testing.T) {
	blobs := newFakeBlobStore()
	insert := func(ctx context.Context, ev models.Evidence) (primitive.ObjectID, error) {
		return primitive.NilObjectID, errors.New("write conflict")
	}

	_, err := storeEvidenceFile(context.Background(), blobs, insert,
		"scene.jpg", "image/jpeg", 4, bytes.NewReader([]byte("data")),
		evidenceMeta{officerID: primitive.NewObjectID()})

	require.Error(t, err)
	assert.Empty(t, blobs.blobs)
	assert.Len(t, blobs.deleted, 1)
}

// Listing without a parent resource must be rejected before any query runs;
// an empty filter would expose every record, including other officers' FIR
// evidence.
func TestListEvidenceRequiresCaseOrFIR(t *testing.T) {
	gin.SetMode(gin.TestMode)
	oc := &OfficerController{}
	r := gin.New()
	r.GET("/evidence", oc.ListEvidence)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/evidence", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Either case_id or fir_id is required")
}

func TestListEvidenceRejectsMalformedIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	oc := &OfficerController{}
	r := gin.New()
	r.GET("/evidence", oc.ListEvidence)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/evidence?case_id=not-hex", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid case ID")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/evidence?fir_id=not-hex", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid FIR ID")
}

// One bad file must not block the others; the handler partitions results the
// same way.
func TestStoreEvidenceFilePartitioning(t *testing.T) {
	blobs := newFakeBlobStore()
	var records []models.Evidence
	insert := collectInserts(&records)
	meta := evidenceMeta{officerID: primitive.NewObjectID()}

	files := []struct {
		name string
		size int64
	}{
		{"a.jpg", 10},
		{"huge.bin", models.MaxEvidenceFileSize + 1},
		{"b.jpg", 20},
	}

	var uploaded []string
	var errs []string
	for _, f := range files {
		entry, err := storeEvidenceFile(context.Background(), blobs, insert,
			f.name, "image/jpeg", f.size, bytes.NewReader(make([]byte, 4)), meta)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		uploaded = append(uploaded, entry["filename"].(string))
	}

	assert.Equal(t, []string{"a.jpg", "b.jpg"}, uploaded)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "huge.bin")
	assert.Len(t, records, 2)
}
