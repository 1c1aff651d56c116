package controllers

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"crimewatch-be/middlewares"
	"crimewatch-be/models"
	"crimewatch-be/storage"
	"crimewatch-be/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type evidenceMeta struct {
	caseID      *primitive.ObjectID
	firID       *primitive.ObjectID
	officerID   primitive.ObjectID
	officerName string
	notes       string
}

type insertEvidenceFunc func(ctx context.Context, ev models.Evidence) (primitive.ObjectID, error)

// storeEvidenceFile writes one file to the blob store and records its
// metadata. If the metadata write fails the blob is removed best-effort so
// orphans do not pile up in the bucket.
func storeEvidenceFile(ctx context.Context, blobs storage.BlobStore, insert insertEvidenceFunc,
	filename, contentType string, size int64, data io.Reader, meta evidenceMeta) (gin.H, error) {

	if size > models.MaxEvidenceFileSize {
		return nil, fmt.Errorf("%s: File too large (max 10MB)", filename)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := storage.ObjectKey(filename)
	fileID, err := blobs.Put(ctx, key, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", filename, err)
	}

	ev := models.Evidence{
		FileID:           fileID,
		Filename:         key,
		OriginalFilename: filename,
		ContentType:      contentType,
		FileSize:         size,
		CaseID:           meta.caseID,
		FIRID:            meta.firID,
		OfficerID:        meta.officerID,
		OfficerName:      meta.officerName,
		Notes:            meta.notes,
		UploadedAt:       time.Now(),
		Status:           "active",
	}

	evidenceID, err := insert(ctx, ev)
	if err != nil {
		if delErr := blobs.Delete(ctx, fileID); delErr != nil {
			log.Println("Error removing orphaned blob:", delErr)
		}
		return nil, fmt.Errorf("%s: %v", filename, err)
	}

	return gin.H{
		"evidence_id": evidenceID.Hex(),
		"file_id":     fileID.Hex(),
		"filename":    filename,
		"size":        size,
	}, nil
}

// UploadEvidence attaches one or more files to a case or a FIR. Files are
// processed independently: a single oversized or failed file does not block
// the rest.
func (oc *OfficerController) UploadEvidence(c *gin.Context) {
	claims := middlewares.GetClaims(c)

	officerID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	caseHex := c.PostForm("case_id")
	firHex := c.PostForm("fir_id")
	if caseHex == "" && firHex == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either case_id or fir_id is required"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	meta := evidenceMeta{officerID: officerID, officerName: claims.Name, notes: c.PostForm("notes")}

	if caseHex != "" {
		caseID, err := primitive.ObjectIDFromHex(caseHex)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid case ID"})
			return
		}
		count, err := oc.cases.CountDocuments(ctx, bson.M{"_id": caseID})
		if err != nil || count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Case not found"})
			return
		}
		meta.caseID = &caseID
	}
	if firHex != "" {
		firID, err := primitive.ObjectIDFromHex(firHex)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid FIR ID"})
			return
		}
		var fir models.OfficerFIR
		if err := oc.firs.FindOne(ctx, bson.M{"_id": firID}).Decode(&fir); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "FIR not found"})
			return
		}
		if err := utils.Authorize(claims, utils.ResourceFIR, utils.ActionUpdate, &utils.Target{OfficerID: fir.OfficerID.Hex()}); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		meta.firID = &firID
	}

	insert := func(ctx context.Context, ev models.Evidence) (primitive.ObjectID, error) {
		result, err := oc.evidence.InsertOne(ctx, ev)
		if err != nil {
			return primitive.NilObjectID, err
		}
		return result.InsertedID.(primitive.ObjectID), nil
	}

	var uploaded []gin.H
	var errs []string
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", header.Filename, err))
			continue
		}
		entry, err := storeEvidenceFile(ctx, oc.blobs, insert,
			header.Filename, header.Header.Get("Content-Type"), header.Size, file, meta)
		file.Close()
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		uploaded = append(uploaded, entry)
	}

	if len(uploaded) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded", "errors": errs})
		return
	}

	response := gin.H{
		"message":        fmt.Sprintf("Successfully uploaded %d file(s)", len(uploaded)),
		"uploaded_files": uploaded,
	}
	if len(errs) > 0 {
		response["errors"] = errs
	}
	c.JSON(http.StatusCreated, response)
}

// ListEvidence returns evidence metadata filtered by case_id or fir_id. An
// unscoped listing is not offered; the parent resource is always required.
func (oc *OfficerController) ListEvidence(c *gin.Context) {
	if c.Query("case_id") == "" && c.Query("fir_id") == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either case_id or fir_id is required"})
		return
	}

	query := bson.M{}
	if caseHex := c.Query("case_id"); caseHex != "" {
		caseID, err := primitive.ObjectIDFromHex(caseHex)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid case ID"})
			return
		}
		query["case_id"] = caseID
	}
	if firHex := c.Query("fir_id"); firHex != "" {
		firID, err := primitive.ObjectIDFromHex(firHex)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid FIR ID"})
			return
		}
		query["fir_id"] = firID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := oc.evidence.Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve evidence"})
		return
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode evidence"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(docs),
		"evidence": utils.SanitizeAll(docs, false),
	})
}

// DownloadEvidence streams a stored file back to the requester. Uploaders and
// admins always get access; other officers only for evidence attached to a
// case they are assigned to.
func (oc *OfficerController) DownloadEvidence(c *gin.Context) {
	claims := middlewares.GetClaims(c)

	evidenceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid evidence ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var ev models.Evidence
	if err := oc.evidence.FindOne(ctx, bson.M{"_id": evidenceID}).Decode(&ev); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Evidence not found"})
		return
	}

	if !oc.canAccessEvidence(ctx, claims, &ev) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	data, err := oc.blobs.Get(ctx, ev.FileID)
	if err != nil {
		log.Println("Error reading evidence blob:", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Stored file not found"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ev.OriginalFilename))
	c.Data(http.StatusOK, ev.ContentType, data)
}

// DeleteEvidence removes evidence metadata and its stored file. Only the
// uploading officer (or an admin) may delete.
func (oc *OfficerController) DeleteEvidence(c *gin.Context) {
	claims := middlewares.GetClaims(c)

	evidenceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid evidence ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var ev models.Evidence
	if err := oc.evidence.FindOne(ctx, bson.M{"_id": evidenceID}).Decode(&ev); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Evidence not found"})
		return
	}

	if err := utils.Authorize(claims, utils.ResourceEvidence, utils.ActionDelete, &utils.Target{OfficerID: ev.OfficerID.Hex()}); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if _, err := oc.evidence.DeleteOne(ctx, bson.M{"_id": evidenceID}); err != nil {
		log.Println("Error deleting evidence:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete evidence"})
		return
	}
	if err := oc.blobs.Delete(ctx, ev.FileID); err != nil {
		log.Println("Error deleting evidence blob:", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Evidence deleted successfully"})
}

// canAccessEvidence decides download access. Admins and the uploading officer
// always pass. FIR evidence stays private to its uploader; case evidence is
// shared with the officer assigned to the case.
func (oc *OfficerController) canAccessEvidence(ctx context.Context, claims *utils.Claims, ev *models.Evidence) bool {
	if claims.Role == models.RoleAdmin || ev.OfficerID.Hex() == claims.UserID {
		return true
	}
	if ev.CaseID == nil {
		return false
	}
	var kase models.Case
	if err := oc.cases.FindOne(ctx, bson.M{"_id": *ev.CaseID}).Decode(&kase); err != nil {
		return false
	}
	return kase.AssignedTo != nil && kase.AssignedTo.Hex() == claims.UserID
}
