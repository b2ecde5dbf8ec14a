package http

import (
	"encoding/binary"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/IslamGh2004/sawtlib/internal/entities"
	"github.com/IslamGh2004/sawtlib/internal/storage"
)

const (
	maxAudioUploadBytes = 500 << 20 // 500 MiB
	maxCoverUploadBytes = 10 << 20  // 10 MiB

	// Rough bitrate assumption for duration estimation when the audio
	// container carries no usable header: 256 kbit/s = 32000 bytes/s.
	fallbackBytesPerSecond = 32000
)

// UploadsController handles the upload-book-files function endpoint:
// it stores the audio and cover files, derives the audio duration and
// optionally patches the target book row in one call.
type UploadsController struct {
	store   storage.Store
	books   BookStore
	auditor Auditor
}

func NewUploadsController(store storage.Store, books BookStore, auditor Auditor) *UploadsController {
	return &UploadsController{store: store, books: books, auditor: auditor}
}

type uploadResult struct {
	CoverURL  string `json:"coverUrl,omitempty"`
	CoverPath string `json:"coverPath,omitempty"`
	AudioURL  string `json:"audioUrl,omitempty"`
	AudioPath string `json:"audioPath,omitempty"`
	Duration  int    `json:"duration,omitempty"`
}

// UploadBookFiles accepts multipart fields audioFile and coverFile,
// both optional, plus an optional bookId to patch. At least one file
// must be present.
func (controller *UploadsController) UploadBookFiles(c *gin.Context) {
	audioHeader, audioErr := c.FormFile("audioFile")
	coverHeader, coverErr := c.FormFile("coverFile")
	if audioErr != nil && coverErr != nil {
		respondBadRequest(c, "audioFile or coverFile is required")
		return
	}

	var result uploadResult
	adminID := GetUserID(c)

	if coverHeader != nil {
		if coverHeader.Size > maxCoverUploadBytes {
			respondBadRequest(c, "cover file is too large")
			return
		}
		key := "covers/" + uuid.NewString() + safeExtension(coverHeader.Filename, ".jpg")
		url, err := controller.storeFile(c, coverHeader, key)
		if err != nil {
			controller.auditor.LogAdminAction(adminID, entities.AuditEventUpload, "upload_cover", coverHeader.Filename, 0, err)
			respondInternalError(c, err, "upload cover")
			return
		}
		result.CoverPath = key
		result.CoverURL = url
	}

	if audioHeader != nil {
		if audioHeader.Size > maxAudioUploadBytes {
			respondBadRequest(c, "audio file is too large")
			return
		}
		key := "audio/" + uuid.NewString() + safeExtension(audioHeader.Filename, ".mp3")
		url, err := controller.storeFile(c, audioHeader, key)
		if err != nil {
			controller.auditor.LogAdminAction(adminID, entities.AuditEventUpload, "upload_audio", audioHeader.Filename, 0, err)
			respondInternalError(c, err, "upload audio")
			return
		}
		result.AudioPath = key
		result.AudioURL = url
		result.Duration = audioDurationSeconds(audioHeader)
	}

	// With a bookId the uploaded URLs are written straight onto the book.
	if bookIDStr := c.PostForm("bookId"); bookIDStr != "" {
		bookID, err := parseFormID(bookIDStr)
		if err != nil {
			respondBadRequest(c, "invalid bookId")
			return
		}
		fields := map[string]any{}
		if result.CoverURL != "" {
			fields["cover_url"] = result.CoverURL
		}
		if result.AudioURL != "" {
			fields["audio_url"] = result.AudioURL
			fields["duration_in_seconds"] = result.Duration
		}
		if _, err := controller.books.UpdateBook(bookID, fields); err != nil {
			controller.auditor.LogAdminAction(adminID, entities.AuditEventUpload, "attach_files", "", bookID, err)
			respondInternalError(c, err, "attach files to book")
			return
		}
		controller.auditor.LogAdminAction(adminID, entities.AuditEventUpload, "attach_files", "", bookID, nil)
	}

	controller.auditor.LogAdminAction(adminID, entities.AuditEventUpload, "upload", uploadSummary(audioHeader, coverHeader), 0, nil)
	c.JSON(http.StatusOK, result)
}

func (controller *UploadsController) storeFile(c *gin.Context, header *multipart.FileHeader, key string) (string, error) {
	f, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	contentType := header.Header.Get("Content-Type")
	return controller.store.Put(c.Request.Context(), key, contentType, f, header.Size)
}

// audioDurationSeconds reads the WAV header when the file is RIFF/WAVE
// and falls back to a bitrate estimate for everything else.
func audioDurationSeconds(header *multipart.FileHeader) int {
	f, err := header.Open()
	if err != nil {
		return estimateDuration(header.Size)
	}
	defer f.Close()

	if d, ok := wavDurationSeconds(f, header.Size); ok {
		return d
	}
	return estimateDuration(header.Size)
}

func estimateDuration(sizeBytes int64) int {
	if sizeBytes <= 0 {
		return 0
	}
	return int(sizeBytes / fallbackBytesPerSecond)
}

// wavDurationSeconds parses the canonical 44-byte RIFF/WAVE header and
// derives the duration from the byte rate field.
func wavDurationSeconds(r io.Reader, sizeBytes int64) (int, bool) {
	var header [44]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, false
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return 0, false
	}

	byteRate := binary.LittleEndian.Uint32(header[28:32])
	if byteRate == 0 {
		return 0, false
	}

	dataBytes := sizeBytes - int64(len(header))
	if dataBytes <= 0 {
		return 0, false
	}
	return int(dataBytes / int64(byteRate)), true
}

func safeExtension(filename, fallback string) string {
	ext := strings.ToLower(path.Ext(path.Base(filename)))
	if ext == "" || len(ext) > 8 {
		return fallback
	}
	return ext
}

func parseFormID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func uploadSummary(audio, cover *multipart.FileHeader) string {
	parts := []string{}
	if audio != nil {
		parts = append(parts, "audio:"+audio.Filename)
	}
	if cover != nil {
		parts = append(parts, "cover:"+cover.Filename)
	}
	return strings.Join(parts, " ")
}
