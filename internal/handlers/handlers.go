package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/Brownie44l1/leaf-disease-api/internal/advisory"
	"github.com/Brownie44l1/leaf-disease-api/internal/logger"
	"github.com/Brownie44l1/leaf-disease-api/internal/model"
	"github.com/gin-gonic/gin"
)

const (
	Version                = "1.0.0"
	defaultMultipartMemory = 32 << 20
)

type Handler struct {
	registry  *model.Registry
	log       *logger.Logger
	maxUpload int64
}

// NewHandler serves predictions from registry. maxUpload caps the request
// body in bytes; zero disables the cap.
func NewHandler(registry *model.Registry, log *logger.Logger, maxUpload int64) *Handler {
	return &Handler{
		registry:  registry,
		log:       log,
		maxUpload: maxUpload,
	}
}

type ClassificationResponse struct {
	Model      string `json:"model"`
	Type       string `json:"type"`
	Class      string `json:"class"`
	Confidence string `json:"confidence"`
	Suggestion string `json:"suggestion"`
}

type SegmentationResponse struct {
	Model             string `json:"model"`
	Type              string `json:"type"`
	MaskImage         string `json:"mask_image"`
	DiseasePercentage string `json:"disease_percentage"`
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Plant Leaf Disease Detection API",
		"version": Version,
		"endpoints": gin.H{
			"/predict": "POST - Predict disease from leaf image",
			"/models":  "GET - List available models",
			"/health":  "GET - Check API health",
		},
	})
}

func (h *Handler) Health(c *gin.Context) {
	loaded := make(map[string]bool)
	for _, s := range h.registry.List() {
		loaded[s.Name] = s.Loaded
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"models_loaded": loaded,
	})
}

func (h *Handler) Models(c *gin.Context) {
	statuses := h.registry.List()
	names := make([]string, 0, len(statuses))
	status := make(map[string]string, len(statuses))
	for _, s := range statuses {
		names = append(names, s.Name)
		if s.Loaded {
			status[s.Name] = "loaded"
		} else {
			status[s.Name] = "not loaded"
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"available_models": names,
		"model_status":     status,
	})
}

// Predict accepts a multipart form with "file" and "model_name".
func (h *Handler) Predict(c *gin.Context) {
	memory := int64(defaultMultipartMemory)
	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
		memory = h.maxUpload
	}
	if err := c.Request.ParseMultipartForm(memory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abort(c, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Upload exceeds %d bytes", tooLarge.Limit))
			return
		}
		abort(c, http.StatusBadRequest, fmt.Sprintf("Invalid multipart form: %v", err))
		return
	}

	modelName := c.PostForm("model_name")
	kind, ok := model.ParseKind(modelName)
	if !ok {
		names := model.Names()
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"detail":           fmt.Sprintf("Invalid model name. Available models: %s", strings.Join(names, ", ")),
			"available_models": names,
		})
		return
	}

	session, ok := h.registry.Get(kind)
	if !ok {
		abort(c, http.StatusServiceUnavailable,
			fmt.Sprintf("Model %s is not loaded. Please check server logs.", kind))
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		abort(c, http.StatusBadRequest, "No image file provided. Use 'file' as the form field name")
		return
	}

	data, err := readUpload(header)
	if err != nil {
		h.processingError(c, err)
		return
	}

	if !isImage(header.Header.Get("Content-Type"), data) {
		abort(c, http.StatusBadRequest, "File must be an image (JPEG, PNG, etc.)")
		return
	}

	h.log.Info("[%s] %s: %s (%d bytes)", requestID(c), kind, header.Filename, len(data))

	img, err := model.DecodeImage(bytes.NewReader(data))
	if err != nil {
		h.processingError(c, err)
		return
	}

	switch kind.Modality() {
	case model.Classification:
		pred, err := model.Classify(kind, session, img)
		if err != nil {
			h.processingError(c, err)
			return
		}
		h.log.Info("[%s] %s predicted %s (%s)", requestID(c), kind, pred.ClassName, pred.ConfidencePercent())
		c.JSON(http.StatusOK, ClassificationResponse{
			Model:      kind.String(),
			Type:       model.Classification.String(),
			Class:      pred.ClassName,
			Confidence: pred.ConfidencePercent(),
			Suggestion: advisory.Suggestion(pred.ClassName),
		})

	case model.Segmentation:
		seg, err := model.Segment(session, img)
		if err != nil {
			h.processingError(c, err)
			return
		}
		percentage := model.PercentString(seg.DiseasePercentage)
		h.log.Info("[%s] %s affected area %s%%", requestID(c), kind, percentage)
		c.JSON(http.StatusOK, SegmentationResponse{
			Model:             kind.String(),
			Type:              model.Segmentation.String(),
			MaskImage:         seg.MaskBase64,
			DiseasePercentage: percentage,
		})
	}
}

func (h *Handler) processingError(c *gin.Context, err error) {
	h.log.Error("[%s] processing failed: %v", requestID(c), err)
	abort(c, http.StatusInternalServerError, fmt.Sprintf("Error processing image: %v", err))
}

func abort(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return data, nil
}

// isImage trusts the declared part type; undeclared uploads are sniffed.
func isImage(contentType string, data []byte) bool {
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return strings.HasPrefix(strings.ToLower(contentType), "image/")
}
