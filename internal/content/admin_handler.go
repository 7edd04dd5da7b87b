package content

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/community-platform/backend/internal/ads"
	"github.com/community-platform/backend/internal/auth"
	"github.com/community-platform/backend/internal/middleware"
	"github.com/community-platform/backend/internal/models"
	"github.com/community-platform/backend/pkg/cache"
	"github.com/community-platform/backend/pkg/pagination"
	"github.com/community-platform/backend/pkg/response"
	"github.com/community-platform/backend/pkg/storage"
)

const statsCacheKey = "admin:stats"

// AdminHandler handles the admin content management endpoints.
type AdminHandler struct {
	repo      *Repository
	adsRepo   *ads.Repository
	users     *auth.Repository
	uploader  *storage.Uploader
	cache     *cache.Store
	logger    *zap.Logger
	maxUpload int64
	statsTTL  time.Duration
}

// NewAdminHandler creates the admin handler.
func NewAdminHandler(repo *Repository, adsRepo *ads.Repository, users *auth.Repository, uploader *storage.Uploader, cache *cache.Store, maxUpload int64, statsTTL time.Duration, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		repo:      repo,
		adsRepo:   adsRepo,
		users:     users,
		uploader:  uploader,
		cache:     cache,
		logger:    logger,
		maxUpload: maxUpload,
		statsTTL:  statsTTL,
	}
}

// Dashboard handles GET /admin/dashboard: per-collection counts, briefly cached.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var stats map[string]int64
	if h.cache.Get(ctx, statsCacheKey, &stats) {
		response.OK(c, stats)
		return
	}

	stats = make(map[string]int64)
	if n, err := h.users.Count(ctx); err == nil {
		stats["total_users"] = n
	}
	for _, t := range models.AllContentTypes() {
		if n, err := h.repo.Count(ctx, t); err == nil {
			stats["total_"+string(t)] = n
		}
	}
	if n, err := h.adsRepo.CountActive(ctx); err == nil {
		stats["active_ads"] = n
	}
	if n, err := h.adsRepo.CountClicks(ctx); err == nil {
		stats["total_ad_clicks"] = n
	}

	h.cache.SetTTL(ctx, statsCacheKey, stats, h.statsTTL)
	response.OK(c, stats)
}

// ContentList handles GET /admin/content/:type: paginated raw documents.
func (h *AdminHandler) ContentList(c *gin.Context) {
	t, err := models.ParseContentType(c.Param("type"))
	if err != nil {
		h.redirectFlash(c, "/admin/dashboard", "Invalid content type")
		return
	}
	page := pageParam(c)
	items, total, err := h.repo.List(c.Request.Context(), t, page, nil, false)
	if err != nil {
		h.logger.Error("admin content list", zap.String("type", string(t)), zap.Error(err))
		response.Internal(c, "failed to list content")
		return
	}
	for i := range items {
		items[i] = AdminView(items[i])
	}
	response.OK(c, gin.H{
		"content":      items,
		"content_type": t,
		"pagination":   pagination.Paginate(page, total),
	})
}

// AddContent handles POST /admin/add/:type.
func (h *AdminHandler) AddContent(c *gin.Context) {
	t, err := models.ParseContentType(c.Param("type"))
	if err != nil {
		response.BadRequest(c, "invalid content type")
		return
	}
	form, err := h.formValues(c)
	if err != nil {
		response.BadRequest(c, "invalid form: "+err.Error())
		return
	}

	doc := DocumentFromForm(form)
	if imageURL, ok := h.uploadImage(c); ok {
		doc["image"] = imageURL
	}
	doc["posted_at"] = time.Now().UTC()
	doc["admin_id"] = middleware.UserID(c)

	id, err := h.repo.Create(c.Request.Context(), t, doc)
	if err != nil {
		h.logger.Error("add content", zap.String("type", string(t)), zap.Error(err))
		response.Internal(c, "failed to add content")
		return
	}

	if PromoteRequested(form) {
		if err := h.adsRepo.PromoteOnCreate(c.Request.Context(), t, id, doc, middleware.UserID(c)); err != nil {
			h.logger.Error("promote content as ad", zap.String("id", id.Hex()), zap.Error(err))
		}
	}

	h.cache.Clear(c.Request.Context())
	h.redirectFlash(c, "/admin/content/"+string(t), string(t)+" added successfully!")
}

// EditContentPage handles GET /admin/edit/:type/:id: the raw document plus a
// has_ad flag for promotable types.
func (h *AdminHandler) EditContentPage(c *gin.Context) {
	t, err := models.ParseContentType(c.Param("type"))
	if err != nil {
		h.redirectFlash(c, "/admin/dashboard", "Invalid content type")
		return
	}
	item, err := h.repo.Get(c.Request.Context(), t, c.Param("id"), false)
	if err != nil {
		h.redirectFlash(c, "/admin/content/"+string(t), "Content not found")
		return
	}

	hasAd := false
	if t.Promotable() {
		if oid, err := bson.ObjectIDFromHex(c.Param("id")); err == nil {
			hasAd, _ = h.adsRepo.ExistsForContent(c.Request.Context(), oid)
		}
	}
	item = AdminView(item)
	item["has_ad"] = hasAd
	response.OK(c, gin.H{"item": item, "content_type": t})
}

// EditContent handles POST /admin/edit/:type/:id.
func (h *AdminHandler) EditContent(c *gin.Context) {
	t, err := models.ParseContentType(c.Param("type"))
	if err != nil {
		h.redirectFlash(c, "/admin/dashboard", "Invalid content type")
		return
	}
	form, err := h.formValues(c)
	if err != nil {
		response.BadRequest(c, "invalid form: "+err.Error())
		return
	}

	doc := DocumentFromForm(form)
	if imageURL, ok := h.uploadImage(c); ok {
		doc["image"] = imageURL
	}
	doc["updated_at"] = time.Now().UTC()

	if err := h.repo.Update(c.Request.Context(), t, c.Param("id"), doc); err != nil {
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrInvalidID) {
			h.redirectFlash(c, "/admin/content/"+string(t), "Content not found")
			return
		}
		h.logger.Error("edit content", zap.String("type", string(t)), zap.Error(err))
		response.Internal(c, "failed to update content")
		return
	}

	flash := string(t) + " updated successfully!"
	if t.Promotable() {
		oid, _ := bson.ObjectIDFromHex(c.Param("id"))
		note, err := h.adsRepo.SyncOnEdit(c.Request.Context(), t, oid, doc, middleware.UserID(c), PromoteRequested(form))
		if err != nil {
			h.logger.Error("sync promoted ad", zap.String("id", c.Param("id")), zap.Error(err))
		} else if note != "" {
			flash = string(t) + " updated (" + note + ")!"
		}
	}

	h.cache.Clear(c.Request.Context())
	h.redirectFlash(c, "/admin/content/"+string(t), flash)
}

// DeleteContent handles POST /admin/delete/:type/:id. Deleting content always
// cascades to any ad referencing it.
func (h *AdminHandler) DeleteContent(c *gin.Context) {
	t, err := models.ParseContentType(c.Param("type"))
	if err != nil {
		response.BadRequest(c, "invalid content type")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), t, c.Param("id")); err != nil {
		if errors.Is(err, models.ErrInvalidID) {
			response.BadRequest(c, "invalid id")
			return
		}
		h.logger.Error("delete content", zap.String("type", string(t)), zap.Error(err))
		response.Internal(c, "failed to delete content")
		return
	}
	if oid, err := bson.ObjectIDFromHex(c.Param("id")); err == nil {
		if _, err := h.adsRepo.DeleteByContent(c.Request.Context(), oid); err != nil {
			h.logger.Error("cascade ad delete", zap.String("id", c.Param("id")), zap.Error(err))
		}
	}

	h.cache.Clear(c.Request.Context())
	h.redirectFlash(c, "/admin/content/"+string(t), string(t)+" deleted successfully!")
}

// formValues collects submitted fields from multipart or urlencoded bodies.
func (h *AdminHandler) formValues(c *gin.Context) (url.Values, error) {
	if form, err := c.MultipartForm(); err == nil {
		return url.Values(form.Value), nil
	}
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	return c.Request.PostForm, nil
}

// uploadImage sends a supplied image file to the hosted image service.
// Upload failure leaves the image unset without failing the operation.
func (h *AdminHandler) uploadImage(c *gin.Context) (string, bool) {
	file, err := c.FormFile("image")
	if err != nil || file.Filename == "" {
		return "", false
	}
	if h.uploader == nil {
		h.logger.Warn("image upload skipped, uploader not configured")
		return "", false
	}
	if file.Size > h.maxUpload {
		h.logger.Warn("image exceeds upload limit", zap.Int64("size", file.Size))
		return "", false
	}
	src, err := file.Open()
	if err != nil {
		h.logger.Warn("open uploaded image", zap.Error(err))
		return "", false
	}
	defer src.Close()

	imageURL, err := h.uploader.Upload(c.Request.Context(), src)
	if err != nil {
		h.logger.Warn("image upload failed", zap.Error(err))
		return "", false
	}
	return imageURL, true
}

func (h *AdminHandler) redirectFlash(c *gin.Context, path, flash string) {
	c.Redirect(http.StatusFound, path+"?flash="+url.QueryEscape(flash))
}
