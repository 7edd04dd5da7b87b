package content

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/community-platform/backend/internal/models"
	"github.com/community-platform/backend/pkg/cache"
	"github.com/community-platform/backend/pkg/pagination"
	"github.com/community-platform/backend/pkg/response"
	"github.com/community-platform/backend/pkg/timeago"
)

// Handler handles the public content endpoints.
type Handler struct {
	repo   *Repository
	cache  *cache.Store
	logger *zap.Logger
}

// NewHandler creates a public content handler.
func NewHandler(repo *Repository, cache *cache.Store, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, cache: cache, logger: logger}
}

// listingPayload is the cached shape of one public listing page.
type listingPayload struct {
	Items []Document `json:"items"`
	Total int64      `json:"total"`
}

// Index handles GET /: redirect to the jobs listing.
func (h *Handler) Index(c *gin.Context) {
	target := "/jobs"
	if flash := c.Query("flash"); flash != "" {
		target += "?flash=" + url.QueryEscape(flash)
	}
	c.Redirect(http.StatusFound, target)
}

// Listing returns a handler for a cached paginated public listing page.
// time_ago is attached after cache retrieval so it tracks the current time.
func (h *Handler) Listing(t models.ContentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := pageParam(c)
		ctx := c.Request.Context()
		key := cache.ListingKey(string(t), page)

		var payload listingPayload
		if !h.cache.Get(ctx, key, &payload) {
			items, total, err := h.repo.List(ctx, t, page, nil, true)
			if err != nil {
				h.logger.Error("public listing", zap.String("type", string(t)), zap.Error(err))
				response.Internal(c, "failed to load "+string(t))
				return
			}
			for i := range items {
				items[i] = PublicView(items[i])
			}
			payload = listingPayload{Items: items, Total: total}
			h.cache.Set(ctx, key, payload)
		}

		attachTimeAgo(payload.Items)
		response.OK(c, gin.H{
			string(t):    payload.Items,
			"pagination": pagination.Paginate(page, payload.Total),
		})
	}
}

// Roadmaps handles GET /roadmaps (auth): all roadmaps, unpaginated.
func (h *Handler) Roadmaps(c *gin.Context) {
	h.allOf(c, models.TypeRoadmaps, nil)
}

// Websites handles GET /websites: all partner websites.
func (h *Handler) Websites(c *gin.Context) {
	h.allOf(c, models.TypeWebsites, nil)
}

// OurProjects handles GET /our-projects: websites flagged as projects.
func (h *Handler) OurProjects(c *gin.Context) {
	h.allOf(c, models.TypeWebsites, Document{"is_project": true})
}

func (h *Handler) allOf(c *gin.Context, t models.ContentType, filter Document) {
	docs, err := h.repo.All(c.Request.Context(), t, filter, true)
	if err != nil {
		h.logger.Error("list all", zap.String("type", string(t)), zap.Error(err))
		response.Internal(c, "failed to load "+string(t))
		return
	}
	for i := range docs {
		docs[i] = PublicView(docs[i])
	}
	response.OK(c, docs)
}

// Detail handles GET /detail/:type/:id (auth; singular type names).
func (h *Handler) Detail(c *gin.Context) {
	t, err := models.ParseDetailType(c.Param("type"))
	if err != nil {
		c.Redirect(http.StatusFound, "/?flash=Invalid+content+type")
		return
	}
	item, err := h.repo.Get(c.Request.Context(), t, c.Param("id"), true)
	if err != nil {
		c.Redirect(http.StatusFound, "/?flash=Content+not+found")
		return
	}

	related, err := h.repo.Related(c.Request.Context(), t, c.Param("id"), item["job_type"])
	if err != nil {
		h.logger.Warn("related content", zap.String("type", string(t)), zap.Error(err))
		related = nil
	}
	for i := range related {
		related[i] = PublicView(related[i])
	}

	item = PublicView(item)
	if posted, ok := PostedTime(item); ok {
		item["time_ago"] = timeago.Since(posted)
	}
	response.OK(c, gin.H{"item": item, "content_type": c.Param("type"), "related": related})
}

// Apply handles POST /apply/:type/:id (auth): returns the official link.
func (h *Handler) Apply(c *gin.Context) {
	t, err := models.ParseDetailType(c.Param("type"))
	if err != nil {
		response.BadRequest(c, "invalid content type")
		return
	}
	item, err := h.repo.GetField(c.Request.Context(), t, c.Param("id"), "official_link")
	if err != nil {
		response.NotFound(c, "content not found")
		return
	}
	link, _ := item["official_link"].(string)
	if link == "" {
		link = "#"
	}
	c.JSON(http.StatusOK, gin.H{"redirect_url": link})
}

// FilterContent handles GET /api/filter/:type.
func (h *Handler) FilterContent(c *gin.Context) {
	t, err := models.ParseContentType(c.Param("type"))
	if err != nil || !t.Searchable() {
		response.BadRequest(c, "invalid content type")
		return
	}
	query := FilterFromQuery(c.Request.URL.Query(), nowUTC())
	page := pageParam(c)

	items, _, err := h.repo.List(c.Request.Context(), t, page, query, true)
	if err != nil {
		h.logger.Error("filter content", zap.String("type", string(t)), zap.Error(err))
		response.Internal(c, "filter failed")
		return
	}
	for i := range items {
		items[i] = PublicView(items[i])
	}
	attachTimeAgo(items)
	c.JSON(http.StatusOK, items)
}

// SearchContent handles GET /api/search.
func (h *Handler) SearchContent(c *gin.Context) {
	results := h.repo.Search(c.Request.Context(), c.Query("q"), h.logger)
	c.JSON(http.StatusOK, results)
}

func attachTimeAgo(items []Document) {
	for _, item := range items {
		if posted, ok := PostedTime(item); ok {
			item["time_ago"] = timeago.Since(posted)
		}
	}
}

func pageParam(c *gin.Context) int {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	return page
}
