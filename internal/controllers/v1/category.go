package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerlight/backend/internal/hierarchy"
	"github.com/ledgerlight/backend/internal/httputil"
	"github.com/ledgerlight/backend/internal/models"
	"github.com/ledgerlight/backend/internal/taxonomy"
)

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCategoryList)
		r.GET("", GetCategories)
	}

	// Taxonomy reload
	{
		r.OPTIONS("/reload", httputil.OptionsPost)
		r.POST("/reload", ReloadCategories)
	}

	// Hierarchy queries by name
	{
		r.OPTIONS("/:name/ancestors", httputil.OptionsGet)
		r.GET("/:name/ancestors", GetCategoryAncestors)
		r.OPTIONS("/:name/descendants", httputil.OptionsGet)
		r.GET("/:name/descendants", GetCategoryDescendants)
	}
}

// Category is the representation of a Category in API v1.
type Category struct {
	Name           string  `json:"name" example:"Restaurants"`             // Unique name of the category
	Color          string  `json:"color" example:"#D08770"`                // Resolved color, inherited from the parent if the source did not set one
	Parent         *string `json:"parent" example:"Food & Dining"`         // Name of the parent category, null for roots
	IsSubscription bool    `json:"isSubscription" example:"false"`         // Resolved subscription flag
	Level          int     `json:"level" example:"1" minimum:"0" maximum:"3"` // Depth in the taxonomy, roots are level 0
}

func newCategory(categories []models.Category, model models.Category) Category {
	return Category{
		Name:           model.Name,
		Color:          model.Color,
		Parent:         model.Parent,
		IsSubscription: model.IsSubscription,
		Level:          hierarchy.Level(categories, model.Name),
	}
}

type CategoryListResponse struct {
	Data  []Category `json:"data"`                                                    // List of categories in taxonomy pre-order
	Error *string    `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
}

type CategoryChainResponse struct {
	Data  []string `json:"data"`  // Names from the root ancestor down to the requested category
	Error *string  `json:"error"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Router			/v1/categories [options]
func OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get categories
// @Description	Returns the current taxonomy as a flat list in pre-order: every category is immediately followed by its subtree
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryListResponse
// @Failure		500	{object}	CategoryListResponse
// @Router			/v1/categories [get]
func GetCategories(c *gin.Context) {
	categories, err := newStore().GetCategories()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryListResponse{Error: &s})
		return
	}

	data := make([]Category, 0, len(categories))
	for _, category := range categories {
		data = append(data, newCategory(categories, category))
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: data})
}

// @Summary		Reload taxonomy
// @Description	Re-reads the taxonomy source and replaces the stored categories. A malformed or unreachable source falls back to the built-in default taxonomy.
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryListResponse
// @Failure		500	{object}	CategoryListResponse
// @Router			/v1/categories/reload [post]
func ReloadCategories(c *gin.Context) {
	categories := taxonomy.Load(options.Config.Taxonomy.Source)

	err := newStore().SaveCategories(categories)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryListResponse{Error: &s})
		return
	}

	data := make([]Category, 0, len(categories))
	for _, category := range categories {
		data = append(data, newCategory(categories, category))
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: data})
}

// @Summary		Get ancestor chain
// @Description	Returns the names from the root ancestor down to the category, inclusive. Unknown categories are returned as their own singleton chain.
// @Tags			Categories
// @Produce		json
// @Success		200		{object}	CategoryChainResponse
// @Failure		500		{object}	CategoryChainResponse
// @Param			name	path		string	true	"Name of the category"
// @Router			/v1/categories/{name}/ancestors [get]
func GetCategoryAncestors(c *gin.Context) {
	var uri URIName
	if err := c.ShouldBindUri(&uri); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, CategoryChainResponse{Error: &s})
		return
	}

	categories, err := newStore().GetCategories()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryChainResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, CategoryChainResponse{
		Data: hierarchy.AncestorChain(categories, uri.Name),
	})
}

// @Summary		Get descendants
// @Description	Returns all categories below the given one, pre-ordered per child. Unknown categories have no descendants.
// @Tags			Categories
// @Produce		json
// @Success		200		{object}	CategoryListResponse
// @Failure		500		{object}	CategoryListResponse
// @Param			name	path		string	true	"Name of the category"
// @Router			/v1/categories/{name}/descendants [get]
func GetCategoryDescendants(c *gin.Context) {
	var uri URIName
	if err := c.ShouldBindUri(&uri); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, CategoryListResponse{Error: &s})
		return
	}

	categories, err := newStore().GetCategories()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryListResponse{Error: &s})
		return
	}

	descendants := hierarchy.Descendants(categories, uri.Name)

	data := make([]Category, 0, len(descendants))
	for _, category := range descendants {
		data = append(data, newCategory(categories, category))
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: data})
}
