package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/intraportal/internal/service"
)

type albumPayload struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	CoverImageURL string `json:"cover_image_url"`
}

func (p albumPayload) toInput() service.AlbumInput {
	return service.AlbumInput{
		Title:         p.Title,
		Description:   p.Description,
		CoverImageURL: p.CoverImageURL,
	}
}

type albumUpdatePayload struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	CoverImageURL *string `json:"cover_image_url"`
}

func (p albumUpdatePayload) toUpdate() service.AlbumUpdate {
	return service.AlbumUpdate{
		Title:         p.Title,
		Description:   p.Description,
		CoverImageURL: p.CoverImageURL,
	}
}

type photoPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	ImageWidth  int    `json:"image_width"`
	ImageHeight int    `json:"image_height"`
	Category    string `json:"category"`
	AlbumID     *uint  `json:"album_id"`
}

func (p photoPayload) toInput() service.PhotoInput {
	return service.PhotoInput{
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		ImageWidth:  p.ImageWidth,
		ImageHeight: p.ImageHeight,
		Category:    p.Category,
		AlbumID:     p.AlbumID,
	}
}

type photoUpdatePayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	ImageWidth  *int    `json:"image_width"`
	ImageHeight *int    `json:"image_height"`
	Category    *string `json:"category"`
	AlbumID     *uint   `json:"album_id"`
}

func (p photoUpdatePayload) toUpdate() service.PhotoUpdate {
	return service.PhotoUpdate{
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		ImageWidth:  p.ImageWidth,
		ImageHeight: p.ImageHeight,
		Category:    p.Category,
		AlbumID:     p.AlbumID,
	}
}

// ListAlbums returns albums with their photo counts.
func (a *API) ListAlbums(c *gin.Context) {
	albums, err := a.albums.List(queryInt(c, "limit", 0))
	if err != nil {
		a.respondServiceError(c, err, "failed to load albums")
		return
	}
	c.JSON(http.StatusOK, albums)
}

func (a *API) GetAlbum(c *gin.Context) {
	id, ok := idParam(c, "invalid album id")
	if !ok {
		return
	}
	album, err := a.albums.Get(id)
	if err != nil {
		a.respondServiceError(c, err, "failed to load album")
		return
	}
	c.JSON(http.StatusOK, album)
}

// ListAlbumPhotos returns the photos of one album.
func (a *API) ListAlbumPhotos(c *gin.Context) {
	id, ok := idParam(c, "invalid album id")
	if !ok {
		return
	}
	if _, err := a.albums.Get(id); err != nil {
		a.respondServiceError(c, err, "failed to load album")
		return
	}
	photos, err := a.photos.List(service.PhotoFilter{AlbumID: &id, Limit: queryInt(c, "limit", 0)})
	if err != nil {
		a.respondServiceError(c, err, "failed to load photos")
		return
	}
	c.JSON(http.StatusOK, photos)
}

func (a *API) CreateAlbum(c *gin.Context) {
	var payload albumPayload
	if !bindJSON(c, &payload, "invalid album payload") {
		return
	}
	album, err := a.albums.Create(payload.toInput())
	if err != nil {
		a.respondServiceError(c, err, "failed to create album")
		return
	}
	c.JSON(http.StatusCreated, album)
}

func (a *API) UpdateAlbum(c *gin.Context) {
	id, ok := idParam(c, "invalid album id")
	if !ok {
		return
	}
	var payload albumUpdatePayload
	if !bindJSON(c, &payload, "invalid album payload") {
		return
	}
	album, err := a.albums.Update(id, payload.toUpdate())
	if err != nil {
		a.respondServiceError(c, err, "failed to update album")
		return
	}
	c.JSON(http.StatusOK, album)
}

// DeleteAlbum removes an album. Its photos stay in the gallery without an album.
func (a *API) DeleteAlbum(c *gin.Context) {
	id, ok := idParam(c, "invalid album id")
	if !ok {
		return
	}
	if err := a.albums.Delete(id); err != nil {
		a.respondServiceError(c, err, "failed to delete album")
		return
	}
	respondMessage(c, "Album deleted successfully")
}

// ListPhotos returns gallery photos. Supports ?album_id=, ?category= and ?limit=.
func (a *API) ListPhotos(c *gin.Context) {
	photos, err := a.photos.List(service.PhotoFilter{
		AlbumID:  queryOptionalUint(c, "album_id"),
		Category: c.Query("category"),
		Limit:    queryInt(c, "limit", 0),
	})
	if err != nil {
		a.respondServiceError(c, err, "failed to load photos")
		return
	}
	c.JSON(http.StatusOK, photos)
}

func (a *API) GetPhoto(c *gin.Context) {
	id, ok := idParam(c, "invalid photo id")
	if !ok {
		return
	}
	photo, err := a.photos.Get(id)
	if err != nil {
		a.respondServiceError(c, err, "failed to load photo")
		return
	}
	c.JSON(http.StatusOK, photo)
}

func (a *API) CreatePhoto(c *gin.Context) {
	var payload photoPayload
	if !bindJSON(c, &payload, "invalid photo payload") {
		return
	}
	photo, err := a.photos.Create(payload.toInput())
	if err != nil {
		a.respondServiceError(c, err, "failed to create photo")
		return
	}
	c.JSON(http.StatusCreated, photo)
}

func (a *API) UpdatePhoto(c *gin.Context) {
	id, ok := idParam(c, "invalid photo id")
	if !ok {
		return
	}
	var payload photoUpdatePayload
	if !bindJSON(c, &payload, "invalid photo payload") {
		return
	}
	photo, err := a.photos.Update(id, payload.toUpdate())
	if err != nil {
		a.respondServiceError(c, err, "failed to update photo")
		return
	}
	c.JSON(http.StatusOK, photo)
}

func (a *API) DeletePhoto(c *gin.Context) {
	id, ok := idParam(c, "invalid photo id")
	if !ok {
		return
	}
	if err := a.photos.Delete(id); err != nil {
		a.respondServiceError(c, err, "failed to delete photo")
		return
	}
	respondMessage(c, "Photo deleted successfully")
}
