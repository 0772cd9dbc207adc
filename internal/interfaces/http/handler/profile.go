package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	profileapp "github.com/shopsight/backend/internal/application/profile"
)

// ProfileHandler handles user profile API endpoints
type ProfileHandler struct {
	BaseHandler
	profileService *profileapp.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *profileapp.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// AvatarUploadRequest represents a request for a presigned avatar upload URL
// @Description Request body for requesting an avatar upload URL
type AvatarUploadRequest struct {
	ContentType string `json:"content_type" binding:"required,oneof=image/jpeg image/png image/webp" example:"image/png"`
}

// AvatarConfirmRequest represents a request to confirm an uploaded avatar
// @Description Request body for confirming an avatar upload
type AvatarConfirmRequest struct {
	Key string `json:"key" binding:"required,max=512"`
}

// Create godoc
// @Summary      Create the caller's profile
// @Description  Create a profile for the authenticated user. Each user may have at most one profile.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        request body profileapp.CreateProfileRequest true "Profile creation request"
// @Success      201 {object} dto.Response{data=profileapp.ProfileResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /profiles [post]
func (h *ProfileHandler) Create(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req profileapp.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profileService.Create(c.Request.Context(), caller, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, profile)
}

// GetOwn godoc
// @Summary      Get the caller's profile
// @Description  Retrieve the authenticated user's own profile
// @Tags         profiles
// @Produce      json
// @Success      200 {object} dto.Response{data=profileapp.ProfileResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /profiles/me [get]
func (h *ProfileHandler) GetOwn(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	profile, err := h.profileService.GetOwn(c.Request.Context(), caller)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, profile)
}

// GetByID godoc
// @Summary      Get profile by ID
// @Description  Retrieve a user profile by its ID
// @Tags         profiles
// @Produce      json
// @Param        id path string true "Profile ID" format(uuid)
// @Success      200 {object} dto.Response{data=profileapp.ProfileResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /profiles/{id} [get]
func (h *ProfileHandler) GetByID(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid profile ID format")
		return
	}

	profile, err := h.profileService.GetByID(c.Request.Context(), profileID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, profile)
}

// List godoc
// @Summary      List profiles
// @Description  Retrieve a paginated list of user profiles. Admin only.
// @Tags         profiles
// @Produce      json
// @Param        search query string false "Search term (display name, email)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]profileapp.ProfileResponse,meta=dto.Meta}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /profiles [get]
func (h *ProfileHandler) List(c *gin.Context) {
	var filter profileapp.ProfileListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	result, err := h.profileService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
// @Summary      Update the caller's profile
// @Description  Update the authenticated user's display name or bio
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        request body profileapp.UpdateProfileRequest true "Profile update request"
// @Success      200 {object} dto.Response{data=profileapp.ProfileResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /profiles/me [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req profileapp.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), caller, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, profile)
}

// Delete godoc
// @Summary      Delete a profile
// @Description  Permanently delete a profile. Only the owner or an admin may delete.
// @Tags         profiles
// @Produce      json
// @Param        id path string true "Profile ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /profiles/{id} [delete]
func (h *ProfileHandler) Delete(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid profile ID format")
		return
	}

	if err := h.profileService.Delete(c.Request.Context(), caller, profileID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RequestAvatarUpload godoc
// @Summary      Request an avatar upload URL
// @Description  Issue a presigned URL the client can upload the avatar image to
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        request body AvatarUploadRequest true "Upload request"
// @Success      200 {object} dto.Response{data=profileapp.AvatarUploadResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /profiles/me/avatar/upload [post]
func (h *ProfileHandler) RequestAvatarUpload(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	upload, err := h.profileService.RequestAvatarUpload(c.Request.Context(), caller, req.ContentType)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, upload)
}

// ConfirmAvatarUpload godoc
// @Summary      Confirm an avatar upload
// @Description  Record a previously uploaded object as the caller's avatar
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        request body AvatarConfirmRequest true "Confirm request"
// @Success      200 {object} dto.Response{data=profileapp.ProfileResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /profiles/me/avatar/confirm [post]
func (h *ProfileHandler) ConfirmAvatarUpload(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AvatarConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profileService.ConfirmAvatarUpload(c.Request.Context(), caller, req.Key)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, profile)
}
