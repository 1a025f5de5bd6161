package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/appsembler/figures-backend/internal/logger"
	"github.com/appsembler/figures-backend/internal/repos"
	"github.com/appsembler/figures-backend/internal/types"
)

// UserIndexHandler lists users with abbreviated details.
type UserIndexHandler struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserIndexHandler(log *logger.Logger, userRepo repos.UserRepo) *UserIndexHandler {
	return &UserIndexHandler{
		log:      log.With("handler", "UserIndexHandler"),
		userRepo: userRepo,
	}
}

type userIndexItem struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Fullname string    `json:"fullname"`
}

var userIndexFilters = []FilterField{
	{Param: "username", Column: "username", Op: FilterIContains},
	{Param: "is_active", Column: "is_active", Op: FilterBool},
	{Param: "joined_after", Column: "date_joined", Op: FilterDateFrom},
	{Param: "joined_before", Column: "date_joined", Op: FilterDateTo},
}

// Profile-backed filters need a join onto the profile table.
var userProfileFilters = []FilterField{
	{Param: "fullname", Column: "user_profile.name", Op: FilterIContains},
	{Param: "country", Column: "user_profile.country", Op: FilterExact},
	{Param: "gender", Column: "user_profile.gender", Op: FilterExact},
	{Param: "level_of_education", Column: "user_profile.level_of_education", Op: FilterExact},
	{Param: "year_of_birth_min", Column: "user_profile.year_of_birth", Op: FilterIntMin},
	{Param: "year_of_birth_max", Column: "user_profile.year_of_birth", Op: FilterIntMax},
}

func (h *UserIndexHandler) List(c *gin.Context) {
	scopes, err := FilterScopes(c, userIndexFilters)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_filter", err)
		return
	}
	profileScopes, err := FilterScopes(c, userProfileFilters)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_filter", err)
		return
	}
	if len(profileScopes) > 0 {
		join := func(db *gorm.DB) *gorm.DB {
			return db.Joins(`JOIN user_profile ON user_profile.user_id = "user".id`)
		}
		scopes = append(append(scopes, join), profileScopes...)
	}

	users, err := h.userRepo.List(c.Request.Context(), nil, scopes...)
	if err != nil {
		h.log.Error("List users failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_users_failed", err)
		return
	}

	items := make([]userIndexItem, 0, len(users))
	for _, user := range users {
		items = append(items, userIndexItemFrom(user))
	}
	RespondOK(c, items)
}

func userIndexItemFrom(user *types.User) userIndexItem {
	item := userIndexItem{
		ID:       user.ID,
		Username: user.Username,
	}
	if user.Profile != nil {
		item.Fullname = user.Profile.Name
	}
	return item
}
