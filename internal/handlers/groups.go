package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/splitmate/backend/internal/middleware"
	"github.com/splitmate/backend/internal/models"
	"github.com/splitmate/backend/pkg/logger"
	"github.com/splitmate/backend/pkg/utils"
)

type GroupsHandler struct {
	DB *gorm.DB
}

func NewGroupsHandler(db *gorm.DB) *GroupsHandler {
	return &GroupsHandler{DB: db}
}

type createGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

func (h *GroupsHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req createGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return utils.Error(c, fiber.StatusBadRequest, "name is required")
	}

	// Blank member names are dropped; duplicates are kept as supplied.
	members := make([]string, 0, len(req.Members))
	for _, m := range req.Members {
		if trimmed := strings.TrimSpace(m); trimmed != "" {
			members = append(members, trimmed)
		}
	}
	if len(members) == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "members is required")
	}

	group := models.Group{
		Name:        req.Name,
		Members:     members,
		CreatedByID: currentUser.ID,
	}
	if err := h.DB.Create(&group).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed creating group")
	}

	logger.InfoWithUser(currentUser.ID.String(), "group_created", map[string]interface{}{
		"group_id":     group.ID.String(),
		"group_name":   group.Name,
		"member_count": len(group.Members),
	})

	return utils.Success(c, fiber.StatusCreated, group)
}

func (h *GroupsHandler) List(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	groups := []models.Group{}
	if err := h.DB.
		Where("created_by_id = ?", currentUser.ID).
		Order("created_at DESC").
		Find(&groups).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing groups")
	}

	return utils.Success(c, fiber.StatusOK, groups)
}

func (h *GroupsHandler) Get(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	groupID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}

	group, err := loadOwnedGroup(h.DB, groupID, currentUser.ID)
	if err != nil {
		return respondGroupAccessError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, group)
}

// errGroupAccessDenied marks a group that exists but belongs to someone else.
var errGroupAccessDenied = errors.New("group access denied")

// loadOwnedGroup fetches a group and enforces that userID owns it. Every
// group and expense operation goes through this check.
func loadOwnedGroup(db *gorm.DB, groupID, userID uuid.UUID) (*models.Group, error) {
	var group models.Group
	if err := db.First(&group, "id = ?", groupID).Error; err != nil {
		return nil, err
	}
	if group.CreatedByID != userID {
		return nil, errGroupAccessDenied
	}
	return &group, nil
}

func respondGroupAccessError(c *fiber.Ctx, err error) error {
	switch err {
	case gorm.ErrRecordNotFound:
		return utils.Error(c, fiber.StatusNotFound, "group not found")
	case errGroupAccessDenied:
		return utils.Error(c, fiber.StatusForbidden, "group access denied")
	default:
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading group")
	}
}
