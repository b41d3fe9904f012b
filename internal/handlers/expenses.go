package handlers

import (
	"fmt"
	"mime"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/splitmate/backend/internal/middleware"
	"github.com/splitmate/backend/internal/models"
	"github.com/splitmate/backend/internal/split"
	"github.com/splitmate/backend/internal/storage"
	"github.com/splitmate/backend/pkg/logger"
	"github.com/splitmate/backend/pkg/utils"
)

const receiptURLExpiry = 15 * time.Minute

type ExpensesHandler struct {
	DB      *gorm.DB
	Storage *storage.MinIOClient
}

func NewExpensesHandler(db *gorm.DB, storageClient *storage.MinIOClient) *ExpensesHandler {
	return &ExpensesHandler{DB: db, Storage: storageClient}
}

// Create records a new expense from a multipart form: groupId,
// description, amount, paidBy, repeated splitBetween[] fields and an
// optional image file. The payer is always removed from splitBetween
// before the record is stored. When a receipt image is attached it is
// uploaded before the insert; a failed insert deletes the uploaded object
// so an expense is never half-persisted.
func (h *ExpensesHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "multipart form data is required")
	}

	groupIDRaw := strings.TrimSpace(c.FormValue("groupId"))
	description := strings.TrimSpace(c.FormValue("description"))
	amountRaw := strings.TrimSpace(c.FormValue("amount"))
	paidBy := strings.TrimSpace(c.FormValue("paidBy"))

	if groupIDRaw == "" {
		return utils.Error(c, fiber.StatusBadRequest, "groupId is required")
	}
	if description == "" {
		return utils.Error(c, fiber.StatusBadRequest, "description is required")
	}
	if amountRaw == "" {
		return utils.Error(c, fiber.StatusBadRequest, "amount is required")
	}
	if paidBy == "" {
		return utils.Error(c, fiber.StatusBadRequest, "paidBy is required")
	}

	amount, err := strconv.ParseFloat(amountRaw, 64)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "amount must be a number")
	}
	if amount < 0 {
		return utils.Error(c, fiber.StatusBadRequest, "amount cannot be negative")
	}

	splitBetween := form.Value["splitBetween[]"]
	if len(splitBetween) == 0 {
		splitBetween = form.Value["splitBetween"]
	}
	if len(splitBetween) == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "splitBetween is required")
	}

	groupID, err := parseUUID(groupIDRaw)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid groupId")
	}
	if _, err := loadOwnedGroup(h.DB, groupID, currentUser.ID); err != nil {
		return respondGroupAccessError(c, err)
	}

	// The payer never owes themselves, no matter what the caller sent.
	participants := split.ExcludePayer(paidBy, splitBetween)
	if len(participants) == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "splitBetween must include someone other than the payer")
	}

	var receiptRef *string
	if fileHeader, err := c.FormFile("image"); err == nil {
		if h.Storage == nil {
			return utils.Error(c, fiber.StatusInternalServerError, "receipt storage unavailable")
		}

		stream, err := fileHeader.Open()
		if err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "failed opening uploaded image")
		}
		defer stream.Close()

		filename := filepath.Base(strings.TrimSpace(fileHeader.Filename))
		contentType := fileHeader.Header.Get("Content-Type")
		if contentType == "" {
			contentType = mime.TypeByExtension(filepath.Ext(filename))
		}
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		objectName := fmt.Sprintf("%s/%s/%s", groupID.String(), uuid.New().String(), filename)
		if err := h.Storage.Upload(c.Context(), objectName, stream, fileHeader.Size, contentType); err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "failed uploading receipt")
		}
		receiptRef = &objectName
	}

	expense := models.Expense{
		GroupID:      groupID,
		Description:  description,
		Amount:       amount,
		PaidBy:       paidBy,
		SplitBetween: participants,
		ReceiptRef:   receiptRef,
	}
	if err := h.DB.Create(&expense).Error; err != nil {
		if receiptRef != nil {
			_ = h.Storage.Delete(c.Context(), *receiptRef)
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed creating expense")
	}

	logger.InfoWithUser(currentUser.ID.String(), "expense_created", map[string]interface{}{
		"expense_id":  expense.ID.String(),
		"group_id":    groupID.String(),
		"amount":      amount,
		"paid_by":     paidBy,
		"split_count": len(participants),
		"has_receipt": receiptRef != nil,
	})

	return utils.Success(c, fiber.StatusCreated, expense)
}

type expenseWithBreakdown struct {
	models.Expense
	Breakdown []split.BreakdownRow `json:"breakdown"`
}

// List returns a group's expenses newest first, narrowed by the optional
// paidBy (exact) and desc (case-insensitive substring) query parameters.
// No matches is an empty array, not an error.
func (h *ExpensesHandler) List(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	groupID, err := parseUUID(c.Params("groupId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}
	if _, err := loadOwnedGroup(h.DB, groupID, currentUser.ID); err != nil {
		return respondGroupAccessError(c, err)
	}

	var expenses []models.Expense
	if err := h.DB.
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Find(&expenses).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing expenses")
	}

	filter := split.Filter{
		PaidBy:      c.Query("paidBy"),
		Description: c.Query("desc"),
	}

	filtered := filter.Apply(expenses)
	result := make([]expenseWithBreakdown, 0, len(filtered))
	for _, expense := range filtered {
		rows, err := split.Breakdown(expense.PaidBy, expense.Amount, expense.SplitBetween)
		if err != nil {
			// Only possible for rows created outside the API.
			rows = []split.BreakdownRow{}
		}
		result = append(result, expenseWithBreakdown{Expense: expense, Breakdown: rows})
	}

	return utils.Success(c, fiber.StatusOK, result)
}

// ReceiptURL returns a short-lived presigned download URL for an
// expense's stored receipt image.
func (h *ExpensesHandler) ReceiptURL(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	expenseID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid expense id")
	}

	var expense models.Expense
	if err := h.DB.First(&expense, "id = ?", expenseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "expense not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading expense")
	}

	if _, err := loadOwnedGroup(h.DB, expense.GroupID, currentUser.ID); err != nil {
		return respondGroupAccessError(c, err)
	}

	if expense.ReceiptRef == nil {
		return utils.Error(c, fiber.StatusNotFound, "expense has no receipt")
	}
	if h.Storage == nil {
		return utils.Error(c, fiber.StatusInternalServerError, "receipt storage unavailable")
	}

	url, err := h.Storage.PresignedGetURL(c.Context(), *expense.ReceiptRef, receiptURLExpiry)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed generating receipt url")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"url": url})
}
