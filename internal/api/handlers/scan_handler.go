package handlers

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"FreshFocus-Backend/domain"
	"FreshFocus-Backend/internal/api/presenters"
	"FreshFocus-Backend/pkg/scan"
)

type (
	ScanHandler interface {
		AnalyzeImage(c *fiber.Ctx) error
		GetSession(c *fiber.Ctx) error
		EditItem(c *fiber.Ctx) error
		SaveItems(c *fiber.Ctx) error
		CancelScan(c *fiber.Ctx) error
	}

	scanHandler struct {
		scanService scan.ScanService
		validator   *validator.Validate
	}
)

func NewScanHandler(scanService scan.ScanService, validator *validator.Validate) ScanHandler {
	return &scanHandler{
		scanService: scanService,
		validator:   validator,
	}
}

func (h *scanHandler) AnalyzeImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AnalyzeImageRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAnalyzeImage, err)
	}

	res, err := h.scanService.AnalyzeImage(c.Context(), *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyImage) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAnalyzeImage, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedAnalyzeImage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAnalyzeImage)
}

func (h *scanHandler) GetSession(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.scanService.GetSession(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetScanSession, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetScanSession)
}

func (h *scanHandler) EditItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEditScanItem, domain.ErrScanItemNotFound)
	}

	req := new(domain.EditScannedItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.scanService.EditItem(c.Context(), index, *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveScan) || errors.Is(err, domain.ErrScanItemNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedEditScanItem, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEditScanItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessEditScanItem)
}

func (h *scanHandler) SaveItems(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.scanService.SaveItems(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveScan) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedSaveScanItems, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveScanItems, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSaveScanItems)
}

func (h *scanHandler) CancelScan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.scanService.CancelScan(c.Context(), userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCancelScan, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCancelScan)
}
