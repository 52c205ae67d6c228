package handlers

import (
	"errors"
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/mverdi/insurance-crm/internal/domain/repository"
	"github.com/mverdi/insurance-crm/internal/transport/http/middleware"
	"github.com/mverdi/insurance-crm/internal/transport/http/response"
	"github.com/mverdi/insurance-crm/internal/usecase"
)

func (h *Handler) listCustomers(c *gin.Context) {
	filter := repository.ListFilter{
		Status:     c.Query("status"),
		PolicyType: c.Query("policy_type"),
		Search:     c.Query("search"),
	}

	customers, err := h.customers.List(c.Request.Context(), filter)
	if err != nil {
		response.RespondError(c, nethttp.StatusInternalServerError, "list failed")
		return
	}
	response.RespondOK(c, nethttp.StatusOK, customers, &response.Meta{Count: len(customers)})
}

func (h *Handler) getCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondError(c, nethttp.StatusBadRequest, "invalid id")
		return
	}

	customer, err := h.customers.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			response.RespondError(c, nethttp.StatusNotFound, "customer not found")
			return
		}
		response.RespondError(c, nethttp.StatusInternalServerError, "get failed")
		return
	}
	response.RespondOK(c, nethttp.StatusOK, customer, nil)
}

func (h *Handler) filterValues(c *gin.Context) {
	values, err := h.customers.FilterValues(c.Request.Context())
	if err != nil {
		response.RespondError(c, nethttp.StatusInternalServerError, "filter values failed")
		return
	}
	response.RespondOK(c, nethttp.StatusOK, values, nil)
}

type updateCustomerRequest struct {
	FirstName     *string          `json:"first_name"`
	LastName      *string          `json:"last_name"`
	Email         *string          `json:"email"`
	Phone         *string          `json:"phone"`
	PolicyType    *string          `json:"policy_type"`
	PolicyNumber  *string          `json:"policy_number"`
	PremiumAmount *decimal.Decimal `json:"premium_amount"`
	Status        *string          `json:"status"`
	StartDate     *string          `json:"start_date"`
	Comment       string           `json:"comment"`
}

func (r updateCustomerRequest) updates() (map[string]any, error) {
	updates := make(map[string]any)
	set := func(column string, v *string) {
		if v != nil {
			updates[column] = *v
		}
	}
	set("first_name", r.FirstName)
	set("last_name", r.LastName)
	set("email", r.Email)
	set("phone", r.Phone)
	set("policy_type", r.PolicyType)
	set("policy_number", r.PolicyNumber)
	set("status", r.Status)
	if r.PremiumAmount != nil {
		updates["premium_amount"] = *r.PremiumAmount
	}
	if r.StartDate != nil {
		date, err := time.Parse("2006-01-02", *r.StartDate)
		if err != nil {
			return nil, err
		}
		updates["start_date"] = date
	}
	return updates, nil
}

func (h *Handler) updateCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondError(c, nethttp.StatusBadRequest, "invalid id")
		return
	}

	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, nethttp.StatusBadRequest, err.Error())
		return
	}
	updates, err := req.updates()
	if err != nil {
		response.RespondError(c, nethttp.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
		return
	}

	user := c.GetString(middleware.ActingUserKey)
	outcome, err := h.customers.Update(c.Request.Context(), id, updates, req.Comment, user)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyComment):
			response.RespondError(c, nethttp.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrCustomerNotFound):
			response.RespondError(c, nethttp.StatusNotFound, "customer not found")
		default:
			response.RespondError(c, nethttp.StatusInternalServerError, "update failed")
		}
		return
	}
	response.RespondOK(c, nethttp.StatusOK, outcome, nil)
}

func (h *Handler) me(c *gin.Context) {
	response.RespondOK(c, nethttp.StatusOK, gin.H{"user": c.GetString(middleware.ActingUserKey)}, nil)
}
