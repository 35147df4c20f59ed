package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"matchup/helper"
)

const opTimeout = 10 * time.Second

// CrudService is the generic resource surface a CrudController serves.
type CrudService[T, I, P any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, in I) (T, error)
	Update(ctx context.Context, id string, in I) (T, error)
	Patch(ctx context.Context, id string, patch P) (T, error)
	Delete(ctx context.Context, id string) error
}

type CrudController[T, I, P any] struct {
	service CrudService[T, I, P]
}

func NewCrudController[T, I, P any](service CrudService[T, I, P]) *CrudController[T, I, P] {
	return &CrudController[T, I, P]{service: service}
}

func (ctl *CrudController[T, I, P]) GetAll(c *gin.Context) {
	ctx, cancel := opContext(c)
	defer cancel()

	docs, err := ctl.service.GetAll(ctx)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (ctl *CrudController[T, I, P]) GetByID(c *gin.Context) {
	ctx, cancel := opContext(c)
	defer cancel()

	doc, err := ctl.service.GetByID(ctx, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (ctl *CrudController[T, I, P]) Create(c *gin.Context) {
	var in I
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := opContext(c)
	defer cancel()

	doc, err := ctl.service.Create(ctx, in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (ctl *CrudController[T, I, P]) Update(c *gin.Context) {
	var in I
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := opContext(c)
	defer cancel()

	doc, err := ctl.service.Update(ctx, c.Param("id"), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (ctl *CrudController[T, I, P]) Patch(c *gin.Context) {
	var patch P
	if !bindJSON(c, &patch) {
		return
	}
	ctx, cancel := opContext(c)
	defer cancel()

	doc, err := ctl.service.Patch(ctx, c.Param("id"), patch)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (ctl *CrudController[T, I, P]) Delete(c *gin.Context) {
	ctx, cancel := opContext(c)
	defer cancel()

	if err := ctl.service.Delete(ctx, c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// opContext bounds a store call by the request and the operation timeout.
func opContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), opTimeout)
}

// bindJSON decodes the body into v and records a 400 when it cannot.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		_ = c.Error(&helper.AppError{Status: http.StatusBadRequest, Message: "Invalid request body: " + err.Error(), Err: err})
		return false
	}
	return true
}
