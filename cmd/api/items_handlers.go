package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/giovaniif/bucket-list/domain/item"
	"github.com/giovaniif/bucket-list/use_cases/items"
)

type itemUri struct {
	ItemId int32 `uri:"item_id"`
}

type CreateItemRequest struct {
	Name        *string  `form:"name" binding:"required"`
	Price       *float64 `form:"price" binding:"required"`
	Description string   `form:"description"`
}

type UpdateItemRequest struct {
	Name        *string  `form:"name"`
	Price       *float64 `form:"price"`
	Description *string  `form:"description"`
}

func (s *Server) listItems(c *gin.Context) {
	c.JSON(http.StatusOK, s.items.List())
}

func (s *Server) getItem(c *gin.Context) {
	var uri itemUri
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBindError(c, err)
		return
	}
	it, err := s.items.Get(uri.ItemId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (s *Server) createItem(c *gin.Context) {
	var request CreateItemRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		respondBindError(c, err)
		return
	}
	itemId, err := s.items.Create(c.Request.Context(), items.CreateInput{
		Name:           *request.Name,
		Price:          *request.Price,
		Description:    request.Description,
		IdempotencyKey: c.GetHeader(idempotencyKeyHeader),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item_id": itemId})
}

func (s *Server) updateItem(c *gin.Context) {
	var uri itemUri
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBindError(c, err)
		return
	}
	var request UpdateItemRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		respondBindError(c, err)
		return
	}
	updated, err := s.items.Update(c.Request.Context(), uri.ItemId, item.Patch{
		Name:        request.Name,
		Price:       request.Price,
		Description: request.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteItem(c *gin.Context) {
	var uri itemUri
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBindError(c, err)
		return
	}
	if err := s.items.Delete(c.Request.Context(), uri.ItemId); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Item deleted"})
}
