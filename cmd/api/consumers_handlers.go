package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/giovaniif/bucket-list/use_cases/bucketlist"
	"github.com/giovaniif/bucket-list/use_cases/consumers"
)

type consumerUri struct {
	ConsumerId int32 `uri:"consumer_id"`
}

type bucketListItemUri struct {
	ConsumerId int32 `uri:"consumer_id"`
	ItemId     int32 `uri:"item_id"`
}

type CreateConsumerRequest struct {
	Name  *string `form:"name" binding:"required"`
	Email *string `form:"email" binding:"required"`
}

type ReplaceConsumerRequest struct {
	Name       *string `json:"name" binding:"required"`
	Email      *string `json:"email" binding:"required"`
	BucketList []int32 `json:"bucket_list"`
}

type AddToBucketListRequest struct {
	ItemId *int32 `form:"item_id" binding:"required"`
}

func (s *Server) listConsumers(c *gin.Context) {
	c.JSON(http.StatusOK, s.consumers.List())
}

func (s *Server) getConsumer(c *gin.Context) {
	var uri consumerUri
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBindError(c, err)
		return
	}
	found, err := s.consumers.Get(uri.ConsumerId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (s *Server) createConsumer(c *gin.Context) {
	var request CreateConsumerRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		respondBindError(c, err)
		return
	}
	consumerId, err := s.consumers.Create(c.Request.Context(), consumers.CreateInput{
		Name:           *request.Name,
		Email:          *request.Email,
		IdempotencyKey: c.GetHeader(idempotencyKeyHeader),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"consumer_id": consumerId})
}

func (s *Server) replaceConsumer(c *gin.Context) {
	var uri consumerUri
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBindError(c, err)
		return
	}
	var request ReplaceConsumerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err)
		return
	}
	replaced, err := s.consumers.Replace(c.Request.Context(), uri.ConsumerId, consumers.ReplaceInput{
		Name:       *request.Name,
		Email:      *request.Email,
		BucketList: request.BucketList,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, replaced)
}

func (s *Server) deleteConsumer(c *gin.Context) {
	var uri consumerUri
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBindError(c, err)
		return
	}
	if err := s.consumers.Delete(c.Request.Context(), uri.ConsumerId); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Consumer deleted"})
}

func (s *Server) listBucketList(c *gin.Context) {
	var uri consumerUri
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBindError(c, err)
		return
	}
	entries, err := s.bucketList.List(uri.ConsumerId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) addToBucketList(c *gin.Context) {
	var uri consumerUri
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBindError(c, err)
		return
	}
	var request AddToBucketListRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		respondBindError(c, err)
		return
	}
	message, err := s.bucketList.Add(c.Request.Context(), bucketlist.Input{
		ConsumerId: uri.ConsumerId,
		ItemId:     *request.ItemId,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": message})
}

func (s *Server) removeFromBucketList(c *gin.Context) {
	var uri bucketListItemUri
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBindError(c, err)
		return
	}
	message, err := s.bucketList.Remove(c.Request.Context(), bucketlist.Input{
		ConsumerId: uri.ConsumerId,
		ItemId:     uri.ItemId,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": message})
}
