package consumer

import "errors"

var (
	ErrNotFound        = errors.New("consumer not found")
	ErrNotInBucketList = errors.New("item not found in consumer's bucket list")
)

type Repository interface {
	List() []Consumer
	GetConsumer(consumerId int32) (*Consumer, error)
	Create(name string, email string) int32
	Replace(consumerId int32, replacement Consumer) (*Consumer, error)
	Delete(consumerId int32) error
	AppendToBucketList(consumerId int32, itemId int32) (*Consumer, error)
	RemoveFromBucketList(consumerId int32, itemId int32) (*Consumer, error)
}
