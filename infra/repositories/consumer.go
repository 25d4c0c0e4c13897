package repositories

import (
	"sync"

	"github.com/giovaniif/bucket-list/domain/consumer"
)

type ConsumerRepositoryMemory struct {
	mutex     sync.RWMutex
	consumers []*consumer.Consumer
	lastId    int32
}

func NewConsumerRepositoryMemory() *ConsumerRepositoryMemory {
	return &ConsumerRepositoryMemory{
		consumers: make([]*consumer.Consumer, 0),
	}
}

func (r *ConsumerRepositoryMemory) List() []consumer.Consumer {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	consumers := make([]consumer.Consumer, 0, len(r.consumers))
	for _, c := range r.consumers {
		consumers = append(consumers, c.Clone())
	}
	return consumers
}

func (r *ConsumerRepositoryMemory) GetConsumer(consumerId int32) (*consumer.Consumer, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	_, repositoryConsumer, ok := r.find(consumerId)
	if !ok {
		return nil, consumer.ErrNotFound
	}
	found := repositoryConsumer.Clone()
	return &found, nil
}

func (r *ConsumerRepositoryMemory) Create(name string, email string) int32 {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.lastId++
	r.consumers = append(r.consumers, &consumer.Consumer{
		Id:         r.lastId,
		Name:       name,
		Email:      email,
		BucketList: []int32{},
	})
	return r.lastId
}

// Replace overwrites every field of the consumer; the id always stays consumerId.
func (r *ConsumerRepositoryMemory) Replace(consumerId int32, replacement consumer.Consumer) (*consumer.Consumer, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	index, _, ok := r.find(consumerId)
	if !ok {
		return nil, consumer.ErrNotFound
	}
	stored := replacement.Clone()
	stored.Id = consumerId
	r.consumers[index] = &stored
	replaced := stored.Clone()
	return &replaced, nil
}

func (r *ConsumerRepositoryMemory) Delete(consumerId int32) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	index, _, ok := r.find(consumerId)
	if !ok {
		return consumer.ErrNotFound
	}
	r.consumers = append(r.consumers[:index], r.consumers[index+1:]...)
	return nil
}

func (r *ConsumerRepositoryMemory) AppendToBucketList(consumerId int32, itemId int32) (*consumer.Consumer, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	_, repositoryConsumer, ok := r.find(consumerId)
	if !ok {
		return nil, consumer.ErrNotFound
	}
	repositoryConsumer.AddToBucketList(itemId)
	updated := repositoryConsumer.Clone()
	return &updated, nil
}

func (r *ConsumerRepositoryMemory) RemoveFromBucketList(consumerId int32, itemId int32) (*consumer.Consumer, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	_, repositoryConsumer, ok := r.find(consumerId)
	if !ok {
		return nil, consumer.ErrNotFound
	}
	if repositoryConsumer.RemoveFromBucketList(itemId) == 0 {
		return nil, consumer.ErrNotInBucketList
	}
	updated := repositoryConsumer.Clone()
	return &updated, nil
}

func (r *ConsumerRepositoryMemory) Save(c consumer.Consumer) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if c.Id > r.lastId {
		r.lastId = c.Id
	}
	stored := c.Clone()
	if index, _, ok := r.find(c.Id); ok {
		r.consumers[index] = &stored
		return
	}
	r.consumers = append(r.consumers, &stored)
}

func (r *ConsumerRepositoryMemory) find(consumerId int32) (int, *consumer.Consumer, bool) {
	for i, c := range r.consumers {
		if c.Id == consumerId {
			return i, c, true
		}
	}
	return -1, nil, false
}
