package repositories

import (
	"sync"

	"github.com/giovaniif/bucket-list/domain/item"
)

// ItemRepositoryMemory keeps items in insertion order. Ids come from a counter
// that only grows, so an id is never handed out twice within a process.
type ItemRepositoryMemory struct {
	mutex  sync.RWMutex
	items  []*item.Item
	lastId int32
}

func NewItemRepositoryMemory() *ItemRepositoryMemory {
	return &ItemRepositoryMemory{
		items: make([]*item.Item, 0),
	}
}

func (r *ItemRepositoryMemory) List() []item.Item {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	items := make([]item.Item, 0, len(r.items))
	for _, it := range r.items {
		items = append(items, *it)
	}
	return items
}

func (r *ItemRepositoryMemory) GetItem(itemId int32) (*item.Item, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	_, repositoryItem, ok := r.find(itemId)
	if !ok {
		return nil, item.ErrNotFound
	}
	found := *repositoryItem
	return &found, nil
}

func (r *ItemRepositoryMemory) Create(name string, price float64, description string) int32 {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.lastId++
	r.items = append(r.items, &item.Item{
		Id:          r.lastId,
		Name:        name,
		Description: description,
		Price:       price,
	})
	return r.lastId
}

func (r *ItemRepositoryMemory) Update(itemId int32, patch item.Patch) (*item.Item, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	_, repositoryItem, ok := r.find(itemId)
	if !ok {
		return nil, item.ErrNotFound
	}
	repositoryItem.Apply(patch)
	updated := *repositoryItem
	return &updated, nil
}

func (r *ItemRepositoryMemory) Delete(itemId int32) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	index, _, ok := r.find(itemId)
	if !ok {
		return item.ErrNotFound
	}
	r.items = append(r.items[:index], r.items[index+1:]...)
	return nil
}

// Save stores it under its own id, replacing any item with the same id.
// Used to load fixtures; the id counter is moved past it.Id.
func (r *ItemRepositoryMemory) Save(it item.Item) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if it.Id > r.lastId {
		r.lastId = it.Id
	}
	if index, _, ok := r.find(it.Id); ok {
		r.items[index] = &it
		return
	}
	r.items = append(r.items, &it)
}

func (r *ItemRepositoryMemory) find(itemId int32) (int, *item.Item, bool) {
	for i, it := range r.items {
		if it.Id == itemId {
			return i, it, true
		}
	}
	return -1, nil, false
}
