package consumer

type Consumer struct {
	Id         int32   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	BucketList []int32 `json:"bucket_list"`
}

func (c *Consumer) AddToBucketList(itemId int32) {
	c.BucketList = append(c.BucketList, itemId)
}

func (c *Consumer) HasInBucketList(itemId int32) bool {
	for _, id := range c.BucketList {
		if id == itemId {
			return true
		}
	}
	return false
}

// RemoveFromBucketList drops every occurrence of itemId and reports how many were removed.
func (c *Consumer) RemoveFromBucketList(itemId int32) int {
	kept := make([]int32, 0, len(c.BucketList))
	for _, id := range c.BucketList {
		if id != itemId {
			kept = append(kept, id)
		}
	}
	removed := len(c.BucketList) - len(kept)
	c.BucketList = kept
	return removed
}

func (c *Consumer) Clone() Consumer {
	clone := *c
	clone.BucketList = append(make([]int32, 0, len(c.BucketList)), c.BucketList...)
	return clone
}
