package model

// FieldCount is one observed value of a record field and its occurrence count
type FieldCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Stats is an aggregate over the full current collection. The count slices
// keep keys in first-encountered order, walking records newest first.
type Stats struct {
	Total    int          `json:"total"`
	ByAgent  []FieldCount `json:"byAgent"`
	ByType   []FieldCount `json:"byType"`
	ByStatus []FieldCount `json:"byStatus"`
	Recent   []*Activity  `json:"recentActivity"`
}

// Counter accumulates field value counts preserving first-encountered order
type Counter struct {
	index  map[string]int
	counts []FieldCount
}

// NewCounter creates an empty Counter
func NewCounter() *Counter {
	return &Counter{index: make(map[string]int)}
}

// Add increments the count for the given key
func (c *Counter) Add(key string) {
	if i, ok := c.index[key]; ok {
		c.counts[i].Count++
		return
	}
	c.index[key] = len(c.counts)
	c.counts = append(c.counts, FieldCount{Key: key, Count: 1})
}

// Counts returns the accumulated counts in first-encountered order
func (c *Counter) Counts() []FieldCount {
	return c.counts
}
