package entities

// Item 上游数据源返回的单条记录,只携带文件或目录的绝对URL
type Item struct {
	FileURL string `json:"fileUrl"`
}

// NewItems 由URL列表构造Item列表
func NewItems(urls ...string) []Item {
	items := make([]Item, 0, len(urls))
	for _, u := range urls {
		items = append(items, Item{FileURL: u})
	}
	return items
}
