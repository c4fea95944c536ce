package crawler

// frontier is the pending-URL queue of one crawl. It is owned by a single
// Crawl call and is not safe for concurrent use.
type frontier struct {
	items  []string
	queued map[string]bool
}

func newFrontier() *frontier {
	return &frontier{queued: make(map[string]bool)}
}

// pushFront inserts urls ahead of everything queued, keeping their order.
// URLs already queued are left where they are.
func (f *frontier) pushFront(urls ...string) {
	fresh := f.fresh(urls)
	if len(fresh) == 0 {
		return
	}
	f.items = append(fresh, f.items...)
}

// pushBack appends urls that are not already queued.
func (f *frontier) pushBack(urls ...string) {
	f.items = append(f.items, f.fresh(urls)...)
}

// pop removes and returns the head of the queue.
func (f *frontier) pop() (string, bool) {
	if len(f.items) == 0 {
		return "", false
	}
	head := f.items[0]
	f.items = f.items[1:]
	delete(f.queued, head)
	return head, true
}

func (f *frontier) size() int {
	return len(f.items)
}

func (f *frontier) fresh(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if f.queued[u] {
			continue
		}
		f.queued[u] = true
		out = append(out, u)
	}
	return out
}
