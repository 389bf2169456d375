package sheetstream

// Cursor is the pagination state of a read session.
type Cursor struct {
	// BatchSize is the cap on rows consumed per Read.
	BatchSize int
	// RowsRead counts row ends consumed so far, empty rows included.
	RowsRead int
	// TotalRows is fixed by the counting pass before the first Read.
	TotalRows int
	// HasMoreData reports that the last Read stopped at the cap.
	HasMoreData bool
	// FinishedReading reports that the worksheet stream is exhausted.
	FinishedReading bool
}

// Progress returns the fraction of rows read, in [0, 1].
func (c Cursor) Progress() float64 {
	if c.TotalRows == 0 {
		if c.FinishedReading {
			return 1
		}
		return 0
	}
	return min(float64(c.RowsRead)/float64(c.TotalRows), 1)
}

// full reports whether a call that has consumed n rows must suspend.
func (c Cursor) full(n int) bool {
	return n >= c.BatchSize
}

func (c *Cursor) advance() {
	c.RowsRead++
}

func (c *Cursor) suspend() {
	c.HasMoreData = true
}

func (c *Cursor) finish() {
	c.HasMoreData = false
	c.FinishedReading = true
}
