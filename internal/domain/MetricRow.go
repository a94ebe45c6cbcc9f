package domain

// MetricRow é uma observação de métricas de mediação já achatada.
// Dimensões ausentes na fonte ficam nil (serializadas como null).
type MetricRow struct {
	Date        string  `json:"date"`
	AdUnits     *string `json:"adUnits"`
	AppKey      *string `json:"appKey"`
	Country     *string `json:"country"`
	Platform    *string `json:"platform"`
	Revenue     float64 `json:"revenue"`
	Impressions int64   `json:"impressions"`
	ECPM        float64 `json:"eCPM"`
	Clicks      int64   `json:"clicks"`
	Completions int64   `json:"completions"`
}

// DayPartition agrupa todas as linhas de um usuário em uma data (YYYY-MM-DD)
type DayPartition struct {
	UserID string       `json:"-"`
	Date   string       `json:"date"`
	Rows   []*MetricRow `json:"rows"`
}

// GroupRowsByDate agrupa as linhas por data preservando a ordem de chegada.
// Linhas sem data são descartadas.
func GroupRowsByDate(userID string, rows []*MetricRow) []*DayPartition {
	partitions := make([]*DayPartition, 0)
	byDate := make(map[string]*DayPartition)

	for _, row := range rows {
		if row == nil || row.Date == "" {
			continue
		}

		partition, exists := byDate[row.Date]
		if !exists {
			partition = &DayPartition{
				UserID: userID,
				Date:   row.Date,
				Rows:   make([]*MetricRow, 0),
			}
			byDate[row.Date] = partition
			partitions = append(partitions, partition)
		}

		partition.Rows = append(partition.Rows, row)
	}

	return partitions
}
