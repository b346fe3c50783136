package domain

// WordRecord is one row of the remote vocabulary table. Only the columns the
// backfill touches are modelled; other columns are left alone on update.
type WordRecord struct {
	ID         int64   `json:"id"`
	Sentence   string  `json:"sentence"`
	SeriesName string  `json:"series_name"`
	Status     int     `json:"status"`
	Episode    *string `json:"episode"`
}

// EpisodeLabel returns the episode or "" when unset.
func (w *WordRecord) EpisodeLabel() string {
	if w == nil || w.Episode == nil {
		return ""
	}
	return *w.Episode
}

// Classification is the set of columns written back by the backfill.
type Classification struct {
	SeriesName string  `json:"series_name"`
	Status     int     `json:"status"`
	Episode    *string `json:"episode"`
}

func (w *WordRecord) Classification() Classification {
	return Classification{
		SeriesName: w.SeriesName,
		Status:     w.Status,
		Episode:    w.Episode,
	}
}

// Reference is a full episode transcript used to infer which episode a
// sentence came from.
type Reference struct {
	Label string
	Text  string
}
